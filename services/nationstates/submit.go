// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package nationstates

import (
	"context"
	"log/slog"
	"net/url"
)

// AnswerIssue submits the chosen option for an issue and returns the
// API's raw acknowledgment text.
//
// Submission failure does not undo the already-written decision log
// entry: the log records the choice made, not the delivery.
func (c *Client) AnswerIssue(ctx context.Context, issueID, optionID string) (string, error) {
	ctx, span := tracer.Start(ctx, "Client.AnswerIssue")
	defer span.End()

	form := url.Values{}
	form.Set("nation", c.nation)
	form.Set("c", "issue")
	form.Set("issue", issueID)
	form.Set("option", optionID)

	resp, err := c.Send(ctx, nil, c.authHeaders(), form)
	if err != nil {
		return "", err
	}

	slog.Info("Answered issue", "issue_id", issueID, "option_id", optionID)
	return string(resp.Body), nil
}
