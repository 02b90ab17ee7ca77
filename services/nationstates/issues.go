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
	"encoding/xml"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
)

// FetchIssues returns the nation's currently open issues.
//
// A transport failure or an unparseable response wraps ErrFetch; the
// caller should treat either as "no issues this cycle" rather than a
// fatal condition.
func (c *Client) FetchIssues(ctx context.Context) ([]Issue, error) {
	ctx, span := tracer.Start(ctx, "Client.FetchIssues")
	defer span.End()

	params := url.Values{}
	params.Set("nation", c.nation)
	params.Set("q", "issues")

	resp, err := c.Send(ctx, params, c.authHeaders(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}

	var doc issuesDocument
	if err := xml.Unmarshal(resp.Body, &doc); err != nil {
		slog.Error("Failed to parse issues XML", "error", err)
		return nil, fmt.Errorf("%w: failed to parse issues response: %v", ErrFetch, err)
	}

	issues := make([]Issue, 0, len(doc.Issues))
	for _, raw := range doc.Issues {
		issue := Issue{
			ID:    raw.ID,
			Title: strings.TrimSpace(raw.Title),
			Text:  strings.TrimSpace(raw.Text),
		}
		for _, opt := range raw.Options {
			issue.Options = append(issue.Options, Option{
				ID:   opt.ID,
				Text: strings.TrimSpace(opt.Text),
			})
		}
		issues = append(issues, issue)
	}

	slog.Info("Fetched open issues", "count", len(issues))
	return issues, nil
}
