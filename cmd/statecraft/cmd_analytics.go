// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/Statecraft/pkg/decisionlog"
	"github.com/AleutianAI/Statecraft/services/analytics"
)

// runAnalytics summarizes a decision log. The command reads a local
// file only, so it deliberately skips the credentialed config load: the
// path comes from the positional argument, then DECISION_LOG, then the
// default log name.
func runAnalytics(cmd *cobra.Command, args []string) {
	path := "choices.ndjson"
	if env := os.Getenv("DECISION_LOG"); env != "" {
		path = env
	}
	if len(args) > 0 {
		path = args[0]
	}

	store := decisionlog.NewStore[decisionlog.Decision](path)
	decisions, err := store.LoadAll()
	if err != nil {
		// A corrupt line means the log can no longer be trusted as a
		// record; point at the exact line rather than skipping it.
		var corrupt *decisionlog.CorruptError
		if errors.As(err, &corrupt) {
			fmt.Fprintf(os.Stderr, "Error: decision log is corrupt: %v\n", corrupt)
		} else {
			fmt.Fprintf(os.Stderr, "Error: failed to read %s: %v\n", path, err)
		}
		os.Exit(1)
	}

	report := analytics.Analyze(decisions)
	fmt.Println(analytics.RenderReport(report))

	if report.Total > 0 {
		count, _ := cmd.Flags().GetInt("recent")
		recent := analytics.Recent(decisions, count)
		fmt.Println(analytics.RenderRecent(recent))
	}
}
