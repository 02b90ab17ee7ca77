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
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/Statecraft/pkg/decisionlog"
	"github.com/AleutianAI/Statecraft/services/analytics"
)

// runStats fetches the current nation statistics, shows them next to
// the previous snapshot, and appends the new snapshot to the stats log.
func runStats(cmd *cobra.Command, args []string) {
	cfg := mustLoadConfig()

	logger := setupLogging(cfg, "stats")
	defer logger.Close()

	client, err := newAPIClient(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	snap, err := client.FetchNationStats(cmd.Context())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to fetch nation statistics: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(analytics.RenderSnapshot(cfg.Nation, snap))

	store := decisionlog.NewStore[decisionlog.StatsSnapshot](cfg.StatsLog)
	history, err := store.LoadAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to read %s: %v\n", store.Path(), err)
		os.Exit(1)
	}

	if len(history) > 0 {
		previous := history[len(history)-1]
		changes := analytics.CompareSnapshots(&previous, snap)
		fmt.Println(analytics.RenderComparison(changes))
	}

	if err := store.Append(*snap); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to record snapshot: %v\n", err)
		os.Exit(1)
	}
	logger.Info("Snapshot recorded", "path", store.Path(), "total", len(history)+1)
}
