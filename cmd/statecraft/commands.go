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
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/Statecraft/pkg/config"
	"github.com/AleutianAI/Statecraft/pkg/logging"
)

// --- Global Command Variables ---
var (
	configPath string // --config: explicit config file instead of ./statecraft.yaml
	quietLogs  bool   // --quiet: suppress stderr logging (file log still written)

	rootCmd = &cobra.Command{
		Use:   "statecraft",
		Short: "A cli that governs a NationStates nation with a local LLM",
		Long: `Statecraft fetches the pending policy issues for a nation,
asks a language model to choose a response to each one, records every
decision in an append-only log, and submits the answers back to the
NationStates API.`,
	}

	governCmd = &cobra.Command{
		Use:   "govern",
		Short: "Run the decision pipeline (fetch issues, decide, log, submit)",
		Run:   runGovern, // Defined in cmd_govern.go
	}

	statsCmd = &cobra.Command{
		Use:   "stats",
		Short: "Fetch and record a snapshot of the nation's statistics",
		Run:   runStats, // Defined in cmd_stats.go
	}

	analyticsCmd = &cobra.Command{
		Use:   "analytics [decision-log]",
		Short: "Summarize the decision history",
		Args:  cobra.MaximumNArgs(1),
		Run:   runAnalytics, // Defined in cmd_analytics.go
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Config file path (default: ./statecraft.yaml if present)")
	rootCmd.PersistentFlags().BoolVarP(&quietLogs, "quiet", "q", false,
		"Suppress stderr logging")

	governCmd.Flags().Bool("once", false,
		"Run a single cycle and exit (same as SINGLE_RUN=true)")
	governCmd.Flags().Bool("test", false,
		"Decide and log without submitting answers (same as TEST_MODE=true)")

	analyticsCmd.Flags().IntP("recent", "n", 5,
		"Number of recent decisions to list")

	rootCmd.AddCommand(governCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(analyticsCmd)
}

// mustLoadConfig loads and validates configuration or exits. Commands
// cannot do anything useful with a broken config, so this is fatal.
func mustLoadConfig() *config.Config {
	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// setupLogging builds the process logger from config and installs it as
// the slog default so library code picks it up. Callers must Close it.
func setupLogging(cfg *config.Config, service string) *logging.Logger {
	logger := logging.New(logging.Config{
		Level:   logging.ParseLevel(cfg.LogLevel),
		LogDir:  cfg.LogDir,
		Service: service,
		Quiet:   quietLogs,
	})
	slog.SetDefault(logger.Slog())
	return logger
}
