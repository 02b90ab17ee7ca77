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
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/Statecraft/pkg/config"
	"github.com/AleutianAI/Statecraft/pkg/decisionlog"
	"github.com/AleutianAI/Statecraft/services/governor"
	"github.com/AleutianAI/Statecraft/services/llm"
	"github.com/AleutianAI/Statecraft/services/nationstates"
)

// runGovern is the main loop: fetch issues, decide each one, log the
// decision, submit the answer, then sleep until the next cycle.
func runGovern(cmd *cobra.Command, args []string) {
	cfg := mustLoadConfig()

	if once, _ := cmd.Flags().GetBool("once"); once {
		cfg.SingleRun = true
	}
	if test, _ := cmd.Flags().GetBool("test"); test {
		cfg.TestMode = true
	}

	logger := setupLogging(cfg, "governor")
	defer logger.Close()

	client, err := newAPIClient(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	model, err := newLLMClient(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	engine := governor.NewEngine(model, governor.WithReasoning(cfg.LogReasoning))
	store := decisionlog.NewStore[decisionlog.Decision](cfg.DecisionLog)

	pipeline := governor.NewPipeline(client, engine, store,
		governor.WithTestMode(cfg.TestMode))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting governor",
		"nation", cfg.Nation,
		"backend", cfg.LLMBackend,
		"test_mode", cfg.TestMode,
		"single_run", cfg.SingleRun,
	)

	// Test mode implies a single pass; a dry run that loops forever
	// answers nothing and tests nothing new.
	once := cfg.SingleRun || cfg.TestMode
	if err := pipeline.Run(ctx, once); err != nil {
		logger.Error("Governor stopped", "error", err)
		os.Exit(1)
	}
}

// newAPIClient builds the NationStates client from config.
func newAPIClient(cfg *config.Config) (*nationstates.Client, error) {
	return nationstates.NewClient(nationstates.ClientConfig{
		UserAgent:    cfg.UserAgent,
		Nation:       cfg.Nation,
		Password:     cfg.Password,
		MaxRetries:   cfg.MaxRetries,
		SleepBetween: cfg.SleepDuration(),
	})
}

// newLLMClient selects the inference backend from config.
func newLLMClient(cfg *config.Config) (llm.Client, error) {
	switch cfg.LLMBackend {
	case "openai":
		return llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	default:
		return llm.NewOllamaClient(cfg.OllamaBaseURL, cfg.OllamaModel)
	}
}
