// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// Tests for CLI wiring helpers.

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/Statecraft/pkg/config"
	"github.com/AleutianAI/Statecraft/services/llm"
)

func testConfig() *config.Config {
	return &config.Config{
		UserAgent:            "Operator contact@example.com",
		Nation:               "testlandia",
		Password:             "hunter2",
		SleepBetweenRequests: 10,
		MaxRetries:           3,
		LLMBackend:           "ollama",
		OllamaModel:          "llama3.2:3b",
		OllamaBaseURL:        "http://localhost:11434",
		DecisionLog:          "choices.ndjson",
		StatsLog:             "nation_stats.ndjson",
	}
}

func TestNewAPIClient(t *testing.T) {
	client, err := newAPIClient(testConfig())
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestNewAPIClient_RejectsBadUserAgent(t *testing.T) {
	cfg := testConfig()
	cfg.UserAgent = "   "
	_, err := newAPIClient(cfg)
	assert.Error(t, err)
}

func TestNewLLMClient_BackendSelection(t *testing.T) {
	cfg := testConfig()

	client, err := newLLMClient(cfg)
	require.NoError(t, err)
	_, ok := client.(*llm.OllamaClient)
	assert.True(t, ok, "ollama backend expected")

	cfg.LLMBackend = "openai"
	cfg.OpenAIAPIKey = "sk-test"
	cfg.OpenAIModel = "gpt-4o-mini"
	client, err = newLLMClient(cfg)
	require.NoError(t, err)
	_, ok = client.(*llm.OpenAIClient)
	assert.True(t, ok, "openai backend expected")
}

func TestRootCommandTree(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["govern"])
	assert.True(t, names["stats"])
	assert.True(t, names["analytics"])
}
