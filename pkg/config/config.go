// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package config loads and validates the Statecraft configuration.
//
// Configuration is read from the environment (the historical variable
// names are preserved) with an optional statecraft.yaml overlay, and is
// handed to each component as an explicit struct rather than looked up
// ambiently at call sites. Missing identity or credentials is a startup
// error, not a per-request failure.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/AleutianAI/Statecraft/pkg/validation"
)

// Error reports invalid or missing configuration. It is fatal at
// startup; nothing retries a configuration failure.
type Error struct {
	Err error
}

func (e *Error) Error() string { return fmt.Sprintf("configuration error: %v", e.Err) }

func (e *Error) Unwrap() error { return e.Err }

// Config is the full configuration surface of the pipeline.
type Config struct {
	// UserAgent identifies the operator to the NationStates moderators.
	// Sent on every request; required.
	UserAgent string `mapstructure:"user_agent" validate:"required"`

	// Nation is the nation whose issues are governed. Required.
	Nation string `mapstructure:"nation" validate:"required"`

	// Password authenticates issue fetches and submissions. Required.
	Password string `mapstructure:"password" validate:"required"`

	// SleepBetweenRequests paces successive API requests, in seconds.
	SleepBetweenRequests int `mapstructure:"sleep_between_requests" validate:"gte=0"`

	// MaxRetries bounds transport-level retry attempts per request.
	MaxRetries int `mapstructure:"max_retries" validate:"gte=1"`

	// TestMode logs decisions without submitting them, then exits.
	TestMode bool `mapstructure:"test_mode"`

	// SingleRun performs one full cycle (with submission) and exits.
	SingleRun bool `mapstructure:"single_run"`

	// LogReasoning asks the model for a reasoning string and records it
	// on each AI decision.
	LogReasoning bool `mapstructure:"log_reasoning"`

	// LLMBackend selects the inference backend.
	LLMBackend string `mapstructure:"llm_backend" validate:"oneof=ollama openai"`

	// OllamaModel is the model tag passed to Ollama.
	OllamaModel string `mapstructure:"ollama_model" validate:"required_if=LLMBackend ollama"`

	// OllamaBaseURL is the Ollama server address.
	OllamaBaseURL string `mapstructure:"ollama_base_url" validate:"required_if=LLMBackend ollama,omitempty,url"`

	// OpenAIAPIKey and OpenAIModel configure the OpenAI-compatible
	// backend when LLMBackend is "openai".
	OpenAIAPIKey string `mapstructure:"openai_api_key" validate:"required_if=LLMBackend openai"`
	OpenAIModel  string `mapstructure:"openai_model"`

	// DecisionLog and StatsLog are the NDJSON file paths.
	DecisionLog string `mapstructure:"decision_log" validate:"required"`
	StatsLog    string `mapstructure:"stats_log" validate:"required"`

	// LogLevel sets the minimum log level (debug/info/warn/error).
	LogLevel string `mapstructure:"log_level"`

	// LogDir enables JSON file logging when set.
	LogDir string `mapstructure:"log_dir"`
}

// SleepDuration returns the inter-request pause as a time.Duration.
func (c *Config) SleepDuration() time.Duration {
	return time.Duration(c.SleepBetweenRequests) * time.Second
}

// envBindings maps config keys to their historical environment names.
var envBindings = map[string]string{
	"user_agent":             "USER_AGENT",
	"nation":                 "NATION",
	"password":               "PASSWORD",
	"sleep_between_requests": "SLEEP_BETWEEN_REQUESTS",
	"max_retries":            "MAX_RETRIES",
	"test_mode":              "TEST_MODE",
	"single_run":             "SINGLE_RUN",
	"log_reasoning":          "LOG_REASONING",
	"llm_backend":            "LLM_BACKEND",
	"ollama_model":           "OLLAMA_MODEL",
	"ollama_base_url":        "OLLAMA_BASE_URL",
	"openai_api_key":         "OPENAI_API_KEY",
	"openai_model":           "OPENAI_MODEL",
	"decision_log":           "DECISION_LOG",
	"stats_log":              "STATS_LOG",
	"log_level":              "LOG_LEVEL",
	"log_dir":                "LOG_DIR",
}

// Load reads configuration from the environment and, when present, a
// statecraft.yaml file in the current directory. Defaults mirror the
// historical deployment.
func Load() (*Config, error) {
	return load("")
}

// LoadFile is Load with an explicit config file path, used by tests and
// the --config flag.
func LoadFile(path string) (*Config, error) {
	return load(path)
}

func load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("sleep_between_requests", 10)
	v.SetDefault("max_retries", 3)
	v.SetDefault("llm_backend", "ollama")
	v.SetDefault("ollama_model", "llama3.2:3b")
	v.SetDefault("ollama_base_url", "http://localhost:11434")
	v.SetDefault("openai_model", "gpt-4o-mini")
	v.SetDefault("decision_log", "choices.ndjson")
	v.SetDefault("stats_log", "nation_stats.ndjson")
	v.SetDefault("log_level", "info")

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, &Error{Err: err}
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, &Error{Err: fmt.Errorf("error reading config file %s: %w", path, err)}
		}
	} else {
		v.SetConfigName("statecraft")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			// The yaml overlay is optional; anything other than
			// "not found" is a real error.
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, &Error{Err: fmt.Errorf("error reading statecraft.yaml: %w", err)}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, &Error{Err: fmt.Errorf("error unmarshalling configuration: %w", err)}
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks a Config for completeness and well-formed identity
// values. It is exposed so tests can validate hand-built structs.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return &Error{Err: err}
	}
	if err := validation.ValidateUserAgent(cfg.UserAgent); err != nil {
		return &Error{Err: err}
	}
	if err := validation.ValidateNation(cfg.Nation); err != nil {
		return &Error{Err: err}
	}
	return nil
}
