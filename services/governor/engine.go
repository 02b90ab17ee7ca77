// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package governor turns open issues into decisions: it prompts the
// language model for a structured choice, validates it, falls back to a
// uniform-random pick when inference is unavailable, and drives the
// fetch → decide → log → submit cycle.
package governor

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/AleutianAI/Statecraft/pkg/decisionlog"
	"github.com/AleutianAI/Statecraft/services/llm"
	"github.com/AleutianAI/Statecraft/services/nationstates"
)

var tracer = otel.Tracer("statecraft.governor")

// choiceFormat constrains the model to a bare option number.
var choiceFormat = json.RawMessage(`{
  "type": "object",
  "properties": {
    "option_number": {"type": "integer"}
  },
  "required": ["option_number"]
}`)

// choiceFormatWithReasoning additionally demands a reasoning string.
var choiceFormatWithReasoning = json.RawMessage(`{
  "type": "object",
  "properties": {
    "option_number": {"type": "integer"},
    "reasoning": {"type": "string"}
  },
  "required": ["option_number", "reasoning"]
}`)

// Outcome is the engine's two-variant result (plus the no-options
// case), explicit so callers and tests can assert on the variant
// instead of inferring it from side channels.
type Outcome struct {
	Method     decisionlog.Method
	OptionID   string
	OptionText string
	// Reasoning is set only for AI outcomes when reasoning logging is
	// enabled.
	Reasoning string
}

// Engine selects an option for each issue.
//
// The random fallback is what keeps the pipeline moving when the local
// model is down: for any non-empty option set ChooseOption always
// returns a usable choice and never propagates an inference error.
type Engine struct {
	llm          llm.Client
	logReasoning bool
	rng          *rand.Rand
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithReasoning enables reasoning capture on AI decisions.
func WithReasoning(enabled bool) EngineOption {
	return func(e *Engine) { e.logReasoning = enabled }
}

// WithRand injects a deterministic random source (tests).
func WithRand(rng *rand.Rand) EngineOption {
	return func(e *Engine) { e.rng = rng }
}

// NewEngine returns an Engine backed by the given LLM client.
func NewEngine(client llm.Client, opts ...EngineOption) *Engine {
	e := &Engine{llm: client}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return e
}

// structuredChoice is the schema-constrained model reply.
type structuredChoice struct {
	OptionNumber int    `json:"option_number"`
	Reasoning    string `json:"reasoning"`
}

// BuildPrompt renders the deterministic decision prompt for an issue:
// leader framing, title, body, and a 1-indexed option enumeration.
func (e *Engine) BuildPrompt(issue nationstates.Issue) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are the leader of a nation in NationStates. An issue has arisen:\n\n%s\n%s\n\nOptions:\n",
		issue.Title, issue.Text)
	for i, opt := range issue.Options {
		fmt.Fprintf(&b, "%d. %s\n", i+1, opt.Text)
	}
	if e.logReasoning {
		b.WriteString("\n\nChoose the best option for your nation by responding with a JSON object containing 'option_number' (the chosen option number) and 'reasoning' (a brief explanation of why you chose this option). Consider economic stability, civil rights, and political freedom.")
	} else {
		b.WriteString("\n\nChoose the best option for your nation by responding with a JSON object containing the key 'option_number' with the chosen option number (1, 2, 3, etc.). Consider economic stability, civil rights, and political freedom.")
	}
	return b.String()
}

// ChooseOption selects an option for the issue.
//
// Empty option sets yield MethodNone. Otherwise the model is asked for
// a structured choice at temperature zero; a successful, in-range reply
// becomes an AI outcome, and every other failure mode — transport
// error, malformed payload, out-of-range index — collapses into the
// uniform-random fallback.
func (e *Engine) ChooseOption(ctx context.Context, issue nationstates.Issue) Outcome {
	ctx, span := tracer.Start(ctx, "Engine.ChooseOption")
	defer span.End()
	span.SetAttributes(
		attribute.String("issue.id", issue.ID),
		attribute.Int("issue.options", len(issue.Options)),
	)

	if len(issue.Options) == 0 {
		slog.Info("Issue has no options", "issue_id", issue.ID)
		return Outcome{Method: decisionlog.MethodNone}
	}

	if choice, ok := e.askModel(ctx, issue); ok {
		opt := issue.Options[choice.OptionNumber-1]
		outcome := Outcome{
			Method:     decisionlog.MethodAI,
			OptionID:   opt.ID,
			OptionText: opt.Text,
		}
		if e.logReasoning {
			outcome.Reasoning = choice.Reasoning
		}
		span.SetAttributes(attribute.String("decision.method", string(outcome.Method)))
		return outcome
	}

	// Fallback to random if the LLM fails.
	opt := issue.Options[e.rng.Intn(len(issue.Options))]
	slog.Warn("Falling back to random choice", "issue_id", issue.ID, "option_id", opt.ID)
	span.SetAttributes(attribute.String("decision.method", string(decisionlog.MethodRandom)))
	return Outcome{
		Method:     decisionlog.MethodRandom,
		OptionID:   opt.ID,
		OptionText: opt.Text,
	}
}

// askModel runs one structured generation and validates the reply.
// The bool result is false for every flavor of inference failure.
func (e *Engine) askModel(ctx context.Context, issue nationstates.Issue) (structuredChoice, bool) {
	format := choiceFormat
	if e.logReasoning {
		format = choiceFormatWithReasoning
	}

	temperature := float32(0)
	raw, err := e.llm.GenerateStructured(ctx, e.BuildPrompt(issue), format,
		llm.GenerationParams{Temperature: &temperature})
	if err != nil {
		slog.Warn("LLM unavailable", "issue_id", issue.ID, "error", err)
		return structuredChoice{}, false
	}

	var choice structuredChoice
	if err := json.Unmarshal([]byte(raw), &choice); err != nil {
		slog.Warn("LLM returned malformed payload", "issue_id", issue.ID, "error", err)
		return structuredChoice{}, false
	}
	if choice.OptionNumber < 1 || choice.OptionNumber > len(issue.Options) {
		slog.Warn("LLM chose an out-of-range option",
			"issue_id", issue.ID, "option_number", choice.OptionNumber)
		return structuredChoice{}, false
	}
	return choice, true
}
