// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package governor

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/AleutianAI/Statecraft/pkg/decisionlog"
	"github.com/AleutianAI/Statecraft/services/nationstates"
)

// cycleInterval is how long the continuous mode sleeps between cycles.
const cycleInterval = 24 * time.Hour

// IssueService is the slice of the NationStates client the pipeline
// needs; narrowed to an interface so cycles are testable offline.
type IssueService interface {
	FetchIssues(ctx context.Context) ([]nationstates.Issue, error)
	AnswerIssue(ctx context.Context, issueID, optionID string) (string, error)
}

// DecisionSink receives one record per resolved issue.
type DecisionSink interface {
	Append(record decisionlog.Decision) error
}

// Pipeline wires the fetch → decide → log → submit sequence.
//
// Execution is strictly sequential: each issue is decided, logged, and
// submitted before the next one is considered.
type Pipeline struct {
	issues   IssueService
	engine   *Engine
	sink     DecisionSink
	testMode bool

	// now and sleeper are injectable for tests.
	now     func() time.Time
	sleeper func(ctx context.Context, d time.Duration)
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithTestMode logs decisions without submitting them.
func WithTestMode(enabled bool) PipelineOption {
	return func(p *Pipeline) { p.testMode = enabled }
}

// WithClock injects the time source (tests).
func WithClock(now func() time.Time) PipelineOption {
	return func(p *Pipeline) { p.now = now }
}

// WithSleeper injects the inter-cycle sleep (tests).
func WithSleeper(sleeper func(ctx context.Context, d time.Duration)) PipelineOption {
	return func(p *Pipeline) { p.sleeper = sleeper }
}

// NewPipeline assembles a Pipeline.
func NewPipeline(issues IssueService, engine *Engine, sink DecisionSink, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		issues: issues,
		engine: engine,
		sink:   sink,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.sleeper == nil {
		p.sleeper = func(ctx context.Context, d time.Duration) {
			select {
			case <-ctx.Done():
			case <-time.After(d):
			}
		}
	}
	return p
}

// RunCycle performs one full decision cycle.
//
// A failed issue fetch skips the cycle (logged, nil return): the next
// wake-up will try again. A failed log append is returned — the log is
// the system of record, so a pipeline that cannot write it must stop.
// A failed submission is reported and the cycle moves on; the decision
// stays logged.
func (p *Pipeline) RunCycle(ctx context.Context) error {
	cycleID := uuid.NewString()
	log := slog.With("cycle_id", cycleID)

	issues, err := p.issues.FetchIssues(ctx)
	if err != nil {
		log.Error("Failed to fetch issues, skipping cycle", "error", err)
		return nil
	}
	log.Info("Starting decision cycle", "open_issues", len(issues))

	for _, issue := range issues {
		outcome := p.engine.ChooseOption(ctx, issue)
		if outcome.Method == decisionlog.MethodNone {
			continue
		}

		record := decisionlog.Decision{
			Timestamp:        float64(p.now().UnixNano()) / 1e9,
			CycleID:          cycleID,
			IssueID:          issue.ID,
			Title:            issue.Title,
			Text:             issue.Text,
			OptionID:         outcome.OptionID,
			ChosenOptionText: outcome.OptionText,
			Method:           outcome.Method,
			Reasoning:        outcome.Reasoning,
		}

		// Log before submitting: the record reflects the choice made,
		// independent of whether delivery succeeds.
		if err := p.sink.Append(record); err != nil {
			return fmt.Errorf("failed to append decision for issue %s: %w", issue.ID, err)
		}
		log.Info("Decision logged",
			"issue_id", issue.ID, "option_id", outcome.OptionID, "method", outcome.Method)

		if p.testMode {
			log.Info("Test mode: skipping submission",
				"issue_id", issue.ID, "option_id", outcome.OptionID)
			if outcome.Reasoning != "" {
				log.Info("Reasoning", "issue_id", issue.ID, "reasoning", outcome.Reasoning)
			}
			continue
		}

		ack, err := p.issues.AnswerIssue(ctx, issue.ID, outcome.OptionID)
		if err != nil {
			log.Error("Submission failed; decision remains logged",
				"issue_id", issue.ID, "error", err)
			continue
		}
		log.Info("Submission acknowledged", "issue_id", issue.ID, "response_len", len(ack))
	}
	return nil
}

// Run executes the pipeline according to the run mode: one cycle in
// test or single-run mode, otherwise a cycle every 24 hours until the
// context is cancelled.
func (p *Pipeline) Run(ctx context.Context, once bool) error {
	if once {
		return p.RunCycle(ctx)
	}
	for {
		if err := p.RunCycle(ctx); err != nil {
			return err
		}
		slog.Info("Sleeping before next check", "interval", cycleInterval)
		p.sleeper(ctx, cycleInterval)
		if ctx.Err() != nil {
			return nil
		}
	}
}
