// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package analytics reduces the decision log into aggregate reports:
// method breakdowns, decision rates over time, and a naive topic
// histogram. Reducers are pure functions of their input; rendering
// lives separately in render.go.
package analytics

import (
	"sort"
	"strings"
	"time"

	"github.com/AleutianAI/Statecraft/pkg/decisionlog"
)

// topCategories bounds the category histogram in a Report.
const topCategories = 10

// previewLen bounds the chosen-option preview in recent listings.
const previewLen = 60

// MethodStat is one row of the per-method breakdown.
type MethodStat struct {
	Method  decisionlog.Method
	Count   int
	Percent float64
}

// CategoryCount is one row of the topic histogram.
type CategoryCount struct {
	Category string
	Count    int
}

// Report is the aggregate view over a decision history.
type Report struct {
	Total int

	// Methods is ordered by descending count; ties keep first-seen
	// order.
	Methods []MethodStat

	// Start and End bound the history; zero when no timestamps exist.
	Start time.Time
	End   time.Time

	// DurationDays is the whole-day span between Start and End.
	DurationDays int

	// AvgPerDay is decisions per day; zero when DurationDays is zero
	// (division guarded, not NaN).
	AvgPerDay float64

	// Categories is the naive topic histogram: first two whitespace
	// tokens of each title, top 10, descending, stable on ties.
	Categories []CategoryCount

	AICount     int
	RandomCount int

	// AIShare is the fraction of all decisions resolved by the model,
	// as a percentage.
	AIShare float64
}

// Analyze reduces a decision history into a Report. Pure function: no
// I/O, no mutation of its input.
func Analyze(decisions []decisionlog.Decision) Report {
	report := Report{Total: len(decisions)}
	if report.Total == 0 {
		return report
	}

	// Per-method frequency, first-seen order preserved for ties.
	methodCounts := map[decisionlog.Method]int{}
	var methodOrder []decisionlog.Method
	for _, d := range decisions {
		if _, seen := methodCounts[d.Method]; !seen {
			methodOrder = append(methodOrder, d.Method)
		}
		methodCounts[d.Method]++
	}
	for _, m := range methodOrder {
		report.Methods = append(report.Methods, MethodStat{
			Method:  m,
			Count:   methodCounts[m],
			Percent: float64(methodCounts[m]) / float64(report.Total) * 100,
		})
	}
	sort.SliceStable(report.Methods, func(i, j int) bool {
		return report.Methods[i].Count > report.Methods[j].Count
	})

	// Date range and rate.
	minTS, maxTS := decisions[0].Timestamp, decisions[0].Timestamp
	for _, d := range decisions[1:] {
		if d.Timestamp < minTS {
			minTS = d.Timestamp
		}
		if d.Timestamp > maxTS {
			maxTS = d.Timestamp
		}
	}
	report.Start = decisionlog.Decision{Timestamp: minTS}.Time()
	report.End = decisionlog.Decision{Timestamp: maxTS}.Time()
	report.DurationDays = int(report.End.Sub(report.Start).Hours() / 24)
	if report.DurationDays > 0 {
		report.AvgPerDay = float64(report.Total) / float64(report.DurationDays)
	}

	// Naive topic histogram from title prefixes.
	categoryCounts := map[string]int{}
	var categoryOrder []string
	for _, d := range decisions {
		words := strings.Fields(d.Title)
		if len(words) == 0 {
			continue
		}
		if len(words) > 2 {
			words = words[:2]
		}
		category := strings.Join(words, " ")
		if _, seen := categoryCounts[category]; !seen {
			categoryOrder = append(categoryOrder, category)
		}
		categoryCounts[category]++
	}
	for _, c := range categoryOrder {
		report.Categories = append(report.Categories, CategoryCount{Category: c, Count: categoryCounts[c]})
	}
	sort.SliceStable(report.Categories, func(i, j int) bool {
		return report.Categories[i].Count > report.Categories[j].Count
	})
	if len(report.Categories) > topCategories {
		report.Categories = report.Categories[:topCategories]
	}

	report.AICount = methodCounts[decisionlog.MethodAI]
	report.RandomCount = methodCounts[decisionlog.MethodRandom]
	report.AIShare = float64(report.AICount) / float64(report.Total) * 100

	return report
}

// RecentDecision is one row of a recent-decision listing, with the
// chosen option text truncated for display.
type RecentDecision struct {
	When   time.Time
	Title  string
	Method decisionlog.Method
	Choice string
}

// Recent returns the count most-recently-timestamped decisions, newest
// first. Equal timestamps keep their original relative order. A count
// below one yields an empty listing.
func Recent(decisions []decisionlog.Decision, count int) []RecentDecision {
	if count < 0 {
		count = 0
	}
	sorted := make([]decisionlog.Decision, len(decisions))
	copy(sorted, decisions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp > sorted[j].Timestamp
	})
	if count < len(sorted) {
		sorted = sorted[:count]
	}

	out := make([]RecentDecision, 0, len(sorted))
	for _, d := range sorted {
		choice := d.ChosenOptionText
		// Truncate on runes so a multi-byte character at the boundary
		// cannot produce invalid UTF-8 in the rendered report.
		if runes := []rune(choice); len(runes) > previewLen {
			choice = string(runes[:previewLen]) + "..."
		}
		out = append(out, RecentDecision{
			When:   d.Time(),
			Title:  d.Title,
			Method: d.Method,
			Choice: choice,
		})
	}
	return out
}
