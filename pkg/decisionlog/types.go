// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package decisionlog defines the durable record types of the governance
// pipeline and an append-only NDJSON store for them.
//
// Two logs share the same storage format: the decision log (one Decision
// per resolved issue) and the nation statistics log (one StatsSnapshot per
// periodic fetch). Both are newline-delimited JSON, UTF-8, append-only:
// lines are never rewritten, file order is write order.
package decisionlog

import "time"

// Method records the provenance of a Decision.
type Method string

const (
	// MethodAI marks a decision made by the language model.
	MethodAI Method = "AI"

	// MethodRandom marks the uniform-random fallback used when the
	// language model is unavailable or returns an invalid choice.
	MethodRandom Method = "random"

	// MethodNone marks an issue that had no selectable options.
	MethodNone Method = "none"
)

// Decision is the immutable record of one resolved issue.
//
// A Decision is appended to the log the moment the choice is made,
// before submission to the remote API: the log records the choice,
// independent of whether submission later succeeds.
//
// Timestamp is epoch seconds with a fractional part, matching the
// historical log format.
type Decision struct {
	Timestamp        float64 `json:"timestamp"`
	CycleID          string  `json:"cycle_id,omitempty"`
	IssueID          string  `json:"issue_id"`
	Title            string  `json:"title"`
	Text             string  `json:"text"`
	OptionID         string  `json:"option_id"`
	ChosenOptionText string  `json:"chosen_option_text"`
	Method           Method  `json:"method"`
	Reasoning        string  `json:"reasoning,omitempty"`
}

// Time returns the decision timestamp as a time.Time.
func (d Decision) Time() time.Time {
	sec := int64(d.Timestamp)
	nsec := int64((d.Timestamp - float64(sec)) * 1e9)
	return time.Unix(sec, nsec)
}

// StatsSnapshot is a point-in-time capture of aggregate nation metrics,
// appended to the statistics log independently of the decision pipeline.
//
// Numeric fields are pointers so that a field absent from the API
// response is distinguishable from a genuine zero.
type StatsSnapshot struct {
	Timestamp float64 `json:"timestamp"`
	Date      string  `json:"date"`

	Category string `json:"category,omitempty"`
	Region   string `json:"region,omitempty"`

	Population *int64   `json:"population,omitempty"`
	GDP        *int64   `json:"gdp,omitempty"`
	Income     *int64   `json:"income,omitempty"`
	Tax        *float64 `json:"tax,omitempty"`

	CivilRights      string `json:"civil_rights,omitempty"`
	Economy          string `json:"economy,omitempty"`
	PoliticalFreedom string `json:"political_freedom,omitempty"`

	// Govt maps a government spending sector (administration, defence,
	// education, ...) to its percentage of the budget.
	Govt map[string]float64 `json:"govt,omitempty"`

	// CausesOfDeath maps a cause name to its percentage.
	CausesOfDeath map[string]float64 `json:"causes_of_death,omitempty"`
}

// Time returns the snapshot timestamp as a time.Time.
func (s StatsSnapshot) Time() time.Time {
	sec := int64(s.Timestamp)
	nsec := int64((s.Timestamp - float64(sec)) * 1e9)
	return time.Unix(sec, nsec)
}
