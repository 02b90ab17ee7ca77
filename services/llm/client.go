// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package llm provides interchangeable language-model backends for the
// decision engine. The engine only depends on the Client interface;
// which backend answers is a deployment choice.
package llm

import (
	"context"
	"encoding/json"
)

// GenerationParams tunes a single generation request.
type GenerationParams struct {
	Temperature *float32 `json:"temperature"`
	MaxTokens   *int     `json:"max_tokens"`
}

// Client is the standard interface for any LLM backend.
//
// GenerateStructured constrains the model's output to the given JSON
// schema and returns the raw JSON text of the response. Callers own
// parsing and validation; any error here means "inference unavailable",
// never a reason to stop the pipeline.
type Client interface {
	GenerateStructured(ctx context.Context, prompt string, format json.RawMessage, params GenerationParams) (string, error)
}
