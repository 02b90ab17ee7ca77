// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package validation

import (
	"strings"
	"testing"
)

func TestValidateNation(t *testing.T) {
	tests := []struct {
		name    string
		nation  string
		wantErr bool
	}{
		{"simple", "testlandia", false},
		{"with spaces", "The Free Land", false},
		{"with underscores", "the_free_land", false},
		{"with hyphen", "north-sealand", false},
		{"digits", "nation9", false},
		{"max length", strings.Repeat("a", 40), false},
		{"empty", "", true},
		{"too long", strings.Repeat("a", 41), true},
		{"leading space", " testlandia", true},
		{"injection", "x&nation=other", true},
		{"newline", "test\nlandia", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNation(tt.nation)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateNation(%q) error = %v, wantErr %v", tt.nation, err, tt.wantErr)
			}
		})
	}
}

func TestValidateUserAgent(t *testing.T) {
	tests := []struct {
		name    string
		ua      string
		wantErr bool
	}{
		{"typical", "Statecraft/1.0 (operator@example.com)", false},
		{"short", "me", false},
		{"max length", strings.Repeat("a", 256), false},
		{"empty", "", true},
		{"too long", strings.Repeat("a", 257), true},
		{"trailing space", "Statecraft ", true},
		{"control char", "State\x00craft", true},
		{"non-ascii", "Statecrafté", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUserAgent(tt.ua)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateUserAgent(%q) error = %v, wantErr %v", tt.ua, err, tt.wantErr)
			}
		})
	}
}
