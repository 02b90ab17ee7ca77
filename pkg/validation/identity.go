// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package validation provides input validation utilities for values that
// cross the process boundary.
//
// This package contains validators for operator-provided identity values
// that end up in outbound HTTP headers and API query parameters. Using
// these validators keeps malformed or injected values out of requests to
// the NationStates API.
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// nationPattern matches valid NationStates nation names.
// Allows: letters, digits, spaces, underscores and hyphens.
// Max length: 40 characters (the site's own limit).
var nationPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9 _\-]{0,39}$`)

// ValidateNation validates a nation name before it is used as an API
// query parameter.
//
// Valid names:
//   - 1-40 characters
//   - Letters, digits, spaces, underscores, hyphens
//   - Must start with a letter or digit
//
// Returns an error if the name is invalid.
//
// Example:
//
//	if err := validation.ValidateNation(nation); err != nil {
//	    return nil, fmt.Errorf("invalid nation: %w", err)
//	}
func ValidateNation(nation string) error {
	if nation == "" {
		return fmt.Errorf("nation cannot be empty")
	}
	if !nationPattern.MatchString(nation) {
		return fmt.Errorf("nation %q contains invalid characters or is too long", nation)
	}
	return nil
}

// ValidateUserAgent validates the identification string sent as the
// User-Agent header on every API request.
//
// The NationStates moderators require a User-Agent that identifies the
// script operator, so an empty or unprintable value is rejected here
// rather than discovered as a per-request failure.
//
// Valid values:
//   - 1-256 characters
//   - Printable ASCII only (header-safe)
//   - No leading or trailing whitespace
func ValidateUserAgent(ua string) error {
	if ua == "" {
		return fmt.Errorf("user agent cannot be empty")
	}
	if len(ua) > 256 {
		return fmt.Errorf("user agent exceeds 256 characters")
	}
	if strings.TrimSpace(ua) != ua {
		return fmt.Errorf("user agent has leading or trailing whitespace")
	}
	for _, r := range ua {
		if r < 0x20 || r > 0x7e {
			return fmt.Errorf("user agent contains non-printable character %q", r)
		}
	}
	return nil
}
