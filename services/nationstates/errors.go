// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package nationstates

import (
	"errors"
	"fmt"
)

// ErrFetch marks an issue-list or stats fetch that failed this cycle.
// Callers treat it as "nothing to do this cycle", never as fatal.
var ErrFetch = errors.New("fetch failed")

// NetworkError is a transport-level failure (DNS, connect, timeout)
// that survived the whole retry budget.
type NetworkError struct {
	Attempts int
	Err      error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error after %d attempts: %v", e.Attempts, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// HTTPError is a non-2xx response that survived the whole retry budget.
// Body holds at most the first 120 characters of the response, enough
// to identify the API's complaint without logging whole documents.
type HTTPError struct {
	Status   int
	Body     string
	Attempts int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d after %d attempts: %s", e.Status, e.Attempts, e.Body)
}
