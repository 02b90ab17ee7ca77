// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package decisionlog

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
)

// CorruptError reports a log line that failed to deserialize on read.
//
// A malformed line means the file was corrupted or edited by hand;
// read paths surface it as a fatal error rather than silently skipping
// the record.
type CorruptError struct {
	Path string
	Line int
	Err  error
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("corrupt record in %s at line %d: %v", e.Path, e.Line, e.Err)
}

func (e *CorruptError) Unwrap() error { return e.Err }

// Store is an append-only NDJSON store for one record type.
//
// Append serializes the record and writes exactly one line; prior lines
// are never rewritten. The pipeline is single-writer by design, but the
// internal mutex keeps a record from interleaving if that discipline is
// ever violated within one process.
type Store[T any] struct {
	path string
	mu   sync.Mutex
}

// NewStore returns a Store backed by the file at path. The file is
// created on first Append; a missing file reads as an empty log.
func NewStore[T any](path string) *Store[T] {
	return &Store[T]{path: path}
}

// Path returns the backing file path.
func (s *Store[T]) Path() string { return s.path }

// Append serializes record and appends it as one line.
func (s *Store[T]) Append(record T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to serialize record: %w", err)
	}

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open %s for append: %w", s.path, err)
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to append to %s: %w", s.path, err)
	}
	return nil
}

// LoadAll reads every record in file (write) order.
//
// Blank lines are skipped. A line that fails to deserialize returns a
// *CorruptError; a missing file returns an empty slice and no error.
func (s *Store[T]) LoadAll() ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open %s: %w", s.path, err)
	}
	defer f.Close()

	var records []T
	scanner := bufio.NewScanner(f)
	// Issue bodies can push a record well past the default 64KiB token size.
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		var record T
		if err := json.Unmarshal([]byte(text), &record); err != nil {
			return nil, &CorruptError{Path: s.path, Line: line, Err: err}
		}
		records = append(records, record)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}
	return records, nil
}
