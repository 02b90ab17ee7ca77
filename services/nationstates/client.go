// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package nationstates is the client for the NationStates API: a
// retry-hardened transport plus typed operations for fetching issues,
// submitting answers, and capturing nation statistics.
package nationstates

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/time/rate"

	"github.com/AleutianAI/Statecraft/pkg/validation"
)

var tracer = otel.Tracer("statecraft.nationstates")

// DefaultBaseURL is the production API endpoint.
const DefaultBaseURL = "https://www.nationstates.net/cgi-bin/api.cgi"

// requestTimeout is the fixed per-request deadline. Exceeding it is
// treated the same as any other network failure.
const requestTimeout = 30 * time.Second

// bodySnippetLen bounds the response text captured into HTTPError.
const bodySnippetLen = 120

// HTTPClient allows injecting mock HTTP clients for testing.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientConfig configures a Client.
type ClientConfig struct {
	// BaseURL of the API. Defaults to DefaultBaseURL.
	BaseURL string

	// UserAgent identifies the operator; required by the API terms.
	UserAgent string

	// Nation is added to every request's query or form.
	Nation string

	// Password authenticates issue operations via the X-Password header.
	Password string

	// MaxRetries bounds attempts per request. Defaults to 3.
	MaxRetries int

	// SleepBetween paces successive requests. Zero disables pacing.
	SleepBetween time.Duration

	// HTTPClient overrides the default 30s-timeout client (tests).
	HTTPClient HTTPClient

	// Sleep overrides the backoff sleep between retries (tests).
	Sleep func(time.Duration)
}

// Client issues authenticated requests against the NationStates API
// with bounded retry and exponential backoff.
type Client struct {
	httpClient HTTPClient
	baseURL    string
	userAgent  string
	nation     string
	password   string
	maxRetries int
	limiter    *rate.Limiter
	sleep      func(time.Duration)
}

// Response is a completed 2xx API response.
type Response struct {
	StatusCode int
	Body       []byte
}

// NewClient validates the identity configuration and returns a Client.
//
// A missing or malformed User-Agent or nation name is rejected here:
// it is a deployment mistake, not something to rediscover per request.
func NewClient(cfg ClientConfig) (*Client, error) {
	if err := validation.ValidateUserAgent(cfg.UserAgent); err != nil {
		return nil, fmt.Errorf("invalid user agent: %w", err)
	}
	if err := validation.ValidateNation(cfg.Nation); err != nil {
		return nil, fmt.Errorf("invalid nation: %w", err)
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	baseURL = strings.TrimSuffix(baseURL, "/")

	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 3
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: requestTimeout}
	}

	sleep := cfg.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.SleepBetween > 0 {
		limiter = rate.NewLimiter(rate.Every(cfg.SleepBetween), 1)
	}

	slog.Info("Initializing NationStates client",
		"base_url", baseURL, "nation", cfg.Nation, "max_retries", maxRetries)

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		userAgent:  cfg.UserAgent,
		nation:     cfg.Nation,
		password:   cfg.Password,
		maxRetries: maxRetries,
		limiter:    limiter,
		sleep:      sleep,
	}, nil
}

// Send performs one API call with retry. GET when form is nil, POST
// otherwise. The User-Agent header is always set; extra headers come
// from headers.
//
// Each failed attempt is logged before the next retry. On exhaustion
// the last failure is returned as *NetworkError or *HTTPError.
func (c *Client) Send(ctx context.Context, params url.Values, headers map[string]string, form url.Values) (*Response, error) {
	method := http.MethodGet
	if form != nil {
		method = http.MethodPost
	}

	ctx, span := tracer.Start(ctx, "Client.Send")
	defer span.End()
	span.SetAttributes(
		attribute.String("http.method", method),
		attribute.Int("retry.budget", c.maxRetries),
	)

	if err := c.limiter.Wait(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, &NetworkError{Attempts: 0, Err: err}
	}

	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		resp, err := c.attempt(ctx, method, params, headers, form)
		if err == nil {
			span.SetAttributes(attribute.Int("retry.attempts", attempt+1))
			return resp, nil
		}
		lastErr = err

		switch e := err.(type) {
		case *HTTPError:
			slog.Warn("NationStates API returned an error",
				"status_code", e.Status, "body", e.Body,
				"attempt", attempt+1, "max_retries", c.maxRetries)
		default:
			slog.Warn("NationStates request failed",
				"error", err, "attempt", attempt+1, "max_retries", c.maxRetries)
		}

		if attempt < c.maxRetries-1 {
			c.sleep(time.Duration(1<<attempt) * time.Second)
		}
	}

	// Stamp the attempt count onto the final error.
	switch e := lastErr.(type) {
	case *HTTPError:
		e.Attempts = c.maxRetries
	case *NetworkError:
		e.Attempts = c.maxRetries
	}
	span.RecordError(lastErr)
	span.SetStatus(codes.Error, lastErr.Error())
	return nil, lastErr
}

// attempt performs a single request without retry.
func (c *Client) attempt(ctx context.Context, method string, params url.Values, headers map[string]string, form url.Values) (*Response, error) {
	var (
		req *http.Request
		err error
	)

	switch method {
	case http.MethodPost:
		body := form.Encode()
		req, err = http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewBufferString(body))
		if err == nil {
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		}
	default:
		target := c.baseURL
		if len(params) > 0 {
			target += "?" + params.Encode()
		}
		req, err = http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	}
	if err != nil {
		return nil, &NetworkError{Err: fmt.Errorf("failed to create request: %w", err)}
	}

	req.Header.Set("User-Agent", c.userAgent)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet := string(bodyBytes)
		// Rune-wise so the snippet never ends mid-character.
		if runes := []rune(snippet); len(runes) > bodySnippetLen {
			snippet = string(runes[:bodySnippetLen])
		}
		return nil, &HTTPError{Status: resp.StatusCode, Body: snippet}
	}

	return &Response{StatusCode: resp.StatusCode, Body: bodyBytes}, nil
}

// authHeaders returns the headers for password-authenticated calls.
func (c *Client) authHeaders() map[string]string {
	return map[string]string{"X-Password": c.password}
}
