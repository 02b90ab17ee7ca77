// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// Tests for the Ollama structured-generation client.

package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testFormat = json.RawMessage(`{"type":"object","properties":{"option_number":{"type":"integer"}},"required":["option_number"]}`)

func TestNewOllamaClient_RequiresBaseURLAndModel(t *testing.T) {
	_, err := NewOllamaClient("", "llama3.2:3b")
	require.Error(t, err)

	_, err = NewOllamaClient("http://localhost:11434", "")
	require.Error(t, err)

	c, err := NewOllamaClient("http://localhost:11434/", "llama3.2:3b")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:11434", c.baseURL)
}

func TestGenerateStructured_RequestShape(t *testing.T) {
	var captured ollamaGenerateRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		json.NewEncoder(w).Encode(ollamaGenerateResponse{
			Response: `{"option_number":2}`,
			Done:     true,
		})
	}))
	defer server.Close()

	client, err := NewOllamaClient(server.URL, "llama3.2:3b")
	require.NoError(t, err)

	out, err := client.GenerateStructured(context.Background(),
		"Choose the best option.", testFormat, GenerationParams{})
	require.NoError(t, err)
	assert.Equal(t, `{"option_number":2}`, out)

	assert.Equal(t, "llama3.2:3b", captured.Model)
	assert.Equal(t, "Choose the best option.", captured.Prompt)
	assert.False(t, captured.Stream)
	assert.JSONEq(t, string(testFormat), string(captured.Format))
	// Temperature defaults to zero for deterministic choices.
	assert.EqualValues(t, 0, captured.Options["temperature"])
}

func TestGenerateStructured_ExplicitTemperature(t *testing.T) {
	var captured ollamaGenerateRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		json.NewEncoder(w).Encode(ollamaGenerateResponse{Response: "{}", Done: true})
	}))
	defer server.Close()

	client, err := NewOllamaClient(server.URL, "llama3.2:3b")
	require.NoError(t, err)

	temp := float32(0.7)
	_, err = client.GenerateStructured(context.Background(), "p", testFormat,
		GenerationParams{Temperature: &temp})
	require.NoError(t, err)
	assert.InDelta(t, 0.7, captured.Options["temperature"], 0.001)
}

func TestGenerateStructured_ModelNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"model 'missing:1b' not found"}`))
	}))
	defer server.Close()

	client, err := NewOllamaClient(server.URL, "missing:1b")
	require.NoError(t, err)

	_, err = client.GenerateStructured(context.Background(), "p", testFormat, GenerationParams{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ollama pull missing:1b")
}

func TestGenerateStructured_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("out of memory"))
	}))
	defer server.Close()

	client, err := NewOllamaClient(server.URL, "llama3.2:3b")
	require.NoError(t, err)

	_, err = client.GenerateStructured(context.Background(), "p", testFormat, GenerationParams{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestGenerateStructured_ConnectionRefused(t *testing.T) {
	// A server that is immediately closed guarantees a refused port.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client, err := NewOllamaClient(url, "llama3.2:3b")
	require.NoError(t, err)

	_, err = client.GenerateStructured(context.Background(), "p", testFormat, GenerationParams{})
	require.Error(t, err)
}
