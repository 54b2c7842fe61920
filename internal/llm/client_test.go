// Copyright (c) 2026 Snowq
// Licensed under the MIT License. See LICENSE file in the project root for details.

package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "snowq/cli/internal/errors"
)

// newMockCompletionServer creates a mock completion endpoint with a custom handler.
func newMockCompletionServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

// newTestClient builds a client pointed at the given mock server.
func newTestClient(t *testing.T, serverURL string) *Client {
	t.Helper()
	client, err := New(Config{
		Endpoint:   serverURL,
		APIKey:     "test-key",
		Deployment: "gpt-4o",
		APIVersion: "2024-02-01",
	})
	require.NoError(t, err)
	return client
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name:    "missing endpoint",
			cfg:     Config{APIKey: "k", Deployment: "d"},
			wantErr: "AZURE_ENDPOINT",
		},
		{
			name:    "malformed endpoint",
			cfg:     Config{Endpoint: "not a url", APIKey: "k", Deployment: "d"},
			wantErr: "not a valid URL",
		},
		{
			name:    "missing api key",
			cfg:     Config{Endpoint: "https://east.api.example.com", Deployment: "d"},
			wantErr: "OPENAI_API_KEY",
		},
		{
			name:    "missing deployment",
			cfg:     Config{Endpoint: "https://east.api.example.com", APIKey: "k"},
			wantErr: "AZURE_DEPLOYMENT_NAME",
		},
		{
			name: "complete config",
			cfg:  Config{Endpoint: "https://east.api.example.com", APIKey: "k", Deployment: "d"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := New(tt.cfg)
			if tt.wantErr == "" {
				require.NoError(t, err)
				require.NotNil(t, client)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Equal(t, apperrors.LLMInitFailed, apperrors.KindOf(err))
		})
	}
}

func TestCompleteSendsZeroTemperature(t *testing.T) {
	var captured completionRequest
	server := newMockCompletionServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/openai/deployments/gpt-4o/chat/completions", r.URL.Path)
		assert.Equal(t, "2024-02-01", r.URL.Query().Get("api-version"))
		assert.Equal(t, "test-key", r.Header.Get("api-key"))

		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": "SELECT 1"}},
			},
		})
	})

	client := newTestClient(t, server.URL)
	got, err := client.Complete(context.Background(), []Message{
		{Role: RoleSystem, Content: "You generate SQL."},
		{Role: RoleUser, Content: "count the orders"},
	})
	require.NoError(t, err)
	assert.Equal(t, "SELECT 1", got)

	assert.Zero(t, captured.Temperature)
	require.Len(t, captured.Messages, 2)
	assert.Equal(t, RoleSystem, captured.Messages[0].Role)
	assert.Equal(t, "count the orders", captured.Messages[1].Content)
}

func TestCompleteServiceError(t *testing.T) {
	server := newMockCompletionServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"code": "401", "message": "Access denied due to invalid subscription key"},
		})
	})

	client := newTestClient(t, server.URL)
	_, err := client.Complete(context.Background(), []Message{{Role: RoleUser, Content: "hi"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid subscription key")
	assert.Equal(t, apperrors.LLMRequestFailed, apperrors.KindOf(err))
}

func TestCompleteEmptyChoices(t *testing.T) {
	server := newMockCompletionServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	})

	client := newTestClient(t, server.URL)
	_, err := client.Complete(context.Background(), []Message{{Role: RoleUser, Content: "hi"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}

func TestNewDefaultsAPIVersion(t *testing.T) {
	client, err := New(Config{Endpoint: "https://east.api.example.com", APIKey: "k", Deployment: "d"})
	require.NoError(t, err)
	assert.Equal(t, "2024-02-01", client.config.APIVersion)
}
