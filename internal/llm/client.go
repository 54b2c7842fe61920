// Copyright (c) 2026 Snowq
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package llm provides the chat-completion client for the hosted Azure
// OpenAI deployment that powers the assistant. The client is constructed
// once at startup; construction failure is fatal to the process. Requests
// always run with temperature zero so answers are reproducible across runs.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	apperrors "snowq/cli/internal/errors"
	"snowq/cli/internal/metrics"
)

// Chat roles accepted by the completion service.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn of a chat completion conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Config carries the completion service settings.
type Config struct {
	// Endpoint is the resource base URL, e.g. https://myresource.openai.azure.com
	Endpoint string
	// APIKey authenticates requests via the api-key header
	APIKey string
	// Deployment names the hosted model deployment to call
	Deployment string
	// APIVersion selects the service API revision
	APIVersion string
	// Timeout bounds each completion request
	Timeout time.Duration
}

// validate checks that the config carries everything a request needs.
func (c Config) validate() error {
	if c.Endpoint == "" {
		return fmt.Errorf("AZURE_ENDPOINT is required")
	}
	if u, err := url.Parse(c.Endpoint); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("AZURE_ENDPOINT %q is not a valid URL", c.Endpoint)
	}
	if c.APIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required")
	}
	if c.Deployment == "" {
		return fmt.Errorf("AZURE_DEPLOYMENT_NAME is required")
	}
	return nil
}

// Client calls the hosted chat completion deployment.
type Client struct {
	// config has passed validate and is immutable from here on
	config Config
	// client enforces the request timeout
	client *http.Client
}

// New validates the configuration and builds the client. The temperature of
// every request is pinned to zero and is not configurable.
func New(cfg Config) (*Client, error) {
	if cfg.APIVersion == "" {
		cfg.APIVersion = "2024-02-01"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	if err := cfg.validate(); err != nil {
		return nil, apperrors.Wrap(apperrors.LLMInitFailed, "completion client configuration invalid", err)
	}
	cfg.Endpoint = strings.TrimRight(cfg.Endpoint, "/")

	return &Client{
		config: cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// completionRequest is the chat completions request body.
type completionRequest struct {
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
}

// completionResponse is the chat completions response body.
type completionResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Complete sends the conversation to the deployment and returns the first
// choice's content. Every call is counted in the process metrics.
func (c *Client) Complete(ctx context.Context, messages []Message) (string, error) {
	reply, err := c.complete(ctx, messages)
	metrics.ObserveLLMRequest(err)
	return reply, err
}

func (c *Client) complete(ctx context.Context, messages []Message) (string, error) {
	endpoint := fmt.Sprintf("%s/openai/deployments/%s/chat/completions?api-version=%s",
		c.config.Endpoint, url.PathEscape(c.config.Deployment), url.QueryEscape(c.config.APIVersion))

	reqBody := completionRequest{
		Messages:    messages,
		Temperature: 0,
	}
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", apperrors.Wrap(apperrors.LLMRequestFailed, "could not encode request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(jsonBody))
	if err != nil {
		return "", apperrors.Wrap(apperrors.LLMRequestFailed, "could not build request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", c.config.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", apperrors.Wrap(apperrors.LLMRequestFailed, "completion request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apperrors.Wrap(apperrors.LLMRequestFailed, "could not read response", err)
	}

	var out completionResponse
	if err := json.Unmarshal(body, &out); err != nil {
		if resp.StatusCode != http.StatusOK {
			return "", apperrors.New(apperrors.LLMRequestFailed,
				fmt.Sprintf("completion service returned %d: %s", resp.StatusCode, truncate(string(body), 200)))
		}
		return "", apperrors.Wrap(apperrors.LLMRequestFailed, "could not parse response", err)
	}

	if out.Error != nil {
		return "", apperrors.New(apperrors.LLMRequestFailed,
			fmt.Sprintf("completion service error %s: %s", out.Error.Code, out.Error.Message))
	}
	if resp.StatusCode != http.StatusOK {
		return "", apperrors.New(apperrors.LLMRequestFailed,
			fmt.Sprintf("completion service returned %d: %s", resp.StatusCode, truncate(string(body), 200)))
	}
	if len(out.Choices) == 0 {
		return "", apperrors.New(apperrors.LLMRequestFailed, "completion service returned no choices")
	}

	return out.Choices[0].Message.Content, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
