// Package llm calls a chat-completion HTTP endpoint to generate commit
// messages and PR descriptions. Any OpenAI-compatible endpoint works.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dxcli/dx/internal/config"
)

// maxRetries is the number of additional attempts after a 5xx response.
const maxRetries = 2

// Client talks to a chat-completion endpoint.
type Client struct {
	httpClient *http.Client
	baseURL    string
	model      string
	token      string
}

// NewClient creates a client from config. Returns an error when the endpoint
// is not configured.
func NewClient(cfg config.LLMConfig) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("llm.base_url not configured (set it in ~/.config/dx/config.toml)")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("llm.model not configured")
	}
	return &Client{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		model:      cfg.Model,
		token:      cfg.Token(),
	}, nil
}

// Message is one chat message in the request body.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Complete sends a system/user message pair and returns the assistant reply.
// Retries on 5xx responses; 4xx responses fail immediately.
func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []Message{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := c.baseURL + "/chat/completions"
	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(time.Duration(attempt) * time.Second):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return "", fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		if c.token != "" {
			req.Header.Set("Authorization", "Bearer "+c.token)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			lastErr = err
			continue
		}

		respBody, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			lastErr = readErr
			continue
		}

		if resp.StatusCode >= 500 {
			lastErr = fmt.Errorf("endpoint returned %s", resp.Status)
			continue
		}

		var parsed chatResponse
		if err := json.Unmarshal(respBody, &parsed); err != nil {
			return "", fmt.Errorf("parse response: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			if parsed.Error != nil && parsed.Error.Message != "" {
				return "", fmt.Errorf("endpoint returned %s: %s", resp.Status, parsed.Error.Message)
			}
			return "", fmt.Errorf("endpoint returned %s", resp.Status)
		}
		if len(parsed.Choices) == 0 {
			return "", fmt.Errorf("endpoint returned no choices")
		}
		return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
	}

	return "", fmt.Errorf("chat completion failed after %d attempts: %w", maxRetries+1, lastErr)
}
