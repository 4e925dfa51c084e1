package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dxcli/dx/internal/config"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	t.Setenv("DX_TEST_LLM_TOKEN", "test-token")
	c, err := NewClient(config.LLMConfig{
		BaseURL:  srv.URL,
		Model:    "test-model",
		TokenEnv: "DX_TEST_LLM_TOKEN",
	})
	require.NoError(t, err)
	return c
}

func TestNewClient_Unconfigured(t *testing.T) {
	t.Parallel()

	_, err := NewClient(config.LLMConfig{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "base_url")

	_, err = NewClient(config.LLMConfig{BaseURL: "https://api.example.com/v1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model")
}

func TestComplete_Success(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req.Model)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.Equal(t, "user", req.Messages[1].Role)

		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "feat: add fan-out runner\n"}},
			},
		})
	})

	got, err := c.Complete(context.Background(), "sys", "user")
	require.NoError(t, err)
	assert.Equal(t, "feat: add fan-out runner", got)
}

func TestComplete_RetriesOn5xx(t *testing.T) {
	var calls atomic.Int32
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, "upstream hiccup", http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": "ok"}},
			},
		})
	})

	got, err := c.Complete(context.Background(), "sys", "user")
	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	assert.Equal(t, int32(2), calls.Load())
}

func TestComplete_FailsFastOn4xx(t *testing.T) {
	var calls atomic.Int32
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{"message": "invalid api key"},
		})
	})

	_, err := c.Complete(context.Background(), "sys", "user")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid api key")
	assert.Equal(t, int32(1), calls.Load(), "4xx must not be retried")
}

func TestComplete_NoChoices(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	})

	_, err := c.Complete(context.Background(), "sys", "user")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}

func TestSplitTitleBody(t *testing.T) {
	t.Parallel()

	t.Run("title and body", func(t *testing.T) {
		t.Parallel()
		title, body := SplitTitleBody("Add retry to importer\n\nThis PR adds retries.\n- one\n- two")
		assert.Equal(t, "Add retry to importer", title)
		assert.Equal(t, "This PR adds retries.\n- one\n- two", body)
	})

	t.Run("leading blank lines", func(t *testing.T) {
		t.Parallel()
		title, body := SplitTitleBody("\n\nJust a title")
		assert.Equal(t, "Just a title", title)
		assert.Empty(t, body)
	})

	t.Run("empty", func(t *testing.T) {
		t.Parallel()
		title, body := SplitTitleBody("   ")
		assert.Empty(t, title)
		assert.Empty(t, body)
	})
}

func TestPrompts(t *testing.T) {
	t.Parallel()

	t.Run("commit prompt includes diff", func(t *testing.T) {
		t.Parallel()
		_, user := CommitMessagePrompt("diff --git a/x b/x")
		assert.Contains(t, user, "diff --git a/x b/x")
	})

	t.Run("pr prompt includes commits", func(t *testing.T) {
		t.Parallel()
		_, user := PRDescriptionPrompt("diff", []string{"fix: a", "feat: b"})
		assert.Contains(t, user, "- fix: a")
		assert.Contains(t, user, "- feat: b")
	})

	t.Run("oversized diff truncated", func(t *testing.T) {
		t.Parallel()
		huge := strings.Repeat("x", maxDiffBytes+100)
		_, user := CommitMessagePrompt(huge)
		assert.Contains(t, user, "diff truncated")
		assert.Less(t, len(user), len(huge)+200)
	})
}
