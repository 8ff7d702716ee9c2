package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(Options{APIKey: "test-key", BaseURL: server.URL, Model: "test-model"})
}

func completionReply(content string) string {
	return `{"choices":[{"message":{"content":` + mustJSON(content) + `}}]}`
}

func mustJSON(s string) string {
	data, _ := json.Marshal(s)
	return string(data)
}

func TestCompleteSendsPromptAndAuth(t *testing.T) {
	var got chatRequest
	var auth string

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/chat/completions", r.URL.Path)
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(completionReply("  {\"accion\":\"crear\"}  ")))
	})

	content, err := client.Complete(context.Background(), "you extract commands", "create Alpha", Params{Temperature: 0.1, MaxTokens: 500})
	require.NoError(t, err)
	require.Equal(t, `{"accion":"crear"}`, content, "reply is trimmed")

	require.Equal(t, "Bearer test-key", auth)
	require.Equal(t, "test-model", got.Model)
	require.Equal(t, 0.1, got.Temperature)
	require.Equal(t, 500, got.MaxTokens)
	require.Len(t, got.Messages, 2)
	require.Equal(t, "system", got.Messages[0].Role)
	require.Equal(t, "you extract commands", got.Messages[0].Content)
	require.Equal(t, "user", got.Messages[1].Role)
}

func TestCompleteRateLimited(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := client.Complete(context.Background(), "s", "u", Params{})
	require.ErrorIs(t, err, ErrRateLimited)
}

func TestCompleteUpstreamError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.Complete(context.Background(), "s", "u", Params{})
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrRateLimited)
}

func TestCompleteEmptyChoices(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	})

	_, err := client.Complete(context.Background(), "s", "u", Params{})
	require.ErrorIs(t, err, ErrEmptyResponse)
}

func TestCompleteAPIErrorBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"error":{"message":"model overloaded"}}`))
	})

	_, err := client.Complete(context.Background(), "s", "u", Params{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "model overloaded")
}

func TestNewClientDefaults(t *testing.T) {
	client := NewClient(Options{APIKey: "k"})
	require.Equal(t, DefaultBaseURL, client.baseURL)
	require.Equal(t, DefaultModel, client.model)
	require.Equal(t, DefaultTimeout, client.httpClient.Timeout)
}
