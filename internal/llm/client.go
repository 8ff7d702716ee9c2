// Package llm provides the client for the language-model collaborator
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/logbookhq/logbook/internal/logger"
)

// DefaultBaseURL is the default chat-completions API base
const DefaultBaseURL = "https://api.openai.com/v1"

// DefaultModel is the extraction model used when none is configured
const DefaultModel = "gpt-4o-mini"

// DefaultTimeout bounds a single completion call. Calls are single-shot and
// never retried here; the engine surfaces failures to the user.
const DefaultTimeout = 60 * time.Second

// Client errors
var (
	// ErrRateLimited indicates the API rejected the call with HTTP 429
	ErrRateLimited = errors.New("rate limited by the language model API")
	// ErrEmptyResponse indicates the API returned no choices
	ErrEmptyResponse = errors.New("empty response from the language model API")
)

// Options contains configuration options for the completion client
type Options struct {
	// APIKey is the bearer token for the API
	APIKey string
	// BaseURL overrides the API base, mainly for tests
	BaseURL string
	// Model is the chat model to use
	Model string
	// Timeout is the per-call HTTP timeout
	Timeout time.Duration
}

// Client calls a chat-completions API. It is safe for concurrent use.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

// Params tunes a single completion call
type Params struct {
	Temperature float64
	MaxTokens   int
}

// NewClient creates a new completion client with the given options
func NewClient(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Model == "" {
		opts.Model = DefaultModel
	}
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}
	return &Client{
		apiKey:     opts.APIKey,
		baseURL:    strings.TrimSuffix(opts.BaseURL, "/"),
		model:      opts.Model,
		httpClient: &http.Client{Timeout: opts.Timeout},
	}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
	Messages    []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Complete sends a system and user prompt and returns the model's raw text
// reply. The reply is untrusted: callers must tolerate markdown fencing and
// partial schema adherence.
func (c *Client) Complete(ctx context.Context, system, user string, params Params) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:       c.model,
		Temperature: params.Temperature,
		MaxTokens:   params.MaxTokens,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling completion API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return "", ErrRateLimited
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("completion API returned %s", resp.Status)
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("parsing completion response: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("completion API error: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return "", ErrEmptyResponse
	}

	content := strings.TrimSpace(parsed.Choices[0].Message.Content)
	logger.Debugf("completion response size=%d", len(content))
	return content, nil
}
