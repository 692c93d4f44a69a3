package namegen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hanlabs/namegen-proxy/internal/diagnostics"
	"github.com/hanlabs/namegen-proxy/internal/errors"
	"github.com/hanlabs/namegen-proxy/internal/logger"
)

// ChatMessage is one turn of a chat-completions conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client calls the Zhipu GLM chat-completions endpoint. It records the
// latest call's HTTP status into the diagnostics recorder so the debug
// endpoints can report it.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	diag       *diagnostics.Recorder
	logger     *logger.Logger
}

func NewClient(baseURL, apiKey, model string, timeout time.Duration, diag *diagnostics.Recorder, logger *logger.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: timeout},
		diag:       diag,
		logger:     logger.WithComponent("zhipu_client"),
	}
}

// HasCredentials reports whether an API key is configured.
func (c *Client) HasCredentials() bool {
	return c.apiKey != ""
}

// ChatCompletionsURL returns the full upstream endpoint, used by the debug
// ping probe.
func (c *Client) ChatCompletionsURL() string {
	return c.baseURL + "/chat/completions"
}

// ChatCompletion issues a non-streaming completion and returns the first
// choice's content. Extended reasoning stays disabled so the model answers
// with plain JSON instead of thinking tokens.
func (c *Client) ChatCompletion(ctx context.Context, messages []ChatMessage, maxTokens int, temperature float64) (string, error) {
	payload := map[string]interface{}{
		"model":       c.model,
		"messages":    messages,
		"thinking":    map[string]string{"type": "disabled"},
		"stream":      false,
		"max_tokens":  maxTokens,
		"temperature": temperature,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.ChatCompletionsURL(), bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errors.ErrUpstreamCallFailed, err)
	}
	defer resp.Body.Close()

	c.diag.SetStatus(resp.StatusCode)

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read response: %v", errors.ErrUpstreamCallFailed, err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: upstream returned %d: %s", errors.ErrUpstreamCallFailed, resp.StatusCode, respBody)
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", errors.ErrUpstreamCallFailed, err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices in response", errors.ErrUpstreamCallFailed)
	}

	return result.Choices[0].Message.Content, nil
}
