// Package llm talks to the OpenAI chat-completions API and provides the
// deterministic offline fallback used when no API key is configured.
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
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	requestTimeout = 25 * time.Second
)

// ErrTimeout is returned when the upstream call exceeds the request timeout.
var ErrTimeout = errors.New("openai request timed out")

// Message is one turn of the conversation history. Client-side roles
// ("coach") are normalized before being sent upstream.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Profile carries the optional client profile injected into the system
// prompt.
type Profile struct {
	Age       *int     `json:"age,omitempty"`
	HeightCm  *float64 `json:"heightCm,omitempty"`
	WeightKg  *float64 `json:"weightKg,omitempty"`
	Objective string   `json:"objective,omitempty"`
	Prefs     []string `json:"prefs,omitempty"`
}

// Reply is the outcome of a completion, from either the API or the mock.
type Reply struct {
	Reply  string
	Model  string
	Tokens *int
	From   string
}

// Client is a minimal chat-completions client.
type Client struct {
	apiKey  string
	model   string
	baseURL string
	httpc   *http.Client
}

// NewClient creates a client for the given API key and model.
func NewClient(apiKey, model string) *Client {
	return &Client{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultBaseURL,
		httpc:   &http.Client{},
	}
}

// WithBaseURL overrides the API endpoint, for tests.
func (c *Client) WithBaseURL(url string) *Client {
	c.baseURL = strings.TrimRight(url, "/")
	return c
}

type chatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

type chatResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
	Usage struct {
		TotalTokens int `json:"total_tokens"`
	} `json:"usage"`
}

// Complete performs a single-shot completion with the system prompt built
// from the profile, the normalized history, and the user message.
func (c *Client) Complete(ctx context.Context, message string, history []Message, profile *Profile) (*Reply, error) {
	if c.apiKey == "" {
		return nil, errors.New("openai api key is required")
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	payload := chatRequest{
		Model:    c.model,
		Messages: buildMessages(message, history, profile),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpc.Do(req)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, ErrTimeout
		}
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("openai api error (%d): %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode openai response: %w", err)
	}

	if len(parsed.Choices) == 0 {
		return nil, errors.New("openai response has no choices")
	}
	reply := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if reply == "" {
		return nil, errors.New("openai response has empty content")
	}

	model := parsed.Model
	if model == "" {
		model = c.model
	}
	var tokens *int
	if parsed.Usage.TotalTokens > 0 {
		t := parsed.Usage.TotalTokens
		tokens = &t
	}

	return &Reply{Reply: reply, Model: model, Tokens: tokens, From: "openai"}, nil
}
