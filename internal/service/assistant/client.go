package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	applog "github.com/netwify/api/internal/platform/logging"
	"github.com/netwify/api/internal/service/profile"
)

const (
	defaultBaseURL = "https://api.groq.com/openai/v1"
	defaultModel   = "llama-3.1-8b-instant"

	temperature = 0.7
	maxTokens   = 150
)

// Client implements Service against an OpenAI-compatible chat-completions
// API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	model      string
	apiKey     string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets a custom base URL (useful for testing).
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(url, "/")
	}
}

// WithModel overrides the completion model.
func WithModel(model string) Option {
	return func(c *Client) {
		c.model = model
	}
}

// NewClient creates a new chat-completions client.
func NewClient(httpClient *http.Client, apiKey string, opts ...Option) *Client {
	c := &Client{
		httpClient: httpClient,
		baseURL:    defaultBaseURL,
		model:      defaultModel,
		apiKey:     apiKey,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Chat-completions wire types (snake_case JSON matching the OpenAI API).

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (c *Client) Summarize(ctx context.Context, a, b *profile.Profile) (string, error) {
	prompt := fmt.Sprintf(
		"Summarize who this person is and why they matter professionally based on the meeting context.\n"+
			"Person A: %s (%s at %s). Bio: %s\n"+
			"Person B: %s (%s at %s). Bio: %s\n"+
			"Keep it to 2 sentences.",
		a.DisplayName, a.JobTitle, a.Company, a.Bio,
		b.DisplayName, b.JobTitle, b.Company, b.Bio,
	)
	system := "You are an expert at professional networking and identifying professional synergies between people."

	return c.complete(ctx, system, prompt)
}

func (c *Client) FollowUp(ctx context.Context, params FollowUpParams) (string, error) {
	meetingContext := params.Contact.AISummary
	if meetingContext == "" {
		meetingContext = "Recently connected on Netwify."
	}
	prompt := fmt.Sprintf(
		"Write a %s follow-up message suitable for %s. Keep it natural and professional.\n"+
			"From: %s (%s at %s)\n"+
			"To: %s (%s at %s)\n"+
			"Context/Summary: %s",
		params.Tone, params.Channel,
		params.Sender.DisplayName, params.Sender.JobTitle, params.Sender.Company,
		params.Contact.DisplayName, params.Contact.JobTitle, params.Contact.Company,
		meetingContext,
	)
	system := fmt.Sprintf("You are a helpful assistant drafting a %s networking message for %s.",
		params.Tone, params.Channel)

	return c.complete(ctx, system, prompt)
}

func (c *Client) complete(ctx context.Context, system, prompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: prompt},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("encoding completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling completion endpoint: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", c.errorFromResponse(ctx, resp)
	}

	var cr chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", fmt.Errorf("decoding completion response: %w", err)
	}
	if len(cr.Choices) == 0 {
		return "", &UpstreamError{Kind: UpstreamErrorKindUpstream, Status: resp.StatusCode, cause: errors.New("empty choices")}
	}

	return strings.TrimSpace(cr.Choices[0].Message.Content), nil
}

func (c *Client) errorFromResponse(ctx context.Context, resp *http.Response) error {
	retryAfter := strings.TrimSpace(resp.Header.Get("Retry-After"))

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return &UpstreamError{
			Kind:   UpstreamErrorKindUnauthorized,
			Status: resp.StatusCode,
			cause:  ErrUnauthorized,
		}
	case http.StatusTooManyRequests:
		applog.LogWarn(ctx, "assistant rate limit exceeded",
			zap.Int("status", resp.StatusCode),
			zap.String("Retry-After", retryAfter),
		)
		return &UpstreamError{
			Kind:       UpstreamErrorKindRateLimited,
			Status:     resp.StatusCode,
			RetryAfter: retryAfter,
			cause:      ErrRateLimited,
		}
	default:
		return &UpstreamError{
			Kind:   UpstreamErrorKindUpstream,
			Status: resp.StatusCode,
			cause:  ErrUpstream,
		}
	}
}

// Compile-time interface check
var _ Service = (*Client)(nil)
