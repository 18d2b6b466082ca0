package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const openRouterURL = "https://openrouter.ai/api/v1/chat/completions"

// defaultTimeout bounds a completion round trip. On expiry the failure
// surfaces as ErrNetwork.
const defaultTimeout = 20 * time.Second

type OpenRouterClient struct {
	apiKey     string
	httpClient *http.Client
	url        string
	model      string
}

// NewOpenRouterClient builds a client for the OpenRouter chat completions
// endpoint. The credential comes from the OPENROUTER_API_KEY environment
// variable, never from source text.
func NewOpenRouterClient(model string) (*OpenRouterClient, error) {
	apiKey := os.Getenv("OPENROUTER_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("OPENROUTER_API_KEY environment variable is not set")
	}

	return &OpenRouterClient{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: defaultTimeout},
		url:        openRouterURL,
		model:      model,
	}, nil
}

func (c *OpenRouterClient) GetModel() string {
	return c.model
}

func (c *OpenRouterClient) Complete(ctx context.Context, prompt string, opts ...Option) (string, error) {
	settings := Settings{
		model:       c.model,
		temperature: 0.5,
	}

	// Apply options
	for _, opt := range opts {
		opt(&settings)
	}

	request := openRouterRequest{
		Model:       settings.model,
		Messages:    []Message{{Role: "user", Content: prompt}},
		Temperature: settings.temperature,
		MaxTokens:   settings.maxTokens,
	}

	// OpenRouter takes the system prompt as a leading system message
	if settings.system != "" {
		systemMsg := Message{Role: "system", Content: settings.system}
		request.Messages = append([]Message{systemMsg}, request.Messages...)
	}

	jsonData, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("error marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("error creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: reading body: %v", ErrNetwork, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return "", fmt.Errorf("%w: status %d: %s", ErrAuth, resp.StatusCode, string(body))
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", fmt.Errorf("%w: status %d: %s", ErrRateLimited, resp.StatusCode, string(body))
	case resp.StatusCode != http.StatusOK:
		return "", fmt.Errorf("%w: status %d: %s", ErrNetwork, resp.StatusCode, string(body))
	}

	var response openRouterResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	if len(response.Choices) == 0 || response.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("%w: no content in response", ErrMalformedResponse)
	}

	return strings.TrimSpace(response.Choices[0].Message.Content), nil
}

type openRouterRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

// openRouterResponse is the OpenAI-shaped completion response. Only
// choices[0].message.content is consumed.
type openRouterResponse struct {
	Choices []openRouterChoice `json:"choices"`
}

type openRouterChoice struct {
	Message Message `json:"message"`
}
