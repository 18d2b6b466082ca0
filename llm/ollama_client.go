package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/ollama/ollama/api"
)

// OllamaClient runs completions against a local Ollama instance. It needs no
// API key, which makes it the convenient provider for offline development.
type OllamaClient struct {
	client *api.Client
	model  string
}

// NewOllamaClient connects using the standard OLLAMA_HOST environment
// configuration.
func NewOllamaClient(model string) (*OllamaClient, error) {
	client, err := api.ClientFromEnvironment()
	if err != nil {
		return nil, fmt.Errorf("creating ollama client: %w", err)
	}

	return &OllamaClient{
		client: client,
		model:  model,
	}, nil
}

func (c *OllamaClient) GetModel() string {
	return c.model
}

func (c *OllamaClient) Complete(ctx context.Context, prompt string, opts ...Option) (string, error) {
	settings := Settings{
		model:       c.model,
		temperature: 0.5,
	}

	for _, opt := range opts {
		opt(&settings)
	}

	messages := []api.Message{{Role: "user", Content: prompt}}
	if settings.system != "" {
		messages = append([]api.Message{{Role: "system", Content: settings.system}}, messages...)
	}

	options := map[string]any{"temperature": settings.temperature}
	if settings.maxTokens > 0 {
		options["num_predict"] = settings.maxTokens
	}

	stream := false
	request := &api.ChatRequest{
		Model:    settings.model,
		Messages: messages,
		Stream:   &stream,
		Options:  options,
	}

	var answer strings.Builder
	err := c.client.Chat(ctx, request, func(resp api.ChatResponse) error {
		answer.WriteString(resp.Message.Content)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	text := strings.TrimSpace(answer.String())
	if text == "" {
		return "", fmt.Errorf("%w: no content in response", ErrMalformedResponse)
	}

	return text, nil
}
