// Package llm provides one-shot completion clients for remote
// text-generation endpoints. Clients are pure request/response primitives:
// no retry, no streaming, no display. Retry policy belongs to the caller.
package llm

import "context"

// Client sends a composed prompt to a completion endpoint and returns the
// generated answer text. Complete blocks until a response or a classified
// failure arrives; the enforced HTTP timeout is the only cancellation bound
// beyond ctx.
type Client interface {
	Complete(ctx context.Context, prompt string, opts ...Option) (string, error)

	GetModel() string
}

type Settings struct {
	model       string  // model name
	temperature float64 // randomness (0.0 to 1.0)
	maxTokens   int     // maximum tokens to generate, 0 = endpoint default
	system      string  // system prompt
}

type Option func(*Settings)

// Common options for all completion providers
func WithModel(model string) Option {
	return func(s *Settings) { s.model = model }
}

func WithTemperature(temp float64) Option {
	return func(s *Settings) { s.temperature = temp }
}

func WithMaxTokens(tokens int) Option {
	return func(s *Settings) { s.maxTokens = tokens }
}

func WithSystemPrompt(prompt string) Option {
	return func(s *Settings) { s.system = prompt }
}

type Message struct {
	Role    string `json:"role"`    // "user", "assistant", "system"
	Content string `json:"content"` // the message content
}
