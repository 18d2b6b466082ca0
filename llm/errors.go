package llm

import "errors"

// Completion failures are classified so the session layer can decide what is
// user-visible and retryable. Match with errors.Is.
var (
	// ErrNetwork covers transport failures: connection refused, DNS
	// failure, timeout, and unexpected server-side statuses.
	ErrNetwork = errors.New("llm: network failure")

	// ErrAuth means the endpoint rejected the credentials.
	ErrAuth = errors.New("llm: authorization rejected")

	// ErrRateLimited means the endpoint signalled throttling.
	ErrRateLimited = errors.New("llm: rate limited")

	// ErrMalformedResponse means the response could not be parsed into the
	// expected answer shape.
	ErrMalformedResponse = errors.New("llm: malformed response")
)
