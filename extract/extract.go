// Package extract talks to the external text-extraction service that turns
// uploaded documents into plain text. The core never parses documents
// itself; it only forwards bytes and consumes the extracted text.
package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Extractor returns extracted plain text (newline-joined per page or
// segment) for a binary document payload.
type Extractor interface {
	Extract(ctx context.Context, data []byte, filename string) (string, error)
}

// ServiceExtractor calls an extraction service over HTTP.
type ServiceExtractor struct {
	serviceURL string
	client     *http.Client
}

func NewServiceExtractor(serviceURL string) *ServiceExtractor {
	return &ServiceExtractor{
		serviceURL: serviceURL,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// extractResponse is the extraction service response format.
type extractResponse struct {
	Text  string `json:"text"`
	Pages int    `json:"pages"`
	Error string `json:"error,omitempty"`
}

// Extract posts the document bytes and returns the extracted text.
func (e *ServiceExtractor) Extract(ctx context.Context, data []byte, filename string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "POST", e.serviceURL+"/extract", bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	req.Header.Set("X-Filename", filename)

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling extraction service: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("extraction service returned status %d", resp.StatusCode)
	}

	var result extractResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}

	if result.Error != "" {
		return "", fmt.Errorf("extraction error: %s", result.Error)
	}

	return result.Text, nil
}
