// Package citation exposes the reference generator over HTTP/JSON.
package citation

import (
	"encoding/json"
	"net/http"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"go.uber.org/zap"

	"github.com/gamana29/almika/services"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

type formatRequest struct {
	Style   string `json:"style"`
	Author  string `json:"author"`
	Title   string `json:"title"`
	Journal string `json:"journal"`
	Year    string `json:"year"`
	DOI     string `json:"doi,omitempty"`
}

type formatResponse struct {
	Style    string `json:"style"`
	Citation string `json:"citation"`
}

func (h *Handler) HandleFormat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req formatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	citation, err := services.Format(services.CitationStyle(req.Style), services.Citation{
		Author:  req.Author,
		Title:   req.Title,
		Journal: req.Journal,
		Year:    req.Year,
		DOI:     req.DOI,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(formatResponse{Style: req.Style, Citation: citation}); err != nil {
		logger.Error("Failed to encode response", zap.Error(err))
	}
}
