// Package chat exposes the conversation core over HTTP/JSON for the browser
// UI. Each browser session is identified by an X-Session-ID header and maps
// to one session.Session; the handler serializes access per session, which
// is the mutual-exclusion boundary the core requires.
package chat

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sync"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gamana29/almika/extract"
	"github.com/gamana29/almika/faq"
	"github.com/gamana29/almika/llm"
	"github.com/gamana29/almika/memory"
	"github.com/gamana29/almika/session"
	"github.com/gamana29/almika/suggest"
)

// SessionHeader carries the per-browser-session key.
const SessionHeader = "X-Session-ID"

// maxDocumentUpload bounds document uploads to 16 MiB.
const maxDocumentUpload = 16 << 20

type Handler struct {
	client    llm.Client
	store     *memory.Store
	entries   []faq.Entry
	extractor extract.Extractor
	suggester *suggest.Suggester
	tips      *suggest.Tips

	mu       sync.Mutex
	sessions map[string]*sessionState
}

// sessionState pairs a session with its own lock so concurrent requests for
// the same browser session are serialized without blocking other sessions.
type sessionState struct {
	mu   sync.Mutex
	sess *session.Session
}

func NewHandler(client llm.Client, store *memory.Store, entries []faq.Entry, extractor extract.Extractor) *Handler {
	return &Handler{
		client:    client,
		store:     store,
		entries:   entries,
		extractor: extractor,
		suggester: suggest.NewSuggester(nil),
		tips:      suggest.NewTips(nil),
		sessions:  make(map[string]*sessionState),
	}
}

// state returns the session for the request, creating one when the header is
// absent or unknown, and echoes the session ID on the response.
func (h *Handler) state(w http.ResponseWriter, r *http.Request) *sessionState {
	id := r.Header.Get(SessionHeader)

	h.mu.Lock()
	defer h.mu.Unlock()

	if id == "" {
		id = uuid.NewString()
	}
	st, ok := h.sessions[id]
	if !ok {
		st = &sessionState{sess: session.New(h.client, h.store, h.entries)}
		h.sessions[id] = st
	}

	w.Header().Set(SessionHeader, id)
	return st
}

type askRequest struct {
	Question string `json:"question"`
}

type askResponse struct {
	Question    string   `json:"question"`
	Answer      string   `json:"answer"`
	Suggestions []string `json:"suggestions"`
	Tip         string   `json:"tip"`
}

// HandleAsk runs one question/answer round trip. A failed completion leaves
// the history unchanged and reports a retryable failure; the client may
// resubmit the same question.
func (h *Handler) HandleAsk(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Question == "" {
		http.Error(w, "Question is required", http.StatusBadRequest)
		return
	}

	st := h.state(w, r)
	st.mu.Lock()
	turn, err := st.sess.Ask(r.Context(), req.Question)
	st.mu.Unlock()
	if err != nil {
		writeCompletionError(w, err)
		return
	}

	writeJSON(w, askResponse{
		Question:    turn.Question,
		Answer:      turn.Answer,
		Suggestions: h.suggester.Suggest(turn.Question),
		Tip:         h.tips.Pick(),
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Identity string        `json:"identity"`
	History  []memory.Turn `json:"history"`
}

// HandleLogin is the cosmetic login gate: both fields must be non-empty, but
// no credential is verified. On success the session's history is replaced by
// the identity's persisted record.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Password == "" {
		http.Error(w, "Please enter both email and password", http.StatusBadRequest)
		return
	}

	st := h.state(w, r)
	st.mu.Lock()
	defer st.mu.Unlock()

	if err := st.sess.Login(req.Email); err != nil {
		if errors.Is(err, memory.ErrInvalidIdentity) {
			http.Error(w, "Invalid email address", http.StatusBadRequest)
			return
		}
		logger.Error("Login failed", zap.String("identity", req.Email), zap.Error(err))
		http.Error(w, "Could not load chat history", http.StatusInternalServerError)
		return
	}

	writeJSON(w, loginResponse{
		Identity: st.sess.Identity(),
		History:  st.sess.History(),
	})
}

func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	st := h.state(w, r)
	st.mu.Lock()
	st.sess.Logout()
	st.mu.Unlock()

	w.WriteHeader(http.StatusNoContent)
}

type historyResponse struct {
	Identity string        `json:"identity,omitempty"`
	History  []memory.Turn `json:"history"`
}

func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	st := h.state(w, r)
	st.mu.Lock()
	resp := historyResponse{
		Identity: st.sess.Identity(),
		History:  st.sess.History(),
	}
	st.mu.Unlock()

	writeJSON(w, resp)
}

type documentResponse struct {
	Characters int `json:"characters"`
}

// HandleDocument accepts a binary document upload, extracts its text via the
// extraction service, and replaces the session's document context wholesale.
func (h *Handler) HandleDocument(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	// Read one byte past the limit so an oversize body is rejected rather
	// than silently clipped.
	data, err := io.ReadAll(io.LimitReader(r.Body, maxDocumentUpload+1))
	if err != nil {
		http.Error(w, "Could not read upload", http.StatusBadRequest)
		return
	}
	if len(data) == 0 {
		http.Error(w, "Empty upload", http.StatusBadRequest)
		return
	}
	if len(data) > maxDocumentUpload {
		http.Error(w, "Document too large", http.StatusRequestEntityTooLarge)
		return
	}

	text, err := h.extractor.Extract(r.Context(), data, r.Header.Get("X-Filename"))
	if err != nil {
		logger.Error("Document extraction failed", zap.Error(err))
		http.Error(w, "Could not extract document text", http.StatusBadGateway)
		return
	}

	st := h.state(w, r)
	st.mu.Lock()
	st.sess.SetDocument(text)
	st.mu.Unlock()

	writeJSON(w, documentResponse{Characters: len(text)})
}

// HandleExport streams a zip snapshot of every persisted history record.
func (h *Handler) HandleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", `attachment; filename="all_chats.zip"`)
	if err := h.store.ExportArchive(w); err != nil {
		logger.Error("Chat export failed", zap.Error(err))
	}
}

func requirePost(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to encode response", zap.Error(err))
	}
}

type errorResponse struct {
	Error     string `json:"error"`
	Retryable bool   `json:"retryable"`
}

// writeCompletionError maps classified completion failures to statuses. All
// of them are retryable from the user's point of view: the question text
// stays available for resubmission.
func writeCompletionError(w http.ResponseWriter, err error) {
	status := http.StatusBadGateway
	message := "The assistant is unreachable right now. Please try again."

	switch {
	case errors.Is(err, llm.ErrRateLimited):
		status = http.StatusTooManyRequests
		message = "The assistant is busy. Please try again in a moment."
	case errors.Is(err, llm.ErrAuth):
		message = "The assistant rejected our credentials. Please contact support."
	case errors.Is(err, llm.ErrMalformedResponse):
		message = "The assistant returned an unreadable answer. Please try again."
	case errors.Is(err, session.ErrEmptyQuestion):
		status = http.StatusBadRequest
		message = "Question is required"
	}

	logger.Error("Completion failed", zap.Error(err))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse{Error: message, Retryable: status != http.StatusBadRequest})
}
