// Package study exposes the explainer, homework helper, and exam-preparation
// quiz over HTTP/JSON.
package study

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gamana29/almika/llm"
	"github.com/gamana29/almika/quiz"
	"github.com/gamana29/almika/services"
)

// SessionHeader matches the chat handler's per-browser-session key, so one
// browser session shares chat state and quiz progress.
const SessionHeader = "X-Session-ID"

type Handler struct {
	explainer *services.Explainer
	homework  *services.HomeworkHelper
	bank      []quiz.Question

	mu      sync.Mutex
	quizzes map[string]*quiz.Quiz
}

func NewHandler(client llm.Client, bank []quiz.Question) *Handler {
	return &Handler{
		explainer: services.NewExplainer(client),
		homework:  services.NewHomeworkHelper(client),
		bank:      bank,
		quizzes:   make(map[string]*quiz.Quiz),
	}
}

func (h *Handler) quizFor(w http.ResponseWriter, r *http.Request) *quiz.Quiz {
	id := r.Header.Get(SessionHeader)

	h.mu.Lock()
	defer h.mu.Unlock()

	if id == "" {
		id = uuid.NewString()
	}
	q, ok := h.quizzes[id]
	if !ok {
		q = quiz.New(h.bank)
		h.quizzes[id] = q
	}

	w.Header().Set(SessionHeader, id)
	return q
}

type explainRequest struct {
	Topic string `json:"topic"`
	Level string `json:"level"`
}

func (h *Handler) HandleExplain(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req explainRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Topic == "" {
		http.Error(w, "Topic is required", http.StatusBadRequest)
		return
	}
	if req.Level == "" {
		req.Level = "beginner"
	}

	explanation, err := h.explainer.Explain(r.Context(), req.Topic, req.Level)
	if err != nil {
		writeCompletionError(w, err)
		return
	}

	writeJSON(w, explanation)
}

type homeworkRequest struct {
	Question string `json:"question"`
}

type homeworkResponse struct {
	Solution string `json:"solution"`
}

func (h *Handler) HandleHomework(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req homeworkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Question == "" {
		http.Error(w, "Question is required", http.StatusBadRequest)
		return
	}

	solution, err := h.homework.StepByStep(r.Context(), req.Question)
	if err != nil {
		writeCompletionError(w, err)
		return
	}

	writeJSON(w, homeworkResponse{Solution: solution})
}

type quizStateResponse struct {
	Question string   `json:"question,omitempty"`
	Choices  []string `json:"choices,omitempty"`
	Number   int      `json:"number,omitempty"`
	Score    int      `json:"score"`
	Total    int      `json:"total"`
	Finished bool     `json:"finished"`
}

// HandleQuiz returns the current question without its answer, or the final
// score once the quiz is finished.
func (h *Handler) HandleQuiz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	q := h.quizFor(w, r)
	resp := quizStateResponse{
		Score:    q.Score(),
		Total:    q.Total(),
		Finished: q.Finished(),
	}
	if current, ok := q.Current(); ok {
		resp.Question = current.Prompt
		resp.Choices = current.Choices
		resp.Number = q.Index() + 1
	}
	writeJSON(w, resp)
}

type quizAnswerRequest struct {
	Answer string `json:"answer"`
}

type quizAnswerResponse struct {
	Correct  bool   `json:"correct"`
	Expected string `json:"expected"`
	Score    int    `json:"score"`
	Total    int    `json:"total"`
	Finished bool   `json:"finished"`
}

func (h *Handler) HandleQuizAnswer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req quizAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	q := h.quizFor(w, r)
	correct, expected, err := q.Submit(req.Answer)
	if err != nil {
		http.Error(w, "Quiz is finished", http.StatusConflict)
		return
	}

	writeJSON(w, quizAnswerResponse{
		Correct:  correct,
		Expected: expected,
		Score:    q.Score(),
		Total:    q.Total(),
		Finished: q.Finished(),
	})
}

func (h *Handler) HandleQuizRestart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	q := h.quizFor(w, r)
	q.Restart()
	w.WriteHeader(http.StatusNoContent)
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
	}

	logger.Error("Completion failed", zap.Error(err))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse{Error: message, Retryable: true})
}
