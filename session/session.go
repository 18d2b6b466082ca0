// Package session owns the conversation state for one active user: the
// ordered in-memory history, the login identity, and the current document
// context. A Session is an explicit value, not process-wide state, so one
// process can serve many sessions.
//
// A Session is not safe for concurrent use. Callers must serialize
// operations: one ask completes (persist or fail) before the next begins.
// Persisted records are last-writer-wins across sessions sharing an
// identity.
package session

import (
	"context"
	"errors"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"go.uber.org/zap"

	"github.com/gamana29/almika/faq"
	"github.com/gamana29/almika/llm"
	"github.com/gamana29/almika/memory"
	"github.com/gamana29/almika/prompts"
)

// State is the login state of a session.
type State int

const (
	Anonymous State = iota
	Identified
)

// ErrEmptyQuestion rejects an ask with no question text.
var ErrEmptyQuestion = errors.New("session: empty question")

type Session struct {
	client  llm.Client
	store   *memory.Store
	entries []faq.Entry

	identity string
	history  []memory.Turn
	document string
}

// New returns an anonymous session with empty history.
func New(client llm.Client, store *memory.Store, entries []faq.Entry) *Session {
	return &Session{
		client:  client,
		store:   store,
		entries: entries,
	}
}

func (s *Session) State() State {
	if s.identity == "" {
		return Anonymous
	}
	return Identified
}

func (s *Session) Identity() string {
	return s.identity
}

// Login transitions the session to Identified and replaces the in-memory
// history with the identity's persisted record. Any history accumulated
// while anonymous is discarded, not merged. On failure the prior state is
// kept untouched.
//
// Login performs no credential verification. The gate is cosmetic, a
// documented non-security property of this application.
func (s *Session) Login(identity string) error {
	if err := memory.ValidateIdentity(identity); err != nil {
		return err
	}

	loaded, err := s.store.Load(identity)
	if err != nil {
		return err
	}

	s.identity = identity
	s.history = loaded
	return nil
}

// Logout returns the session to Anonymous with an empty history. The last
// save remains the identity's durable record; logout itself persists
// nothing.
func (s *Session) Logout() {
	s.identity = ""
	s.history = nil
}

// SetDocument replaces the session's document context wholesale. Existing
// history is unaffected.
func (s *Session) SetDocument(text string) {
	s.document = text
}

func (s *Session) Document() string {
	return s.document
}

// Ask composes a prompt from the FAQ dataset, the current document context,
// and question, sends it to the completion endpoint, and appends the
// resulting turn. When the session is Identified, the full history is
// persisted after the append.
//
// On completion failure nothing is appended or persisted; the classified
// error is returned so the caller can offer a retry with the same question.
func (s *Session) Ask(ctx context.Context, question string) (memory.Turn, error) {
	if question == "" {
		return memory.Turn{}, ErrEmptyQuestion
	}

	prompt, err := prompts.ComposeAssistant(question, s.entries, s.document)
	if err != nil {
		return memory.Turn{}, err
	}

	answer, err := s.client.Complete(ctx, prompt)
	if err != nil {
		return memory.Turn{}, err
	}

	turn := memory.Turn{Question: question, Answer: answer}
	s.history = append(s.history, turn)

	if s.identity != "" {
		// The answer was already produced; a failed save loses only
		// durability, so log it and keep the turn.
		if err := s.store.Save(s.identity, s.history); err != nil {
			logger.Error("Failed to save history",
				zap.String("identity", s.identity), zap.Error(err))
		}
	}

	return turn, nil
}

// History returns the ordered turns for display. The slice is a copy; the
// session keeps exclusive ownership of its history.
func (s *Session) History() []memory.Turn {
	out := make([]memory.Turn, len(s.history))
	copy(out, s.history)
	return out
}
