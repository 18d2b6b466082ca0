// Package suggest derives advisory UI content from prior questions: light
// follow-up suggestions and study tips. Selection is intentionally
// non-deterministic, with the randomness source injectable so tests can fix
// the seed. Suggester and Tips are safe for concurrent use.
package suggest

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"
)

// ClosingSuggestion is always the final element of a suggestion list.
const ClosingSuggestion = "Can you show examples?"

// minTokenLength filters out short filler words ("is", "of", "the").
const minTokenLength = 4

type Suggester struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSuggester builds a suggester over rng. A nil rng gets a time-seeded
// source for production use.
func NewSuggester(rng *rand.Rand) *Suggester {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Suggester{rng: rng}
}

// Suggest derives up to three follow-up questions from the words of a prior
// question: punctuation-stripped lowercase tokens longer than three
// characters, shuffled, the first two rendered as explain-more questions,
// and the constant closing suggestion appended last.
func (s *Suggester) Suggest(question string) []string {
	var keywords []string
	for _, word := range strings.Fields(question) {
		token := strings.ToLower(strings.Trim(word, "?.,"))
		if len(token) >= minTokenLength {
			keywords = append(keywords, token)
		}
	}

	// rand.Rand is not safe for concurrent use; one suggester is shared
	// across all browser sessions.
	s.mu.Lock()
	s.rng.Shuffle(len(keywords), func(i, j int) {
		keywords[i], keywords[j] = keywords[j], keywords[i]
	})
	s.mu.Unlock()

	if len(keywords) > 2 {
		keywords = keywords[:2]
	}

	suggestions := make([]string, 0, len(keywords)+1)
	for _, kw := range keywords {
		suggestions = append(suggestions, fmt.Sprintf("Can you explain more about %s?", kw))
	}
	return append(suggestions, ClosingSuggestion)
}
