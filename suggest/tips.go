package suggest

import (
	"math/rand"
	"sync"
	"time"
)

// studyTips is the rotating banner content shown above the chat panel.
var studyTips = []string{
	"Tip: Break your study into 25-minute sprints (Pomodoro).",
	"Concept > Memorization. Understand the 'why'!",
	"Rephrase problems in your own words to understand them better.",
	"Review summaries before deep study.",
	"Practice spaced repetition for better memory retention.",
}

type Tips struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewTips(rng *rand.Rand) *Tips {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Tips{rng: rng}
}

// Pick returns one study tip at random.
func (t *Tips) Pick() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return studyTips[t.rng.Intn(len(studyTips))]
}
