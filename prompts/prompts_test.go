package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamana29/almika/faq"
)

var sampleEntries = []faq.Entry{
	{Question: "How do I register?", Answer: "Through the portal."},
	{Question: "Where are past papers?", Answer: "In the library."},
}

func TestComposeAssistant(t *testing.T) {
	t.Run("deterministic for identical inputs", func(t *testing.T) {
		first, err := ComposeAssistant("What is osmosis?", sampleEntries, "")
		require.NoError(t, err)
		second, err := ComposeAssistant("What is osmosis?", sampleEntries, "")
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("faq entries rendered in dataset order", func(t *testing.T) {
		prompt, err := ComposeAssistant("What is osmosis?", sampleEntries, "")
		require.NoError(t, err)

		first := strings.Index(prompt, "Q: How do I register?\nA: Through the portal.")
		second := strings.Index(prompt, "Q: Where are past papers?\nA: In the library.")
		require.GreaterOrEqual(t, first, 0)
		require.Greater(t, second, first)
		assert.Contains(t, prompt, "Student: What is osmosis?")
		assert.True(t, strings.HasSuffix(prompt, "Answer:"))
	})

	t.Run("empty faq dataset still composes", func(t *testing.T) {
		prompt, err := ComposeAssistant("What is osmosis?", nil, "")
		require.NoError(t, err)
		assert.Contains(t, prompt, "Student: What is osmosis?")
	})

	t.Run("document text below limit included unmodified", func(t *testing.T) {
		doc := "Cells move water across membranes."
		prompt, err := ComposeAssistant("Summarize this.", sampleEntries, doc)
		require.NoError(t, err)

		assert.Contains(t, prompt, "Based on the following PDF content")
		assert.Contains(t, prompt, doc)
		assert.Contains(t, prompt, "Q: Summarize this.")
	})

	t.Run("document text truncated to exactly the limit", func(t *testing.T) {
		doc := strings.Repeat("a", DocumentContextLimit) + "TAIL"
		prompt, err := ComposeAssistant("Summarize this.", sampleEntries, doc)
		require.NoError(t, err)

		assert.Contains(t, prompt, strings.Repeat("a", DocumentContextLimit))
		assert.NotContains(t, prompt, "TAIL")
	})

	t.Run("no document means no grounding instruction", func(t *testing.T) {
		prompt, err := ComposeAssistant("What is osmosis?", sampleEntries, "")
		require.NoError(t, err)
		assert.NotContains(t, prompt, "Based on the following PDF content")
	})
}

func TestSupplementalPrompts(t *testing.T) {
	t.Run("explain topic lowercases level", func(t *testing.T) {
		prompt, err := ExplainTopic("Photosynthesis", "Beginner")
		require.NoError(t, err)
		assert.Contains(t, prompt, "Explain the topic 'Photosynthesis' at a beginner level")
	})

	t.Run("topic summary", func(t *testing.T) {
		prompt, err := TopicSummary("Photosynthesis")
		require.NoError(t, err)
		assert.Equal(t, "Give a 3-line summary of the topic 'Photosynthesis'.", prompt)
	})

	t.Run("topic quiz asks for json", func(t *testing.T) {
		prompt, err := TopicQuiz("Photosynthesis")
		require.NoError(t, err)
		assert.Contains(t, prompt, "3-question multiple-choice quiz")
		assert.Contains(t, prompt, "JSON array")
	})

	t.Run("homework help embeds question", func(t *testing.T) {
		prompt, err := HomeworkHelp("Solve x^2 = 4")
		require.NoError(t, err)
		assert.Contains(t, prompt, "step-by-step solution")
		assert.Contains(t, prompt, "Question: Solve x^2 = 4")
	})
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab", truncate("abcd", 2))
	// rune-aware: multi-byte characters count as one
	assert.Equal(t, "héll", truncate("héllo", 4))
}
