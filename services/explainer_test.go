package services

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamana29/almika/llm"
)

// scriptedClient answers each prompt by matching on its content.
type scriptedClient struct {
	answer func(prompt string) (string, error)
}

func (s *scriptedClient) Complete(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return s.answer(prompt)
}

func (s *scriptedClient) GetModel() string { return "scripted-model" }

func TestExplainer_Explain(t *testing.T) {
	client := &scriptedClient{answer: func(prompt string) (string, error) {
		switch {
		case strings.Contains(prompt, "3-line summary"):
			return "A short summary.", nil
		case strings.Contains(prompt, "multiple-choice quiz"):
			return `[{"question":"What powers photosynthesis?","choices":["Light","Sound"],"answer":"Light"}]`, nil
		default:
			return "A long explanation with examples.", nil
		}
	}}

	explainer := NewExplainer(client)
	result, err := explainer.Explain(context.Background(), "Photosynthesis", "Beginner")
	require.NoError(t, err)

	assert.Equal(t, "Photosynthesis", result.Topic)
	assert.Equal(t, "A long explanation with examples.", result.Explanation)
	assert.Equal(t, "A short summary.", result.Summary)
	require.Len(t, result.Quiz, 1)
	assert.Equal(t, "Light", result.Quiz[0].Answer)
}

func TestExplainer_UnparseableQuizIsBestEffort(t *testing.T) {
	client := &scriptedClient{answer: func(prompt string) (string, error) {
		if strings.Contains(prompt, "multiple-choice quiz") {
			return "Sorry, I cannot produce a quiz today.", nil
		}
		return "content", nil
	}}

	explainer := NewExplainer(client)
	result, err := explainer.Explain(context.Background(), "Photosynthesis", "Beginner")
	require.NoError(t, err)
	assert.Empty(t, result.Quiz)
}

func TestExplainer_CompletionFailurePropagates(t *testing.T) {
	client := &scriptedClient{answer: func(prompt string) (string, error) {
		return "", fmt.Errorf("%w: try later", llm.ErrRateLimited)
	}}

	explainer := NewExplainer(client)
	_, err := explainer.Explain(context.Background(), "Photosynthesis", "Beginner")
	assert.ErrorIs(t, err, llm.ErrRateLimited)
}

func TestHomeworkHelper_StepByStep(t *testing.T) {
	client := &scriptedClient{answer: func(prompt string) (string, error) {
		if !strings.Contains(prompt, "Question: Solve x^2 = 4") {
			return "", fmt.Errorf("unexpected prompt: %s", prompt)
		}
		return "Step 1: take square roots.", nil
	}}

	helper := NewHomeworkHelper(client)
	solution, err := helper.StepByStep(context.Background(), "Solve x^2 = 4")
	require.NoError(t, err)
	assert.Equal(t, "Step 1: take square roots.", solution)
}
