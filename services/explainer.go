// Package services implements the study features that sit beside the chat
// panel: subject explanations, homework help, citations, and the academic
// calendar. Each service composes prompts and delegates generation to the
// completion client; none of them touch conversation history.
package services

import (
	"context"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"go.uber.org/zap"

	"github.com/gamana29/almika/llm"
	"github.com/gamana29/almika/prompts"
	"github.com/gamana29/almika/quiz"
)

// Explanation is the full subject-explainer result: the detailed
// explanation, a short summary, and a practice quiz parsed from model
// output.
type Explanation struct {
	Topic       string          `json:"topic"`
	Level       string          `json:"level"`
	Explanation string          `json:"explanation"`
	Summary     string          `json:"summary"`
	Quiz        []quiz.Question `json:"quiz,omitempty"`
}

type Explainer struct {
	client llm.Client
}

func NewExplainer(client llm.Client) *Explainer {
	return &Explainer{client: client}
}

// Explain generates an explanation of topic at the requested level, a
// three-line summary, and a practice quiz. The quiz is best-effort: if the
// model's quiz JSON cannot be parsed even after repair, the explanation is
// returned without one.
func (e *Explainer) Explain(ctx context.Context, topic, level string) (*Explanation, error) {
	explainPrompt, err := prompts.ExplainTopic(topic, level)
	if err != nil {
		return nil, err
	}
	explanation, err := e.client.Complete(ctx, explainPrompt)
	if err != nil {
		return nil, err
	}

	summaryPrompt, err := prompts.TopicSummary(topic)
	if err != nil {
		return nil, err
	}
	summary, err := e.client.Complete(ctx, summaryPrompt)
	if err != nil {
		return nil, err
	}

	result := &Explanation{
		Topic:       topic,
		Level:       level,
		Explanation: explanation,
		Summary:     summary,
	}

	quizPrompt, err := prompts.TopicQuiz(topic)
	if err != nil {
		return nil, err
	}
	rawQuiz, err := e.client.Complete(ctx, quizPrompt)
	if err != nil {
		return nil, err
	}

	questions, err := quiz.ParseGenerated(rawQuiz)
	if err != nil {
		logger.Error("Failed to parse generated quiz",
			zap.String("topic", topic), zap.Error(err))
	} else {
		result.Quiz = questions
	}

	return result, nil
}
