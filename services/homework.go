package services

import (
	"context"

	"github.com/gamana29/almika/llm"
	"github.com/gamana29/almika/prompts"
)

type HomeworkHelper struct {
	client llm.Client
}

func NewHomeworkHelper(client llm.Client) *HomeworkHelper {
	return &HomeworkHelper{client: client}
}

// StepByStep returns a detailed, teacher-style walkthrough of a homework
// question.
func (h *HomeworkHelper) StepByStep(ctx context.Context, question string) (string, error) {
	prompt, err := prompts.HomeworkHelp(question)
	if err != nil {
		return "", err
	}
	return h.client.Complete(ctx, prompt)
}
