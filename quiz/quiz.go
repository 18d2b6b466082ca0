// Package quiz implements the exam-preparation mode: a fixed question bank,
// a small answer/score state machine, and a lenient parser for quizzes
// generated by the completion model.
package quiz

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Question is one multiple-choice (or short-answer) quiz item.
type Question struct {
	Prompt  string   `json:"question" yaml:"question"`
	Choices []string `json:"choices,omitempty" yaml:"choices,omitempty"`
	Answer  string   `json:"answer" yaml:"answer"`
}

// LoadBank reads the quiz question bank from a YAML file.
func LoadBank(path string) ([]Question, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading quiz bank: %w", err)
	}

	var questions []Question
	if err := yaml.Unmarshal(data, &questions); err != nil {
		return nil, fmt.Errorf("parsing quiz bank: %w", err)
	}

	if len(questions) == 0 {
		return nil, fmt.Errorf("quiz bank %s is empty", path)
	}
	return questions, nil
}

// Quiz walks a question list once, counting correct answers. Like a
// Session, a Quiz is single-caller state.
type Quiz struct {
	questions []Question
	index     int
	score     int
}

func New(questions []Question) *Quiz {
	return &Quiz{questions: questions}
}

// Current returns the question awaiting an answer, or false when the quiz
// is finished.
func (q *Quiz) Current() (Question, bool) {
	if q.index >= len(q.questions) {
		return Question{}, false
	}
	return q.questions[q.index], true
}

// Submit grades answer against the current question (case-insensitive,
// surrounding whitespace ignored) and advances to the next one. It returns
// whether the answer was correct plus the expected answer text.
func (q *Quiz) Submit(answer string) (correct bool, expected string, err error) {
	current, ok := q.Current()
	if !ok {
		return false, "", fmt.Errorf("quiz is finished")
	}

	expected = current.Answer
	correct = strings.EqualFold(strings.TrimSpace(answer), strings.TrimSpace(expected))
	if correct {
		q.score++
	}
	q.index++
	return correct, expected, nil
}

func (q *Quiz) Finished() bool {
	return q.index >= len(q.questions)
}

func (q *Quiz) Score() int {
	return q.score
}

func (q *Quiz) Total() int {
	return len(q.questions)
}

// Index is the zero-based position of the question awaiting an answer.
func (q *Quiz) Index() int {
	return q.index
}

// Restart resets progress and score, keeping the same questions.
func (q *Quiz) Restart() {
	q.index = 0
	q.score = 0
}
