// Package prompts renders the text sent to the completion endpoint from
// embedded Go templates. Rendering is fully deterministic: the same inputs
// always produce byte-identical output.
package prompts

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/gamana29/almika/faq"
)

//go:embed templates/*
var templatesFS embed.FS

// DocumentContextLimit bounds how much uploaded-document text is included in
// a prompt. The truncation is a design invariant: it caps prompt size.
const DocumentContextLimit = 3000

// ComposeAssistant builds the final assistant prompt: the FAQ entries as a
// context block in dataset order, the optional document grounding
// instruction, and the literal student question. An empty FAQ dataset yields
// an empty context block, not an error.
func ComposeAssistant(question string, entries []faq.Entry, documentText string) (string, error) {
	if documentText != "" {
		grounded, err := loadPrompt("templates/document_grounding_user.md", map[string]string{
			"DOCUMENT_TEXT": truncate(documentText, DocumentContextLimit),
			"QUESTION":      question,
		})
		if err != nil {
			return "", err
		}
		question = grounded
	}

	return loadPrompt("templates/student_assistant_user.md", map[string]string{
		"FAQ_CONTEXT": faqContext(entries),
		"QUESTION":    question,
	})
}

// ExplainTopic asks for a detailed explanation of topic at the given level
// ("beginner", "intermediate", "advanced").
func ExplainTopic(topic, level string) (string, error) {
	return loadPrompt("templates/explain_topic_user.md", map[string]string{
		"TOPIC": topic,
		"LEVEL": strings.ToLower(level),
	})
}

// TopicSummary asks for a three-line summary of topic.
func TopicSummary(topic string) (string, error) {
	return loadPrompt("templates/topic_summary_user.md", map[string]string{
		"TOPIC": topic,
	})
}

// TopicQuiz asks for a three-question multiple-choice quiz on topic as a
// JSON array, suitable for quiz.ParseGenerated.
func TopicQuiz(topic string) (string, error) {
	return loadPrompt("templates/topic_quiz_user.md", map[string]string{
		"TOPIC": topic,
	})
}

// HomeworkHelp asks for a step-by-step solution to a homework question.
func HomeworkHelp(question string) (string, error) {
	return loadPrompt("templates/homework_help_user.md", map[string]string{
		"QUESTION": question,
	})
}

// faqContext renders each entry as "Q: <question>\nA: <answer>", joined by
// newlines, preserving dataset order.
func faqContext(entries []faq.Entry) string {
	lines := make([]string, len(entries))
	for i, entry := range entries {
		lines[i] = fmt.Sprintf("Q: %s\nA: %s", entry.Question, entry.Answer)
	}
	return strings.Join(lines, "\n")
}

// truncate keeps the first limit characters of text.
func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}

func loadPrompt(templatePath string, data interface{}) (string, error) {
	tmpl, err := template.ParseFS(templatesFS, templatePath)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, data)
	if err != nil {
		return "", err
	}

	return buf.String(), nil
}
