package quiz

import (
	"encoding/json"
	"fmt"
	"strings"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	hjson "github.com/hjson/hjson-go/v4"
)

// ParseGenerated decodes a model-produced quiz into questions. Model output
// is rarely clean JSON, so parsing tries multiple strategies in order:
// strict JSON, repaired JSON (trailing commas, fences, single quotes), then
// Hjson for anything merely human-readable.
func ParseGenerated(raw string) ([]Question, error) {
	raw = stripFences(raw)

	var questions []Question
	if err := json.Unmarshal([]byte(raw), &questions); err == nil {
		return validate(questions)
	}

	if repaired, err := jsonrepair.RepairJSON(raw); err == nil {
		if err := json.Unmarshal([]byte(repaired), &questions); err == nil {
			return validate(questions)
		}
	}

	if err := hjson.Unmarshal([]byte(raw), &questions); err == nil {
		return validate(questions)
	}

	return nil, fmt.Errorf("quiz: could not parse generated quiz")
}

func validate(questions []Question) ([]Question, error) {
	if len(questions) == 0 {
		return nil, fmt.Errorf("quiz: generated quiz has no questions")
	}
	for i, q := range questions {
		if q.Prompt == "" || q.Answer == "" {
			return nil, fmt.Errorf("quiz: generated question %d is missing fields", i)
		}
	}
	return questions, nil
}

// stripFences removes a surrounding markdown code fence, if any.
func stripFences(raw string) string {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "```") {
		return raw
	}

	raw = strings.TrimPrefix(raw, "```")
	if idx := strings.Index(raw, "\n"); idx >= 0 {
		raw = raw[idx+1:] // drop the language hint line
	}
	raw = strings.TrimSuffix(strings.TrimSpace(raw), "```")
	return strings.TrimSpace(raw)
}
