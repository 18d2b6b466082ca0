// Package faq loads the static question/answer dataset used as grounding
// context for every assistant prompt. The dataset is loaded once at startup
// and treated as read-only for the process lifetime.
package faq

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ErrDataUnavailable indicates the FAQ source is missing or not parseable.
// There is no degraded mode; callers treat this as fatal at startup.
var ErrDataUnavailable = errors.New("faq: dataset unavailable")

// Entry is a single question/answer pair. Order within the dataset is
// preserved and used verbatim when building prompt context.
type Entry struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Load reads the FAQ dataset from a JSON file containing an ordered list of
// {question, answer} records.
func Load(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrDataUnavailable, path, err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", ErrDataUnavailable, path, err)
	}

	return entries, nil
}
