package memory

// Turn is one completed question/answer round trip. Turns are immutable
// after creation and a history is strictly append-only: insertion order is
// chronological order, never reordered or deduplicated.
type Turn struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}
