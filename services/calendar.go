package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

const eventDateLayout = "2006-01-02"

// Event is one academic calendar entry.
type Event struct {
	ID   string `json:"id"`
	Date string `json:"date"` // YYYY-MM-DD
	Name string `json:"name"`
}

// CalendarPlanner keeps a session's academic events and reminders. Like the
// conversation history, events are session-scoped state.
type CalendarPlanner struct {
	events []Event
}

func NewCalendarPlanner() *CalendarPlanner {
	return &CalendarPlanner{}
}

// Add validates the date and records a new event.
func (p *CalendarPlanner) Add(date, name string) (Event, error) {
	if _, err := time.Parse(eventDateLayout, date); err != nil {
		return Event{}, fmt.Errorf("invalid event date %q: %w", date, err)
	}
	if name == "" {
		return Event{}, fmt.Errorf("event name is required")
	}

	event := Event{
		ID:   uuid.NewString(),
		Date: date,
		Name: name,
	}
	p.events = append(p.events, event)
	return event, nil
}

// Upcoming returns all events sorted by date. The slice is a copy.
func (p *CalendarPlanner) Upcoming() []Event {
	out := make([]Event, len(p.events))
	copy(out, p.events)
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date < out[j].Date
	})
	return out
}
