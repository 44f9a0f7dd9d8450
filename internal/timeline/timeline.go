// Package timeline tracks dated case events in the order they were entered.
package timeline

import (
	"errors"
	"strings"
	"sync"

	"github.com/comigor/casehelper-go/internal/logger"
	"github.com/comigor/casehelper-go/internal/store"
)

// StorageKey is the slot the timeline is persisted under.
const StorageKey = "case-timeline"

// ErrEmptyField is returned when a date or description is blank.
var ErrEmptyField = errors.New("timeline: date and description are required")

// Event is a single dated entry. Date is a calendar date in ISO-8601 form.
type Event struct {
	Date        string `json:"date"`
	Description string `json:"description"`
}

// Tracker is the append-only list of events. Entries keep insertion order and
// are not sorted by date.
type Tracker struct {
	mu     sync.Mutex
	slot   *store.Slot[[]Event]
	events []Event
}

// Open loads the stored timeline from b; an empty timeline is the default.
func Open(b store.Backend) *Tracker {
	t := &Tracker{slot: store.NewSlot[[]Event](b, StorageKey)}
	t.events = t.slot.Load(nil)
	return t
}

// Add appends an event and persists the timeline. Duplicates are allowed.
func (t *Tracker) Add(date, description string) ([]Event, error) {
	date = strings.TrimSpace(date)
	description = strings.TrimSpace(description)
	if date == "" || description == "" {
		return nil, ErrEmptyField
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.events = append(t.events, Event{Date: date, Description: description})
	if err := t.slot.Save(t.events); err != nil {
		logger.L.Error("failed to persist timeline", "error", err, "events", len(t.events))
	}
	return t.snapshotLocked(), nil
}

// Snapshot returns a copy of the events in entry order.
func (t *Tracker) Snapshot() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshotLocked()
}

func (t *Tracker) snapshotLocked() []Event {
	out := make([]Event, len(t.events))
	copy(out, t.events)
	return out
}
