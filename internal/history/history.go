// Package history holds the conversation log: an append-only sequence of turns
// persisted as a whole after every append.
package history

import (
	"errors"
	"strings"
	"sync"

	"github.com/comigor/casehelper-go/internal/logger"
	"github.com/comigor/casehelper-go/internal/store"
)

// StorageKey is the slot the conversation is persisted under.
const StorageKey = "case-conversations"

// WelcomeMessage seeds a conversation that has no stored turns.
const WelcomeMessage = "Hi! I'm your personal Florida dependency case assistant. I can help you understand procedures, deadlines, your rights, and what to expect. What questions do you have about your case?"

// ErrEmptyText is returned when a user turn is blank after trimming.
var ErrEmptyText = errors.New("history: empty message")

// Log is the ordered conversation of one session.
type Log struct {
	mu    sync.Mutex
	slot  *store.Slot[[]Turn]
	turns []Turn
}

// Open loads the stored conversation from b, seeding it with the welcome turn
// when nothing usable is stored.
func Open(b store.Backend) *Log {
	l := &Log{slot: store.NewSlot[[]Turn](b, StorageKey)}
	l.turns = l.slot.Load(nil)
	if len(l.turns) == 0 {
		l.turns = []Turn{{Role: RoleAssistant, Text: WelcomeMessage}}
	}
	return l
}

// AppendUser appends a user turn holding the trimmed text and persists the log.
func (l *Log) AppendUser(text string) ([]Turn, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyText
	}
	return l.append(Turn{Role: RoleUser, Text: text}), nil
}

// AppendAssistant appends an assistant turn verbatim and persists the log.
func (l *Log) AppendAssistant(text string) []Turn {
	return l.append(Turn{Role: RoleAssistant, Text: text})
}

func (l *Log) append(t Turn) []Turn {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.turns = append(l.turns, t)
	if err := l.slot.Save(l.turns); err != nil {
		// the in-memory log stays authoritative for the session
		logger.L.Error("failed to persist conversation", "error", err, "turns", len(l.turns))
	}
	return l.snapshotLocked()
}

// Snapshot returns a copy of the turns in conversation order.
func (l *Log) Snapshot() []Turn {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshotLocked()
}

// Len returns the number of turns.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.turns)
}

func (l *Log) snapshotLocked() []Turn {
	out := make([]Turn, len(l.turns))
	copy(out, l.turns)
	return out
}
