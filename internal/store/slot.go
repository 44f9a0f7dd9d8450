package store

import (
	"encoding/json"
	"fmt"

	"github.com/comigor/casehelper-go/internal/logger"
)

// Slot is a typed view over one key of a Backend.
type Slot[T any] struct {
	backend Backend
	key     string
}

// NewSlot binds key on b to values of type T.
func NewSlot[T any](b Backend, key string) *Slot[T] {
	return &Slot[T]{backend: b, key: key}
}

// Key returns the storage key of the slot.
func (s *Slot[T]) Key() string { return s.key }

// Load returns the stored value, or def when the key is absent or its value
// cannot be decoded. It never returns a partially decoded value.
func (s *Slot[T]) Load(def T) T {
	raw, ok, err := s.backend.Get(s.key)
	if err != nil {
		logger.L.Warn("slot read failed; using default", "key", s.key, "error", err)
		return def
	}
	if !ok {
		return def
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		logger.L.Warn("slot value unparsable; using default", "key", s.key, "error", err)
		return def
	}
	return v
}

// Save serializes v and overwrites the slot.
func (s *Slot[T]) Save(v T) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", s.key, err)
	}
	if err := s.backend.Put(s.key, raw); err != nil {
		return fmt.Errorf("store %s: %w", s.key, err)
	}
	return nil
}
