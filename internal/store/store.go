// Package store persists named entity slots as JSON documents.
//
// A slot is read fail-soft: a missing key and an unparsable value both yield the
// caller's default. Writes replace the whole value under the key. Slots are
// independent; there is no atomicity across keys.
package store

import (
	"fmt"
	"strings"

	"github.com/comigor/casehelper-go/internal/config"
	"github.com/comigor/casehelper-go/internal/logger"
)

// Backend is a durable string-keyed byte store.
type Backend interface {
	// Get returns the raw value under key and whether it exists.
	Get(key string) ([]byte, bool, error)
	// Put overwrites the value under key.
	Put(key string, value []byte) error
	Close() error
}

// Open returns the backend named by cfg. If the durable backend cannot be
// opened it logs and falls back to an in-memory backend, so the caller always
// gets something usable.
func Open(cfg config.StorageConfig) Backend {
	var (
		b   Backend
		err error
	)
	switch strings.ToLower(cfg.Backend) {
	case "memory":
		return NewMemoryBackend()
	case "bolt", "bbolt":
		b, err = OpenBolt(cfg.Path)
	case "sqlite", "":
		b, err = OpenSQLite(cfg.Path)
	default:
		err = fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
	if err != nil {
		logger.L.Warn("storage open failed; using in-memory slots", "backend", cfg.Backend, "path", cfg.Path, "error", err)
		return NewMemoryBackend()
	}
	logger.L.Info("storage initialized", "backend", cfg.Backend, "path", cfg.Path)
	return b
}
