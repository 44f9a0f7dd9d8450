package store

import (
	"database/sql"
	"errors"
	"time"

	_ "github.com/glebarez/go-sqlite"
)

// SQLiteBackend stores slots as rows of a single key/value table.
type SQLiteBackend struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path and the slots table.
func OpenSQLite(path string) (*SQLiteBackend, error) {
	if path == "" {
		path = "casehelper.db"
	}
	db, err := sql.Open("sqlite", "file:"+path+"?_busy_timeout=10000")
	if err != nil {
		return nil, err
	}
	if _, err = db.Exec(`CREATE TABLE IF NOT EXISTS slots (
        key TEXT PRIMARY KEY,
        value TEXT NOT NULL,
        updated_at DATETIME
    );`); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLiteBackend{db: db}, nil
}

func (s *SQLiteBackend) Get(key string) ([]byte, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM slots WHERE key = ?;`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return []byte(value), true, nil
}

func (s *SQLiteBackend) Put(key string, value []byte) error {
	_, err := s.db.Exec(`INSERT INTO slots (key, value, updated_at) VALUES (?,?,?)
        ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at;`,
		key, string(value), time.Now().UTC())
	return err
}

func (s *SQLiteBackend) Close() error { return s.db.Close() }
