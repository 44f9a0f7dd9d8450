package store_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/comigor/casehelper-go/internal/config"
	"github.com/comigor/casehelper-go/internal/history"
	"github.com/comigor/casehelper-go/internal/profile"
	"github.com/comigor/casehelper-go/internal/store"
	"github.com/comigor/casehelper-go/internal/timeline"
)

func backends(t *testing.T) map[string]store.Backend {
	t.Helper()
	dir := t.TempDir()

	sq, err := store.OpenSQLite(filepath.Join(dir, "slots.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sq.Close() })

	bo, err := store.OpenBolt(filepath.Join(dir, "nested", "slots.bolt"))
	require.NoError(t, err)
	t.Cleanup(func() { bo.Close() })

	return map[string]store.Backend{
		"memory": store.NewMemoryBackend(),
		"sqlite": sq,
		"bolt":   bo,
	}
}

func TestSlot_RoundTrip(t *testing.T) {
	turns := []history.Turn{
		{Role: history.RoleAssistant, Text: "welcome"},
		{Role: history.RoleUser, Text: "When is my hearing?\nSecond line, ünicode"},
	}
	events := []timeline.Event{
		{Date: "2024-03-01", Description: "Shelter hearing"},
		{Date: "2024-01-15", Description: "Case plan signed"},
	}
	rec := profile.Record{Name: "Jane", CaseNumber: "2024-DP-001", AttorneyName: ""}

	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ts := store.NewSlot[[]history.Turn](b, "case-conversations")
			require.NoError(t, ts.Save(turns))
			require.Equal(t, turns, ts.Load(nil))

			es := store.NewSlot[[]timeline.Event](b, "case-timeline")
			require.NoError(t, es.Save(events))
			require.Equal(t, events, es.Load(nil))

			ps := store.NewSlot[profile.Record](b, "case-profile")
			require.NoError(t, ps.Save(rec))
			require.Equal(t, rec, ps.Load(profile.Record{Name: "default"}))
		})
	}
}

func TestSlot_OverwritesWholeValue(t *testing.T) {
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			s := store.NewSlot[[]string](b, "k")
			require.NoError(t, s.Save([]string{"a", "b", "c"}))
			require.NoError(t, s.Save([]string{"z"}))
			require.Equal(t, []string{"z"}, s.Load(nil))
		})
	}
}

func TestSlot_AbsentReturnsDefault(t *testing.T) {
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			def := []timeline.Event{{Date: "d", Description: "default"}}
			s := store.NewSlot[[]timeline.Event](b, "missing")
			require.Equal(t, def, s.Load(def))
		})
	}
}

func TestSlot_CorruptReturnsDefault(t *testing.T) {
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, b.Put("case-profile", []byte(`{"name":"Jane","caseNumber":`)))
			def := profile.Record{Name: "fallback"}
			s := store.NewSlot[profile.Record](b, "case-profile")
			require.Equal(t, def, s.Load(def))

			// well-formed JSON of the wrong shape is also rejected whole
			require.NoError(t, b.Put("case-conversations", []byte(`{"role":"user"}`)))
			ts := store.NewSlot[[]history.Turn](b, "case-conversations")
			require.Nil(t, ts.Load(nil))
		})
	}
}

func TestSQLite_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")

	b, err := store.OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, store.NewSlot[[]string](b, "k").Save([]string{"kept"}))
	require.NoError(t, b.Close())

	b, err = store.OpenSQLite(path)
	require.NoError(t, err)
	defer b.Close()
	require.Equal(t, []string{"kept"}, store.NewSlot[[]string](b, "k").Load(nil))
}

func TestOpen_FallsBackToMemory(t *testing.T) {
	b := store.Open(config.StorageConfig{Backend: "nope"})
	_, ok := b.(*store.MemoryBackend)
	require.True(t, ok)

	b = store.Open(config.StorageConfig{Backend: "memory"})
	_, ok = b.(*store.MemoryBackend)
	require.True(t, ok)
}

func TestOpen_DurableBackendFailureFallsBackToMemory(t *testing.T) {
	dir := t.TempDir()

	// a directory cannot be opened as a bolt file
	_, err := store.OpenBolt(dir)
	require.Error(t, err)

	b := store.Open(config.StorageConfig{Backend: "bolt", Path: dir})
	_, ok := b.(*store.MemoryBackend)
	require.True(t, ok)

	s := store.NewSlot[[]string](b, "k")
	require.NoError(t, s.Save([]string{"still usable"}))
	require.Equal(t, []string{"still usable"}, s.Load(nil))
}
