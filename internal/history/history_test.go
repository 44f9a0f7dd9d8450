package history

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/comigor/casehelper-go/internal/store"
)

func TestOpen_SeedsWelcome(t *testing.T) {
	l := Open(store.NewMemoryBackend())
	require.Equal(t, []Turn{{Role: RoleAssistant, Text: WelcomeMessage}}, l.Snapshot())
}

func TestOpen_CorruptStorageSeedsWelcome(t *testing.T) {
	b := store.NewMemoryBackend()
	require.NoError(t, b.Put(StorageKey, []byte("not json")))
	l := Open(b)
	require.Equal(t, 1, l.Len())
	require.Equal(t, WelcomeMessage, l.Snapshot()[0].Text)
}

func TestAppend_PreservesCallOrder(t *testing.T) {
	l := Open(store.NewMemoryBackend())

	_, err := l.AppendUser("first")
	require.NoError(t, err)
	l.AppendAssistant("second")
	_, err = l.AppendUser("   ")
	require.ErrorIs(t, err, ErrEmptyText)
	_, err = l.AppendUser("  third  ")
	require.NoError(t, err)
	got := l.AppendAssistant("fourth")

	require.Equal(t, []Turn{
		{Role: RoleAssistant, Text: WelcomeMessage},
		{Role: RoleUser, Text: "first"},
		{Role: RoleAssistant, Text: "second"},
		{Role: RoleUser, Text: "third"},
		{Role: RoleAssistant, Text: "fourth"},
	}, got)
}

func TestAppend_PersistsEveryTurn(t *testing.T) {
	b := store.NewMemoryBackend()
	l := Open(b)
	_, err := l.AppendUser("Hi")
	require.NoError(t, err)
	l.AppendAssistant("Hello there")

	reopened := Open(b)
	require.Equal(t, l.Snapshot(), reopened.Snapshot())
	require.Equal(t, 3, reopened.Len())
}

func TestAppendUser_EmptyDoesNotPersist(t *testing.T) {
	b := store.NewMemoryBackend()
	l := Open(b)
	_, err := l.AppendUser("\t\n ")
	require.ErrorIs(t, err, ErrEmptyText)

	_, ok, err := b.Get(StorageKey)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestSnapshot_IsACopy(t *testing.T) {
	l := Open(store.NewMemoryBackend())
	snap := l.Snapshot()
	snap[0].Text = "mutated"
	require.Equal(t, WelcomeMessage, l.Snapshot()[0].Text)
}
