package profile

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/comigor/casehelper-go/internal/store"
)

func str(s string) *string { return &s }

func TestUpdate_MergesPartialFields(t *testing.T) {
	p := Open(store.NewMemoryBackend())

	p.Update(Update{Name: str("A")})
	got := p.Update(Update{CaseNumber: str("123")})

	require.Equal(t, Record{Name: "A", CaseNumber: "123", AttorneyName: ""}, got)
	require.Equal(t, got, p.Snapshot())
}

func TestUpdate_EmptyStringIsAValue(t *testing.T) {
	p := Open(store.NewMemoryBackend())
	p.Update(Update{Name: str("A"), AttorneyName: str("Counsel")})
	got := p.Update(Update{AttorneyName: str("")})
	require.Equal(t, Record{Name: "A"}, got)
}

func TestUpdate_PersistsFullRecord(t *testing.T) {
	b := store.NewMemoryBackend()
	p := Open(b)
	p.Update(Update{Name: str("Jane")})
	p.Update(Update{AttorneyName: str("Sam Lee")})

	raw, ok, err := b.Get(StorageKey)
	require.NoError(t, err)
	require.True(t, ok)
	require.JSONEq(t, `{"name":"Jane","caseNumber":"","attorneyName":"Sam Lee"}`, string(raw))
	require.Equal(t, Record{Name: "Jane", AttorneyName: "Sam Lee"}, Open(b).Snapshot())
}

func TestOpen_DefaultsToEmptyRecord(t *testing.T) {
	require.Equal(t, Record{}, Open(store.NewMemoryBackend()).Snapshot())
}
