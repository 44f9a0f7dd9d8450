// Package profile holds the single case profile record.
package profile

import (
	"sync"

	"github.com/comigor/casehelper-go/internal/logger"
	"github.com/comigor/casehelper-go/internal/store"
)

// StorageKey is the slot the profile is persisted under.
const StorageKey = "case-profile"

// Record is the case profile. Empty fields mean "not yet provided".
type Record struct {
	Name         string `json:"name"`
	CaseNumber   string `json:"caseNumber"`
	AttorneyName string `json:"attorneyName"`
}

// Update carries the fields to change; nil fields are left untouched.
type Update struct {
	Name         *string
	CaseNumber   *string
	AttorneyName *string
}

// Profile owns the persisted Record. Last write wins; no history is kept.
type Profile struct {
	mu     sync.Mutex
	slot   *store.Slot[Record]
	record Record
}

// Open loads the stored profile from b; a zero Record is the default.
func Open(b store.Backend) *Profile {
	p := &Profile{slot: store.NewSlot[Record](b, StorageKey)}
	p.record = p.slot.Load(Record{})
	return p
}

// Update merges u into the record and persists the full merged record.
func (p *Profile) Update(u Update) Record {
	p.mu.Lock()
	defer p.mu.Unlock()

	next := p.record
	if u.Name != nil {
		next.Name = *u.Name
	}
	if u.CaseNumber != nil {
		next.CaseNumber = *u.CaseNumber
	}
	if u.AttorneyName != nil {
		next.AttorneyName = *u.AttorneyName
	}
	p.record = next

	if err := p.slot.Save(p.record); err != nil {
		logger.L.Error("failed to persist profile", "error", err)
	}
	return p.record
}

// Snapshot returns the current record.
func (p *Profile) Snapshot() Record {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.record
}
