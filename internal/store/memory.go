package store

import (
	"context"
	"sync"

	"github.com/roach88/mutantd/internal/dna"
)

// Memory is an in-process record store with the same semantics as Store.
// Contents are lost when the process exits.
//
// Thread-safety: all methods are safe for concurrent use.
type Memory struct {
	mu      sync.RWMutex
	records map[string]dna.Record
	nextID  int64
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{records: make(map[string]dna.Record)}
}

// FindByFingerprint retrieves the record for a fingerprint.
func (m *Memory) FindByFingerprint(_ context.Context, fingerprint string) (dna.Record, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.records[fingerprint]
	return rec, ok, nil
}

// Insert stores rec unless its fingerprint is already present, in which
// case the stored record is returned with dna.AlreadyExists.
func (m *Memory) Insert(_ context.Context, rec dna.Record) (dna.Record, dna.InsertResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.records[rec.Fingerprint]; ok {
		return existing, dna.AlreadyExists, nil
	}
	m.nextID++
	rec.ID = m.nextID
	m.records[rec.Fingerprint] = rec
	return rec, dna.Inserted, nil
}

// CountByVerdict returns the number of records with the given verdict.
func (m *Memory) CountByVerdict(_ context.Context, mutant bool) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var n int64
	for _, rec := range m.records {
		if rec.Mutant == mutant {
			n++
		}
	}
	return n, nil
}

// Ping always succeeds.
func (m *Memory) Ping(context.Context) error {
	return nil
}

// Close is a no-op; it exists so Memory and Store are interchangeable.
func (m *Memory) Close() error {
	return nil
}
