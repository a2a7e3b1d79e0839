package dna

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// NOTE: These are store-facing types. Records are append-only: created on
// the first submission of a grid and never updated or deleted.

// Record is a persisted classification.
type Record struct {
	ID          int64     `json:"id"`          // Auto-increment (store assigned)
	Fingerprint string    `json:"fingerprint"` // Unique, see Fingerprint
	Mutant      bool      `json:"mutant"`
	Sequence    string    `json:"dna_sequence"` // JSON array of the rows
	CreatedAt   time.Time `json:"created_at"`
}

// NewRecord builds an unsaved record for a classified grid.
func NewRecord(g Grid, mutant bool, now time.Time) (Record, error) {
	seq, err := json.Marshal(g.rows)
	if err != nil {
		return Record{}, fmt.Errorf("new record: %w", err)
	}
	return Record{
		Fingerprint: Fingerprint(g),
		Mutant:      mutant,
		Sequence:    string(seq),
		CreatedAt:   now.UTC(),
	}, nil
}

// InsertResult tells whether an insert created a row or found one.
type InsertResult int

const (
	// Inserted means the record was new and has been stored.
	Inserted InsertResult = iota
	// AlreadyExists means a record with the same fingerprint was stored first.
	AlreadyExists
)

// String returns a readable name for logs.
func (r InsertResult) String() string {
	switch r {
	case Inserted:
		return "inserted"
	case AlreadyExists:
		return "already_exists"
	default:
		return "unknown"
	}
}

// Stats is the derived aggregate over all records.
type Stats struct {
	CountMutant int64   `json:"count_mutant_dna"`
	CountHuman  int64   `json:"count_human_dna"`
	Ratio       float64 `json:"ratio"`
}

// NewStats computes the mutant/human ratio, which is 0 when there are no
// human records.
func NewStats(mutant, human int64) Stats {
	s := Stats{CountMutant: mutant, CountHuman: human}
	if human != 0 {
		s.Ratio = float64(mutant) / float64(human)
	}
	return s
}

// ErrDuplicateFingerprint is returned by a repository whose insert hit the
// fingerprint uniqueness constraint instead of reporting AlreadyExists.
var ErrDuplicateFingerprint = errors.New("duplicate fingerprint")
