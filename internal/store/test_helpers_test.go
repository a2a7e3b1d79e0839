package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/roach88/mutantd/internal/dna"
)

// createTestStore creates a new file-backed store for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestRecord builds an unsaved record for rows with a fixed timestamp.
func createTestRecord(t *testing.T, mutant bool, rows ...string) dna.Record {
	t.Helper()
	rec, err := dna.NewRecord(dna.MustParse(rows...), mutant, time.Date(2024, 1, 2, 3, 4, 5, 6, time.UTC))
	if err != nil {
		t.Fatalf("NewRecord() failed: %v", err)
	}
	return rec
}

// repository is the surface shared by Store and Memory.
type repository interface {
	FindByFingerprint(ctx context.Context, fingerprint string) (dna.Record, bool, error)
	Insert(ctx context.Context, rec dna.Record) (dna.Record, dna.InsertResult, error)
	CountByVerdict(ctx context.Context, mutant bool) (int64, error)
	Ping(ctx context.Context) error
	Close() error
}

var (
	mutantRows = []string{"ATGCGA", "CAGTGC", "TTATGT", "AGAAGG", "CCCCTA", "TCACTG"}
	humanRows  = []string{"ATGCGA", "CAGTGC", "TTATTT", "AGACGG", "GCGTCA", "TCACTG"}
)
