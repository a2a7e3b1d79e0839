package ledger

import (
	"context"
	"errors"
	"sync"

	"github.com/roach88/mutantd/internal/dna"
	"github.com/roach88/mutantd/internal/store"
)

var errDiskGone = errors.New("disk I/O error")

// countingRepo wraps a Memory store and counts calls.
type countingRepo struct {
	*store.Memory
	mu      sync.Mutex
	lookups int
	inserts int
}

func newCountingRepo() *countingRepo {
	return &countingRepo{Memory: store.NewMemory()}
}

func (r *countingRepo) FindByFingerprint(ctx context.Context, fp string) (dna.Record, bool, error) {
	r.mu.Lock()
	r.lookups++
	r.mu.Unlock()
	return r.Memory.FindByFingerprint(ctx, fp)
}

func (r *countingRepo) Insert(ctx context.Context, rec dna.Record) (dna.Record, dna.InsertResult, error) {
	r.mu.Lock()
	r.inserts++
	r.mu.Unlock()
	return r.Memory.Insert(ctx, rec)
}

// racingRepo simulates a writer that stored the grid between our lookup
// and our insert: the first lookup misses, the insert conflicts.
//
// Not safe for concurrent use.
type racingRepo struct {
	winner   dna.Record
	dupErr   bool // Insert fails with ErrDuplicateFingerprint instead of reporting AlreadyExists
	vanished bool // the re-read finds nothing
	lookups  int
}

func (r *racingRepo) FindByFingerprint(context.Context, string) (dna.Record, bool, error) {
	r.lookups++
	if r.lookups == 1 || r.vanished {
		return dna.Record{}, false, nil
	}
	return r.winner, true, nil
}

func (r *racingRepo) Insert(_ context.Context, rec dna.Record) (dna.Record, dna.InsertResult, error) {
	if r.dupErr {
		return dna.Record{}, 0, dna.ErrDuplicateFingerprint
	}
	return r.winner, dna.AlreadyExists, nil
}

func (r *racingRepo) CountByVerdict(context.Context, bool) (int64, error) {
	return 0, nil
}

// fixedCountRepo answers counts only.
type fixedCountRepo struct {
	mutants, humans int64
}

func (r fixedCountRepo) FindByFingerprint(context.Context, string) (dna.Record, bool, error) {
	return dna.Record{}, false, nil
}

func (r fixedCountRepo) Insert(_ context.Context, rec dna.Record) (dna.Record, dna.InsertResult, error) {
	return rec, dna.Inserted, nil
}

func (r fixedCountRepo) CountByVerdict(_ context.Context, mutant bool) (int64, error) {
	if mutant {
		return r.mutants, nil
	}
	return r.humans, nil
}

// brokenRepo fails the configured operations.
type brokenRepo struct {
	failLookup, failInsert, failCount bool
}

func (r brokenRepo) FindByFingerprint(context.Context, string) (dna.Record, bool, error) {
	if r.failLookup {
		return dna.Record{}, false, errDiskGone
	}
	return dna.Record{}, false, nil
}

func (r brokenRepo) Insert(_ context.Context, rec dna.Record) (dna.Record, dna.InsertResult, error) {
	if r.failInsert {
		return dna.Record{}, 0, errDiskGone
	}
	return rec, dna.Inserted, nil
}

func (r brokenRepo) CountByVerdict(context.Context, bool) (int64, error) {
	if r.failCount {
		return 0, errDiskGone
	}
	return 0, nil
}
