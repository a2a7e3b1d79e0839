package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/mutantd/internal/dna"
)

func TestInsert_AssignsID(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	rec, result, err := s.Insert(ctx, createTestRecord(t, true, mutantRows...))
	require.NoError(t, err)
	assert.Equal(t, dna.Inserted, result)
	assert.Equal(t, int64(1), rec.ID)

	rec2, result, err := s.Insert(ctx, createTestRecord(t, false, humanRows...))
	require.NoError(t, err)
	assert.Equal(t, dna.Inserted, result)
	assert.Equal(t, int64(2), rec2.ID)
}

func TestInsert_DuplicateReturnsExisting(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	first, _, err := s.Insert(ctx, createTestRecord(t, true, mutantRows...))
	require.NoError(t, err)

	// Same fingerprint, conflicting verdict: the first writer wins.
	loser := createTestRecord(t, false, mutantRows...)
	got, result, err := s.Insert(ctx, loser)
	require.NoError(t, err)
	assert.Equal(t, dna.AlreadyExists, result)
	assert.Equal(t, first.ID, got.ID)
	assert.True(t, got.Mutant)

	count, err := s.CountByVerdict(ctx, false)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestInsert_ConcurrentSameFingerprint(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	rec := createTestRecord(t, true, mutantRows...)

	const writers = 16
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		inserted int
		ids      = map[int64]bool{}
	)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, result, err := s.Insert(ctx, rec)
			assert.NoError(t, err)
			mu.Lock()
			defer mu.Unlock()
			if result == dna.Inserted {
				inserted++
			}
			ids[got.ID] = true
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, inserted)
	assert.Len(t, ids, 1)

	count, err := s.CountByVerdict(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestInsert_CancelledContext(t *testing.T) {
	s := createTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := s.Insert(ctx, createTestRecord(t, true, mutantRows...))
	assert.Error(t, err)
}

func TestInsert_RawUniqueViolationIsDuplicate(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	rec := createTestRecord(t, true, mutantRows...)
	_, _, err := s.Insert(ctx, rec)
	require.NoError(t, err)

	// A plain INSERT (no ON CONFLICT clause) surfaces the constraint error.
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO dna_records (fingerprint, is_mutant, dna_sequence, created_at)
		VALUES (?, 1, '[]', '2024-01-01T00:00:00Z')
	`, rec.Fingerprint)
	require.Error(t, err)
	assert.True(t, isUniqueViolation(err))
	assert.False(t, isUniqueViolation(errors.New("other")))
	assert.False(t, isUniqueViolation(fmt.Errorf("wrapped: %w", context.Canceled)))
}
