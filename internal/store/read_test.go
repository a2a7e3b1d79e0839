package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Both implementations must behave the same way.
func repositories(t *testing.T) map[string]repository {
	t.Helper()
	return map[string]repository{
		"sqlite": createTestStore(t),
		"memory": NewMemory(),
	}
}

func TestFindByFingerprint_RoundTrip(t *testing.T) {
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			rec := createTestRecord(t, true, mutantRows...)

			stored, _, err := repo.Insert(ctx, rec)
			require.NoError(t, err)

			got, found, err := repo.FindByFingerprint(ctx, rec.Fingerprint)
			require.NoError(t, err)
			require.True(t, found)
			assert.Equal(t, stored.ID, got.ID)
			assert.Equal(t, rec.Fingerprint, got.Fingerprint)
			assert.True(t, got.Mutant)
			assert.Equal(t, rec.Sequence, got.Sequence)
			assert.True(t, rec.CreatedAt.Equal(got.CreatedAt), "created_at %v != %v", got.CreatedAt, rec.CreatedAt)
		})
	}
}

func TestFindByFingerprint_NotFound(t *testing.T) {
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			_, found, err := repo.FindByFingerprint(context.Background(), "missing")
			require.NoError(t, err)
			assert.False(t, found)
		})
	}
}

func TestCountByVerdict(t *testing.T) {
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			for _, tc := range []struct {
				rows   []string
				mutant bool
			}{
				{mutantRows, true},
				{[]string{"AAAA", "CTGA", "GCTA", "TGCA"}, true},
				{humanRows, false},
			} {
				_, _, err := repo.Insert(ctx, createTestRecord(t, tc.mutant, tc.rows...))
				require.NoError(t, err)
			}
			// Duplicate submission does not change counts
			_, result, err := repo.Insert(ctx, createTestRecord(t, true, mutantRows...))
			require.NoError(t, err)
			assert.Equal(t, "already_exists", result.String())

			mutants, err := repo.CountByVerdict(ctx, true)
			require.NoError(t, err)
			humans, err := repo.CountByVerdict(ctx, false)
			require.NoError(t, err)

			assert.Equal(t, int64(2), mutants)
			assert.Equal(t, int64(1), humans)
			assert.NoError(t, repo.Ping(ctx))
		})
	}
}
