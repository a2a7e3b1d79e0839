package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/roach88/mutantd/internal/dna"
)

const selectByFingerprint = `
	SELECT id, fingerprint, is_mutant, dna_sequence, created_at
	FROM dna_records
	WHERE fingerprint = ?
`

// FindByFingerprint retrieves the record for a fingerprint.
// Returns found=false (and no error) if there is none.
func (s *Store) FindByFingerprint(ctx context.Context, fingerprint string) (dna.Record, bool, error) {
	rec, err := scanRecord(s.db.QueryRowContext(ctx, selectByFingerprint, fingerprint))
	if errors.Is(err, sql.ErrNoRows) {
		return dna.Record{}, false, nil
	}
	if err != nil {
		return dna.Record{}, false, fmt.Errorf("find by fingerprint: %w", err)
	}
	return rec, true, nil
}

// CountByVerdict returns the number of records with the given verdict.
func (s *Store) CountByVerdict(ctx context.Context, mutant bool) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM dna_records WHERE is_mutant = ?
	`, mutant).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count by verdict: %w", err)
	}
	return count, nil
}

// scanRecord scans a single row into a Record.
// Returns sql.ErrNoRows unwrapped so callers can test for it.
func scanRecord(row *sql.Row) (dna.Record, error) {
	var rec dna.Record
	var createdAt string

	if err := row.Scan(&rec.ID, &rec.Fingerprint, &rec.Mutant, &rec.Sequence, &createdAt); err != nil {
		return dna.Record{}, err
	}

	t, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return dna.Record{}, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}
	rec.CreatedAt = t

	return rec, nil
}
