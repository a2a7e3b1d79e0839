package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/roach88/mutantd/internal/dna"
)

// Insert stores a new record and returns it with its assigned ID.
//
// Uses ON CONFLICT(fingerprint) DO NOTHING: if another writer stored the
// same fingerprint first, the existing record is read back inside the same
// transaction and returned with dna.AlreadyExists. The caller's record is
// discarded in that case.
func (s *Store) Insert(ctx context.Context, rec dna.Record) (dna.Record, dna.InsertResult, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return dna.Record{}, 0, fmt.Errorf("insert record: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	result, err := tx.ExecContext(ctx, `
		INSERT INTO dna_records
		(fingerprint, is_mutant, dna_sequence, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(fingerprint) DO NOTHING
	`,
		rec.Fingerprint,
		rec.Mutant,
		rec.Sequence,
		rec.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return dna.Record{}, 0, fmt.Errorf("insert record: %w", dna.ErrDuplicateFingerprint)
		}
		return dna.Record{}, 0, fmt.Errorf("insert record: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return dna.Record{}, 0, fmt.Errorf("insert record: rows affected: %w", err)
	}

	if rowsAffected == 0 {
		// Conflict - another writer got there first
		existing, err := scanRecord(tx.QueryRowContext(ctx, selectByFingerprint, rec.Fingerprint))
		if err != nil {
			return dna.Record{}, 0, fmt.Errorf("insert record: select existing: %w", err)
		}
		if err := tx.Commit(); err != nil {
			return dna.Record{}, 0, fmt.Errorf("insert record: commit (existing): %w", err)
		}
		return existing, dna.AlreadyExists, nil
	}

	rec.ID, err = result.LastInsertId()
	if err != nil {
		return dna.Record{}, 0, fmt.Errorf("insert record: last insert id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return dna.Record{}, 0, fmt.Errorf("insert record: commit: %w", err)
	}

	return rec, dna.Inserted, nil
}

// isUniqueViolation reports whether err is a SQLite UNIQUE constraint failure.
func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return false
}
