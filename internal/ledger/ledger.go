package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/roach88/mutantd/internal/dna"
)

// ErrStorageUnavailable wraps every repository failure surfaced by the
// ledger. Validation errors are never wrapped with it.
var ErrStorageUnavailable = errors.New("storage unavailable")

// Repository is the persistence collaborator of a Ledger.
//
// Implementations must treat the fingerprint as unique. Insert either
// stores the record (dna.Inserted), returns the record stored first
// (dna.AlreadyExists), or fails with dna.ErrDuplicateFingerprint.
type Repository interface {
	FindByFingerprint(ctx context.Context, fingerprint string) (dna.Record, bool, error)
	Insert(ctx context.Context, rec dna.Record) (dna.Record, dna.InsertResult, error)
	CountByVerdict(ctx context.Context, mutant bool) (int64, error)
}

// Ledger deduplicates grids and answers classification statistics.
//
// Thread-safety: a Ledger is safe for concurrent use if its Repository is.
type Ledger struct {
	repo   Repository
	clock  Clock
	logger *slog.Logger
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithClock sets the clock used to stamp new records.
func WithClock(c Clock) Option {
	return func(l *Ledger) { l.clock = c }
}

// WithLogger sets the logger; the default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(l *Ledger) { l.logger = logger }
}

// New creates a Ledger over repo.
func New(repo Repository, opts ...Option) *Ledger {
	l := &Ledger{
		repo:   repo,
		clock:  SystemClock{},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Classify returns whether rows describe a mutant, recording the verdict
// on first sight.
//
// A nil grid is not a mutant and is not recorded. A grid already on record
// returns the stored verdict without validation or scanning. A new grid
// that fails validation returns a *dna.ValidationError.
func (l *Ledger) Classify(ctx context.Context, rows []string) (bool, error) {
	if rows == nil {
		return false, nil
	}

	fp := dna.FingerprintRows(rows)
	existing, found, err := l.repo.FindByFingerprint(ctx, fp)
	if err != nil {
		return false, storageError("lookup", err)
	}
	if found {
		l.logger.Debug("classification served from ledger", "fingerprint", short(fp), "mutant", existing.Mutant)
		return existing.Mutant, nil
	}

	g, err := dna.Parse(rows)
	if err != nil {
		return false, err
	}
	mutant := dna.Detect(g)

	rec, err := dna.NewRecord(g, mutant, l.clock.Now())
	if err != nil {
		return false, fmt.Errorf("classify: %w", err)
	}

	stored, result, err := l.repo.Insert(ctx, rec)
	if errors.Is(err, dna.ErrDuplicateFingerprint) {
		return l.reread(ctx, fp)
	}
	if err != nil {
		return false, storageError("insert", err)
	}

	l.logger.Debug("classification recorded",
		"fingerprint", short(fp),
		"mutant", stored.Mutant,
		"result", result,
		"size", g.Size(),
	)
	return stored.Mutant, nil
}

// reread resolves a lost insert race by adopting the winner's verdict.
func (l *Ledger) reread(ctx context.Context, fp string) (bool, error) {
	rec, found, err := l.repo.FindByFingerprint(ctx, fp)
	if err != nil {
		return false, storageError("reread", err)
	}
	if !found {
		return false, storageError("reread", fmt.Errorf("record %s vanished after duplicate insert", short(fp)))
	}
	l.logger.Debug("classification race resolved", "fingerprint", short(fp), "mutant", rec.Mutant)
	return rec.Mutant, nil
}

// Statistics returns the mutant and human counts and their ratio.
func (l *Ledger) Statistics(ctx context.Context) (dna.Stats, error) {
	mutants, err := l.repo.CountByVerdict(ctx, true)
	if err != nil {
		return dna.Stats{}, storageError("count mutants", err)
	}
	humans, err := l.repo.CountByVerdict(ctx, false)
	if err != nil {
		return dna.Stats{}, storageError("count humans", err)
	}
	return dna.NewStats(mutants, humans), nil
}

func storageError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStorageUnavailable, op, err)
}

// short trims a fingerprint for log lines.
func short(fp string) string {
	if len(fp) > 12 {
		return fp[:12]
	}
	return fp
}
