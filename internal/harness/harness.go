package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/mutantd/internal/dna"
	"github.com/roach88/mutantd/internal/ledger"
	"github.com/roach88/mutantd/internal/store"
	"github.com/roach88/mutantd/internal/testutil"
)

// Outcome records what one submission produced.
type Outcome struct {
	Seq         int    `json:"seq"`
	Fingerprint string `json:"fingerprint"`
	Verdict     string `json:"verdict"`
	Error       string `json:"error,omitempty"`
}

// Result is the outcome of a scenario run.
type Result struct {
	Pass     bool
	Outcomes []Outcome
	Stats    dna.Stats
	Errors   []string
}

func (r *Result) addError(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
	r.Pass = false
}

type repository interface {
	ledger.Repository
	Close() error
}

// Run replays scenario against a fresh store.
//
// Expectation mismatches are reported in Result.Errors. A returned error
// means the run itself failed (storage, setup).
func Run(ctx context.Context, scenario *Scenario) (*Result, error) {
	repo, err := openRepository(scenario.Storage)
	if err != nil {
		return nil, err
	}
	defer repo.Close()

	l := ledger.New(repo,
		ledger.WithClock(testutil.NewDeterministicClock()),
		ledger.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)

	result := &Result{Pass: true}
	seq := 0
	for i, sub := range scenario.Submissions {
		times := max(sub.Repeat, 1)
		for range times {
			seq++
			outcome, err := submit(ctx, l, seq, sub.DNA)
			if err != nil {
				return nil, fmt.Errorf("submission %d: %w", i, err)
			}
			result.Outcomes = append(result.Outcomes, outcome)
			if outcome.Verdict != sub.Expect {
				result.addError("submission %d (seq %d): got %s, want %s", i, seq, outcome.Verdict, sub.Expect)
			}
		}
	}

	stats, err := l.Statistics(ctx)
	if err != nil {
		return nil, fmt.Errorf("statistics: %w", err)
	}
	result.Stats = stats

	if want := scenario.ExpectStats; want != nil {
		if stats.CountMutant != want.CountMutant {
			result.addError("count_mutant_dna: got %d, want %d", stats.CountMutant, want.CountMutant)
		}
		if stats.CountHuman != want.CountHuman {
			result.addError("count_human_dna: got %d, want %d", stats.CountHuman, want.CountHuman)
		}
		if want.Ratio != nil && stats.Ratio != *want.Ratio {
			result.addError("ratio: got %g, want %g", stats.Ratio, *want.Ratio)
		}
	}
	return result, nil
}

func submit(ctx context.Context, l *ledger.Ledger, seq int, rows []string) (Outcome, error) {
	outcome := Outcome{Seq: seq, Fingerprint: dna.FingerprintRows(rows)}

	mutant, err := l.Classify(ctx, rows)
	var verr *dna.ValidationError
	switch {
	case errors.As(err, &verr):
		outcome.Verdict = ExpectInvalid
		outcome.Error = verr.Error()
	case err != nil:
		return Outcome{}, err
	case mutant:
		outcome.Verdict = ExpectMutant
	default:
		outcome.Verdict = ExpectHuman
	}
	return outcome, nil
}

func openRepository(storage string) (repository, error) {
	if storage == StorageMemory {
		return store.NewMemory(), nil
	}
	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	return st, nil
}
