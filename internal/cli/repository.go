package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/roach88/mutantd/internal/config"
	"github.com/roach88/mutantd/internal/ledger"
	"github.com/roach88/mutantd/internal/store"
)

// repository is a ledger backend the CLI can health-check and close.
type repository interface {
	ledger.Repository
	Ping(ctx context.Context) error
	Close() error
}

func openRepository(storage, dbPath string) (repository, error) {
	switch storage {
	case config.StorageMemory:
		slog.Warn("using in-memory storage; records are lost on exit")
		return store.NewMemory(), nil
	case config.StorageSQLite, "":
		slog.Info("opening database", "path", dbPath)
		st, err := store.Open(dbPath)
		if err != nil {
			return nil, err
		}
		return st, nil
	default:
		return nil, fmt.Errorf("unknown storage %q", storage)
	}
}

func closeRepository(repo repository) {
	if err := repo.Close(); err != nil {
		slog.Error("error closing database", "error", err)
	}
}
