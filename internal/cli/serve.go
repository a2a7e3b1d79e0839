package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/roach88/mutantd/internal/config"
	"github.com/roach88/mutantd/internal/httpapi"
	"github.com/roach88/mutantd/internal/ledger"
)

// ServeOptions holds flags for the serve command.
type ServeOptions struct {
	*RootOptions
	ConfigPath string
	Listen     string
	Database   string
	Storage    string

	// IDs overrides the request ID generator (for testing).
	// If nil, defaults to httpapi.UUIDv7Generator.
	IDs httpapi.IDGenerator
}

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the mutant detection HTTP API",
		Long: `Serve POST /mutant, GET /stats and GET /healthz.

Settings come from the optional --config file (YAML or CUE); --listen,
--db and --storage override it. The server stops on SIGINT or SIGTERM,
draining in-flight requests for up to shutdown_timeout.

Example:
  mutantd serve --db ./mutantd.db
  mutantd serve --config mutantd.yaml --listen :9090
  mutantd serve --storage memory --verbose`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.ConfigPath, "config", "", "path to a YAML or CUE config file")
	cmd.Flags().StringVar(&opts.Listen, "listen", "", "listen address (overrides config)")
	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (overrides config)")
	cmd.Flags().StringVar(&opts.Storage, "storage", "", "storage backend: sqlite|memory (overrides config)")

	return cmd
}

func runServe(opts *ServeOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	logger := setupLogging(formatter.GetErrWriter(), opts.Verbose)

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeConfig, "failed to load config", err)
	}
	if opts.Listen != "" {
		cfg.Listen = opts.Listen
	}
	if opts.Database != "" {
		cfg.DBPath = opts.Database
	}
	if opts.Storage != "" {
		cfg.Storage = opts.Storage
	}
	if err := cfg.Validate(); err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeConfig, "invalid config", err)
	}

	repo, err := openRepository(cfg.Storage, cfg.DBPath)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStorage, "failed to open database", err)
	}
	defer closeRepository(repo)

	ids := opts.IDs
	if ids == nil {
		ids = httpapi.UUIDv7Generator{}
	}
	l := ledger.New(repo, ledger.WithLogger(logger))
	srv := &http.Server{
		Handler: httpapi.NewRouter(l, httpapi.Options{
			MaxBodyBytes: cfg.MaxBodyBytes,
			Logger:       logger,
			IDs:          ids,
			Health:       repo,
		}),
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}

	ln, err := net.Listen("tcp", cfg.Listen)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to listen", err)
	}

	// Use command's context if available (for testing), otherwise create one
	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, stop := signal.NotifyContext(parentCtx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down", "timeout", cfg.ShutdownTimeout)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	logger.Info("server started", "addr", ln.Addr().String(), "storage", cfg.Storage)
	fmt.Fprintf(cmd.OutOrStdout(), "Listening on %s\n", ln.Addr())

	if err := g.Wait(); err != nil {
		return WrapExitError(ExitFailure, "server error", err)
	}

	logger.Info("server stopped gracefully")
	return nil
}
