package cli

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/roach88/mutantd/internal/ledger"
)

// StatsOptions holds flags for the stats command.
type StatsOptions struct {
	*RootOptions
	Database string
}

// NewStatsCommand creates the stats command.
func NewStatsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &StatsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show mutant and human counts",
		Long: `Show how many distinct mutant and human grids the ledger holds,
and the mutant to human ratio (0 when no human has been recorded).

Example:
  mutantd stats --db ./mutantd.db
  mutantd stats --db ./mutantd.db --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runStats(opts *StatsOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	setupLogging(formatter.GetErrWriter(), opts.Verbose)

	// Opening a missing path would create an empty ledger and report zeros.
	if _, err := os.Stat(opts.Database); err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStorage, "database not found", err)
	}

	repo, err := openRepository("", opts.Database)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStorage, "failed to open database", err)
	}
	defer closeRepository(repo)

	stats, err := ledger.New(repo).Statistics(cmd.Context())
	if err != nil {
		return formatter.Fail(ExitFailure, ErrCodeStorage, "failed to read statistics", err)
	}

	p := message.NewPrinter(language.English)
	text := p.Sprintf("mutants: %d\nhumans:  %d\nratio:   %.2f\n",
		stats.CountMutant, stats.CountHuman, stats.Ratio)
	return formatter.Success(stats, text)
}
