package cli

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/mutantd/internal/dna"
	"github.com/roach88/mutantd/internal/ledger"
)

// CheckOptions holds flags for the check command.
type CheckOptions struct {
	*RootOptions
	Database string
}

// CheckResult is the JSON payload of a successful check.
type CheckResult struct {
	Mutant      bool      `json:"mutant"`
	Verdict     string    `json:"verdict"`
	Fingerprint string    `json:"fingerprint"`
	Recorded    bool      `json:"recorded"`
	Runs        []dna.Run `json:"runs,omitempty"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "check <file|->",
		Short: "Classify a single grid",
		Long: `Classify one DNA grid read from a file or stdin ("-").

The input is either a JSON object {"dna": ["ATGC", ...]} or one row per
line. Without --db the grid is only validated and scanned; with --db it
goes through the ledger and the verdict is recorded.

Example:
  mutantd check grid.json
  printf 'AAAA\nCCCC\nTCAG\nGGTC\n' | mutantd check -
  mutantd check --db ./mutantd.db --format json grid.txt`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "record the verdict in this SQLite database")

	return cmd
}

func runCheck(opts *CheckOptions, source string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	data, err := readSource(source, cmd.InOrStdin())
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeInput, "failed to read input", err)
	}
	rows, err := parseRows(data)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeInput, "failed to decode input", err)
	}

	result := CheckResult{Fingerprint: dna.FingerprintRows(rows)}
	g, parseErr := dna.Parse(rows)
	if parseErr == nil {
		result.Runs = dna.Scan(g, 0)
	}

	if opts.Database == "" {
		if parseErr != nil {
			return failInvalid(formatter, parseErr)
		}
		result.Mutant = dna.Detect(g)
	} else {
		setupLogging(formatter.GetErrWriter(), opts.Verbose)
		repo, err := openRepository("", opts.Database)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeStorage, "failed to open database", err)
		}
		defer closeRepository(repo)

		mutant, err := ledger.New(repo).Classify(cmd.Context(), rows)
		var verr *dna.ValidationError
		switch {
		case errors.As(err, &verr):
			return failInvalid(formatter, err)
		case err != nil:
			return formatter.Fail(ExitFailure, ErrCodeStorage, "failed to classify", err)
		}
		result.Mutant = mutant
		result.Recorded = true
	}

	result.Verdict = verdictName(result.Mutant)
	for _, run := range result.Runs {
		formatter.VerboseLog("run %s at (%d,%d) base %s", run.Direction, run.Row, run.Col, run.Base)
	}
	return formatter.Success(result, result.Verdict+"\n")
}

func failInvalid(formatter *OutputFormatter, err error) error {
	_ = formatter.Error(ErrCodeInvalidDNA, err.Error(), nil)
	return WrapExitError(ExitFailure, "invalid dna", err)
}

func verdictName(mutant bool) string {
	if mutant {
		return "mutant"
	}
	return "human"
}

func readSource(source string, stdin io.Reader) ([]byte, error) {
	if source == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(source)
}

// parseRows accepts {"dna": [...]} JSON or newline-separated rows.
// Blank lines and surrounding whitespace are ignored in the row format.
func parseRows(data []byte) ([]string, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.New("input is empty")
	}

	if trimmed[0] == '{' {
		var req struct {
			DNA []string `json:"dna"`
		}
		if err := json.Unmarshal(trimmed, &req); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
		if req.DNA == nil {
			return nil, errors.New(`"dna" is missing or null`)
		}
		return req.DNA, nil
	}

	var rows []string
	scanner := bufio.NewScanner(bytes.NewReader(trimmed))
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			rows = append(rows, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return rows, nil
}
