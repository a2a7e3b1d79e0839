package cli

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/mutantd/internal/testutil"
)

func TestCheck_Text(t *testing.T) {
	tests := []struct {
		name string
		rows []string
		want string
	}{
		{"mutant", testutil.MutantRows, "mutant\n"},
		{"human", testutil.HumanRows, "human\n"},
		{"single run", testutil.SingleRunRows, "human\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := execute(t, strings.NewReader(rowsInput(tt.rows)), "check", "-")
			require.NoError(t, err)
			assert.Equal(t, tt.want, stdout)
		})
	}
}

func TestCheck_JSONFileInput(t *testing.T) {
	path := writeInput(t, "grid.json", `{"dna":["ATGCGA","CAGTGC","TTATGT","AGAAGG","CCCCTA","TCACTG"]}`)

	stdout, _, err := execute(t, nil, "--format", "json", "check", path)
	require.NoError(t, err)
	newGoldie(t).Assert(t, "check_mutant_json", []byte(stdout))
}

func TestCheck_RowInputToleratesWhitespace(t *testing.T) {
	input := "\n  ATGCGA\r\nCAGTGC\n\nTTATGT\nAGAAGG  \nCCCCTA\nTCACTG\n\n"

	stdout, _, err := execute(t, strings.NewReader(input), "check", "-")
	require.NoError(t, err)
	assert.Equal(t, "mutant\n", stdout)
}

func TestCheck_VerboseListsRuns(t *testing.T) {
	stdout, stderr, err := execute(t, strings.NewReader(rowsInput(testutil.MutantRows)), "check", "-v", "-")
	require.NoError(t, err)

	assert.Equal(t, "mutant\n", stdout)
	assert.Contains(t, stderr, "run horizontal at (4,0) base C")
	assert.Contains(t, stderr, "run vertical at (0,4) base G")
	assert.Contains(t, stderr, "run diagonal_down at (0,0) base A")
}

func TestCheck_InvalidGrid(t *testing.T) {
	stdout, _, err := execute(t, strings.NewReader(rowsInput(testutil.InvalidBaseRows)), "--format", "json", "check", "-")
	require.Error(t, err)

	assert.Equal(t, ExitFailure, GetExitCode(err))
	newGoldie(t).Assert(t, "check_invalid_json", []byte(stdout))
}

func TestCheck_InvalidGridText(t *testing.T) {
	stdout, _, err := execute(t, strings.NewReader(rowsInput(testutil.TooSmallRows)), "check", "-")
	require.Error(t, err)

	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Equal(t, "Error [E002]: invalid dna: grid has 3 rows, need at least 4\n", stdout)
}

func TestCheck_BadInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", "  \n\n"},
		{"malformed json", `{"dna": [`},
		{"null dna", `{"dna": null}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := execute(t, strings.NewReader(tt.input), "check", "-")
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
			assert.Contains(t, stdout, "Error [E001]: failed to decode input")
		})
	}
}

func TestCheck_MissingFile(t *testing.T) {
	_, _, err := execute(t, nil, "check", "/nonexistent/grid.txt")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestCheck_RecordsInLedger(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "ledger.db")

	for _, rows := range [][]string{testutil.MutantRows, testutil.MutantRows, testutil.HumanRows} {
		stdout, _, err := execute(t, strings.NewReader(rowsInput(rows)), "--format", "json", "check", "--db", dbPath, "-")
		require.NoError(t, err)
		assert.Contains(t, stdout, `"recorded":true`)
	}

	stdout, _, err := execute(t, nil, "stats", "--db", dbPath)
	require.NoError(t, err)
	assert.Equal(t, "mutants: 1\nhumans:  1\nratio:   1.00\n", stdout)
}

func TestCheck_InvalidGridNotRecorded(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "ledger.db")

	_, _, err := execute(t, strings.NewReader(rowsInput(testutil.InvalidBaseRows)), "check", "--db", dbPath, "-")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	stdout, _, err := execute(t, nil, "--format", "json", "stats", "--db", dbPath)
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"ok","data":{"count_mutant_dna":0,"count_human_dna":0,"ratio":0}}`, stdout)
}
