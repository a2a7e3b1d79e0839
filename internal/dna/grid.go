package dna

import (
	"fmt"
	"strings"
)

// MinSize is the smallest accepted grid dimension.
const MinSize = 4

// ValidationReason categorizes why a grid was rejected.
type ValidationReason string

const (
	// ReasonEmpty indicates a nil or zero-row grid.
	ReasonEmpty ValidationReason = "EMPTY"

	// ReasonTooSmall indicates fewer than MinSize rows.
	ReasonTooSmall ValidationReason = "TOO_SMALL"

	// ReasonNotSquare indicates a row whose length differs from the row count.
	ReasonNotSquare ValidationReason = "NOT_SQUARE"

	// ReasonInvalidBase indicates a character outside {A,T,C,G}.
	ReasonInvalidBase ValidationReason = "INVALID_BASE"
)

// ValidationError reports a structurally invalid grid.
//
// Row and Col are zero-based and only meaningful for the reasons that
// point at a location (-1 otherwise).
type ValidationError struct {
	Reason ValidationReason
	Row    int
	Col    int
	Detail string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid dna: %s", e.Detail)
}

// Grid is a validated N×N matrix of nucleotide bases.
// The zero value is an empty grid and is never returned by Parse.
type Grid struct {
	rows []string
}

// Parse validates rows and returns them as a Grid.
//
// The grid must have at least MinSize rows, every row must be exactly as
// long as the number of rows, and every byte must be one of A, T, C, G.
// The input slice is copied; later changes to it do not affect the Grid.
func Parse(rows []string) (Grid, error) {
	n := len(rows)
	if n == 0 {
		return Grid{}, &ValidationError{
			Reason: ReasonEmpty, Row: -1, Col: -1,
			Detail: "grid has no rows",
		}
	}
	if n < MinSize {
		return Grid{}, &ValidationError{
			Reason: ReasonTooSmall, Row: -1, Col: -1,
			Detail: fmt.Sprintf("grid has %d rows, need at least %d", n, MinSize),
		}
	}

	for i, row := range rows {
		if len(row) != n {
			return Grid{}, &ValidationError{
				Reason: ReasonNotSquare, Row: i, Col: -1,
				Detail: fmt.Sprintf("row %d has length %d, want %d (grid must be %dx%d)", i+1, len(row), n, n, n),
			}
		}
		for j := 0; j < len(row); j++ {
			if !IsBase(row[j]) {
				return Grid{}, &ValidationError{
					Reason: ReasonInvalidBase, Row: i, Col: j,
					Detail: fmt.Sprintf("invalid base %q at row %d, column %d; allowed: A T C G", row[j], i+1, j+1),
				}
			}
		}
	}

	return Grid{rows: append([]string(nil), rows...)}, nil
}

// MustParse is like Parse but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustParse(rows ...string) Grid {
	g, err := Parse(rows)
	if err != nil {
		panic(err)
	}
	return g
}

// IsBase reports whether b is one of the accepted nucleotide letters.
func IsBase(b byte) bool {
	switch b {
	case 'A', 'T', 'C', 'G':
		return true
	}
	return false
}

// Size returns N for an N×N grid.
func (g Grid) Size() int {
	return len(g.rows)
}

// At returns the base at row i, column j.
func (g Grid) At(i, j int) byte {
	return g.rows[i][j]
}

// Rows returns a copy of the grid rows.
func (g Grid) Rows() []string {
	return append([]string(nil), g.rows...)
}

// String renders the grid one row per line.
func (g Grid) String() string {
	return strings.Join(g.rows, "\n")
}
