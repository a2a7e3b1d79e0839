package dna

// RunLength is the number of identical consecutive bases that make a run.
const RunLength = 4

// mutantThreshold is the number of runs at which a grid is a mutant.
const mutantThreshold = 2

// Direction identifies one of the four scan directions.
type Direction int

const (
	// Horizontal scans left to right along a row.
	Horizontal Direction = iota
	// Vertical scans top to bottom along a column.
	Vertical
	// DiagonalDown scans from top-left to bottom-right.
	DiagonalDown
	// DiagonalUp scans from bottom-left to top-right.
	DiagonalUp
)

var directionNames = [...]string{"horizontal", "vertical", "diagonal_down", "diagonal_up"}

// String returns the snake_case name of the direction.
func (d Direction) String() string {
	if d < 0 || int(d) >= len(directionNames) {
		return "unknown"
	}
	return directionNames[d]
}

// MarshalText lets Direction serialize by name in JSON output.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// step is the (row, col) increment between consecutive cells of a run.
var steps = [...]struct{ dr, dc int }{
	Horizontal:   {0, 1},
	Vertical:     {1, 0},
	DiagonalDown: {1, 1},
	DiagonalUp:   {-1, 1},
}

// Run is a qualifying run: RunLength cells sharing one base.
// Row and Col locate the first cell in scan order.
type Run struct {
	Direction Direction `json:"direction"`
	Row       int       `json:"row"`
	Col       int       `json:"col"`
	Base      string    `json:"base"`
}

// Detect reports whether g holds more than one qualifying run.
//
// Scanning stops at the second run; only "more than one" matters.
func Detect(g Grid) bool {
	return len(Scan(g, mutantThreshold)) >= mutantThreshold
}

// Scan returns qualifying runs in a fixed enumeration order, stopping once
// limit runs have been found. A limit <= 0 scans the whole grid.
//
// Order:
//  1. Horizontal: each row i, each start column j in [0, N-4]
//  2. Vertical: each column j, each start row i in [0, N-4]
//  3. DiagonalDown: each start (i, j) with i, j in [0, N-4]
//  4. DiagonalUp: each start row i in [3, N-1], column j in [0, N-4]
//
// Windows may overlap, so a line of five identical bases counts twice.
func Scan(g Grid, limit int) []Run {
	s := scanner{grid: g, limit: limit}
	n := g.Size()
	last := n - RunLength

	for i := 0; i < n; i++ {
		for j := 0; j <= last; j++ {
			if s.visit(Horizontal, i, j) {
				return s.runs
			}
		}
	}
	for j := 0; j < n; j++ {
		for i := 0; i <= last; i++ {
			if s.visit(Vertical, i, j) {
				return s.runs
			}
		}
	}
	for i := 0; i <= last; i++ {
		for j := 0; j <= last; j++ {
			if s.visit(DiagonalDown, i, j) {
				return s.runs
			}
		}
	}
	for i := RunLength - 1; i < n; i++ {
		for j := 0; j <= last; j++ {
			if s.visit(DiagonalUp, i, j) {
				return s.runs
			}
		}
	}
	return s.runs
}

type scanner struct {
	grid  Grid
	limit int
	runs  []Run
}

// visit records the window starting at (i, j) if it qualifies and reports
// whether the limit has been reached.
func (s *scanner) visit(d Direction, i, j int) bool {
	if !s.grid.uniform(d, i, j) {
		return false
	}
	s.runs = append(s.runs, Run{Direction: d, Row: i, Col: j, Base: string(s.grid.At(i, j))})
	return s.limit > 0 && len(s.runs) >= s.limit
}

// uniform reports whether the RunLength cells from (i, j) along d match.
func (g Grid) uniform(d Direction, i, j int) bool {
	st := steps[d]
	first := g.rows[i][j]
	for k := 1; k < RunLength; k++ {
		if g.rows[i+k*st.dr][j+k*st.dc] != first {
			return false
		}
	}
	return true
}
