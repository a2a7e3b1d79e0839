package testutil

// Grid fixtures shared across package tests.
var (
	// MutantRows has a horizontal, a vertical and a diagonal run.
	MutantRows = []string{"ATGCGA", "CAGTGC", "TTATGT", "AGAAGG", "CCCCTA", "TCACTG"}

	// HumanRows has no qualifying run.
	HumanRows = []string{"ATGCGA", "CAGTGC", "TTATTT", "AGACGG", "GCGTCA", "TCACTG"}

	// SingleRunRows has exactly one run, which is not enough.
	SingleRunRows = []string{"AAAATG", "TGCAGT", "GCTTCT", "CGATCT", "AGTACG", "TGACTA"}

	// TooSmallRows is 3x3.
	TooSmallRows = []string{"ATG", "CAG", "TTA"}

	// InvalidBaseRows contains an X.
	InvalidBaseRows = []string{"ATGCGA", "CAGTGC", "TTATXT", "AGAAGG", "CCCCTA", "TCACTG"}
)

// Clone returns a copy of rows so tests can mutate fixtures safely.
func Clone(rows []string) []string {
	return append([]string(nil), rows...)
}
