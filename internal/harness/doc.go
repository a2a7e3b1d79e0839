// Package harness replays submission scenarios against a fresh ledger.
//
// A scenario is a YAML file listing grids in submission order, the verdict
// each one must produce, and the statistics expected at the end:
//
//	name: resubmission
//	description: identical grids are recorded once
//	submissions:
//	  - dna: [ATGCGA, CAGTGC, TTATGT, AGAAGG, CCCCTA, TCACTG]
//	    expect: mutant
//	    repeat: 3
//	expect_stats:
//	  count_mutant_dna: 1
//	  count_human_dna: 0
//
// Each run gets its own store and a deterministic clock, so outcomes can be
// compared against golden files with RunWithGolden.
package harness
