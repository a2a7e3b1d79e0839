// Package dna provides the grid model, validation and mutant detection.
//
// This package contains the pure parts of the system. All other internal
// packages import dna; dna imports nothing internal.
//
// Key design constraints:
//   - A Grid is only obtainable through Parse, so every Grid is square,
//     at least MinSize wide and spelled over {A,T,C,G}
//   - Detection is side-effect free and safe for concurrent use
//   - Fingerprints are hex SHA-256 over the concatenated rows
//   - All JSON tags use snake_case
package dna
