package dna

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Fingerprint computes the content identity of a grid.
// Equal grids always produce equal fingerprints.
func Fingerprint(g Grid) string {
	return FingerprintRows(g.rows)
}

// FingerprintRows computes the fingerprint of unvalidated rows.
//
// Format: hex(SHA256(row0 + row1 + ... + rowN-1))
//
// The ledger fingerprints before validating so that a previously accepted
// grid is served from storage without being scanned again.
//
// Rows are joined without a separator, so rows that split the same letters
// differently (["AAAAC","CCC",...] and ["AAAA","CCCC",...]) share a
// fingerprint and therefore a stored verdict.
func FingerprintRows(rows []string) string {
	h := sha256.New()
	h.Write([]byte(strings.Join(rows, "")))
	return hex.EncodeToString(h.Sum(nil))
}
