// Package ledger classifies grids once and remembers the verdict.
//
// A Ledger sits between a transport and a Repository. Each grid is
// identified by its fingerprint; the first submission is validated,
// scanned and recorded, later submissions are answered from the record
// without scanning.
//
// Lookup and insert are separate repository calls, so two concurrent first
// submissions of the same grid can both miss the lookup. The repository's
// uniqueness constraint decides the winner; the loser adopts the stored
// verdict. Both paths are supported:
//   - Insert reports dna.AlreadyExists with the winning record
//   - Insert fails with dna.ErrDuplicateFingerprint and the ledger re-reads
package ledger
