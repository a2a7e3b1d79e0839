// Package store provides durable storage for classification records.
//
// The store implements an append-only table of records with:
//   - One row per distinct grid, keyed by a UNIQUE fingerprint
//   - Insert-or-detect-conflict: concurrent inserts of the same fingerprint
//     resolve to one row, the loser gets dna.AlreadyExists with the winner's
//     record
//   - Count-by-verdict queries for statistics
//
// Two implementations share these semantics: Store (SQLite) and Memory
// (a mutex-guarded map used by tests and by `serve --storage memory`).
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - A single open connection: SQLite allows one writer
package store
