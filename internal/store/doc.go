// Package store provides SQLite-backed durable storage for document
// records, one row per document keyed by id.
//
// Semantics:
//   - Every operation runs in its own implicit transaction; a completed
//     write is durable before the call returns, which is what gives
//     same-flow read-after-write visibility.
//   - Insert is a strict add (vault.ErrDuplicateID on conflict);
//     Upsert replaces-or-creates; Remove is a no-op for absent ids.
//   - RemoveAll deletes per id and is NOT atomic as a whole: a failure
//     mid-sequence reports which ids were removed so cascade delete can
//     surface the orphans.
//   - No cross-call isolation: two Upserts racing on the same id are
//     last-commit-wins; callers serialize their own read-modify-write.
//
// The store handle is constructed explicitly at startup and passed to
// every component that needs it. There is no process-wide singleton.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - single-connection pool: SQLite supports one writer at a time
package store
