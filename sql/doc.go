// Package sql provides a bun-based SQL storage implementation for
// queuectl.
//
// This package implements the queuectl.Store, queuectl.ConfigStore and
// queuectl.Cleaner interfaces using a relational database via
// github.com/uptrace/bun.
//
// # Overview
//
// The SQL backend provides:
//
//   - durable persistence of jobs and configuration
//   - atomic claim transitions
//   - crash-safe lock recovery via locked_at
//   - retry-safe ClaimNext using UPDATE ... RETURNING
//
// It is compatible with SQLite, PostgreSQL and other bun-supported
// dialects, subject to their transactional guarantees. The default
// wiring in cmd/queuectl uses modernc.org/sqlite, a pure-Go SQLite
// driver requiring no cgo toolchain.
//
// # Concurrency model
//
// ClaimNext is implemented using a single atomic UPDATE statement with
// a subquery to avoid races between selection and state transition:
// two concurrent callers can never both claim the same row.
//
// Correct behavior under concurrency depends on proper indexing (see
// InitDB) and the write-contention characteristics of the chosen
// backend. SQLite users are strongly encouraged to enable WAL mode and
// configure an appropriate busy_timeout.
//
// # Schema
//
// InitDB (or MustInitDB) creates, inside a single transaction:
//
//   - the jobs table (if not exists)
//   - the config table (if not exists)
//   - index (state, next_run_at), used by ClaimNext
//   - index (state, locked_at), used by RecoverStale
//   - index (state, updated_at), used by ListDead and Cleaner.Clean
//
// InitDB is idempotent and does not perform destructive migrations.
//
// # Database lifecycle
//
// This package does not manage connection pooling, migrations, or
// database lifecycle. The caller is responsible for creating and
// configuring *bun.DB, connection limits, WAL/busy_timeout
// configuration (for SQLite), and running InitDB before use.
//
// # Limitations
//
// The backend uses state plus timestamp fields to implement claim
// semantics; it does not use lease tokens or optimistic locking
// versions. Delivery semantics remain at-least-once.
package sql
