// Package database provides SurrealDB connectivity for the Trust Workers API.
//
// The Database interface abstracts the three query shapes used by repositories:
//
//   - Query: one {status, result} entry per statement
//   - QueryOne: the first record of the first statement, or ErrNotFound
//   - Execute: mutations where the result is not needed
//
// # Errors
//
//   - ErrNotFound: record does not exist
//   - ErrDuplicate: unique index violation (e.g. email already registered)
//   - ErrConnection: database connection issues
//   - ErrQuery: any other statement failure
//
// # Transactions
//
// Atomic wraps statements in BEGIN/COMMIT so a multi-statement write runs as
// one unit. LastResult reads the output of the final statement.
//
// # Schema
//
// Migrate applies an idempotent schema script, normally the embedded one from
// the migrations package.
package database
