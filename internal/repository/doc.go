// Package repository implements the SurrealDB data access layer for the
// Trust Workers API.
//
// UserRepository and JobRepository accept a database.Database and satisfy
// the repository interfaces declared in the service package. Queries are
// parameterized with $variables and records are addressed with
// type::thing(table, id).
//
// # Integer Identifiers
//
// Records use integer keys (user:1, job_post:7). Create increments
// counter:<table> and creates the record inside one transaction, so ids are
// unique and increasing.
//
// # Missing Records
//
// Lookups by id or email return nil, nil when nothing matches. Callers decide
// whether that is an error.
package repository
