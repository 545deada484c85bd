package database

import (
	"context"
	"errors"
)

// Standard errors for database operations.
// Use errors.Is() to check these error types in calling code.
var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate indicates a unique constraint violation (e.g., duplicate email).
	ErrDuplicate = errors.New("duplicate record")

	// ErrConnection indicates a failure to connect to or communicate with the database.
	ErrConnection = errors.New("database connection error")

	// ErrQuery indicates a query execution failure (syntax error, invalid reference, etc.).
	ErrQuery = errors.New("query error")
)

// Database defines the interface for database operations
type Database interface {
	// Connection management
	Connect(ctx context.Context) error
	Close() error
	Ping(ctx context.Context) error

	// Query executes a query and returns one {status, result} entry per statement
	Query(ctx context.Context, query string, vars map[string]interface{}) ([]interface{}, error)

	// QueryOne executes a query and returns the first record of the first statement
	QueryOne(ctx context.Context, query string, vars map[string]interface{}) (interface{}, error)

	// Execute runs a query without returning results (for mutations)
	Execute(ctx context.Context, query string, vars map[string]interface{}) error
}

// Config holds database configuration
type Config struct {
	Host      string
	Port      string
	User      string
	Password  string
	Namespace string
	Database  string
}

// Migrate applies a schema script. Scripts are expected to be idempotent
// (DEFINE ... IF NOT EXISTS) so this runs on every start.
func Migrate(ctx context.Context, db Database, schema string) error {
	if err := db.Execute(ctx, schema, nil); err != nil {
		return err
	}
	return nil
}

// LastResult returns the records produced by the final statement of a
// multi-statement query. Trailing statements without a value (COMMIT, LET)
// are skipped.
func LastResult(results []interface{}) []interface{} {
	for i := len(results) - 1; i >= 0; i-- {
		resp, ok := results[i].(map[string]interface{})
		if !ok || resp["result"] == nil {
			continue
		}
		if rows, ok := resp["result"].([]interface{}); ok {
			return rows
		}
		return []interface{}{resp["result"]}
	}
	return nil
}
