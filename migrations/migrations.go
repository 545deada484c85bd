// Package migrations embeds the SurrealDB schema.
package migrations

import _ "embed"

// Schema is applied by database.Migrate at startup and by the test database helper.
//
//go:embed schema.surql
var Schema string
