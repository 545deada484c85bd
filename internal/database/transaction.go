package database

import "strings"

// Atomic joins statements into a single transaction block. SurrealDB runs the
// block as one unit; if any statement fails, none of them take effect.
//
//	q := database.Atomic(
//	    "LET $id = (UPSERT counter:user SET value += 1 RETURN VALUE value)[0]",
//	    "CREATE type::thing('user', $id) CONTENT $data",
//	)
//	results, err := db.Query(ctx, q, vars)
//
// Use LastResult to read what the final data statement produced.
func Atomic(statements ...string) string {
	var b strings.Builder
	b.WriteString("BEGIN TRANSACTION;\n")
	for _, s := range statements {
		b.WriteString(strings.TrimSuffix(strings.TrimSpace(s), ";"))
		b.WriteString(";\n")
	}
	b.WriteString("COMMIT TRANSACTION;")
	return b.String()
}
