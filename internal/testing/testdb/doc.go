// Package testdb provides SurrealDB-backed test databases.
//
// Each call to New connects to the server named by TEST_DB_HOST/TEST_DB_PORT
// (default localhost:8000), creates a unique namespace, applies the embedded
// schema and removes the namespace when the test ends. When no server is
// reachable the calling test is skipped.
//
//	func TestUserRepository_Create(t *testing.T) {
//	    tdb := testdb.New(t)
//	    repo := repository.NewUserRepository(tdb.DB)
//	    ...
//	}
package testdb
