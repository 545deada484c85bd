// Package fixtures provides test data factories for the Trust Workers API.
//
// A Factory writes through repository Create methods, so the same fixtures
// work against SurrealDB (testdb) and the in-memory store (memstore):
//
//	store := memstore.New()
//	f := fixtures.New(store.Users(), store.Jobs())
//	poster := f.CreateUser(t)
//	worker := f.CreateWorker(t, "plumbing", "Western")
//	job := f.CreateJob(t, poster, fixtures.WithCategory("plumbing"))
//
// Every fixture user has the password DefaultPassword.
package fixtures
