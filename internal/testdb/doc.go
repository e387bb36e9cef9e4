//go:build integration

// Package testdb provides database helpers for integration tests.
//
// Tests run against the database named by LEXIS_TEST_DATABASE_URL when it is
// set. Otherwise a PostgreSQL container is started once per test binary with
// testcontainers and shared by every test. Migrations are applied once from
// the embedded goose files.
//
// Each test runs in its own transaction that is rolled back when it ends:
//
//	func TestWordStore(t *testing.T) {
//	    db := testdb.GetTestDBWithT(t)
//	    testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//	        words := postgres.NewPostgresWordStore(tx, nil)
//	        ...
//	    })
//	}
package testdb
