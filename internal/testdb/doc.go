// Package testdb provides helpers for tests that run against a real
// PostgreSQL database.
//
// Tests using it are skipped unless TASKER_TEST_DATABASE_URL (or
// DATABASE_URL) is set. Each test runs inside a transaction that is rolled
// back afterwards, so tests can share one database without cleanup:
//
//	func TestSomething(t *testing.T) {
//		db := testdb.Open(t)
//		testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//			users := postgres.NewPostgresUserStore(tx, nil)
//			// ...
//		})
//	}
package testdb
