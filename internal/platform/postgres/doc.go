// Package postgres provides PostgreSQL-specific implementations for the data
// storage interfaces defined in the internal/store package, together with the
// embedded goose migrations that create the schema they rely on.
//
// Stores accept a store.DBTX so that the same code runs against a *sql.DB
// pool or inside a *sql.Tx. PostgreSQL errors are translated into store
// sentinel errors by MapError before they leave this package.
package postgres
