// Package client bootstraps the on-device database that backs the
// local-first identity and progression services.
//
// InitDatabase opens (or creates) the SQLite file, limits the pool to a
// single connection because the store is single-device and single-writer,
// and applies the embedded goose migrations. RunMigrations is idempotent.
//
// The special DSN ":memory:" yields a private in-memory database, which is
// handy for throwaway sessions and tests.
package client
