// Package testdb provides database fixtures for tests.
//
// Every call to Open returns a freshly migrated database. By default it is an
// in-memory SQLite database private to the test; when DATABASE_URL is set the
// tests run against that PostgreSQL instance instead and the tables are
// truncated on cleanup.
package testdb
