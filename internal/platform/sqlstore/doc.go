// Package sqlstore provides the SQL implementations of the store.AuthorStore
// and store.BookStore interfaces. Queries are built with squirrel so the same
// code runs against PostgreSQL (pgx) and SQLite (go-sqlite3); the dialect only
// changes the placeholder format, the driver name and the embedded goose
// migrations used to create the schema.
package sqlstore
