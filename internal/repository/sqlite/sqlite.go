// Package sqlite implements the repository interfaces using SQLite as the
// storage backend.
//
// WHY SQLITE?
// SQLite is an embedded database — the whole store is a single file next to the
// binary. No separate database server to install, configure, or manage, which
// matches how this site is deployed (one small instance). We use
// modernc.org/sqlite, a pure-Go translation of SQLite, so there is no CGo and
// cross-compilation stays painless.
//
// The four tables (users, services, products, clients) are created idempotently
// at startup with CREATE TABLE IF NOT EXISTS — see initSchema. The column
// layout is kept byte-for-byte compatible with the previous backend's database
// file so an existing rusba.db can be pointed at directly.
package sqlite

import (
	"database/sql"
	"fmt"

	// Blank import: the driver registers itself with database/sql under the
	// name "sqlite" in its init function.
	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB connection pool and implements the repository interfaces.
type DB struct {
	conn *sql.DB
}

// New opens (or creates) the SQLite database at dbPath and initializes the
// schema. Use ":memory:" for an in-memory database in tests.
//
// A schema failure here is fatal by design — the server must not start serving
// requests against a database whose tables may not exist.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// One connection only. SQLite allows a single writer at a time, so a
	// bigger pool just trades write errors for queueing — and a ":memory:"
	// database exists per connection, so a second pooled connection would
	// see no tables at all.
	conn.SetMaxOpenConns(1)

	// sql.Open doesn't touch the file; Ping forces a real connection so a bad
	// path or permission problem surfaces now instead of on the first query.
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL mode allows concurrent reads while a write is in progress — without
	// it SQLite locks the whole file for every write, which stalls a web
	// server under even light mixed traffic.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.initSchema(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: initializing schema: %w", err)
	}

	return db, nil
}

// Close closes the database connection pool. The server defers this during
// graceful shutdown so the WAL is checkpointed and the file lock released.
func (db *DB) Close() error {
	return db.conn.Close()
}

// initSchema creates the four tables if they don't exist yet.
//
// There is deliberately no migration machinery beyond this: the schema is
// stable and CREATE TABLE IF NOT EXISTS is idempotent, so running it on every
// startup is safe on both fresh and existing database files.
func (db *DB) initSchema() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			username   TEXT UNIQUE NOT NULL,
			password   TEXT NOT NULL,
			role       TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS services (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			title       TEXT NOT NULL,
			description TEXT NOT NULL,
			icon        TEXT NOT NULL,
			video_url   TEXT,
			created_at  DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS products (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			name        TEXT NOT NULL,
			description TEXT NOT NULL,
			image       TEXT NOT NULL,
			video_url   TEXT,
			features    TEXT NOT NULL,
			created_at  DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS clients (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			name       TEXT NOT NULL,
			logo       TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}
	return nil
}

// nullableString converts a sql.NullString scanned from a nullable column into
// the *string the models use (nil when the column was NULL).
func nullableString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
