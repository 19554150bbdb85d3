package repository

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Open connects to the SQLite database at path. ":memory:" gives a private
// in-memory database, which is what the tests use.
func Open(path string) (*sql.DB, error) {
	dsn := path
	if path != ":memory:" {
		dsn = "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// SQLite has a single writer, and an in-memory database only exists
	// on the connection that created it.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	return db, nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS about_me (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT NOT NULL,
		bio TEXT NOT NULL,
		image_url TEXT,
		linkedin_url TEXT,
		github_url TEXT,
		twitter_url TEXT,
		resume_url TEXT,
		updated_at DATETIME NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS contact_info (
		id TEXT PRIMARY KEY,
		email TEXT,
		phone TEXT,
		location TEXT,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS contact_messages (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		subject TEXT,
		message TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'unread',
		created_at DATETIME NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS projects (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT NOT NULL,
		long_description TEXT,
		demo_url TEXT,
		github_url TEXT,
		image_url TEXT,
		technologies TEXT,
		featured INTEGER NOT NULL DEFAULT 0,
		status TEXT,
		order_index INTEGER NOT NULL DEFAULT 0,
		updated_at DATETIME NOT NULL,
		created_at DATETIME NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS skills (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		category TEXT NOT NULL,
		proficiency INTEGER,
		icon_url TEXT,
		order_index INTEGER NOT NULL DEFAULT 0,
		updated_at DATETIME NOT NULL,
		created_at DATETIME NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS experience (
		id TEXT PRIMARY KEY,
		company TEXT NOT NULL,
		position TEXT NOT NULL,
		employment_type TEXT,
		start_date TEXT,
		end_date TEXT,
		current INTEGER NOT NULL DEFAULT 0,
		description TEXT,
		location TEXT,
		company_url TEXT,
		logo_url TEXT,
		order_index INTEGER NOT NULL DEFAULT 0,
		updated_at DATETIME NOT NULL,
		created_at DATETIME NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS education (
		id TEXT PRIMARY KEY,
		institution TEXT NOT NULL,
		degree TEXT NOT NULL,
		field_of_study TEXT,
		start_date TEXT,
		end_date TEXT,
		current INTEGER NOT NULL DEFAULT 0,
		description TEXT,
		location TEXT,
		grade TEXT,
		image_url TEXT,
		order_index INTEGER NOT NULL DEFAULT 0,
		updated_at DATETIME NOT NULL,
		created_at DATETIME NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS certifications (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		issuer TEXT NOT NULL,
		description TEXT,
		issue_date TEXT,
		expiry_date TEXT,
		credential_id TEXT,
		credential_url TEXT,
		image_url TEXT,
		order_index INTEGER NOT NULL DEFAULT 0,
		updated_at DATETIME NOT NULL,
		created_at DATETIME NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		full_name TEXT,
		role TEXT NOT NULL DEFAULT 'user',
		created_at DATETIME NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS visitors (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		hashed_ip TEXT NOT NULL,
		user_agent TEXT,
		path TEXT,
		timestamp DATETIME NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_visitors_timestamp ON visitors(timestamp)`,
	`CREATE INDEX IF NOT EXISTS idx_contact_messages_created ON contact_messages(created_at)`,
}

// Migrate creates every table the site needs. It is safe to run on every
// start.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// nullable stores empty strings as NULL.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

type rowScanner interface {
	Scan(dest ...any) error
}
