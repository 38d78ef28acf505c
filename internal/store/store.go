// Package store owns the relational schema for users, conversations and
// emotion logs. The schema is created at startup and checked by /health;
// the live chat path does not read or write it.
package store

import (
	"context"
	"database/sql"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	username   TEXT UNIQUE,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS conversations (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id    INTEGER REFERENCES users(id),
	timestamp  TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	role       TEXT,
	content    TEXT,
	audio_path TEXT
);

CREATE TABLE IF NOT EXISTS emotion_logs (
	id        INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id   INTEGER REFERENCES users(id),
	timestamp TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	emotion   TEXT,
	intensity INTEGER
);
`

type Store struct {
	db *sql.DB
}

// Open connects to the sqlite database at path and ensures the schema
// exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Ping verifies the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close() error {
	return s.db.Close()
}
