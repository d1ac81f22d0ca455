// Copyright (c) 2026 OpinionHub.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Open connects to the configured database. dbType is "postgres" or
// "sqlite"; the schema below is written to work on both.
func Open(dbType, url string) (*sql.DB, error) {
	switch dbType {
	case "postgres":
		return sql.Open("postgres", url)
	case "sqlite":
		conn, err := sql.Open("sqlite", url)
		if err != nil {
			return nil, err
		}
		// modernc/sqlite serializes writers; a single connection avoids
		// spurious table-lock errors under concurrent requests.
		conn.SetMaxOpenConns(1)
		return conn, nil
	default:
		return nil, fmt.Errorf("unknown database type %q", dbType)
	}
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Polls
CREATE TABLE IF NOT EXISTS poll (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    poll_type TEXT NOT NULL DEFAULT 'single_choice' CHECK (poll_type IN ('single_choice', 'multiple_choice')),
    visibility TEXT NOT NULL DEFAULT 'public' CHECK (visibility IN ('public', 'anonymous')),
    can_change_vote BOOLEAN NOT NULL DEFAULT FALSE,
    end_date TIMESTAMP,
    status TEXT NOT NULL DEFAULT 'draft' CHECK (status IN ('draft', 'active', 'completed', 'archived')),
    created_at TIMESTAMP NOT NULL,
    completed_at TIMESTAMP,
    author_id TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_poll_status_end_date ON poll(status, end_date);
CREATE INDEX IF NOT EXISTS idx_poll_author ON poll(author_id);

-- Options
CREATE TABLE IF NOT EXISTS poll_option (
    id TEXT PRIMARY KEY,
    poll_id TEXT NOT NULL REFERENCES poll(id) ON DELETE CASCADE,
    text TEXT NOT NULL,
    position INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_poll_option_poll_id ON poll_option(poll_id);

-- Votes
-- Voter identity is dual-keyed: legacy_user_id predates accounts,
-- voter_account_id is the unified key for public polls, and voter_hash
-- is the always-derived dedup key that keeps anonymous polls to one
-- vote per voter. voter_hash is NULL only on pre-migration rows.
CREATE TABLE IF NOT EXISTS vote (
    id TEXT PRIMARY KEY,
    poll_id TEXT NOT NULL REFERENCES poll(id) ON DELETE CASCADE,
    legacy_user_id TEXT,
    voter_account_id TEXT,
    voter_hash TEXT,
    created_at TIMESTAMP NOT NULL,
    UNIQUE (poll_id, legacy_user_id),
    UNIQUE (poll_id, voter_account_id),
    UNIQUE (poll_id, voter_hash)
);

CREATE INDEX IF NOT EXISTS idx_vote_poll_id ON vote(poll_id);

-- Vote selections
CREATE TABLE IF NOT EXISTS vote_selection (
    vote_id TEXT NOT NULL REFERENCES vote(id) ON DELETE CASCADE,
    option_id TEXT NOT NULL REFERENCES poll_option(id) ON DELETE CASCADE,
    PRIMARY KEY (vote_id, option_id)
);

CREATE INDEX IF NOT EXISTS idx_vote_selection_option ON vote_selection(option_id);

-- Audit log (append-only; no code path updates or deletes rows)
CREATE TABLE IF NOT EXISTS audit_log (
    id TEXT PRIMARY KEY,
    event_type TEXT NOT NULL,
    poll_id TEXT,
    user_id TEXT,
    details TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_audit_log_poll_id ON audit_log(poll_id);
`
