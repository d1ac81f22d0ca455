// Copyright (c) 2026 OpinionHub.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles driver selection and database schema creation.

# Opening a Database

Open picks the driver from the configured type:

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)

"postgres" uses lib/pq, "sqlite" uses modernc.org/sqlite (pure Go, no
cgo). The schema and all queries are written to run on both.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

The schema includes:

  - poll: poll metadata and lifecycle state
  - poll_option: voting options per poll, ordered by position
  - vote: one row per voter per poll
  - vote_selection: options chosen by a vote
  - audit_log: append-only event trail

# Relationships

	poll 1──* poll_option
	poll 1──* vote
	vote 1──* vote_selection
	poll 1──* audit_log

All foreign keys use ON DELETE CASCADE.

# Voter Keys

The vote table carries three voter keys, each unique per poll:

  - legacy_user_id: set only on rows migrated from the pre-account scheme
  - voter_account_id: the account, stored for public polls only
  - voter_hash: HMAC-derived dedup key, set on every new vote

A voter matching any of the three already has a vote. The hash keeps
anonymous polls to one vote per voter without a readable identity.
*/
package db
