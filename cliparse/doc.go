// Copyright (c) 2026 OpinionHub.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: server listen port (default: 8214)
  - DatabaseURL: database connection string (required)
  - DatabaseType: "sqlite" or "postgres" (default: sqlite)
  - TokenSecret: bearer token signing secret (required)
  - VoterHashSalt: salt for the vote dedup hash (required)
  - ArchiveAfterDays: completed-poll retention window (default: 30)

# CLI Flags

	-p             Server port
	-d             Database URL
	-t             Database type
	-token-secret  Token signing secret
	-voter-salt    Voter hash salt
	-archive-after Retention window in days

# Environment Variables

Flags fall back to environment variables:

	PORT               → -p
	DATABASE_URL       → -d
	DATABASE_TYPE      → -t
	TOKEN_SECRET       → -token-secret
	VOTER_HASH_SALT    → -voter-salt
	ARCHIVE_AFTER_DAYS → -archive-after

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if required values are missing:

  - DATABASE_URL must be provided
  - TOKEN_SECRET must be provided
  - VOTER_HASH_SALT must be provided
*/
package cliparse
