// Copyright (c) 2026 OpinionHub.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the OpinionHub API server.

OpinionHub is a polling service: authors draft polls with options,
publish them for voting, and export the results. Votes are deduplicated
per voter, polls auto-complete on their end date, and completed polls
are archived after a retention window.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=postgres://... TOKEN_SECRET=... VOTER_HASH_SALT=... go run main.go

Or with flags:

	go run main.go -p 8214 -d "postgres://..." -token-secret ... -voter-salt ...

# Configuration

Required settings:

  - DATABASE_URL (-d): database connection string
  - TOKEN_SECRET (-token-secret): bearer token signing secret
  - VOTER_HASH_SALT (-voter-salt): salt for the vote dedup hash

Optional settings:

  - PORT (-p): server port (default: 8214)
  - DATABASE_TYPE (-t): "sqlite" or "postgres" (default: sqlite)
  - ARCHIVE_AFTER_DAYS (-archive-after): completed-poll retention (default: 30)

# Architecture

The server wires a poll engine behind thin HTTP handlers:

  - polls: the engine (drafts, publishing, voting, tally, lifecycle sweeps)
  - scheduler: runs the lifecycle sweeps on a cadence
  - export: CSV and XLSX result rendering
  - notify: WebSocket fan-out of result-change signals
  - handlers: HTTP request handlers
  - router: route definitions using Go 1.22+ routing
  - middleware: auth, CORS, logging, JSON helpers
  - auth: bearer tokens and the voter hash
  - models: request/response and domain types
  - db: driver selection and schema creation
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main
