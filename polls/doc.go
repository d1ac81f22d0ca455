// Copyright (c) 2026 OpinionHub.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package polls implements the poll engine: drafts, publishing, voting,
tallying, the feed, the audit trail, and the lifecycle sweeps.

# Service

All operations hang off a Service bound to a database and the voter
hash salt:

	svc := polls.NewService(conn, cfg.VoterHashSalt)

# Lifecycle

Polls progress through draft → active → completed → archived. Authors
create drafts and publish them; the sweeps drive the rest:

	completed, err := svc.CompleteExpiredPolls()
	archived, err := svc.ArchiveOldPolls(retentionDays)

Sweeps are idempotent and safe to run concurrently: each row is updated
with a status guard, so a poll is completed and audited at most once.

# Voting

Vote validates, dedupes, and records atomically in one transaction:

	err := svc.Vote(pollID, voterID, legacyID, optionIDs)

A voter is matched against all three stored keys (legacy, account,
hash), including a legacy key that differs from the account id, so
pre-migration votes still block duplicates. When the poll
permits changes, a revote replaces the selection set in place and
backfills the newer keys on legacy rows. Anonymous polls skip the
readable account key and rely on the hash alone.

# Errors

Callers branch on the error kind:

  - ErrNotFound: missing poll, or a draft viewed by a non-author
  - ErrUnauthorized: author-only operation by someone else
  - *ValidationError: bad input (empty title, arity, unknown option)
  - *StateError: legal input against the wrong state (draft vote,
    expired poll, vote change not permitted)
*/
package polls
