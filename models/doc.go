// Copyright (c) 2026 OpinionHub.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreatePollRequest: title, poll_type, visibility, can_change_vote, end_date, options, publish_now
  - VoteRequest: option_ids
  - IssueTokenRequest: user_id, legacy_user_id

# Response Types

Types for JSON responses:

  - PollDetails: poll, options, tally, total_votes
  - FeedItem: poll plus option/vote counts and a humanized age
  - VoteResponse: message
  - IssueTokenResponse: token
  - ErrorResponse: error, message

# Domain Types

Internal data structures:

  - Poll: poll metadata and lifecycle state
  - Option: voting option with display position
  - TallyRow: per-option vote count and percent
  - AuditEntry: append-only event record, served to the poll author

# Constants

Status values:

	StatusDraft     = "draft"
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusArchived  = "archived"

Poll types:

	TypeSingleChoice   = "single_choice"
	TypeMultipleChoice = "multiple_choice"

Visibility:

	VisibilityPublic    = "public"
	VisibilityAnonymous = "anonymous"

Audit events:

	EventPollCreated   = "POLL_CREATED"
	EventVoteSubmitted = "VOTE_SUBMITTED"
	EventPollCompleted = "POLL_COMPLETED"
	EventPollArchived  = "POLL_ARCHIVED"
*/
package models
