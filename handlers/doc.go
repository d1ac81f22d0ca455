// Copyright (c) 2026 OpinionHub.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the OpinionHub API.

# Handler Types

Each handler is a struct holding its dependencies:

  - PollHandler: poll lifecycle, the feed, and the audit trail
  - VoteHandler: vote submission and live result subscriptions
  - ExportHandler: CSV and XLSX result downloads
  - TokenHandler: bearer token issuance (dev/test)

Handlers are created via constructor functions:

	pollHandler := handlers.NewPollHandler(svc)

The handlers stay thin: they parse the request, call the poll engine,
and map engine errors to status codes (validation 400, not found 404,
not the author 403, wrong state 409).

# Poll Lifecycle

Polls progress through: draft → active → completed → archived

	POST /polls              → CreatePoll (draft, or active with publish_now)
	POST /polls/{id}/publish → PublishPoll (author only)

The completed and archived transitions happen in the scheduler's
lifecycle sweeps, not through HTTP.

# Voting Flow

	POST /polls/{id}/vote → Vote (requires Bearer token)
	GET  /polls/{id}/live → Live (WebSocket result-change signal)

A recorded vote kicks off a broadcast to the poll's live subscribers;
subscribers re-fetch the poll, the signal itself carries no data.

# Audit Trail and Exports

	GET /polls/{id}/audit       → GetAuditLog (author only)
	GET /polls/{id}/export.csv  → ExportCSV (author only)
	GET /polls/{id}/export.xlsx → ExportXLSX (author only)
*/
package handlers
