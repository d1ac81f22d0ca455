// Copyright (c) 2026 OpinionHub.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the OpinionHub API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(svc, hub, cfg)

# Endpoints

Health:

	GET /health

Tokens (dev/test stand-in for the identity provider):

	POST /auth/token

Poll management (requires Bearer token):

	POST /polls              - Create poll
	POST /polls/{id}/publish - Open for voting

Reading (public; the feed honors an optional token so authors see
their drafts):

	GET /polls      - Feed
	GET /polls/{id} - Poll details and tally

Voting (requires Bearer token) and live updates:

	POST /polls/{id}/vote - Submit or change a vote
	GET  /polls/{id}/live - WebSocket result-change signal

Audit trail and exports (author only, requires Bearer token):

	GET /polls/{id}/audit
	GET /polls/{id}/export.csv
	GET /polls/{id}/export.xlsx
*/
package router
