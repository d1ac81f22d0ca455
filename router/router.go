// Copyright (c) 2026 OpinionHub.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/mankru71/OpinionHub/cliparse"
	"github.com/mankru71/OpinionHub/handlers"
	"github.com/mankru71/OpinionHub/middleware"
	"github.com/mankru71/OpinionHub/notify"
	"github.com/mankru71/OpinionHub/polls"
)

func NewRouter(svc *polls.Service, hub *notify.Hub, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	pollHandler := handlers.NewPollHandler(svc)
	voteHandler := handlers.NewVoteHandler(svc, hub)
	exportHandler := handlers.NewExportHandler(svc)
	tokenHandler := handlers.NewTokenHandler(cfg)

	secret := cfg.TokenSecret

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Token issuance (dev/test stand-in for the identity provider)
	mux.HandleFunc("POST /auth/token", middleware.WithLogging(tokenHandler.IssueToken))

	// Poll management
	mux.HandleFunc("POST /polls", middleware.WithLogging(middleware.WithAuth(secret, pollHandler.CreatePoll)))
	mux.HandleFunc("POST /polls/{id}/publish", middleware.WithLogging(middleware.WithAuth(secret, pollHandler.PublishPoll)))

	// Feed and details (drafts in the feed are author-only, so the feed
	// takes an optional identity)
	mux.HandleFunc("GET /polls", middleware.WithLogging(middleware.WithOptionalAuth(secret, pollHandler.GetFeed)))
	mux.HandleFunc("GET /polls/{id}", middleware.WithLogging(pollHandler.GetPoll))

	// Voting and live updates
	mux.HandleFunc("POST /polls/{id}/vote", middleware.WithLogging(middleware.WithAuth(secret, voteHandler.Vote)))
	mux.HandleFunc("GET /polls/{id}/live", voteHandler.Live)

	// Audit trail (author only)
	mux.HandleFunc("GET /polls/{id}/audit", middleware.WithLogging(middleware.WithAuth(secret, pollHandler.GetAuditLog)))

	// Exports (author only)
	mux.HandleFunc("GET /polls/{id}/export.csv", middleware.WithLogging(middleware.WithAuth(secret, exportHandler.ExportCSV)))
	mux.HandleFunc("GET /polls/{id}/export.xlsx", middleware.WithLogging(middleware.WithAuth(secret, exportHandler.ExportXLSX)))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OpinionHub API v1"))
	})

	return mux
}
