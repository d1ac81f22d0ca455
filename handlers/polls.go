// Copyright (c) 2026 OpinionHub.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/dustin/go-humanize"

	"github.com/mankru71/OpinionHub/middleware"
	"github.com/mankru71/OpinionHub/models"
	"github.com/mankru71/OpinionHub/polls"
)

type PollHandler struct {
	svc *polls.Service
}

func NewPollHandler(svc *polls.Service) *PollHandler {
	return &PollHandler{svc: svc}
}

// CreatePoll handles POST /polls
func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req models.CreatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	poll, options, err := h.svc.CreateDraft(req, identity.AccountID)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.PollDetails{
		Poll:    poll,
		Options: options,
		Tally:   []models.TallyRow{},
	})
}

// PublishPoll handles POST /polls/{id}/publish
func (h *PollHandler) PublishPoll(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll_id is required")
		return
	}

	if err := h.svc.Publish(pollID, identity.AccountID); err != nil {
		writeEngineError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, map[string]string{"status": models.StatusActive})
}

// GetPoll handles GET /polls/{id}
func (h *PollHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll_id is required")
		return
	}

	details, err := h.svc.GetPoll(pollID)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, details)
}

// GetFeed handles GET /polls
func (h *PollHandler) GetFeed(w http.ResponseWriter, r *http.Request) {
	viewerID := ""
	if identity, ok := middleware.IdentityFromContext(r.Context()); ok {
		viewerID = identity.AccountID
	}

	feed, err := h.svc.Feed(viewerID)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	for i := range feed {
		feed[i].CreatedAgo = humanize.Time(feed[i].Poll.CreatedAt)
	}

	middleware.JSONResponse(w, http.StatusOK, feed)
}

// GetAuditLog handles GET /polls/{id}/audit (author only)
func (h *PollHandler) GetAuditLog(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll_id is required")
		return
	}

	entries, err := h.svc.AuditTrail(pollID, identity.AccountID)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, entries)
}
