// Copyright (c) 2026 OpinionHub.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/mankru71/OpinionHub/middleware"
	"github.com/mankru71/OpinionHub/models"
	"github.com/mankru71/OpinionHub/notify"
	"github.com/mankru71/OpinionHub/polls"
)

type VoteHandler struct {
	svc *polls.Service
	hub *notify.Hub
}

func NewVoteHandler(svc *polls.Service, hub *notify.Hub) *VoteHandler {
	return &VoteHandler{svc: svc, hub: hub}
}

// Vote handles POST /polls/{id}/vote
func (h *VoteHandler) Vote(w http.ResponseWriter, r *http.Request) {
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

	var req models.VoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := h.svc.Vote(pollID, identity.AccountID, identity.LegacyUserID, req.OptionIDs); err != nil {
		writeEngineError(w, err)
		return
	}

	// Fan the signal out off the request path; subscribers re-fetch.
	go h.hub.Broadcast(pollID)

	middleware.JSONResponse(w, http.StatusOK, models.VoteResponse{
		Message: "Vote recorded",
	})
}

// Live handles GET /polls/{id}/live - WebSocket subscription to the
// poll's result-change signal.
func (h *VoteHandler) Live(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll_id is required")
		return
	}

	if _, err := h.svc.GetPoll(pollID); err != nil {
		writeEngineError(w, err)
		return
	}

	h.hub.Join(w, r, pollID)
}
