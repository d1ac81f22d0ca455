// Copyright (c) 2026 OpinionHub.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/mankru71/OpinionHub/auth"
	"github.com/mankru71/OpinionHub/cliparse"
	"github.com/mankru71/OpinionHub/middleware"
	"github.com/mankru71/OpinionHub/models"
)

const tokenTTL = 24 * time.Hour

// TokenHandler issues bearer tokens. In production deployments tokens
// come from the identity provider; this endpoint covers development and
// the test suite.
type TokenHandler struct {
	cfg cliparse.Config
}

func NewTokenHandler(cfg cliparse.Config) *TokenHandler {
	return &TokenHandler{cfg: cfg}
}

// IssueToken handles POST /auth/token
func (h *TokenHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	var req models.IssueTokenRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.UserID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "user_id is required")
		return
	}

	identity := auth.Identity{AccountID: req.UserID, LegacyUserID: req.LegacyUserID}
	token, err := auth.IssueToken(identity, h.cfg.TokenSecret, tokenTTL)
	if err != nil {
		slog.Error("failed to issue token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.IssueTokenResponse{Token: token})
}
