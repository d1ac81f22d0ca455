// Copyright (c) 2026 OpinionHub.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/mankru71/OpinionHub/middleware"
	"github.com/mankru71/OpinionHub/polls"
)

// writeEngineError maps engine error kinds to HTTP responses:
// Validation 400, NotFound 404, Unauthorized 403, InvalidState 409,
// anything else 500.
func writeEngineError(w http.ResponseWriter, err error) {
	var validationErr *polls.ValidationError
	var stateErr *polls.StateError

	switch {
	case errors.Is(err, polls.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
	case errors.Is(err, polls.ErrUnauthorized):
		middleware.ErrorResponse(w, http.StatusForbidden, err.Error())
	case errors.As(err, &validationErr):
		middleware.ErrorResponse(w, http.StatusBadRequest, validationErr.Reason)
	case errors.As(err, &stateErr):
		middleware.ErrorResponse(w, http.StatusConflict, stateErr.Reason)
	default:
		slog.Error("poll operation failed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
	}
}
