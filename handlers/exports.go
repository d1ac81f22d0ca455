// Copyright (c) 2026 OpinionHub.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/mankru71/OpinionHub/export"
	"github.com/mankru71/OpinionHub/middleware"
	"github.com/mankru71/OpinionHub/polls"
)

type ExportHandler struct {
	svc *polls.Service
}

func NewExportHandler(svc *polls.Service) *ExportHandler {
	return &ExportHandler{svc: svc}
}

// ExportCSV handles GET /polls/{id}/export.csv (author only)
func (h *ExportHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	tally, ok := h.loadTally(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="results.csv"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(export.CSV(tally.Rows)); err != nil {
		slog.Error("failed to write CSV export", "error", err)
	}
}

// ExportXLSX handles GET /polls/{id}/export.xlsx (author only)
func (h *ExportHandler) ExportXLSX(w http.ResponseWriter, r *http.Request) {
	tally, ok := h.loadTally(w, r)
	if !ok {
		return
	}

	data, err := export.XLSX(tally.Rows)
	if err != nil {
		slog.Error("failed to build XLSX export", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to build export")
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="results.xlsx"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		slog.Error("failed to write XLSX export", "error", err)
	}
}

func (h *ExportHandler) loadTally(w http.ResponseWriter, r *http.Request) (*polls.TallyResult, bool) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Authentication required")
		return nil, false
	}

	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll_id is required")
		return nil, false
	}

	tally, err := h.svc.Tally(pollID, identity.AccountID)
	if err != nil {
		writeEngineError(w, err)
		return nil, false
	}
	return tally, true
}
