package http

import (
	"log/slog"
	"net/http"

	"outlay/internal/log"
)

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	payload, err := s.tracker.Export(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to export records", log.FieldError, err, log.FieldOperation, log.OpExport)
		writeError(w, r, http.StatusInternalServerError, "internal_error", "Error exporting data.")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="expenses.json"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req struct {
		Payload string `json:"payload"`
		Confirm bool   `json:"confirm"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "parse_error", "Request body is not valid JSON.")
		return
	}
	// Import replaces the whole store, so it never proceeds without an
	// explicit confirmation from the caller.
	if !req.Confirm {
		writeError(w, r, http.StatusBadRequest, "confirmation_required", "Import replaces all existing data and must be confirmed.")
		return
	}

	count, err := s.tracker.Import(r.Context(), []byte(req.Payload))
	if err != nil {
		slog.WarnContext(r.Context(), "Import rejected", log.FieldError, err, log.FieldOperation, log.OpImport)
		writeTransferError(w, r, err)
		return
	}

	slog.InfoContext(r.Context(), "Imported records", log.FieldRecordCount, count, log.FieldOperation, log.OpImport)
	writeJSON(w, http.StatusOK, map[string]any{"imported": count})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req struct {
		Confirm bool `json:"confirm"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "parse_error", "Request body is not valid JSON.")
		return
	}
	if !req.Confirm {
		writeError(w, r, http.StatusBadRequest, "confirmation_required", "Reset deletes all data and must be confirmed.")
		return
	}

	if err := s.tracker.Reset(r.Context()); err != nil {
		slog.ErrorContext(r.Context(), "Failed to reset store", log.FieldError, err, log.FieldOperation, log.OpReset)
		writeError(w, r, http.StatusInternalServerError, "internal_error", "Error clearing data.")
		return
	}

	slog.InfoContext(r.Context(), "Store reset", log.FieldOperation, log.OpReset)
	writeJSON(w, http.StatusOK, map[string]any{"cleared": true})
}
