package http

import (
	"errors"
	"log/slog"
	"net/http"

	"outlay/internal/core"
	"outlay/internal/log"
)

func (s *Server) handleRecords(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleListRecords(w, r)
	case http.MethodPost:
		s.handleCreateRecord(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		writeError(w, r, http.StatusMethodNotAllowed, "method_not_allowed", "Use GET or POST.")
	}
}

func (s *Server) handleListRecords(w http.ResponseWriter, r *http.Request) {
	s.serveCachedView(w, r, func() any {
		return s.tracker.ListPage(
			querySelector(r, "category"),
			querySelector(r, "month"),
			queryPage(r),
		)
	})
}

func (s *Server) handleCreateRecord(w http.ResponseWriter, r *http.Request) {
	var req recordRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "parse_error", "Request body is not valid JSON.")
		return
	}

	record, err := req.toRecord()
	if err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, "validation_error", "Date must be YYYY-MM-DD.")
		return
	}

	stored, err := s.tracker.AddRecord(r.Context(), record)
	if err != nil {
		if isValidationError(err) {
			writeError(w, r, http.StatusUnprocessableEntity, "validation_error", err.Error())
			return
		}
		slog.ErrorContext(r.Context(), "Failed to save record",
			log.FieldError, err,
			log.FieldDescription, record.Description,
			log.FieldAmount, record.Amount,
			log.FieldCategory, record.Category,
			log.FieldOperation, log.OpCreate)
		writeError(w, r, http.StatusInternalServerError, "internal_error", "Error saving expense.")
		return
	}

	writeJSON(w, http.StatusCreated, stored)
}

func (s *Server) handleUpdateRecord(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost, http.MethodPut) {
		return
	}

	var req recordRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "parse_error", "Request body is not valid JSON.")
		return
	}
	if req.ID == 0 {
		writeError(w, r, http.StatusBadRequest, "validation_error", "Record id is required.")
		return
	}

	fields, err := req.toRecord()
	if err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, "validation_error", "Date must be YYYY-MM-DD.")
		return
	}

	found, err := s.tracker.UpdateRecord(r.Context(), req.ID, fields)
	if err != nil {
		if isValidationError(err) {
			writeError(w, r, http.StatusUnprocessableEntity, "validation_error", err.Error())
			return
		}
		slog.ErrorContext(r.Context(), "Failed to update record",
			log.FieldError, err, log.FieldRecordID, req.ID, log.FieldOperation, log.OpUpdate)
		writeError(w, r, http.StatusInternalServerError, "internal_error", "Error saving expense.")
		return
	}

	// Unknown ids are benign: the record may have been deleted in
	// another tab. Report the outcome without failing.
	writeJSON(w, http.StatusOK, map[string]any{"id": req.ID, "updated": found})
}

func (s *Server) handleDeleteRecord(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost, http.MethodDelete) {
		return
	}

	var req struct {
		ID int64 `json:"id"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "parse_error", "Request body is not valid JSON.")
		return
	}
	if req.ID == 0 {
		writeError(w, r, http.StatusBadRequest, "validation_error", "Record id is required.")
		return
	}

	found, err := s.tracker.RemoveRecord(r.Context(), req.ID)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to delete record",
			log.FieldError, err, log.FieldRecordID, req.ID, log.FieldOperation, log.OpDelete)
		writeError(w, r, http.StatusInternalServerError, "internal_error", "Error deleting expense.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"id": req.ID, "deleted": found})
}

func isValidationError(err error) bool {
	return errors.Is(err, core.ErrEmptyDescription) ||
		errors.Is(err, core.ErrNegativeAmount) ||
		errors.Is(err, core.ErrZeroDate)
}
