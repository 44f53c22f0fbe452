package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"outlay/internal/core"
	"outlay/internal/middleware/trace"
	"outlay/internal/transfer"
)

// errorResponse is the wire shape of every failure, naming the problem
// category so the UI can surface a blocking notification.
type errorResponse struct {
	Error     string `json:"error"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, category, message string) {
	writeJSON(w, status, errorResponse{
		Error:     category,
		Message:   message,
		RequestID: trace.GetRequestID(r.Context()),
	})
}

// writeTransferError maps the import error taxonomy onto responses.
func writeTransferError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, transfer.ErrFormat):
		writeError(w, r, http.StatusBadRequest, "format_error", "No valid data found to import.")
	case errors.Is(err, transfer.ErrSchema):
		writeError(w, r, http.StatusUnprocessableEntity, "schema_error", "Invalid data format. Please check your import data.")
	case errors.Is(err, transfer.ErrParse):
		writeError(w, r, http.StatusBadRequest, "parse_error", "Error parsing data. Please check your import data.")
	default:
		writeError(w, r, http.StatusInternalServerError, "internal_error", "Import failed.")
	}
}

// requireMethod enforces the allowed methods, answering 405 otherwise.
func requireMethod(w http.ResponseWriter, r *http.Request, methods ...string) bool {
	for _, m := range methods {
		if r.Method == m {
			return true
		}
	}
	w.Header().Set("Allow", strings.Join(methods, ", "))
	writeError(w, r, http.StatusMethodNotAllowed, "method_not_allowed",
		fmt.Sprintf("Use %s.", strings.Join(methods, " or ")))
	return false
}

// recordRequest is the create/update body.
type recordRequest struct {
	ID          int64   `json:"id,omitempty"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Date        string  `json:"date"`
}

func (req recordRequest) toRecord() (core.Record, error) {
	date, err := core.ParseDate(req.Date)
	if err != nil {
		return core.Record{}, err
	}
	return core.Record{
		Description: strings.TrimSpace(req.Description),
		Amount:      req.Amount,
		Category:    strings.TrimSpace(req.Category),
		Date:        date,
	}, nil
}

func decodeBody(r *http.Request, v any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20))
	return dec.Decode(v)
}

// queryPage reads the 1-based page number, defaulting to 1.
func queryPage(r *http.Request) int {
	v := strings.TrimSpace(r.URL.Query().Get("page"))
	if v == "" {
		return 1
	}
	page, err := strconv.Atoi(v)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// querySelector reads a filter selector, defaulting to "all".
func querySelector(r *http.Request, name string) string {
	v := strings.TrimSpace(r.URL.Query().Get(name))
	if v == "" {
		return core.SelectorAll
	}
	return v
}
