package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"outlay/internal/core"
	"outlay/internal/log"
)

// serveCachedView serializes a derived view, caching the body keyed by
// store version so unchanged data never recomputes.
func (s *Server) serveCachedView(w http.ResponseWriter, r *http.Request, build func() any) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	key := fmt.Sprintf("v%d:%s?%s", s.tracker.Version(), r.URL.Path, r.URL.RawQuery)
	if body, ok := s.viewCache.Get(key); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(body)
		return
	}

	body, err := json.Marshal(build())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to encode view", log.FieldError, err, log.FieldPath, r.URL.Path)
		writeError(w, r, http.StatusInternalServerError, "internal_error", "Error building view.")
		return
	}
	s.viewCache.Set(key, body)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// handleCategories lists the fixed category set with its chart colors,
// for populating the entry form and chart legends.
func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	type category struct {
		Name  string `json:"name"`
		Color string `json:"color"`
	}
	names := core.KnownCategories()
	out := make([]category, len(names))
	for i, name := range names {
		out[i] = category{Name: name, Color: core.CategoryColor(name)}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	s.serveCachedView(w, r, func() any {
		return s.tracker.Summarize(s.now())
	})
}

func (s *Server) handleCategoryChart(w http.ResponseWriter, r *http.Request) {
	s.serveCachedView(w, r, func() any {
		return s.tracker.CategorySeries()
	})
}

func (s *Server) handleTrendChart(w http.ResponseWriter, r *http.Request) {
	s.serveCachedView(w, r, func() any {
		return s.tracker.TrendSeries()
	})
}

func (s *Server) handleMonths(w http.ResponseWriter, r *http.Request) {
	s.serveCachedView(w, r, func() any {
		return s.tracker.MonthKeys()
	})
}
