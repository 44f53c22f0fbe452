package services

import (
	"time"

	"outlay/internal/core"
)

type (
	// PageView is one rendered list page with its pagination state.
	PageView struct {
		Records      []core.Record `json:"records"`
		Page         int           `json:"page"`
		PageSize     int           `json:"page_size"`
		TotalPages   int           `json:"total_pages"`
		TotalRecords int           `json:"total_records"`
		HasPrev      bool          `json:"has_prev"`
		HasNext      bool          `json:"has_next"`
	}

	// Summary holds the dashboard numbers.
	Summary struct {
		TotalSpend    float64 `json:"total_spend"`
		MonthlySpend  float64 `json:"monthly_spend"`
		CategoryCount int     `json:"category_count"`
	}

	// CategorySlice is one colored segment of the category chart.
	CategorySlice struct {
		Name   string  `json:"name"`
		Amount float64 `json:"amount"`
		Color  string  `json:"color"`
	}
)

// ListPage filters, sorts and paginates the store for the list view.
// The requested page is clamped into range, so a filter change that
// shrinks the result set still yields a valid page.
func (t *Tracker) ListPage(category, month string, page int) PageView {
	filtered := core.Filter(t.ledger.All(), category, month)

	size := core.DefaultPageSize
	page = core.ClampPage(page, len(filtered), size)
	totalPages := core.TotalPages(len(filtered), size)

	return PageView{
		Records:      core.Page(filtered, page, size),
		Page:         page,
		PageSize:     size,
		TotalPages:   totalPages,
		TotalRecords: len(filtered),
		HasPrev:      page > 1,
		HasNext:      page < totalPages,
	}
}

// Summarize computes the dashboard numbers; now supplies the reference
// month for "this month's spend".
func (t *Tracker) Summarize(now time.Time) Summary {
	records := t.ledger.All()
	return Summary{
		TotalSpend:    core.TotalSpend(records),
		MonthlySpend:  core.MonthlySpend(records, now),
		CategoryCount: core.DistinctCategoryCount(records),
	}
}

// CategorySeries returns the per-category chart segments in
// first-observation order with their colors.
func (t *Tracker) CategorySeries() []CategorySlice {
	totals := core.CategoryTotals(t.ledger.All())
	out := make([]CategorySlice, len(totals))
	for i, ct := range totals {
		out[i] = CategorySlice{
			Name:   ct.Name,
			Amount: ct.Amount,
			Color:  core.CategoryColor(ct.Name),
		}
	}
	return out
}

// TrendSeries returns the chronological per-month totals.
func (t *Tracker) TrendSeries() []core.MonthAmount {
	return core.MonthlyTotals(t.ledger.All())
}

// MonthKeys lists the observed months, newest first, for the month
// filter selector.
func (t *Tracker) MonthKeys() []string {
	return core.DistinctMonthKeys(t.ledger.All())
}
