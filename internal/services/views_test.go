package services

import (
	"context"
	"testing"
	"time"

	"outlay/internal/core"
)

func seededTracker(t *testing.T) *Tracker {
	t.Helper()
	tr, _, _ := newTestTracker()
	ctx := context.Background()

	seed := []core.Record{
		{Description: "groceries", Amount: 100, Category: core.CategoryFood, Date: core.NewDate(2024, 1, 5)},
		{Description: "train", Amount: 50, Category: core.CategoryTravel, Date: core.NewDate(2024, 2, 10)},
		{Description: "dinner", Amount: 30, Category: core.CategoryFood, Date: core.NewDate(2024, 2, 14)},
	}
	for _, r := range seed {
		if _, err := tr.AddRecord(ctx, r); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	return tr
}

func TestListPage(t *testing.T) {
	tr := seededTracker(t)

	view := tr.ListPage(core.SelectorAll, core.SelectorAll, 1)
	if view.TotalRecords != 3 || view.TotalPages != 1 {
		t.Fatalf("unexpected pagination: %+v", view)
	}
	if view.HasPrev || view.HasNext {
		t.Fatalf("single page must disable both buttons: %+v", view)
	}
	if view.Records[0].Description != "dinner" {
		t.Fatalf("list must be newest first, got %s", view.Records[0].Description)
	}
}

func TestListPageFiltered(t *testing.T) {
	tr := seededTracker(t)

	view := tr.ListPage(core.CategoryFood, core.SelectorAll, 1)
	if view.TotalRecords != 2 {
		t.Fatalf("expected 2 food records, got %d", view.TotalRecords)
	}
	for _, r := range view.Records {
		if r.Category != core.CategoryFood {
			t.Fatalf("filter leak: %+v", r)
		}
	}
}

func TestListPageClampsOutOfRange(t *testing.T) {
	tr := seededTracker(t)

	view := tr.ListPage(core.SelectorAll, core.SelectorAll, 99)
	if view.Page != 1 {
		t.Fatalf("out-of-range page must clamp, got page %d", view.Page)
	}
	if len(view.Records) != 3 {
		t.Fatalf("clamped page must still render records, got %d", len(view.Records))
	}
}

func TestListPagePagination(t *testing.T) {
	tr, _, _ := newTestTracker()
	ctx := context.Background()
	for i := 0; i < 25; i++ {
		tr.AddRecord(ctx, core.Record{
			Description: "r",
			Amount:      1,
			Category:    core.CategoryOther,
			Date:        core.NewDate(2024, 1, 1+i%28),
		})
	}

	view := tr.ListPage(core.SelectorAll, core.SelectorAll, 3)
	if view.TotalPages != 3 {
		t.Fatalf("25 records: expected 3 pages, got %d", view.TotalPages)
	}
	if len(view.Records) != 5 {
		t.Fatalf("page 3 must hold 5 records, got %d", len(view.Records))
	}
	if view.HasNext || !view.HasPrev {
		t.Fatalf("last page buttons wrong: %+v", view)
	}
}

func TestSummarize(t *testing.T) {
	tr := seededTracker(t)

	s := tr.Summarize(time.Date(2024, 2, 20, 12, 0, 0, 0, time.UTC))
	if s.TotalSpend != 180 {
		t.Fatalf("total: got %v want 180", s.TotalSpend)
	}
	if s.MonthlySpend != 80 {
		t.Fatalf("monthly: got %v want 80", s.MonthlySpend)
	}
	if s.CategoryCount != 2 {
		t.Fatalf("categories: got %d want 2", s.CategoryCount)
	}
}

func TestCategorySeriesColors(t *testing.T) {
	tr := seededTracker(t)

	series := tr.CategorySeries()
	if len(series) != 2 {
		t.Fatalf("expected 2 slices, got %d", len(series))
	}
	if series[0].Name != core.CategoryFood {
		t.Fatalf("segment order must follow first observation, got %s", series[0].Name)
	}
	for _, s := range series {
		if s.Color == "" {
			t.Fatalf("slice %s missing color", s.Name)
		}
	}
}

func TestTrendAndMonthKeys(t *testing.T) {
	tr := seededTracker(t)

	trend := tr.TrendSeries()
	if len(trend) != 2 || trend[0].Key != "2024-01" || trend[1].Key != "2024-02" {
		t.Fatalf("trend series wrong: %+v", trend)
	}

	months := tr.MonthKeys()
	if len(months) != 2 || months[0] != "2024-02" {
		t.Fatalf("month keys must be newest first: %v", months)
	}
}
