package core

import "testing"

func sampleRecords() []Record {
	return []Record{
		{ID: 1, Description: "groceries", Amount: 100, Category: CategoryFood, Date: NewDate(2024, 1, 5)},
		{ID: 2, Description: "train", Amount: 50, Category: CategoryTravel, Date: NewDate(2024, 2, 10)},
		{ID: 3, Description: "dinner", Amount: 30, Category: CategoryFood, Date: NewDate(2024, 2, 14)},
		{ID: 4, Description: "power", Amount: 80, Category: CategoryUtilities, Date: NewDate(2024, 3, 1)},
	}
}

func TestFilterNoSelectors(t *testing.T) {
	got := Filter(sampleRecords(), SelectorAll, SelectorAll)
	if len(got) != 4 {
		t.Fatalf("expected all 4 records, got %d", len(got))
	}
	// Newest first.
	wantOrder := []int64{4, 3, 2, 1}
	for i, id := range wantOrder {
		if got[i].ID != id {
			t.Fatalf("position %d: got id %d want %d", i, got[i].ID, id)
		}
	}
}

func TestFilterByCategory(t *testing.T) {
	records := sampleRecords()
	got := Filter(records, CategoryFood, SelectorAll)
	if len(got) != 2 {
		t.Fatalf("expected 2 food records, got %d", len(got))
	}
	for _, r := range got {
		if r.Category != CategoryFood {
			t.Fatalf("record %d leaked through category filter", r.ID)
		}
	}

	// Every matching input record appears exactly once.
	seen := map[int64]int{}
	for _, r := range got {
		seen[r.ID]++
	}
	for _, r := range records {
		if r.Category == CategoryFood && seen[r.ID] != 1 {
			t.Fatalf("record %d appeared %d times", r.ID, seen[r.ID])
		}
	}
}

func TestFilterCategoryCaseSensitive(t *testing.T) {
	got := Filter(sampleRecords(), "food", SelectorAll)
	if len(got) != 0 {
		t.Fatalf("category match must be case-sensitive, got %d records", len(got))
	}
}

func TestFilterByMonth(t *testing.T) {
	got := Filter(sampleRecords(), SelectorAll, "2024-02")
	if len(got) != 2 {
		t.Fatalf("expected 2 records in 2024-02, got %d", len(got))
	}
	for _, r := range got {
		if r.Date.Year() != 2024 || r.Date.Month() != 2 {
			t.Fatalf("record %d outside requested month", r.ID)
		}
	}
}

func TestFilterByMonthUnpadded(t *testing.T) {
	got := Filter(sampleRecords(), SelectorAll, "2024-2")
	if len(got) != 2 {
		t.Fatalf("unpadded month key should match, got %d records", len(got))
	}
}

func TestFilterCombined(t *testing.T) {
	got := Filter(sampleRecords(), CategoryFood, "2024-01")
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("expected only record 1, got %v", got)
	}
}

func TestFilterBadMonthSelector(t *testing.T) {
	if got := Filter(sampleRecords(), SelectorAll, "not-a-month"); len(got) != 0 {
		t.Fatalf("unparseable month selector should match nothing, got %d", len(got))
	}
}

func TestFilterStableTieBreak(t *testing.T) {
	records := []Record{
		{ID: 10, Description: "first", Amount: 1, Category: "c", Date: NewDate(2024, 5, 1)},
		{ID: 11, Description: "second", Amount: 2, Category: "c", Date: NewDate(2024, 5, 1)},
		{ID: 12, Description: "third", Amount: 3, Category: "c", Date: NewDate(2024, 5, 1)},
	}
	got := Filter(records, SelectorAll, SelectorAll)
	for i, want := range []int64{10, 11, 12} {
		if got[i].ID != want {
			t.Fatalf("same-date records must keep insertion order, position %d got %d", i, got[i].ID)
		}
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	records := sampleRecords()
	Filter(records, SelectorAll, SelectorAll)
	for i, want := range []int64{1, 2, 3, 4} {
		if records[i].ID != want {
			t.Fatalf("input slice was reordered at %d", i)
		}
	}
}
