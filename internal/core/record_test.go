package core

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-01-05")
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if d.Year() != 2024 || d.Month() != 1 || d.Day() != 5 {
		t.Fatalf("unexpected date %v", d)
	}

	if _, err := ParseDate("05/01/2024"); err == nil {
		t.Fatalf("expected error for wrong layout")
	}
	if _, err := ParseDate(""); err == nil {
		t.Fatalf("expected error for empty string")
	}
}

func TestDateJSONRoundTrip(t *testing.T) {
	d := NewDate(2024, 2, 10)
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `"2024-02-10"` {
		t.Fatalf("unexpected wire form %s", b)
	}

	var back Date
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Equal(d.Time) {
		t.Fatalf("round trip mismatch: %v != %v", back, d)
	}
}

func TestDateUnmarshalTimestamp(t *testing.T) {
	var d Date
	if err := json.Unmarshal([]byte(`"2024-03-15T18:30:00Z"`), &d); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if d.Year() != 2024 || d.Month() != 3 || d.Day() != 15 {
		t.Fatalf("unexpected date %v", d)
	}
}

func TestRecordValidate(t *testing.T) {
	good := Record{
		Description: "lunch",
		Amount:      12.5,
		Category:    CategoryFood,
		Date:        NewDate(2024, 1, 5),
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	// Zero amounts and unknown categories are allowed.
	free := Record{Description: "sample", Amount: 0, Category: "Gifts", Date: NewDate(2024, 1, 5)}
	if err := free.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Record{
		{Description: "", Amount: 1, Category: "c", Date: NewDate(2024, 1, 1)},
		{Description: "  ", Amount: 1, Category: "c", Date: NewDate(2024, 1, 1)},
		{Description: "a", Amount: -1, Category: "c", Date: NewDate(2024, 1, 1)},
		{Description: "a", Amount: 1, Category: "", Date: NewDate(2024, 1, 1)},
		{Description: "a", Amount: 1, Category: "c", Date: Date{Time: time.Time{}}},
	}
	for i, r := range bads {
		if err := r.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestCategoryColorFallback(t *testing.T) {
	if CategoryColor(CategoryFood) != "#FFD700" {
		t.Fatalf("unexpected color for Food")
	}
	if CategoryColor("Subscriptions") != "#888" {
		t.Fatalf("unknown category must use the fallback color")
	}
}

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{100, "100.00"},
		{12.345, "12.35"},
		{0, "0.00"},
	}
	for i, tc := range cases {
		if got := FormatAmount(tc.in); got != tc.want {
			t.Fatalf("case %d: got %s want %s", i, got, tc.want)
		}
	}
}
