package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Well-known categories. Records may carry other values; views render
// them with the fallback color.
const (
	CategoryFood          = "Food"
	CategoryTravel        = "Travel"
	CategoryUtilities     = "Utilities"
	CategoryEntertainment = "Entertainment"
	CategoryOther         = "Other"
)

// SelectorAll is the filter selector value that disables a filter.
const SelectorAll = "all"

// DateLayout is the wire format for record dates (day granularity).
const DateLayout = "2006-01-02"

type (
	// Date is a calendar date. Time-of-day components are always zero.
	Date struct {
		time.Time
	}

	// Record is one expense entry. The zero ID means "not yet assigned";
	// the ledger hands out ids on Add.
	Record struct {
		ID          int64   `json:"id"`
		Description string  `json:"description"`
		Amount      float64 `json:"amount"`
		Category    string  `json:"category"`
		Date        Date    `json:"date"`
	}
)

var (
	ErrEmptyDescription = errors.New("empty description")
	ErrNegativeAmount   = errors.New("negative amount")
	ErrZeroDate         = errors.New("date cannot be zero")
)

// NewDate creates a Date from year, month, day in UTC.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to day granularity.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(s string) (Date, error) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.UTC)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return Date{Time: t}, nil
}

// MonthKey returns the YYYY-MM key of the date's calendar month.
func (d Date) MonthKey() string {
	return d.Format("2006-01")
}

// Year returns the calendar year.
func (d Date) Year() int {
	return d.Time.Year()
}

// Month returns the calendar month, 1-12.
func (d Date) Month() int {
	return int(d.Time.Month())
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrZeroDate
	}
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(DateLayout))
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		// Tolerate timestamps produced by other tools; keep the day part.
		t, terr := time.Parse(time.RFC3339, s)
		if terr != nil {
			return err
		}
		parsed = DateOf(t.UTC())
	}
	*d = parsed
	return nil
}

func (r Record) Validate() error {
	if len(strings.TrimSpace(r.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(r.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	if r.Amount < 0 {
		return ErrNegativeAmount
	}
	if err := r.Date.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(r.Category) == "" {
		return errors.New("empty category")
	}
	return nil
}

// FormatAmount renders an amount for display with two decimal places.
// Stored amounts are never rounded; formatting happens only here.
func FormatAmount(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}

var categoryColors = map[string]string{
	CategoryFood:          "#FFD700",
	CategoryTravel:        "#014421",
	CategoryUtilities:     "#FFD700",
	CategoryEntertainment: "#014421",
	CategoryOther:         "#888",
}

// CategoryColor returns the chart color for a category. Unknown
// categories get the fallback color.
func CategoryColor(category string) string {
	if c, ok := categoryColors[category]; ok {
		return c
	}
	return "#888"
}

// KnownCategories returns the fixed category set in display order.
func KnownCategories() []string {
	return []string{
		CategoryFood,
		CategoryTravel,
		CategoryUtilities,
		CategoryEntertainment,
		CategoryOther,
	}
}
