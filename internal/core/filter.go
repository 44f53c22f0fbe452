package core

import (
	"sort"
	"strconv"
	"strings"
)

// ParseMonthKey splits a YYYY-MM selector into year and month numbers.
// Unpadded months ("2024-3") are accepted.
func ParseMonthKey(key string) (year, month int, ok bool) {
	parts := strings.SplitN(strings.TrimSpace(key), "-", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	y, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 1 || m > 12 {
		return 0, 0, false
	}
	return y, m, true
}

// Filter returns the records matching the category and month selectors,
// sorted by date descending. Either selector may be SelectorAll.
// Category matching is exact and case-sensitive. Records sharing a date
// keep their input order. The input slice is never modified.
func Filter(records []Record, category, month string) []Record {
	byCategory := category != SelectorAll
	byMonth := month != SelectorAll

	var year, monthNum int
	if byMonth {
		var ok bool
		year, monthNum, ok = ParseMonthKey(month)
		if !ok {
			// An unparseable selector matches nothing, same as a month
			// with no records.
			return []Record{}
		}
	}

	out := make([]Record, 0, len(records))
	for _, r := range records {
		if byCategory && r.Category != category {
			continue
		}
		if byMonth && (r.Date.Year() != year || r.Date.Month() != monthNum) {
			continue
		}
		out = append(out, r)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date.Time)
	})

	return out
}
