package core

import (
	"sort"
	"time"
)

type (
	// CategoryAmount is an amount aggregated under one category name.
	CategoryAmount struct {
		Name   string  `json:"name"`
		Amount float64 `json:"amount"`
	}

	// MonthAmount is an amount aggregated under one YYYY-MM key.
	MonthAmount struct {
		Key    string  `json:"key"`
		Amount float64 `json:"amount"`
	}
)

// TotalSpend sums every record amount.
func TotalSpend(records []Record) float64 {
	var total float64
	for _, r := range records {
		total += r.Amount
	}
	return total
}

// MonthlySpend sums the amounts of records falling in the same calendar
// year and month as ref.
func MonthlySpend(records []Record, ref time.Time) float64 {
	var total float64
	for _, r := range records {
		if r.Date.Year() == ref.Year() && r.Date.Month() == int(ref.Month()) {
			total += r.Amount
		}
	}
	return total
}

// DistinctCategoryCount counts the category values observed in the
// record set, not the size of the fixed enum.
func DistinctCategoryCount(records []Record) int {
	seen := map[string]struct{}{}
	for _, r := range records {
		seen[r.Category] = struct{}{}
	}
	return len(seen)
}

// CategoryTotals sums amounts per observed category. Series order is the
// order each category was first observed, which fixes chart segment
// order and coloring.
func CategoryTotals(records []Record) []CategoryAmount {
	totals := map[string]float64{}
	order := make([]string, 0)
	for _, r := range records {
		if _, ok := totals[r.Category]; !ok {
			order = append(order, r.Category)
		}
		totals[r.Category] += r.Amount
	}

	out := make([]CategoryAmount, len(order))
	for i, name := range order {
		out[i] = CategoryAmount{Name: name, Amount: totals[name]}
	}
	return out
}

// MonthlyTotals sums amounts per observed YYYY-MM key, sorted ascending
// for the chronological trend series. Months without records are absent,
// never zero-filled.
func MonthlyTotals(records []Record) []MonthAmount {
	totals := map[string]float64{}
	for _, r := range records {
		totals[r.Date.MonthKey()] += r.Amount
	}

	keys := make([]string, 0, len(totals))
	for k := range totals {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]MonthAmount, len(keys))
	for i, k := range keys {
		out[i] = MonthAmount{Key: k, Amount: totals[k]}
	}
	return out
}

// DistinctMonthKeys lists the YYYY-MM keys present, sorted descending.
// It feeds the month filter selector; the "all" option is the caller's.
func DistinctMonthKeys(records []Record) []string {
	seen := map[string]struct{}{}
	for _, r := range records {
		seen[r.Date.MonthKey()] = struct{}{}
	}

	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))
	return keys
}
