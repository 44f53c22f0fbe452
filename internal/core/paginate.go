package core

// DefaultPageSize is the fixed number of records per list page.
const DefaultPageSize = 10

// Page returns the 1-based page of the given size from an ordered
// sequence, clamped to the sequence bounds. Out-of-range pages yield an
// empty slice.
func Page(records []Record, page, size int) []Record {
	if page < 1 || size < 1 {
		return []Record{}
	}
	start := (page - 1) * size
	if start >= len(records) {
		return []Record{}
	}
	end := start + size
	if end > len(records) {
		end = len(records)
	}
	return records[start:end]
}

// TotalPages returns ceil(total/size). An empty sequence has zero pages;
// callers treat the current page as 1 in that case.
func TotalPages(total, size int) int {
	if total <= 0 || size < 1 {
		return 0
	}
	return (total + size - 1) / size
}

// ClampPage keeps a requested page inside [1, TotalPages], falling back
// to 1 when there are no pages at all.
func ClampPage(page, total, size int) int {
	pages := TotalPages(total, size)
	if pages == 0 || page < 1 {
		return 1
	}
	if page > pages {
		return pages
	}
	return page
}
