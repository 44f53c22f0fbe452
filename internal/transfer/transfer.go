// Package transfer handles the import/export payload: a human-editable
// JSON array of records used for manual backup and restore.
package transfer

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"outlay/internal/core"
)

var (
	// ErrParse means the payload is not well-formed JSON.
	ErrParse = errors.New("payload is not valid JSON")
	// ErrFormat means the payload is not a non-empty array.
	ErrFormat = errors.New("payload must be a non-empty array")
	// ErrSchema means an element is missing a required field.
	ErrSchema = errors.New("record is missing required fields")
)

var requiredFields = []string{"description", "amount", "category", "date"}

// Decode validates and decodes an import payload. Validation is
// presence-only on the four required fields; field values are coerced
// leniently afterwards, accepting whatever shape the original data
// format permitted. The returned records are ready for a wholesale
// store replace.
func Decode(payload []byte) ([]core.Record, error) {
	var elements []json.RawMessage
	if err := json.Unmarshal(payload, &elements); err != nil {
		var wellFormed any
		if json.Unmarshal(payload, &wellFormed) != nil {
			return nil, fmt.Errorf("%w: %v", ErrParse, err)
		}
		// Well-formed JSON, wrong top-level shape.
		return nil, ErrFormat
	}
	if len(elements) == 0 {
		return nil, ErrFormat
	}

	records := make([]core.Record, len(elements))
	for i, elem := range elements {
		// A non-object element is a schema problem, not a format one:
		// the payload is still a non-empty array.
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(elem, &obj); err != nil {
			return nil, fmt.Errorf("%w: element %d is not an object", ErrSchema, i)
		}
		for _, field := range requiredFields {
			if _, ok := obj[field]; !ok {
				return nil, fmt.Errorf("%w: element %d lacks %q", ErrSchema, i, field)
			}
		}
		records[i] = decodeRecord(obj)
	}
	return records, nil
}

// Encode serializes records in the same shape Decode accepts,
// pretty-printed for the manual backup text box. Exporting then
// importing the result reproduces the store.
func Encode(records []core.Record) ([]byte, error) {
	if records == nil {
		records = []core.Record{}
	}
	out, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode records: %w", err)
	}
	return out, nil
}

func decodeRecord(obj map[string]json.RawMessage) core.Record {
	return core.Record{
		ID:          intValue(obj["id"]),
		Description: stringValue(obj["description"]),
		Amount:      amountValue(obj["amount"]),
		Category:    stringValue(obj["category"]),
		Date:        dateValue(obj["date"]),
	}
}

func stringValue(raw json.RawMessage) string {
	if raw == nil {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return strings.Trim(string(raw), `"`)
}

func intValue(raw json.RawMessage) int64 {
	if raw == nil {
		return 0
	}
	var n int64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return int64(f)
	}
	return 0
}

func amountValue(raw json.RawMessage) float64 {
	if raw == nil {
		return 0
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return f
		}
	}
	return 0
}

func dateValue(raw json.RawMessage) core.Date {
	if raw == nil {
		return core.Date{}
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return core.Date{}
	}
	if d, err := core.ParseDate(s); err == nil {
		return d
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return core.DateOf(t.UTC())
	}
	return core.Date{}
}
