package profile

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrFieldMissing indicates a mapped field id was absent from a row's
// cells. It signals upstream schema drift and triggers a retry, never a
// fatal abort.
var ErrFieldMissing = errors.New("field missing")

// findValues locates each mapped field in a row's cells, trims
// whitespace, and applies the coercion rules shared by all report kinds:
// logical names ending in "_count" must parse as integers, names ending
// in "date" keep only the date portion of the value.
func findValues(row RowExtractable, fields map[string]string) (map[string]string, error) {
	cells := row.Cells()
	if cells == nil {
		return nil, nil
	}

	out := make(map[string]string, len(fields))
	for name, id := range fields {
		cell, ok := findCell(cells, id)
		if !ok {
			return nil, fmt.Errorf("%w: %s (%s)", ErrFieldMissing, name, id)
		}

		value := strings.TrimSpace(cell.Value)
		if value != "" {
			if strings.HasSuffix(name, "_count") {
				if _, err := strconv.Atoi(value); err != nil {
					return nil, fmt.Errorf("field %s: %q is not an integer", name, value)
				}
			}
			if strings.HasSuffix(name, "date") {
				value = dateOnly(value)
			}
		}
		out[name] = value
	}
	return out, nil
}

// requireValues is findValues for rows that must carry cells. A cell-less
// row inside a report that was otherwise served is schema drift, reported
// as ErrFieldMissing rather than silently yielding an empty record.
func requireValues(row RowExtractable, fields map[string]string) (map[string]string, error) {
	values, err := findValues(row, fields)
	if err != nil {
		return nil, err
	}
	if values == nil {
		return nil, fmt.Errorf("%w: row has no cells", ErrFieldMissing)
	}
	return values, nil
}

func findCell(cells []Cell, id string) (Cell, bool) {
	for _, cell := range cells {
		if cell.ID == id {
			return cell, true
		}
	}
	return Cell{}, false
}

// dateOnly strips the time-of-day portion: everything from the first
// whitespace boundary on is discarded.
func dateOnly(value string) string {
	if i := strings.IndexAny(value, " \t"); i >= 0 {
		return strings.TrimSpace(value[:i])
	}
	return value
}

// intField parses a previously extracted count field, returning 0 for
// empty values.
func intField(values map[string]string, name string) int {
	v := values[name]
	if v == "" {
		return 0
	}
	n, _ := strconv.Atoi(v)
	return n
}

// intPtrField parses a count field that is omitted when absent or zero.
func intPtrField(values map[string]string, name string) *int {
	v := values[name]
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n == 0 {
		return nil
	}
	return &n
}
