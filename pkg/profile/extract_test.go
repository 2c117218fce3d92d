package profile

import (
	"errors"
	"testing"
)

func TestFindValuesTrimsAndCoerces(t *testing.T) {
	row := ColumnRow(Row{Columns: []Cell{
		{ID: "id-name", Value: "  SMITH, JOHN  "},
		{ID: "id-count", Value: " 7 "},
		{ID: "id-date", Value: "12/31/2015 12:00:00 AM"},
	}})

	values, err := findValues(row, map[string]string{
		"full_name":    "id-name",
		"arrest_count": "id-count",
		"appt_date":    "id-date",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if values["full_name"] != "SMITH, JOHN" {
		t.Errorf("full_name = %q", values["full_name"])
	}
	if values["arrest_count"] != "7" {
		t.Errorf("arrest_count = %q", values["arrest_count"])
	}
	if values["appt_date"] != "12/31/2015" {
		t.Errorf("appt_date = %q, want time stripped", values["appt_date"])
	}
}

func TestFindValuesMissingField(t *testing.T) {
	row := ColumnRow(Row{Columns: []Cell{{ID: "present", Value: "x"}}})

	_, err := findValues(row, map[string]string{"field": "absent"})
	if !errors.Is(err, ErrFieldMissing) {
		t.Errorf("got %v, want ErrFieldMissing", err)
	}
}

func TestFindValuesBadCount(t *testing.T) {
	row := ColumnRow(Row{Columns: []Cell{{ID: "c", Value: "many"}}})

	if _, err := findValues(row, map[string]string{"arrest_count": "c"}); err == nil {
		t.Error("expected error for non-integer count")
	}
}

func TestFindValuesNilCells(t *testing.T) {
	values, err := findValues(ColumnRow(Row{}), map[string]string{"f": "id"})
	if err != nil || values != nil {
		t.Errorf("got (%v, %v), want (nil, nil) for absent cells", values, err)
	}
}

func TestRequireValuesNilCells(t *testing.T) {
	_, err := requireValues(ColumnRow(Row{}), map[string]string{"f": "id"})
	if !errors.Is(err, ErrFieldMissing) {
		t.Errorf("got %v, want ErrFieldMissing for absent cells", err)
	}
}

func TestFindValuesEmptyValueSkipsCoercion(t *testing.T) {
	row := ColumnRow(Row{Columns: []Cell{{ID: "c", Value: "  "}}})

	values, err := findValues(row, map[string]string{"charges_count": "c"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if values["charges_count"] != "" {
		t.Errorf("got %q, want empty", values["charges_count"])
	}
}

func TestIntPtrField(t *testing.T) {
	values := map[string]string{"a": "3", "b": "", "c": "0"}

	if got := intPtrField(values, "a"); got == nil || *got != 3 {
		t.Errorf("a = %v, want 3", got)
	}
	if got := intPtrField(values, "b"); got != nil {
		t.Errorf("b = %v, want nil for empty", got)
	}
	// Zero counts are omitted, not zero.
	if got := intPtrField(values, "c"); got != nil {
		t.Errorf("c = %v, want nil for zero", got)
	}
}

func TestDateOnly(t *testing.T) {
	tests := []struct{ in, want string }{
		{"12/31/2015 12:00:00 AM", "12/31/2015"},
		{"12/31/2015", "12/31/2015"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := dateOnly(tt.in); got != tt.want {
			t.Errorf("dateOnly(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
