package profile

import (
	"encoding/json"
	"errors"
	"testing"
)

// cellsFor builds a cell list for a field map from logical values.
func cellsFor(fields map[string]string, values map[string]string) []Cell {
	cells := make([]Cell, 0, len(fields))
	for name, id := range fields {
		cells = append(cells, Cell{ID: id, Value: values[name]})
	}
	return cells
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return data
}

func TestDecodeListMalformed(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"missing data field", `{"Total": 10}`},
		{"wrong top-level shape", `[1, 2, 3]`},
		{"not json", `<html>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeList([]byte(tt.payload)); !errors.Is(err, ErrMalformedList) {
				t.Errorf("got %v, want ErrMalformedList", err)
			}
		})
	}
}

func TestDecodeListEmptyPage(t *testing.T) {
	list, err := DecodeList([]byte(`{"Total": 0, "Data": []}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list.Data) != 0 {
		t.Errorf("data = %v", list.Data)
	}
}

func TestDecodeReportAbsentStates(t *testing.T) {
	// Null, absent, or non-list payloads are "no report", a state
	// distinguishable from "fetched but empty".
	for _, payload := range []string{"", "null", `{"error": "x"}`} {
		if rows, ok := DecodeReport([]byte(payload)); ok {
			t.Errorf("DecodeReport(%q) = (%v, true), want no report", payload, rows)
		}
	}

	rows, ok := DecodeReport([]byte(`[]`))
	if !ok || rows == nil || len(rows) != 0 {
		t.Errorf("empty list: got (%v, %v), want non-nil empty", rows, ok)
	}
}

func TestOfficerFromRow(t *testing.T) {
	row := Row{
		RowValue: " 912345 ",
		Columns: cellsFor(ListFields, map[string]string{
			"full_name":         "SMITH, JOHN A",
			"command":           "044 PCT",
			"rank":              "POM",
			"shield_no":         "12345",
			"appt_date":         "07/01/2010 12:00:00 AM",
			"recognition_count": "2",
			"arrest_count":      "31",
		}),
	}

	officer, err := OfficerFromRow(row)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if officer.TaxID != 912345 {
		t.Errorf("taxid = %d", officer.TaxID)
	}
	if officer.LastName != "SMITH" || officer.FirstName != "JOHN" || officer.MiddleInitial != "A" {
		t.Errorf("name parts = %q %q %q", officer.LastName, officer.FirstName, officer.MiddleInitial)
	}
	if officer.ApptDate != "07/01/2010" {
		t.Errorf("appt_date = %q", officer.ApptDate)
	}
	if officer.RecognitionCount != 2 || officer.ArrestCount != 31 {
		t.Errorf("counts = %d %d", officer.RecognitionCount, officer.ArrestCount)
	}
}

func TestOfficerFromRowBadTaxID(t *testing.T) {
	if _, err := OfficerFromRow(Row{RowValue: "abc"}); err == nil {
		t.Error("expected error for non-numeric row value")
	}
}

func TestParseSummary(t *testing.T) {
	payload := mustJSON(t, []Row{{
		Items: cellsFor(SummaryFields, map[string]string{
			"command":         "044 PCT",
			"assignment_date": "01/15/2018 12:00:00 AM",
			"ethnicity":       "WHITE",
			"rank_desc":       "POLICE OFFICER",
			"shield_no":       "12345",
			"appt_date":       "07/01/2010 12:00:00 AM",
		}),
	}})

	summary, err := ParseSummary(payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary == nil {
		t.Fatal("summary is nil")
	}
	if summary.AssignmentDate != "01/15/2018" {
		t.Errorf("assignment_date = %q", summary.AssignmentDate)
	}
	if summary.Ethnicity != "WHITE" {
		t.Errorf("ethnicity = %q", summary.Ethnicity)
	}
}

func TestParseSummaryAbsent(t *testing.T) {
	for _, payload := range []string{"null", "[]"} {
		summary, err := ParseSummary([]byte(payload))
		if err != nil || summary != nil {
			t.Errorf("ParseSummary(%q) = (%v, %v), want (nil, nil)", payload, summary, err)
		}
	}
}

func TestParseRanksRowWithoutCells(t *testing.T) {
	// A cell-less row inside a served report is schema drift, not an
	// empty rank entry.
	payload := mustJSON(t, []Row{{RowValue: "x"}})

	if _, err := ParseRanks(payload); !errors.Is(err, ErrFieldMissing) {
		t.Errorf("got %v, want ErrFieldMissing", err)
	}
}

func TestParseDocumentsURLCorrection(t *testing.T) {
	payload := mustJSON(t, []Row{
		{Columns: cellsFor(DocumentFields, map[string]string{
			"date": "03/02/2021 12:00:00 AM",
			"url":  `<a target="_blank" href="/files/doc1.pdf">doc</a>`,
			"type": "Detail Report",
		})},
		{Columns: cellsFor(DocumentFields, map[string]string{
			"date": "01/01/2020 12:00:00 AM",
			"url":  "http://nypdonline/files/doc2.pdf",
			"type": "Detail Report",
		})},
	})

	documents, err := ParseDocuments(payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if documents[0].URL != "https://oip.nypdonline.org/files/doc1.pdf" {
		t.Errorf("anchor url = %q", documents[0].URL)
	}
	if documents[1].URL != "https://oip.nypdonline.org/files/doc2.pdf" {
		t.Errorf("internal host url = %q", documents[1].URL)
	}
	if documents[0].Date != "03/02/2021" {
		t.Errorf("date = %q", documents[0].Date)
	}
}

func TestExtractHref(t *testing.T) {
	tests := []struct{ in, want string }{
		{`<a target="_blank" href="/files/x.pdf">x</a>`, "/files/x.pdf"},
		{`<span data-url="/files/y.pdf"></span>`, "/files/y.pdf"},
		{"/files/z.pdf", "/files/z.pdf"},
	}
	for _, tt := range tests {
		if got := ExtractHref(tt.in); got != tt.want {
			t.Errorf("ExtractHref(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCorrectURL(t *testing.T) {
	tests := []struct{ in, want string }{
		{"/files/a.pdf", "https://oip.nypdonline.org/files/a.pdf"},
		{"http://nypdonline/files/b.pdf", "https://oip.nypdonline.org/files/b.pdf"},
		{"https://oip.nypdonline.org/files/c.pdf", "https://oip.nypdonline.org/files/c.pdf"},
	}
	for _, tt := range tests {
		if got := CorrectURL(tt.in); got != tt.want {
			t.Errorf("CorrectURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseDiscipline(t *testing.T) {
	payload := mustJSON(t, []Row{
		{Columns: cellsFor(DisciplineFields, map[string]string{
			"entry":             "01/01/2020 12:00:00 AM",
			"charges_count":     "2",
			"allegations_count": "",
		})},
		{Columns: cellsFor(DisciplineFields, map[string]string{
			"entry":             "03/01/2020 12:00:00 AM",
			"charges_count":     "0",
			"allegations_count": "1",
		})},
	})

	entries, err := ParseDiscipline(payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d", len(entries))
	}
	if entries[0].ChargesCount == nil || *entries[0].ChargesCount != 2 {
		t.Errorf("charges_count = %v", entries[0].ChargesCount)
	}
	if entries[0].AllegationsCount != nil {
		t.Errorf("empty allegations_count = %v, want omitted", entries[0].AllegationsCount)
	}
	if entries[1].ChargesCount != nil {
		t.Errorf("zero charges_count = %v, want omitted", entries[1].ChargesCount)
	}
}

func chargeRow(group, disposition string) Row {
	return Row{
		GroupName: group,
		Columns: cellsFor(ChargeFields, map[string]string{
			"disposition": disposition,
			"command":     "044 PCT",
			"case_no":     "2020-1234",
			"description": "Discourtesy",
		}),
	}
}

func TestParseChargesGroupAssignment(t *testing.T) {
	// Rows appear in group order [1, 1, 2]: the first two belong to the
	// first discipline entry, the third to the second.
	payload := mustJSON(t, []Row{
		chargeRow("01/01/2020, Penalty: 10 vacation days", "GUILTY"),
		chargeRow("01/01/2020, Penalty: 10 vacation days", "NOT GUILTY"),
		chargeRow("03/01/2020, Penalty: reprimand", "GUILTY"),
	})

	first, err := ParseCharges(payload, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(first) != 2 {
		t.Fatalf("group 1 charges = %d, want 2", len(first))
	}

	second, err := ParseCharges(payload, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(second) != 1 {
		t.Fatalf("group 2 charges = %d, want 1", len(second))
	}
	if second[0].Penalty != "reprimand" {
		t.Errorf("penalty = %q", second[0].Penalty)
	}
}

func TestPenaltyFromLabel(t *testing.T) {
	tests := []struct{ in, want string }{
		{"01/01/2020, Penalty: 10&nbsp;vacation days<i></i></div>", "10 vacation days"},
		{"01/01/2020, Penalty:  forfeit 5 days ", "forfeit 5 days"},
		{"01/01/2020", ""},
	}
	for _, tt := range tests {
		if got := penaltyFromLabel(tt.in); got != tt.want {
			t.Errorf("penaltyFromLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseArrestsLastWriteWins(t *testing.T) {
	payload := mustJSON(t, []Row{
		{Columns: cellsFor(ArrestFields, map[string]string{"classification": "Felony", "arrest_count": "3"})},
		{Columns: cellsFor(ArrestFields, map[string]string{"classification": "felony", "arrest_count": "5"})},
		{Columns: cellsFor(ArrestFields, map[string]string{"classification": "Misdemeanor", "arrest_count": "2"})},
	})

	tally, err := ParseArrests(payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tally["felony"] != 5 {
		t.Errorf("felony = %d, want 5 (last write wins)", tally["felony"])
	}
	if tally["misdemeanor"] != 2 {
		t.Errorf("misdemeanor = %d", tally["misdemeanor"])
	}
	if len(tally) != 2 {
		t.Errorf("tally = %v", tally)
	}
}

func TestParseTraining(t *testing.T) {
	payload := mustJSON(t, []Row{
		{Columns: cellsFor(TrainingFields, map[string]string{
			"date": "05/04/2019 12:00:00 AM",
			"name": "FIREARMS REQUALIFICATION",
		})},
	})

	items, err := ParseTraining(payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 || items[0].Date != "05/04/2019" {
		t.Errorf("items = %v", items)
	}
}
