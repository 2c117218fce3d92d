package profile

import (
	"testing"
)

func TestTrialDecisionFromRow(t *testing.T) {
	row := Row{
		Columns: cellsFor(TrialFields, map[string]string{
			"date":     "04/12/2021 12:00:00 AM",
			"url":      `<a target="_blank" href="/files/trials/decision-1.pdf">view</a>`,
			"officers": "SMITH, JOHN; DOE, JANE*; BROWN, MIKE",
			"taxids":   "911111,922222",
		}),
	}

	decision, err := TrialDecisionFromRow(row)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if decision.Date != "04/12/2021" {
		t.Errorf("date = %q", decision.Date)
	}
	if decision.URL != "https://oip.nypdonline.org/files/trials/decision-1.pdf" {
		t.Errorf("url = %q", decision.URL)
	}
	if len(decision.Officers) != 3 {
		t.Fatalf("officers = %d, want 3", len(decision.Officers))
	}

	// Order matches the source name list.
	first, second, third := decision.Officers[0], decision.Officers[1], decision.Officers[2]

	if first.LastName != "SMITH" || first.FirstName != "JOHN" {
		t.Errorf("first officer = %+v", first)
	}
	if first.TaxID == nil || *first.TaxID != 911111 {
		t.Errorf("first taxid = %v", first.TaxID)
	}

	// The retired officer carries no taxid and consumes no taxid slot.
	if !second.Retired || second.TaxID != nil {
		t.Errorf("retired officer = %+v", second)
	}
	if second.FirstName != "JANE" {
		t.Errorf("retired marker not stripped: %q", second.FirstName)
	}

	if third.TaxID == nil || *third.TaxID != 922222 {
		t.Errorf("third taxid = %v (retired officer must not consume a slot)", third.TaxID)
	}
}

func TestParseOfficerRefsEmpty(t *testing.T) {
	if refs := parseOfficerRefs("", ""); refs != nil {
		t.Errorf("got %v, want nil", refs)
	}
}

func TestParseOfficerRefsNoFirstName(t *testing.T) {
	refs := parseOfficerRefs("SMITH", "911111")
	if len(refs) != 1 || refs[0].LastName != "SMITH" || refs[0].FirstName != "" {
		t.Errorf("refs = %+v", refs)
	}
	if refs[0].TaxID == nil || *refs[0].TaxID != 911111 {
		t.Errorf("taxid = %v", refs[0].TaxID)
	}
}
