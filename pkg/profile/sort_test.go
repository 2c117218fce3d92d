package profile

import (
	"math/rand"
	"reflect"
	"testing"
)

func TestSortOfficers(t *testing.T) {
	officers := []Officer{
		{TaxID: 3, LastName: "SMITH", FirstName: "JOHN"},
		{TaxID: 1, LastName: "ADAMS", FirstName: "ZOE"},
		{TaxID: 2, LastName: "SMITH", FirstName: "ALICE"},
		{TaxID: 4, LastName: "SMITH", FirstName: "JOHN"},
	}

	SortOfficers(officers)

	got := []int{officers[0].TaxID, officers[1].TaxID, officers[2].TaxID, officers[3].TaxID}
	want := []int{1, 2, 3, 4}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestSortRanksUndatedLast(t *testing.T) {
	ranks := []RankItem{
		{Rank: "SGT", Date: ""},
		{Rank: "POM", Date: "07/01/2010"},
		{Rank: "DET", Date: "03/15/2014"},
	}

	SortRanks(ranks)

	if ranks[0].Rank != "POM" || ranks[1].Rank != "DET" || ranks[2].Rank != "SGT" {
		t.Errorf("order = %v", ranks)
	}
}

func TestSortDocumentsUndatedFirst(t *testing.T) {
	documents := []Document{
		{Date: "", URL: "b"},
		{Date: "2021-01-01", URL: "a"},
	}

	SortDocuments(documents)

	if documents[0].Date != "" {
		t.Errorf("undated document not first: %v", documents)
	}
}

func TestSortDocumentsDescendingWithURLTieBreak(t *testing.T) {
	documents := []Document{
		{Date: "01/01/2020", URL: "b"},
		{Date: "03/01/2021", URL: "c"},
		{Date: "01/01/2020", URL: "a"},
	}

	SortDocuments(documents)

	if documents[0].URL != "c" || documents[1].URL != "a" || documents[2].URL != "b" {
		t.Errorf("order = %v", documents)
	}
}

func TestSortByDateNameDescending(t *testing.T) {
	items := []TrainingItem{
		{Date: "01/01/2015", Name: "B"},
		{Date: "01/01/2019", Name: "A"},
		{Date: "01/01/2015", Name: "A"},
		{Date: "", Name: "Z"},
	}

	SortByDateName(items)

	want := []TrainingItem{
		{Date: "", Name: "Z"},
		{Date: "01/01/2019", Name: "A"},
		{Date: "01/01/2015", Name: "A"},
		{Date: "01/01/2015", Name: "B"},
	}
	if !reflect.DeepEqual(items, want) {
		t.Errorf("order = %v, want %v", items, want)
	}
}

func TestSortIdempotent(t *testing.T) {
	items := []TrainingItem{
		{Date: "01/01/2015", Name: "B"},
		{Date: "01/01/2019", Name: "A"},
		{Date: "", Name: "Z"},
	}

	SortByDateName(items)
	once := append([]TrainingItem(nil), items...)
	SortByDateName(items)

	if !reflect.DeepEqual(items, once) {
		t.Errorf("second sort changed order: %v vs %v", items, once)
	}
}

func TestSortStableUnderPermutation(t *testing.T) {
	// Any input order of the same records must sort to the same output.
	base := []Document{
		{Date: "01/01/2020", URL: "a", Type: "x"},
		{Date: "01/01/2020", URL: "a", Type: "y"},
		{Date: "03/01/2021", URL: "b", Type: "x"},
		{Date: "", URL: "c", Type: "x"},
		{Date: "06/12/2018", URL: "d", Type: "x"},
	}

	want := append([]Document(nil), base...)
	SortDocuments(want)

	rng := rand.New(rand.NewSource(1))
	for trial := 0; trial < 20; trial++ {
		shuffled := append([]Document(nil), base...)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
		SortDocuments(shuffled)
		if !reflect.DeepEqual(shuffled, want) {
			t.Fatalf("permutation %d sorted to %v, want %v", trial, shuffled, want)
		}
	}
}

func TestSortTrialDecisions(t *testing.T) {
	id := func(n int) *int { return &n }
	decisions := []TrialDecision{
		{Date: "01/01/2020", URL: "u2", Officers: []OfficerRef{{LastName: "SMITH", FirstName: "JOHN", TaxID: id(2)}}},
		{Date: "01/01/2020", URL: "u1", Officers: []OfficerRef{{LastName: "ADAMS", FirstName: "ZOE", TaxID: id(1)}}},
		{Date: "", URL: "u3"},
		{Date: "05/01/2021", URL: "u4"},
	}

	SortTrialDecisions(decisions)

	if decisions[0].URL != "u3" {
		t.Errorf("undated decision not first: %v", decisions)
	}
	if decisions[1].URL != "u4" {
		t.Errorf("newest dated decision not second: %v", decisions)
	}
	if decisions[2].URL != "u1" || decisions[3].URL != "u2" {
		t.Errorf("officer-sequence tie break wrong: %v", decisions)
	}
}

func TestCompareOfficerRefsPrefix(t *testing.T) {
	a := []OfficerRef{{LastName: "ADAMS"}}
	b := []OfficerRef{{LastName: "ADAMS"}, {LastName: "SMITH"}}

	if compareOfficerRefs(a, b) >= 0 {
		t.Error("shorter prefix should sort first")
	}
	if compareOfficerRefs(b, a) <= 0 {
		t.Error("longer sequence should sort after its prefix")
	}
	if compareOfficerRefs(a, a) != 0 {
		t.Error("identical sequences should compare equal")
	}
}
