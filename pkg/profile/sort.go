package profile

import (
	"sort"
	"time"
)

// The exported collections each carry a defined total order with explicit
// tie-break chains, so output is byte-for-byte reproducible regardless of
// fetch completion order.

var dateLayouts = []string{"1/2/2006", "2006-01-02"}

func parseDate(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// SortOfficers orders officers by last name, first name, then taxid.
func SortOfficers(officers []Officer) {
	sort.Slice(officers, func(i, j int) bool {
		a, b := officers[i], officers[j]
		if a.LastName != b.LastName {
			return a.LastName < b.LastName
		}
		if a.FirstName != b.FirstName {
			return a.FirstName < b.FirstName
		}
		return a.TaxID < b.TaxID
	})
}

// SortRanks orders rank history by date ascending with undated entries
// last, then rank, then shield number.
func SortRanks(ranks []RankItem) {
	sort.Slice(ranks, func(i, j int) bool {
		a, b := ranks[i], ranks[j]
		ad, aok := parseDate(a.Date)
		bd, bok := parseDate(b.Date)
		if aok != bok {
			return aok // dated entries precede undated ones
		}
		if aok && !ad.Equal(bd) {
			return ad.Before(bd)
		}
		if a.Rank != b.Rank {
			return a.Rank < b.Rank
		}
		return a.ShieldNo < b.ShieldNo
	})
}

// SortDocuments orders documents by date descending, then url, then
// type. Undated documents sort first so they surface for review.
func SortDocuments(documents []Document) {
	sort.Slice(documents, func(i, j int) bool {
		a, b := documents[i], documents[j]
		ad, aok := parseDate(a.Date)
		bd, bok := parseDate(b.Date)
		if aok != bok {
			return !aok // undated entries first
		}
		if aok && !ad.Equal(bd) {
			return ad.After(bd)
		}
		if a.URL != b.URL {
			return a.URL < b.URL
		}
		return a.Type < b.Type
	})
}

// SortByDateName orders training and award items by date descending with
// undated entries first, then name ascending.
func SortByDateName(items []TrainingItem) {
	sort.Slice(items, func(i, j int) bool {
		a, b := items[i], items[j]
		ad, aok := parseDate(a.Date)
		bd, bok := parseDate(b.Date)
		if aok != bok {
			return !aok
		}
		if aok && !ad.Equal(bd) {
			return ad.After(bd)
		}
		return a.Name < b.Name
	})
}

// SortTrialDecisions orders trial decisions by date descending with
// undated entries first, then by their officer sequences, then url.
func SortTrialDecisions(decisions []TrialDecision) {
	sort.Slice(decisions, func(i, j int) bool {
		a, b := decisions[i], decisions[j]
		ad, aok := parseDate(a.Date)
		bd, bok := parseDate(b.Date)
		if aok != bok {
			return !aok
		}
		if aok && !ad.Equal(bd) {
			return ad.After(bd)
		}
		if c := compareOfficerRefs(a.Officers, b.Officers); c != 0 {
			return c < 0
		}
		return a.URL < b.URL
	})
}

// compareOfficerRefs compares two officer sequences lexicographically
// using the officer ordering (last, first, taxid); a shorter prefix
// sorts first.
func compareOfficerRefs(a, b []OfficerRef) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := compareOfficerRef(a[i], b[i]); c != 0 {
			return c
		}
	}
	return len(a) - len(b)
}

func compareOfficerRef(a, b OfficerRef) int {
	if a.LastName != b.LastName {
		if a.LastName < b.LastName {
			return -1
		}
		return 1
	}
	if a.FirstName != b.FirstName {
		if a.FirstName < b.FirstName {
			return -1
		}
		return 1
	}
	at, bt := 0, 0
	if a.TaxID != nil {
		at = *a.TaxID
	}
	if b.TaxID != nil {
		bt = *b.TaxID
	}
	return at - bt
}
