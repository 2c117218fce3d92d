package profile

import (
	"fmt"
	"strconv"
	"strings"
)

// TrialDecisionFromRow normalizes one trial-decision list row.
func TrialDecisionFromRow(row Row) (TrialDecision, error) {
	values, err := requireValues(ColumnRow(row), TrialFields)
	if err != nil {
		return TrialDecision{}, fmt.Errorf("trial decision: %w", err)
	}

	return TrialDecision{
		Date:     values["date"],
		URL:      CorrectURL(ExtractHref(values["url"])),
		Officers: parseOfficerRefs(values["officers"], values["taxids"]),
	}, nil
}

// parseOfficerRefs splits a semicolon-joined name list into officer
// references, in source order. A trailing "*" on the first-name token
// marks a retired officer. Tax ids come from the parallel comma-joined
// list but are consumed only for non-retired officers: retired officers
// advance the shared index by zero slots.
func parseOfficerRefs(names, taxids string) []OfficerRef {
	if names == "" {
		return nil
	}

	var ids []string
	if taxids != "" {
		ids = strings.Split(taxids, ",")
	}

	refs := make([]OfficerRef, 0)
	next := 0
	for _, name := range strings.Split(names, "; ") {
		last, first, _ := strings.Cut(name, ", ")
		ref := OfficerRef{
			LastName:  strings.TrimSpace(last),
			FirstName: strings.TrimSpace(first),
		}

		if strings.HasSuffix(ref.FirstName, "*") {
			ref.Retired = true
			ref.FirstName = strings.TrimSpace(strings.TrimSuffix(ref.FirstName, "*"))
		} else if next < len(ids) {
			if id, err := strconv.Atoi(strings.TrimSpace(ids[next])); err == nil {
				ref.TaxID = &id
			}
			next++
		}

		refs = append(refs, ref)
	}
	return refs
}
