package profile

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Host prefixes for document URL correction. The upstream embeds links
// against its internal host or as bare relative paths.
const (
	PublicHost         = "https://oip.nypdonline.org"
	internalHostPrefix = "http://nypdonline"
)

// penaltyMarker precedes the penalty text inside a discipline child
// row's composite group label.
const penaltyMarker = "Penalty:"

var anchorRe = regexp.MustCompile(`<a[^>]+href="([^"]+)"`)

// OfficerFromRow normalizes one officer list row. The decomposed name
// fields are derived from full_name, never extracted independently.
func OfficerFromRow(row Row) (Officer, error) {
	taxid, err := strconv.Atoi(strings.TrimSpace(row.RowValue))
	if err != nil {
		return Officer{}, fmt.Errorf("officer row value %q: %w", row.RowValue, err)
	}

	values, err := requireValues(ColumnRow(row), ListFields)
	if err != nil {
		return Officer{}, fmt.Errorf("officer %d: %w", taxid, err)
	}

	full := values["full_name"]
	last, first, middle := DecomposeName(full)

	return Officer{
		TaxID:            taxid,
		FullName:         full,
		FirstName:        first,
		LastName:         last,
		MiddleInitial:    middle,
		Command:          values["command"],
		Rank:             values["rank"],
		ShieldNo:         values["shield_no"],
		ApptDate:         values["appt_date"],
		RecognitionCount: intField(values, "recognition_count"),
		ArrestCount:      intField(values, "arrest_count"),
	}, nil
}

// ParseSummary normalizes the profile summary report. The summary lives
// in the Items of the first row; an absent or empty payload yields nil.
func ParseSummary(payload []byte) (*Summary, error) {
	rows, ok := DecodeReport(payload)
	if !ok || len(rows) == 0 {
		return nil, nil
	}

	values, err := findValues(ItemRow(rows[0]), SummaryFields)
	if err != nil {
		return nil, fmt.Errorf("summary: %w", err)
	}
	if values == nil {
		return nil, nil
	}

	return &Summary{
		Command:        values["command"],
		AssignmentDate: values["assignment_date"],
		Ethnicity:      values["ethnicity"],
		RankDesc:       values["rank_desc"],
		ShieldNo:       values["shield_no"],
		ApptDate:       values["appt_date"],
	}, nil
}

// ParseRanks normalizes the rank history report.
func ParseRanks(payload []byte) ([]RankItem, error) {
	rows, ok := DecodeReport(payload)
	if !ok {
		return nil, nil
	}

	ranks := make([]RankItem, 0, len(rows))
	for _, row := range rows {
		values, err := requireValues(ColumnRow(row), RankFields)
		if err != nil {
			return nil, fmt.Errorf("ranks: %w", err)
		}
		ranks = append(ranks, RankItem{
			Rank:     values["rank"],
			Date:     values["date"],
			ShieldNo: values["shield_no"],
		})
	}
	return ranks, nil
}

// ParseDocuments normalizes the document list, rewriting each embedded
// URL to its public absolute form.
func ParseDocuments(payload []byte) ([]Document, error) {
	rows, ok := DecodeReport(payload)
	if !ok {
		return nil, nil
	}

	documents := make([]Document, 0, len(rows))
	for _, row := range rows {
		values, err := requireValues(ColumnRow(row), DocumentFields)
		if err != nil {
			return nil, fmt.Errorf("documents: %w", err)
		}
		documents = append(documents, Document{
			Date: values["date"],
			URL:  CorrectURL(ExtractHref(values["url"])),
			Type: values["type"],
		})
	}
	return documents, nil
}

// ParseDiscipline normalizes the discipline entry list. Child rows are
// fetched and attached separately.
func ParseDiscipline(payload []byte) ([]DisciplineEntry, error) {
	rows, ok := DecodeReport(payload)
	if !ok {
		return nil, nil
	}

	entries := make([]DisciplineEntry, 0, len(rows))
	for _, row := range rows {
		values, err := requireValues(ColumnRow(row), DisciplineFields)
		if err != nil {
			return nil, fmt.Errorf("discipline: %w", err)
		}
		entries = append(entries, DisciplineEntry{
			Entry:            values["entry"],
			ChargesCount:     intPtrField(values, "charges_count"),
			AllegationsCount: intPtrField(values, "allegations_count"),
		})
	}
	return entries, nil
}

// ParseCharges normalizes the charge rows belonging to the discipline
// entry with the given occurrence index. The detail response carries rows
// for all of the officer's discipline entries; the upstream's own date
// correlation key is not trustworthy, so rows are claimed by group order
// of appearance instead.
func ParseCharges(payload []byte, group int) ([]Charge, error) {
	rows, ok := DecodeReport(payload)
	if !ok {
		return nil, nil
	}

	charges := make([]Charge, 0)
	for i, ordinal := range groupOrdinals(rows) {
		if ordinal != group {
			continue
		}
		row := rows[i]
		values, err := requireValues(ColumnRow(row), ChargeFields)
		if err != nil {
			return nil, fmt.Errorf("charges group %d: %w", group, err)
		}
		charges = append(charges, Charge{
			Disposition: values["disposition"],
			Command:     values["command"],
			CaseNo:      values["case_no"],
			Description: values["description"],
			Penalty:     penaltyFromLabel(row.GroupName),
		})
	}
	return charges, nil
}

// ParseAllegations normalizes the allegation rows belonging to the
// discipline entry with the given occurrence index.
func ParseAllegations(payload []byte, group int) ([]Allegation, error) {
	rows, ok := DecodeReport(payload)
	if !ok {
		return nil, nil
	}

	allegations := make([]Allegation, 0)
	for i, ordinal := range groupOrdinals(rows) {
		if ordinal != group {
			continue
		}
		row := rows[i]
		values, err := requireValues(ColumnRow(row), AllegationFields)
		if err != nil {
			return nil, fmt.Errorf("allegations group %d: %w", group, err)
		}
		allegations = append(allegations, Allegation{
			CaseNo:         values["case_no"],
			Description:    values["description"],
			Recommendation: values["recommendation"],
			Penalty:        penaltyFromLabel(row.GroupName),
		})
	}
	return allegations, nil
}

// groupOrdinals assigns each row a 1-based occurrence index that
// increments whenever the row's group label changes from its
// predecessor's, i.e. groups are identified by encounter order.
func groupOrdinals(rows []Row) []int {
	ordinals := make([]int, len(rows))
	ordinal := 0
	for i, row := range rows {
		if i == 0 || row.GroupName != rows[i-1].GroupName {
			ordinal++
		}
		ordinals[i] = ordinal
	}
	return ordinals
}

// penaltyFromLabel extracts the penalty text that follows the marker
// token inside a composite group label and strips the residual markup
// fragments the upstream leaves behind.
func penaltyFromLabel(label string) string {
	i := strings.Index(label, penaltyMarker)
	if i < 0 {
		return ""
	}
	penalty := label[i+len(penaltyMarker):]
	penalty = strings.ReplaceAll(penalty, "&nbsp;", " ")
	penalty = strings.ReplaceAll(penalty, "<i>", "")
	penalty = strings.ReplaceAll(penalty, "</i>", "")
	penalty = strings.ReplaceAll(penalty, "</div>", "")
	return strings.TrimSpace(penalty)
}

// ParseArrests normalizes the arrest tally. Classification labels are
// lowercased; a duplicate classification overwrites the earlier count.
func ParseArrests(payload []byte) (ArrestTally, error) {
	rows, ok := DecodeReport(payload)
	if !ok {
		return nil, nil
	}

	tally := make(ArrestTally, len(rows))
	for _, row := range rows {
		values, err := requireValues(ColumnRow(row), ArrestFields)
		if err != nil {
			return nil, fmt.Errorf("arrests: %w", err)
		}
		tally[strings.ToLower(values["classification"])] = intField(values, "arrest_count")
	}
	return tally, nil
}

// ParseTraining normalizes the training history report.
func ParseTraining(payload []byte) ([]TrainingItem, error) {
	return parseDateNameReport(payload, TrainingFields, "training")
}

// ParseAwards normalizes the awards report.
func ParseAwards(payload []byte) ([]TrainingItem, error) {
	return parseDateNameReport(payload, AwardFields, "awards")
}

func parseDateNameReport(payload []byte, fields map[string]string, kind string) ([]TrainingItem, error) {
	rows, ok := DecodeReport(payload)
	if !ok {
		return nil, nil
	}

	items := make([]TrainingItem, 0, len(rows))
	for _, row := range rows {
		values, err := requireValues(ColumnRow(row), fields)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", kind, err)
		}
		items = append(items, TrainingItem{
			Date: values["date"],
			Name: values["name"],
		})
	}
	return items, nil
}

// ExtractHref pulls a URL out of a markup-embedded source value: anchor
// tags are matched directly, otherwise a quoted attribute is split on
// the quote character. Bare values pass through.
func ExtractHref(raw string) string {
	if m := anchorRe.FindStringSubmatch(raw); m != nil {
		return m[1]
	}
	if strings.Contains(raw, `"`) {
		parts := strings.Split(raw, `"`)
		if len(parts) > 1 {
			return parts[1]
		}
	}
	return raw
}

// CorrectURL rewrites a raw document URL to its public absolute form: an
// internal-host prefix is swapped for the public host, and relative
// paths are prefixed with it.
func CorrectURL(raw string) string {
	if strings.HasPrefix(raw, internalHostPrefix) {
		return PublicHost + strings.TrimPrefix(raw, internalHostPrefix)
	}
	if strings.HasPrefix(raw, PublicHost) {
		return raw
	}
	return PublicHost + raw
}
