package profile

// Officer is one person record with its associated report collections.
// The decomposed name fields are always derived from FullName.
type Officer struct {
	TaxID            int     `json:"taxid"`
	FullName         string  `json:"full_name"`
	FirstName        string  `json:"first_name"`
	LastName         string  `json:"last_name"`
	MiddleInitial    string  `json:"middle_initial"`
	Command          string  `json:"command"`
	Rank             string  `json:"rank"`
	ShieldNo         string  `json:"shield_no"`
	ApptDate         string  `json:"appt_date"`
	RecognitionCount int     `json:"recognition_count"`
	ArrestCount      int     `json:"arrest_count"`
	Reports          Reports `json:"reports"`
}

// Reports holds the per-kind report collections of one officer. A nil
// slice or pointer means the fetch never succeeded; an empty slice means
// fetched but empty.
type Reports struct {
	Summary    *Summary          `json:"summary"`
	Ranks      []RankItem        `json:"ranks"`
	Documents  []Document        `json:"documents"`
	Discipline []DisciplineEntry `json:"discipline"`
	Arrests    ArrestTally       `json:"arrests"`
	Training   []TrainingItem    `json:"training,omitempty"`
	Awards     []TrainingItem    `json:"awards"`
}

// Summary is the profile summary report.
type Summary struct {
	Command        string `json:"command"`
	AssignmentDate string `json:"assignment_date"`
	Ethnicity      string `json:"ethnicity"`
	RankDesc       string `json:"rank_desc"`
	ShieldNo       string `json:"shield_no"`
	ApptDate       string `json:"appt_date"`
}

// RankItem is one rank history entry.
type RankItem struct {
	Rank     string `json:"rank"`
	Date     string `json:"date"`
	ShieldNo string `json:"shield_no"`
}

// Document is one profile document with its corrected absolute URL.
type Document struct {
	Date string `json:"date"`
	URL  string `json:"url"`
	Type string `json:"type"`
}

// DisciplineEntry is one discipline record. Entry doubles as the date and
// as the upstream's (unreliable) correlation key for child fetches. Zero
// child counts are omitted, not zero.
type DisciplineEntry struct {
	Entry            string       `json:"entry"`
	ChargesCount     *int         `json:"charges_count,omitempty"`
	AllegationsCount *int         `json:"allegations_count,omitempty"`
	Charges          []Charge     `json:"charges,omitempty"`
	Allegations      []Allegation `json:"allegations,omitempty"`
}

// Charge is a substantiated discipline charge.
type Charge struct {
	Disposition string `json:"disposition"`
	Command     string `json:"command"`
	CaseNo      string `json:"case_no"`
	Description string `json:"description"`
	Penalty     string `json:"penalty,omitempty"`
}

// Allegation is a discipline allegation.
type Allegation struct {
	CaseNo         string `json:"case_no"`
	Description    string `json:"description"`
	Recommendation string `json:"recommendation"`
	Penalty        string `json:"penalty,omitempty"`
}

// ArrestTally maps lowercased arrest classifications to counts. The five
// known classifications are infraction, misdemeanor, felony, violation,
// and other.
type ArrestTally map[string]int

// Classifications lists the known arrest classifications in the order the
// tabular export emits them.
var Classifications = []string{"infraction", "misdemeanor", "felony", "violation", "other"}

// TrainingItem is one training or award entry.
type TrainingItem struct {
	Date string `json:"date"`
	Name string `json:"name"`
}

// TrialDecision is one published trial-decision document with the
// officers it names, in source order.
type TrialDecision struct {
	Date     string       `json:"date"`
	URL      string       `json:"url"`
	Officers []OfficerRef `json:"officers"`
}

// OfficerRef is one officer named by a trial decision. Retired officers
// carry no taxid.
type OfficerRef struct {
	LastName  string `json:"last_name"`
	FirstName string `json:"first_name"`
	TaxID     *int   `json:"taxid,omitempty"`
	Retired   bool   `json:"retired,omitempty"`
}
