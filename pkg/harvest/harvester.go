// Package harvest orchestrates the full scrape: paginated list harvest
// per letter bucket, concurrent per-officer detail expansion, and the
// two-tier retry of failed officers and failed buckets.
package harvest

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ryanwatkins/nypd-officer-profiles/pkg/profile"
	"github.com/ryanwatkins/nypd-officer-profiles/pkg/scheduler"
)

// DefaultPageSize is the list page size the upstream serves.
const DefaultPageSize = 100

// DefaultLetters covers every last-name initial bucket.
var DefaultLetters = []string{
	"A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L", "M",
	"N", "O", "P", "Q", "R", "S", "T", "U", "V", "W", "X", "Y", "Z",
}

// Fetcher is the transport surface the harvester drives. Satisfied by
// client.Client.
type Fetcher interface {
	GetJSON(ctx context.Context, url string) ([]byte, error)
	PostJSON(ctx context.Context, url string, body []byte) ([]byte, error)
	SetCredential(credential string)
}

// TokenSource mints the opaque session credential installed on the
// fetcher before each partition pass.
type TokenSource interface {
	Credential(ctx context.Context) (string, error)
}

// Config holds the harvest configuration.
type Config struct {
	// BaseURL of the report portal.
	BaseURL string

	// Letters restricts the harvest to these buckets. Empty means all.
	Letters []string

	// PageSize per list request. Zero falls back to DefaultPageSize.
	PageSize int
}

// Harvester runs the scrape. All network calls route through the
// scheduler so total concurrency stays bounded.
type Harvester struct {
	fetcher  Fetcher
	tokens   TokenSource
	sched    *scheduler.Scheduler
	eps      Endpoints
	letters  []string
	pageSize int
	logger   zerolog.Logger
}

// New creates a harvester over the given transport and scheduler.
func New(fetcher Fetcher, tokens TokenSource, sched *scheduler.Scheduler, cfg Config) *Harvester {
	letters := cfg.Letters
	if len(letters) == 0 {
		letters = DefaultLetters
	}
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Harvester{
		fetcher:  fetcher,
		tokens:   tokens,
		sched:    sched,
		eps:      Endpoints{BaseURL: cfg.BaseURL},
		letters:  letters,
		pageSize: pageSize,
		logger:   log.With().Str("component", "harvest").Logger(),
	}
}

// officerReports lists the per-officer report fetches in a fixed order.
var officerReports = []struct {
	kind string
	id   int
}{
	{"summary", reportSummary},
	{"ranks", reportRanks},
	{"documents", reportDocuments},
	{"discipline", reportDiscipline},
	{"arrests", reportArrests},
	{"training", reportTraining},
	{"awards", reportAwards},
}

// postReport enqueues one report POST on the scheduler and waits for it.
func (h *Harvester) postReport(ctx context.Context, id int, body []byte) ([]byte, error) {
	url := h.eps.Report(id)
	fut := h.sched.Enqueue(func() (any, error) {
		return h.fetcher.PostJSON(ctx, url, body)
	})
	v, err := fut.Wait()
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

// fetchOfficer expands one officer's detail reports in place. All seven
// report fetches are issued concurrently; anomalies accumulate and are
// returned joined so a retry can attack all of them at once, while the
// partial record keeps everything that did parse.
func (h *Harvester) fetchOfficer(ctx context.Context, officer *profile.Officer) error {
	body := taxidFilter(officer.TaxID)

	futures := make([]*scheduler.Future, len(officerReports))
	for i, r := range officerReports {
		url := h.eps.Report(r.id)
		futures[i] = h.sched.Enqueue(func() (any, error) {
			return h.fetcher.PostJSON(ctx, url, body)
		})
	}

	payloads := make(map[string][]byte, len(officerReports))
	var problems []error
	for i, r := range officerReports {
		v, err := futures[i].Wait()
		if err != nil {
			problems = append(problems, fmt.Errorf("%s fetch: %w", r.kind, err))
			continue
		}
		payloads[r.kind] = v.([]byte)
	}

	// A kind whose fetch failed is skipped entirely: on a retry the
	// officer arrives with its pass-1 reports attached, and those must
	// not be overwritten by a "no report" parse of a payload that was
	// never received.
	if payload, ok := payloads["summary"]; ok {
		if summary, err := profile.ParseSummary(payload); err != nil {
			problems = append(problems, err)
		} else {
			officer.Reports.Summary = summary
			if summary == nil {
				reportAnomaliesTotal.WithLabelValues("missing_summary").Inc()
				problems = append(problems, ErrMissingSummary)
			}
		}
	}

	if payload, ok := payloads["ranks"]; ok {
		if ranks, err := profile.ParseRanks(payload); err != nil {
			problems = append(problems, err)
		} else {
			profile.SortRanks(ranks)
			officer.Reports.Ranks = ranks
			if len(ranks) == 0 {
				reportAnomaliesTotal.WithLabelValues("empty_ranks").Inc()
				problems = append(problems, ErrEmptyRanks)
			}
		}
	}

	if payload, ok := payloads["documents"]; ok {
		if documents, err := profile.ParseDocuments(payload); err != nil {
			problems = append(problems, err)
		} else {
			profile.SortDocuments(documents)
			officer.Reports.Documents = documents
		}
	}

	if payload, ok := payloads["discipline"]; ok {
		if entries, err := profile.ParseDiscipline(payload); err != nil {
			problems = append(problems, err)
		} else {
			problems = append(problems, h.fetchDisciplineChildren(ctx, officer.TaxID, entries)...)
			officer.Reports.Discipline = entries
		}
	}

	if payload, ok := payloads["arrests"]; ok {
		if arrests, err := profile.ParseArrests(payload); err != nil {
			problems = append(problems, err)
		} else {
			officer.Reports.Arrests = arrests
		}
	}

	if payload, ok := payloads["training"]; ok {
		if training, err := profile.ParseTraining(payload); err != nil {
			problems = append(problems, err)
		} else {
			profile.SortByDateName(training)
			officer.Reports.Training = training
			if len(training) == 0 {
				reportAnomaliesTotal.WithLabelValues("empty_training").Inc()
				problems = append(problems, ErrEmptyTraining)
			}
		}
	}

	if payload, ok := payloads["awards"]; ok {
		if awards, err := profile.ParseAwards(payload); err != nil {
			problems = append(problems, err)
		} else {
			profile.SortByDateName(awards)
			officer.Reports.Awards = awards
		}
	}

	return errors.Join(problems...)
}

// fetchDisciplineChildren attaches charge and allegation rows to the
// entries that declare them. The child responses carry rows for all of
// the officer's entries at once, so each report kind keeps its own
// occurrence counter advanced in entry parse order.
func (h *Harvester) fetchDisciplineChildren(ctx context.Context, taxid int, entries []profile.DisciplineEntry) []error {
	var problems []error
	chargeGroup, allegationGroup := 0, 0

	for i := range entries {
		entry := &entries[i]

		if entry.ChargesCount != nil {
			chargeGroup++
			payload, err := h.postReport(ctx, reportCharges, taxidDateFilter(taxid, entry.Entry))
			if err != nil {
				problems = append(problems, fmt.Errorf("charges fetch %q: %w", entry.Entry, err))
				continue
			}
			charges, err := profile.ParseCharges(payload, chargeGroup)
			if err != nil {
				problems = append(problems, err)
				continue
			}
			entry.Charges = charges
			if len(charges) != *entry.ChargesCount {
				reportAnomaliesTotal.WithLabelValues("count_mismatch").Inc()
				problems = append(problems, fmt.Errorf("%w: entry %q declared %d charges, parsed %d",
					ErrCountMismatch, entry.Entry, *entry.ChargesCount, len(charges)))
			}
		}

		if entry.AllegationsCount != nil {
			allegationGroup++
			payload, err := h.postReport(ctx, reportAllegations, taxidDateFilter(taxid, entry.Entry))
			if err != nil {
				problems = append(problems, fmt.Errorf("allegations fetch %q: %w", entry.Entry, err))
				continue
			}
			allegations, err := profile.ParseAllegations(payload, allegationGroup)
			if err != nil {
				problems = append(problems, err)
				continue
			}
			entry.Allegations = allegations
			if len(allegations) != *entry.AllegationsCount {
				reportAnomaliesTotal.WithLabelValues("count_mismatch").Inc()
				problems = append(problems, fmt.Errorf("%w: entry %q declared %d allegations, parsed %d",
					ErrCountMismatch, entry.Entry, *entry.AllegationsCount, len(allegations)))
			}
		}
	}
	return problems
}
