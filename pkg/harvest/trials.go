package harvest

import (
	"context"

	"github.com/ryanwatkins/nypd-officer-profiles/pkg/profile"
)

// FetchTrialDecisions harvests the published trial-decision documents,
// a single paginated list with no letter buckets. Unparseable rows are
// logged and skipped; a first-page failure aborts with its error.
func (h *Harvester) FetchTrialDecisions(ctx context.Context) ([]profile.TrialDecision, error) {
	logger := h.logger.With().Str("list", "trials").Logger()

	credential, err := h.tokens.Credential(ctx)
	if err != nil {
		return nil, err
	}
	h.fetcher.SetCredential(credential)

	rows, failed, err := h.fetchPages(ctx, func(page int) string {
		return h.eps.Trials(page, h.pageSize)
	}, logger)
	if err != nil {
		return nil, err
	}
	if failed {
		logger.Warn().Msg("Trial list incomplete; keeping parsed rows")
	}

	decisions := make([]profile.TrialDecision, 0, len(rows))
	for _, row := range rows {
		decision, err := profile.TrialDecisionFromRow(row)
		if err != nil {
			logger.Warn().Err(err).Msg("Skipping unparseable trial row")
			continue
		}
		decisions = append(decisions, decision)
	}

	profile.SortTrialDecisions(decisions)
	logger.Info().Int("decisions", len(decisions)).Msg("Trial decisions harvested")
	return decisions, nil
}
