package harvest

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/ryanwatkins/nypd-officer-profiles/pkg/profile"
	"github.com/ryanwatkins/nypd-officer-profiles/pkg/scheduler"
)

// fetchPages drives one paginated list. Page 1 is fetched synchronously
// to learn the total; the remaining pages fan out on the scheduler all
// at once. When the first page reports no total but still fills a full
// page, the walk degrades to sequential requests until a short page.
//
// A failed first page aborts with its error. A failed or malformed later
// page only poisons that page: its rows are lost, failed flips true, and
// the other pages' rows are kept.
func (h *Harvester) fetchPages(ctx context.Context, urlFor func(page int) string, logger zerolog.Logger) (rows []profile.Row, failed bool, err error) {
	payload, err := h.fetcher.GetJSON(ctx, urlFor(1))
	if err != nil {
		return nil, true, err
	}
	pagesFetchedTotal.Inc()

	first, err := profile.DecodeList(payload)
	if err != nil {
		return nil, true, err
	}
	rows = first.Data

	if first.Total > 0 {
		totalPages := (first.Total + h.pageSize - 1) / h.pageSize
		futures := make([]*scheduler.Future, 0, totalPages-1)
		for page := 2; page <= totalPages; page++ {
			url := urlFor(page)
			futures = append(futures, h.sched.Enqueue(func() (any, error) {
				return h.fetcher.GetJSON(ctx, url)
			}))
		}
		for i, fut := range futures {
			v, err := fut.Wait()
			pagesFetchedTotal.Inc()
			if err != nil {
				logger.Warn().Err(err).Int("page", i+2).Msg("List page fetch failed")
				failed = true
				continue
			}
			pl, err := profile.DecodeList(v.([]byte))
			if err != nil {
				logger.Warn().Err(err).Int("page", i+2).Msg("List page malformed")
				failed = true
				continue
			}
			rows = append(rows, pl.Data...)
		}
		return rows, failed, nil
	}

	// Total unknown: walk forward until a short page.
	for page := 2; len(rows) > 0 && len(rows)%h.pageSize == 0; page++ {
		payload, err := h.fetcher.GetJSON(ctx, urlFor(page))
		if err != nil {
			logger.Warn().Err(err).Int("page", page).Msg("List page fetch failed")
			return rows, true, nil
		}
		pagesFetchedTotal.Inc()
		pl, err := profile.DecodeList(payload)
		if err != nil {
			logger.Warn().Err(err).Int("page", page).Msg("List page malformed")
			return rows, true, nil
		}
		if len(pl.Data) == 0 {
			break
		}
		rows = append(rows, pl.Data...)
		if len(pl.Data) < h.pageSize {
			break
		}
	}
	return rows, failed, nil
}

// fetchList harvests one letter bucket's officer list. Row-level parse
// failures are logged and skipped; they mark the bucket failed so the
// partition retry pass re-fetches it wholesale.
func (h *Harvester) fetchList(ctx context.Context, letter string, logger zerolog.Logger) ([]profile.Officer, bool) {
	rows, failed, err := h.fetchPages(ctx, func(page int) string {
		return h.eps.List(letter, page, h.pageSize)
	}, logger)
	if err != nil {
		logger.Error().Err(err).Msg("List harvest failed")
		return nil, true
	}

	officers := make([]profile.Officer, 0, len(rows))
	for _, row := range rows {
		officer, err := profile.OfficerFromRow(row)
		if err != nil {
			logger.Warn().Err(err).Msg("Skipping unparseable list row")
			failed = true
			continue
		}
		officers = append(officers, officer)
	}
	return officers, failed
}
