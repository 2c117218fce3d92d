package harvest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/ryanwatkins/nypd-officer-profiles/pkg/profile"
)

// Partition is the outcome of one letter bucket.
type Partition struct {
	Letter   string
	Officers []profile.Officer

	// ListFailed marks a bucket whose list harvest failed; the run's
	// single partition retry pass re-processes it wholesale.
	ListFailed bool

	// FailedTaxIDs lists the officers still failed after the bucket's
	// entity retry. Their partial records remain in Officers.
	FailedTaxIDs []int
}

// SnapshotWriter persists one bucket's records as soon as the bucket
// finishes, so a crash loses at most the bucket in flight.
type SnapshotWriter interface {
	WritePartition(letter string, officers []profile.Officer) error
}

// Run harvests every configured bucket in order, then makes exactly one
// retry pass over the buckets whose list harvest failed. Each retried
// bucket re-runs the full pipeline, including its own entity retry, and
// its snapshot is rewritten. Returns the final partitions; the only
// errors surfaced are the writer's.
func (h *Harvester) Run(ctx context.Context, out SnapshotWriter) ([]Partition, error) {
	partitions := make([]Partition, 0, len(h.letters))
	var failedLetters []string

	for _, letter := range h.letters {
		p := h.processPartition(ctx, letter)
		if p.ListFailed {
			failedLetters = append(failedLetters, letter)
		}
		if out != nil {
			if err := out.WritePartition(p.Letter, p.Officers); err != nil {
				return partitions, err
			}
		}
		partitions = append(partitions, p)
	}

	for _, letter := range failedLetters {
		h.logger.Info().Str("letter", letter).Msg("Retrying failed partition")
		p := h.processPartition(ctx, letter)
		if p.ListFailed {
			h.logger.Warn().Str("letter", letter).Msg("Partition failed again; keeping partial result")
		}
		for i := range partitions {
			if partitions[i].Letter == letter {
				partitions[i] = p
				break
			}
		}
		if out != nil {
			if err := out.WritePartition(p.Letter, p.Officers); err != nil {
				return partitions, err
			}
		}
	}

	return partitions, nil
}

// processPartition runs the full pipeline for one bucket: credential
// refresh, list harvest, concurrent detail expansion, and one entity
// retry over the officers whose expansion failed.
func (h *Harvester) processPartition(ctx context.Context, letter string) Partition {
	logger := h.logger.With().Str("letter", letter).Logger()
	startTime := time.Now()
	defer func() {
		partitionDuration.WithLabelValues(letter).Observe(time.Since(startTime).Seconds())
	}()

	credential, err := h.tokens.Credential(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Credential refresh failed")
		partitionFailuresTotal.WithLabelValues(letter).Inc()
		return Partition{Letter: letter, ListFailed: true}
	}
	h.fetcher.SetCredential(credential)

	officers, listFailed := h.fetchList(ctx, letter, logger)
	if listFailed {
		partitionFailuresTotal.WithLabelValues(letter).Inc()
	}
	logger.Info().Int("officers", len(officers)).Msg("List harvested")

	failed := h.fetchDetails(ctx, officers, logger)
	stillFailed := h.retryOfficers(ctx, officers, failed, logger)

	profile.SortOfficers(officers)
	officersHarvestedTotal.WithLabelValues(letter).Add(float64(len(officers)))

	return Partition{
		Letter:       letter,
		Officers:     officers,
		ListFailed:   listFailed,
		FailedTaxIDs: stillFailed,
	}
}

// fetchDetails expands every officer's detail reports concurrently and
// returns the taxids whose expansion failed, mapped to their partial
// records. The officers slice is only written at distinct indexes, and
// the failure set is built strictly after the join.
func (h *Harvester) fetchDetails(ctx context.Context, officers []profile.Officer, logger zerolog.Logger) map[int]profile.Officer {
	errs := make([]error, len(officers))

	var wg sync.WaitGroup
	for i := range officers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = h.fetchOfficer(ctx, &officers[i])
		}(i)
	}
	wg.Wait()

	failed := make(map[int]profile.Officer)
	for i, err := range errs {
		if err != nil {
			logger.Warn().Err(err).Int("taxid", officers[i].TaxID).Msg("Officer detail fetch failed")
			failed[officers[i].TaxID] = officers[i]
		}
	}
	return failed
}

// retryOfficers makes one retry attempt per failed officer, starting
// from the partial record so already-parsed reports survive a repeat
// failure. Results merge back into officers by taxid, again only after
// all retries join. Returns the taxids that failed both attempts.
func (h *Harvester) retryOfficers(ctx context.Context, officers []profile.Officer, failed map[int]profile.Officer, logger zerolog.Logger) []int {
	if len(failed) == 0 {
		return nil
	}

	taxids := make([]int, 0, len(failed))
	for taxid := range failed {
		taxids = append(taxids, taxid)
	}
	sort.Ints(taxids)

	retried := make([]profile.Officer, len(taxids))
	errs := make([]error, len(taxids))

	var wg sync.WaitGroup
	for k, taxid := range taxids {
		wg.Add(1)
		go func(k, taxid int) {
			defer wg.Done()
			officerRetriesTotal.Inc()
			officer := failed[taxid]
			errs[k] = h.fetchOfficer(ctx, &officer)
			retried[k] = officer
		}(k, taxid)
	}
	wg.Wait()

	var persistent []int
	for k, taxid := range taxids {
		for i := range officers {
			if officers[i].TaxID == taxid {
				officers[i] = retried[k]
				break
			}
		}
		if errs[k] != nil {
			officerFailuresTotal.Inc()
			logger.Warn().Err(errs[k]).Int("taxid", taxid).Msg("Officer failed after retry; keeping partial record")
			persistent = append(persistent, taxid)
		} else {
			logger.Info().Int("taxid", taxid).Msg("Officer recovered on retry")
		}
	}
	return persistent
}
