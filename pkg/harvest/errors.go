package harvest

import "errors"

// Data-quality anomalies surfaced by the per-officer detail fetch. Each
// marks the officer for the entity retry pass; the partial record is
// kept either way.
var (
	// ErrMissingSummary indicates the summary report was absent.
	ErrMissingSummary = errors.New("summary report missing")

	// ErrEmptyRanks indicates the rank history was absent or empty; every
	// active officer has at least an appointment rank.
	ErrEmptyRanks = errors.New("rank history empty")

	// ErrEmptyTraining indicates the training history was absent or empty.
	ErrEmptyTraining = errors.New("training history empty")

	// ErrCountMismatch indicates a discipline entry's declared child count
	// disagrees with the number of child rows claimed for it.
	ErrCountMismatch = errors.New("discipline child count mismatch")
)
