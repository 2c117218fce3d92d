// Package export materializes harvest results: per-bucket JSON snapshots
// with training split into capped chunk files, and flattened CSV exports.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ryanwatkins/nypd-officer-profiles/pkg/profile"
)

// DefaultTrainingChunkRows caps rows per training chunk file. Training
// dominates record volume, which is why it rides in separate files.
const DefaultTrainingChunkRows = 250000

// trainingChunk is one officer's training rows in a chunk file.
type trainingChunk struct {
	TaxID int                    `json:"taxid"`
	Name  string                 `json:"name"`
	Rows  []profile.TrainingItem `json:"rows"`
}

// SnapshotStore reads and writes per-bucket snapshots under a directory.
// It satisfies harvest.SnapshotWriter.
type SnapshotStore struct {
	dir       string
	chunkRows int
	logger    zerolog.Logger
}

// NewSnapshotStore creates a store rooted at dir. chunkRows <= 0 falls
// back to DefaultTrainingChunkRows.
func NewSnapshotStore(dir string, chunkRows int) *SnapshotStore {
	if chunkRows <= 0 {
		chunkRows = DefaultTrainingChunkRows
	}
	return &SnapshotStore{
		dir:       dir,
		chunkRows: chunkRows,
		logger:    log.With().Str("component", "export").Logger(),
	}
}

// Snapshot filenames carry the bucket letter as-is, uppercase.
func (s *SnapshotStore) partitionPath(letter string) string {
	return filepath.Join(s.dir, fmt.Sprintf("nypd-profiles-%s.json", letter))
}

func (s *SnapshotStore) chunkPath(letter string, n int) string {
	return filepath.Join(s.dir, fmt.Sprintf("nypd-profiles-%s-training-%d.json", letter, n))
}

func (s *SnapshotStore) trialsPath() string {
	return filepath.Join(s.dir, "nypd-trial-decisions.json")
}

// WritePartition persists one bucket: the main snapshot with training
// stripped, plus numbered training chunk files. An officer's rows never
// split across chunks; a chunk rolls when it would exceed the row cap.
func (s *SnapshotStore) WritePartition(letter string, officers []profile.Officer) error {
	stripped := make([]profile.Officer, len(officers))
	var chunks []trainingChunk
	for i, officer := range officers {
		if len(officer.Reports.Training) > 0 {
			chunks = append(chunks, trainingChunk{
				TaxID: officer.TaxID,
				Name:  officer.FullName,
				Rows:  officer.Reports.Training,
			})
		}
		officer.Reports.Training = nil
		stripped[i] = officer
	}

	if err := writeJSON(s.partitionPath(letter), stripped); err != nil {
		return fmt.Errorf("partition %s: %w", letter, err)
	}

	n, rows := 0, 0
	var pending []trainingChunk
	flush := func() error {
		if len(pending) == 0 {
			return nil
		}
		n++
		if err := writeJSON(s.chunkPath(letter, n), pending); err != nil {
			return fmt.Errorf("partition %s training chunk %d: %w", letter, n, err)
		}
		pending, rows = nil, 0
		return nil
	}
	for _, chunk := range chunks {
		if rows > 0 && rows+len(chunk.Rows) > s.chunkRows {
			if err := flush(); err != nil {
				return err
			}
		}
		pending = append(pending, chunk)
		rows += len(chunk.Rows)
	}
	if err := flush(); err != nil {
		return err
	}

	// Stale chunks from a larger earlier run must not survive a rewrite.
	for stale := n + 1; ; stale++ {
		path := s.chunkPath(letter, stale)
		if err := os.Remove(path); err != nil {
			if os.IsNotExist(err) {
				break
			}
			return fmt.Errorf("partition %s: remove stale chunk: %w", letter, err)
		}
	}

	s.logger.Info().Str("letter", letter).Int("officers", len(officers)).Int("training_chunks", n).Msg("Snapshot written")
	return nil
}

// LoadPartition reads one bucket's snapshot and re-joins the training
// chunk files into the officer records by taxid.
func (s *SnapshotStore) LoadPartition(letter string) ([]profile.Officer, error) {
	data, err := os.ReadFile(s.partitionPath(letter))
	if err != nil {
		return nil, err
	}
	var officers []profile.Officer
	if err := json.Unmarshal(data, &officers); err != nil {
		return nil, fmt.Errorf("partition %s: %w", letter, err)
	}

	byTaxID := make(map[int]*profile.Officer, len(officers))
	for i := range officers {
		byTaxID[officers[i].TaxID] = &officers[i]
	}

	for n := 1; ; n++ {
		data, err := os.ReadFile(s.chunkPath(letter, n))
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				break
			}
			return nil, err
		}
		var chunks []trainingChunk
		if err := json.Unmarshal(data, &chunks); err != nil {
			return nil, fmt.Errorf("partition %s training chunk %d: %w", letter, n, err)
		}
		for _, chunk := range chunks {
			officer, ok := byTaxID[chunk.TaxID]
			if !ok {
				s.logger.Warn().Str("letter", letter).Int("taxid", chunk.TaxID).Msg("Training chunk references unknown officer")
				continue
			}
			officer.Reports.Training = append(officer.Reports.Training, chunk.Rows...)
		}
	}
	return officers, nil
}

// WriteTrials persists the trial-decision list.
func (s *SnapshotStore) WriteTrials(decisions []profile.TrialDecision) error {
	return writeJSON(s.trialsPath(), decisions)
}

// LoadTrials reads the trial-decision list back.
func (s *SnapshotStore) LoadTrials() ([]profile.TrialDecision, error) {
	data, err := os.ReadFile(s.trialsPath())
	if err != nil {
		return nil, err
	}
	var decisions []profile.TrialDecision
	if err := json.Unmarshal(data, &decisions); err != nil {
		return nil, fmt.Errorf("trials: %w", err)
	}
	return decisions, nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
