package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/ryanwatkins/nypd-officer-profiles/pkg/export"
	"github.com/ryanwatkins/nypd-officer-profiles/pkg/harvest"
	"github.com/ryanwatkins/nypd-officer-profiles/pkg/logging"
	"github.com/ryanwatkins/nypd-officer-profiles/pkg/profile"
)

var tocsvCmd = &cobra.Command{
	Use:   "tocsv",
	Short: "Flatten JSON snapshots into the tabular CSV exports",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger := logging.NewLogger("tocsv")

		store := export.NewSnapshotStore(cfg.OutputDir, cfg.TrainingChunkRows)

		letters := cfg.Letters
		if len(letters) == 0 {
			letters = harvest.DefaultLetters
		}

		var officers []profile.Officer
		for _, letter := range letters {
			partition, err := store.LoadPartition(letter)
			if err != nil {
				if errors.Is(err, os.ErrNotExist) {
					logger.Warn().Str("letter", letter).Msg("No snapshot for bucket; skipping")
					continue
				}
				return err
			}
			officers = append(officers, partition...)
		}
		logger.Info().Int("officers", len(officers)).Msg("Snapshots loaded")

		exporter := export.NewCSVExporter(cfg.OutputDir, cfg.CSVChunkRows)
		if err := exporter.Export(officers); err != nil {
			return err
		}

		decisions, err := store.LoadTrials()
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return err
			}
			logger.Warn().Msg("No trial-decision snapshot; skipping trials.csv")
			return nil
		}
		if err := exporter.ExportTrials(decisions); err != nil {
			return err
		}

		logger.Info().Msg("CSV export complete")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tocsvCmd)
}
