package main

import (
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/ryanwatkins/nypd-officer-profiles/pkg/cache"
	"github.com/ryanwatkins/nypd-officer-profiles/pkg/client"
	"github.com/ryanwatkins/nypd-officer-profiles/pkg/export"
	"github.com/ryanwatkins/nypd-officer-profiles/pkg/harvest"
	"github.com/ryanwatkins/nypd-officer-profiles/pkg/logging"
	"github.com/ryanwatkins/nypd-officer-profiles/pkg/scheduler"
)

var scrapeTrials bool

var scrapeCmd = &cobra.Command{
	Use:   "scrape [letters...]",
	Short: "Harvest officer profiles into per-letter JSON snapshots",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger := logging.NewLogger("scrape")

		clientCfg := client.DefaultConfig()
		clientCfg.UserAgent = cfg.UserAgent

		if cfg.RedisAddr != "" {
			redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
			if err := redisClient.Ping(cmd.Context()).Err(); err != nil {
				return fmt.Errorf("redis ping: %w", err)
			}
			clientCfg.Cache = cache.NewManager(redisClient, cfg.CacheTTL)
			logger.Info().Str("addr", cfg.RedisAddr).Msg("Payload cache enabled")
		}

		fetcher := client.New(clientCfg)
		tokens := client.NewOAuthTokenSource(cfg.TokenURL, cfg.ClientID)

		sched := scheduler.New(cfg.Concurrency)
		defer sched.Close()

		letters := cfg.Letters
		if len(args) > 0 {
			letters = args
		}

		harvester := harvest.New(fetcher, tokens, sched, harvest.Config{
			BaseURL:  cfg.BaseURL,
			Letters:  letters,
			PageSize: cfg.PageSize,
		})
		store := export.NewSnapshotStore(cfg.OutputDir, cfg.TrainingChunkRows)

		partitions, err := harvester.Run(cmd.Context(), store)
		if err != nil {
			return err
		}

		total, failedOfficers := 0, 0
		for _, p := range partitions {
			total += len(p.Officers)
			failedOfficers += len(p.FailedTaxIDs)
			if p.ListFailed {
				logger.Warn().Str("letter", p.Letter).Msg("Bucket incomplete after retry")
			}
		}
		logger.Info().Int("officers", total).Int("failed_officers", failedOfficers).Msg("Harvest complete")

		if scrapeTrials {
			decisions, err := harvester.FetchTrialDecisions(cmd.Context())
			if err != nil {
				return fmt.Errorf("trial decisions: %w", err)
			}
			if err := store.WriteTrials(decisions); err != nil {
				return err
			}
			logger.Info().Int("decisions", len(decisions)).Msg("Trial decisions written")
		}
		return nil
	},
}

func init() {
	scrapeCmd.Flags().BoolVar(&scrapeTrials, "trials", true, "also harvest published trial decisions")
	rootCmd.AddCommand(scrapeCmd)
}
