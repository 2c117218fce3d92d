package main

import (
	"github.com/spf13/cobra"

	"github.com/ryanwatkins/nypd-officer-profiles/pkg/config"
	"github.com/ryanwatkins/nypd-officer-profiles/pkg/logging"
)

var rootCmd = &cobra.Command{
	Use:          "profiles",
	Short:        "Harvest and export NYPD officer profile data",
	SilenceUsage: true,
}

// loadConfig layers defaults, the PROFILES_CONFIG file, and PROFILES_*
// env vars, then installs the global logger.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logging.Setup(logging.Config{Level: cfg.LogLevel, Pretty: cfg.LogPretty})
	return cfg, nil
}
