// Package cmd implements the command-line interface for alreadyedge.
package cmd

import (
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/Norgate-AV/alreadyedge/internal/settings"
	"github.com/Norgate-AV/alreadyedge/internal/timeouts"
)

// EnvPrefix is prepended to flag names when reading overrides from the
// environment, e.g. ALREADYEDGE_INTERVAL=5s
const EnvPrefix = "ALREADYEDGE"

// Config holds all application configuration
type Config struct {
	Verbose      bool
	ShowLogs     bool
	Interval     time.Duration
	SettingsPath string
}

var configKeys = []string{"verbose", "logs", "interval", "settings"}

// NewConfigFromFlags creates a Config from parsed command flags, falling
// back to ALREADYEDGE_* environment variables for flags left unset
func NewConfigFromFlags(cmd *cobra.Command) *Config {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	v.SetDefault("interval", timeouts.ScanInterval)

	for _, key := range configKeys {
		if f := lookupFlag(cmd, key); f != nil {
			_ = v.BindPFlag(key, f)
		}
	}

	cfg := &Config{
		Verbose:      v.GetBool("verbose"),
		ShowLogs:     v.GetBool("logs"),
		Interval:     v.GetDuration("interval"),
		SettingsPath: v.GetString("settings"),
	}

	if cfg.Interval < timeouts.MinScanInterval {
		cfg.Interval = timeouts.MinScanInterval
	}

	if cfg.SettingsPath == "" {
		cfg.SettingsPath = settings.DefaultPath()
	}

	return cfg
}

// lookupFlag finds a flag in local, persistent or inherited flags
func lookupFlag(cmd *cobra.Command, name string) *pflag.Flag {
	if f := cmd.Flags().Lookup(name); f != nil {
		return f
	}

	if f := cmd.PersistentFlags().Lookup(name); f != nil {
		return f
	}

	return cmd.InheritedFlags().Lookup(name)
}
