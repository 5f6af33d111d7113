package cli

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Global flag names. They double as viper keys.
const (
	flagHome     = "home"
	flagRepo     = "repo"
	flagLogLevel = "log-level"
	flagYes      = "yes"
)

// envPrefix prefixes the environment variables that mirror global flags (TW_HOME, TW_REPO, ...).
const envPrefix = "TW"

// GlobalFlags holds flags available to all commands.
type GlobalFlags struct {
	Home     string // Data directory
	Repo     string // One-off repository override
	LogLevel string // Overrides [log] level from the config file
	Yes      bool   // Skip confirmation prompts
}

// AddGlobalFlags adds global flags to a command.
// These flags are available to all subcommands via PersistentFlags.
func AddGlobalFlags(cmd *cobra.Command, flags *GlobalFlags) {
	cmd.PersistentFlags().StringVar(&flags.Home, flagHome, "", "data directory (default $XDG_DATA_HOME/taskwatch)")
	cmd.PersistentFlags().StringVarP(&flags.Repo, flagRepo, "r", "", "use this repository instead of the current one")
	cmd.PersistentFlags().StringVar(&flags.LogLevel, flagLogLevel, "", "log level (debug|info|warn|error)")
	cmd.PersistentFlags().BoolVarP(&flags.Yes, flagYes, "y", false, "answer yes to confirmation prompts")
}

// BindGlobalFlags binds global flags to Viper for environment variable support.
func BindGlobalFlags(v *viper.Viper, cmd *cobra.Command) error {
	// Use Root().PersistentFlags() to find flags defined on the root command,
	// even when called from a subcommand's PersistentPreRunE.
	rootFlags := cmd.Root().PersistentFlags()

	for _, name := range []string{flagHome, flagRepo, flagLogLevel, flagYes} {
		if err := v.BindPFlag(name, rootFlags.Lookup(name)); err != nil {
			return err
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	return nil
}
