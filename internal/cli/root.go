// Package cli provides the command-line interface for taskwatch.
package cli

import (
	"fmt"
	"os"

	"github.com/runoshun/taskwatch/internal/app"
	"github.com/runoshun/taskwatch/internal/domain"
	"github.com/runoshun/taskwatch/internal/infra/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Command group IDs.
const (
	groupTask       = "task"
	groupState      = "state"
	groupRepository = "repository"
	groupSetup      = "setup"
)

// ContainerFactory builds the container for a data directory.
type ContainerFactory func(dataDir string) (*app.Container, error)

// env carries what the commands need once the root pre-run has resolved
// the data directory.
type env struct {
	open   ContainerFactory
	v      *viper.Viper
	c      *app.Container
	logger *logging.Logger
}

// repository returns the one-off repository override (empty = current).
func (e *env) repository() string {
	return e.v.GetString(flagRepo)
}

// assumeYes reports whether confirmation prompts are skipped.
func (e *env) assumeYes() bool {
	return e.v.GetBool(flagYes)
}

// confirmer returns the container's Confirmer, or a terminal prompt.
func (e *env) confirmer() domain.Confirmer {
	if e.c != nil && e.c.Confirmer != nil {
		return e.c.Confirmer
	}
	return newPromptConfirmer(os.Stdin)
}

// display returns the [display] settings in use.
func (e *env) display() domain.DisplayConfig {
	if e.c == nil || e.c.AppConfig == nil {
		return domain.NewDefaultConfig().Display
	}
	return e.c.AppConfig.Display
}

// NewRootCommand creates the root command for taskwatch.
// open builds the container once the data directory is known.
func NewRootCommand(open ContainerFactory, version string) *cobra.Command {
	var flags GlobalFlags
	e := &env{open: open, v: viper.New()}

	root := &cobra.Command{
		Use:   "tw",
		Short: "Hierarchical task tracker",
		Long: `taskwatch keeps prioritised task trees in named repositories.

Tasks carry tags and may track their lifecycle through a user-defined
state graph (open, in_progress, review, closed, ...).

Every task command prints the task tree afterwards; repository commands
print the repository list.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := BindGlobalFlags(e.v, cmd); err != nil {
				return err
			}
			return e.setup(cmd)
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			if e.logger != nil {
				return e.logger.Close()
			}
			return nil
		},
	}

	AddGlobalFlags(root, &flags)

	root.AddGroup(
		&cobra.Group{ID: groupTask, Title: "Task Commands:"},
		&cobra.Group{ID: groupState, Title: "State Commands:"},
		&cobra.Group{ID: groupRepository, Title: "Repository Commands:"},
		&cobra.Group{ID: groupSetup, Title: "Setup Commands:"},
	)

	for _, v := range verbs() {
		root.AddCommand(newVerbCommand(e, v))
	}

	configCmd := newConfigCommand(e)
	configCmd.GroupID = groupSetup

	tuiCmd := newTUICommand(e)
	tuiCmd.GroupID = groupTask

	root.AddCommand(configCmd, tuiCmd)

	return root
}

// setup resolves the data directory, builds the container and the logger,
// and prints config warnings.
func (e *env) setup(cmd *cobra.Command) error {
	if e.open == nil {
		return nil
	}

	dataDir := e.v.GetString(flagHome)
	if dataDir == "" {
		var err error
		dataDir, err = app.DefaultDataDir()
		if err != nil {
			return err
		}
	}

	c, err := e.open(dataDir)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	e.c = c

	for _, w := range c.AppConfig.Warnings {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
	}

	level := c.AppConfig.Log.Level
	if override := e.v.GetString(flagLogLevel); override != "" {
		level = override
	}
	var console = cmd.ErrOrStderr()
	if f, ok := console.(*os.File); ok {
		console = logging.ConsoleWriter(f)
	}
	logger, err := logging.New(c.Config.DataDir, logging.ParseLevel(level), console)
	if err != nil {
		return err
	}
	e.logger = logger
	cmd.SetContext(logger.WithContext(cmd.Context()))

	logger.Zerolog().Debug().
		Str("command", cmd.Name()).
		Str("data_dir", c.Config.DataDir).
		Msg("starting")
	return nil
}
