package cli

import (
	"context"

	"github.com/runoshun/taskwatch/internal/app"
	"github.com/runoshun/taskwatch/internal/tui"
	"github.com/spf13/cobra"
)

// launchTUIFunc is a function variable for launching the TUI, allowing it to be mocked in tests.
var launchTUIFunc = func(ctx context.Context, c *app.Container, repo string) error {
	return tui.Run(ctx, c, repo)
}

// newTUICommand creates the tui command for browsing tasks interactively.
func newTUICommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Browse tasks interactively",
		Long: `Browse the task tree of a repository in an interactive terminal UI.

Keys: ↑/↓ move, space marks done, +/- change priority, a shows done tasks, q quits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return launchTUIFunc(cmd.Context(), e.c, e.repository())
		},
	}
}
