package cli

import (
	"strings"

	"deskfolio/internal/tui"

	"github.com/spf13/cobra"
)

func newOpenCmd(app *App) *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:   "open [launcher-id]",
		Short: "Start the desktop with a launcher already activated",
		Example: strings.TrimSpace(`
deskfolio open projects
deskfolio open resume

# Shortcut
deskfolio certifications

# List launcher ids
deskfolio open --list
`),
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: tui.LauncherIDs(),
		RunE: func(cmd *cobra.Command, args []string) error {
			if list {
				return writeOut(cmd, app, map[string]any{"data": tui.LauncherIDs()})
			}
			if len(args) == 0 {
				return writeErr(cmd, usageError{arg: "", want: "a launcher id; see --list"})
			}
			id := strings.TrimSpace(args[0])
			if !tui.IsLauncher(id) {
				return writeErr(cmd, errNotFound("launcher", id))
			}
			return runTUI(cmd, app, id)
		},
	}

	cmd.Flags().BoolVar(&list, "list", false, "Print launcher ids and exit")
	return cmd
}
