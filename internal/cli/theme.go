package cli

import (
	"strings"

	"deskfolio/internal/store"
	"deskfolio/internal/theme"

	"github.com/spf13/cobra"
)

func newThemeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme [light|dark|auto|toggle]",
		Short: "Show or change the saved desktop theme",
		Example: strings.TrimSpace(`
deskfolio theme
deskfolio theme dark
deskfolio theme toggle
`),
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"light", "dark", "auto", "toggle"},
		RunE: func(cmd *cobra.Command, args []string) error {
			prefs, err := store.DefaultPrefs()
			if err != nil {
				return writeErr(cmd, err)
			}
			saved, err := prefs.Theme(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}

			if len(args) == 1 {
				arg := strings.ToLower(strings.TrimSpace(args[0]))
				var next theme.Mode
				if arg == "toggle" {
					next = theme.ModeDark
					if effectiveMode(app, saved) == theme.ModeDark {
						next = theme.ModeLight
					}
				} else {
					m, ok := theme.ParseMode(arg)
					if !ok || arg == "" {
						return writeErr(cmd, usageError{arg: args[0], want: "light|dark|auto|toggle"})
					}
					next = m
				}
				if err := prefs.SaveTheme(next); err != nil {
					return writeErr(cmd, err)
				}
				saved = next
			}

			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"saved":     string(saved),
					"effective": string(effectiveMode(app, saved)),
				},
			})
		},
	}
	return cmd
}

// effectiveMode resolves auto through config and then terminal detection.
func effectiveMode(app *App, saved theme.Mode) theme.Mode {
	if saved != theme.ModeAuto {
		return saved
	}
	if m, ok := theme.ParseMode(app.config().Theme); ok && m != theme.ModeAuto {
		return m
	}
	if theme.Detect() {
		return theme.ModeDark
	}
	return theme.ModeLight
}
