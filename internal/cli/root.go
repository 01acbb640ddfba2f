package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"deskfolio/internal/catalog"
	"deskfolio/internal/format"
	"deskfolio/internal/logging"
	"deskfolio/internal/store"
	"deskfolio/internal/theme"
	"deskfolio/internal/tui"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type App struct {
	ConfigDir   string
	CatalogPath string
	Watch       bool
	PrettyJSON  bool
	Format      string
	LogFile     string
	LogLevel    string
	Sidebar     string

	cfg *store.Config
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "deskfolio",
		Short:        "Portfolio desktop in your terminal",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive desktop
  deskfolio

  # Start with the Projects window already open
  deskfolio projects

  # Scriptable catalog access
  deskfolio catalog items projects

  # Serve the desktop to a browser tab
  deskfolio serve --addr 127.0.0.1:3335
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(cmd, app, "")
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// The config dir flag has to be visible to store.ConfigDir before anything loads.
		if d := strings.TrimSpace(app.ConfigDir); d != "" {
			if err := os.Setenv("DESKFOLIO_CONFIG_DIR", d); err != nil {
				return err
			}
		}
		// doctor reports a broken config instead of refusing to run.
		if cmd.Name() == "doctor" {
			return nil
		}
		cfg, err := store.LoadConfig()
		if err != nil {
			return writeErr(cmd, err)
		}
		app.cfg = cfg
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.ConfigDir, "config-dir", envOr("DESKFOLIO_CONFIG_DIR", ""), "Config directory (default ~/.deskfolio)")
	cmd.PersistentFlags().StringVar(&app.CatalogPath, "catalog", envOr("DESKFOLIO_CATALOG", ""), "Catalog YAML replacing the built-in portfolio")
	cmd.PersistentFlags().BoolVar(&app.Watch, "watch", envOr("DESKFOLIO_WATCH", "") != "", "Reload --catalog when the file changes")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("DESKFOLIO_FORMAT", "json"), "Output format (json|yaml)")
	cmd.PersistentFlags().StringVar(&app.LogFile, "log-file", envOr("DESKFOLIO_LOG", ""), "Write JSON logs to this file")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", envOr("DESKFOLIO_LOG_LEVEL", "info"), "Log level (debug|info|warn|error)")
	cmd.PersistentFlags().StringVar(&app.Sidebar, "sidebar", envOr("DESKFOLIO_SIDEBAR", ""), "Finder sidebar behavior (switch|jump)")

	cmd.AddCommand(newOpenCmd(app))
	cmd.AddCommand(newCatalogCmd(app))
	cmd.AddCommand(newThemeCmd(app))
	cmd.AddCommand(newServeCmd(app))
	cmd.AddCommand(newDoctorCmd(app))

	return cmd
}

func runTUI(cmd *cobra.Command, app *App, open string) error {
	cat, err := loadCatalog(app)
	if err != nil {
		return writeErr(cmd, err)
	}
	log, closer, err := openLogger(app)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer closer.Close()

	sidebar, err := tui.ParseSidebarMode(firstNonEmpty(app.Sidebar, app.config().Sidebar))
	if err != nil {
		return writeErr(cmd, err)
	}
	if _, ok := theme.ParseMode(app.config().Theme); !ok {
		return writeErr(cmd, fmt.Errorf("invalid theme %q in config (want light|dark|auto)", app.config().Theme))
	}
	if id, err := store.EnsureDeviceID(app.config()); err != nil {
		log.Warn().Err(err).Msg("assign device id")
	} else {
		l := log.With().Str("device", id).Logger()
		log = &l
	}

	th, err := loadTheme(cmd, app, log)
	if err != nil {
		return writeErr(cmd, err)
	}

	cfg := app.config()
	return tui.Run(cmd.Context(), tui.Options{
		Catalog:     cat,
		CatalogPath: catalogPath(app),
		Watch:       app.Watch,
		Theme:       th,
		Logger:      log,
		Sidebar:     sidebar,
		CellWidth:   cfg.CellWidth,
		CellHeight:  cfg.CellHeight,
		Open:        open,
	})
}

func (app *App) config() *store.Config {
	if app.cfg == nil {
		return &store.Config{}
	}
	return app.cfg
}

// catalogPath is the flag, then the config file; empty means the embedded catalog.
func catalogPath(app *App) string {
	return firstNonEmpty(app.CatalogPath, app.config().Catalog)
}

func loadCatalog(app *App) (*catalog.Catalog, error) {
	return catalog.Load(catalogPath(app), time.Now())
}

func openLogger(app *App) (*zerolog.Logger, io.Closer, error) {
	return logging.New(logging.Options{File: app.LogFile, Level: app.LogLevel})
}

// loadTheme resolves the mode: a saved toggle wins over config, which wins over
// terminal detection.
func loadTheme(cmd *cobra.Command, app *App, log *zerolog.Logger) (*theme.Context, error) {
	prefs, err := store.DefaultPrefs()
	if err != nil {
		return nil, err
	}
	mode, err := prefs.Theme(cmd.Context())
	if err != nil {
		log.Warn().Err(err).Msg("read theme pref")
		mode = theme.ModeAuto
	}
	if mode == theme.ModeAuto {
		mode, _ = theme.ParseMode(app.config().Theme)
	}
	return theme.New(mode, prefs, log), nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
