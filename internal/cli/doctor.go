package cli

import (
	"strings"

	"deskfolio/internal/catalog"
	"deskfolio/internal/store"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
)

func newDoctorCmd(app *App) *cobra.Command {
	var fail bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check config, prefs and catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, report := store.DoctorConfig(cmd.Context())
			if cfg != nil {
				app.cfg = cfg
			}
			doctorCatalog(app, &report)
			if clipboard.Unsupported {
				report.Add(store.DoctorIssueLevelWarn, "clipboard_unsupported", "", "no clipboard utility found; copying links will fail")
			}

			meta := map[string]any{
				"issues":    len(report.Issues),
				"hasErrors": report.HasErrors(),
			}
			if err := writeOut(cmd, app, map[string]any{
				"data":   report,
				"meta":   meta,
				"_hints": []string{"deskfolio catalog folders"},
			}); err != nil {
				return err
			}

			if fail && report.HasErrors() {
				return store.ErrDoctorIssuesFound
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&fail, "fail", false, "Exit with non-zero status if errors are found")
	return cmd
}

func doctorCatalog(app *App, r *store.DoctorReport) {
	path := catalogPath(app)
	cat, err := loadCatalog(app)
	if err != nil {
		r.Add(store.DoctorIssueLevelError, "catalog_invalid", path, "%v", err)
		return
	}
	for _, id := range catalog.KnownFolders {
		f, ok := cat.Folder(id)
		switch {
		case !ok:
			r.Add(store.DoctorIssueLevelWarn, "catalog_folder_missing", path, "folder %q is missing; its launchers only flash a not-found notice", id)
		case len(f.Items) == 0:
			r.Add(store.DoctorIssueLevelWarn, "catalog_folder_empty", path, "folder %q has no items", id)
		}
	}
	if app.Watch && strings.TrimSpace(path) == "" {
		r.Add(store.DoctorIssueLevelWarn, "watch_without_catalog", "", "--watch has no effect on the built-in catalog; pass --catalog")
	}
}
