package cli

import (
	"strings"

	"deskfolio/internal/catalog"

	"github.com/spf13/cobra"
)

func newCatalogCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the portfolio catalog",
		Example: strings.TrimSpace(`
deskfolio catalog folders
deskfolio catalog items projects
deskfolio catalog show ml-pipeline
deskfolio catalog search "wifi"
`),
	}

	cmd.AddCommand(newCatalogFoldersCmd(app))
	cmd.AddCommand(newCatalogItemsCmd(app))
	cmd.AddCommand(newCatalogShowCmd(app))
	cmd.AddCommand(newCatalogSearchCmd(app))
	return cmd
}

type folderSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Items int    `json:"items"`
}

type itemSummary struct {
	ID           string `json:"id"`
	Folder       string `json:"folder"`
	Name         string `json:"name"`
	Kind         string `json:"kind"`
	Size         string `json:"size,omitempty"`
	LastModified string `json:"lastModified,omitempty"`
	Preview      string `json:"preview"`
}

func summarizeItem(folder string, it catalog.Item) itemSummary {
	return itemSummary{
		ID:           it.ID,
		Folder:       folder,
		Name:         it.Name,
		Kind:         string(it.Kind),
		Size:         it.Size,
		LastModified: it.LastModified,
		Preview:      it.Preview.Kind.String(),
	}
}

func newCatalogFoldersCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "folders",
		Short: "List folders in sidebar order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := loadCatalog(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			out := []folderSummary{}
			for _, f := range cat.Folders() {
				out = append(out, folderSummary{ID: f.ID, Name: f.Name, Items: len(f.Items)})
			}
			return writeOut(cmd, app, map[string]any{
				"data":   out,
				"_hints": []string{"deskfolio catalog items <folder-id>"},
			})
		},
	}
}

func newCatalogItemsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "items <folder-id>",
		Short: "List the items of a folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := loadCatalog(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			f, err := cat.FolderByID(strings.TrimSpace(args[0]))
			if err != nil {
				return writeErr(cmd, err)
			}
			out := []itemSummary{}
			for _, it := range f.Items {
				out = append(out, summarizeItem(f.ID, it))
			}
			return writeOut(cmd, app, map[string]any{
				"data":   out,
				"_hints": []string{"deskfolio catalog show <item-id>"},
			})
		},
	}
}

func newCatalogShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <item-id>",
		Short: "Show one item with its preview content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := loadCatalog(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			it, folder, err := cat.ItemByID(strings.TrimSpace(args[0]))
			if err != nil {
				return writeErr(cmd, err)
			}
			meta := map[string]any{"folder": folder}
			if link := it.Preview.PrimaryLink(); link != "" {
				meta["link"] = link
			}
			if skills := it.Preview.Skills(); len(skills) > 0 {
				meta["skills"] = skills
			}
			return writeOut(cmd, app, map[string]any{
				"data": it,
				"meta": meta,
			})
		},
	}
}

func newCatalogSearchCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Fuzzy-search item names",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := loadCatalog(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			out := []itemSummary{}
			for _, h := range cat.Search(strings.Join(args, " "), limit) {
				out = append(out, summarizeItem(h.FolderID, h.Item))
			}
			return writeOut(cmd, app, map[string]any{"data": out})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "Maximum number of results")
	return cmd
}
