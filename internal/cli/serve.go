package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"deskfolio/internal/webtui"

	"github.com/spf13/cobra"
)

func newServeCmd(app *App) *cobra.Command {
	var addr string
	var open string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the desktop to a browser tab (PTY + WebSocket)",
		Long: strings.TrimSpace(`
Run the desktop over the web via a server-side PTY and a browser terminal emulator.

Notes:
- No auth; bind to localhost unless you front it with something that has auth.
- Each browser tab starts its own desktop subprocess on the server.
- /terminal?open=<launcher-id> starts that tab with a launcher activated.
`),
		Example: strings.TrimSpace(`
deskfolio serve --addr 127.0.0.1:3335
deskfolio serve --addr :3335 --open about
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, closer, err := openLogger(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer closer.Close()

			// Fail fast on a broken catalog instead of in every session.
			if _, err := loadCatalog(app); err != nil {
				return writeErr(cmd, err)
			}

			srv, err := webtui.NewServer(webtui.ServerConfig{
				Addr:        strings.TrimSpace(addr),
				ConfigDir:   strings.TrimSpace(app.ConfigDir),
				CatalogPath: catalogPath(app),
				Sidebar:     strings.TrimSpace(app.Sidebar),
				Open:        strings.TrimSpace(open),
				Logger:      log,
			})
			if err != nil {
				return writeErr(cmd, err)
			}

			listenAddr := srv.Addr()
			_ = writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"addr":      listenAddr,
					"catalog":   catalogPath(app),
					"startedAt": time.Now().UTC().Format(time.RFC3339Nano),
				},
				"_hints": []string{
					"open http://" + listenAddr,
				},
			})
			fmt.Fprintf(cmd.ErrOrStderr(), "deskfolio serving at http://%s\n", listenAddr)

			hs := &http.Server{
				Addr:              listenAddr,
				Handler:           srv.Handler(),
				ReadHeaderTimeout: 10 * time.Second,
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			go func() {
				<-ctx.Done()
				sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = hs.Shutdown(sctx)
			}()

			log.Info().Str("addr", listenAddr).Msg("serve started")
			if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return writeErr(cmd, err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:3335", "Bind address (host:port or :port)")
	cmd.Flags().StringVar(&open, "open", "", "Launcher id activated in every new session")
	return cmd
}
