// Package webtui serves the desktop TUI to a browser: every WebSocket connection gets
// its own TUI subprocess on a server-side PTY, rendered client-side by xterm.js.
package webtui

import (
	"embed"
	"errors"
	"html/template"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"deskfolio/internal/tui"
)

//go:embed templates/*.html static/*.css static/*.js
var assetsFS embed.FS

type ServerConfig struct {
	Addr        string
	ConfigDir   string
	CatalogPath string
	Sidebar     string
	// Open is the default launcher for new sessions; ?open= overrides it per tab.
	Open   string
	Logger *zerolog.Logger
}

type Server struct {
	cfg  ServerConfig
	tmpl *template.Template
	log  zerolog.Logger
}

func NewServer(cfg ServerConfig) (*Server, error) {
	if strings.TrimSpace(cfg.Addr) == "" {
		return nil, errors.New("webtui: missing addr")
	}
	if o := strings.TrimSpace(cfg.Open); o != "" && !tui.IsLauncher(o) {
		return nil, errors.New("webtui: unknown launcher: " + o)
	}
	tmpl, err := template.ParseFS(assetsFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	s := &Server{cfg: cfg, tmpl: tmpl, log: zerolog.Nop()}
	if cfg.Logger != nil {
		s.log = cfg.Logger.With().Str("component", "webtui").Logger()
	}
	return s, nil
}

func (s *Server) Addr() string {
	return strings.TrimSpace(s.cfg.Addr)
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		target := "/terminal"
		if q := r.URL.RawQuery; q != "" {
			target += "?" + q
		}
		http.Redirect(w, r, target, http.StatusFound)
	})
	mux.HandleFunc("GET /terminal", s.handleTerminal)
	mux.HandleFunc("GET /ws", s.handleWS)

	mux.HandleFunc("GET /static/app.css", s.handleStatic("static/app.css", "text/css; charset=utf-8"))
	mux.HandleFunc("GET /static/app.js", s.handleStatic("static/app.js", "text/javascript; charset=utf-8"))

	return mux
}

func (s *Server) handleStatic(path, contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, err := assetsFS.ReadFile(path)
		if err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", contentType)
		_, _ = w.Write(b)
	}
}

type terminalVM struct {
	Title string
	Open  string
}

func (s *Server) handleTerminal(w http.ResponseWriter, r *http.Request) {
	vm := terminalVM{
		Title: "Koushik's Portfolio",
		Open:  s.launcherFor(r),
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, "terminal.html", vm); err != nil {
		// Best-effort; if headers already sent, just write.
		http.Error(w, err.Error(), http.StatusInternalServerError)
		_, _ = io.WriteString(w, err.Error())
		return
	}
}

// launcherFor picks the session's startup launcher: a valid ?open= wins over the
// server default. Unknown ids are ignored.
func (s *Server) launcherFor(r *http.Request) string {
	if o := strings.TrimSpace(r.URL.Query().Get("open")); o != "" && tui.IsLauncher(o) {
		return o
	}
	return strings.TrimSpace(s.cfg.Open)
}
