package webtui

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/creack/pty"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

type wsMsg struct {
	Type string `json:"type"`
	Cols int    `json:"cols"`
	Rows int    `json:"rows"`
}

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  32 * 1024,
	WriteBufferSize: 32 * 1024,
	CheckOrigin: func(r *http.Request) bool {
		origin := strings.TrimSpace(r.Header.Get("Origin"))
		if origin == "" {
			return true
		}
		// Basic same-origin check; good enough for localhost.
		host := strings.TrimSpace(r.Host)
		return strings.Contains(origin, "://"+host)
	},
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		// The upgrader has already replied.
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	sid := uuid.NewString()
	log := s.log.With().Str("session", sid).Logger()
	open := s.launcherFor(r)

	ptmx, cmd, cleanup, err := s.startPTYSession(sessionArgs(s.cfg, open), initialSize(r))
	if err != nil {
		log.Error().Err(err).Msg("start session")
		_ = conn.WriteMessage(websocket.TextMessage, []byte("failed to start session: "+err.Error()))
		return
	}
	defer cleanup()

	started := time.Now()
	log.Info().Str("remote", r.RemoteAddr).Str("open", open).Int("pid", cmd.Process.Pid).Msg("session started")

	var wg sync.WaitGroup
	errCh := make(chan error, 2)

	wg.Add(1)
	go func() {
		defer wg.Done()
		errCh <- pumpPTYToWS(ctx, ptmx, conn)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		errCh <- pumpWSToPTY(ctx, conn, ptmx)
	}()

	// Wait for either direction to stop.
	var reason error
	select {
	case <-ctx.Done():
		reason = ctx.Err()
	case reason = <-errCh:
	}
	cancel()

	// Unblock both pumps: the PTY read returns once the child dies and the WS read
	// once the connection closes.
	_ = cmd.Process.Kill()
	_ = conn.Close()

	wg.Wait()
	ev := log.Info().Dur("elapsed", time.Since(started))
	if reason != nil && !errors.Is(reason, context.Canceled) && !websocket.IsCloseError(reason, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		ev = ev.Str("reason", reason.Error())
	}
	ev.Msg("session ended")
}

// sessionArgs is the argv (minus the executable) for one TUI subprocess.
func sessionArgs(cfg ServerConfig, open string) []string {
	args := []string{}
	if d := strings.TrimSpace(cfg.ConfigDir); d != "" {
		args = append(args, "--config-dir", d)
	}
	if c := strings.TrimSpace(cfg.CatalogPath); c != "" {
		args = append(args, "--catalog", c)
	}
	if sb := strings.TrimSpace(cfg.Sidebar); sb != "" {
		args = append(args, "--sidebar", sb)
	}
	if open != "" {
		return append(args, "open", open)
	}
	// No subcommand => interactive TUI.
	return args
}

// initialSize reads ?cols=&rows= so the first frame already fits the browser.
func initialSize(r *http.Request) *pty.Winsize {
	ws := &pty.Winsize{Cols: 120, Rows: 40}
	q := r.URL.Query()
	cols, cerr := strconv.Atoi(strings.TrimSpace(q.Get("cols")))
	rows, rerr := strconv.Atoi(strings.TrimSpace(q.Get("rows")))
	if cerr == nil && rerr == nil && cols > 0 && cols < 1000 && rows > 0 && rows < 1000 {
		ws.Cols, ws.Rows = uint16(cols), uint16(rows)
	}
	return ws
}

func (s *Server) startPTYSession(args []string, size *pty.Winsize) (*os.File, *exec.Cmd, func(), error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, nil, nil, err
	}

	cmd := exec.Command(exe, args...)
	cmd.Env = append(os.Environ(),
		"TERM=xterm-256color",
		"COLORTERM=truecolor",
	)

	ptmx, err := pty.StartWithSize(cmd, size)
	if err != nil {
		return nil, nil, nil, err
	}

	cleanup := func() {
		_ = ptmx.Close()
		_ = cmd.Process.Kill()
		_, _ = cmd.Process.Wait()
	}

	return ptmx, cmd, cleanup, nil
}

func pumpPTYToWS(ctx context.Context, ptmx *os.File, conn *websocket.Conn) error {
	buf := make([]byte, 32*1024)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		n, err := ptmx.Read(buf)
		if n > 0 {
			_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if werr := conn.WriteMessage(websocket.BinaryMessage, buf[:n]); werr != nil {
				return werr
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

func pumpWSToPTY(ctx context.Context, conn *websocket.Conn, ptmx *os.File) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		mt, data, err := conn.ReadMessage()
		if err != nil {
			return err
		}

		// Control messages are JSON text. Keystroke frames are plain text or binary.
		if mt == websocket.TextMessage && len(data) > 0 && data[0] == '{' {
			var m wsMsg
			if jerr := json.Unmarshal(data, &m); jerr != nil {
				continue
			}
			if strings.TrimSpace(strings.ToLower(m.Type)) == "resize" && m.Cols > 0 && m.Rows > 0 {
				_ = pty.Setsize(ptmx, &pty.Winsize{Cols: uint16(m.Cols), Rows: uint16(m.Rows)})
			}
			continue
		}

		if len(data) == 0 {
			continue
		}
		if _, err := ptmx.Write(data); err != nil {
			return err
		}
	}
}
