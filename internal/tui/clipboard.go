package tui

import (
	"errors"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

func copyToClipboard(s string) error {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	if clipboard.Unsupported {
		return errors.New("clipboard: no copy utility available")
	}
	return clipboard.WriteAll(s)
}

type urlOpenDoneMsg struct {
	url string
	err error
}

// browserCommand is the argv that opens u. DESKFOLIO_BROWSER or BROWSER may hold a
// shell-like command; a %s in it is replaced by the url, otherwise the url is appended.
func browserCommand(u string) []string {
	for _, k := range []string{"DESKFOLIO_BROWSER", "BROWSER"} {
		v := strings.TrimSpace(os.Getenv(k))
		if v == "" {
			continue
		}
		args := splitShellWords(v)
		if len(args) == 0 {
			continue
		}
		substituted := false
		for i, a := range args {
			if strings.Contains(a, "%s") {
				args[i] = strings.ReplaceAll(a, "%s", u)
				substituted = true
			}
		}
		if !substituted {
			args = append(args, u)
		}
		return args
	}

	switch runtime.GOOS {
	case "darwin":
		return []string{"open", u}
	case "windows":
		return []string{"cmd", "/c", "start", "", u}
	default:
		return []string{"xdg-open", u}
	}
}

// openURL hands u to the browser without waiting on the UI loop.
func openURL(u string) tea.Cmd {
	u = strings.TrimSpace(u)
	if u == "" {
		return func() tea.Msg { return urlOpenDoneMsg{err: errors.New("empty url")} }
	}

	return func() tea.Msg {
		argv := browserCommand(u)
		cmd := exec.Command(argv[0], argv[1:]...)
		cmd.Stdout = io.Discard
		cmd.Stderr = io.Discard
		if err := cmd.Start(); err != nil {
			return urlOpenDoneMsg{url: u, err: err}
		}
		return urlOpenDoneMsg{url: u, err: cmd.Wait()}
	}
}
