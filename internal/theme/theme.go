// Package theme owns the process-wide light/dark flag.
//
// The flag drives lipgloss background detection (so every AdaptiveColor resolves to the
// right variant) and the glamour style used for previews. Changes are persisted
// best-effort through a Persister.
package theme

import (
	"context"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
)

// Mode is the configured preference. Auto defers to terminal detection.
type Mode string

const (
	ModeAuto  Mode = "auto"
	ModeLight Mode = "light"
	ModeDark  Mode = "dark"
)

// ParseMode accepts light|dark|auto (case-insensitive); anything else is auto.
func ParseMode(s string) (Mode, bool) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeLight:
		return ModeLight, true
	case ModeDark:
		return ModeDark, true
	case ModeAuto, "":
		return ModeAuto, true
	default:
		return ModeAuto, false
	}
}

// Persister stores the chosen mode.
type Persister interface {
	SaveTheme(mode Mode) error
}

type Context struct {
	dark    bool
	persist Persister
	log     zerolog.Logger
}

// New resolves mode (auto uses Detect) and applies it to lipgloss.
func New(mode Mode, persist Persister, log *zerolog.Logger) *Context {
	c := &Context{persist: persist, log: zerolog.Nop()}
	if log != nil {
		c.log = log.With().Str("component", "theme").Logger()
	}
	switch mode {
	case ModeLight:
		c.dark = false
	case ModeDark:
		c.dark = true
	default:
		c.dark = Detect()
	}
	c.apply()
	return c
}

func (c *Context) IsDark() bool { return c.dark }

func (c *Context) Mode() Mode {
	if c.dark {
		return ModeDark
	}
	return ModeLight
}

// Toggle flips the flag. The returned error is the persistence failure, if any; the
// flag has already changed either way.
func (c *Context) Toggle() error {
	return c.Set(!c.dark)
}

func (c *Context) Set(dark bool) error {
	c.dark = dark
	c.apply()
	if c.persist == nil {
		return nil
	}
	if err := c.persist.SaveTheme(c.Mode()); err != nil {
		c.log.Warn().Err(err).Str("mode", string(c.Mode())).Msg("persist theme")
		return err
	}
	return nil
}

func (c *Context) apply() {
	lipgloss.SetHasDarkBackground(c.dark)
}

// MarkdownStyle is the glamour standard style matching the flag.
func (c *Context) MarkdownStyle() string {
	if c.dark {
		return "dark"
	}
	return "light"
}

// ApplyColorProfile sets lipgloss's color profile for the interactive TUI.
//
// termenv.EnvColorProfile honors CLICOLOR, which can disable colors in a TUI; only
// NO_COLOR is honored here and otherwise the terminal's capabilities win.
func ApplyColorProfile() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}

	profile := termenv.ColorProfile()

	// TERM/COLORTERM can report more than the probe (macOS Terminal.app under-reports).
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	colorterm := strings.ToLower(strings.TrimSpace(os.Getenv("COLORTERM")))
	if strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit") {
		if profile != termenv.Ascii {
			profile = termenv.TrueColor
		}
	} else if strings.Contains(term, "256color") {
		if profile == termenv.Ascii || profile == termenv.ANSI {
			profile = termenv.ANSI256
		}
	}

	lipgloss.SetColorProfile(profile)
}

// Detect guesses whether the terminal background is dark.
//
// Priority:
// 1) DESKFOLIO_DARKBG=true|false
// 2) COLORFGBG heuristic ("fg;bg", last segment is the background)
// 3) macOS appearance
// 4) dark
func Detect() bool {
	if v := strings.TrimSpace(os.Getenv("DESKFOLIO_DARKBG")); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}

	if v := strings.TrimSpace(os.Getenv("COLORFGBG")); v != "" {
		parts := strings.Split(v, ";")
		if bg, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1])); err == nil {
			return bg < 7
		}
	}

	if runtime.GOOS == "darwin" {
		if dark, ok := macOSHasDarkAppearance(); ok {
			return dark
		}
	}
	return true
}

func macOSHasDarkAppearance() (dark bool, ok bool) {
	// Prints "Dark" in dark mode; exits 1 in light mode (key missing).
	ctx, cancel := context.WithTimeout(context.Background(), 80*time.Millisecond)
	defer cancel()

	out, err := exec.CommandContext(ctx, "defaults", "read", "-g", "AppleInterfaceStyle").CombinedOutput()
	if ctx.Err() != nil {
		return false, false
	}
	if err == nil {
		return strings.Contains(strings.ToLower(string(out)), "dark"), true
	}
	if ee, ok := err.(*exec.ExitError); ok && ee.ExitCode() == 1 {
		return false, true
	}
	return false, false
}
