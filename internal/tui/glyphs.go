package tui

import (
	"os"
	"strings"
	"sync"
	"unicode"
)

// Terminal apps can't change the user's actual font. Instead, we can choose
// between Unicode and ASCII glyph sets for desktop chrome (window controls, dock
// markers, separators). DESKFOLIO_GLYPHS=ascii helps on fonts without them.

type glyphSet int

const (
	glyphSetUnicode glyphSet = iota
	glyphSetASCII
)

var (
	glyphsMu      sync.RWMutex
	currentGlyphs = glyphSetUnicode
)

func applyGlyphPreference() {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("DESKFOLIO_GLYPHS")))
	switch v {
	case "", "unicode", "utf8":
		setGlyphs(glyphSetUnicode)
	case "ascii":
		setGlyphs(glyphSetASCII)
	default:
		// Unknown value: ignore.
	}
}

func setGlyphs(gs glyphSet) {
	glyphsMu.Lock()
	currentGlyphs = gs
	glyphsMu.Unlock()
}

func glyphs() glyphSet {
	glyphsMu.RLock()
	gs := currentGlyphs
	glyphsMu.RUnlock()
	return gs
}

func pick(uni, ascii string) string {
	if glyphs() == glyphSetASCII {
		return ascii
	}
	return uni
}

// itemGlyph maps a catalog icon name to the glyph drawn in lists.
func itemGlyph(icon string) string {
	switch icon {
	case "folder":
		return pick("▸", ">")
	case "document":
		return pick("≡", "=")
	default:
		return pick("·", "-")
	}
}

// launcherIcon is the dock/desktop picture. ASCII mode uses the label's initial.
func launcherIcon(l launcher) string {
	if glyphs() != glyphSetASCII {
		return l.Icon
	}
	for _, r := range l.Label {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return "[" + string(unicode.ToUpper(r)) + "]"
		}
	}
	return "[ ]"
}

func glyphWindowControl() string { return pick("●", "o") }
func glyphVRule() string         { return pick("│", "|") }
func glyphHRule() string         { return pick("─", "-") }
func glyphDockRule() string      { return pick("▔", "-") }
func glyphPrev() string          { return pick("‹", "<") }
func glyphNext() string          { return pick("›", ">") }
func glyphSearch() string        { return pick("⌕", "/") }
func glyphRunning() string       { return pick("•", "*") }
func glyphMinimized() string     { return pick("◦", "o") }
func glyphRotate() string        { return pick("↻", "~") }

func glyphTheme(dark bool) string {
	if dark {
		return pick("☾", "D")
	}
	return pick("☀", "L")
}

// glyphBox returns the corners and edges of an outline frame:
// top-left, top-right, bottom-left, bottom-right, horizontal, vertical.
func glyphBox() (tl, tr, bl, br, h, v string) {
	if glyphs() == glyphSetASCII {
		return "+", "+", "+", "+", "-", "|"
	}
	return "┌", "┐", "└", "┘", "─", "│"
}
