package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"

	"deskfolio/internal/catalog"
)

const searchLimit = 8

type searchState struct {
	active bool
	input  textinput.Model
	hits   []catalog.Hit
	sel    int
}

func newSearchInput() textinput.Model {
	ti := textinput.New()
	ti.Prompt = glyphSearch() + " "
	ti.Placeholder = "Search portfolio"
	ti.CharLimit = 64
	return ti
}

func (s *searchState) open(cat *catalog.Catalog) {
	s.active = true
	s.input.SetValue("")
	s.input.Focus()
	s.refresh(cat)
}

func (s *searchState) close() {
	s.active = false
	s.input.Blur()
	s.hits = nil
	s.sel = 0
}

func (s *searchState) refresh(cat *catalog.Catalog) {
	s.hits = cat.Search(s.input.Value(), searchLimit)
	if s.sel >= len(s.hits) {
		s.sel = max(len(s.hits)-1, 0)
	}
}

func (s *searchState) move(delta int) {
	if len(s.hits) == 0 {
		s.sel = 0
		return
	}
	s.sel = (s.sel + delta + len(s.hits)) % len(s.hits)
}

func (s searchState) selected() (catalog.Hit, bool) {
	if s.sel < 0 || s.sel >= len(s.hits) {
		return catalog.Hit{}, false
	}
	return s.hits[s.sel], true
}

func (s searchState) view(width int) string {
	w := clampInt(width/2, 30, 64)
	inner := w - 4
	s.input.Width = inner - 3

	lines := []string{s.input.View(), ""}
	if len(s.hits) == 0 {
		lines = append(lines, styleMuted().Render("No matches"))
	}
	for i, h := range s.hits {
		label := xansi.Truncate(itemGlyph(h.Item.Icon)+" "+h.Label+"  "+styleMuted().Render(h.FolderID), inner, "…")
		if i == s.sel {
			label = lipgloss.NewStyle().Background(colorSelectedBg).Foreground(colorSelectedFg).Render(fitLine(label, inner))
		}
		lines = append(lines, label)
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorAccent).
		Background(colorSurfaceBg).
		Padding(0, 1).
		Width(w - 2)
	return box.Render(strings.Join(lines, "\n"))
}
