package tui

import (
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
)

func (m appModel) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	deskH := m.deskHeight()

	menu := fitLine(renderMenuBar(m.width, m.theme.IsDark(), m.info.IsMobile, m.clock), m.width)
	desk := renderDesktop(m.width, deskH, m.icons(), m.info.RotateHint())
	dock := renderDock(m.width, visibleDock(m.info.IsMobile), m.dockDot)

	// Zones cover the menu bar and dock only; windows and icons are routed by geometry.
	screen := zone.Scan(strings.Join([]string{menu, desk.String(), dock}, "\n"))
	c := &canvas{width: m.width, lines: strings.Split(screen, "\n")}

	top, hasTop := m.wm.Top()
	for _, inst := range m.wm.Visible() {
		if f, ok := m.anims[inst.ID]; ok {
			if r, ok := m.wm.SpawnFrame(inst.ID, float64(f+1)/animFrames); ok {
				c.overlay(r.X, r.Y+menuBarHeight, renderOutline(r.W, r.H))
			}
			continue
		}
		focused := hasTop && inst.ID == top.ID
		c.overlay(inst.Position.X, inst.Position.Y+menuBarHeight, renderFinder(inst, m.cat, focused, m.previewView(inst.ID)))
	}

	exitIDs := make([]string, 0, len(m.exits))
	for id := range m.exits {
		exitIDs = append(exitIDs, id)
	}
	slices.Sort(exitIDs)
	for _, id := range exitIDs {
		e := m.exits[id]
		r := e.inst.SpawnFrame(1 - float64(e.frame+1)/animFrames)
		c.overlay(r.X, r.Y+menuBarHeight, renderOutline(r.W, r.H))
	}

	if m.flash != "" {
		flash := lipgloss.NewStyle().Background(colorFlashBg).Foreground(colorFlashFg).Padding(0, 1).Render(m.flash)
		c.overlay(max((m.width-lipgloss.Width(flash))/2, 0), menuBarHeight+deskH-1, flash)
	}
	if m.search.active {
		box := m.search.view(m.width)
		c.overlay(max((m.width-lipgloss.Width(box))/2, 0), menuBarHeight+1, box)
	}
	if m.showHelp {
		m.help.ShowAll = true
		m.help.Width = m.width - 4
		box := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorAccent).
			Padding(0, 1).
			Render(m.help.View(m.keys))
		c.overlay(max((m.width-lipgloss.Width(box))/2, 0), max((m.height-lipgloss.Height(box))/2, 0), box)
	}
	return c.String()
}
