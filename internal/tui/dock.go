package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"deskfolio/internal/wm"
)

const (
	dockHeight   = 3
	dockSlotW    = 4
	dockDividerW = 3
)

type dockSlot struct {
	launcher launcher
	x        int
}

// layoutDock places every dock item on a centered row. x is the slot's left column.
func layoutDock(width int, groups [][]launcher) []dockSlot {
	total := 0
	for i, g := range groups {
		if i > 0 {
			total += dockDividerW
		}
		total += len(g) * dockSlotW
	}
	x := max((width-total)/2, 0)
	var slots []dockSlot
	for i, g := range groups {
		if i > 0 {
			x += dockDividerW
		}
		for _, l := range g {
			slots = append(slots, dockSlot{launcher: l, x: x})
			x += dockSlotW
		}
	}
	return slots
}

func dockZoneID(id string) string { return "dock:" + id }

// dockOrigin is the center of a dock item in desktop coordinates; the dock sits just
// below the desktop area of height deskH.
func dockOrigin(width, deskH int, groups [][]launcher, id string) (wm.Point, bool) {
	for _, s := range layoutDock(width, groups) {
		if s.launcher.ID == id {
			return wm.Point{X: s.x + dockSlotW/2, Y: deskH + 1}, true
		}
	}
	return wm.Point{}, false
}

type dockDot int

const (
	dotNone dockDot = iota
	dotRunning
	dotMinimized
)

// renderDock draws the three dock rows: a rule, the icons, and running indicators.
// Rows are built left to right so every cell is styled exactly once.
func renderDock(width int, groups [][]launcher, dot func(id string) dockDot) string {
	bg := lipgloss.NewStyle().Background(colorDockBg)
	fill := func(n int) string {
		if n <= 0 {
			return ""
		}
		return bg.Render(strings.Repeat(" ", n))
	}

	rule := lipgloss.NewStyle().Foreground(colorSeparator).Render(strings.Repeat(glyphDockRule(), width))
	var icons, dots strings.Builder
	col := 0
	for i, s := range layoutDock(width, groups) {
		if gap := s.x - col; gap > 0 {
			if i > 0 && gap > 1 {
				left := min(dockDividerW/2, gap-1)
				icons.WriteString(fill(left) + bg.Foreground(colorSeparator).Render(glyphVRule()) + fill(gap-left-1))
			} else {
				icons.WriteString(fill(gap))
			}
			dots.WriteString(fill(gap))
		}
		cell := bg.Render(lipgloss.PlaceHorizontal(dockSlotW, lipgloss.Center, launcherIcon(s.launcher)))
		icons.WriteString(zone.Mark(dockZoneID(s.launcher.ID), cell))

		var d string
		switch dot(s.launcher.ID) {
		case dotRunning:
			d = glyphRunning()
		case dotMinimized:
			d = glyphMinimized()
		}
		if d == "" {
			dots.WriteString(fill(dockSlotW))
		} else {
			dots.WriteString(bg.Foreground(colorDesktopFg).Render(lipgloss.PlaceHorizontal(dockSlotW, lipgloss.Center, d)))
		}
		col = s.x + dockSlotW
	}
	icons.WriteString(fill(width - col))
	dots.WriteString(fill(width - col))
	return strings.Join([]string{rule, fitLine(icons.String(), width), fitLine(dots.String(), width)}, "\n")
}
