package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
)

const (
	brandName = "Koushik's Portfolio"

	zoneMenuSearch = "menu:search"
	zoneMenuTheme  = "menu:theme"
)

func menuZoneID(id string) string { return "menu:" + id }

// renderMenuBar draws the top bar. Menu entries are dropped on mobile widths.
func renderMenuBar(width int, dark, mobile bool, now time.Time) string {
	base := lipgloss.NewStyle().Background(colorMenuBg).Foreground(colorMenuFg)

	left := base.Bold(true).Render("  " + brandName + "  ")
	if !mobile {
		for _, l := range menuLaunchers {
			left += zone.Mark(menuZoneID(l.ID), base.Render(" "+l.Label+" "))
		}
	}

	clock := now.Format("Mon Jan 2  15:04")
	if mobile {
		clock = now.Format("15:04")
	}
	right := zone.Mark(zoneMenuSearch, base.Render(" "+glyphSearch()+" ")) +
		zone.Mark(zoneMenuTheme, base.Render(" "+glyphTheme(dark)+" ")) +
		base.Render(" "+clock+"  ")

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		return fitLine(left+right, width)
	}
	return left + base.Render(strings.Repeat(" ", gap)) + right
}
