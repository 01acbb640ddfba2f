package tui

import (
	"github.com/charmbracelet/lipgloss"

	"deskfolio/internal/catalog"
)

// Palette helpers.
//
// Everything uses lipgloss.AdaptiveColor so the theme toggle (which flips lipgloss's
// dark-background flag) recolors the whole desktop on the next render. Faint styling is
// only applied on dark backgrounds; faint text on light terminals is often illegible.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

var (
	colorMuted = ac("240", "243")

	colorDesktopBg = ac("#dbe4f0", "#10141c")
	colorDesktopFg = ac("#3b4252", "#8a93a6")

	colorMenuBg = ac("#f3f3f3", "#1c1c1e")
	colorMenuFg = ac("235", "252")

	colorDockBg = ac("#e6e6e6", "#232326")

	colorSurfaceBg = ac("255", "235")
	colorSurfaceFg = ac("235", "252")

	colorTitleBg         = ac("#ececec", "#2c2c2e")
	colorTitleInactiveBg = ac("#f6f6f6", "#242426")

	colorSidebarBg = ac("#f0f0f2", "#202022")
	colorRowAltBg  = ac("#f7f7f7", "#262628")

	colorSelectedBg = ac("#cfe3ff", "#1e4b8f")
	colorSelectedFg = ac("235", "255")

	colorAccent   = ac("27", "75")
	colorAccentFg = ac("255", "235")

	colorClose    = ac("#ff5f57", "#ff5f57")
	colorMinimize = ac("#febc2e", "#febc2e")
	colorZoom     = ac("#28c840", "#28c840")

	colorSeparator = ac("250", "238")

	colorFlashBg = ac("#fff4d6", "#3a3020")
	colorFlashFg = ac("#5c4400", "#ffd27a")
)

// Skill chip colors (cloud blue, development green, research purple, other gray).
var skillColors = map[catalog.SkillCategory]struct{ bg, fg lipgloss.AdaptiveColor }{
	catalog.SkillCloud:       {ac("#e8f1ff", "#16305a"), ac("#1d4ed8", "#93c5fd")},
	catalog.SkillDevelopment: {ac("#e9f9ee", "#14432a"), ac("#15803d", "#86efac")},
	catalog.SkillResearch:    {ac("#f4ecff", "#3b1f5e"), ac("#7e22ce", "#d8b4fe")},
	catalog.SkillOther:       {ac("#f3f4f6", "#2a2d33"), ac("#374151", "#d1d5db")},
}

func styleMuted() lipgloss.Style {
	return faintIfDark(lipgloss.NewStyle().Foreground(colorMuted))
}

func styleSkillChip(skill string) lipgloss.Style {
	c := skillColors[catalog.ClassifySkill(skill)]
	return lipgloss.NewStyle().Background(c.bg).Foreground(c.fg).Padding(0, 1)
}
