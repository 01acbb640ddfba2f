package tui

import (
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"

	"deskfolio/internal/viewport"
	"deskfolio/internal/wm"
)

const (
	iconW          = 12
	iconH          = 2
	iconRowStep    = 3
	iconGridStep   = 14
	iconTabletStep = 12

	rotateHintText = "Rotate your device to portrait for the best experience"
)

type iconSlot struct {
	launcher launcher
	rect     wm.Rect
}

// layoutIcons places the desktop icons in desktop coordinates using the preset for info.
func layoutIcons(info viewport.Info) []iconSlot {
	preset := viewport.PresetFor(info)
	slots := preset.Slots(len(desktopIcons))
	out := make([]iconSlot, 0, len(slots))
	for i, s := range slots {
		var x int
		switch preset {
		case viewport.PresetTabletRow:
			x = 2 + s.Col*iconTabletStep
		case viewport.PresetMobileColumn:
			x = 1
		default:
			x = 2 + s.Col*iconGridStep
		}
		out = append(out, iconSlot{
			launcher: desktopIcons[i],
			rect:     wm.Rect{X: x, Y: 1 + s.Row*iconRowStep, W: iconW, H: iconH},
		})
	}
	return out
}

// icons is the live icon layout: the preset slots, with dragged icons at their own
// positions clamped to the desktop.
func (m appModel) icons() []iconSlot {
	slots := layoutIcons(m.info)
	desk := wm.Size{W: m.width, H: m.deskHeight()}
	for i, s := range slots {
		p, ok := m.iconPos[s.launcher.ID]
		if !ok {
			continue
		}
		p = wm.ClampInto(p, wm.Size{W: s.rect.W, H: s.rect.H}, desk)
		slots[i].rect.X, slots[i].rect.Y = p.X, p.Y
	}
	return slots
}

// iconAt returns the topmost icon under p, in desktop coordinates.
func iconAt(icons []iconSlot, p wm.Point) (iconSlot, bool) {
	for i := len(icons) - 1; i >= 0; i-- {
		if icons[i].rect.Contains(p) {
			return icons[i], true
		}
	}
	return iconSlot{}, false
}

func renderIcon(l launcher) string {
	label := xansi.Truncate(l.Label, iconW, "…")
	icon := lipgloss.PlaceHorizontal(iconW, lipgloss.Center, launcherIcon(l))
	text := lipgloss.NewStyle().Foreground(colorDesktopFg).Render(lipgloss.PlaceHorizontal(iconW, lipgloss.Center, label))
	return icon + "\n" + text
}

// renderDesktop draws the desktop background with its icons. Windows are composited on
// top by the caller.
func renderDesktop(width, height int, icons []iconSlot, rotateHint bool) *canvas {
	c := newCanvas(width, height, "")
	for _, s := range icons {
		if s.rect.Y+s.rect.H > height {
			continue
		}
		c.overlay(s.rect.X, s.rect.Y, renderIcon(s.launcher))
	}
	if rotateHint && height > 0 {
		hint := lipgloss.NewStyle().Foreground(colorFlashFg).Background(colorFlashBg).Padding(0, 1).Render(glyphRotate() + " " + rotateHintText)
		c.overlay(max((width-lipgloss.Width(hint))/2, 0), height-1, hint)
	}
	return c
}
