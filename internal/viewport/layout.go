package viewport

// Preset is one of the fixed desktop icon arrangements.
type Preset int

const (
	PresetDesktopGrid Preset = iota
	PresetTabletRow
	PresetMobileColumn
)

func (p Preset) String() string {
	switch p {
	case PresetTabletRow:
		return "tablet-row"
	case PresetMobileColumn:
		return "mobile-column"
	default:
		return "desktop-grid"
	}
}

// PresetFor picks the icon layout for a viewport.
func PresetFor(i Info) Preset {
	switch i.Class() {
	case Mobile:
		return PresetMobileColumn
	case Tablet:
		return PresetTabletRow
	default:
		return PresetDesktopGrid
	}
}

// Columns is the number of icon columns the preset uses for n icons.
func (p Preset) Columns(n int) int {
	switch p {
	case PresetTabletRow:
		return max(n, 1)
	case PresetMobileColumn:
		return 1
	default:
		return 2
	}
}

// Slot is a grid coordinate in icon units.
type Slot struct {
	Col int
	Row int
}

// Slots lays out n icons in row-major order.
func (p Preset) Slots(n int) []Slot {
	cols := p.Columns(n)
	out := make([]Slot, n)
	for i := range out {
		out[i] = Slot{Col: i % cols, Row: i / cols}
	}
	return out
}

// WindowCells sizes a Finder window for a terminal of cols×rows cells, leaving room for
// the menu bar (top) and dock (bottom) given in reserved rows.
func WindowCells(i Info, cols, rows, reserved int) (w, h int) {
	avail := max(rows-reserved, 1)
	switch i.Class() {
	case Mobile:
		w, h = cols, avail
	case Tablet:
		w, h = cols*9/10, avail*9/10
	default:
		w, h = min(cols*4/5, 120), min(avail*4/5, 40)
	}
	return max(w, 1), max(h, 1)
}
