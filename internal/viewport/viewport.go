// Package viewport classifies the terminal as a mobile, tablet or desktop screen and
// picks the desktop icon layout and window size for each class.
package viewport

// Class is the device class derived from the viewport width in pixels.
type Class int

const (
	Desktop Class = iota
	Tablet
	Mobile
)

func (c Class) String() string {
	switch c {
	case Mobile:
		return "mobile"
	case Tablet:
		return "tablet"
	default:
		return "desktop"
	}
}

// Breakpoints in pixels.
const (
	MobileMaxWidth = 767  // < 768px
	TabletMaxWidth = 1023 // 768-1023px
)

// Default terminal cell size used to convert columns/rows to pixels.
const (
	DefaultCellWidth  = 12
	DefaultCellHeight = 24
)

// Info is what the desktop layout consumes on every resize.
type Info struct {
	IsMobile    bool `json:"isMobile"`
	IsTablet    bool `json:"isTablet"`
	IsDesktop   bool `json:"isDesktop"`
	IsLandscape bool `json:"isLandscape"`
	IsPortrait  bool `json:"isPortrait"`
	// Width and Height are in pixels.
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Classify maps a pixel viewport to Info. Square viewports count as portrait.
func Classify(width, height int) Info {
	return Info{
		IsMobile:    width <= MobileMaxWidth,
		IsTablet:    width > MobileMaxWidth && width <= TabletMaxWidth,
		IsDesktop:   width > TabletMaxWidth,
		IsLandscape: width > height,
		IsPortrait:  width <= height,
		Width:       width,
		Height:      height,
	}
}

func (i Info) Class() Class {
	switch {
	case i.IsMobile:
		return Mobile
	case i.IsTablet:
		return Tablet
	default:
		return Desktop
	}
}

// Touch reports whether the viewport is treated as a touch device, where window
// dragging is disabled.
func (i Info) Touch() bool { return i.IsMobile }

// RotateHint reports whether to suggest switching to portrait.
func (i Info) RotateHint() bool { return i.IsMobile && i.IsLandscape }

// Detector converts terminal cell sizes to pixels and tracks the last classification.
type Detector struct {
	cellW, cellH int
	info         Info
	seen         bool
}

// NewDetector returns a detector; non-positive cell sizes fall back to the defaults.
func NewDetector(cellWidth, cellHeight int) *Detector {
	if cellWidth <= 0 {
		cellWidth = DefaultCellWidth
	}
	if cellHeight <= 0 {
		cellHeight = DefaultCellHeight
	}
	return &Detector{cellW: cellWidth, cellH: cellHeight, info: Classify(1024, 768)}
}

// Update classifies a terminal of cols×rows cells. changed is true when the class or
// orientation differs from the previous update.
func (d *Detector) Update(cols, rows int) (info Info, changed bool) {
	return d.UpdatePixels(d.cellsToPixels(cols, rows))
}

// UpdatePixels classifies a viewport already measured in pixels.
func (d *Detector) UpdatePixels(width, height int) (Info, bool) {
	next := Classify(width, height)
	changed := !d.seen || next.Class() != d.info.Class() || next.IsLandscape != d.info.IsLandscape
	d.info = next
	d.seen = true
	return next, changed
}

func (d *Detector) Info() Info { return d.info }

// cellsToPixels converts a cell position to the pixel position of its top-left corner.
func (d *Detector) cellsToPixels(col, row int) (x, y int) {
	return col * d.cellW, row * d.cellH
}
