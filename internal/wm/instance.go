package wm

// Instance is one open Finder window. Values returned by the Manager are copies.
type Instance struct {
	ID    string `json:"id"`
	Title string `json:"title"`

	// Origin is the launcher center at spawn time. It never changes.
	Origin   Point `json:"origin"`
	Position Point `json:"position"`
	Size     Size  `json:"size"`

	SelectedFolder string `json:"selectedFolder"`
	// SelectedFile is "" when the folder is empty.
	SelectedFile string `json:"selectedFile,omitempty"`

	Minimized bool `json:"minimized"`
	// Z is the stacking index, 0 at the bottom.
	Z int `json:"z"`

	titleBarHeight int
}

func (in Instance) Visible() bool { return !in.Minimized }

// Frame is the full window rectangle.
func (in Instance) Frame() Rect {
	return Rect{X: in.Position.X, Y: in.Position.Y, W: in.Size.W, H: in.Size.H}
}

// TitleBar is the drag hit region: the top row of the frame.
func (in Instance) TitleBar() Rect {
	h := in.titleBarHeight
	if h <= 0 {
		h = 1
	}
	return Rect{X: in.Position.X, Y: in.Position.Y, W: in.Size.W, H: min(h, in.Size.H)}
}

// SpawnFrame interpolates between a tenth-size frame centered on Origin (t=0) and
// the real frame (t=1). Closing plays it backwards.
func (in Instance) SpawnFrame(t float64) Rect {
	t = min(max(t, 0), 1)
	to := in.Frame()
	w0, h0 := max(to.W/10, 1), max(to.H/10, 1)
	from := Rect{X: in.Origin.X - w0/2, Y: in.Origin.Y - h0/2, W: w0, H: h0}
	return Rect{
		X: lerp(from.X, to.X, t),
		Y: lerp(from.Y, to.Y, t),
		W: lerp(from.W, to.W, t),
		H: lerp(from.H, to.H, t),
	}
}

// Transition names the state change performed by OpenOrToggle and friends.
type Transition int

const (
	TransitionNone Transition = iota
	TransitionOpened
	TransitionRestored
	TransitionMinimized
	TransitionClosed
)

func (t Transition) String() string {
	switch t {
	case TransitionOpened:
		return "opened"
	case TransitionRestored:
		return "restored"
	case TransitionMinimized:
		return "minimized"
	case TransitionClosed:
		return "closed"
	default:
		return "none"
	}
}
