// Package wm keeps the set of open Finder windows and applies every open, close,
// minimize, drag and selection request to it.
//
// A Manager is owned by whoever renders the desktop and is not safe for concurrent use;
// the TUI drives it from its single Update loop. Every operation is total: unknown ids
// are ignored rather than reported.
package wm

import (
	"slices"

	"github.com/rs/zerolog"
)

// Catalog is the read-only view of folder contents the manager needs to keep
// selections valid.
type Catalog interface {
	HasFolder(folderID string) bool
	FirstItem(folderID string) (string, bool)
	Contains(folderID, itemID string) bool
}

type Config struct {
	// Viewport is the area windows must stay inside.
	Viewport Size
	// Window is the size given to every window.
	Window Size
	// Cascade offsets each new window from the previous one. Defaults to {2,1}.
	Cascade Point
	// TitleBarHeight is the height of the drag region. Defaults to 1.
	TitleBarHeight int
	// DragDisabled starts the manager with dragging turned off (touch viewports).
	DragDisabled bool

	Logger *zerolog.Logger
}

type dragState struct {
	id     string
	offset Point
}

type Manager struct {
	cat Catalog
	cfg Config
	log zerolog.Logger

	byID map[string]*Instance
	// order is bottom to top.
	order []string

	drag        *dragState
	dragEnabled bool
}

func New(cat Catalog, cfg Config) *Manager {
	if cfg.Cascade == (Point{}) {
		cfg.Cascade = Point{X: 2, Y: 1}
	}
	if cfg.TitleBarHeight <= 0 {
		cfg.TitleBarHeight = 1
	}
	log := zerolog.Nop()
	if cfg.Logger != nil {
		log = cfg.Logger.With().Str("component", "wm").Logger()
	}
	return &Manager{
		cat:         cat,
		cfg:         cfg,
		log:         log,
		byID:        map[string]*Instance{},
		dragEnabled: !cfg.DragDisabled,
	}
}

func (m *Manager) logTransition(id string, t Transition) {
	m.log.Debug().Str("id", id).Stringer("transition", t).Int("open", len(m.order)).Msg("window transition")
}

// OpenOrToggle activates a launcher. An absent window is created visible and on top;
// a minimized one is restored; a visible one is minimized.
func (m *Manager) OpenOrToggle(id, title, folderID string, origin Point) Transition {
	in, ok := m.byID[id]
	switch {
	case !ok:
		in = &Instance{
			ID:             id,
			Title:          title,
			Origin:         origin,
			Size:           m.cfg.Window,
			SelectedFolder: folderID,
			titleBarHeight: m.cfg.TitleBarHeight,
		}
		in.SelectedFile, _ = m.cat.FirstItem(folderID)
		in.Position = m.spawnPosition(len(m.order))
		m.byID[id] = in
		m.order = append(m.order, id)
		m.logTransition(id, TransitionOpened)
		return TransitionOpened
	case in.Minimized:
		in.Minimized = false
		m.raise(id)
		m.logTransition(id, TransitionRestored)
		return TransitionRestored
	default:
		in.Minimized = true
		m.endDragFor(id)
		m.logTransition(id, TransitionMinimized)
		return TransitionMinimized
	}
}

// spawnPosition centers a window in the viewport, shifted by n cascade steps.
func (m *Manager) spawnPosition(n int) Point {
	vp, w := m.cfg.Viewport, m.cfg.Window
	p := Point{
		X: (vp.W-w.W)/2 + n*m.cfg.Cascade.X,
		Y: (vp.H-w.H)/2 + n*m.cfg.Cascade.Y,
	}
	return ClampInto(p, w, vp)
}

// Close removes a window. Closing an unknown id does nothing.
func (m *Manager) Close(id string) {
	if _, ok := m.byID[id]; !ok {
		return
	}
	m.endDragFor(id)
	delete(m.byID, id)
	m.order = slices.DeleteFunc(m.order, func(s string) bool { return s == id })
	m.logTransition(id, TransitionClosed)
}

// Minimize hides a visible window. It is OpenOrToggle restricted to the visible case.
func (m *Manager) Minimize(id string) bool {
	in, ok := m.byID[id]
	if !ok || in.Minimized {
		return false
	}
	m.OpenOrToggle(id, in.Title, in.SelectedFolder, in.Origin)
	return true
}

// Focus raises a visible window to the top.
func (m *Manager) Focus(id string) {
	in, ok := m.byID[id]
	if !ok || in.Minimized {
		return
	}
	m.raise(id)
}

func (m *Manager) raise(id string) {
	i := slices.Index(m.order, id)
	if i < 0 || i == len(m.order)-1 {
		return
	}
	m.order = append(slices.Delete(m.order, i, i+1), id)
}

// BeginDrag starts a drag when the pointer lands on a visible window's title bar and
// dragging is enabled. The window is focused.
func (m *Manager) BeginDrag(id string, pointer Point) bool {
	if !m.dragEnabled {
		return false
	}
	in, ok := m.byID[id]
	if !ok || in.Minimized {
		return false
	}
	if !in.TitleBar().Contains(pointer) {
		return false
	}
	m.drag = &dragState{id: id, offset: pointer.Sub(in.Position)}
	m.raise(id)
	m.log.Debug().Str("id", id).Int("x", pointer.X).Int("y", pointer.Y).Msg("drag begin")
	return true
}

// UpdateDrag moves the dragged window so the grab point follows the pointer, keeping
// the frame inside the viewport.
func (m *Manager) UpdateDrag(id string, pointer Point) {
	if !m.dragEnabled || m.drag == nil || m.drag.id != id {
		return
	}
	in, ok := m.byID[id]
	if !ok {
		m.drag = nil
		return
	}
	in.Position = ClampInto(pointer.Sub(m.drag.offset), in.Size, m.cfg.Viewport)
}

// EndDrag finishes a drag. Pointer release and pointer loss both end up here.
func (m *Manager) EndDrag(id string) {
	if m.drag == nil || m.drag.id != id {
		return
	}
	m.drag = nil
	m.log.Debug().Str("id", id).Msg("drag end")
}

func (m *Manager) endDragFor(id string) {
	if m.drag != nil && m.drag.id == id {
		m.drag = nil
	}
}

// Dragging returns the id of the window being dragged.
func (m *Manager) Dragging() (string, bool) {
	if m.drag == nil {
		return "", false
	}
	return m.drag.id, true
}

func (m *Manager) DragEnabled() bool { return m.dragEnabled }

// SetDragEnabled toggles dragging; disabling ends any active drag.
func (m *Manager) SetDragEnabled(enabled bool) {
	m.dragEnabled = enabled
	if !enabled {
		m.drag = nil
	}
}

// SelectFolder switches a window's folder and selects its first item, or nothing when
// the folder is empty. Folders unknown to the catalog are ignored.
func (m *Manager) SelectFolder(id, folderID string) {
	in, ok := m.byID[id]
	if !ok || !m.cat.HasFolder(folderID) {
		return
	}
	in.SelectedFolder = folderID
	in.SelectedFile, _ = m.cat.FirstItem(folderID)
}

// SelectFile selects an item of the window's current folder. Non-members are ignored.
func (m *Manager) SelectFile(id, fileID string) {
	in, ok := m.byID[id]
	if !ok || !m.cat.Contains(in.SelectedFolder, fileID) {
		return
	}
	in.SelectedFile = fileID
}

// Jump closes one window and opens another from the same origin, the sidebar's
// cross-window navigation. Jumping to an already open window restores and refocuses it
// on folderID instead.
func (m *Manager) Jump(fromID, toID, title, folderID string) Transition {
	if fromID == toID {
		m.SelectFolder(fromID, folderID)
		return TransitionNone
	}
	var origin Point
	if from, ok := m.byID[fromID]; ok {
		origin = from.Origin
	}
	m.Close(fromID)

	if to, ok := m.byID[toID]; ok {
		t := TransitionNone
		if to.Minimized {
			t = m.OpenOrToggle(toID, title, folderID, origin)
		}
		m.Focus(toID)
		m.SelectFolder(toID, folderID)
		return t
	}
	return m.OpenOrToggle(toID, title, folderID, origin)
}

// SetViewport resizes every window and pulls it back inside the new viewport.
func (m *Manager) SetViewport(viewport, window Size) {
	m.cfg.Viewport = viewport
	m.cfg.Window = window
	for _, in := range m.byID {
		in.Size = window
		in.Position = ClampInto(in.Position, in.Size, viewport)
	}
}

func (m *Manager) Viewport() Size { return m.cfg.Viewport }

// SetCatalog swaps the catalog and repairs selections that no longer exist.
func (m *Manager) SetCatalog(cat Catalog) {
	m.cat = cat
	for _, in := range m.byID {
		if !cat.HasFolder(in.SelectedFolder) {
			in.SelectedFile = ""
			continue
		}
		if in.SelectedFile == "" || !cat.Contains(in.SelectedFolder, in.SelectedFile) {
			in.SelectedFile, _ = cat.FirstItem(in.SelectedFolder)
		}
	}
}

// Get returns a copy of one window.
func (m *Manager) Get(id string) (Instance, bool) {
	in, ok := m.byID[id]
	if !ok {
		return Instance{}, false
	}
	out := *in
	out.Z = slices.Index(m.order, id)
	return out, true
}

// Has reports whether a window with id is open (visible or minimized).
func (m *Manager) Has(id string) bool {
	_, ok := m.byID[id]
	return ok
}

// Instances returns every window, bottom to top.
func (m *Manager) Instances() []Instance {
	out := make([]Instance, 0, len(m.order))
	for z, id := range m.order {
		in := *m.byID[id]
		in.Z = z
		out = append(out, in)
	}
	return out
}

// Visible returns the non-minimized windows, bottom to top.
func (m *Manager) Visible() []Instance {
	return slices.DeleteFunc(m.Instances(), func(in Instance) bool { return in.Minimized })
}

// Top returns the topmost visible window.
func (m *Manager) Top() (Instance, bool) {
	vis := m.Visible()
	if len(vis) == 0 {
		return Instance{}, false
	}
	return vis[len(vis)-1], true
}

// TopAt returns the topmost visible window whose frame contains p.
func (m *Manager) TopAt(p Point) (Instance, bool) {
	vis := m.Visible()
	for i := len(vis) - 1; i >= 0; i-- {
		if vis[i].Frame().Contains(p) {
			return vis[i], true
		}
	}
	return Instance{}, false
}

// CycleFocus raises the bottom-most visible window, so repeated calls visit each one.
func (m *Manager) CycleFocus() (string, bool) {
	vis := m.Visible()
	if len(vis) < 2 {
		if len(vis) == 1 {
			return vis[0].ID, true
		}
		return "", false
	}
	id := vis[0].ID
	m.raise(id)
	return id, true
}

// SpawnFrame is Instance.SpawnFrame for an open window.
func (m *Manager) SpawnFrame(id string, t float64) (Rect, bool) {
	in, ok := m.byID[id]
	if !ok {
		return Rect{}, false
	}
	return in.SpawnFrame(t), true
}
