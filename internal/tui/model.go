package tui

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/rs/zerolog"

	"deskfolio/internal/catalog"
	"deskfolio/internal/theme"
	"deskfolio/internal/viewport"
	"deskfolio/internal/wm"
)

const (
	menuBarHeight = 1
	reservedRows  = menuBarHeight + dockHeight

	animFrames   = 6
	animInterval = 20 * time.Millisecond
	flashTTL     = 2500 * time.Millisecond
)

// SidebarMode decides what a sidebar click does.
type SidebarMode string

const (
	// SidebarSwitch changes the folder shown in the same window.
	SidebarSwitch SidebarMode = "switch"
	// SidebarJump closes the window and opens the folder's own window in its place.
	SidebarJump SidebarMode = "jump"
)

func ParseSidebarMode(s string) (SidebarMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(SidebarSwitch):
		return SidebarSwitch, nil
	case string(SidebarJump):
		return SidebarJump, nil
	default:
		return "", fmt.Errorf("invalid sidebar mode %q (want switch|jump)", s)
	}
}

type (
	clockTickMsg time.Time
	animTickMsg  struct{ id string }
	exitTickMsg  struct{ id string }
	flashDoneMsg struct{ seq int }

	catalogReloadedMsg struct {
		cat *catalog.Catalog
		err error
	}
)

var zoneOnce sync.Once

func ensureZones() {
	zoneOnce.Do(zone.NewGlobal)
}

type appModel struct {
	cat    *catalog.Catalog
	catGen int

	wm       *wm.Manager
	theme    *theme.Context
	detector *viewport.Detector
	info     viewport.Info
	log      zerolog.Logger

	keys     keyMap
	help     help.Model
	showHelp bool

	sidebarMode SidebarMode

	width  int
	height int

	// iconPos holds icons the user dragged away from their preset slot.
	iconPos    map[string]wm.Point
	iconPreset viewport.Preset
	iconDrag   *iconDrag

	previews map[string]*previewPane
	anims    map[string]int
	exits    map[string]exitAnim
	search   searchState

	flash    string
	flashSeq int

	now   func() time.Time
	clock time.Time

	openURLFn func(string) tea.Cmd
	copyFn    func(string) error

	// startup is a launcher activated on the first resize.
	startup string
}

// exitAnim is a window shrinking back to its launcher after a close or minimize. inst
// is a snapshot taken before the manager dropped or hid the window.
type exitAnim struct {
	inst  wm.Instance
	frame int
}

type iconDrag struct {
	id     string
	offset wm.Point
	moved  bool
}

func newAppModel(opts Options) appModel {
	ensureZones()

	log := zerolog.Nop()
	if opts.Logger != nil {
		log = opts.Logger.With().Str("component", "tui").Logger()
	}
	cat := opts.Catalog
	if cat == nil {
		cat = catalog.MustDefault()
	}
	th := opts.Theme
	if th == nil {
		th = theme.New(theme.ModeDark, nil, opts.Logger)
	}
	cw, ch := opts.CellWidth, opts.CellHeight
	if cw <= 0 {
		cw = viewport.DefaultCellWidth
	}
	if ch <= 0 {
		ch = viewport.DefaultCellHeight
	}
	mode := opts.Sidebar
	if mode == "" {
		mode = SidebarSwitch
	}

	m := appModel{
		cat:         cat,
		wm:          wm.New(cat, wm.Config{Logger: opts.Logger}),
		theme:       th,
		detector:    viewport.NewDetector(cw, ch),
		log:         log,
		keys:        defaultKeyMap(),
		help:        help.New(),
		sidebarMode: mode,
		previews:    map[string]*previewPane{},
		anims:       map[string]int{},
		exits:       map[string]exitAnim{},
		iconPos:     map[string]wm.Point{},
		search:      searchState{input: newSearchInput()},
		now:         time.Now,
		openURLFn:   openURL,
		copyFn:      copyToClipboard,
		startup:     opts.Open,
	}
	m.clock = m.now()
	return m
}

func (m appModel) Init() tea.Cmd { return clockTick() }

func clockTick() tea.Cmd {
	return tea.Every(time.Minute, func(t time.Time) tea.Msg { return clockTickMsg(t) })
}

func animTick(id string) tea.Cmd {
	return tea.Tick(animInterval, func(time.Time) tea.Msg { return animTickMsg{id: id} })
}

func exitTick(id string) tea.Cmd {
	return tea.Tick(animInterval, func(time.Time) tea.Msg { return exitTickMsg{id: id} })
}

func (m appModel) deskHeight() int {
	return max(m.height-reservedRows, 1)
}

func (m *appModel) resize(w, h int) {
	m.width, m.height = w, h
	info, changed := m.detector.Update(w, h)
	m.info = info
	ww, wh := viewport.WindowCells(info, w, h, reservedRows)
	m.wm.SetViewport(wm.Size{W: w, H: m.deskHeight()}, wm.Size{W: ww, H: wh})
	m.wm.SetDragEnabled(!info.Touch())
	if p := viewport.PresetFor(info); p != m.iconPreset {
		m.iconPreset = p
		clear(m.iconPos)
		m.iconDrag = nil
	}
	if changed {
		m.log.Debug().
			Stringer("class", info.Class()).
			Bool("landscape", info.IsLandscape).
			Int("width", info.Width).
			Int("height", info.Height).
			Msg("viewport class changed")
	}
}

func (m *appModel) showFlash(text string) tea.Cmd {
	m.flashSeq++
	seq := m.flashSeq
	m.flash = text
	return tea.Tick(flashTTL, func(time.Time) tea.Msg { return flashDoneMsg{seq: seq} })
}

// launcherOrigin is where a launcher sits on screen, in desktop coordinates.
func (m appModel) launcherOrigin(id string) wm.Point {
	if p, ok := dockOrigin(m.width, m.deskHeight(), visibleDock(m.info.IsMobile), id); ok {
		return p
	}
	for _, s := range m.icons() {
		if s.launcher.ID == id {
			return s.rect.Center()
		}
	}
	return wm.Point{X: m.width / 2, Y: 0}
}

// activate runs a launcher as if it was clicked at origin.
func (m *appModel) activate(l launcher, origin wm.Point) tea.Cmd {
	switch l.Action {
	case actionURL:
		return tea.Batch(m.showFlash("Opening "+l.URL), m.openURLFn(l.URL))
	case actionNotice:
		return m.showFlash(l.Label + " is just for show")
	}
	if !m.cat.HasFolder(l.Folder) {
		return m.showFlash("Folder not found: " + l.Folder)
	}

	before, _ := m.wm.Get(l.ID)
	tr := m.wm.OpenOrToggle(l.ID, l.Label, l.Folder, origin)
	if tr == wm.TransitionMinimized {
		return m.animateExit(before)
	}
	if l.Select != "" {
		m.wm.SelectFile(l.ID, l.Select)
	}
	m.syncPreviews()
	return m.animate(l.ID, tr)
}

func (m *appModel) animate(id string, tr wm.Transition) tea.Cmd {
	if tr != wm.TransitionOpened && tr != wm.TransitionRestored {
		return nil
	}
	delete(m.exits, id)
	m.anims[id] = 0
	return animTick(id)
}

// animateExit starts the shrink of a window that just closed or minimized.
func (m *appModel) animateExit(inst wm.Instance) tea.Cmd {
	delete(m.anims, inst.ID)
	m.exits[inst.ID] = exitAnim{inst: inst}
	return exitTick(inst.ID)
}

// activateFolder opens the window for a catalog folder, reusing its launcher when one exists.
func (m *appModel) activateFolder(folderID string) tea.Cmd {
	l, ok := lookupLauncher(folderID)
	if !ok || l.Action != actionFolder {
		l = launcher{ID: folderID, Label: folderTitle(m.cat, folderID), Action: actionFolder, Folder: folderID}
	}
	return m.activate(l, m.launcherOrigin(l.ID))
}

func (m *appModel) closeWindow(id string) tea.Cmd {
	inst, ok := m.wm.Get(id)
	if !ok {
		return nil
	}
	m.wm.Close(id)
	delete(m.previews, id)
	if !inst.Visible() {
		delete(m.anims, id)
		return nil
	}
	return m.animateExit(inst)
}

func (m *appModel) minimizeWindow(id string) tea.Cmd {
	inst, ok := m.wm.Get(id)
	if !ok || !m.wm.Minimize(id) {
		return nil
	}
	return m.animateExit(inst)
}

// selectFolder applies a sidebar choice in the configured mode.
func (m *appModel) selectFolder(id, folderID string) tea.Cmd {
	inst, ok := m.wm.Get(id)
	if !ok {
		return nil
	}
	if m.sidebarMode != SidebarJump || folderID == inst.SelectedFolder {
		m.wm.SelectFolder(id, folderID)
		m.syncPreviews()
		return nil
	}
	tr := m.wm.Jump(id, folderID, folderTitle(m.cat, folderID), folderID)
	m.syncPreviews()
	return m.animate(folderID, tr)
}

func (m *appModel) stepFolder(id string, delta int) tea.Cmd {
	inst, ok := m.wm.Get(id)
	if !ok {
		return nil
	}
	folders := m.cat.Folders()
	if len(folders) == 0 {
		return nil
	}
	i := indexOfFolder(folders, inst.SelectedFolder)
	i = (i + delta + len(folders)) % len(folders)
	return m.selectFolder(id, folders[i].ID)
}

func (m *appModel) stepItem(id string, delta int) {
	inst, ok := m.wm.Get(id)
	if !ok {
		return
	}
	items := m.cat.Items(inst.SelectedFolder)
	if len(items) == 0 {
		return
	}
	i := indexOfItem(items, inst.SelectedFile) + delta
	i = min(max(i, 0), len(items)-1)
	m.wm.SelectFile(id, items[i].ID)
	m.syncPreviews()
}

// selectedItem is the item shown in the focused window.
func (m appModel) selectedItem() (catalog.Item, bool) {
	top, ok := m.wm.Top()
	if !ok || top.SelectedFile == "" {
		return catalog.Item{}, false
	}
	it, _, ok := m.cat.Item(top.SelectedFile)
	return it, ok
}

func (m *appModel) toggleTheme() tea.Cmd {
	err := m.theme.Toggle()
	m.syncPreviews()
	if err != nil {
		return m.showFlash("Theme changed but not saved: " + err.Error())
	}
	return nil
}

func (m *appModel) openSearchHit(h catalog.Hit) tea.Cmd {
	var cmd tea.Cmd
	target := ""
	for _, inst := range m.wm.Visible() {
		if inst.SelectedFolder == h.FolderID {
			target = inst.ID
		}
	}
	if target != "" {
		m.wm.Focus(target)
	} else {
		target = h.FolderID
		if inst, ok := m.wm.Get(target); ok && inst.Visible() {
			m.wm.Focus(target)
		} else {
			cmd = m.activateFolder(h.FolderID)
		}
	}
	if inst, ok := m.wm.Get(target); ok && inst.SelectedFolder != h.FolderID {
		m.wm.SelectFolder(target, h.FolderID)
	}
	m.wm.SelectFile(target, h.Item.ID)
	m.syncPreviews()
	return cmd
}

func (m appModel) dockDot(id string) dockDot {
	inst, ok := m.wm.Get(id)
	switch {
	case !ok:
		return dotNone
	case inst.Minimized:
		return dotMinimized
	default:
		return dotRunning
	}
}
