package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	xansi "github.com/charmbracelet/x/ansi"

	"deskfolio/internal/catalog"
	"deskfolio/internal/theme"
	"deskfolio/internal/viewport"
	"deskfolio/internal/wm"
)

var testNow = time.Date(2025, time.March, 4, 12, 0, 0, 0, time.UTC)

type recorder struct {
	opened []string
	copied []string
}

func newTestModel(t *testing.T, opts Options) (appModel, *recorder) {
	t.Helper()
	if opts.Catalog == nil {
		opts.Catalog = catalog.MustDefault()
	}
	if opts.Theme == nil {
		opts.Theme = theme.New(theme.ModeDark, nil, nil)
	}
	rec := &recorder{}
	m := newAppModel(opts)
	m.openURLFn = func(u string) tea.Cmd {
		rec.opened = append(rec.opened, u)
		return nil
	}
	m.copyFn = func(s string) error {
		rec.copied = append(rec.copied, s)
		return nil
	}
	return m, rec
}

func update(t *testing.T, m appModel, msg tea.Msg) appModel {
	t.Helper()
	mm, _ := m.Update(msg)
	return mm.(appModel)
}

func sized(t *testing.T, m appModel, w, h int) appModel {
	t.Helper()
	return update(t, m, tea.WindowSizeMsg{Width: w, Height: h})
}

func press(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress}
}

func motion(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Button: tea.MouseButtonLeft, Action: tea.MouseActionMotion}
}

func release(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Button: tea.MouseButtonNone, Action: tea.MouseActionRelease}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func mustLauncher(t *testing.T, id string) launcher {
	t.Helper()
	l, ok := lookupLauncher(id)
	if !ok {
		t.Fatalf("launcher %q not found", id)
	}
	return l
}

// screenPoint converts a window-local cell to the terminal coordinate a mouse event carries.
func screenPoint(inst wm.Instance, local wm.Point) (int, int) {
	return inst.Position.X + local.X, inst.Position.Y + local.Y + menuBarHeight
}

func TestLauncherTogglesProjectsWindow(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	m = sized(t, m, 160, 50)

	l := mustLauncher(t, "projects")
	origin := wm.Point{X: 80, Y: 47}

	(&m).activate(l, origin)
	inst, ok := m.wm.Get("projects")
	if !ok || inst.Minimized {
		t.Fatalf("expected visible projects window, got %+v ok=%v", inst, ok)
	}
	if inst.Origin != origin || inst.SelectedFolder != catalog.FolderProjects || inst.SelectedFile != "ml-pipeline" {
		t.Fatalf("unexpected instance: %+v", inst)
	}
	pos := inst.Position

	(&m).activate(l, origin)
	if inst, _ := m.wm.Get("projects"); !inst.Minimized {
		t.Fatalf("second activation should minimize")
	}
	if got := m.dockDot("projects"); got != dotMinimized {
		t.Fatalf("dock dot = %v, want minimized", got)
	}

	(&m).activate(l, origin)
	inst, _ = m.wm.Get("projects")
	if inst.Minimized || inst.Position != pos {
		t.Fatalf("third activation should restore in place: %+v (was %+v)", inst, pos)
	}
	if got := m.dockDot("projects"); got != dotRunning {
		t.Fatalf("dock dot = %v, want running", got)
	}
}

func TestLauncherSelectsItem(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	m = sized(t, m, 160, 50)

	(&m).activate(mustLauncher(t, "resume"), wm.Point{})
	inst, _ := m.wm.Get("resume")
	if inst.SelectedFolder != catalog.FolderAbout || inst.SelectedFile != "resume" {
		t.Fatalf("unexpected selection: %+v", inst)
	}
}

func TestNonFolderLaunchers(t *testing.T) {
	m, rec := newTestModel(t, Options{})
	m = sized(t, m, 160, 50)

	(&m).activate(mustLauncher(t, "github"), wm.Point{})
	if len(rec.opened) != 1 || rec.opened[0] != "https://github.com/koushikpr" {
		t.Fatalf("opened = %v", rec.opened)
	}
	(&m).activate(mustLauncher(t, "trash"), wm.Point{})
	if m.flash == "" {
		t.Fatalf("expected a status message for a decorative launcher")
	}
	if len(m.wm.Instances()) != 0 {
		t.Fatalf("non-folder launchers must not open windows")
	}
}

func TestStartupLauncherOpensOnFirstResize(t *testing.T) {
	m, _ := newTestModel(t, Options{Open: "education"})
	m = sized(t, m, 160, 50)

	inst, ok := m.wm.Get("education")
	if !ok || inst.SelectedFile != "stevens" {
		t.Fatalf("expected education window, got %+v ok=%v", inst, ok)
	}
	if inst.Origin.Y != m.deskHeight()+1 {
		t.Fatalf("origin should be the dock item, got %+v", inst.Origin)
	}
	m = sized(t, m, 161, 50)
	if n := len(m.wm.Instances()); n != 1 {
		t.Fatalf("startup launcher should only run once, have %d windows", n)
	}
}

func TestTitleBarDragMovesWindow(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	m = sized(t, m, 160, 50)
	(&m).activate(mustLauncher(t, "projects"), wm.Point{})

	inst, _ := m.wm.Get("projects")
	x, y := screenPoint(inst, wm.Point{X: 10, Y: 0})

	m = update(t, m, press(x, y))
	if id, ok := m.wm.Dragging(); !ok || id != "projects" {
		t.Fatalf("expected drag to start")
	}
	m = update(t, m, motion(x+5, y+3))
	m = update(t, m, release(x+5, y+3))
	if _, ok := m.wm.Dragging(); ok {
		t.Fatalf("release should end the drag")
	}

	moved, _ := m.wm.Get("projects")
	if want := inst.Position.Add(wm.Point{X: 5, Y: 3}); moved.Position != want {
		t.Fatalf("position = %+v, want %+v", moved.Position, want)
	}

	// Far past the edge: clamped into the desktop area.
	m = update(t, m, press(x+5, y+3))
	m = update(t, m, motion(500, 500))
	m = update(t, m, tea.BlurMsg{})
	if _, ok := m.wm.Dragging(); ok {
		t.Fatalf("blur should end the drag")
	}
	moved, _ = m.wm.Get("projects")
	vp := m.wm.Viewport()
	if moved.Position.X != vp.W-moved.Size.W || moved.Position.Y != vp.H-moved.Size.H {
		t.Fatalf("expected clamp to bottom-right, got %+v (vp %+v size %+v)", moved.Position, vp, moved.Size)
	}
}

func TestBodyPressDoesNotDrag(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	m = sized(t, m, 160, 50)
	(&m).activate(mustLauncher(t, "projects"), wm.Point{})

	inst, _ := m.wm.Get("projects")
	l := layoutFinder(inst.Size.W, inst.Size.H)
	x, y := screenPoint(inst, wm.Point{X: l.preview.X + 2, Y: l.preview.Y + 2})
	m = update(t, m, press(x, y))
	if _, ok := m.wm.Dragging(); ok {
		t.Fatalf("press in the preview must not start a drag")
	}
}

func TestWindowClicks(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	m = sized(t, m, 160, 50)
	(&m).activate(mustLauncher(t, "projects"), wm.Point{})
	inst, _ := m.wm.Get("projects")
	l := layoutFinder(inst.Size.W, inst.Size.H)
	if !l.wide {
		t.Fatalf("expected wide layout for %+v", inst.Size)
	}

	// Second list row.
	x, y := screenPoint(inst, wm.Point{X: l.list.X + 2, Y: l.listTop() + 1})
	m = update(t, m, press(x, y))
	if got, _ := m.wm.Get("projects"); got.SelectedFile != "wifi-prediction" {
		t.Fatalf("row click: selected %q", got.SelectedFile)
	}

	// Third sidebar folder.
	x, y = screenPoint(inst, wm.Point{X: 2, Y: l.sidebar.Y + 1 + 2})
	m = update(t, m, press(x, y))
	got, _ := m.wm.Get("projects")
	if got.SelectedFolder != catalog.FolderCertifications || got.SelectedFile != "aws-solution-architect" {
		t.Fatalf("sidebar click: %+v", got)
	}

	// Minimize control.
	x, y = screenPoint(inst, wm.Point{X: ctrlMinimizeX, Y: 0})
	m = update(t, m, press(x, y))
	if got, _ := m.wm.Get("projects"); !got.Minimized {
		t.Fatalf("minimize control did not minimize")
	}

	(&m).activate(mustLauncher(t, "projects"), wm.Point{})
	x, y = screenPoint(inst, wm.Point{X: ctrlCloseX, Y: 0})
	m = update(t, m, press(x, y))
	if m.wm.Has("projects") {
		t.Fatalf("close control did not close")
	}
	if _, ok := m.previews["projects"]; ok {
		t.Fatalf("closed window should drop its preview pane")
	}
}

func TestSidebarJumpMode(t *testing.T) {
	m, _ := newTestModel(t, Options{Sidebar: SidebarJump})
	m = sized(t, m, 160, 50)
	origin := wm.Point{X: 30, Y: 47}
	(&m).activate(mustLauncher(t, "projects"), origin)

	inst, _ := m.wm.Get("projects")
	l := layoutFinder(inst.Size.W, inst.Size.H)
	eventsIdx := indexOfFolder(m.cat.Folders(), catalog.FolderEvents)
	x, y := screenPoint(inst, wm.Point{X: 2, Y: l.sidebar.Y + 1 + eventsIdx})
	m = update(t, m, press(x, y))

	if m.wm.Has("projects") {
		t.Fatalf("jump should close the source window")
	}
	ev, ok := m.wm.Get(catalog.FolderEvents)
	if !ok || ev.Origin != origin || ev.SelectedFolder != catalog.FolderEvents {
		t.Fatalf("jump target: %+v ok=%v", ev, ok)
	}
}

func TestKeyboardNavigation(t *testing.T) {
	m, rec := newTestModel(t, Options{})
	m = sized(t, m, 160, 50)

	m = update(t, m, runes("5")) // fifth folder: projects
	if _, ok := m.wm.Get(catalog.FolderProjects); !ok {
		t.Fatalf("key 5 should open the projects window")
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if inst, _ := m.wm.Get(catalog.FolderProjects); inst.SelectedFile != "wifi-prediction" {
		t.Fatalf("down: selected %q", inst.SelectedFile)
	}
	m = update(t, m, runes("y"))
	if len(rec.copied) != 1 || !strings.Contains(rec.copied[0], "github.com") {
		t.Fatalf("copied = %v", rec.copied)
	}
	m = update(t, m, runes("o"))
	if len(rec.opened) != 1 || rec.opened[0] != rec.copied[0] {
		t.Fatalf("opened = %v", rec.opened)
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if inst, _ := m.wm.Get(catalog.FolderProjects); inst.SelectedFolder != catalog.FolderEvents {
		t.Fatalf("right: folder %q", inst.SelectedFolder)
	}
	m = update(t, m, runes("m"))
	if inst, _ := m.wm.Get(catalog.FolderProjects); !inst.Minimized {
		t.Fatalf("m should minimize")
	}
	m = update(t, m, runes("5"))
	m = update(t, m, runes("w"))
	if m.wm.Has(catalog.FolderProjects) {
		t.Fatalf("w should close")
	}
}

func TestCopyLinkFailureFlashes(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	m = sized(t, m, 160, 50)
	m.copyFn = func(string) error { return errors.New("no clipboard") }

	m = update(t, m, runes("5"))
	m = update(t, m, runes("y"))
	if !strings.Contains(m.flash, "no clipboard") {
		t.Fatalf("flash = %q", m.flash)
	}
	seq := m.flashSeq
	m = update(t, m, flashDoneMsg{seq: seq - 1})
	if m.flash == "" {
		t.Fatalf("stale flash timer must not clear a newer message")
	}
	m = update(t, m, flashDoneMsg{seq: seq})
	if m.flash != "" {
		t.Fatalf("flash should clear")
	}
}

func TestSearchOpensItem(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	m = sized(t, m, 160, 50)

	m = update(t, m, runes("/"))
	if !m.search.active {
		t.Fatalf("expected search to open")
	}
	m = update(t, m, runes("wifi throughput"))
	h, ok := m.search.selected()
	if !ok || h.Item.ID != "wifi-prediction" {
		t.Fatalf("top hit = %+v ok=%v", h, ok)
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.search.active {
		t.Fatalf("enter should close search")
	}
	inst, ok := m.wm.Get(catalog.FolderProjects)
	if !ok || inst.Minimized || inst.SelectedFile != "wifi-prediction" {
		t.Fatalf("search hit not shown: %+v ok=%v", inst, ok)
	}

	m = update(t, m, runes("/"))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.search.active {
		t.Fatalf("esc should close search")
	}
}

func TestSearchFocusesVisibleWindowShowingFolder(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	m = sized(t, m, 160, 50)
	(&m).activate(mustLauncher(t, "finder"), wm.Point{})
	(&m).activate(mustLauncher(t, "education"), wm.Point{})

	(&m).openSearchHit(catalog.Hit{FolderID: catalog.FolderAbout, Item: catalog.Item{ID: "contact-info"}})
	top, _ := m.wm.Top()
	if top.ID != "finder" || top.SelectedFile != "contact-info" {
		t.Fatalf("top = %+v", top)
	}
	if m.wm.Has(catalog.FolderAbout) {
		t.Fatalf("should reuse the open finder window")
	}
}

func TestThemeToggle(t *testing.T) {
	th := theme.New(theme.ModeDark, failingPersister{}, nil)
	m, _ := newTestModel(t, Options{Theme: th})
	m = sized(t, m, 160, 50)
	(&m).activate(mustLauncher(t, "projects"), wm.Point{})
	before := m.previews["projects"].key

	m = update(t, m, runes("t"))
	if th.IsDark() {
		t.Fatalf("expected light theme")
	}
	if !strings.Contains(m.flash, "not saved") {
		t.Fatalf("flash = %q", m.flash)
	}
	if m.previews["projects"].key == before {
		t.Fatalf("preview should re-render for the new style")
	}
	_ = th.Set(true)
}

type failingPersister struct{}

func (failingPersister) SaveTheme(theme.Mode) error { return errors.New("read-only") }

func TestResizeToMobile(t *testing.T) {
	m, _ := newTestModel(t, Options{CellWidth: 1, CellHeight: 1})
	m = sized(t, m, 1440, 900)
	if !m.info.IsDesktop || viewport.PresetFor(m.info) != viewport.PresetDesktopGrid {
		t.Fatalf("expected desktop grid, got %+v", m.info)
	}
	if !m.wm.DragEnabled() {
		t.Fatalf("drag should be enabled on desktop")
	}

	m = sized(t, m, 375, 667)
	if !m.info.IsMobile || !m.info.IsPortrait {
		t.Fatalf("expected mobile portrait, got %+v", m.info)
	}
	for _, s := range layoutIcons(m.info) {
		if s.rect.X != 1 {
			t.Fatalf("mobile icons should form a single column: %+v", s)
		}
	}
	if m.wm.DragEnabled() {
		t.Fatalf("drag should be inert on mobile")
	}
	for _, g := range visibleDock(true) {
		for _, l := range g {
			if l.Action != actionFolder {
				t.Fatalf("mobile dock shows %q", l.ID)
			}
		}
	}
}

func TestCatalogReload(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	m = sized(t, m, 160, 50)
	(&m).activate(mustLauncher(t, "projects"), wm.Point{})

	next, err := catalog.Parse([]byte(`
folders:
  - id: projects
    name: Projects
    items:
      - id: only
        name: Only Project
        content:
          organization: Acme
`), testNow)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	m = update(t, m, catalogReloadedMsg{cat: next})
	inst, _ := m.wm.Get("projects")
	if inst.SelectedFile != "only" {
		t.Fatalf("selection not repaired: %+v", inst)
	}
	if m.flash != "Catalog reloaded" {
		t.Fatalf("flash = %q", m.flash)
	}

	m = update(t, m, catalogReloadedMsg{err: errors.New("bad yaml")})
	if m.cat != next || !strings.Contains(m.flash, "bad yaml") {
		t.Fatalf("failed reload must keep the old catalog")
	}
}

func TestViewFitsTerminal(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	m = sized(t, m, 120, 40)
	(&m).activate(mustLauncher(t, "about"), wm.Point{X: 8, Y: 2})
	m = update(t, m, runes("?"))

	out := m.View()
	lines := strings.Split(out, "\n")
	if len(lines) != 40 {
		t.Fatalf("view has %d lines, want 40", len(lines))
	}
	for i, ln := range lines {
		if w := xansi.StringWidth(ln); w != 120 {
			t.Fatalf("line %d is %d wide", i, w)
		}
	}
	if !strings.Contains(xansi.Strip(out), brandName) {
		t.Fatalf("menu bar missing")
	}
}

func TestViewStaysCompact(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	m = sized(t, m, 120, 40)
	for _, id := range []string{"about", "projects", "education", "events"} {
		(&m).activate(mustLauncher(t, id), wm.Point{X: 60, Y: 37})
	}
	m = update(t, m, runes("?"))

	start := time.Now()
	out := m.View()
	if d := time.Since(start); d > time.Second {
		t.Fatalf("View took %s", d)
	}
	if limit := 120 * 40 * 64; len(out) > limit {
		t.Fatalf("view is %d bytes, limit %d", len(out), limit)
	}
	// Redrawing must not depend on what earlier frames produced.
	if again := m.View(); len(again) != len(out) {
		t.Fatalf("second frame is %d bytes, first was %d", len(again), len(out))
	}
}

func TestDesktopIconDrag(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	m = sized(t, m, 160, 50)

	icon := m.icons()[0]
	x, y := icon.rect.X+1, icon.rect.Y+menuBarHeight
	m = update(t, m, press(x, y))
	m = update(t, m, motion(x+30, y+10))
	m = update(t, m, release(x+30, y+10))
	if got, want := m.icons()[0].rect.Min(), icon.rect.Min().Add(wm.Point{X: 30, Y: 10}); got != want {
		t.Fatalf("icon at %+v, want %+v", got, want)
	}
	if n := len(m.wm.Instances()); n != 0 {
		t.Fatalf("dragging an icon must not open it, have %d windows", n)
	}

	// Far past the edge: clamped to the desktop, and blur ends the drag.
	x, y = x+30, y+10
	m = update(t, m, press(x, y))
	m = update(t, m, motion(500, 500))
	m = update(t, m, tea.BlurMsg{})
	m = update(t, m, motion(3, 3))
	m = update(t, m, release(3, 3))
	want := wm.Point{X: m.width - iconW, Y: m.deskHeight() - iconH}
	moved := m.icons()[0]
	if moved.rect.Min() != want {
		t.Fatalf("icon at %+v, want %+v", moved.rect.Min(), want)
	}
	if n := len(m.wm.Instances()); n != 0 {
		t.Fatalf("a cancelled drag must not open the icon")
	}

	// Press and release without motion opens it from where it sits now.
	x, y = moved.rect.X+1, moved.rect.Y+menuBarHeight
	m = update(t, m, press(x, y))
	m = update(t, m, release(x, y))
	inst, ok := m.wm.Get(moved.launcher.ID)
	if !ok || inst.Origin != moved.rect.Center() {
		t.Fatalf("click should open %q from its icon: %+v ok=%v", moved.launcher.ID, inst, ok)
	}

	// A new preset puts every icon back in its slot.
	m = update(t, m, runes("w"))
	m = sized(t, m, 60, 50)
	if viewport.PresetFor(m.info) != viewport.PresetMobileColumn {
		t.Fatalf("expected the mobile preset, got %+v", m.info)
	}
	preset := layoutIcons(m.info)
	for i, s := range m.icons() {
		if s.rect != preset[i].rect {
			t.Fatalf("icon %q at %+v, preset %+v", s.launcher.ID, s.rect, preset[i].rect)
		}
	}

	// Touch viewports open on press.
	second := m.icons()[1]
	m = update(t, m, press(second.rect.X+1, second.rect.Y+menuBarHeight))
	if !m.wm.Has(second.launcher.ID) || m.iconDrag != nil {
		t.Fatalf("press on a touch viewport should open %q", second.launcher.ID)
	}
}

func TestCloseAndMinimizeShrinkToOrigin(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	m = sized(t, m, 160, 50)
	origin := wm.Point{X: 80, Y: 47}
	(&m).activate(mustLauncher(t, "projects"), origin)
	inst, _ := m.wm.Get("projects")

	mm, cmd := m.Update(runes("w"))
	m = mm.(appModel)
	if m.wm.Has("projects") {
		t.Fatalf("w should close")
	}
	e, ok := m.exits["projects"]
	if !ok || cmd == nil || e.inst.Frame() != inst.Frame() || e.inst.Origin != origin {
		t.Fatalf("close should start a shrink from the last frame: %+v ok=%v", e, ok)
	}

	r := e.inst.SpawnFrame(1 - 1.0/animFrames)
	lines := strings.Split(m.View(), "\n")
	tl, _, _, _, _, _ := glyphBox()
	if got := xansi.Strip(xansi.Cut(lines[r.Y+menuBarHeight], r.X, r.X+1)); got != tl {
		t.Fatalf("outline corner at %+v is %q", r, got)
	}

	for i := 1; i < animFrames; i++ {
		m = update(t, m, exitTickMsg{id: "projects"})
	}
	if _, ok := m.exits["projects"]; !ok {
		t.Fatalf("shrink ended early")
	}
	m = update(t, m, exitTickMsg{id: "projects"})
	if _, ok := m.exits["projects"]; ok {
		t.Fatalf("shrink should end after %d frames", animFrames)
	}

	// Minimizing shrinks too; reopening cancels the shrink.
	(&m).activate(mustLauncher(t, "projects"), origin)
	m = update(t, m, runes("m"))
	if got, _ := m.wm.Get("projects"); !got.Minimized {
		t.Fatalf("m should minimize")
	}
	if _, ok := m.exits["projects"]; !ok {
		t.Fatalf("minimize should shrink the window")
	}
	(&m).activate(mustLauncher(t, "projects"), origin)
	if _, ok := m.exits["projects"]; ok {
		t.Fatalf("restore should cancel the shrink")
	}
	(&m).activate(mustLauncher(t, "projects"), origin)
	if _, ok := m.exits["projects"]; !ok {
		t.Fatalf("repeat launcher click should shrink the window")
	}
}
