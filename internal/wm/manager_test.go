package wm

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"deskfolio/internal/catalog"
)

type fakeCatalog map[string][]string

func (f fakeCatalog) HasFolder(id string) bool {
	_, ok := f[id]
	return ok
}

func (f fakeCatalog) FirstItem(id string) (string, bool) {
	items := f[id]
	if len(items) == 0 {
		return "", false
	}
	return items[0], true
}

func (f fakeCatalog) Contains(folder, item string) bool {
	for _, it := range f[folder] {
		if it == item {
			return true
		}
	}
	return false
}

var testCatalog = fakeCatalog{
	"about":    {"profile", "resume", "contact"},
	"projects": {"p1", "p2"},
	"events":   {},
}

func newTestManager() *Manager {
	return New(testCatalog, Config{
		Viewport: Size{W: 1440, H: 900},
		Window:   Size{W: 800, H: 500},
		Cascade:  Point{X: 24, Y: 24},
		// pixel-scale title bar
		TitleBarHeight: 40,
	})
}

func TestOpenOrToggle_Cycle(t *testing.T) {
	t.Parallel()

	m := newTestManager()
	want := []Transition{TransitionOpened, TransitionMinimized, TransitionRestored, TransitionMinimized, TransitionRestored}
	for i, w := range want {
		if got := m.OpenOrToggle("about", "About", "about", Point{}); got != w {
			t.Fatalf("call %d: got %v want %v", i+1, got, w)
		}
		in, ok := m.Get("about")
		if !ok {
			t.Fatalf("call %d: instance missing", i+1)
		}
		if in.Minimized != (w == TransitionMinimized) {
			t.Fatalf("call %d: minimized=%v", i+1, in.Minimized)
		}
		if n := len(m.Instances()); n != 1 {
			t.Fatalf("call %d: expected exactly one instance, got %d", i+1, n)
		}
	}
}

func TestMinimize_OnlyHidesVisibleWindows(t *testing.T) {
	t.Parallel()

	m := newTestManager()
	if m.Minimize("about") {
		t.Fatalf("unknown id should not minimize")
	}
	m.OpenOrToggle("about", "About", "about", Point{X: 10, Y: 20})
	before, _ := m.Get("about")
	if !m.Minimize("about") {
		t.Fatalf("visible window should minimize")
	}
	in, _ := m.Get("about")
	if !in.Minimized || in.Position != before.Position || in.Origin != before.Origin {
		t.Fatalf("minimize changed more than the flag: %+v", in)
	}
	if m.Minimize("about") {
		t.Fatalf("minimizing twice must not restore")
	}
	if in, _ := m.Get("about"); !in.Minimized {
		t.Fatalf("window should stay minimized")
	}
}

func TestOpen_SpawnsCenteredAndCascades(t *testing.T) {
	t.Parallel()

	m := newTestManager()
	m.OpenOrToggle("about", "About", "about", Point{})
	m.OpenOrToggle("projects", "Projects", "projects", Point{})

	a, _ := m.Get("about")
	if a.Position != (Point{X: 320, Y: 200}) {
		t.Fatalf("first window position = %+v", a.Position)
	}
	p, _ := m.Get("projects")
	if p.Position != (Point{X: 344, Y: 224}) {
		t.Fatalf("second window position = %+v", p.Position)
	}
	if p.Z <= a.Z {
		t.Fatalf("newest window should be on top: about z=%d projects z=%d", a.Z, p.Z)
	}
}

func TestOpen_SpawnClampsWhenViewportSmallerThanWindow(t *testing.T) {
	t.Parallel()

	m := New(testCatalog, Config{Viewport: Size{W: 300, H: 200}, Window: Size{W: 800, H: 500}})
	m.OpenOrToggle("about", "About", "about", Point{})
	in, _ := m.Get("about")
	if in.Position != (Point{}) {
		t.Fatalf("expected pinned top-left, got %+v", in.Position)
	}
}

func TestClose_Idempotent(t *testing.T) {
	t.Parallel()

	m := newTestManager()
	m.Close("about")
	if m.Has("about") {
		t.Fatalf("close on empty set created an instance")
	}
	m.OpenOrToggle("about", "About", "about", Point{})
	m.OpenOrToggle("projects", "Projects", "projects", Point{})
	for i := 0; i < 3; i++ {
		m.Close("about")
		if m.Has("about") {
			t.Fatalf("close %d: about still present", i+1)
		}
		if !m.Has("projects") {
			t.Fatalf("close %d: unrelated window removed", i+1)
		}
	}
	for _, in := range m.Instances() {
		if in.ID == "about" {
			t.Fatalf("about leaked into Instances()")
		}
	}
	// reopening after close creates a fresh window
	if got := m.OpenOrToggle("about", "About", "about", Point{}); got != TransitionOpened {
		t.Fatalf("reopen: got %v", got)
	}
}

func TestDrag_OnlyFromTitleBar(t *testing.T) {
	t.Parallel()

	m := newTestManager()
	m.OpenOrToggle("about", "About", "about", Point{})
	in, _ := m.Get("about")

	body := Point{X: in.Position.X + 10, Y: in.Position.Y + 100}
	if m.BeginDrag("about", body) {
		t.Fatalf("drag must not start from the window body")
	}
	if _, ok := m.Dragging(); ok {
		t.Fatalf("unexpected active drag")
	}

	bar := Point{X: in.Position.X + 10, Y: in.Position.Y + 5}
	if !m.BeginDrag("about", bar) {
		t.Fatalf("drag should start from the title bar")
	}
	m.UpdateDrag("about", bar.Add(Point{X: 30, Y: 40}))
	got, _ := m.Get("about")
	if got.Position != in.Position.Add(Point{X: 30, Y: 40}) {
		t.Fatalf("position after drag = %+v", got.Position)
	}
	m.EndDrag("about")
	m.UpdateDrag("about", Point{})
	after, _ := m.Get("about")
	if after.Position != got.Position {
		t.Fatalf("updates after EndDrag must be ignored")
	}
}

func TestDrag_ClampsToViewport(t *testing.T) {
	t.Parallel()

	pointers := []Point{
		{X: -5000, Y: -5000},
		{X: 5000, Y: 5000},
		{X: 5000, Y: -20},
		{X: 700, Y: 450},
		{X: -1, Y: 899},
	}
	m := newTestManager()
	m.OpenOrToggle("about", "About", "about", Point{})
	in, _ := m.Get("about")
	if !m.BeginDrag("about", in.Position) {
		t.Fatalf("BeginDrag failed")
	}
	vp := m.Viewport()
	for _, p := range pointers {
		m.UpdateDrag("about", p)
		got, _ := m.Get("about")
		if got.Position.X < 0 || got.Position.X > vp.W-got.Size.W ||
			got.Position.Y < 0 || got.Position.Y > vp.H-got.Size.H {
			t.Fatalf("pointer %+v left window outside viewport: %+v", p, got.Position)
		}
	}
	m.EndDrag("about")
}

func TestDrag_InertWhenDisabledOrMinimized(t *testing.T) {
	t.Parallel()

	m := newTestManager()
	m.OpenOrToggle("about", "About", "about", Point{})
	in, _ := m.Get("about")

	if !m.BeginDrag("about", in.Position) {
		t.Fatalf("BeginDrag failed")
	}
	m.SetDragEnabled(false)
	if _, ok := m.Dragging(); ok {
		t.Fatalf("disabling drag must end the active drag")
	}
	m.UpdateDrag("about", Point{X: 10, Y: 10})
	if m.BeginDrag("about", in.Position) {
		t.Fatalf("BeginDrag must be inert while disabled")
	}
	got, _ := m.Get("about")
	if got.Position != in.Position {
		t.Fatalf("position changed while drag disabled")
	}

	m.SetDragEnabled(true)
	m.OpenOrToggle("about", "About", "about", Point{}) // minimize
	if m.BeginDrag("about", in.Position) {
		t.Fatalf("minimized window must not be draggable")
	}
	if m.BeginDrag("missing", Point{}) {
		t.Fatalf("unknown id must not be draggable")
	}
}

func TestDrag_MinimizeAndCloseEndDrag(t *testing.T) {
	t.Parallel()

	m := newTestManager()
	m.OpenOrToggle("about", "About", "about", Point{})
	in, _ := m.Get("about")
	m.BeginDrag("about", in.Position)
	m.OpenOrToggle("about", "About", "about", Point{})
	if _, ok := m.Dragging(); ok {
		t.Fatalf("minimize should end drag")
	}
	m.OpenOrToggle("about", "About", "about", Point{})
	m.BeginDrag("about", in.Position)
	m.Close("about")
	if _, ok := m.Dragging(); ok {
		t.Fatalf("close should end drag")
	}
}

func TestSelectFolder(t *testing.T) {
	t.Parallel()

	m := newTestManager()
	m.OpenOrToggle("w", "W", "about", Point{})

	in, _ := m.Get("w")
	if in.SelectedFile != "profile" {
		t.Fatalf("open should auto-select first item, got %q", in.SelectedFile)
	}

	m.SelectFolder("w", "projects")
	in, _ = m.Get("w")
	if in.SelectedFolder != "projects" || in.SelectedFile != "p1" {
		t.Fatalf("got %s/%s", in.SelectedFolder, in.SelectedFile)
	}

	m.SelectFolder("w", "events")
	in, _ = m.Get("w")
	if in.SelectedFolder != "events" || in.SelectedFile != "" {
		t.Fatalf("empty folder: got %s/%q", in.SelectedFolder, in.SelectedFile)
	}

	m.SelectFolder("w", "nope")
	in, _ = m.Get("w")
	if in.SelectedFolder != "events" {
		t.Fatalf("unknown folder must be ignored, got %s", in.SelectedFolder)
	}

	m.SelectFolder("missing", "about")
	if m.Has("missing") {
		t.Fatalf("SelectFolder must not create windows")
	}
}

func TestSelectFile_NonMemberIsNoop(t *testing.T) {
	t.Parallel()

	m := newTestManager()
	m.OpenOrToggle("w", "W", "about", Point{})
	m.SelectFile("w", "contact")
	in, _ := m.Get("w")
	if in.SelectedFile != "contact" {
		t.Fatalf("member select failed: %q", in.SelectedFile)
	}

	before, _ := m.Get("w")
	for _, id := range []string{"p1", "", "missing"} {
		m.SelectFile("w", id)
		after, _ := m.Get("w")
		if after != before {
			t.Fatalf("SelectFile(%q) changed state: %+v -> %+v", id, before, after)
		}
	}
	m.SelectFile("missing", "p1")
}

func TestFocusAndTopAt(t *testing.T) {
	t.Parallel()

	m := newTestManager()
	m.OpenOrToggle("a", "A", "about", Point{})
	m.OpenOrToggle("b", "B", "projects", Point{})

	a, _ := m.Get("a")
	overlap := Point{X: a.Position.X + 30, Y: a.Position.Y + 30}
	if top, _ := m.TopAt(overlap); top.ID != "b" {
		t.Fatalf("expected b on top, got %s", top.ID)
	}
	m.Focus("a")
	if top, _ := m.TopAt(overlap); top.ID != "a" {
		t.Fatalf("expected a on top after focus, got %s", top.ID)
	}
	if id, _ := m.CycleFocus(); id != "b" {
		t.Fatalf("CycleFocus raised %s", id)
	}
	m.OpenOrToggle("b", "B", "projects", Point{})
	if top, _ := m.TopAt(overlap); top.ID != "a" {
		t.Fatalf("minimized windows must not be hit, got %s", top.ID)
	}
	if _, ok := m.TopAt(Point{X: 0, Y: 0}); ok {
		t.Fatalf("expected no window at the corner")
	}
	if vis := m.Visible(); len(vis) != 1 || vis[0].ID != "a" {
		t.Fatalf("Visible() = %+v", vis)
	}
}

func TestSetViewport_Reclamps(t *testing.T) {
	t.Parallel()

	m := newTestManager()
	m.OpenOrToggle("a", "A", "about", Point{})
	in, _ := m.Get("a")
	m.BeginDrag("a", in.Position)
	m.UpdateDrag("a", Point{X: 640, Y: 400})
	m.EndDrag("a")

	m.SetViewport(Size{W: 375, H: 667}, Size{W: 375, H: 600})
	got, _ := m.Get("a")
	if got.Size != (Size{W: 375, H: 600}) {
		t.Fatalf("size not updated: %+v", got.Size)
	}
	if got.Position.X != 0 || got.Position.Y < 0 || got.Position.Y > 67 {
		t.Fatalf("position not clamped: %+v", got.Position)
	}
}

func TestJump(t *testing.T) {
	t.Parallel()

	m := newTestManager()
	m.OpenOrToggle("about", "About", "about", Point{X: 10, Y: 20})
	if got := m.Jump("about", "projects", "Projects", "projects"); got != TransitionOpened {
		t.Fatalf("Jump: %v", got)
	}
	if m.Has("about") {
		t.Fatalf("source window should be closed")
	}
	p, _ := m.Get("projects")
	if p.Origin != (Point{X: 10, Y: 20}) || p.SelectedFile != "p1" {
		t.Fatalf("jumped window = %+v", p)
	}

	m.Jump("projects", "projects", "Projects", "about")
	p, _ = m.Get("projects")
	if p.SelectedFolder != "about" {
		t.Fatalf("self jump should switch folder, got %s", p.SelectedFolder)
	}
}

func TestSetCatalog_RepairsSelections(t *testing.T) {
	t.Parallel()

	m := newTestManager()
	m.OpenOrToggle("a", "A", "projects", Point{})
	m.SelectFile("a", "p2")

	m.SetCatalog(fakeCatalog{"projects": {"p3", "p2"}})
	in, _ := m.Get("a")
	if in.SelectedFile != "p2" {
		t.Fatalf("valid selection should survive, got %q", in.SelectedFile)
	}
	m.SetCatalog(fakeCatalog{"projects": {"p9"}})
	in, _ = m.Get("a")
	if in.SelectedFile != "p9" {
		t.Fatalf("stale selection should fall back to first item, got %q", in.SelectedFile)
	}
	m.SetCatalog(fakeCatalog{})
	in, _ = m.Get("a")
	if in.SelectedFile != "" {
		t.Fatalf("missing folder should clear selection, got %q", in.SelectedFile)
	}
}

func TestSpawnFrame(t *testing.T) {
	t.Parallel()

	m := newTestManager()
	m.OpenOrToggle("a", "A", "about", Point{X: 400, Y: 760})
	in, _ := m.Get("a")

	start, ok := m.SpawnFrame("a", 0)
	if !ok {
		t.Fatalf("SpawnFrame missing")
	}
	if start.W != 80 || start.H != 50 || start.Center() != (Point{X: 400, Y: 760}) {
		t.Fatalf("start frame = %+v", start)
	}
	end, _ := m.SpawnFrame("a", 1)
	if end != in.Frame() {
		t.Fatalf("end frame = %+v want %+v", end, in.Frame())
	}
	over, _ := m.SpawnFrame("a", 7)
	if over != end {
		t.Fatalf("t should clamp to 1")
	}
	if _, ok := m.SpawnFrame("missing", 0.5); ok {
		t.Fatalf("unknown id should report false")
	}

	// A snapshot keeps animating after the window is gone.
	m.Close("a")
	if got := in.SpawnFrame(0); got != start {
		t.Fatalf("closed snapshot start = %+v want %+v", got, start)
	}
}

func TestTransitionsAreLogged(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := zerolog.New(&buf).Level(zerolog.DebugLevel)
	m := New(testCatalog, Config{Viewport: Size{W: 100, H: 50}, Window: Size{W: 40, H: 20}, Logger: &log})
	m.OpenOrToggle("a", "A", "about", Point{})
	m.Close("a")

	out := buf.String()
	for _, want := range []string{`"transition":"opened"`, `"transition":"closed"`, `"component":"wm"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("log missing %s:\n%s", want, out)
		}
	}
}

// Launcher "projects" clicked at (400,760) three times against the shipped catalog.
func TestScenario_ProjectsLauncherToggle(t *testing.T) {
	t.Parallel()

	cat, err := catalog.Default(time.Now())
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	m := New(cat, Config{Viewport: Size{W: 1440, H: 900}, Window: Size{W: 900, H: 560}})
	origin := Point{X: 400, Y: 760}

	m.OpenOrToggle("projects", "Projects", catalog.FolderProjects, origin)
	insts := m.Instances()
	if len(insts) != 1 {
		t.Fatalf("expected one instance, got %d", len(insts))
	}
	in := insts[0]
	first, _ := cat.FirstItem(catalog.FolderProjects)
	if in.ID != "projects" || in.Origin != origin || in.SelectedFolder != "projects" ||
		in.SelectedFile != first || in.Minimized {
		t.Fatalf("after first click: %+v", in)
	}
	if first != "ml-pipeline" {
		t.Fatalf("first project id = %q", first)
	}
	openPos := in.Position

	m.OpenOrToggle("projects", "Projects", catalog.FolderProjects, origin)
	in, _ = m.Get("projects")
	if !in.Minimized {
		t.Fatalf("second click should minimize")
	}

	m.OpenOrToggle("projects", "Projects", catalog.FolderProjects, origin)
	in, _ = m.Get("projects")
	if in.Minimized || in.Position != openPos || in.Origin != origin {
		t.Fatalf("third click: %+v (position before %+v)", in, openPos)
	}
}
