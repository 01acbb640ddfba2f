package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"deskfolio/internal/wm"
)

const wheelStep = 3

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		var cmd tea.Cmd
		if m.startup != "" {
			id := m.startup
			m.startup = ""
			if l, ok := lookupLauncher(id); ok {
				cmd = m.activate(l, m.launcherOrigin(id))
			}
		}
		m.syncPreviews()
		return m, cmd

	case tea.KeyMsg:
		return m.updateKey(msg)

	case tea.MouseMsg:
		return m.updateMouse(msg)

	case tea.BlurMsg:
		// The pointer left the terminal; a drag cannot outlive it.
		if id, ok := m.wm.Dragging(); ok {
			m.wm.EndDrag(id)
		}
		m.iconDrag = nil
		return m, nil

	case clockTickMsg:
		m.clock = time.Time(msg)
		return m, nil

	case animTickMsg:
		f, ok := m.anims[msg.id]
		if !ok {
			return m, nil
		}
		f++
		if f >= animFrames || !m.wm.Has(msg.id) {
			delete(m.anims, msg.id)
			return m, nil
		}
		m.anims[msg.id] = f
		return m, animTick(msg.id)

	case exitTickMsg:
		e, ok := m.exits[msg.id]
		if !ok {
			return m, nil
		}
		e.frame++
		if e.frame >= animFrames {
			delete(m.exits, msg.id)
			return m, nil
		}
		m.exits[msg.id] = e
		return m, exitTick(msg.id)

	case flashDoneMsg:
		if msg.seq == m.flashSeq {
			m.flash = ""
		}
		return m, nil

	case urlOpenDoneMsg:
		if msg.err != nil {
			m.log.Warn().Err(msg.err).Str("url", msg.url).Msg("open url")
			return m, m.showFlash("Open failed: " + msg.err.Error())
		}
		return m, nil

	case catalogReloadedMsg:
		if msg.err != nil {
			m.log.Warn().Err(msg.err).Msg("catalog reload")
			return m, m.showFlash("Catalog reload failed: " + msg.err.Error())
		}
		m.cat = msg.cat
		m.catGen++
		m.wm.SetCatalog(msg.cat)
		m.syncPreviews()
		m.log.Info().Int("items", msg.cat.Len()).Msg("catalog reloaded")
		return m, m.showFlash("Catalog reloaded")
	}
	return m, nil
}

func (m appModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.search.active {
		return m.updateSearchKey(msg)
	}
	if m.showHelp && !key.Matches(msg, m.keys.Quit) {
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.Search):
		m.search.open(m.cat)
		return m, textinput.Blink
	case key.Matches(msg, m.keys.Theme):
		return m, m.toggleTheme()
	case key.Matches(msg, m.keys.CycleFocus):
		m.wm.CycleFocus()
		return m, nil
	case key.Matches(msg, m.keys.OpenFolder):
		i := int(msg.String()[0] - '1')
		folders := m.cat.Folders()
		if i >= 0 && i < len(folders) {
			return m, m.activateFolder(folders[i].ID)
		}
		return m, nil
	}

	top, ok := m.wm.Top()
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.PrevFolder):
		return m, m.stepFolder(top.ID, -1)
	case key.Matches(msg, m.keys.NextFolder):
		return m, m.stepFolder(top.ID, 1)
	case key.Matches(msg, m.keys.PrevItem):
		m.stepItem(top.ID, -1)
	case key.Matches(msg, m.keys.NextItem):
		m.stepItem(top.ID, 1)
	case key.Matches(msg, m.keys.Close):
		return m, m.closeWindow(top.ID)
	case key.Matches(msg, m.keys.Minimize):
		return m, m.minimizeWindow(top.ID)
	case key.Matches(msg, m.keys.ScrollUp):
		m.scrollPreview(top.ID, -max(top.Size.H/2, 1))
	case key.Matches(msg, m.keys.ScrollDown):
		m.scrollPreview(top.ID, max(top.Size.H/2, 1))
	case key.Matches(msg, m.keys.CopyLink):
		link := m.selectedLink()
		if link == "" {
			return m, m.showFlash("No link for this item")
		}
		if err := m.copyFn(link); err != nil {
			return m, m.showFlash("Clipboard error: " + err.Error())
		}
		return m, m.showFlash("Copied: " + link)
	case key.Matches(msg, m.keys.OpenLink):
		link := m.selectedLink()
		if link == "" {
			return m, m.showFlash("No link for this item")
		}
		return m, tea.Batch(m.showFlash("Opening "+link), m.openURLFn(link))
	}
	return m, nil
}

func (m appModel) selectedLink() string {
	it, ok := m.selectedItem()
	if !ok {
		return ""
	}
	return it.Preview.PrimaryLink()
}

func (m appModel) updateSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.SearchExit):
		m.search.close()
		return m, nil
	case key.Matches(msg, m.keys.SearchApply):
		h, ok := m.search.selected()
		m.search.close()
		if !ok {
			return m, nil
		}
		return m, m.openSearchHit(h)
	case msg.Type == tea.KeyUp || msg.Type == tea.KeyCtrlP:
		m.search.move(-1)
		return m, nil
	case msg.Type == tea.KeyDown || msg.Type == tea.KeyCtrlN:
		m.search.move(1)
		return m, nil
	}
	var cmd tea.Cmd
	m.search.input, cmd = m.search.input.Update(msg)
	m.search.refresh(m.cat)
	return m, cmd
}

func (m appModel) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	p := wm.Point{X: msg.X, Y: msg.Y - menuBarHeight}

	switch msg.Action {
	case tea.MouseActionMotion:
		if id, ok := m.wm.Dragging(); ok {
			m.wm.UpdateDrag(id, p)
		}
		m.dragIcon(p)
		return m, nil
	case tea.MouseActionRelease:
		if id, ok := m.wm.Dragging(); ok {
			m.wm.EndDrag(id)
		}
		return m, m.dropIcon()
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
		inst, ok := m.wm.TopAt(p)
		if !ok {
			return m, nil
		}
		if hitFinder(inst, m.cat, p.Sub(inst.Position)).kind == hitPreview {
			d := wheelStep
			if msg.Button == tea.MouseButtonWheelUp {
				d = -d
			}
			m.scrollPreview(inst.ID, d)
		}
		return m, nil
	case tea.MouseButtonLeft:
		return m.click(msg, p)
	}
	return m, nil
}

func (m appModel) click(msg tea.MouseMsg, p wm.Point) (tea.Model, tea.Cmd) {
	if m.search.active {
		m.search.close()
		return m, nil
	}
	m.showHelp = false

	if p.Y >= 0 && p.Y < m.deskHeight() {
		if inst, ok := m.wm.TopAt(p); ok {
			return m, m.clickWindow(inst, p)
		}
	}

	if msg.Y == 0 {
		if inBounds(zoneMenuSearch, msg) {
			m.search.open(m.cat)
			return m, textinput.Blink
		}
		if inBounds(zoneMenuTheme, msg) {
			return m, m.toggleTheme()
		}
		for _, l := range menuLaunchers {
			if inBounds(menuZoneID(l.ID), msg) {
				return m, m.activate(l, wm.Point{X: msg.X, Y: 0})
			}
		}
		return m, nil
	}

	for _, g := range visibleDock(m.info.IsMobile) {
		for _, l := range g {
			if inBounds(dockZoneID(l.ID), msg) {
				return m, m.activate(l, m.launcherOrigin(l.ID))
			}
		}
	}
	if p.Y >= 0 && p.Y < m.deskHeight() {
		if s, ok := iconAt(m.icons(), p); ok {
			if m.info.Touch() {
				return m, m.activate(s.launcher, s.rect.Center())
			}
			m.iconDrag = &iconDrag{id: s.launcher.ID, offset: p.Sub(s.rect.Min())}
		}
	}
	return m, nil
}

// dragIcon moves the icon being dragged so it stays under the pointer.
func (m *appModel) dragIcon(p wm.Point) {
	d := m.iconDrag
	if d == nil {
		return
	}
	for _, s := range m.icons() {
		if s.launcher.ID != d.id {
			continue
		}
		next := wm.ClampInto(p.Sub(d.offset), wm.Size{W: s.rect.W, H: s.rect.H}, wm.Size{W: m.width, H: m.deskHeight()})
		if next != s.rect.Min() {
			m.iconPos[d.id] = next
			d.moved = true
		}
		return
	}
}

// dropIcon ends an icon drag. A press released without moving opens the icon.
func (m *appModel) dropIcon() tea.Cmd {
	d := m.iconDrag
	m.iconDrag = nil
	if d == nil || d.moved {
		return nil
	}
	for _, s := range m.icons() {
		if s.launcher.ID == d.id {
			return m.activate(s.launcher, s.rect.Center())
		}
	}
	return nil
}

func inBounds(id string, msg tea.MouseMsg) bool {
	zi := zone.Get(id)
	return zi != nil && zi.InBounds(msg)
}

// clickWindow routes a press inside a window frame. p is in desktop coordinates.
func (m *appModel) clickWindow(inst wm.Instance, p wm.Point) tea.Cmd {
	m.wm.Focus(inst.ID)
	hit := hitFinder(inst, m.cat, p.Sub(inst.Position))
	switch hit.kind {
	case hitClose:
		return m.closeWindow(inst.ID)
	case hitMinimize:
		return m.minimizeWindow(inst.ID)
	case hitTitle:
		m.wm.BeginDrag(inst.ID, p)
	case hitFolder:
		folders := m.cat.Folders()
		if hit.index < len(folders) {
			return m.selectFolder(inst.ID, folders[hit.index].ID)
		}
	case hitFolderPrev:
		return m.stepFolder(inst.ID, -1)
	case hitFolderNext:
		return m.stepFolder(inst.ID, 1)
	case hitItem:
		items := m.cat.Items(inst.SelectedFolder)
		if hit.index < len(items) {
			m.wm.SelectFile(inst.ID, items[hit.index].ID)
			m.syncPreviews()
		}
	}
	return nil
}
