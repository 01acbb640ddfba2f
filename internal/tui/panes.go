package tui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/viewport"
)

// previewPane is the scrollable preview of one window. key identifies the rendered
// content so unchanged panes keep their scroll position.
type previewPane struct {
	vp  viewport.Model
	key string
}

// syncPreviews renders preview content for every window whose selection, width,
// theme or catalog changed, and drops panes of closed windows. It runs from Update so
// View stays cheap.
func (m *appModel) syncPreviews() {
	style := m.theme.MarkdownStyle()
	live := map[string]bool{}
	for _, inst := range m.wm.Instances() {
		live[inst.ID] = true
		l := layoutFinder(inst.Size.W, inst.Size.H)
		w, h := l.preview.W, l.preview.H

		p := m.previews[inst.ID]
		if p == nil {
			p = &previewPane{vp: viewport.New(w, h)}
			m.previews[inst.ID] = p
		}
		p.vp.Width, p.vp.Height = w, h

		key := inst.SelectedFolder + "/" + inst.SelectedFile + ":" + strconv.Itoa(w) + ":" + style + ":" + strconv.Itoa(m.catGen)
		if p.key == key {
			continue
		}
		p.key = key

		content := renderPlaceholder(w)
		if it, folder, ok := m.cat.Item(inst.SelectedFile); ok && folder == inst.SelectedFolder {
			content = renderPreview(it, style, w)
		}
		p.vp.SetContent(content)
		p.vp.GotoTop()
	}
	for id := range m.previews {
		if !live[id] {
			delete(m.previews, id)
		}
	}
}

func (m appModel) previewView(id string) string {
	p := m.previews[id]
	if p == nil {
		return ""
	}
	return p.vp.View()
}

// scrollPreview moves a window's preview by delta lines; negative scrolls up.
func (m *appModel) scrollPreview(id string, delta int) {
	p := m.previews[id]
	if p == nil {
		return
	}
	if delta < 0 {
		p.vp.LineUp(-delta)
		return
	}
	p.vp.LineDown(delta)
}
