package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"

	"deskfolio/internal/catalog"
	"deskfolio/internal/wm"
)

// Title bar control columns, relative to the window's left edge.
const (
	ctrlCloseX    = 1
	ctrlMinimizeX = 3
	ctrlZoomX     = 5

	finderWideMinWidth = 64
)

// finderLayout is the pane geometry of a Finder window in window-local cells. Rendering
// and hit-testing both derive from it.
type finderLayout struct {
	wide bool

	sidebar wm.Rect
	list    wm.Rect
	preview wm.Rect

	// folderBar is the narrow-mode folder switcher row.
	folderBar wm.Rect
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	return min(max(v, lo), hi)
}

func layoutFinder(w, h int) finderLayout {
	body := max(h-1, 0)
	if w >= finderWideMinWidth {
		sb := clampInt(w/6, 14, 24)
		lw := clampInt((w-sb-2)*2/5, 24, 56)
		pw := max(w-sb-lw-2, 1)
		return finderLayout{
			wide:    true,
			sidebar: wm.Rect{X: 0, Y: 1, W: sb, H: body},
			list:    wm.Rect{X: sb + 1, Y: 1, W: lw, H: body},
			preview: wm.Rect{X: sb + lw + 2, Y: 1, W: pw, H: body},
		}
	}
	rows := clampInt((h-2)/3, 3, 9)
	listY := 2
	previewY := listY + rows + 1
	return finderLayout{
		folderBar: wm.Rect{X: 0, Y: 1, W: w, H: 1},
		list:      wm.Rect{X: 0, Y: listY, W: w, H: rows},
		preview:   wm.Rect{X: 0, Y: previewY, W: w, H: max(h-previewY, 0)},
	}
}

// listRows is how many item rows fit below the list header.
func (l finderLayout) listRows() int {
	if l.wide {
		return max(l.list.H-1, 0)
	}
	return l.list.H
}

// listTop is the first item row.
func (l finderLayout) listTop() int {
	if l.wide {
		return l.list.Y + 1
	}
	return l.list.Y
}

// listOffset keeps the selected row visible.
func listOffset(selected, rows int) int {
	if rows <= 0 || selected < rows {
		return 0
	}
	return selected - rows + 1
}

type hitKind int

const (
	hitNone hitKind = iota
	hitClose
	hitMinimize
	hitZoom
	hitTitle
	hitFolder
	hitFolderPrev
	hitFolderNext
	hitItem
	hitPreview
)

type finderHit struct {
	kind  hitKind
	index int
}

// hitFinder resolves a window-local point to the control or row under it.
func hitFinder(inst wm.Instance, cat *catalog.Catalog, p wm.Point) finderHit {
	if p.Y == 0 {
		switch p.X {
		case ctrlCloseX:
			return finderHit{kind: hitClose}
		case ctrlMinimizeX:
			return finderHit{kind: hitMinimize}
		case ctrlZoomX:
			return finderHit{kind: hitZoom}
		}
		return finderHit{kind: hitTitle}
	}
	l := layoutFinder(inst.Size.W, inst.Size.H)
	switch {
	case l.wide && l.sidebar.Contains(p):
		i := p.Y - l.sidebar.Y - 1
		if i >= 0 && i < len(cat.Folders()) {
			return finderHit{kind: hitFolder, index: i}
		}
	case !l.wide && l.folderBar.Contains(p):
		if p.X < l.folderBar.W/3 {
			return finderHit{kind: hitFolderPrev}
		}
		if p.X >= l.folderBar.W-l.folderBar.W/3 {
			return finderHit{kind: hitFolderNext}
		}
	case l.list.Contains(p):
		items := cat.Items(inst.SelectedFolder)
		rows := l.listRows()
		off := listOffset(indexOfItem(items, inst.SelectedFile), rows)
		i := p.Y - l.listTop()
		if i >= 0 && i < rows && off+i < len(items) {
			return finderHit{kind: hitItem, index: off + i}
		}
	case l.preview.Contains(p):
		return finderHit{kind: hitPreview}
	}
	return finderHit{kind: hitNone}
}

func indexOfItem(items []catalog.Item, id string) int {
	for i, it := range items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

func indexOfFolder(folders []catalog.Folder, id string) int {
	for i, f := range folders {
		if f.ID == id {
			return i
		}
	}
	return -1
}

// renderFinder draws one window. preview is the already-sized preview pane content.
func renderFinder(inst wm.Instance, cat *catalog.Catalog, focused bool, preview string) string {
	w, h := inst.Size.W, inst.Size.H
	if w <= 0 || h <= 0 {
		return ""
	}
	l := layoutFinder(w, h)
	surface := lipgloss.NewStyle().Background(colorSurfaceBg).Foreground(colorSurfaceFg)

	c := newCanvas(w, h, surface.Render(strings.Repeat(" ", w)))
	c.setLines(0, renderTitleBar(inst, cat, focused, w))

	if l.wide {
		c.overlay(l.sidebar.X, l.sidebar.Y, renderSidebar(cat, inst.SelectedFolder, l.sidebar.W, l.sidebar.H))
		sep := renderSeparator(l.sidebar.H)
		c.overlay(l.sidebar.X+l.sidebar.W, l.sidebar.Y, sep)
		c.overlay(l.list.X+l.list.W, l.list.Y, sep)
	} else {
		c.overlay(0, l.folderBar.Y, renderFolderBar(cat, inst.SelectedFolder, w))
		rule := lipgloss.NewStyle().Foreground(colorSeparator).Render(strings.Repeat(glyphHRule(), w))
		c.overlay(0, l.list.Y+l.list.H, rule)
	}
	c.overlay(l.list.X, l.list.Y, renderItemList(cat.Items(inst.SelectedFolder), inst.SelectedFile, l))
	if l.preview.W > 0 && l.preview.H > 0 {
		c.overlay(l.preview.X, l.preview.Y, normalizePane(preview, l.preview.W, l.preview.H))
	}
	return c.String()
}

func renderTitleBar(inst wm.Instance, cat *catalog.Catalog, focused bool, w int) string {
	bg := colorTitleInactiveBg
	if focused {
		bg = colorTitleBg
	}
	base := lipgloss.NewStyle().Background(bg).Foreground(colorSurfaceFg)
	dot := func(c lipgloss.AdaptiveColor) string {
		if !focused {
			c = colorMuted
		}
		return lipgloss.NewStyle().Background(bg).Foreground(c).Render(glyphWindowControl())
	}
	controls := base.Render(" ") + dot(colorClose) + base.Render(" ") + dot(colorMinimize) + base.Render(" ") + dot(colorZoom)

	title := folderTitle(cat, inst.SelectedFolder)
	if inst.SelectedFolder == "" {
		title = inst.Title
	}
	title = xansi.Truncate(title, max(w-16, 1), "…")
	titleStyled := base.Bold(focused).Render(title)

	cw := xansi.StringWidth(controls)
	tw := xansi.StringWidth(titleStyled)
	left := max((w-tw)/2, cw+1)
	line := controls + base.Render(strings.Repeat(" ", max(left-cw, 0))) + titleStyled
	if rest := w - xansi.StringWidth(line); rest > 0 {
		line += base.Render(strings.Repeat(" ", rest))
	}
	return fitLine(line, w)
}

func renderSeparator(h int) string {
	st := lipgloss.NewStyle().Foreground(colorSeparator)
	lines := make([]string, h)
	for i := range lines {
		lines[i] = st.Render(glyphVRule())
	}
	return strings.Join(lines, "\n")
}

func renderSidebar(cat *catalog.Catalog, selected string, w, h int) string {
	base := lipgloss.NewStyle().Background(colorSidebarBg).Foreground(colorSurfaceFg).Width(w)
	lines := []string{styleMuted().Background(colorSidebarBg).Width(w).Render(" Favorites")}
	for _, f := range cat.Folders() {
		label := " " + xansi.Truncate(f.Name, max(w-2, 1), "…")
		if f.ID == selected {
			lines = append(lines, base.Background(colorSelectedBg).Foreground(colorSelectedFg).Bold(true).Render(label))
			continue
		}
		lines = append(lines, base.Render(label))
	}
	for len(lines) < h {
		lines = append(lines, base.Render(""))
	}
	return normalizePane(strings.Join(lines, "\n"), w, h)
}

func renderFolderBar(cat *catalog.Catalog, selected string, w int) string {
	name := folderTitle(cat, selected)
	inner := max(w-4, 1)
	mid := lipgloss.PlaceHorizontal(inner, lipgloss.Center, xansi.Truncate(name, inner, "…"))
	st := lipgloss.NewStyle().Background(colorSidebarBg).Foreground(colorSurfaceFg)
	arrow := st.Foreground(colorAccent)
	return fitLine(arrow.Render(" "+glyphPrev())+st.Render(mid)+arrow.Render(glyphNext()+" "), w)
}

func renderItemList(items []catalog.Item, selected string, l finderLayout) string {
	w := l.list.W
	showMeta := w >= 40
	var nameW, dateW, sizeW int
	if showMeta {
		sizeW = 8
		dateW = 14
		nameW = w - dateW - sizeW - 2
	} else {
		nameW = w - 1
	}
	row := func(name, date, size string) string {
		s := " " + fitLine(name, nameW)
		if showMeta {
			s += fitLine(date, dateW) + fitLine(size, sizeW) + " "
		}
		return s
	}

	var lines []string
	if l.wide {
		hdr := styleMuted().Bold(true).Background(colorSurfaceBg)
		lines = append(lines, hdr.Render(fitLine(row("Name", "Last Modified", "Size"), w)))
	}
	if len(items) == 0 {
		lines = append(lines, styleMuted().Render(fitLine(" (empty)", w)))
		return strings.Join(lines, "\n")
	}

	rows := l.listRows()
	sel := indexOfItem(items, selected)
	off := listOffset(sel, rows)
	for i := off; i < len(items) && i < off+rows; i++ {
		it := items[i]
		name := itemGlyph(it.Icon) + " " + it.Name
		text := fitLine(row(name, it.LastModified, it.Size), w)
		st := lipgloss.NewStyle().Foreground(colorSurfaceFg).Background(colorSurfaceBg)
		switch {
		case it.ID == selected:
			st = st.Background(colorSelectedBg).Foreground(colorSelectedFg).Bold(true)
		case i%2 == 1:
			st = st.Background(colorRowAltBg)
		}
		lines = append(lines, st.Render(text))
	}
	return strings.Join(lines, "\n")
}

// renderOutline draws an empty frame; used while a window animates open.
func renderOutline(w, h int) string {
	tl, tr, bl, br, hz, vt := glyphBox()
	st := lipgloss.NewStyle().Foreground(colorAccent)
	if w < 2 || h < 2 {
		return st.Render(strings.Repeat(hz, max(w, 1)))
	}
	lines := make([]string, h)
	lines[0] = st.Render(tl + strings.Repeat(hz, w-2) + tr)
	for i := 1; i < h-1; i++ {
		lines[i] = st.Render(vt) + strings.Repeat(" ", w-2) + st.Render(vt)
	}
	lines[h-1] = st.Render(bl + strings.Repeat(hz, w-2) + br)
	return strings.Join(lines, "\n")
}
