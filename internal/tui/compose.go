package tui

import (
	"strings"
	"unicode/utf8"

	xansi "github.com/charmbracelet/x/ansi"
)

const ansiReset = "\x1b[0m"

// normalizePane forces s to be exactly width columns wide (ANSI-aware) and height
// lines tall.
func normalizePane(s string, width, height int) string {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}

	lines := strings.Split(s, "\n")
	if height > 0 {
		if len(lines) > height {
			lines = lines[:height]
		}
		for len(lines) < height {
			lines = append(lines, "")
		}
	}

	for i := range lines {
		lines[i] = fitLine(lines[i], width)
	}
	return strings.Join(lines, "\n")
}

// fitLine truncates or pads ln to exactly width columns.
func fitLine(ln string, width int) string {
	if width <= 0 {
		return ""
	}
	w := xansi.StringWidth(ln)
	if w > width {
		if width == 1 {
			ln = xansi.Cut(ln, 0, 1)
		} else {
			ln = xansi.Cut(ln, 0, width-1) + "…"
		}
		w = xansi.StringWidth(ln)
	}
	if w < width {
		ln += strings.Repeat(" ", width-w)
	}
	return ln
}

// canvas is a fixed-size grid of styled lines that blocks can be stamped onto.
type canvas struct {
	width int
	lines []string
}

func newCanvas(width, height int, fill string) *canvas {
	c := &canvas{width: width, lines: make([]string, height)}
	base := fitLine(fill, width)
	for i := range c.lines {
		c.lines[i] = base
	}
	return c
}

// setLines replaces rows starting at y with the lines of block, padded to the canvas width.
func (c *canvas) setLines(y int, block string) {
	for i, ln := range strings.Split(block, "\n") {
		row := y + i
		if row < 0 || row >= len(c.lines) {
			continue
		}
		c.lines[row] = fitLine(ln, c.width)
	}
}

// overlay draws block with its top-left corner at (x, y). Parts outside the canvas
// are clipped.
func (c *canvas) overlay(x, y int, block string) {
	for i, ln := range strings.Split(block, "\n") {
		row := y + i
		if row < 0 || row >= len(c.lines) {
			continue
		}
		c.lines[row] = spliceLine(c.lines[row], ln, x, c.width)
	}
}

func (c *canvas) String() string {
	return strings.Join(c.lines, "\n")
}

// spliceLine replaces the columns [x, x+width(seg)) of base with seg, keeping the
// result exactly width columns wide. Escapes inside the replaced span are dropped.
func spliceLine(base, seg string, x, width int) string {
	segW := xansi.StringWidth(seg)
	if x < 0 {
		if -x >= segW {
			return base
		}
		seg = sliceCols(seg, -x, segW)
		segW += x
		x = 0
	}
	if x >= width || segW == 0 {
		return base
	}
	if x+segW > width {
		seg = sliceCols(seg, 0, width-x)
		segW = width - x
	}
	left := sliceCols(base, 0, x)
	if lw := xansi.StringWidth(left); lw < x {
		left += strings.Repeat(" ", x-lw)
	}
	right := sliceCols(base, x+segW, width)
	if rw, want := xansi.StringWidth(right), width-x-segW; rw < want {
		right += strings.Repeat(" ", want-rw)
	}
	return left + ansiReset + seg + ansiReset + right + ansiReset
}

// sliceCols returns the columns [from, to) of s. SGR sequences before the span are
// folded into the state replayed in front of it; SGR sequences after it are dropped,
// other escapes touching the span (zone markers) are kept. Wide cells cut by either
// edge become spaces.
func sliceCols(s string, from, to int) string {
	var out, state strings.Builder
	col := 0
	cells, kept := false, false
	for i := 0; i < len(s) && col <= to; {
		if s[i] == 0x1b {
			seq := s[i : i+escapeLen(s[i:])]
			i += len(seq)
			sgr := strings.HasPrefix(seq, "\x1b[") && strings.HasSuffix(seq, "m")
			switch {
			case col <= from && sgr:
				if seq == ansiReset || seq == "\x1b[m" {
					state.Reset()
				} else {
					state.WriteString(seq)
				}
			case col < from:
			case col < to || !sgr:
				out.WriteString(seq)
			}
			continue
		}
		_, size := utf8.DecodeRuneInString(s[i:])
		cell := s[i : i+size]
		i += size
		w := xansi.StringWidth(cell)
		if w == 0 {
			if kept {
				out.WriteString(cell)
			}
			continue
		}
		start, end := col, col+w
		col = end
		kept = false
		switch {
		case end <= from || start >= to:
		case start >= from && end <= to:
			out.WriteString(cell)
			cells, kept = true, true
		default:
			out.WriteString(strings.Repeat(" ", min(end, to)-max(start, from)))
			cells = true
		}
	}
	if !cells {
		return out.String()
	}
	return state.String() + out.String()
}

// escapeLen is the byte length of the escape sequence at the start of s.
func escapeLen(s string) int {
	if len(s) < 2 {
		return len(s)
	}
	switch s[1] {
	case '[':
		j := 2
		for j < len(s) && (s[j] < 0x40 || s[j] > 0x7e) {
			j++
		}
		return min(j+1, len(s))
	case ']', 'P', '_', '^':
		for j := 2; j < len(s); j++ {
			if s[j] == 0x07 {
				return j + 1
			}
			if s[j] == 0x1b && j+1 < len(s) && s[j+1] == '\\' {
				return j + 2
			}
		}
		return len(s)
	default:
		return 2
	}
}
