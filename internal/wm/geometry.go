package wm

import "math"

// Point is a position in the manager's coordinate space (terminal cells in the TUI,
// pixels in tests that mirror a browser viewport).
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

type Size struct {
	W int `json:"w"`
	H int `json:"h"`
}

type Rect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

func (r Rect) Min() Point { return Point{X: r.X, Y: r.Y} }

// Contains is half-open: the right and bottom edges are outside.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// Center returns the integer center of r.
func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// ClampInto keeps a box of size s inside vp. When the box is larger than the
// viewport the maximum collapses to 0, pinning the box to the top-left.
func ClampInto(p Point, s, vp Size) Point {
	maxX := max(vp.W-s.W, 0)
	maxY := max(vp.H-s.H, 0)
	return Point{
		X: min(max(p.X, 0), maxX),
		Y: min(max(p.Y, 0), maxY),
	}
}

func lerp(a, b int, t float64) int {
	return a + int(math.Round(float64(b-a)*t))
}
