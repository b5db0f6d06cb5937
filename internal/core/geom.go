// Package core provides the types shared by the maze game and the terminal
// platform: the cell screen buffer, colors, input frames and run metadata.
// It has no Bubble Tea dependency so game logic stays testable.
package core

// Rect is an area of screen cells.
type Rect struct {
	X, Y int // top-left cell
	W, H int
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate just past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate just past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains reports whether the cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Centered returns a w×h rect centered in r. Sizes larger than r are cut
// down to fit.
func (r Rect) Centered(w, h int) Rect {
	w = Clamp(w, 0, r.W)
	h = Clamp(h, 0, r.H)
	return Rect{X: r.X + (r.W-w)/2, Y: r.Y + (r.H-h)/2, W: w, H: h}
}

// TopRight returns a w×h rect in the top-right corner of r.
func (r Rect) TopRight(w, h int) Rect {
	w = Clamp(w, 0, r.W)
	h = Clamp(h, 0, r.H)
	return Rect{X: r.Right() - w, Y: r.Y, W: w, H: h}
}

// Clamp restricts a value to be within [lo, hi].
func Clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// ClampF restricts a float64 value to be within [lo, hi].
func ClampF(val, lo, hi float64) float64 {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
