// Package maze provides the maze grid, its text form, and the procedural
// generator that produces solvable grids for the raycasting game.
// It has no terminal or UI dependencies so it can be tested in isolation.
package maze

import (
	"errors"
	"fmt"
	"strings"
)

// Cell is the content of a single grid square.
type Cell uint8

const (
	Wall Cell = iota
	Empty
	Start
	Exit
)

// String returns a human-readable name for the cell kind.
func (c Cell) String() string {
	switch c {
	case Wall:
		return "Wall"
	case Empty:
		return "Empty"
	case Start:
		return "Start"
	case Exit:
		return "Exit"
	default:
		return "Unknown"
	}
}

// Passable reports whether a walker may stand on the cell.
func (c Cell) Passable() bool {
	return c == Empty || c == Start || c == Exit
}

// Point is an integer grid coordinate.
type Point struct {
	X, Y int
}

// Manhattan returns the 4-connected distance between two points.
func (p Point) Manhattan(o Point) int {
	return abs(p.X-o.X) + abs(p.Y-o.Y)
}

// Errors returned when a grid lacks a required marker.
var (
	ErrNoStart = errors.New("maze: grid has no start cell")
	ErrNoExit  = errors.New("maze: grid has no exit cell")
)

// Grid is a row-major width x height array of cells.
type Grid struct {
	width  int
	height int
	cells  []Cell
}

// NewGrid allocates a grid filled with walls.
func NewGrid(width, height int) *Grid {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	// Wall is the zero value.
	return &Grid{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
	}
}

// Width returns the number of columns.
func (g *Grid) Width() int {
	return g.width
}

// Height returns the number of rows.
func (g *Grid) Height() int {
	return g.height
}

// Dimensions returns (width, height).
func (g *Grid) Dimensions() (int, int) {
	return g.width, g.height
}

// InBounds reports whether (x, y) lies inside the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// CellAt returns the cell at (x, y). Out-of-bounds coordinates read as Wall.
func (g *Grid) CellAt(x, y int) Cell {
	if !g.InBounds(x, y) {
		return Wall
	}
	return g.cells[y*g.width+x]
}

// Set writes a cell. Out-of-bounds coordinates are silently ignored.
func (g *Grid) Set(x, y int, c Cell) {
	if !g.InBounds(x, y) {
		return
	}
	g.cells[y*g.width+x] = c
}

// Fill sets every cell of the grid to c.
func (g *Grid) Fill(c Cell) {
	for i := range g.cells {
		g.cells[i] = c
	}
}

// Find returns the first cell of the given kind in row-major order.
func (g *Grid) Find(c Cell) (Point, bool) {
	for i, v := range g.cells {
		if v == c {
			return Point{X: i % g.width, Y: i / g.width}, true
		}
	}
	return Point{}, false
}

// Count returns how many cells of the given kind the grid contains.
func (g *Grid) Count(c Cell) int {
	n := 0
	for _, v := range g.cells {
		if v == c {
			n++
		}
	}
	return n
}

// StartPoint returns the player start cell or ErrNoStart.
func (g *Grid) StartPoint() (Point, error) {
	p, ok := g.Find(Start)
	if !ok {
		return Point{}, ErrNoStart
	}
	return p, nil
}

// ExitPoint returns the exit cell or ErrNoExit.
func (g *Grid) ExitPoint() (Point, error) {
	p, ok := g.Find(Exit)
	if !ok {
		return Point{}, ErrNoExit
	}
	return p, nil
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	c := &Grid{width: g.width, height: g.height, cells: make([]Cell, len(g.cells))}
	copy(c.cells, g.cells)
	return c
}

// Equal reports whether two grids have identical dimensions and content.
func (g *Grid) Equal(o *Grid) bool {
	if g.width != o.width || g.height != o.height {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// countOpenNeighbors counts passable 4-neighbors of (x, y).
func (g *Grid) countOpenNeighbors(x, y int) int {
	n := 0
	for _, d := range dirs4 {
		if g.CellAt(x+d.X, y+d.Y).Passable() {
			n++
		}
	}
	return n
}

// countNeighbors counts 4-neighbors of (x, y) holding exactly c.
func (g *Grid) countNeighbors(x, y int, c Cell) int {
	n := 0
	for _, d := range dirs4 {
		nx, ny := x+d.X, y+d.Y
		if g.InBounds(nx, ny) && g.CellAt(nx, ny) == c {
			n++
		}
	}
	return n
}

// Glyphs maps cells to the characters used in the text dump.
var Glyphs = map[Cell]rune{
	Wall:  '#',
	Empty: ' ',
	Start: 'S',
	Exit:  '0',
}

// Text renders the full grid, one row per line.
func (g *Grid) Text() string {
	var sb strings.Builder
	sb.Grow((g.width + 1) * g.height)
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			sb.WriteRune(Glyphs[g.CellAt(x, y)])
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// String returns a short description; use Text for the full dump.
func (g *Grid) String() string {
	return fmt.Sprintf("Grid(%dx%d)", g.width, g.height)
}

// ParseGrid reads a grid from its text form. Rows may be ragged; short rows
// are padded with walls. Both '0' and 'E' are accepted as the exit glyph.
func ParseGrid(text string) (*Grid, error) {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	if len(lines) == 0 || (len(lines) == 1 && lines[0] == "") {
		return nil, errors.New("maze: empty grid text")
	}

	width := 0
	for _, line := range lines {
		if n := len([]rune(strings.TrimRight(line, "\r"))); n > width {
			width = n
		}
	}

	g := NewGrid(width, len(lines))
	for y, line := range lines {
		for x, r := range []rune(strings.TrimRight(line, "\r")) {
			switch r {
			case '#':
				g.Set(x, y, Wall)
			case ' ', '.':
				g.Set(x, y, Empty)
			case 'S':
				g.Set(x, y, Start)
			case '0', 'E':
				g.Set(x, y, Exit)
			default:
				return nil, fmt.Errorf("maze: unexpected glyph %q at (%d, %d)", r, x, y)
			}
		}
	}

	if n := g.Count(Start); n != 1 {
		return nil, fmt.Errorf("maze: grid must have exactly one start, found %d", n)
	}
	if n := g.Count(Exit); n != 1 {
		return nil, fmt.Errorf("maze: grid must have exactly one exit, found %d", n)
	}
	return g, nil
}

var dirs4 = [4]Point{{0, 1}, {1, 0}, {0, -1}, {-1, 0}}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
