package maze

import (
	"errors"
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"
)

// DefaultMaxCells caps grid area. Larger requests fail with ErrGridTooLarge
// instead of attempting the allocation.
const DefaultMaxCells = 1 << 20

// Generation errors.
var (
	ErrGenerationFailed = errors.New("maze: generation failed")
	ErrGridTooLarge     = errors.New("maze: grid too large")
	ErrInvalidParams    = errors.New("maze: invalid parameters")

	errNoExitCandidate = errors.New("no empty cell available for the exit")
	errStartLost       = errors.New("exit room overwrote the start cell")
	errUnsolvable      = errors.New("exit not reachable from start")
)

// GenerationError is returned once every attempt has failed.
type GenerationError struct {
	Width    int
	Height   int
	Attempts int
	Last     error // reason the final attempt failed
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("maze: no playable %dx%d level after %d attempts: %v",
		e.Width, e.Height, e.Attempts, e.Last)
}

// Unwrap exposes both ErrGenerationFailed and the last attempt's reason.
func (e *GenerationError) Unwrap() []error {
	return []error{ErrGenerationFailed, e.Last}
}

// Params describes one generation request.
type Params struct {
	Width    int
	Height   int
	RoomSize int
	Seed     int64 // same seed and sizes always produce the same grid
	Solve    SolvePolicy
	MaxCells int // 0 means DefaultMaxCells
}

// MinDimension returns the smallest width/height the generator accepts for
// the given room size.
// The start and exit rooms must fit side by side without overlapping.
func MinDimension(roomSize int) int {
	return 2*roomSize + 4
}

// validate checks the request before an attempt touches the grid.
func (p Params) validate() error {
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalidParams, p.Width, p.Height)
	}
	if p.RoomSize < 2 {
		return fmt.Errorf("%w: room size %d < 2", ErrInvalidParams, p.RoomSize)
	}
	if least := MinDimension(p.RoomSize); p.Width < least || p.Height < least {
		return fmt.Errorf("%w: size %dx%d below minimum %d for room size %d",
			ErrInvalidParams, p.Width, p.Height, least, p.RoomSize)
	}
	return nil
}

// Generator runs the bounded retry loop around Attempt.
type Generator struct {
	logger *log.Logger
}

// NewGenerator creates a generator. A nil logger discards output.
func NewGenerator(logger *log.Logger) *Generator {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Generator{logger: logger}
}

// Generate builds a solvable grid, retrying up to the tier's attempt cap.
// Attempt seeds are drawn from p.Seed, so the result is reproducible.
func (gen *Generator) Generate(p Params) (*Grid, error) {
	maxCells := p.MaxCells
	if maxCells <= 0 {
		maxCells = DefaultMaxCells
	}
	if int64(p.Width)*int64(p.Height) > int64(maxCells) {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d cells", ErrGridTooLarge, p.Width, p.Height, maxCells)
	}

	attempts := MaxAttempts(p.Width, p.Height)
	seeds := rand.New(rand.NewSource(p.Seed))
	logger := gen.logger.With("width", p.Width, "height", p.Height, "seed", p.Seed)

	var last error
	for i := 0; i < attempts; i++ {
		g, err := Attempt(seeds.Int63(), p)
		if err == nil {
			logger.Info("maze generated", "attempts", i+1, "tier", TierFor(p.Width, p.Height))
			return g, nil
		}
		last = err
		logger.Debug("attempt failed", "attempt", i+1, "of", attempts, "reason", err)
	}

	logger.Warn("maze generation exhausted attempts", "attempts", attempts, "reason", last)
	return nil, &GenerationError{Width: p.Width, Height: p.Height, Attempts: attempts, Last: last}
}

// Generate is a convenience wrapper using a silent generator.
func Generate(p Params) (*Grid, error) {
	return NewGenerator(nil).Generate(p)
}

// Attempt runs a single generation pass with its own seed. It either returns
// a grid that passed the solvability check or the reason it was discarded.
func Attempt(seed int64, p Params) (*Grid, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}

	b := newBuilder(seed, p)
	b.carve()
	b.addRooms()
	b.patchConnectivity()
	b.addPassages()

	start := b.placeStart()
	exit, err := b.placeExit(start)
	if err != nil {
		return nil, err
	}
	if b.g.CellAt(start.X, start.Y) != Start {
		return nil, errStartLost
	}
	if !Solvable(b.g, start, exit, p.Solve) {
		return nil, errUnsolvable
	}

	if p.Solve.Mode == SolveExact {
		SealUnreachable(b.g, start)
	}
	return b.g, nil
}

// builder holds the mutable state of one attempt.
type builder struct {
	g        *Grid
	rng      *rand.Rand
	roomSize int
	tp       tierParams
	corridor int
}

func newBuilder(seed int64, p Params) *builder {
	b := &builder{
		g:        NewGrid(p.Width, p.Height),
		rng:      rand.New(rand.NewSource(seed)),
		roomSize: p.RoomSize,
		tp:       paramsFor(TierFor(p.Width, p.Height)),
	}
	b.corridor = b.between(b.tp.corridorMin, b.tp.corridorMax)
	return b
}

// randRange returns a uniform int in [lo, hi]. ok is false for an empty range.
func (b *builder) randRange(lo, hi int) (int, bool) {
	if hi < lo {
		return lo, false
	}
	return lo + b.rng.Intn(hi-lo+1), true
}

// between is randRange that falls back to lo for an empty range.
func (b *builder) between(lo, hi int) int {
	v, _ := b.randRange(lo, hi)
	return v
}

// carve runs the randomized depth-first walk from (1, 1).
func (b *builder) carve() {
	g := b.g
	cw := b.corridor
	// Blocks of width cw need a wall column between them.
	stride := b.tp.stride
	if stride < cw+1 {
		stride = cw + 1
	}

	for y := 1; y < 1+cw; y++ {
		for x := 1; x < 1+cw; x++ {
			g.Set(x, y, Empty)
		}
	}

	roomInterval := g.width / b.tp.roomEvery
	if roomInterval < 1 {
		roomInterval = 1
	}
	maxSteps := b.tp.maxWalkSteps
	if area := g.width * g.height; area < maxSteps {
		maxSteps = area
	}

	type move struct {
		dx, dy int
		next   Point
	}

	stack := []Point{{1, 1}}
	candidates := make([]move, 0, 4)

	for steps := 1; len(stack) > 0 && steps <= maxSteps; steps++ {
		cur := stack[len(stack)-1]

		if steps%roomInterval == 0 && b.rng.Float64() < b.tp.roomChance {
			b.tryRandomRoom()
		}

		candidates = candidates[:0]
		for _, d := range dirs4 {
			dx, dy := d.X*stride, d.Y*stride
			nx, ny := cur.X+dx, cur.Y+dy
			if nx < 1 || nx >= g.width-1 || ny < 1 || ny >= g.height-1 {
				continue
			}
			if g.CellAt(nx, ny) != Wall {
				continue
			}
			if b.openAround(nx, ny, b.tp.braidRange) > b.tp.braidMaxOpen {
				continue
			}
			candidates = append(candidates, move{dx: dx, dy: dy, next: Point{nx, ny}})
		}

		if len(candidates) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}

		m := candidates[b.rng.Intn(len(candidates))]
		for wy := 0; wy < cw; wy++ {
			for wx := 0; wx < cw; wx++ {
				g.Set(cur.X+m.dx/2+wx, cur.Y+m.dy/2+wy, Empty)
				g.Set(m.next.X+wx, m.next.Y+wy, Empty)
			}
		}
		stack = append(stack, m.next)
	}
}

// openAround counts Empty cells in the square window of half-size r.
func (b *builder) openAround(x, y, r int) int {
	n := 0
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if b.g.InBounds(x+dx, y+dy) && b.g.CellAt(x+dx, y+dy) == Empty {
				n++
			}
		}
	}
	return n
}

// tryRandomRoom makes up to 15 placement attempts for one room.
func (b *builder) tryRandomRoom() bool {
	for i := 0; i < 15; i++ {
		if b.tryPlaceRoom() {
			return true
		}
	}
	return false
}

// tryPlaceRoom picks one random position and carves a room if it fits.
func (b *builder) tryPlaceRoom() bool {
	size := b.roomSize
	x, okX := b.randRange(2, b.g.width-size-2)
	y, okY := b.randRange(2, b.g.height-size-2)
	if !okX || !okY {
		return false
	}
	if !b.canPlaceRoom(x, y, size) {
		return false
	}
	b.createRoom(x, y, size)
	return true
}

// addRooms is the post-walk room pass.
func (b *builder) addRooms() {
	area := b.g.width * b.g.height
	want := area / b.tp.roomDivisor
	if want < b.tp.minRooms {
		want = b.tp.minRooms
	}

	created := 0
	for attempts := 0; created < want && attempts < want*15; attempts++ {
		if b.tryPlaceRoom() {
			created++
		}
	}
}

// canPlaceRoom checks bounds and that the target area is solid wall.
// Large tiers only sample the corners and the center.
func (b *builder) canPlaceRoom(x, y, size int) bool {
	g := b.g
	if x < 2 || x+size >= g.width-2 || y < 2 || y+size >= g.height-2 {
		return false
	}

	if b.tp.sparseRoomScan {
		samples := [5]Point{
			{x, y}, {x + size - 1, y}, {x, y + size - 1},
			{x + size - 1, y + size - 1}, {x + size/2, y + size/2},
		}
		for _, p := range samples {
			if g.CellAt(p.X, p.Y) != Wall {
				return false
			}
		}
		return true
	}

	for ry := y; ry < y+size; ry++ {
		for rx := x; rx < x+size; rx++ {
			if g.CellAt(rx, ry) != Wall {
				return false
			}
		}
	}
	return true
}

// innerOffset picks an offset along a room side that avoids the corners
// when the room is big enough to have an interior.
func (b *builder) innerOffset(size int) int {
	if size >= 3 {
		return b.between(1, size-2)
	}
	return b.between(0, size-1)
}

// createRoom carves a room with a few decorative walls and 2+ exits.
func (b *builder) createRoom(x, y, size int) {
	g := b.g
	for ry := y; ry < y+size; ry++ {
		for rx := x; rx < x+size; rx++ {
			g.Set(rx, ry, Empty)
		}
	}

	numWalls := b.between(0, 1)
	if b.tp.bigRoomDetail {
		numWalls = b.between(0, size/4)
	}
	if size >= 3 {
		for placed, tries := 0, 0; placed < numWalls && tries < 5; tries++ {
			wx := b.between(x+1, x+size-2)
			wy := b.between(y+1, y+size-2)
			if g.CellAt(wx, wy) == Empty {
				g.Set(wx, wy, Wall)
				placed++
			}
		}
	}

	numExits := b.between(2, 4)
	if b.tp.bigRoomDetail {
		hi := size - 1
		if hi > 5 {
			hi = 5
		}
		numExits = b.between(2, hi)
	}

	sides := [4]int{0, 1, 2, 3}
	b.rng.Shuffle(len(sides), func(i, j int) { sides[i], sides[j] = sides[j], sides[i] })

	created := 0
	for _, side := range sides {
		if created >= numExits {
			break
		}
		var ex, ey int
		switch side {
		case 0: // top
			if y <= 1 {
				continue
			}
			ex, ey = x+b.innerOffset(size), y-1
		case 1: // bottom
			if y+size >= g.height-1 {
				continue
			}
			ex, ey = x+b.innerOffset(size), y+size
		case 2: // left
			if x <= 1 {
				continue
			}
			ex, ey = x-1, y+b.innerOffset(size)
		case 3: // right
			if x+size >= g.width-1 {
				continue
			}
			ex, ey = x+size, y+b.innerOffset(size)
		}
		if g.InBounds(ex, ey) && g.CellAt(ex, ey) == Wall {
			g.Set(ex, ey, Empty)
			created++
		}
	}
}

// patchConnectivity opens sampled walls that sit between two or more
// empty cells, removing bottlenecks and joining nearby pockets.
func (b *builder) patchConnectivity() {
	g := b.g
	samples := g.width * g.height / b.tp.patchDivisor
	for i := 0; i < samples; i++ {
		x, okX := b.randRange(2, g.width-3)
		y, okY := b.randRange(2, g.height-3)
		if !okX || !okY {
			return
		}
		if g.CellAt(x, y) == Wall && g.countNeighbors(x, y, Empty) >= 2 {
			g.Set(x, y, Empty)
		}
	}
}

// addPassages opens sampled walls adjacent to any empty cell.
func (b *builder) addPassages() {
	g := b.g
	samples := g.width * g.height / b.tp.passageDivisor
	for i := 0; i < samples; i++ {
		x, okX := b.randRange(1, g.width-2)
		y, okY := b.randRange(1, g.height-2)
		if !okX || !okY {
			return
		}
		if g.CellAt(x, y) == Wall && g.countNeighbors(x, y, Empty) > 0 {
			g.Set(x, y, Empty)
		}
	}
}

// placeStart scans for an open cell, carves the start room around it and
// marks its center. Falls back to a fixed offset when the scan finds nothing.
func (b *builder) placeStart() Point {
	g := b.g
	sx, sy := 2, 2
	if b.tp.startOffsetFrac > 0 {
		sx, sy = g.width/b.tp.startOffsetFrac, g.height/b.tp.startOffsetFrac
	}

	maxY := g.height - 2
	if lim := sy + b.tp.startScanWindow; lim < maxY {
		maxY = lim
	}
	maxX := g.width - 2
	if lim := sx + b.tp.startScanWindow; lim < maxX {
		maxX = lim
	}

	for y := sy; y < maxY; y++ {
		for x := sx; x < maxX; x++ {
			if g.CellAt(x, y) == Empty && g.countOpenNeighbors(x, y) >= 1 {
				c := b.carveMarkerRoom(x, y, 1)
				g.Set(c.X, c.Y, Start)
				return c
			}
		}
	}

	safeX, safeY := g.width/10, g.height/10
	if safeX < 2 {
		safeX = 2
	}
	if safeY < 2 {
		safeY = 2
	}
	c := b.carveMarkerRoom(safeX, safeY, 1)
	g.Set(c.X, c.Y, Start)
	return c
}

// placeExit carves the exit room on the empty cell farthest (Manhattan)
// from start, scanning with the tier's stride.
func (b *builder) placeExit(start Point) (Point, error) {
	g := b.g
	step := b.tp.exitSearchStep

	best := -1
	var target Point
	for y := 3; y < g.height-3; y += step {
		for x := 3; x < g.width-3; x += step {
			if g.CellAt(x, y) != Empty {
				continue
			}
			if d := start.Manhattan(Point{x, y}); d > best {
				best = d
				target = Point{x, y}
			}
		}
	}
	if best <= 0 {
		return Point{}, errNoExitCandidate
	}

	c := b.carveMarkerRoom(target.X, target.Y, 2)
	g.Set(c.X, c.Y, Exit)
	return c, nil
}

// carveMarkerRoom carves a roomSize square centered on (x, y), kept at least
// margin cells from the border, with a doorway in the middle of every side
// that stays off the border. Returns the room center.
func (b *builder) carveMarkerRoom(x, y, margin int) Point {
	g := b.g
	size := b.roomSize

	rx := clampInt(x-size/2, margin, g.width-size-margin)
	ry := clampInt(y-size/2, margin, g.height-size-margin)

	for yy := ry; yy < ry+size; yy++ {
		for xx := rx; xx < rx+size; xx++ {
			g.Set(xx, yy, Empty)
		}
	}

	mid := size / 2
	if ry > 1 {
		g.Set(rx+mid, ry-1, Empty)
	}
	if ry+size < g.height-1 {
		g.Set(rx+mid, ry+size, Empty)
	}
	if rx > 1 {
		g.Set(rx-1, ry+mid, Empty)
	}
	if rx+size < g.width-1 {
		g.Set(rx+size, ry+mid, Empty)
	}

	return Point{rx + mid, ry + mid}
}

// clampInt applies the lower bound first, then the upper one, matching the
// placement rules (an undersized grid ends up pinned to hi).
func clampInt(v, lo, hi int) int {
	if v < lo {
		v = lo
	}
	if v > hi {
		v = hi
	}
	return v
}
