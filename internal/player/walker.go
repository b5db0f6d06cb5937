package player

import (
	"math"

	"github.com/vovakirdan/tui-maze/internal/maze"
)

// WalkerState is the phase of the automatic walker.
type WalkerState int

const (
	WalkerFindingPath WalkerState = iota
	WalkerRotating
	WalkerMoving
	WalkerCompleted
)

func (s WalkerState) String() string {
	switch s {
	case WalkerFindingPath:
		return "finding_path"
	case WalkerRotating:
		return "rotating"
	case WalkerMoving:
		return "moving"
	case WalkerCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// driftLimit is the heading error that sends a moving walker back to rotating.
const driftLimit = math.Pi / 8

// Walker drives a pose from the start to the exit along a BFS path. It only
// ever turns in place or moves straight ahead, one Mover step per Update.
type Walker struct {
	pose  Pose
	mover Mover
	path  []maze.Point
	step  int // index of the path cell the walker last reached
	state WalkerState
	found bool
}

// NewWalker creates a walker starting at pose.
func NewWalker(pose Pose, mover Mover) *Walker {
	return &Walker{pose: pose, mover: mover, state: WalkerFindingPath}
}

// Pose returns the walker's current pose.
func (w *Walker) Pose() Pose { return w.pose }

// State returns the current phase.
func (w *Walker) State() WalkerState { return w.state }

// Path returns the planned route, or nil before planning or when no route
// exists.
func (w *Walker) Path() []maze.Point { return w.path }

// Step returns the index of the last path cell reached.
func (w *Walker) Step() int { return w.step }

// Found reports whether a route to the exit was found.
func (w *Walker) Found() bool { return w.found }

// Progress returns the share of the route covered, 0 to 100.
func (w *Walker) Progress() int {
	if len(w.path) < 2 {
		if w.state == WalkerCompleted && w.found {
			return 100
		}
		return 0
	}
	p := w.step * 100 / (len(w.path) - 1)
	if p > 100 {
		p = 100
	}
	return p
}

// Update advances the walker by one action.
func (w *Walker) Update(g *maze.Grid) {
	switch w.state {
	case WalkerCompleted:
		return
	case WalkerFindingPath:
		w.plan(g)
		return
	}

	if w.step >= len(w.path)-1 {
		w.state = WalkerCompleted
		return
	}

	next := w.path[w.step+1]
	target := headingTo(w.path[w.step], next, w.pose.Angle)

	switch w.state {
	case WalkerRotating:
		if w.rotateTowards(target) {
			w.state = WalkerMoving
		}
	case WalkerMoving:
		if math.Abs(AngleDiff(w.pose.Angle, target)) > driftLimit {
			w.state = WalkerRotating
			return
		}
		if w.moveTowards(float64(next.X)+0.5, float64(next.Y)+0.5) {
			w.step++
			if w.step >= len(w.path)-1 {
				w.state = WalkerCompleted
			} else {
				w.state = WalkerRotating
			}
		}
	}
}

func (w *Walker) plan(g *maze.Grid) {
	exit, err := g.ExitPoint()
	if err != nil {
		w.state = WalkerCompleted
		return
	}
	w.path = maze.ShortestPath(g, w.pose.Cell(), exit)
	if w.path == nil {
		w.state = WalkerCompleted
		return
	}
	w.found = true
	w.step = 0
	w.state = WalkerRotating
}

// rotateTowards turns one rotation step toward target and snaps once within
// a step. It returns true when aligned.
func (w *Walker) rotateTowards(target float64) bool {
	diff := AngleDiff(w.pose.Angle, target)
	if math.Abs(diff) < w.mover.RotationSpeed {
		w.pose.Angle = NormalizeAngle(target)
		return true
	}
	if diff > 0 {
		w.mover.TurnRight(&w.pose)
	} else {
		w.mover.TurnLeft(&w.pose)
	}
	return false
}

// moveTowards steps forward along the heading, or lands exactly on the
// target when it is closer than one step. It returns true on arrival.
func (w *Walker) moveTowards(tx, ty float64) bool {
	dx, dy := tx-w.pose.X, ty-w.pose.Y
	if math.Hypot(dx, dy) < w.mover.MoveSpeed {
		w.pose.X, w.pose.Y = tx, ty
		return true
	}
	w.pose.X += math.Cos(w.pose.Angle) * w.mover.MoveSpeed
	w.pose.Y += math.Sin(w.pose.Angle) * w.mover.MoveSpeed
	return false
}

// headingTo returns the axis heading from cell a to the adjacent cell b, or
// fallback when they are not neighbors.
func headingTo(a, b maze.Point, fallback float64) float64 {
	switch {
	case b.X-a.X == 1:
		return 0
	case b.X-a.X == -1:
		return math.Pi
	case b.Y-a.Y == 1:
		return math.Pi / 2
	case b.Y-a.Y == -1:
		return 3 * math.Pi / 2
	}
	return fallback
}
