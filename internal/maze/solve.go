package maze

// SolveMode selects how strictly solvability is checked.
type SolveMode int

const (
	// SolveExact requires the flood fill from the start to reach the exit cell.
	SolveExact SolveMode = iota
	// SolveRelaxed accepts reaching any cell within a Manhattan radius of the
	// exit, and stops after a fixed step budget. It trades correctness for a
	// hard runtime bound on very large grids.
	SolveRelaxed
)

// String returns the mode name as used in config files.
func (m SolveMode) String() string {
	if m == SolveRelaxed {
		return "relaxed"
	}
	return "exact"
}

// ParseSolveMode converts a config string to a SolveMode. Unknown values
// map to SolveExact.
func ParseSolveMode(s string) SolveMode {
	if s == "relaxed" {
		return SolveRelaxed
	}
	return SolveExact
}

// SolvePolicy configures the solvability check.
type SolvePolicy struct {
	Mode       SolveMode
	Radius     int // relaxed mode: success radius around the exit
	StepBudget int // relaxed mode: max cells popped; 0 means width*height
}

// DefaultSolvePolicy returns the exact policy.
func DefaultSolvePolicy() SolvePolicy {
	return SolvePolicy{Mode: SolveExact, Radius: 20, StepBudget: 150000}
}

// Reachable flood-fills from p over passable cells using an explicit stack
// and returns a width*height visited mask. Each cell is pushed at most once
// so the fill is bounded by the grid area.
func Reachable(g *Grid, from Point) []bool {
	visited := make([]bool, g.width*g.height)
	if !g.InBounds(from.X, from.Y) || !g.CellAt(from.X, from.Y).Passable() {
		return visited
	}

	stack := make([]Point, 0, 64)
	stack = append(stack, from)
	visited[from.Y*g.width+from.X] = true

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, d := range dirs4 {
			nx, ny := cur.X+d.X, cur.Y+d.Y
			if !g.InBounds(nx, ny) {
				continue
			}
			idx := ny*g.width + nx
			if visited[idx] || !g.cells[idx].Passable() {
				continue
			}
			visited[idx] = true
			stack = append(stack, Point{nx, ny})
		}
	}
	return visited
}

// Solvable reports whether exit can be reached from start under the policy.
func Solvable(g *Grid, start, exit Point, policy SolvePolicy) bool {
	if !g.InBounds(start.X, start.Y) || !g.InBounds(exit.X, exit.Y) {
		return false
	}
	if policy.Mode == SolveRelaxed {
		return solvableRelaxed(g, start, exit, policy)
	}
	return Reachable(g, start)[exit.Y*g.width+exit.X]
}

// solvableRelaxed is a budgeted depth-first fill that succeeds as soon as it
// gets within policy.Radius of the exit.
func solvableRelaxed(g *Grid, start, exit Point, policy SolvePolicy) bool {
	budget := policy.StepBudget
	if budget <= 0 {
		budget = g.width * g.height
	}

	visited := make([]bool, g.width*g.height)
	stack := []Point{start}
	visited[start.Y*g.width+start.X] = true

	for steps := 0; len(stack) > 0 && steps < budget; steps++ {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if cur == exit || cur.Manhattan(exit) < policy.Radius {
			return true
		}

		for _, d := range dirs4 {
			nx, ny := cur.X+d.X, cur.Y+d.Y
			if !g.InBounds(nx, ny) {
				continue
			}
			idx := ny*g.width + nx
			if visited[idx] || !g.cells[idx].Passable() {
				continue
			}
			visited[idx] = true
			stack = append(stack, Point{nx, ny})
		}
	}
	return false
}

// SealUnreachable turns every passable cell not reachable from start into a
// wall and returns how many cells were sealed.
func SealUnreachable(g *Grid, start Point) int {
	visited := Reachable(g, start)
	sealed := 0
	for i, c := range g.cells {
		if c.Passable() && !visited[i] {
			g.cells[i] = Wall
			sealed++
		}
	}
	return sealed
}

// ShortestPath returns the cells of a shortest 4-connected path from start
// to goal inclusive, or nil if goal is unreachable.
func ShortestPath(g *Grid, start, goal Point) []Point {
	if !g.InBounds(start.X, start.Y) || !g.InBounds(goal.X, goal.Y) {
		return nil
	}

	prev := make([]int32, g.width*g.height)
	for i := range prev {
		prev[i] = -1
	}
	startIdx := start.Y*g.width + start.X
	prev[startIdx] = int32(startIdx)

	queue := []Point{start}
	for head := 0; head < len(queue); head++ {
		cur := queue[head]
		if cur == goal {
			break
		}
		for _, d := range dirs4 {
			nx, ny := cur.X+d.X, cur.Y+d.Y
			if !g.InBounds(nx, ny) {
				continue
			}
			idx := ny*g.width + nx
			if prev[idx] != -1 || !g.cells[idx].Passable() {
				continue
			}
			prev[idx] = int32(cur.Y*g.width + cur.X)
			queue = append(queue, Point{nx, ny})
		}
	}

	goalIdx := goal.Y*g.width + goal.X
	if prev[goalIdx] == -1 {
		return nil
	}

	var path []Point
	for idx := goalIdx; ; idx = int(prev[idx]) {
		path = append(path, Point{X: idx % g.width, Y: idx / g.width})
		if idx == startIdx {
			break
		}
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
