package maze

// Tier is a size bracket that selects carving stride, corridor width and
// the various sampling and retry budgets.
type Tier int

const (
	TierSmall Tier = iota
	TierMedium
	TierLarge
	TierHuge
	TierExtreme
)

// String returns the tier name.
func (t Tier) String() string {
	switch t {
	case TierSmall:
		return "small"
	case TierMedium:
		return "medium"
	case TierLarge:
		return "large"
	case TierHuge:
		return "huge"
	case TierExtreme:
		return "extreme"
	default:
		return "unknown"
	}
}

// TierFor picks the tier from the larger grid dimension.
func TierFor(width, height int) Tier {
	size := width
	if height > size {
		size = height
	}
	switch {
	case size >= 800:
		return TierExtreme
	case size >= 400:
		return TierHuge
	case size >= 200:
		return TierLarge
	case size >= 100:
		return TierMedium
	default:
		return TierSmall
	}
}

// tierParams holds every tier-dependent constant used by the generator.
type tierParams struct {
	maxAttempts int

	// Carving walk
	stride         int
	corridorMin    int
	corridorMax    int
	roomEvery      int // divisor of width for the in-walk room interval
	roomChance     float64
	maxWalkSteps   int
	braidRange     int // half-size of the window checked around a target cell
	braidMaxOpen   int // max empty cells allowed in that window
	sparseRoomScan bool

	// Post-walk passes
	roomDivisor    int
	minRooms       int
	patchDivisor   int
	passageDivisor int
	bigRoomDetail  bool // more exits and fewer inner walls

	// Start / exit placement
	startOffsetFrac int // start scan begins at width/startOffsetFrac; 0 means fixed offset
	startScanWindow int
	exitSearchStep  int
}

func paramsFor(t Tier) tierParams {
	p := tierParams{
		maxAttempts:     50,
		stride:          2,
		corridorMin:     1,
		corridorMax:     1,
		roomEvery:       5,
		roomChance:      0.4,
		maxWalkSteps:    100000,
		braidRange:      1,
		braidMaxOpen:    3,
		roomDivisor:     1000,
		minRooms:        10,
		patchDivisor:    500,
		passageDivisor:  50,
		startScanWindow: 100,
		exitSearchStep:  1,
	}

	switch t {
	case TierMedium:
		p.roomEvery = 10
	case TierLarge:
		p.maxAttempts = 100
		p.stride = 3
		p.corridorMin, p.corridorMax = 2, 2
		p.roomEvery = 15
		p.roomDivisor = 1500
		p.minRooms = 12
		p.patchDivisor = 600
		p.passageDivisor = 60
		p.bigRoomDetail = true
		p.exitSearchStep = 2
	case TierHuge, TierExtreme:
		p.maxAttempts = 150
		p.stride = 3
		p.corridorMin, p.corridorMax = 2, 2
		p.roomEvery = 20
		p.roomDivisor = 2000
		p.patchDivisor = 800
		p.passageDivisor = 80
		p.bigRoomDetail = true
		p.sparseRoomScan = true
		p.startOffsetFrac = 10
		p.exitSearchStep = 3
		if t == TierExtreme {
			p.corridorMax = 3
			p.roomEvery = 25
		}
	}

	if p.corridorMax > 1 {
		p.braidRange = 2
		p.braidMaxOpen = 6
	}
	return p
}

// MaxAttempts returns the retry budget used for a grid of the given size.
func MaxAttempts(width, height int) int {
	return paramsFor(TierFor(width, height)).maxAttempts
}
