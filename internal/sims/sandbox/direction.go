package sandbox

// Direction is a relative offset on the grid. Positive DY points down.
type Direction struct {
	DX, DY int
}

var (
	Up        = Direction{0, -1}
	Down      = Direction{0, 1}
	Left      = Direction{-1, 0}
	Right     = Direction{1, 0}
	UpLeft    = Direction{-1, -1}
	UpRight   = Direction{1, -1}
	DownLeft  = Direction{-1, 1}
	DownRight = Direction{1, 1}
)

// NeighborScan is the order used for heat exchange and every neighbour
// scan performed by behaviours.
var NeighborScan = [8]Direction{
	Down,
	DownLeft,
	DownRight,
	Left,
	UpLeft,
	Up,
	UpRight,
	Right,
}

// Cardinal lists the four axis-aligned directions.
var Cardinal = [4]Direction{Down, Left, Up, Right}

// Mobility classifies how a material moves.
type Mobility uint8

const (
	Stationary Mobility = iota
	SemiSolid
	Liquid
	Gas
	Chaotic
)

func (m Mobility) String() string {
	switch m {
	case Stationary:
		return "stationary"
	case SemiSolid:
		return "semi-solid"
	case Liquid:
		return "liquid"
	case Gas:
		return "gas"
	case Chaotic:
		return "chaotic"
	default:
		return "unknown"
	}
}

var (
	semiSolidOrders = [][]Direction{
		{Down, DownLeft, DownRight},
	}
	liquidOrders = [][]Direction{
		{Down, DownLeft, Left, DownRight, Right},
		{Down, DownRight, Right, DownLeft, Left},
	}
	gasOrders = [][]Direction{
		{Up, UpLeft, Left, UpRight, Right},
		{Up, UpRight, Right, UpLeft, Left},
	}
	chaoticOrders = [][]Direction{
		{Up, UpLeft, UpRight},
		{Left, UpLeft, DownLeft},
		{Down, DownLeft, DownRight},
		{Right, UpRight, DownRight},
	}
)

// ScanOrders returns the candidate movement scan orders of a mobility class.
// A class with a single order always uses it; otherwise one is picked per
// tick from the random table. Stationary and unknown classes have none.
func ScanOrders(m Mobility) [][]Direction {
	switch m {
	case SemiSolid:
		return semiSolidOrders
	case Liquid:
		return liquidOrders
	case Gas:
		return gasOrders
	case Chaotic:
		return chaoticOrders
	default:
		return nil
	}
}
