package board

// TileType is the terrain printed on a hexagon
type TileType string

const (
	Brick  TileType = "brick"
	Wood   TileType = "wood"
	Wheat  TileType = "wheat"
	Sheep  TileType = "sheep"
	Ore    TileType = "ore"
	Water  TileType = "water"
	Desert TileType = "desert"
)

// ResourceTypes are the tile types that produce cards
var ResourceTypes = []TileType{Brick, Wood, Wheat, Sheep, Ore}

// IsResource reports whether the tile produces a resource
func (t TileType) IsResource() bool {
	switch t {
	case Brick, Wood, Wheat, Sheep, Ore:
		return true
	}
	return false
}

// IsLand reports whether buildings may border the tile
func (t TileType) IsLand() bool { return t != Water }

// Valid reports whether t is a known tile type
func (t TileType) Valid() bool {
	return t.IsResource() || t == Water || t == Desert
}

// NoNumber marks tiles without a production number
const NoNumber = 0

// Tile represents a single hexagon on the board.
// Number is NoNumber for water and desert tiles.
type Tile struct {
	Type      TileType
	Number    int
	HasRobber bool
}

func (t Tile) IsWater() bool { return t.Type == Water }

// ValidNumber reports whether n can be printed on a resource tile.
// Seven never is: rolling it moves the robber instead.
func ValidNumber(n int) bool {
	return n >= 2 && n <= 12 && n != 7
}

// PortType is the trade a port offers
type PortType string

const (
	GenericPort PortType = "3:1 port"
	BrickPort   PortType = "brick port"
	WoodPort    PortType = "wood port"
	WheatPort   PortType = "wheat port"
	SheepPort   PortType = "sheep port"
	OrePort     PortType = "ore port"
)

// Valid reports whether p is a known port type
func (p PortType) Valid() bool {
	switch p {
	case GenericPort, BrickPort, WoodPort, WheatPort, SheepPort, OrePort:
		return true
	}
	return false
}

// Ratio is how many cards are traded for one
func (p PortType) Ratio() int {
	if p == GenericPort {
		return 3
	}
	return 2
}

// Resource returns the resource a specific port accepts
func (p PortType) Resource() (TileType, bool) {
	switch p {
	case BrickPort:
		return Brick, true
	case WoodPort:
		return Wood, true
	case WheatPort:
		return Wheat, true
	case SheepPort:
		return Sheep, true
	case OrePort:
		return Ore, true
	}
	return "", false
}

// BuildingKind is the tier of a settlement
type BuildingKind int

const (
	Town BuildingKind = iota + 1
	City
)

func (k BuildingKind) String() string {
	switch k {
	case Town:
		return "town"
	case City:
		return "city"
	}
	return "unknown"
}

// Yield is how many cards a town produces; cities produce double
func (k BuildingKind) Yield() int {
	if k == City {
		return 2
	}
	return 1
}

// Building is a town or city owned by a player
type Building struct {
	Player string
	Kind   BuildingKind
}
