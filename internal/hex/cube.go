package hex

import "fmt"

// Cube represents a hexagon on the grid in cube coordinates.
// A valid coordinate always satisfies X + Y + Z == 0.
type Cube struct {
	X, Y, Z int
}

// Origin is the center tile of every board
var Origin = Cube{}

// NewCube creates a cube coordinate from its three components
func NewCube(x, y, z int) Cube {
	return Cube{X: x, Y: y, Z: z}
}

// Deltas are the six unit steps around a hexagon. The position in this
// array is also the edge and vertex numbering used around every tile.
var Deltas = [6]Cube{
	{X: 1, Y: 0, Z: -1},
	{X: 0, Y: 1, Z: -1},
	{X: -1, Y: 1, Z: 0},
	{X: -1, Y: 0, Z: 1},
	{X: 0, Y: -1, Z: 1},
	{X: 1, Y: -1, Z: 0},
}

// Valid checks the zero-sum invariant
func (c Cube) Valid() bool {
	return c.X+c.Y+c.Z == 0
}

// Add returns a new coordinate that is the sum of this coordinate and another
func (c Cube) Add(other Cube) Cube {
	return Cube{X: c.X + other.X, Y: c.Y + other.Y, Z: c.Z + other.Z}
}

// Scale multiplies every component by n
func (c Cube) Scale(n int) Cube {
	return Cube{X: c.X * n, Y: c.Y * n, Z: c.Z * n}
}

// Ring returns the number of steps between c and the origin
func (c Cube) Ring() int {
	return max(abs(c.X), abs(c.Y), abs(c.Z))
}

// DistanceTo returns the number of steps between two hexagons
func (c Cube) DistanceTo(other Cube) int {
	return Cube{X: c.X - other.X, Y: c.Y - other.Y, Z: c.Z - other.Z}.Ring()
}

// Neighbor returns the adjacent hexagon across edge i
func (c Cube) Neighbor(i int) Cube {
	return c.Add(Deltas[Wrap(i)])
}

// String renders the coordinate in the same notation ParseCube accepts
func (c Cube) String() string {
	return fmt.Sprintf("(%d, %d, %d)", c.X, c.Y, c.Z)
}

// Neighbors returns the six hexagons around c, ordered like Deltas.
// No bounds are applied.
func Neighbors(c Cube) [6]Cube {
	var result [6]Cube
	for i, d := range Deltas {
		result[i] = c.Add(d)
	}
	return result
}

// Wrap folds any integer onto an edge or vertex index in [0, 6)
func Wrap(i int) int {
	i %= 6
	if i < 0 {
		i += 6
	}
	return i
}

// ValidIndex reports whether i names an edge or vertex of a hexagon
func ValidIndex(i int) bool {
	return i >= 0 && i < 6
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
