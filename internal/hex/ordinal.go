package hex

import "fmt"

// MaxSearch bounds how far ordinal lookups will go before giving up.
// Real boards live in the first few rings; anything past this is a caller bug.
const MaxSearch = 1000

// RSO is a ring, spine, offset coordinate.
//
//   - Ring is the number of steps to the origin.
//   - Spine is the nearest corner direction walking counter-clockwise, [0, 6).
//   - Offset is the number of tiles clockwise from that corner, [0, Ring).
//
// Ordinals walk the grid ring by ring and spine by spine, so RSO sits
// between the storage order and the cube coordinates:
//
//	| Ord | RSO       | Cube         |
//	|   0 | (0, 0, 0) | ( 0,  0,  0) |
//	|   1 | (1, 0, 0) | ( 1,  0, -1) |
//	|   7 | (2, 0, 0) | ( 2,  0, -2) |
//	|   8 | (2, 0, 1) | ( 1,  1, -2) |
//	|  21 | (3, 0, 2) | ( 1,  2, -3) |
type RSO struct {
	Ring, Spine, Offset int
}

// Valid checks that the spine and offset fit inside the ring
func (r RSO) Valid() bool {
	if r.Ring == 0 {
		return r.Spine == 0 && r.Offset == 0
	}
	return r.Ring > 0 &&
		r.Spine >= 0 && r.Spine < 6 &&
		r.Offset >= 0 && r.Offset < r.Ring
}

func (r RSO) String() string {
	return fmt.Sprintf("(%d, %d, %d)", r.Ring, r.Spine, r.Offset)
}

// TilesInRing returns how many hexagons lie exactly ring steps from the origin
func TilesInRing(ring int) int {
	if ring == 0 {
		return 1
	}
	return 6 * ring
}

// TilesWithinRing returns how many hexagons lie at most ring steps from the
// origin. It is also the first ordinal of ring+1.
func TilesWithinRing(ring int) int {
	if ring < 0 {
		return 0
	}
	return 3*ring*(ring+1) + 1
}

// findRing walks outward subtracting each ring's size. A remainder of
// exactly zero still belongs to the ring just subtracted.
func findRing(ordinal int) int {
	ring := 0
	remaining := ordinal
	for remaining-6*ring > 0 {
		remaining -= 6 * ring
		ring++
	}
	return ring
}

// RSOFromOrdinal converts a storage ordinal into ring, spine, offset form
func RSOFromOrdinal(ordinal int) (RSO, error) {
	if ordinal < 0 {
		return RSO{}, fmt.Errorf("%w: negative ordinal %d", ErrInvalidCoordinate, ordinal)
	}
	ring := findRing(ordinal)
	if ring == 0 {
		return RSO{}, nil
	}
	inRing := ordinal - TilesWithinRing(ring-1)
	return RSO{
		Ring:   ring,
		Spine:  inRing / ring,
		Offset: inRing % ring,
	}, nil
}

// OrdinalFromRSO converts a ring, spine, offset coordinate into a storage ordinal
func OrdinalFromRSO(r RSO) (int, error) {
	if !r.Valid() {
		return 0, fmt.Errorf("%w: rso %s", ErrInvalidCoordinate, r)
	}
	if r.Ring == 0 {
		return 0, nil
	}
	return TilesWithinRing(r.Ring-1) + r.Spine*r.Ring + r.Offset, nil
}

// CubeFromRSO places a ring, spine, offset coordinate on the grid. The spine
// corner sits at Ring steps along Deltas[Spine]; each unit of offset moves
// one tile towards the next spine's corner.
func CubeFromRSO(r RSO) (Cube, error) {
	if !r.Valid() {
		return Cube{}, fmt.Errorf("%w: rso %s", ErrInvalidCoordinate, r)
	}
	if r.Ring == 0 {
		return Origin, nil
	}
	pos := Deltas[r.Spine].Scale(r.Ring)
	step := Deltas[Wrap(r.Spine+2)]
	for i := 0; i < r.Offset; i++ {
		pos = pos.Add(step)
	}
	return pos, nil
}

// RSOFromCube finds the ring, spine, offset coordinate of a hexagon
func RSOFromCube(c Cube) (RSO, error) {
	if !c.Valid() {
		return RSO{}, fmt.Errorf("%w: %s sums to %d", ErrInvalidCoordinate, c, c.X+c.Y+c.Z)
	}
	ring := c.Ring()
	if ring == 0 {
		return RSO{}, nil
	}
	if TilesWithinRing(ring-1) >= MaxSearch {
		return RSO{}, fmt.Errorf("%w: %s is beyond the first %d ordinals", ErrNotFound, c, MaxSearch)
	}
	for spine := 0; spine < 6; spine++ {
		corner := Deltas[spine].Scale(ring)
		offset := c.DistanceTo(corner)
		if offset >= ring {
			continue
		}
		if corner.Add(Deltas[Wrap(spine+2)].Scale(offset)) == c {
			return RSO{Ring: ring, Spine: spine, Offset: offset}, nil
		}
	}
	return RSO{}, fmt.Errorf("%w: %s", ErrNotFound, c)
}

// CubeFromOrdinal converts a storage ordinal into a cube coordinate
func CubeFromOrdinal(ordinal int) (Cube, error) {
	r, err := RSOFromOrdinal(ordinal)
	if err != nil {
		return Cube{}, err
	}
	return CubeFromRSO(r)
}

// OrdinalFromCube converts a cube coordinate into its storage ordinal.
// It is the inverse of CubeFromOrdinal for every ordinal below MaxSearch.
func OrdinalFromCube(c Cube) (int, error) {
	r, err := RSOFromCube(c)
	if err != nil {
		return 0, err
	}
	ordinal, err := OrdinalFromRSO(r)
	if err != nil {
		return 0, err
	}
	if ordinal >= MaxSearch {
		return 0, fmt.Errorf("%w: %s is beyond the first %d ordinals", ErrNotFound, c, MaxSearch)
	}
	return ordinal, nil
}
