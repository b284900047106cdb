package geometry

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/mitchelldurbincs/settling/internal/hex"
)

// StandardRings is the ring count of the 3-4 player board: 19 land tiles
// surrounded by a ring of 18 water tiles, 37 tiles in total.
const StandardRings = 3

var ErrBoardTooLarge = errors.New("board exceeds the ordinal search bound")

// Standard is a hexagon-shaped board of every tile within MaxRing steps of
// the origin.
//
// Ordinal conversions are memoized. The caches only ever grow and are
// guarded so clones of a board can share one geometry.
type Standard struct {
	maxRing    int
	maxOrdinal int

	mu           sync.RWMutex
	ordinalCache map[hex.Cube]int
	hexagonCache map[int]hex.Cube
}

var _ Geometry = (*Standard)(nil)

// NewStandard creates a bounded geometry with the given number of rings
func NewStandard(maxRing int) (*Standard, error) {
	if maxRing < 0 {
		return nil, fmt.Errorf("max ring must be non-negative, got %d", maxRing)
	}
	if hex.TilesWithinRing(maxRing) > hex.MaxSearch {
		return nil, fmt.Errorf("%w: %d rings", ErrBoardTooLarge, maxRing)
	}
	return newStandard(maxRing), nil
}

// NewStandardBoard creates the geometry of the standard 37 tile board
func NewStandardBoard() *Standard {
	return newStandard(StandardRings)
}

func newStandard(maxRing int) *Standard {
	return &Standard{
		maxRing:      maxRing,
		maxOrdinal:   hex.TilesWithinRing(maxRing) - 1,
		ordinalCache: make(map[hex.Cube]int),
		hexagonCache: make(map[int]hex.Cube),
	}
}

// MaxRing returns the outermost ring on the board
func (g *Standard) MaxRing() int { return g.maxRing }

// TileCount returns the number of hexagons on the board
func (g *Standard) TileCount() int { return g.maxOrdinal + 1 }

// OrdinalFromHexagon gives the storage index of a hexagon, consulting the
// cache before the hex math.
func (g *Standard) OrdinalFromHexagon(h hex.Cube) (int, error) {
	g.mu.RLock()
	ordinal, ok := g.ordinalCache[h]
	g.mu.RUnlock()
	if ok {
		return ordinal, nil
	}

	ordinal, err := hex.OrdinalFromCube(h)
	if err != nil {
		return 0, err
	}

	g.mu.Lock()
	g.ordinalCache[h] = ordinal
	g.mu.Unlock()
	return ordinal, nil
}

// HexagonFromOrdinal gives the hexagon stored at an index, consulting the
// cache before the hex math.
func (g *Standard) HexagonFromOrdinal(ordinal int) (hex.Cube, error) {
	g.mu.RLock()
	h, ok := g.hexagonCache[ordinal]
	g.mu.RUnlock()
	if ok {
		return h, nil
	}

	h, err := hex.CubeFromOrdinal(ordinal)
	if err != nil {
		return hex.Cube{}, err
	}

	g.mu.Lock()
	g.hexagonCache[ordinal] = h
	g.mu.Unlock()
	return h, nil
}

// Contains reports whether h exists on the board
func (g *Standard) Contains(h hex.Cube) bool {
	ordinal, err := g.OrdinalFromHexagon(h)
	return err == nil && ordinal <= g.maxOrdinal
}

// HexagonNeighbors drops the off-board entries of hex.Neighbors
func (g *Standard) HexagonNeighbors(h hex.Cube) []hex.Cube {
	all := hex.Neighbors(h)
	existing := make([]hex.Cube, 0, len(all))
	for _, n := range all {
		if g.Contains(n) {
			existing = append(existing, n)
		}
	}
	return existing
}

// EdgeSynonyms returns (h, e) and, when neighbor e exists, the same edge seen
// from that neighbor.
func (g *Standard) EdgeSynonyms(h hex.Cube, e int) []Address {
	e = hex.Wrap(e)
	synonyms := []Address{{Hex: h, Index: e}}
	if other := h.Neighbor(e); g.Contains(other) {
		synonyms = append(synonyms, At(other, e+3))
	}
	return synonyms
}

// VertexSynonyms returns (h, v) and the same corner seen from the neighbors
// on either side of it.
func (g *Standard) VertexSynonyms(h hex.Cube, v int) []Address {
	v = hex.Wrap(v)
	synonyms := []Address{{Hex: h, Index: v}}
	if first := h.Neighbor(v - 1); g.Contains(first) {
		synonyms = append(synonyms, At(first, v+2))
	}
	if second := h.Neighbor(v); g.Contains(second) {
		synonyms = append(synonyms, At(second, v+4))
	}
	return synonyms
}

// VertexNeighbors walks one edge out of every synonym of the vertex. Each
// synonym sees two neighbors; interior neighbors are seen twice and kept once.
func (g *Standard) VertexNeighbors(h hex.Cube, v int) []Address {
	var candidates []Address
	for _, s := range g.VertexSynonyms(h, v) {
		candidates = append(candidates, At(s.Hex, s.Index-1), At(s.Hex, s.Index+1))
	}
	return g.collapse(candidates, g.CanonicalVertex)
}

// VerticesAroundEdge returns the corners at both ends of edge e
func (g *Standard) VerticesAroundEdge(h hex.Cube, e int) []Address {
	return []Address{At(h, e), At(h, e+1)}
}

// EdgesAroundVertex returns the two or three edges meeting at a vertex
func (g *Standard) EdgesAroundVertex(h hex.Cube, v int) []Address {
	var candidates []Address
	for _, s := range g.VertexSynonyms(h, v) {
		candidates = append(candidates, At(s.Hex, s.Index), At(s.Hex, s.Index-1))
	}
	return g.collapse(candidates, g.CanonicalEdge)
}

// CanonicalEdge returns the synonym with the lowest ordinal
func (g *Standard) CanonicalEdge(h hex.Cube, e int) Address {
	return g.lowest(g.EdgeSynonyms(h, e))
}

// CanonicalVertex returns the synonym with the lowest ordinal
func (g *Standard) CanonicalVertex(h hex.Cube, v int) Address {
	return g.lowest(g.VertexSynonyms(h, v))
}

func (g *Standard) lowest(synonyms []Address) Address {
	best := synonyms[0]
	bestOrdinal := g.sortOrdinal(best.Hex)
	for _, s := range synonyms[1:] {
		ordinal := g.sortOrdinal(s.Hex)
		if ordinal < bestOrdinal || (ordinal == bestOrdinal && s.Index < best.Index) {
			best, bestOrdinal = s, ordinal
		}
	}
	return best
}

func (g *Standard) sortOrdinal(h hex.Cube) int {
	ordinal, err := g.OrdinalFromHexagon(h)
	if err != nil {
		return math.MaxInt
	}
	return ordinal
}

// collapse keeps the first address seen for each physical feature
func (g *Standard) collapse(candidates []Address, canonical func(hex.Cube, int) Address) []Address {
	seen := make(map[Address]bool, len(candidates))
	result := make([]Address, 0, len(candidates))
	for _, c := range candidates {
		key := canonical(c.Hex, c.Index)
		if seen[key] {
			continue
		}
		seen[key] = true
		result = append(result, c)
	}
	return result
}
