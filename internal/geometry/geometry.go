// Package geometry turns the unbounded hex math into the relations a finite
// board needs: which tiles exist, and which (hexagon, index) addresses name
// the same physical edge or vertex.
package geometry

import (
	"fmt"

	"github.com/mitchelldurbincs/settling/internal/hex"
)

// Address names an edge or a vertex of a hexagon. Edge e of a hexagon is the
// side shared with neighbor e; vertex v is the corner between edges v-1 and v.
type Address struct {
	Hex   hex.Cube
	Index int
}

// At builds an address, wrapping the index into [0, 6)
func At(h hex.Cube, index int) Address {
	return Address{Hex: h, Index: hex.Wrap(index)}
}

func (a Address) String() string {
	return fmt.Sprintf("%s:%d", a.Hex, a.Index)
}

// Geometry is the coordinate oracle a board is built on.
//
// Synonym lists always start with the queried address itself, followed by
// every other on-board address of the same physical feature.
type Geometry interface {
	// OrdinalFromHexagon returns the storage index of a hexagon.
	OrdinalFromHexagon(h hex.Cube) (int, error)
	// HexagonFromOrdinal returns the hexagon stored at an index.
	HexagonFromOrdinal(ordinal int) (hex.Cube, error)
	// TileCount is the number of hexagons on the board.
	TileCount() int
	// Contains reports whether a hexagon is on the board.
	Contains(h hex.Cube) bool

	// HexagonNeighbors returns the on-board neighbors of h in delta order.
	HexagonNeighbors(h hex.Cube) []hex.Cube
	// EdgeSynonyms returns every address of edge e of h.
	EdgeSynonyms(h hex.Cube, e int) []Address
	// VertexSynonyms returns every address of vertex v of h.
	VertexSynonyms(h hex.Cube, v int) []Address
	// VertexNeighbors returns the vertices one road segment away.
	VertexNeighbors(h hex.Cube, v int) []Address
	// VerticesAroundEdge returns the two end points of an edge.
	VerticesAroundEdge(h hex.Cube, e int) []Address
	// EdgesAroundVertex returns the edges meeting at a vertex.
	EdgesAroundVertex(h hex.Cube, v int) []Address

	// CanonicalEdge picks one fixed address per physical edge.
	CanonicalEdge(h hex.Cube, e int) Address
	// CanonicalVertex picks one fixed address per physical vertex.
	CanonicalVertex(h hex.Cube, v int) Address
}
