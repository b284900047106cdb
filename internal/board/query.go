package board

import (
	"maps"

	"github.com/mitchelldurbincs/settling/internal/geometry"
	"github.com/mitchelldurbincs/settling/internal/hex"
)

// HasRoad reports whether player (or anyone, for AnyPlayer) owns the road on
// edge e of h. Malformed and off-board addresses hold no road.
func (b *Board) HasRoad(h hex.Cube, e int, player string) bool {
	owner, ok := b.RoadOwner(h, e)
	return ok && (player == AnyPlayer || owner == player)
}

// HasTown reports whether a town, not a city, stands on vertex v of h
func (b *Board) HasTown(h hex.Cube, v int, player string) bool {
	return b.hasBuilding(h, v, player, Town)
}

// HasCity reports whether a city stands on vertex v of h
func (b *Board) HasCity(h hex.Cube, v int, player string) bool {
	return b.hasBuilding(h, v, player, City)
}

func (b *Board) hasBuilding(h hex.Cube, v int, player string, kind BuildingKind) bool {
	building, ok := b.BuildingAt(h, v)
	if !ok || building.Kind != kind {
		return false
	}
	return player == AnyPlayer || building.Player == player
}

// RoadOwner returns who owns the road on edge e of h
func (b *Board) RoadOwner(h hex.Cube, e int) (string, bool) {
	if b.checkAddress(h, e) != nil {
		return "", false
	}
	for _, s := range b.geometry.EdgeSynonyms(h, e) {
		if owner, ok := b.roads[s]; ok {
			return owner, true
		}
	}
	return "", false
}

// BuildingAt returns the town or city on vertex v of h
func (b *Board) BuildingAt(h hex.Cube, v int) (Building, bool) {
	if b.checkAddress(h, v) != nil {
		return Building{}, false
	}
	stored, ok := b.buildingAt(b.geometry.VertexSynonyms(h, v))
	if !ok {
		return Building{}, false
	}
	return b.buildings[stored], true
}

// Roads returns a copy of every road keyed by the address it was stored at
func (b *Board) Roads() map[geometry.Address]string {
	return maps.Clone(b.roads)
}

// Buildings returns a copy of every town and city keyed by the address it
// was stored at
func (b *Board) Buildings() map[geometry.Address]Building {
	return maps.Clone(b.buildings)
}

// Yield is one building's share of a dice roll
type Yield struct {
	Player   string
	Resource TileType
	Amount   int
	Vertex   geometry.Address
	Tile     hex.Cube
}

// Yields lists what every building collects when number is rolled. Tiles
// holding the robber produce nothing.
func (b *Board) Yields(number int) []Yield {
	var yields []Yield
	for ordinal, tile := range b.tiles {
		if tile.Number != number || tile.HasRobber || !tile.Type.IsResource() {
			continue
		}
		h, err := b.geometry.HexagonFromOrdinal(ordinal)
		if err != nil {
			continue
		}
		for v := 0; v < 6; v++ {
			stored, ok := b.buildingAt(b.geometry.VertexSynonyms(h, v))
			if !ok {
				continue
			}
			building := b.buildings[stored]
			yields = append(yields, Yield{
				Player:   building.Player,
				Resource: tile.Type,
				Amount:   building.Kind.Yield(),
				Vertex:   stored,
				Tile:     h,
			})
		}
	}
	return yields
}
