package board

import (
	"fmt"
	"slices"

	"github.com/mitchelldurbincs/settling/internal/events"
	"github.com/mitchelldurbincs/settling/internal/geometry"
	"github.com/mitchelldurbincs/settling/internal/hex"
)

const (
	opMoveRobber  = "move robber"
	opAddRoad     = "add road"
	opAddTown     = "add town"
	opInitialTown = "add initial town"
	opUpgradeTown = "upgrade town"
)

// MoveRobber moves the robber onto another land tile
func (b *Board) MoveRobber(to hex.Cube) error {
	err := b.validateRobber(to)
	if err != nil {
		return b.reject("", opMoveRobber, to, err)
	}

	from := b.RobberHex()
	ordinal, _ := b.geometry.OrdinalFromHexagon(to)
	b.tiles[b.robber].HasRobber = false
	b.tiles[ordinal].HasRobber = true
	b.robber = ordinal

	b.logger.Debug().
		Stringer("from", from).
		Stringer("to", to).
		Msg("Robber moved")
	b.publish(events.NewRobberMovedEvent(b.id, from, to))
	return nil
}

func (b *Board) validateRobber(to hex.Cube) error {
	tile, err := b.Tile(to)
	if err != nil {
		return err
	}
	if tile.HasRobber {
		return ErrRobberInPlace
	}
	if tile.IsWater() {
		return ErrMustTargetLand
	}
	return nil
}

// AddRoad records a road for player on edge e of h
func (b *Board) AddRoad(h hex.Cube, e int, player string) error {
	if err := b.validateRoad(h, e, player); err != nil {
		return b.reject(player, opAddRoad, geometry.Address{Hex: h, Index: e}, err)
	}
	b.commitRoad(h, e, player)
	return nil
}

func (b *Board) validateRoad(h hex.Cube, e int, player string) error {
	if player == "" {
		return ErrNoPlayer
	}
	if err := b.checkAddress(h, e); err != nil {
		return err
	}
	if b.HasRoad(h, e, AnyPlayer) {
		return ErrRoadExists
	}
	if b.tileAt(h).IsWater() && b.tileAt(h.Neighbor(e)).IsWater() {
		return ErrRoadNotNearLand
	}
	return nil
}

func (b *Board) commitRoad(h hex.Cube, e int, player string) {
	edge := b.geometry.CanonicalEdge(h, e)
	b.roads[edge] = player

	b.logger.Debug().
		Str("player", player).
		Stringer("edge", edge).
		Msg("Road placed")
	b.publish(events.NewRoadPlacedEvent(b.id, player, edge))
}

// AddTown records a town for player on vertex v of h, enforcing the
// distance rule against every existing town and city.
func (b *Board) AddTown(h hex.Cube, v int, player string) error {
	if err := b.validateTown(h, v, player); err != nil {
		return b.reject(player, opAddTown, geometry.Address{Hex: h, Index: v}, err)
	}
	b.commitTown(h, v, player, false)
	return nil
}

func (b *Board) validateTown(h hex.Cube, v int, player string) error {
	if player == "" {
		return ErrNoPlayer
	}
	if err := b.checkAddress(h, v); err != nil {
		return err
	}
	synonyms := b.geometry.VertexSynonyms(h, v)
	if _, ok := b.buildingAt(synonyms); ok {
		return ErrOccupied
	}

	nearLand := false
	for _, s := range synonyms {
		if !b.tileAt(s.Hex).IsWater() {
			nearLand = true
			break
		}
	}
	if !nearLand {
		return ErrTownNotNearLand
	}

	for _, n := range b.geometry.VertexNeighbors(h, v) {
		if _, ok := b.buildingAt(b.geometry.VertexSynonyms(n.Hex, n.Index)); ok {
			return ErrTooClose
		}
	}
	return nil
}

func (b *Board) commitTown(h hex.Cube, v int, player string, initial bool) {
	vertex := geometry.At(h, v)
	b.buildings[vertex] = Building{Player: player, Kind: Town}

	b.logger.Debug().
		Str("player", player).
		Stringer("vertex", vertex).
		Bool("initial", initial).
		Msg("Town placed")
	b.publish(events.NewTownPlacedEvent(b.id, player, vertex, initial))
}

// AddInitialTown places a setup-phase town together with the road leading
// away from it. Either both are placed or neither is.
func (b *Board) AddInitialTown(townHex hex.Cube, townVertex int, roadHex hex.Cube, roadEdge int, player string) error {
	at := geometry.Address{Hex: townHex, Index: townVertex}
	if err := b.validateInitialTown(townHex, townVertex, roadHex, roadEdge, player); err != nil {
		return b.reject(player, opInitialTown, at, err)
	}
	b.commitTown(townHex, townVertex, player, true)
	b.commitRoad(roadHex, roadEdge, player)
	return nil
}

func (b *Board) validateInitialTown(townHex hex.Cube, townVertex int, roadHex hex.Cube, roadEdge int, player string) error {
	if err := b.checkAddress(townHex, townVertex); err != nil {
		return err
	}
	if err := b.checkAddress(roadHex, roadEdge); err != nil {
		return err
	}

	town := geometry.At(townHex, townVertex)
	touches := false
	for _, end := range b.geometry.VerticesAroundEdge(roadHex, roadEdge) {
		if slices.Contains(b.geometry.VertexSynonyms(end.Hex, end.Index), town) {
			touches = true
			break
		}
	}
	if !touches {
		return ErrRoadNotAdjacentToTown
	}

	if err := b.validateTown(townHex, townVertex, player); err != nil {
		return err
	}
	return b.validateRoad(roadHex, roadEdge, player)
}

// UpgradeTown turns player's town on vertex v of h into a city
func (b *Board) UpgradeTown(h hex.Cube, v int, player string) error {
	at := geometry.Address{Hex: h, Index: v}
	stored, err := b.validateUpgrade(h, v, player)
	if err != nil {
		return b.reject(player, opUpgradeTown, at, err)
	}

	b.buildings[stored] = Building{Player: player, Kind: City}

	b.logger.Debug().
		Str("player", player).
		Stringer("vertex", stored).
		Msg("Town upgraded to city")
	b.publish(events.NewCityUpgradedEvent(b.id, player, stored))
	return nil
}

// validateUpgrade returns the address the town was stored under
func (b *Board) validateUpgrade(h hex.Cube, v int, player string) (geometry.Address, error) {
	if player == "" {
		return geometry.Address{}, ErrNoPlayer
	}
	if err := b.checkAddress(h, v); err != nil {
		return geometry.Address{}, err
	}
	stored, ok := b.buildingAt(b.geometry.VertexSynonyms(h, v))
	if !ok || b.buildings[stored].Kind != Town {
		return geometry.Address{}, ErrNoTown
	}
	if b.buildings[stored].Player != player {
		return geometry.Address{}, ErrNotOwner
	}
	return stored, nil
}

// buildingAt finds the synonym a building was stored under
func (b *Board) buildingAt(synonyms []geometry.Address) (geometry.Address, bool) {
	for _, s := range synonyms {
		if _, ok := b.buildings[s]; ok {
			return s, true
		}
	}
	return geometry.Address{}, false
}

// reject wraps err with the failed operation. Rule violations are expected
// during play and are only logged at debug level.
func (b *Board) reject(player, op string, at fmt.Stringer, err error) error {
	wrapped := wrapPlacement(player, op, at, err)
	if !IsRuleViolation(err) {
		b.logger.Warn().
			Err(err).
			Str("player", player).
			Str("op", op).
			Stringer("at", at).
			Msg("Rejected malformed placement")
		return wrapped
	}

	b.logger.Debug().
		Err(err).
		Str("player", player).
		Str("op", op).
		Stringer("at", at).
		Msg("Placement broke a rule")
	b.publish(events.NewPlacementRejectedEvent(b.id, player, op, at.String(), err))
	return wrapped
}
