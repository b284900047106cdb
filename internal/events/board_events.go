package events

import (
	"github.com/mitchelldurbincs/settling/internal/geometry"
	"github.com/mitchelldurbincs/settling/internal/hex"
)

// Event type constants
const (
	TypeBoardCreated      = "board.created"
	TypeRoadPlaced        = "road.placed"
	TypeTownPlaced        = "town.placed"
	TypeCityUpgraded      = "city.upgraded"
	TypeRobberMoved       = "robber.moved"
	TypePlacementRejected = "placement.rejected"
)

// BoardCreatedEvent is published when a board has been laid out
type BoardCreatedEvent struct {
	BaseEvent
	Tiles     int
	Ports     int
	RobberHex hex.Cube
}

// NewBoardCreatedEvent creates a new BoardCreatedEvent
func NewBoardCreatedEvent(boardID string, tiles, ports int, robber hex.Cube) *BoardCreatedEvent {
	return &BoardCreatedEvent{
		BaseEvent: newBase(TypeBoardCreated, boardID),
		Tiles:     tiles,
		Ports:     ports,
		RobberHex: robber,
	}
}

// RoadPlacedEvent is published after a road has been recorded
type RoadPlacedEvent struct {
	BaseEvent
	Player string
	Edge   geometry.Address
}

// NewRoadPlacedEvent creates a new RoadPlacedEvent
func NewRoadPlacedEvent(boardID, player string, edge geometry.Address) *RoadPlacedEvent {
	return &RoadPlacedEvent{
		BaseEvent: newBase(TypeRoadPlaced, boardID),
		Player:    player,
		Edge:      edge,
	}
}

// TownPlacedEvent is published after a town has been recorded
type TownPlacedEvent struct {
	BaseEvent
	Player  string
	Vertex  geometry.Address
	Initial bool
}

// NewTownPlacedEvent creates a new TownPlacedEvent
func NewTownPlacedEvent(boardID, player string, vertex geometry.Address, initial bool) *TownPlacedEvent {
	return &TownPlacedEvent{
		BaseEvent: newBase(TypeTownPlaced, boardID),
		Player:    player,
		Vertex:    vertex,
		Initial:   initial,
	}
}

// CityUpgradedEvent is published after a town became a city
type CityUpgradedEvent struct {
	BaseEvent
	Player string
	Vertex geometry.Address
}

// NewCityUpgradedEvent creates a new CityUpgradedEvent
func NewCityUpgradedEvent(boardID, player string, vertex geometry.Address) *CityUpgradedEvent {
	return &CityUpgradedEvent{
		BaseEvent: newBase(TypeCityUpgraded, boardID),
		Player:    player,
		Vertex:    vertex,
	}
}

// RobberMovedEvent is published after the robber changed tiles
type RobberMovedEvent struct {
	BaseEvent
	From hex.Cube
	To   hex.Cube
}

// NewRobberMovedEvent creates a new RobberMovedEvent
func NewRobberMovedEvent(boardID string, from, to hex.Cube) *RobberMovedEvent {
	return &RobberMovedEvent{
		BaseEvent: newBase(TypeRobberMoved, boardID),
		From:      from,
		To:        to,
	}
}

// PlacementRejectedEvent is published when a mutation broke a game rule
type PlacementRejectedEvent struct {
	BaseEvent
	Player string
	Op     string
	At     string
	Reason string
}

// NewPlacementRejectedEvent creates a new PlacementRejectedEvent
func NewPlacementRejectedEvent(boardID, player, op, at string, reason error) *PlacementRejectedEvent {
	return &PlacementRejectedEvent{
		BaseEvent: newBase(TypePlacementRejected, boardID),
		Player:    player,
		Op:        op,
		At:        at,
		Reason:    reason.Error(),
	}
}
