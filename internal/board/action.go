package board

import (
	"fmt"

	"github.com/mitchelldurbincs/settling/internal/hex"
)

// ActionType represents the type of action
type ActionType int

const (
	ActionBuildRoad ActionType = iota
	ActionBuildTown
	ActionBuildInitialTown
	ActionUpgradeTown
	ActionMoveRobber
)

func (t ActionType) String() string {
	switch t {
	case ActionBuildRoad:
		return "build_road"
	case ActionBuildTown:
		return "build_town"
	case ActionBuildInitialTown:
		return "build_initial_town"
	case ActionUpgradeTown:
		return "upgrade_town"
	case ActionMoveRobber:
		return "move_robber"
	}
	return fmt.Sprintf("action(%d)", int(t))
}

// Action represents a player's decision against the board
type Action interface {
	GetPlayer() string
	GetType() ActionType
	Apply(b *Board) error
}

// BuildRoadAction places a road on an edge
type BuildRoadAction struct {
	Player string
	Hex    hex.Cube
	Edge   int
}

func (a *BuildRoadAction) GetPlayer() string    { return a.Player }
func (a *BuildRoadAction) GetType() ActionType  { return ActionBuildRoad }
func (a *BuildRoadAction) Apply(b *Board) error { return b.AddRoad(a.Hex, a.Edge, a.Player) }

// BuildTownAction places a town on a vertex
type BuildTownAction struct {
	Player string
	Hex    hex.Cube
	Vertex int
}

func (a *BuildTownAction) GetPlayer() string    { return a.Player }
func (a *BuildTownAction) GetType() ActionType  { return ActionBuildTown }
func (a *BuildTownAction) Apply(b *Board) error { return b.AddTown(a.Hex, a.Vertex, a.Player) }

// BuildInitialTownAction places a setup-phase town and its road
type BuildInitialTownAction struct {
	Player   string
	TownHex  hex.Cube
	Vertex   int
	RoadHex  hex.Cube
	RoadEdge int
}

func (a *BuildInitialTownAction) GetPlayer() string   { return a.Player }
func (a *BuildInitialTownAction) GetType() ActionType { return ActionBuildInitialTown }
func (a *BuildInitialTownAction) Apply(b *Board) error {
	return b.AddInitialTown(a.TownHex, a.Vertex, a.RoadHex, a.RoadEdge, a.Player)
}

// UpgradeTownAction turns a town into a city
type UpgradeTownAction struct {
	Player string
	Hex    hex.Cube
	Vertex int
}

func (a *UpgradeTownAction) GetPlayer() string    { return a.Player }
func (a *UpgradeTownAction) GetType() ActionType  { return ActionUpgradeTown }
func (a *UpgradeTownAction) Apply(b *Board) error { return b.UpgradeTown(a.Hex, a.Vertex, a.Player) }

// MoveRobberAction moves the robber after a seven
type MoveRobberAction struct {
	Player string
	To     hex.Cube
}

func (a *MoveRobberAction) GetPlayer() string    { return a.Player }
func (a *MoveRobberAction) GetType() ActionType  { return ActionMoveRobber }
func (a *MoveRobberAction) Apply(b *Board) error { return b.MoveRobber(a.To) }

// Validate tries an action on a scratch copy, leaving b untouched
func Validate(b *Board, a Action) error {
	return a.Apply(b.Clone())
}
