package board

import (
	"errors"
	"fmt"
)

// ErrRuleViolation is wrapped by every error caused by a game rule. Callers
// can recover from these by asking the player for another action.
var ErrRuleViolation = errors.New("rule violation")

var (
	ErrRobberInPlace         = ruleViolation("cannot leave robber in place")
	ErrMustTargetLand        = ruleViolation("must target land")
	ErrRoadExists            = ruleViolation("road exists")
	ErrRoadNotNearLand       = ruleViolation("must be adjacent to land")
	ErrOccupied              = ruleViolation("occupied")
	ErrTownNotNearLand       = ruleViolation("must be near land")
	ErrTooClose              = ruleViolation("adjacent to existing town/city")
	ErrRoadNotAdjacentToTown = ruleViolation("road must be adjacent to town")
	ErrNoTown                = ruleViolation("no town")
	ErrNotOwner              = ruleViolation("not owner")
)

// Contract errors: the caller handed the board something it should have
// rejected earlier.
var (
	ErrOffBoard      = errors.New("hexagon is not on the board")
	ErrInvalidIndex  = errors.New("edge or vertex index must be between 0 and 5")
	ErrNoPlayer      = errors.New("player name is empty")
	ErrInvalidLayout = errors.New("invalid board layout")
)

func ruleViolation(reason string) error {
	return fmt.Errorf("%w: %s", ErrRuleViolation, reason)
}

// IsRuleViolation reports whether err was caused by a game rule
func IsRuleViolation(err error) bool {
	return errors.Is(err, ErrRuleViolation)
}

// PlacementError records which operation failed, where and for whom
type PlacementError struct {
	Player string
	Op     string
	At     string
	Err    error
}

func (e *PlacementError) Error() string {
	if e.Player == "" {
		return fmt.Sprintf("%s at %s: %v", e.Op, e.At, e.Err)
	}
	return fmt.Sprintf("player %s: %s at %s: %v", e.Player, e.Op, e.At, e.Err)
}

func (e *PlacementError) Unwrap() error { return e.Err }

func wrapPlacement(player, op string, at fmt.Stringer, err error) error {
	if err == nil {
		return nil
	}
	return &PlacementError{Player: player, Op: op, At: at.String(), Err: err}
}
