package board

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/settling/internal/events"
	"github.com/mitchelldurbincs/settling/internal/geometry"
	"github.com/mitchelldurbincs/settling/internal/hex"
)

func TestBoard_MoveRobber(t *testing.T) {
	tests := []struct {
		name    string
		to      hex.Cube
		wantErr error
		rule    bool
	}{
		{"onto a land tile", cube(0, 0, 0), nil, false},
		{"onto the tile it is on", cube(-2, 0, 2), ErrRobberInPlace, true},
		{"onto water", cube(3, 0, -3), ErrMustTargetLand, true},
		{"off the board", cube(4, 0, -4), ErrOffBoard, false},
		{"malformed hexagon", cube(1, 1, 1), hex.ErrInvalidCoordinate, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBoard(t)
			err := b.MoveRobber(tt.to)

			assert.Equal(t, 1, robberCount(b))
			if tt.wantErr == nil {
				require.NoError(t, err)
				assert.Equal(t, tt.to, b.RobberHex())
				tile, _ := b.Tile(tt.to)
				assert.True(t, tile.HasRobber)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.rule, IsRuleViolation(err))
			assert.Equal(t, cube(-2, 0, 2), b.RobberHex())
		})
	}
}

func TestBoard_MoveRobber_ConservesRobber(t *testing.T) {
	b := newTestBoard(t)
	path := []hex.Cube{
		cube(0, 0, 0), cube(0, 0, 0), cube(1, 1, -2), cube(3, 0, -3),
		cube(-2, 0, 2), cube(2, -1, -1), cube(5, 0, -5),
	}
	for _, to := range path {
		_ = b.MoveRobber(to)
		assert.Equal(t, 1, robberCount(b), "after moving to %s", to)
	}
	assert.Equal(t, cube(2, -1, -1), b.RobberHex())
}

func TestBoard_AddRoad_SynonymResolution(t *testing.T) {
	b := newTestBoard(t)

	require.NoError(t, b.AddRoad(cube(1, 0, -1), 3, "alice"))

	assert.True(t, b.HasRoad(cube(0, 0, 0), 0, "alice"))
	assert.True(t, b.HasRoad(cube(0, 0, 0), 0, AnyPlayer))
	assert.True(t, b.HasRoad(cube(1, 0, -1), 3, "alice"))
	assert.False(t, b.HasRoad(cube(0, 0, 0), 0, "bob"))
	assert.False(t, b.HasRoad(cube(0, 0, 0), 1, AnyPlayer))

	owner, ok := b.RoadOwner(cube(0, 0, 0), 0)
	assert.True(t, ok)
	assert.Equal(t, "alice", owner)

	// stored once under the canonical address
	assert.Equal(t, map[geometry.Address]string{geometry.At(hex.Origin, 0): "alice"}, b.Roads())
}

func TestBoard_AddRoad_Rules(t *testing.T) {
	tests := []struct {
		name    string
		hex     hex.Cube
		edge    int
		player  string
		wantErr error
	}{
		{"between two land tiles", cube(0, 0, 0), 2, "bob", nil},
		{"along the coast", cube(2, 0, -2), 0, "bob", nil},
		{"from the water side of the coast", cube(3, 0, -3), 3, "bob", nil},
		{"between two water tiles", cube(3, 0, -3), 4, "bob", ErrRoadNotNearLand},
		{"from water to beyond the board", cube(3, 0, -3), 0, "bob", ErrRoadNotNearLand},
		{"same edge", cube(0, 0, 0), 0, "bob", ErrRoadExists},
		{"same edge from the other side", cube(1, 0, -1), 3, "bob", ErrRoadExists},
		{"no player", cube(0, 0, 0), 3, "", ErrNoPlayer},
		{"bad edge index", cube(0, 0, 0), 6, "bob", ErrInvalidIndex},
		{"off the board", cube(4, 0, -4), 3, "bob", ErrOffBoard},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBoard(t)
			require.NoError(t, b.AddRoad(cube(0, 0, 0), 0, "alice"))

			err := b.AddRoad(tt.hex, tt.edge, tt.player)
			if tt.wantErr == nil {
				require.NoError(t, err)
				assert.True(t, b.HasRoad(tt.hex, tt.edge, tt.player))
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Len(t, b.Roads(), 1)
		})
	}
}

func TestBoard_AddRoad_TwiceAtEverySynonym(t *testing.T) {
	b := newTestBoard(t)
	g := b.Geometry()

	for ordinal := 0; ordinal < 19; ordinal++ {
		h, err := g.HexagonFromOrdinal(ordinal)
		require.NoError(t, err)
		for e := 0; e < 6; e++ {
			for _, s := range g.EdgeSynonyms(h, e) {
				scratch := b.Clone()
				require.NoError(t, scratch.AddRoad(h, e, "alice"))
				err := scratch.AddRoad(s.Hex, s.Index, "bob")
				assert.ErrorIs(t, err, ErrRoadExists, "%s then %s", geometry.At(h, e), s)
			}
		}
	}
}

func TestBoard_AddTown_Rules(t *testing.T) {
	tests := []struct {
		name    string
		hex     hex.Cube
		vertex  int
		player  string
		wantErr error
	}{
		{"far away", cube(-1, -1, 2), 0, "bob", nil},
		{"coastal vertex seen from the water", cube(3, 0, -3), 3, "bob", nil},
		{"same vertex", cube(1, 1, -2), 4, "bob", ErrOccupied},
		{"same vertex from the west", cube(0, 1, -1), 0, "bob", ErrOccupied},
		{"same vertex from the south", cube(1, 0, -1), 2, "bob", ErrOccupied},
		{"one edge clockwise", cube(1, 1, -2), 5, "bob", ErrTooClose},
		{"one edge counter-clockwise", cube(1, 1, -2), 3, "bob", ErrTooClose},
		{"one edge inland", cube(0, 0, 0), 1, "bob", ErrTooClose},
		{"open water", cube(3, 0, -3), 0, "bob", ErrTownNotNearLand},
		{"between water tiles", cube(3, -1, -2), 5, "bob", ErrTownNotNearLand},
		{"no player", cube(-1, -1, 2), 0, "", ErrNoPlayer},
		{"bad vertex index", cube(-1, -1, 2), -1, "bob", ErrInvalidIndex},
		{"malformed hexagon", cube(2, 2, 2), 0, "bob", hex.ErrInvalidCoordinate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBoard(t)
			require.NoError(t, b.AddTown(cube(1, 1, -2), 4, "alice"))

			err := b.AddTown(tt.hex, tt.vertex, tt.player)
			if tt.wantErr == nil {
				require.NoError(t, err)
				assert.True(t, b.HasTown(tt.hex, tt.vertex, tt.player))
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Len(t, b.Buildings(), 1)
		})
	}
}

func TestBoard_AddTown_DistanceRule(t *testing.T) {
	b := newTestBoard(t)
	g := b.Geometry()

	for ordinal := 0; ordinal < 19; ordinal++ {
		h, err := g.HexagonFromOrdinal(ordinal)
		require.NoError(t, err)
		for v := 0; v < 6; v++ {
			placed := b.Clone()
			require.NoError(t, placed.AddTown(h, v, "alice"))
			for _, n := range g.VertexNeighbors(h, v) {
				// out at sea the land check fires first
				if !touchesLand(b, n) {
					continue
				}
				scratch := placed.Clone()
				err := scratch.AddTown(n.Hex, n.Index, "bob")
				assert.ErrorIs(t, err, ErrTooClose, "%s next to %s", n, geometry.At(h, v))
			}
		}
	}
}

func touchesLand(b *Board, vertex geometry.Address) bool {
	for _, s := range b.Geometry().VertexSynonyms(vertex.Hex, vertex.Index) {
		if tile, err := b.Tile(s.Hex); err == nil && !tile.IsWater() {
			return true
		}
	}
	return false
}

func TestBoard_AddInitialTown(t *testing.T) {
	tests := []struct {
		name     string
		roadHex  hex.Cube
		roadEdge int
		wantErr  error
	}{
		{"road leaving the town's hexagon", cube(1, 1, -2), 4, nil},
		{"road ending at the town", cube(1, 1, -2), 3, nil},
		{"road on a neighbor", cube(0, 1, -1), 0, nil},
		{"road between the other two tiles", cube(0, 1, -1), 5, nil},
		{"road elsewhere", cube(0, 0, 0), 3, ErrRoadNotAdjacentToTown},
		{"road on the far side", cube(1, 1, -2), 1, ErrRoadNotAdjacentToTown},
		{"road index out of range", cube(1, 1, -2), 7, ErrInvalidIndex},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBoard(t)
			err := b.AddInitialTown(cube(1, 1, -2), 4, tt.roadHex, tt.roadEdge, "alice")
			if tt.wantErr == nil {
				require.NoError(t, err)
				assert.True(t, b.HasTown(cube(1, 1, -2), 4, "alice"))
				assert.True(t, b.HasRoad(tt.roadHex, tt.roadEdge, "alice"))
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, b.Buildings())
			assert.Empty(t, b.Roads())
		})
	}
}

func TestBoard_AddInitialTown_IsAtomic(t *testing.T) {
	t.Run("road taken", func(t *testing.T) {
		b := newTestBoard(t)
		require.NoError(t, b.AddRoad(cube(1, 1, -2), 4, "bob"))

		err := b.AddInitialTown(cube(1, 1, -2), 4, cube(1, 1, -2), 4, "alice")
		assert.ErrorIs(t, err, ErrRoadExists)
		assert.False(t, b.HasTown(cube(1, 1, -2), 4, AnyPlayer))
	})

	t.Run("town too close", func(t *testing.T) {
		b := newTestBoard(t)
		require.NoError(t, b.AddTown(cube(1, 1, -2), 5, "bob"))

		err := b.AddInitialTown(cube(1, 1, -2), 4, cube(1, 1, -2), 3, "alice")
		assert.ErrorIs(t, err, ErrTooClose)
		assert.False(t, b.HasRoad(cube(1, 1, -2), 3, AnyPlayer))
	})
}

func TestBoard_UpgradeTown(t *testing.T) {
	b := newTestBoard(t)
	require.NoError(t, b.AddTown(cube(1, 1, -2), 4, "alice"))
	require.NoError(t, b.UpgradeTown(cube(1, 1, -2), 4, "alice"))

	assert.True(t, b.HasCity(cube(1, 1, -2), 4, "alice"))
	assert.False(t, b.HasTown(cube(1, 1, -2), 4, "alice"))
	assert.False(t, b.HasTown(cube(1, 1, -2), 4, AnyPlayer))
	assert.True(t, b.HasCity(cube(0, 1, -1), 0, AnyPlayer))

	building, ok := b.BuildingAt(cube(1, 0, -1), 2)
	require.True(t, ok)
	assert.Equal(t, Building{Player: "alice", Kind: City}, building)
}

func TestBoard_UpgradeTown_ThroughSynonym(t *testing.T) {
	b := newTestBoard(t)
	require.NoError(t, b.AddTown(cube(1, 1, -2), 4, "alice"))
	require.NoError(t, b.UpgradeTown(cube(0, 1, -1), 0, "alice"))

	assert.Equal(t, map[geometry.Address]Building{
		geometry.At(cube(1, 1, -2), 4): {Player: "alice", Kind: City},
	}, b.Buildings())
}

func TestBoard_UpgradeTown_Rules(t *testing.T) {
	tests := []struct {
		name    string
		hex     hex.Cube
		vertex  int
		player  string
		wantErr error
	}{
		{"empty vertex", cube(0, 0, 0), 3, "alice", ErrNoTown},
		{"someone else's town", cube(1, 1, -2), 4, "bob", ErrNotOwner},
		{"already a city", cube(-1, -1, 2), 0, "alice", ErrNoTown},
		{"no player", cube(1, 1, -2), 4, "", ErrNoPlayer},
		{"off the board", cube(0, 4, -4), 0, "alice", ErrOffBoard},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBoard(t)
			require.NoError(t, b.AddTown(cube(1, 1, -2), 4, "alice"))
			require.NoError(t, b.AddTown(cube(-1, -1, 2), 0, "alice"))
			require.NoError(t, b.UpgradeTown(cube(-1, -1, 2), 0, "alice"))

			err := b.UpgradeTown(tt.hex, tt.vertex, tt.player)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.True(t, b.HasTown(cube(1, 1, -2), 4, "alice"))
		})
	}
}

func TestBoard_PublishesPlacements(t *testing.T) {
	pub := &recordingPublisher{}
	b := newTestBoard(t, WithPublisher(pub))

	require.NoError(t, b.AddInitialTown(cube(1, 1, -2), 4, cube(1, 1, -2), 4, "alice"))
	require.NoError(t, b.UpgradeTown(cube(1, 1, -2), 4, "alice"))
	require.NoError(t, b.MoveRobber(hex.Origin))
	assert.Error(t, b.AddRoad(cube(1, 1, -2), 4, "bob"))
	assert.Error(t, b.AddRoad(cube(1, 1, -2), 4, ""))

	assert.Equal(t, []string{
		events.TypeBoardCreated,
		events.TypeTownPlaced,
		events.TypeRoadPlaced,
		events.TypeCityUpgraded,
		events.TypeRobberMoved,
		events.TypePlacementRejected,
	}, pub.types())

	town := pub.events[1].(*events.TownPlacedEvent)
	assert.True(t, town.Initial)
	assert.Equal(t, geometry.At(cube(1, 1, -2), 4), town.Vertex)

	rejected := pub.events[5].(*events.PlacementRejectedEvent)
	assert.Equal(t, "bob", rejected.Player)
	assert.Equal(t, "add road", rejected.Op)
	assert.Equal(t, "rule violation: road exists", rejected.Reason)
}

func TestBoard_RejectionsArePlacementErrors(t *testing.T) {
	b := newTestBoard(t)
	require.NoError(t, b.AddTown(cube(1, 1, -2), 4, "alice"))

	err := b.UpgradeTown(cube(1, 1, -2), 4, "bob")
	var pe *PlacementError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "bob", pe.Player)
	assert.Equal(t, "upgrade town", pe.Op)
	assert.Equal(t, "(1, 1, -2):4", pe.At)
	assert.True(t, IsRuleViolation(err))
}
