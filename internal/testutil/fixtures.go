package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/settling/internal/board"
	"github.com/mitchelldurbincs/settling/internal/geometry"
)

// StandardBoard creates the 37 tile beginner board with logging disabled
func StandardBoard(t *testing.T, opts ...board.Option) *board.Board {
	t.Helper()
	return BoardFromLayout(t, board.StandardLayout(), opts...)
}

// BoardFromLayout builds a standard geometry board from any layout
func BoardFromLayout(t *testing.T, layout board.Layout, opts ...board.Option) *board.Board {
	t.Helper()
	opts = append([]board.Option{board.WithLogger(NopLogger())}, opts...)
	b, err := board.New(layout, geometry.NewStandardBoard(), opts...)
	require.NoError(t, err)
	return b
}

// CountTiles counts tiles of each type
func CountTiles(tiles []board.TileType) map[board.TileType]int {
	counts := make(map[board.TileType]int)
	for _, t := range tiles {
		counts[t]++
	}
	return counts
}
