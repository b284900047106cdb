package board

import (
	"fmt"
	"maps"
)

// Clone returns an independent copy of the board for a player to explore.
// The layout is rebuilt from the construction parameters and the placement
// records are copied by value. The copy shares the read-only geometry but
// never publishes events.
func (b *Board) Clone() *Board {
	c, err := New(b.layout, b.geometry, WithID(b.id), WithLogger(b.base))
	if err != nil {
		panic(fmt.Sprintf("rebuilding a valid board layout failed: %v", err))
	}

	if c.robber != b.robber {
		c.tiles[c.robber].HasRobber = false
		c.tiles[b.robber].HasRobber = true
		c.robber = b.robber
	}
	c.roads = maps.Clone(b.roads)
	c.buildings = maps.Clone(b.buildings)
	return c
}
