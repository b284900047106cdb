package board

import "github.com/mitchelldurbincs/settling/internal/hex"

// StandardLandTiles are the 19 land tiles of the beginner board in ordinal
// order, center first.
var StandardLandTiles = []TileType{
	Wheat, Wood, Sheep, Sheep, Wood, Ore, Brick, Wheat, Ore, Wood,
	Wheat, Ore, Brick, Desert, Brick, Wood, Sheep, Wheat, Sheep,
}

// StandardNumbers are handed to the resource tiles in ordinal order
var StandardNumbers = []int{9, 10, 8, 12, 5, 4, 3, 11, 6, 11, 9, 6, 4, 3, 10, 2, 8, 5}

// StandardPorts are keyed on the water ring. Each pair of vertices faces the
// coast, so a town on the neighbouring land tile reaches the port through
// vertex synonyms.
var StandardPorts = []PortSpec{
	{Hex: hex.NewCube(3, 0, -3), Type: GenericPort, V1: 3, V2: 4},
	{Hex: hex.NewCube(1, 2, -3), Type: BrickPort, V1: 4, V2: 5},
	{Hex: hex.NewCube(-1, 3, -2), Type: WoodPort, V1: 4, V2: 5},
	{Hex: hex.NewCube(-3, 3, 0), Type: GenericPort, V1: 5, V2: 0},
	{Hex: hex.NewCube(-3, 1, 2), Type: WheatPort, V1: 0, V2: 1},
	{Hex: hex.NewCube(-2, -1, 3), Type: OrePort, V1: 0, V2: 1},
	{Hex: hex.NewCube(0, -3, 3), Type: GenericPort, V1: 1, V2: 2},
	{Hex: hex.NewCube(2, -3, 1), Type: SheepPort, V1: 2, V2: 3},
	{Hex: hex.NewCube(3, -2, -1), Type: GenericPort, V1: 2, V2: 3},
}

// StandardLayout is the 37 tile beginner board: the land tiles ringed by 18
// water tiles.
func StandardLayout() Layout {
	tiles := make([]TileType, 0, hex.TilesWithinRing(3))
	tiles = append(tiles, StandardLandTiles...)
	for len(tiles) < cap(tiles) {
		tiles = append(tiles, Water)
	}
	return Layout{
		Tiles:   tiles,
		Numbers: append([]int(nil), StandardNumbers...),
		Ports:   append([]PortSpec(nil), StandardPorts...),
	}
}
