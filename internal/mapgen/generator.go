// Package mapgen produces board layouts: shuffled standard boards from a
// seeded RNG, and hand-made layouts read from YAML files.
package mapgen

import (
	"math/rand"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/settling/internal/board"
)

// Generator handles layout generation with deterministic RNG
type Generator struct {
	rng    *rand.Rand
	logger zerolog.Logger
}

// NewGenerator creates a new layout generator
func NewGenerator(rng *rand.Rand) *Generator {
	return &Generator{
		rng:    rng,
		logger: log.With().Str("component", "mapgen").Logger(),
	}
}

// GenerateLayout shuffles the standard land tiles, numbers and port types.
// The water ring and the port positions stay where they are.
func (g *Generator) GenerateLayout() board.Layout {
	layout := board.StandardLayout()

	land := layout.Tiles[:len(board.StandardLandTiles)]
	g.rng.Shuffle(len(land), func(i, j int) { land[i], land[j] = land[j], land[i] })

	numbers := layout.Numbers
	g.rng.Shuffle(len(numbers), func(i, j int) { numbers[i], numbers[j] = numbers[j], numbers[i] })

	ports := layout.Ports
	g.rng.Shuffle(len(ports), func(i, j int) { ports[i].Type, ports[j].Type = ports[j].Type, ports[i].Type })

	g.logger.Debug().
		Int("land_tiles", len(land)).
		Int("numbers", len(numbers)).
		Int("ports", len(ports)).
		Msg("Shuffled standard layout")

	return layout
}
