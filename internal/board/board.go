// Package board holds the authoritative state of a settlement board: tiles,
// ports, the robber and every road, town and city placed by the players.
//
// Edges and vertices are stored under the single address they were placed
// at. Every read expands the queried address into its synonyms first, so a
// road placed at ((1, 0, -1), 3) is found again at ((0, 0, 0), 0).
package board

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/settling/internal/events"
	"github.com/mitchelldurbincs/settling/internal/geometry"
	"github.com/mitchelldurbincs/settling/internal/hex"
)

// AnyPlayer matches every owner in the Has* queries
const AnyPlayer = ""

// PortSpec places one port on the two vertices of a hexagon's outer edge
type PortSpec struct {
	Hex  hex.Cube
	Type PortType
	V1   int
	V2   int
}

// Layout is everything needed to lay out a board.
//
// Tiles are listed in ordinal order. Numbers are handed out in order to the
// resource tiles only; water and desert tiles are skipped.
type Layout struct {
	Tiles   []TileType
	Numbers []int
	Ports   []PortSpec
}

func (l Layout) clone() Layout {
	return Layout{
		Tiles:   append([]TileType(nil), l.Tiles...),
		Numbers: append([]int(nil), l.Numbers...),
		Ports:   append([]PortSpec(nil), l.Ports...),
	}
}

// Board is the mutable game board. It is not safe for concurrent use; hand
// players a Clone instead of the live board.
type Board struct {
	id        string
	geometry  geometry.Geometry
	layout    Layout
	tiles     []Tile
	ports     map[geometry.Address]PortType
	roads     map[geometry.Address]string
	buildings map[geometry.Address]Building
	robber    int

	base      zerolog.Logger
	logger    zerolog.Logger
	publisher events.Publisher
}

// Option configures a Board at construction
type Option func(*Board)

// WithLogger replaces the default component logger
func WithLogger(logger zerolog.Logger) Option {
	return func(b *Board) { b.base = logger }
}

// WithPublisher publishes every successful or rejected mutation
func WithPublisher(p events.Publisher) Option {
	return func(b *Board) { b.publisher = p }
}

// WithID sets the board ID carried by published events
func WithID(id string) Option {
	return func(b *Board) { b.id = id }
}

// New lays out a board. The geometry decides how many tiles there are and
// how coordinates map onto the tile list.
func New(layout Layout, geom geometry.Geometry, opts ...Option) (*Board, error) {
	b := &Board{
		id:        uuid.New().String(),
		geometry:  geom,
		layout:    layout.clone(),
		ports:     make(map[geometry.Address]PortType),
		roads:     make(map[geometry.Address]string),
		buildings: make(map[geometry.Address]Building),
		robber:    -1,
		base:      log.With().Str("component", "board").Logger(),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.logger = b.base.With().Str("board_id", b.id).Logger()

	if err := b.setUpTiles(); err != nil {
		return nil, err
	}
	if err := b.setUpPorts(); err != nil {
		return nil, err
	}

	robberHex, _ := b.geometry.HexagonFromOrdinal(b.robber)
	b.logger.Debug().
		Int("tiles", len(b.tiles)).
		Int("ports", len(b.layout.Ports)).
		Stringer("robber", robberHex).
		Msg("Board laid out")
	b.publish(events.NewBoardCreatedEvent(b.id, len(b.tiles), len(b.layout.Ports), robberHex))

	return b, nil
}

func (b *Board) setUpTiles() error {
	want := b.geometry.TileCount()
	if len(b.layout.Tiles) != want {
		return fmt.Errorf("%w: %d tiles given, board has %d", ErrInvalidLayout, len(b.layout.Tiles), want)
	}

	b.tiles = make([]Tile, want)
	next := 0
	for i, tt := range b.layout.Tiles {
		if !tt.Valid() {
			return fmt.Errorf("%w: tile %d has unknown type %q", ErrInvalidLayout, i, tt)
		}
		b.tiles[i] = Tile{Type: tt, Number: NoNumber}
		if !tt.IsResource() {
			continue
		}
		if next >= len(b.layout.Numbers) {
			return fmt.Errorf("%w: ran out of numbers at tile %d", ErrInvalidLayout, i)
		}
		n := b.layout.Numbers[next]
		if !ValidNumber(n) {
			return fmt.Errorf("%w: tile %d cannot carry number %d", ErrInvalidLayout, i, n)
		}
		b.tiles[i].Number = n
		next++
	}
	if next != len(b.layout.Numbers) {
		return fmt.Errorf("%w: %d numbers left unused", ErrInvalidLayout, len(b.layout.Numbers)-next)
	}

	for i, t := range b.tiles {
		if t.Type == Desert {
			b.tiles[i].HasRobber = true
			b.robber = i
			return nil
		}
	}
	return fmt.Errorf("%w: no desert for the robber", ErrInvalidLayout)
}

func (b *Board) setUpPorts() error {
	for _, p := range b.layout.Ports {
		if !p.Type.Valid() {
			return fmt.Errorf("%w: unknown port type %q", ErrInvalidLayout, p.Type)
		}
		if err := b.checkHex(p.Hex); err != nil {
			return fmt.Errorf("%w: port at %s: %v", ErrInvalidLayout, p.Hex, err)
		}
		if !b.tileAt(p.Hex).IsWater() {
			return fmt.Errorf("%w: port at %s is not on water", ErrInvalidLayout, p.Hex)
		}
		if !hex.ValidIndex(p.V1) || !hex.ValidIndex(p.V2) {
			return fmt.Errorf("%w: port at %s has vertices %d, %d", ErrInvalidLayout, p.Hex, p.V1, p.V2)
		}
		b.ports[geometry.At(p.Hex, p.V1)] = p.Type
		b.ports[geometry.At(p.Hex, p.V2)] = p.Type
	}
	return nil
}

// ID identifies the board in published events
func (b *Board) ID() string { return b.id }

// Geometry returns the coordinate oracle the board was built on
func (b *Board) Geometry() geometry.Geometry { return b.geometry }

// Layout returns a copy of the construction parameters
func (b *Board) Layout() Layout { return b.layout.clone() }

// Tile looks up a hexagon through its storage ordinal
func (b *Board) Tile(h hex.Cube) (Tile, error) {
	ordinal, err := b.ordinal(h)
	if err != nil {
		return Tile{}, err
	}
	return b.tiles[ordinal], nil
}

// Tiles returns a copy of every tile in ordinal order
func (b *Board) Tiles() []Tile {
	return append([]Tile(nil), b.tiles...)
}

// RobberHex returns the tile currently holding the robber
func (b *Board) RobberHex() hex.Cube {
	h, _ := b.geometry.HexagonFromOrdinal(b.robber)
	return h
}

// Port returns the port at (h, v) or at any synonym of it
func (b *Board) Port(h hex.Cube, v int) (PortType, bool) {
	if b.checkAddress(h, v) != nil {
		return "", false
	}
	for _, s := range b.geometry.VertexSynonyms(h, v) {
		if p, ok := b.ports[s]; ok {
			return p, true
		}
	}
	return "", false
}

// checkHex keeps malformed and off-board coordinates out of the geometry
func (b *Board) checkHex(h hex.Cube) error {
	if !h.Valid() {
		return fmt.Errorf("%w: %s", hex.ErrInvalidCoordinate, h)
	}
	if !b.geometry.Contains(h) {
		return fmt.Errorf("%w: %s", ErrOffBoard, h)
	}
	return nil
}

func (b *Board) checkAddress(h hex.Cube, i int) error {
	if err := b.checkHex(h); err != nil {
		return err
	}
	if !hex.ValidIndex(i) {
		return fmt.Errorf("%w: got %d", ErrInvalidIndex, i)
	}
	return nil
}

func (b *Board) ordinal(h hex.Cube) (int, error) {
	if err := b.checkHex(h); err != nil {
		return 0, err
	}
	return b.geometry.OrdinalFromHexagon(h)
}

// tileAt treats everything beyond the board edge as open water
func (b *Board) tileAt(h hex.Cube) Tile {
	if !b.geometry.Contains(h) {
		return Tile{Type: Water}
	}
	ordinal, err := b.geometry.OrdinalFromHexagon(h)
	if err != nil {
		return Tile{Type: Water}
	}
	return b.tiles[ordinal]
}

func (b *Board) publish(e events.Event) {
	if b.publisher != nil {
		b.publisher.Publish(e)
	}
}
