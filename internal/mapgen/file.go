package mapgen

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/mitchelldurbincs/settling/internal/board"
	"github.com/mitchelldurbincs/settling/internal/hex"
)

//go:embed layout.schema.json
var layoutSchemaText string

var layoutSchema = jsonschema.MustCompileString("layout.schema.json", layoutSchemaText)

type layoutFile struct {
	Tiles   []string   `yaml:"tiles"`
	Numbers []int      `yaml:"numbers"`
	Ports   []portFile `yaml:"ports"`
}

type portFile struct {
	Hex      string `yaml:"hex"`
	Type     string `yaml:"type"`
	Vertices []int  `yaml:"vertices"`
}

// LoadLayout reads a YAML layout file
func LoadLayout(path string) (board.Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return board.Layout{}, fmt.Errorf("reading layout file: %w", err)
	}
	layout, err := ParseLayout(data)
	if err != nil {
		return board.Layout{}, fmt.Errorf("%s: %w", path, err)
	}
	return layout, nil
}

// ParseLayout decodes a YAML layout. Hexagons use the "(x, y, z)" notation
// and port types may drop the trailing " port", so "brick" and "3:1" work.
// Whether the layout fits a board is only known once board.New checks it.
func ParseLayout(data []byte) (board.Layout, error) {
	if err := validateDocument(data); err != nil {
		return board.Layout{}, fmt.Errorf("%w: %v", board.ErrInvalidLayout, err)
	}

	var file layoutFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return board.Layout{}, fmt.Errorf("%w: %v", board.ErrInvalidLayout, err)
	}

	layout := board.Layout{
		Tiles:   make([]board.TileType, len(file.Tiles)),
		Numbers: file.Numbers,
		Ports:   make([]board.PortSpec, len(file.Ports)),
	}
	for i, t := range file.Tiles {
		tt := board.TileType(strings.ToLower(strings.TrimSpace(t)))
		if !tt.Valid() {
			return board.Layout{}, fmt.Errorf("%w: tile %d has unknown type %q", board.ErrInvalidLayout, i, t)
		}
		layout.Tiles[i] = tt
	}

	for i, p := range file.Ports {
		spec, err := p.spec()
		if err != nil {
			return board.Layout{}, fmt.Errorf("%w: port %d: %v", board.ErrInvalidLayout, i, err)
		}
		layout.Ports[i] = spec
	}
	return layout, nil
}

func (p portFile) spec() (board.PortSpec, error) {
	h, err := hex.ParseCube(p.Hex)
	if err != nil {
		return board.PortSpec{}, err
	}
	if len(p.Vertices) != 2 {
		return board.PortSpec{}, fmt.Errorf("want 2 vertices, got %d", len(p.Vertices))
	}

	pt := board.PortType(strings.TrimSpace(p.Type))
	if !pt.Valid() {
		pt = board.PortType(strings.TrimSpace(p.Type) + " port")
	}
	if !pt.Valid() {
		return board.PortSpec{}, fmt.Errorf("unknown port type %q", p.Type)
	}
	return board.PortSpec{Hex: h, Type: pt, V1: p.Vertices[0], V2: p.Vertices[1]}, nil
}

// validateDocument checks the shape of a layout file against the embedded
// schema. The YAML is passed through JSON so numbers reach the validator the
// way encoding/json produces them.
func validateDocument(data []byte) error {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return err
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	var normalized any
	if err := json.Unmarshal(raw, &normalized); err != nil {
		return err
	}
	return layoutSchema.Validate(normalized)
}
