package primitives

import (
	_ "embed"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"model-viewer/internal/lighting"
)

// Kind names a primitive the factory can build.
type Kind string

const (
	Cube        Kind = "cube"
	Sphere      Kind = "sphere"
	Torus       Kind = "torus"
	Teapot      Kind = "teapot"
	Placeholder Kind = "placeholder"
)

// Kinds lists the user-selectable primitives in toolbar order.
var Kinds = []Kind{Cube, Sphere, Torus, Teapot}

// PrimitiveDef is the definition of one primitive in primitives.yaml.
type PrimitiveDef struct {
	Type      Kind       `yaml:"type"`
	Size      [3]float32 `yaml:"size,omitempty"`
	Radius    float32    `yaml:"radius,omitempty"`
	Tube      float32    `yaml:"tube,omitempty"`
	Rings     int        `yaml:"rings,omitempty"`
	Slices    int        `yaml:"slices,omitempty"`
	Segments  int        `yaml:"segments,omitempty"`
	Color     string     `yaml:"color"`
	Metalness float32    `yaml:"metalness"`
	Roughness float32    `yaml:"roughness"`
}

// RGBA parses Color ("#rrggbb") into 8-bit channels with full alpha.
func (d PrimitiveDef) RGBA() ([4]uint8, error) {
	s := strings.TrimPrefix(strings.TrimSpace(d.Color), "#")
	if len(s) != 6 {
		return [4]uint8{}, fmt.Errorf("primitives: %s: bad color %q", d.Type, d.Color)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return [4]uint8{}, fmt.Errorf("primitives: %s: bad color %q: %w", d.Type, d.Color, err)
	}
	return [4]uint8{uint8(v >> 16), uint8(v >> 8), uint8(v), 255}, nil
}

// surface maps the metal/rough pair of the material onto the lit shader's Blinn-Phong terms.
func (d PrimitiveDef) surface() lighting.Surface {
	return lighting.Surface{Power: 8 + (1-d.Roughness)*56, Strength: 0.15 + 0.5*d.Metalness}
}

//go:embed primitives.yaml
var catalogYAML []byte

// Catalog returns the built-in primitive definitions keyed by kind.
func Catalog() (map[Kind]PrimitiveDef, error) {
	return parseCatalog(catalogYAML)
}

func parseCatalog(data []byte) (map[Kind]PrimitiveDef, error) {
	var defs []PrimitiveDef
	if err := yaml.Unmarshal(data, &defs); err != nil {
		return nil, fmt.Errorf("primitives: %w", err)
	}
	out := make(map[Kind]PrimitiveDef, len(defs))
	for _, d := range defs {
		if _, err := d.RGBA(); err != nil {
			return nil, err
		}
		out[d.Type] = d
	}
	for _, k := range []Kind{Cube, Sphere, Torus, Teapot, Placeholder} {
		if _, ok := out[k]; !ok {
			return nil, fmt.Errorf("primitives: catalog has no %q", k)
		}
	}
	return out, nil
}
