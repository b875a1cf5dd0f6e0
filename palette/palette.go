// Package palette holds the car paint palettes offered by the editor.
// Besides the built-in palettes, extra ones can be declared in a TOML file:
//
//	[[palette]]
//	key = "fleet"
//	name = "Fleet"
//	colors = [
//	  { name = "Company Blue", hex = "#0A3D91" },
//	]
package palette

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/esimov/colorwheel/utils"
	"github.com/pelletier/go-toml/v2"
)

// Color is a named paint color.
type Color struct {
	Name string `toml:"name" json:"name"`
	Hex  string `toml:"hex" json:"hex"`
}

// Palette is a named group of paint colors.
type Palette struct {
	Key    string  `toml:"key" json:"key"`
	Name   string  `toml:"name" json:"name"`
	Colors []Color `toml:"colors" json:"colors"`
}

var builtin = []Palette{
	{
		Key:  "classic",
		Name: "Classic",
		Colors: []Color{
			{"Deep Black", "#0a0a0a"},
			{"Pearl White", "#f8f8f8"},
			{"Metallic Silver", "#c0c0c0"},
			{"Graphite Grey", "#4a4a4a"},
			{"Crimson Red", "#8b0000"},
		},
	},
	{
		Key:  "metallic",
		Name: "Metallic",
		Colors: []Color{
			{"Metallic Blue", "#1e3a8a"},
			{"Emerald Green", "#047857"},
			{"Champagne Gold", "#d4af37"},
			{"Dark Bronze", "#8b4513"},
			{"Titanium", "#878681"},
		},
	},
	{
		Key:  "vibrant",
		Name: "Vibrant",
		Colors: []Color{
			{"Ferrari Red", "#dc143c"},
			{"Racing Yellow", "#ffd700"},
			{"Sunset Orange", "#ff6b35"},
			{"Electric Blue", "#0066ff"},
			{"Lime Green", "#32cd32"},
		},
	},
	{
		Key:  "luxury",
		Name: "Luxury",
		Colors: []Color{
			{"Carbon Black", "#1a1a1a"},
			{"Midnight Blue", "#191970"},
			{"Burgundy", "#800020"},
			{"British Green", "#004d40"},
			{"Nardo Grey", "#808080"},
		},
	},
	{
		Key:  "matte",
		Name: "Matte",
		Colors: []Color{
			{"Matte Black", "#28282b"},
			{"Matte Grey", "#71797e"},
			{"Matte White", "#e8e8e8"},
			{"Matte Blue", "#2c5f8d"},
			{"Military Green", "#4b5320"},
		},
	},
}

// Builtin returns a copy of the built-in palettes.
func Builtin() []Palette {
	out := make([]Palette, len(builtin))
	for i, p := range builtin {
		out[i] = p
		out[i].Colors = slices.Clone(p.Colors)
	}
	return out
}

// Registry is a searchable set of palettes.
type Registry struct {
	palettes []Palette
}

// NewRegistry returns the built-in palettes followed by the extra ones.
// An extra palette reusing a built-in key replaces it.
func NewRegistry(extra ...Palette) *Registry {
	r := &Registry{palettes: Builtin()}
	for _, p := range extra {
		i := slices.IndexFunc(r.palettes, func(q Palette) bool { return q.Key == p.Key })
		if i >= 0 {
			r.palettes[i] = p
			continue
		}
		r.palettes = append(r.palettes, p)
	}
	return r
}

// Palettes returns the palettes of the registry in display order.
func (r *Registry) Palettes() []Palette {
	return r.palettes
}

// Palette returns a palette by its key.
func (r *Registry) Palette(key string) (Palette, bool) {
	for _, p := range r.palettes {
		if strings.EqualFold(p.Key, key) {
			return p, true
		}
	}
	return Palette{}, false
}

// Lookup finds a color by its name, case insensitively.
func (r *Registry) Lookup(name string) (Color, bool) {
	name = strings.TrimSpace(name)
	for _, p := range r.palettes {
		for _, c := range p.Colors {
			if strings.EqualFold(c.Name, name) {
				return c, true
			}
		}
	}
	return Color{}, false
}

// Lookup finds a built-in color by its name.
func Lookup(name string) (Color, bool) {
	return NewRegistry().Lookup(name)
}

// Resolve turns either a color name or a hex string into a hex string.
func (r *Registry) Resolve(s string) (string, error) {
	if c, ok := r.Lookup(s); ok {
		return c.Hex, nil
	}
	c, err := utils.ParseHex(s)
	if err != nil {
		return "", fmt.Errorf("%q is neither a palette color nor a hex color", s)
	}
	return utils.RGBToHex(c), nil
}

// Load decodes the palettes declared in a TOML document.
func Load(r io.Reader) ([]Palette, error) {
	var doc struct {
		Palettes []Palette `toml:"palette"`
	}
	if err := toml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("unable to decode palettes: %w", err)
	}
	for _, p := range doc.Palettes {
		if err := p.validate(); err != nil {
			return nil, err
		}
	}
	return doc.Palettes, nil
}

func (p Palette) validate() error {
	if p.Key == "" {
		return fmt.Errorf("palette %q has no key", p.Name)
	}
	for _, c := range p.Colors {
		if _, err := utils.ParseHex(c.Hex); err != nil {
			return fmt.Errorf("palette %s, color %q: %w", p.Key, c.Name, err)
		}
	}
	return nil
}
