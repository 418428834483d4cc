package level

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// document is the on-disk level shape shared by every format.
type document struct {
	ID        string  `yaml:"ID,omitempty" toml:"ID"`
	Name      string  `yaml:"Name,omitempty" toml:"Name"`
	EndY      int     `yaml:"EndY" toml:"EndY"`
	Stars     section `yaml:"Stars" toml:"Stars"`
	Platforms section `yaml:"Platforms" toml:"Platforms"`
}

type section struct {
	Patterns  map[string][]point `yaml:"Patterns" toml:"Patterns"`
	Positions []position         `yaml:"Positions" toml:"Positions"`
}

type point struct {
	X    float64 `yaml:"x" toml:"x"`
	Y    float64 `yaml:"y" toml:"y"`
	Type *int    `yaml:"type" toml:"type"`
}

type position struct {
	X       float64 `yaml:"x" toml:"x"`
	Y       float64 `yaml:"y" toml:"y"`
	Pattern string  `yaml:"pattern" toml:"pattern"`
}

// Extensions returns the supported level file extensions.
func Extensions() []string {
	return []string{".yaml", ".yml", ".json", ".toml"}
}

// Supported reports whether a file extension has a parser.
func Supported(ext string) bool {
	ext = strings.ToLower(ext)
	for _, e := range Extensions() {
		if e == ext {
			return true
		}
	}
	return false
}

// Parse decodes level data in the format named by ext and checks integrity.
func Parse(data []byte, ext string) (Description, error) {
	var doc document
	switch strings.ToLower(ext) {
	case ".yaml", ".yml", ".json":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil {
			return Description{}, fmt.Errorf("level: yaml decode: %w", err)
		}
	case ".toml":
		md, err := toml.Decode(string(data), &doc)
		if err != nil {
			return Description{}, fmt.Errorf("level: toml decode: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return Description{}, fmt.Errorf("level: toml decode: unknown keys %v", undecoded)
		}
	default:
		return Description{}, fmt.Errorf("level: unsupported extension %q", ext)
	}

	desc, err := doc.description()
	if err != nil {
		return Description{}, err
	}
	if err := desc.Validate(); err != nil {
		return Description{}, err
	}
	return desc, nil
}

// LoadFile reads and parses a level file. A level without an ID takes the file name.
func LoadFile(path string) (Description, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Description{}, fmt.Errorf("level: reading %s: %w", path, err)
	}

	ext := filepath.Ext(path)
	desc, err := Parse(data, ext)
	if err != nil {
		return Description{}, fmt.Errorf("level: parsing %s: %w", path, err)
	}
	if desc.ID == "" {
		desc.ID = strings.TrimSuffix(filepath.Base(path), ext)
	}
	if desc.Name == "" {
		desc.Name = desc.ID
	}
	return desc, nil
}

func (d document) description() (Description, error) {
	stars, err := d.Stars.convert("Stars")
	if err != nil {
		return Description{}, err
	}
	platforms, err := d.Platforms.convert("Platforms")
	if err != nil {
		return Description{}, err
	}
	return Description{
		ID:        d.ID,
		Name:      d.Name,
		EndY:      d.EndY,
		Stars:     stars,
		Platforms: platforms,
	}, nil
}

func (s section) convert(name string) (Section, error) {
	out := Section{
		Patterns:   make(map[string][]PatternPoint, len(s.Patterns)),
		Placements: make([]Placement, 0, len(s.Positions)),
	}
	for pname, points := range s.Patterns {
		converted := make([]PatternPoint, len(points))
		for i, p := range points {
			if p.Type == nil {
				return Section{}, &DataIntegrityError{Section: name, Pattern: pname, Index: i, Err: ErrMissingSubtype}
			}
			converted[i] = PatternPoint{OffsetX: p.X, OffsetY: p.Y, Subtype: *p.Type}
		}
		out.Patterns[pname] = converted
	}
	for _, pos := range s.Positions {
		out.Placements = append(out.Placements, Placement{
			Pattern: pos.Pattern,
			OriginX: pos.X,
			OriginY: pos.Y,
		})
	}
	return out, nil
}
