// Package level turns a declarative level description (named offset patterns
// plus placements) into absolute-position game objects.
package level

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/uberjump/internal/object"
)

// ReferenceWidth is the screen width level coordinates are authored for.
// A device of width w expands a level with scale factor w / ReferenceWidth.
const ReferenceWidth = 320.0

// Data integrity failures. Every one is fatal to a level load.
var (
	ErrUnknownPattern = errors.New("unknown pattern")
	ErrUnknownSubtype = errors.New("unknown subtype")
	ErrMissingSubtype = errors.New("missing subtype")
)

// DataIntegrityError reports where a level description is inconsistent.
type DataIntegrityError struct {
	Section string // "Stars" or "Platforms"
	Pattern string
	Index   int // entry index within the pattern or placement list, -1 if n/a
	Err     error
}

func (e *DataIntegrityError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("level: %s pattern %q entry %d: %v", e.Section, e.Pattern, e.Index, e.Err)
	}
	return fmt.Sprintf("level: %s pattern %q: %v", e.Section, e.Pattern, e.Err)
}

func (e *DataIntegrityError) Unwrap() error {
	return e.Err
}

// PatternPoint is one object of a pattern, relative to the placement origin.
type PatternPoint struct {
	OffsetX float64
	OffsetY float64
	Subtype int
}

// Placement instantiates a named pattern at an origin.
type Placement struct {
	Pattern string
	OriginX float64
	OriginY float64
}

// Section is the pattern library and placement list of one object class.
type Section struct {
	Patterns   map[string][]PatternPoint
	Placements []Placement
}

// Description is a complete level.
type Description struct {
	ID        string
	Name      string
	EndY      int
	Stars     Section
	Platforms Section
}

// ScaleFor returns the horizontal scale factor for a screen width.
func ScaleFor(screenWidth float64) float64 {
	if screenWidth <= 0 {
		return 1
	}
	return screenWidth / ReferenceWidth
}

// Expand instantiates every placement of the description. Stars come first,
// then platforms; within a class objects follow placement order, then pattern
// order. Only x is scaled so vertical spacing stays authoritative.
// On error no objects are returned.
func Expand(desc Description, scaleFactor float64) ([]object.Object, error) {
	stars, err := expandSection("Stars", desc.Stars, scaleFactor, func(pos mgl64.Vec2, code int) (object.Object, bool) {
		st, ok := object.ParseStarType(code)
		return object.NewStar(pos, st), ok
	})
	if err != nil {
		return nil, err
	}

	platforms, err := expandSection("Platforms", desc.Platforms, scaleFactor, func(pos mgl64.Vec2, code int) (object.Object, bool) {
		pt, ok := object.ParsePlatformType(code)
		return object.NewPlatform(pos, pt), ok
	})
	if err != nil {
		return nil, err
	}

	return append(stars, platforms...), nil
}

type factory func(pos mgl64.Vec2, code int) (object.Object, bool)

func expandSection(name string, sec Section, scale float64, build factory) ([]object.Object, error) {
	var out []object.Object
	for i, pl := range sec.Placements {
		points, ok := sec.Patterns[pl.Pattern]
		if !ok {
			return nil, &DataIntegrityError{Section: name, Pattern: pl.Pattern, Index: i, Err: ErrUnknownPattern}
		}
		for j, pt := range points {
			pos := mgl64.Vec2{
				(pl.OriginX + pt.OffsetX) * scale,
				pl.OriginY + pt.OffsetY,
			}
			obj, ok := build(pos, pt.Subtype)
			if !ok {
				return nil, &DataIntegrityError{
					Section: name,
					Pattern: pl.Pattern,
					Index:   j,
					Err:     fmt.Errorf("%w: %d", ErrUnknownSubtype, pt.Subtype),
				}
			}
			out = append(out, obj)
		}
	}
	return out, nil
}

// Validate checks the description without keeping the expansion.
func (d Description) Validate() error {
	_, err := Expand(d, 1)
	return err
}

// Counts returns how many stars and platforms the level expands to.
func (d Description) Counts() (stars, platforms int) {
	count := func(sec Section) int {
		n := 0
		for _, pl := range sec.Placements {
			n += len(sec.Patterns[pl.Pattern])
		}
		return n
	}
	return count(d.Stars), count(d.Platforms)
}
