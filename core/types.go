// Package core contains the host value types used throughout the shroud editor:
// angles, color slots and the palette the slots resolve against.
package core

import (
	"fmt"

	"github.com/Luexks/luexks-shroud-editor-sub000/geometry"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// AngleUnit tags the unit an Angle value is stored in.
type AngleUnit int

const (
	UnitRadians AngleUnit = iota
	UnitDegrees
)

// Angle is a rotation stored in either radians or degrees.
type Angle struct {
	Value float32
	Unit  AngleUnit
}

// Radians builds an angle stored in radians.
func Radians(r float32) Angle { return Angle{Value: r, Unit: UnitRadians} }

// Degrees builds an angle stored in degrees.
func Degrees(d float32) Angle { return Angle{Value: d, Unit: UnitDegrees} }

// Radians returns the angle in radians.
func (a Angle) Radians() float32 {
	if a.Unit == UnitDegrees {
		return geometry.DegToRad(a.Value)
	}
	return a.Value
}

// Degrees returns the angle in degrees.
func (a Angle) Degrees() float32 {
	if a.Unit == UnitRadians {
		return geometry.RadToDeg(a.Value)
	}
	return a.Value
}

// InDegrees converts the stored representation to degrees.
func (a Angle) InDegrees() Angle { return Degrees(a.Degrees()) }

// Neg returns the angle mirrored across the x axis.
func (a Angle) Neg() Angle { return Angle{Value: -a.Value, Unit: a.Unit} }

// IsZero reports whether the angle is within float32 epsilon of zero radians.
func (a Angle) IsZero() bool {
	r := a.Radians()
	return r < geometry.Epsilon && r > -geometry.Epsilon
}

// ColorSlot references one of the block's three colors.
type ColorSlot int

const (
	Color1 ColorSlot = iota
	Color2
	LineColor
)

// String returns the slot name for display
func (c ColorSlot) String() string {
	switch c {
	case Color1:
		return "Color1"
	case Color2:
		return "Color2"
	case LineColor:
		return "LineColor"
	default:
		return "Unknown"
	}
}

// ID returns the token used for the slot in shroud text.
func (c ColorSlot) ID() string {
	return fmt.Sprintf("%d", int(c))
}

// ParseColorSlot maps the shroud text tokens "0", "1" and "2" to slots.
func ParseColorSlot(s string) (ColorSlot, bool) {
	switch s {
	case "0":
		return Color1, true
	case "1":
		return Color2, true
	case "2":
		return LineColor, true
	default:
		return 0, false
	}
}

// Next cycles through the three slots.
func (c ColorSlot) Next() ColorSlot {
	return (c + 1) % 3
}

// Palette holds the block's concrete colors that slots resolve against.
type Palette struct {
	Color1    colorful.Color
	Color2    colorful.Color
	LineColor colorful.Color
}

// DefaultPalette is the palette used when no block colors are configured.
func DefaultPalette() Palette {
	p, _ := ParsePalette("#3a6ea5", "#9bb7d4", "#f0f0f0")
	return p
}

// ParsePalette builds a palette from three "#rrggbb" strings.
func ParsePalette(color1, color2, line string) (Palette, error) {
	var p Palette
	var err error
	if p.Color1, err = colorful.Hex(color1); err != nil {
		return Palette{}, fmt.Errorf("color1: %w", err)
	}
	if p.Color2, err = colorful.Hex(color2); err != nil {
		return Palette{}, fmt.Errorf("color2: %w", err)
	}
	if p.LineColor, err = colorful.Hex(line); err != nil {
		return Palette{}, fmt.Errorf("line_color: %w", err)
	}
	return p, nil
}

// Resolve returns the concrete color for a slot.
func (p Palette) Resolve(slot ColorSlot) colorful.Color {
	switch slot {
	case Color2:
		return p.Color2
	case LineColor:
		return p.LineColor
	default:
		return p.Color1
	}
}
