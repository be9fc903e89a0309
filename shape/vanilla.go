package shape

import (
	"github.com/Luexks/luexks-shroud-editor-sub000/geometry"
	"github.com/chewxy/math32"
)

// vanillaNames fixes the order of the built-in shapes. Custom shape indices
// are offset by its length, so entries are only ever appended.
var vanillaNames = []string{
	Square,
	"OCTAGON",
	"HEXAGON",
	"PENTAGON",
	"CIRCLE",
	"ISOTRI",
	"RIGHT_TRI",
	"RHOMBUS",
	"ADAPTER",
	"COMMAND",
}

// VanillaCount is the number of built-in shapes.
func VanillaCount() int { return len(vanillaNames) }

// Vanilla returns a library holding only the built-in shapes. Every shape
// fits the unit square centered on the origin.
func Vanilla() *Library {
	shapes := make([]Shape, 0, len(vanillaNames))
	for _, name := range vanillaNames {
		shapes = append(shapes, Shape{ID: name, Scales: [][]geometry.Vec2{vanillaVerts(name)}})
	}
	return NewLibrary(shapes)
}

func vanillaVerts(name string) []geometry.Vec2 {
	switch name {
	case Square:
		return []geometry.Vec2{{X: -0.5, Y: -0.5}, {X: 0.5, Y: -0.5}, {X: 0.5, Y: 0.5}, {X: -0.5, Y: 0.5}}
	case "OCTAGON":
		return regular(8, math32.Pi/8)
	case "HEXAGON":
		return regular(6, 0)
	case "PENTAGON":
		return regular(5, 0)
	case "CIRCLE":
		return regular(16, 0)
	case "ISOTRI":
		return []geometry.Vec2{{X: -0.5, Y: -0.5}, {X: 0.5, Y: 0}, {X: -0.5, Y: 0.5}}
	case "RIGHT_TRI":
		return []geometry.Vec2{{X: -0.5, Y: -0.5}, {X: 0.5, Y: -0.5}, {X: -0.5, Y: 0.5}}
	case "RHOMBUS":
		return []geometry.Vec2{{X: -0.5, Y: 0}, {X: 0, Y: -0.5}, {X: 0.5, Y: 0}, {X: 0, Y: 0.5}}
	case "ADAPTER":
		return []geometry.Vec2{{X: -0.5, Y: -0.5}, {X: 0.5, Y: -0.25}, {X: 0.5, Y: 0.25}, {X: -0.5, Y: 0.5}}
	case "COMMAND":
		return []geometry.Vec2{{X: -0.5, Y: -0.25}, {X: -0.25, Y: -0.5}, {X: 0.25, Y: -0.5}, {X: 0.5, Y: -0.25}, {X: 0.5, Y: 0.25}, {X: 0.25, Y: 0.5}, {X: -0.25, Y: 0.5}, {X: -0.5, Y: 0.25}}
	}
	return nil
}

// regular returns an n-gon of radius 0.5 starting at phase radians.
func regular(n int, phase float32) []geometry.Vec2 {
	verts := make([]geometry.Vec2, n)
	for i := range verts {
		a := phase + 2*math32.Pi*float32(i)/float32(n)
		verts[i] = geometry.Vec2{X: 0.5 * math32.Cos(a), Y: 0.5 * math32.Sin(a)}
	}
	return verts
}
