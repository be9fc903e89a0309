// Package shape holds the polygon templates shroud layers are drawn from: the
// built-in vanilla set plus any custom shapes imported at runtime.
package shape

import (
	"fmt"
	"strconv"

	"github.com/Luexks/luexks-shroud-editor-sub000/geometry"
)

// Square is the one shape whose layers honour taper.
const Square = "SQUARE"

// Shape is an immutable polygon template. Scales hold vertex lists in winding
// order; edge i joins vertex i to vertex (i+1) mod n.
type Shape struct {
	ID      string
	Numeric bool
	Scales  [][]geometry.Vec2
}

// NewNumbered builds a custom shape identified by an integer.
func NewNumbered(id int, scales ...[]geometry.Vec2) Shape {
	return Shape{ID: strconv.Itoa(id), Numeric: true, Scales: scales}
}

// Verts returns the first scale's vertices, or nil for an empty shape.
func (s Shape) Verts() []geometry.Vec2 {
	if len(s.Scales) == 0 {
		return nil
	}
	return s.Scales[0]
}

// Mirrored returns a new shape with id whose single scale is scale 0 of s
// with every y coordinate negated.
func (s Shape) Mirrored(id string, numeric bool) Shape {
	return Shape{
		ID:      id,
		Numeric: numeric,
		Scales:  [][]geometry.Vec2{geometry.MirrorPolygonY(s.Verts())},
	}
}

// MirrorPair records that the shape at Mirror was derived from the shape at
// Source. Both are library indices.
type MirrorPair struct {
	Mirror int
	Source int
}

// Library is the ordered set of shapes available to layers. The first
// VanillaCount entries are the built-in shapes.
type Library struct {
	shapes  []Shape
	vanilla int
	byID    map[string]int
	mirrors map[int]int
	pairs   []MirrorPair
}

// NewLibrary builds a library whose vanilla entries are the given shapes.
func NewLibrary(vanilla []Shape) *Library {
	l := &Library{
		byID:    make(map[string]int),
		mirrors: make(map[int]int),
	}
	for _, s := range vanilla {
		l.add(s)
	}
	l.vanilla = len(l.shapes)
	return l
}

func (l *Library) add(s Shape) {
	if _, exists := l.byID[s.ID]; !exists {
		l.byID[s.ID] = len(l.shapes)
	}
	l.shapes = append(l.shapes, s)
}

// AddCustom appends parsed custom shapes and records their mirror pairs in
// both directions. Pair indices must already be offset by VanillaCount and are
// shifted again by any custom shapes added earlier.
func (l *Library) AddCustom(shapes []Shape, pairs []MirrorPair) error {
	shift := len(l.shapes) - l.vanilla
	end := len(l.shapes) + len(shapes)
	for _, p := range pairs {
		m, s := p.Mirror+shift, p.Source+shift
		if m < l.vanilla || m >= end || s < l.vanilla || s >= end {
			return fmt.Errorf("mirror pair %d/%d out of range", p.Mirror, p.Source)
		}
	}
	for _, s := range shapes {
		l.add(s)
	}
	for _, p := range pairs {
		m, s := p.Mirror+shift, p.Source+shift
		l.mirrors[m] = s
		l.mirrors[s] = m
		l.pairs = append(l.pairs, MirrorPair{Mirror: m, Source: s})
	}
	return nil
}

// Len returns the total number of shapes.
func (l *Library) Len() int { return len(l.shapes) }

// VanillaCount returns the number of built-in shapes.
func (l *Library) VanillaCount() int { return l.vanilla }

// At returns the shape at index i.
func (l *Library) At(i int) Shape { return l.shapes[i] }

// Shapes returns every shape in library order.
func (l *Library) Shapes() []Shape { return l.shapes }

// Custom returns the shapes added after the vanilla set.
func (l *Library) Custom() []Shape { return l.shapes[l.vanilla:] }

// IsVanilla reports whether index i is a built-in shape.
func (l *Library) IsVanilla(i int) bool { return i >= 0 && i < l.vanilla }

// Lookup finds a shape by identifier. Numeric ids match by value, so "0100"
// finds shape 100.
func (l *Library) Lookup(id string) (int, bool) {
	if i, ok := l.byID[id]; ok {
		return i, true
	}
	n, err := strconv.Atoi(id)
	if err != nil {
		return 0, false
	}
	i, ok := l.byID[strconv.Itoa(n)]
	return i, ok
}

// MirrorOf returns the left/right partner of a custom shape.
func (l *Library) MirrorOf(i int) (int, bool) {
	m, ok := l.mirrors[i]
	return m, ok
}

// MirrorPairs returns the recorded pairs in the order they were added.
func (l *Library) MirrorPairs() []MirrorPair { return l.pairs }
