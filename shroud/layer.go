// Package shroud models the ordered collection of shroud layers attached to a
// block, including the mirror pairs and groups that reference layers by index.
package shroud

import (
	"fmt"

	"github.com/Luexks/luexks-shroud-editor-sub000/core"
	"github.com/Luexks/luexks-shroud-editor-sub000/geometry"
	"github.com/Luexks/luexks-shroud-editor-sub000/shape"
)

const (
	NoMirror = -1 // Container.Mirror when the layer has no partner
	NoGroup  = -1 // Container.Group when the layer is ungrouped
)

// Default layer values. Absent fields in shroud text take these values.
var (
	DefaultSize  = geometry.Vec2{X: 10, Y: 5}
	DefaultTaper = float32(1)
)

// Layer is one visual layer of a block's shroud.
type Layer struct {
	Shape     string // shape identifier as written: a vanilla name or a number
	Size      geometry.Vec2
	Offset    geometry.Vec3
	Angle     core.Angle
	Taper     float32 // only meaningful for SQUARE layers
	Color1    core.ColorSlot
	Color2    core.ColorSlot
	LineColor core.ColorSlot
}

// DefaultLayer returns a SQUARE layer with default size, angle, taper and colors.
func DefaultLayer() Layer {
	return Layer{
		Shape:     shape.Square,
		Size:      DefaultSize,
		Angle:     core.Degrees(0),
		Taper:     DefaultTaper,
		Color1:    core.Color1,
		Color2:    core.Color2,
		LineColor: core.LineColor,
	}
}

// Container is a layer plus the editor state derived from it.
type Container struct {
	Layer Layer

	// Verts caches the resolved shape's first scale so drawing does not look
	// the shape up every frame. ShapeID and ShapeIndex identify that shape.
	Verts      []geometry.Vec2
	ShapeID    string
	ShapeIndex int

	Mirror int // index of the mirror partner, or NoMirror
	Group  int // index into Collection.Groups, or NoGroup

	PendingDelete bool
}

// NewContainer resolves the layer's shape against lib.
func NewContainer(l Layer, lib *shape.Library) (Container, error) {
	idx, ok := lib.Lookup(l.Shape)
	if !ok {
		return Container{}, fmt.Errorf("shape %q not found", l.Shape)
	}
	c := Container{Layer: l, Mirror: NoMirror, Group: NoGroup}
	c.assignShape(idx, lib)
	return c, nil
}

func (c *Container) assignShape(idx int, lib *shape.Library) {
	s := lib.At(idx)
	c.Layer.Shape = s.ID
	c.ShapeID = s.ID
	c.ShapeIndex = idx
	c.Verts = append([]geometry.Vec2(nil), s.Verts()...)
}

// IsSquare reports whether the layer's shape honours taper.
func (c *Container) IsSquare() bool { return c.ShapeID == shape.Square }

// Polygon returns the layer outline in world coordinates. SQUARE layers have
// their +x edge scaled vertically by the taper.
func (c *Container) Polygon() []geometry.Vec2 {
	verts := c.Verts
	if c.IsSquare() && c.Layer.Taper != 1 {
		verts = make([]geometry.Vec2, len(c.Verts))
		for i, v := range c.Verts {
			if v.X > 0 {
				v.Y *= c.Layer.Taper
			}
			verts[i] = v
		}
	}
	return geometry.Place(verts, c.Layer.Size, c.Layer.Angle.Radians(), c.Layer.Offset.XY())
}
