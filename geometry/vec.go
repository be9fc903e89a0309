package geometry

import "github.com/chewxy/math32"

// Vec2 is a point or direction on the editing plane.
type Vec2 struct {
	X, Y float32
}

// V2 is shorthand for Vec2{x, y}.
func V2(x, y float32) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(s float32) Vec2 { return Vec2{v.X * s, v.Y * s} }
func (v Vec2) Mul(o Vec2) Vec2 { return Vec2{v.X * o.X, v.Y * o.Y} }
func (v Vec2) Dot(o Vec2) float32 { return v.X*o.X + v.Y*o.Y }
func (v Vec2) Cross(o Vec2) float32 { return v.X*o.Y - v.Y*o.X }
func (v Vec2) LenSq() float32 { return v.X*v.X + v.Y*v.Y }
func (v Vec2) Len() float32 { return math32.Sqrt(v.LenSq()) }
func (v Vec2) MirrorY() Vec2 { return Vec2{v.X, -v.Y} }
func (v Vec2) DistSq(o Vec2) float32 { return v.Sub(o).LenSq() }
func (v Vec2) Perp() Vec2 { return Vec2{-v.Y, v.X} }
func (v Vec2) Div(s float32) Vec2 { return Vec2{v.X / s, v.Y / s} }
func (v Vec2) Equal(o Vec2) bool { return v.X == o.X && v.Y == o.Y }
func (v Vec2) Lerp(o Vec2, t float32) Vec2 {
	return Vec2{v.X + (o.X-v.X)*t, v.Y + (o.Y-v.Y)*t}
}

// Normalize returns v scaled to unit length, or the zero vector if v is zero.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return v.Div(l)
}

// Rotate rotates v counterclockwise by rad radians.
func (v Vec2) Rotate(rad float32) Vec2 {
	s, c := math32.Sin(rad), math32.Cos(rad)
	return Vec2{v.X*c - v.Y*s, v.X*s + v.Y*c}
}

// Vec3 is a layer offset. Z only orders layers for drawing.
type Vec3 struct {
	X, Y, Z float32
}

// XY drops the depth component.
func (v Vec3) XY() Vec2 { return Vec2{v.X, v.Y} }

// WithXY replaces the planar components and keeps Z.
func (v Vec3) WithXY(p Vec2) Vec3 { return Vec3{p.X, p.Y, v.Z} }

// MirrorY negates the Y component.
func (v Vec3) MirrorY() Vec3 { return Vec3{v.X, -v.Y, v.Z} }

// Rect is an axis-aligned rectangle. Min holds the smaller coordinates.
type Rect struct {
	Min, Max Vec2
}

// RectFromCorners builds a normalized rectangle from two opposite corners.
func RectFromCorners(a, b Vec2) Rect {
	return Rect{
		Min: Vec2{min(a.X, b.X), min(a.Y, b.Y)},
		Max: Vec2{max(a.X, b.X), max(a.Y, b.Y)},
	}
}

// RectFromSize builds a rectangle from its minimum corner and size.
func RectFromSize(origin, size Vec2) Rect {
	return Rect{Min: origin, Max: origin.Add(size)}
}

func (r Rect) Width() float32 { return r.Max.X - r.Min.X }
func (r Rect) Height() float32 { return r.Max.Y - r.Min.Y }
func (r Rect) Size() Vec2 { return r.Max.Sub(r.Min) }

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Vec2 {
	return Vec2{(r.Min.X + r.Max.X) / 2, (r.Min.Y + r.Max.Y) / 2}
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Intersects reports whether the two rectangles overlap or touch.
func (r Rect) Intersects(o Rect) bool {
	return r.Min.X <= o.Max.X && o.Min.X <= r.Max.X &&
		r.Min.Y <= o.Max.Y && o.Min.Y <= r.Max.Y
}

// Corners returns the four corners in counterclockwise order starting at Min.
func (r Rect) Corners() [4]Vec2 {
	return [4]Vec2{
		r.Min,
		{r.Max.X, r.Min.Y},
		r.Max,
		{r.Min.X, r.Max.Y},
	}
}
