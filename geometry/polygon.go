package geometry

// PointInPolygon reports whether p is inside the polygon using the even-odd
// crossing rule. Edge i runs from poly[i] to poly[(i+1)%n]. A point exactly on
// an edge is classified by the half-open band test and the strict crossing
// comparison, so the answer is stable but not topologically exact.
func PointInPolygon(p Vec2, poly []Vec2) bool {
	n := len(poly)
	if n < 3 {
		return false
	}
	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := poly[i], poly[j]
		if (p.Y < a.Y) != (p.Y < b.Y) {
			crossX := a.X + (p.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
			if p.X < crossX {
				inside = !inside
			}
		}
	}
	return inside
}

// Bounds returns the axis-aligned bounding box of the points.
func Bounds(pts []Vec2) Rect {
	if len(pts) == 0 {
		return Rect{}
	}
	r := Rect{Min: pts[0], Max: pts[0]}
	for _, p := range pts[1:] {
		r.Min.X = min(r.Min.X, p.X)
		r.Min.Y = min(r.Min.Y, p.Y)
		r.Max.X = max(r.Max.X, p.X)
		r.Max.Y = max(r.Max.Y, p.Y)
	}
	return r
}

// Centroid returns the mean of the vertices.
func Centroid(pts []Vec2) Vec2 {
	if len(pts) == 0 {
		return Vec2{}
	}
	var sum Vec2
	for _, p := range pts {
		sum = sum.Add(p)
	}
	return sum.Div(float32(len(pts)))
}

// Triangle is three vertices in order.
type Triangle [3]Vec2

// FanTriangles splits the polygon into a fan anchored at vertex 0. Concave
// polygons produce overlapping or inverted triangles; callers accept that.
func FanTriangles(poly []Vec2) []Triangle {
	if len(poly) < 3 {
		return nil
	}
	tris := make([]Triangle, 0, len(poly)-2)
	for i := 1; i+1 < len(poly); i++ {
		tris = append(tris, Triangle{poly[0], poly[i], poly[i+1]})
	}
	return tris
}

// PolygonTouchesRect reports whether a polygon is caught by a selection
// rectangle: its bounding box must meet the rectangle and at least one fan
// triangle must overlap it.
func PolygonTouchesRect(poly []Vec2, r Rect) bool {
	if len(poly) < 3 || !Bounds(poly).Intersects(r) {
		return false
	}
	for _, tri := range FanTriangles(poly) {
		if TriangleOverlapsRect(tri, r) {
			return true
		}
	}
	return false
}

// Expand pushes every vertex radially away from the centroid by dist.
func Expand(poly []Vec2, dist float32) []Vec2 {
	c := Centroid(poly)
	out := make([]Vec2, len(poly))
	for i, p := range poly {
		out[i] = p.Add(p.Sub(c).Normalize().Scale(dist))
	}
	return out
}

// Place scales unit-shape vertices by size, rotates them by angle radians and
// translates them to offset.
func Place(verts []Vec2, size Vec2, angle float32, offset Vec2) []Vec2 {
	out := make([]Vec2, len(verts))
	for i, v := range verts {
		out[i] = v.Mul(size).Rotate(angle).Add(offset)
	}
	return out
}

// MirrorPolygonY negates the Y coordinate of every vertex.
func MirrorPolygonY(poly []Vec2) []Vec2 {
	out := make([]Vec2, len(poly))
	for i, p := range poly {
		out[i] = p.MirrorY()
	}
	return out
}
