package geometry

// TriangleOverlapsRect runs a separating-axis test between a triangle and an
// axis-aligned box. Five axes are tried: the two box normals and the three
// triangle edge normals. Touching counts as overlapping.
func TriangleOverlapsRect(tri Triangle, r Rect) bool {
	corners := r.Corners()
	axes := [5]Vec2{
		{1, 0},
		{0, 1},
		tri[1].Sub(tri[0]).Perp(),
		tri[2].Sub(tri[1]).Perp(),
		tri[0].Sub(tri[2]).Perp(),
	}
	for _, axis := range axes {
		if axis.X == 0 && axis.Y == 0 {
			continue
		}
		tMin, tMax := project(tri[:], axis)
		bMin, bMax := project(corners[:], axis)
		if tMax < bMin || bMax < tMin {
			return false
		}
	}
	return true
}

func project(pts []Vec2, axis Vec2) (lo, hi float32) {
	lo = pts[0].Dot(axis)
	hi = lo
	for _, p := range pts[1:] {
		d := p.Dot(axis)
		lo = min(lo, d)
		hi = max(hi, d)
	}
	return lo, hi
}
