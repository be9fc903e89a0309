package geometry

import (
	"sort"

	"github.com/chewxy/math32"
)

// Orientation is the turn direction of three points.
type Orientation int

const (
	Collinear Orientation = iota
	Clockwise
	Anticlockwise
)

// String returns the orientation name for display
func (o Orientation) String() string {
	switch o {
	case Clockwise:
		return "Clockwise"
	case Anticlockwise:
		return "Anticlockwise"
	default:
		return "Collinear"
	}
}

// Orient classifies the turn a→b→c by the sign of the z component of the cross
// product (b-a)×(c-b).
func Orient(a, b, c Vec2) Orientation {
	z := b.Sub(a).Cross(c.Sub(b))
	switch {
	case z > 0:
		return Anticlockwise
	case z < 0:
		return Clockwise
	default:
		return Collinear
	}
}

// hullDedupEpsilon is the squared distance under which two sorted points are
// treated as the same point.
const hullDedupEpsilon = 1e-12

// ConvexHull returns the convex hull of pts using a Graham scan, starting at
// the lowest point and proceeding anticlockwise. Inputs of three or fewer
// points, and inputs that collapse to fewer than three distinct points, are
// returned unchanged.
func ConvexHull(pts []Vec2) []Vec2 {
	if len(pts) <= 3 {
		return pts
	}

	pivotIdx := 0
	for i, p := range pts {
		q := pts[pivotIdx]
		if p.Y < q.Y || (p.Y == q.Y && p.X < q.X) {
			pivotIdx = i
		}
	}
	pivot := pts[pivotIdx]

	rest := make([]Vec2, 0, len(pts)-1)
	for i, p := range pts {
		if i != pivotIdx {
			rest = append(rest, p)
		}
	}
	sort.SliceStable(rest, func(i, j int) bool {
		ai := polarAngle(pivot, rest[i])
		aj := polarAngle(pivot, rest[j])
		if ai != aj {
			return ai < aj
		}
		return pivot.DistSq(rest[i]) < pivot.DistSq(rest[j])
	})

	sorted := []Vec2{pivot}
	for _, p := range rest {
		if sorted[len(sorted)-1].DistSq(p) < hullDedupEpsilon {
			continue
		}
		sorted = append(sorted, p)
	}
	if len(sorted) < 3 {
		return pts
	}

	hull := make([]Vec2, 0, len(sorted))
	for _, p := range sorted {
		for len(hull) >= 2 && Orient(hull[len(hull)-2], hull[len(hull)-1], p) != Anticlockwise {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	if len(hull) < 3 {
		return pts
	}
	return hull
}

func polarAngle(pivot, p Vec2) float32 {
	d := p.Sub(pivot)
	return math32.Atan2(d.Y, d.X)
}
