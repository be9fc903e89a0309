// Package geometry provides the single-precision 2D math used by the shroud
// editor: vectors, polygons, overlap tests, convex hulls and view transforms.
package geometry

import "github.com/chewxy/math32"

// Epsilon is the float32 machine epsilon.
const Epsilon float32 = 1.1920929e-07

// Clamp limits x to the range [lo, hi].
func Clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Snap rounds x to the nearest multiple of step. A non-positive step leaves x unchanged.
func Snap(x, step float32) float32 {
	if step <= 0 {
		return x
	}
	return math32.Floor(x/step+0.5) * step
}

// SnapVec snaps both components of v independently to the grid.
func SnapVec(v Vec2, grid float32) Vec2 {
	return Vec2{X: Snap(v.X, grid), Y: Snap(v.Y, grid)}
}

// SnapAngle rounds an angle in degrees to the nearest multiple of stepDegrees.
func SnapAngle(degrees, stepDegrees float32) float32 {
	return Snap(degrees, stepDegrees)
}

// DegToRad converts degrees to radians.
func DegToRad(d float32) float32 {
	return d * math32.Pi / 180
}

// RadToDeg converts radians to degrees.
func RadToDeg(r float32) float32 {
	return r * 180 / math32.Pi
}

// PingPong maps t onto a triangle wave that runs 0→1→0 once per period.
func PingPong(t, period float32) float32 {
	if period <= 0 {
		return 0
	}
	phase := math32.Mod(t, 2*period)
	if phase < 0 {
		phase += 2 * period
	}
	if phase > period {
		return (2*period - phase) / period
	}
	return phase / period
}
