package geometry

// View maps world coordinates onto a screen rectangle.
type View struct {
	Rect Rect    // screen area the world is drawn into
	Pan  Vec2    // world-space pan
	Zoom float32 // screen units per world unit
}

// WorldToScreen maps a world point to screen space: center + (world + pan) * zoom.
func (v View) WorldToScreen(w Vec2) Vec2 {
	return v.Rect.Center().Add(w.Add(v.Pan).Scale(v.Zoom))
}

// ScreenToWorld is the inverse of WorldToScreen.
func (v View) ScreenToWorld(s Vec2) Vec2 {
	return s.Sub(v.Rect.Center()).Div(v.Zoom).Sub(v.Pan)
}

// PolygonToScreen maps every vertex of a world polygon to screen space.
func (v View) PolygonToScreen(poly []Vec2) []Vec2 {
	out := make([]Vec2, len(poly))
	for i, p := range poly {
		out[i] = v.WorldToScreen(p)
	}
	return out
}

// ScreenDeltaToWorld converts a pointer movement into a world-space movement.
func (v View) ScreenDeltaToWorld(d Vec2) Vec2 {
	return d.Div(v.Zoom)
}

// GridStep returns the grid size to draw and snap to at the current zoom. The
// base size doubles until one cell spans at least minPixels on screen.
func (v View) GridStep(base, minPixels float32) float32 {
	if base <= 0 || v.Zoom <= 0 {
		return base
	}
	step := base
	for step*v.Zoom < minPixels {
		step *= 2
	}
	return step
}
