// Package render turns the editor session into depth-ordered draw batches
// and hands them to a Backend.
package render

import (
	"sort"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/Luexks/luexks-shroud-editor-sub000/core"
	"github.com/Luexks/luexks-shroud-editor-sub000/editor"
	"github.com/Luexks/luexks-shroud-editor-sub000/geometry"
	"github.com/Luexks/luexks-shroud-editor-sub000/shroud"
)

// BaseIndex is the Item index of the synthetic base block.
const BaseIndex = -1

// referenceOpacity is how strongly the reference image shows under the layers.
const referenceOpacity = 0.5

// HaloKind selects the highlight drawn around a layer.
type HaloKind int

const (
	HaloNone HaloKind = iota
	HaloSelected
	HaloHover
)

// String returns the halo name for display
func (h HaloKind) String() string {
	switch h {
	case HaloNone:
		return "none"
	case HaloSelected:
		return "selected"
	case HaloHover:
		return "hover"
	default:
		return "unknown"
	}
}

// Fixed highlight colors.
var (
	Background    = colorful.Color{R: 0.12, G: 0.12, B: 0.12}
	GridColor     = colorful.Color{R: 0.22, G: 0.22, B: 0.22}
	BoxColor      = colorful.Color{R: 1, G: 1, B: 1}
	HoverColor    = colorful.Color{R: 0, G: 1, B: 0}
	SelectedColor = colorful.Color{R: 0, G: 1, B: 1}
)

// Color returns the halo outline color.
func (h HaloKind) Color() colorful.Color {
	if h == HaloHover {
		return HoverColor
	}
	return SelectedColor
}

// Item is one polygon ready to draw. All points are in screen space.
type Item struct {
	Index      int // layer index, or BaseIndex
	Z          float32
	Points     []geometry.Vec2
	Fill       colorful.Color
	Line       colorful.Color
	Halo       HaloKind
	HaloPoints []geometry.Vec2 // convex hull of Points pushed out by the halo width
}

// Batch is a run of items at the same depth, issued as one draw.
type Batch struct {
	Z     float32
	Items []Item
}

// Segment is a screen-space line.
type Segment struct {
	A, B geometry.Vec2
}

// Scene is a read-only snapshot of everything a frame draws.
type Scene struct {
	Layers     []shroud.Container
	View       geometry.View
	Palette    core.Palette
	Gradient   float32
	Hover      int
	Selected   []int
	BlockSize  geometry.Vec2
	HaloPixels float32
	GridStep   float32 // world units between grid lines, 0 hides the grid
	Reference  *core.Image
	Box        *geometry.Rect
}

// FromSession captures the session's current frame.
func FromSession(s *editor.Session) Scene {
	sc := Scene{
		Layers:     s.Layers.Items,
		View:       s.View,
		Palette:    s.Palette,
		Gradient:   s.Gradient,
		Hover:      s.Hover,
		Selected:   s.Selection(),
		BlockSize:  geometry.Vec2{X: s.Config.BlockSize[0], Y: s.Config.BlockSize[1]},
		HaloPixels: s.Config.HaloPixels,
		GridStep:   s.GridStep(),
		Reference:  s.Reference,
	}
	if s.Box != nil {
		r := s.Box.Rect()
		sc.Box = &r
	}
	return sc
}

func (sc Scene) fill(c1, c2 core.ColorSlot) colorful.Color {
	return sc.Palette.Resolve(c1).BlendRgb(sc.Palette.Resolve(c2), float64(sc.Gradient))
}

func (sc Scene) halo(i int) HaloKind {
	switch {
	case i == sc.Hover:
		return HaloHover
	case contains(sc.Selected, i):
		return HaloSelected
	}
	return HaloNone
}

// Items returns the base block and every live layer sorted by z ascending.
// Equal depths keep collection order with the base block first.
func (sc Scene) Items() []Item {
	items := make([]Item, 0, len(sc.Layers)+1)
	half := sc.BlockSize.Scale(0.5)
	base := []geometry.Vec2{
		{X: -half.X, Y: -half.Y}, {X: half.X, Y: -half.Y},
		{X: half.X, Y: half.Y}, {X: -half.X, Y: half.Y},
	}
	items = append(items, Item{
		Index:  BaseIndex,
		Points: sc.View.PolygonToScreen(base),
		Fill:   sc.fill(core.Color1, core.Color2),
		Line:   sc.Palette.Resolve(core.LineColor),
	})

	for i := range sc.Layers {
		c := &sc.Layers[i]
		if c.PendingDelete {
			continue
		}
		it := Item{
			Index:  i,
			Z:      c.Layer.Offset.Z,
			Points: sc.View.PolygonToScreen(c.Polygon()),
			Fill:   sc.fill(c.Layer.Color1, c.Layer.Color2),
			Line:   sc.Palette.Resolve(c.Layer.LineColor),
			Halo:   sc.halo(i),
		}
		if it.Halo != HaloNone {
			it.HaloPoints = geometry.Expand(geometry.ConvexHull(it.Points), sc.HaloPixels)
		}
		items = append(items, it)
	}

	sort.SliceStable(items, func(a, b int) bool { return items[a].Z < items[b].Z })
	return items
}

// Fit points the view at rect, zoomed so the base block and every live
// layer fit inside it with margin screen units to spare.
func (sc *Scene) Fit(rect geometry.Rect, margin float32) {
	half := sc.BlockSize.Scale(0.5)
	pts := []geometry.Vec2{half.Scale(-1), half}
	for i := range sc.Layers {
		if !sc.Layers[i].PendingDelete {
			pts = append(pts, sc.Layers[i].Polygon()...)
		}
	}
	b := geometry.Bounds(pts)

	sc.View.Rect = rect
	sc.View.Pan = b.Center().Scale(-1)
	w, h := rect.Width()-2*margin, rect.Height()-2*margin
	if w <= 0 || h <= 0 || b.Width() <= 0 || b.Height() <= 0 {
		return
	}
	sc.View.Zoom = min(w/b.Width(), h/b.Height())
}

// Batches groups z-sorted items. A new batch starts whenever the depth rises.
func Batches(items []Item) []Batch {
	var out []Batch
	for _, it := range items {
		if len(out) == 0 || it.Z > out[len(out)-1].Z {
			out = append(out, Batch{Z: it.Z})
		}
		last := &out[len(out)-1]
		last.Items = append(last.Items, it)
	}
	return out
}

// GridLines returns the grid lines crossing the view rectangle.
func (sc Scene) GridLines() []Segment {
	r := sc.View.Rect
	if sc.GridStep <= 0 || r.Width() <= 0 || r.Height() <= 0 {
		return nil
	}
	lo := sc.View.ScreenToWorld(r.Min)
	hi := sc.View.ScreenToWorld(r.Max)
	step := sc.GridStep

	var out []Segment
	for x := geometry.Snap(lo.X, step); x <= hi.X; x += step {
		sx := sc.View.WorldToScreen(geometry.Vec2{X: x}).X
		out = append(out, Segment{A: geometry.Vec2{X: sx, Y: r.Min.Y}, B: geometry.Vec2{X: sx, Y: r.Max.Y}})
	}
	for y := geometry.Snap(lo.Y, step); y <= hi.Y; y += step {
		sy := sc.View.WorldToScreen(geometry.Vec2{Y: y}).Y
		out = append(out, Segment{A: geometry.Vec2{X: r.Min.X, Y: sy}, B: geometry.Vec2{X: r.Max.X, Y: sy}})
	}
	return out
}

// ReferenceRect is where the reference image lands on screen: centred on
// the world origin at one world unit per pixel.
func (sc Scene) ReferenceRect() geometry.Rect {
	if sc.Reference == nil {
		return geometry.Rect{}
	}
	half := geometry.Vec2{X: float32(sc.Reference.Width), Y: float32(sc.Reference.Height)}.Scale(0.5)
	return geometry.RectFromCorners(
		sc.View.WorldToScreen(half.Scale(-1)),
		sc.View.WorldToScreen(half),
	)
}

// Draw renders the scene bottom to top: background, reference image, grid,
// the layer batches and the box-select rectangle.
func Draw(b Backend, sc Scene) error {
	b.Clear(Background)
	if sc.Reference != nil && !sc.Reference.Empty() {
		b.DrawReference(sc.Reference, sc.ReferenceRect())
	}
	if lines := sc.GridLines(); len(lines) > 0 {
		if err := b.DrawLines(lines, GridColor); err != nil {
			return err
		}
	}
	for _, batch := range Batches(sc.Items()) {
		if err := b.DrawBatch(batch); err != nil {
			return err
		}
	}
	if sc.Box != nil {
		c := sc.Box.Corners()
		box := []Segment{{c[0], c[1]}, {c[1], c[2]}, {c[2], c[3]}, {c[3], c[0]}}
		if err := b.DrawLines(box, BoxColor); err != nil {
			return err
		}
	}
	return nil
}

func contains(sel []int, i int) bool {
	for _, s := range sel {
		if s == i {
			return true
		}
	}
	return false
}
