package render

import (
	"fmt"
	"image"
	"io"

	"github.com/gogpu/gg"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/Luexks/luexks-shroud-editor-sub000/core"
	"github.com/Luexks/luexks-shroud-editor-sub000/geometry"
)

// Backend draws what Draw emits. DrawBatch is one draw call: every fill in
// the batch, then every outline, then every halo.
type Backend interface {
	Clear(bg colorful.Color)
	DrawReference(img *core.Image, dst geometry.Rect)
	DrawLines(lines []Segment, c colorful.Color) error
	DrawBatch(b Batch) error
}

// GGBackend rasterises scenes into an RGBA image with gogpu/gg.
type GGBackend struct {
	dc        *gg.Context
	LineWidth float64
}

// NewGGBackend creates a backend drawing into a width x height image.
func NewGGBackend(width, height int) *GGBackend {
	dc := gg.NewContext(width, height)
	dc.SetFillRule(gg.FillRuleEvenOdd)
	return &GGBackend{dc: dc, LineWidth: 1}
}

// Clear fills the whole image with bg.
func (g *GGBackend) Clear(bg colorful.Color) {
	g.dc.ClearWithColor(gg.RGBA{R: bg.R, G: bg.G, B: bg.B, A: 1})
}

// DrawReference scales the reference image into dst.
func (g *GGBackend) DrawReference(img *core.Image, dst geometry.Rect) {
	if img == nil || img.Empty() {
		return
	}
	g.dc.DrawImageEx(gg.ImageBufFromImage(img.RGBA()), gg.DrawImageOptions{
		X:             float64(dst.Min.X),
		Y:             float64(dst.Min.Y),
		DstWidth:      float64(dst.Width()),
		DstHeight:     float64(dst.Height()),
		Interpolation: gg.InterpBilinear,
		Opacity:       referenceOpacity,
		BlendMode:     gg.BlendNormal,
	})
}

// DrawLines strokes every segment in one color.
func (g *GGBackend) DrawLines(lines []Segment, c colorful.Color) error {
	if len(lines) == 0 {
		return nil
	}
	for _, l := range lines {
		g.dc.MoveTo(float64(l.A.X), float64(l.A.Y))
		g.dc.LineTo(float64(l.B.X), float64(l.B.Y))
	}
	g.dc.SetColor(c)
	g.dc.SetLineWidth(g.LineWidth)
	return g.dc.Stroke()
}

// DrawBatch fills, outlines and highlights every item of the batch.
func (g *GGBackend) DrawBatch(b Batch) error {
	for _, it := range b.Items {
		g.path(it.Points)
		g.dc.SetColor(it.Fill)
		if err := g.dc.Fill(); err != nil {
			return fmt.Errorf("fill layer %d: %w", it.Index, err)
		}
	}
	g.dc.SetLineWidth(g.LineWidth)
	for _, it := range b.Items {
		g.path(it.Points)
		g.dc.SetColor(it.Line)
		if err := g.dc.Stroke(); err != nil {
			return fmt.Errorf("outline layer %d: %w", it.Index, err)
		}
	}
	for _, it := range b.Items {
		if it.Halo == HaloNone {
			continue
		}
		g.path(it.HaloPoints)
		g.dc.SetColor(it.Halo.Color())
		if err := g.dc.Stroke(); err != nil {
			return fmt.Errorf("halo layer %d: %w", it.Index, err)
		}
	}
	return nil
}

func (g *GGBackend) path(pts []geometry.Vec2) {
	if len(pts) == 0 {
		return
	}
	g.dc.MoveTo(float64(pts[0].X), float64(pts[0].Y))
	for _, p := range pts[1:] {
		g.dc.LineTo(float64(p.X), float64(p.Y))
	}
	g.dc.ClosePath()
}

// Image returns the rendered image.
func (g *GGBackend) Image() image.Image { return g.dc.Image() }

// EncodePNG writes the rendered image as PNG.
func (g *GGBackend) EncodePNG(w io.Writer) error { return g.dc.EncodePNG(w) }

// SavePNG writes the rendered image to a PNG file.
func (g *GGBackend) SavePNG(path string) error { return g.dc.SavePNG(path) }

// Close releases the drawing context.
func (g *GGBackend) Close() error { return g.dc.Close() }
