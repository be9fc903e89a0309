package terminal

import (
	"github.com/chewxy/math32"
	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/Luexks/luexks-shroud-editor-sub000/core"
	"github.com/Luexks/luexks-shroud-editor-sub000/geometry"
	"github.com/Luexks/luexks-shroud-editor-sub000/render"
)

// upperHalf draws the top pixel as foreground and the bottom as background.
const upperHalf = '▀'

// asciiRamp shades cells by lightness when the terminal has no color.
const asciiRamp = " .:-=+*#%@"

// Canvas rasterises render batches into a pixel grid two pixels tall per
// terminal cell. Screen coordinates are canvas pixels.
type Canvas struct {
	Cols, Rows int
	px         []colorful.Color
}

// NewCanvas creates a canvas covering cols x rows cells.
func NewCanvas(cols, rows int) *Canvas {
	c := &Canvas{}
	c.Resize(cols, rows)
	return c
}

// Resize changes the cell size, discarding the contents on change.
func (c *Canvas) Resize(cols, rows int) {
	cols, rows = max(cols, 0), max(rows, 0)
	if cols == c.Cols && rows == c.Rows {
		return
	}
	c.Cols, c.Rows = cols, rows
	c.px = make([]colorful.Color, cols*rows*2)
}

// Width and Height are the pixel dimensions.
func (c *Canvas) Width() int  { return c.Cols }
func (c *Canvas) Height() int { return c.Rows * 2 }

// Bounds is the pixel rectangle the view maps into.
func (c *Canvas) Bounds() geometry.Rect {
	return geometry.Rect{Max: geometry.Vec2{X: float32(c.Width()), Y: float32(c.Height())}}
}

// At returns the pixel at (x, y).
func (c *Canvas) At(x, y int) colorful.Color {
	if x < 0 || y < 0 || x >= c.Width() || y >= c.Height() {
		return colorful.Color{}
	}
	return c.px[y*c.Width()+x]
}

func (c *Canvas) set(x, y int, col colorful.Color) {
	if x < 0 || y < 0 || x >= c.Width() || y >= c.Height() {
		return
	}
	c.px[y*c.Width()+x] = col
}

// Clear fills every pixel with bg.
func (c *Canvas) Clear(bg colorful.Color) {
	for i := range c.px {
		c.px[i] = bg
	}
}

// DrawReference samples the image into dst, half blended over the
// background.
func (c *Canvas) DrawReference(img *core.Image, dst geometry.Rect) {
	if img == nil || img.Empty() || dst.Width() <= 0 || dst.Height() <= 0 {
		return
	}
	x0, y0, x1, y1 := c.clip(dst)
	for y := y0; y < y1; y++ {
		v := (float32(y) + 0.5 - dst.Min.Y) / dst.Height()
		for x := x0; x < x1; x++ {
			u := (float32(x) + 0.5 - dst.Min.X) / dst.Width()
			r, g, b, a := img.At(int(u*float32(img.Width)), int(v*float32(img.Height)))
			if a == 0 {
				continue
			}
			src := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
			c.set(x, y, c.At(x, y).BlendRgb(src, 0.5*float64(a)/255))
		}
	}
}

// DrawLines plots every segment.
func (c *Canvas) DrawLines(lines []render.Segment, col colorful.Color) error {
	for _, l := range lines {
		c.line(l.A, l.B, col)
	}
	return nil
}

// DrawBatch fills, outlines and highlights every item of the batch.
func (c *Canvas) DrawBatch(b render.Batch) error {
	for _, it := range b.Items {
		c.fill(it.Points, it.Fill)
	}
	for _, it := range b.Items {
		c.outline(it.Points, it.Line)
	}
	for _, it := range b.Items {
		if it.Halo != render.HaloNone {
			c.outline(it.HaloPoints, it.Halo.Color())
		}
	}
	return nil
}

// clip returns the pixel range of r inside the canvas.
func (c *Canvas) clip(r geometry.Rect) (x0, y0, x1, y1 int) {
	x0 = max(0, int(math32.Floor(r.Min.X)))
	y0 = max(0, int(math32.Floor(r.Min.Y)))
	x1 = min(c.Width(), int(math32.Ceil(r.Max.X)))
	y1 = min(c.Height(), int(math32.Ceil(r.Max.Y)))
	return
}

// fill sets every pixel whose centre is inside the polygon.
func (c *Canvas) fill(poly []geometry.Vec2, col colorful.Color) {
	if len(poly) < 3 {
		return
	}
	x0, y0, x1, y1 := c.clip(geometry.Bounds(poly))
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			if geometry.PointInPolygon(geometry.Vec2{X: float32(x) + 0.5, Y: float32(y) + 0.5}, poly) {
				c.set(x, y, col)
			}
		}
	}
}

func (c *Canvas) outline(poly []geometry.Vec2, col colorful.Color) {
	for i := range poly {
		c.line(poly[i], poly[(i+1)%len(poly)], col)
	}
}

// line plots a segment one pixel per step along its longer axis.
func (c *Canvas) line(a, b geometry.Vec2, col colorful.Color) {
	d := b.Sub(a)
	steps := int(math32.Ceil(max(math32.Abs(d.X), math32.Abs(d.Y))))
	if steps == 0 {
		c.set(int(math32.Floor(a.X)), int(math32.Floor(a.Y)), col)
		return
	}
	for i := 0; i <= steps; i++ {
		p := a.Lerp(b, float32(i)/float32(steps))
		c.set(int(math32.Floor(p.X)), int(math32.Floor(p.Y)), col)
	}
}

// Blit writes the canvas to the screen starting at the top-left cell.
func (c *Canvas) Blit(s tcell.Screen, caps Capabilities) {
	for row := 0; row < c.Rows; row++ {
		for col := 0; col < c.Cols; col++ {
			top, bottom := c.At(col, row*2), c.At(col, row*2+1)
			switch {
			case !caps.SupportsColor:
				s.SetContent(col, row, shade(top, bottom), nil, tcell.StyleDefault)
			case caps.UnicodeLevel == UnicodeNone:
				s.SetContent(col, row, ' ', nil, tcell.StyleDefault.Background(cellColor(top.BlendRgb(bottom, 0.5))))
			default:
				style := tcell.StyleDefault.Foreground(cellColor(top)).Background(cellColor(bottom))
				s.SetContent(col, row, upperHalf, nil, style)
			}
		}
	}
}

func cellColor(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// shade picks an ASCII ramp character for the mean lightness of two pixels.
func shade(top, bottom colorful.Color) rune {
	l1, _, _ := top.Lab()
	l2, _, _ := bottom.Lab()
	l := (l1 + l2) / 2
	i := int(l * float64(len(asciiRamp)-1))
	i = max(0, min(len(asciiRamp)-1, i))
	return rune(asciiRamp[i])
}
