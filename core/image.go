package core

import "image"

// Image is a decoded reference image: 8-bit RGBA pixels, row major, no
// padding between rows.
type Image struct {
	Width  int
	Height int
	Pix    []uint8
}

// At returns the RGBA components of the pixel at (x, y).
func (m Image) At(x, y int) (r, g, b, a uint8) {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return 0, 0, 0, 0
	}
	i := (y*m.Width + x) * 4
	return m.Pix[i], m.Pix[i+1], m.Pix[i+2], m.Pix[i+3]
}

// Empty reports whether the image has no pixels.
func (m Image) Empty() bool { return m.Width == 0 || m.Height == 0 }

// RGBA wraps the pixels as a standard library image without copying.
func (m Image) RGBA() *image.RGBA {
	return &image.RGBA{
		Pix:    m.Pix,
		Stride: m.Width * 4,
		Rect:   image.Rect(0, 0, m.Width, m.Height),
	}
}
