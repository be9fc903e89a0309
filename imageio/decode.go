// Package imageio decodes reference images for the editor. PNG, JPEG, GIF,
// BMP, TIFF and WebP are recognised by content.
package imageio

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/anthonynsimon/bild/clone"
	"github.com/anthonynsimon/bild/transform"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/Luexks/luexks-shroud-editor-sub000/core"
)

// DefaultMaxSize bounds the longer side of a decoded reference image.
const DefaultMaxSize = 1024

// ErrEmptyData is returned for zero-length input.
var ErrEmptyData = errors.New("imageio: empty data")

// Decoder turns image files into core.Image values, shrinking anything whose
// longer side exceeds MaxSize.
type Decoder struct {
	MaxSize int // 0 disables downscaling
}

// NewDecoder creates a decoder with the given size bound.
func NewDecoder(maxSize int) *Decoder {
	return &Decoder{MaxSize: maxSize}
}

// DecodeFile reads and decodes the image at path.
func (d *Decoder) DecodeFile(path string) (core.Image, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return core.Image{}, fmt.Errorf("imageio: read file: %w", err)
	}
	return d.DecodeBytes(data)
}

// DecodeBytes decodes an in-memory image.
func (d *Decoder) DecodeBytes(data []byte) (core.Image, error) {
	if len(data) == 0 {
		return core.Image{}, ErrEmptyData
	}
	return d.Decode(bytes.NewReader(data))
}

// Decode decodes an image from r, auto-detecting the format.
func (d *Decoder) Decode(r io.Reader) (core.Image, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return core.Image{}, fmt.Errorf("imageio: decode: %w", err)
	}
	b := img.Bounds()
	if b.Empty() {
		return core.Image{}, fmt.Errorf("imageio: %s image has no pixels", format)
	}

	var rgba *image.RGBA
	if w, h, ok := d.fit(b.Dx(), b.Dy()); ok {
		rgba = transform.Resize(img, w, h, transform.Linear)
	} else {
		rgba = clone.AsRGBA(img)
	}
	return toCore(rgba), nil
}

// fit returns the scaled size when the image is over the bound.
func (d *Decoder) fit(w, h int) (int, int, bool) {
	longest := max(w, h)
	if d.MaxSize <= 0 || longest <= d.MaxSize {
		return w, h, false
	}
	scale := float64(d.MaxSize) / float64(longest)
	return max(1, int(float64(w)*scale+0.5)), max(1, int(float64(h)*scale+0.5)), true
}

// toCore copies the pixels into a tightly packed buffer.
func toCore(img *image.RGBA) core.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	out := core.Image{Width: w, Height: h, Pix: make([]uint8, w*h*4)}
	for y := 0; y < h; y++ {
		src := img.Pix[y*img.Stride : y*img.Stride+w*4]
		copy(out.Pix[y*w*4:], src)
	}
	return out
}
