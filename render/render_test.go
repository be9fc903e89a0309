package render

import (
	"bytes"
	"fmt"
	"reflect"
	"testing"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/Luexks/luexks-shroud-editor-sub000/config"
	"github.com/Luexks/luexks-shroud-editor-sub000/core"
	"github.com/Luexks/luexks-shroud-editor-sub000/editor"
	"github.com/Luexks/luexks-shroud-editor-sub000/geometry"
	"github.com/Luexks/luexks-shroud-editor-sub000/shape"
	"github.com/Luexks/luexks-shroud-editor-sub000/shroud"
)

// recorder logs every backend call.
type recorder struct {
	calls   []string
	batches []Batch
}

func (r *recorder) Clear(bg colorful.Color) { r.calls = append(r.calls, "clear") }

func (r *recorder) DrawReference(img *core.Image, dst geometry.Rect) {
	r.calls = append(r.calls, fmt.Sprintf("reference %vx%v", dst.Width(), dst.Height()))
}

func (r *recorder) DrawLines(lines []Segment, c colorful.Color) error {
	r.calls = append(r.calls, fmt.Sprintf("lines %d", len(lines)))
	return nil
}

func (r *recorder) DrawBatch(b Batch) error {
	r.calls = append(r.calls, fmt.Sprintf("batch z=%v n=%d", b.Z, len(b.Items)))
	r.batches = append(r.batches, b)
	return nil
}

func layersAt(t *testing.T, zs ...float32) []shroud.Container {
	t.Helper()
	lib := shape.Vanilla()
	var out []shroud.Container
	for i, z := range zs {
		l := shroud.DefaultLayer()
		l.Offset = geometry.Vec3{X: float32(i) * 20, Z: z}
		c, err := shroud.NewContainer(l, lib)
		if err != nil {
			t.Fatal(err)
		}
		out = append(out, c)
	}
	return out
}

func testScene(layers []shroud.Container) Scene {
	return Scene{
		Layers:     layers,
		View:       geometry.View{Rect: geometry.Rect{Max: geometry.Vec2{X: 100, Y: 100}}, Zoom: 1},
		Palette:    core.DefaultPalette(),
		Hover:      -1,
		BlockSize:  geometry.Vec2{X: 10, Y: 10},
		HaloPixels: 2,
	}
}

func indices(items []Item) []int {
	out := make([]int, len(items))
	for i, it := range items {
		out[i] = it.Index
	}
	return out
}

func TestItemsSortedByDepth(t *testing.T) {
	sc := testScene(layersAt(t, 2, -1, 0, 2))
	got := indices(sc.Items())
	want := []int{1, BaseIndex, 2, 0, 3}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestItemsSkipPendingDelete(t *testing.T) {
	layers := layersAt(t, 0, 0)
	layers[0].PendingDelete = true
	got := indices(testScene(layers).Items())
	if !reflect.DeepEqual(got, []int{BaseIndex, 1}) {
		t.Errorf("items = %v", got)
	}
}

func TestBatchesFlushOnRisingDepth(t *testing.T) {
	batches := Batches(testScene(layersAt(t, 2, -1, 0, 2)).Items())
	var got []string
	for _, b := range batches {
		got = append(got, fmt.Sprintf("%v:%v", b.Z, indices(b.Items)))
	}
	want := []string{"-1:[1]", "0:[-1 2]", "2:[0 3]"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("batches = %v, want %v", got, want)
	}
	if Batches(nil) != nil {
		t.Error("empty input produced batches")
	}
}

func TestHaloPriority(t *testing.T) {
	tests := []struct {
		name     string
		hover    int
		selected []int
		want     HaloKind
	}{
		{"plain", -1, nil, HaloNone},
		{"selected", -1, []int{0}, HaloSelected},
		{"hover", 0, nil, HaloHover},
		{"hover wins", 0, []int{0}, HaloHover},
		{"other hovered", 1, []int{0}, HaloSelected},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := testScene(layersAt(t, 1, 0))
			sc.Hover = tt.hover
			sc.Selected = tt.selected
			for _, it := range sc.Items() {
				if it.Index == 0 && it.Halo != tt.want {
					t.Errorf("halo = %v, want %v", it.Halo, tt.want)
				}
			}
		})
	}
	if HaloHover.Color() != HoverColor || HaloSelected.Color() != SelectedColor {
		t.Error("halo colors swapped")
	}
}

func TestHaloExpandsOutline(t *testing.T) {
	sc := testScene(layersAt(t, 1))
	sc.Selected = []int{0}
	var it Item
	for _, x := range sc.Items() {
		if x.Index == 0 {
			it = x
		}
	}
	hull := geometry.ConvexHull(it.Points)
	if len(it.HaloPoints) != len(hull) {
		t.Fatalf("halo has %d points, hull %d", len(it.HaloPoints), len(hull))
	}
	c := geometry.Centroid(hull)
	for i := range hull {
		d := it.HaloPoints[i].Sub(c).Len() - hull[i].Sub(c).Len()
		if d < 1.99 || d > 2.01 {
			t.Errorf("vertex %d pushed out by %v, want 2", i, d)
		}
	}
}

func TestFillFollowsGradient(t *testing.T) {
	sc := testScene(layersAt(t, 1))
	sc.Palette, _ = core.ParsePalette("#ff0000", "#0000ff", "#ffffff")
	sc.Layers[0].Layer.Color1 = core.Color2
	sc.Layers[0].Layer.Color2 = core.Color1

	fill := func(g float32) colorful.Color {
		sc.Gradient = g
		for _, it := range sc.Items() {
			if it.Index == 0 {
				return it.Fill
			}
		}
		t.Fatal("layer missing")
		return colorful.Color{}
	}
	if got := fill(0); !got.AlmostEqualRgb(sc.Palette.Color2) {
		t.Errorf("fill at 0 = %v, want the first slot (blue)", got.Hex())
	}
	if got := fill(1); !got.AlmostEqualRgb(sc.Palette.Color1) {
		t.Errorf("fill at 1 = %v, want the second slot (red)", got.Hex())
	}
	mid := fill(0.5)
	if mid.R < 0.4 || mid.R > 0.6 || mid.B < 0.4 || mid.B > 0.6 {
		t.Errorf("fill at 0.5 = %v", mid.Hex())
	}
}

func TestGridLines(t *testing.T) {
	sc := testScene(nil)
	if lines := sc.GridLines(); lines != nil {
		t.Errorf("grid drawn with step 0: %d lines", len(lines))
	}
	sc.GridStep = 10
	if lines := sc.GridLines(); len(lines) != 22 {
		t.Errorf("got %d grid lines, want 22", len(lines))
	}
}

func TestDrawOrder(t *testing.T) {
	sc := testScene(layersAt(t, 1, 0))
	sc.Reference = &core.Image{Width: 4, Height: 2, Pix: make([]uint8, 32)}
	box := geometry.Rect{Max: geometry.Vec2{X: 10, Y: 10}}
	sc.Box = &box

	rec := &recorder{}
	if err := Draw(rec, sc); err != nil {
		t.Fatal(err)
	}
	want := []string{"clear", "reference 4x2", "batch z=0 n=2", "batch z=1 n=1", "lines 4"}
	if !reflect.DeepEqual(rec.calls, want) {
		t.Errorf("calls = %v, want %v", rec.calls, want)
	}
}

func TestFromSession(t *testing.T) {
	s := editor.NewSession(config.Default())
	for _, c := range layersAt(t, 0, 0) {
		s.Layers.Append(c)
	}
	s.State = editor.Inaction{Selection: []int{1}}
	s.Box = &editor.BoxSelect{Start: geometry.Vec2{X: 5, Y: 5}, End: geometry.Vec2{X: 1, Y: 1}}

	sc := FromSession(s)
	if len(sc.Layers) != 2 || !reflect.DeepEqual(sc.Selected, []int{1}) {
		t.Errorf("scene layers %d selected %v", len(sc.Layers), sc.Selected)
	}
	if sc.BlockSize != (geometry.Vec2{X: 10, Y: 10}) {
		t.Errorf("block size = %v", sc.BlockSize)
	}
	if sc.Box == nil || sc.Box.Min != (geometry.Vec2{X: 1, Y: 1}) {
		t.Errorf("box = %v", sc.Box)
	}
}

func TestGGBackendRasterises(t *testing.T) {
	sc := testScene(layersAt(t, 1))
	sc.Palette, _ = core.ParsePalette("#ff0000", "#ff0000", "#ffffff")

	g := NewGGBackend(100, 100)
	defer g.Close()
	if err := Draw(g, sc); err != nil {
		t.Fatal(err)
	}

	img := g.Image()
	r, gr, b, _ := img.At(50, 50).RGBA()
	if r < 0xf000 || gr > 0x1000 || b > 0x1000 {
		t.Errorf("centre pixel = %x %x %x, want red", r, gr, b)
	}
	r, gr, b, _ = img.At(2, 2).RGBA()
	if r > 0x4000 || gr > 0x4000 || b > 0x4000 {
		t.Errorf("corner pixel = %x %x %x, want background", r, gr, b)
	}

	var buf bytes.Buffer
	if err := g.EncodePNG(&buf); err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")) {
		t.Error("output is not a PNG")
	}
}

func TestFit(t *testing.T) {
	sc := testScene(layersAt(t, 0, 0, 1))
	rect := geometry.Rect{Max: geometry.Vec2{X: 200, Y: 100}}
	sc.Fit(rect, 10)

	inner := geometry.Rect{Min: geometry.Vec2{X: 9.99, Y: 9.99}, Max: geometry.Vec2{X: 190.01, Y: 90.01}}
	var all []geometry.Vec2
	for _, it := range sc.Items() {
		for _, p := range it.Points {
			if !inner.Contains(p) {
				t.Errorf("item %d point %v outside %v", it.Index, p, inner)
			}
		}
		all = append(all, it.Points...)
	}
	b := geometry.Bounds(all)
	if b.Width() < 179.9 && b.Height() < 79.9 {
		t.Errorf("content %vx%v does not fill the view", b.Width(), b.Height())
	}

	empty := testScene(nil)
	empty.Fit(rect, 0)
	if empty.View.Zoom != 10 {
		t.Errorf("block-only zoom = %v, want 10", empty.View.Zoom)
	}
}
