package shroud

import (
	"reflect"
	"testing"

	"github.com/Luexks/luexks-shroud-editor-sub000/core"
	"github.com/Luexks/luexks-shroud-editor-sub000/geometry"
	"github.com/Luexks/luexks-shroud-editor-sub000/shape"
)

// buildCollection returns n default layers whose x offset equals their index.
func buildCollection(t *testing.T, n int) *Collection {
	t.Helper()
	lib := shape.Vanilla()
	items := make([]Container, n)
	for i := range items {
		l := DefaultLayer()
		l.Offset = geometry.Vec3{X: float32(i)}
		c, err := NewContainer(l, lib)
		if err != nil {
			t.Fatalf("NewContainer: %v", err)
		}
		items[i] = c
	}
	return NewCollection(items)
}

func xs(c *Collection) []float32 {
	out := make([]float32, c.Len())
	for i := range c.Items {
		out[i] = c.Items[i].Layer.Offset.X
	}
	return out
}

func mirrors(c *Collection) []int {
	out := make([]int, c.Len())
	for i := range c.Items {
		out[i] = c.Items[i].Mirror
	}
	return out
}

func TestDefaultLayer(t *testing.T) {
	l := DefaultLayer()
	if l.Size != (geometry.Vec2{X: 10, Y: 5}) {
		t.Errorf("size = %v, want (10,5)", l.Size)
	}
	if !l.Angle.IsZero() {
		t.Errorf("angle = %v, want 0", l.Angle)
	}
	if l.Taper != 1 {
		t.Errorf("taper = %v, want 1", l.Taper)
	}
	if l.Shape != shape.Square {
		t.Errorf("shape = %q", l.Shape)
	}
}

func TestNewContainerUnknownShape(t *testing.T) {
	l := DefaultLayer()
	l.Shape = "NOPE"
	if _, err := NewContainer(l, shape.Vanilla()); err == nil {
		t.Fatal("expected error for unknown shape")
	}
}

func TestPolygonTaper(t *testing.T) {
	l := DefaultLayer()
	l.Size = geometry.Vec2{X: 2, Y: 2}
	l.Taper = 0.5
	c, err := NewContainer(l, shape.Vanilla())
	if err != nil {
		t.Fatal(err)
	}
	b := geometry.Bounds(c.Polygon())
	if b.Min.Y != -1 || b.Max.Y != 1 {
		t.Errorf("bounds y = [%v,%v], want [-1,1]", b.Min.Y, b.Max.Y)
	}
	for _, v := range c.Polygon() {
		if v.X > 0 && (v.Y > 0.5 || v.Y < -0.5) {
			t.Errorf("tapered vertex %v outside +-0.5", v)
		}
	}
}

func TestDeleteRenumbersMirrors(t *testing.T) {
	c := buildCollection(t, 6)
	// pairs: 0<->5, 1<->3, 2<->4
	for _, p := range [][2]int{{0, 5}, {1, 3}, {2, 4}} {
		if err := c.LinkMirror(p[0], p[1]); err != nil {
			t.Fatal(err)
		}
	}

	c.Delete([]int{3})

	want := []int{4, NoMirror, 3, 2, 0}
	if got := mirrors(c); !reflect.DeepEqual(got, want) {
		t.Errorf("mirrors = %v, want %v", got, want)
	}
	if got := xs(c); !reflect.DeepEqual(got, []float32{0, 1, 2, 4, 5}) {
		t.Errorf("offsets = %v", got)
	}
	if err := c.Validate(); err != nil {
		t.Error(err)
	}
}

func TestDeleteMultipleDescending(t *testing.T) {
	c := buildCollection(t, 5)
	if err := c.LinkMirror(0, 4); err != nil {
		t.Fatal(err)
	}
	removed := c.Delete([]int{1, 3, 1, 9})
	if !reflect.DeepEqual(removed, []int{3, 1}) {
		t.Errorf("removed = %v, want [3 1]", removed)
	}
	if got := xs(c); !reflect.DeepEqual(got, []float32{0, 2, 4}) {
		t.Errorf("offsets = %v", got)
	}
	if got := mirrors(c); !reflect.DeepEqual(got, []int{2, NoMirror, 0}) {
		t.Errorf("mirrors = %v", got)
	}
}

func TestDeleteBothPartners(t *testing.T) {
	c := buildCollection(t, 3)
	if err := c.LinkMirror(0, 2); err != nil {
		t.Fatal(err)
	}
	c.Delete([]int{0, 2})
	if c.Len() != 1 || c.Items[0].Mirror != NoMirror {
		t.Fatalf("got %d items, mirror %d", c.Len(), c.Items[0].Mirror)
	}
}

func TestSweepPendingDeletes(t *testing.T) {
	c := buildCollection(t, 4)
	c.Items[1].PendingDelete = true
	c.Items[2].PendingDelete = true
	if removed := c.SweepPendingDeletes(); !reflect.DeepEqual(removed, []int{2, 1}) {
		t.Errorf("removed = %v", removed)
	}
	if got := xs(c); !reflect.DeepEqual(got, []float32{0, 3}) {
		t.Errorf("offsets = %v", got)
	}
	if removed := c.SweepPendingDeletes(); removed != nil {
		t.Errorf("second sweep removed %v", removed)
	}
}

func TestRenumber(t *testing.T) {
	deleted := []int{5, 2}
	tests := []struct {
		in   int
		want int
		ok   bool
	}{
		{0, 0, true},
		{2, 0, false},
		{3, 2, true},
		{5, 0, false},
		{7, 5, true},
	}
	for _, tt := range tests {
		got, ok := Renumber(tt.in, deleted)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("Renumber(%d) = %d,%v want %d,%v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestIsContiguous(t *testing.T) {
	tests := []struct {
		in   []int
		want bool
	}{
		{nil, true},
		{[]int{4}, true},
		{[]int{1, 2, 3}, true},
		{[]int{1, 3}, false},
		{[]int{2, 2}, false},
	}
	for _, tt := range tests {
		if got := IsContiguous(tt.in); got != tt.want {
			t.Errorf("IsContiguous(%v) = %v", tt.in, got)
		}
	}
}

func TestMoveUp(t *testing.T) {
	c := buildCollection(t, 5)
	if err := c.LinkMirror(1, 4); err != nil {
		t.Fatal(err)
	}
	remap := c.MoveUp([]int{3, 2})
	if remap == nil {
		t.Fatal("move rejected")
	}
	if got := xs(c); !reflect.DeepEqual(got, []float32{0, 2, 3, 1, 4}) {
		t.Errorf("offsets = %v", got)
	}
	if got := mirrors(c); !reflect.DeepEqual(got, []int{NoMirror, NoMirror, NoMirror, 4, 3}) {
		t.Errorf("mirrors = %v", got)
	}
	if remap(2) != 1 || remap(3) != 2 || remap(1) != 3 || remap(4) != 4 {
		t.Errorf("remap wrong: %d %d %d %d", remap(2), remap(3), remap(1), remap(4))
	}
	if err := c.Validate(); err != nil {
		t.Error(err)
	}
}

func TestMoveDown(t *testing.T) {
	c := buildCollection(t, 4)
	if err := c.LinkMirror(0, 2); err != nil {
		t.Fatal(err)
	}
	remap := c.MoveDown([]int{0, 1})
	if remap == nil {
		t.Fatal("move rejected")
	}
	if got := xs(c); !reflect.DeepEqual(got, []float32{2, 0, 1, 3}) {
		t.Errorf("offsets = %v", got)
	}
	if got := mirrors(c); !reflect.DeepEqual(got, []int{1, 0, NoMirror, NoMirror}) {
		t.Errorf("mirrors = %v", got)
	}
}

func TestMoveRejected(t *testing.T) {
	tests := []struct {
		name string
		sel  []int
		up   bool
	}{
		{"up at top", []int{0, 1}, true},
		{"down at bottom", []int{3}, false},
		{"non contiguous", []int{1, 3}, true},
		{"whole collection", []int{0, 1, 2, 3}, false},
		{"empty", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := buildCollection(t, 4)
			before := xs(c)
			var remap func(int) int
			if tt.up {
				remap = c.MoveUp(tt.sel)
			} else {
				remap = c.MoveDown(tt.sel)
			}
			if remap != nil {
				t.Error("move accepted")
			}
			if got := xs(c); !reflect.DeepEqual(got, before) {
				t.Errorf("collection changed: %v", got)
			}
		})
	}
}

func TestToggleGroup(t *testing.T) {
	c := buildCollection(t, 5)

	if !c.ToggleGroup([]int{0, 1}) {
		t.Fatal("group rejected")
	}
	if !c.ToggleGroup([]int{3, 4}) {
		t.Fatal("group rejected")
	}
	if len(c.Groups) != 2 {
		t.Fatalf("groups = %v", c.Groups)
	}

	// 1 and 3 belong to different groups: both groups dissolve first.
	c.ToggleGroup([]int{3, 1})
	if !reflect.DeepEqual(c.Groups, [][]int{{1, 3}}) {
		t.Errorf("groups = %v", c.Groups)
	}
	for i, want := range []int{NoGroup, 0, NoGroup, 0, NoGroup} {
		if c.Items[i].Group != want {
			t.Errorf("item %d group = %d, want %d", i, c.Items[i].Group, want)
		}
	}
	if err := c.Validate(); err != nil {
		t.Error(err)
	}

	// Same group again ungroups.
	c.ToggleGroup([]int{1, 3})
	if len(c.Groups) != 0 {
		t.Errorf("groups = %v, want none", c.Groups)
	}
	if c.ToggleGroup([]int{2}) {
		t.Error("single layer grouped")
	}
}

func TestDeleteUpdatesGroups(t *testing.T) {
	c := buildCollection(t, 5)
	c.ToggleGroup([]int{0, 1})
	c.ToggleGroup([]int{3, 4})
	c.Delete([]int{0, 1})
	if !reflect.DeepEqual(c.Groups, [][]int{{1, 2}}) {
		t.Errorf("groups = %v", c.Groups)
	}
	if c.Items[1].Group != 0 || c.Items[2].Group != 0 || c.Items[0].Group != NoGroup {
		t.Errorf("group indices = %d %d %d", c.Items[0].Group, c.Items[1].Group, c.Items[2].Group)
	}
	if err := c.Validate(); err != nil {
		t.Error(err)
	}
}

func TestMoveRemapsGroups(t *testing.T) {
	c := buildCollection(t, 4)
	c.ToggleGroup([]int{0, 3})
	c.MoveUp([]int{2, 3})
	if !reflect.DeepEqual(c.Groups, [][]int{{0, 2}}) {
		t.Errorf("groups = %v", c.Groups)
	}
	if err := c.Validate(); err != nil {
		t.Error(err)
	}
}

func TestMirrorSync(t *testing.T) {
	lib := shape.Vanilla()
	c := buildCollection(t, 1)
	c.SetOffset(0, geometry.Vec3{X: 3, Y: 4, Z: 1})
	j, err := c.AddMirror(0, lib)
	if err != nil {
		t.Fatal(err)
	}
	if j != 1 {
		t.Fatalf("partner index = %d", j)
	}
	if got := c.Items[1].Layer.Offset; got != (geometry.Vec3{X: 3, Y: -4, Z: 1}) {
		t.Errorf("partner offset = %v", got)
	}
	if _, err := c.AddMirror(0, lib); err == nil {
		t.Error("second AddMirror succeeded")
	}

	c.Items[1].Layer.Offset.Z = 7
	c.SetOffset(0, geometry.Vec3{X: 1, Y: 2, Z: 0})
	if got := c.Items[1].Layer.Offset; got != (geometry.Vec3{X: 1, Y: -2, Z: 7}) {
		t.Errorf("partner offset after move = %v", got)
	}

	c.SetAngle(0, core.Degrees(30))
	if got := c.Items[1].Layer.Angle.Degrees(); got != -30 {
		t.Errorf("partner angle = %v", got)
	}
	c.SetSize(1, geometry.Vec2{X: 4, Y: 8})
	if got := c.Items[0].Layer.Size; got != (geometry.Vec2{X: 4, Y: 8}) {
		t.Errorf("size not copied back: %v", got)
	}
	c.SetTaper(0, 0.25)
	if c.Items[1].Layer.Taper != 0.25 {
		t.Errorf("taper = %v", c.Items[1].Layer.Taper)
	}
	c.SetColor(0, core.LineColor, core.Color2)
	if c.Items[1].Layer.LineColor != core.Color2 {
		t.Errorf("line color = %v", c.Items[1].Layer.LineColor)
	}

	hex, _ := lib.Lookup("HEXAGON")
	if err := c.SetShape(0, hex, lib); err != nil {
		t.Fatal(err)
	}
	if c.Items[1].ShapeID != "HEXAGON" || len(c.Items[1].Verts) != 6 {
		t.Errorf("partner shape = %s with %d verts", c.Items[1].ShapeID, len(c.Items[1].Verts))
	}
}

func TestSetShapeUsesMirrorTable(t *testing.T) {
	lib := shape.Vanilla()
	left := shape.NewNumbered(100, []geometry.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}})
	right := left.Mirrored("101", true)
	v := lib.VanillaCount()
	if err := lib.AddCustom([]shape.Shape{left, right}, []shape.MirrorPair{{Mirror: v + 1, Source: v}}); err != nil {
		t.Fatal(err)
	}

	c := buildCollection(t, 2)
	if err := c.LinkMirror(0, 1); err != nil {
		t.Fatal(err)
	}
	if err := c.SetShape(0, v, lib); err != nil {
		t.Fatal(err)
	}
	if c.Items[0].ShapeID != "100" || c.Items[1].ShapeID != "101" {
		t.Errorf("shapes = %s/%s, want 100/101", c.Items[0].ShapeID, c.Items[1].ShapeID)
	}
	if c.Items[1].Layer.Shape != "101" {
		t.Errorf("partner layer shape = %q", c.Items[1].Layer.Shape)
	}
}

func TestLinkAndUnlink(t *testing.T) {
	c := buildCollection(t, 3)
	if err := c.LinkMirror(0, 1); err != nil {
		t.Fatal(err)
	}
	if err := c.LinkMirror(1, 2); err != nil {
		t.Fatal(err)
	}
	if got := mirrors(c); !reflect.DeepEqual(got, []int{NoMirror, 2, 1}) {
		t.Errorf("mirrors = %v", got)
	}
	if err := c.LinkMirror(0, 0); err == nil {
		t.Error("self link accepted")
	}
	c.Unlink(2)
	if got := mirrors(c); !reflect.DeepEqual(got, []int{NoMirror, NoMirror, NoMirror}) {
		t.Errorf("mirrors = %v", got)
	}
}

func TestCloneIsDeep(t *testing.T) {
	c := buildCollection(t, 2)
	c.ToggleGroup([]int{0, 1})
	clone, err := c.Clone()
	if err != nil {
		t.Fatal(err)
	}
	clone.Items[0].Layer.Offset.X = 99
	clone.Items[0].Verts[0].X = 99
	clone.Groups[0][0] = 1

	if c.Items[0].Layer.Offset.X == 99 {
		t.Error("offset shared with clone")
	}
	if c.Items[0].Verts[0].X == 99 {
		t.Error("vertex slice shared with clone")
	}
	if c.Groups[0][0] != 0 {
		t.Error("group slice shared with clone")
	}
}

func TestValidateCatchesBrokenMirror(t *testing.T) {
	c := buildCollection(t, 3)
	c.Items[0].Mirror = 1
	if err := c.Validate(); err == nil {
		t.Error("one-sided mirror accepted")
	}
	c.Items[0].Mirror = 5
	if err := c.Validate(); err == nil {
		t.Error("out of range mirror accepted")
	}
}
