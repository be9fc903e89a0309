package importer

import (
	"errors"
	"testing"

	"github.com/Luexks/luexks-shroud-editor-sub000/geometry"
	"github.com/Luexks/luexks-shroud-editor-sub000/shape"
)

func TestParseShapesSquare(t *testing.T) {
	set, err := ParseShapes(`{ {0 {{verts={{0,0}{0,1}{1,1}{1,0}}ports={}}}} }`)
	if err != nil {
		t.Fatalf("ParseShapes: %v", err)
	}
	if len(set.Shapes) != 1 {
		t.Fatalf("got %d shapes, want 1", len(set.Shapes))
	}
	s := set.Shapes[0]
	if s.ID != "0" || !s.Numeric {
		t.Errorf("id = %q numeric=%v", s.ID, s.Numeric)
	}
	want := []geometry.Vec2{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 0}}
	if len(s.Verts()) != len(want) {
		t.Fatalf("got %d verts", len(s.Verts()))
	}
	for i, v := range s.Verts() {
		if v != want[i] {
			t.Errorf("vert %d = %v, want %v", i, v, want[i])
		}
	}
	if len(set.Mirrors) != 0 {
		t.Errorf("mirrors = %v", set.Mirrors)
	}
}

func TestParseShapesMirrorOf(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"bare", `{ {0 {{verts={{0,0}{0,1}{1,1}{1,0}}ports={}}}} {1 mirror_of=0} }`},
		{"braced", `{ {0 {{verts={{0,0}{0,1}{1,1}{1,0}}ports={}}}} {1 {mirror_of=0}} }`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := ParseShapes(tt.text)
			if err != nil {
				t.Fatalf("ParseShapes: %v", err)
			}
			if len(set.Shapes) != 2 {
				t.Fatalf("got %d shapes", len(set.Shapes))
			}
			src, mir := set.Shapes[0].Verts(), set.Shapes[1].Verts()
			for i := range src {
				if mir[i].X != src[i].X || mir[i].Y != -src[i].Y {
					t.Errorf("vert %d = %v, want y-negated %v", i, mir[i], src[i])
				}
			}
			if set.Shapes[1].ID != "1" {
				t.Errorf("mirror id = %q", set.Shapes[1].ID)
			}
			v := shape.VanillaCount()
			if len(set.Mirrors) != 1 || set.Mirrors[0] != (shape.MirrorPair{Mirror: v + 1, Source: v}) {
				t.Errorf("mirrors = %v", set.Mirrors)
			}
		})
	}
}

func TestParseShapesCommentsAndExpressions(t *testing.T) {
	text := `-- library
{
  {7 { -- scale 0
    {verts={{-1/2, 0}{0.5*2/2, -pi/pi}{0, PI*0}} ports={{0,0.5}}}
    {verts={{0,0}{2,0}{0,2}} ports={}}
  }}
}`
	set, err := ParseShapes(text)
	if err != nil {
		t.Fatalf("ParseShapes: %v", err)
	}
	s := set.Shapes[0]
	if len(s.Scales) != 2 {
		t.Fatalf("got %d scales", len(s.Scales))
	}
	want := []geometry.Vec2{{X: -0.5, Y: 0}, {X: 0.5, Y: -1}, {X: 0, Y: 0}}
	for i, v := range s.Verts() {
		if v != want[i] {
			t.Errorf("vert %d = %v, want %v", i, v, want[i])
		}
	}
}

func TestParseShapesErrors(t *testing.T) {
	sq := `{{verts={{0,0}{0,1}{1,1}}ports={}}}`
	tests := []struct {
		name string
		text string
		kind error
	}{
		{"missing target", `{ {1 mirror_of=5} }`, ErrMirrorOfNotFound},
		{"transitive mirror", `{ {0 ` + sq + `} {1 mirror_of=0} {2 mirror_of=1} }`, ErrMirrorOfIsAMirror},
		{"id overflow", `{ {99999999999999999999 ` + sq + `} }`, ErrNumberParse},
		{"id not a number", `{ {abc ` + sq + `} }`, ErrNumberParse},
		{"bad mirror id", `{ {1 mirror_of=x} }`, ErrNumberParse},
		{"bad component", `{ {0 {{verts={{0,0}{0,1}{1,z}}ports={}}}} }`, ErrNumberParse},
		{"three components", `{ {0 {{verts={{0,0,0}{0,1}{1,1}}ports={}}}} }`, ErrVert},
		{"two verts", `{ {0 {{verts={{0,0}{0,1}}ports={}}}} }`, ErrScale},
		{"unknown scale key", `{ {0 {{verts={{0,0}{0,1}{1,1}} bogus={}}}} }`, ErrScale},
		{"no verts", `{ {0 {{ports={}}}} }`, ErrScale},
		{"no scales", `{ {0 {}} }`, ErrShape},
		{"empty library", `{ }`, ErrShape},
		{"unclosed", `{ {0 ` + sq + `}`, ErrSyntax},
		{"trailing text", `{ {0 ` + sq + `} } extra`, ErrSyntax},
		{"stray byte", "{ {0 \x00} }", ErrSyntax},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseShapes(tt.text)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, tt.kind) {
				t.Errorf("error %q is not %v", err, tt.kind)
			}
			var se *ShapesError
			if !errors.As(err, &se) {
				t.Errorf("error %T is not *ShapesError", err)
			}
		})
	}
}

func TestShapesErrorPosition(t *testing.T) {
	text := "{\n  {0 {{verts={{0,0}{0,1}{1,1}}ports={}}}}\n  {3 mirror_of=9}\n}"
	_, err := ParseShapes(text)
	var se *ShapesError
	if !errors.As(err, &se) {
		t.Fatalf("got %v", err)
	}
	if se.Line != 3 || se.Column != 3 {
		t.Errorf("position = %d:%d, want 3:3", se.Line, se.Column)
	}
	if se.Text != "{3 mirror_of=9}" {
		t.Errorf("text = %q", se.Text)
	}
}

func TestShapeSetIntoLibrary(t *testing.T) {
	set, err := ParseShapes(`{ {100 {{verts={{0,0}{1,0}{0,1}}ports={}}}} {101 mirror_of=100} }`)
	if err != nil {
		t.Fatal(err)
	}
	lib := shape.Vanilla()
	if err := lib.AddCustom(set.Shapes, set.Mirrors); err != nil {
		t.Fatal(err)
	}
	a, ok := lib.Lookup("100")
	if !ok {
		t.Fatal("100 not found")
	}
	b, ok := lib.MirrorOf(a)
	if !ok || lib.At(b).ID != "101" {
		t.Errorf("MirrorOf(100) = %d,%v", b, ok)
	}
}
