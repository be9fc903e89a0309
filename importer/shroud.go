package importer

import (
	"fmt"
	"strings"

	"github.com/Luexks/luexks-shroud-editor-sub000/core"
	"github.com/Luexks/luexks-shroud-editor-sub000/geometry"
	"github.com/Luexks/luexks-shroud-editor-sub000/shape"
	"github.com/Luexks/luexks-shroud-editor-sub000/shroud"
)

// Shroud layer keys.
const (
	KeyColor1    = "tri_color_id"
	KeyColor2    = "tri_color1_id"
	KeyLineColor = "line_color_id"
	KeyShape     = "shape"
	KeyAngle     = "angle"
	KeyOffset    = "offset"
	KeySize      = "size"
	KeyTaper     = "taper"
)

// ParseShroud parses shroud text into containers with shapes resolved against
// lib. The leading "shroud=" is optional. Keys absent from a record keep the
// default layer values. Nothing is returned on failure.
//
//	shroud={
//	  {shape=SQUARE offset={0,0,0.1} size={10,5} tri_color_id=0}
//	  {shape=100 angle=pi/4 line_color_id=2}
//	}
func ParseShroud(text string, lib *shape.Library) ([]shroud.Container, error) {
	toks, err := tokenize(text)
	if err != nil {
		return nil, &ShroudError{Kind: ErrSyntax, Layer: -1, Detail: err.Error()}
	}
	p := &shroudParser{cursor: cursor{src: text, toks: toks}, lib: lib, layer: -1}

	if p.atWord("shroud") {
		p.next()
		if _, err := p.expect(tokEquals, ErrSyntax, ""); err != nil {
			return nil, err
		}
	}
	open, err := p.expect(tokOpen, ErrSyntax, "")
	if err != nil {
		return nil, err
	}

	var out []shroud.Container
	for !p.at(tokClose) {
		if p.at(tokEOF) {
			return nil, p.fail(ErrSyntax, "", open.offset, len(text), "unclosed shroud block", nil)
		}
		p.layer = len(out)
		c, err := p.record()
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	p.next()
	p.layer = -1
	if !p.at(tokEOF) {
		t := p.peek()
		return nil, p.fail(ErrSyntax, "", t.offset, t.end, "unexpected text after shroud block", nil)
	}
	return out, nil
}

type shroudParser struct {
	cursor
	lib   *shape.Library
	layer int
}

func (p *shroudParser) fail(kind error, field string, from, to int, detail string, cause error) *ShroudError {
	line, col := position(p.src, from)
	return &ShroudError{
		Kind:   kind,
		Field:  field,
		Layer:  p.layer,
		Text:   p.slice(from, to),
		Detail: detail,
		Line:   line,
		Column: col,
		Err:    cause,
	}
}

func (p *shroudParser) expect(kind tokenKind, errKind error, field string) (token, error) {
	t := p.next()
	if t.kind != kind {
		return t, p.fail(errKind, field, t.offset, t.end, fmt.Sprintf("expected %s, found %s", kind, t.kind), nil)
	}
	return t, nil
}

func (p *shroudParser) record() (shroud.Container, error) {
	open, err := p.expect(tokOpen, ErrSyntax, "")
	if err != nil {
		return shroud.Container{}, err
	}
	l := shroud.DefaultLayer()
	var shapeTok *token

	for !p.at(tokClose) {
		key := p.next()
		if key.kind != tokWord {
			return shroud.Container{}, p.fail(ErrSyntax, "", open.offset, key.end, fmt.Sprintf("expected key, found %s", key.kind), nil)
		}
		if _, err := p.expect(tokEquals, ErrSyntax, key.text); err != nil {
			return shroud.Container{}, err
		}

		switch key.text {
		case KeyColor1, KeyColor2, KeyLineColor:
			slot, err := p.colorSlot(key.text)
			if err != nil {
				return shroud.Container{}, err
			}
			switch key.text {
			case KeyColor1:
				l.Color1 = slot
			case KeyColor2:
				l.Color2 = slot
			default:
				l.LineColor = slot
			}
		case KeyShape:
			t, err := p.expect(tokWord, ErrSyntax, key.text)
			if err != nil {
				return shroud.Container{}, err
			}
			l.Shape = t.text
			shapeTok = &t
		case KeyAngle:
			v, err := p.scalar(key.text, ErrAngle)
			if err != nil {
				return shroud.Container{}, err
			}
			l.Angle = core.Radians(v).InDegrees()
		case KeyTaper:
			v, err := p.scalar(key.text, ErrTaper)
			if err != nil {
				return shroud.Container{}, err
			}
			l.Taper = v
		case KeyOffset:
			v, err := p.vector(key.text, ErrOffset, 3)
			if err != nil {
				return shroud.Container{}, err
			}
			l.Offset = geometry.Vec3{X: v[0], Y: v[1], Z: v[2]}
		case KeySize:
			v, err := p.vector(key.text, ErrSize, 2)
			if err != nil {
				return shroud.Container{}, err
			}
			l.Size = geometry.Vec2{X: v[0], Y: v[1]}
		default:
			return shroud.Container{}, p.fail(ErrUnknownKey, key.text, key.offset, key.end, fmt.Sprintf("%q is not a layer key", key.text), nil)
		}
	}
	closeTok := p.next()

	c, err := shroud.NewContainer(l, p.lib)
	if err != nil {
		from, to := open.offset, closeTok.end
		if shapeTok != nil {
			from, to = shapeTok.offset, shapeTok.end
		}
		return shroud.Container{}, p.fail(ErrShapeNotFound, KeyShape, from, to, fmt.Sprintf("no shape named %q", l.Shape), nil)
	}
	return c, nil
}

func (p *shroudParser) colorSlot(field string) (core.ColorSlot, error) {
	t, err := p.expect(tokWord, ErrColorID, field)
	if err != nil {
		return 0, err
	}
	slot, ok := core.ParseColorSlot(t.text)
	if !ok {
		return 0, p.fail(ErrColorID, field, t.offset, t.end, fmt.Sprintf("%q is not one of 0, 1, 2", t.text), nil)
	}
	return slot, nil
}

func (p *shroudParser) scalar(field string, kind error) (float32, error) {
	t, err := p.expect(tokWord, kind, field)
	if err != nil {
		return 0, err
	}
	v, err := evalNumber(t.text)
	if err != nil {
		return 0, p.fail(kind, field, t.offset, t.end, fmt.Sprintf("cannot evaluate %q", t.text), fmt.Errorf("%w: %w", ErrNumberParse, err))
	}
	return v, nil
}

// vector reads a brace list of exactly n numbers. Any failure reports every
// raw token of the list.
func (p *shroudParser) vector(field string, kind error, n int) ([]float32, error) {
	open, err := p.expect(tokOpen, kind, field)
	if err != nil {
		return nil, err
	}
	var raw []string
	var vals []float32
	var firstErr error
	for !p.at(tokClose) {
		t := p.next()
		if t.kind != tokWord {
			return nil, p.fail(kind, field, open.offset, t.end, fmt.Sprintf("expected number, found %s", t.kind), nil)
		}
		raw = append(raw, t.text)
		v, err := evalNumber(t.text)
		if err != nil && firstErr == nil {
			firstErr = fmt.Errorf("%w: %w", ErrNumberParse, err)
		}
		vals = append(vals, v)
	}
	closeTok := p.next()
	listed := "[" + strings.Join(raw, " ") + "]"
	if firstErr != nil {
		return nil, p.fail(kind, field, open.offset, closeTok.end, "cannot evaluate "+listed, firstErr)
	}
	if len(vals) != n {
		return nil, p.fail(kind, field, open.offset, closeTok.end, fmt.Sprintf("need %d components, got %d: %s", n, len(vals), listed), nil)
	}
	return vals, nil
}
