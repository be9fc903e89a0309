package importer

import (
	"fmt"
	"strconv"

	"github.com/Luexks/luexks-shroud-editor-sub000/geometry"
	"github.com/Luexks/luexks-shroud-editor-sub000/shape"
)

// ShapeSet is the result of parsing a shape library. Mirror pair indices are
// library indices: position in Shapes plus the vanilla shape count.
type ShapeSet struct {
	Shapes  []shape.Shape
	Mirrors []shape.MirrorPair
}

// shapeRecord is one parsed shape before mirror resolution.
type shapeRecord struct {
	id       int
	scales   [][]geometry.Vec2
	mirrorOf int
	isMirror bool
	text     string
	offset   int
}

// ParseShapes parses a shape library and resolves mirror_of declarations.
//
// The library is a brace block of shape records. Each record is an integer id
// followed by either a block of scales, each holding verts and ports, or a
// mirror_of declaration:
//
//	{
//	  {100 {{verts={{0,0}{1,0}{0,1}} ports={}}}}
//	  {101 {mirror_of=100}}
//	}
func ParseShapes(text string) (*ShapeSet, error) {
	toks, err := tokenize(text)
	if err != nil {
		return nil, &ShapesError{Kind: ErrSyntax, Detail: err.Error()}
	}
	p := &shapesParser{cursor: cursor{src: text, toks: toks}}

	records, err := p.library()
	if err != nil {
		return nil, err
	}
	return resolveMirrors(text, records, shape.VanillaCount())
}

type shapesParser struct {
	cursor
}

func (p *shapesParser) fail(kind error, from, to int, detail string, cause error) *ShapesError {
	line, col := position(p.src, from)
	return &ShapesError{
		Kind:   kind,
		Text:   p.slice(from, to),
		Detail: detail,
		Line:   line,
		Column: col,
		Err:    cause,
	}
}

func (p *shapesParser) expect(kind tokenKind, errKind error, recordStart int) (token, error) {
	t := p.next()
	if t.kind != kind {
		return t, p.fail(errKind, recordStart, t.end, fmt.Sprintf("expected %s, found %s", kind, t.kind), nil)
	}
	return t, nil
}

func (p *shapesParser) library() ([]shapeRecord, error) {
	open, err := p.expect(tokOpen, ErrSyntax, 0)
	if err != nil {
		return nil, err
	}
	var records []shapeRecord
	for !p.at(tokClose) {
		if p.at(tokEOF) {
			return nil, p.fail(ErrSyntax, open.offset, len(p.src), "unclosed shape library", nil)
		}
		rec, err := p.record()
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	p.next()
	if !p.at(tokEOF) {
		t := p.peek()
		return nil, p.fail(ErrSyntax, t.offset, t.end, "unexpected text after shape library", nil)
	}
	if len(records) == 0 {
		return nil, p.fail(ErrShape, open.offset, len(p.src), "library holds no shapes", nil)
	}
	return records, nil
}

func (p *shapesParser) record() (shapeRecord, error) {
	open, err := p.expect(tokOpen, ErrShape, p.peek().offset)
	if err != nil {
		return shapeRecord{}, err
	}
	rec := shapeRecord{offset: open.offset}

	idTok, err := p.expect(tokWord, ErrShape, open.offset)
	if err != nil {
		return rec, err
	}
	if rec.id, err = evalInt(idTok.text); err != nil {
		return rec, p.fail(ErrNumberParse, idTok.offset, idTok.end, "shape id", err)
	}

	switch {
	case p.atWord("mirror_of"):
		if err := p.mirrorDecl(&rec); err != nil {
			return rec, err
		}
	case p.at(tokOpen) && p.toks[p.pos+1].kind == tokWord && p.toks[p.pos+1].text == "mirror_of":
		p.next()
		if err := p.mirrorDecl(&rec); err != nil {
			return rec, err
		}
		if _, err := p.expect(tokClose, ErrShape, open.offset); err != nil {
			return rec, err
		}
	case p.at(tokOpen):
		if rec.scales, err = p.scales(open.offset); err != nil {
			return rec, err
		}
	default:
		t := p.peek()
		return rec, p.fail(ErrShape, open.offset, t.end, "expected scales or mirror_of", nil)
	}

	closeTok, err := p.expect(tokClose, ErrShape, open.offset)
	if err != nil {
		return rec, err
	}
	rec.text = p.slice(open.offset, closeTok.end)
	return rec, nil
}

func (p *shapesParser) mirrorDecl(rec *shapeRecord) error {
	key := p.next()
	if _, err := p.expect(tokEquals, ErrShape, key.offset); err != nil {
		return err
	}
	val, err := p.expect(tokWord, ErrShape, key.offset)
	if err != nil {
		return err
	}
	if rec.mirrorOf, err = evalInt(val.text); err != nil {
		return p.fail(ErrNumberParse, val.offset, val.end, "mirror_of id", err)
	}
	rec.isMirror = true
	return nil
}

func (p *shapesParser) scales(recordStart int) ([][]geometry.Vec2, error) {
	open := p.next()
	var scales [][]geometry.Vec2
	for !p.at(tokClose) {
		if p.at(tokEOF) {
			return nil, p.fail(ErrShape, recordStart, len(p.src), "unclosed scale list", nil)
		}
		verts, err := p.scale()
		if err != nil {
			return nil, err
		}
		scales = append(scales, verts)
	}
	closeTok := p.next()
	if len(scales) == 0 {
		return nil, p.fail(ErrShape, open.offset, closeTok.end, "shape has no scales", nil)
	}
	return scales, nil
}

func (p *shapesParser) scale() ([]geometry.Vec2, error) {
	open, err := p.expect(tokOpen, ErrScale, p.peek().offset)
	if err != nil {
		return nil, err
	}
	var verts []geometry.Vec2
	seenVerts := false
	for !p.at(tokClose) {
		key := p.next()
		if key.kind != tokWord {
			return nil, p.fail(ErrScale, open.offset, key.end, fmt.Sprintf("expected key, found %s", key.kind), nil)
		}
		if _, err := p.expect(tokEquals, ErrScale, open.offset); err != nil {
			return nil, err
		}
		switch key.text {
		case "verts":
			if verts, err = p.vertList(); err != nil {
				return nil, err
			}
			seenVerts = true
		case "ports":
			start := p.peek()
			if !p.skipBlock() {
				return nil, p.fail(ErrScale, start.offset, len(p.src), "malformed ports block", nil)
			}
		default:
			return nil, p.fail(ErrScale, key.offset, key.end, "unknown scale key "+strconv.Quote(key.text), nil)
		}
	}
	closeTok := p.next()
	if !seenVerts {
		return nil, p.fail(ErrScale, open.offset, closeTok.end, "scale has no verts", nil)
	}
	if len(verts) < 3 {
		return nil, p.fail(ErrScale, open.offset, closeTok.end, fmt.Sprintf("scale has %d vertices, need at least 3", len(verts)), nil)
	}
	return verts, nil
}

func (p *shapesParser) vertList() ([]geometry.Vec2, error) {
	open, err := p.expect(tokOpen, ErrScale, p.peek().offset)
	if err != nil {
		return nil, err
	}
	var verts []geometry.Vec2
	for !p.at(tokClose) {
		if p.at(tokEOF) {
			return nil, p.fail(ErrScale, open.offset, len(p.src), "unclosed verts block", nil)
		}
		v, err := p.vert()
		if err != nil {
			return nil, err
		}
		verts = append(verts, v)
	}
	p.next()
	return verts, nil
}

func (p *shapesParser) vert() (geometry.Vec2, error) {
	open, err := p.expect(tokOpen, ErrVert, p.peek().offset)
	if err != nil {
		return geometry.Vec2{}, err
	}
	var comps []float32
	for !p.at(tokClose) {
		t := p.next()
		if t.kind != tokWord {
			return geometry.Vec2{}, p.fail(ErrVert, open.offset, t.end, fmt.Sprintf("expected number, found %s", t.kind), nil)
		}
		f, err := evalNumber(t.text)
		if err != nil {
			return geometry.Vec2{}, p.fail(ErrNumberParse, t.offset, t.end, "vertex component", err)
		}
		comps = append(comps, f)
	}
	closeTok := p.next()
	if len(comps) != 2 {
		return geometry.Vec2{}, p.fail(ErrVert, open.offset, closeTok.end, fmt.Sprintf("vertex needs 2 components, got %d", len(comps)), nil)
	}
	return geometry.Vec2{X: comps[0], Y: comps[1]}, nil
}

// resolveMirrors replaces every mirror_of record with a standard shape built
// from the y-mirrored first scale of its target. Targets must exist and must
// not be mirrors themselves.
func resolveMirrors(src string, records []shapeRecord, vanilla int) (*ShapeSet, error) {
	byID := make(map[int]int, len(records))
	for i, rec := range records {
		if _, dup := byID[rec.id]; !dup {
			byID[rec.id] = i
		}
	}

	set := &ShapeSet{Shapes: make([]shape.Shape, len(records))}
	for i, rec := range records {
		if !rec.isMirror {
			set.Shapes[i] = shape.NewNumbered(rec.id, rec.scales...)
		}
	}
	for i, rec := range records {
		if !rec.isMirror {
			continue
		}
		line, col := position(src, rec.offset)
		detail := fmt.Sprintf("shape %d mirrors %d", rec.id, rec.mirrorOf)
		target, ok := byID[rec.mirrorOf]
		if !ok {
			return nil, &ShapesError{Kind: ErrMirrorOfNotFound, Text: rec.text, Detail: detail, Line: line, Column: col}
		}
		if records[target].isMirror {
			return nil, &ShapesError{Kind: ErrMirrorOfIsAMirror, Text: rec.text, Detail: detail, Line: line, Column: col}
		}
		set.Shapes[i] = set.Shapes[target].Mirrored(strconv.Itoa(rec.id), true)
		set.Mirrors = append(set.Mirrors, shape.MirrorPair{Mirror: vanilla + i, Source: vanilla + target})
	}
	return set, nil
}
