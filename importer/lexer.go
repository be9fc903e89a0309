package importer

import (
	"fmt"
	"strings"

	"github.com/tdewolff/parse/v2"
)

// tokenKind identifies the lexical class of a token
type tokenKind int

const (
	tokEOF tokenKind = iota
	tokOpen
	tokClose
	tokEquals
	tokWord
)

// String returns the token kind for error messages
func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "end of input"
	case tokOpen:
		return "'{'"
	case tokClose:
		return "'}'"
	case tokEquals:
		return "'='"
	case tokWord:
		return "value"
	default:
		return "unknown"
	}
}

type token struct {
	kind   tokenKind
	text   string
	offset int // byte offset of the first character
	end    int // byte offset just past the last character
}

// tokenize splits text into braces, '=' and words. Commas and whitespace
// separate tokens; "--" starts a comment that runs to the end of the line.
// Double-quoted words may contain any of those characters.
func tokenize(text string) ([]token, error) {
	z := parse.NewInputString(text)
	var toks []token
	for {
		skipBlank(z)
		z.Skip()
		start := z.Offset()
		c := z.Peek(0)
		if c == 0 && z.Err() != nil {
			toks = append(toks, token{kind: tokEOF, offset: start, end: start})
			return toks, nil
		}
		switch c {
		case '{':
			z.Move(1)
			toks = append(toks, token{kind: tokOpen, text: "{", offset: start, end: start + 1})
		case '}':
			z.Move(1)
			toks = append(toks, token{kind: tokClose, text: "}", offset: start, end: start + 1})
		case '=':
			z.Move(1)
			toks = append(toks, token{kind: tokEquals, text: "=", offset: start, end: start + 1})
		case '"':
			z.Move(1)
			for z.Peek(0) != '"' {
				if z.Peek(0) == 0 && z.Err() != nil {
					return nil, fmt.Errorf("unterminated string starting at byte %d", start)
				}
				z.Move(1)
			}
			z.Move(1)
			lexeme := string(z.Shift())
			toks = append(toks, token{kind: tokWord, text: strings.Trim(lexeme, `"`), offset: start, end: z.Offset()})
		default:
			if !isWordByte(c) {
				return nil, fmt.Errorf("unexpected byte %q at offset %d", c, start)
			}
			for isWordByte(z.Peek(0)) && !(z.Peek(0) == '-' && z.Peek(1) == '-') {
				z.Move(1)
			}
			lexeme := string(z.Shift())
			toks = append(toks, token{kind: tokWord, text: lexeme, offset: start, end: z.Offset()})
		}
	}
}

func skipBlank(z *parse.Input) {
	for {
		switch c := z.Peek(0); {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == ',' || c == ';':
			z.Move(1)
		case c == '-' && z.Peek(1) == '-':
			for z.Peek(0) != '\n' && !(z.Peek(0) == 0 && z.Err() != nil) {
				z.Move(1)
			}
		default:
			return
		}
	}
}

func isWordByte(c byte) bool {
	switch c {
	case 0, ' ', '\t', '\n', '\r', ',', ';', '{', '}', '=', '"':
		return false
	}
	return true
}

// cursor walks a token slice with single-token lookahead.
type cursor struct {
	src  string
	toks []token
	pos  int
}

func (c *cursor) peek() token { return c.toks[c.pos] }

func (c *cursor) next() token {
	t := c.toks[c.pos]
	if t.kind != tokEOF {
		c.pos++
	}
	return t
}

func (c *cursor) at(kind tokenKind) bool { return c.toks[c.pos].kind == kind }

func (c *cursor) atWord(text string) bool {
	t := c.toks[c.pos]
	return t.kind == tokWord && t.text == text
}

// skipBlock consumes a balanced brace block starting at the current '{'.
func (c *cursor) skipBlock() bool {
	if !c.at(tokOpen) {
		return false
	}
	depth := 0
	for {
		t := c.next()
		switch t.kind {
		case tokOpen:
			depth++
		case tokClose:
			depth--
			if depth == 0 {
				return true
			}
		case tokEOF:
			return false
		}
	}
}

// slice returns the source text between two byte offsets, clamped to the input.
func (c *cursor) slice(from, to int) string {
	if from < 0 {
		from = 0
	}
	if to > len(c.src) {
		to = len(c.src)
	}
	if from >= to {
		return ""
	}
	return c.src[from:to]
}

// position converts a byte offset into a 1-based line and column.
func position(src string, offset int) (line, col int) {
	line, col, _ = parse.Position(strings.NewReader(src), offset)
	return line, col
}
