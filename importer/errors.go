package importer

import (
	"errors"
	"fmt"
)

// Error kinds shared by both formats. Match them with errors.Is.
var (
	ErrSyntax      = errors.New("syntax error")
	ErrNumberParse = errors.New("number parse failure")
)

// Shape-library error kinds.
var (
	ErrShape             = errors.New("invalid shape")
	ErrScale             = errors.New("invalid scale")
	ErrVert              = errors.New("invalid vertex")
	ErrMirrorOfNotFound  = errors.New("mirror_of target not found")
	ErrMirrorOfIsAMirror = errors.New("mirror_of target is itself a mirror")
)

// Shroud error kinds.
var (
	ErrUnknownKey    = errors.New("unknown key")
	ErrColorID       = errors.New("invalid color id")
	ErrShapeNotFound = errors.New("shape not found")
	ErrAngle         = errors.New("invalid angle")
	ErrOffset        = errors.New("invalid offset")
	ErrSize          = errors.New("invalid size")
	ErrTaper         = errors.New("invalid taper")
)

// ShapesError reports a shape-library parse or mirror resolution failure.
type ShapesError struct {
	Kind   error  // one of the Err* kinds above
	Text   string // offending raw text
	Detail string
	Line   int
	Column int
	Err    error // underlying cause, if any
}

// Error implements error.
func (e *ShapesError) Error() string {
	return formatError("shapes", e.Kind, "", e.Detail, e.Text, e.Line, e.Column)
}

// Unwrap exposes both the kind and the underlying cause to errors.Is/As.
func (e *ShapesError) Unwrap() []error {
	return compact(e.Kind, e.Err)
}

// ShroudError reports a shroud parse or shape resolution failure.
type ShroudError struct {
	Kind   error
	Field  string // layer key being parsed, empty for structural errors
	Layer  int    // zero-based layer record index, -1 outside any record
	Text   string
	Detail string
	Line   int
	Column int
	Err    error
}

// Error implements error.
func (e *ShroudError) Error() string {
	prefix := "shroud"
	if e.Layer >= 0 {
		prefix = fmt.Sprintf("shroud layer %d", e.Layer)
	}
	return formatError(prefix, e.Kind, e.Field, e.Detail, e.Text, e.Line, e.Column)
}

// Unwrap exposes both the kind and the underlying cause to errors.Is/As.
func (e *ShroudError) Unwrap() []error {
	return compact(e.Kind, e.Err)
}

func formatError(prefix string, kind error, field, detail, text string, line, col int) string {
	msg := prefix
	if line > 0 {
		msg += fmt.Sprintf(" (line %d, column %d)", line, col)
	}
	msg += ": " + kind.Error()
	if field != "" {
		msg += " in " + field
	}
	if detail != "" {
		msg += ": " + detail
	}
	if text != "" {
		msg += fmt.Sprintf(" near %q", clip(text, 60))
	}
	return msg
}

func compact(errs ...error) []error {
	out := errs[:0]
	for _, err := range errs {
		if err != nil {
			out = append(out, err)
		}
	}
	return out
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
