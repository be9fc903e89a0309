// Package export serialises shroud layers and shape libraries to text
package export

import (
	"fmt"
	"strconv"

	"github.com/Luexks/luexks-shroud-editor-sub000/shape"
	"github.com/Luexks/luexks-shroud-editor-sub000/shroud"
)

// Format represents an export format
type Format string

const (
	// FormatShroud exports layers as shroud text (default)
	FormatShroud Format = "shroud"
	// FormatShapes exports the custom shapes of a library
	FormatShapes Format = "shapes"
	// FormatJSON exports layers as JSON for inspection
	FormatJSON Format = "json"
)

// Document is what exporters read from. Exporters use the parts they need.
type Document struct {
	Layers  []shroud.Layer
	Library *shape.Library
}

// Exporter interface for different export formats
type Exporter interface {
	// Export converts a document to the target format
	Export(doc *Document) (string, error)
	// GetFileExtension returns the recommended file extension for this format
	GetFileExtension() string
	// GetFormatName returns a human-readable name for this format
	GetFormatName() string
}

// NewExporter creates an exporter for the specified format
func NewExporter(format Format) (Exporter, error) {
	switch format {
	case FormatShroud:
		return NewShroudExporter(), nil
	case FormatShapes:
		return NewShapesExporter(), nil
	case FormatJSON:
		return NewJSONExporter(), nil
	default:
		return nil, fmt.Errorf("unsupported export format: %s", format)
	}
}

// ParseFormat converts a string to a Format
func ParseFormat(s string) (Format, error) {
	switch s {
	case "shroud", "layers":
		return FormatShroud, nil
	case "shapes", "library":
		return FormatShapes, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown format: %s", s)
	}
}

// GetAvailableFormats returns a list of all available export formats
func GetAvailableFormats() []Format {
	return []Format{
		FormatShroud,
		FormatShapes,
		FormatJSON,
	}
}

// GetFormatDescriptions returns human-readable descriptions of all formats
func GetFormatDescriptions() map[Format]string {
	return map[Format]string{
		FormatShroud: "Shroud layer text (game format)",
		FormatShapes: "Custom shape library text",
		FormatJSON:   "Layer fields as JSON",
	}
}

// formatFloat writes the shortest text that parses back to the same float32.
func formatFloat(f float32) string {
	if f == 0 {
		return "0"
	}
	return strconv.FormatFloat(float64(f), 'g', -1, 32)
}
