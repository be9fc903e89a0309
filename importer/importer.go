package importer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Luexks/luexks-shroud-editor-sub000/shape"
	"github.com/Luexks/luexks-shroud-editor-sub000/shroud"
)

// Result holds whatever an importer produced. Exactly one field is set.
type Result struct {
	Layers []shroud.Container
	Shapes *ShapeSet
}

// Importer interface defines methods for importing the editor's text formats
type Importer interface {
	// CanImport checks if the given content looks like this format
	CanImport(content string) bool

	// Import parses the content
	Import(content string) (*Result, error)

	// GetFormatName returns the human-readable name of the format
	GetFormatName() string

	// GetFileExtensions returns common file extensions for this format
	GetFileExtensions() []string
}

// ShroudImporter parses shroud text against a shape library
type ShroudImporter struct {
	lib *shape.Library
}

// NewShroudImporter creates a shroud importer resolving shapes in lib
func NewShroudImporter(lib *shape.Library) *ShroudImporter {
	return &ShroudImporter{lib: lib}
}

// CanImport accepts text starting with "shroud=" or whose first record opens
// with a key=value pair.
func (i *ShroudImporter) CanImport(content string) bool {
	toks, err := tokenize(content)
	if err != nil || len(toks) < 4 {
		return false
	}
	if toks[0].kind == tokWord && toks[0].text == "shroud" {
		return true
	}
	return toks[0].kind == tokOpen && toks[1].kind == tokOpen && toks[2].kind == tokWord && toks[3].kind == tokEquals
}

// Import parses shroud layers
func (i *ShroudImporter) Import(content string) (*Result, error) {
	layers, err := ParseShroud(content, i.lib)
	if err != nil {
		return nil, err
	}
	return &Result{Layers: layers}, nil
}

// GetFormatName returns the format name
func (i *ShroudImporter) GetFormatName() string { return "shroud" }

// GetFileExtensions returns common file extensions
func (i *ShroudImporter) GetFileExtensions() []string { return []string{".shroud", ".lua", ".txt"} }

// ShapesImporter parses shape libraries
type ShapesImporter struct{}

// NewShapesImporter creates a shape library importer
func NewShapesImporter() *ShapesImporter {
	return &ShapesImporter{}
}

// CanImport accepts text whose first record opens with an integer shape id.
func (i *ShapesImporter) CanImport(content string) bool {
	toks, err := tokenize(content)
	if err != nil || len(toks) < 3 {
		return false
	}
	if toks[0].kind != tokOpen || toks[1].kind != tokOpen || toks[2].kind != tokWord {
		return false
	}
	_, err = strconv.Atoi(toks[2].text)
	return err == nil
}

// Import parses a shape library
func (i *ShapesImporter) Import(content string) (*Result, error) {
	set, err := ParseShapes(content)
	if err != nil {
		return nil, err
	}
	return &Result{Shapes: set}, nil
}

// GetFormatName returns the format name
func (i *ShapesImporter) GetFormatName() string { return "shapes" }

// GetFileExtensions returns common file extensions
func (i *ShapesImporter) GetFileExtensions() []string { return []string{".lua", ".txt"} }

// ImporterRegistry manages available importers
type ImporterRegistry struct {
	importers []Importer
}

// NewImporterRegistry creates a registry holding the shroud and shape
// library importers. Shroud text resolves shapes against lib.
func NewImporterRegistry(lib *shape.Library) *ImporterRegistry {
	return &ImporterRegistry{
		importers: []Importer{
			NewShroudImporter(lib),
			NewShapesImporter(),
		},
	}
}

// DetectFormat attempts to detect the format of the given content
func (r *ImporterRegistry) DetectFormat(content string) (Importer, error) {
	for _, imp := range r.importers {
		if imp.CanImport(content) {
			return imp, nil
		}
	}
	return nil, fmt.Errorf("unable to detect format")
}

// Import attempts to import content using auto-detection
func (r *ImporterRegistry) Import(content string) (*Result, error) {
	importer, err := r.DetectFormat(content)
	if err != nil {
		return nil, err
	}
	return importer.Import(content)
}

// ImportWithFormat imports content using a specific format
func (r *ImporterRegistry) ImportWithFormat(content, format string) (*Result, error) {
	format = strings.ToLower(format)

	for _, imp := range r.importers {
		if strings.ToLower(imp.GetFormatName()) == format {
			return imp.Import(content)
		}
	}

	return nil, fmt.Errorf("unknown format: %s", format)
}

// GetAvailableFormats returns a list of available import formats
func (r *ImporterRegistry) GetAvailableFormats() []string {
	formats := make([]string, len(r.importers))
	for i, imp := range r.importers {
		formats[i] = imp.GetFormatName()
	}
	return formats
}
