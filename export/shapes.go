package export

import (
	"fmt"
	"strings"

	"github.com/Luexks/luexks-shroud-editor-sub000/shape"
)

// ShapesExporter writes a library's custom shapes
type ShapesExporter struct{}

// NewShapesExporter creates a new shape library exporter
func NewShapesExporter() *ShapesExporter {
	return &ShapesExporter{}
}

// Export converts the document's custom shapes to shape library text
func (e *ShapesExporter) Export(doc *Document) (string, error) {
	if doc == nil || doc.Library == nil {
		return "", fmt.Errorf("document has no shape library")
	}
	return ExportShapes(doc.Library)
}

// GetFileExtension returns the recommended file extension
func (e *ShapesExporter) GetFileExtension() string {
	return ".lua"
}

// GetFormatName returns the format name
func (e *ShapesExporter) GetFormatName() string {
	return "Shapes"
}

// ExportShapes serialises the custom shapes of lib. A shape recorded as the
// mirror side of a pair is written as a mirror_of declaration; every other
// shape writes all of its scales. Ports are written empty.
func ExportShapes(lib *shape.Library) (string, error) {
	custom := lib.Custom()
	if len(custom) == 0 {
		return "", fmt.Errorf("library has no custom shapes")
	}
	mirrorOf := make(map[int]int)
	for _, p := range lib.MirrorPairs() {
		mirrorOf[p.Mirror] = p.Source
	}

	var sb strings.Builder
	sb.WriteString("{\n")
	for i, s := range custom {
		if !s.Numeric {
			return "", fmt.Errorf("custom shape %q has no numeric id", s.ID)
		}
		if src, ok := mirrorOf[lib.VanillaCount()+i]; ok {
			fmt.Fprintf(&sb, "\t{%s mirror_of=%s}\n", s.ID, lib.At(src).ID)
			continue
		}
		fmt.Fprintf(&sb, "\t{%s\n\t\t{\n", s.ID)
		for _, verts := range s.Scales {
			sb.WriteString("\t\t\t{verts={")
			for _, v := range verts {
				fmt.Fprintf(&sb, "{%s,%s}", formatFloat(v.X), formatFloat(v.Y))
			}
			sb.WriteString("} ports={}}\n")
		}
		sb.WriteString("\t\t}\n\t}\n")
	}
	sb.WriteString("}\n")
	return sb.String(), nil
}
