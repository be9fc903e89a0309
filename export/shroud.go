package export

import (
	"fmt"
	"strings"

	"github.com/Luexks/luexks-shroud-editor-sub000/shape"
	"github.com/Luexks/luexks-shroud-editor-sub000/shroud"
)

// ShroudExporter writes layers as shroud text
type ShroudExporter struct{}

// NewShroudExporter creates a new shroud exporter
func NewShroudExporter() *ShroudExporter {
	return &ShroudExporter{}
}

// Export converts the document's layers to shroud text
func (e *ShroudExporter) Export(doc *Document) (string, error) {
	if doc == nil {
		return "", fmt.Errorf("document is nil")
	}
	return ExportShroud(doc.Layers), nil
}

// GetFileExtension returns the recommended file extension
func (e *ShroudExporter) GetFileExtension() string {
	return ".shroud"
}

// GetFormatName returns the format name
func (e *ShroudExporter) GetFormatName() string {
	return "Shroud"
}

// ExportShroud serialises layers in collection order. Near-zero angles are
// omitted, as is a default taper on shapes that ignore it.
func ExportShroud(layers []shroud.Layer) string {
	var sb strings.Builder
	sb.WriteString("shroud={\n")
	for _, l := range layers {
		sb.WriteString("\t{")
		fmt.Fprintf(&sb, "tri_color_id=%s tri_color1_id=%s line_color_id=%s", l.Color1.ID(), l.Color2.ID(), l.LineColor.ID())
		fmt.Fprintf(&sb, " shape=%s", l.Shape)
		fmt.Fprintf(&sb, " offset={%s,%s,%s}", formatFloat(l.Offset.X), formatFloat(l.Offset.Y), formatFloat(l.Offset.Z))
		fmt.Fprintf(&sb, " size={%s,%s}", formatFloat(l.Size.X), formatFloat(l.Size.Y))
		if !l.Angle.IsZero() {
			fmt.Fprintf(&sb, " angle=%s", formatFloat(l.Angle.Radians()))
		}
		if !(l.Shape != shape.Square && l.Taper == 1) {
			fmt.Fprintf(&sb, " taper=%s", formatFloat(l.Taper))
		}
		sb.WriteString("}\n")
	}
	sb.WriteString("}\n")
	return sb.String()
}
