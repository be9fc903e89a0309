package export

import (
	"encoding/json"
	"fmt"
)

// JSONExporter exports layers to JSON format
type JSONExporter struct{}

// NewJSONExporter creates a new JSON exporter
func NewJSONExporter() *JSONExporter {
	return &JSONExporter{}
}

type jsonLayer struct {
	Shape     string     `json:"shape"`
	Offset    [3]float32 `json:"offset"`
	Size      [2]float32 `json:"size"`
	Degrees   float32    `json:"angle_degrees"`
	Taper     float32    `json:"taper"`
	Color1    string     `json:"color1"`
	Color2    string     `json:"color2"`
	LineColor string     `json:"line_color"`
}

// Export converts the document's layers to JSON
func (e *JSONExporter) Export(doc *Document) (string, error) {
	if doc == nil {
		return "", fmt.Errorf("document is nil")
	}
	layers := make([]jsonLayer, 0, len(doc.Layers))
	for _, l := range doc.Layers {
		layers = append(layers, jsonLayer{
			Shape:     l.Shape,
			Offset:    [3]float32{l.Offset.X, l.Offset.Y, l.Offset.Z},
			Size:      [2]float32{l.Size.X, l.Size.Y},
			Degrees:   l.Angle.Degrees(),
			Taper:     l.Taper,
			Color1:    l.Color1.String(),
			Color2:    l.Color2.String(),
			LineColor: l.LineColor.String(),
		})
	}
	data, err := json.MarshalIndent(layers, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// GetFileExtension returns the file extension for JSON
func (e *JSONExporter) GetFileExtension() string {
	return ".json"
}

// GetFormatName returns the format name
func (e *JSONExporter) GetFormatName() string {
	return "JSON"
}
