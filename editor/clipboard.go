package editor

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Luexks/luexks-shroud-editor-sub000/export"
	"github.com/Luexks/luexks-shroud-editor-sub000/geometry"
	"github.com/Luexks/luexks-shroud-editor-sub000/importer"
	"github.com/Luexks/luexks-shroud-editor-sub000/shroud"
)

// Copy clones the selected containers into the copy buffer. Mirror links
// between copied layers are kept; links leaving the selection are dropped.
func (s *Session) Copy() int {
	sel := s.Selection()
	if len(sel) == 0 {
		return 0
	}
	sub := &shroud.Collection{}
	local := make(map[int]int, len(sel))
	for _, i := range sel {
		if !s.Layers.Valid(i) {
			continue
		}
		local[i] = sub.Append(s.Layers.Items[i])
	}
	clone, err := sub.Clone()
	if err != nil {
		s.logger.Error("copy failed", zap.Error(err))
		return 0
	}
	for j := range clone.Items {
		c := &clone.Items[j]
		if m, ok := local[c.Mirror]; ok && c.Mirror != shroud.NoMirror {
			c.Mirror = m
		} else {
			c.Mirror = shroud.NoMirror
		}
		c.Group = shroud.NoGroup
		c.PendingDelete = false
	}
	s.copyBuffer = clone.Items
	s.logger.Info("copied layers", zap.Int("count", len(s.copyBuffer)))
	return len(s.copyBuffer)
}

// Paste appends the copy buffer centred on the world cursor and enters
// Placing over the new layers.
func (s *Session) Paste() int {
	if len(s.copyBuffer) == 0 {
		return 0
	}
	buf := &shroud.Collection{Items: s.copyBuffer}
	clone, err := buf.Clone()
	if err != nil {
		s.logger.Error("paste failed", zap.Error(err))
		return 0
	}
	offsets := make([]geometry.Vec2, len(clone.Items))
	for i := range clone.Items {
		offsets[i] = clone.Items[i].Layer.Offset.XY()
	}
	shift := s.WorldCursor().Sub(geometry.Centroid(offsets))

	base := s.Layers.Len()
	sel := make([]int, len(clone.Items))
	for i := range clone.Items {
		c := &clone.Items[i]
		// the earlier partner of a pair takes the shift, the later one mirrors it
		if m := c.Mirror; m != shroud.NoMirror && m < i {
			c.Layer.Offset = c.Layer.Offset.WithXY(clone.Items[m].Layer.Offset.XY().MirrorY())
		} else {
			c.Layer.Offset = c.Layer.Offset.WithXY(offsets[i].Add(shift))
		}
		sel[i] = base + i
	}
	for i := range clone.Items {
		if c := &clone.Items[i]; c.Mirror != shroud.NoMirror {
			c.Mirror += base
		}
	}
	s.Layers.Append(clone.Items...)
	s.State = Placing{Selection: s.anchor(sel), Start: s.Cursor}
	s.markChanged()
	s.logger.Info("pasted layers", zap.Int("count", len(sel)))
	return len(sel)
}

// ExportToClipboard writes the whole collection as shroud text.
func (s *Session) ExportToClipboard() {
	if s.clipboard == nil {
		s.SetHint("No clipboard available")
		return
	}
	text := export.ExportShroud(s.Layers.Layers())
	if err := s.clipboard.SetText(text); err != nil {
		s.logger.Warn("clipboard write failed", zap.Error(err))
		s.SetHint("Clipboard write failed")
		return
	}
	s.SetHint(fmt.Sprintf("Copied %d layers to clipboard", s.Layers.Len()))
}

// ImportFromClipboard replaces the collection with shroud text from the
// clipboard. On any failure the collection is left as it was.
func (s *Session) ImportFromClipboard() {
	if s.clipboard == nil {
		s.SetHint("No clipboard available")
		return
	}
	text, err := s.clipboard.Text()
	if err != nil {
		s.logger.Warn("clipboard read failed", zap.Error(err))
		return
	}
	if err := s.ImportText(text); err != nil {
		s.SetHint(err.Error())
	}
}

// ImportText detects whether text is shroud layers or a shape library and
// imports it accordingly.
func (s *Session) ImportText(text string) error {
	res, err := importer.NewImporterRegistry(s.Library).Import(text)
	if err != nil {
		s.logger.Info("import rejected", zap.Error(err))
		return err
	}
	if res.Shapes != nil {
		return s.addShapes(res.Shapes)
	}
	s.Replace(res.Layers)
	s.SetHint(fmt.Sprintf("Imported %d layers", len(res.Layers)))
	s.logger.Info("shroud imported", zap.Int("layers", len(res.Layers)))
	return nil
}

// ImportShroud parses shroud text and replaces the collection with it.
func (s *Session) ImportShroud(text string) error {
	layers, err := importer.ParseShroud(text, s.Library)
	if err != nil {
		s.logger.Info("shroud import rejected", zap.Error(err))
		return err
	}
	s.Replace(layers)
	s.SetHint(fmt.Sprintf("Imported %d layers", len(layers)))
	s.logger.Info("shroud imported", zap.Int("layers", len(layers)))
	return nil
}

// ImportShapes parses a custom shape library and adds it to the session's
// library. Existing layers keep their shapes.
func (s *Session) ImportShapes(text string) error {
	set, err := importer.ParseShapes(text)
	if err != nil {
		s.logger.Info("shape import rejected", zap.Error(err))
		return err
	}
	return s.addShapes(set)
}

func (s *Session) addShapes(set *importer.ShapeSet) error {
	if err := s.Library.AddCustom(set.Shapes, set.Mirrors); err != nil {
		return err
	}
	s.SetHint(fmt.Sprintf("Imported %d shapes", len(set.Shapes)))
	s.logger.Info("shapes imported", zap.Int("shapes", len(set.Shapes)), zap.Int("mirrors", len(set.Mirrors)))
	return nil
}

// RequestReference asks the file picker for a reference image.
func (s *Session) RequestReference() {
	if s.picker == nil {
		return
	}
	s.picker.Open()
}

// pollPicker loads a reference image once the picker has a path.
func (s *Session) pollPicker() {
	if s.picker == nil {
		return
	}
	path, ok := s.picker.Poll()
	if !ok {
		return
	}
	s.LoadReference(path)
}

// LoadReference decodes the image at path and shows it under the layers.
// Decode failures only produce a hint.
func (s *Session) LoadReference(path string) {
	if s.decoder == nil {
		return
	}
	img, err := s.decoder.DecodeFile(path)
	if err != nil {
		s.logger.Warn("reference image decode failed", zap.String("path", path), zap.Error(err))
		s.SetHint("Could not load " + path)
		return
	}
	s.Reference = &img
	s.logger.Info("reference image loaded", zap.String("path", path), zap.Int("width", img.Width), zap.Int("height", img.Height))
}
