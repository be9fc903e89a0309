package editor

import (
	"github.com/Luexks/luexks-shroud-editor-sub000/shroud"
)

// Snapshots is the linear undo list. Each entry is a deep copy of the layer
// collection; pos indexes the entry matching the live collection.
type Snapshots struct {
	list  []*shroud.Collection
	pos   int
	limit int
}

// NewSnapshots returns an empty list holding at most limit collections.
// Limits outside 1..MaxHistory fall back to MaxHistory.
func NewSnapshots(limit int) *Snapshots {
	if limit <= 0 || limit > MaxHistory {
		limit = MaxHistory
	}
	return &Snapshots{list: make([]*shroud.Collection, 0, limit), pos: -1, limit: limit}
}

// Record copies c in after the current entry. Anything that could have been
// redone is dropped, and past the limit the oldest collection goes.
func (u *Snapshots) Record(c *shroud.Collection) error {
	clone, err := c.Clone()
	if err != nil {
		return err
	}
	u.list = append(u.list[:u.pos+1], clone)
	if over := len(u.list) - u.limit; over > 0 {
		u.list = append(u.list[:0], u.list[over:]...)
	}
	u.pos = len(u.list) - 1
	return nil
}

func (u *Snapshots) CanUndo() bool { return u.pos > 0 }
func (u *Snapshots) CanRedo() bool { return u.pos < len(u.list)-1 }

// Undo moves back one entry and returns a copy of it, or nil at the start.
func (u *Snapshots) Undo() (*shroud.Collection, error) {
	if !u.CanUndo() {
		return nil, nil
	}
	u.pos--
	return u.list[u.pos].Clone()
}

// Redo moves forward one entry and returns a copy of it, or nil at the end.
func (u *Snapshots) Redo() (*shroud.Collection, error) {
	if !u.CanRedo() {
		return nil, nil
	}
	u.pos++
	return u.list[u.pos].Clone()
}

// Stats returns the 1-based position and the number of entries.
func (u *Snapshots) Stats() (position, total int) {
	return u.pos + 1, len(u.list)
}
