package shroud

import (
	"fmt"
	"sort"

	"github.com/jinzhu/copier"

	"github.com/Luexks/luexks-shroud-editor-sub000/core"
	"github.com/Luexks/luexks-shroud-editor-sub000/geometry"
	"github.com/Luexks/luexks-shroud-editor-sub000/shape"
)

// Collection is the ordered arena of layer containers. Mirror partners and
// groups refer to containers by index, so every operation that removes or
// reorders containers rewrites those indices before returning.
type Collection struct {
	Items  []Container
	Groups [][]int // each group lists member indices in ascending order
}

// NewCollection wraps items. Group indices on the items are cleared because
// they cannot refer to a group list that came with them.
func NewCollection(items []Container) *Collection {
	c := &Collection{Items: items}
	for i := range c.Items {
		c.Items[i].Group = NoGroup
	}
	return c
}

// Len returns the number of containers.
func (c *Collection) Len() int { return len(c.Items) }

// At returns a pointer to the i-th container.
func (c *Collection) At(i int) *Container { return &c.Items[i] }

// Valid reports whether i indexes a container.
func (c *Collection) Valid(i int) bool { return i >= 0 && i < len(c.Items) }

// Append adds containers at the end and returns the index of the first one.
func (c *Collection) Append(items ...Container) int {
	first := len(c.Items)
	c.Items = append(c.Items, items...)
	return first
}

// Clone returns a deep copy sharing no slices with c.
func (c *Collection) Clone() (*Collection, error) {
	out := &Collection{}
	if err := copier.CopyWithOption(out, c, copier.Option{DeepCopy: true}); err != nil {
		return nil, fmt.Errorf("clone collection: %w", err)
	}
	return out, nil
}

// Layers returns the plain layer values in collection order.
func (c *Collection) Layers() []Layer {
	out := make([]Layer, len(c.Items))
	for i := range c.Items {
		out[i] = c.Items[i].Layer
	}
	return out
}

// Delete removes the containers at the given indices. Partners of removed
// containers are widowed, and every surviving mirror and group reference is
// renumbered. Duplicate and out of range indices are ignored.
func (c *Collection) Delete(indices []int) []int {
	doomed := uniqueDescending(indices, len(c.Items))
	for _, k := range doomed {
		if m := c.Items[k].Mirror; m != NoMirror && m != k {
			c.Items[m].Mirror = NoMirror
		}
		c.Items = append(c.Items[:k], c.Items[k+1:]...)
		for i := range c.Items {
			if m := c.Items[i].Mirror; m > k {
				c.Items[i].Mirror = m - 1
			} else if m == k {
				c.Items[i].Mirror = NoMirror
			}
		}
		for g, members := range c.Groups {
			kept := members[:0]
			for _, idx := range members {
				switch {
				case idx == k:
				case idx > k:
					kept = append(kept, idx-1)
				default:
					kept = append(kept, idx)
				}
			}
			c.Groups[g] = kept
		}
	}
	c.CullEmptyGroups()
	return doomed
}

// SweepPendingDeletes removes every container flagged PendingDelete and
// returns the removed indices in descending order.
func (c *Collection) SweepPendingDeletes() []int {
	var marked []int
	for i := range c.Items {
		if c.Items[i].PendingDelete {
			marked = append(marked, i)
		}
	}
	if len(marked) == 0 {
		return nil
	}
	return c.Delete(marked)
}

// Renumber maps an index from before a Delete to after it. It returns false
// when the index itself was removed.
func Renumber(idx int, deleted []int) (int, bool) {
	shift := 0
	for _, k := range deleted {
		switch {
		case k == idx:
			return 0, false
		case k < idx:
			shift++
		}
	}
	return idx - shift, true
}

func uniqueDescending(indices []int, n int) []int {
	seen := make(map[int]bool, len(indices))
	var out []int
	for _, i := range indices {
		if i < 0 || i >= n || seen[i] {
			continue
		}
		seen[i] = true
		out = append(out, i)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(out)))
	return out
}

// IsContiguous reports whether each element of a sorted slice is one more
// than its predecessor.
func IsContiguous(sorted []int) bool {
	for i := 1; i < len(sorted); i++ {
		if sorted[i] != sorted[i-1]+1 {
			return false
		}
	}
	return true
}

// MoveUp moves a contiguous selection one position towards index 0. It
// returns the remapping applied, or nil when the move is not allowed.
func (c *Collection) MoveUp(sel []int) func(int) int {
	top, bottom, ok := c.movable(sel)
	if !ok || top == 0 {
		return nil
	}
	lo, hi := top-1, bottom
	remap := func(i int) int {
		switch {
		case i == lo:
			return hi
		case i > lo && i <= hi:
			return i - 1
		}
		return i
	}
	c.rotate(lo, hi, remap)
	return remap
}

// MoveDown moves a contiguous selection one position towards the end.
func (c *Collection) MoveDown(sel []int) func(int) int {
	top, bottom, ok := c.movable(sel)
	if !ok || bottom == len(c.Items)-1 {
		return nil
	}
	lo, hi := top, bottom+1
	remap := func(i int) int {
		switch {
		case i == hi:
			return lo
		case i >= lo && i < hi:
			return i + 1
		}
		return i
	}
	c.rotate(lo, hi, remap)
	return remap
}

func (c *Collection) movable(sel []int) (top, bottom int, ok bool) {
	if len(sel) == 0 || len(sel) >= len(c.Items) {
		return 0, 0, false
	}
	sorted := append([]int(nil), sel...)
	sort.Ints(sorted)
	if !IsContiguous(sorted) || !c.Valid(sorted[0]) || !c.Valid(sorted[len(sorted)-1]) {
		return 0, 0, false
	}
	return sorted[0], sorted[len(sorted)-1], true
}

// rotate permutes Items[lo:hi+1] so that the item at i lands at remap(i),
// then rewrites mirror and group references through the same function.
func (c *Collection) rotate(lo, hi int, remap func(int) int) {
	moved := make([]Container, hi-lo+1)
	for i := lo; i <= hi; i++ {
		moved[remap(i)-lo] = c.Items[i]
	}
	copy(c.Items[lo:hi+1], moved)
	for i := range c.Items {
		if m := c.Items[i].Mirror; m != NoMirror {
			c.Items[i].Mirror = remap(m)
		}
	}
	for g, members := range c.Groups {
		for j, idx := range members {
			members[j] = remap(idx)
		}
		sort.Ints(members)
		c.Groups[g] = members
	}
}

// ToggleGroup groups the selection, or ungroups it when every selected
// container already belongs to the same group. Selections of fewer than two
// containers are ignored. It reports whether anything changed.
func (c *Collection) ToggleGroup(sel []int) bool {
	if len(sel) < 2 {
		return false
	}
	for _, i := range sel {
		if !c.Valid(i) {
			return false
		}
	}
	common := c.Items[sel[0]].Group
	for _, i := range sel[1:] {
		if c.Items[i].Group != common {
			common = NoGroup
			break
		}
	}
	if common != NoGroup {
		c.dissolve(common)
		c.CullEmptyGroups()
		return true
	}

	for _, i := range sel {
		if g := c.Items[i].Group; g != NoGroup {
			c.dissolve(g)
		}
	}
	members := append([]int(nil), sel...)
	sort.Ints(members)
	c.Groups = append(c.Groups, members)
	g := len(c.Groups) - 1
	for _, i := range members {
		c.Items[i].Group = g
	}
	c.CullEmptyGroups()
	return true
}

// Ungroup dissolves every group touched by sel.
func (c *Collection) Ungroup(sel []int) bool {
	changed := false
	for _, i := range sel {
		if c.Valid(i) && c.Items[i].Group != NoGroup {
			c.dissolve(c.Items[i].Group)
			changed = true
		}
	}
	if changed {
		c.CullEmptyGroups()
	}
	return changed
}

func (c *Collection) dissolve(g int) {
	if g < 0 || g >= len(c.Groups) {
		return
	}
	for _, i := range c.Groups[g] {
		if c.Valid(i) && c.Items[i].Group == g {
			c.Items[i].Group = NoGroup
		}
	}
	c.Groups[g] = nil
}

// CullEmptyGroups compacts the group list, dropping empty groups and
// rewriting each container's group index.
func (c *Collection) CullEmptyGroups() {
	remap := make([]int, len(c.Groups))
	kept := c.Groups[:0]
	for g, members := range c.Groups {
		if len(members) == 0 {
			remap[g] = NoGroup
			continue
		}
		remap[g] = len(kept)
		kept = append(kept, members)
	}
	c.Groups = kept
	for i := range c.Items {
		if g := c.Items[i].Group; g != NoGroup {
			if g < len(remap) {
				c.Items[i].Group = remap[g]
			} else {
				c.Items[i].Group = NoGroup
			}
		}
	}
}

// GroupMembers returns the indices sharing i's group, or just i when it is
// ungrouped.
func (c *Collection) GroupMembers(i int) []int {
	if !c.Valid(i) {
		return nil
	}
	g := c.Items[i].Group
	if g == NoGroup || g >= len(c.Groups) {
		return []int{i}
	}
	return append([]int(nil), c.Groups[g]...)
}

// LinkMirror pairs a and b, widowing any previous partners of either.
func (c *Collection) LinkMirror(a, b int) error {
	if !c.Valid(a) || !c.Valid(b) || a == b {
		return fmt.Errorf("cannot link layers %d and %d", a, b)
	}
	c.Unlink(a)
	c.Unlink(b)
	c.Items[a].Mirror = b
	c.Items[b].Mirror = a
	return nil
}

// Unlink widows i and its partner.
func (c *Collection) Unlink(i int) {
	if !c.Valid(i) {
		return
	}
	if m := c.Items[i].Mirror; c.Valid(m) && c.Items[m].Mirror == i {
		c.Items[m].Mirror = NoMirror
	}
	c.Items[i].Mirror = NoMirror
}

// MirrorLayer returns the layer a partner of l should hold: offset y and
// angle inverted, everything else copied. The shape is resolved through the
// library's mirror table for custom shapes.
func MirrorLayer(l Layer, shapeIndex int, lib *shape.Library) (Layer, int) {
	m := l
	m.Offset = l.Offset.MirrorY()
	m.Angle = l.Angle.Neg()
	idx := shapeIndex
	if !lib.IsVanilla(shapeIndex) {
		if partner, ok := lib.MirrorOf(shapeIndex); ok {
			idx = partner
		}
	}
	m.Shape = lib.At(idx).ID
	return m, idx
}

// AddMirror appends a mirrored partner for i and links the two. It returns
// the partner's index.
func (c *Collection) AddMirror(i int, lib *shape.Library) (int, error) {
	if !c.Valid(i) {
		return 0, fmt.Errorf("layer %d does not exist", i)
	}
	if c.Items[i].Mirror != NoMirror {
		return 0, fmt.Errorf("layer %d is already mirrored", i)
	}
	src := c.Items[i]
	l, idx := MirrorLayer(src.Layer, src.ShapeIndex, lib)
	partner := Container{Layer: l, Mirror: i, Group: NoGroup}
	partner.assignShape(idx, lib)
	j := c.Append(partner)
	c.Items[i].Mirror = j
	return j, nil
}

func (c *Collection) partner(i int) (*Container, bool) {
	m := c.Items[i].Mirror
	if !c.Valid(m) {
		return nil, false
	}
	return &c.Items[m], true
}

// SetOffset moves i and mirrors the y coordinate onto its partner. The
// partner keeps its own z.
func (c *Collection) SetOffset(i int, off geometry.Vec3) {
	c.Items[i].Layer.Offset = off
	if p, ok := c.partner(i); ok {
		p.Layer.Offset = p.Layer.Offset.WithXY(off.XY().MirrorY())
	}
}

// SetSize resizes i and its partner.
func (c *Collection) SetSize(i int, size geometry.Vec2) {
	c.Items[i].Layer.Size = size
	if p, ok := c.partner(i); ok {
		p.Layer.Size = size
	}
}

// SetAngle rotates i and gives its partner the negated angle.
func (c *Collection) SetAngle(i int, a core.Angle) {
	c.Items[i].Layer.Angle = a
	if p, ok := c.partner(i); ok {
		p.Layer.Angle = a.Neg()
	}
}

// SetTaper sets the taper of i and its partner.
func (c *Collection) SetTaper(i int, taper float32) {
	c.Items[i].Layer.Taper = taper
	if p, ok := c.partner(i); ok {
		p.Layer.Taper = taper
	}
}

// SetColor assigns one of the three color references of i and its partner.
// which selects the field: Color1, Color2 or LineColor.
func (c *Collection) SetColor(i int, which, slot core.ColorSlot) {
	set := func(l *Layer) {
		switch which {
		case core.Color1:
			l.Color1 = slot
		case core.Color2:
			l.Color2 = slot
		case core.LineColor:
			l.LineColor = slot
		}
	}
	set(&c.Items[i].Layer)
	if p, ok := c.partner(i); ok {
		set(&p.Layer)
	}
}

// SetShape assigns library shape idx to i. The partner receives the mirrored
// custom shape when the table has one, otherwise the same shape.
func (c *Collection) SetShape(i, idx int, lib *shape.Library) error {
	if idx < 0 || idx >= lib.Len() {
		return fmt.Errorf("shape index %d out of range", idx)
	}
	c.Items[i].assignShape(idx, lib)
	if p, ok := c.partner(i); ok {
		_, pidx := MirrorLayer(c.Items[i].Layer, idx, lib)
		p.assignShape(pidx, lib)
	}
	return nil
}

// Validate checks the mirror and group invariants.
func (c *Collection) Validate() error {
	for i := range c.Items {
		m := c.Items[i].Mirror
		if m == NoMirror {
			continue
		}
		if !c.Valid(m) {
			return fmt.Errorf("layer %d: mirror index %d out of range", i, m)
		}
		if m == i {
			return fmt.Errorf("layer %d: mirrored to itself", i)
		}
		if back := c.Items[m].Mirror; back != i {
			return fmt.Errorf("layer %d: partner %d points back at %d", i, m, back)
		}
	}
	for g, members := range c.Groups {
		if len(members) == 0 {
			return fmt.Errorf("group %d is empty", g)
		}
		for _, idx := range members {
			if !c.Valid(idx) {
				return fmt.Errorf("group %d: member %d out of range", g, idx)
			}
			if c.Items[idx].Group != g {
				return fmt.Errorf("group %d: member %d records group %d", g, idx, c.Items[idx].Group)
			}
		}
	}
	for i := range c.Items {
		g := c.Items[i].Group
		if g == NoGroup {
			continue
		}
		if g < 0 || g >= len(c.Groups) {
			return fmt.Errorf("layer %d: group index %d out of range", i, g)
		}
		if idx := sort.SearchInts(c.Groups[g], i); idx == len(c.Groups[g]) || c.Groups[g][idx] != i {
			return fmt.Errorf("layer %d: missing from group %d", i, g)
		}
	}
	return nil
}
