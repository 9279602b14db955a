// Package widget provides the composable retained-mode node the engine's
// screens are built from. A widget owns its children; children refer back
// to the parent only by index, so the tree tears down deterministically.
package widget

import (
	"github.com/slatetui/slate/layout"
	"github.com/slatetui/slate/render"
	"github.com/slatetui/slate/terminal"
)

// Notifier receives dirty notifications bubbled from visible widgets so
// the application shell knows a render pass is needed
type Notifier interface {
	MarkDirty()
}

// Widget is the base render contract. Render may only touch cells within
// the widget's own bounds and its children's bounds.
type Widget interface {
	ID() string
	Bounds() layout.Rect

	// SetBounds recomputes layout-derived values and marks dirty
	SetBounds(layout.Rect)

	Visible() bool
	SetVisible(bool)

	Dirty() bool
	ClearDirty()

	// Invalidate marks the widget dirty and, if it is visible, bubbles a
	// notification to the root notifier
	Invalidate()

	CanFocus() bool
	Focused() bool
	SetFocused(bool)

	// HandleKey consumes a key event, returning false to pass it on
	HandleKey(ev terminal.KeyEvent) bool

	Render(fb *render.FrameBuffer)

	Children() []Widget
	Attach(n Notifier)
}

// Base implements the bookkeeping shared by every widget
type Base struct {
	id       string
	bounds   layout.Rect
	visible  bool
	dirty    bool
	canFocus bool
	focused  bool

	children []Widget

	// Index into the parent's child list; -1 for roots. A parent is found
	// by an explicit lookup from the root, never via a stored pointer.
	parentIndex int

	notifier Notifier
}

// NewBase creates widget bookkeeping with the given id
func NewBase(id string) Base {
	return Base{id: id, visible: true, dirty: true, parentIndex: -1}
}

func (b *Base) ID() string {
	return b.id
}

func (b *Base) Bounds() layout.Rect {
	return b.bounds
}

func (b *Base) SetBounds(r layout.Rect) {
	if b.bounds == r {
		return
	}
	b.bounds = r
	b.Invalidate()
}

func (b *Base) Visible() bool {
	return b.visible
}

func (b *Base) SetVisible(v bool) {
	if b.visible == v {
		return
	}
	b.visible = v
	// Becoming visible requires a repaint; becoming invisible requires the
	// parent to repaint over us, which the shell handles via tree dirt
	b.dirty = true
	if b.notifier != nil {
		b.notifier.MarkDirty()
	}
}

func (b *Base) Dirty() bool {
	return b.dirty
}

func (b *Base) ClearDirty() {
	b.dirty = false
}

func (b *Base) Invalidate() {
	b.dirty = true
	if b.visible && b.notifier != nil {
		b.notifier.MarkDirty()
	}
}

func (b *Base) CanFocus() bool {
	return b.canFocus
}

// SetCanFocus marks the widget as focusable
func (b *Base) SetCanFocus(v bool) {
	b.canFocus = v
}

func (b *Base) Focused() bool {
	return b.focused
}

func (b *Base) SetFocused(f bool) {
	if b.focused == f {
		return
	}
	b.focused = f
	b.Invalidate()
}

// HandleKey is a no-op in the base; leaves override it
func (b *Base) HandleKey(terminal.KeyEvent) bool {
	return false
}

func (b *Base) Children() []Widget {
	return b.children
}

// AddChild appends a child, recording its index back-reference, and
// attaches the notifier
func (b *Base) AddChild(w Widget) {
	if bw, ok := w.(interface{ setParentIndex(int) }); ok {
		bw.setParentIndex(len(b.children))
	}
	b.children = append(b.children, w)
	if b.notifier != nil {
		w.Attach(b.notifier)
	}
	b.Invalidate()
}

// RemoveChildren drops all children. Ownership is exclusive, so dropping
// the slice is complete teardown.
func (b *Base) RemoveChildren() {
	b.children = nil
	b.Invalidate()
}

func (b *Base) setParentIndex(i int) {
	b.parentIndex = i
}

// ParentIndex returns this widget's index in its parent's child list, -1
// for roots
func (b *Base) ParentIndex() int {
	return b.parentIndex
}

func (b *Base) Attach(n Notifier) {
	b.notifier = n
	for _, c := range b.children {
		c.Attach(n)
	}
}

// Render paints nothing in the base
func (b *Base) Render(*render.FrameBuffer) {}

// InvalidateTree marks a whole subtree dirty
func InvalidateTree(w Widget) {
	w.Invalidate()
	for _, c := range w.Children() {
		InvalidateTree(c)
	}
}

// TreeDirty reports whether any visible widget in the subtree is dirty
func TreeDirty(w Widget) bool {
	if !w.Visible() {
		return false
	}
	if w.Dirty() {
		return true
	}
	for _, c := range w.Children() {
		if TreeDirty(c) {
			return true
		}
	}
	return false
}

// FindByID does an explicit lookup from root, the only sanctioned way to
// reach an ancestor or sibling
func FindByID(root Widget, id string) Widget {
	if root.ID() == id {
		return root
	}
	for _, c := range root.Children() {
		if found := FindByID(c, id); found != nil {
			return found
		}
	}
	return nil
}
