package widget

import (
	"testing"

	"github.com/slatetui/slate/layout"
)

// countingNotifier records MarkDirty calls
type countingNotifier struct {
	calls int
}

func (n *countingNotifier) MarkDirty() { n.calls++ }

// focusable is a minimal leaf widget for tree tests
type focusable struct {
	Base
}

func newFocusable(id string) *focusable {
	f := &focusable{Base: NewBase(id)}
	f.SetCanFocus(true)
	return f
}

func TestInvalidateBubblesWhenVisible(t *testing.T) {
	n := &countingNotifier{}
	root := NewContainer("root")
	child := newFocusable("child")
	root.AddChild(child)
	root.Attach(n)

	child.ClearDirty()
	n.calls = 0

	child.Invalidate()
	if n.calls != 1 {
		t.Errorf("visible child invalidation bubbled %d times, want 1", n.calls)
	}
	if !child.Dirty() {
		t.Error("child not marked dirty")
	}
}

func TestInvalidateDoesNotBubbleWhenHidden(t *testing.T) {
	n := &countingNotifier{}
	root := NewContainer("root")
	child := newFocusable("child")
	root.AddChild(child)
	root.Attach(n)

	child.SetVisible(false)
	n.calls = 0

	child.Invalidate()
	if n.calls != 0 {
		t.Errorf("hidden child invalidation bubbled %d times, want 0", n.calls)
	}
	// Dirty flag is still set so the repaint happens once it reappears
	if !child.Dirty() {
		t.Error("hidden child lost its dirty flag")
	}
}

func TestChildIndexBackReference(t *testing.T) {
	root := NewContainer("root")
	a := newFocusable("a")
	b := newFocusable("b")
	root.AddChild(a)
	root.AddChild(b)

	if a.ParentIndex() != 0 || b.ParentIndex() != 1 {
		t.Errorf("parent indices = %d,%d, want 0,1", a.ParentIndex(), b.ParentIndex())
	}
	if root.ParentIndex() != -1 {
		t.Errorf("root parent index = %d, want -1", root.ParentIndex())
	}

	if got := FindByID(root, "b"); got != b {
		t.Error("FindByID did not locate the child")
	}
	if got := FindByID(root, "missing"); got != nil {
		t.Error("FindByID found a widget that does not exist")
	}
}

func TestRemoveChildrenTearsDown(t *testing.T) {
	root := NewContainer("root")
	root.AddChild(newFocusable("a"))
	root.AddChild(newFocusable("b"))

	root.RemoveChildren()
	if len(root.Children()) != 0 {
		t.Errorf("%d children survive RemoveChildren", len(root.Children()))
	}
}

// assertSingleFocus counts focused widgets in the tree
func assertSingleFocus(t *testing.T, root Widget, want int) {
	t.Helper()
	count := 0
	var walk func(Widget)
	walk = func(w Widget) {
		if w.Focused() {
			count++
		}
		for _, c := range w.Children() {
			walk(c)
		}
	}
	walk(root)
	if count != want {
		t.Errorf("%d widgets focused, want %d", count, want)
	}
}

func TestFocusStackSingleFocus(t *testing.T) {
	root := NewContainer("root")
	a := newFocusable("a")
	b := newFocusable("b")
	c := newFocusable("c")
	root.AddChild(a)
	root.AddChild(b)
	root.AddChild(c)

	f := &FocusStack{}
	f.Push(a)
	assertSingleFocus(t, root, 1)

	f.Push(b)
	assertSingleFocus(t, root, 1)
	if !b.Focused() || a.Focused() {
		t.Error("push did not move focus from a to b")
	}

	f.Pop()
	assertSingleFocus(t, root, 1)
	if !a.Focused() {
		t.Error("pop did not restore focus to a")
	}
}

func TestFocusStackSuspendResume(t *testing.T) {
	a := newFocusable("a")
	f := &FocusStack{}
	f.Push(a)

	f.Suspend()
	if a.Focused() {
		t.Error("suspended widget still reports focus")
	}
	if f.Current() != nil {
		t.Error("Current returned a widget while suspended")
	}

	// Push while suspended keeps the new top unfocused until resume
	b := newFocusable("b")
	f.Push(b)
	if b.Focused() {
		t.Error("widget pushed during suspension reports focus")
	}

	f.Resume()
	if !b.Focused() {
		t.Error("resume did not focus the stack top")
	}
	if a.Focused() {
		t.Error("resume focused more than the stack top")
	}
}

func TestFocusStackCycle(t *testing.T) {
	root := NewContainer("root")
	inner := NewContainer("inner")
	a := newFocusable("a")
	b := newFocusable("b")
	c := newFocusable("c")
	root.AddChild(a)
	root.AddChild(inner)
	inner.AddChild(b)
	root.AddChild(c)

	f := &FocusStack{}
	f.Cycle(root, 1)
	if f.Current() != a {
		t.Fatalf("first cycle focused %v, want a", f.Current())
	}

	f.Cycle(root, 1)
	if f.Current() != b {
		t.Errorf("second cycle skipped the nested widget")
	}

	f.Cycle(root, 1)
	f.Cycle(root, 1)
	if f.Current() != a {
		t.Errorf("cycle did not wrap back to a, got %v", f.Current())
	}

	f.Cycle(root, -1)
	if f.Current() != c {
		t.Errorf("reverse cycle moved to %v, want c", f.Current())
	}
	assertSingleFocus(t, root, 1)
}

func TestFocusCycleSkipsHidden(t *testing.T) {
	root := NewContainer("root")
	a := newFocusable("a")
	b := newFocusable("b")
	root.AddChild(a)
	root.AddChild(b)
	b.SetVisible(false)

	f := &FocusStack{}
	f.Cycle(root, 1)
	f.Cycle(root, 1)
	if f.Current() != a {
		t.Errorf("cycle landed on hidden widget %v", f.Current())
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		w    int
		want string
	}{
		{"hello", 10, "hello"},
		{"hello", 5, "hello"},
		{"hello world", 8, "hello w…"},
		{"hello", 1, "…"},
		{"hello", 0, ""},
	}
	for _, tt := range tests {
		if got := Truncate(tt.in, tt.w); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.w, got, tt.want)
		}
	}
}

func TestContainerConstraintLayout(t *testing.T) {
	c := NewContainer("c")
	a := newFocusable("a")
	c.AddConstrained(a, layout.Constraint{Width: layout.Fill(), Height: layout.Abs(3)})

	c.SetBounds(layout.Rect{X: 0, Y: 0, W: 50, H: 20})
	got := a.Bounds()
	if got.W != 50 || got.H != 3 {
		t.Errorf("child bounds = %+v, want 50x3", got)
	}

	// Relayout follows the container
	c.SetBounds(layout.Rect{X: 0, Y: 0, W: 30, H: 20})
	if a.Bounds().W != 30 {
		t.Errorf("child width after resize = %d, want 30", a.Bounds().W)
	}
}
