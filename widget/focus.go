package widget

// FocusStack tracks which content widget has the keyboard. At most one
// widget reports itself focused at any time; an empty stack means nothing
// has focus.
type FocusStack struct {
	stack []Widget

	// suspended keeps the content focus while a menu is open so it can be
	// restored verbatim on menu close
	suspended bool
}

// Current returns the active widget, nil when the stack is empty or focus
// is suspended
func (f *FocusStack) Current() Widget {
	if f.suspended || len(f.stack) == 0 {
		return nil
	}
	return f.stack[len(f.stack)-1]
}

// Push focuses w, unfocusing the previous top. Non-focusable widgets are
// ignored.
func (f *FocusStack) Push(w Widget) {
	if w == nil || !w.CanFocus() {
		return
	}
	if top := f.Current(); top != nil {
		top.SetFocused(false)
	}
	f.stack = append(f.stack, w)
	if !f.suspended {
		w.SetFocused(true)
	}
}

// Pop removes the active widget, restoring focus to the one below
func (f *FocusStack) Pop() Widget {
	if len(f.stack) == 0 {
		return nil
	}
	top := f.stack[len(f.stack)-1]
	top.SetFocused(false)
	f.stack = f.stack[:len(f.stack)-1]
	if next := f.Current(); next != nil {
		next.SetFocused(true)
	}
	return top
}

// Clear unfocuses everything
func (f *FocusStack) Clear() {
	if top := f.Current(); top != nil {
		top.SetFocused(false)
	}
	f.stack = f.stack[:0]
	f.suspended = false
}

// Suspend hides content focus without clearing the stack, used while a
// menu is active
func (f *FocusStack) Suspend() {
	if f.suspended {
		return
	}
	if top := f.Current(); top != nil {
		top.SetFocused(false)
	}
	f.suspended = true
}

// Resume restores the focus present before Suspend
func (f *FocusStack) Resume() {
	if !f.suspended {
		return
	}
	f.suspended = false
	if top := f.Current(); top != nil {
		top.SetFocused(true)
	}
}

// Cycle moves focus to the next (dir=+1) or previous (dir=-1) focusable
// widget in root's subtree, replacing the stack top. With no focusable
// widgets the call is a no-op.
func (f *FocusStack) Cycle(root Widget, dir int) {
	var focusables []Widget
	collectFocusable(root, &focusables)
	if len(focusables) == 0 {
		return
	}

	cur := f.Current()
	idx := -1
	for i, w := range focusables {
		if w == cur {
			idx = i
			break
		}
	}

	var next Widget
	if idx < 0 {
		next = focusables[0]
	} else {
		next = focusables[(idx+dir+len(focusables))%len(focusables)]
	}

	if cur != nil {
		f.Pop()
	}
	f.Push(next)
}

func collectFocusable(w Widget, out *[]Widget) {
	if !w.Visible() {
		return
	}
	if w.CanFocus() {
		*out = append(*out, w)
	}
	for _, c := range w.Children() {
		collectFocusable(c, out)
	}
}
