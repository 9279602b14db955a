package widget

import (
	"github.com/slatetui/slate/layout"
	"github.com/slatetui/slate/render"
	"github.com/slatetui/slate/terminal"
	"github.com/slatetui/slate/theme"
)

// ListItem is one row of a List
type ListItem struct {
	Text string
	Role theme.Role // Zero value renders as text
	Done bool       // Rendered with a check mark and muted color
}

// List is a focusable scrolling list. Up/Down move the cursor, keeping it
// visible; the cursor row renders with the selection background.
type List struct {
	Base
	theme  *theme.Manager
	items  []ListItem
	cursor int
	scroll int

	// OnActivate fires when Enter is pressed on an item
	OnActivate func(index int)
}

// NewList creates an empty focusable list
func NewList(id string, th *theme.Manager) *List {
	l := &List{Base: NewBase(id), theme: th}
	l.SetCanFocus(true)
	return l
}

// SetItems replaces the items, clamping cursor and scroll
func (l *List) SetItems(items []ListItem) {
	l.items = items
	if l.cursor >= len(items) {
		l.cursor = len(items) - 1
	}
	if l.cursor < 0 {
		l.cursor = 0
	}
	l.clampScroll()
	l.Invalidate()
}

// Items returns the current items
func (l *List) Items() []ListItem {
	return l.items
}

// Cursor returns the cursor index, -1 when empty
func (l *List) Cursor() int {
	if len(l.items) == 0 {
		return -1
	}
	return l.cursor
}

// SetCursor moves the cursor, clamped to the item range
func (l *List) SetCursor(i int) {
	if i < 0 {
		i = 0
	}
	if i >= len(l.items) {
		i = len(l.items) - 1
	}
	if i == l.cursor {
		return
	}
	l.cursor = i
	l.clampScroll()
	l.Invalidate()
}

func (l *List) clampScroll() {
	if l.cursor < l.scroll {
		l.scroll = l.cursor
	}
	if h := l.bounds.H; h > 0 && l.cursor >= l.scroll+h {
		l.scroll = l.cursor - h + 1
	}
	if l.scroll < 0 {
		l.scroll = 0
	}
}

func (l *List) SetBounds(r layout.Rect) {
	l.Base.SetBounds(r)
	l.clampScroll()
}

func (l *List) HandleKey(ev terminal.KeyEvent) bool {
	switch ev.Key {
	case terminal.KeyUp:
		l.SetCursor(l.cursor - 1)
		return true
	case terminal.KeyDown:
		l.SetCursor(l.cursor + 1)
		return true
	case terminal.KeyHome:
		l.SetCursor(0)
		return true
	case terminal.KeyEnd:
		l.SetCursor(len(l.items) - 1)
		return true
	case terminal.KeyPageUp:
		l.SetCursor(l.cursor - maxInt(1, l.bounds.H-1))
		return true
	case terminal.KeyPageDown:
		l.SetCursor(l.cursor + maxInt(1, l.bounds.H-1))
		return true
	case terminal.KeyEnter:
		if l.OnActivate != nil && len(l.items) > 0 {
			l.OnActivate(l.cursor)
		}
		return true
	}
	return false
}

func (l *List) Render(fb *render.FrameBuffer) {
	if l.bounds.Empty() {
		return
	}
	bg := l.theme.GetColor(theme.RoleBackground)
	selBg := l.theme.GetColor(theme.RoleSelection)

	for row := 0; row < l.bounds.H; row++ {
		idx := l.scroll + row
		y := l.bounds.Y + row

		rowBg := bg
		if idx == l.cursor && idx < len(l.items) && l.Focused() {
			rowBg = selBg
		}
		fb.Fill(l.bounds.X, y, l.bounds.W, 1, terminal.Cell{Rune: ' ', Bg: rowBg})

		if idx >= len(l.items) {
			continue
		}
		item := l.items[idx]

		role := item.Role
		if item.Done {
			role = theme.RoleMuted
		}
		st := Style{Fg: l.theme.GetColor(role), Bg: rowBg}

		x := l.bounds.X
		if item.Done {
			x += DrawText(fb, x, y, l.bounds.W, "✓ ", st)
		} else {
			x += DrawText(fb, x, y, l.bounds.W, "  ", st)
		}
		DrawText(fb, x, y, l.bounds.X+l.bounds.W-x, Truncate(item.Text, l.bounds.X+l.bounds.W-x), st)
	}
	l.ClearDirty()
}
