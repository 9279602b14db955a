package widget

import (
	"github.com/slatetui/slate/render"
	"github.com/slatetui/slate/theme"
)

// Align positions label text within its bounds
type Align uint8

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Label is a single-line text leaf
type Label struct {
	Base
	theme *theme.Manager
	text  string
	role  theme.Role
	align Align
}

// NewLabel creates a label rendering in the text role
func NewLabel(id string, th *theme.Manager, text string) *Label {
	return &Label{Base: NewBase(id), theme: th, text: text, role: theme.RoleText}
}

// SetText replaces the label text
func (l *Label) SetText(text string) {
	if l.text == text {
		return
	}
	l.text = text
	l.Invalidate()
}

// Text returns the current text
func (l *Label) Text() string {
	return l.text
}

// SetRole changes the color role the label pulls at render time
func (l *Label) SetRole(role theme.Role) {
	l.role = role
	l.Invalidate()
}

// SetAlign sets text alignment
func (l *Label) SetAlign(a Align) {
	l.align = a
	l.Invalidate()
}

func (l *Label) Render(fb *render.FrameBuffer) {
	if l.bounds.Empty() {
		return
	}
	bg := l.theme.GetColor(theme.RoleBackground)
	FillRect(fb, l.bounds, bg)

	t := Truncate(l.text, l.bounds.W)
	x := l.bounds.X
	switch l.align {
	case AlignCenter:
		x += (l.bounds.W - textWidth(t)) / 2
	case AlignRight:
		x += l.bounds.W - textWidth(t)
	}
	DrawText(fb, x, l.bounds.Y, l.bounds.W, t, Style{
		Fg: l.theme.GetColor(l.role),
		Bg: bg,
	})
	l.ClearDirty()
}
