package widget

import (
	"github.com/slatetui/slate/render"
	"github.com/slatetui/slate/terminal"
	"github.com/slatetui/slate/theme"
)

// TextInput is a focusable single-line editor
type TextInput struct {
	Base
	theme       *theme.Manager
	runes       []rune
	cursor      int
	scroll      int
	placeholder string

	// OnSubmit fires on Enter with the current text
	OnSubmit func(text string)
}

// NewTextInput creates an empty focusable input
func NewTextInput(id string, th *theme.Manager) *TextInput {
	t := &TextInput{Base: NewBase(id), theme: th}
	t.SetCanFocus(true)
	return t
}

// SetPlaceholder sets the hint shown while empty
func (t *TextInput) SetPlaceholder(s string) {
	t.placeholder = s
	t.Invalidate()
}

// Text returns the current content
func (t *TextInput) Text() string {
	return string(t.runes)
}

// SetText replaces the content, cursor at end
func (t *TextInput) SetText(s string) {
	t.runes = []rune(s)
	t.cursor = len(t.runes)
	t.Invalidate()
}

// Clear empties the input
func (t *TextInput) Clear() {
	t.runes = t.runes[:0]
	t.cursor = 0
	t.scroll = 0
	t.Invalidate()
}

func (t *TextInput) HandleKey(ev terminal.KeyEvent) bool {
	switch ev.Key {
	case terminal.KeyRune:
		t.runes = append(t.runes, 0)
		copy(t.runes[t.cursor+1:], t.runes[t.cursor:])
		t.runes[t.cursor] = ev.Rune
		t.cursor++
	case terminal.KeySpace:
		t.runes = append(t.runes, 0)
		copy(t.runes[t.cursor+1:], t.runes[t.cursor:])
		t.runes[t.cursor] = ' '
		t.cursor++
	case terminal.KeyBackspace:
		if t.cursor == 0 {
			return true
		}
		t.runes = append(t.runes[:t.cursor-1], t.runes[t.cursor:]...)
		t.cursor--
	case terminal.KeyDelete:
		if t.cursor >= len(t.runes) {
			return true
		}
		t.runes = append(t.runes[:t.cursor], t.runes[t.cursor+1:]...)
	case terminal.KeyLeft:
		if t.cursor > 0 {
			t.cursor--
		}
	case terminal.KeyRight:
		if t.cursor < len(t.runes) {
			t.cursor++
		}
	case terminal.KeyHome:
		t.cursor = 0
	case terminal.KeyEnd:
		t.cursor = len(t.runes)
	case terminal.KeyCtrlU:
		t.runes = append(t.runes[:0], t.runes[t.cursor:]...)
		t.cursor = 0
	case terminal.KeyEnter:
		if t.OnSubmit != nil {
			t.OnSubmit(string(t.runes))
		}
	default:
		return false
	}
	t.Invalidate()
	return true
}

func (t *TextInput) Render(fb *render.FrameBuffer) {
	if t.bounds.Empty() {
		return
	}
	bg := t.theme.GetColor(theme.RoleSelection)
	if !t.Focused() {
		bg = t.theme.GetColor(theme.RoleBackground)
	}
	FillRect(fb, t.bounds, bg)

	// Keep the cursor in view
	if t.cursor < t.scroll {
		t.scroll = t.cursor
	}
	if t.cursor >= t.scroll+t.bounds.W {
		t.scroll = t.cursor - t.bounds.W + 1
	}

	if len(t.runes) == 0 && t.placeholder != "" {
		DrawText(fb, t.bounds.X, t.bounds.Y, t.bounds.W, Truncate(t.placeholder, t.bounds.W), Style{
			Fg: t.theme.GetColor(theme.RoleMuted),
			Bg: bg,
		})
	} else {
		visible := t.runes
		if t.scroll < len(visible) {
			visible = visible[t.scroll:]
		} else {
			visible = nil
		}
		DrawText(fb, t.bounds.X, t.bounds.Y, t.bounds.W, string(visible), Style{
			Fg: t.theme.GetColor(theme.RoleText),
			Bg: bg,
		})
	}

	// Block cursor when focused
	if t.Focused() {
		cx := t.bounds.X + t.cursor - t.scroll
		if cx >= t.bounds.X && cx < t.bounds.X+t.bounds.W {
			cell := fb.Cell(cx, t.bounds.Y)
			cell.Bg = t.theme.GetColor(theme.RoleFocus)
			if cell.Rune == 0 {
				cell.Rune = ' '
			}
			fb.SetCell(cx, t.bounds.Y, cell)
		}
	}
	t.ClearDirty()
}
