package menu

import (
	"github.com/mattn/go-runewidth"

	"github.com/slatetui/slate/layout"
	"github.com/slatetui/slate/render"
	"github.com/slatetui/slate/terminal"
	"github.com/slatetui/slate/theme"
	"github.com/slatetui/slate/widget"
)

// Bar renders the menu bar row and, while a dropdown is open, the overlay
// below the highlighted title. The machine holds all interaction state;
// the bar only draws it.
type Bar struct {
	widget.Base
	theme   *theme.Manager
	machine *Machine
}

// NewBar creates the menu bar widget for a machine
func NewBar(id string, th *theme.Manager, machine *Machine) *Bar {
	b := &Bar{Base: widget.NewBase(id), theme: th, machine: machine}
	machine.SetOnChange(b.Invalidate)
	return b
}

// titleX returns the x offset of the i-th menu title within the bar
func (b *Bar) titleX(i int) int {
	x := b.Bounds().X + 1
	for j := 0; j < i; j++ {
		x += textWidth(b.machine.Menus()[j].Title) + 3
	}
	return x
}

// DropdownRect returns the overlay rect for the open dropdown, zero Rect
// when no dropdown is open. The shell repaints the area underneath when
// it closes.
func (b *Bar) DropdownRect() layout.Rect {
	if b.machine.State() != DropdownOpen {
		return layout.Rect{}
	}
	menuIdx, _ := b.machine.Highlight()
	menu := b.machine.Menus()[menuIdx]

	w := 0
	for _, it := range menu.Items {
		if lw := textWidth(it.Label) + 4; lw > w {
			w = lw
		}
	}
	return layout.Rect{
		X: b.titleX(menuIdx) - 1,
		Y: b.Bounds().Y + 1,
		W: w,
		H: len(menu.Items) + 2,
	}
}

func (b *Bar) Render(fb *render.FrameBuffer) {
	bounds := b.Bounds()
	if bounds.Empty() {
		return
	}

	bg := b.theme.GetColor(theme.RoleSelection)
	fg := b.theme.GetColor(theme.RoleText)
	widget.FillRect(fb, layout.Rect{X: bounds.X, Y: bounds.Y, W: bounds.W, H: 1}, bg)

	menuIdx, _ := b.machine.Highlight()
	for i, m := range b.machine.Menus() {
		st := widget.Style{Fg: fg, Bg: bg}
		if b.machine.Active() && i == menuIdx {
			st = widget.Style{Fg: b.theme.GetColor(theme.RoleBackground), Bg: b.theme.GetColor(theme.RoleFocus)}
		}
		x := b.titleX(i)
		widget.DrawText(fb, x-1, bounds.Y, bounds.X+bounds.W-x+1, " "+m.Title+" ", st)
	}

	if b.machine.State() == DropdownOpen {
		b.renderDropdown(fb)
	}
	b.ClearDirty()
}

func (b *Bar) renderDropdown(fb *render.FrameBuffer) {
	rect := b.DropdownRect()
	menuIdx, itemIdx := b.machine.Highlight()
	menu := b.machine.Menus()[menuIdx]

	bg := b.theme.GetColor(theme.RoleBackground)
	widget.FillRect(fb, rect, bg)
	widget.DrawBox(fb, rect, widget.LineSingle, b.theme.GetColor(theme.RoleBorder), bg)

	for i, it := range menu.Items {
		y := rect.Y + 1 + i
		if it.IsSeparator {
			for x := rect.X + 1; x < rect.X+rect.W-1; x++ {
				fb.SetCell(x, y, terminal.Cell{Rune: '─', Fg: b.theme.GetColor(theme.RoleBorder), Bg: bg})
			}
			continue
		}

		rowBg := bg
		fg := b.theme.GetColor(theme.RoleText)
		if i == itemIdx {
			rowBg = b.theme.GetColor(theme.RoleSelection)
		}
		widget.FillRect(fb, layout.Rect{X: rect.X + 1, Y: y, W: rect.W - 2, H: 1}, rowBg)
		widget.DrawText(fb, rect.X+2, y, rect.W-3, it.Label, widget.Style{Fg: fg, Bg: rowBg})

		// Underline the hotkey letter when present in the label
		if it.Hotkey != 0 {
			b.markHotkey(fb, rect.X+2, y, it.Label, it.Hotkey, rowBg)
		}
	}
}

// markHotkey re-renders the first occurrence of the hotkey letter with an
// underline attribute
func (b *Bar) markHotkey(fb *render.FrameBuffer, x, y int, label string, hotkey rune, bg terminal.RGB) {
	cx := x
	for _, r := range label {
		if equalFold(r, hotkey) {
			fb.SetCell(cx, y, terminal.Cell{
				Rune:  r,
				Fg:    b.theme.GetColor(theme.RolePrimary),
				Bg:    bg,
				Attrs: terminal.AttrUnderline,
			})
			return
		}
		cx += runewidth.RuneWidth(r)
	}
}

func equalFold(a, b rune) bool {
	if a == b {
		return true
	}
	if a >= 'A' && a <= 'Z' {
		a += 'a' - 'A'
	}
	if b >= 'A' && b <= 'Z' {
		b += 'a' - 'A'
	}
	return a == b
}

func textWidth(s string) int {
	return runewidth.StringWidth(s)
}
