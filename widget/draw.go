package widget

import (
	"github.com/mattn/go-runewidth"

	"github.com/slatetui/slate/layout"
	"github.com/slatetui/slate/render"
	"github.com/slatetui/slate/terminal"
)

// Style bundles the colors and attributes for text rendering
type Style struct {
	Fg    terminal.RGB
	Bg    terminal.RGB
	Attrs terminal.Attr
}

// DrawText writes s starting at x,y, clipped to maxW display cells.
// Wide runes occupy two cells; the continuation cell is left untouched by
// rune content but carries the background. Returns cells consumed.
func DrawText(fb *render.FrameBuffer, x, y, maxW int, s string, st Style) int {
	cx := 0
	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			continue
		}
		if cx+rw > maxW {
			break
		}
		fb.SetCell(x+cx, y, terminal.Cell{Rune: r, Fg: st.Fg, Bg: st.Bg, Attrs: st.Attrs})
		for i := 1; i < rw; i++ {
			fb.SetCell(x+cx+i, y, terminal.Cell{Rune: 0, Fg: st.Fg, Bg: st.Bg})
		}
		cx += rw
	}
	return cx
}

// FillRect fills a rect with spaces in the given background
func FillRect(fb *render.FrameBuffer, r layout.Rect, bg terminal.RGB) {
	fb.Fill(r.X, r.Y, r.W, r.H, terminal.Cell{Rune: ' ', Bg: bg})
}

// Truncate shortens s to maxW display cells, appending … when cut
func Truncate(s string, maxW int) string {
	if maxW <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxW {
		return s
	}
	if maxW == 1 {
		return "…"
	}
	return runewidth.Truncate(s, maxW, "…")
}

// TruncateLeft shortens s keeping its tail, prefixing … when cut
func TruncateLeft(s string, maxW int) string {
	if maxW <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxW {
		return s
	}
	if maxW == 1 {
		return "…"
	}
	return "…" + runewidth.TruncateLeft(s, runewidth.StringWidth(s)-maxW+1, "")
}

// PadRight pads s with spaces to width display cells
func PadRight(s string, width int) string {
	return runewidth.FillRight(s, width)
}

// textWidth returns the display-cell width of s
func textWidth(s string) int {
	return runewidth.StringWidth(s)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// LineType specifies box drawing character style
type LineType uint8

const (
	LineSingle LineType = iota
	LineDouble
	LineRounded
	LineHeavy
)

var boxChars = [...][6]rune{
	LineSingle:  {'┌', '─', '┐', '│', '└', '┘'},
	LineDouble:  {'╔', '═', '╗', '║', '╚', '╝'},
	LineRounded: {'╭', '─', '╮', '│', '╰', '╯'},
	LineHeavy:   {'┏', '━', '┓', '┃', '┗', '┛'},
}

const (
	boxTL = 0
	boxH  = 1
	boxTR = 2
	boxV  = 3
	boxBL = 4
	boxBR = 5
)

// DrawBox draws a border just inside r
func DrawBox(fb *render.FrameBuffer, r layout.Rect, line LineType, fg, bg terminal.RGB) {
	if r.W < 2 || r.H < 2 {
		return
	}
	if int(line) >= len(boxChars) {
		line = LineSingle
	}
	chars := boxChars[line]

	set := func(x, y int, ch rune) {
		fb.SetCell(x, y, terminal.Cell{Rune: ch, Fg: fg, Bg: bg})
	}

	set(r.X, r.Y, chars[boxTL])
	set(r.X+r.W-1, r.Y, chars[boxTR])
	set(r.X, r.Y+r.H-1, chars[boxBL])
	set(r.X+r.W-1, r.Y+r.H-1, chars[boxBR])

	for x := r.X + 1; x < r.X+r.W-1; x++ {
		set(x, r.Y, chars[boxH])
		set(x, r.Y+r.H-1, chars[boxH])
	}
	for y := r.Y + 1; y < r.Y+r.H-1; y++ {
		set(r.X, y, chars[boxV])
		set(r.X+r.W-1, y, chars[boxV])
	}
}
