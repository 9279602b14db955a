// Package render owns the double-buffered cell grid and the differential
// flush that turns back-buffer changes into one minimal escape-sequence
// patch per frame.
package render

import (
	"bytes"
	"fmt"

	"github.com/mattn/go-runewidth"

	"github.com/slatetui/slate/terminal"
)

// FrameBuffer holds two equal-sized cell grids: front mirrors what the
// terminal currently shows, back is the frame being built. EndFrame diffs
// them and writes the patch to the terminal in a single call.
type FrameBuffer struct {
	term     terminal.Terminal
	front    []terminal.Cell
	back     []terminal.Cell
	rowDirty []bool
	width    int
	height   int

	patch     bytes.Buffer
	forceFull bool

	// SGR coalescing state while building a patch
	lastFg    terminal.RGB
	lastBg    terminal.RGB
	lastAttr  terminal.Attr
	lastValid bool

	// Cursor tracking while building a patch
	cursorX     int
	cursorY     int
	cursorValid bool
}

// New creates a frame buffer sized to the terminal
func New(term terminal.Terminal) *FrameBuffer {
	fb := &FrameBuffer{term: term}
	w, h := term.Size()
	fb.alloc(w, h)
	fb.forceFull = true
	return fb
}

func (fb *FrameBuffer) alloc(w, h int) {
	size := w * h
	fb.front = make([]terminal.Cell, size)
	fb.back = make([]terminal.Cell, size)
	fb.rowDirty = make([]bool, h)
	fb.width = w
	fb.height = h
}

// Size returns current grid dimensions
func (fb *FrameBuffer) Size() (int, int) {
	return fb.width, fb.height
}

// Resize reallocates both grids and forces a full repaint on the next
// EndFrame. The terminal is cleared so the diff baseline is known.
func (fb *FrameBuffer) Resize(w, h int) {
	if w == fb.width && h == fb.height {
		return
	}
	fb.alloc(w, h)
	fb.forceFull = true
}

// BeginFrame clears the row dirty markers. Cell contents persist so
// widgets that did not change need not rewrite their area.
func (fb *FrameBuffer) BeginFrame() {
	for i := range fb.rowDirty {
		fb.rowDirty[i] = false
	}
}

// SetCell writes one cell into the back grid. Out-of-range writes are
// silently clipped.
func (fb *FrameBuffer) SetCell(x, y int, cell terminal.Cell) {
	if x < 0 || x >= fb.width || y < 0 || y >= fb.height {
		return
	}
	fb.back[y*fb.width+x] = cell
	fb.rowDirty[y] = true
}

// Cell returns the back-grid cell at x,y, zero Cell if out of range
func (fb *FrameBuffer) Cell(x, y int) terminal.Cell {
	if x < 0 || x >= fb.width || y < 0 || y >= fb.height {
		return terminal.Cell{}
	}
	return fb.back[y*fb.width+x]
}

// Fill fills a rectangular area of the back grid with a cell
func (fb *FrameBuffer) Fill(x, y, w, h int, cell terminal.Cell) {
	for yy := y; yy < y+h; yy++ {
		for xx := x; xx < x+w; xx++ {
			fb.SetCell(xx, yy, cell)
		}
	}
}

// Abort discards the frame being built: the back grid is restored to a
// copy of the front grid so a failed frame is never partially flushed.
func (fb *FrameBuffer) Abort() {
	copy(fb.back, fb.front)
	for i := range fb.rowDirty {
		fb.rowDirty[i] = false
	}
}

// EndFrame diffs back against front and emits one patch write. If no cell
// changed it writes zero bytes. On a successful flush the front grid
// becomes a copy of the back grid.
func (fb *FrameBuffer) EndFrame() error {
	fb.patch.Reset()
	fb.lastValid = false
	fb.cursorValid = false

	if fb.forceFull {
		fb.patch.Write(terminal.Clear)
		for i := range fb.front {
			// Sentinel that can never equal a real cell, forcing a
			// full emit below
			fb.front[i] = terminal.Cell{Rune: -1}
		}
		for i := range fb.rowDirty {
			fb.rowDirty[i] = true
		}
		fb.forceFull = false
	}

	mode := fb.term.ColorMode()

	for y := 0; y < fb.height; y++ {
		if !fb.rowDirty[y] {
			continue
		}
		rowStart := y * fb.width
		x := 0
		for x < fb.width {
			idx := rowStart + x
			if fb.back[idx].Equal(fb.front[idx]) {
				x++
				continue
			}

			// Position cursor once per dirty run
			if !fb.cursorValid || x != fb.cursorX || y != fb.cursorY {
				if fb.cursorValid && y == fb.cursorY && x > fb.cursorX {
					terminal.WriteCursorForward(&fb.patch, x-fb.cursorX)
				} else {
					terminal.WriteCursorPos(&fb.patch, x, y)
				}
				fb.cursorX = x
				fb.cursorY = y
				fb.cursorValid = true
			}

			// Emit the contiguous changed run
			for x < fb.width {
				cidx := rowStart + x
				c := fb.back[cidx]
				if c.Equal(fb.front[cidx]) {
					break
				}

				fb.writeStyle(c.Fg, c.Bg, c.Attrs, mode)

				r := c.Rune
				if r == 0 {
					r = ' '
				}
				if r < 0x80 {
					fb.patch.WriteByte(byte(r))
					fb.cursorX++
					x++
					continue
				}
				fb.patch.WriteRune(r)

				// A wide glyph moves the terminal cursor by its display
				// width and covers its continuation cell, so the diff
				// skips past it rather than emitting it.
				rw := runewidth.RuneWidth(r)
				if rw < 1 {
					rw = 1
				}
				fb.cursorX += rw
				x += rw
			}
		}
	}

	if fb.patch.Len() == 0 {
		// Idempotent no-op frame
		return nil
	}

	fb.patch.Write(terminal.SGRReset)

	if err := fb.term.Write(fb.patch.Bytes()); err != nil {
		return fmt.Errorf("render: flush frame: %w", err)
	}

	copy(fb.front, fb.back)
	return nil
}

// writeStyle emits SGR only when the style differs from the last emitted
// one. Attribute changes require a reset, which also drops colors, so both
// are re-emitted after.
func (fb *FrameBuffer) writeStyle(fg, bg terminal.RGB, attr terminal.Attr, mode terminal.ColorMode) {
	attrChanged := !fb.lastValid || attr != fb.lastAttr
	fgChanged := attrChanged || fg != fb.lastFg
	bgChanged := attrChanged || bg != fb.lastBg

	if attrChanged {
		terminal.WriteAttrs(&fb.patch, attr)
	}
	if fgChanged {
		terminal.WriteFg(&fb.patch, fg, mode)
	}
	if bgChanged {
		terminal.WriteBg(&fb.patch, bg, mode)
	}

	fb.lastFg = fg
	fb.lastBg = bg
	fb.lastAttr = attr
	fb.lastValid = true
}
