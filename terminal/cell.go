package terminal

// Attr represents text attributes (bitmask)
type Attr uint8

const (
	AttrNone      Attr = 0
	AttrBold      Attr = 1 << 0
	AttrDim       Attr = 1 << 1
	AttrItalic    Attr = 1 << 2
	AttrUnderline Attr = 1 << 3
	AttrBlink     Attr = 1 << 4
	AttrReverse   Attr = 1 << 5
)

// Cell represents a single terminal cell
type Cell struct {
	Rune  rune
	Fg    RGB
	Bg    RGB
	Attrs Attr
}

// Equal reports whether two cells would render identically.
// An unattributed zero rune renders as a plain space, so only background
// matters for it. With attributes set (underline, reverse) the foreground
// of a space is visible and compares too.
func (c Cell) Equal(other Cell) bool {
	if c.Rune != other.Rune || c.Attrs != other.Attrs {
		return false
	}
	if (c.Rune == 0 || c.Rune == ' ') && c.Attrs == AttrNone {
		return c.Bg == other.Bg
	}
	return c.Fg == other.Fg && c.Bg == other.Bg
}
