package terminal

import "bytes"

// Pre-allocated ANSI sequence fragments (avoid allocations during render)
var (
	CSI      = []byte("\x1b[")
	CSIEnd   = []byte("m")
	SGRReset = []byte("\x1b[0m")
	Clear    = []byte("\x1b[2J\x1b[H")
	RIS      = []byte("\x1bc") // Reset to Initial State (emergency)

	CursorHide = []byte("\x1b[?25l")
	CursorShow = []byte("\x1b[?25h")

	AltScreenEnter = []byte("\x1b[?1049h")
	AltScreenExit  = []byte("\x1b[?1049l")

	// DECAWM off prevents scroll when writing the bottom-right corner
	AutoWrapOn  = []byte("\x1b[?7h")
	AutoWrapOff = []byte("\x1b[?7l")

	// Color prefixes
	Fg256 = []byte("\x1b[38;5;")
	Bg256 = []byte("\x1b[48;5;")
	FgRGB = []byte("\x1b[38;2;")
	BgRGB = []byte("\x1b[48;2;")

	Bell = []byte{0x07}
)

// attrSeqs maps single attribute bits to their SGR sequences
var attrSeqs = []struct {
	attr Attr
	seq  []byte
}{
	{AttrBold, []byte("\x1b[1m")},
	{AttrDim, []byte("\x1b[2m")},
	{AttrItalic, []byte("\x1b[3m")},
	{AttrUnderline, []byte("\x1b[4m")},
	{AttrBlink, []byte("\x1b[5m")},
	{AttrReverse, []byte("\x1b[7m")},
}

// WriteInt writes a non-negative integer without allocation.
// Terminal coordinates and color channels stay under 1000.
func WriteInt(buf *bytes.Buffer, n int) {
	if n < 0 {
		n = 0
	}
	if n < 10 {
		buf.WriteByte(byte(n) + '0')
		return
	}
	if n < 100 {
		buf.WriteByte(byte(n/10) + '0')
		buf.WriteByte(byte(n%10) + '0')
		return
	}
	if n < 1000 {
		buf.WriteByte(byte(n/100) + '0')
		buf.WriteByte(byte(n/10%10) + '0')
		buf.WriteByte(byte(n%10) + '0')
		return
	}
	var tmp [8]byte
	i := 7
	for n > 0 {
		tmp[i] = byte(n%10) + '0'
		n /= 10
		i--
	}
	buf.Write(tmp[i+1:])
}

// WriteCursorPos writes CUP for 0-indexed coordinates
func WriteCursorPos(buf *bytes.Buffer, x, y int) {
	buf.Write(CSI)
	WriteInt(buf, y+1)
	buf.WriteByte(';')
	WriteInt(buf, x+1)
	buf.WriteByte('H')
}

// WriteCursorForward writes CUF n
func WriteCursorForward(buf *bytes.Buffer, n int) {
	buf.Write(CSI)
	WriteInt(buf, n)
	buf.WriteByte('C')
}

// WriteFg writes a foreground color sequence for the given mode
func WriteFg(buf *bytes.Buffer, c RGB, mode ColorMode) {
	if mode == ColorModeTrueColor {
		buf.Write(FgRGB)
		WriteInt(buf, int(c.R))
		buf.WriteByte(';')
		WriteInt(buf, int(c.G))
		buf.WriteByte(';')
		WriteInt(buf, int(c.B))
	} else {
		buf.Write(Fg256)
		WriteInt(buf, int(c.To256()))
	}
	buf.Write(CSIEnd)
}

// WriteBg writes a background color sequence for the given mode
func WriteBg(buf *bytes.Buffer, c RGB, mode ColorMode) {
	if mode == ColorModeTrueColor {
		buf.Write(BgRGB)
		WriteInt(buf, int(c.R))
		buf.WriteByte(';')
		WriteInt(buf, int(c.G))
		buf.WriteByte(';')
		WriteInt(buf, int(c.B))
	} else {
		buf.Write(Bg256)
		WriteInt(buf, int(c.To256()))
	}
	buf.Write(CSIEnd)
}

// WriteAttrs resets SGR and re-emits the active attribute set.
// Callers re-emit colors afterwards since the reset clears them too.
func WriteAttrs(buf *bytes.Buffer, attrs Attr) {
	buf.Write(SGRReset)
	for _, as := range attrSeqs {
		if attrs&as.attr != 0 {
			buf.Write(as.seq)
		}
	}
}
