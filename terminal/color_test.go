package terminal

import (
	"bytes"
	"testing"
)

func TestTo256CubeCorners(t *testing.T) {
	tests := []struct {
		name string
		c    RGB
		want uint8
	}{
		{"Black", RGB{0, 0, 0}, 16},
		{"Red", RGB{255, 0, 0}, 196},
		{"Green", RGB{0, 255, 0}, 46},
		{"Blue", RGB{0, 0, 255}, 21},
		{"White", RGB{255, 255, 255}, 231},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.To256(); got != tt.want {
				t.Errorf("To256(%+v) = %d, want %d", tt.c, got, tt.want)
			}
		})
	}
}

func TestTo256PrefersGrayscaleRamp(t *testing.T) {
	// Mid grays are far from the cube diagonal; the ramp is closer
	got := RGB{120, 120, 120}.To256()
	if got < 232 {
		t.Errorf("To256(gray) = %d, want a grayscale ramp index (>=232)", got)
	}
}

func TestWriteCursorPosOneBased(t *testing.T) {
	var buf bytes.Buffer
	WriteCursorPos(&buf, 0, 0)
	if got := buf.String(); got != "\x1b[1;1H" {
		t.Errorf("WriteCursorPos(0,0) = %q, want ESC[1;1H", got)
	}

	buf.Reset()
	WriteCursorPos(&buf, 9, 4)
	if got := buf.String(); got != "\x1b[5;10H" {
		t.Errorf("WriteCursorPos(9,4) = %q, want ESC[5;10H", got)
	}
}

func TestWriteFgByMode(t *testing.T) {
	c := RGB{R: 255, G: 128, B: 0}

	var buf bytes.Buffer
	WriteFg(&buf, c, ColorModeTrueColor)
	if got := buf.String(); got != "\x1b[38;2;255;128;0m" {
		t.Errorf("truecolor fg = %q", got)
	}

	buf.Reset()
	WriteFg(&buf, c, ColorMode256)
	want := []byte("\x1b[38;5;")
	if !bytes.HasPrefix(buf.Bytes(), want) {
		t.Errorf("256-mode fg = %q, want %q prefix", buf.String(), want)
	}
}

func TestCellEqualBackgroundOnly(t *testing.T) {
	bg := RGB{10, 20, 30}

	// For space cells only the background matters
	a := Cell{Rune: ' ', Fg: RGB{1, 2, 3}, Bg: bg}
	b := Cell{Rune: ' ', Fg: RGB{9, 9, 9}, Bg: bg}
	if !a.Equal(b) {
		t.Error("space cells with equal backgrounds compare unequal")
	}

	c := Cell{Rune: ' ', Bg: RGB{99, 99, 99}}
	if a.Equal(c) {
		t.Error("space cells with different backgrounds compare equal")
	}

	// For glyph cells the foreground matters again
	d := Cell{Rune: 'x', Fg: RGB{1, 2, 3}, Bg: bg}
	e := Cell{Rune: 'x', Fg: RGB{9, 9, 9}, Bg: bg}
	if d.Equal(e) {
		t.Error("glyph cells with different foregrounds compare equal")
	}

	// An underlined space shows its foreground, so it compares too
	f := Cell{Rune: ' ', Fg: RGB{1, 2, 3}, Bg: bg, Attrs: AttrUnderline}
	g := Cell{Rune: ' ', Fg: RGB{9, 9, 9}, Bg: bg, Attrs: AttrUnderline}
	if f.Equal(g) {
		t.Error("underlined spaces with different foregrounds compare equal")
	}
	if !f.Equal(f) {
		t.Error("underlined space does not equal itself")
	}
}
