package terminal

import (
	"os"
	"strings"
)

// ColorMode indicates terminal color capability
type ColorMode uint8

const (
	ColorMode256       ColorMode = iota // xterm-256 palette
	ColorModeTrueColor                  // 24-bit RGB
)

// RGB represents a 24-bit color
type RGB struct {
	R, G, B uint8
}

// RGBBlack is the zero value black color
var RGBBlack = RGB{0, 0, 0}

// Equal returns true if colors match
func (c RGB) Equal(other RGB) bool {
	return c.R == other.R && c.G == other.G && c.B == other.B
}

// DetectColorMode inspects the environment for truecolor support.
// COLORTERM is authoritative; a few TERM values are known truecolor.
func DetectColorMode() ColorMode {
	colorterm := strings.ToLower(os.Getenv("COLORTERM"))
	if colorterm == "truecolor" || colorterm == "24bit" {
		return ColorModeTrueColor
	}

	term := os.Getenv("TERM")
	switch {
	case strings.Contains(term, "direct"),
		strings.HasPrefix(term, "iterm"),
		strings.HasPrefix(term, "wezterm"),
		strings.HasPrefix(term, "alacritty"),
		strings.HasPrefix(term, "kitty"):
		return ColorModeTrueColor
	}

	return ColorMode256
}

// Color cube values for the 6x6x6 palette (indices 16-231)
var cubeValues = [6]uint8{0, 95, 135, 175, 215, 255}

// cubeIndex maps a 0-255 channel value to the nearest cube level 0-5
func cubeIndex(v uint8) int {
	best := 0
	bestDist := absInt(int(v) - int(cubeValues[0]))
	for i := 1; i < 6; i++ {
		d := absInt(int(v) - int(cubeValues[i]))
		if d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}

// To256 maps an RGB color to the nearest xterm-256 palette index.
// Grayscale ramp (232-255) is preferred for near-gray colors since it has
// finer steps than the color cube diagonal.
func (c RGB) To256() uint8 {
	r, g, b := int(c.R), int(c.G), int(c.B)

	ri, gi, bi := cubeIndex(c.R), cubeIndex(c.G), cubeIndex(c.B)
	cr, cg, cb := int(cubeValues[ri]), int(cubeValues[gi]), int(cubeValues[bi])
	cubeDist := sqDist(r, cr) + sqDist(g, cg) + sqDist(b, cb)

	// Grayscale ramp: 232 + n, value 8 + 10n for n in [0,23]
	gray := (r + g + b) / 3
	gn := (gray - 8 + 5) / 10
	if gn < 0 {
		gn = 0
	}
	if gn > 23 {
		gn = 23
	}
	gv := 8 + 10*gn
	grayDist := sqDist(r, gv) + sqDist(g, gv) + sqDist(b, gv)

	if grayDist < cubeDist {
		return uint8(232 + gn)
	}
	return uint8(16 + 36*ri + 6*gi + bi)
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func sqDist(a, b int) int {
	d := a - b
	return d * d
}
