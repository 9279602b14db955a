// Package theme derives the full semantic color palette from a single seed
// color and answers role lookups at render time.
package theme

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/slatetui/slate/terminal"
)

// Role names a semantic color slot. The set is closed; custom lookups fall
// back to RoleText.
type Role uint8

const (
	RolePrimary Role = iota
	RoleText
	RoleMuted
	RoleSuccess
	RoleWarning
	RoleError
	RoleBorder
	RoleFocus
	RoleSelection
	RoleBackground
	RoleStatusText
	roleCount
)

var roleNames = [roleCount]string{
	"primary", "text", "muted", "success", "warning", "error",
	"border", "focus", "selection", "background", "statusText",
}

// String returns the role's config-file name
func (r Role) String() string {
	if r < roleCount {
		return roleNames[r]
	}
	return "unknown"
}

// Palette is a complete role→color map derived from one seed
type Palette struct {
	Seed   terminal.RGB
	colors [roleCount]terminal.RGB
}

// Band hues for rotated roles, degrees
const (
	successHue = 130.0
	warningHue = 45.0
	errorHue   = 5.0
)

// Derive computes every role from the seed color. The transforms are
// fixed so the same seed always yields the same palette:
//
//	primary    seed as-is
//	success    hue rotated to the green band, lightness pinned to 0.55
//	warning    hue rotated to the amber band, lightness pinned to 0.55
//	error      hue rotated to the red band, lightness pinned to 0.55
//	muted      seed hue at 30% saturation, lightness 0.45
//	text       seed hue at 8% saturation, lightness 0.85
//	statusText seed hue at 8% saturation, lightness 0.60
//	border     seed darkened by 0.25 lightness
//	focus      seed lightened by 0.15 lightness
//	selection  seed hue at full seed saturation, lightness 0.30
//	background seed hue at 25% saturation, lightness 0.08
func Derive(seed terminal.RGB) Palette {
	h, s, l := toColorful(seed).Hsl()

	// Rotated roles keep the seed's saturation floor so a gray seed still
	// produces visibly distinct status colors
	bandSat := math.Max(s, 0.55)

	p := Palette{Seed: seed}
	p.colors[RolePrimary] = seed
	p.colors[RoleSuccess] = fromHsl(successHue, bandSat, 0.55)
	p.colors[RoleWarning] = fromHsl(warningHue, bandSat, 0.55)
	p.colors[RoleError] = fromHsl(errorHue, bandSat, 0.55)
	p.colors[RoleMuted] = fromHsl(h, s*0.3, 0.45)
	p.colors[RoleText] = fromHsl(h, 0.08, 0.85)
	p.colors[RoleStatusText] = fromHsl(h, 0.08, 0.60)
	p.colors[RoleBorder] = fromHsl(h, s, clamp01(l-0.25))
	p.colors[RoleFocus] = fromHsl(h, s, clamp01(l+0.15))
	p.colors[RoleSelection] = fromHsl(h, s, 0.30)
	p.colors[RoleBackground] = fromHsl(h, s*0.25, 0.08)
	return p
}

// Color returns the color for a role. Unknown roles fall back to text;
// lookup never fails.
func (p Palette) Color(role Role) terminal.RGB {
	if role < roleCount {
		return p.colors[role]
	}
	return p.colors[RoleText]
}

// ParseHex parses a #RRGGBB seed color
func ParseHex(s string) (terminal.RGB, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return terminal.RGB{}, fmt.Errorf("theme: parse seed %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return terminal.RGB{R: r, G: g, B: b}, nil
}

// Hex formats a color as #RRGGBB
func Hex(c terminal.RGB) string {
	return toColorful(c).Hex()
}

func toColorful(c terminal.RGB) colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}

func fromHsl(h, s, l float64) terminal.RGB {
	r, g, b := colorful.Hsl(h, s, l).Clamped().RGB255()
	return terminal.RGB{R: r, G: g, B: b}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
