package layout

import "log"

// warnf reports layout degradations. Swappable so the shell can route
// warnings into its status line instead of stderr.
var warnf = func(format string, args ...any) {
	log.Printf("layout: "+format, args...)
}

// SetWarnFunc replaces the layout warning sink
func SetWarnFunc(fn func(format string, args ...any)) {
	if fn == nil {
		fn = func(string, ...any) {}
	}
	warnf = fn
}

// RegionDef declares one named horizontal band of the terminal. Bands are
// resolved in declaration order; Fill bands share whatever height the
// fixed bands leave over.
type RegionDef struct {
	Name   string
	Height Dim
}

// Resolver turns terminal dimensions into named region rects
type Resolver struct {
	defs []RegionDef
}

// NewResolver creates a resolver with the given band declarations
func NewResolver(defs ...RegionDef) *Resolver {
	return &Resolver{defs: defs}
}

// Regions returns the declared region names in order
func (r *Resolver) Regions() []string {
	names := make([]string, len(r.defs))
	for i, d := range r.defs {
		names[i] = d.Name
	}
	return names
}

// Resolve computes each region's rect for the given terminal size.
// Fixed bands (absolute, percentage) are sized first; fill bands split the
// remaining height evenly, the last one absorbing the rounding remainder.
// If fixed bands exceed the terminal height, later bands degrade to zero
// height with a warning.
func (r *Resolver) Resolve(termW, termH int) map[string]Rect {
	out := make(map[string]Rect, len(r.defs))

	fixed := 0
	fills := 0
	for _, d := range r.defs {
		switch d.Height.Kind {
		case DimFill:
			fills++
		default:
			fixed += resolveExtent(d.Height, termH)
		}
	}

	remaining := termH - fixed
	if remaining < 0 {
		warnf("fixed regions need %d rows, terminal has %d", fixed, termH)
		remaining = 0
	}

	fillEach := 0
	if fills > 0 {
		fillEach = remaining / fills
	}

	y := 0
	fillSeen := 0
	for _, d := range r.defs {
		var h int
		switch d.Height.Kind {
		case DimFill:
			fillSeen++
			if fillSeen == fills {
				h = remaining - fillEach*(fills-1) // Last fill takes the remainder
			} else {
				h = fillEach
			}
		default:
			h = resolveExtent(d.Height, termH)
		}

		// Clamp to what is actually left on screen
		if y+h > termH {
			h = termH - y
			if h < 0 {
				h = 0
			}
			if h == 0 {
				warnf("region %q degraded to zero height", d.Name)
			}
		}

		out[d.Name] = Rect{X: 0, Y: y, W: termW, H: h}
		y += h
	}

	return out
}

// VStack places heights top-down inside parent with a gap between entries,
// returning one rect per entry. Entries that no longer fit get zero-size
// rects at the overflow position.
func VStack(parent Rect, gap int, heights ...Dim) []Rect {
	out := make([]Rect, len(heights))

	fixed := 0
	fills := 0
	gaps := gap * (len(heights) - 1)
	if gaps < 0 {
		gaps = 0
	}
	for _, h := range heights {
		if h.Kind == DimFill {
			fills++
		} else {
			fixed += resolveExtent(h, parent.H)
		}
	}
	remaining := parent.H - fixed - gaps
	if remaining < 0 {
		remaining = 0
	}
	fillEach := 0
	if fills > 0 {
		fillEach = remaining / fills
	}

	y := parent.Y
	fillSeen := 0
	for i, hd := range heights {
		var h int
		if hd.Kind == DimFill {
			fillSeen++
			if fillSeen == fills {
				h = remaining - fillEach*(fills-1)
			} else {
				h = fillEach
			}
		} else {
			h = resolveExtent(hd, parent.H)
		}

		bottom := parent.Y + parent.H
		if y+h > bottom {
			h = bottom - y
			if h < 0 {
				h = 0
			}
		}

		out[i] = Rect{X: parent.X, Y: y, W: parent.W, H: h}
		y += h + gap
	}
	return out
}

// HSplit splits parent into a fixed-width left column and the rest
func HSplit(parent Rect, leftW int) (left, right Rect) {
	if leftW > parent.W {
		leftW = parent.W
	}
	if leftW < 0 {
		leftW = 0
	}
	left = Rect{X: parent.X, Y: parent.Y, W: leftW, H: parent.H}
	right = Rect{X: parent.X + leftW, Y: parent.Y, W: parent.W - leftW, H: parent.H}
	return
}
