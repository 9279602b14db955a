package layout

// DimKind selects how a dimension expression is evaluated
type DimKind uint8

const (
	DimAbs    DimKind = iota // Fixed cell count
	DimPct                   // Percentage of the available extent
	DimFill                  // Whatever remains
	DimCenter                // Position only: center the resolved size
)

// Dim is one dimension expression
type Dim struct {
	Kind  DimKind
	Value int // Cells for DimAbs, 0-100 for DimPct
}

// Abs returns a fixed-cell dimension
func Abs(n int) Dim { return Dim{Kind: DimAbs, Value: n} }

// Pct returns a percentage dimension (0-100)
func Pct(p int) Dim { return Dim{Kind: DimPct, Value: p} }

// Fill returns a fill-remaining dimension
func Fill() Dim { return Dim{Kind: DimFill} }

// Center returns a centering position dimension
func Center() Dim { return Dim{Kind: DimCenter} }

// Margins is outer spacing in cells
type Margins struct {
	Top, Right, Bottom, Left int
}

// Constraint is a per-widget expression set resolved against a parent rect
type Constraint struct {
	Left   Dim
	Top    Dim
	Width  Dim
	Height Dim
	Margin Margins
}

// resolveExtent evaluates a size dimension against an available extent
func resolveExtent(d Dim, available int) int {
	switch d.Kind {
	case DimAbs:
		return d.Value
	case DimPct:
		return available * d.Value / 100
	case DimFill:
		return available
	case DimCenter:
		// Center is meaningless as a size; treat as fill
		return available
	}
	return 0
}

// resolveOffset evaluates a position dimension given the resolved size
func resolveOffset(d Dim, available, size int) int {
	switch d.Kind {
	case DimAbs:
		return d.Value
	case DimPct:
		return available * d.Value / 100
	case DimCenter:
		return (available - size) / 2
	case DimFill:
		// Fill is meaningless as a position; pin to origin
		return 0
	}
	return 0
}

// Resolve evaluates the constraint against a parent rect. An unsatisfiable
// expression degrades to a zero-size rect and reports a warning; it never
// panics.
func (c Constraint) Resolve(parent Rect) Rect {
	inner := Rect{
		X: parent.X + c.Margin.Left,
		Y: parent.Y + c.Margin.Top,
		W: parent.W - c.Margin.Left - c.Margin.Right,
		H: parent.H - c.Margin.Top - c.Margin.Bottom,
	}
	if inner.W < 0 || inner.H < 0 {
		warnf("margins %+v exceed parent %+v, degrading to zero size", c.Margin, parent)
		return Rect{X: parent.X, Y: parent.Y}
	}

	w := resolveExtent(c.Width, inner.W)
	h := resolveExtent(c.Height, inner.H)
	x := inner.X + resolveOffset(c.Left, inner.W, w)
	y := inner.Y + resolveOffset(c.Top, inner.H, h)

	// Fill sizes account for the resolved offset
	if c.Width.Kind == DimFill {
		w = inner.X + inner.W - x
	}
	if c.Height.Kind == DimFill {
		h = inner.Y + inner.H - y
	}

	out := Rect{X: x, Y: y, W: w, H: h}
	if out.W < 0 || out.H < 0 {
		warnf("constraint %+v unsatisfiable in parent %+v, degrading to zero size", c, parent)
		return Rect{X: x, Y: y}
	}

	// Clip to the parent so widgets never escape their region
	clipped := out.Intersect(inner)
	if clipped.Empty() && !out.Empty() {
		warnf("constraint %+v resolves outside parent %+v, degrading to zero size", c, parent)
		return Rect{X: x, Y: y}
	}
	return clipped
}
