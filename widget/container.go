package widget

import (
	"github.com/slatetui/slate/layout"
	"github.com/slatetui/slate/render"
	"github.com/slatetui/slate/theme"
)

// Container arranges children and has no visual content of its own.
// Render delegates to each visible child in z-order (slice order).
type Container struct {
	Base

	// Optional per-child constraints applied on SetBounds; nil entries
	// keep the child's explicit bounds
	constraints []*layout.Constraint

	// gap is the inter-widget margin for stacked placement; used only
	// when stacked is set
	stacked bool
	gap     int
}

// NewContainer creates an empty container
func NewContainer(id string) *Container {
	return &Container{Base: NewBase(id)}
}

// NewVStack creates a container that places children top-down with a
// fixed inter-widget gap, each child keeping its constraint height
func NewVStack(id string, gap int) *Container {
	return &Container{Base: NewBase(id), stacked: true, gap: gap}
}

// AddConstrained appends a child with a layout constraint resolved against
// this container's bounds on every SetBounds
func (c *Container) AddConstrained(w Widget, con layout.Constraint) {
	c.AddChild(w)
	for len(c.constraints) < len(c.children)-1 {
		c.constraints = append(c.constraints, nil)
	}
	c.constraints = append(c.constraints, &con)
}

func (c *Container) SetBounds(r layout.Rect) {
	c.Base.SetBounds(r)
	c.relayout()
}

// relayout propagates new rects to children
func (c *Container) relayout() {
	if c.stacked {
		heights := make([]layout.Dim, len(c.children))
		for i, ch := range c.children {
			var con *layout.Constraint
			if i < len(c.constraints) {
				con = c.constraints[i]
			}
			if con != nil {
				heights[i] = con.Height
			} else if h := ch.Bounds().H; h > 0 {
				heights[i] = layout.Abs(h)
			} else {
				heights[i] = layout.Fill()
			}
		}
		rects := layout.VStack(c.bounds, c.gap, heights...)
		for i, ch := range c.children {
			ch.SetBounds(rects[i])
		}
		return
	}

	for i, ch := range c.children {
		var con *layout.Constraint
		if i < len(c.constraints) {
			con = c.constraints[i]
		}
		if con != nil {
			ch.SetBounds(con.Resolve(c.bounds))
		}
	}
}

func (c *Container) Render(fb *render.FrameBuffer) {
	for _, ch := range c.children {
		if !ch.Visible() {
			continue
		}
		ch.Render(fb)
		ch.ClearDirty()
	}
	c.ClearDirty()
}

// Panel is a container with a background fill and an optional border.
// Its content rect is the bounds minus border minus padding.
type Panel struct {
	Container
	theme   *theme.Manager
	title   string
	border  bool
	line    LineType
	padding int
}

// NewPanel creates a bordered panel pulling colors from th at render time
func NewPanel(id string, th *theme.Manager) *Panel {
	return &Panel{
		Container: Container{Base: NewBase(id)},
		theme:     th,
		border:    true,
		line:      LineSingle,
	}
}

// SetTitle sets the text shown in the top border
func (p *Panel) SetTitle(title string) {
	if p.title == title {
		return
	}
	p.title = title
	p.Invalidate()
}

// SetBorder toggles the border
func (p *Panel) SetBorder(show bool, line LineType) {
	p.border = show
	p.line = line
	p.Invalidate()
}

// SetPadding sets inner padding in cells
func (p *Panel) SetPadding(n int) {
	p.padding = n
	p.Invalidate()
}

// Content returns the rect available to children
func (p *Panel) Content() layout.Rect {
	r := p.bounds
	if p.border {
		r = r.Inset(1)
	}
	return r.Inset(p.padding)
}

func (p *Panel) SetBounds(r layout.Rect) {
	p.Base.SetBounds(r)
	// Children lay out against the content rect, not the raw bounds
	saved := p.bounds
	p.bounds = p.Content()
	p.relayout()
	p.bounds = saved
}

func (p *Panel) Render(fb *render.FrameBuffer) {
	bg := p.theme.GetColor(theme.RoleBackground)
	FillRect(fb, p.bounds, bg)

	if p.border {
		borderColor := p.theme.GetColor(theme.RoleBorder)
		if p.Focused() {
			borderColor = p.theme.GetColor(theme.RoleFocus)
		}
		DrawBox(fb, p.bounds, p.line, borderColor, bg)
		if p.title != "" && p.bounds.W > 4 {
			t := " " + Truncate(p.title, p.bounds.W-4) + " "
			DrawText(fb, p.bounds.X+1, p.bounds.Y, p.bounds.W-2, t, Style{
				Fg: p.theme.GetColor(theme.RolePrimary),
				Bg: bg,
			})
		}
	}

	p.Container.Render(fb)
	p.ClearDirty()
}
