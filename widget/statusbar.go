package widget

import (
	"github.com/slatetui/slate/render"
	"github.com/slatetui/slate/theme"
)

// BarSection is one segment of the status bar
type BarSection struct {
	Label    string
	Value    string
	Role     theme.Role // Color role for the value, zero renders as text
	Priority int        // Higher survives truncation longer
}

// StatusBar renders a single-row bar of separated sections. When the bar
// overflows, the lowest-priority sections drop first.
type StatusBar struct {
	Base
	theme     *theme.Manager
	sections  []BarSection
	separator string

	// Transient message shown instead of sections until cleared, used by
	// the shell to surface recovered errors
	message     string
	messageRole theme.Role
}

// NewStatusBar creates an empty status bar
func NewStatusBar(id string, th *theme.Manager) *StatusBar {
	return &StatusBar{Base: NewBase(id), theme: th, separator: " │ "}
}

// SetSections replaces the bar sections
func (s *StatusBar) SetSections(sections []BarSection) {
	s.sections = sections
	s.Invalidate()
}

// SetMessage shows a transient message in the given role
func (s *StatusBar) SetMessage(msg string, role theme.Role) {
	s.message = msg
	s.messageRole = role
	s.Invalidate()
}

// ClearMessage restores normal section display
func (s *StatusBar) ClearMessage() {
	if s.message == "" {
		return
	}
	s.message = ""
	s.Invalidate()
}

// Message returns the transient message, empty when none
func (s *StatusBar) Message() string {
	return s.message
}

// visibleSections drops the lowest-priority sections until the rest fit
func (s *StatusBar) visibleSections(availW int) []BarSection {
	sections := make([]BarSection, len(s.sections))
	copy(sections, s.sections)

	width := func(list []BarSection) int {
		total := 0
		for i, sec := range list {
			total += textWidth(sec.Label) + 1 + textWidth(sec.Value)
			if i > 0 {
				total += textWidth(s.separator)
			}
		}
		return total
	}

	for len(sections) > 0 && width(sections) > availW {
		drop := 0
		for i, sec := range sections {
			if sec.Priority < sections[drop].Priority {
				drop = i
			}
		}
		sections = append(sections[:drop], sections[drop+1:]...)
	}
	return sections
}

func (s *StatusBar) Render(fb *render.FrameBuffer) {
	if s.bounds.Empty() {
		return
	}
	bg := s.theme.GetColor(theme.RoleBackground)
	FillRect(fb, s.bounds, bg)
	y := s.bounds.Y

	if s.message != "" {
		DrawText(fb, s.bounds.X+1, y, s.bounds.W-2, Truncate(s.message, s.bounds.W-2), Style{
			Fg: s.theme.GetColor(s.messageRole),
			Bg: bg,
		})
		s.ClearDirty()
		return
	}

	sepStyle := Style{Fg: s.theme.GetColor(theme.RoleMuted), Bg: bg}
	labelStyle := Style{Fg: s.theme.GetColor(theme.RoleStatusText), Bg: bg}

	x := s.bounds.X + 1
	limit := s.bounds.X + s.bounds.W - 1
	for i, sec := range s.visibleSections(s.bounds.W - 2) {
		if i > 0 {
			x += DrawText(fb, x, y, limit-x, s.separator, sepStyle)
		}
		x += DrawText(fb, x, y, limit-x, sec.Label+" ", labelStyle)
		x += DrawText(fb, x, y, limit-x, sec.Value, Style{
			Fg: s.theme.GetColor(sec.Role),
			Bg: bg,
		})
	}
	s.ClearDirty()
}
