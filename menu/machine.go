package menu

import (
	"github.com/slatetui/slate/terminal"
	"github.com/slatetui/slate/widget"
)

// State is the activation state of the menu subsystem
type State uint8

const (
	// Inactive: the bar is drawn but owns no input
	Inactive State = iota
	// MenuBarActive: one top-level menu highlighted, no dropdown open
	MenuBarActive
	// DropdownOpen: a menu's items are visible, one highlighted
	DropdownOpen
)

// Machine is the dropdown activation state machine. It is constructed per
// shell and handed to screens explicitly; there is no package-level
// shared instance.
type Machine struct {
	menus []Menu
	state State

	menuIdx int // Highlighted top-level menu
	itemIdx int // Highlighted item while DropdownOpen

	handlers *Handlers
	focus    *widget.FocusStack

	// onChange fires on any state transition so the bar widget repaints
	onChange func()

	// onError receives dispatch failures for status display
	onError func(error)
}

// NewMachine creates an inactive machine over the given definitions
func NewMachine(menus []Menu, handlers *Handlers, focus *widget.FocusStack) *Machine {
	return &Machine{menus: menus, handlers: handlers, focus: focus}
}

// SetOnChange registers the repaint callback
func (m *Machine) SetOnChange(fn func()) {
	m.onChange = fn
}

// SetOnError registers the dispatch-error callback
func (m *Machine) SetOnError(fn func(error)) {
	m.onError = fn
}

// State returns the current activation state
func (m *Machine) State() State {
	return m.state
}

// Menus returns the definitions
func (m *Machine) Menus() []Menu {
	return m.menus
}

// Highlight returns the highlighted menu and item indices. itemIdx is -1
// unless a dropdown is open.
func (m *Machine) Highlight() (menuIdx, itemIdx int) {
	if m.state == DropdownOpen {
		return m.menuIdx, m.itemIdx
	}
	return m.menuIdx, -1
}

// Active reports whether the machine currently owns input
func (m *Machine) Active() bool {
	return m.state != Inactive
}

func (m *Machine) changed() {
	if m.onChange != nil {
		m.onChange()
	}
}

// activate enters MenuBarActive, suspending content focus
func (m *Machine) activate(menuIdx int) {
	if len(m.menus) == 0 {
		return
	}
	m.state = MenuBarActive
	m.menuIdx = menuIdx
	if m.focus != nil {
		m.focus.Suspend()
	}
	m.changed()
}

// deactivate returns to Inactive, restoring content focus
func (m *Machine) deactivate() {
	m.state = Inactive
	if m.focus != nil {
		m.focus.Resume()
	}
	m.changed()
}

// openDropdown enters DropdownOpen for the highlighted menu. A menu with
// no selectable items bounces straight back to Inactive.
func (m *Machine) openDropdown() {
	menu := m.menus[m.menuIdx]
	first := menu.firstSelectable()
	if first < 0 {
		m.deactivate()
		return
	}
	m.state = DropdownOpen
	m.itemIdx = first
	m.changed()
}

// commit dispatches the highlighted item and deactivates
func (m *Machine) commit() {
	item := m.menus[m.menuIdx].Items[m.itemIdx]
	m.deactivate()
	if item.Action == ActionNone {
		return
	}
	if err := m.handlers.Dispatch(item.Action); err != nil && m.onError != nil {
		m.onError(err)
	}
}

// moveMenu shifts the highlighted top-level menu, reopening the dropdown
// if one was open
func (m *Machine) moveMenu(dir int) {
	wasOpen := m.state == DropdownOpen
	m.menuIdx = (m.menuIdx + dir + len(m.menus)) % len(m.menus)
	if wasOpen {
		m.state = MenuBarActive
		m.openDropdown()
		return
	}
	m.changed()
}

// HandleGlobalKey checks keys that activate the menu from Inactive.
// Returns true when consumed.
func (m *Machine) HandleGlobalKey(ev terminal.KeyEvent) bool {
	if m.state != Inactive || len(m.menus) == 0 {
		return false
	}

	// Activation key highlights the first menu
	if ev.Key == terminal.KeyF10 {
		m.activate(0)
		return true
	}

	// Alt+letter highlights the matching menu directly
	if ev.Key == terminal.KeyRune && ev.Modifiers&terminal.ModAlt != 0 {
		if idx := menuByHotkey(m.menus, ev.Rune); idx >= 0 {
			m.activate(idx)
			return true
		}
	}
	return false
}

// HandleKey processes input while the machine is active. Returns true
// when consumed.
func (m *Machine) HandleKey(ev terminal.KeyEvent) bool {
	switch m.state {
	case Inactive:
		return false
	case MenuBarActive:
		return m.handleBarKey(ev)
	case DropdownOpen:
		return m.handleDropdownKey(ev)
	}
	return false
}

func (m *Machine) handleBarKey(ev terminal.KeyEvent) bool {
	switch ev.Key {
	case terminal.KeyEscape:
		m.deactivate()
	case terminal.KeyLeft:
		m.moveMenu(-1)
	case terminal.KeyRight:
		m.moveMenu(1)
	case terminal.KeyEnter, terminal.KeyDown:
		m.openDropdown()
	case terminal.KeyRune:
		// Hotkey letter jumps straight to the matching menu's dropdown
		if idx := menuByHotkey(m.menus, ev.Rune); idx >= 0 {
			m.menuIdx = idx
			m.openDropdown()
			return true
		}
		return false
	default:
		return false
	}
	return true
}

func (m *Machine) handleDropdownKey(ev terminal.KeyEvent) bool {
	menu := m.menus[m.menuIdx]
	switch ev.Key {
	case terminal.KeyEscape:
		m.state = MenuBarActive
		m.changed()
	case terminal.KeyLeft:
		m.moveMenu(-1)
	case terminal.KeyRight:
		m.moveMenu(1)
	case terminal.KeyUp:
		m.itemIdx = menu.nextSelectable(m.itemIdx, -1)
		m.changed()
	case terminal.KeyDown:
		m.itemIdx = menu.nextSelectable(m.itemIdx, 1)
		m.changed()
	case terminal.KeyEnter:
		m.commit()
	case terminal.KeyRune:
		// Item hotkey selects directly
		if idx := menu.itemByHotkey(ev.Rune); idx >= 0 {
			m.itemIdx = idx
			m.commit()
			return true
		}
		return false
	default:
		return false
	}
	return true
}
