// Package menu implements the dropdown menu bar: definitions, the
// activation state machine, and the widget that renders both.
package menu

import "fmt"

// Action identifies a menu command. Applications declare their own closed
// set of constants; dispatch goes through a typed handler table instead of
// string matching.
type Action uint16

// ActionNone is the zero action, carried by separators
const ActionNone Action = 0

// HandlerFunc executes one menu action
type HandlerFunc func() error

// Handlers is the typed action→handler table
type Handlers struct {
	table map[Action]HandlerFunc
}

// NewHandlers creates an empty handler table
func NewHandlers() *Handlers {
	return &Handlers{table: make(map[Action]HandlerFunc)}
}

// Register binds an action to its handler, replacing any previous binding
func (h *Handlers) Register(a Action, fn HandlerFunc) {
	h.table[a] = fn
}

// Unregister removes a binding; screens call this when popped so closures
// over dead screens cannot be retained
func (h *Handlers) Unregister(a Action) {
	delete(h.table, a)
}

// Dispatch runs the handler for a. An unbound action is an error, not a
// crash; the shell surfaces it on the status line.
func (h *Handlers) Dispatch(a Action) error {
	fn, ok := h.table[a]
	if !ok {
		return fmt.Errorf("menu: no handler registered for action %d", a)
	}
	return fn()
}
