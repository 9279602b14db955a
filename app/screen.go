// Package app is the application shell: the single-threaded event loop
// that owns the terminal, the frame buffer, and dispatch.
package app

import (
	"github.com/slatetui/slate/state"
	"github.com/slatetui/slate/terminal"
	"github.com/slatetui/slate/widget"
)

// Screen is one navigable view. Screens build a widget tree at
// construction and resync it from state snapshots after dispatch.
type Screen interface {
	ID() string

	// Root returns the screen's widget tree, laid out into the Content
	// region by the shell
	Root() widget.Widget

	// OnState resyncs widgets after a dispatch changed the snapshot
	OnState(st state.AppState)

	// HandleKey receives keys the focused widget declined
	HandleKey(ev terminal.KeyEvent) bool

	// Dispose tears the screen down: unregister store subscriptions and
	// action handlers, cancel background tokens. Called exactly once
	// when the screen is popped or replaced.
	Dispose()
}
