package terminal

// Backend abstracts platform-specific terminal operations.
// The production backend wraps a tcell Tty; tests use an in-memory one.
type Backend interface {
	// Init enters raw mode
	Init() error

	// Fini restores the previous terminal mode
	Fini()

	// Size returns current terminal dimensions
	Size() (width, height int)

	// Write writes raw bytes to the terminal output
	Write(p []byte) error

	// Read blocks until input is available, the stop channel is closed,
	// or an error occurs
	Read(stopCh <-chan struct{}) ([]byte, error)

	// SetResizeHandler registers a callback for terminal resize events
	SetResizeHandler(handler func(width, height int))
}
