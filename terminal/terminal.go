package terminal

import (
	"io"
	"os"
	"sync"
	"sync/atomic"
)

// ResizeEvent represents a terminal resize
type ResizeEvent struct {
	Width  int
	Height int
}

// Terminal provides low-level terminal access.
// Exclusively owned by the application shell; nothing else writes to it.
type Terminal interface {
	// Init enters raw mode and the alternate screen buffer, hides cursor
	Init() error

	// Fini restores terminal state. Safe to call multiple times
	Fini()

	// Size returns current terminal dimensions
	Size() (width, height int)

	// ResizeChan returns a channel that receives resize events
	ResizeChan() <-chan ResizeEvent

	// ColorMode returns detected color capability
	ColorMode() ColorMode

	// ReadKey returns the next pending key event without blocking.
	// ok is false when no input is pending
	ReadKey() (ev KeyEvent, ok bool)

	// Write writes raw bytes to the terminal in one call
	Write(p []byte) error

	// SetCursorVisible shows/hides the hardware cursor
	SetCursorVisible(visible bool)
}

// termImpl implements Terminal using the Backend interface
type termImpl struct {
	backend   Backend
	input     *inputReader
	resizeCh  chan ResizeEvent
	colorMode ColorMode

	cursorVisible atomic.Bool

	mu          sync.Mutex
	initialized bool
	finalized   bool
}

// New creates a Terminal over the platform backend
func New(colorMode ...ColorMode) Terminal {
	var c ColorMode
	if len(colorMode) == 0 {
		c = DetectColorMode()
	} else {
		c = colorMode[0]
	}
	return &termImpl{
		backend:   newBackend(),
		resizeCh:  make(chan ResizeEvent, 1),
		colorMode: c,
	}
}

// NewWithBackend creates a Terminal over an explicit backend.
// Used by tests with an in-memory backend.
func NewWithBackend(b Backend, colorMode ColorMode) Terminal {
	return &termImpl{
		backend:   b,
		resizeCh:  make(chan ResizeEvent, 1),
		colorMode: colorMode,
	}
}

func (t *termImpl) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.initialized {
		return nil
	}

	if err := t.backend.Init(); err != nil {
		return err
	}

	t.backend.SetResizeHandler(func(w, h int) {
		// Non-blocking send; drain stale size so the latest is pending
		select {
		case t.resizeCh <- ResizeEvent{Width: w, Height: h}:
		default:
			select {
			case <-t.resizeCh:
			default:
			}
			select {
			case t.resizeCh <- ResizeEvent{Width: w, Height: h}:
			default:
			}
		}
	})

	t.backend.Write(AltScreenEnter)
	t.backend.Write(CursorHide)
	t.backend.Write(AutoWrapOff)
	t.backend.Write(Clear)
	t.cursorVisible.Store(false)

	t.input = newInputReader(t.backend)
	t.input.start()

	t.initialized = true
	return nil
}

func (t *termImpl) Fini() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return
	}

	if t.input != nil {
		t.input.stop()
	}

	t.backend.Write(CursorShow)
	t.backend.Write(AltScreenExit)
	// Re-enable auto-wrap after leaving the alt screen so the main buffer
	// has wrap restored
	t.backend.Write(AutoWrapOn)
	t.backend.Write(SGRReset)

	t.backend.Fini()
	t.finalized = true
}

func (t *termImpl) Size() (int, int) {
	return t.backend.Size()
}

func (t *termImpl) ResizeChan() <-chan ResizeEvent {
	return t.resizeCh
}

func (t *termImpl) ColorMode() ColorMode {
	return t.colorMode
}

func (t *termImpl) ReadKey() (KeyEvent, bool) {
	if t.input == nil {
		return KeyEvent{}, false
	}
	select {
	case ev := <-t.input.events():
		return ev, true
	default:
		return KeyEvent{}, false
	}
}

func (t *termImpl) Write(p []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return nil
	}
	return t.backend.Write(p)
}

func (t *termImpl) SetCursorVisible(visible bool) {
	if t.cursorVisible.Swap(visible) == visible {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return
	}
	if visible {
		t.backend.Write(CursorShow)
	} else {
		t.backend.Write(CursorHide)
	}
}

// EmergencyReset attempts to restore the terminal to a sane state.
// Called from panic recovery paths when Fini cannot run normally.
func EmergencyReset(w io.Writer) {
	w.Write(CursorShow)
	w.Write(AltScreenExit)
	w.Write(SGRReset)
	w.Write(AutoWrapOn)
	w.Write(RIS)
	if f, ok := w.(*os.File); ok {
		f.Sync()
	}
}
