//go:build unix

package terminal

import (
	"errors"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// errStopped is returned by Read when the stop channel closes
var errStopped = errors.New("terminal: input stopped")

// ttyBackend wraps a tcell Tty: raw-mode lifecycle, window size,
// resize notification, and raw byte I/O
type ttyBackend struct {
	tty     tcell.Tty
	handler func(width, height int)
}

func newBackend() Backend {
	return &ttyBackend{}
}

func (b *ttyBackend) Init() error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("terminal: stdin is not a terminal")
	}

	tty, err := tcell.NewDevTty()
	if err != nil {
		// Fall back to stdio when /dev/tty is unavailable (e.g. some
		// containers)
		tty, err = tcell.NewStdIoTty()
		if err != nil {
			return fmt.Errorf("terminal: open tty: %w", err)
		}
	}

	if err := tty.Start(); err != nil {
		return fmt.Errorf("terminal: enter raw mode: %w", err)
	}

	b.tty = tty
	tty.NotifyResize(func() {
		if b.handler == nil {
			return
		}
		w, h := b.Size()
		b.handler(w, h)
	})
	return nil
}

func (b *ttyBackend) Fini() {
	if b.tty == nil {
		return
	}
	b.tty.Drain()
	b.tty.Stop()
	b.tty.Close()
	b.tty = nil
}

func (b *ttyBackend) Size() (int, int) {
	if b.tty != nil {
		if ws, err := b.tty.WindowSize(); err == nil && ws.Width > 0 && ws.Height > 0 {
			return ws.Width, ws.Height
		}
	}
	// Ioctl fallback when the tty cannot report a size
	if ws, err := unix.IoctlGetWinsize(int(os.Stdout.Fd()), unix.TIOCGWINSZ); err == nil && ws.Col > 0 {
		return int(ws.Col), int(ws.Row)
	}
	return 80, 24
}

func (b *ttyBackend) Write(p []byte) error {
	if b.tty == nil {
		return nil
	}
	_, err := b.tty.Write(p)
	return err
}

func (b *ttyBackend) Read(stopCh <-chan struct{}) ([]byte, error) {
	select {
	case <-stopCh:
		return nil, errStopped
	default:
	}
	if b.tty == nil {
		return nil, errStopped
	}

	buf := make([]byte, 128)
	n, err := b.tty.Read(buf)
	if err != nil {
		return nil, err
	}
	return buf[:n], nil
}

func (b *ttyBackend) SetResizeHandler(handler func(width, height int)) {
	b.handler = handler
}
