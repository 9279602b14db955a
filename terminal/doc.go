// Package terminal is the only OS-facing boundary of the engine.
//
// It owns raw-mode lifecycle, key input parsing, and raw byte output.
// Escape-sequence generation for cell content lives in the render package;
// terminal only provides the byte-level primitives (ansi.go) and the
// capability interface consumed by the renderer and the application shell.
//
// The default backend wraps tcell's Tty for raw mode, window size, and
// resize notification. Input parsing is done here, not by tcell, so the
// engine sees one uniform KeyEvent type.
package terminal
