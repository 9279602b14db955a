package terminal

import (
	"sync"
	"time"
	"unicode/utf8"
)

// escapeTimeout is how long a lone ESC byte may sit in the buffer before it
// is emitted as KeyEscape rather than treated as a sequence prefix
const escapeTimeout = 50 * time.Millisecond

// inputReader turns raw backend bytes into KeyEvents on a channel
type inputReader struct {
	backend Backend
	eventCh chan KeyEvent
	stopCh  chan struct{}
	doneCh  chan struct{}
	mu      sync.Mutex
	running bool

	// Persistent buffer for stream assembly; partial UTF-8 and escape
	// sequences survive read boundaries
	buf []byte
}

func newInputReader(backend Backend) *inputReader {
	return &inputReader{
		backend: backend,
		eventCh: make(chan KeyEvent, 256),
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
		buf:     make([]byte, 0, 256),
	}
}

func (r *inputReader) start() {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return
	}
	r.running = true
	r.mu.Unlock()

	go r.readLoop()
}

func (r *inputReader) stop() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	r.running = false
	r.mu.Unlock()

	close(r.stopCh)
	// Don't block forever if the backend read is stuck
	select {
	case <-r.doneCh:
	case <-time.After(100 * time.Millisecond):
	}
}

func (r *inputReader) events() <-chan KeyEvent {
	return r.eventCh
}

func (r *inputReader) readLoop() {
	defer close(r.doneCh)

	var escTimer *time.Timer
	for {
		data, err := r.backend.Read(r.stopCh)
		if err != nil {
			return
		}

		if escTimer != nil {
			escTimer.Stop()
			escTimer = nil
		}

		// buf is shared with the escape-timeout callback
		r.mu.Lock()
		r.buf = append(r.buf, data...)
		consumed := parseBytes(r.buf, r.send)
		if consumed > 0 {
			copy(r.buf, r.buf[consumed:])
			r.buf = r.buf[:len(r.buf)-consumed]
		}
		pendingEsc := len(r.buf) == 1 && r.buf[0] == 0x1b
		r.mu.Unlock()

		// A lone ESC left in the buffer is probably a real Escape press;
		// emit it if nothing follows within the timeout
		if pendingEsc {
			escTimer = time.AfterFunc(escapeTimeout, func() {
				r.mu.Lock()
				defer r.mu.Unlock()
				if len(r.buf) == 1 && r.buf[0] == 0x1b {
					r.buf = r.buf[:0]
					r.send(KeyEvent{Key: KeyEscape})
				}
			})
		}
	}
}

func (r *inputReader) send(ev KeyEvent) {
	select {
	case r.eventCh <- ev:
	default:
		// Channel full, drop oldest semantics not worth the complexity
	}
}

// parseBytes parses as many complete events as possible from data, invoking
// emit per event, and returns bytes consumed. Parsing stops at an
// incomplete escape or UTF-8 sequence.
func parseBytes(data []byte, emit func(KeyEvent)) int {
	i := 0
	n := len(data)

	for i < n {
		b := data[i]

		// Fast path: printable ASCII
		if b >= 0x20 && b < 0x7f {
			emit(KeyEvent{Key: KeyRune, Rune: rune(b)})
			i++
			continue
		}

		if b == 0x1b {
			consumed, ev := parseEscape(data[i:])
			if consumed == 0 {
				return i // Incomplete, wait for more data
			}
			if ev.Key != KeyNone {
				emit(ev)
			}
			i += consumed
			continue
		}

		if b < 0x20 {
			emit(parseControl(b))
			i++
			continue
		}

		if b == 0x7f {
			emit(KeyEvent{Key: KeyBackspace})
			i++
			continue
		}

		// UTF-8 multibyte
		seqLen := utf8SeqLen(b)
		if seqLen == 0 {
			i++ // Invalid start byte, skip
			continue
		}
		if i+seqLen > n {
			return i // Incomplete, wait for more data
		}
		rn, size := utf8.DecodeRune(data[i:])
		emit(KeyEvent{Key: KeyRune, Rune: rn})
		i += size
	}
	return i
}

// utf8SeqLen returns the expected sequence length from a start byte, 0 if invalid
func utf8SeqLen(b byte) int {
	switch {
	case b < 0x80:
		return 1
	case b&0xe0 == 0xc0:
		return 2
	case b&0xf0 == 0xe0:
		return 3
	case b&0xf8 == 0xf0:
		return 4
	}
	return 0
}

// parseEscape parses one escape sequence, returning 0 consumed if incomplete
func parseEscape(data []byte) (int, KeyEvent) {
	if len(data) < 2 {
		return 0, KeyEvent{}
	}

	// ESC ESC -> Alt+Escape
	if data[1] == 0x1b {
		return 2, KeyEvent{Key: KeyEscape, Modifiers: ModAlt}
	}
	if data[1] == '[' {
		return parseCSI(data)
	}
	if data[1] == 'O' {
		return parseSS3(data)
	}

	// Alt+control
	if data[1] < 0x20 {
		ev := parseControl(data[1])
		ev.Modifiers |= ModAlt
		return 2, ev
	}

	// Alt+printable
	if data[1] < 0x7f {
		return 2, KeyEvent{Key: KeyRune, Rune: rune(data[1]), Modifiers: ModAlt}
	}

	return 2, KeyEvent{}
}

// parseCSI parses a CSI sequence without allocation
func parseCSI(data []byte) (int, KeyEvent) {
	if len(data) < 3 {
		return 0, KeyEvent{}
	}

	end := 2
	maxScan := len(data)
	if maxScan > 16 {
		maxScan = 16
	}

	terminated := false
	for end < maxScan {
		b := data[end]
		end++
		if (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') || b == '~' {
			terminated = true
			break
		}
		if b < 0x20 || b > 0x7e {
			// Corrupt sequence, consume the ESC [ and resync
			return 2, KeyEvent{}
		}
	}
	if !terminated {
		if len(data) >= 16 {
			// Oversized garbage, consume prefix to resync
			return 2, KeyEvent{}
		}
		return 0, KeyEvent{}
	}

	if key, mod, ok := lookupCSI(data[2:end]); ok {
		return end, KeyEvent{Key: key, Modifiers: mod}
	}
	// Unknown but well-formed CSI, swallow it
	return end, KeyEvent{}
}

// parseSS3 parses an SS3 sequence
func parseSS3(data []byte) (int, KeyEvent) {
	if len(data) < 3 {
		return 0, KeyEvent{}
	}
	if key, mod, ok := lookupSS3(data[2:3]); ok {
		return 3, KeyEvent{Key: key, Modifiers: mod}
	}
	return 3, KeyEvent{}
}

// parseControl maps control bytes to keys
func parseControl(b byte) KeyEvent {
	switch b {
	case 0x08:
		return KeyEvent{Key: KeyBackspace}
	case 0x09:
		return KeyEvent{Key: KeyTab}
	case 0x0a, 0x0d:
		return KeyEvent{Key: KeyEnter}
	case 0x1b:
		return KeyEvent{Key: KeyEscape}
	}
	if b >= 0x01 && b <= 0x1a {
		return KeyEvent{Key: ctrlKey(b)}
	}
	return KeyEvent{}
}
