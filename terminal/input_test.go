package terminal

import "testing"

// parseAll collects every event parseBytes emits for the input
func parseAll(t *testing.T, data []byte) ([]KeyEvent, int) {
	t.Helper()
	var out []KeyEvent
	consumed := parseBytes(data, func(ev KeyEvent) { out = append(out, ev) })
	return out, consumed
}

func TestParsePrintableASCII(t *testing.T) {
	evs, consumed := parseAll(t, []byte("ab "))
	if consumed != 3 || len(evs) != 3 {
		t.Fatalf("consumed=%d events=%d, want 3/3", consumed, len(evs))
	}
	want := []rune{'a', 'b', ' '}
	for i, ev := range evs {
		if ev.Key != KeyRune || ev.Rune != want[i] {
			t.Errorf("event %d = %+v, want rune %q", i, ev, want[i])
		}
	}
}

func TestParseCSISequences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		key  Key
		mod  Modifier
	}{
		{"Up", "\x1b[A", KeyUp, ModNone},
		{"Down", "\x1b[B", KeyDown, ModNone},
		{"Right", "\x1b[C", KeyRight, ModNone},
		{"Left", "\x1b[D", KeyLeft, ModNone},
		{"Shift+Tab", "\x1b[Z", KeyBacktab, ModShift},
		{"Ctrl+Right", "\x1b[1;5C", KeyRight, ModCtrl},
		{"Alt+Up", "\x1b[1;3A", KeyUp, ModAlt},
		{"Home", "\x1b[H", KeyHome, ModNone},
		{"Delete", "\x1b[3~", KeyDelete, ModNone},
		{"PageDown", "\x1b[6~", KeyPageDown, ModNone},
		{"F10", "\x1b[21~", KeyF10, ModNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			evs, consumed := parseAll(t, []byte(tt.in))
			if consumed != len(tt.in) {
				t.Fatalf("consumed %d of %d bytes", consumed, len(tt.in))
			}
			if len(evs) != 1 {
				t.Fatalf("got %d events, want 1", len(evs))
			}
			if evs[0].Key != tt.key || evs[0].Modifiers != tt.mod {
				t.Errorf("event = %+v, want key=%v mod=%v", evs[0], tt.key, tt.mod)
			}
		})
	}
}

func TestParseSS3Sequences(t *testing.T) {
	evs, consumed := parseAll(t, []byte("\x1bOP\x1bOA"))
	if consumed != 6 || len(evs) != 2 {
		t.Fatalf("consumed=%d events=%d, want 6/2", consumed, len(evs))
	}
	if evs[0].Key != KeyF1 {
		t.Errorf("first event = %+v, want F1", evs[0])
	}
	if evs[1].Key != KeyUp {
		t.Errorf("second event = %+v, want Up", evs[1])
	}
}

func TestParseAltRune(t *testing.T) {
	evs, _ := parseAll(t, []byte("\x1bf"))
	if len(evs) != 1 {
		t.Fatalf("got %d events, want 1", len(evs))
	}
	if evs[0].Key != KeyRune || evs[0].Rune != 'f' || evs[0].Modifiers&ModAlt == 0 {
		t.Errorf("event = %+v, want Alt+f", evs[0])
	}
}

func TestParseControlKeys(t *testing.T) {
	tests := []struct {
		in  byte
		key Key
	}{
		{0x09, KeyTab},
		{0x0d, KeyEnter},
		{0x0a, KeyEnter},
		{0x7f, KeyBackspace},
		{0x08, KeyBackspace},
		{0x03, KeyCtrlC},
		{0x15, KeyCtrlU},
	}
	for _, tt := range tests {
		evs, _ := parseAll(t, []byte{tt.in})
		if len(evs) != 1 || evs[0].Key != tt.key {
			t.Errorf("byte 0x%02x parsed to %+v, want %v", tt.in, evs, tt.key)
		}
	}
}

func TestParseUTF8(t *testing.T) {
	evs, consumed := parseAll(t, []byte("é日"))
	if len(evs) != 2 {
		t.Fatalf("got %d events, want 2", len(evs))
	}
	if evs[0].Rune != 'é' || evs[1].Rune != '日' {
		t.Errorf("runes = %q %q, want é 日", evs[0].Rune, evs[1].Rune)
	}
	if consumed != len([]byte("é日")) {
		t.Errorf("consumed %d bytes, want %d", consumed, len([]byte("é日")))
	}
}

func TestParseIncompleteSequencesWait(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"Lone ESC", "\x1b"},
		{"CSI prefix", "\x1b["},
		{"CSI partial params", "\x1b[1;5"},
		{"SS3 prefix", "\x1bO"},
		{"UTF-8 partial", "\xe6\x97"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			evs, consumed := parseAll(t, []byte(tt.in))
			if consumed != 0 {
				t.Errorf("consumed %d bytes of an incomplete sequence", consumed)
			}
			if len(evs) != 0 {
				t.Errorf("incomplete sequence emitted %+v", evs)
			}
		})
	}
}

func TestParseSplitSequenceAcrossReads(t *testing.T) {
	// First half arrives, parser waits; full buffer then parses cleanly
	full := []byte("\x1b[1;5C")
	evs, consumed := parseAll(t, full[:4])
	if consumed != 0 || len(evs) != 0 {
		t.Fatalf("partial CSI consumed=%d events=%d, want 0/0", consumed, len(evs))
	}
	evs, consumed = parseAll(t, full)
	if consumed != len(full) || len(evs) != 1 || evs[0].Key != KeyRight {
		t.Errorf("reassembled sequence parsed to %+v", evs)
	}
}

func TestParseCorruptCSIResyncs(t *testing.T) {
	// A control byte inside a CSI is corrupt; the parser drops the ESC [
	// prefix and keeps going with the rest of the stream
	evs, consumed := parseAll(t, []byte("\x1b[\x01a"))
	if consumed != 4 {
		t.Fatalf("consumed %d bytes, want 4", consumed)
	}
	found := false
	for _, ev := range evs {
		if ev.Key == KeyRune && ev.Rune == 'a' {
			found = true
		}
	}
	if !found {
		t.Error("trailing printable lost after corrupt CSI")
	}
}

func TestParseUnknownCSISwallowed(t *testing.T) {
	evs, consumed := parseAll(t, []byte("\x1b[99Xq"))
	if consumed != len("\x1b[99Xq") {
		t.Fatalf("consumed %d bytes, want all", consumed)
	}
	if len(evs) != 1 || evs[0].Rune != 'q' {
		t.Errorf("events = %+v, want only 'q'", evs)
	}
}

func TestKeyNames(t *testing.T) {
	tests := []struct {
		ev   KeyEvent
		want string
	}{
		{KeyEvent{Key: KeyF10}, "F10"},
		{KeyEvent{Key: KeyRune, Rune: 'x'}, "x"},
		{KeyEvent{Key: KeyRune, Rune: 'x', Modifiers: ModAlt}, "Alt+x"},
		{KeyEvent{Key: KeyUp, Modifiers: ModCtrl}, "Ctrl+Up"},
	}
	for _, tt := range tests {
		if got := tt.ev.Name(); got != tt.want {
			t.Errorf("Name() = %q, want %q", got, tt.want)
		}
	}
}
