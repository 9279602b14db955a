package terminal

// Key represents a parsed input key
type Key uint16

const (
	KeyNone Key = iota
	KeyRune     // Printable character (check KeyEvent.Rune)

	// Control keys
	KeyEscape
	KeyEnter
	KeyTab
	KeyBacktab // Shift+Tab
	KeyBackspace
	KeyDelete
	KeySpace

	// Navigation
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyInsert

	// Function keys
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12

	// Ctrl+letter (Ctrl+A = 0x01 .. Ctrl+Z = 0x1A)
	KeyCtrlA
	KeyCtrlB
	KeyCtrlC
	KeyCtrlD
	KeyCtrlE
	KeyCtrlF
	KeyCtrlG
	KeyCtrlH
	KeyCtrlI
	KeyCtrlJ
	KeyCtrlK
	KeyCtrlL
	KeyCtrlM
	KeyCtrlN
	KeyCtrlO
	KeyCtrlP
	KeyCtrlQ
	KeyCtrlR
	KeyCtrlS
	KeyCtrlT
	KeyCtrlU
	KeyCtrlV
	KeyCtrlW
	KeyCtrlX
	KeyCtrlY
	KeyCtrlZ
)

// Modifier represents modifier key state (bitmask)
type Modifier uint8

const (
	ModNone  Modifier = 0
	ModShift Modifier = 1 << 0
	ModAlt   Modifier = 1 << 1
	ModCtrl  Modifier = 1 << 2
)

// KeyEvent is one parsed keyboard event
type KeyEvent struct {
	Key       Key
	Rune      rune // Valid when Key == KeyRune
	Modifiers Modifier
}

// keyNames maps keys to display names for status/debug output
var keyNames = map[Key]string{
	KeyEscape:    "Esc",
	KeyEnter:     "Enter",
	KeyTab:       "Tab",
	KeyBacktab:   "Shift+Tab",
	KeyBackspace: "Backspace",
	KeyDelete:    "Del",
	KeySpace:     "Space",
	KeyUp:        "Up",
	KeyDown:      "Down",
	KeyLeft:      "Left",
	KeyRight:     "Right",
	KeyHome:      "Home",
	KeyEnd:       "End",
	KeyPageUp:    "PgUp",
	KeyPageDown:  "PgDn",
	KeyInsert:    "Ins",
	KeyF1:        "F1",
	KeyF2:        "F2",
	KeyF3:        "F3",
	KeyF4:        "F4",
	KeyF5:        "F5",
	KeyF6:        "F6",
	KeyF7:        "F7",
	KeyF8:        "F8",
	KeyF9:        "F9",
	KeyF10:       "F10",
	KeyF11:       "F11",
	KeyF12:       "F12",
}

// Name returns a human-readable name for the event, modifiers included
func (e KeyEvent) Name() string {
	var base string
	switch {
	case e.Key == KeyRune:
		base = string(e.Rune)
	case e.Key >= KeyCtrlA && e.Key <= KeyCtrlZ:
		return "Ctrl+" + string(rune('A'+e.Key-KeyCtrlA))
	default:
		var ok bool
		if base, ok = keyNames[e.Key]; !ok {
			base = "?"
		}
	}

	var prefix string
	if e.Modifiers&ModCtrl != 0 {
		prefix += "Ctrl+"
	}
	if e.Modifiers&ModAlt != 0 {
		prefix += "Alt+"
	}
	// Backtab already spells out its shift
	if e.Modifiers&ModShift != 0 && e.Key != KeyBacktab {
		prefix += "Shift+"
	}
	return prefix + base
}

// ctrlKey maps a control byte (0x01-0x1A) to its Key constant
func ctrlKey(b byte) Key {
	return KeyCtrlA + Key(b-0x01)
}
