// Package state holds the immutable application snapshot and the pure
// reducer dispatch the shell drives. Widgets never dispatch directly; they
// emit messages the shell hands to the store.
package state

// Kind tags a message variant. Applications declare their own constants
// above KindUser; the engine reserves the low range.
type Kind uint16

const (
	// KindNone is the zero message kind
	KindNone Kind = iota
	// KindViewChanged switches the active screen; payload is the screen id
	KindViewChanged
	// KindThemeChanged switches the theme; payload is the theme name
	KindThemeChanged
	// KindStatus sets the transient status text; payload is the message
	KindStatus

	// KindUser is the first application-defined kind
	KindUser Kind = 64
)

// Message describes one event flowing into the reducer
type Message struct {
	Kind    Kind
	Payload any

	// Token marks messages from background work; the shell drops the
	// message when the token was cancelled before delivery
	Token *CancelToken
}

// AppState is the immutable snapshot tree. Each dispatch replaces it
// wholesale; nothing is shared mutably between old and new snapshots.
type AppState struct {
	ScreenID string
	Theme    string
	Status   string

	// Local is the active screen's sub-state. Screens treat it as
	// immutable and replace it entirely in their reducers.
	Local any
}

// Reducer maps (state, message) to the next state with no side effects
type Reducer func(AppState, Message) (AppState, error)
