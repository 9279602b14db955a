package app

import (
	"errors"
	"testing"

	"github.com/slatetui/slate/menu"
	"github.com/slatetui/slate/render"
	"github.com/slatetui/slate/state"
	"github.com/slatetui/slate/terminal"
	"github.com/slatetui/slate/theme"
	"github.com/slatetui/slate/widget"
)

const (
	kindFail state.Kind = state.KindUser + iota
	kindNote
)

const (
	actNoop menu.Action = 1 + iota
)

func testReducer(st state.AppState, msg state.Message) (state.AppState, error) {
	switch msg.Kind {
	case state.KindViewChanged:
		st.ScreenID = msg.Payload.(string)
	case kindFail:
		return st, errors.New("rejected")
	case kindNote:
		st.Status = msg.Payload.(string)
	}
	return st, nil
}

// bombWidget panics during Render while armed
type bombWidget struct {
	widget.Base
	armed bool
}

func (b *bombWidget) Render(*render.FrameBuffer) {
	if b.armed {
		panic("render bomb")
	}
}

// stubScreen is a minimal screen with one text input and one bomb
type stubScreen struct {
	id       string
	root     *widget.Container
	input    *widget.TextInput
	bomb     *bombWidget
	states   int
	disposed bool
}

func (s *stubScreen) ID() string                       { return s.id }
func (s *stubScreen) Root() widget.Widget              { return s.root }
func (s *stubScreen) OnState(state.AppState)           { s.states++ }
func (s *stubScreen) HandleKey(terminal.KeyEvent) bool { return false }
func (s *stubScreen) Dispose()                         { s.disposed = true }

func newStubScreen(sh *Shell, id string) *stubScreen {
	sc := &stubScreen{id: id}
	sc.root = widget.NewContainer(id + "-root")
	sc.input = widget.NewTextInput(id+"-input", sh.Themes())
	sc.bomb = &bombWidget{Base: widget.NewBase(id + "-bomb")}
	sc.root.AddChild(sc.input)
	sc.root.AddChild(sc.bomb)
	return sc
}

func newTestShell(t *testing.T) (*Shell, *terminal.Recorder, *stubScreen) {
	t.Helper()
	rec := terminal.NewRecorder(80, 24)
	themes := theme.NewManager()
	sh := NewShell(rec, themes, testReducer, state.AppState{ScreenID: "main"}, 0)

	var sc *stubScreen
	sh.RegisterScreen("main", func(s *Shell) Screen {
		sc = newStubScreen(s, "main")
		return sc
	})

	sh.Handlers().Register(actNoop, func() error { return nil })
	sh.SetMenus([]menu.Menu{
		{Title: "File", Hotkey: 'f', Items: []menu.Item{
			{Label: "Noop", Hotkey: 'n', Action: actNoop},
		}},
	})

	if err := sh.Initialize(); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	return sh, rec, sc
}

func TestInitializeLaysOutRegions(t *testing.T) {
	sh, _, sc := newTestShell(t)
	defer sh.Shutdown()

	content := sh.regions[RegionContent]
	if content.H != 22 {
		t.Errorf("content height = %d, want 22 (24 minus bar rows)", content.H)
	}
	if sh.regions[RegionMenuBar].Y != 0 {
		t.Error("menu bar not at the top row")
	}
	if sh.regions[RegionStatusBar].Y != 23 {
		t.Errorf("status bar at y=%d, want 23", sh.regions[RegionStatusBar].Y)
	}
	if sc.root.Bounds() != content {
		t.Errorf("screen root bounds %+v, want content region %+v", sc.root.Bounds(), content)
	}
	if sc.states == 0 {
		t.Error("screen never received the initial state")
	}
}

func TestFirstFrameThenIdempotent(t *testing.T) {
	sh, rec, _ := newTestShell(t)
	defer sh.Shutdown()

	sh.renderFrame()
	if len(rec.Writes) == 0 {
		t.Fatal("first frame wrote nothing")
	}
	if sh.dirty {
		t.Error("dirty flag survives a successful frame")
	}

	// Unchanged tree: a second pass must not touch the terminal
	rec.Writes = nil
	sh.renderFrame()
	if got := rec.BytesWritten(); got != 0 {
		t.Errorf("unchanged frame wrote %d bytes", got)
	}
}

func TestResizeRelayoutsAndRepaints(t *testing.T) {
	sh, rec, sc := newTestShell(t)
	defer sh.Shutdown()
	sh.renderFrame()
	rec.Writes = nil

	rec.PushResize(100, 40)
	sh.pollResize()

	if sh.regions[RegionContent].H != 38 {
		t.Errorf("content height after resize = %d, want 38", sh.regions[RegionContent].H)
	}
	if sc.root.Bounds().W != 100 {
		t.Errorf("screen root width = %d, want 100", sc.root.Bounds().W)
	}
	// The repaint happens inside pollResize, before any further input
	if len(rec.Writes) == 0 {
		t.Error("resize did not flush a frame")
	}
}

func TestKeyRoutesToFocusedWidget(t *testing.T) {
	sh, rec, sc := newTestShell(t)
	defer sh.Shutdown()

	if sh.Focus().Current() != sc.input {
		t.Fatalf("initial focus is %v, want the input", sh.Focus().Current())
	}

	rec.PushKey(terminal.KeyEvent{Key: terminal.KeyRune, Rune: 'a'})
	sh.pollKey()
	if sc.input.Text() != "a" {
		t.Errorf("input text = %q, want a", sc.input.Text())
	}
}

func TestMenuOwnsInputWhileActive(t *testing.T) {
	sh, rec, sc := newTestShell(t)
	defer sh.Shutdown()

	rec.PushKey(terminal.KeyEvent{Key: terminal.KeyF10})
	sh.pollKey()
	if !sh.machine.Active() {
		t.Fatal("F10 did not activate the menu")
	}
	if sh.Focus().Current() != nil {
		t.Error("content focus not suspended while menu active")
	}

	// A rune that is no hotkey stays with the menu, not the input
	rec.PushKey(terminal.KeyEvent{Key: terminal.KeyRune, Rune: 'a'})
	sh.pollKey()
	if sc.input.Text() != "" {
		t.Errorf("input received %q while menu active", sc.input.Text())
	}

	rec.PushKey(terminal.KeyEvent{Key: terminal.KeyEscape})
	sh.pollKey()
	if sh.Focus().Current() != sc.input {
		t.Error("focus not restored after menu close")
	}
}

func TestDispatchFailureSurfacesAndRetainsState(t *testing.T) {
	sh, _, _ := newTestShell(t)
	defer sh.Shutdown()

	before := sh.Store().State()
	sh.Dispatch(state.Message{Kind: kindFail})

	if sh.Store().State() != before {
		t.Error("failed dispatch changed the snapshot")
	}
	if sh.statusBar.Message() == "" {
		t.Error("failed dispatch not surfaced on the status bar")
	}
}

func TestCancelledMessagesDropped(t *testing.T) {
	sh, _, sc := newTestShell(t)
	defer sh.Shutdown()
	seen := sc.states

	tok := state.NewCancelToken()
	tok.Cancel()
	sh.Inbox().Push(state.Message{Kind: kindNote, Payload: "stale", Token: tok})
	sh.drainInbox()

	if sc.states != seen {
		t.Error("cancelled message reached the reducer")
	}
	if sh.Store().State().Status == "stale" {
		t.Error("cancelled message changed state")
	}
}

func TestScreenSwitchTearsDownOldScreen(t *testing.T) {
	sh, _, sc := newTestShell(t)
	defer sh.Shutdown()

	var other *stubScreen
	sh.RegisterScreen("other", func(s *Shell) Screen {
		other = newStubScreen(s, "other")
		return other
	})
	tok := sh.NewToken("main")

	sh.Dispatch(state.Message{Kind: state.KindViewChanged, Payload: "other"})

	if !sc.disposed {
		t.Error("old screen not disposed on switch")
	}
	if !tok.Cancelled() {
		t.Error("old screen's token not cancelled")
	}
	if other == nil || sh.active() != Screen(other) {
		t.Error("new screen not active after switch")
	}
}

func TestRenderPanicDropsFrame(t *testing.T) {
	sh, rec, sc := newTestShell(t)
	defer sh.Shutdown()
	sh.renderFrame()
	rec.Writes = nil

	sc.bomb.armed = true
	sc.bomb.Invalidate()
	sh.renderFrame()

	if got := rec.BytesWritten(); got != 0 {
		t.Errorf("panicking frame leaked %d bytes", got)
	}
	if sh.fatal != nil {
		t.Errorf("render panic escalated to fatal: %v", sh.fatal)
	}
	if sh.statusBar.Message() == "" {
		t.Error("render panic not surfaced on the status bar")
	}

	// Recovery: the next healthy frame flushes normally
	sc.bomb.armed = false
	widget.InvalidateTree(sc.root)
	sh.dirty = true
	sh.renderFrame()
	if len(rec.Writes) == 0 {
		t.Error("no frame flushed after recovery")
	}
}

func TestThemeSwitchInvalidatesTree(t *testing.T) {
	sh, rec, _ := newTestShell(t)
	defer sh.Shutdown()
	sh.renderFrame()
	rec.Writes = nil

	if err := sh.Themes().SetTheme("ember"); err != nil {
		t.Fatalf("switch: %v", err)
	}
	if !sh.dirty {
		t.Fatal("theme switch did not mark the shell dirty")
	}
	sh.renderFrame()
	if len(rec.Writes) == 0 {
		t.Error("theme switch produced no repaint")
	}
}
