package app

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/slatetui/slate/layout"
	"github.com/slatetui/slate/menu"
	"github.com/slatetui/slate/render"
	"github.com/slatetui/slate/state"
	"github.com/slatetui/slate/terminal"
	"github.com/slatetui/slate/theme"
	"github.com/slatetui/slate/widget"
)

// Region names resolved by the shell's band resolver
const (
	RegionMenuBar   = "menubar"
	RegionContent   = "content"
	RegionStatusBar = "statusbar"
)

// How long a transient status message stays on the bar
const statusTTL = 4 * time.Second

// ScreenFactory builds a screen on demand. Factories are registered
// once; the shell constructs and disposes instances as navigation
// moves between them.
type ScreenFactory func(s *Shell) Screen

// Shell owns the terminal, the frame buffer, and the tick loop. All
// widget and state access happens on the loop goroutine; other
// goroutines communicate through the inbox only.
type Shell struct {
	term   terminal.Terminal
	fb     *render.FrameBuffer
	themes *theme.Manager

	store    *state.Store
	inbox    *state.Inbox
	handlers *menu.Handlers
	machine  *menu.Machine
	focus    *widget.FocusStack

	menuBar   *menu.Bar
	statusBar *widget.StatusBar

	factories map[string]ScreenFactory
	screens   []Screen // navigation stack, top is active
	tokens    map[string][]*state.CancelToken

	regions map[string]layout.Rect
	tick    time.Duration

	dirty   bool
	quit    bool
	fatal   error
	statusT time.Time
}

// NewShell wires the shell around a terminal and an initial reducer.
// The tick interval is clamped to at least 1ms.
func NewShell(term terminal.Terminal, themes *theme.Manager, reducer state.Reducer, initial state.AppState, tick time.Duration) *Shell {
	if tick < time.Millisecond {
		tick = 16 * time.Millisecond
	}
	s := &Shell{
		term:      term,
		themes:    themes,
		store:     state.NewStore(initial, reducer),
		inbox:     state.NewInbox(),
		handlers:  menu.NewHandlers(),
		focus:     &widget.FocusStack{},
		factories: make(map[string]ScreenFactory),
		tokens:    make(map[string][]*state.CancelToken),
		tick:      tick,
	}
	s.statusBar = widget.NewStatusBar("statusbar", themes)
	s.statusBar.Attach(s)
	themes.SetOnSwitch(func() {
		s.invalidateAll()
	})
	layout.SetWarnFunc(func(format string, args ...any) {
		log.Printf("layout: "+format, args...)
	})
	return s
}

// MarkDirty implements widget.Notifier. Widgets attached to the shell
// bubble invalidation here.
func (s *Shell) MarkDirty() { s.dirty = true }

// Store returns the dispatch store. Loop-goroutine use only.
func (s *Shell) Store() *state.Store { return s.store }

// Inbox returns the cross-goroutine message queue. Post is safe from
// any goroutine.
func (s *Shell) Inbox() *state.Inbox { return s.inbox }

// Handlers returns the action dispatch table.
func (s *Shell) Handlers() *menu.Handlers { return s.handlers }

// Focus returns the focus stack.
func (s *Shell) Focus() *widget.FocusStack { return s.focus }

// Themes returns the theme manager.
func (s *Shell) Themes() *theme.Manager { return s.themes }

// StatusBar returns the shared status bar so screens can publish
// sections into it.
func (s *Shell) StatusBar() *widget.StatusBar { return s.statusBar }

// SetMenus installs the menu bar. Must be called before Run.
func (s *Shell) SetMenus(menus []menu.Menu) {
	s.machine = menu.NewMachine(menus, s.handlers, s.focus)
	s.machine.SetOnError(func(err error) {
		s.Status(fmt.Sprintf("action failed: %v", err), theme.RoleError)
	})
	s.menuBar = menu.NewBar("menubar", s.themes, s.machine)
	s.menuBar.Attach(s)
}

// RegisterScreen associates a screen ID with its factory.
func (s *Shell) RegisterScreen(id string, f ScreenFactory) {
	s.factories[id] = f
}

// NewToken creates a cancellation token owned by the named screen.
// Popping that screen cancels every token it owns.
func (s *Shell) NewToken(screenID string) *state.CancelToken {
	t := state.NewCancelToken()
	s.tokens[screenID] = append(s.tokens[screenID], t)
	return t
}

// Status shows a transient message on the status bar.
func (s *Shell) Status(msg string, role theme.Role) {
	s.statusBar.SetMessage(msg, role)
	s.statusT = time.Now().Add(statusTTL)
}

// Quit asks the loop to exit after the current tick.
func (s *Shell) Quit() { s.quit = true }

// Initialize enters raw mode, sizes the frame buffer, resolves the
// region bands, and pushes the screen named by the initial state.
func (s *Shell) Initialize() error {
	if s.machine == nil {
		return errors.New("app: SetMenus not called")
	}
	if err := s.term.Init(); err != nil {
		return fmt.Errorf("app: terminal init: %w", err)
	}
	s.fb = render.New(s.term)
	s.relayout()

	id := s.store.State().ScreenID
	if id == "" {
		return errors.New("app: initial state names no screen")
	}
	if err := s.pushScreen(id); err != nil {
		s.term.Fini()
		return err
	}
	return nil
}

// Run drives the tick loop until Quit or a fatal terminal error.
// Initialize must have succeeded.
func (s *Shell) Run() error {
	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	s.dirty = true
	for !s.quit {
		s.drainInbox()
		s.pollResize()
		s.pollKey()
		s.expireStatus()
		if s.dirty {
			s.renderFrame()
		}
		if s.fatal != nil {
			return s.fatal
		}
		<-ticker.C
	}
	return nil
}

// Shutdown disposes every screen and restores the terminal. Safe to
// call after a failed Run.
func (s *Shell) Shutdown() {
	for len(s.screens) > 0 {
		s.popScreen()
	}
	s.term.Fini()
}

// --- navigation ---

func (s *Shell) active() Screen {
	if len(s.screens) == 0 {
		return nil
	}
	return s.screens[len(s.screens)-1]
}

func (s *Shell) pushScreen(id string) error {
	f, ok := s.factories[id]
	if !ok {
		return fmt.Errorf("app: no screen registered as %q", id)
	}
	sc := f(s)
	sc.Root().Attach(s)
	s.screens = append(s.screens, sc)
	s.focus.Clear()
	s.focus.Cycle(sc.Root(), 1)
	s.layoutScreen(sc)
	sc.OnState(s.store.State())
	s.invalidateAll()
	return nil
}

func (s *Shell) popScreen() {
	sc := s.screens[len(s.screens)-1]
	s.screens = s.screens[:len(s.screens)-1]
	for _, t := range s.tokens[sc.ID()] {
		t.Cancel()
	}
	delete(s.tokens, sc.ID())
	sc.Dispose()
	s.focus.Clear()
	if top := s.active(); top != nil {
		s.focus.Cycle(top.Root(), 1)
		s.invalidateAll()
	}
}

// switchScreen replaces the whole stack with the named screen. Used
// when a dispatch moved AppState.ScreenID.
func (s *Shell) switchScreen(id string) {
	if sc := s.active(); sc != nil && sc.ID() == id {
		return
	}
	for len(s.screens) > 0 {
		s.popScreen()
	}
	if err := s.pushScreen(id); err != nil {
		s.Status(err.Error(), theme.RoleError)
	}
}

// --- tick phases ---

// drainInbox moves queued messages through the store. Messages whose
// token was cancelled are dropped unseen; a reducer failure surfaces
// on the status bar and leaves state untouched.
func (s *Shell) drainInbox() {
	for _, msg := range s.inbox.Drain() {
		if msg.Token != nil && msg.Token.Cancelled() {
			continue
		}
		s.Dispatch(msg)
	}
}

// Dispatch runs one message through the store and resyncs the UI on
// success. Loop-goroutine use only; other goroutines post to the
// inbox instead.
func (s *Shell) Dispatch(msg state.Message) {
	err := s.store.Dispatch(msg)
	if err != nil {
		var rerr *state.ReducerError
		if errors.As(err, &rerr) && rerr.Panicky {
			log.Printf("app: reducer panic on kind %d: %v", rerr.Kind, rerr.Cause)
		}
		s.Status(fmt.Sprintf("update failed: %v", err), theme.RoleError)
		return
	}
	s.syncFromState(s.store.State())
}

func (s *Shell) syncFromState(st state.AppState) {
	if st.Theme != "" && st.Theme != s.themes.Active() {
		if err := s.themes.SetTheme(st.Theme); err != nil {
			s.Status(err.Error(), theme.RoleError)
		}
	}
	if st.Status != "" {
		s.Status(st.Status, theme.RoleStatusText)
	}
	if st.ScreenID != "" {
		s.switchScreen(st.ScreenID)
	}
	if sc := s.active(); sc != nil {
		sc.OnState(st)
	}
}

// pollResize handles at most one pending resize, synchronously: the
// bands are re-resolved and a full frame is written before any further
// input is read.
func (s *Shell) pollResize() {
	select {
	case <-s.term.ResizeChan():
	default:
		return
	}
	w, h := s.term.Size()
	s.fb.Resize(w, h)
	s.relayout()
	s.invalidateAll()
	s.renderFrame()
}

// pollKey reads at most one key per tick and routes it.
func (s *Shell) pollKey() {
	ev, ok := s.term.ReadKey()
	if !ok {
		return
	}
	if s.machine.HandleGlobalKey(ev) {
		return
	}
	if s.machine.Active() {
		s.machine.HandleKey(ev)
		return
	}
	if ev.Key == terminal.KeyTab || ev.Key == terminal.KeyBacktab {
		dir := 1
		if ev.Key == terminal.KeyBacktab || ev.Modifiers&terminal.ModShift != 0 {
			dir = -1
		}
		if sc := s.active(); sc != nil {
			s.focus.Cycle(sc.Root(), dir)
			s.dirty = true
		}
		return
	}
	if w := s.focus.Current(); w != nil && w.HandleKey(ev) {
		return
	}
	if sc := s.active(); sc != nil && sc.HandleKey(ev) {
		return
	}
}

func (s *Shell) expireStatus() {
	if !s.statusT.IsZero() && time.Now().After(s.statusT) {
		s.statusBar.ClearMessage()
		s.statusT = time.Time{}
	}
}

// --- layout ---

func (s *Shell) relayout() {
	w, h := s.term.Size()
	r := layout.NewResolver(
		layout.RegionDef{Name: RegionMenuBar, Height: layout.Abs(1)},
		layout.RegionDef{Name: RegionContent, Height: layout.Fill()},
		layout.RegionDef{Name: RegionStatusBar, Height: layout.Abs(1)},
	)
	s.regions = r.Resolve(w, h)
	s.menuBar.SetBounds(s.regions[RegionMenuBar])
	s.statusBar.SetBounds(s.regions[RegionStatusBar])
	if sc := s.active(); sc != nil {
		s.layoutScreen(sc)
	}
}

func (s *Shell) layoutScreen(sc Screen) {
	if s.regions != nil {
		sc.Root().SetBounds(s.regions[RegionContent])
	}
}

func (s *Shell) invalidateAll() {
	if sc := s.active(); sc != nil {
		widget.InvalidateTree(sc.Root())
	}
	s.menuBar.Invalidate()
	s.statusBar.Invalidate()
	s.dirty = true
}

// --- rendering ---

// renderFrame paints the tree back-to-front and flushes the diff. A
// panic inside any Render is recovered: the frame is aborted so the
// next tick repaints from the last good state.
func (s *Shell) renderFrame() {
	s.fb.BeginFrame()
	if err := s.paint(); err != nil {
		s.fb.Abort()
		log.Printf("app: render: %v", err)
		s.Status("render error, frame dropped", theme.RoleError)
		return
	}
	if err := s.fb.EndFrame(); err != nil {
		// Terminal write failure is not recoverable from inside the
		// loop; surface it as the Run result.
		s.fatal = fmt.Errorf("app: terminal write: %w", err)
		return
	}
	s.dirty = false
}

func (s *Shell) paint() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	widget.FillRect(s.fb, s.regions[RegionContent], s.themes.GetColor(theme.RoleBackground))
	if sc := s.active(); sc != nil {
		sc.Root().Render(s.fb)
	}
	s.statusBar.Render(s.fb)
	// Menu bar last so an open dropdown overlays the content region.
	s.menuBar.Render(s.fb)
	return nil
}
