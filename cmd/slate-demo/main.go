// Command slate-demo is a small task manager exercising the full
// engine: menu bar, focus cycling, themed widgets, reducer dispatch,
// and a background clock feeding the inbox.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime/debug"
	"time"

	"github.com/slatetui/slate/app"
	"github.com/slatetui/slate/config"
	"github.com/slatetui/slate/data"
	"github.com/slatetui/slate/menu"
	"github.com/slatetui/slate/state"
	"github.com/slatetui/slate/terminal"
	"github.com/slatetui/slate/theme"
)

const screenTasks = "tasks"

// Application message kinds
const (
	kindClockTick state.Kind = state.KindUser + iota
)

// Menu actions
const (
	actQuit menu.Action = 1 + iota
	actToggleDone
	actDeleteTask
	actClearDone
	actThemeOcean
	actThemeForest
	actThemeEmber
	actThemeGraphite
	actSaveTheme
	actAbout
)

var colorModeFlag = flag.String("color", "auto", "Color mode: auto, truecolor, 256")

// reduce is the demo reducer. Status is cleared on every message so a
// stale notice never re-surfaces after unrelated dispatches.
func reduce(st state.AppState, msg state.Message) (state.AppState, error) {
	st.Status = ""
	switch msg.Kind {
	case state.KindViewChanged:
		id, ok := msg.Payload.(string)
		if !ok {
			return st, fmt.Errorf("view payload is %T, want string", msg.Payload)
		}
		st.ScreenID = id
	case state.KindThemeChanged:
		name, ok := msg.Payload.(string)
		if !ok {
			return st, fmt.Errorf("theme payload is %T, want string", msg.Payload)
		}
		st.Theme = name
	case state.KindStatus:
		st.Status, _ = msg.Payload.(string)
	case kindClockTick:
		st.Local, _ = msg.Payload.(string)
	}
	return st, nil
}

func demoMenus() []menu.Menu {
	return []menu.Menu{
		{Title: "File", Hotkey: 'f', Items: []menu.Item{
			{Label: "Clear Completed", Hotkey: 'c', Action: actClearDone},
			{IsSeparator: true},
			{Label: "Quit", Hotkey: 'q', Action: actQuit},
		}},
		{Title: "Task", Hotkey: 't', Items: []menu.Item{
			{Label: "Toggle Done", Hotkey: 'd', Action: actToggleDone},
			{Label: "Delete", Hotkey: 'x', Action: actDeleteTask},
		}},
		{Title: "View", Hotkey: 'v', Items: []menu.Item{
			{Label: "Ocean", Hotkey: 'o', Action: actThemeOcean},
			{Label: "Forest", Hotkey: 'r', Action: actThemeForest},
			{Label: "Ember", Hotkey: 'e', Action: actThemeEmber},
			{Label: "Graphite", Hotkey: 'g', Action: actThemeGraphite},
			{IsSeparator: true},
			{Label: "Save Theme", Hotkey: 's', Action: actSaveTheme},
		}},
		{Title: "Help", Hotkey: 'h', Items: []menu.Item{
			{Label: "About", Hotkey: 'a', Action: actAbout},
		}},
	}
}

func main() {
	// Restore the terminal before the stack trace hits stderr, even on
	// a crash inside the loop
	defer func() {
		if r := recover(); r != nil {
			terminal.EmergencyReset(os.Stdout)
			fmt.Fprintf(os.Stderr, "\r\nslate-demo crashed: %v\r\n", r)
			fmt.Fprintf(os.Stderr, "%s\r\n", debug.Stack())
			os.Exit(1)
		}
	}()

	flag.Parse()

	opts, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "bad configuration: %v\n", err)
		os.Exit(1)
	}

	// Stdout is the render surface; warnings go to a file or nowhere
	if opts.LogFile != "" {
		f, err := os.OpenFile(opts.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "cannot open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	} else {
		log.SetOutput(io.Discard)
	}

	mode := opts.ColorMode
	if *colorModeFlag != "auto" {
		mode = *colorModeFlag
	}
	var colorMode terminal.ColorMode
	switch mode {
	case "256":
		colorMode = terminal.ColorMode256
	case "truecolor", "true", "24bit":
		colorMode = terminal.ColorModeTrueColor
	default:
		colorMode = terminal.DetectColorMode()
	}

	themes := theme.NewManager()
	prefPath := config.DefaultPreferencePath()
	themes.SetHooks(
		func() (theme.Preference, bool) { return config.LoadThemePreference(prefPath) },
		func(p theme.Preference) error { return config.SaveThemePreference(prefPath, p) },
	)
	if err := themes.LoadTheme(); err != nil {
		log.Printf("theme preference ignored: %v", err)
	}
	if opts.SeedColor != "" {
		if err := themes.Register("custom", opts.SeedColor); err != nil {
			fmt.Fprintf(os.Stderr, "bad seed color: %v\n", err)
			os.Exit(1)
		}
		themes.SetTheme("custom")
	}
	if opts.Theme != "" {
		if err := themes.SetTheme(opts.Theme); err != nil {
			fmt.Fprintf(os.Stderr, "unknown theme %q (have %v)\n", opts.Theme, themes.Names())
			os.Exit(1)
		}
	}

	term := terminal.New(colorMode)
	initial := state.AppState{ScreenID: screenTasks, Theme: themes.Active()}
	shell := app.NewShell(term, themes, reduce, initial, opts.TickInterval)

	store := data.NewMemoryStore()
	shell.RegisterScreen(screenTasks, func(s *app.Shell) app.Screen {
		return newTaskScreen(s, store)
	})

	h := shell.Handlers()
	h.Register(actQuit, func() error { shell.Quit(); return nil })
	h.Register(actAbout, func() error {
		shell.Dispatch(state.Message{Kind: state.KindStatus, Payload: "slate-demo: F10 or Alt+letter for menus, Tab to move focus"})
		return nil
	})
	h.Register(actSaveTheme, func() error { return themes.SaveTheme() })
	setTheme := func(name string) menu.HandlerFunc {
		return func() error {
			shell.Dispatch(state.Message{Kind: state.KindThemeChanged, Payload: name})
			return nil
		}
	}
	h.Register(actThemeOcean, setTheme("ocean"))
	h.Register(actThemeForest, setTheme("forest"))
	h.Register(actThemeEmber, setTheme("ember"))
	h.Register(actThemeGraphite, setTheme("graphite"))

	shell.SetMenus(demoMenus())

	if err := shell.Initialize(); err != nil {
		fmt.Fprintf(os.Stderr, "initialization failed: %v\n", err)
		os.Exit(1)
	}

	// Background clock: posts through the inbox under a screen token so
	// it stops cleanly when the screen goes away
	clockToken := shell.NewToken(screenTasks)
	go func() {
		tick := time.NewTicker(time.Second)
		defer tick.Stop()
		for now := range tick.C {
			if clockToken.Cancelled() {
				return
			}
			shell.Inbox().Push(state.Message{
				Kind:    kindClockTick,
				Payload: now.Format("15:04:05"),
				Token:   clockToken,
			})
		}
	}()

	err = shell.Run()
	shell.Shutdown()
	if err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}
