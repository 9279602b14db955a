package theme

import (
	"fmt"
	"sort"

	"github.com/slatetui/slate/terminal"
)

// Preference is the persisted theme record. The engine exposes load/save
// hooks but does not own the file format.
type Preference struct {
	SeedColor       string `toml:"seed_color"`
	ActiveThemeName string `toml:"active_theme"`
}

// LoadFunc loads the persisted preference, ok=false when none exists
type LoadFunc func() (Preference, bool)

// SaveFunc persists the preference
type SaveFunc func(Preference) error

// builtinSeeds are the named themes available out of the box
var builtinSeeds = map[string]string{
	"ocean":    "#0078D4",
	"forest":   "#2E8B57",
	"ember":    "#D2491E",
	"graphite": "#6E7681",
}

// Manager owns the active palette. Widgets pull colors from it at render
// time; switching themes recomputes the palette and invalidates the tree
// through the registered callback.
type Manager struct {
	palette    Palette
	activeName string
	seeds      map[string]string

	load LoadFunc
	save SaveFunc

	// onSwitch is invoked after the palette is recomputed, typically
	// wired to root invalidation by the shell
	onSwitch func()
}

// NewManager creates a manager with the builtin themes, active "ocean"
func NewManager() *Manager {
	seeds := make(map[string]string, len(builtinSeeds))
	for k, v := range builtinSeeds {
		seeds[k] = v
	}
	seed, _ := ParseHex(seeds["ocean"])
	return &Manager{
		palette:    Derive(seed),
		activeName: "ocean",
		seeds:      seeds,
	}
}

// SetHooks installs the persistence hooks
func (m *Manager) SetHooks(load LoadFunc, save SaveFunc) {
	m.load = load
	m.save = save
}

// SetOnSwitch registers the invalidation callback fired on theme change
func (m *Manager) SetOnSwitch(fn func()) {
	m.onSwitch = fn
}

// Register adds or replaces a named theme seed
func (m *Manager) Register(name, seedHex string) error {
	if _, err := ParseHex(seedHex); err != nil {
		return err
	}
	m.seeds[name] = seedHex
	return nil
}

// Names returns registered theme names, sorted
func (m *Manager) Names() []string {
	names := make([]string, 0, len(m.seeds))
	for n := range m.seeds {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Active returns the active theme name
func (m *Manager) Active() string {
	return m.activeName
}

// GetColor returns the color for a role; it always returns a value
func (m *Manager) GetColor(role Role) terminal.RGB {
	return m.palette.Color(role)
}

// Palette returns the active palette
func (m *Manager) Palette() Palette {
	return m.palette
}

// SetTheme switches the active theme, recomputing the whole role map and
// firing the invalidation callback so the next frame repaints
func (m *Manager) SetTheme(name string) error {
	seedHex, ok := m.seeds[name]
	if !ok {
		return fmt.Errorf("theme: unknown theme %q", name)
	}
	seed, err := ParseHex(seedHex)
	if err != nil {
		return err
	}

	m.palette = Derive(seed)
	m.activeName = name
	if m.onSwitch != nil {
		m.onSwitch()
	}
	return nil
}

// LoadTheme applies the persisted preference if the hook is set and a
// record exists. Unknown names or bad seeds keep the current theme.
func (m *Manager) LoadTheme() error {
	if m.load == nil {
		return nil
	}
	pref, ok := m.load()
	if !ok {
		return nil
	}

	if pref.SeedColor != "" {
		// A custom seed registers under the persisted name before switching
		name := pref.ActiveThemeName
		if name == "" {
			name = "custom"
		}
		if err := m.Register(name, pref.SeedColor); err != nil {
			return err
		}
		return m.SetTheme(name)
	}
	if pref.ActiveThemeName != "" {
		return m.SetTheme(pref.ActiveThemeName)
	}
	return nil
}

// SaveTheme persists the active preference through the hook
func (m *Manager) SaveTheme() error {
	if m.save == nil {
		return nil
	}
	return m.save(Preference{
		SeedColor:       Hex(m.palette.Seed),
		ActiveThemeName: m.activeName,
	})
}
