package menu

import "unicode"

// Item is one entry in a dropdown
type Item struct {
	Label       string
	Hotkey      rune // Selects the item directly while its dropdown is open
	Action      Action
	IsSeparator bool
}

// Menu is one top-level menu
type Menu struct {
	Title  string
	Hotkey rune // Activates this menu from the bar
	Items  []Item
}

// selectableCount returns the number of non-separator items
func (m Menu) selectableCount() int {
	n := 0
	for _, it := range m.Items {
		if !it.IsSeparator {
			n++
		}
	}
	return n
}

// firstSelectable returns the first non-separator index, -1 when none
func (m Menu) firstSelectable() int {
	for i, it := range m.Items {
		if !it.IsSeparator {
			return i
		}
	}
	return -1
}

// nextSelectable steps from idx in direction dir, wrapping and skipping
// separators. Returns idx unchanged when nothing is selectable.
func (m Menu) nextSelectable(idx, dir int) int {
	if len(m.Items) == 0 || m.selectableCount() == 0 {
		return idx
	}
	i := idx
	for {
		i = (i + dir + len(m.Items)) % len(m.Items)
		if !m.Items[i].IsSeparator {
			return i
		}
		if i == idx {
			return idx
		}
	}
}

// itemByHotkey returns the index of the item with the given hotkey letter,
// -1 when absent. Matching is case-insensitive.
func (m Menu) itemByHotkey(r rune) int {
	lr := unicode.ToLower(r)
	for i, it := range m.Items {
		if !it.IsSeparator && it.Hotkey != 0 && unicode.ToLower(it.Hotkey) == lr {
			return i
		}
	}
	return -1
}

// menuByHotkey returns the index of the menu with the given hotkey letter
func menuByHotkey(menus []Menu, r rune) int {
	lr := unicode.ToLower(r)
	for i, m := range menus {
		if m.Hotkey != 0 && unicode.ToLower(m.Hotkey) == lr {
			return i
		}
	}
	return -1
}
