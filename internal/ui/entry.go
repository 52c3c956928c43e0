package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// SearchShortcut opens the search overlay: Ctrl+K, or Cmd+K on macOS.
var SearchShortcut = &desktop.CustomShortcut{
	KeyName:  fyne.KeyK,
	Modifier: fyne.KeyModifierShortcutDefault,
}

// KeyEntry is a single line entry that reports the keys a plain Entry
// swallows: Escape, Up and Down, and application shortcuts.
type KeyEntry struct {
	widget.Entry

	OnEscape   func()
	OnUp       func()
	OnDown     func()
	OnShortcut func(fyne.Shortcut) bool // returns true when handled
}

// NewKeyEntry creates a single line KeyEntry
func NewKeyEntry() *KeyEntry {
	e := &KeyEntry{}
	e.ExtendBaseWidget(e)
	return e
}

// TypedKey handles navigation keys before the default editing behaviour
func (e *KeyEntry) TypedKey(key *fyne.KeyEvent) {
	switch key.Name {
	case fyne.KeyEscape:
		if e.OnEscape != nil {
			e.OnEscape()
			return
		}
	case fyne.KeyUp:
		if e.OnUp != nil {
			e.OnUp()
			return
		}
	case fyne.KeyDown:
		if e.OnDown != nil {
			e.OnDown()
			return
		}
	}
	e.Entry.TypedKey(key)
}

// TypedShortcut gives OnShortcut the first chance at a shortcut
func (e *KeyEntry) TypedShortcut(s fyne.Shortcut) {
	if e.OnShortcut != nil && e.OnShortcut(s) {
		return
	}
	e.Entry.TypedShortcut(s)
}

// isSearchShortcut reports whether s is the search shortcut
func isSearchShortcut(s fyne.Shortcut) bool {
	return s != nil && s.ShortcutName() == SearchShortcut.ShortcutName()
}
