// Package event defines the input events Tessel routes through the node tree
// and the Handle shared by every handler of one dispatch.
package event

import (
	"fmt"
	"strings"
)

// Event is one of Key, Mouse, Paste or Resize.
type Event interface {
	isEvent()
}

// Modifiers is a bit set of held modifier keys.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModAlt
	ModCtrl
)

// Has reports whether all of m2 are held.
func (m Modifiers) Has(m2 Modifiers) bool { return m&m2 == m2 }

func (m Modifiers) prefix() string {
	s := ""
	if m.Has(ModCtrl) {
		s += "ctrl+"
	}
	if m.Has(ModAlt) {
		s += "alt+"
	}
	if m.Has(ModShift) {
		s += "shift+"
	}
	return s
}

// KeyCode identifies a non-printable key. Printable input uses KeyRune.
type KeyCode uint8

const (
	KeyRune KeyCode = iota
	KeyEnter
	KeyEsc
	KeyTab
	KeyBackTab
	KeyBackspace
	KeyDelete
	KeyInsert
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPgUp
	KeyPgDown
)

var keyNames = map[KeyCode]string{
	KeyEnter:     "enter",
	KeyEsc:       "esc",
	KeyTab:       "tab",
	KeyBackTab:   "shift+tab",
	KeyBackspace: "backspace",
	KeyDelete:    "delete",
	KeyInsert:    "insert",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyHome:      "home",
	KeyEnd:       "end",
	KeyPgUp:      "pgup",
	KeyPgDown:    "pgdown",
}

// KeyAction distinguishes key-down from key-up. Terminals that cannot
// report releases only ever produce KeyPress.
type KeyAction uint8

const (
	KeyPress KeyAction = iota
	KeyRepeat
	KeyRelease
)

// Key is a keyboard event.
type Key struct {
	Code   KeyCode
	Rune   rune
	Mods   Modifiers
	Action KeyAction
}

func (Key) isEvent() {}

// Down reports whether k is a key-down (press or auto-repeat).
func (k Key) Down() bool { return k.Action != KeyRelease }

// String renders k the way key bindings are written, e.g. "ctrl+c", "enter", "q".
func (k Key) String() string {
	if k.Code == KeyRune {
		switch k.Rune {
		case ' ':
			return k.Mods.prefix() + "space"
		case 0:
			return k.Mods.prefix() + "null"
		}
		return k.Mods.prefix() + string(k.Rune)
	}
	if k.Code == KeyBackTab {
		return (k.Mods &^ ModShift).prefix() + keyNames[k.Code]
	}
	return k.Mods.prefix() + keyNames[k.Code]
}

// Matches reports whether k is any of the given bindings.
func (k Key) Matches(bindings ...string) bool {
	s := k.String()
	for _, b := range bindings {
		if s == b {
			return true
		}
	}
	return false
}

// ParseKey parses a binding as written by Key.String, e.g. "ctrl+c",
// "shift+tab", "alt+left" or "x". It reports false for unknown names.
func ParseKey(s string) (Key, bool) {
	if s == "" {
		return Key{}, false
	}
	var mods Modifiers
	rest := s
	for {
		switch {
		case strings.HasPrefix(rest, "ctrl+") && len(rest) > len("ctrl+"):
			mods |= ModCtrl
			rest = rest[len("ctrl+"):]
			continue
		case strings.HasPrefix(rest, "alt+") && len(rest) > len("alt+"):
			mods |= ModAlt
			rest = rest[len("alt+"):]
			continue
		case rest == "shift+tab":
			return Key{Code: KeyBackTab, Mods: mods | ModShift}, true
		case strings.HasPrefix(rest, "shift+") && len(rest) > len("shift+"):
			mods |= ModShift
			rest = rest[len("shift+"):]
			continue
		}
		break
	}
	switch rest {
	case "space":
		return Key{Code: KeyRune, Rune: ' ', Mods: mods}, true
	case "null":
		return Key{Code: KeyRune, Mods: mods}, true
	}
	for code, name := range keyNames {
		if name == rest {
			return Key{Code: code, Mods: mods}, true
		}
	}
	if r := []rune(rest); len(r) == 1 {
		return Key{Code: KeyRune, Rune: r[0], Mods: mods}, true
	}
	return Key{}, false
}

// Char returns a printable rune key.
func Char(r rune) Key { return Key{Code: KeyRune, Rune: r} }

// Ctrl returns ctrl+r.
func Ctrl(r rune) Key { return Key{Code: KeyRune, Rune: r, Mods: ModCtrl} }

// Special returns a non-printable key.
func Special(code KeyCode) Key { return Key{Code: code} }

// MouseButton identifies the button of a mouse event.
type MouseButton uint8

const (
	ButtonNone MouseButton = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight
	WheelUp
	WheelDown
	WheelLeft
	WheelRight
)

// IsWheel reports whether b is a scroll wheel direction.
func (b MouseButton) IsWheel() bool { return b >= WheelUp }

func (b MouseButton) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonMiddle:
		return "middle"
	case ButtonRight:
		return "right"
	case WheelUp:
		return "wheel-up"
	case WheelDown:
		return "wheel-down"
	case WheelLeft:
		return "wheel-left"
	case WheelRight:
		return "wheel-right"
	}
	return "none"
}

// MouseAction is what the pointer did.
type MouseAction uint8

const (
	MousePress MouseAction = iota
	MouseRelease
	MouseMotion
)

func (a MouseAction) String() string {
	switch a {
	case MouseRelease:
		return "release"
	case MouseMotion:
		return "motion"
	}
	return "press"
}

// Mouse is a pointer event in cell coordinates.
type Mouse struct {
	X, Y   int
	Button MouseButton
	Action MouseAction
	Mods   Modifiers
}

func (Mouse) isEvent() {}

func (m Mouse) String() string {
	return fmt.Sprintf("%s%s %s@%d,%d", m.Mods.prefix(), m.Button, m.Action, m.X, m.Y)
}

// Paste is bracketed-paste text delivered to the focused node.
type Paste struct {
	Text string
}

func (Paste) isEvent() {}

// Resize reports new terminal dimensions.
type Resize struct {
	Width, Height int
}

func (Resize) isEvent() {}

// Kind names the event type for metrics and tracing labels.
func Kind(ev Event) string {
	switch e := ev.(type) {
	case Key:
		if e.Action == KeyRelease {
			return "key_up"
		}
		return "key_down"
	case Mouse:
		if e.Button.IsWheel() {
			return "scroll"
		}
		switch e.Action {
		case MouseRelease:
			return "mouse_up"
		case MouseMotion:
			return "mouse_move"
		}
		return "mouse_down"
	case Paste:
		return "paste"
	case Resize:
		return "resize"
	}
	return "unknown"
}
