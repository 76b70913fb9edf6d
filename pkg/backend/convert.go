package backend

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vango-dev/tessel/pkg/event"
)

var specialKeys = map[tea.KeyType]event.Key{
	tea.KeyEnter:     {Code: event.KeyEnter},
	tea.KeyEsc:       {Code: event.KeyEsc},
	tea.KeyTab:       {Code: event.KeyTab},
	tea.KeyShiftTab:  {Code: event.KeyBackTab, Mods: event.ModShift},
	tea.KeyBackspace: {Code: event.KeyBackspace},
	tea.KeyDelete:    {Code: event.KeyDelete},
	tea.KeyInsert:    {Code: event.KeyInsert},
	tea.KeySpace:     {Code: event.KeyRune, Rune: ' '},

	tea.KeyUp:     {Code: event.KeyUp},
	tea.KeyDown:   {Code: event.KeyDown},
	tea.KeyLeft:   {Code: event.KeyLeft},
	tea.KeyRight:  {Code: event.KeyRight},
	tea.KeyHome:   {Code: event.KeyHome},
	tea.KeyEnd:    {Code: event.KeyEnd},
	tea.KeyPgUp:   {Code: event.KeyPgUp},
	tea.KeyPgDown: {Code: event.KeyPgDown},

	tea.KeyShiftUp:    {Code: event.KeyUp, Mods: event.ModShift},
	tea.KeyShiftDown:  {Code: event.KeyDown, Mods: event.ModShift},
	tea.KeyShiftLeft:  {Code: event.KeyLeft, Mods: event.ModShift},
	tea.KeyShiftRight: {Code: event.KeyRight, Mods: event.ModShift},
	tea.KeyCtrlUp:     {Code: event.KeyUp, Mods: event.ModCtrl},
	tea.KeyCtrlDown:   {Code: event.KeyDown, Mods: event.ModCtrl},
	tea.KeyCtrlLeft:   {Code: event.KeyLeft, Mods: event.ModCtrl},
	tea.KeyCtrlRight:  {Code: event.KeyRight, Mods: event.ModCtrl},
	tea.KeyCtrlHome:   {Code: event.KeyHome, Mods: event.ModCtrl},
	tea.KeyCtrlEnd:    {Code: event.KeyEnd, Mods: event.ModCtrl},
}

// convertKey translates a bubbletea key. Bracketed pastes become Paste
// events. Keys with no equivalent report false.
func convertKey(msg tea.KeyMsg) (event.Event, bool) {
	if msg.Paste {
		return event.Paste{Text: string(msg.Runes)}, true
	}

	var k event.Key
	switch {
	case msg.Type == tea.KeyRunes:
		if len(msg.Runes) != 1 {
			return nil, false
		}
		k = event.Char(msg.Runes[0])
	case msg.Type >= tea.KeyCtrlA && msg.Type <= tea.KeyCtrlZ && !isSpecial(msg.Type):
		k = event.Ctrl(rune('a' + msg.Type - tea.KeyCtrlA))
	default:
		sk, ok := specialKeys[msg.Type]
		if !ok {
			return nil, false
		}
		k = sk
	}
	if msg.Alt {
		k.Mods |= event.ModAlt
	}
	return k, true
}

// isSpecial reports whether a control code doubles as a named key, such as
// Ctrl-I for Tab and Ctrl-M for Enter.
func isSpecial(t tea.KeyType) bool {
	_, ok := specialKeys[t]
	return ok
}

var mouseButtons = map[tea.MouseButton]event.MouseButton{
	tea.MouseButtonNone:       event.ButtonNone,
	tea.MouseButtonLeft:       event.ButtonLeft,
	tea.MouseButtonMiddle:     event.ButtonMiddle,
	tea.MouseButtonRight:      event.ButtonRight,
	tea.MouseButtonWheelUp:    event.WheelUp,
	tea.MouseButtonWheelDown:  event.WheelDown,
	tea.MouseButtonWheelLeft:  event.WheelLeft,
	tea.MouseButtonWheelRight: event.WheelRight,
}

// convertMouse translates a bubbletea mouse event. Back and forward
// buttons report false.
func convertMouse(msg tea.MouseMsg) (event.Event, bool) {
	button, ok := mouseButtons[msg.Button]
	if !ok {
		return nil, false
	}

	ev := event.Mouse{X: msg.X, Y: msg.Y, Button: button}
	switch msg.Action {
	case tea.MouseActionRelease:
		ev.Action = event.MouseRelease
	case tea.MouseActionMotion:
		ev.Action = event.MouseMotion
	default:
		ev.Action = event.MousePress
	}
	if msg.Shift {
		ev.Mods |= event.ModShift
	}
	if msg.Alt {
		ev.Mods |= event.ModAlt
	}
	if msg.Ctrl {
		ev.Mods |= event.ModCtrl
	}
	return ev, true
}
