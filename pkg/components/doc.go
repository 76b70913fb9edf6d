// Package components holds ready-made widgets built only from the public
// view API: buttons, text inputs, lists, tabs, popups and spinners.
//
// Every constructor returns a *view.View and takes trailing view options,
// which are applied after the component's own. A caller's OnKeyDown or
// OnClick therefore replaces the built-in one.
//
//	name := reactive.NewSignal("")
//	view.Col(
//	    components.Input(name, submit, view.Constraint(layout.Length(1))),
//	    components.Button("Save", save),
//	)
package components

import (
	"github.com/vango-dev/tessel/pkg/buffer"
	"github.com/vango-dev/tessel/pkg/view"
)

var (
	// LabelStyle is used for buttons and tab labels.
	LabelStyle = buffer.Style{Bold: true}

	// FocusStyle is layered onto a widget while it has focus.
	FocusStyle = buffer.Style{Bold: true, Reverse: true}
)

func withDefaults(base []view.Option, opts []view.Option) []view.Option {
	out := make([]view.Option, 0, len(base)+len(opts))
	out = append(out, base...)
	return append(out, opts...)
}

func items(opts []view.Option, children ...view.Item) []view.Item {
	out := make([]view.Item, 0, len(children)+len(opts))
	out = append(out, children...)
	for _, o := range opts {
		out = append(out, o)
	}
	return out
}
