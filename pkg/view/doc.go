// Package view describes terminal UIs as trees of views and mounts them
// into a dom.Tree.
//
// A View is an immutable description. Mounting one creates nodes; the
// dynamic views (Dyn, Show, Each) wrap reactive effects that patch the
// mounted nodes when the signals they read change.
//
// # Building views
//
// Containers take a mix of options and children:
//
//	view.Col(
//	    view.Text("Settings", view.Name("title")),
//	    view.Row(view.Constraint(layout.Length(1)),
//	        view.Text("[ Save ]", view.ID("save"), view.Focusable(), view.OnClick(save)),
//	    ),
//	)
//
// # Diffing
//
// When a Dyn re-runs, the new view is compared with the mounted one:
//
//   - Same shape (same kind, same axis for layouts): the nodes are kept and
//     their text, painter, handlers and flags are updated in place.
//     Children are patched by position.
//   - Different shape: the new view is mounted before the old one, then the
//     old one is removed.
//
// Show always remounts when its branch flips. Each reconciles by key: items
// whose key survives keep their nodes and are moved into the new order;
// their views are not re-rendered.
//
// Dynamic regions are bracketed by a placeholder node that marks their end.
// Content is always inserted before that marker.
package view
