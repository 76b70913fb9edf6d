// Package dispatch routes input events to node handlers.
//
// Keyboard and paste events go to the focused node. Mouse events go to the
// node returned by dom.Tree.HitTest, so the tree must have been laid out.
// From the target, the event bubbles through each ancestor until a handler
// calls StopPropagation on the shared event.Handle.
//
// A press and release of the same button on the same target, no more than
// the click tolerance apart, is a click. Pressing focuses the nearest
// focusable ancestor of the target before any click handler runs.
//
// Handlers run synchronously on the caller's goroutine. Panics are not
// recovered.
package dispatch
