// Package dom is the retained node tree behind a Tessel app.
//
// Nodes live in an arena (Tree) and are addressed by generation-tagged
// NodeKeys. Edges are keys, never pointers, so removing a subtree is a walk
// over keys and a freed slot can never be reached through an old key.
//
// The Tree also owns the FocusManager. Mounting a node registers it as a
// focusable and claims its NodeID; removing it undoes both, so the focus
// registry always matches the mounted tree.
//
// Everything in this package must be used from the UI goroutine.
package dom
