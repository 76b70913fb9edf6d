// Package vtest runs a tessel app against an in-memory backend for tests.
//
// Run starts the app on its own goroutine and stops it when the test
// ends. Input is scripted with Send, Press, Type and Click; output is
// awaited with WaitText, since frames are painted asynchronously.
//
// # Quick Start
//
//	func TestCounter(t *testing.T) {
//	    h := vtest.Run(t, func(app *tessel.App) *tessel.View {
//	        return Counter()
//	    })
//	    h.WaitText("count: 0")
//	    h.Press("tab", "enter")
//	    h.WaitText("count: 1")
//	}
//
// # Frame Assertions
//
// The Expect helpers check the last painted frame without waiting:
//
//	vtest.ExpectContains(t, h.Frame(), "Saved")
//	vtest.ExpectNotContains(t, h.Frame(), "Error")
//
// # Inspecting the Tree
//
// Inspect runs a function on the UI goroutine with the node tree, for
// assertions on focus or structure:
//
//	h.Inspect(func(tree *dom.Tree) {
//	    if tree.Focus().FocusedID() != "save" {
//	        t.Error("save button should have focus")
//	    }
//	})
package vtest
