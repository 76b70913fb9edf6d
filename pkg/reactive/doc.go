// Package reactive is the fine-grained reactive graph that drives Tessel
// views.
//
// Signals hold values, memos derive values, and effects run side effects
// whenever the signals or memos they read change. Effects belong to an
// Owner; disposing an owner disposes everything created under it, which is
// how unmounting a view stops its effects and background work.
//
// # Threading
//
// Signal.Set and Signal.Update are safe from any goroutine. A set never runs
// an owned effect inline: it marks the effect pending on its owner and
// calls the root owner's wake function. The UI goroutine then runs pending
// effects with Owner.Flush, so every effect body (and every tree mutation
// inside it) happens on the UI goroutine.
//
// Effects created without an owner re-run synchronously inside Set. They
// are meant for tests and for code that already runs on the UI goroutine.
//
// # Example
//
//	root := reactive.NewRoot(wake)
//	count := reactive.NewSignal(0)
//	reactive.WithOwner(root, func() {
//	    reactive.CreateEffect(func() reactive.Cleanup {
//	        fmt.Println("count:", count.Get())
//	        return nil
//	    })
//	})
//	go count.Set(1) // wake() fires; the UI loop calls root.Flush()
package reactive
