// Package toast shows short-lived notifications on top of a running app.
//
// A Stack holds the visible toasts in a signal, so it can be fed from any
// goroutine: a background job can report its result without going
// through QueueUpdate. Each toast expires after its TTL; the newest
// toast is drawn at the bottom.
//
//	toasts := toast.NewStack()
//	app.Run(ctx, b, tessel.Col(
//	    body,
//	    toasts.View(30),
//	))
//
//	go func() {
//	    if err := sync(); err != nil {
//	        toasts.Error("sync failed: " + err.Error())
//	        return
//	    }
//	    toasts.Success("synced")
//	}()
//
// The view is an overlay centered over its parent, above other overlays
// by default. Clicking a toast dismisses it.
package toast
