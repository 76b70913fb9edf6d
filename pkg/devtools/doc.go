// Package devtools serves a running app's state over HTTP.
//
// Routes:
//
//	GET /tree     JSON snapshot of the node tree
//	GET /focus    focused node and the focus registry
//	GET /frame    last painted frame as plain text (?raw=1 keeps styling)
//	GET /stats    invalidation and frame counters
//	GET /metrics  Prometheus metrics, when the app has them
//	GET /ws       websocket pushing {seq, frame, focused, width, height} after each redraw
//
// Reads of the tree go through App.Inspect, so they run on the UI
// goroutine between frames.
package devtools
