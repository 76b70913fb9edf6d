// Package telemetry instruments the event dispatcher and the frame loop.
//
// Prometheus and OpenTelemetry are both exposed as dispatch.Middleware:
//
//	metrics := telemetry.NewMetrics(telemetry.WithNamespace("myapp"))
//	d := dispatch.New(tree, dispatch.WithMiddleware(
//	    metrics.Middleware(),
//	    telemetry.OpenTelemetry(telemetry.WithEventFilter(telemetry.SkipMotion)),
//	))
//
// Metrics are registered on their own registry, so several apps in one
// process never collide. Serve them with Metrics.Handler.
package telemetry
