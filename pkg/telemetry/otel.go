package telemetry

import (
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/tessel/pkg/dispatch"
)

const defaultTracerName = "tessel"

// OTelConfig configures the OpenTelemetry middleware.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "tessel").
	TracerName string

	// Provider supplies the tracer. Default: the global provider.
	Provider trace.TracerProvider

	// Filter determines which passes to trace. If nil, all are traced.
	Filter func(c *dispatch.Context) bool

	// AttributeExtractor adds custom attributes to each span.
	AttributeExtractor func(c *dispatch.Context) []attribute.KeyValue
}

// OTelOption configures the OpenTelemetry middleware.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(tp trace.TracerProvider) OTelOption {
	return func(c *OTelConfig) {
		c.Provider = tp
	}
}

// WithEventFilter sets a filter function for dispatch passes.
func WithEventFilter(filter func(c *dispatch.Context) bool) OTelOption {
	return func(c *OTelConfig) {
		c.Filter = filter
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(c *dispatch.Context) []attribute.KeyValue) OTelOption {
	return func(c *OTelConfig) {
		c.AttributeExtractor = extractor
	}
}

// SkipMotion is an event filter that drops pointer motion, which is
// usually too chatty to trace.
func SkipMotion(c *dispatch.Context) bool {
	return c.Kind != "mouse_move"
}

// OpenTelemetry creates middleware that opens a span for every dispatch
// pass. The span carries tessel.event_kind, and after the pass
// tessel.target, tessel.handled and tessel.stopped. The span context is
// stored on the dispatch context so handlers can start child spans from
// c.StdContext().
func OpenTelemetry(opts ...OTelOption) dispatch.Middleware {
	config := OTelConfig{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&config)
	}
	provider := config.Provider
	if provider == nil {
		provider = otel.GetTracerProvider()
	}
	tracer := provider.Tracer(config.TracerName)

	return func(next dispatch.Func) dispatch.Func {
		return func(c *dispatch.Context) {
			if config.Filter != nil && !config.Filter(c) {
				next(c)
				return
			}

			attrs := []attribute.KeyValue{
				attribute.String("tessel.event_kind", c.Kind),
			}
			if config.AttributeExtractor != nil {
				attrs = append(attrs, config.AttributeExtractor(c)...)
			}

			spanCtx, span := tracer.Start(
				c.StdContext(),
				fmt.Sprintf("tessel.%s", c.Kind),
				trace.WithSpanKind(trace.SpanKindInternal),
				trace.WithAttributes(attrs...),
				trace.WithTimestamp(time.Now()),
			)
			defer span.End()
			c.SetStdContext(spanCtx)

			defer func() {
				if r := recover(); r != nil {
					err := fmt.Errorf("handler panic: %v", r)
					span.RecordError(err)
					span.SetStatus(codes.Error, err.Error())
					panic(r)
				}
			}()

			next(c)

			span.SetAttributes(
				attribute.String("tessel.target", c.TargetLabel),
				attribute.Int("tessel.handled", c.Handled),
				attribute.Bool("tessel.stopped", c.Stopped()),
			)
			span.SetStatus(codes.Ok, "")
		}
	}
}

// SpanFromContext returns the span of the dispatch pass. Untraced passes
// return a no-op span.
func SpanFromContext(c *dispatch.Context) trace.Span {
	return trace.SpanFromContext(c.StdContext())
}
