package dispatch

import (
	"context"

	"github.com/vango-dev/tessel/pkg/dom"
	"github.com/vango-dev/tessel/pkg/event"
)

// Context describes one dispatch pass. Middleware sees it before and after
// the pass; Target, TargetLabel and Handled are filled in by the
// dispatcher.
type Context struct {
	Event event.Event
	Kind  string

	// Target is the resolved target, zero when the event had none.
	Target      dom.NodeKey
	TargetLabel string

	// Handle is shared by every handler of the pass.
	Handle *event.Handle

	// Handled counts handler invocations.
	Handled int

	// Click is set when a mouse release completed a click.
	Click bool

	std context.Context
}

// StdContext returns the standard context carried through the pass.
func (c *Context) StdContext() context.Context {
	if c.std == nil {
		return context.Background()
	}
	return c.std
}

// SetStdContext replaces the standard context, for example with one that
// carries a trace span.
func (c *Context) SetStdContext(ctx context.Context) {
	c.std = ctx
}

// Stopped reports whether a handler stopped propagation.
func (c *Context) Stopped() bool {
	return c.Handle.Stopped()
}

// Func runs one dispatch pass.
type Func func(c *Context)

// Middleware wraps a dispatch pass.
type Middleware func(next Func) Func

// Chain combines middleware. The first one is the outermost.
func Chain(middleware ...Middleware) Middleware {
	return func(next Func) Func {
		for i := len(middleware) - 1; i >= 0; i-- {
			next = middleware[i](next)
		}
		return next
	}
}
