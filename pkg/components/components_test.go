package components

import (
	"testing"

	"github.com/vango-dev/tessel/internal/logging"
	"github.com/vango-dev/tessel/pkg/buffer"
	"github.com/vango-dev/tessel/pkg/dispatch"
	"github.com/vango-dev/tessel/pkg/dom"
	"github.com/vango-dev/tessel/pkg/event"
	"github.com/vango-dev/tessel/pkg/reactive"
	"github.com/vango-dev/tessel/pkg/view"
)

// rig mounts a view on a bare tree and drives it the way an app's loop
// would: dispatch, flush effects, then lay out and paint.
type rig struct {
	tree  *dom.Tree
	owner *reactive.Owner
	disp  *dispatch.Dispatcher
	buf   *buffer.Buffer
	root  *view.Mounted
}

func newRig(t *testing.T, width, height int, v *view.View) *rig {
	t.Helper()
	r := &rig{
		tree:  dom.NewTree(dom.WithLogger(logging.Discard())),
		owner: reactive.NewRoot(nil),
		buf:   buffer.New(width, height),
	}
	r.disp = dispatch.New(r.tree, dispatch.WithTabNavigation(true), dispatch.WithLogger(logging.Discard()))

	var err error
	reactive.WithOwner(r.owner, func() {
		r.root, err = view.Mount(r.tree, r.tree.Root(), dom.NodeKey{}, v)
	})
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	t.Cleanup(r.owner.Dispose)
	r.paint()
	return r
}

func (r *rig) paint() []string {
	r.owner.Flush(16)
	r.tree.Layout(r.buf.Area())
	r.buf.Reset()
	r.tree.Paint(r.buf)
	return r.buf.Lines()
}

func (r *rig) send(evs ...event.Event) []string {
	for _, ev := range evs {
		r.disp.Dispatch(ev)
		r.owner.Flush(16)
	}
	return r.paint()
}

func (r *rig) click(x, y int) []string {
	return r.send(
		event.Mouse{X: x, Y: y, Button: event.ButtonLeft, Action: event.MousePress},
		event.Mouse{X: x, Y: y, Button: event.ButtonLeft, Action: event.MouseRelease},
	)
}

func (r *rig) focused() dom.NodeID { return r.tree.Focus().FocusedID() }

func typeText(s string) []event.Event {
	var evs []event.Event
	for _, c := range s {
		evs = append(evs, event.Char(c))
	}
	return evs
}
