package event

// Handle is shared by every handler invoked during one dispatch pass.
// Once any handler calls StopPropagation, no further ancestor runs.
type Handle struct {
	stopped bool
}

// StopPropagation prevents the event from reaching further ancestors.
func (h *Handle) StopPropagation() {
	h.stopped = true
}

// Stopped reports whether propagation was stopped.
func (h *Handle) Stopped() bool {
	return h.stopped
}
