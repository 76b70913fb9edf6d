package reactive

// Batch runs fn and holds back change notifications until the outermost
// Batch on this goroutine returns. Each listener is then notified once.
//
//	reactive.Batch(func() {
//	    first.Set("Ada")
//	    last.Set("Lovelace")
//	})
func Batch(fn func()) {
	st := state()
	st.batchDepth++
	defer func() {
		st.batchDepth--
		if st.batchDepth == 0 {
			st.release()
		}
	}()
	fn()
}

func (st *gstate) release() {
	held := st.deferred
	st.deferred = nil
	seen := make(map[uint64]struct{}, len(held))
	for _, l := range held {
		if _, dup := seen[l.ID()]; dup {
			continue
		}
		seen[l.ID()] = struct{}{}
		l.MarkDirty()
	}
}
