// Package errors provides structured, coded errors for Tessel.
//
// Every error carries a short code (e.g. "T001") that maps to a registered
// message and explanation. Codes make structural misuse easy to match with
// the standard library:
//
//	if errors.Is(err, dom.ErrStaleKey) {
//	    // the node was already unmounted
//	}
//
// # Error Categories
//
//   - structure: misuse of the node arena (stale keys, bad markers, cycles)
//   - focus: focus transitions that were rejected
//   - view: invalid view descriptions (duplicate list keys)
//   - config: invalid tessel.json files or values
//   - backend: terminal or devtools failures
//
// # Usage
//
//	err := errors.New("T003").
//	    WithDetail("marker 4v2 belongs to parent 1v1").
//	    WithSuggestion("Pass the zero NodeKey to append instead")
//
//	fmt.Println(err.Format())
package errors
