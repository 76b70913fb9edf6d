package dom

import "github.com/vango-dev/tessel/internal/errors"

// Sentinel errors for errors.Is. Returned errors carry the same code with
// a detail naming the offending keys.
var (
	ErrStaleKey     = errors.New("T001")
	ErrNotFocusable = errors.New("T002")
	ErrBadMarker    = errors.New("T003")
	ErrCycle        = errors.New("T004")
	ErrRootInsert   = errors.New("T005")
	ErrUnknownID    = errors.New("T006")
)

func staleKey(op string, key NodeKey) error {
	return errors.New("T001").WithDetailf("%s: key %s", op, key)
}
