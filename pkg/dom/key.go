package dom

import "fmt"

// NodeKey identifies a node in one Tree. The zero NodeKey is never valid.
// A key stays valid until its node is removed; after that the slot's
// generation changes and lookups through the old key fail.
type NodeKey struct {
	index uint32
	gen   uint32
}

// IsZero reports whether k is the zero key.
func (k NodeKey) IsZero() bool { return k.gen == 0 }

func (k NodeKey) String() string {
	if k.IsZero() {
		return "none"
	}
	return fmt.Sprintf("%dv%d", k.index, k.gen)
}

// NodeID is an application-assigned logical identity. Unlike a NodeKey it
// survives remounts: a node rendered again with the same ID can be looked
// up with the same value.
type NodeID string
