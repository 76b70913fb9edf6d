package dom

// Renderer is the minimal structural contract between the diff engine and
// a tree. Every structural change made while reconciling views goes through
// these methods. *Tree implements it.
type Renderer interface {
	CreateText(text string) NodeKey
	CreatePlaceholder() NodeKey
	SetText(key NodeKey, text string)
	Insert(parent, child, marker NodeKey) error
	Remove(key NodeKey)
	ClearChildren(parent NodeKey)
	Parent(key NodeKey) (NodeKey, bool)
	FirstChild(key NodeKey) (NodeKey, bool)
	NextSibling(key NodeKey) (NodeKey, bool)
}

var _ Renderer = (*Tree)(nil)

// Notifier is told whenever the tree changes in a way that needs a repaint.
type Notifier interface {
	Invalidate()
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func()

// Invalidate calls f.
func (f NotifierFunc) Invalidate() { f() }
