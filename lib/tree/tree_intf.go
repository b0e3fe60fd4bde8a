package tree

import "iter"

// go install golang.org/x/tools/cmd/stringer@latest

//go:generate stringer -type=RBColor
type RBColor uint8

const (
	Black RBColor = iota
	Red
)

//go:generate stringer -type=RBDirection
type RBDirection int8

const (
	Left RBDirection = -1 + iota
	Root
	Right
)

type RBTreeErr string

const (
	ErrRBTreeEmpty           RBTreeErr = "[rbtree] empty element to remove"
	ErrRBTreeKeyNotFound     RBTreeErr = "[rbtree] key not found"
	ErrRBTreeRootViolation   RBTreeErr = "[rbtree] root violation"
	ErrRBTreeRedViolation    RBTreeErr = "[rbtree] red violation"
	ErrRBTreeBlackViolation  RBTreeErr = "[rbtree] black violation"
	ErrRBTreeOrderViolation  RBTreeErr = "[rbtree] order violation"
	ErrRBTreeParentViolation RBTreeErr = "[rbtree] parent link violation"
	ErrRBTreeSizeViolation   RBTreeErr = "[rbtree] size violation"
)

func (err RBTreeErr) Error() string {
	return string(err)
}

type RBNode[K any, V any] interface {
	Key() K
	Val() V
	Color() RBColor
	Left() RBNode[K, V]
	Right() RBNode[K, V]
	Parent() RBNode[K, V]
}

// RBTree is an ordered map with unique keys.
// It is not thread safe, callers must serialize the mutations
// and must not iterate while another goroutine mutates.
type RBTree[K any, V any] interface {
	Len() int64
	Empty() bool
	Root() RBNode[K, V]
	Min() RBNode[K, V]
	Max() RBNode[K, V]

	// Find returns the node holding key, without side effects.
	Find(key K) (RBNode[K, V], bool)
	Get(key K) (V, bool)
	// At is the bounds-checked lookup, it returns ErrRBTreeKeyNotFound
	// if the key is absent.
	At(key K) (V, error)
	Search(x RBNode[K, V], fn func(RBNode[K, V]) int64) RBNode[K, V]

	// Insert never overwrites. If the key exists, it returns the iterator
	// on the existing node and false.
	Insert(key K, val V) (*RBIterator[K, V], bool)
	// Upsert overwrites the value of an existing key or inserts a new one.
	// It reports whether a new node was created.
	Upsert(key K, val V) bool
	// Entry returns the reference of the value of key. The zero value is
	// inserted first if the key is absent.
	Entry(key K) *V

	Erase(key K) bool
	// Remove detaches the node of key from the tree and returns it.
	// Other nodes keep their identity, so the iterators on them are
	// still valid after the removal.
	Remove(key K) (RBNode[K, V], error)
	RemoveMin() (RBNode[K, V], error)
	RemoveMax() (RBNode[K, V], error)
	// RemoveIter removes the node under the iterator and returns
	// the iterator of its successor.
	RemoveIter(it *RBIterator[K, V]) *RBIterator[K, V]

	Begin() *RBIterator[K, V]
	Last() *RBIterator[K, V]
	End() *RBIterator[K, V]
	Seek(key K) *RBIterator[K, V]
	SeekGE(key K) *RBIterator[K, V]
	All() iter.Seq2[K, V]
	Backward() iter.Seq2[K, V]
	Keys() iter.Seq[K]
	Foreach(action func(idx int64, color RBColor, key K, val V) bool)

	// Clone deep copies every node, colors included.
	Clone() RBTree[K, V]
	// Move transfers all nodes into a new tree and leaves
	// the current one empty.
	Move() RBTree[K, V]
	Clear()
}
