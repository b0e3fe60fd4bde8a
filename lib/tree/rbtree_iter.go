package tree

import "iter"

// RBIterator is a bidirectional cursor on the tree nodes.
// The end position has a nil current node.
// Each step is derived from the live links, so the iterator survives
// the rotations and the removals of other nodes. Removing the node
// under the iterator invalidates it, use RemoveIter instead.
type RBIterator[K any, V any] struct {
	tree    *rbTree[K, V]
	current *rbNode[K, V]
}

func newRBIterator[K any, V any](tree *rbTree[K, V], node *rbNode[K, V]) *RBIterator[K, V] {
	return &RBIterator[K, V]{
		tree:    tree,
		current: node,
	}
}

func (it *RBIterator[K, V]) Valid() bool {
	return it != nil && it.current != nil
}

/*
Next moves to the succ node.

(1) Current node X has right subtree, the succ is the leftmost node
of the right subtree.

	  X
	   \
	    R
	   /
	 Rl  <- succ

(2) Otherwise climb up while X is a right child, the first parent
reached from its left side is the succ. Climbing out of the root
reaches the end.

	     P  <- succ
	    /
	   A
	    \
	     X
*/
func (it *RBIterator[K, V]) Next() bool {
	if !it.Valid() {
		return false
	}
	it.tree.debug.checkIdle("iterator next")

	x := it.current
	if /* (1) */ x.right != nil {
		it.current = x.right.minimum()
		return true
	}
	/* (2) */
	p := x.parent
	for p != nil && x == p.right {
		x, p = p, p.parent
	}
	it.current = p
	return it.current != nil
}

// Prev moves to the pred node. Prev on the end moves to the last node.
// Prev on the first node moves to the end.
func (it *RBIterator[K, V]) Prev() bool {
	if it == nil || it.tree == nil {
		return false
	}
	it.tree.debug.checkIdle("iterator prev")

	if it.current == nil {
		if it.tree.root == nil {
			return false
		}
		it.current = it.tree.root.maximum()
		return true
	}
	it.current = it.current.pred()
	return it.current != nil
}

func (it *RBIterator[K, V]) Key() K {
	if !it.Valid() {
		panic("[rbtree] dereference the end iterator")
	}
	return it.current.key
}

func (it *RBIterator[K, V]) Val() V {
	if !it.Valid() {
		panic("[rbtree] dereference the end iterator")
	}
	return it.current.val
}

// ValRef is the reference of the value, it can be updated in place.
func (it *RBIterator[K, V]) ValRef() *V {
	if !it.Valid() {
		panic("[rbtree] dereference the end iterator")
	}
	return &it.current.val
}

func (it *RBIterator[K, V]) Node() RBNode[K, V] {
	if !it.Valid() {
		return nil
	}
	return it.current
}

// Equal reports whether both iterators are on the same position
// of the same tree.
func (it *RBIterator[K, V]) Equal(other *RBIterator[K, V]) bool {
	if it == nil || other == nil {
		return it == other
	}
	return it.tree == other.tree && it.current == other.current
}

func (tree *rbTree[K, V]) Begin() *RBIterator[K, V] {
	var node *rbNode[K, V]
	if tree.root != nil {
		node = tree.root.minimum()
	}
	return newRBIterator(tree, node)
}

func (tree *rbTree[K, V]) Last() *RBIterator[K, V] {
	var node *rbNode[K, V]
	if tree.root != nil {
		node = tree.root.maximum()
	}
	return newRBIterator(tree, node)
}

func (tree *rbTree[K, V]) End() *RBIterator[K, V] {
	return newRBIterator[K, V](tree, nil)
}

// Seek returns the iterator on key or the end iterator.
func (tree *rbTree[K, V]) Seek(key K) *RBIterator[K, V] {
	return newRBIterator(tree, tree.find(key))
}

// SeekGE returns the iterator on the first key not less than key.
func (tree *rbTree[K, V]) SeekGE(key K) *RBIterator[K, V] {
	return newRBIterator(tree, tree.lowerBound(key))
}

func (tree *rbTree[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for it := tree.Begin(); it.Valid(); it.Next() {
			if !yield(it.current.key, it.current.val) {
				return
			}
		}
	}
}

func (tree *rbTree[K, V]) Backward() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for it := tree.Last(); it.Valid(); it.Prev() {
			if !yield(it.current.key, it.current.val) {
				return
			}
		}
	}
}

func (tree *rbTree[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for it := tree.Begin(); it.Valid(); it.Next() {
			if !yield(it.current.key) {
				return
			}
		}
	}
}
