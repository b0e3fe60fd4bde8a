package tree

import (
	"go.uber.org/multierr"
)

func isBlack[K any, V any](node RBNode[K, V]) bool {
	return node == nil || node.Color() == Black
}

func isRed[K any, V any](node RBNode[K, V]) bool {
	return node != nil && node.Color() == Red
}

func isRoot[K any, V any](node RBNode[K, V]) bool {
	return node != nil && node.Parent() == nil
}

func blackDepthTo[K any, V any](target, to RBNode[K, V]) int {
	depth := 0
	for aux := target; aux != to; aux = aux.Parent() {
		if isBlack[K, V](aux) {
			depth++
		}
	}
	return depth
}

// inorder visits the nodes without recursion and stops at the first error.
func inorder[K any, V any](tree RBTree[K, V], fn func(RBNode[K, V]) error) error {
	size := tree.Len()
	aux := tree.Root()
	if size <= 0 || aux == nil {
		return nil
	}

	stack := make([]RBNode[K, V], 0, size>>1)
	defer func() {
		clear(stack)
	}()

	for ; aux != nil; aux = aux.Left() {
		stack = append(stack, aux)
	}

	for size = int64(len(stack)); size > 0; size = int64(len(stack)) {
		aux = stack[size-1]
		if err := fn(aux); err != nil {
			return err
		}
		stack = stack[:size-1]
		for aux = aux.Right(); aux != nil; aux = aux.Left() {
			stack = append(stack, aux)
		}
	}
	return nil
}

// rbtree rule validation utilities.

// References:
// https://github1s.com/minghu6/rust-minghu6/blob/master/coll_st/src/bst/rb.rs

func RootViolationValidate[K any, V any](tree RBTree[K, V]) error {
	root := tree.Root()
	if root == nil {
		if tree.Len() != 0 {
			return ErrRBTreeRootViolation
		}
		return nil
	}
	if tree.Len() <= 0 || !isRoot[K, V](root) || isRed[K, V](root) {
		return ErrRBTreeRootViolation
	}
	return nil
}

// Inorder traversal to validate the rbtree properties.
func RedViolationValidate[K any, V any](tree RBTree[K, V]) error {
	return inorder[K, V](tree, func(aux RBNode[K, V]) error {
		if isRed[K, V](aux) && (isRed[K, V](aux.Left()) || isRed[K, V](aux.Right())) {
			return ErrRBTreeRedViolation
		}
		return nil
	})
}

// BFS traversal to load all nodes that own at least one nil leaf.
func bfsLeaves[K any, V any](tree RBTree[K, V]) []RBNode[K, V] {
	size := tree.Len()
	aux := tree.Root()
	if size <= 0 || aux == nil {
		return nil
	}

	leaves := make([]RBNode[K, V], 0, size>>1+1)
	queue := make([]RBNode[K, V], 0, size>>1+1)
	defer func() {
		clear(queue)
	}()
	queue = append(queue, aux)

	for len(queue) > 0 {
		aux = queue[0]
		l, r := aux.Left(), aux.Right()
		if /* nil leaves, keep one */ l == nil || r == nil {
			leaves = append(leaves, aux)
		}
		if l != nil {
			queue = append(queue, l)
		}
		if r != nil {
			queue = append(queue, r)
		}
		queue = queue[1:]
	}
	return leaves
}

/*
<X> is a RED node.
[X] is a BLACK node (or NIL).

	        [13]
			/  \
		 <8>    [15]
		 / \    /  \
	  [6] [11] [14] [17]
	  /              /
	<1>            [16]

2-3-4 tree like:

	       <8> --- [13] --- <15>
		  /  \             /    \
		 /    \           /      \
	  <1>-[6][11]      [14] <16>-[17]

Each leaf node to root node black depth are equal.
*/
func BlackViolationValidate[K any, V any](tree RBTree[K, V]) error {
	leaves := bfsLeaves[K, V](tree)
	if leaves == nil {
		return nil
	}

	blackDepth := blackDepthTo[K, V](leaves[0], tree.Root())
	for i := 1; i < len(leaves); i++ {
		if blackDepthTo[K, V](leaves[i], tree.Root()) != blackDepth {
			return ErrRBTreeBlackViolation
		}
	}
	return nil
}

type keyComparer[K any] interface {
	keyCompare(k1, k2 K) int64
}

// OrderViolationValidate checks the inorder keys are strictly increasing
// under the tree comparator.
func OrderViolationValidate[K any, V any](tree RBTree[K, V]) error {
	c, ok := tree.(keyComparer[K])
	if !ok {
		return nil
	}
	var prev RBNode[K, V]
	return inorder[K, V](tree, func(aux RBNode[K, V]) error {
		if prev != nil && c.keyCompare(prev.Key(), aux.Key()) >= 0 {
			return ErrRBTreeOrderViolation
		}
		prev = aux
		return nil
	})
}

func ParentViolationValidate[K any, V any](tree RBTree[K, V]) error {
	if root := tree.Root(); root != nil && root.Parent() != nil {
		return ErrRBTreeParentViolation
	}
	return inorder[K, V](tree, func(aux RBNode[K, V]) error {
		if l := aux.Left(); l != nil && l.Parent() != aux {
			return ErrRBTreeParentViolation
		}
		if r := aux.Right(); r != nil && r.Parent() != aux {
			return ErrRBTreeParentViolation
		}
		return nil
	})
}

func SizeViolationValidate[K any, V any](tree RBTree[K, V]) error {
	count := int64(0)
	_ = inorder[K, V](tree, func(RBNode[K, V]) error {
		count++
		return nil
	})
	if count != tree.Len() {
		return ErrRBTreeSizeViolation
	}
	return nil
}

// Validate runs all the validators and combines their errors.
func Validate[K any, V any](tree RBTree[K, V]) error {
	return multierr.Combine(
		RootViolationValidate[K, V](tree),
		RedViolationValidate[K, V](tree),
		BlackViolationValidate[K, V](tree),
		OrderViolationValidate[K, V](tree),
		ParentViolationValidate[K, V](tree),
		SizeViolationValidate[K, V](tree),
	)
}

func (tree *rbTree[K, V]) validate() error {
	return Validate[K, V](tree)
}
