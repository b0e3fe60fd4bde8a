package tree

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func TestValidate_Violations(t *testing.T) {
	build := func() *rbTree[uint64, uint64] {
		tree := newTestTree(false)
		for i := uint64(1); i <= 15; i++ {
			tree.Insert(i, i)
		}
		require.NoError(t, Validate[uint64, uint64](tree))
		return tree
	}

	testcases := []struct {
		name     string
		corrupt  func(tree *rbTree[uint64, uint64])
		expected error
	}{
		{
			name: "red root",
			corrupt: func(tree *rbTree[uint64, uint64]) {
				tree.root.color = Red
			},
			expected: ErrRBTreeRootViolation,
		},
		{
			name: "red parent and red child",
			corrupt: func(tree *rbTree[uint64, uint64]) {
				x := tree.root.maximum()
				x.color, x.parent.color = Red, Red
			},
			expected: ErrRBTreeRedViolation,
		},
		{
			name: "black depth",
			corrupt: func(tree *rbTree[uint64, uint64]) {
				x := tree.root.minimum()
				if x.color == Black {
					x.color = Red
				} else {
					x.color = Black
				}
			},
			expected: ErrRBTreeBlackViolation,
		},
		{
			name: "swapped keys",
			corrupt: func(tree *rbTree[uint64, uint64]) {
				x, y := tree.root.minimum(), tree.root.maximum()
				x.key, y.key = y.key, x.key
			},
			expected: ErrRBTreeOrderViolation,
		},
		{
			name: "broken parent link",
			corrupt: func(tree *rbTree[uint64, uint64]) {
				x := tree.root.minimum()
				x.parent = tree.root
			},
			expected: ErrRBTreeParentViolation,
		},
		{
			name: "size",
			corrupt: func(tree *rbTree[uint64, uint64]) {
				tree.count++
			},
			expected: ErrRBTreeSizeViolation,
		},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(tt *testing.T) {
			tree := build()
			tc.corrupt(tree)
			err := Validate[uint64, uint64](tree)
			require.Error(tt, err)
			require.Contains(tt, multierr.Errors(err), tc.expected)
		})
	}
}

func TestValidate_Empty(t *testing.T) {
	tree := newTestTree(false)
	require.NoError(t, Validate[uint64, uint64](tree))
	require.NoError(t, RedViolationValidate[uint64, uint64](tree))
	require.NoError(t, BlackViolationValidate[uint64, uint64](tree))

	tree.count = 3
	require.ErrorIs(t, RootViolationValidate[uint64, uint64](tree), ErrRBTreeRootViolation)
}
