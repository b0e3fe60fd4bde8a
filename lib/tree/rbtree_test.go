package tree

import (
	randv2 "math/rand/v2"
	"slices"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"

	"github.com/benz9527/xcoll/lib/infra"
)

type checkData struct {
	color RBColor
	key   uint64
}

func newTestTree(rmBySucc bool) *rbTree[uint64, uint64] {
	opts := make([]RBTreeOpt[uint64, uint64], 0, 1)
	if rmBySucc {
		opts = append(opts, WithRBTreeRemoveBorrowSucc[uint64, uint64]())
	}
	return NewRBTree[uint64, uint64](opts...).(*rbTree[uint64, uint64])
}

func requireColors(t *testing.T, tree RBTree[uint64, uint64], expected []checkData) {
	require.Equal(t, int64(len(expected)), tree.Len())
	tree.Foreach(func(idx int64, color RBColor, key uint64, val uint64) bool {
		require.Equal(t, expected[idx].color, color)
		require.Equal(t, expected[idx].key, key)
		return true
	})
	require.NoError(t, Validate(tree))
}

func TestNilNode(t *testing.T) {
	var nilNode RBNode[uint64, uint64] = nil
	require.True(t, nilNode == nil)

	var nilNode2 *rbNode[uint64, uint64] = nil
	nilNode = nilNode2
	require.True(t, nilNode != nil)
	require.Nil(t, nilNode)

	tree := newTestTree(false)
	require.True(t, tree.Root() == nil)
	require.True(t, tree.Min() == nil)
	require.True(t, tree.Max() == nil)
	tree.Insert(1, 1)
	require.True(t, tree.Root().Left() == nil)
	require.True(t, tree.Root().Parent() == nil)
}

func TestRbtreeLeftAndRightRotate_Pred(t *testing.T) {
	tree := newTestTree(false)

	_, ok := tree.Insert(52, 1)
	require.True(t, ok)
	requireColors(t, tree, []checkData{
		{Black, 52},
	})

	tree.Insert(47, 1)
	requireColors(t, tree, []checkData{
		{Red, 47}, {Black, 52},
	})

	tree.Insert(3, 1)
	requireColors(t, tree, []checkData{
		{Red, 3}, {Black, 47}, {Red, 52},
	})

	tree.Insert(35, 1)
	requireColors(t, tree, []checkData{
		{Black, 3}, {Red, 35}, {Black, 47}, {Black, 52},
	})

	tree.Insert(24, 1)
	requireColors(t, tree, []checkData{
		{Red, 3}, {Black, 24}, {Red, 35}, {Black, 47}, {Black, 52},
	})

	// remove

	x, err := tree.Remove(24)
	require.NoError(t, err)
	require.Equal(t, uint64(24), x.Key())
	requireColors(t, tree, []checkData{
		{Black, 3}, {Red, 35}, {Black, 47}, {Black, 52},
	})

	x, err = tree.Remove(47)
	require.NoError(t, err)
	require.Equal(t, uint64(47), x.Key())
	requireColors(t, tree, []checkData{
		{Black, 3}, {Black, 35}, {Black, 52},
	})

	x, err = tree.Remove(52)
	require.NoError(t, err)
	require.Equal(t, uint64(52), x.Key())
	requireColors(t, tree, []checkData{
		{Red, 3}, {Black, 35},
	})

	x, err = tree.Remove(3)
	require.NoError(t, err)
	require.Equal(t, uint64(3), x.Key())
	requireColors(t, tree, []checkData{
		{Black, 35},
	})

	x, err = tree.Remove(35)
	require.NoError(t, err)
	require.Equal(t, uint64(35), x.Key())
	require.Equal(t, int64(0), tree.Len())
	require.True(t, tree.Root() == nil)

	_, err = tree.Remove(35)
	require.ErrorIs(t, err, ErrRBTreeEmpty)
}

func TestRbtree_RemoveMin(t *testing.T) {
	tree := newTestTree(false)
	for _, key := range []uint64{52, 47, 3, 35, 24} {
		tree.Insert(key, 1)
	}
	requireColors(t, tree, []checkData{
		{Red, 3}, {Black, 24}, {Red, 35}, {Black, 47}, {Black, 52},
	})

	testcases := []struct {
		name     string
		key      uint64
		expected []checkData
	}{
		{"min 3", 3, []checkData{{Black, 24}, {Red, 35}, {Black, 47}, {Black, 52}}},
		{"min 24", 24, []checkData{{Black, 35}, {Black, 47}, {Black, 52}}},
		{"min 35", 35, []checkData{{Black, 47}, {Red, 52}}},
		{"min 47", 47, []checkData{{Black, 52}}},
		{"min 52", 52, []checkData{}},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(tt *testing.T) {
			x, err := tree.RemoveMin()
			require.NoError(tt, err)
			require.Equal(tt, tc.key, x.Key())
			requireColors(tt, tree, tc.expected)
		})
	}

	_, err := tree.RemoveMin()
	require.ErrorIs(t, err, ErrRBTreeEmpty)
	_, err = tree.RemoveMax()
	require.ErrorIs(t, err, ErrRBTreeEmpty)
}

func TestRbtree_RemoveMax(t *testing.T) {
	tree := newTestTree(false)
	for i := uint64(1); i <= 64; i++ {
		tree.Insert(i, i)
	}
	for i := uint64(64); i >= 1; i-- {
		x, err := tree.RemoveMax()
		require.NoError(t, err)
		require.Equal(t, i, x.Key())
		require.Equal(t, i, x.Val())
		require.NoError(t, Validate[uint64, uint64](tree))
	}
	require.True(t, tree.Empty())
}

func TestRbtree_InsertScenario(t *testing.T) {
	tree := newTestTree(false)
	for _, key := range []uint64{10, 20, 30} {
		tree.Insert(key, key)
	}
	requireColors(t, tree, []checkData{
		{Red, 10}, {Black, 20}, {Red, 30},
	})
	require.Equal(t, uint64(20), tree.Root().Key())

	// Red uncle, recolor and the root stays black.
	tree.Insert(5, 5)
	requireColors(t, tree, []checkData{
		{Red, 5}, {Black, 10}, {Black, 20}, {Black, 30},
	})

	it, ok := tree.Insert(10, 100)
	require.False(t, ok)
	require.Equal(t, uint64(10), it.Key())
	require.Equal(t, uint64(10), it.Val())
	require.Equal(t, int64(4), tree.Len())
}

func TestRbtree_EraseScenario(t *testing.T) {
	testcases := []struct {
		name     string
		rmBySucc bool
	}{
		{name: "rm by pred"},
		{name: "rm by succ", rmBySucc: true},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(tt *testing.T) {
			tree := newTestTree(tc.rmBySucc)
			for i := uint64(1); i <= 15; i++ {
				tree.Insert(i, i*10)
			}
			require.NoError(tt, Validate[uint64, uint64](tree))
			for i := uint64(1); i <= 5; i++ {
				require.True(tt, tree.Erase(i))
				require.False(tt, tree.Erase(i))
				require.Equal(tt, int64(15-i), tree.Len())
				require.NoError(tt, Validate[uint64, uint64](tree))
			}
			require.Equal(tt, lo.RangeFrom[uint64](6, 10), slices.Collect(tree.Keys()))
		})
	}
}

func TestRbtree_EraseRoot(t *testing.T) {
	tree := newTestTree(false)
	tree.Insert(42, 1)
	require.True(t, tree.Erase(42))
	require.True(t, tree.Empty())
	require.True(t, tree.Root() == nil)
	require.True(t, tree.Begin().Equal(tree.End()))
	require.False(t, tree.Begin().Valid())
	require.False(t, tree.Erase(42))
}

func TestRbtree_RemoveKeepsNodeIdentity(t *testing.T) {
	testcases := []struct {
		name     string
		rmBySucc bool
	}{
		{name: "rm by pred"},
		{name: "rm by succ", rmBySucc: true},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(tt *testing.T) {
			tree := newTestTree(tc.rmBySucc)
			for i := uint64(1); i <= 31; i++ {
				tree.Insert(i, i)
			}
			root := tree.root
			pred, succ := root.pred(), root.succ()
			predKey, succKey := pred.key, succ.key

			x, err := tree.Remove(root.key)
			require.NoError(tt, err)
			require.True(tt, x == RBNode[uint64, uint64](root))
			require.True(tt, x.Parent() == nil && x.Left() == nil && x.Right() == nil)
			// The borrowed node is relinked, not copied.
			require.Equal(tt, predKey, pred.key)
			require.Equal(tt, succKey, succ.key)
			node, ok := tree.Find(predKey)
			require.True(tt, ok)
			require.True(tt, node == RBNode[uint64, uint64](pred))
			node, ok = tree.Find(succKey)
			require.True(tt, ok)
			require.True(tt, node == RBNode[uint64, uint64](succ))
			require.NoError(tt, Validate[uint64, uint64](tree))
		})
	}
}

func TestRbtree_Lookup(t *testing.T) {
	tree := NewRBTree[int, string]()
	for i := 0; i < 10; i++ {
		tree.Insert(i*2, string(rune('a'+i)))
	}

	node, ok := tree.Find(4)
	require.True(t, ok)
	require.Equal(t, "c", node.Val())
	_, ok = tree.Find(5)
	require.False(t, ok)

	val, ok := tree.Get(18)
	require.True(t, ok)
	require.Equal(t, "j", val)
	val, ok = tree.Get(19)
	require.False(t, ok)
	require.Equal(t, "", val)

	val, err := tree.At(0)
	require.NoError(t, err)
	require.Equal(t, "a", val)
	_, err = tree.At(-1)
	require.ErrorIs(t, err, ErrRBTreeKeyNotFound)
	require.Equal(t, int64(10), tree.Len())

	require.Equal(t, 0, tree.Min().Key())
	require.Equal(t, 18, tree.Max().Key())

	x := tree.Search(tree.Root(), func(node RBNode[int, string]) int64 {
		return infra.Compare(12, node.Key())
	})
	require.Equal(t, "g", x.Val())
	require.Nil(t, tree.Search(nil, func(RBNode[int, string]) int64 { return 0 }))
	require.True(t, tree.Search(tree.Root(), func(node RBNode[int, string]) int64 {
		return infra.Compare(13, node.Key())
	}) == nil)
}

func TestRbtree_UpsertAndEntry(t *testing.T) {
	tree := NewRBTree[string, int]()
	require.True(t, tree.Upsert("a", 1))
	require.False(t, tree.Upsert("a", 2))
	val, _ := tree.Get("a")
	require.Equal(t, 2, val)

	ref := tree.Entry("b")
	require.Equal(t, 0, *ref)
	*ref += 10
	*tree.Entry("b") += 5
	val, _ = tree.Get("b")
	require.Equal(t, 15, val)
	require.Equal(t, int64(2), tree.Len())

	words := []string{"x", "y", "x", "z", "x", "y"}
	counter := NewRBTree[string, int]()
	for _, w := range words {
		*counter.Entry(w)++
	}
	got := make(map[string]int)
	for k, v := range counter.All() {
		got[k] = v
	}
	require.Equal(t, map[string]int{"x": 3, "y": 2, "z": 1}, got)
}

func TestRbtree_Desc(t *testing.T) {
	tree := NewRBTree[int64, struct{}](WithRBTreeDesc[int64, struct{}]())
	for _, key := range lo.Shuffle(lo.Range(100)) {
		tree.Insert(int64(key), struct{}{})
	}
	require.NoError(t, Validate(tree))
	keys := slices.Collect(tree.Keys())
	require.True(t, slices.IsSortedFunc(keys, func(a, b int64) int {
		return int(b - a)
	}))
	require.Equal(t, int64(99), tree.Min().Key())
	require.Equal(t, int64(0), tree.Max().Key())
}

func TestRbtree_InjectedComparator(t *testing.T) {
	byLen := func(i, j string) int64 {
		return int64(len(i) - len(j))
	}
	tree := NewRBTreeFunc[string, int](byLen)
	tree.Insert("ccc", 3)
	tree.Insert("a", 1)
	tree.Insert("bb", 2)
	_, ok := tree.Insert("zz", 20)
	require.False(t, ok)
	require.Equal(t, []string{"a", "bb", "ccc"}, slices.Collect(tree.Keys()))

	rev := NewRBTreeFunc[string, int](infra.Reverse(byLen))
	rev.Insert("a", 1)
	rev.Insert("ccc", 3)
	require.Equal(t, []string{"ccc", "a"}, slices.Collect(rev.Keys()))

	require.Panics(t, func() {
		NewRBTreeFunc[string, int](nil)
	})
}

func TestRbtree_CloneMoveClear(t *testing.T) {
	tree := newTestTree(true)
	for _, key := range lo.Shuffle(lo.RangeFrom[uint64](1, 200)) {
		tree.Insert(key, key*2)
	}
	snapshot := make([]checkData, 0, tree.Len())
	tree.Foreach(func(idx int64, color RBColor, key uint64, val uint64) bool {
		snapshot = append(snapshot, checkData{color, key})
		return true
	})

	clone := tree.Clone()
	requireColors(t, clone, snapshot)
	require.True(t, clone.Erase(100))
	require.Equal(t, int64(199), clone.Len())
	requireColors(t, tree, snapshot)
	cloneTree := clone.(*rbTree[uint64, uint64])
	require.True(t, cloneTree.isRmBorrowSucc)

	moved := tree.Move()
	require.True(t, tree.Empty())
	require.True(t, tree.Root() == nil)
	requireColors(t, moved, snapshot)

	// The emptied source is reusable.
	tree.Insert(1, 1)
	requireColors(t, tree, []checkData{{Black, 1}})

	moved.Clear()
	require.True(t, moved.Empty())
	require.True(t, moved.Root() == nil)
	require.Equal(t, 0, len(slices.Collect(moved.Keys())))
	moved.Clear()
	moved.Insert(7, 7)
	require.NoError(t, Validate(moved))
}

func TestRbtree_Foreach(t *testing.T) {
	tree := newTestTree(false)
	for i := uint64(0); i < 50; i++ {
		tree.Insert(i, i)
	}
	visited := int64(0)
	tree.Foreach(func(idx int64, color RBColor, key uint64, val uint64) bool {
		require.Equal(t, uint64(idx), key)
		visited++
		return idx < 9
	})
	require.Equal(t, int64(10), visited)
}

func TestRbtree_Debug(t *testing.T) {
	tree := NewRBTree[uint64, uint64](WithRBTreeDebug[uint64, uint64](nil)).(*rbTree[uint64, uint64])
	for i := uint64(0); i < 32; i++ {
		tree.Insert(i, i)
	}
	require.True(t, tree.Erase(7))

	// A mutation is marked in progress by another caller.
	tree.debug.enter("insert")
	require.Panics(t, func() {
		tree.Upsert(100, 100)
	})
	it := tree.Begin()
	require.Panics(t, func() {
		it.Next()
	})
	tree.debug.exit()
	require.True(t, it.Next())

	// The lookup of the removal is guarded as well, an absent key included.
	tree.debug.enter("insert")
	testcases := []struct {
		name string
		fn   func()
	}{
		{"erase absent", func() { tree.Erase(1000) }},
		{"erase present", func() { tree.Erase(9) }},
		{"remove absent", func() { _, _ = tree.Remove(1000) }},
		{"remove min", func() { _, _ = tree.RemoveMin() }},
		{"remove max", func() { _, _ = tree.RemoveMax() }},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(tt *testing.T) {
			require.PanicsWithError(tt, "[rbtree] concurrent mutation detected", tc.fn)
		})
	}
	tree.debug.exit()
	require.Equal(t, int64(31), tree.Len())
	require.NoError(t, Validate[uint64, uint64](tree))

	// Corrupt the size, the next mutation detects it.
	tree.count += 5
	require.PanicsWithError(t, ErrRBTreeSizeViolation.Error(), func() {
		tree.Erase(8)
	})
}

func rbtreeRandomInsertAndRemoveRunCore(t *testing.T, total int, rmBySucc bool, violationCheck bool) {
	insertTotal := int(float64(total) * 0.8)

	keys := lo.Shuffle(lo.Map(lo.Range(total), func(_ int, _ int) uint64 {
		return randv2.Uint64()
	}))
	keys = lo.Uniq(keys)
	insertElements, removeElements := keys[:insertTotal], keys[insertTotal:]

	tree := newTestTree(rmBySucc)
	for i, key := range insertElements {
		_, ok := tree.Insert(key, uint64(i))
		require.True(t, ok)
		if violationCheck {
			require.NoError(t, Validate[uint64, uint64](tree))
		}
	}
	for _, key := range removeElements {
		tree.Insert(key, 1)
	}
	require.NoError(t, Validate[uint64, uint64](tree))

	for _, key := range removeElements {
		x, err := tree.Remove(key)
		require.NoError(t, err)
		require.Equalf(t, key, x.Key(), "value exp: %d, real: %d\n", key, x.Key())
		if violationCheck {
			require.NoError(t, Validate[uint64, uint64](tree))
		}
	}

	slices.Sort(insertElements)
	require.Equal(t, insertElements, slices.Collect(tree.Keys()))
}

func TestRbtreeRandomInsertAndRemove(t *testing.T) {
	testcases := []struct {
		name           string
		rmBySucc       bool
		total          int
		violationCheck bool
	}{
		{
			name:  "rm by pred 200000",
			total: 200000,
		},
		{
			name:     "rm by succ 200000",
			rmBySucc: true,
			total:    200000,
		},
		{
			name:           "violation check rm by pred 2000",
			total:          2000,
			violationCheck: true,
		},
		{
			name:           "violation check rm by succ 2000",
			rmBySucc:       true,
			total:          2000,
			violationCheck: true,
		},
	}
	t.Parallel()
	for _, tc := range testcases {
		t.Run(tc.name, func(tt *testing.T) {
			rbtreeRandomInsertAndRemoveRunCore(tt, tc.total, tc.rmBySucc, tc.violationCheck)
		})
	}
}

func TestRbtreeReverseSequentialNumber(t *testing.T) {
	total := int64(10000)
	insertTotal := int64(float64(total) * 0.8)

	tree := NewRBTree[int64, uint64](WithRBTreeDesc[int64, uint64]())
	for i := total - 1; i >= 0; i-- {
		tree.Insert(i, 1)
	}
	for i := insertTotal; i < total; i++ {
		if i == insertTotal+92 {
			x := tree.Search(tree.Root(), func(x RBNode[int64, uint64]) int64 {
				if i == x.Key() {
					return 0
				} else if i < x.Key() {
					return 1
				}
				return -1
			})
			require.Equal(t, i, x.Key())
		}
		x, err := tree.Remove(i)
		require.NoError(t, err)
		require.Equal(t, i, x.Key())
	}
	require.NoError(t, Validate(tree))
	tree.Foreach(func(idx int64, color RBColor, key int64, val uint64) bool {
		require.Equal(t, insertTotal-1-idx, key)
		return true
	})
}

func BenchmarkRBTree_Random(b *testing.B) {
	testByBytes := []byte(`abc`)

	b.StopTimer()
	tree := NewRBTree[int, []byte]()

	rngArr := make([]int, 0, b.N)
	for i := 0; i < b.N; i++ {
		rngArr = append(rngArr, randv2.Int())
	}

	b.StartTimer()
	for i := 0; i < b.N; i++ {
		tree.Insert(rngArr[i], testByBytes)
	}
}

func BenchmarkRBTree_Serial(b *testing.B) {
	testByBytes := []byte(`abc`)

	b.StopTimer()
	tree := NewRBTree[int, []byte]()

	b.StartTimer()
	for i := 0; i < b.N; i++ {
		tree.Insert(i, testByBytes)
	}
}
