package vector

import (
	"slices"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

func TestVector_Options(t *testing.T) {
	testcases := []struct {
		name     string
		opts     []VectorOpt[int]
		size     int
		cap      int
		expected []int
	}{
		{"default", nil, 0, 0, []int{}},
		{"capacity", []VectorOpt[int]{WithVectorCapacity[int](8)}, 0, 8, []int{}},
		{"size", []VectorOpt[int]{WithVectorSize[int](3)}, 3, 3, []int{0, 0, 0}},
		{"fill", []VectorOpt[int]{WithVectorFill(2, 7)}, 2, 2, []int{7, 7}},
		{
			"capacity then fill",
			[]VectorOpt[int]{WithVectorCapacity[int](10), WithVectorFill(4, 1)},
			4, 10, []int{1, 1, 1, 1},
		},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(tt *testing.T) {
			vec := NewVector[int](tc.opts...)
			require.Equal(tt, tc.size, vec.Len())
			require.Equal(tt, tc.cap, vec.Cap())
			require.Equal(tt, tc.expected, vec.Values())
			require.Equal(tt, tc.size == 0, vec.Empty())
		})
	}
}

func TestVector_PushBackGrowth(t *testing.T) {
	vec := NewVector[int]()
	caps := make([]int, 0, 8)
	for i := 0; i < 17; i++ {
		vec.PushBack(i)
		if len(caps) == 0 || caps[len(caps)-1] != vec.Cap() {
			caps = append(caps, vec.Cap())
		}
	}
	require.Equal(t, []int{1, 2, 4, 8, 16, 32}, caps)
	require.Equal(t, lo.Range(17), vec.Values())

	// Bulk push reserves at least the requested size.
	vec = NewVector[int]()
	vec.PushBack(lo.Range(5)...)
	require.Equal(t, 5, vec.Cap())
	vec.PushBack()
	require.Equal(t, 5, vec.Len())
}

func TestVector_Access(t *testing.T) {
	vec := NewVector[string]()
	_, err := vec.Front()
	require.ErrorIs(t, err, ErrVectorEmpty)
	_, err = vec.Back()
	require.ErrorIs(t, err, ErrVectorEmpty)
	_, err = vec.At(0)
	require.ErrorIs(t, err, ErrVectorOutOfRange)

	vec.PushBack("a", "b", "c")
	v, err := vec.At(1)
	require.NoError(t, err)
	require.Equal(t, "b", v)
	_, err = vec.At(3)
	require.ErrorIs(t, err, ErrVectorOutOfRange)
	_, err = vec.At(-1)
	require.ErrorIs(t, err, ErrVectorOutOfRange)

	front, _ := vec.Front()
	back, _ := vec.Back()
	require.Equal(t, "a", front)
	require.Equal(t, "c", back)

	vec.Set(0, "z")
	*vec.Ref(2) = "y"
	require.Equal(t, "z", vec.Get(0))
	require.Equal(t, []string{"z", "b", "y"}, vec.Values())

	require.PanicsWithError(t, ErrVectorOutOfRange.Error(), func() {
		vec.Get(3)
	})
	require.Panics(t, func() {
		vec.Set(-1, "x")
	})
	require.Panics(t, func() {
		vec.Ref(10)
	})
}

func TestVector_PopBack(t *testing.T) {
	vec := NewVector[*int]()
	one, two := 1, 2
	vec.PushBack(&one, &two)
	v, err := vec.PopBack()
	require.NoError(t, err)
	require.Equal(t, &two, v)
	require.Equal(t, 1, vec.Len())
	require.Equal(t, 2, vec.Cap())

	v, err = vec.PopBack()
	require.NoError(t, err)
	require.Equal(t, &one, v)
	_, err = vec.PopBack()
	require.ErrorIs(t, err, ErrVectorEmpty)
}

func TestVector_InsertErase(t *testing.T) {
	testcases := []struct {
		name     string
		op       func(vec Vector[int]) error
		err      error
		expected []int
	}{
		{"insert front", func(vec Vector[int]) error { return vec.Insert(0, 9) }, nil, []int{9, 0, 1, 2, 3, 4}},
		{"insert middle", func(vec Vector[int]) error { return vec.Insert(2, 7, 8) }, nil, []int{0, 1, 7, 8, 2, 3, 4}},
		{"insert end", func(vec Vector[int]) error { return vec.Insert(5, 5) }, nil, []int{0, 1, 2, 3, 4, 5}},
		{"insert nothing", func(vec Vector[int]) error { return vec.Insert(1) }, nil, []int{0, 1, 2, 3, 4}},
		{"insert out of range", func(vec Vector[int]) error { return vec.Insert(6, 1) }, ErrVectorOutOfRange, []int{0, 1, 2, 3, 4}},
		{"erase front", func(vec Vector[int]) error { return vec.Erase(0) }, nil, []int{1, 2, 3, 4}},
		{"erase back", func(vec Vector[int]) error { return vec.Erase(4) }, nil, []int{0, 1, 2, 3}},
		{"erase out of range", func(vec Vector[int]) error { return vec.Erase(5) }, ErrVectorOutOfRange, []int{0, 1, 2, 3, 4}},
		{"erase range", func(vec Vector[int]) error { return vec.EraseRange(1, 4) }, nil, []int{0, 4}},
		{"erase empty range", func(vec Vector[int]) error { return vec.EraseRange(2, 2) }, nil, []int{0, 1, 2, 3, 4}},
		{"erase all", func(vec Vector[int]) error { return vec.EraseRange(0, 5) }, nil, []int{}},
		{"erase reversed range", func(vec Vector[int]) error { return vec.EraseRange(3, 1) }, ErrVectorOutOfRange, []int{0, 1, 2, 3, 4}},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(tt *testing.T) {
			vec := NewVector[int]()
			vec.PushBack(lo.Range(5)...)
			err := tc.op(vec)
			if tc.err != nil {
				require.ErrorIs(tt, err, tc.err)
			} else {
				require.NoError(tt, err)
			}
			require.Equal(tt, tc.expected, vec.Values())
		})
	}
}

func TestVector_Capacity(t *testing.T) {
	vec := NewVector[int]()
	vec.Reserve(10)
	require.Equal(t, 10, vec.Cap())
	vec.Reserve(4)
	require.Equal(t, 10, vec.Cap())

	vec.PushBack(1, 2, 3)
	vec.Resize(5)
	require.Equal(t, []int{1, 2, 3, 0, 0}, vec.Values())
	vec.Resize(2)
	require.Equal(t, []int{1, 2}, vec.Values())
	// The dropped slots are zeroed.
	vec.Resize(4)
	require.Equal(t, []int{1, 2, 0, 0}, vec.Values())
	vec.Resize(-1)
	require.True(t, vec.Empty())

	vec.PushBack(4, 5)
	vec.ShrinkToFit()
	require.Equal(t, 2, vec.Cap())
	vec.Clear()
	require.Equal(t, 0, vec.Len())
	require.Equal(t, 2, vec.Cap())
	vec.ShrinkToFit()
	require.Equal(t, 0, vec.Cap())
	vec.PushBack(6)
	require.Equal(t, []int{6}, vec.Values())
}

func TestVector_CloneMove(t *testing.T) {
	vec := NewVector[int](WithVectorCapacity[int](8))
	vec.PushBack(1, 2, 3)

	clone := vec.Clone()
	clone.Set(0, 100)
	require.Equal(t, []int{1, 2, 3}, vec.Values())
	require.Equal(t, []int{100, 2, 3}, clone.Values())
	require.Equal(t, vec.Cap(), clone.Cap())

	moved := vec.Move()
	require.True(t, vec.Empty())
	require.Equal(t, 0, vec.Cap())
	require.Equal(t, []int{1, 2, 3}, moved.Values())
	vec.PushBack(9)
	require.Equal(t, []int{9}, vec.Values())
	require.Equal(t, []int{1, 2, 3}, moved.Values())
}

func TestVector_Iterate(t *testing.T) {
	vec := NewVector[int]()
	vec.PushBack(lo.Range(6)...)

	forward := make([]int, 0, 6)
	for i, v := range vec.All() {
		require.Equal(t, i, v)
		forward = append(forward, v)
	}
	require.Equal(t, lo.Range(6), forward)

	backward := make([]int, 0, 6)
	for _, v := range vec.Backward() {
		if v == 1 {
			break
		}
		backward = append(backward, v)
	}
	require.Equal(t, []int{5, 4, 3, 2}, backward)

	values := vec.Values()
	values[0] = 42
	require.Equal(t, 0, vec.Get(0))
	require.True(t, slices.Equal(lo.Range(6), vec.Values()))
}

func BenchmarkVector_PushBack(b *testing.B) {
	vec := NewVector[int]()
	for i := 0; i < b.N; i++ {
		vec.PushBack(i)
	}
}
