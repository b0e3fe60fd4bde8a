package vector

import (
	"iter"
)

// Note that the vector is not thread safe.

type VectorErr string

const (
	ErrVectorOutOfRange VectorErr = "[vector] index out of range"
	ErrVectorEmpty      VectorErr = "[vector] empty"
)

func (err VectorErr) Error() string {
	return string(err)
}

// Vector is a dynamic array. The elements are kept contiguous
// in a backing array whose capacity grows by doubling.
type Vector[T any] interface {
	Len() int
	Cap() int
	Empty() bool
	// At is the bounds-checked access.
	At(i int) (T, error)
	// Get, Set and Ref panic if i is out of range, like the slice indexing.
	Get(i int) T
	Set(i int, v T)
	Ref(i int) *T
	Front() (T, error)
	Back() (T, error)
	PushBack(values ...T)
	PopBack() (T, error)
	// Insert inserts the values before pos, pos in [0, Len()].
	Insert(pos int, values ...T) error
	Erase(pos int) error
	// EraseRange erases the elements in [first, last).
	EraseRange(first, last int) error
	// Reserve grows the capacity to at least n, it never shrinks.
	Reserve(n int)
	// Resize changes the size to n, new elements are zero values.
	Resize(n int)
	ShrinkToFit()
	// Clear drops all elements and keeps the capacity.
	Clear()
	Clone() Vector[T]
	Move() Vector[T]
	All() iter.Seq2[int, T]
	Backward() iter.Seq2[int, T]
	// Values returns a copy of the elements.
	Values() []T
}

var _ Vector[struct{}] = (*vector[struct{}])(nil) // Type check assertion

type vector[T any] struct {
	// len(data) is the capacity.
	data []T
	size int
}

type VectorOpt[T any] func(*vector[T])

func WithVectorCapacity[T any](n int) VectorOpt[T] {
	return func(vec *vector[T]) {
		vec.reserve(n)
	}
}

func WithVectorSize[T any](n int) VectorOpt[T] {
	return func(vec *vector[T]) {
		vec.resize(n)
	}
}

func WithVectorFill[T any](n int, v T) VectorOpt[T] {
	return func(vec *vector[T]) {
		vec.resize(n)
		for i := 0; i < n; i++ {
			vec.data[i] = v
		}
	}
}

func NewVector[T any](opts ...VectorOpt[T]) Vector[T] {
	vec := &vector[T]{}
	for _, o := range opts {
		o(vec)
	}
	return vec
}

func (vec *vector[T]) checkIndex(i int) {
	if i < 0 || i >= vec.size {
		panic(ErrVectorOutOfRange)
	}
}

// grow reallocates the backing array, the capacity is doubled
// but at least n.
func (vec *vector[T]) grow(n int) {
	if n <= len(vec.data) {
		return
	}
	newCap := max(len(vec.data)<<1, 1)
	if newCap < n {
		newCap = n
	}
	data := make([]T, newCap)
	copy(data, vec.data[:vec.size])
	vec.data = data
}

func (vec *vector[T]) reserve(n int) {
	if n <= len(vec.data) {
		return
	}
	data := make([]T, n)
	copy(data, vec.data[:vec.size])
	vec.data = data
}

func (vec *vector[T]) resize(n int) {
	if n < 0 {
		n = 0
	}
	if n > len(vec.data) {
		vec.grow(n)
	}
	if n < vec.size {
		// avoid memory leaks
		clear(vec.data[n:vec.size])
	}
	vec.size = n
}

func (vec *vector[T]) Len() int {
	return vec.size
}

func (vec *vector[T]) Cap() int {
	return len(vec.data)
}

func (vec *vector[T]) Empty() bool {
	return vec.size == 0
}

func (vec *vector[T]) At(i int) (T, error) {
	if i < 0 || i >= vec.size {
		var zero T
		return zero, ErrVectorOutOfRange
	}
	return vec.data[i], nil
}

func (vec *vector[T]) Get(i int) T {
	vec.checkIndex(i)
	return vec.data[i]
}

func (vec *vector[T]) Set(i int, v T) {
	vec.checkIndex(i)
	vec.data[i] = v
}

func (vec *vector[T]) Ref(i int) *T {
	vec.checkIndex(i)
	return &vec.data[i]
}

func (vec *vector[T]) Front() (T, error) {
	if vec.size == 0 {
		var zero T
		return zero, ErrVectorEmpty
	}
	return vec.data[0], nil
}

func (vec *vector[T]) Back() (T, error) {
	if vec.size == 0 {
		var zero T
		return zero, ErrVectorEmpty
	}
	return vec.data[vec.size-1], nil
}

func (vec *vector[T]) PushBack(values ...T) {
	if len(values) <= 0 {
		return
	}
	vec.grow(vec.size + len(values))
	copy(vec.data[vec.size:], values)
	vec.size += len(values)
}

func (vec *vector[T]) PopBack() (T, error) {
	var zero T
	if vec.size == 0 {
		return zero, ErrVectorEmpty
	}
	vec.size--
	v := vec.data[vec.size]
	vec.data[vec.size] = zero
	return v, nil
}

/*
Insert shifts the tail [pos, size) right by len(values).

	[a b c d _ _]   Insert(1, x, y)   [a x y b c d]
*/
func (vec *vector[T]) Insert(pos int, values ...T) error {
	if pos < 0 || pos > vec.size {
		return ErrVectorOutOfRange
	}
	n := len(values)
	if n <= 0 {
		return nil
	}
	vec.grow(vec.size + n)
	copy(vec.data[pos+n:], vec.data[pos:vec.size])
	copy(vec.data[pos:], values)
	vec.size += n
	return nil
}

func (vec *vector[T]) Erase(pos int) error {
	if pos < 0 || pos >= vec.size {
		return ErrVectorOutOfRange
	}
	return vec.EraseRange(pos, pos+1)
}

func (vec *vector[T]) EraseRange(first, last int) error {
	if first < 0 || last > vec.size || first > last {
		return ErrVectorOutOfRange
	}
	if first == last {
		return nil
	}
	copy(vec.data[first:], vec.data[last:vec.size])
	newSize := vec.size - (last - first)
	// avoid memory leaks
	clear(vec.data[newSize:vec.size])
	vec.size = newSize
	return nil
}

func (vec *vector[T]) Reserve(n int) {
	vec.reserve(n)
}

func (vec *vector[T]) Resize(n int) {
	vec.resize(n)
}

func (vec *vector[T]) ShrinkToFit() {
	if vec.size == len(vec.data) {
		return
	}
	if vec.size == 0 {
		vec.data = nil
		return
	}
	data := make([]T, vec.size)
	copy(data, vec.data[:vec.size])
	vec.data = data
}

func (vec *vector[T]) Clear() {
	clear(vec.data[:vec.size])
	vec.size = 0
}

func (vec *vector[T]) Clone() Vector[T] {
	dst := &vector[T]{
		data: make([]T, len(vec.data)),
		size: vec.size,
	}
	copy(dst.data, vec.data[:vec.size])
	return dst
}

func (vec *vector[T]) Move() Vector[T] {
	dst := &vector[T]{
		data: vec.data,
		size: vec.size,
	}
	vec.data, vec.size = nil, 0
	return dst
}

func (vec *vector[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < vec.size; i++ {
			if !yield(i, vec.data[i]) {
				return
			}
		}
	}
}

func (vec *vector[T]) Backward() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := vec.size - 1; i >= 0; i-- {
			if !yield(i, vec.data[i]) {
				return
			}
		}
	}
}

func (vec *vector[T]) Values() []T {
	res := make([]T, vec.size)
	copy(res, vec.data[:vec.size])
	return res
}
