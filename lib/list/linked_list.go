package list

import (
	"iter"
	"sync/atomic"
)

var _ SinglyLinkedList[struct{}] = (*singlyLinkedList[struct{}])(nil) // Type check assertion

/*
The root is the before-begin sentinel, it never carries a value.
The tail is the root if the list is empty.

	root -> e0 -> e1 -> ... -> en -> nil
	                           ^
	                          tail

Each element refers to the root of its owner list. Moving the whole
list moves the root, so the elements keep their owner in O(1).
*/
type singlyLinkedList[T comparable] struct {
	root *SinglyNodeElement[T]
	tail *SinglyNodeElement[T]
	len  atomic.Int64
}

func NewSinglyLinkedList[T comparable]() SinglyLinkedList[T] {
	return new(singlyLinkedList[T]).init()
}

func (l *singlyLinkedList[T]) init() *singlyLinkedList[T] {
	l.root = &SinglyNodeElement[T]{}
	l.root.rootRef = l.root
	l.tail = l.root
	l.len.Store(0)
	return l
}

// at returns the position of dstE in the list, a nil dstE is the root.
func (l *singlyLinkedList[T]) at(dstE *SinglyNodeElement[T]) *SinglyNodeElement[T] {
	if dstE == nil {
		return l.root
	}
	if dstE.rootRef != l.root || dstE == l.root {
		return nil
	}
	return dstE
}

// predOf walks from the root and returns the element before targetE.
func (l *singlyLinkedList[T]) predOf(targetE *SinglyNodeElement[T]) *SinglyNodeElement[T] {
	if targetE == nil || targetE.rootRef != l.root || targetE == l.root {
		return nil
	}
	for aux := l.root; aux.next != nil; aux = aux.next {
		if aux.next == targetE {
			return aux
		}
	}
	return nil
}

func (l *singlyLinkedList[T]) insertAfter(newE, at *SinglyNodeElement[T]) *SinglyNodeElement[T] {
	newE.rootRef = l.root
	newE.next = at.next
	at.next = newE
	if at == l.tail {
		l.tail = newE
	}
	l.len.Add(1)
	return newE
}

func (l *singlyLinkedList[T]) removeAfter(at *SinglyNodeElement[T]) *SinglyNodeElement[T] {
	e := at.next
	if e == nil {
		return nil
	}
	at.next = e.next
	if e == l.tail {
		l.tail = at
	}

	// avoid memory leaks
	e.next = nil
	e.rootRef = nil

	l.len.Add(-1)
	return e
}

func (l *singlyLinkedList[T]) Len() int64 {
	return l.len.Load()
}

func (l *singlyLinkedList[T]) Empty() bool {
	return l.len.Load() == 0
}

func (l *singlyLinkedList[T]) Front() *SinglyNodeElement[T] {
	if l == nil || l.root == nil || l.len.Load() == 0 {
		return nil
	}
	return l.root.next
}

func (l *singlyLinkedList[T]) Back() *SinglyNodeElement[T] {
	if l == nil || l.root == nil || l.len.Load() == 0 {
		return nil
	}
	return l.tail
}

func (l *singlyLinkedList[T]) FrontValue() (T, error) {
	if e := l.Front(); e != nil {
		return e.Value, nil
	}
	var zero T
	return zero, ErrListEmpty
}

func (l *singlyLinkedList[T]) PushFront(v T) *SinglyNodeElement[T] {
	return l.insertAfter(NewSinglyNodeElement[T](v), l.root)
}

func (l *singlyLinkedList[T]) PopFront() (T, error) {
	var zero T
	if l.len.Load() == 0 {
		return zero, ErrListEmpty
	}
	return l.removeAfter(l.root).Value, nil
}

func (l *singlyLinkedList[T]) Append(elements ...*SinglyNodeElement[T]) []*SinglyNodeElement[T] {
	appended := make([]*SinglyNodeElement[T], 0, len(elements))
	for _, e := range elements {
		if e == nil || e.rootRef != nil {
			continue
		}
		appended = append(appended, l.insertAfter(e, l.tail))
	}
	return appended
}

func (l *singlyLinkedList[T]) AppendValue(values ...T) []*SinglyNodeElement[T] {
	if len(values) <= 0 {
		return nil
	}

	newElements := make([]*SinglyNodeElement[T], 0, len(values))
	for _, v := range values {
		newElements = append(newElements, l.insertAfter(NewSinglyNodeElement[T](v), l.tail))
	}
	return newElements
}

func (l *singlyLinkedList[T]) InsertAfter(v T, dstE *SinglyNodeElement[T]) *SinglyNodeElement[T] {
	at := l.at(dstE)
	if at == nil {
		return nil
	}
	return l.insertAfter(NewSinglyNodeElement[T](v), at)
}

func (l *singlyLinkedList[T]) InsertBefore(v T, dstE *SinglyNodeElement[T]) *SinglyNodeElement[T] {
	at := l.predOf(dstE)
	if at == nil {
		return nil
	}
	return l.insertAfter(NewSinglyNodeElement[T](v), at)
}

func (l *singlyLinkedList[T]) RemoveAfter(dstE *SinglyNodeElement[T]) (T, error) {
	var zero T
	if l.len.Load() == 0 {
		return zero, ErrListEmpty
	}
	at := l.at(dstE)
	if at == nil {
		return zero, ErrListElementNotFound
	}
	e := l.removeAfter(at)
	if e == nil {
		return zero, ErrListElementNotFound
	}
	return e.Value, nil
}

func (l *singlyLinkedList[T]) Remove(targetE *SinglyNodeElement[T]) *SinglyNodeElement[T] {
	if l == nil || l.root == nil || l.len.Load() == 0 {
		return nil
	}
	at := l.predOf(targetE)
	if at == nil {
		return nil
	}
	return l.removeAfter(at)
}

// SpliceAfter relinks the src elements in O(1), the owner of each
// moved element is updated in O(len(src)).
func (l *singlyLinkedList[T]) SpliceAfter(dstE *SinglyNodeElement[T], src SinglyLinkedList[T]) error {
	at := l.at(dstE)
	if at == nil {
		return ErrListElementNotFound
	}
	s, ok := src.(*singlyLinkedList[T])
	if !ok || s == nil || s == l || s.len.Load() == 0 {
		return nil
	}

	first, last := s.root.next, s.tail
	for aux := first; aux != nil; aux = aux.next {
		aux.rootRef = l.root
	}
	last.next = at.next
	at.next = first
	if at == l.tail {
		l.tail = last
	}
	l.len.Add(s.len.Load())

	s.root.next = nil
	s.tail = s.root
	s.len.Store(0)
	return nil
}

/*
Reverse relinks the elements in place.

	root -> a -> b -> c        root -> c -> b -> a
	                    ====>
	tail = c                   tail = a
*/
func (l *singlyLinkedList[T]) Reverse() {
	if l.len.Load() <= 1 {
		return
	}
	var prev *SinglyNodeElement[T]
	first := l.root.next
	for aux := first; aux != nil; {
		next := aux.next
		aux.next = prev
		prev, aux = aux, next
	}
	l.root.next = prev
	l.tail = first
}

func (l *singlyLinkedList[T]) Clone() SinglyLinkedList[T] {
	dst := new(singlyLinkedList[T]).init()
	for aux := l.root.next; aux != nil; aux = aux.next {
		dst.insertAfter(NewSinglyNodeElement[T](aux.Value), dst.tail)
	}
	return dst
}

func (l *singlyLinkedList[T]) Move() SinglyLinkedList[T] {
	dst := &singlyLinkedList[T]{
		root: l.root,
		tail: l.tail,
	}
	dst.len.Store(l.len.Swap(0))
	l.init()
	return dst
}

func (l *singlyLinkedList[T]) Clear() {
	for l.root.next != nil {
		l.removeAfter(l.root)
	}
	l.tail = l.root
	l.len.Store(0)
}

// Foreach, allows to remove the current element while iterating.
func (l *singlyLinkedList[T]) Foreach(fn func(idx int64, e *SinglyNodeElement[T]) error) error {
	if l == nil || l.root == nil || fn == nil || l.len.Load() == 0 {
		return ErrListEmpty
	}

	var (
		iterator       = l.root.next
		idx      int64 = 0
	)
	for iterator != nil {
		n := iterator.next
		if err := fn(idx, iterator); err != nil {
			return err
		}
		iterator = n
		idx++
	}
	return nil
}

func (l *singlyLinkedList[T]) FindFirst(targetV T, compareFn ...func(e *SinglyNodeElement[T]) bool) (*SinglyNodeElement[T], bool) {
	if l == nil || l.root == nil || l.len.Load() == 0 {
		return nil, false
	}

	if len(compareFn) <= 0 {
		compareFn = []func(e *SinglyNodeElement[T]) bool{
			func(e *SinglyNodeElement[T]) bool {
				return e.Value == targetV
			},
		}
	}

	for iterator := l.root.next; iterator != nil; iterator = iterator.next {
		if compareFn[0](iterator) {
			return iterator, true
		}
	}
	return nil, false
}

func (l *singlyLinkedList[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for iterator := l.root.next; iterator != nil; iterator = iterator.next {
			if !yield(iterator.Value) {
				return
			}
		}
	}
}
