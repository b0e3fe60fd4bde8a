package list

import "iter"

// Note that the singly linked list is not thread safe.

type ListErr string

const (
	ErrListEmpty           ListErr = "[singly-linked-list] empty"
	ErrListElementNotFound ListErr = "[singly-linked-list] element not found"
)

func (err ListErr) Error() string {
	return string(err)
}

// SinglyLinkedList is a forward only list with a before-begin position.
// A nil dstE in the *After operations stands for the before-begin position.
type SinglyLinkedList[T comparable] interface {
	Len() int64
	Empty() bool
	// Front returns the first element or nil if the list is empty.
	Front() *SinglyNodeElement[T]
	// Back returns the last element or nil if the list is empty.
	Back() *SinglyNodeElement[T]
	FrontValue() (T, error)
	// PushFront inserts a new element with value v at the front and returns it.
	PushFront(v T) *SinglyNodeElement[T]
	// PopFront removes the first element and returns its value.
	PopFront() (T, error)
	// Append appends the detached elements to the tail and returns them.
	// The elements still linked in a list are ignored.
	Append(elements ...*SinglyNodeElement[T]) []*SinglyNodeElement[T]
	// AppendValue appends the values to the tail and returns the new elements.
	AppendValue(values ...T) []*SinglyNodeElement[T]
	// InsertAfter inserts a value v immediately after element dstE and returns the new element.
	// If dstE is not an element of the list, the value v will not be inserted.
	InsertAfter(v T, dstE *SinglyNodeElement[T]) *SinglyNodeElement[T]
	// InsertBefore inserts a value v immediately before element dstE and returns the new element.
	// It walks from the front to find the pred of dstE.
	InsertBefore(v T, dstE *SinglyNodeElement[T]) *SinglyNodeElement[T]
	// RemoveAfter removes the element immediately after dstE and returns its value.
	RemoveAfter(dstE *SinglyNodeElement[T]) (T, error)
	// Remove removes targetE from the list and returns it, or nil if targetE is not in the list.
	Remove(targetE *SinglyNodeElement[T]) *SinglyNodeElement[T]
	// SpliceAfter moves all elements of src after dstE. The src list is emptied.
	SpliceAfter(dstE *SinglyNodeElement[T], src SinglyLinkedList[T]) error
	Reverse()
	Clone() SinglyLinkedList[T]
	Move() SinglyLinkedList[T]
	Clear()
	// Foreach traverses the list and executes function fn for each element.
	// If fn returns an error, the traversal stops and returns the error.
	Foreach(fn func(idx int64, e *SinglyNodeElement[T]) error) error
	// FindFirst finds the first element that satisfies the compareFn and returns the element and true if found.
	// If compareFn is not provided, it compares the value of element.
	FindFirst(v T, compareFn ...func(e *SinglyNodeElement[T]) bool) (*SinglyNodeElement[T], bool)
	All() iter.Seq[T]
}
