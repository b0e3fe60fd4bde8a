package list

type SinglyNodeElement[T comparable] struct {
	next *SinglyNodeElement[T]
	// rootRef is the before-begin sentinel of the owner list, nil if detached.
	rootRef *SinglyNodeElement[T]
	Value   T // The type of value may be a small size type.
	// It should be placed at the end of the struct to avoid taking too much padding.
}

func NewSinglyNodeElement[T comparable](v T) *SinglyNodeElement[T] {
	return &SinglyNodeElement[T]{
		Value: v,
	}
}

func (e *SinglyNodeElement[T]) HasNext() bool {
	return e != nil && e.next != nil
}

func (e *SinglyNodeElement[T]) Next() *SinglyNodeElement[T] {
	if e == nil {
		return nil
	}
	return e.next
}
