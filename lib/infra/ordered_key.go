package infra

type Signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

// Unsigned is a constraint that permits any unsigned integer type.
type Unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Integer is a constraint that permits any integer type.
type Integer interface {
	Signed | Unsigned
}

// Float is a constraint that permits any floating-point type.
type Float interface {
	~float32 | ~float64
}

// OrderedKey
// byte => ~uint8
type OrderedKey interface {
	Integer | Float | ~string
}

// KeyComparator orders arbitrary keys.
// Assume i is the new key.
//  1. i == j (return 0)
//  2. i > j (return > 0), turn to right part.
//  3. i < j (return < 0), turn to left part.
//
// It must be a strict weak order, otherwise the containers
// built on it lose their ordering invariants.
type KeyComparator[K any] func(i, j K) int64

// OrderedKeyComparator is the KeyComparator restricted to the built-in
// ordered key types.
type OrderedKeyComparator[K OrderedKey] func(i, j K) int64

// Compare is the natural order of the OrderedKey types.
func Compare[K OrderedKey](i, j K) int64 {
	if i == j {
		return 0
	} else if i < j {
		return -1
	}
	return 1
}

// Reverse flips a comparator into the descending order.
func Reverse[K any](cmp KeyComparator[K]) KeyComparator[K] {
	return func(i, j K) int64 {
		return cmp(j, i)
	}
}
