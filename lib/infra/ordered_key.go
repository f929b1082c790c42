package infra

type Signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

// Unsigned is a constraint that permits any unsigned integer type.
type Unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

type Integer interface {
	Signed | Unsigned
}

type Float interface {
	~float32 | ~float64
}

// OrderedKey is the set of key types that the '<' operator works on.
// byte => ~uint8
type OrderedKey interface {
	Integer | Float | ~string
}

// OrderedKeyComparator
// Assume i is the new key.
//  1. i == j (return 0)
//  2. i > j (return 1), turn to right part.
//  3. i < j (return -1), turn to left part.
type OrderedKeyComparator[K OrderedKey] func(i, j K) int64

// LessThan returns the natural strict weak ordering of K.
// NaN floats are never less than anything, so they tie with every key.
func LessThan[K OrderedKey]() func(i, j K) bool {
	return func(i, j K) bool {
		return i < j
	}
}

// GreaterThan returns the reversed natural ordering of K.
func GreaterThan[K OrderedKey]() func(i, j K) bool {
	return func(i, j K) bool {
		return i > j
	}
}

// ThreeWay adapts a strict less-than function into an OrderedKeyComparator.
func ThreeWay[K OrderedKey](less func(i, j K) bool) OrderedKeyComparator[K] {
	return func(i, j K) int64 {
		if less(i, j) {
			return -1
		} else if less(j, i) {
			return 1
		}
		return 0
	}
}
