package tree

import (
	"errors"
	"iter"
)

// go install golang.org/x/tools/cmd/stringer@latest

//go:generate stringer -type=RBColor
type RBColor uint8

const (
	Black RBColor = iota
	Red
)

func (c RBColor) String() string {
	switch c {
	case Black:
		return "Black"
	case Red:
		return "Red"
	default:
	}
	return "RBColor(unknown)"
}

var (
	// ErrOutOfMemory is returned when the node arena can not hand out
	// another slot. The tree is left exactly as it was before the call.
	ErrOutOfMemory = errors.New("[rbtree] node arena exhausted")
	// ErrInvalidIterator is returned on dereferencing or moving an iterator
	// out of its range, on erasing the end iterator and on iterators
	// that do not belong to the tree.
	ErrInvalidIterator = errors.New("[rbtree] invalid iterator")
)

// KeyOf maps a stored value to its ordering key.
type KeyOf[K, V any] func(val V) K

// LessFunc is a strict weak ordering over keys. Two keys i, j are
// equivalent when !less(i, j) && !less(j, i).
type LessFunc[K any] func(i, j K) bool

// Identity is the key extractor of sets, the value is the key itself.
func Identity[K any]() KeyOf[K, K] {
	return func(val K) K {
		return val
	}
}

// RBNode is a read-only view of a tree node. The sentinel and the absent
// links are reported as nil.
type RBNode[K, V any] interface {
	Key() K
	Val() V
	Color() RBColor
	Left() RBNode[K, V]
	Right() RBNode[K, V]
	Parent() RBNode[K, V]
}

// RBTree is an ordered container of values of type V, sorted by the keys
// that KeyOf extracts from them.
//
// It is not safe for concurrent use. Readers and writers sharing a tree
// must be serialized by the caller.
type RBTree[K, V any] interface {
	Len() int64
	Empty() bool
	MaxSize() int64
	Root() RBNode[K, V]
	Comparator() LessFunc[K]
	KeyOf() KeyOf[K, V]

	InsertEqual(val V) (Iterator[K, V], error)
	InsertUnique(val V) (Iterator[K, V], bool, error)
	Erase(it Iterator[K, V]) (Iterator[K, V], error)
	EraseRange(first, last Iterator[K, V]) (Iterator[K, V], error)
	EraseKey(key K) int64
	Clear()

	Find(key K) Iterator[K, V]
	LowerBound(key K) Iterator[K, V]
	UpperBound(key K) Iterator[K, V]
	EqualRange(key K) (Iterator[K, V], Iterator[K, V])
	Count(key K) int64

	Begin() Iterator[K, V]
	End() Iterator[K, V]
	RBegin() ReverseIterator[K, V]
	REnd() ReverseIterator[K, V]
	Minimum() Iterator[K, V]
	Maximum() Iterator[K, V]

	All() iter.Seq[V]
	Backward() iter.Seq[V]
	Foreach(action func(idx int64, color RBColor, val V) bool)

	Clone() (RBTree[K, V], error)
}
