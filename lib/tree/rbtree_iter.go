package tree

// Iterator is a bidirectional position in an RBTree. The zero value
// belongs to no tree and is invalid.
//
// An iterator stays valid while the node it references is in the tree.
// End is never invalidated.
type Iterator[K, V any] struct {
	tree *rbTree[K, V]
	ref  nodeRef
}

// Valid reports whether the iterator references a live position, End
// included.
func (it Iterator[K, V]) Valid() bool {
	return it.tree != nil && it.tree.owns(it)
}

func (it Iterator[K, V]) IsEnd() bool {
	return it.tree != nil && it.ref == it.tree.header
}

func (it Iterator[K, V]) Equal(other Iterator[K, V]) bool {
	return it.tree == other.tree && it.ref == other.ref
}

func (it Iterator[K, V]) deref() bool {
	return it.tree != nil && it.ref != it.tree.header && it.tree.arena.isLive(it.ref)
}

func (it Iterator[K, V]) Value() (V, error) {
	if !it.deref() {
		var v V
		return v, ErrInvalidIterator
	}
	return it.tree.node(it.ref).val, nil
}

func (it Iterator[K, V]) Key() (K, error) {
	if !it.deref() {
		var k K
		return k, ErrInvalidIterator
	}
	return it.tree.key(it.ref), nil
}

// Next moves to the succ position. Moving past End fails and keeps the
// iterator where it was.
func (it *Iterator[K, V]) Next() error {
	if !it.deref() {
		return ErrInvalidIterator
	}
	it.ref = it.tree.succ(it.ref)
	return nil
}

// Prev moves to the pred position, from End to the maximum. Moving before
// the minimum fails and keeps the iterator where it was.
func (it *Iterator[K, V]) Prev() error {
	if !it.Valid() || it.tree.count <= 0 || it.ref == it.tree.leftmost() {
		return ErrInvalidIterator
	}
	it.ref = it.tree.pred(it.ref)
	return nil
}

// ReverseIterator walks an RBTree from its maximum to its minimum. It
// references the position before its base, so RBegin wraps End and REnd
// wraps Begin.
type ReverseIterator[K, V any] struct {
	base Iterator[K, V]
}

func NewReverseIterator[K, V any](base Iterator[K, V]) ReverseIterator[K, V] {
	return ReverseIterator[K, V]{base: base}
}

func (it ReverseIterator[K, V]) Base() Iterator[K, V] {
	return it.base
}

func (it ReverseIterator[K, V]) Equal(other ReverseIterator[K, V]) bool {
	return it.base.Equal(other.base)
}

// IsEnd reports whether the iterator is REnd.
func (it ReverseIterator[K, V]) IsEnd() bool {
	return it.base.Valid() && it.base.ref == it.base.tree.leftmost()
}

func (it ReverseIterator[K, V]) current() (Iterator[K, V], error) {
	aux := it.base
	if err := aux.Prev(); err != nil {
		return aux, err
	}
	return aux, nil
}

func (it ReverseIterator[K, V]) Value() (V, error) {
	cur, err := it.current()
	if err != nil {
		var v V
		return v, err
	}
	return cur.Value()
}

func (it ReverseIterator[K, V]) Key() (K, error) {
	cur, err := it.current()
	if err != nil {
		var k K
		return k, err
	}
	return cur.Key()
}

func (it *ReverseIterator[K, V]) Next() error {
	return it.base.Prev()
}

func (it *ReverseIterator[K, V]) Prev() error {
	return it.base.Next()
}
