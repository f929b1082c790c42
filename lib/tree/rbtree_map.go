package tree

import (
	"iter"

	"github.com/benz9527/xtree/lib/infra"
)

type Pair[K, V any] struct {
	Key K
	Val V
}

func pairKey[K, V any]() KeyOf[K, Pair[K, V]] {
	return func(p Pair[K, V]) K {
		return p.Key
	}
}

// Map keeps unique keys with their values, sorted by key.
type Map[K, V any] struct {
	tree *rbTree[K, Pair[K, V]]
}

func NewMap[K, V any](less LessFunc[K], opts ...RBTreeOption[K, Pair[K, V]]) (*Map[K, V], error) {
	tree, err := NewRBTree[K, Pair[K, V]](pairKey[K, V](), less, opts...)
	if err != nil {
		return nil, err
	}
	return &Map[K, V]{tree: tree.(*rbTree[K, Pair[K, V]])}, nil
}

func NewOrderedMap[K infra.OrderedKey, V any](opts ...RBTreeOption[K, Pair[K, V]]) (*Map[K, V], error) {
	return NewMap[K, V](infra.LessThan[K](), opts...)
}

func (m *Map[K, V]) Tree() RBTree[K, Pair[K, V]] {
	return m.tree
}

func (m *Map[K, V]) Len() int64 {
	return m.tree.Len()
}

// Put inserts or replaces the value of key.
func (m *Map[K, V]) Put(key K, val V) error {
	it, ok, err := m.tree.InsertUnique(Pair[K, V]{Key: key, Val: val})
	if err != nil {
		return err
	}
	if !ok {
		m.tree.node(it.ref).val.Val = val
	}
	return nil
}

// PutIfAbsent keeps the present value, reports whether val was stored.
func (m *Map[K, V]) PutIfAbsent(key K, val V) (bool, error) {
	_, ok, err := m.tree.InsertUnique(Pair[K, V]{Key: key, Val: val})
	return ok, err
}

func (m *Map[K, V]) Get(key K) (V, bool) {
	p, err := m.tree.Find(key).Value()
	return p.Val, err == nil
}

func (m *Map[K, V]) Contains(key K) bool {
	return !m.tree.Find(key).IsEnd()
}

// Delete removes key and returns its value.
func (m *Map[K, V]) Delete(key K) (V, bool) {
	it := m.tree.Find(key)
	p, err := it.Value()
	if err != nil {
		return p.Val, false
	}
	if _, err = m.tree.Erase(it); err != nil {
		return p.Val, false
	}
	return p.Val, true
}

// Keys returns the keys in sorted order.
func (m *Map[K, V]) Keys() []K {
	keys := make([]K, 0, m.tree.Len())
	for p := range m.tree.All() {
		keys = append(keys, p.Key)
	}
	return keys
}

func (m *Map[K, V]) Values() []V {
	vals := make([]V, 0, m.tree.Len())
	for p := range m.tree.All() {
		vals = append(vals, p.Val)
	}
	return vals
}

func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for p := range m.tree.All() {
			if !yield(p.Key, p.Val) {
				return
			}
		}
	}
}

func (m *Map[K, V]) Backward() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for p := range m.tree.Backward() {
			if !yield(p.Key, p.Val) {
				return
			}
		}
	}
}

func (m *Map[K, V]) Clear() {
	m.tree.Clear()
}

// MultiMap keeps every value put under a key, in insertion order.
type MultiMap[K, V any] struct {
	tree *rbTree[K, Pair[K, V]]
}

func NewMultiMap[K, V any](less LessFunc[K], opts ...RBTreeOption[K, Pair[K, V]]) (*MultiMap[K, V], error) {
	tree, err := NewRBTree[K, Pair[K, V]](pairKey[K, V](), less, opts...)
	if err != nil {
		return nil, err
	}
	return &MultiMap[K, V]{tree: tree.(*rbTree[K, Pair[K, V]])}, nil
}

func NewOrderedMultiMap[K infra.OrderedKey, V any](opts ...RBTreeOption[K, Pair[K, V]]) (*MultiMap[K, V], error) {
	return NewMultiMap[K, V](infra.LessThan[K](), opts...)
}

func (m *MultiMap[K, V]) Tree() RBTree[K, Pair[K, V]] {
	return m.tree
}

func (m *MultiMap[K, V]) Len() int64 {
	return m.tree.Len()
}

func (m *MultiMap[K, V]) Put(key K, val V) error {
	_, err := m.tree.InsertEqual(Pair[K, V]{Key: key, Val: val})
	return err
}

func (m *MultiMap[K, V]) GetAll(key K) []V {
	first, last := m.tree.EqualRange(key)
	vals := make([]V, 0, 4)
	for it := first; !it.Equal(last); {
		p, err := it.Value()
		if err != nil {
			break
		}
		vals = append(vals, p.Val)
		if err = it.Next(); err != nil {
			break
		}
	}
	return vals
}

func (m *MultiMap[K, V]) Delete(key K) int64 {
	return m.tree.EraseKey(key)
}

func (m *MultiMap[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for p := range m.tree.All() {
			if !yield(p.Key, p.Val) {
				return
			}
		}
	}
}

func (m *MultiMap[K, V]) Clear() {
	m.tree.Clear()
}
