package tree

import (
	"iter"

	"github.com/benz9527/xtree/lib/infra"
)

// Set keeps unique keys in sorted order.
type Set[K any] struct {
	tree *rbTree[K, K]
}

func NewSet[K any](less LessFunc[K], opts ...RBTreeOption[K, K]) (*Set[K], error) {
	tree, err := NewRBTree[K, K](Identity[K](), less, opts...)
	if err != nil {
		return nil, err
	}
	return &Set[K]{tree: tree.(*rbTree[K, K])}, nil
}

func NewOrderedSet[K infra.OrderedKey](opts ...RBTreeOption[K, K]) (*Set[K], error) {
	return NewSet[K](infra.LessThan[K](), opts...)
}

func (s *Set[K]) Tree() RBTree[K, K] {
	return s.tree
}

func (s *Set[K]) Len() int64 {
	return s.tree.Len()
}

// Insert reports false if key is present already.
func (s *Set[K]) Insert(key K) (bool, error) {
	_, ok, err := s.tree.InsertUnique(key)
	return ok, err
}

func (s *Set[K]) Contains(key K) bool {
	return !s.tree.Find(key).IsEnd()
}

func (s *Set[K]) Delete(key K) bool {
	return s.tree.EraseKey(key) > 0
}

func (s *Set[K]) Min() (K, bool) {
	k, err := s.tree.Minimum().Value()
	return k, err == nil
}

func (s *Set[K]) Max() (K, bool) {
	k, err := s.tree.Maximum().Value()
	return k, err == nil
}

func (s *Set[K]) All() iter.Seq[K] {
	return s.tree.All()
}

func (s *Set[K]) Backward() iter.Seq[K] {
	return s.tree.Backward()
}

func (s *Set[K]) Clear() {
	s.tree.Clear()
}

// MultiSet keeps keys in sorted order, equal keys in insertion order.
type MultiSet[K any] struct {
	tree *rbTree[K, K]
}

func NewMultiSet[K any](less LessFunc[K], opts ...RBTreeOption[K, K]) (*MultiSet[K], error) {
	tree, err := NewRBTree[K, K](Identity[K](), less, opts...)
	if err != nil {
		return nil, err
	}
	return &MultiSet[K]{tree: tree.(*rbTree[K, K])}, nil
}

func NewOrderedMultiSet[K infra.OrderedKey](opts ...RBTreeOption[K, K]) (*MultiSet[K], error) {
	return NewMultiSet[K](infra.LessThan[K](), opts...)
}

func (s *MultiSet[K]) Tree() RBTree[K, K] {
	return s.tree
}

func (s *MultiSet[K]) Len() int64 {
	return s.tree.Len()
}

func (s *MultiSet[K]) Insert(key K) error {
	_, err := s.tree.InsertEqual(key)
	return err
}

func (s *MultiSet[K]) Count(key K) int64 {
	return s.tree.Count(key)
}

// DeleteOne removes the earliest inserted key equivalent to key.
func (s *MultiSet[K]) DeleteOne(key K) bool {
	it := s.tree.Find(key)
	if it.IsEnd() {
		return false
	}
	_, err := s.tree.Erase(it)
	return err == nil
}

// Delete removes every key equivalent to key.
func (s *MultiSet[K]) Delete(key K) int64 {
	return s.tree.EraseKey(key)
}

func (s *MultiSet[K]) All() iter.Seq[K] {
	return s.tree.All()
}

func (s *MultiSet[K]) Backward() iter.Seq[K] {
	return s.tree.Backward()
}

func (s *MultiSet[K]) Clear() {
	s.tree.Clear()
}
