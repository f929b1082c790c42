package queue

import (
	"cmp"
	"sync"
	"sync/atomic"

	"github.com/benz9527/xtree/lib/tree"
)

type pqItem[E comparable] struct {
	priority int64
	index    int64
	value    E
}

func (item *pqItem[E]) Index() int64 {
	if item == nil {
		return -1
	}
	return atomic.LoadInt64(&item.index)
}

func (item *pqItem[E]) Value() (val E) {
	if item == nil {
		// return empty value by default
		return
	}
	return item.value
}

func (item *pqItem[E]) Priority() int64 {
	if item == nil {
		return -1
	}
	return atomic.LoadInt64(&item.priority)
}

func (item *pqItem[E]) SetIndex(idx int64) {
	if item == nil {
		return
	}
	atomic.SwapInt64(&item.index, idx)
}

func (item *pqItem[E]) SetPriority(pri int64) {
	if item == nil {
		return
	}
	atomic.SwapInt64(&item.priority, pri)
}

func NewPriorityQueueItem[E comparable](val E, pri int64) PQItem[E] {
	return &pqItem[E]{
		priority: pri,
		value:    val,
		index:    -1,
	}
}

func defaultPQItemComparator[E comparable](i, j ReadOnlyPQItem[E]) CmpEnum {
	return CmpEnum(cmp.Compare(i.Priority(), j.Priority()))
}

// RBTreePriorityQueue pops the lowest item first by default. Items of
// equal priority are popped in the order they were pushed.
//
// The priority of a queued item must not be changed.
type RBTreePriorityQueue[E comparable] struct {
	tree       tree.RBTree[ReadOnlyPQItem[E], PQItem[E]]
	comparator PQItemLessThenComparator[E]
	maxFirst   bool
	limit      int64
	seq        int64
	lock       *sync.Mutex
}

func (pq *RBTreePriorityQueue[E]) Len() int64 {
	if pq.lock != nil {
		pq.lock.Lock()
		defer pq.lock.Unlock()
	}
	return pq.tree.Len()
}

// Push fails with tree.ErrOutOfMemory once the capacity is reached. The
// item index is the push sequence number while queued.
func (pq *RBTreePriorityQueue[E]) Push(item PQItem[E]) error {
	if item == nil {
		return nil
	}
	if pq.lock != nil {
		pq.lock.Lock()
		defer pq.lock.Unlock()
	}
	if _, err := pq.tree.InsertEqual(item); err != nil {
		return err
	}
	item.SetIndex(pq.seq)
	pq.seq++
	return nil
}

func (pq *RBTreePriorityQueue[E]) Pop() ReadOnlyPQItem[E] {
	if pq.lock != nil {
		pq.lock.Lock()
		defer pq.lock.Unlock()
	}
	it := pq.tree.Begin()
	item, err := it.Value()
	if err != nil {
		return nil
	}
	if _, err = pq.tree.Erase(it); err != nil {
		return nil
	}
	item.SetIndex(-1)
	return item
}

func (pq *RBTreePriorityQueue[E]) Peek() ReadOnlyPQItem[E] {
	if pq.lock != nil {
		pq.lock.Lock()
		defer pq.lock.Unlock()
	}
	item, err := pq.tree.Begin().Value()
	if err != nil {
		return nil
	}
	return item
}

type RBTreePriorityQueueOption[E comparable] func(*RBTreePriorityQueue[E])

func NewRBTreePriorityQueue[E comparable](opts ...RBTreePriorityQueueOption[E]) PriorityQueue[E] {
	pq := &RBTreePriorityQueue[E]{}
	for _, o := range opts {
		if o != nil {
			o(pq)
		}
	}
	if pq.comparator == nil {
		pq.comparator = defaultPQItemComparator[E]
	}

	treeOpts := make([]tree.RBTreeOption[ReadOnlyPQItem[E], PQItem[E]], 0, 2)
	if pq.maxFirst {
		treeOpts = append(treeOpts, tree.WithRBTreeDesc[ReadOnlyPQItem[E], PQItem[E]]())
	}
	if pq.limit > 0 {
		treeOpts = append(treeOpts, tree.WithRBTreeArenaOptions[ReadOnlyPQItem[E], PQItem[E]](
			tree.WithArenaLimit[PQItem[E]](pq.limit+1), // sentinel
		))
	}
	comparator := pq.comparator
	// A fresh arena always has room for the sentinel.
	pq.tree, _ = tree.NewRBTree[ReadOnlyPQItem[E], PQItem[E]](
		func(item PQItem[E]) ReadOnlyPQItem[E] {
			return item
		},
		func(i, j ReadOnlyPQItem[E]) bool {
			return comparator(i, j) == iLTj
		},
		treeOpts...,
	)
	return pq
}

// WithRBTreePriorityQueueCapacity bounds the number of queued items.
func WithRBTreePriorityQueueCapacity[E comparable](capacity int64) RBTreePriorityQueueOption[E] {
	return func(pq *RBTreePriorityQueue[E]) {
		pq.limit = capacity
	}
}

func WithRBTreePriorityQueueComparator[E comparable](fn PQItemLessThenComparator[E]) RBTreePriorityQueueOption[E] {
	return func(pq *RBTreePriorityQueue[E]) {
		pq.comparator = fn
	}
}

// WithRBTreePriorityQueueMaxFirst pops the greatest item first.
func WithRBTreePriorityQueueMaxFirst[E comparable]() RBTreePriorityQueueOption[E] {
	return func(pq *RBTreePriorityQueue[E]) {
		pq.maxFirst = true
	}
}

func WithRBTreePriorityQueueEnableThreadSafe[E comparable]() RBTreePriorityQueueOption[E] {
	return func(pq *RBTreePriorityQueue[E]) {
		pq.lock = &sync.Mutex{}
	}
}
