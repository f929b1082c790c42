package kv

import (
	"errors"
	"io"
	"sync"

	"go.uber.org/multierr"

	"github.com/benz9527/xtree/lib/infra"
	"github.com/benz9527/xtree/lib/tree"
)

var ErrThreadSafeMapKeyNotFound = errors.New("[thread-safe-map] key not found")

var _ ThreadSafeStorer[string, int] = (*threadSafeMap[string, int])(nil)

type threadSafeMap[K infra.OrderedKey, V any] struct {
	lock           sync.RWMutex
	items          *tree.Map[K, V]
	arenaLimit     int64
	isClosableItem bool
}

func (t *threadSafeMap[K, V]) AddOrUpdate(key K, obj V) error {
	t.lock.Lock()
	defer t.lock.Unlock()
	return t.items.Put(key, obj)
}

// Replace swaps all the items. The previous items are kept if the new ones
// do not fit.
func (t *threadSafeMap[K, V]) Replace(items map[K]V) error {
	m, err := t.newItems()
	if err != nil {
		return err
	}
	for k, v := range items {
		if err = m.Put(k, v); err != nil {
			return err
		}
	}

	t.lock.Lock()
	defer t.lock.Unlock()
	t.items = m
	return nil
}

func (t *threadSafeMap[K, V]) Delete(key K) (V, error) {
	t.lock.Lock()
	defer t.lock.Unlock()
	v, exists := t.items.Delete(key)
	if !exists {
		return v, ErrThreadSafeMapKeyNotFound
	}
	return v, nil
}

func (t *threadSafeMap[K, V]) Get(key K) (item V, exists bool) {
	t.lock.RLock()
	defer t.lock.RUnlock()
	return t.items.Get(key)
}

func (t *threadSafeMap[K, V]) Len() int64 {
	t.lock.RLock()
	defer t.lock.RUnlock()
	return t.items.Len()
}

func (t *threadSafeMap[K, V]) ListKeys(filters ...SafeStoreKeyFilterFunc[K]) []K {
	realFilters := make([]SafeStoreKeyFilterFunc[K], 0, len(filters))
	for _, filter := range filters {
		if filter != nil {
			realFilters = append(realFilters, filter)
		}
	}
	if len(realFilters) == 0 {
		realFilters = append(realFilters, defaultAllKeysFilter[K])
	}

	t.lock.RLock()
	defer t.lock.RUnlock()

	keys := make([]K, 0, t.items.Len())
	for key := range t.items.All() {
		for _, filter := range realFilters {
			if filter(key) {
				keys = append(keys, key)
				break
			}
		}
	}
	return keys
}

// ListValues returns the values of keys, or all values if no key is given,
// in ascending key order.
func (t *threadSafeMap[K, V]) ListValues(keys ...K) (items []V) {
	t.lock.RLock()
	defer t.lock.RUnlock()

	if len(keys) == 0 {
		return t.items.Values()
	}
	set, err := tree.NewOrderedSet[K]()
	if err != nil {
		return nil
	}
	for _, key := range keys {
		_, _ = set.Insert(key)
	}
	values := make([]V, 0, set.Len())
	for key := range set.All() {
		if v, exists := t.items.Get(key); exists {
			values = append(values, v)
		}
	}
	return values
}

// Purge drops all the items, closing the ones that are io.Closer.
func (t *threadSafeMap[K, V]) Purge() error {
	t.lock.Lock()
	defer t.lock.Unlock()

	var merr error
	if t.isClosableItem {
		for _, item := range t.items.All() {
			if closer, ok := any(item).(io.Closer); ok && closer != nil {
				merr = multierr.Append(merr, closer.Close())
			}
		}
	}
	t.items.Clear()
	return merr
}

func (t *threadSafeMap[K, V]) newItems() (*tree.Map[K, V], error) {
	if t.arenaLimit > 0 {
		return tree.NewOrderedMap[K, V](
			tree.WithRBTreeArenaOptions[K, tree.Pair[K, V]](
				tree.WithArenaLimit[tree.Pair[K, V]](t.arenaLimit),
			),
		)
	}
	return tree.NewOrderedMap[K, V]()
}

type ThreadSafeMapOption[K infra.OrderedKey, V any] func(*threadSafeMap[K, V])

// WithThreadSafeMapCloseableItemCheck closes the io.Closer items on Purge.
func WithThreadSafeMapCloseableItemCheck[K infra.OrderedKey, V any]() ThreadSafeMapOption[K, V] {
	return func(m *threadSafeMap[K, V]) {
		m.isClosableItem = true
	}
}

// WithThreadSafeMapMaxItems bounds the number of items, AddOrUpdate on a
// full map fails with tree.ErrOutOfMemory.
func WithThreadSafeMapMaxItems[K infra.OrderedKey, V any](n int64) ThreadSafeMapOption[K, V] {
	return func(m *threadSafeMap[K, V]) {
		if n > 0 {
			m.arenaLimit = n + 1 // sentinel
		}
	}
}

func NewThreadSafeMap[K infra.OrderedKey, V any](opts ...ThreadSafeMapOption[K, V]) ThreadSafeStorer[K, V] {
	m := &threadSafeMap[K, V]{}
	for _, o := range opts {
		if o != nil {
			o(m)
		}
	}
	// A fresh arena always has room for the sentinel.
	m.items, _ = m.newItems()
	return m
}
