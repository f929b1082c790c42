package kv

import (
	"github.com/benz9527/xtree/lib/infra"
)

type SafeStoreKeyFilterFunc[K infra.OrderedKey] func(key K) bool

func defaultAllKeysFilter[K infra.OrderedKey](key K) bool {
	return true
}

// ThreadSafeStorer is a key-value store for concurrent use. Keys are kept
// sorted, so the listings are in ascending key order.
type ThreadSafeStorer[K infra.OrderedKey, V any] interface {
	Purge() error
	AddOrUpdate(key K, obj V) error
	Replace(items map[K]V) error
	Delete(key K) (V, error)
	Get(key K) (item V, exists bool)
	Len() int64
	ListKeys(filters ...SafeStoreKeyFilterFunc[K]) []K
	ListValues(keys ...K) (items []V)
}
