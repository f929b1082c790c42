package tree

import "math"

// nodeRef addresses a node slot in an Arena. The zero value is the
// absent link, slot 0 is reserved and never handed out.
type nodeRef uint32

const (
	nilRef     nodeRef = 0
	maxNodeRef         = math.MaxUint32
)

// Arena is the node allocator of the red-black trees. Every node lives in
// one flat slice and is addressed by its index, released slots are kept
// on a free list and reused by the next allocation.
//
// By default each tree has its own Arena. Several trees may share one
// Arena (e.g. to enforce a common node budget), then all of them have to
// be guarded by the same external lock.
type Arena[V any] struct {
	nodes []rbNode[V]
	free  []nodeRef
	limit int64
	live  int64
}

type ArenaOption[V any] func(*Arena[V])

// WithArenaCapacity pre-allocates room for n nodes.
func WithArenaCapacity[V any](n int) ArenaOption[V] {
	return func(arena *Arena[V]) {
		if n <= 0 {
			return
		}
		arena.nodes = make([]rbNode[V], 1, n+1)
		arena.free = make([]nodeRef, 0, n>>2)
	}
}

// WithArenaLimit bounds the number of live slots, the sentinel of every
// tree on the arena included. Allocations beyond the limit fail with
// ErrOutOfMemory. Zero or negative means unbounded.
func WithArenaLimit[V any](n int64) ArenaOption[V] {
	return func(arena *Arena[V]) {
		if n <= 0 || n > maxNodeRef-1 {
			n = 0
		}
		arena.limit = n
	}
}

func NewArena[V any](opts ...ArenaOption[V]) *Arena[V] {
	arena := &Arena[V]{}
	for _, o := range opts {
		if o != nil {
			o(arena)
		}
	}
	if arena.nodes == nil {
		arena.nodes = make([]rbNode[V], 1, 16) // slot 0 reserved
	}
	return arena
}

// Len returns the number of live slots.
func (arena *Arena[V]) Len() int64 {
	return arena.live
}

// Limit returns the live slots bound, 0 if unbounded.
func (arena *Arena[V]) Limit() int64 {
	return arena.limit
}

// Available returns how many slots can still be allocated.
func (arena *Arena[V]) Available() int64 {
	if arena.limit <= 0 {
		return maxNodeRef - 1 - arena.live
	}
	return arena.limit - arena.live
}

func (arena *Arena[V]) node(ref nodeRef) *rbNode[V] {
	return &arena.nodes[ref]
}

// get acquires a zeroed slot. The arena slice may grow, so *rbNode
// pointers taken before a get must not be used after it.
func (arena *Arena[V]) get() (nodeRef, error) {
	if arena.Available() <= 0 {
		return nilRef, ErrOutOfMemory
	}
	var ref nodeRef
	if n := len(arena.free); n > 0 {
		ref = arena.free[n-1]
		arena.free = arena.free[:n-1]
	} else {
		arena.nodes = append(arena.nodes, rbNode[V]{})
		ref = nodeRef(len(arena.nodes) - 1)
	}
	arena.nodes[ref].inUse = true
	arena.live++
	return ref, nil
}

// put releases a slot. The value is dropped so the GC can reclaim
// whatever it references.
func (arena *Arena[V]) put(ref nodeRef) {
	if ref == nilRef || int(ref) >= len(arena.nodes) || !arena.nodes[ref].inUse {
		// impossible run to here
		panic( /* debug assertion */ "[rbtree] release an unused node slot")
	}
	arena.nodes[ref] = rbNode[V]{}
	arena.free = append(arena.free, ref)
	arena.live--
}

func (arena *Arena[V]) isLive(ref nodeRef) bool {
	return ref != nilRef && int(ref) < len(arena.nodes) && arena.nodes[ref].inUse
}
