package kv

import (
	"errors"
	"fmt"
	randv2 "math/rand/v2"
	"slices"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/benz9527/xtree/lib/tree"
)

func genStrKeys(strLen, count int) []string {
	const letters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	uniq := make(map[string]struct{}, count)
	keys := make([]string, 0, count)
	for len(keys) < count {
		b := make([]byte, strLen)
		for i := range b {
			b[i] = letters[randv2.IntN(len(letters))]
		}
		if _, ok := uniq[string(b)]; ok {
			continue
		}
		uniq[string(b)] = struct{}{}
		keys = append(keys, string(b))
	}
	return keys
}

func TestThreadSafeMap_SimpleCRUD(t *testing.T) {
	keys := genStrKeys(8, 10000)
	m := make(map[string]int, len(keys))
	_m := NewThreadSafeMap[string, int]()
	for i, key := range keys {
		m[key] = i
	}
	require.NoError(t, _m.Replace(m))
	require.Equal(t, int64(len(keys)), _m.Len())

	sorted := slices.Clone(keys)
	slices.Sort(sorted)
	require.Equal(t, sorted, _m.ListKeys())

	vals := make([]int, 0, len(sorted))
	for _, key := range sorted {
		vals = append(vals, m[key])
	}
	require.Equal(t, vals, _m.ListValues())

	i := 1001
	res, exists := _m.Get(keys[i])
	require.True(t, exists)
	require.Equal(t, i, res)

	res, err := _m.Delete(keys[i])
	require.NoError(t, err)
	require.Equal(t, i, res)
	_, err = _m.Delete(keys[i])
	require.ErrorIs(t, err, ErrThreadSafeMapKeyNotFound)
	require.Equal(t, int64(len(keys)-1), _m.Len())

	require.NoError(t, _m.AddOrUpdate(keys[i], i))
	require.Equal(t, sorted, _m.ListKeys())

	require.NoError(t, _m.Purge())
	require.Equal(t, int64(0), _m.Len())
	require.Empty(t, _m.ListKeys())
}

func TestThreadSafeMap_ListFiltered(t *testing.T) {
	_m := NewThreadSafeMap[int, string]()
	for i := 9; i >= 0; i-- {
		require.NoError(t, _m.AddOrUpdate(i, fmt.Sprintf("v%d", i)))
	}
	require.Equal(t, []int{0, 2, 4, 6, 8}, _m.ListKeys(nil, func(key int) bool {
		return key%2 == 0
	}))
	require.Equal(t, []string{"v1", "v3", "v7"}, _m.ListValues(7, 3, 1, 3, 42))
}

type closable struct {
	closed *atomic.Int32
	err    error
}

func (c *closable) Close() error {
	c.closed.Add(1)
	return c.err
}

func TestThreadSafeMap_Purge(t *testing.T) {
	closed := &atomic.Int32{}
	errBroken := errors.New("broken")
	_m := NewThreadSafeMap[string, *closable](
		WithThreadSafeMapCloseableItemCheck[string, *closable](),
	)
	require.NoError(t, _m.AddOrUpdate("a", &closable{closed: closed}))
	require.NoError(t, _m.AddOrUpdate("b", &closable{closed: closed, err: errBroken}))
	require.NoError(t, _m.AddOrUpdate("c", &closable{closed: closed}))

	err := _m.Purge()
	require.ErrorIs(t, err, errBroken)
	require.Equal(t, int32(3), closed.Load())
	require.Equal(t, int64(0), _m.Len())
}

func TestThreadSafeMap_MaxItems(t *testing.T) {
	_m := NewThreadSafeMap[int, int](WithThreadSafeMapMaxItems[int, int](2))
	require.NoError(t, _m.AddOrUpdate(1, 1))
	require.NoError(t, _m.AddOrUpdate(2, 2))
	require.ErrorIs(t, _m.AddOrUpdate(3, 3), tree.ErrOutOfMemory)
	require.NoError(t, _m.AddOrUpdate(2, 20))

	err := _m.Replace(map[int]int{1: 1, 2: 2, 3: 3})
	require.ErrorIs(t, err, tree.ErrOutOfMemory)
	require.Equal(t, []int{1, 2}, _m.ListKeys())
	require.Equal(t, []int{1, 20}, _m.ListValues())
}

func TestThreadSafeMap_DataRace(t *testing.T) {
	_m := NewThreadSafeMap[int, int]()
	wg := sync.WaitGroup{}
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				key := w*1000 + i
				require.NoError(t, _m.AddOrUpdate(key, key))
				_, _ = _m.Get(randv2.IntN(4000))
				if i%10 == 0 {
					_, err := _m.Delete(key)
					require.NoError(t, err)
				}
			}
		}(w)
	}
	wg.Wait()
	require.Equal(t, int64(3600), _m.Len())
	keys := _m.ListKeys()
	require.True(t, slices.IsSorted(keys))
}

func BenchmarkThreadSafeMapReadWrite(b *testing.B) {
	value := []byte(`abc`)
	for i := 0; i <= 10; i += 5 {
		b.Run(fmt.Sprintf("ThreadSafeMap frac_%d", i), func(bb *testing.B) {
			readFrac := float32(i) / 10.0
			tsm := NewThreadSafeMap[int, []byte]()
			bb.ResetTimer()
			count := atomic.Int32{}
			bb.RunParallel(func(pb *testing.PB) {
				for pb.Next() {
					if randv2.Float32() < readFrac {
						v, exists := tsm.Get(randv2.Int())
						if exists && v != nil {
							count.Add(1)
						}
					} else {
						_ = tsm.AddOrUpdate(randv2.Int(), value)
					}
				}
			})
		})
	}
}
