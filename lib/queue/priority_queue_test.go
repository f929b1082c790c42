package queue

import (
	"cmp"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benz9527/xtree/lib/tree"
)

type employee struct {
	name   string
	age    int
	salary int64
}

func pushEmployees(t *testing.T, pq PriorityQueue[*employee]) {
	require.NoError(t, pq.Push(NewPriorityQueueItem[*employee](&employee{age: 10, name: "p0"}, 1)))
	require.NoError(t, pq.Push(NewPriorityQueueItem[*employee](&employee{age: 101, name: "p1"}, 101)))
	require.NoError(t, pq.Push(NewPriorityQueueItem[*employee](&employee{age: 10, name: "p2"}, 10)))
	require.NoError(t, pq.Push(NewPriorityQueueItem[*employee](&employee{age: 200, name: "p3"}, 200)))
	require.NoError(t, pq.Push(NewPriorityQueueItem[*employee](&employee{age: 3, name: "p4"}, 3)))
	require.NoError(t, pq.Push(NewPriorityQueueItem[*employee](&employee{age: 1, name: "p5"}, 1)))
	require.NoError(t, pq.Push(NewPriorityQueueItem[*employee](&employee{age: 5, name: "p6"}, 5)))
}

func TestPriorityQueue_MinValueAsHighPriority(t *testing.T) {
	pq := NewRBTreePriorityQueue[*employee](
		WithRBTreePriorityQueueEnableThreadSafe[*employee](),
	)
	pushEmployees(t, pq)
	require.Equal(t, int64(7), pq.Len())
	require.Equal(t, "p0", pq.Peek().Value().name)

	expectedPriorities := []int64{1, 1, 3, 5, 10, 101, 200}
	expectedNames := []string{"p0", "p5", "p4", "p6", "p2", "p1", "p3"}
	for i, priority := range expectedPriorities {
		item := pq.Pop()
		assert.Equal(t, priority, item.Priority(), "priority", i)
		assert.Equal(t, expectedNames[i], item.Value().name, "name", i)
		assert.Equal(t, int64(-1), item.Index())
	}
	require.Nil(t, pq.Pop())
	require.Nil(t, pq.Peek())
}

func TestPriorityQueue_MaxValueAsHighPriority(t *testing.T) {
	testcases := []struct {
		name string
		opts []RBTreePriorityQueueOption[*employee]
	}{
		{
			name: "max first",
			opts: []RBTreePriorityQueueOption[*employee]{
				WithRBTreePriorityQueueMaxFirst[*employee](),
			},
		},
		{
			name: "reversed comparator",
			opts: []RBTreePriorityQueueOption[*employee]{
				WithRBTreePriorityQueueComparator[*employee](func(i, j ReadOnlyPQItem[*employee]) CmpEnum {
					return CmpEnum(cmp.Compare(j.Priority(), i.Priority()))
				}),
			},
		},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(tt *testing.T) {
			pq := NewRBTreePriorityQueue[*employee](tc.opts...)
			pushEmployees(tt, pq)
			expectedPriorities := []int64{200, 101, 10, 5, 3, 1, 1}
			for i, priority := range expectedPriorities {
				item := pq.Pop()
				assert.Equal(tt, priority, item.Priority(), "priority", i)
			}
			require.Equal(tt, int64(0), pq.Len())
		})
	}
}

func TestPriorityQueue_ExtremePriorities(t *testing.T) {
	priorities := []int64{math.MaxInt64, -10, 0, math.MinInt64 + 1, 5, math.MinInt64}
	testcases := []struct {
		name     string
		opts     []RBTreePriorityQueueOption[int]
		expected []int64
	}{
		{
			name:     "min first",
			expected: []int64{math.MinInt64, math.MinInt64 + 1, -10, 0, 5, math.MaxInt64},
		},
		{
			name:     "max first",
			opts:     []RBTreePriorityQueueOption[int]{WithRBTreePriorityQueueMaxFirst[int]()},
			expected: []int64{math.MaxInt64, 5, 0, -10, math.MinInt64 + 1, math.MinInt64},
		},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(tt *testing.T) {
			pq := NewRBTreePriorityQueue[int](tc.opts...)
			for i, pri := range priorities {
				require.NoError(tt, pq.Push(NewPriorityQueueItem[int](i, pri)))
			}
			actual := make([]int64, 0, len(priorities))
			for pq.Len() > 0 {
				actual = append(actual, pq.Pop().Priority())
			}
			require.Equal(tt, tc.expected, actual)
		})
	}
}

func TestPriorityQueue_Capacity(t *testing.T) {
	pq := NewRBTreePriorityQueue[int](WithRBTreePriorityQueueCapacity[int](2))
	require.NoError(t, pq.Push(NewPriorityQueueItem[int](1, 1)))
	require.NoError(t, pq.Push(NewPriorityQueueItem[int](2, 2)))
	item := NewPriorityQueueItem[int](0, 0)
	require.ErrorIs(t, pq.Push(item), tree.ErrOutOfMemory)
	require.Equal(t, int64(-1), item.Index())
	require.Equal(t, 1, pq.Pop().Value())
	require.NoError(t, pq.Push(item))
	require.Equal(t, 0, pq.Peek().Value())
}

func TestPriorityQueue_Concurrent(t *testing.T) {
	pq := NewRBTreePriorityQueue[int](WithRBTreePriorityQueueEnableThreadSafe[int]())
	wg := sync.WaitGroup{}
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 250; i++ {
				v := w*250 + i
				_ = pq.Push(NewPriorityQueueItem[int](v, int64(v%17)))
			}
		}(w)
	}
	wg.Wait()
	require.Equal(t, int64(1000), pq.Len())

	prev := int64(-1)
	for pq.Len() > 0 {
		item := pq.Pop()
		require.GreaterOrEqual(t, item.Priority(), prev)
		prev = item.Priority()
	}
}

func BenchmarkRBTreePriorityQueue_PushPop(b *testing.B) {
	pq := NewRBTreePriorityQueue[int]()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = pq.Push(NewPriorityQueueItem[int](i, int64(i%1024)))
		if i%2 == 1 {
			_ = pq.Pop()
		}
	}
	b.ReportAllocs()
}
