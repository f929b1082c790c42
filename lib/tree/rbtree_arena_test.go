package tree

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestArena(t *testing.T) {
	arena := NewArena[int](WithArenaCapacity[int](4), WithArenaLimit[int](3))
	require.Equal(t, int64(0), arena.Len())
	require.Equal(t, int64(3), arena.Limit())
	require.Equal(t, int64(3), arena.Available())

	refs := make([]nodeRef, 0, 3)
	for i := 0; i < 3; i++ {
		ref, err := arena.get()
		require.NoError(t, err)
		require.NotEqual(t, nilRef, ref)
		require.True(t, arena.isLive(ref))
		refs = append(refs, ref)
	}
	_, err := arena.get()
	require.ErrorIs(t, err, ErrOutOfMemory)
	require.Equal(t, int64(0), arena.Available())

	arena.node(refs[1]).val = 42
	arena.put(refs[1])
	require.False(t, arena.isLive(refs[1]))
	require.Equal(t, int64(2), arena.Len())

	ref, err := arena.get()
	require.NoError(t, err)
	require.Equal(t, refs[1], ref)
	require.Equal(t, 0, arena.node(ref).val)

	require.Panics(t, func() {
		arena.put(nilRef)
	})
	require.False(t, arena.isLive(nilRef))
	require.False(t, arena.isLive(nodeRef(1024)))
}

func TestArenaUnbounded(t *testing.T) {
	arena := NewArena[string](WithArenaLimit[string](-1))
	require.Equal(t, int64(0), arena.Limit())
	require.Equal(t, int64(maxNodeRef-1), arena.Available())
	for i := 0; i < 1000; i++ {
		_, err := arena.get()
		require.NoError(t, err)
	}
	require.Equal(t, int64(1000), arena.Len())
}

func TestRBTreeStats(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	prev := otel.GetMeterProvider()
	otel.SetMeterProvider(provider)
	defer func() {
		otel.SetMeterProvider(prev)
		_ = provider.Shutdown(context.Background())
	}()

	tree, err := NewOrderedRBTree[int, int](Identity[int](),
		WithRBTreeStats[int, int]("stats-test"),
		WithRBTreeArenaOptions[int, int](WithArenaLimit[int](6)),
	)
	require.NoError(t, err)
	for i := 0; i < 6; i++ {
		_, _ = tree.InsertEqual(i)
	}
	_, err = tree.Erase(tree.Begin())
	require.NoError(t, err)

	clone, err := tree.Clone()
	require.NoError(t, err)
	require.Equal(t, int64(4), clone.Len())
	_, err = clone.InsertEqual(100)
	require.NoError(t, err)
	_, err = clone.Erase(clone.Begin())
	require.NoError(t, err)
	clone.Clear()

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	require.Len(t, rm.ScopeMetrics, 1)
	require.Equal(t, RBTreeStatsName+"/stats-test", rm.ScopeMetrics[0].Scope.Name)

	sums := make(map[string]int64)
	for _, m := range rm.ScopeMetrics[0].Metrics {
		if sum, ok := m.Data.(metricdata.Sum[int64]); ok {
			for _, dp := range sum.DataPoints {
				sums[m.Name] += dp.Value
			}
		}
	}
	require.Equal(t, int64(5), sums["rbtree.insert.count"])
	require.Equal(t, int64(1), sums["rbtree.erase.count"])
	require.Equal(t, int64(1), sums["rbtree.alloc.failure.count"])
	require.Equal(t, int64(4), sums["rbtree.size"])
	require.Positive(t, sums["rbtree.rotation.count"])
}
