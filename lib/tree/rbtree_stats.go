package tree

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const (
	RBTreeStatsName = "xtree/rbtree"
)

// rbTreeStats records through the global otel meter provider. All the
// methods are nil-safe, a tree without stats keeps a nil pointer.
type rbTreeStats struct {
	size           metric.Int64UpDownCounter
	insertCount    metric.Int64Counter
	eraseCount     metric.Int64Counter
	rotationCount  metric.Int64Counter
	allocFailures  metric.Int64Counter
	rebalanceSteps metric.Int64Histogram
}

func (stats *rbTreeStats) RecordSize(delta int64) {
	if stats == nil {
		return
	}
	stats.size.Add(context.Background(), delta)
}

func (stats *rbTreeStats) IncreaseInsertCount() {
	if stats == nil {
		return
	}
	stats.insertCount.Add(context.Background(), 1)
	stats.size.Add(context.Background(), 1)
}

func (stats *rbTreeStats) IncreaseEraseCount() {
	if stats == nil {
		return
	}
	stats.eraseCount.Add(context.Background(), 1)
	stats.size.Add(context.Background(), -1)
}

func (stats *rbTreeStats) IncreaseRotationCount() {
	if stats == nil {
		return
	}
	stats.rotationCount.Add(context.Background(), 1)
}

func (stats *rbTreeStats) IncreaseAllocFailureCount() {
	if stats == nil {
		return
	}
	stats.allocFailures.Add(context.Background(), 1)
}

func (stats *rbTreeStats) RecordRebalanceSteps(steps int64) {
	if stats == nil {
		return
	}
	stats.rebalanceSteps.Record(context.Background(), steps)
}

func newRBTreeStats(name string) *rbTreeStats {
	meterName := fmt.Sprintf("%s/%s", RBTreeStatsName, name)
	meter := otel.Meter(meterName)
	return &rbTreeStats{
		size: lo.Must[metric.Int64UpDownCounter](meter.Int64UpDownCounter(
			"rbtree.size",
			metric.WithDescription("The number of elements in the red-black tree."),
		)),
		insertCount: lo.Must[metric.Int64Counter](meter.Int64Counter(
			"rbtree.insert.count",
			metric.WithDescription("The number of nodes inserted into the red-black tree."),
		)),
		eraseCount: lo.Must[metric.Int64Counter](meter.Int64Counter(
			"rbtree.erase.count",
			metric.WithDescription("The number of nodes erased from the red-black tree."),
		)),
		rotationCount: lo.Must[metric.Int64Counter](meter.Int64Counter(
			"rbtree.rotation.count",
			metric.WithDescription("The number of rotations done while rebalancing."),
		)),
		allocFailures: lo.Must[metric.Int64Counter](meter.Int64Counter(
			"rbtree.alloc.failure.count",
			metric.WithDescription("The number of node allocations rejected by the arena."),
		)),
		rebalanceSteps: lo.Must[metric.Int64Histogram](meter.Int64Histogram(
			"rbtree.rebalance.steps",
			metric.WithDescription("The fixup loop iterations of a single insert or erase."),
		)),
	}
}
