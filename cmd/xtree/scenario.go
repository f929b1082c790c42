package main

import (
	"context"
	"fmt"
	randv2 "math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/samber/lo"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/benz9527/xtree/lib/infra"
	"github.com/benz9527/xtree/lib/tree"
	"github.com/benz9527/xtree/observability"
	"github.com/benz9527/xtree/xlog"
)

type scenarioFunc func(ctx context.Context, r *runner) error

type runner struct {
	cfg       *config
	logger    xlog.XLogger
	scenarios map[string]scenarioFunc
}

func newRunner(cfg *config, logger xlog.XLogger) *runner {
	return &runner{
		cfg:    cfg,
		logger: logger,
		scenarios: map[string]scenarioFunc{
			scenarioBasic:      runBasic,
			scenarioDuplicates: runDuplicates,
			scenarioRandom:     runRandom,
			scenarioStress:     runStress,
		},
	}
}

// Run executes the configured scenarios in order and returns the merged
// failures. The remaining scenarios are skipped once ctx is done.
func (r *runner) Run(ctx context.Context) error {
	var merr error
	for _, name := range r.cfg.scenarios() {
		if err := ctx.Err(); err != nil {
			return multierr.Append(merr, err)
		}
		fn, ok := r.scenarios[name]
		if !ok {
			merr = multierr.Append(merr, errUnknownScenario)
			continue
		}
		start := time.Now()
		if err := fn(ctx, r); err != nil {
			r.logger.ErrorStack(err, "scenario failed", zap.String("scenario", name))
			merr = multierr.Append(merr, err)
			continue
		}
		r.logger.Info("scenario passed",
			zap.String("scenario", name),
			zap.Duration("elapsed", time.Since(start)),
		)
	}
	return merr
}

func (r *runner) treeOptions() []tree.RBTreeOption[int, int] {
	opts := []tree.RBTreeOption[int, int]{
		tree.WithRBTreeStats[int, int]("xtree-demo"),
	}
	if r.cfg.ArenaLimit > 0 {
		opts = append(opts, tree.WithRBTreeArenaOptions[int, int](tree.WithArenaLimit[int](r.cfg.ArenaLimit)))
	}
	return opts
}

func failf(scenario, format string, args ...any) error {
	return infra.NewErrorStack(fmt.Sprintf("[xtree] "+scenario+": "+format, args...))
}

func expectInOrder(scenario string, t tree.RBTree[int, int], expected []int) error {
	if actual := slices.Collect(t.All()); !slices.Equal(actual, expected) {
		return failf(scenario, "in-order %v, expected %v", actual, expected)
	}
	return nil
}

func runBasic(_ context.Context, r *runner) error {
	t, err := tree.NewOrderedRBTree[int, int](tree.Identity[int](), r.treeOptions()...)
	if err != nil {
		return infra.WrapErrorStack(err)
	}
	defer t.Clear()

	for _, v := range []int{10, 5, 15, 3, 7, 12, 18} {
		if _, err = t.InsertEqual(v); err != nil {
			return infra.WrapErrorStack(err)
		}
		r.logger.Debug("basic insert", zap.Int("value", v), zap.Int64("len", t.Len()))
	}
	if err = expectInOrder(scenarioBasic, t, []int{3, 5, 7, 10, 12, 15, 18}); err != nil {
		return err
	}
	minVal, _ := t.Minimum().Value()
	maxVal, _ := t.Maximum().Value()
	if minVal != 3 || maxVal != 18 {
		return failf(scenarioBasic, "minimum %d maximum %d, expected 3 and 18", minVal, maxVal)
	}
	r.logger.Debug("basic bounds", zap.Int("min", minVal), zap.Int("max", maxVal))

	next, err := t.Erase(t.Find(10))
	if err != nil {
		return infra.WrapErrorStack(err)
	}
	if v, _ := next.Value(); v != 12 {
		return failf(scenarioBasic, "erase returned %d, expected 12", v)
	}
	if err = expectInOrder(scenarioBasic, t, []int{3, 5, 7, 12, 15, 18}); err != nil {
		return err
	}
	if err = tree.Validate(t); err != nil {
		return infra.WrapErrorStack(err)
	}
	if !t.Find(99).IsEnd() {
		return failf(scenarioBasic, "find(99) is not the end")
	}
	r.logger.Debug("basic erase", zap.Ints("values", slices.Collect(t.All())))
	return nil
}

type taggedValue struct {
	key int
	tag string
}

func runDuplicates(_ context.Context, r *runner) error {
	t, err := tree.NewOrderedRBTree[int, taggedValue](func(v taggedValue) int {
		return v.key
	})
	if err != nil {
		return infra.WrapErrorStack(err)
	}
	defer t.Clear()

	for _, tag := range []string{"a", "b", "c"} {
		if _, err = t.InsertEqual(taggedValue{key: 5, tag: tag}); err != nil {
			return infra.WrapErrorStack(err)
		}
	}
	tags := lo.Map(slices.Collect(t.All()), func(v taggedValue, _ int) string {
		return v.tag
	})
	if !slices.Equal(tags, []string{"a", "b", "c"}) {
		return failf(scenarioDuplicates, "equal keys in order %v, expected [a b c]", tags)
	}

	it, ok, err := t.InsertUnique(taggedValue{key: 5, tag: "d"})
	if err != nil {
		return infra.WrapErrorStack(err)
	}
	if key, _ := it.Key(); ok || key != 5 || t.Len() != 3 {
		return failf(scenarioDuplicates, "insert unique of a present key inserted %v, len %d", ok, t.Len())
	}
	if _, ok, err = t.InsertUnique(taggedValue{key: 6, tag: "e"}); err != nil || !ok {
		return failf(scenarioDuplicates, "insert unique of an absent key failed, inserted %v, err %v", ok, err)
	}
	if n := t.EraseKey(5); n != 3 {
		return failf(scenarioDuplicates, "erased %d equal keys, expected 3", n)
	}
	if err = tree.Validate(t); err != nil {
		return infra.WrapErrorStack(err)
	}
	r.logger.Debug("duplicates", zap.Strings("tags", tags), zap.Int64("len", t.Len()))
	return nil
}

// fillAndDrain inserts count random values in [-100, 100] and erases them
// again in a shuffled order. The tree is validated after every step if
// validate is set, otherwise once per phase.
func fillAndDrain(ctx context.Context, scenario string, rnd *randv2.Rand, t tree.RBTree[int, int], count int, validate bool) error {
	values := make([]int, 0, count)
	for i := 0; i < count; i++ {
		v := rnd.IntN(201) - 100
		if _, err := t.InsertEqual(v); err != nil {
			return infra.WrapErrorStack(err)
		}
		values = append(values, v)
		if validate {
			if err := tree.Validate(t); err != nil {
				return infra.AppendErrorStack(failf(scenario, "insert %d", v), err)
			}
		}
	}
	if err := tree.Validate(t); err != nil {
		return infra.WrapErrorStack(err)
	}
	if uniq := int64(len(lo.Uniq(values))); t.Len() != int64(count) || distinctKeys(t) != uniq {
		return failf(scenario, "len %d with %d distinct keys, expected %d with %d", t.Len(), distinctKeys(t), count, uniq)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	rnd.Shuffle(len(values), func(i, j int) {
		values[i], values[j] = values[j], values[i]
	})
	for _, v := range values {
		it := t.Find(v)
		if it.IsEnd() {
			return failf(scenario, "find(%d) is the end", v)
		}
		if _, err := t.Erase(it); err != nil {
			return infra.WrapErrorStack(err)
		}
		if validate {
			if err := tree.Validate(t); err != nil {
				return infra.AppendErrorStack(failf(scenario, "erase %d", v), err)
			}
		}
	}
	if !t.Empty() || !t.Begin().Equal(t.End()) {
		return failf(scenario, "tree is not empty after erasing every value, len %d", t.Len())
	}
	return nil
}

func distinctKeys(t tree.RBTree[int, int]) int64 {
	n := int64(0)
	for it := t.Begin(); !it.IsEnd(); it = t.UpperBound(lo.Must(it.Key())) {
		n++
	}
	return n
}

func runRandom(ctx context.Context, r *runner) error {
	t, err := tree.NewOrderedRBTree[int, int](tree.Identity[int](), r.treeOptions()...)
	if err != nil {
		return infra.WrapErrorStack(err)
	}
	rnd := randv2.New(randv2.NewPCG(r.cfg.Seed, r.cfg.Seed))
	r.logger.Debug("random", zap.Uint64("seed", r.cfg.Seed), zap.Int("count", r.cfg.Count))
	return fillAndDrain(ctx, scenarioRandom, rnd, t, r.cfg.Count, true)
}

// runStress fills one tree per worker on an ants pool. Each tree has its
// own seed, so the trees differ.
func runStress(ctx context.Context, r *runner) error {
	pool, err := ants.NewPool(r.cfg.Workers,
		ants.WithLogger(xlog.NewAntsXLogger(r.logger)),
	)
	if err != nil {
		return infra.WrapErrorStack(err)
	}
	defer pool.Release()

	var (
		wg   sync.WaitGroup
		lock sync.Mutex
		merr error
	)
	for i := 0; i < r.cfg.Workers; i++ {
		seed := r.cfg.Seed + uint64(i)
		wg.Add(1)
		err = pool.Submit(func() {
			defer wg.Done()
			t, err := tree.NewOrderedRBTree[int, int](tree.Identity[int](), r.treeOptions()...)
			if err == nil {
				rnd := randv2.New(randv2.NewPCG(seed, seed))
				err = fillAndDrain(ctx, scenarioStress, rnd, t, r.cfg.Count, false)
			}
			if err != nil {
				lock.Lock()
				merr = multierr.Append(merr, err)
				lock.Unlock()
			}
		})
		if err != nil {
			wg.Done()
			lock.Lock()
			merr = multierr.Append(merr, err)
			lock.Unlock()
			break
		}
	}
	wg.Wait()

	if rss, err := observability.ProcessRSS(); err == nil {
		r.logger.Info("stress memory",
			zap.Int("workers", r.cfg.Workers),
			zap.Int("count", r.cfg.Count),
			zap.Uint64("rss", rss),
		)
	}
	if merr != nil {
		return infra.WrapErrorStack(merr)
	}
	return nil
}
