package workload

import (
	"context"
	"fmt"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/benz9527/xcoll/lib/list"
	"github.com/benz9527/xcoll/lib/tree"
	"github.com/benz9527/xcoll/lib/vector"
	"github.com/benz9527/xcoll/lib/xlog"
)

// One op out of opSampleMask+1 is timed.
const opSampleMask = 0x3f

type roundContext struct {
	cfg    *Config
	rng    *rand.Rand
	stats  *workloadStats
	logger xlog.XLogger
	round  int
}

// Each op is counted once: an applied insert or erase, a duplicate
// insert, or a miss (erase of an absent key).
type roundResult struct {
	ops        int64
	inserts    int64
	erases     int64
	duplicates int64
	misses     int64
}

type roundFunc func(ctx context.Context, rc *roundContext) (roundResult, error)

func roundFuncOf(c Container) roundFunc {
	switch c {
	case RBTreeContainer:
		return runRBTreeRound
	case ListContainer:
		return runListRound
	case VectorContainer:
		return runVectorRound
	default:
	}
	return nil
}

func (rc *roundContext) mismatch(c Container, op int, format string, args ...any) error {
	return fmt.Errorf("%s round %d op %d: %s: %w", c, rc.round, op, fmt.Sprintf(format, args...), ErrWorkloadOracleMismatch)
}

func (rc *roundContext) shouldValidate(op int) bool {
	return rc.cfg.ValidateEvery > 0 && (op+1)%rc.cfg.ValidateEvery == 0
}

func (rc *roundContext) isErase() bool {
	return rc.rng.Float64() < rc.cfg.EraseRatio
}

// timed runs fn and records the op, the duration is sampled.
func (rc *roundContext) timed(c Container, name string, op int, fn func()) {
	if op&opSampleMask != 0 {
		fn()
		rc.stats.RecordOp(c, name, 0)
		return
	}
	start := time.Now()
	fn()
	rc.stats.RecordOp(c, name, time.Since(start))
}

func verifyRBTree(rc *roundContext, m tree.RBTree[int, int], oracle map[int]int, lsm *lsmOracle, op int) error {
	if err := tree.Validate(m); err != nil {
		return fmt.Errorf("rbtree round %d op %d: %w", rc.round, op, err)
	}
	if m.Len() != int64(len(oracle)) {
		return rc.mismatch(RBTreeContainer, op, "len %d, expected %d", m.Len(), len(oracle))
	}
	keys := lo.Keys(oracle)
	slices.Sort(keys)
	idx := 0
	for k, v := range m.All() {
		if k != keys[idx] || v != oracle[k] {
			return rc.mismatch(RBTreeContainer, op, "entry %d is (%d, %d)", idx, k, v)
		}
		idx++
	}
	if lsm == nil {
		return nil
	}
	diff, err := lsm.compare(m.All())
	if err != nil {
		return fmt.Errorf("rbtree round %d op %d: %w", rc.round, op, err)
	}
	if diff != "" {
		return rc.mismatch(RBTreeContainer, op, "%s", diff)
	}
	return nil
}

func runRBTreeRound(ctx context.Context, rc *roundContext) (roundResult, error) {
	res := roundResult{}
	opts := make([]tree.RBTreeOpt[int, int], 0, 1)
	if rc.cfg.Debug {
		opts = append(opts, tree.WithRBTreeDebug[int, int](rc.logger))
	}
	m := tree.NewRBTree[int, int](opts...)
	oracle := make(map[int]int, rc.cfg.KeySpace)
	defer func() {
		rc.stats.RecordSize(RBTreeContainer, -m.Len())
		m.Clear()
	}()

	var (
		lsm *lsmOracle
		err error
	)
	if rc.cfg.LSMOracle {
		if lsm, err = openLSMOracle(rc.logger); err != nil {
			return res, err
		}
		defer func() {
			if err := lsm.close(); err != nil {
				rc.logger.Warn("lsm oracle close failed", zap.Int("round", rc.round), zap.Error(err))
			}
		}()
	}

	for i := 0; i < rc.cfg.Ops; i++ {
		if i&0x3ff == 0 && ctx.Err() != nil {
			return res, ctx.Err()
		}
		key := rc.rng.IntN(rc.cfg.KeySpace)
		_, exists := oracle[key]
		if rc.isErase() {
			var erased bool
			rc.timed(RBTreeContainer, "erase", i, func() {
				erased = m.Erase(key)
			})
			if erased != exists {
				return res, rc.mismatch(RBTreeContainer, i, "erase %d reports %v", key, erased)
			}
			if erased && lsm != nil {
				err = lsm.delete(key)
			}
			if erased {
				delete(oracle, key)
				res.erases++
				rc.stats.RecordSize(RBTreeContainer, -1)
			} else {
				res.misses++
			}
		} else {
			var inserted bool
			rc.timed(RBTreeContainer, "insert", i, func() {
				_, inserted = m.Insert(key, i)
			})
			if inserted == exists {
				return res, rc.mismatch(RBTreeContainer, i, "insert %d reports %v", key, inserted)
			}
			if inserted && lsm != nil {
				err = lsm.set(key, i)
			}
			if inserted {
				oracle[key] = i
				res.inserts++
				rc.stats.RecordSize(RBTreeContainer, 1)
			} else {
				res.duplicates++
			}
		}
		if err != nil {
			return res, fmt.Errorf("rbtree round %d op %d: %w", rc.round, i, err)
		}
		res.ops++
		if rc.shouldValidate(i) {
			if err = verifyRBTree(rc, m, oracle, lsm, i); err != nil {
				return res, err
			}
		}
	}
	return res, verifyRBTree(rc, m, oracle, lsm, rc.cfg.Ops)
}

func verifyList(rc *roundContext, l list.SinglyLinkedList[int], oracle []int, op int) error {
	if l.Len() != int64(len(oracle)) {
		return rc.mismatch(ListContainer, op, "len %d, expected %d", l.Len(), len(oracle))
	}
	if back := l.Back(); len(oracle) > 0 && (back == nil || back.Value != oracle[len(oracle)-1]) {
		return rc.mismatch(ListContainer, op, "broken tail")
	}
	idx := 0
	for v := range l.All() {
		if v != oracle[idx] {
			return rc.mismatch(ListContainer, op, "element %d is %d", idx, v)
		}
		idx++
	}
	return nil
}

func runListRound(ctx context.Context, rc *roundContext) (roundResult, error) {
	res := roundResult{}
	l := list.NewSinglyLinkedList[int]()
	oracle := make([]int, 0, rc.cfg.Ops)
	defer func() {
		rc.stats.RecordSize(ListContainer, -l.Len())
		l.Clear()
	}()

	for i := 0; i < rc.cfg.Ops; i++ {
		if i&0x3ff == 0 && ctx.Err() != nil {
			return res, ctx.Err()
		}
		v := rc.rng.IntN(rc.cfg.KeySpace)
		switch {
		case rc.isErase() && len(oracle) > 0:
			if rc.rng.IntN(2) == 0 {
				var (
					got int
					err error
				)
				rc.timed(ListContainer, "pop_front", i, func() {
					got, err = l.PopFront()
				})
				if err != nil || got != oracle[0] {
					return res, rc.mismatch(ListContainer, i, "pop front %d, %v", got, err)
				}
				oracle = oracle[1:]
			} else {
				target := oracle[rc.rng.IntN(len(oracle))]
				var removed *list.SinglyNodeElement[int]
				rc.timed(ListContainer, "remove", i, func() {
					if e, ok := l.FindFirst(target); ok {
						removed = l.Remove(e)
					}
				})
				if removed == nil || removed.Value != target {
					return res, rc.mismatch(ListContainer, i, "remove %d", target)
				}
				oracle = slices.Delete(oracle, slices.Index(oracle, target), slices.Index(oracle, target)+1)
			}
			res.erases++
			rc.stats.RecordSize(ListContainer, -1)
		case rc.rng.IntN(2) == 0:
			rc.timed(ListContainer, "push_front", i, func() {
				l.PushFront(v)
			})
			oracle = slices.Insert(oracle, 0, v)
			res.inserts++
			rc.stats.RecordSize(ListContainer, 1)
		default:
			rc.timed(ListContainer, "append", i, func() {
				l.AppendValue(v)
			})
			oracle = append(oracle, v)
			res.inserts++
			rc.stats.RecordSize(ListContainer, 1)
		}
		res.ops++
		if rc.shouldValidate(i) {
			if err := verifyList(rc, l, oracle, i); err != nil {
				return res, err
			}
		}
	}
	return res, verifyList(rc, l, oracle, rc.cfg.Ops)
}

func verifyVector(rc *roundContext, vec vector.Vector[int], oracle []int, op int) error {
	if vec.Len() != len(oracle) || vec.Cap() < vec.Len() {
		return rc.mismatch(VectorContainer, op, "len %d cap %d, expected len %d", vec.Len(), vec.Cap(), len(oracle))
	}
	if !slices.Equal(vec.Values(), oracle) {
		return rc.mismatch(VectorContainer, op, "elements diverge")
	}
	return nil
}

func runVectorRound(ctx context.Context, rc *roundContext) (roundResult, error) {
	res := roundResult{}
	vec := vector.NewVector[int]()
	oracle := make([]int, 0, rc.cfg.Ops)
	defer func() {
		rc.stats.RecordSize(VectorContainer, -int64(vec.Len()))
		vec.Clear()
	}()

	for i := 0; i < rc.cfg.Ops; i++ {
		if i&0x3ff == 0 && ctx.Err() != nil {
			return res, ctx.Err()
		}
		v := rc.rng.IntN(rc.cfg.KeySpace)
		var err error
		switch {
		case rc.isErase() && len(oracle) > 0:
			pos := rc.rng.IntN(len(oracle))
			rc.timed(VectorContainer, "erase", i, func() {
				err = vec.Erase(pos)
			})
			oracle = slices.Delete(oracle, pos, pos+1)
			res.erases++
			rc.stats.RecordSize(VectorContainer, -1)
		case rc.rng.IntN(4) == 0:
			pos := rc.rng.IntN(len(oracle) + 1)
			rc.timed(VectorContainer, "insert", i, func() {
				err = vec.Insert(pos, v)
			})
			oracle = slices.Insert(oracle, pos, v)
			res.inserts++
			rc.stats.RecordSize(VectorContainer, 1)
		default:
			rc.timed(VectorContainer, "push_back", i, func() {
				vec.PushBack(v)
			})
			oracle = append(oracle, v)
			res.inserts++
			rc.stats.RecordSize(VectorContainer, 1)
		}
		if err != nil {
			return res, fmt.Errorf("vector round %d op %d: %w", rc.round, i, err)
		}
		res.ops++
		if rc.shouldValidate(i) {
			if err = verifyVector(rc, vec, oracle, i); err != nil {
				return res, err
			}
		}
	}
	return res, verifyVector(rc, vec, oracle, rc.cfg.Ops)
}
