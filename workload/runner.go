package workload

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/benz9527/xcoll/lib/tree"
	"github.com/benz9527/xcoll/lib/xlog"
	"github.com/benz9527/xcoll/observability"
)

type ContainerReport struct {
	Container Container
	Rounds    int
	Failures  int
	Ops       int64
	Inserts   int64
	Erases    int64
	// Duplicates are the inserts of present keys, Misses the erases of
	// absent keys. Ops == Inserts + Erases + Duplicates + Misses.
	Duplicates int64
	Misses     int64
	// Elapsed is the sum of the round durations.
	Elapsed time.Duration
}

type Report struct {
	Containers []*ContainerReport
	// RSS of the process after all rounds, 0 if unavailable.
	RSS uint64
}

func (r *Report) Failed() bool {
	for _, c := range r.Containers {
		if c.Failures > 0 {
			return true
		}
	}
	return false
}

func (r *Report) container(c Container) *ContainerReport {
	for _, cr := range r.Containers {
		if cr.Container == c {
			return cr
		}
	}
	cr := &ContainerReport{Container: c}
	r.Containers = append(r.Containers, cr)
	return cr
}

// Runner drives the rounds on an ants pool. Each round owns its
// container exclusively.
type Runner struct {
	cfg    *Config
	logger xlog.XLogger
	pool   *ants.Pool
	stats  *workloadStats
}

func NewRunner(cfg *Config, logger xlog.XLogger) (*Runner, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger = logger.Named("workload")
	pool, err := ants.NewPool(
		cfg.Workers,
		ants.WithPreAlloc(true),
		ants.WithLogger(xlog.NewAntsXLogger(logger)),
	)
	if err != nil {
		return nil, fmt.Errorf("workload pool: %w", err)
	}
	return &Runner{
		cfg:    cfg,
		logger: logger,
		pool:   pool,
		stats:  newWorkloadStats(),
	}, nil
}

func (r *Runner) Release() {
	if r == nil || r.pool == nil {
		return
	}
	r.pool.Release()
}

func (r *Runner) runRound(ctx context.Context, c Container, round int) (res roundResult, err error) {
	defer func() {
		if v := recover(); v != nil {
			err = fmt.Errorf("%s round %d: %v: %w", c, round, v, ErrWorkloadRoundPanic)
		}
	}()

	rc := &roundContext{
		cfg:    r.cfg,
		rng:    rand.New(rand.NewPCG(r.cfg.Seed, uint64(round))),
		stats:  r.stats,
		logger: r.logger,
		round:  round,
	}
	return roundFuncOf(c)(ctx, rc)
}

func isValidationFailure(err error) bool {
	var rbErr tree.RBTreeErr
	return errors.Is(err, ErrWorkloadOracleMismatch) ||
		errors.Is(err, ErrWorkloadRoundPanic) ||
		errors.As(err, &rbErr)
}

// Run executes all rounds of the selected containers and waits for them.
// The round errors are combined.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	var (
		wg     sync.WaitGroup
		lock   sync.Mutex
		errs   error
		report = &Report{}
	)
	for _, c := range r.cfg.Container.expand() {
		report.container(c)
		for round := 0; round < r.cfg.Rounds; round++ {
			wg.Add(1)
			err := r.pool.Submit(func() {
				defer wg.Done()
				start := time.Now()
				res, err := r.runRound(ctx, c, round)
				elapsed := time.Since(start)
				r.stats.RecordRound(c, elapsed)

				lock.Lock()
				defer lock.Unlock()
				cr := report.container(c)
				cr.Rounds++
				cr.Ops += res.ops
				cr.Inserts += res.inserts
				cr.Erases += res.erases
				cr.Duplicates += res.duplicates
				cr.Misses += res.misses
				cr.Elapsed += elapsed
				if err != nil {
					if isValidationFailure(err) {
						cr.Failures++
						r.stats.IncreaseValidateFailure(c)
					}
					r.logger.Error(err, "round failed", zap.String("container", string(c)), zap.Int("round", round))
					errs = multierr.Append(errs, err)
					return
				}
				r.logger.Debug("round done",
					zap.String("container", string(c)),
					zap.Int("round", round),
					zap.Int64("ops", res.ops),
					zap.Duration("elapsed", elapsed),
				)
			})
			if err != nil {
				wg.Done()
				lock.Lock()
				errs = multierr.Append(errs, fmt.Errorf("%s round %d submit: %w", c, round, err))
				lock.Unlock()
			}
		}
	}
	wg.Wait()

	if rss, err := observability.ProcessRSS(); err == nil {
		report.RSS = rss
	} else {
		r.logger.Warn("process rss unavailable", zap.Error(err))
	}
	for _, cr := range report.Containers {
		r.logger.Info("workload summary",
			zap.String("container", string(cr.Container)),
			zap.Int("rounds", cr.Rounds),
			zap.Int("failures", cr.Failures),
			zap.Int64("ops", cr.Ops),
			zap.Int64("inserts", cr.Inserts),
			zap.Int64("erases", cr.Erases),
			zap.Duration("elapsed", cr.Elapsed),
			zap.Uint64("rss", report.RSS),
		)
	}
	return report, errs
}
