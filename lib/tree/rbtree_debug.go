package tree

import (
	"errors"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/benz9527/xcoll/lib/xlog"
)

type rbTreeValidator interface {
	validate() error
}

// rbTreeDebugger is nil for the release trees, all methods are nil safe.
type rbTreeDebugger struct {
	logger xlog.XLogger
	op     atomic.Pointer[string]
}

func newRBTreeDebugger(logger xlog.XLogger) *rbTreeDebugger {
	if logger == nil {
		logger = xlog.NewXLogger(
			xlog.WithXLoggerLevel(xlog.LogLevelDebug),
			xlog.WithXLoggerConsoleCore(),
		)
	}
	return &rbTreeDebugger{
		logger: logger.Named("rbtree"),
	}
}

func (d *rbTreeDebugger) clone() *rbTreeDebugger {
	if d == nil {
		return nil
	}
	return &rbTreeDebugger{logger: d.logger}
}

// enter marks a mutation in progress. The overlapped one is a misuse.
func (d *rbTreeDebugger) enter(op string) {
	if d == nil {
		return
	}
	if !d.op.CompareAndSwap(nil, &op) {
		running := d.op.Load()
		err := errors.New("[rbtree] concurrent mutation detected")
		if running != nil {
			d.logger.Error(err, "overlapped mutation", zap.String("op", op), zap.String("running", *running))
		}
		panic(err)
	}
}

func (d *rbTreeDebugger) exit() {
	if d == nil {
		return
	}
	d.op.Store(nil)
}

// checkIdle is called on each iterator step.
func (d *rbTreeDebugger) checkIdle(op string) {
	if d == nil {
		return
	}
	if running := d.op.Load(); running != nil {
		err := errors.New("[rbtree] iterate during mutation")
		d.logger.Error(err, "overlapped iteration", zap.String("op", op), zap.String("running", *running))
		panic(err)
	}
}

func (d *rbTreeDebugger) verify(op string, v rbTreeValidator) {
	if d == nil {
		return
	}
	if err := v.validate(); err != nil {
		d.logger.Error(err, "rbtree invariants broken", zap.String("op", op))
		panic(err)
	}
}
