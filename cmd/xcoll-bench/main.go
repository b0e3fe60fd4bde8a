package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/benz9527/xcoll/lib/xlog"
	"github.com/benz9527/xcoll/observability"
	"github.com/benz9527/xcoll/workload"
)

const metricsInterval = 5 * time.Second

var errValidationFailed = errors.New("xcoll-bench: container validation failed")

type flagValues struct {
	configPath    string
	container     string
	workers       int
	rounds        int
	ops           int
	keySpace      int
	eraseRatio    float64
	validateEvery int
	seed          uint64
	metrics       string
	metricsAddr   string
	logLevel      string
	debug         bool
	lsmOracle     bool
}

func main() {
	if err := newCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newCommand() *cobra.Command {
	fv := &flagValues{}
	command := &cobra.Command{
		Use:          "xcoll-bench",
		Short:        "Drive randomized workloads against the xcoll containers and validate them",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := workload.LoadConfig(fv.configPath)
			if err != nil {
				return err
			}
			fv.apply(cmd.Flags(), cfg)
			if err = cfg.Validate(); err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}
	fv.bind(command.Flags(), workload.DefaultConfig())
	return command
}

func (fv *flagValues) bind(flags *pflag.FlagSet, defaults *workload.Config) {
	flags.StringVarP(&fv.configPath, "config", "c", "", "set workload configuration file path")
	flags.StringVar(&fv.container, "container", string(defaults.Container), "container to drive: rbtree, list, vector or all")
	flags.IntVar(&fv.workers, "workers", defaults.Workers, "worker pool size")
	flags.IntVar(&fv.rounds, "rounds", defaults.Rounds, "rounds per container")
	flags.IntVar(&fv.ops, "ops", defaults.Ops, "operations per round")
	flags.IntVar(&fv.keySpace, "keyspace", defaults.KeySpace, "key space of the random keys")
	flags.Float64Var(&fv.eraseRatio, "erase-ratio", defaults.EraseRatio, "ratio of erase operations")
	flags.IntVar(&fv.validateEvery, "validate-every", defaults.ValidateEvery, "validate the container every N operations, 0 only at the end of a round")
	flags.Uint64Var(&fv.seed, "seed", defaults.Seed, "random seed")
	flags.StringVar(&fv.metrics, "metrics", defaults.Metrics, "metrics exporter: console, prometheus or none")
	flags.StringVar(&fv.metricsAddr, "metrics-addr", defaults.MetricsAddr, "listen address of the prometheus /metrics endpoint during the run")
	flags.StringVar(&fv.logLevel, "log-level", defaults.LogLevel, "log level: DEBUG, INFO, WARN or ERROR")
	flags.BoolVar(&fv.debug, "debug", defaults.Debug, "check the rbtree invariants on every mutation")
	flags.BoolVar(&fv.lsmOracle, "lsm-oracle", defaults.LSMOracle, "cross-check the rbtree order against an in-memory pebble store")
}

// apply overrides the config by the flags set explicitly.
func (fv *flagValues) apply(flags *pflag.FlagSet, cfg *workload.Config) {
	flags.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "container":
			cfg.Container = workload.Container(fv.container)
		case "workers":
			cfg.Workers = fv.workers
		case "rounds":
			cfg.Rounds = fv.rounds
		case "ops":
			cfg.Ops = fv.ops
		case "keyspace":
			cfg.KeySpace = fv.keySpace
		case "erase-ratio":
			cfg.EraseRatio = fv.eraseRatio
		case "validate-every":
			cfg.ValidateEvery = fv.validateEvery
		case "seed":
			cfg.Seed = fv.seed
		case "metrics":
			cfg.Metrics = fv.metrics
		case "metrics-addr":
			cfg.MetricsAddr = fv.metricsAddr
		case "log-level":
			cfg.LogLevel = fv.logLevel
		case "debug":
			cfg.Debug = fv.debug
		case "lsm-oracle":
			cfg.LSMOracle = fv.lsmOracle
		default:
		}
	})
}

func newLogger(cfg *workload.Config) xlog.XLogger {
	return xlog.NewXLogger(
		xlog.WithXLoggerLevel(cfg.XLogLevel()),
		xlog.WithXLoggerEncoder(xlog.PlainText),
		xlog.WithXLoggerConsoleCore(),
	)
}

func registerMetrics(lc fx.Lifecycle, cfg *workload.Config, logger xlog.XLogger) error {
	typ, err := observability.ParseMetricsExporterType(cfg.Metrics)
	if err != nil {
		return err
	}
	shutdown, err := observability.NewMetricsExporter(typ, metricsInterval, metricsInterval,
		observability.WithPrometheusAddr(cfg.MetricsAddr),
	)
	if err != nil {
		return err
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			observability.InitAppStats(context.Background(), "bench", nil)
			fields := []zap.Field{zap.String("exporter", typ.String())}
			if typ == observability.PrometheusMetrics {
				fields = append(fields, zap.String("endpoint", "http://"+cfg.MetricsAddr+"/metrics"))
			}
			logger.Info("metrics exporter started", fields...)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return shutdown(ctx)
		},
	})
	return nil
}

func registerRunner(lc fx.Lifecycle, runner *workload.Runner, logger xlog.XLogger) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			runner.Release()
			_ = logger.Sync()
			return nil
		},
	})
}

func run(ctx context.Context, cfg *workload.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := newLogger(cfg)
	undo, err := maxprocs.Set(maxprocs.Logger(func(format string, args ...any) {
		logger.Logf(zapcore.InfoLevel, format, args...)
	}))
	if err != nil {
		logger.Warn("set maxprocs failed", zap.Error(err))
	}
	defer undo()

	var runner *workload.Runner
	app := fx.New(
		fx.WithLogger(func() fxevent.Logger {
			return xlog.NewFxXLogger(logger)
		}),
		fx.Supply(cfg),
		fx.Provide(
			func() xlog.XLogger { return logger },
			workload.NewRunner,
		),
		// The meter provider is installed before the runner creates its instruments.
		fx.Invoke(registerMetrics),
		fx.Invoke(registerRunner),
		fx.Populate(&runner),
	)
	if err = app.Err(); err != nil {
		return err
	}
	if err = app.Start(ctx); err != nil {
		return err
	}

	report, runErr := runner.Run(ctx)

	stopCtx, cancel := context.WithTimeout(context.Background(), fx.DefaultTimeout)
	defer cancel()
	if err = app.Stop(stopCtx); err != nil {
		logger.Error(err, "stop failed")
	}

	if runErr != nil {
		return runErr
	}
	if report.Failed() {
		return errValidationFailed
	}
	return nil
}
