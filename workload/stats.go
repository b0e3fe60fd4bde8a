package workload

import (
	"context"
	"time"

	"github.com/samber/lo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	WorkloadStatsName = "xcoll/workload"
)

type workloadStats struct {
	opCount         metric.Int64Counter
	opDurations     metric.Int64Histogram
	roundDurations  metric.Int64Histogram
	validateFailure metric.Int64Counter
	containerSize   metric.Int64UpDownCounter
}

func newWorkloadStats() *workloadStats {
	meter := otel.Meter(WorkloadStatsName)
	return &workloadStats{
		opCount: lo.Must[metric.Int64Counter](meter.Int64Counter(
			"xcoll.op.count",
			metric.WithDescription("The number of container operations."),
		)),
		opDurations: lo.Must[metric.Int64Histogram](meter.Int64Histogram(
			"xcoll.op.duration",
			metric.WithDescription("The duration of the sampled container operations. In nanoseconds."),
			metric.WithUnit("ns"),
		)),
		roundDurations: lo.Must[metric.Int64Histogram](meter.Int64Histogram(
			"xcoll.round.duration",
			metric.WithDescription("The duration of a workload round. In milliseconds."),
			metric.WithUnit("ms"),
		)),
		validateFailure: lo.Must[metric.Int64Counter](meter.Int64Counter(
			"xcoll.validate.failure.count",
			metric.WithDescription("The number of failed container validations."),
		)),
		containerSize: lo.Must[metric.Int64UpDownCounter](meter.Int64UpDownCounter(
			"xcoll.container.size",
			metric.WithDescription("The number of live elements in the workload containers."),
		)),
	}
}

func containerAttrs(c Container, op string) metric.MeasurementOption {
	return metric.WithAttributeSet(attribute.NewSet(
		attribute.String("xcoll.container", string(c)),
		attribute.String("xcoll.op", op),
	))
}

func (stats *workloadStats) RecordOp(c Container, op string, elapsed time.Duration) {
	if stats == nil {
		return
	}
	as := containerAttrs(c, op)
	stats.opCount.Add(context.Background(), 1, as)
	if elapsed > 0 {
		stats.opDurations.Record(context.Background(), elapsed.Nanoseconds(), as)
	}
}

func (stats *workloadStats) RecordRound(c Container, elapsed time.Duration) {
	if stats == nil {
		return
	}
	stats.roundDurations.Record(context.Background(), elapsed.Milliseconds(), containerAttrs(c, "round"))
}

func (stats *workloadStats) IncreaseValidateFailure(c Container) {
	if stats == nil {
		return
	}
	stats.validateFailure.Add(context.Background(), 1, containerAttrs(c, "validate"))
}

func (stats *workloadStats) RecordSize(c Container, delta int64) {
	if stats == nil || delta == 0 {
		return
	}
	stats.containerSize.Add(context.Background(), delta, containerAttrs(c, "size"))
}
