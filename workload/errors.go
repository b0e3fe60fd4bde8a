package workload

type WorkloadErr string

const (
	ErrWorkloadInvalidConfig  WorkloadErr = "[workload] invalid config"
	ErrWorkloadOracleMismatch WorkloadErr = "[workload] container diverges from the oracle"
	ErrWorkloadRoundPanic     WorkloadErr = "[workload] round panics"
)

func (err WorkloadErr) Error() string {
	return string(err)
}
