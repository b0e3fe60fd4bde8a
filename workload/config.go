package workload

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"strings"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/benz9527/xcoll/lib/xlog"
	"github.com/benz9527/xcoll/observability"
)

type Container string

const (
	RBTreeContainer Container = "rbtree"
	ListContainer   Container = "list"
	VectorContainer Container = "vector"
	AllContainers   Container = "all"
)

func (c Container) expand() []Container {
	if c == AllContainers {
		return []Container{RBTreeContainer, ListContainer, VectorContainer}
	}
	return []Container{c}
}

type Config struct {
	Container     Container `yaml:"container"`
	Workers       int       `yaml:"workers"`
	Rounds        int       `yaml:"rounds"`
	Ops           int       `yaml:"ops"`
	KeySpace      int       `yaml:"keyspace"`
	EraseRatio    float64   `yaml:"erase_ratio"`
	ValidateEvery int       `yaml:"validate_every"`
	Seed          uint64    `yaml:"seed"`
	// Debug enables the rbtree debug checks on every mutation.
	Debug bool `yaml:"debug"`
	// LSMOracle mirrors the rbtree rounds into an in-memory pebble store
	// and compares the ascending order against it.
	LSMOracle bool   `yaml:"lsm_oracle"`
	Metrics   string `yaml:"metrics"`
	// MetricsAddr is the listen address of the prometheus scrape endpoint.
	MetricsAddr string `yaml:"metrics_addr"`
	LogLevel    string `yaml:"log_level"`
}

func DefaultConfig() *Config {
	return &Config{
		Container:     AllContainers,
		Workers:       4,
		Rounds:        8,
		Ops:           10_000,
		KeySpace:      4096,
		EraseRatio:    0.4,
		ValidateEvery: 1000,
		Seed:          1,
		Metrics:       observability.NoneMetrics.String(),
		MetricsAddr:   observability.DefaultPrometheusAddr,
		LogLevel:      "INFO",
	}
}

// LoadConfig overlays the YAML file on the default config.
// The unknown fields are rejected.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if len(strings.TrimSpace(path)) <= 0 {
		return cfg, nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read workload config %s: %w", path, err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(content))
	dec.KnownFields(true)
	if err = dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse workload config %s: %w", path, err)
	}
	return cfg, nil
}

func (cfg *Config) Validate() error {
	var err error
	switch cfg.Container {
	case RBTreeContainer, ListContainer, VectorContainer, AllContainers:
	default:
		err = multierr.Append(err, fmt.Errorf("container %q: %w", cfg.Container, ErrWorkloadInvalidConfig))
	}
	if cfg.Workers <= 0 {
		err = multierr.Append(err, fmt.Errorf("workers %d: %w", cfg.Workers, ErrWorkloadInvalidConfig))
	}
	if cfg.Rounds <= 0 {
		err = multierr.Append(err, fmt.Errorf("rounds %d: %w", cfg.Rounds, ErrWorkloadInvalidConfig))
	}
	if cfg.Ops <= 0 {
		err = multierr.Append(err, fmt.Errorf("ops %d: %w", cfg.Ops, ErrWorkloadInvalidConfig))
	}
	if cfg.KeySpace <= 0 {
		err = multierr.Append(err, fmt.Errorf("keyspace %d: %w", cfg.KeySpace, ErrWorkloadInvalidConfig))
	}
	if cfg.EraseRatio < 0 || cfg.EraseRatio > 1 {
		err = multierr.Append(err, fmt.Errorf("erase ratio %v: %w", cfg.EraseRatio, ErrWorkloadInvalidConfig))
	}
	if cfg.ValidateEvery < 0 {
		err = multierr.Append(err, fmt.Errorf("validate every %d: %w", cfg.ValidateEvery, ErrWorkloadInvalidConfig))
	}
	if _, e := observability.ParseMetricsExporterType(cfg.Metrics); e != nil {
		err = multierr.Append(err, fmt.Errorf("metrics %q: %w", cfg.Metrics, ErrWorkloadInvalidConfig))
	}
	if _, _, e := net.SplitHostPort(cfg.MetricsAddr); e != nil {
		err = multierr.Append(err, fmt.Errorf("metrics addr %q: %w", cfg.MetricsAddr, ErrWorkloadInvalidConfig))
	}
	switch xlog.LogLevel(strings.ToUpper(cfg.LogLevel)) {
	case xlog.LogLevelDebug, xlog.LogLevelInfo, xlog.LogLevelWarn, xlog.LogLevelError:
	default:
		err = multierr.Append(err, fmt.Errorf("log level %q: %w", cfg.LogLevel, ErrWorkloadInvalidConfig))
	}
	return err
}

func (cfg *Config) XLogLevel() xlog.LogLevel {
	return xlog.LogLevel(strings.ToUpper(cfg.LogLevel))
}
