package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/benz9527/xcoll/workload"
)

func TestFlagValues_Apply(t *testing.T) {
	testcases := []struct {
		name   string
		args   []string
		verify func(tt *testing.T, cfg *workload.Config)
	}{
		{
			name: "no flags keep the config",
			args: nil,
			verify: func(tt *testing.T, cfg *workload.Config) {
				require.Equal(tt, 99, cfg.Ops)
				require.Equal(tt, workload.ListContainer, cfg.Container)
			},
		},
		{
			name: "flags override",
			args: []string{"--ops", "10", "--container", "vector", "--erase-ratio", "0.1", "--debug", "--seed", "3", "--lsm-oracle", "--metrics-addr", "127.0.0.1:0"},
			verify: func(tt *testing.T, cfg *workload.Config) {
				require.Equal(tt, 10, cfg.Ops)
				require.Equal(tt, workload.VectorContainer, cfg.Container)
				require.Equal(tt, 0.1, cfg.EraseRatio)
				require.True(tt, cfg.Debug)
				require.True(tt, cfg.LSMOracle)
				require.Equal(tt, "127.0.0.1:0", cfg.MetricsAddr)
				require.Equal(tt, uint64(3), cfg.Seed)
				require.Equal(tt, 8, cfg.Workers)
			},
		},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(tt *testing.T) {
			fv := &flagValues{}
			flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
			fv.bind(flags, workload.DefaultConfig())
			require.NoError(tt, flags.Parse(tc.args))

			cfg := workload.DefaultConfig()
			cfg.Ops = 99
			cfg.Workers = 8
			cfg.Container = workload.ListContainer
			fv.apply(flags, cfg)
			tc.verify(tt, cfg)
		})
	}
}

func TestCommand_Execute(t *testing.T) {
	path := filepath.Join(t.TempDir(), "workload.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rounds: 2\nops: 300\nkeyspace: 32\n"), 0o644))

	cmd := newCommand()
	cmd.SetArgs([]string{"--config", path, "--container", "all", "--workers", "2", "--log-level", "ERROR"})
	require.NoError(t, cmd.Execute())

	cmd = newCommand()
	cmd.SetArgs([]string{"--container", "rbtree", "--rounds", "1", "--ops", "100",
		"--metrics", "prometheus", "--metrics-addr", "127.0.0.1:0", "--log-level", "ERROR"})
	require.NoError(t, cmd.Execute())

	cmd = newCommand()
	cmd.SetArgs([]string{"--workers", "0", "--log-level", "ERROR"})
	require.ErrorIs(t, cmd.Execute(), workload.ErrWorkloadInvalidConfig)
}
