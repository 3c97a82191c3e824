package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	os.Unsetenv("SOLVER_BUDGET")
	cfg, err := Load("nonexistent.yaml")
	require.NoError(t, err)
	require.Equal(t, defaultConfig().Solver.Budget, cfg.Solver.Budget)
	require.NotEmpty(t, cfg.Cache.Addr)
	require.NotEmpty(t, cfg.Server.Addr)
}

func TestValidate_RejectsNonPositiveBudget(t *testing.T) {
	cfg := defaultConfig()
	cfg.Solver.Budget = 0
	require.Error(t, Validate(cfg))
}

func TestValidate_RejectsNonPositiveCacheTTL(t *testing.T) {
	cfg := defaultConfig()
	cfg.Cache.TTL = 0
	require.Error(t, Validate(cfg))
}

func TestValidate_RejectsEmptyServerAddr(t *testing.T) {
	cfg := defaultConfig()
	cfg.Server.Addr = ""
	require.Error(t, Validate(cfg))
}
