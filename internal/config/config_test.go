package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("Should return defaults without sources", func(t *testing.T) {
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("Should apply a YAML file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "seqopt.yaml")
		require.NoError(t, os.WriteFile(path, []byte("solver:\n  seed: 42\nlog:\n  level: debug\n"), 0o644))
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, uint64(42), cfg.Solver.Seed)
		assert.Equal(t, "debug", cfg.Log.Level)
		assert.True(t, cfg.Solver.Enabled)
	})

	t.Run("Should let the environment override the file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "seqopt.yaml")
		require.NoError(t, os.WriteFile(path, []byte("solver:\n  max_iterations: 10\n"), 0o644))
		t.Setenv("SEQOPT_SOLVER_ENABLED", "false")
		t.Setenv("SEQOPT_SOLVER_MAX_ITERATIONS", "99")
		t.Setenv("SEQOPT_LIMITS_MAX_SEQUENCE_LENGTH", "500")
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.False(t, cfg.Solver.Enabled)
		assert.Equal(t, 99, cfg.Solver.MaxIterations)
		assert.Equal(t, 500, cfg.Limits.MaxSequenceLength)
	})

	t.Run("Should reject invalid values", func(t *testing.T) {
		t.Setenv("SEQOPT_LOG_LEVEL", "chatty")
		_, err := Load("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "configuration validation failed")
	})

	t.Run("Should report a missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
	})
}

func TestTransformEnvKey(t *testing.T) {
	k, v := transformEnvKey("SEQOPT_LIMITS_MAX_SEQUENCE_LENGTH", "7")
	assert.Equal(t, "limits.max_sequence_length", k)
	assert.Equal(t, "7", v)
}
