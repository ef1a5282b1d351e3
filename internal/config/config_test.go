package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/katalvlaran/eqsolve/internal/config"
	"github.com/katalvlaran/eqsolve/linsys"
	"github.com/katalvlaran/eqsolve/newton"
	"github.com/katalvlaran/eqsolve/rootfind"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "eqsolve.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

// TestDefault_Validates and converts back to the package defaults.
func TestDefault_Validates(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, rootfind.DefaultOptions(), cfg.RootOptions())
	assert.Equal(t, newton.DefaultOptions(), cfg.NewtonOptions())
	assert.Equal(t, linsys.DefaultOptions(), cfg.LinearOptions())
	assert.Len(t, cfg.MatrixOptions(), 3)
}

// TestLoad_MissingFile falls back to the defaults.
func TestLoad_MissingFile(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	cfg, err = config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

// TestLoad_File overrides only the fields present.
func TestLoad_File(t *testing.T) {
	path := writeFile(t, `
log:
  level: debug
root:
  lo: -10
  hi: 10
newton:
  guesses:
    - [1, 2]
output:
  precision: 4
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, -10.0, cfg.Root.Lo)
	assert.Equal(t, 10.0, cfg.Root.Hi)
	assert.Equal(t, rootfind.DefaultSteps, cfg.Root.Steps)
	assert.Equal(t, [][]float64{{1, 2}}, cfg.NewtonOptions().Guesses)
	assert.Equal(t, 4, cfg.Output.Precision)
}

// TestLoad_JSON is accepted as YAML.
func TestLoad_JSON(t *testing.T) {
	cfg, err := config.Load(writeFile(t, `{"root": {"steps": 50}}`))
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.Root.Steps)
}

// TestLoad_Invalid rejects values the solvers cannot use.
func TestLoad_Invalid(t *testing.T) {
	bad := []string{
		"log: {level: loud}",
		"root: {lo: 5, hi: 1}",
		"root: {steps: 0}",
		"newton: {tolerance: 0}",
		"newton: {guesses: [[]]}",
		"output: {precision: 40}",
		"output: {color: sometimes}",
		"root: [",
	}
	for _, body := range bad {
		_, err := config.Load(writeFile(t, body))
		assert.Error(t, err, body)
	}
}

// TestLoad_Env applies EQSOLVE_* overrides after the file.
func TestLoad_Env(t *testing.T) {
	t.Setenv("EQSOLVE_LOG_LEVEL", "warn")
	t.Setenv("EQSOLVE_ROOT_HI", "50")
	t.Setenv("EQSOLVE_NEWTON_MAX_ITERATIONS", "25")

	cfg, err := config.Load(writeFile(t, "root: {hi: 20}"))
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, 50.0, cfg.Root.Hi)
	assert.Equal(t, 25, cfg.Newton.MaxIterations)

	t.Setenv("EQSOLVE_ROOT_STEPS", "many")
	_, err = config.Load("")
	assert.Error(t, err)
}
