// Package config loads eqsolve settings from YAML with environment
// overrides and validates them.
//
// Load order: Default(), then the file (when present), then EQSOLVE_*
// environment variables, then Validate.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/eqsolve/linsys"
	"github.com/katalvlaran/eqsolve/matrix"
	"github.com/katalvlaran/eqsolve/newton"
	"github.com/katalvlaran/eqsolve/rootfind"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "EQSOLVE_"

// Config is the full application configuration.
type Config struct {
	Log    LogConfig    `yaml:"log"`
	Root   RootConfig   `yaml:"root"`
	Newton NewtonConfig `yaml:"newton"`
	Linear LinearConfig `yaml:"linear"`
	Output OutputConfig `yaml:"output"`
}

// LogConfig selects the log level.
type LogConfig struct {
	Level string `yaml:"level" validate:"oneof=debug info warn error"`
}

// RootConfig configures the single-variable scan.
type RootConfig struct {
	Lo            float64 `yaml:"lo" validate:"ltfield=Hi"`
	Hi            float64 `yaml:"hi"`
	Steps         int     `yaml:"steps" validate:"gte=1,lte=1000000"`
	MaxBisections int     `yaml:"max_bisections" validate:"gte=0,lte=1000"`
	Tolerance     float64 `yaml:"tolerance" validate:"gte=0"`
}

// NewtonConfig configures the nonlinear solver. Guesses may be left empty
// to use the built-in bank.
type NewtonConfig struct {
	MaxIterations   int         `yaml:"max_iterations" validate:"gte=1,lte=100000"`
	Tolerance       float64     `yaml:"tolerance" validate:"gt=0"`
	VerifyTolerance float64     `yaml:"verify_tolerance" validate:"gt=0"`
	Step            float64     `yaml:"step" validate:"gt=0"`
	DetThreshold    float64     `yaml:"det_threshold" validate:"gt=0"`
	MaxHalvings     int         `yaml:"max_halvings" validate:"gte=1,lte=64"`
	AcceptRatio     float64     `yaml:"accept_ratio" validate:"gt=0"`
	Guesses         [][]float64 `yaml:"guesses" validate:"dive,min=1"`
}

// LinearConfig holds the elimination thresholds.
type LinearConfig struct {
	PivotTolerance   float64 `yaml:"pivot_tolerance" validate:"gte=0"`
	BackSubTolerance float64 `yaml:"back_sub_tolerance" validate:"gte=0"`
}

// OutputConfig controls rendering in the CLI.
type OutputConfig struct {
	Precision int    `yaml:"precision" validate:"gte=0,lte=17"`
	Color     string `yaml:"color" validate:"oneof=auto always never"`
}

// Default returns the built-in configuration.
func Default() Config {
	r := rootfind.DefaultOptions()
	n := newton.DefaultOptions()
	return Config{
		Log: LogConfig{Level: "info"},
		Root: RootConfig{
			Lo:            r.Lo,
			Hi:            r.Hi,
			Steps:         r.Steps,
			MaxBisections: r.MaxBisections,
			Tolerance:     r.Tolerance,
		},
		Newton: NewtonConfig{
			MaxIterations:   n.MaxIterations,
			Tolerance:       n.Tolerance,
			VerifyTolerance: n.VerifyTolerance,
			Step:            n.Step,
			DetThreshold:    n.DetThreshold,
			MaxHalvings:     n.MaxHalvings,
			AcceptRatio:     n.AcceptRatio,
		},
		Linear: LinearConfig{
			PivotTolerance:   matrix.DefaultPivotTolerance,
			BackSubTolerance: matrix.DefaultBackSubTolerance,
		},
		Output: OutputConfig{Precision: matrix.DefaultPrecision, Color: "auto"},
	}
}

// Load reads path over the defaults. An empty path or a missing file
// yields the defaults (plus environment overrides).
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("config: parsing %s: %w", path, err)
			}
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

var validate = validator.New()

// Validate checks the struct tags.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// applyEnv overrides fields from EQSOLVE_<SECTION>_<FIELD> variables.
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(EnvPrefix + key); ok {
			*dst = strings.TrimSpace(v)
		}
	}
	float := func(key string, dst *float64) error {
		v, ok := lookup(EnvPrefix + key)
		if !ok {
			return nil
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fmt.Errorf("config: %s%s: %w", EnvPrefix, key, err)
		}
		*dst = f
		return nil
	}
	integer := func(key string, dst *int) error {
		v, ok := lookup(EnvPrefix + key)
		if !ok {
			return nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("config: %s%s: %w", EnvPrefix, key, err)
		}
		*dst = n
		return nil
	}

	str("LOG_LEVEL", &c.Log.Level)
	str("OUTPUT_COLOR", &c.Output.Color)
	for _, err := range []error{
		float("ROOT_LO", &c.Root.Lo),
		float("ROOT_HI", &c.Root.Hi),
		integer("ROOT_STEPS", &c.Root.Steps),
		integer("ROOT_MAX_BISECTIONS", &c.Root.MaxBisections),
		float("ROOT_TOLERANCE", &c.Root.Tolerance),
		integer("NEWTON_MAX_ITERATIONS", &c.Newton.MaxIterations),
		float("NEWTON_TOLERANCE", &c.Newton.Tolerance),
		float("NEWTON_STEP", &c.Newton.Step),
		float("LINEAR_PIVOT_TOLERANCE", &c.Linear.PivotTolerance),
		integer("OUTPUT_PRECISION", &c.Output.Precision),
	} {
		if err != nil {
			return err
		}
	}
	return nil
}

// RootOptions converts the root section.
func (c Config) RootOptions() rootfind.Options {
	return rootfind.Options{
		Lo:            c.Root.Lo,
		Hi:            c.Root.Hi,
		Steps:         c.Root.Steps,
		MaxBisections: c.Root.MaxBisections,
		Tolerance:     c.Root.Tolerance,
	}
}

// NewtonOptions converts the newton section.
func (c Config) NewtonOptions() newton.Options {
	guesses := c.Newton.Guesses
	if len(guesses) == 0 {
		guesses = newton.DefaultGuesses()
	}
	return newton.Options{
		MaxIterations:   c.Newton.MaxIterations,
		Tolerance:       c.Newton.Tolerance,
		VerifyTolerance: c.Newton.VerifyTolerance,
		Step:            c.Newton.Step,
		DetThreshold:    c.Newton.DetThreshold,
		MaxHalvings:     c.Newton.MaxHalvings,
		AcceptRatio:     c.Newton.AcceptRatio,
		Guesses:         guesses,
	}
}

// LinearOptions converts the linear section.
func (c Config) LinearOptions() linsys.Options {
	return linsys.Options{
		PivotTolerance:   c.Linear.PivotTolerance,
		BackSubTolerance: c.Linear.BackSubTolerance,
	}
}

// MatrixOptions converts the linear and output sections for the matrix
// commands.
func (c Config) MatrixOptions() []matrix.Option {
	return []matrix.Option{
		matrix.WithPivotTolerance(c.Linear.PivotTolerance),
		matrix.WithBackSubTolerance(c.Linear.BackSubTolerance),
		matrix.WithPrecision(c.Output.Precision),
	}
}
