package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/eqsolve/engine"
	"github.com/katalvlaran/eqsolve/internal/config"
	"github.com/katalvlaran/eqsolve/internal/logging"
	"github.com/katalvlaran/eqsolve/internal/metrics"
)

var (
	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "eqsolve",
	Short: "eqsolve evaluates expressions and solves equations and equation systems",
	Long: `eqsolve is a calculator engine. It evaluates keypad expressions (× ÷ π e),
finds roots of single equations, solves linear systems by Gaussian elimination
and nonlinear systems by multi-start Newton iteration.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		st := newStyles(os.Stderr, colorFlag())
		fmt.Fprintln(os.Stderr, st.failure(err))
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error (overrides the config)")
}

// loadConfig reads --config and applies --log-level.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
		if err := cfg.Validate(); err != nil {
			return config.Config{}, err
		}
	}
	return cfg, nil
}

// newSession builds an engine session from the configuration. m may be nil.
func newSession(cfg config.Config, m *metrics.Metrics) (*engine.Session, error) {
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	return engine.New(
		engine.WithLogger(logging.New(level, os.Stderr)),
		engine.WithMetrics(m),
		engine.WithRootOptions(cfg.RootOptions()),
		engine.WithNewtonOptions(cfg.NewtonOptions()),
		engine.WithLinearOptions(cfg.LinearOptions()),
		engine.WithMatrixOptions(cfg.MatrixOptions()...),
	), nil
}

// setup is the common prologue of every command.
func setup(m *metrics.Metrics) (*engine.Session, config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, config.Config{}, err
	}
	s, err := newSession(cfg, m)
	if err != nil {
		return nil, config.Config{}, err
	}
	return s, cfg, nil
}

// colorFlag reports the configured color mode without failing.
func colorFlag() string {
	cfg, err := loadConfig()
	if err != nil {
		return "auto"
	}
	return cfg.Output.Color
}
