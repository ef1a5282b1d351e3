package engine

import (
	"log/slog"

	"github.com/katalvlaran/eqsolve/internal/logging"
	"github.com/katalvlaran/eqsolve/internal/metrics"
	"github.com/katalvlaran/eqsolve/linsys"
	"github.com/katalvlaran/eqsolve/matrix"
	"github.com/katalvlaran/eqsolve/newton"
	"github.com/katalvlaran/eqsolve/rootfind"
)

// Option configures a Session.
type Option func(*Options)

// Options holds the resolved Session configuration. Fields are set
// through Option constructors only.
type Options struct {
	logger  *slog.Logger
	metrics *metrics.Metrics
	root    rootfind.Options
	newton  newton.Options
	linear  linsys.Options
	matrix  []matrix.Option
}

// WithLogger sets the session logger. Panics on nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("engine: WithLogger(nil)")
	}
	return func(o *Options) { o.logger = l }
}

// WithMetrics records requests into m. A nil m disables metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *Options) { o.metrics = m }
}

// WithRootOptions sets the scan used for single equations and FindRoot.
func WithRootOptions(r rootfind.Options) Option {
	return func(o *Options) { o.root = r }
}

// WithNewtonOptions sets the nonlinear solver configuration.
func WithNewtonOptions(n newton.Options) Option {
	return func(o *Options) { o.newton = n }
}

// WithLinearOptions sets the elimination thresholds for linear systems.
func WithLinearOptions(l linsys.Options) Option {
	return func(o *Options) { o.linear = l }
}

// WithMatrixOptions sets the options passed to the matrix operations.
func WithMatrixOptions(opts ...matrix.Option) Option {
	return func(o *Options) { o.matrix = append([]matrix.Option(nil), opts...) }
}

func gatherOptions(opts ...Option) Options {
	o := Options{
		logger: logging.NewNop(),
		root:   rootfind.DefaultOptions(),
		newton: newton.DefaultOptions(),
		linear: linsys.DefaultOptions(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
