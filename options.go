package xtalgo

import (
	"log/slog"

	"github.com/xtalgo/xtalgo/geom"
	"github.com/xtalgo/xtalgo/symmetry"
)

type options struct {
	logger     *Logger
	metrics    MetricsCollector
	spacegroup *symmetry.Group
	cell       geom.UnitCell
	wavelength float64
	hint       DataType
}

// Option configures a new Intensities collection.
type Option func(*options)

// WithLogger configures structured logging for pipeline operations.
// Pass nil to disable logging.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithMetricsCollector configures a metrics collector for monitoring
// operations. Pass nil to disable metrics collection.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metrics = mc
	}
}

// WithSpaceGroup sets the space group of the collection.
func WithSpaceGroup(g *symmetry.Group) Option {
	return func(o *options) {
		o.spacegroup = g
	}
}

// WithUnitCell sets the unit cell of the collection.
func WithUnitCell(cell geom.UnitCell) Option {
	return func(o *options) {
		o.cell = cell
	}
}

// WithWavelength sets the radiation wavelength in Angstroms.
func WithWavelength(wl float64) Option {
	return func(o *options) {
		o.wavelength = wl
	}
}

// WithDataTypeHint records what the adapter claims the data to be.
// The hint is checked against the classifier's verdict when merging.
func WithDataTypeHint(t DataType) Option {
	return func(o *options) {
		o.hint = t
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		logger:  NoopLogger(),
		metrics: NoopMetricsCollector{},
		hint:    TypeUnknown,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
