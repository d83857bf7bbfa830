package flatspatial

import "log/slog"

type options struct {
	logger           *Logger
	metricsCollector MetricsCollector
}

// Option configures grid constructor behavior.
type Option func(*options)

// WithLogger configures structured logging for grid operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := flatspatial.NewJSONLogger(slog.LevelInfo)
//	g, _ := flatspatial.NewGrid[string](10, flatspatial.WithLogger(logger))
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
//
// Example with BasicMetricsCollector:
//
//	metrics := &flatspatial.BasicMetricsCollector{}
//	g, _ := flatspatial.NewGrid[int](10, flatspatial.WithMetricsCollector(metrics))
//	// ... use g ...
//	stats := metrics.GetStats()
//	fmt.Printf("Inserts: %d, Queries: %d\n", stats.InsertCount, stats.QueryCount)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
