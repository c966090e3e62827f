package scan

import "github.com/hupe1980/txlsh"

type options struct {
	logger           *txlsh.Logger
	metricsCollector txlsh.MetricsCollector
}

// Option configures a Scanner.
type Option func(*options)

// WithLogger sets the logger for per-blob and per-scan events.
// Pass nil to disable logging.
func WithLogger(l *txlsh.Logger) Option {
	return func(o *options) {
		if l == nil {
			l = txlsh.NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsCollector sets the collector that observes every build and scan.
// Pass nil to disable metrics collection.
func WithMetricsCollector(mc txlsh.MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = txlsh.NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}
