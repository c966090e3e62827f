package txlsh

type options struct {
	metricsCollector MetricsCollector
}

// Option configures a Builder.
type Option func(*options)

// WithMetricsCollector configures a metrics collector that observes every
// Build call. Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &txlsh.BasicMetricsCollector{}
//	b := txlsh.NewDefault(txlsh.WithMetricsCollector(metrics))
//	// ... feed data, build ...
//	stats := metrics.GetStats()
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}
