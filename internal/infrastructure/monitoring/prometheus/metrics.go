package prometheus

// ExtractionMetrics bundles every metric the intake pipeline records.
// The bundle is registered once at startup and injected where needed.
type ExtractionMetrics struct {
	// ExtractionsTotal counts engine calls by outcome
	// ("ok", "empty_input", "degraded").
	ExtractionsTotal CounterVec

	// ExtractionDuration observes end-to-end engine latency in seconds.
	ExtractionDuration HistogramVec

	// FieldConfidence observes the final confidence per field name.
	FieldConfidence HistogramVec

	// WinningStrategy counts which strategy produced the accepted candidate,
	// labelled by field and strategy tag.
	WinningStrategy CounterVec

	// UrgencyLevels counts assessed urgency levels.
	UrgencyLevels CounterVec

	// StrategyFailures counts recovered candidate-strategy panics by field
	// and strategy tag.
	StrategyFailures CounterVec

	// BoundsCorrections counts invariant violations fixed by the failsafe
	// wrapper before returning, labelled by field.
	BoundsCorrections CounterVec

	// TelemetryDropped counts telemetry events discarded because the
	// emitter's buffer was full.
	TelemetryDropped CounterVec

	// RulesReloads counts rule-snapshot swap attempts by result
	// ("applied", "rejected").
	RulesReloads CounterVec

	// HTTPRequestsTotal counts HTTP requests by method, path and status.
	HTTPRequestsTotal CounterVec

	// HTTPRequestDuration observes HTTP request latency in seconds.
	HTTPRequestDuration HistogramVec
}

// Histogram buckets tuned for a sub-100ms extraction budget and for [0,1]
// confidence values.
var (
	ExtractionDurationBuckets = []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1}
	ConfidenceBuckets         = []float64{0, .1, .2, .3, .4, .5, .6, .7, .8, .9, 1}
	HTTPDurationBuckets       = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5}
)

// NewExtractionMetrics registers the full bundle against the collector.
func NewExtractionMetrics(collector MetricsCollector) *ExtractionMetrics {
	return &ExtractionMetrics{
		ExtractionsTotal: collector.RegisterCounter(
			"extractions_total", "Engine calls by outcome", "outcome"),
		ExtractionDuration: collector.RegisterHistogram(
			"extraction_duration_seconds", "End-to-end engine latency",
			ExtractionDurationBuckets),
		FieldConfidence: collector.RegisterHistogram(
			"field_confidence", "Final confidence per extracted field",
			ConfidenceBuckets, "field"),
		WinningStrategy: collector.RegisterCounter(
			"winning_strategy_total", "Strategy that produced the accepted candidate",
			"field", "strategy"),
		UrgencyLevels: collector.RegisterCounter(
			"urgency_levels_total", "Assessed urgency levels", "level"),
		StrategyFailures: collector.RegisterCounter(
			"strategy_failures_total", "Recovered candidate-strategy panics",
			"field", "strategy"),
		BoundsCorrections: collector.RegisterCounter(
			"bounds_corrections_total", "Invariant violations corrected before return",
			"field"),
		TelemetryDropped: collector.RegisterCounter(
			"telemetry_dropped_total", "Telemetry events discarded on full buffer"),
		RulesReloads: collector.RegisterCounter(
			"rules_reloads_total", "Rule-snapshot swap attempts", "result"),
		HTTPRequestsTotal: collector.RegisterCounter(
			"http_requests_total", "HTTP requests", "method", "path", "status"),
		HTTPRequestDuration: collector.RegisterHistogram(
			"http_request_duration_seconds", "HTTP request latency",
			HTTPDurationBuckets, "method", "path"),
	}
}

// NewNoopExtractionMetrics returns a bundle whose metrics discard everything.
func NewNoopExtractionMetrics() *ExtractionMetrics {
	return NewExtractionMetrics(NewNoopCollector())
}
