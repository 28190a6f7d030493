// Package telemetry bridges the extraction engine's recorder contract to
// Prometheus.  Extraction events flow through a bounded channel consumed by
// a single goroutine, so recording can never block or slow a request; when
// the buffer is full the event is dropped and the drop is counted.
package telemetry

import (
	"sync"

	"github.com/richlegrande-dot/care2connect-intake/internal/infrastructure/monitoring/logging"
	"github.com/richlegrande-dot/care2connect-intake/internal/infrastructure/monitoring/prometheus"
	"github.com/richlegrande-dot/care2connect-intake/internal/intelligence/extraction"
	"github.com/richlegrande-dot/care2connect-intake/pkg/types/intake"
)

// Emitter implements extraction.Recorder.
type Emitter struct {
	metrics *prometheus.ExtractionMetrics
	logger  logging.Logger

	events    chan extraction.Event
	closeOnce sync.Once
	done      chan struct{}
}

// NewEmitter starts the consumer goroutine.  bufferSize bounds the event
// queue; sizing it generously is cheap, but overflow is survivable either
// way.
func NewEmitter(metrics *prometheus.ExtractionMetrics, logger logging.Logger, bufferSize int) *Emitter {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	e := &Emitter{
		metrics: metrics,
		logger:  logger.Named("telemetry"),
		events:  make(chan extraction.Event, bufferSize),
		done:    make(chan struct{}),
	}
	go e.consume()
	return e
}

// RecordExtraction enqueues the event without blocking.  A full buffer drops
// the event; extraction results are never affected.
func (e *Emitter) RecordExtraction(ev extraction.Event) {
	select {
	case e.events <- ev:
	default:
		e.metrics.TelemetryDropped.WithLabelValues().Inc()
	}
}

// RecordStrategyFailure counts a recovered strategy panic.  Counter
// increments are lock-free, so this records synchronously.
func (e *Emitter) RecordStrategyFailure(field intake.FieldName, strategy string) {
	e.metrics.StrategyFailures.WithLabelValues(string(field), strategy).Inc()
}

// RecordBoundsCorrection counts an invariant violation fixed before return.
func (e *Emitter) RecordBoundsCorrection(field intake.FieldName) {
	e.metrics.BoundsCorrections.WithLabelValues(string(field)).Inc()
}

// RecordRulesSwap counts a rule-snapshot swap attempt.
func (e *Emitter) RecordRulesSwap(applied bool) {
	result := "applied"
	if !applied {
		result = "rejected"
	}
	e.metrics.RulesReloads.WithLabelValues(result).Inc()
}

func (e *Emitter) consume() {
	for {
		select {
		case ev := <-e.events:
			e.record(ev)
		case <-e.done:
			// Drain whatever is already queued, then stop.
			for {
				select {
				case ev := <-e.events:
					e.record(ev)
				default:
					return
				}
			}
		}
	}
}

func (e *Emitter) record(ev extraction.Event) {
	e.metrics.ExtractionsTotal.WithLabelValues(ev.Outcome).Inc()
	e.metrics.ExtractionDuration.WithLabelValues().Observe(ev.Duration.Seconds())
	for field, conf := range ev.FieldConfidences {
		e.metrics.FieldConfidence.WithLabelValues(string(field)).Observe(conf)
	}
	for field, strategy := range ev.WinningStrategies {
		e.metrics.WinningStrategy.WithLabelValues(string(field), strategy).Inc()
	}
	if ev.UrgencyLevel != "" {
		e.metrics.UrgencyLevels.WithLabelValues(string(ev.UrgencyLevel)).Inc()
	}
}

// Close stops the consumer after draining queued events.
func (e *Emitter) Close() {
	e.closeOnce.Do(func() { close(e.done) })
}
