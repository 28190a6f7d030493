package extraction

import (
	"time"

	"github.com/richlegrande-dot/care2connect-intake/pkg/types/intake"
)

// Extraction outcomes reported to telemetry.
const (
	OutcomeOK         = "ok"
	OutcomeEmptyInput = "empty_input"
	OutcomeDegraded   = "degraded"
)

// Event summarises one completed engine call for telemetry.  Events carry no
// transcript text: field values never leave the result, only confidences and
// strategy tags.
type Event struct {
	Outcome  string
	Duration time.Duration

	FieldConfidences  map[intake.FieldName]float64
	WinningStrategies map[intake.FieldName]string
	UrgencyLevel      intake.UrgencyLevel
}

// Recorder receives engine telemetry.  Implementations must never block and
// never panic; the engine calls them inline on the request path.
type Recorder interface {
	RecordExtraction(ev Event)
	RecordStrategyFailure(field intake.FieldName, strategy string)
	RecordBoundsCorrection(field intake.FieldName)
	RecordRulesSwap(applied bool)
}

// NoopRecorder discards everything.
type NoopRecorder struct{}

func (NoopRecorder) RecordExtraction(Event)                         {}
func (NoopRecorder) RecordStrategyFailure(intake.FieldName, string) {}
func (NoopRecorder) RecordBoundsCorrection(intake.FieldName)        {}
func (NoopRecorder) RecordRulesSwap(bool)                           {}
