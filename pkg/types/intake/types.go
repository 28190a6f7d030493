// Package intake defines the public value types produced by the intake
// extraction engine.  Everything in this package is a plain immutable value:
// results are created inside a single engine call, returned to the caller,
// and never referenced by the engine again.
package intake

// ─────────────────────────────────────────────────────────────────────────────
// Field bounds — the declared invariants every result must satisfy
// ─────────────────────────────────────────────────────────────────────────────

const (
	// MinGoalAmount and MaxGoalAmount bound the goal-amount field in dollars.
	// Values outside the range are clamped before a result is returned.
	MinGoalAmount = 50
	MaxGoalAmount = 100000

	// MinNameLength and MaxNameLength bound the contact-name field in
	// characters.  Out-of-bounds candidates are rejected, never clamped —
	// a truncated name is not a name.
	MinNameLength = 2
	MaxNameLength = 50

	// MaxFollowUpQuestions caps the follow-up question list on a result.
	MaxFollowUpQuestions = 3
)

// ─────────────────────────────────────────────────────────────────────────────
// Source — provenance of a single extracted field
// ─────────────────────────────────────────────────────────────────────────────

// Source tags where a field value came from so a reviewer knows how much to
// trust it.
type Source string

const (
	// SourceExtracted means the value was pulled directly from the transcript.
	SourceExtracted Source = "extracted"
	// SourceInferred means the value was derived indirectly (defaults,
	// vague-quantity mapping, midpoint resolution).
	SourceInferred Source = "inferred"
	// SourceManual means the value was supplied by the caller (e.g. a
	// category hint) rather than found in the text.
	SourceManual Source = "manual"
)

// IsValid reports whether s is a member of the closed Source set.
func (s Source) IsValid() bool {
	switch s {
	case SourceExtracted, SourceInferred, SourceManual:
		return true
	}
	return false
}

// ─────────────────────────────────────────────────────────────────────────────
// Field — a single extracted field with confidence and provenance
// ─────────────────────────────────────────────────────────────────────────────

// Field is the only per-field structure ever returned to callers.  Value is
// nil when nothing usable was found; Confidence is always defined and is 0
// whenever Value is nil.
type Field[T any] struct {
	Value      *T      `json:"value"`
	Confidence float64 `json:"confidence"`
	Source     Source  `json:"source"`
}

// NewField builds a populated Field.
func NewField[T any](value T, confidence float64, source Source) Field[T] {
	return Field[T]{Value: &value, Confidence: confidence, Source: source}
}

// EmptyField builds the canonical "nothing found" field: nil value, zero
// confidence, extracted provenance.
func EmptyField[T any]() Field[T] {
	return Field[T]{Value: nil, Confidence: 0, Source: SourceExtracted}
}

// IsSet reports whether the field carries a value.
func (f Field[T]) IsSet() bool { return f.Value != nil }

// Get returns the value and whether it is present.
func (f Field[T]) Get() (T, bool) {
	if f.Value == nil {
		var zero T
		return zero, false
	}
	return *f.Value, true
}

// ─────────────────────────────────────────────────────────────────────────────
// CategoryLabel — closed need-category enum
// ─────────────────────────────────────────────────────────────────────────────

// CategoryLabel classifies the dominant need described in the transcript.
// Exactly one label per result; never empty (defaults to CategoryOther).
type CategoryLabel string

const (
	CategorySafety     CategoryLabel = "SAFETY"
	CategoryHealthcare CategoryLabel = "HEALTHCARE"
	CategoryEmergency  CategoryLabel = "EMERGENCY"
	CategoryHousing    CategoryLabel = "HOUSING"
	CategoryUtilities  CategoryLabel = "UTILITIES"
	CategoryLegal      CategoryLabel = "LEGAL"
	CategoryEmployment CategoryLabel = "EMPLOYMENT"
	CategoryEducation  CategoryLabel = "EDUCATION"
	CategoryFamily     CategoryLabel = "FAMILY"
	CategoryOther      CategoryLabel = "OTHER"
)

// CategoryPriorityOrder is the fixed total order used to resolve multi-hit
// classifications, highest priority first.  Medical-emergency phrasing
// outranks a generic "emergency" hit because HEALTHCARE precedes EMERGENCY.
var CategoryPriorityOrder = []CategoryLabel{
	CategorySafety,
	CategoryHealthcare,
	CategoryEmergency,
	CategoryHousing,
	CategoryUtilities,
	CategoryLegal,
	CategoryEmployment,
	CategoryEducation,
	CategoryFamily,
	CategoryOther,
}

// IsValid reports whether c is a member of the closed category set.
func (c CategoryLabel) IsValid() bool {
	for _, known := range CategoryPriorityOrder {
		if c == known {
			return true
		}
	}
	return false
}

// Priority returns the resolution rank of c (0 = highest).  Unknown labels
// rank below OTHER.
func (c CategoryLabel) Priority() int {
	for i, known := range CategoryPriorityOrder {
		if c == known {
			return i
		}
	}
	return len(CategoryPriorityOrder)
}

// ─────────────────────────────────────────────────────────────────────────────
// UrgencyLevel — ordered closed enum
// ─────────────────────────────────────────────────────────────────────────────

// UrgencyLevel summarises how time-sensitive a case is.
// Ordering: LOW < MEDIUM < HIGH < CRITICAL.
type UrgencyLevel string

const (
	UrgencyLow      UrgencyLevel = "LOW"
	UrgencyMedium   UrgencyLevel = "MEDIUM"
	UrgencyHigh     UrgencyLevel = "HIGH"
	UrgencyCritical UrgencyLevel = "CRITICAL"
)

// IsValid reports whether u is a member of the closed urgency set.
func (u UrgencyLevel) IsValid() bool {
	switch u {
	case UrgencyLow, UrgencyMedium, UrgencyHigh, UrgencyCritical:
		return true
	}
	return false
}

// Rank returns the ordinal position of u (LOW=0 … CRITICAL=3).  Unknown
// levels rank as LOW.
func (u UrgencyLevel) Rank() int {
	switch u {
	case UrgencyMedium:
		return 1
	case UrgencyHigh:
		return 2
	case UrgencyCritical:
		return 3
	default:
		return 0
	}
}

// AtLeast reports whether u is at or above other in the urgency order.
func (u UrgencyLevel) AtLeast(other UrgencyLevel) bool {
	return u.Rank() >= other.Rank()
}

// UrgencyAssessment carries the urgency decision together with the raw
// pipeline score that produced it.  Score is retained for review tooling;
// Level is the value downstream systems act on.
type UrgencyAssessment struct {
	Level      UrgencyLevel `json:"level"`
	Confidence float64      `json:"confidence"`
	Score      float64      `json:"score"`
}

// ─────────────────────────────────────────────────────────────────────────────
// FieldName — identifies fields for the missing set and follow-up table
// ─────────────────────────────────────────────────────────────────────────────

// FieldName identifies one extractable field in missing-field sets and in the
// follow-up question table.
type FieldName string

const (
	FieldContactName  FieldName = "contact_name"
	FieldGoalAmount   FieldName = "goal_amount"
	FieldCategory     FieldName = "category"
	FieldRelationship FieldName = "relationship"
)

// ─────────────────────────────────────────────────────────────────────────────
// ExtractionResult — the aggregate record returned to callers
// ─────────────────────────────────────────────────────────────────────────────

// ExtractionResult packages every extracted field plus the missing-field list
// and up to MaxFollowUpQuestions reviewer prompts, ordered by importance.
// A result is immutable once returned and owned entirely by the caller.
type ExtractionResult struct {
	ContactName  Field[string]        `json:"contact_name"`
	GoalAmount   Field[int]           `json:"goal_amount"`
	Category     Field[CategoryLabel] `json:"category"`
	Relationship Field[string]        `json:"relationship"`
	Urgency      UrgencyAssessment    `json:"urgency"`

	MissingFields     []FieldName `json:"missing_fields"`
	FollowUpQuestions []string    `json:"follow_up_questions"`
}
