package extraction

import (
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/richlegrande-dot/care2connect-intake/internal/infrastructure/monitoring/logging"
	"github.com/richlegrande-dot/care2connect-intake/pkg/errors"
	"github.com/richlegrande-dot/care2connect-intake/pkg/types/intake"
)

// compiledRules pairs one immutable RuleSet with its compiled regex forms.
// Compilation happens once per install, never on the request path.
type compiledRules struct {
	rs           *RuleSet
	name         *compiledNameRules
	amount       *compiledAmountRules
	relationship *compiledRelationshipRules
}

func compileRules(rs *RuleSet) (*compiledRules, error) {
	if err := rs.Validate(); err != nil {
		return nil, err
	}
	name, err := compileNameRules(rs.Name)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeIntakeRulesLoad, "name rules failed to compile")
	}
	amount, err := compileAmountRules(rs.Amount)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeIntakeRulesLoad, "amount rules failed to compile")
	}
	relationship, err := compileRelationshipRules(rs.Relationship)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeIntakeRulesLoad, "relationship rules failed to compile")
	}
	return &compiledRules{rs: rs, name: name, amount: amount, relationship: relationship}, nil
}

// Engine extracts structured case fields from hardship-narrative transcripts.
//
// The public contract is failsafe: Extract and ExtractWithHint never panic,
// never return an error, and always return a structurally valid result whose
// fields satisfy the declared bounds.  Worst case is a fully degraded result
// with every field missing.
//
// An Engine is safe for unbounded concurrent use.  It holds no per-call
// state; the only mutable word is the atomic rule-snapshot pointer.
type Engine struct {
	rules    atomic.Pointer[compiledRules]
	logger   logging.Logger
	recorder Recorder
}

// Options configures a new Engine.  Zero values fall back to built-in rules,
// a nop logger and a nop recorder.
type Options struct {
	Rules    *RuleSet
	Logger   logging.Logger
	Recorder Recorder
}

// NewEngine builds an Engine with an installed, validated rule snapshot.
func NewEngine(opts Options) (*Engine, error) {
	rs := opts.Rules
	if rs == nil {
		rs = DefaultRuleSet()
	}
	cr, err := compileRules(rs)
	if err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	var recorder Recorder = NoopRecorder{}
	if opts.Recorder != nil {
		recorder = opts.Recorder
	}
	e := &Engine{logger: logger.Named("extraction"), recorder: recorder}
	e.rules.Store(cr)
	return e, nil
}

// SwapRules validates, compiles and atomically installs a new rule snapshot.
// On any error the previous snapshot keeps serving; in-flight calls are
// never affected either way.
func (e *Engine) SwapRules(rs *RuleSet) error {
	cr, err := compileRules(rs)
	if err != nil {
		e.recorder.RecordRulesSwap(false)
		e.logger.Warn("rule snapshot rejected",
			logging.String("version", rs.Version),
			logging.Err(err))
		return err
	}
	e.rules.Store(cr)
	e.recorder.RecordRulesSwap(true)
	e.logger.Info("rule snapshot applied", logging.String("version", rs.Version))
	return nil
}

// RulesVersion reports the version of the currently installed snapshot.
func (e *Engine) RulesVersion() string {
	return e.rules.Load().rs.Version
}

// Extract processes one transcript with no category hint.
func (e *Engine) Extract(input any) *intake.ExtractionResult {
	return e.ExtractWithHint(input, "")
}

// ExtractWithHint processes one transcript.  A valid hint pre-seeds the
// category field as a manually supplied value; an invalid or empty hint is
// ignored.  The call never panics and never returns nil.
func (e *Engine) ExtractWithHint(input any, hint intake.CategoryLabel) (res *intake.ExtractionResult) {
	start := time.Now()
	cr := e.rules.Load()

	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("extraction recovered from panic", logging.Any("panic", r))
			res = degradedResult(cr.rs.FollowUpQuestions)
			e.recorder.RecordExtraction(Event{
				Outcome:  OutcomeDegraded,
				Duration: time.Since(start),
			})
		}
	}()

	txt := Normalize(input, cr.rs.MaxWorkingLength)
	if txt.Empty {
		res = degradedResult(cr.rs.FollowUpQuestions)
		e.recorder.RecordExtraction(Event{
			Outcome:  OutcomeEmptyInput,
			Duration: time.Since(start),
		})
		return res
	}
	if txt.Truncated {
		e.logger.Debug("transcript truncated for matching",
			logging.Int("limit", cr.rs.MaxWorkingLength))
	}

	strategies := make(map[intake.FieldName]string, 4)
	confidences := make(map[intake.FieldName]float64, 4)

	name := e.extractNameField(txt, cr, strategies)
	amount := e.extractAmountField(txt, cr, strategies)
	category, categoryMissing := e.extractCategoryField(txt, cr, hint, strategies)
	relationship := e.extractRelationshipField(txt, cr, strategies)
	urgency := assessUrgency(txt, *category.Value, cr.rs.Urgency)

	res = assembleResult(name, amount, category, categoryMissing, relationship, urgency, cr.rs.FollowUpQuestions)
	e.enforceInvariants(res)

	confidences[intake.FieldContactName] = res.ContactName.Confidence
	confidences[intake.FieldGoalAmount] = res.GoalAmount.Confidence
	confidences[intake.FieldCategory] = res.Category.Confidence
	confidences[intake.FieldRelationship] = res.Relationship.Confidence

	e.recorder.RecordExtraction(Event{
		Outcome:           OutcomeOK,
		Duration:          time.Since(start),
		FieldConfidences:  confidences,
		WinningStrategies: strategies,
		UrgencyLevel:      res.Urgency.Level,
	})
	return res
}

// safeCandidates isolates one field's candidate generation: a panic inside a
// strategy degrades that field to "not found" instead of failing the call.
func (e *Engine) safeCandidates(field intake.FieldName, fn func() []candidate) (cands []candidate) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Warn("field strategy recovered from panic",
				logging.String("field", string(field)),
				logging.Any("panic", r))
			e.recorder.RecordStrategyFailure(field, "all")
			cands = nil
		}
	}()
	return fn()
}

func (e *Engine) extractNameField(txt NormalizedText, cr *compiledRules, strategies map[intake.FieldName]string) intake.Field[string] {
	cands := e.safeCandidates(intake.FieldContactName, func() []candidate {
		return extractName(txt, cr.name)
	})
	cands = dedupeCandidates(cands, nameStrategyPriority)
	winner, ok := pickWinner(cands, nameStrategyPriority)
	if !ok {
		return intake.EmptyField[string]()
	}
	strategies[intake.FieldContactName] = winner.strategy
	return intake.NewField(winner.value, winner.confidence, intake.SourceExtracted)
}

func (e *Engine) extractAmountField(txt NormalizedText, cr *compiledRules, strategies map[intake.FieldName]string) intake.Field[int] {
	cands := e.safeCandidates(intake.FieldGoalAmount, func() []candidate {
		return extractAmount(txt, cr.amount)
	})
	cands = dedupeCandidates(cands, amountStrategyPriority)
	winner, ok := pickWinner(cands, amountStrategyPriority)
	if !ok {
		return intake.EmptyField[int]()
	}
	strategies[intake.FieldGoalAmount] = winner.strategy

	value := winner.amount
	if value < intake.MinGoalAmount {
		value = intake.MinGoalAmount
		e.recorder.RecordBoundsCorrection(intake.FieldGoalAmount)
	} else if value > intake.MaxGoalAmount {
		value = intake.MaxGoalAmount
		e.recorder.RecordBoundsCorrection(intake.FieldGoalAmount)
	}
	source := intake.SourceExtracted
	if winner.inferred {
		source = intake.SourceInferred
	}
	return intake.NewField(value, winner.confidence, source)
}

func (e *Engine) extractCategoryField(txt NormalizedText, cr *compiledRules, hint intake.CategoryLabel, strategies map[intake.FieldName]string) (intake.Field[intake.CategoryLabel], bool) {
	decision := classifyCategory(txt, cr.rs.Category)
	if hint != "" {
		decision = applyCategoryHint(decision, hint, cr.rs.Category)
	}
	if decision.source != intake.SourceInferred {
		strategies[intake.FieldCategory] = string(decision.source)
	}
	// A no-hit OTHER default is still reported as a category, but the field
	// counts as missing so that a follow-up question is asked.
	missing := decision.hits == 0 && decision.source != intake.SourceManual
	return intake.NewField(decision.label, decision.confidence, decision.source), missing
}

func (e *Engine) extractRelationshipField(txt NormalizedText, cr *compiledRules, strategies map[intake.FieldName]string) intake.Field[string] {
	cands := e.safeCandidates(intake.FieldRelationship, func() []candidate {
		return extractRelationship(txt, cr.relationship)
	})
	cands = dedupeCandidates(cands, relationshipStrategyPriority)
	winner, ok := pickWinner(cands, relationshipStrategyPriority)
	if !ok {
		return intake.EmptyField[string]()
	}
	strategies[intake.FieldRelationship] = winner.strategy
	source := intake.SourceExtracted
	if winner.inferred {
		source = intake.SourceInferred
	}
	return intake.NewField(winner.value, winner.confidence, source)
}

// enforceInvariants is the last line of defence before a result escapes: it
// re-checks every declared bound and fixes anything a strategy slipped past.
// Corrections here indicate a bug upstream and are counted so they surface
// in monitoring.
func (e *Engine) enforceInvariants(res *intake.ExtractionResult) {
	if res.ContactName.IsSet() {
		if n := utf8.RuneCountInString(*res.ContactName.Value); n < intake.MinNameLength || n > intake.MaxNameLength {
			res.ContactName = intake.EmptyField[string]()
			e.recorder.RecordBoundsCorrection(intake.FieldContactName)
		}
	}
	if res.GoalAmount.IsSet() {
		if v := *res.GoalAmount.Value; v < intake.MinGoalAmount || v > intake.MaxGoalAmount {
			clamped := minInt(maxInt(v, intake.MinGoalAmount), intake.MaxGoalAmount)
			res.GoalAmount.Value = &clamped
			e.recorder.RecordBoundsCorrection(intake.FieldGoalAmount)
		}
	}
	if !res.Category.IsSet() || !res.Category.Value.IsValid() {
		other := intake.CategoryOther
		res.Category = intake.Field[intake.CategoryLabel]{Value: &other, Source: intake.SourceInferred}
		e.recorder.RecordBoundsCorrection(intake.FieldCategory)
	}
	if !res.Urgency.Level.IsValid() {
		res.Urgency.Level = intake.UrgencyLow
		res.Urgency.Confidence = 0
	}

	fixConfidence := func(f float64, set bool, name intake.FieldName) float64 {
		fixed := clamp01(f)
		if !set {
			fixed = 0
		}
		if fixed != f {
			e.recorder.RecordBoundsCorrection(name)
		}
		return fixed
	}
	res.ContactName.Confidence = fixConfidence(res.ContactName.Confidence, res.ContactName.IsSet(), intake.FieldContactName)
	res.GoalAmount.Confidence = fixConfidence(res.GoalAmount.Confidence, res.GoalAmount.IsSet(), intake.FieldGoalAmount)
	res.Category.Confidence = fixConfidence(res.Category.Confidence, res.Category.IsSet(), intake.FieldCategory)
	res.Relationship.Confidence = fixConfidence(res.Relationship.Confidence, res.Relationship.IsSet(), intake.FieldRelationship)
	res.Urgency.Confidence = clamp01(res.Urgency.Confidence)
	res.Urgency.Score = clamp01(res.Urgency.Score)

	if len(res.FollowUpQuestions) > intake.MaxFollowUpQuestions {
		res.FollowUpQuestions = res.FollowUpQuestions[:intake.MaxFollowUpQuestions]
	}
}
