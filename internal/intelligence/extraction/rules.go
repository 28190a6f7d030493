// Package extraction implements the intake extraction engine: it turns one
// free-form hardship narrative (typically speech-to-text output) into a
// structured case record with per-field confidence and provenance.
//
// The engine is a deterministic function of its input plus an immutable
// RuleSet snapshot.  It holds no state between calls and never returns an
// error or panics to its caller; see Engine.
package extraction

import (
	"github.com/spf13/viper"

	"github.com/richlegrande-dot/care2connect-intake/pkg/errors"
	"github.com/richlegrande-dot/care2connect-intake/pkg/types/intake"
)

// ─────────────────────────────────────────────────────────────────────────────
// RuleSet — the single declarative rule/configuration snapshot
// ─────────────────────────────────────────────────────────────────────────────

// RuleSet carries every keyword table, phrase-to-value map and scoring
// constant the engine consumes.  A RuleSet is immutable once installed;
// runtime updates are applied as whole-snapshot swaps (Engine.SwapRules),
// never as in-place mutation visible to in-flight calls.
//
// The urgency constants are a compatibility contract: they reproduce the
// published scoring behaviour and must not be re-derived casually.
type RuleSet struct {
	// Version identifies the snapshot in logs and telemetry.
	Version string `mapstructure:"version"`

	// MaxWorkingLength truncates the matching text.  Longer inputs are
	// truncated for matching purposes only, never rejected.
	MaxWorkingLength int `mapstructure:"max_working_length"`

	Name         NameRules         `mapstructure:"name"`
	Amount       AmountRules       `mapstructure:"amount"`
	Category     CategoryRules     `mapstructure:"category"`
	Relationship RelationshipRules `mapstructure:"relationship"`
	Urgency      UrgencyRules      `mapstructure:"urgency"`

	// FollowUpQuestions maps a missing field to the question a reviewer
	// should ask, in importance order (most important first).
	FollowUpQuestions []FollowUpRule `mapstructure:"follow_up_questions"`
}

// FollowUpRule pairs a missing field with its reviewer prompt.
type FollowUpRule struct {
	Field    intake.FieldName `mapstructure:"field"`
	Question string           `mapstructure:"question"`
}

// NameRules configures the contact-name extractor.
type NameRules struct {
	// TitlePrefixes are honorifics that introduce a name ("Dr. Smith").
	TitlePrefixes []string `mapstructure:"title_prefixes"`
	// NumberWords reject spelled-out numbers captured as names ("I'm twenty").
	NumberWords []string `mapstructure:"number_words"`
	// StateWords reject emotion/state adjectives ("I'm worried").
	StateWords []string `mapstructure:"state_words"`
	// ActionVerbs reject verbs captured after introduction phrasing
	// ("I'm calling about").
	ActionVerbs []string `mapstructure:"action_verbs"`
	// UnitFollowers reject a candidate when the captured span is immediately
	// followed by a measurement word ("twenty years old").
	UnitFollowers []string `mapstructure:"unit_followers"`
	// StopWords truncate a multi-token capture at connective words.
	StopWords []string `mapstructure:"stop_words"`

	// MultiTokenConfidence scores a proper-case multi-token capture.
	MultiTokenConfidence float64 `mapstructure:"multi_token_confidence"`
	// MixedCaseConfidence scores a multi-token capture without proper casing.
	MixedCaseConfidence float64 `mapstructure:"mixed_case_confidence"`
	// SingleTokenConfidence scores a proper-case single-token capture.
	SingleTokenConfidence float64 `mapstructure:"single_token_confidence"`
	// LowercaseConfidence scores a lowercase single-token capture.
	LowercaseConfidence float64 `mapstructure:"lowercase_confidence"`
	// IndirectPenalty is subtracted from indirect-introduction candidates.
	IndirectPenalty float64 `mapstructure:"indirect_penalty"`
}

// AmountRules configures the goal-amount extractor.
type AmountRules struct {
	// VagueQuantities maps spoken quantity phrases to representative values.
	VagueQuantities map[string]int `mapstructure:"vague_quantities"`
	// DirectTriggers are ask verbs that precede an explicitly stated goal
	// ("I need $1,550").
	DirectTriggers []string `mapstructure:"direct_triggers"`
	// ContextWords mark a sentence as goal-relevant for the contextual scan.
	ContextWords []string `mapstructure:"context_words"`
	// EmergencyKeywords boost candidates that appear near crisis language.
	EmergencyKeywords []string `mapstructure:"emergency_keywords"`
	// GoalContextWords legitimise recurring-payment phrasing ("raise three
	// months rent, $900 per month" keeps goal context).
	GoalContextWords []string `mapstructure:"goal_context_words"`

	DirectConfidence     float64 `mapstructure:"direct_confidence"`
	RangeConfidence      float64 `mapstructure:"range_confidence"`
	ContextualConfidence float64 `mapstructure:"contextual_confidence"`
	VagueConfidence      float64 `mapstructure:"vague_confidence"`

	// EmergencyProximity is the window (in bytes of matching text) within
	// which an emergency keyword boosts a candidate.
	EmergencyProximity int     `mapstructure:"emergency_proximity"`
	EmergencyBoost     float64 `mapstructure:"emergency_boost"`
	// SolidValueBoost rewards non-vague candidates of at least 100.
	SolidValueBoost float64 `mapstructure:"solid_value_boost"`
	// HighValuePenalty applies above HighValueLimit, LowValuePenalty below
	// LowValueLimit.
	HighValueLimit  int     `mapstructure:"high_value_limit"`
	HighValuePenalty float64 `mapstructure:"high_value_penalty"`
	LowValueLimit   int     `mapstructure:"low_value_limit"`
	LowValuePenalty float64 `mapstructure:"low_value_penalty"`
}

// CategoryRules configures the category classifier.
type CategoryRules struct {
	// Keywords maps each category to its membership keyword set.  A category
	// is hit when at least one keyword is present; ties resolve by the fixed
	// priority order in intake.CategoryPriorityOrder.
	Keywords map[intake.CategoryLabel][]string `mapstructure:"keywords"`

	// BaseConfidence + PerHitBonus×(hits−1), capped at Ceiling.
	BaseConfidence float64 `mapstructure:"base_confidence"`
	PerHitBonus    float64 `mapstructure:"per_hit_bonus"`
	Ceiling        float64 `mapstructure:"ceiling"`
	// NoHitConfidence is assigned to the OTHER default when nothing hits.
	NoHitConfidence float64 `mapstructure:"no_hit_confidence"`
	// HintConfidence is assigned to a caller-supplied category hint.
	HintConfidence float64 `mapstructure:"hint_confidence"`
}

// RelationshipRules configures the beneficiary-relationship extractor.
type RelationshipRules struct {
	// Relations is the closed vocabulary of recognised relation words.
	Relations []string `mapstructure:"relations"`
	// SelfMarkers map first-person phrasing to the "myself" relation.
	SelfMarkers []string `mapstructure:"self_markers"`

	DirectConfidence   float64 `mapstructure:"direct_confidence"`
	IndirectConfidence float64 `mapstructure:"indirect_confidence"`
	SelfConfidence     float64 `mapstructure:"self_confidence"`
}

// UrgencyRules configures the five-layer urgency scoring pipeline.  The
// threshold constants and WideningFactor are compatibility-critical.
type UrgencyRules struct {
	// Layer 1: temporal tiers.  The highest tier present supplies the base
	// score; BaseNone applies when no temporal phrase is detected.
	ImmediatePhrases   []string `mapstructure:"immediate_phrases"`
	NearTermPhrases    []string `mapstructure:"near_term_phrases"`
	MidTermPhrases     []string `mapstructure:"mid_term_phrases"`
	VagueFuturePhrases []string `mapstructure:"vague_future_phrases"`

	BaseImmediate   float64 `mapstructure:"base_immediate"`
	BaseNearTerm    float64 `mapstructure:"base_near_term"`
	BaseMidTerm     float64 `mapstructure:"base_mid_term"`
	BaseVagueFuture float64 `mapstructure:"base_vague_future"`
	BaseNone        float64 `mapstructure:"base_none"`

	// Layer 2: crisis-pattern classes.  Each detected class adds
	// CrisisIncrement to a multiplier applied as score × (1 + Σ increments).
	ExistentialPhrases []string `mapstructure:"existential_phrases"`
	SafetyPhrases      []string `mapstructure:"safety_phrases"`
	DeadlinePhrases    []string `mapstructure:"deadline_phrases"`
	MedicalPhrases     []string `mapstructure:"medical_phrases"`
	CrisisIncrement    float64  `mapstructure:"crisis_increment"`

	// Layer 3: bounded category boosts.  Housing gets EvictionBoost only
	// when eviction sub-phrasing is present, else its default table entry.
	CategoryBoosts  map[intake.CategoryLabel]float64 `mapstructure:"category_boosts"`
	EvictionPhrases []string                         `mapstructure:"eviction_phrases"`
	EvictionBoost   float64                          `mapstructure:"eviction_boost"`

	// Layer 4: soft signal classes.  0–1 detected classes have no effect;
	// each class beyond the first adds SignalIncrement to the multiplier,
	// capped at SignalCap.
	HelpSeekingPhrases  []string `mapstructure:"help_seeking_phrases"`
	InabilityPhrases    []string `mapstructure:"inability_phrases"`
	FearPhrases         []string `mapstructure:"fear_phrases"`
	DesperationPhrases  []string `mapstructure:"desperation_phrases"`
	SeverityPhrases     []string `mapstructure:"severity_phrases"`
	DependentPhrases    []string `mapstructure:"dependent_phrases"`
	SignalIncrement     float64  `mapstructure:"signal_increment"`
	SignalCap           float64  `mapstructure:"signal_cap"`

	// Layer 5: emotional-distress markers, additive per marker, capped.
	EmotionalMarkers   []string `mapstructure:"emotional_markers"`
	EmotionalPerMarker float64  `mapstructure:"emotional_per_marker"`
	EmotionalCap       float64  `mapstructure:"emotional_cap"`

	// Final mapping: four thresholds evaluated CRITICAL-down.  Each is
	// widened by WideningFactor × confidence so that high-confidence scores
	// near a boundary round into the higher tier.
	CriticalThreshold float64 `mapstructure:"critical_threshold"`
	HighThreshold     float64 `mapstructure:"high_threshold"`
	MediumThreshold   float64 `mapstructure:"medium_threshold"`
	LowThreshold      float64 `mapstructure:"low_threshold"`
	WideningFactor    float64 `mapstructure:"widening_factor"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Defaults
// ─────────────────────────────────────────────────────────────────────────────

// DefaultRuleSet returns the built-in rule snapshot.  Operators may overlay
// individual entries from a YAML file (LoadRulesFile).
func DefaultRuleSet() *RuleSet {
	return &RuleSet{
		Version:          "builtin-1",
		MaxWorkingLength: 20000,

		Name: NameRules{
			TitlePrefixes: []string{"dr", "mr", "mrs", "ms", "miss", "prof", "pastor", "rev"},
			NumberWords: []string{
				"one", "two", "three", "four", "five", "six", "seven", "eight", "nine", "ten",
				"eleven", "twelve", "thirteen", "fourteen", "fifteen", "sixteen", "seventeen",
				"eighteen", "nineteen", "twenty", "thirty", "forty", "fifty", "sixty",
				"seventy", "eighty", "ninety", "hundred", "thousand",
			},
			StateWords: []string{
				"scared", "afraid", "worried", "tired", "exhausted", "desperate", "homeless",
				"hungry", "broke", "sick", "stressed", "anxious", "sorry", "grateful",
				"thankful", "sure", "fine", "okay", "alone", "pregnant", "disabled",
				"unemployed", "behind", "late", "hoping", "struggling", "lost",
			},
			ActionVerbs: []string{
				"calling", "asking", "trying", "looking", "hoping", "reaching", "wondering",
				"going", "getting", "living", "staying", "working", "writing", "speaking",
				"requesting", "needing", "fleeing", "escaping", "running", "struggling",
				"dealing", "facing", "raising",
			},
			UnitFollowers: []string{
				"years old", "year old", "years", "dollars", "bucks", "per hour", "an hour",
				"a month", "per month", "months", "weeks", "days", "percent", "kids", "children",
			},
			StopWords: []string{
				"and", "but", "so", "because", "the", "a", "an", "i", "my", "with",
				"from", "here", "speaking", "calling", "just", "really", "very",
				"still", "only", "about", "gonna", "not", "now", "also", "too",
				"it", "it's", "its", "this", "that", "is", "was",
			},

			MultiTokenConfidence:  0.9,
			MixedCaseConfidence:   0.7,
			SingleTokenConfidence: 0.65,
			LowercaseConfidence:   0.5,
			IndirectPenalty:       0.1,
		},

		Amount: AmountRules{
			VagueQuantities: map[string]int{
				"a hundred":        100,
				"couple hundred":   250,
				"couple of hundred": 250,
				"few hundred":      400,
				"several hundred":  700,
				"a thousand":       1000,
				"a grand":          1000,
				"couple thousand":  2500,
				"couple of thousand": 2500,
				"couple grand":     2500,
				"few thousand":     4000,
				"several thousand": 7000,
				"ten grand":        10000,
			},
			DirectTriggers: []string{
				"need", "needs", "needed", "require", "requires", "raise", "raising",
				"asking for", "looking for", "goal", "trying to get", "trying to come up with",
			},
			ContextWords: []string{
				"need", "needs", "help", "cost", "costs", "pay", "paying", "afford", "owe",
				"bill", "bills", "short", "raise", "behind", "cover", "rent", "due",
			},
			EmergencyKeywords: []string{
				"emergency", "urgent", "eviction", "shut off", "immediately", "crisis",
				"tomorrow", "today", "tonight", "deadline", "final notice",
			},
			GoalContextWords: []string{"goal", "raise", "raising", "total", "altogether", "fundraiser"},

			DirectConfidence:     0.9,
			RangeConfidence:      0.7,
			ContextualConfidence: 0.55,
			VagueConfidence:      0.4,

			EmergencyProximity: 60,
			EmergencyBoost:     0.1,
			SolidValueBoost:    0.05,
			HighValueLimit:     50000,
			HighValuePenalty:   0.2,
			LowValueLimit:      50,
			LowValuePenalty:    0.2,
		},

		Category: CategoryRules{
			Keywords: map[intake.CategoryLabel][]string{
				intake.CategorySafety: {
					"domestic violence", "abuse", "abusive", "abuser", "unsafe", "stalking",
					"stalker", "restraining order", "violent", "violence", "threatening me",
					"fleeing", "escape him", "escape her", "shelter from",
				},
				intake.CategoryHealthcare: {
					"medical", "surgery", "hospital", "doctor", "medication", "medications",
					"prescription", "treatment", "therapy", "diagnosis", "diagnosed",
					"cancer", "emergency room", "ambulance", "medical emergency", "illness",
					"injured", "injury", "dental", "dentist", "insulin", "chemo", "dialysis",
				},
				intake.CategoryEmergency: {
					"emergency", "urgent", "crisis", "disaster", "fire", "flood", "tornado",
					"hurricane", "accident", "wreck", "totaled",
				},
				intake.CategoryHousing: {
					"rent", "eviction", "evicted", "landlord", "homeless", "housing",
					"apartment", "mortgage", "deposit", "foreclosure", "lease",
					"security deposit", "motel", "shelter",
				},
				intake.CategoryUtilities: {
					"electric bill", "electricity", "power bill", "water bill", "gas bill",
					"utility", "utilities", "shut off", "shutoff", "disconnect", "disconnection",
					"heating", "heat turned off",
				},
				intake.CategoryLegal: {
					"lawyer", "attorney", "court", "legal", "bail", "fines", "citation",
					"custody", "immigration", "visa", "probation", "expungement",
				},
				intake.CategoryEmployment: {
					"job", "laid off", "unemployed", "fired", "paycheck", "wages",
					"work tools", "uniform", "interview", "certification", "cdl",
					"job training", "work boots",
				},
				intake.CategoryEducation: {
					"school", "tuition", "textbooks", "college", "university", "classes",
					"course", "degree", "semester", "ged", "student",
				},
				intake.CategoryFamily: {
					"funeral", "burial", "childcare", "daycare", "diapers", "baby formula",
					"custody of my", "foster", "adoption", "school supplies for my",
				},
			},
			BaseConfidence:  0.55,
			PerHitBonus:     0.15,
			Ceiling:         0.9,
			NoHitConfidence: 0.3,
			HintConfidence:  0.95,
		},

		Relationship: RelationshipRules{
			Relations: []string{
				"son", "daughter", "mother", "father", "mom", "dad", "wife", "husband",
				"brother", "sister", "grandmother", "grandfather", "grandma", "grandpa",
				"grandson", "granddaughter", "aunt", "uncle", "niece", "nephew", "cousin",
				"friend", "neighbor", "family", "kids", "children", "baby",
			},
			SelfMarkers: []string{
				"for myself", "for me", "i need it for my own", "my own", "help me get",
			},
			DirectConfidence:   0.75,
			IndirectConfidence: 0.55,
			SelfConfidence:     0.6,
		},

		Urgency: UrgencyRules{
			ImmediatePhrases: []string{
				"right now", "today", "tonight", "immediately", "asap",
				"as soon as possible", "this morning", "this afternoon", "this evening",
				"within hours", "before tonight",
			},
			NearTermPhrases: []string{
				"tomorrow", "this week", "by monday", "by tuesday", "by wednesday",
				"by thursday", "by friday", "by saturday", "by sunday",
				"in a few days", "next few days", "by the end of the week", "in two days",
				"in 2 days", "in three days", "in 3 days", "by the 1st", "by the first",
			},
			MidTermPhrases: []string{
				"next week", "this month", "in a few weeks", "by the end of the month",
				"in a couple weeks", "in two weeks", "next month",
			},
			VagueFuturePhrases: []string{
				"soon", "eventually", "at some point", "sometime", "one day",
				"down the road", "when i can",
			},
			BaseImmediate:   0.85,
			BaseNearTerm:    0.65,
			BaseMidTerm:     0.45,
			BaseVagueFuture: 0.30,
			BaseNone:        0.20,

			ExistentialPhrases: []string{
				"suicid", "kill myself", "end my life", "end it all", "want to die",
				"don't want to live", "no reason to live", "can't go on",
			},
			SafetyPhrases: []string{
				"abuse", "abusive", "violent", "violence", "stalking", "threatening",
				"afraid for my life", "hurt me", "hurting me", "not safe", "unsafe",
			},
			DeadlinePhrases: []string{
				"eviction notice", "final notice", "deadline", "shut off", "shutoff",
				"disconnect", "cut off", "last chance", "notice says", "due by",
				"overdue", "past due", "repossess", "court date",
			},
			MedicalPhrases: []string{
				"emergency surgery", "heart attack", "stroke", "emergency room",
				"ambulance", "icu", "intensive care", "life-threatening",
				"life threatening", "critical condition", "septic", "hemorrhag",
			},
			CrisisIncrement: 0.25,

			CategoryBoosts: map[intake.CategoryLabel]float64{
				intake.CategorySafety:     0.15,
				intake.CategoryEmergency:  0.12,
				intake.CategoryHealthcare: 0.10,
				intake.CategoryHousing:    0.05,
				intake.CategoryUtilities:  0.05,
				intake.CategoryLegal:      0.03,
				intake.CategoryEmployment: 0.02,
				intake.CategoryEducation:  0.0,
				intake.CategoryFamily:     0.02,
				intake.CategoryOther:      0.0,
			},
			EvictionPhrases: []string{"evict", "eviction", "kicked out", "locked out", "foreclosure"},
			EvictionBoost:   0.15,

			HelpSeekingPhrases: []string{
				"please help", "need help", "help me", "i need", "begging", "please",
			},
			InabilityPhrases: []string{
				"can't afford", "cannot afford", "no way to", "can't pay", "cannot pay",
				"nothing left", "no money", "out of options", "no one to turn to",
			},
			FearPhrases: []string{
				"afraid", "scared", "terrified", "frightened", "fear",
			},
			DesperationPhrases: []string{
				"desperate", "last resort", "end of my rope", "at my wit", "running out",
				"losing everything",
			},
			SeverityPhrases: []string{
				"serious", "severe", "critical", "dire", "grave", "life or death",
			},
			DependentPhrases: []string{
				"my kids", "my children", "my child", "my baby", "my son", "my daughter",
				"my elderly", "my disabled", "newborn", "toddler",
			},
			SignalIncrement: 0.10,
			SignalCap:       1.30,

			EmotionalMarkers: []string{
				"desperate", "terrified", "panicking", "panic", "crying", "hopeless",
				"overwhelmed", "breaking down",
			},
			EmotionalPerMarker: 0.03,
			EmotionalCap:       0.10,

			CriticalThreshold: 0.85,
			HighThreshold:     0.65,
			MediumThreshold:   0.45,
			LowThreshold:      0.25,
			WideningFactor:    0.05,
		},

		FollowUpQuestions: []FollowUpRule{
			{Field: intake.FieldGoalAmount, Question: "How much money would you need to get through this situation?"},
			{Field: intake.FieldContactName, Question: "What name should we put on your fundraiser page?"},
			{Field: intake.FieldCategory, Question: "Can you tell me a little more about what the money would go toward?"},
			{Field: intake.FieldRelationship, Question: "Is this fundraiser for you, or for someone close to you?"},
		},
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Validation
// ─────────────────────────────────────────────────────────────────────────────

// Validate checks a RuleSet for internal consistency.  A snapshot that fails
// validation is never installed; the engine keeps serving the previous one.
func (rs *RuleSet) Validate() error {
	if rs.MaxWorkingLength <= 0 {
		return errors.New(errors.ErrCodeIntakeRulesLoad, "max_working_length must be positive")
	}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"urgency.base_immediate", rs.Urgency.BaseImmediate},
		{"urgency.base_near_term", rs.Urgency.BaseNearTerm},
		{"urgency.base_mid_term", rs.Urgency.BaseMidTerm},
		{"urgency.base_vague_future", rs.Urgency.BaseVagueFuture},
		{"urgency.base_none", rs.Urgency.BaseNone},
		{"urgency.critical_threshold", rs.Urgency.CriticalThreshold},
		{"urgency.high_threshold", rs.Urgency.HighThreshold},
		{"urgency.medium_threshold", rs.Urgency.MediumThreshold},
		{"urgency.low_threshold", rs.Urgency.LowThreshold},
	} {
		if f.v < 0 || f.v > 1 {
			return errors.New(errors.ErrCodeIntakeRulesLoad, f.name+" must be in [0, 1]")
		}
	}
	if rs.Urgency.CriticalThreshold < rs.Urgency.HighThreshold ||
		rs.Urgency.HighThreshold < rs.Urgency.MediumThreshold ||
		rs.Urgency.MediumThreshold < rs.Urgency.LowThreshold {
		return errors.New(errors.ErrCodeIntakeRulesLoad, "urgency thresholds must be ordered CRITICAL ≥ HIGH ≥ MEDIUM ≥ LOW")
	}
	if rs.Urgency.SignalCap < 1 {
		return errors.New(errors.ErrCodeIntakeRulesLoad, "urgency.signal_cap must be at least 1")
	}
	if len(rs.Category.Keywords) == 0 {
		return errors.New(errors.ErrCodeIntakeRulesLoad, "category.keywords must not be empty")
	}
	for label := range rs.Category.Keywords {
		if !label.IsValid() {
			return errors.New(errors.ErrCodeIntakeRulesLoad, "category.keywords contains unknown label").
				WithDetail(string(label))
		}
	}
	for label := range rs.Urgency.CategoryBoosts {
		if !label.IsValid() {
			return errors.New(errors.ErrCodeIntakeRulesLoad, "urgency.category_boosts contains unknown label").
				WithDetail(string(label))
		}
	}
	for _, v := range rs.Amount.VagueQuantities {
		if v <= 0 {
			return errors.New(errors.ErrCodeIntakeRulesLoad, "amount.vague_quantities values must be positive")
		}
	}
	if len(rs.FollowUpQuestions) == 0 {
		return errors.New(errors.ErrCodeIntakeRulesLoad, "follow_up_questions must not be empty")
	}
	return nil
}

// LoadRulesFile reads a YAML overlay and merges it over the built-in
// defaults.  Scalars and map entries present in the file override their
// defaults, a list table present in the file replaces its default wholesale,
// and absent keys keep their defaults.  The merged snapshot is validated
// before being returned.
func LoadRulesFile(path string) (*RuleSet, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeIntakeRulesLoad, "failed to read rules file").
			WithDetail(path)
	}

	rs := DefaultRuleSet()
	if err := v.Unmarshal(rs); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeIntakeRulesLoad, "failed to unmarshal rules file").
			WithDetail(path)
	}
	if rs.Version == DefaultRuleSet().Version {
		rs.Version = path
	}
	if err := rs.Validate(); err != nil {
		return nil, err
	}
	return rs, nil
}
