package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/richlegrande-dot/care2connect-intake/pkg/types/intake"
)

func assess(text string, category intake.CategoryLabel) intake.UrgencyAssessment {
	return assessUrgency(Normalize(text, 20000), category, DefaultRuleSet().Urgency)
}

func TestUrgencyEvictionDeadlineIsCritical(t *testing.T) {
	a := assess("The eviction notice says I need $1,550 by Friday", intake.CategoryHousing)

	// near-term base 0.65 × 1.25 (one crisis class) + 0.15 eviction boost.
	assert.InDelta(t, 0.9625, a.Score, 1e-9)
	assert.Equal(t, intake.UrgencyCritical, a.Level)
	assert.InDelta(t, 0.6, a.Confidence, 1e-9) // temporal + crisis + category
}

func TestUrgencyQuietRequestIsLow(t *testing.T) {
	a := assess("I need $2000 for rent", intake.CategoryHousing)
	assert.Equal(t, intake.UrgencyLow, a.Level)
	assert.Less(t, a.Score, 0.45)
}

func TestUrgencyTemporalTiers(t *testing.T) {
	ur := DefaultRuleSet().Urgency
	tests := []struct {
		text string
		base float64
	}{
		{"I need this right now", ur.BaseImmediate},
		{"the money is needed by Friday", ur.BaseNearTerm},
		{"we have to move out next month", ur.BaseMidTerm},
		{"I'd like to get this sorted eventually", ur.BaseVagueFuture},
		{"we could use a hand with the bills", ur.BaseNone},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			a := assess(tt.text, intake.CategoryOther)
			// OTHER adds no category boost; with no crisis/signal/emotional
			// evidence the score is exactly the temporal base.
			assert.InDelta(t, tt.base, a.Score, 1e-9)
		})
	}
}

func TestUrgencyCrisisClassesStack(t *testing.T) {
	one := assess("the shut off notice came this week", intake.CategoryOther)
	two := assess("the shut off notice came this week and he needs an ambulance", intake.CategoryOther)
	assert.Greater(t, two.Score, one.Score)
}

func TestUrgencyCrisisClassCountsOnce(t *testing.T) {
	// Two phrases of the same class must not stack.
	single := assess("I got a final notice about the deadline", intake.CategoryOther)
	assert.InDelta(t, DefaultRuleSet().Urgency.BaseNone*1.25, single.Score, 1e-9)
}

func TestUrgencyHousingEvictionBoost(t *testing.T) {
	chronic := assess("I am struggling with rent payments", intake.CategoryHousing)
	eviction := assess("I am struggling with rent and got an eviction letter", intake.CategoryHousing)
	assert.Greater(t, eviction.Score, chronic.Score)
}

func TestUrgencySoftSignalsNeedTwoClasses(t *testing.T) {
	ur := DefaultRuleSet().Urgency

	// One signal class (help-seeking) leaves the score untouched.
	one := assess("I need a hand with this", intake.CategoryOther)
	assert.InDelta(t, ur.BaseNone, one.Score, 1e-9)

	// Help-seeking + inability + dependents = three classes ⇒ ×1.2.
	three := assess("I need help, I can't afford food for my kids", intake.CategoryOther)
	assert.InDelta(t, ur.BaseNone*1.2, three.Score, 1e-9)
}

func TestUrgencyEmotionalMarkersCapped(t *testing.T) {
	ur := DefaultRuleSet().Urgency
	a := assess("I'm desperate, terrified, panicking, crying, hopeless and overwhelmed",
		intake.CategoryOther)
	// Six markers at 0.03 would be 0.18, capped at 0.10.  Fear and
	// desperation also register as two soft-signal classes (×1.1).
	assert.InDelta(t, ur.BaseNone*1.1+ur.EmotionalCap, a.Score, 1e-9)
}

func TestUrgencyConfidenceCountsContributingLayers(t *testing.T) {
	none := assess("hello there, just checking in", intake.CategoryOther)
	assert.Zero(t, none.Confidence)

	all := assess("please help right now, I'm desperate and terrified, I can't pay, "+
		"they shut off the heat and my kids are freezing", intake.CategoryUtilities)
	assert.Equal(t, 1.0, all.Confidence)
}

func TestUrgencyLevelWidening(t *testing.T) {
	ur := DefaultRuleSet().Urgency

	// Just under the CRITICAL threshold: high confidence rounds up, zero
	// confidence does not.
	assert.Equal(t, intake.UrgencyCritical, mapUrgencyLevel(0.83, 0.6, ur))
	assert.Equal(t, intake.UrgencyHigh, mapUrgencyLevel(0.83, 0.0, ur))

	assert.Equal(t, intake.UrgencyLow, mapUrgencyLevel(0.1, 1.0, ur))
	assert.Equal(t, intake.UrgencyCritical, mapUrgencyLevel(1.0, 0.0, ur))
}
