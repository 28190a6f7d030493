package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/richlegrande-dot/care2connect-intake/pkg/types/intake"
)

func classify(text string) categoryDecision {
	return classifyCategory(Normalize(text, 20000), DefaultRuleSet().Category)
}

func TestCategoryKeywordHits(t *testing.T) {
	tests := []struct {
		text string
		want intake.CategoryLabel
	}{
		{"I'm behind on rent and the landlord is threatening eviction", intake.CategoryHousing},
		{"my electric bill is overdue and they'll shut off the power", intake.CategoryUtilities},
		{"I need money for my medication and a doctor visit", intake.CategoryHealthcare},
		{"I got laid off and can't find another job", intake.CategoryEmployment},
		{"I can't afford the tuition for this semester", intake.CategoryEducation},
		{"we need help paying for my father's funeral", intake.CategoryFamily},
		{"I need a lawyer for the custody hearing", intake.CategoryLegal},
		{"I'm fleeing an abusive relationship", intake.CategorySafety},
		{"the fire destroyed everything we had", intake.CategoryEmergency},
	}
	for _, tt := range tests {
		t.Run(string(tt.want), func(t *testing.T) {
			d := classify(tt.text)
			assert.Equal(t, tt.want, d.label)
			assert.Equal(t, intake.SourceExtracted, d.source)
			assert.Positive(t, d.hits)
		})
	}
}

func TestCategoryPriorityResolution(t *testing.T) {
	// Housing and healthcare both hit; healthcare outranks housing.
	d := classify("I'm behind on rent because of my surgery and hospital bills")
	assert.Equal(t, intake.CategoryHealthcare, d.label)

	// Medical-emergency phrasing outranks the generic emergency hit.
	d = classify("it's an emergency, he needs emergency surgery at the hospital")
	assert.Equal(t, intake.CategoryHealthcare, d.label)

	// Safety outranks everything.
	d = classify("there was violence at home and now I can't pay rent")
	assert.Equal(t, intake.CategorySafety, d.label)
}

func TestCategoryConfidenceScalesWithHits(t *testing.T) {
	one := classify("I can't pay my rent")
	many := classify("my landlord sent an eviction notice and I'm behind on rent for my apartment")
	assert.Greater(t, many.confidence, one.confidence)
	assert.LessOrEqual(t, many.confidence, DefaultRuleSet().Category.Ceiling)
}

func TestCategoryNoHitDefaultsToOther(t *testing.T) {
	d := classify("I would like some assistance with a personal matter")
	assert.Equal(t, intake.CategoryOther, d.label)
	assert.Equal(t, intake.SourceInferred, d.source)
	assert.Equal(t, DefaultRuleSet().Category.NoHitConfidence, d.confidence)
	assert.Zero(t, d.hits)
}

func TestCategoryHint(t *testing.T) {
	rules := DefaultRuleSet().Category

	t.Run("hint fills a no-hit default", func(t *testing.T) {
		d := applyCategoryHint(classify("I just need some help"), intake.CategoryHousing, rules)
		assert.Equal(t, intake.CategoryHousing, d.label)
		assert.Equal(t, intake.SourceManual, d.source)
		assert.Equal(t, rules.HintConfidence, d.confidence)
	})

	t.Run("hint wins over same-or-lower priority text hit", func(t *testing.T) {
		d := applyCategoryHint(classify("I can't pay rent"), intake.CategoryHousing, rules)
		assert.Equal(t, intake.CategoryHousing, d.label)
		assert.Equal(t, intake.SourceManual, d.source)
	})

	t.Run("higher-priority text hit overrides the hint", func(t *testing.T) {
		d := applyCategoryHint(classify("I'm escaping domestic violence"), intake.CategoryHousing, rules)
		assert.Equal(t, intake.CategorySafety, d.label)
		assert.Equal(t, intake.SourceExtracted, d.source)
	})

	t.Run("invalid hint is ignored", func(t *testing.T) {
		d := applyCategoryHint(classify("I can't pay rent"), intake.CategoryLabel("NONSENSE"), rules)
		assert.Equal(t, intake.CategoryHousing, d.label)
		assert.Equal(t, intake.SourceExtracted, d.source)
	})
}
