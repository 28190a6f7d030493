package extraction

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/richlegrande-dot/care2connect-intake/pkg/errors"
)

func TestDefaultRuleSetIsValid(t *testing.T) {
	require.NoError(t, DefaultRuleSet().Validate())
}

func TestRuleSetValidationRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RuleSet)
	}{
		{"zero working length", func(rs *RuleSet) { rs.MaxWorkingLength = 0 }},
		{"threshold out of range", func(rs *RuleSet) { rs.Urgency.CriticalThreshold = 1.5 }},
		{"unordered thresholds", func(rs *RuleSet) { rs.Urgency.LowThreshold = 0.99 }},
		{"signal cap below one", func(rs *RuleSet) { rs.Urgency.SignalCap = 0.5 }},
		{"empty category table", func(rs *RuleSet) { rs.Category.Keywords = nil }},
		{"unknown category label", func(rs *RuleSet) {
			rs.Category.Keywords["GARDENING"] = []string{"weeds"}
		}},
		{"non-positive vague value", func(rs *RuleSet) {
			rs.Amount.VagueQuantities["a smidge"] = 0
		}},
		{"empty follow-up table", func(rs *RuleSet) { rs.FollowUpQuestions = nil }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs := DefaultRuleSet()
			tt.mutate(rs)
			err := rs.Validate()
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrCodeIntakeRulesLoad))
		})
	}
}

func TestLoadRulesFileOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")
	overlay := `
version: test-overlay
urgency:
  widening_factor: 0.07
amount:
  vague_quantities:
    a little bit: 75
`
	require.NoError(t, os.WriteFile(path, []byte(overlay), 0o644))

	rs, err := LoadRulesFile(path)
	require.NoError(t, err)
	assert.Equal(t, "test-overlay", rs.Version)
	assert.InDelta(t, 0.07, rs.Urgency.WideningFactor, 1e-9)
	assert.Equal(t, 75, rs.Amount.VagueQuantities["a little bit"])

	// Untouched tables keep their defaults.
	assert.Equal(t, DefaultRuleSet().Urgency.CriticalThreshold, rs.Urgency.CriticalThreshold)
	assert.NotEmpty(t, rs.Category.Keywords)
}

func TestLoadRulesFileErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadRulesFile(filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)
	})

	t.Run("invalid overlay rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "rules.yaml")
		require.NoError(t, os.WriteFile(path,
			[]byte("urgency:\n  critical_threshold: 7\n"), 0o644))
		_, err := LoadRulesFile(path)
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrCodeIntakeRulesLoad))
	})
}
