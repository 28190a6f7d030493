package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func extractBestRelationship(t *testing.T, text string) (candidate, bool) {
	t.Helper()
	cr, err := compileRelationshipRules(DefaultRuleSet().Relationship)
	require.NoError(t, err)
	cands := extractRelationship(Normalize(text, 20000), cr)
	cands = dedupeCandidates(cands, relationshipStrategyPriority)
	return pickWinner(cands, relationshipStrategyPriority)
}

func TestRelationshipForMy(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"I'm raising money for my son", "son"},
		{"this is for my grandmother who fell", "grandmother"},
		{"we're doing this for my kids", "kids"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			winner, ok := extractBestRelationship(t, tt.text)
			require.True(t, ok)
			assert.Equal(t, tt.want, winner.value)
			assert.Equal(t, strategyForMy, winner.strategy)
		})
	}
}

func TestRelationshipMyRelationNeeds(t *testing.T) {
	winner, ok := extractBestRelationship(t, "my daughter needs surgery and we can't afford it")
	require.True(t, ok)
	assert.Equal(t, "daughter", winner.value)
	assert.Equal(t, strategyMyRelation, winner.strategy)
}

func TestRelationshipSelf(t *testing.T) {
	winner, ok := extractBestRelationship(t, "I'm asking for myself, I have nobody else")
	require.True(t, ok)
	assert.Equal(t, relationSelf, winner.value)
	assert.True(t, winner.inferred)
}

func TestRelationshipDirectBeatsIndirect(t *testing.T) {
	winner, ok := extractBestRelationship(t,
		"my brother is struggling so I'm raising this for my mother")
	require.True(t, ok)
	assert.Equal(t, "mother", winner.value, "the explicit beneficiary phrasing wins")
}

func TestRelationshipNoneFound(t *testing.T) {
	_, ok := extractBestRelationship(t, "I need two thousand dollars for rent")
	assert.False(t, ok)
}
