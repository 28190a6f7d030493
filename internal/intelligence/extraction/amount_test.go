package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func extractBestAmount(t *testing.T, text string) (candidate, bool) {
	t.Helper()
	ca, err := compileAmountRules(DefaultRuleSet().Amount)
	require.NoError(t, err)
	txt := Normalize(text, 20000)
	cands := extractAmount(txt, ca)
	cands = dedupeCandidates(cands, amountStrategyPriority)
	return pickWinner(cands, amountStrategyPriority)
}

func TestAmountDirectGoal(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"I need $2000 for rent", 2000},
		{"we need $1,550 by Friday", 1550},
		{"I'm trying to raise 3 grand for the funeral", 3000},
		{"my goal is $750", 750},
		{"I need about 2.5k to cover the deposit", 2500},
		{"we need five hundred dollars", 500},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			winner, ok := extractBestAmount(t, tt.text)
			require.True(t, ok)
			assert.Equal(t, tt.want, winner.amount)
			assert.Equal(t, strategyDirectGoal, winner.strategy)
		})
	}
}

func TestAmountRangeMidpoint(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"I need between $2000 and $3000", 2500},
		{"somewhere between $400 and $500 would cover it", 450},
		{"probably $1000 to $2000 for the repairs", 1500},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			winner, ok := extractBestAmount(t, tt.text)
			require.True(t, ok)
			assert.Equal(t, tt.want, winner.amount)
			assert.Equal(t, strategyAmountRange, winner.strategy)
			assert.True(t, winner.inferred)
		})
	}
}

func TestAmountVagueQuantities(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"even a couple hundred would help", 250},
		{"it'll take a few thousand to fix", 4000},
		{"maybe a grand, I don't know", 1000},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			winner, ok := extractBestAmount(t, tt.text)
			require.True(t, ok)
			assert.Equal(t, tt.want, winner.amount)
			assert.Equal(t, strategyVagueQuantity, winner.strategy)
			assert.True(t, winner.inferred)
		})
	}
}

func TestAmountContextualSentence(t *testing.T) {
	winner, ok := extractBestAmount(t, "The repair shop quoted $850 and I can't pay it.")
	require.True(t, ok)
	assert.Equal(t, 850, winner.amount)
	assert.Equal(t, strategyContextual, winner.strategy)
}

func TestAmountRejections(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"hourly wage", "I make $15 an hour"},
		{"hourly wage spelled", "they pay me $12 per hour there"},
		{"recurring rent", "my rent is $1200 per month and I'm behind"},
		{"age", "I am 25 years old"},
		{"date fragment", "it happened on 3/15/2026 and I still owe them"},
		{"bare year", "I've been paying since 2019 and I owe so much"},
		{"phone-length digits", "call me back, I need you, at 5551234567"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := extractBestAmount(t, tt.text)
			assert.False(t, ok, "no amount should survive %q", tt.text)
		})
	}
}

func TestAmountRecurringWithGoalContextAccepted(t *testing.T) {
	winner, ok := extractBestAmount(t,
		"my goal is to raise $900 per month for the next three months")
	require.True(t, ok)
	assert.Equal(t, 900, winner.amount)
}

func TestAmountEmergencyProximityBoost(t *testing.T) {
	plain, ok := extractBestAmount(t, "I need $500 for the bill")
	require.True(t, ok)
	urgent, ok2 := extractBestAmount(t, "I need $500 today, this is an emergency")
	require.True(t, ok2)
	assert.Greater(t, urgent.confidence, plain.confidence)
}

func TestAmountExtremePenalties(t *testing.T) {
	high, ok := extractBestAmount(t, "we need $80,000 to rebuild")
	require.True(t, ok)
	normal, ok2 := extractBestAmount(t, "we need $800 to rebuild")
	require.True(t, ok2)
	assert.Less(t, high.confidence, normal.confidence)

	low, ok3 := extractBestAmount(t, "I need $20 for the copay")
	require.True(t, ok3)
	assert.Equal(t, 20, low.amount, "clamping happens at the field layer, not in the strategy")
	assert.Less(t, low.confidence, normal.confidence)
}

func TestParseMoney(t *testing.T) {
	tests := []struct {
		num   string
		scale string
		want  int
		ok    bool
	}{
		{"1,550", "", 1550, true},
		{"2.5", "k", 2500, true},
		{"3", "grand", 3000, true},
		{"5", "hundred", 500, true},
		{"0", "", 0, false},
		{"junk", "", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseMoney(tt.num, tt.scale)
		assert.Equal(t, tt.ok, ok, "%s %s", tt.num, tt.scale)
		if tt.ok {
			assert.Equal(t, tt.want, got)
		}
	}
}

func TestSentenceBounds(t *testing.T) {
	text := "first part. second bit here! third"
	s, e := sentenceBounds(text, 15)
	assert.Equal(t, "second bit here", string([]byte(text[s:e])[1:]), "leading space retained")
	s, e = sentenceBounds(text, 2)
	assert.Equal(t, "first part", text[s:e])
}
