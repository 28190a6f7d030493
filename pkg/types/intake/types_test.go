package intake

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldAccessors(t *testing.T) {
	f := NewField("John Smith", 0.9, SourceExtracted)
	require.True(t, f.IsSet())
	v, ok := f.Get()
	require.True(t, ok)
	assert.Equal(t, "John Smith", v)

	empty := EmptyField[int]()
	assert.False(t, empty.IsSet())
	v2, ok := empty.Get()
	assert.False(t, ok)
	assert.Zero(t, v2)
	assert.Zero(t, empty.Confidence)
	assert.Equal(t, SourceExtracted, empty.Source)
}

func TestFieldJSONShape(t *testing.T) {
	data, err := json.Marshal(NewField(2000, 0.85, SourceExtracted))
	require.NoError(t, err)
	assert.JSONEq(t, `{"value":2000,"confidence":0.85,"source":"extracted"}`, string(data))

	data, err = json.Marshal(EmptyField[string]())
	require.NoError(t, err)
	assert.JSONEq(t, `{"value":null,"confidence":0,"source":"extracted"}`, string(data))
}

func TestSourceIsValid(t *testing.T) {
	assert.True(t, SourceExtracted.IsValid())
	assert.True(t, SourceInferred.IsValid())
	assert.True(t, SourceManual.IsValid())
	assert.False(t, Source("guessed").IsValid())
	assert.False(t, Source("").IsValid())
}

func TestCategoryLabelIsValid(t *testing.T) {
	for _, label := range CategoryPriorityOrder {
		assert.True(t, label.IsValid(), string(label))
	}
	assert.False(t, CategoryLabel("GARDENING").IsValid())
	assert.False(t, CategoryLabel("housing").IsValid())
	assert.False(t, CategoryLabel("").IsValid())
}

func TestCategoryPriority(t *testing.T) {
	assert.Equal(t, 0, CategorySafety.Priority())
	assert.Less(t, CategoryHealthcare.Priority(), CategoryEmergency.Priority())
	assert.Less(t, CategoryEmergency.Priority(), CategoryHousing.Priority())
	assert.Equal(t, len(CategoryPriorityOrder)-1, CategoryOther.Priority())
	assert.Greater(t, CategoryLabel("GARDENING").Priority(), CategoryOther.Priority())
}

func TestUrgencyOrdering(t *testing.T) {
	assert.Equal(t, 0, UrgencyLow.Rank())
	assert.Equal(t, 1, UrgencyMedium.Rank())
	assert.Equal(t, 2, UrgencyHigh.Rank())
	assert.Equal(t, 3, UrgencyCritical.Rank())
	assert.Equal(t, 0, UrgencyLevel("PANIC").Rank())

	assert.True(t, UrgencyCritical.AtLeast(UrgencyHigh))
	assert.True(t, UrgencyHigh.AtLeast(UrgencyHigh))
	assert.False(t, UrgencyMedium.AtLeast(UrgencyHigh))

	assert.True(t, UrgencyCritical.IsValid())
	assert.False(t, UrgencyLevel("PANIC").IsValid())
}
