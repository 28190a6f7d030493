package extraction

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeNonStringInputs(t *testing.T) {
	tests := []struct {
		name  string
		input any
	}{
		{"nil", nil},
		{"int", 7},
		{"float", 3.14},
		{"bool", true},
		{"slice of strings", []string{"not", "a", "transcript"}},
		{"nil string pointer", (*string)(nil)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, Normalize(tt.input, 100).Empty)
		})
	}
}

func TestNormalizeStringVariants(t *testing.T) {
	s := "hello"
	assert.False(t, Normalize(s, 100).Empty)
	assert.False(t, Normalize(&s, 100).Empty)
	assert.False(t, Normalize([]byte(s), 100).Empty)
}

func TestNormalizeWhitespaceCollapse(t *testing.T) {
	txt := Normalize("  My   name\tis\n\nJohn  ", 100)
	assert.Equal(t, "My name is John", txt.Working)
	assert.Equal(t, "my name is john", txt.Matching)
	assert.False(t, txt.Truncated)
}

func TestNormalizeControlCharacters(t *testing.T) {
	txt := Normalize("help\x00me\x07please", 100)
	assert.Equal(t, "help me please", txt.Matching)
}

func TestNormalizeEmptyAfterCleanup(t *testing.T) {
	assert.True(t, Normalize("", 100).Empty)
	assert.True(t, Normalize("   \t\n ", 100).Empty)
	assert.True(t, Normalize("\x00\x01", 100).Empty)
}

func TestNormalizeTruncation(t *testing.T) {
	txt := Normalize(strings.Repeat("a", 50), 10)
	assert.True(t, txt.Truncated)
	assert.Len(t, txt.Matching, 10)
	assert.Len(t, txt.Working, 10)
}

func TestNormalizeKeepsOriginalCase(t *testing.T) {
	txt := Normalize("Dr. Maria LOPEZ needs $500", 100)
	assert.Equal(t, "Dr. Maria LOPEZ needs $500", txt.Working)
	assert.Equal(t, "dr. maria lopez needs $500", txt.Matching)
}
