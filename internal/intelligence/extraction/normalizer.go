package extraction

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// NormalizedText is the engine's internal view of one transcript.
//
// Working preserves the original casing (needed for proper-case name
// scoring); Matching is the lowercase form every keyword scan and regex runs
// against.  Both views are whitespace-collapsed and truncated to the same
// rune boundary, so a byte offset into Matching is a valid offset into
// Working for all ASCII-anchored patterns.
type NormalizedText struct {
	Working  string
	Matching string
	// Truncated reports that the input exceeded the working-length limit.
	// Truncation affects matching only; the input is never rejected.
	Truncated bool
	// Empty reports that no usable text survived normalization (nil input,
	// non-string input, or whitespace-only text).
	Empty bool
}

// emptyText is the canonical degenerate-input marker.
var emptyText = NormalizedText{Empty: true}

// Normalize accepts arbitrary caller input and produces the engine's text
// views.  Anything that is not a non-empty string (after trimming) maps to
// the empty marker; normalization itself never fails.
func Normalize(input any, maxLen int) NormalizedText {
	var raw string
	switch v := input.(type) {
	case string:
		raw = v
	case *string:
		if v == nil {
			return emptyText
		}
		raw = *v
	case []byte:
		raw = string(v)
	default:
		return emptyText
	}

	raw = norm.NFC.String(raw)
	raw = collapseWhitespace(raw)
	if raw == "" {
		return emptyText
	}

	truncated := false
	if maxLen > 0 {
		runes := []rune(raw)
		if len(runes) > maxLen {
			raw = string(runes[:maxLen])
			truncated = true
		}
	}

	return NormalizedText{
		Working:   raw,
		Matching:  strings.ToLower(raw),
		Truncated: truncated,
	}
}

// collapseWhitespace trims the text and squeezes every run of whitespace or
// control characters into a single space.  Speech-to-text output routinely
// carries doubled spaces and stray newlines.
func collapseWhitespace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	pendingSpace := false
	for _, r := range s {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			pendingSpace = b.Len() > 0
			continue
		}
		if pendingSpace {
			b.WriteByte(' ')
			pendingSpace = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
