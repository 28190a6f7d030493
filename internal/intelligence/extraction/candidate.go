package extraction

import "strings"

// candidate is one strategy's proposal for a field value, carrying enough
// positional information for deduplication and deterministic tie-breaking.
type candidate struct {
	// text is the span as it appears in the working text (original casing).
	text string
	// value holds the resolved string value (name, relationship).
	value string
	// amount holds the resolved dollar value for amount candidates.
	amount int
	// start/end delimit the span in the matching text, half-open.
	start, end int
	strategy   string
	confidence float64
	// inferred marks values derived rather than read verbatim (vague
	// quantities, range midpoints).
	inferred bool
}

func (c candidate) length() int { return c.end - c.start }

func (c candidate) overlaps(o candidate) bool {
	return c.start < o.end && o.start < c.end
}

// dedupeCandidates removes overlapping spans, keeping the longer span (ties
// go to the higher confidence, then the earlier strategy in priority order).
// Input order is preserved for survivors.
func dedupeCandidates(cands []candidate, priority []string) []candidate {
	if len(cands) <= 1 {
		return cands
	}
	rank := strategyRank(priority)
	dropped := make([]bool, len(cands))
	for i := range cands {
		if dropped[i] {
			continue
		}
		for j := i + 1; j < len(cands); j++ {
			if dropped[j] || !cands[i].overlaps(cands[j]) {
				continue
			}
			if betterSpan(cands[j], cands[i], rank) {
				dropped[i] = true
				break
			}
			dropped[j] = true
		}
	}
	out := cands[:0]
	for i, c := range cands {
		if !dropped[i] {
			out = append(out, c)
		}
	}
	return out
}

// betterSpan reports whether a should survive over b in overlap resolution.
func betterSpan(a, b candidate, rank map[string]int) bool {
	if a.length() != b.length() {
		return a.length() > b.length()
	}
	if a.confidence != b.confidence {
		return a.confidence > b.confidence
	}
	return rank[a.strategy] < rank[b.strategy]
}

// pickWinner selects the final candidate: highest confidence, then earliest
// position, then the strategy listed first in the priority order.  The
// ordering is total, so the choice is deterministic for identical input.
func pickWinner(cands []candidate, priority []string) (candidate, bool) {
	if len(cands) == 0 {
		return candidate{}, false
	}
	rank := strategyRank(priority)
	best := cands[0]
	for _, c := range cands[1:] {
		switch {
		case c.confidence > best.confidence:
			best = c
		case c.confidence == best.confidence && c.start < best.start:
			best = c
		case c.confidence == best.confidence && c.start == best.start &&
			rank[c.strategy] < rank[best.strategy]:
			best = c
		}
	}
	return best, true
}

func strategyRank(priority []string) map[string]int {
	rank := make(map[string]int, len(priority))
	for i, s := range priority {
		rank[s] = i
	}
	return rank
}

// containsPhrase reports whether the matching text contains the phrase on
// word boundaries.  Multi-word phrases use plain substring containment;
// single words additionally require non-letter neighbours so that "er" never
// hits inside "emergency".
func containsPhrase(matching, phrase string) bool {
	return phraseIndex(matching, phrase) >= 0
}

// phraseIndex returns the byte offset of the first boundary-respecting
// occurrence of phrase in matching, or -1.
func phraseIndex(matching, phrase string) int {
	if phrase == "" {
		return -1
	}
	from := 0
	for {
		i := strings.Index(matching[from:], phrase)
		if i < 0 {
			return -1
		}
		at := from + i
		if boundaryAt(matching, at) && boundaryAt(matching, at+len(phrase)) {
			return at
		}
		from = at + 1
	}
}

// boundaryAt reports whether position i sits on a word boundary: the start
// or end of the text, or adjacent to a non-alphanumeric byte.
func boundaryAt(s string, i int) bool {
	if i <= 0 || i >= len(s) {
		return true
	}
	return !isWordByte(s[i-1]) || !isWordByte(s[i])
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}

// anyPhrase reports whether any phrase in the table occurs in the text.
func anyPhrase(matching string, phrases []string) bool {
	for _, p := range phrases {
		if containsPhrase(matching, p) {
			return true
		}
	}
	return false
}

// countPhrases counts how many distinct phrases from the table occur.
func countPhrases(matching string, phrases []string) int {
	n := 0
	for _, p := range phrases {
		if containsPhrase(matching, p) {
			n++
		}
	}
	return n
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
