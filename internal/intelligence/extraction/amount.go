package extraction

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Strategy tags for the goal-amount field.
const (
	strategyDirectGoal    = "direct_goal"
	strategyAmountRange   = "amount_range"
	strategyContextual    = "contextual_amount"
	strategyVagueQuantity = "vague_quantity"
)

var amountStrategyPriority = []string{
	strategyDirectGoal, strategyAmountRange, strategyContextual, strategyVagueQuantity,
}

// moneyRe matches digit-based money mentions: "$1,550", "$2.5k", "1500
// dollars", "3 grand".  Bare digit runs without a marker are matched too and
// vetted later — dictated transcripts often drop the dollar sign.
var moneyRe = regexp.MustCompile(
	`\$ ?(\d{1,3}(?:,\d{3})+|\d+(?:\.\d+)?) ?(k\b|thousand|grand|hundred)?` +
		`|\b(\d{1,3}(?:,\d{3})+|\d+(?:\.\d+)?) ?(k\b|thousand|grand|hundred|dollars|bucks)\b` +
		`|\b(\d{1,3}(?:,\d{3})+|\d+(?:\.\d+)?)\b`)

// wordMoneyRe matches small spelled-out amounts: "two thousand dollars",
// "five hundred".
var wordMoneyRe = regexp.MustCompile(
	`\b(one|two|three|four|five|six|seven|eight|nine|ten|fifteen|twenty)` +
		` (hundred|thousand|grand)( dollars| bucks)?\b`)

var wordValues = map[string]int{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5, "six": 6,
	"seven": 7, "eight": 8, "nine": 9, "ten": 10, "fifteen": 15, "twenty": 20,
}

// moneySpan is one detected money mention before strategy assignment.
type moneySpan struct {
	start, end int
	value      int
	// explicit marks a dollar sign, currency word or scale suffix; bare
	// digit runs are held to stricter rejection rules.
	explicit bool
}

type compiledAmountRules struct {
	rules AmountRules
	// vaguePhrases holds the vague-quantity table keys longest-first so that
	// "couple of hundred" wins over "hundred"-adjacent shorter keys.
	vaguePhrases []string
}

func compileAmountRules(ar AmountRules) (*compiledAmountRules, error) {
	ca := &compiledAmountRules{rules: ar}
	for p := range ar.VagueQuantities {
		ca.vaguePhrases = append(ca.vaguePhrases, p)
	}
	sort.Slice(ca.vaguePhrases, func(i, j int) bool {
		if len(ca.vaguePhrases[i]) != len(ca.vaguePhrases[j]) {
			return len(ca.vaguePhrases[i]) > len(ca.vaguePhrases[j])
		}
		return ca.vaguePhrases[i] < ca.vaguePhrases[j]
	})
	return ca, nil
}

// extractAmount runs the money-span scan and all four amount strategies.
func extractAmount(txt NormalizedText, ca *compiledAmountRules) []candidate {
	matching := txt.Matching
	spans := findMoneySpans(matching)
	spans = rejectNonGoalSpans(matching, spans, ca.rules)

	var cands []candidate
	cands = append(cands, rangeCandidates(matching, spans, ca.rules)...)
	cands = append(cands, directCandidates(matching, spans, ca.rules)...)
	cands = append(cands, contextualCandidates(matching, spans, ca.rules)...)
	cands = append(cands, vagueCandidates(matching, ca)...)

	adjustAmountCandidates(matching, cands, ca.rules)
	return cands
}

// findMoneySpans locates every money mention, digit-based and spelled-out.
func findMoneySpans(matching string) []moneySpan {
	var spans []moneySpan
	for _, m := range moneyRe.FindAllStringSubmatchIndex(matching, -1) {
		s, e := m[0], m[1]
		var numText, scale string
		explicit := false
		switch {
		case m[2] >= 0: // $-prefixed
			numText = matching[m[2]:m[3]]
			if m[4] >= 0 {
				scale = matching[m[4]:m[5]]
			}
			explicit = true
		case m[6] >= 0: // suffix-marked
			numText = matching[m[6]:m[7]]
			scale = matching[m[8]:m[9]]
			explicit = true
		default: // bare digits
			numText = matching[m[10]:m[11]]
		}
		v, ok := parseMoney(numText, scale)
		if !ok {
			continue
		}
		spans = append(spans, moneySpan{start: s, end: e, value: v, explicit: explicit})
	}
	for _, m := range wordMoneyRe.FindAllStringSubmatchIndex(matching, -1) {
		word := matching[m[2]:m[3]]
		scale := matching[m[4]:m[5]]
		v, ok := parseMoney(strconv.Itoa(wordValues[word]), scale)
		if !ok {
			continue
		}
		spans = append(spans, moneySpan{start: m[0], end: m[1], value: v, explicit: true})
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })
	return spans
}

func parseMoney(numText, scale string) (int, bool) {
	f, err := strconv.ParseFloat(strings.ReplaceAll(numText, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	switch scale {
	case "k", "thousand", "grand":
		f *= 1000
	case "hundred":
		f *= 100
	}
	if f <= 0 || f > 1e9 || math.IsNaN(f) {
		return 0, false
	}
	return int(math.Round(f)), true
}

// rejectNonGoalSpans drops money mentions that are numbers but not goals:
// hourly wages, recurring payments without goal context, ages, date parts and
// long bare digit runs (phone numbers, account numbers).
func rejectNonGoalSpans(matching string, spans []moneySpan, ar AmountRules) []moneySpan {
	kept := spans[:0]
	for _, sp := range spans {
		after := strings.TrimLeft(matching[sp.end:], " ")
		if hasAnyPrefix(after, "an hour", "per hour", "/hr", "an hr", "hourly", "each hour") {
			continue
		}
		if hasAnyPrefix(after, "a month", "per month", "a week", "per week", "monthly", "weekly", "every month", "every week") {
			ss, se := sentenceBounds(matching, sp.start)
			if !anyPhrase(matching[ss:se], ar.GoalContextWords) {
				continue
			}
		}
		if sp.value <= 120 && hasAnyPrefix(after, "years old", "year old", "yrs old", "years of age") {
			continue
		}
		// Slash-adjacent digits are date fragments (3/15/2026).
		if (sp.start > 0 && matching[sp.start-1] == '/') ||
			(sp.end < len(matching) && matching[sp.end] == '/') {
			continue
		}
		if !sp.explicit {
			if digitCount(matching[sp.start:sp.end]) > 6 {
				continue
			}
			if sp.value >= 1900 && sp.value <= 2099 && looksLikeYear(matching, sp) {
				continue
			}
			if sp.value >= 10000 && sp.value <= 99999 && looksLikeZip(matching, sp) {
				continue
			}
		}
		kept = append(kept, sp)
	}
	return kept
}

func hasAnyPrefix(s string, prefixes ...string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func digitCount(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			n++
		}
	}
	return n
}

var monthNames = []string{
	"january", "february", "march", "april", "may", "june", "july",
	"august", "september", "october", "november", "december",
}

func looksLikeYear(matching string, sp moneySpan) bool {
	before := matching[maxInt(0, sp.start-20):sp.start]
	if anyPhrase(before, monthNames) {
		return true
	}
	return strings.HasSuffix(strings.TrimRight(before, " "), "in") ||
		strings.HasSuffix(strings.TrimRight(before, " "), "since")
}

func looksLikeZip(matching string, sp moneySpan) bool {
	before := matching[maxInt(0, sp.start-40):sp.start]
	return anyPhrase(before, []string{
		"zip", "zip code", "street", "avenue", "drive", "boulevard", "suite", "apt",
	})
}

// directCandidates accepts a money span when an explicit ask verb appears
// shortly before it in the same sentence: "I need $1,550 by Friday".
func directCandidates(matching string, spans []moneySpan, ar AmountRules) []candidate {
	var cands []candidate
	for _, sp := range spans {
		ss, _ := sentenceBounds(matching, sp.start)
		windowStart := maxInt(ss, sp.start-60)
		if !anyPhrase(matching[windowStart:sp.start], ar.DirectTriggers) {
			continue
		}
		cands = append(cands, candidate{
			text:       matching[sp.start:sp.end],
			amount:     sp.value,
			start:      sp.start,
			end:        sp.end,
			strategy:   strategyDirectGoal,
			confidence: ar.DirectConfidence,
		})
	}
	return cands
}

// rangeCandidates resolves "between $2,000 and $3,000" (and "X to Y") to the
// rounded midpoint.  The resolved value is inferred, not read verbatim.
func rangeCandidates(matching string, spans []moneySpan, ar AmountRules) []candidate {
	var cands []candidate
	for i := 0; i+1 < len(spans); i++ {
		a, b := spans[i], spans[i+1]
		gap := strings.TrimSpace(matching[a.end:b.start])
		if gap != "and" && gap != "to" && gap != "-" && gap != "or" {
			continue
		}
		// Plain "X and Y" without "between" is usually a list, not a range.
		before := strings.TrimRight(matching[maxInt(0, a.start-12):a.start], " ")
		if gap == "and" && !strings.HasSuffix(before, "between") {
			continue
		}
		mid := int(math.Round(float64(a.value+b.value) / 2))
		cands = append(cands, candidate{
			text:       matching[a.start:b.end],
			amount:     mid,
			start:      a.start,
			end:        b.end,
			strategy:   strategyAmountRange,
			confidence: ar.RangeConfidence,
			inferred:   true,
		})
	}
	return cands
}

// contextualCandidates accepts a money span whose sentence carries hardship
// or payment vocabulary, at reduced confidence.
func contextualCandidates(matching string, spans []moneySpan, ar AmountRules) []candidate {
	var cands []candidate
	for _, sp := range spans {
		ss, se := sentenceBounds(matching, sp.start)
		if !anyPhrase(matching[ss:se], ar.ContextWords) {
			continue
		}
		if !sp.explicit && !anyPhrase(matching[ss:se], ar.DirectTriggers) {
			continue
		}
		cands = append(cands, candidate{
			text:       matching[sp.start:sp.end],
			amount:     sp.value,
			start:      sp.start,
			end:        sp.end,
			strategy:   strategyContextual,
			confidence: ar.ContextualConfidence,
		})
	}
	return cands
}

// vagueCandidates maps spoken quantity phrases ("a couple hundred") to their
// representative values.
func vagueCandidates(matching string, ca *compiledAmountRules) []candidate {
	var cands []candidate
	claimed := make([]bool, len(matching))
	for _, phrase := range ca.vaguePhrases {
		at := phraseIndex(matching, phrase)
		if at < 0 || claimed[at] {
			continue
		}
		for i := at; i < at+len(phrase); i++ {
			claimed[i] = true
		}
		cands = append(cands, candidate{
			text:       phrase,
			amount:     ca.rules.VagueQuantities[phrase],
			start:      at,
			end:        at + len(phrase),
			strategy:   strategyVagueQuantity,
			confidence: ca.rules.VagueConfidence,
			inferred:   true,
		})
	}
	return cands
}

// adjustAmountCandidates applies the post-strategy confidence adjustments:
// crisis proximity boosts, a small reward for solid non-vague values, and
// penalties at the extremes of plausibility.
func adjustAmountCandidates(matching string, cands []candidate, ar AmountRules) {
	for i := range cands {
		c := &cands[i]
		ws := maxInt(0, c.start-ar.EmergencyProximity)
		we := minInt(len(matching), c.end+ar.EmergencyProximity)
		if anyPhrase(matching[ws:we], ar.EmergencyKeywords) {
			c.confidence += ar.EmergencyBoost
		}
		if c.strategy != strategyVagueQuantity && c.amount >= 100 {
			c.confidence += ar.SolidValueBoost
		}
		if c.amount > ar.HighValueLimit {
			c.confidence -= ar.HighValuePenalty
		}
		if c.amount < ar.LowValueLimit {
			c.confidence -= ar.LowValuePenalty
		}
		c.confidence = clamp01(c.confidence)
	}
}

// sentenceBounds returns the half-open bounds of the sentence containing
// byte position pos.
func sentenceBounds(matching string, pos int) (int, int) {
	start := 0
	for i := pos - 1; i >= 0; i-- {
		if isSentenceEnd(matching[i]) {
			start = i + 1
			break
		}
	}
	end := len(matching)
	for i := pos; i < len(matching); i++ {
		if isSentenceEnd(matching[i]) {
			end = i
			break
		}
	}
	return start, end
}

func isSentenceEnd(b byte) bool {
	return b == '.' || b == '!' || b == '?' || b == ';'
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
