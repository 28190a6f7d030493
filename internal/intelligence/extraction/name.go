package extraction

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/richlegrande-dot/care2connect-intake/pkg/types/intake"
)

// Strategy tags for the contact-name field.
const (
	strategySelfIntro     = "self_intro"
	strategyIndirectIntro = "indirect_intro"
)

var nameStrategyPriority = []string{strategySelfIntro, strategyIndirectIntro}

// nameCapture matches one to three name-shaped tokens.  The capture is
// deliberately loose; token filtering rejects or truncates non-name words
// afterwards, because speech-to-text output loses the capitalization cues a
// stricter pattern would rely on.
const nameCapture = `([A-Za-z][A-Za-z'.-]*(?:[ ][A-Za-z][A-Za-z'.-]*){0,2})`

type compiledNameRules struct {
	rules NameRules

	selfIntro []*regexp.Regexp
	indirect  []*regexp.Regexp
	// indirectTrailing anchors on phrasing after the name ("X calling"), so
	// token filtering walks right-to-left for these.
	indirectTrailing []*regexp.Regexp

	blacklist map[string]struct{} // number + state + action words
	stopWords map[string]struct{}
}

func compileNameRules(nr NameRules) (*compiledNameRules, error) {
	cn := &compiledNameRules{
		rules:     nr,
		blacklist: make(map[string]struct{}),
		stopWords: make(map[string]struct{}),
	}
	for _, w := range nr.NumberWords {
		cn.blacklist[w] = struct{}{}
	}
	for _, w := range nr.StateWords {
		cn.blacklist[w] = struct{}{}
	}
	for _, w := range nr.ActionVerbs {
		cn.blacklist[w] = struct{}{}
	}
	for _, w := range nr.StopWords {
		cn.stopWords[w] = struct{}{}
	}

	selfIntroPatterns := []string{
		`(?i)\bmy name is ` + nameCapture,
		`(?i)\bmy name's ` + nameCapture,
		`(?i)\bthis is ` + nameCapture,
		`(?i)\bi am ` + nameCapture,
		`(?i)\bi'm ` + nameCapture,
	}
	if len(nr.TitlePrefixes) > 0 {
		titles := strings.Join(nr.TitlePrefixes, "|")
		selfIntroPatterns = append(selfIntroPatterns,
			`(?i)\b(?:`+titles+`)\.? `+nameCapture)
	}
	indirectPatterns := []string{
		`(?i)\bcalled ` + nameCapture,
		`(?i)\bname should be ` + nameCapture,
	}
	indirectTrailingPatterns := []string{
		`(?i)\b` + nameCapture + ` (?:calling|speaking)\b`,
	}

	for _, p := range selfIntroPatterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, err
		}
		cn.selfIntro = append(cn.selfIntro, re)
	}
	for _, p := range indirectPatterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, err
		}
		cn.indirect = append(cn.indirect, re)
	}
	for _, p := range indirectTrailingPatterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, err
		}
		cn.indirectTrailing = append(cn.indirectTrailing, re)
	}
	return cn, nil
}

// extractName runs both name strategies over the text and returns every
// surviving candidate.
func extractName(txt NormalizedText, cn *compiledNameRules) []candidate {
	var cands []candidate
	cands = appendNameMatches(cands, txt, cn, cn.selfIntro, strategySelfIntro, false)
	cands = appendNameMatches(cands, txt, cn, cn.indirect, strategyIndirectIntro, false)
	cands = appendNameMatches(cands, txt, cn, cn.indirectTrailing, strategyIndirectIntro, true)
	return cands
}

func appendNameMatches(cands []candidate, txt NormalizedText, cn *compiledNameRules, res []*regexp.Regexp, strategy string, anchorRight bool) []candidate {
	for _, re := range res {
		for _, m := range re.FindAllStringSubmatchIndex(txt.Working, -1) {
			start, end := m[2], m[3]
			if start < 0 {
				continue
			}
			c, ok := buildNameCandidate(txt, cn, start, end, strategy, anchorRight)
			if ok {
				cands = append(cands, c)
			}
		}
	}
	return cands
}

// buildNameCandidate filters the captured tokens against the blacklists,
// truncates at stop words, rejects unit-followed captures and scores what is
// left by its casing shape.  anchorRight filters right-to-left for patterns
// that anchor on phrasing after the name.
func buildNameCandidate(txt NormalizedText, cn *compiledNameRules, start, end int, strategy string, anchorRight bool) (candidate, bool) {
	captured := txt.Working[start:end]
	tokens := strings.Fields(captured)
	kept := filterNameTokens(tokens, cn, anchorRight)
	if len(kept) == 0 {
		return candidate{}, false
	}

	value := strings.TrimRight(strings.Join(kept, " "), ".,!?'")
	if value == "" {
		return candidate{}, false
	}
	spanStart := start + strings.Index(captured, kept[0])
	spanEnd := start + strings.LastIndex(captured, kept[len(kept)-1]) + len(kept[len(kept)-1])

	// "I'm Twenty Two years old", "Jordan dollars short" — a measurement
	// word right after the capture means we grabbed a quantity, not a name.
	rest := strings.TrimLeft(strings.ToLower(txt.Working[spanEnd:]), " ")
	for _, unit := range cn.rules.UnitFollowers {
		if strings.HasPrefix(rest, unit) {
			return candidate{}, false
		}
	}

	if n := utf8.RuneCountInString(value); n < intake.MinNameLength || n > intake.MaxNameLength {
		return candidate{}, false
	}

	conf := scoreNameShape(kept, cn.rules)
	if strategy == strategyIndirectIntro {
		conf -= cn.rules.IndirectPenalty
	}
	return candidate{
		text:       value,
		value:      value,
		start:      spanStart,
		end:        spanEnd,
		strategy:   strategy,
		confidence: clamp01(conf),
	}, true
}

// filterNameTokens keeps the contiguous run of plausible name tokens nearest
// the anchor phrase.  A blacklisted word adjacent to the anchor rejects the
// whole capture: "I'm twenty ..." is an age, not a name missing its first
// token.
func filterNameTokens(tokens []string, cn *compiledNameRules, anchorRight bool) []string {
	reject := func(tok string) (stop, bad bool) {
		lower := strings.ToLower(strings.Trim(tok, ".,!?\"'"))
		_, stop = cn.stopWords[lower]
		_, bad = cn.blacklist[lower]
		return stop, bad
	}

	if anchorRight {
		keptFrom := len(tokens)
		for i := len(tokens) - 1; i >= 0; i-- {
			stop, bad := reject(tokens[i])
			if stop || bad {
				if i == len(tokens)-1 && bad {
					return nil
				}
				break
			}
			keptFrom = i
		}
		return tokens[keptFrom:]
	}

	kept := tokens[:0:0]
	for i, tok := range tokens {
		stop, bad := reject(tok)
		if stop {
			break
		}
		if bad {
			if i == 0 {
				return nil
			}
			break
		}
		kept = append(kept, tok)
	}
	return kept
}

// scoreNameShape maps token count and casing to a base confidence.  Multiple
// proper-cased tokens look like a dictated full name; a single lowercase
// token could be almost anything.
func scoreNameShape(tokens []string, nr NameRules) float64 {
	proper := 0
	for _, tok := range tokens {
		r, _ := utf8.DecodeRuneInString(tok)
		if unicode.IsUpper(r) {
			proper++
		}
	}
	switch {
	case len(tokens) >= 2 && proper == len(tokens):
		return nr.MultiTokenConfidence
	case len(tokens) >= 2:
		return nr.MixedCaseConfidence
	case proper == 1:
		return nr.SingleTokenConfidence
	default:
		return nr.LowercaseConfidence
	}
}
