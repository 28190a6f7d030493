package extraction

import "github.com/richlegrande-dot/care2connect-intake/pkg/types/intake"

// categoryDecision is the classifier's output before assembly.
type categoryDecision struct {
	label      intake.CategoryLabel
	confidence float64
	source     intake.Source
	// hits is the keyword-hit count for the chosen label (0 for the OTHER
	// default); the assembler treats a no-hit default as a missing field.
	hits int
}

// classifyCategory scans every category's keyword table and resolves
// multi-hit transcripts by the fixed priority order, not by hit count: a
// transcript that mentions both a medical emergency and overdue rent is a
// HEALTHCARE case that happens to involve rent.
func classifyCategory(txt NormalizedText, cr CategoryRules) categoryDecision {
	bestHits := 0
	best := intake.CategoryOther
	for _, label := range intake.CategoryPriorityOrder {
		if label == intake.CategoryOther {
			continue
		}
		hits := countPhrases(txt.Matching, cr.Keywords[label])
		if hits > 0 {
			// Priority order, so the first hit wins regardless of later
			// labels' hit counts.
			best = label
			bestHits = hits
			break
		}
	}
	if bestHits == 0 {
		return categoryDecision{
			label:      intake.CategoryOther,
			confidence: cr.NoHitConfidence,
			source:     intake.SourceInferred,
		}
	}
	conf := cr.BaseConfidence + cr.PerHitBonus*float64(bestHits-1)
	if conf > cr.Ceiling {
		conf = cr.Ceiling
	}
	return categoryDecision{
		label:      best,
		confidence: clamp01(conf),
		source:     intake.SourceExtracted,
		hits:       bestHits,
	}
}

// applyCategoryHint reconciles a caller-supplied category hint with the text
// classification.  The hint wins unless the text produced a keyword-backed
// label of strictly higher priority — a counselor's pre-selection is trusted,
// but explicit safety or medical language in the transcript overrides it.
func applyCategoryHint(decision categoryDecision, hint intake.CategoryLabel, cr CategoryRules) categoryDecision {
	if !hint.IsValid() {
		return decision
	}
	if decision.hits > 0 && decision.label.Priority() < hint.Priority() {
		return decision
	}
	return categoryDecision{
		label:      hint,
		confidence: cr.HintConfidence,
		source:     intake.SourceManual,
		hits:       decision.hits,
	}
}
