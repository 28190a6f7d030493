package extraction

import "github.com/richlegrande-dot/care2connect-intake/pkg/types/intake"

// assessUrgency runs the five-layer urgency pipeline.  Layer order matters:
// the temporal base is multiplied by crisis patterns, then boosted by
// category, then scaled by soft signals, then nudged by emotional markers.
// Reordering the layers changes scores and is a breaking behaviour change.
//
// Confidence reflects how many layers contributed evidence, not how high the
// score is: a quiet transcript scored purely on the no-deadline default maps
// to LOW with near-zero confidence rather than pretending certainty.
func assessUrgency(txt NormalizedText, category intake.CategoryLabel, ur UrgencyRules) intake.UrgencyAssessment {
	matching := txt.Matching
	contributing := 0

	// Layer 1: temporal proximity.  The nearest stated deadline sets the base.
	base := ur.BaseNone
	switch {
	case anyPhrase(matching, ur.ImmediatePhrases):
		base = ur.BaseImmediate
	case anyPhrase(matching, ur.NearTermPhrases):
		base = ur.BaseNearTerm
	case anyPhrase(matching, ur.MidTermPhrases):
		base = ur.BaseMidTerm
	case anyPhrase(matching, ur.VagueFuturePhrases):
		base = ur.BaseVagueFuture
	}
	if base != ur.BaseNone {
		contributing++
	}
	score := base

	// Layer 2: crisis patterns.  Each class counts once however many of its
	// phrases appear; classes stack multiplicatively on the base.
	crisisClasses := 0
	for _, class := range [][]string{
		ur.ExistentialPhrases, ur.SafetyPhrases, ur.DeadlinePhrases, ur.MedicalPhrases,
	} {
		if anyPhrase(matching, class) {
			crisisClasses++
		}
	}
	if crisisClasses > 0 {
		contributing++
		score *= 1 + ur.CrisisIncrement*float64(crisisClasses)
	}

	// Layer 3: category boost.  Housing escalates only on eviction phrasing;
	// chronic rent trouble is urgent but not the same as a notice on the door.
	boost := ur.CategoryBoosts[category]
	if category == intake.CategoryHousing && anyPhrase(matching, ur.EvictionPhrases) {
		boost = ur.EvictionBoost
	}
	if boost > 0 {
		contributing++
		score += boost
	}

	// Layer 4: soft signals.  A single class is ordinary phrasing for anyone
	// asking for help; stacked classes compound.
	signalClasses := 0
	for _, class := range [][]string{
		ur.HelpSeekingPhrases, ur.InabilityPhrases, ur.FearPhrases,
		ur.DesperationPhrases, ur.SeverityPhrases, ur.DependentPhrases,
	} {
		if anyPhrase(matching, class) {
			signalClasses++
		}
	}
	if signalClasses > 1 {
		contributing++
		mult := 1 + ur.SignalIncrement*float64(signalClasses-1)
		if mult > ur.SignalCap {
			mult = ur.SignalCap
		}
		score *= mult
	}

	// Layer 5: emotional distress markers, additive and tightly capped.
	if markers := countPhrases(matching, ur.EmotionalMarkers); markers > 0 {
		contributing++
		add := ur.EmotionalPerMarker * float64(markers)
		if add > ur.EmotionalCap {
			add = ur.EmotionalCap
		}
		score += add
	}

	score = clamp01(score)
	confidence := clamp01(0.2 * float64(contributing))
	return intake.UrgencyAssessment{
		Level:      mapUrgencyLevel(score, confidence, ur),
		Confidence: confidence,
		Score:      score,
	}
}

// mapUrgencyLevel converts the raw score to a level.  Each threshold is
// widened downward by WideningFactor × confidence, so a well-evidenced score
// sitting just under a boundary rounds up instead of down.
func mapUrgencyLevel(score, confidence float64, ur UrgencyRules) intake.UrgencyLevel {
	widen := ur.WideningFactor * confidence
	switch {
	case score >= ur.CriticalThreshold-widen:
		return intake.UrgencyCritical
	case score >= ur.HighThreshold-widen:
		return intake.UrgencyHigh
	case score >= ur.MediumThreshold-widen:
		return intake.UrgencyMedium
	default:
		return intake.UrgencyLow
	}
}
