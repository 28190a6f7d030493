package extraction

import "github.com/richlegrande-dot/care2connect-intake/pkg/types/intake"

// fieldOrder fixes the order of the missing-field list so that identical
// input always yields an identical result.
var fieldOrder = []intake.FieldName{
	intake.FieldContactName,
	intake.FieldGoalAmount,
	intake.FieldCategory,
	intake.FieldRelationship,
}

// assembleResult packages the per-field winners into the aggregate record,
// computes the missing-field set, and attaches up to the maximum number of
// follow-up questions in importance order.
func assembleResult(
	name intake.Field[string],
	amount intake.Field[int],
	category intake.Field[intake.CategoryLabel],
	categoryMissing bool,
	relationship intake.Field[string],
	urgency intake.UrgencyAssessment,
	followUps []FollowUpRule,
) *intake.ExtractionResult {
	missing := make(map[intake.FieldName]bool, 4)
	missing[intake.FieldContactName] = !name.IsSet()
	missing[intake.FieldGoalAmount] = !amount.IsSet()
	missing[intake.FieldCategory] = categoryMissing
	missing[intake.FieldRelationship] = !relationship.IsSet()

	res := &intake.ExtractionResult{
		ContactName:  name,
		GoalAmount:   amount,
		Category:     category,
		Relationship: relationship,
		Urgency:      urgency,
	}
	for _, f := range fieldOrder {
		if missing[f] {
			res.MissingFields = append(res.MissingFields, f)
		}
	}
	for _, rule := range followUps {
		if len(res.FollowUpQuestions) >= intake.MaxFollowUpQuestions {
			break
		}
		if missing[rule.Field] {
			res.FollowUpQuestions = append(res.FollowUpQuestions, rule.Question)
		}
	}
	return res
}

// degradedResult is the failsafe fallback: every field empty, OTHER category,
// LOW urgency, all fields reported missing.  It is built fresh per call so
// callers can never share or mutate a global.
func degradedResult(followUps []FollowUpRule) *intake.ExtractionResult {
	other := intake.CategoryOther
	category := intake.Field[intake.CategoryLabel]{
		Value:      &other,
		Confidence: 0,
		Source:     intake.SourceInferred,
	}

	return assembleResult(
		intake.EmptyField[string](),
		intake.EmptyField[int](),
		category,
		true,
		intake.EmptyField[string](),
		intake.UrgencyAssessment{Level: intake.UrgencyLow, Confidence: 0, Score: 0},
		followUps,
	)
}
