package extraction

import (
	"regexp"
	"strings"
)

// Strategy tags for the beneficiary-relationship field.
const (
	strategyForMy       = "for_my"
	strategyMyRelation  = "my_relation"
	strategyFirstPerson = "first_person"
	relationSelf        = "myself"
)

var relationshipStrategyPriority = []string{
	strategyForMy, strategyMyRelation, strategyFirstPerson,
}

type compiledRelationshipRules struct {
	rules     RelationshipRules
	forMyRe   *regexp.Regexp
	myNeedsRe *regexp.Regexp
}

func compileRelationshipRules(rr RelationshipRules) (*compiledRelationshipRules, error) {
	if len(rr.Relations) == 0 {
		return &compiledRelationshipRules{rules: rr}, nil
	}
	alt := strings.Join(rr.Relations, "|")
	forMyRe, err := regexp.Compile(`\bfor my (` + alt + `)\b`)
	if err != nil {
		return nil, err
	}
	myNeedsRe, err := regexp.Compile(`\bmy (` + alt + `)(?:'s)? (?:needs|need|is|was|has|got|can't|cannot)\b`)
	if err != nil {
		return nil, err
	}
	return &compiledRelationshipRules{rules: rr, forMyRe: forMyRe, myNeedsRe: myNeedsRe}, nil
}

// extractRelationship identifies who the fundraiser benefits.  "for my X"
// phrasing is a strong signal; "my X needs/is" weaker; explicit first-person
// phrasing maps to the "myself" relation.
func extractRelationship(txt NormalizedText, cr *compiledRelationshipRules) []candidate {
	var cands []candidate
	if cr.forMyRe != nil {
		for _, m := range cr.forMyRe.FindAllStringSubmatchIndex(txt.Matching, -1) {
			cands = append(cands, candidate{
				text:       txt.Matching[m[0]:m[1]],
				value:      txt.Matching[m[2]:m[3]],
				start:      m[0],
				end:        m[1],
				strategy:   strategyForMy,
				confidence: cr.rules.DirectConfidence,
			})
		}
	}
	if cr.myNeedsRe != nil {
		for _, m := range cr.myNeedsRe.FindAllStringSubmatchIndex(txt.Matching, -1) {
			cands = append(cands, candidate{
				text:       txt.Matching[m[0]:m[1]],
				value:      txt.Matching[m[2]:m[3]],
				start:      m[0],
				end:        m[1],
				strategy:   strategyMyRelation,
				confidence: cr.rules.IndirectConfidence,
			})
		}
	}
	for _, marker := range cr.rules.SelfMarkers {
		at := phraseIndex(txt.Matching, marker)
		if at < 0 {
			continue
		}
		cands = append(cands, candidate{
			text:       marker,
			value:      relationSelf,
			start:      at,
			end:        at + len(marker),
			strategy:   strategyFirstPerson,
			confidence: cr.rules.SelfConfidence,
			inferred:   true,
		})
	}
	return cands
}
