package dispatcher

import (
	"strings"

	contractx "github.com/skillsphere/skillsphere/agent/contract"
)

// intentRule pairs an intent with the keywords that select it. Rules are
// evaluated top to bottom and the first hit wins, so ordering is part of the
// routing contract:
//
//  1. report-progress        ("finished react" must not route to curriculum)
//  2. request-scholarships
//  3. request-cost-analysis  ("how much do the courses cost" is a cost ask)
//  4. request-curriculum
//  5. request-career-recommendation
//  6. request-resume-analysis
//  7. provide-profile-info
//  8. start-journey
//  9. generic-followup
//
// More specific asks sit above broader ones; reorder only with a test
// proving the conflict you are fixing.
type intentRule struct {
	intent   contractx.Intent
	keywords []string
}

var defaultRules = []intentRule{
	{contractx.IntentReportProgress, []string{"finished", "completed", "i am done", "i'm done", "progress", "badge", "mark "}},
	{contractx.IntentScholarships, []string{"scholarship", "financial aid", "grant"}},
	{contractx.IntentCostAnalysis, []string{"cost", "how much", "price", "roi", "break even", "break-even", "afford"}},
	{contractx.IntentCurriculum, []string{"curriculum", "learning plan", "learning path", "study plan", "roadmap", "course"}},
	{contractx.IntentCareerRecommendation, []string{"recommend", "career match", "career option", "career path", "which career", "what career", "careers"}},
	{contractx.IntentResumeAnalysis, []string{"resume", "cv"}},
	{contractx.IntentProvideProfile, []string{"skills:", "interests:", "goals:", "hours:", "time:", "salary:", "my skills", "i know"}},
	{contractx.IntentStartJourney, []string{"start", "begin", "journey", "hello", "hey"}},
	{contractx.IntentGenericFollowup, []string{"thanks", "thank you", "ok", "great", "cool", "yes", "more"}},
}

// KeywordClassifier is a priority-ordered keyword matcher over normalized
// text. It stands in for real intent classification; the explicit rule list
// keeps ordering conflicts visible and testable.
type KeywordClassifier struct {
	rules []intentRule
}

func NewKeywordClassifier() *KeywordClassifier {
	return &KeywordClassifier{rules: defaultRules}
}

func (c *KeywordClassifier) Classify(utterance string) (contractx.Intent, bool) {
	// Keywords match at word starts: " cost" hits "costs" but not "accost".
	norm := " " + normalizeUtterance(utterance) + " "
	for _, rule := range c.rules {
		for _, kw := range rule.keywords {
			if strings.Contains(norm, " "+kw) {
				return rule.intent, true
			}
		}
	}
	return contractx.IntentNone, false
}

// normalizeUtterance lower-cases and strips punctuation that would break
// keyword hits, preserving the ':' used by labeled profile segments.
func normalizeUtterance(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == ':', r == '\'', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
