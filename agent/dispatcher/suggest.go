package dispatcher

import (
	contractx "github.com/skillsphere/skillsphere/agent/contract"
	statex "github.com/skillsphere/skillsphere/agent/state"
)

// StaticSuggester returns a fixed follow-up list per intent. It implements
// the pluggable strategy the dispatcher consults after each tool result, so
// a smarter (e.g. LLM-driven) suggester can replace it without touching the
// tools.
type StaticSuggester struct {
	byIntent map[contractx.Intent][]string
}

func NewStaticSuggester() *StaticSuggester {
	return &StaticSuggester{
		byIntent: map[contractx.Intent][]string{
			contractx.IntentStartJourney: {
				"share your skills and interests",
				"paste your resume for analysis",
			},
			contractx.IntentProvideProfile: {
				"request a career recommendation",
				"paste your resume for analysis",
			},
			contractx.IntentResumeAnalysis: {
				"request a career recommendation",
			},
			contractx.IntentCareerRecommendation: {
				"request a curriculum for the top match",
			},
			contractx.IntentCurriculum: {
				"calculate costs",
				"look for scholarships",
			},
			contractx.IntentCostAnalysis: {
				"look for scholarships",
				"report progress as you complete milestones",
			},
			contractx.IntentScholarships: {
				"report progress as you complete milestones",
			},
			contractx.IntentReportProgress: {
				"keep reporting completed skills",
				"request a fresh cost analysis",
			},
			contractx.IntentGenericFollowup: {
				"request a career recommendation",
				"share more about your skills",
			},
			contractx.IntentNone: {
				"share your skills and interests",
				"request a career recommendation",
			},
		},
	}
}

func (s *StaticSuggester) Suggest(intent contractx.Intent, _ *statex.Session) []string {
	return s.byIntent[intent]
}
