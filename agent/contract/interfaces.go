package contract

import (
	"context"
	"time"

	refdatax "github.com/skillsphere/skillsphere/agent/refdata"
	statex "github.com/skillsphere/skillsphere/agent/state"
)

// ProfileBuilder accumulates user attributes into a structured profile.
type ProfileBuilder interface {
	Update(sess *statex.Session, fields ProfileFields, now time.Time) (*statex.Profile, error)
	AnalyzeResume(ctx context.Context, sess *statex.Session, resumeText string, now time.Time) ([]string, error)
}

// CareerMatcher scores candidate careers against a profile.
type CareerMatcher interface {
	Match(profile *statex.Profile) ([]statex.CareerMatch, error)
}

// CurriculumGenerator expands a match's gap list into a phased plan.
type CurriculumGenerator interface {
	Generate(match *statex.CareerMatch) (*statex.LearningPlan, error)
}

// CostCalculator derives cost/ROI figures from the session's plan and profile.
type CostCalculator interface {
	Calculate(sess *statex.Session) (*statex.FinancialSummary, error)
}

// ProgressTracker records completed milestones against the session's plan.
type ProgressTracker interface {
	MarkComplete(sess *statex.Session, milestoneID string, now time.Time) (*statex.ProgressState, error)
}

// ScholarshipFinder looks up financial-aid opportunities for a career.
type ScholarshipFinder interface {
	Find(careerID string) ([]refdatax.Scholarship, error)
}

// Registry exposes the toolset the dispatcher routes turns to.
type Registry interface {
	Profile() ProfileBuilder
	Matcher() CareerMatcher
	Curriculum() CurriculumGenerator
	Cost() CostCalculator
	Progress() ProgressTracker
	Scholarships() ScholarshipFinder
}

// SkillExtractor is the optional resume/NLU collaborator. A failing extractor
// must degrade to an empty set at the call site, never abort the turn.
type SkillExtractor interface {
	Extract(ctx context.Context, resumeText string) ([]string, error)
}

// Classifier maps a normalized utterance to an intent. ok is false when no
// rule matched.
type Classifier interface {
	Classify(utterance string) (intent Intent, ok bool)
}

// Suggester proposes follow-up actions after a tool result is produced. It is
// consulted by the dispatcher, keeping the tools themselves pure.
type Suggester interface {
	Suggest(intent Intent, sess *statex.Session) []string
}
