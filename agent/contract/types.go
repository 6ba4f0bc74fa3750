package contract

// Intent is the classified purpose of a single user utterance within a turn.
type Intent string

const (
	IntentStartJourney         Intent = "start-journey"
	IntentProvideProfile       Intent = "provide-profile-info"
	IntentResumeAnalysis       Intent = "request-resume-analysis"
	IntentCareerRecommendation Intent = "request-career-recommendation"
	IntentCurriculum           Intent = "request-curriculum"
	IntentCostAnalysis         Intent = "request-cost-analysis"
	IntentScholarships         Intent = "request-scholarships"
	IntentReportProgress       Intent = "report-progress"
	IntentGenericFollowup      Intent = "generic-followup"

	// IntentNone is returned by a classifier when no rule matched.
	IntentNone Intent = ""
)

// StructuredResult status values.
const (
	StatusOK        = "ok"
	StatusNeedsInfo = "needs_info"
	StatusError     = "error"
)

// Machine-readable reason codes carried on non-ok results.
const (
	ReasonUnresolvedIntent    = "unresolved_intent"
	ReasonMissingCareerMatch  = "missing_career_match"
	ReasonMissingLearningPlan = "missing_learning_plan"
	ReasonEmptyInput          = "empty_input"
	ReasonNoCandidates        = "no_candidates"
	ReasonInsufficientData    = "insufficient_data"
	ReasonUnknownMilestone    = "unknown_milestone"
)

// StructuredResult is the stable contract returned to the presentation layer.
// Data is a typed payload discriminated by Intent; the caller renders it as
// natural language.
type StructuredResult struct {
	Status      string   `json:"status"`
	Intent      Intent   `json:"intent"`
	Reason      string   `json:"reason,omitempty"`
	Message     string   `json:"message,omitempty"`
	Data        any      `json:"data,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// ProfileFields is a partial profile update. Zero values mean "not supplied";
// set fields merge into the existing profile (set union for skills/interests,
// last write wins for scalars).
type ProfileFields struct {
	Skills           []string `json:"skills,omitempty"`
	Interests        []string `json:"interests,omitempty"`
	Goals            string   `json:"goals,omitempty"`
	WeeklyTimeBudget float64  `json:"weekly_time_budget,omitempty"`
	CurrentSalary    float64  `json:"current_salary,omitempty"`
}

// IsEmpty reports whether no field carries a value.
func (f ProfileFields) IsEmpty() bool {
	return len(f.Skills) == 0 &&
		len(f.Interests) == 0 &&
		f.Goals == "" &&
		f.WeeklyTimeBudget == 0 &&
		f.CurrentSalary == 0
}
