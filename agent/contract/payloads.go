package contract

import (
	refdatax "github.com/skillsphere/skillsphere/agent/refdata"
	statex "github.com/skillsphere/skillsphere/agent/state"
)

// Typed Data payloads, discriminated by StructuredResult.Intent.

type JourneyData struct {
	NextSteps []string `json:"next_steps"`
}

type ProfileData struct {
	Profile *statex.Profile `json:"profile"`
}

type ResumeData struct {
	ExtractedSkills []string        `json:"extracted_skills"`
	Profile         *statex.Profile `json:"profile"`
}

type MatchData struct {
	Matches []statex.CareerMatch `json:"matches"`
}

type CurriculumData struct {
	Plan *statex.LearningPlan `json:"plan"`
	// IncompleteSkills lists milestones the catalog had no courses for.
	IncompleteSkills []string `json:"incomplete_skills,omitempty"`
}

type CostData struct {
	Summary *statex.FinancialSummary `json:"summary"`
}

type ScholarshipData struct {
	CareerID     string                 `json:"career_id"`
	Scholarships []refdatax.Scholarship `json:"scholarships"`
}

type ProgressData struct {
	Progress statex.ProgressState `json:"progress"`
	Marked   string               `json:"marked,omitempty"` // milestone id marked this turn
}
