package state

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	refdatax "github.com/skillsphere/skillsphere/agent/refdata"
)

// Session is the per-user source of truth across a multi-turn guidance
// conversation. It is owned by the Store and mutated only through dispatcher
// turns; once deleted, holders must re-fetch.
type Session struct {
	ID string `json:"id"`

	Profile *Profile          `json:"profile,omitempty"`
	Matches []CareerMatch     `json:"matches,omitempty"` // latest matching results
	Chosen  *CareerMatch      `json:"chosen,omitempty"`  // the match the plan is built for
	Plan    *LearningPlan     `json:"plan,omitempty"`
	Summary *FinancialSummary `json:"summary,omitempty"`

	Progress ProgressState `json:"progress"`
	History  []Turn        `json:"history,omitempty"`

	LastActive time.Time `json:"last_active"`
}

// Profile is the accumulated user record. Skills and interests are kept
// deduplicated, case-normalized, and sorted; merges never drop entries.
type Profile struct {
	Skills           []string `json:"skills,omitempty"`
	Interests        []string `json:"interests,omitempty"`
	Goals            string   `json:"goals,omitempty"`
	WeeklyTimeBudget float64  `json:"weekly_time_budget,omitempty"` // hours per week
	CurrentSalary    float64  `json:"current_salary,omitempty"`
	ResumeSkills     []string `json:"resume_skills,omitempty"`
}

// CareerMatch is a scored candidate career. Produced fresh per matching call
// and never mutated afterwards.
type CareerMatch struct {
	CareerID      string              `json:"career_id"`
	Title         string              `json:"title"`
	FitScore      float64             `json:"fit_score"`
	MissingSkills []string            `json:"missing_skills,omitempty"` // most impactful first
	Market        refdatax.MarketData `json:"market"`
}

// LearningPlan is an ordered, phased curriculum for one career.
type LearningPlan struct {
	CareerID string  `json:"career_id"`
	Phases   []Phase `json:"phases"`
}

type Phase struct {
	Name       string      `json:"name"`
	Milestones []Milestone `json:"milestones"`
}

// Milestone maps one missing skill to its selected courses. CoursesMissing
// flags a skill the catalog has no entries for; the milestone is still part
// of the plan.
type Milestone struct {
	ID             string            `json:"id"`
	Skill          string            `json:"skill"`
	Courses        []refdatax.Course `json:"courses,omitempty"`
	EstimatedHours float64           `json:"estimated_hours"`
	CoursesMissing bool              `json:"courses_missing,omitempty"`
}

// FinancialSummary is derived on demand; the dispatcher clears it whenever
// the profile or plan changes so it never goes stale.
type FinancialSummary struct {
	TotalCost       float64 `json:"total_cost"`
	MonthlyCost     float64 `json:"monthly_cost"`
	WeeklyCost      float64 `json:"weekly_cost"`
	DurationMonths  float64 `json:"duration_months"`
	SalaryDelta     float64 `json:"projected_salary_delta"`
	BreakEvenMonths float64 `json:"break_even_months"`
}

// ProgressState is mutated only by the progress tracker. The completed set
// never shrinks within a session.
type ProgressState struct {
	CompletedMilestones []string `json:"completed_milestones,omitempty"`
	BadgesEarned        []string `json:"badges_earned,omitempty"`
	PercentComplete     float64  `json:"percent_complete"`
}

// Turn is one utterance/response record in the session history.
type Turn struct {
	Utterance string    `json:"utterance"`
	Intent    string    `json:"intent"`
	Status    string    `json:"status"`
	At        time.Time `json:"at"`
}

var (
	ErrEmptySessionID = errors.New("session id is empty")
	ErrCorruptSession = errors.New("session state corrupt")
)

func NewSession(id string, now time.Time) *Session {
	return &Session{
		ID:         id,
		LastActive: now.UTC(),
	}
}

func (s *Session) Touch(now time.Time) {
	s.LastActive = now.UTC()
}

// EnsureProfile initializes the profile on first use.
func (s *Session) EnsureProfile() *Profile {
	if s.Profile == nil {
		s.Profile = &Profile{}
	}
	return s.Profile
}

// AppendTurn records a handled turn.
func (s *Session) AppendTurn(utterance, intent, status string, now time.Time) {
	s.History = append(s.History, Turn{
		Utterance: utterance,
		Intent:    intent,
		Status:    status,
		At:        now.UTC(),
	})
}

// InvalidateSummary drops the cached financial summary. Call after any
// profile or plan mutation.
func (s *Session) InvalidateSummary() {
	s.Summary = nil
}

// Validate checks the session invariants. A failure here is a programming
// defect, not bad input.
func (s *Session) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return fmt.Errorf("%w: %v", ErrCorruptSession, ErrEmptySessionID)
	}
	if s.Plan != nil {
		if s.Chosen == nil {
			return fmt.Errorf("%w: plan without a chosen career match", ErrCorruptSession)
		}
		if s.Plan.CareerID != s.Chosen.CareerID {
			return fmt.Errorf("%w: plan career %s does not match chosen career %s",
				ErrCorruptSession, s.Plan.CareerID, s.Chosen.CareerID)
		}
		ids := s.Plan.MilestoneIDs()
		known := make(map[string]bool, len(ids))
		for _, id := range ids {
			known[id] = true
		}
		for _, done := range s.Progress.CompletedMilestones {
			if !known[done] {
				return fmt.Errorf("%w: completed milestone %s not in plan", ErrCorruptSession, done)
			}
		}
	}
	if s.Progress.PercentComplete < 0 || s.Progress.PercentComplete > 1 {
		return fmt.Errorf("%w: percent complete out of range: %v", ErrCorruptSession, s.Progress.PercentComplete)
	}
	return nil
}

/* ----------------------------- Plan helpers ----------------------------- */

// MilestoneIDs returns every milestone id in phase order.
func (p *LearningPlan) MilestoneIDs() []string {
	var ids []string
	for _, ph := range p.Phases {
		for _, m := range ph.Milestones {
			ids = append(ids, m.ID)
		}
	}
	return ids
}

// FindMilestone locates a milestone by id.
func (p *LearningPlan) FindMilestone(id string) (Milestone, bool) {
	for _, ph := range p.Phases {
		for _, m := range ph.Milestones {
			if m.ID == id {
				return m, true
			}
		}
	}
	return Milestone{}, false
}

// TotalHours sums the estimated hours across all milestones.
func (p *LearningPlan) TotalHours() float64 {
	var total float64
	for _, ph := range p.Phases {
		for _, m := range ph.Milestones {
			total += m.EstimatedHours
		}
	}
	return total
}

/* ---------------------------- Profile helpers ---------------------------- */

// NormalizeTerm lower-cases, trims, and collapses inner whitespace.
func NormalizeTerm(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(s))), " ")
}

// MergeTerms unions add into existing, normalized, deduplicated, sorted.
// Empty entries are dropped.
func MergeTerms(existing, add []string) []string {
	set := make(map[string]bool, len(existing)+len(add))
	for _, s := range existing {
		if n := NormalizeTerm(s); n != "" {
			set[n] = true
		}
	}
	for _, s := range add {
		if n := NormalizeTerm(s); n != "" {
			set[n] = true
		}
	}
	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// AllSkills returns the union of declared and resume-extracted skills.
func (p *Profile) AllSkills() []string {
	return MergeTerms(p.Skills, p.ResumeSkills)
}

// HasAnySignal reports whether the profile carries at least one skill or
// interest, the minimum the matcher needs to score.
func (p *Profile) HasAnySignal() bool {
	if p == nil {
		return false
	}
	return len(p.Skills) > 0 || len(p.Interests) > 0 || len(p.ResumeSkills) > 0
}
