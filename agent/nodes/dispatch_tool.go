package nodes

import (
	"context"
	"errors"
	"fmt"

	contractx "github.com/skillsphere/skillsphere/agent/contract"
	statex "github.com/skillsphere/skillsphere/agent/state"
)

// journeyNextSteps is the static onboarding checklist returned on
// start-journey.
var journeyNextSteps = []string{
	"Share your background and current situation",
	"Tell me about your interests and passions",
	"Let me know your weekly learning time budget",
	"Describe your career goals and timeline",
}

// DispatchTool routes the classified intent to exactly one primary tool and
// merges its output into the session. Domain sentinels are recovered into a
// graceful StructuredResult here; anything else is a defect and propagates.
func DispatchTool(ctx context.Context, in *GraphState, reg contractx.Registry) (*GraphState, error) {
	if in == nil || in.Session == nil {
		return nil, fmt.Errorf("%w: graph session is nil", contractx.ErrValidation)
	}

	res, err := dispatch(ctx, in, reg)
	if err != nil {
		recovered, ok := recoverDomainError(in.Intent, err)
		if !ok {
			return nil, err
		}
		res = recovered
	}

	in.Result = res
	return in, nil
}

func dispatch(ctx context.Context, in *GraphState, reg contractx.Registry) (contractx.StructuredResult, error) {
	sess := in.Session

	switch in.Intent {
	case contractx.IntentNone:
		return contractx.StructuredResult{}, fmt.Errorf("%w: %q", contractx.ErrUnresolvedIntent, in.Utterance)

	case contractx.IntentStartJourney:
		return ok(in.Intent, "Career journey started.", contractx.JourneyData{
			NextSteps: journeyNextSteps,
		}), nil

	case contractx.IntentProvideProfile:
		fields := parseProfileFields(in.Utterance)
		profile, err := reg.Profile().Update(sess, fields, in.Now)
		if err != nil {
			return contractx.StructuredResult{}, err
		}
		return ok(in.Intent, "Profile updated.", contractx.ProfileData{Profile: profile}), nil

	case contractx.IntentResumeAnalysis:
		skills, err := reg.Profile().AnalyzeResume(ctx, sess, resumeText(in.Utterance), in.Now)
		if err != nil {
			return contractx.StructuredResult{}, err
		}
		return ok(in.Intent, "Resume analyzed.", contractx.ResumeData{
			ExtractedSkills: skills,
			Profile:         sess.Profile,
		}), nil

	case contractx.IntentCareerRecommendation:
		matches, err := reg.Matcher().Match(sess.Profile)
		if err != nil {
			return contractx.StructuredResult{}, err
		}
		sess.Matches = matches
		retarget(sess, matches)
		sess.Touch(in.Now)
		return ok(in.Intent, "Career matches ready.", contractx.MatchData{Matches: matches}), nil

	case contractx.IntentCurriculum:
		chosen := chosenMatch(sess)
		if chosen == nil {
			return needsInfo(in.Intent, contractx.ReasonMissingCareerMatch,
				"A career recommendation is needed first: ask for career matches, then request a curriculum."), nil
		}
		plan, err := reg.Curriculum().Generate(chosen)
		if err != nil {
			return contractx.StructuredResult{}, err
		}
		sess.Chosen = chosen
		sess.Plan = plan
		sess.Progress = statex.ProgressState{} // new plan, fresh progress
		sess.InvalidateSummary()
		sess.Touch(in.Now)
		return ok(in.Intent, "Learning plan ready.", contractx.CurriculumData{
			Plan:             plan,
			IncompleteSkills: incompleteSkills(plan),
		}), nil

	case contractx.IntentCostAnalysis:
		if sess.Plan == nil {
			return needsInfo(in.Intent, contractx.ReasonMissingLearningPlan,
				"A curriculum is needed first: request a learning plan, then ask for the cost analysis."), nil
		}
		summary, err := reg.Cost().Calculate(sess)
		if err != nil {
			return contractx.StructuredResult{}, err
		}
		sess.Summary = summary
		sess.Touch(in.Now)
		return ok(in.Intent, "Cost analysis ready.", contractx.CostData{Summary: summary}), nil

	case contractx.IntentScholarships:
		chosen := chosenMatch(sess)
		if chosen == nil {
			return needsInfo(in.Intent, contractx.ReasonMissingCareerMatch,
				"A career recommendation is needed first: ask for career matches, then request scholarships."), nil
		}
		scholarships, err := reg.Scholarships().Find(chosen.CareerID)
		if err != nil {
			return contractx.StructuredResult{}, err
		}
		return ok(in.Intent, "Scholarship options found.", contractx.ScholarshipData{
			CareerID:     chosen.CareerID,
			Scholarships: scholarships,
		}), nil

	case contractx.IntentReportProgress:
		if sess.Plan == nil {
			return needsInfo(in.Intent, contractx.ReasonMissingLearningPlan,
				"A curriculum is needed first: request a learning plan, then report progress against it."), nil
		}
		milestoneID, found := milestoneFromUtterance(sess.Plan, in.Utterance)
		if !found {
			// No recognizable milestone: report current standing.
			return ok(in.Intent, "Current progress.", contractx.ProgressData{
				Progress: sess.Progress,
			}), nil
		}
		progress, err := reg.Progress().MarkComplete(sess, milestoneID, in.Now)
		if err != nil {
			return contractx.StructuredResult{}, err
		}
		return ok(in.Intent, "Milestone recorded.", contractx.ProgressData{
			Progress: *progress,
			Marked:   milestoneID,
		}), nil

	case contractx.IntentGenericFollowup:
		return ok(in.Intent, "Happy to keep going.", nil), nil

	default:
		return contractx.StructuredResult{}, fmt.Errorf("%w: unhandled intent %q", contractx.ErrValidation, in.Intent)
	}
}

// chosenMatch returns the explicit choice, falling back to the top result of
// the latest matching call.
func chosenMatch(sess *statex.Session) *statex.CareerMatch {
	if sess.Chosen != nil {
		return sess.Chosen
	}
	if len(sess.Matches) > 0 {
		return &sess.Matches[0]
	}
	return nil
}

// retarget reconciles an earlier career choice with a fresh ranking. The same
// top career keeps the plan and progress but adopts the re-scored match, so
// the next curriculum rebuild sees the current gap list; a different top
// career (or an empty ranking) drops the choice and everything derived from
// it, and the next curriculum request targets the new leader.
func retarget(sess *statex.Session, matches []statex.CareerMatch) {
	if sess.Chosen == nil {
		return
	}
	if len(matches) > 0 && matches[0].CareerID == sess.Chosen.CareerID {
		sess.Chosen = &matches[0]
		return
	}
	sess.Chosen = nil
	sess.Plan = nil
	sess.Progress = statex.ProgressState{}
	sess.InvalidateSummary()
}

func incompleteSkills(plan *statex.LearningPlan) []string {
	var out []string
	for _, phase := range plan.Phases {
		for _, m := range phase.Milestones {
			if m.CoursesMissing {
				out = append(out, m.Skill)
			}
		}
	}
	return out
}

// recoverDomainError converts tool sentinels into graceful results. The
// second return is false for non-domain errors, which must propagate.
func recoverDomainError(intent contractx.Intent, err error) (contractx.StructuredResult, bool) {
	switch {
	case errors.Is(err, contractx.ErrEmptyInput):
		return needsInfo(intent, contractx.ReasonEmptyInput, err.Error()), true
	case errors.Is(err, contractx.ErrNoCandidates):
		return needsInfo(intent, contractx.ReasonNoCandidates,
			"There is not enough profile information to score careers yet; share some skills or interests first."), true
	case errors.Is(err, contractx.ErrInsufficientData):
		return needsInfo(intent, contractx.ReasonInsufficientData,
			"A weekly time budget is needed to pace the plan; tell me how many hours per week you can commit."), true
	case errors.Is(err, contractx.ErrMissingPrerequisite):
		return needsInfo(intent, contractx.ReasonMissingLearningPlan, err.Error()), true
	case errors.Is(err, contractx.ErrUnknownMilestone):
		return contractx.StructuredResult{
			Status:  contractx.StatusError,
			Intent:  intent,
			Reason:  contractx.ReasonUnknownMilestone,
			Message: err.Error(),
		}, true
	case errors.Is(err, contractx.ErrUnresolvedIntent):
		return needsInfo(intent, contractx.ReasonUnresolvedIntent,
			"I could not work out what you need. Try asking for a career recommendation, a curriculum, or a cost analysis."), true
	default:
		return contractx.StructuredResult{}, false
	}
}

func ok(intent contractx.Intent, message string, data any) contractx.StructuredResult {
	return contractx.StructuredResult{
		Status:  contractx.StatusOK,
		Intent:  intent,
		Message: message,
		Data:    data,
	}
}

func needsInfo(intent contractx.Intent, reason, message string) contractx.StructuredResult {
	return contractx.StructuredResult{
		Status:  contractx.StatusNeedsInfo,
		Intent:  intent,
		Reason:  reason,
		Message: message,
	}
}
