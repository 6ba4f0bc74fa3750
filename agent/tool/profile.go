package tool

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	contractx "github.com/skillsphere/skillsphere/agent/contract"
	statex "github.com/skillsphere/skillsphere/agent/state"
)

// ProfileBuilder merges partial field sets into the session profile and
// extracts skills from resume text. The dictionary extractor is mandatory;
// the collaborator is optional and only ever enriches the result.
type ProfileBuilder struct {
	dictionary   contractx.SkillExtractor
	collaborator contractx.SkillExtractor // may be nil
}

func NewProfileBuilder(dictionary contractx.SkillExtractor, collaborator contractx.SkillExtractor) *ProfileBuilder {
	return &ProfileBuilder{
		dictionary:   dictionary,
		collaborator: collaborator,
	}
}

// Update merges fields into the session profile: set union for skills and
// interests, last write wins for scalars. Repeating identical input is a
// no-op.
func (b *ProfileBuilder) Update(sess *statex.Session, fields contractx.ProfileFields, now time.Time) (*statex.Profile, error) {
	if sess == nil {
		return nil, fmt.Errorf("%w: nil session", contractx.ErrValidation)
	}
	if fields.IsEmpty() {
		return nil, fmt.Errorf("%w: no profile fields supplied", contractx.ErrEmptyInput)
	}

	profile := sess.EnsureProfile()
	profile.Skills = statex.MergeTerms(profile.Skills, fields.Skills)
	profile.Interests = statex.MergeTerms(profile.Interests, fields.Interests)
	if goals := strings.TrimSpace(fields.Goals); goals != "" {
		profile.Goals = goals
	}
	if fields.WeeklyTimeBudget > 0 {
		profile.WeeklyTimeBudget = fields.WeeklyTimeBudget
	}
	if fields.CurrentSalary > 0 {
		profile.CurrentSalary = fields.CurrentSalary
	}

	sess.InvalidateSummary()
	sess.Touch(now)
	return profile, nil
}

// AnalyzeResume extracts skills from resume text and merges them into the
// profile's resume skill set. Collaborator failure degrades to the dictionary
// result alone.
func (b *ProfileBuilder) AnalyzeResume(ctx context.Context, sess *statex.Session, resumeText string, now time.Time) ([]string, error) {
	if sess == nil {
		return nil, fmt.Errorf("%w: nil session", contractx.ErrValidation)
	}
	if strings.TrimSpace(resumeText) == "" {
		return nil, fmt.Errorf("%w: resume text is empty", contractx.ErrEmptyInput)
	}

	found, err := b.dictionary.Extract(ctx, resumeText)
	if err != nil {
		return nil, fmt.Errorf("%w: dictionary extraction: %v", contractx.ErrValidation, err)
	}

	if b.collaborator != nil {
		extra, err := b.collaborator.Extract(ctx, resumeText)
		if err != nil {
			log.Warn().Err(err).Str("session_id", sess.ID).
				Msg("resume collaborator failed, continuing with dictionary skills")
		} else {
			found = statex.MergeTerms(found, extra)
		}
	}

	profile := sess.EnsureProfile()
	profile.ResumeSkills = statex.MergeTerms(profile.ResumeSkills, found)

	sess.InvalidateSummary()
	sess.Touch(now)
	return found, nil
}
