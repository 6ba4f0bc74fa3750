package tool

import (
	"fmt"
	"sort"
	"time"

	contractx "github.com/skillsphere/skillsphere/agent/contract"
	refdatax "github.com/skillsphere/skillsphere/agent/refdata"
	statex "github.com/skillsphere/skillsphere/agent/state"
)

// Tracker records milestone completion and emits threshold badges.
type Tracker struct {
	badges []refdatax.Badge
}

func NewTracker(bundle *refdatax.Bundle) *Tracker {
	return &Tracker{badges: bundle.BadgesAscending()}
}

// MarkComplete is idempotent: completing an already-completed milestone
// leaves the progress state untouched. The completed count never decreases
// within a session.
func (t *Tracker) MarkComplete(sess *statex.Session, milestoneID string, now time.Time) (*statex.ProgressState, error) {
	if sess == nil {
		return nil, fmt.Errorf("%w: nil session", contractx.ErrValidation)
	}
	if sess.Plan == nil {
		return nil, fmt.Errorf("%w: learning plan", contractx.ErrMissingPrerequisite)
	}
	if _, ok := sess.Plan.FindMilestone(milestoneID); !ok {
		return nil, fmt.Errorf("%w: %s", contractx.ErrUnknownMilestone, milestoneID)
	}

	progress := &sess.Progress
	for _, done := range progress.CompletedMilestones {
		if done == milestoneID {
			return progress, nil
		}
	}

	progress.CompletedMilestones = append(progress.CompletedMilestones, milestoneID)
	sort.Strings(progress.CompletedMilestones)

	total := len(sess.Plan.MilestoneIDs())
	if total > 0 {
		progress.PercentComplete = float64(len(progress.CompletedMilestones)) / float64(total)
	}

	t.awardBadges(progress)
	sess.Touch(now)
	return progress, nil
}

// awardBadges emits each crossed threshold badge at most once per session.
func (t *Tracker) awardBadges(progress *statex.ProgressState) {
	earned := make(map[string]bool, len(progress.BadgesEarned))
	for _, b := range progress.BadgesEarned {
		earned[b] = true
	}

	percent := progress.PercentComplete * 100
	for _, badge := range t.badges {
		if percent >= badge.Threshold && !earned[badge.Name] {
			progress.BadgesEarned = append(progress.BadgesEarned, badge.Name)
		}
	}
}
