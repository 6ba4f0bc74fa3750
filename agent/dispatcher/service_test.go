package dispatcher

import (
	"context"
	"errors"
	"testing"

	contractx "github.com/skillsphere/skillsphere/agent/contract"
	extractx "github.com/skillsphere/skillsphere/agent/extract"
	refdatax "github.com/skillsphere/skillsphere/agent/refdata"
	statex "github.com/skillsphere/skillsphere/agent/state"
	toolx "github.com/skillsphere/skillsphere/agent/tool"
)

func newTestDispatcher(t *testing.T) (*Dispatcher, *statex.MemoryStore) {
	t.Helper()

	bundle, err := refdatax.Load()
	if err != nil {
		t.Fatalf("load bundle: %v", err)
	}
	registry, err := toolx.NewRegistry(bundle, extractx.NewKeywordExtractor(bundle), nil)
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}

	store := statex.NewMemoryStore()
	d, err := New(store, registry, nil, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return d, store
}

func handleOK(t *testing.T, d *Dispatcher, sessionID, utterance string) contractx.StructuredResult {
	t.Helper()
	res, err := d.HandleTurn(context.Background(), sessionID, utterance)
	if err != nil {
		t.Fatalf("HandleTurn(%q) error = %v", utterance, err)
	}
	return res
}

func TestHandleTurnFullJourney(t *testing.T) {
	t.Parallel()

	d, store := newTestDispatcher(t)
	const sessionID = "journey-1"

	res := handleOK(t, d, sessionID, "hello, I want to start a career change")
	if res.Status != contractx.StatusOK || res.Intent != contractx.IntentStartJourney {
		t.Fatalf("start turn = %+v", res)
	}
	journey, ok := res.Data.(contractx.JourneyData)
	if !ok || len(journey.NextSteps) == 0 {
		t.Fatalf("unexpected journey payload: %#v", res.Data)
	}
	if len(res.Suggestions) == 0 {
		t.Fatal("start turn carries no suggestions")
	}

	res = handleOK(t, d, sessionID, "skills: html, css; interests: design; hours: 10")
	if res.Status != contractx.StatusOK || res.Intent != contractx.IntentProvideProfile {
		t.Fatalf("profile turn = %+v", res)
	}

	res = handleOK(t, d, sessionID, "which career would you recommend?")
	if res.Status != contractx.StatusOK || res.Intent != contractx.IntentCareerRecommendation {
		t.Fatalf("match turn = %+v", res)
	}
	matchData, ok := res.Data.(contractx.MatchData)
	if !ok || len(matchData.Matches) == 0 {
		t.Fatalf("unexpected match payload: %#v", res.Data)
	}
	if matchData.Matches[0].CareerID != "frontend-developer" {
		t.Fatalf("top match = %s, want frontend-developer", matchData.Matches[0].CareerID)
	}

	res = handleOK(t, d, sessionID, "build me a curriculum")
	if res.Status != contractx.StatusOK || res.Intent != contractx.IntentCurriculum {
		t.Fatalf("curriculum turn = %+v", res)
	}
	curriculum, ok := res.Data.(contractx.CurriculumData)
	if !ok || curriculum.Plan == nil || len(curriculum.Plan.Phases) == 0 {
		t.Fatalf("unexpected curriculum payload: %#v", res.Data)
	}

	res = handleOK(t, d, sessionID, "how much will it cost?")
	if res.Status != contractx.StatusOK || res.Intent != contractx.IntentCostAnalysis {
		t.Fatalf("cost turn = %+v", res)
	}
	costData, ok := res.Data.(contractx.CostData)
	if !ok || costData.Summary == nil {
		t.Fatalf("unexpected cost payload: %#v", res.Data)
	}
	if costData.Summary.DurationMonths <= 0 {
		t.Fatalf("DurationMonths = %v, want positive", costData.Summary.DurationMonths)
	}

	res = handleOK(t, d, sessionID, "I finished javascript")
	if res.Status != contractx.StatusOK || res.Intent != contractx.IntentReportProgress {
		t.Fatalf("progress turn = %+v", res)
	}
	progressData, ok := res.Data.(contractx.ProgressData)
	if !ok || progressData.Marked != "frontend-developer/javascript" {
		t.Fatalf("unexpected progress payload: %#v", res.Data)
	}
	if progressData.Progress.PercentComplete != 0.5 {
		t.Fatalf("PercentComplete = %v, want 0.5", progressData.Progress.PercentComplete)
	}

	sess, err := store.Load(context.Background(), sessionID)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(sess.History) != 6 {
		t.Fatalf("history length = %d, want 6", len(sess.History))
	}
	if sess.Plan == nil || sess.Summary == nil {
		t.Fatal("plan or summary not persisted")
	}
}

func TestHandleTurnCurriculumBeforeRecommendation(t *testing.T) {
	t.Parallel()

	d, _ := newTestDispatcher(t)

	res := handleOK(t, d, "eager-1", "give me a curriculum right now")
	if res.Status != contractx.StatusNeedsInfo {
		t.Fatalf("status = %s, want needs_info", res.Status)
	}
	if res.Reason != contractx.ReasonMissingCareerMatch {
		t.Fatalf("reason = %s, want %s", res.Reason, contractx.ReasonMissingCareerMatch)
	}
}

func TestHandleTurnCostBeforeCurriculum(t *testing.T) {
	t.Parallel()

	d, _ := newTestDispatcher(t)

	res := handleOK(t, d, "eager-2", "how much does it cost?")
	if res.Status != contractx.StatusNeedsInfo || res.Reason != contractx.ReasonMissingLearningPlan {
		t.Fatalf("turn = %+v", res)
	}
}

func TestHandleTurnMatchingWithoutProfile(t *testing.T) {
	t.Parallel()

	d, _ := newTestDispatcher(t)

	res := handleOK(t, d, "eager-3", "recommend a career for me")
	if res.Status != contractx.StatusNeedsInfo || res.Reason != contractx.ReasonNoCandidates {
		t.Fatalf("turn = %+v", res)
	}
}

func TestHandleTurnUnresolvedIntent(t *testing.T) {
	t.Parallel()

	d, store := newTestDispatcher(t)

	res := handleOK(t, d, "confused-1", "zxqv blorp")
	if res.Status != contractx.StatusNeedsInfo || res.Reason != contractx.ReasonUnresolvedIntent {
		t.Fatalf("turn = %+v", res)
	}
	if len(res.Suggestions) == 0 {
		t.Fatal("unresolved turn should still suggest next actions")
	}

	// Even unresolved turns land in the history.
	sess, err := store.Load(context.Background(), "confused-1")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(sess.History) != 1 || sess.History[0].Status != contractx.StatusNeedsInfo {
		t.Fatalf("unexpected history: %+v", sess.History)
	}
}

func TestHandleTurnRematchRetargetsCurriculum(t *testing.T) {
	t.Parallel()

	d, store := newTestDispatcher(t)
	const sessionID = "retarget-1"

	handleOK(t, d, sessionID, "skills: html, css; hours: 10")
	handleOK(t, d, sessionID, "recommend a career")
	res := handleOK(t, d, sessionID, "build me a curriculum")
	curriculum, ok := res.Data.(contractx.CurriculumData)
	if !ok || curriculum.Plan == nil || curriculum.Plan.CareerID != "frontend-developer" {
		t.Fatalf("first curriculum payload: %#v", res.Data)
	}
	handleOK(t, d, sessionID, "I finished javascript")

	// New profile signal flips the ranking; the next curriculum must follow
	// the new leader, not the earlier choice.
	handleOK(t, d, sessionID, "skills: python, statistics, machine learning")

	res = handleOK(t, d, sessionID, "recommend a career")
	matchData, ok := res.Data.(contractx.MatchData)
	if !ok || len(matchData.Matches) == 0 {
		t.Fatalf("re-match payload: %#v", res.Data)
	}
	if matchData.Matches[0].CareerID != "data-scientist" {
		t.Fatalf("top match after update = %s, want data-scientist", matchData.Matches[0].CareerID)
	}

	res = handleOK(t, d, sessionID, "build me a curriculum")
	curriculum, ok = res.Data.(contractx.CurriculumData)
	if !ok || curriculum.Plan == nil {
		t.Fatalf("second curriculum payload: %#v", res.Data)
	}
	if curriculum.Plan.CareerID != "data-scientist" {
		t.Fatalf("rebuilt plan career = %s, want data-scientist", curriculum.Plan.CareerID)
	}

	sess, err := store.Load(context.Background(), sessionID)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if sess.Chosen == nil || sess.Chosen.CareerID != "data-scientist" {
		t.Fatalf("chosen career = %+v, want data-scientist", sess.Chosen)
	}
	if len(sess.Progress.CompletedMilestones) != 0 {
		t.Fatalf("progress survived the retarget: %+v", sess.Progress)
	}
}

func TestHandleTurnRematchSameCareerRefreshesGap(t *testing.T) {
	t.Parallel()

	d, store := newTestDispatcher(t)
	const sessionID = "retarget-2"

	handleOK(t, d, sessionID, "skills: html, css; hours: 10")
	handleOK(t, d, sessionID, "recommend a career")
	handleOK(t, d, sessionID, "build me a curriculum")
	handleOK(t, d, sessionID, "I finished javascript")

	// Same top career after the update: plan and progress stay, the choice
	// picks up the re-scored gap.
	handleOK(t, d, sessionID, "skills: javascript")
	handleOK(t, d, sessionID, "recommend a career")

	sess, err := store.Load(context.Background(), sessionID)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if sess.Plan == nil || len(sess.Progress.CompletedMilestones) != 1 {
		t.Fatalf("plan=%v progress=%+v after same-career re-match", sess.Plan, sess.Progress)
	}

	res := handleOK(t, d, sessionID, "build me a curriculum")
	curriculum, ok := res.Data.(contractx.CurriculumData)
	if !ok || curriculum.Plan == nil {
		t.Fatalf("curriculum payload: %#v", res.Data)
	}
	ids := curriculum.Plan.MilestoneIDs()
	if len(ids) != 1 || ids[0] != "frontend-developer/react" {
		t.Fatalf("rebuilt milestones = %v, want [frontend-developer/react]", ids)
	}
}

func TestHandleTurnResumeAnalysis(t *testing.T) {
	t.Parallel()

	d, _ := newTestDispatcher(t)
	const sessionID = "resume-1"

	res := handleOK(t, d, sessionID, "analyze my resume: five years of JavaScript and React development")
	if res.Status != contractx.StatusOK || res.Intent != contractx.IntentResumeAnalysis {
		t.Fatalf("resume turn = %+v", res)
	}
	resumeData, ok := res.Data.(contractx.ResumeData)
	if !ok {
		t.Fatalf("unexpected resume payload: %#v", res.Data)
	}
	found := make(map[string]bool, len(resumeData.ExtractedSkills))
	for _, s := range resumeData.ExtractedSkills {
		found[s] = true
	}
	if !found["javascript"] || !found["react"] {
		t.Fatalf("extracted skills = %v, want javascript and react", resumeData.ExtractedSkills)
	}
}

func TestHandleTurnProgressWithoutMilestoneMention(t *testing.T) {
	t.Parallel()

	d, _ := newTestDispatcher(t)
	const sessionID = "progress-1"

	handleOK(t, d, sessionID, "skills: html, css; hours: 10")
	handleOK(t, d, sessionID, "recommend a career")
	handleOK(t, d, sessionID, "build me a curriculum")

	res := handleOK(t, d, sessionID, "show my progress")
	if res.Status != contractx.StatusOK || res.Intent != contractx.IntentReportProgress {
		t.Fatalf("progress turn = %+v", res)
	}
	progressData, ok := res.Data.(contractx.ProgressData)
	if !ok || progressData.Marked != "" {
		t.Fatalf("unexpected progress payload: %#v", res.Data)
	}
	if progressData.Progress.PercentComplete != 0 {
		t.Fatalf("PercentComplete = %v, want 0", progressData.Progress.PercentComplete)
	}
}

func TestHandleTurnInvalidInput(t *testing.T) {
	t.Parallel()

	d, _ := newTestDispatcher(t)

	if _, err := d.HandleTurn(context.Background(), "", "hello"); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("empty session error = %v, want ErrInvalidSession", err)
	}
	if _, err := d.HandleTurn(context.Background(), "sess-1", "   "); !errors.Is(err, ErrInvalidUtterance) {
		t.Fatalf("empty utterance error = %v, want ErrInvalidUtterance", err)
	}
}

func TestResetDropsSession(t *testing.T) {
	t.Parallel()

	d, store := newTestDispatcher(t)
	const sessionID = "reset-1"

	handleOK(t, d, sessionID, "hello there")
	if _, err := store.Load(context.Background(), sessionID); err != nil {
		t.Fatalf("Load() before reset error = %v", err)
	}

	if err := d.Reset(context.Background(), sessionID); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	if _, err := store.Load(context.Background(), sessionID); !errors.Is(err, statex.ErrSessionNotFound) {
		t.Fatalf("Load() after reset error = %v, want ErrSessionNotFound", err)
	}

	// A new turn on the same id starts from scratch.
	res := handleOK(t, d, sessionID, "give me a curriculum")
	if res.Status != contractx.StatusNeedsInfo || res.Reason != contractx.ReasonMissingCareerMatch {
		t.Fatalf("turn after reset = %+v", res)
	}
}

func TestResetKeepsSessionLock(t *testing.T) {
	t.Parallel()

	d, _ := newTestDispatcher(t)
	const sessionID = "reset-2"

	handleOK(t, d, sessionID, "hello there")
	before := d.lockFor(sessionID)

	if err := d.Reset(context.Background(), sessionID); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	if d.lockFor(sessionID) != before {
		t.Fatal("Reset replaced the session lock")
	}
}

func TestNewValidatesDependencies(t *testing.T) {
	t.Parallel()

	if _, err := New(nil, nil, nil, nil); err == nil {
		t.Fatal("New() accepted a nil store")
	}
	store := statex.NewMemoryStore()
	if _, err := New(store, nil, nil, nil); err == nil {
		t.Fatal("New() accepted a nil registry")
	}
}
