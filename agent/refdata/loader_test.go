package refdata

import (
	"errors"
	"strings"
	"testing"
)

func TestLoadEmbeddedBundle(t *testing.T) {
	t.Parallel()

	b, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(b.Careers) == 0 {
		t.Fatal("embedded bundle has no careers")
	}
	if _, ok := b.CareerByID("frontend-developer"); !ok {
		t.Fatal("frontend-developer missing from embedded bundle")
	}
	if len(b.SkillDictionary()) == 0 {
		t.Fatal("embedded bundle has no skill dictionary")
	}
	if b.Defaults.TopMatches <= 0 || b.Defaults.CoursesPerSkill <= 0 {
		t.Fatalf("defaults not applied: %+v", b.Defaults)
	}
}

func TestParseRejectsEmptyBundle(t *testing.T) {
	t.Parallel()

	if _, err := Parse([]byte("careers: []")); !errors.Is(err, ErrEmptyBundle) {
		t.Fatalf("Parse() error = %v, want ErrEmptyBundle", err)
	}
}

func TestParseRejectsCyclicPrerequisites(t *testing.T) {
	t.Parallel()

	raw := `
careers:
  - id: looped
    title: Looped
    required_skills:
      - { name: a, weight: 1 }
      - { name: b, weight: 1 }
    prerequisites:
      a: [b]
      b: [a]
`
	if _, err := Parse([]byte(raw)); !errors.Is(err, ErrCyclicPrereqs) {
		t.Fatalf("Parse() error = %v, want ErrCyclicPrereqs", err)
	}
}

func TestParseRejectsDuplicateCareerIDs(t *testing.T) {
	t.Parallel()

	raw := `
careers:
  - id: dup
    title: One
    required_skills:
      - { name: a, weight: 1 }
  - id: dup
    title: Two
    required_skills:
      - { name: a, weight: 1 }
`
	_, err := Parse([]byte(raw))
	if err == nil || !strings.Contains(err.Error(), "duplicate career id") {
		t.Fatalf("Parse() error = %v, want duplicate career id", err)
	}
}

func TestParseRejectsNonPositiveWeight(t *testing.T) {
	t.Parallel()

	raw := `
careers:
  - id: weightless
    title: Weightless
    required_skills:
      - { name: a, weight: 0 }
`
	_, err := Parse([]byte(raw))
	if err == nil || !strings.Contains(err.Error(), "non-positive weight") {
		t.Fatalf("Parse() error = %v, want non-positive weight", err)
	}
}

func TestParseRejectsBadBadgeThreshold(t *testing.T) {
	t.Parallel()

	raw := `
careers:
  - id: c
    title: C
    required_skills:
      - { name: a, weight: 1 }
badges:
  - { name: Overachiever, threshold: 120 }
`
	_, err := Parse([]byte(raw))
	if err == nil || !strings.Contains(err.Error(), "threshold out of range") {
		t.Fatalf("Parse() error = %v, want threshold out of range", err)
	}
}

func TestCoursesForSkillOrdering(t *testing.T) {
	t.Parallel()

	b := MustLoad()
	courses := b.CoursesForSkill("javascript")
	if len(courses) < 3 {
		t.Fatalf("expected at least 3 javascript courses, got %d", len(courses))
	}
	for i := 1; i < len(courses); i++ {
		prev, cur := courses[i-1], courses[i]
		if cur.Rating > prev.Rating {
			t.Fatalf("ratings not descending at %d: %v then %v", i, prev.Rating, cur.Rating)
		}
		if cur.Rating == prev.Rating && cur.Price < prev.Price {
			t.Fatalf("prices not ascending within rating at %d", i)
		}
	}
	if courses[0].Rating != 4.8 {
		t.Fatalf("top course rating = %v, want 4.8", courses[0].Rating)
	}
}

func TestCareerWeightHelpers(t *testing.T) {
	t.Parallel()

	b := MustLoad()
	career, ok := b.CareerByID("frontend-developer")
	if !ok {
		t.Fatal("frontend-developer missing")
	}
	if got := career.Weight("javascript"); got != 3 {
		t.Fatalf("Weight(javascript) = %v, want 3", got)
	}
	if got := career.Weight("cobol"); got != 0 {
		t.Fatalf("Weight(cobol) = %v, want 0", got)
	}
	if got := career.TotalWeight(); got != 7 {
		t.Fatalf("TotalWeight() = %v, want 7", got)
	}
}

func TestSkillHoursFallback(t *testing.T) {
	t.Parallel()

	b := MustLoad()
	if got := b.SkillHours("javascript"); got != 80 {
		t.Fatalf("SkillHours(javascript) = %v, want 80", got)
	}
	if got := b.SkillHours("underwater basket weaving"); got != b.Defaults.DefaultMilestoneHours {
		t.Fatalf("SkillHours(unknown) = %v, want default %v", got, b.Defaults.DefaultMilestoneHours)
	}
}

func TestScholarshipsForTargetedFirst(t *testing.T) {
	t.Parallel()

	b := MustLoad()
	got := b.ScholarshipsFor("data-scientist")
	if len(got) == 0 {
		t.Fatal("expected scholarships for data-scientist")
	}
	if len(got[0].Careers) == 0 {
		t.Fatalf("targeted scholarship must come first, got %q", got[0].Name)
	}
	last := got[len(got)-1]
	if len(last.Careers) != 0 {
		t.Fatalf("general scholarship must come last, got %q", last.Name)
	}
}

func TestScholarshipsForUnknownCareerFallsBackToGeneral(t *testing.T) {
	t.Parallel()

	b := MustLoad()
	got := b.ScholarshipsFor("astronaut")
	if len(got) == 0 {
		t.Fatal("expected general scholarships for an untargeted career")
	}
	for _, s := range got {
		if len(s.Careers) != 0 {
			t.Fatalf("unexpected targeted scholarship %q", s.Name)
		}
	}
}

func TestBadgesAscending(t *testing.T) {
	t.Parallel()

	b := MustLoad()
	badges := b.BadgesAscending()
	if len(badges) != 4 {
		t.Fatalf("badge count = %d, want 4", len(badges))
	}
	for i := 1; i < len(badges); i++ {
		if badges[i].Threshold < badges[i-1].Threshold {
			t.Fatalf("badges not ascending at %d", i)
		}
	}
	if badges[0].Name != "Quick Starter" || badges[len(badges)-1].Name != "Career Ready" {
		t.Fatalf("unexpected badge order: %v", badges)
	}
}
