package tool

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"

	contractx "github.com/skillsphere/skillsphere/agent/contract"
	refdatax "github.com/skillsphere/skillsphere/agent/refdata"
	statex "github.com/skillsphere/skillsphere/agent/state"
)

// Generator expands a career match's gap list into an ordered, phased
// learning plan backed by the course catalog.
type Generator struct {
	bundle          *refdatax.Bundle
	coursesPerSkill int
}

func NewGenerator(bundle *refdatax.Bundle) *Generator {
	n := bundle.Defaults.CoursesPerSkill
	if n <= 0 {
		n = 3
	}
	return &Generator{bundle: bundle, coursesPerSkill: n}
}

// Generate builds a plan whose phases respect the career's prerequisite
// graph: a skill never appears before all its prerequisites that are also in
// the gap list. Prerequisites the user already holds are considered
// satisfied. A skill with no catalog entries keeps its milestone with an
// empty, flagged course list.
func (g *Generator) Generate(match *statex.CareerMatch) (*statex.LearningPlan, error) {
	if match == nil {
		return nil, fmt.Errorf("%w: nil career match", contractx.ErrValidation)
	}

	career, ok := g.bundle.CareerByID(match.CareerID)
	if !ok {
		return nil, fmt.Errorf("%w: unknown career %s", contractx.ErrValidation, match.CareerID)
	}

	levels := phaseLevels(match.MissingSkills, career.Prerequisites)

	plan := &statex.LearningPlan{CareerID: career.ID}
	for i, level := range levels {
		// Within a phase, the heaviest skill comes first.
		sort.Slice(level, func(a, b int) bool {
			wa, wb := career.Weight(level[a]), career.Weight(level[b])
			if wa != wb {
				return wa > wb
			}
			return level[a] < level[b]
		})

		phase := statex.Phase{Name: fmt.Sprintf("Phase %d", i+1)}
		for _, skill := range level {
			phase.Milestones = append(phase.Milestones, g.milestone(career.ID, skill))
		}
		plan.Phases = append(plan.Phases, phase)
	}
	return plan, nil
}

func (g *Generator) milestone(careerID, skill string) statex.Milestone {
	courses := g.bundle.CoursesForSkill(skill)
	if len(courses) > g.coursesPerSkill {
		courses = courses[:g.coursesPerSkill]
	}
	missing := len(courses) == 0
	if missing {
		// Soft condition per the error taxonomy: flagged, never dropped.
		log.Debug().Str("skill", skill).Str("career_id", careerID).
			Err(contractx.ErrNoCoursesFound).Msg("milestone has no catalog courses")
	}
	return statex.Milestone{
		ID:             careerID + "/" + skill,
		Skill:          skill,
		Courses:        courses,
		EstimatedHours: g.bundle.SkillHours(skill),
		CoursesMissing: missing,
	}
}

// phaseLevels groups skills into Kahn layers of the prerequisite graph
// restricted to the gap list. Edges pointing at skills outside the gap list
// are satisfied by definition. The reference loader guarantees acyclicity,
// but a defensive remainder flush keeps a bad graph from losing milestones.
func phaseLevels(skills []string, prereqs map[string][]string) [][]string {
	inGap := make(map[string]bool, len(skills))
	for _, s := range skills {
		inGap[s] = true
	}

	pending := make(map[string][]string, len(skills))
	for _, s := range skills {
		var deps []string
		for _, dep := range prereqs[s] {
			if inGap[dep] {
				deps = append(deps, dep)
			}
		}
		pending[s] = deps
	}

	var levels [][]string
	placed := make(map[string]bool, len(skills))
	for len(placed) < len(skills) {
		var level []string
		for _, s := range skills {
			if placed[s] {
				continue
			}
			ready := true
			for _, dep := range pending[s] {
				if !placed[dep] {
					ready = false
					break
				}
			}
			if ready {
				level = append(level, s)
			}
		}
		if len(level) == 0 {
			// Unreachable with a validated graph; flush the remainder.
			for _, s := range skills {
				if !placed[s] {
					level = append(level, s)
				}
			}
		}
		for _, s := range level {
			placed[s] = true
		}
		levels = append(levels, level)
	}
	return levels
}
