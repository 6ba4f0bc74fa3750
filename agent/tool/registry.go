package tool

import (
	"errors"

	contractx "github.com/skillsphere/skillsphere/agent/contract"
	refdatax "github.com/skillsphere/skillsphere/agent/refdata"
)

type registryImpl struct {
	profile      *ProfileBuilder
	matcher      *Matcher
	curriculum   *Generator
	cost         *Calculator
	progress     *Tracker
	scholarships *Scholarships
}

func (r *registryImpl) Profile() contractx.ProfileBuilder { return r.profile }

func (r *registryImpl) Matcher() contractx.CareerMatcher { return r.matcher }

func (r *registryImpl) Curriculum() contractx.CurriculumGenerator { return r.curriculum }

func (r *registryImpl) Cost() contractx.CostCalculator { return r.cost }

func (r *registryImpl) Progress() contractx.ProgressTracker { return r.progress }

func (r *registryImpl) Scholarships() contractx.ScholarshipFinder { return r.scholarships }

// NewRegistry wires the full toolset over one reference bundle. The resume
// collaborator is optional; pass nil to run keyword-only extraction.
func NewRegistry(bundle *refdatax.Bundle, dictionary, collaborator contractx.SkillExtractor) (contractx.Registry, error) {
	if bundle == nil {
		return nil, errors.New("reference bundle is required")
	}
	if dictionary == nil {
		return nil, errors.New("dictionary extractor is required")
	}

	return &registryImpl{
		profile:      NewProfileBuilder(dictionary, collaborator),
		matcher:      NewMatcher(bundle),
		curriculum:   NewGenerator(bundle),
		cost:         NewCalculator(bundle),
		progress:     NewTracker(bundle),
		scholarships: NewScholarships(bundle),
	}, nil
}
