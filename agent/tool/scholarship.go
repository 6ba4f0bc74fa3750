package tool

import (
	"fmt"

	contractx "github.com/skillsphere/skillsphere/agent/contract"
	refdatax "github.com/skillsphere/skillsphere/agent/refdata"
)

// Scholarships looks up financial-aid opportunities from reference data.
type Scholarships struct {
	bundle *refdatax.Bundle
}

func NewScholarships(bundle *refdatax.Bundle) *Scholarships {
	return &Scholarships{bundle: bundle}
}

// Find returns the opportunities for a career, targeted entries first,
// general ones appended.
func (s *Scholarships) Find(careerID string) ([]refdatax.Scholarship, error) {
	if _, ok := s.bundle.CareerByID(careerID); !ok {
		return nil, fmt.Errorf("%w: unknown career %s", contractx.ErrValidation, careerID)
	}
	return s.bundle.ScholarshipsFor(careerID), nil
}
