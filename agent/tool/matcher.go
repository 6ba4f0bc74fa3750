package tool

import (
	"fmt"
	"sort"

	contractx "github.com/skillsphere/skillsphere/agent/contract"
	refdatax "github.com/skillsphere/skillsphere/agent/refdata"
	statex "github.com/skillsphere/skillsphere/agent/state"
)

// Matcher scores candidate careers against a profile using the reference
// weight maps.
type Matcher struct {
	bundle *refdatax.Bundle
	topK   int
}

func NewMatcher(bundle *refdatax.Bundle) *Matcher {
	topK := bundle.Defaults.TopMatches
	if topK <= 0 {
		topK = 3
	}
	return &Matcher{bundle: bundle, topK: topK}
}

// Match returns at most topK CareerMatch results ordered by fit score
// descending, demand score descending, career id ascending. The ordering is a
// total order, so repeated calls over the same inputs are reproducible.
func (m *Matcher) Match(profile *statex.Profile) ([]statex.CareerMatch, error) {
	if len(m.bundle.Careers) == 0 {
		return nil, fmt.Errorf("%w: career catalog is empty", contractx.ErrNoCandidates)
	}
	if !profile.HasAnySignal() {
		return nil, fmt.Errorf("%w: profile has no skills or interests", contractx.ErrNoCandidates)
	}

	candidates := m.candidates(profile)

	known := make(map[string]bool)
	for _, s := range profile.AllSkills() {
		known[s] = true
	}

	matches := make([]statex.CareerMatch, 0, len(candidates))
	for _, career := range candidates {
		matches = append(matches, scoreCareer(career, known))
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].FitScore != matches[j].FitScore {
			return matches[i].FitScore > matches[j].FitScore
		}
		if matches[i].Market.DemandScore != matches[j].Market.DemandScore {
			return matches[i].Market.DemandScore > matches[j].Market.DemandScore
		}
		return matches[i].CareerID < matches[j].CareerID
	})

	if len(matches) > m.topK {
		matches = matches[:m.topK]
	}
	return matches, nil
}

// candidates narrows the field by interest categories when the profile's
// interests overlap any career's category tags; otherwise every career is a
// candidate.
func (m *Matcher) candidates(profile *statex.Profile) []refdatax.Career {
	interests := make(map[string]bool, len(profile.Interests))
	for _, i := range profile.Interests {
		interests[i] = true
	}

	var filtered []refdatax.Career
	for _, career := range m.bundle.Careers {
		for _, cat := range career.Categories {
			if interests[cat] {
				filtered = append(filtered, career)
				break
			}
		}
	}
	if len(filtered) == 0 {
		return m.bundle.Careers
	}
	return filtered
}

func scoreCareer(career refdatax.Career, known map[string]bool) statex.CareerMatch {
	var overlap float64
	var missing []refdatax.RequiredSkill
	for _, rs := range career.Required {
		if known[rs.Name] {
			overlap += rs.Weight
		} else {
			missing = append(missing, rs)
		}
	}

	fit := 0.0
	if total := career.TotalWeight(); total > 0 {
		fit = overlap / total
	}
	if fit > 1 {
		fit = 1
	}

	// Most impactful gap first; alphabetical tie-break keeps it deterministic.
	sort.Slice(missing, func(i, j int) bool {
		if missing[i].Weight != missing[j].Weight {
			return missing[i].Weight > missing[j].Weight
		}
		return missing[i].Name < missing[j].Name
	})
	missingNames := make([]string, len(missing))
	for i, rs := range missing {
		missingNames[i] = rs.Name
	}

	return statex.CareerMatch{
		CareerID:      career.ID,
		Title:         career.Title,
		FitScore:      fit,
		MissingSkills: missingNames,
		Market:        career.Market,
	}
}
