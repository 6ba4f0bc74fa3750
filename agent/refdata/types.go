package refdata

import (
	"sort"
	"strings"
)

// MarketData is the labor-market reference slice attached to a career.
type MarketData struct {
	MedianSalary     float64 `yaml:"median_salary" json:"median_salary"`
	DemandScore      float64 `yaml:"demand_score" json:"demand_score"`
	PostingFrequency float64 `yaml:"posting_frequency" json:"posting_frequency"`
}

// RequiredSkill is one entry of a career's required-skill set with its
// importance weight.
type RequiredSkill struct {
	Name   string  `yaml:"name" json:"name"`
	Weight float64 `yaml:"weight" json:"weight"`
}

// Career is a candidate career path.
type Career struct {
	ID         string          `yaml:"id" json:"id"`
	Title      string          `yaml:"title" json:"title"`
	Categories []string        `yaml:"categories" json:"categories"`
	Required   []RequiredSkill `yaml:"required_skills" json:"required_skills"`
	// Prerequisites maps a skill to the skills that must be learned in an
	// earlier or the same phase.
	Prerequisites map[string][]string `yaml:"prerequisites" json:"prerequisites,omitempty"`
	Market        MarketData          `yaml:"market" json:"market"`
}

// Weight returns the importance weight of a required skill, 0 when the skill
// is not part of the career's required set.
func (c Career) Weight(skill string) float64 {
	for _, rs := range c.Required {
		if rs.Name == skill {
			return rs.Weight
		}
	}
	return 0
}

// TotalWeight sums the weights of the career's required skills.
func (c Career) TotalWeight() float64 {
	var total float64
	for _, rs := range c.Required {
		total += rs.Weight
	}
	return total
}

// Course is one CourseCatalog entry.
type Course struct {
	SkillTag string  `yaml:"skill_tag" json:"skill_tag"`
	Title    string  `yaml:"title" json:"title"`
	URL      string  `yaml:"url" json:"url"`
	Provider string  `yaml:"provider" json:"provider"`
	Price    float64 `yaml:"price" json:"price"`
	Rating   float64 `yaml:"rating" json:"rating"`
}

// Skill is a dictionary entry used by resume extraction and curriculum
// sizing. Aliases match in addition to the canonical name.
type Skill struct {
	Name    string   `yaml:"name" json:"name"`
	Hours   float64  `yaml:"hours" json:"hours"`
	Aliases []string `yaml:"aliases" json:"aliases,omitempty"`
}

// Scholarship is a financial-aid opportunity. An empty Careers list marks a
// general opportunity used as fallback for any career.
type Scholarship struct {
	Name        string   `yaml:"name" json:"name"`
	Amount      string   `yaml:"amount" json:"amount"`
	Eligibility string   `yaml:"eligibility" json:"eligibility"`
	Deadline    string   `yaml:"deadline" json:"deadline"`
	URL         string   `yaml:"url" json:"url"`
	Careers     []string `yaml:"careers" json:"careers,omitempty"`
}

// Badge is a progress reward emitted when completion crosses Threshold
// (percent, 0..100).
type Badge struct {
	Name      string  `yaml:"name" json:"name"`
	Threshold float64 `yaml:"threshold" json:"threshold"`
}

// Defaults are tunable reference parameters. They are data, not code
// constants.
type Defaults struct {
	BaselineSalary        float64 `yaml:"baseline_salary" json:"baseline_salary"`
	TopMatches            int     `yaml:"top_matches" json:"top_matches"`
	CoursesPerSkill       int     `yaml:"courses_per_skill" json:"courses_per_skill"`
	DefaultMilestoneHours float64 `yaml:"default_milestone_hours" json:"default_milestone_hours"`
}

// Bundle is the full read-only reference set. It is loaded once and never
// mutated for the lifetime of the process.
type Bundle struct {
	Careers      []Career      `yaml:"careers" json:"careers"`
	Courses      []Course      `yaml:"courses" json:"courses"`
	Skills       []Skill       `yaml:"skills" json:"skills"`
	Scholarships []Scholarship `yaml:"scholarships" json:"scholarships"`
	Badges       []Badge       `yaml:"badges" json:"badges"`
	Defaults     Defaults      `yaml:"defaults" json:"defaults"`
}

// CareerByID returns the career with the given id.
func (b *Bundle) CareerByID(id string) (Career, bool) {
	for _, c := range b.Careers {
		if c.ID == id {
			return c, true
		}
	}
	return Career{}, false
}

// CoursesForSkill returns the catalog entries for a skill tag ordered by
// rating descending, then price ascending, then title ascending.
func (b *Bundle) CoursesForSkill(tag string) []Course {
	var out []Course
	for _, c := range b.Courses {
		if c.SkillTag == tag {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Rating != out[j].Rating {
			return out[i].Rating > out[j].Rating
		}
		if out[i].Price != out[j].Price {
			return out[i].Price < out[j].Price
		}
		return out[i].Title < out[j].Title
	})
	return out
}

// SkillHours returns the estimated learning hours for a skill, falling back
// to the bundle default when the skill is not in the dictionary.
func (b *Bundle) SkillHours(name string) float64 {
	for _, s := range b.Skills {
		if s.Name == name {
			return s.Hours
		}
	}
	return b.Defaults.DefaultMilestoneHours
}

// ScholarshipsFor returns the opportunities targeting a career, then the
// general ones. Never empty as long as the bundle carries a general entry.
func (b *Bundle) ScholarshipsFor(careerID string) []Scholarship {
	var targeted, general []Scholarship
	for _, s := range b.Scholarships {
		if len(s.Careers) == 0 {
			general = append(general, s)
			continue
		}
		for _, c := range s.Careers {
			if c == careerID {
				targeted = append(targeted, s)
				break
			}
		}
	}
	if len(targeted) == 0 {
		return general
	}
	return append(targeted, general...)
}

// SkillDictionary returns canonical name -> match terms (name plus aliases),
// all lower-cased.
func (b *Bundle) SkillDictionary() map[string][]string {
	dict := make(map[string][]string, len(b.Skills))
	for _, s := range b.Skills {
		terms := make([]string, 0, 1+len(s.Aliases))
		terms = append(terms, strings.ToLower(s.Name))
		for _, a := range s.Aliases {
			terms = append(terms, strings.ToLower(a))
		}
		dict[strings.ToLower(s.Name)] = terms
	}
	return dict
}

// BadgesAscending returns badges ordered by threshold.
func (b *Bundle) BadgesAscending() []Badge {
	out := make([]Badge, len(b.Badges))
	copy(out, b.Badges)
	sort.Slice(out, func(i, j int) bool { return out[i].Threshold < out[j].Threshold })
	return out
}
