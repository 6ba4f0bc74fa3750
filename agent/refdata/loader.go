package refdata

import (
	_ "embed"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed data/bundle.yaml
var bundleRaw []byte

var (
	ErrEmptyBundle   = errors.New("reference bundle is empty")
	ErrCyclicPrereqs = errors.New("prerequisite graph has a cycle")
)

// Load parses and validates the embedded reference bundle.
func Load() (*Bundle, error) {
	return Parse(bundleRaw)
}

// MustLoad panics on a broken embedded bundle. A bad embed is a build defect,
// not a runtime condition.
func MustLoad() *Bundle {
	b, err := Load()
	if err != nil {
		panic(err)
	}
	return b
}

// Parse decodes a YAML bundle and validates its invariants. Remote providers
// feed their payloads through the same path.
func Parse(raw []byte) (*Bundle, error) {
	var b Bundle
	if err := yaml.Unmarshal(raw, &b); err != nil {
		return nil, fmt.Errorf("decode reference bundle: %w", err)
	}
	if err := b.validate(); err != nil {
		return nil, err
	}
	b.applyDefaults()
	return &b, nil
}

func (b *Bundle) validate() error {
	if len(b.Careers) == 0 {
		return ErrEmptyBundle
	}

	seen := make(map[string]bool, len(b.Careers))
	for _, c := range b.Careers {
		if c.ID == "" {
			return fmt.Errorf("career without id: %q", c.Title)
		}
		if seen[c.ID] {
			return fmt.Errorf("duplicate career id: %s", c.ID)
		}
		seen[c.ID] = true

		if len(c.Required) == 0 {
			return fmt.Errorf("career %s has no required skills", c.ID)
		}
		for _, rs := range c.Required {
			if rs.Weight <= 0 {
				return fmt.Errorf("career %s skill %s has non-positive weight", c.ID, rs.Name)
			}
		}
		if err := checkAcyclic(c.Prerequisites); err != nil {
			return fmt.Errorf("career %s: %w", c.ID, err)
		}
	}

	for _, badge := range b.Badges {
		if badge.Threshold <= 0 || badge.Threshold > 100 {
			return fmt.Errorf("badge %s threshold out of range: %v", badge.Name, badge.Threshold)
		}
	}
	return nil
}

func (b *Bundle) applyDefaults() {
	if b.Defaults.TopMatches <= 0 {
		b.Defaults.TopMatches = 3
	}
	if b.Defaults.CoursesPerSkill <= 0 {
		b.Defaults.CoursesPerSkill = 3
	}
	if b.Defaults.DefaultMilestoneHours <= 0 {
		b.Defaults.DefaultMilestoneHours = 40
	}
}

// checkAcyclic runs a three-color DFS over the prerequisite edges.
func checkAcyclic(graph map[string][]string) error {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make(map[string]int, len(graph))

	var visit func(node string) error
	visit = func(node string) error {
		switch color[node] {
		case gray:
			return fmt.Errorf("%w: at %s", ErrCyclicPrereqs, node)
		case black:
			return nil
		}
		color[node] = gray
		for _, dep := range graph[node] {
			if err := visit(dep); err != nil {
				return err
			}
		}
		color[node] = black
		return nil
	}

	for node := range graph {
		if err := visit(node); err != nil {
			return err
		}
	}
	return nil
}
