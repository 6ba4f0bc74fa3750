// Package extract pulls skill mentions out of free-form resume text. The
// keyword extractor is the deterministic baseline; an optional LLM
// collaborator can be layered on top and merged the same way.
package extract

import (
	"context"
	"regexp"
	"sort"
	"strings"

	refdatax "github.com/skillsphere/skillsphere/agent/refdata"
)

// KeywordExtractor matches a fixed skill dictionary over normalized text with
// word-boundary semantics. Deterministic, no external calls.
type KeywordExtractor struct {
	patterns map[string][]*regexp.Regexp // canonical skill -> term patterns
}

func NewKeywordExtractor(bundle *refdatax.Bundle) *KeywordExtractor {
	dict := bundle.SkillDictionary()
	patterns := make(map[string][]*regexp.Regexp, len(dict))
	for skill, terms := range dict {
		compiled := make([]*regexp.Regexp, 0, len(terms))
		for _, term := range terms {
			compiled = append(compiled, regexp.MustCompile(`\b`+regexp.QuoteMeta(term)+`\b`))
		}
		patterns[skill] = compiled
	}
	return &KeywordExtractor{patterns: patterns}
}

// Extract returns the canonical names of every dictionary skill mentioned in
// the text, sorted. The context is accepted for interface symmetry with the
// LLM collaborator; the keyword layer never blocks.
func (e *KeywordExtractor) Extract(_ context.Context, resumeText string) ([]string, error) {
	text := strings.ToLower(resumeText)

	var found []string
	for skill, patterns := range e.patterns {
		for _, p := range patterns {
			if p.MatchString(text) {
				found = append(found, skill)
				break
			}
		}
	}
	sort.Strings(found)
	return found, nil
}
