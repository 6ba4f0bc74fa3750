package nodes

import (
	"strconv"
	"strings"

	contractx "github.com/skillsphere/skillsphere/agent/contract"
	statex "github.com/skillsphere/skillsphere/agent/state"
)

// parseProfileFields reads labeled segments out of an utterance, e.g.
//
//	"skills: html, css; interests: design; hours: 10; salary: 45000"
//
// Segments are separated by semicolons or newlines; a segment without a
// recognized label is ignored. Richer extraction belongs to the external NLU
// collaborator, not this layer.
func parseProfileFields(utterance string) contractx.ProfileFields {
	var fields contractx.ProfileFields

	for _, segment := range splitSegments(utterance) {
		label, value, ok := strings.Cut(segment, ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}

		switch statex.NormalizeTerm(label) {
		case "skill", "skills":
			fields.Skills = append(fields.Skills, splitList(value)...)
		case "interest", "interests":
			fields.Interests = append(fields.Interests, splitList(value)...)
		case "goal", "goals":
			fields.Goals = value
		case "hours", "time", "weekly time", "weekly hours", "time budget":
			fields.WeeklyTimeBudget = parseNumber(value)
		case "salary", "current salary":
			fields.CurrentSalary = parseNumber(value)
		}
	}
	return fields
}

// resumeText returns the free text after the first colon, which is where
// callers put the pasted resume ("analyze my resume: ...").
func resumeText(utterance string) string {
	_, text, ok := strings.Cut(utterance, ":")
	if !ok {
		return ""
	}
	return strings.TrimSpace(text)
}

// milestoneFromUtterance finds the first plan milestone whose skill appears
// as a whole word in the utterance, in phase order. Substring hits are not
// enough: "mysql" must not mark the sql milestone, completion is monotonic.
func milestoneFromUtterance(plan *statex.LearningPlan, utterance string) (string, bool) {
	norm := " " + foldToWords(utterance) + " "
	for _, phase := range plan.Phases {
		for _, m := range phase.Milestones {
			if strings.Contains(norm, " "+m.Skill+" ") {
				return m.ID, true
			}
		}
	}
	return "", false
}

// foldToWords lower-cases and replaces every non-alphanumeric rune with a
// space, leaving single-space-separated words.
func foldToWords(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func splitSegments(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ';' || r == '\n'
	})
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func parseNumber(s string) float64 {
	cleaned := strings.NewReplacer("$", "", ",", "").Replace(strings.ToLower(strings.TrimSpace(s)))
	tokens := strings.Fields(cleaned)
	if len(tokens) == 0 {
		return 0
	}

	tok := tokens[0]
	mult := 1.0
	if strings.HasSuffix(tok, "k") {
		mult = 1000
		tok = strings.TrimSuffix(tok, "k")
	}

	v, err := strconv.ParseFloat(tok, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v * mult
}
