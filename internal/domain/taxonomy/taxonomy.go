// Package taxonomy holds the static career-to-skill mapping used by the
// classifier, the dataset generator, and the feature builder. A Taxonomy is
// built once at process start and shared read-only; career order is pinned
// to the order the careers were declared in, so scans over "other" careers
// are deterministic.
package taxonomy

import (
	"regexp"
	"strings"
)

// Keywords of this length or shorter only match on word boundaries. This
// keeps short tokens like "Go" or "R" from firing inside unrelated words
// ("Google", "Reading").
const shortKeywordLen = 2

// Career pairs a career name with its ordered skill keyword list.
type Career struct {
	Name   string   `koanf:"name" json:"name"`
	Skills []string `koanf:"skills" json:"skills"`
}

// matcher holds one keyword in matchable form. re is non-nil only for
// short keywords that need word-boundary matching.
type matcher struct {
	keyword string
	lower   string
	re      *regexp.Regexp
}

// Taxonomy is the immutable career/skill mapping.
type Taxonomy struct {
	careers  []Career
	index    map[string]int
	matchers [][]matcher
}

// New builds a Taxonomy from an ordered career list.
func New(careers []Career) (*Taxonomy, error) {
	if len(careers) == 0 {
		return nil, ErrEmptyTaxonomy
	}

	t := &Taxonomy{
		careers:  make([]Career, len(careers)),
		index:    make(map[string]int, len(careers)),
		matchers: make([][]matcher, len(careers)),
	}

	for i, c := range careers {
		if strings.TrimSpace(c.Name) == "" {
			return nil, ErrEmptyCareerName
		}
		if _, dup := t.index[c.Name]; dup {
			return nil, ErrDuplicateCareer
		}

		// Copy the skill list so callers cannot mutate the taxonomy later.
		skills := make([]string, len(c.Skills))
		copy(skills, c.Skills)

		t.careers[i] = Career{Name: c.Name, Skills: skills}
		t.index[c.Name] = i
		t.matchers[i] = buildMatchers(skills)
	}

	return t, nil
}

// buildMatchers precompiles the per-keyword match rules for one career.
func buildMatchers(skills []string) []matcher {
	ms := make([]matcher, 0, len(skills))
	for _, s := range skills {
		lower := strings.ToLower(s)
		m := matcher{keyword: s, lower: lower}
		if len(lower) <= shortKeywordLen {
			m.re = regexp.MustCompile(`\b` + regexp.QuoteMeta(lower) + `\b`)
		}
		ms = append(ms, m)
	}
	return ms
}

// Careers returns the career names in declaration order.
func (t *Taxonomy) Careers() []string {
	names := make([]string, len(t.careers))
	for i, c := range t.careers {
		names[i] = c.Name
	}
	return names
}

// Has reports whether the career is part of the taxonomy.
func (t *Taxonomy) Has(career string) bool {
	_, ok := t.index[career]
	return ok
}

// Skills returns the keyword list for a career, or nil if unknown.
func (t *Taxonomy) Skills(career string) []string {
	i, ok := t.index[career]
	if !ok {
		return nil
	}
	skills := make([]string, len(t.careers[i].Skills))
	copy(skills, t.careers[i].Skills)
	return skills
}

// MatchSkill reports whether any keyword of career appears in the activity
// name. Matching is case-insensitive: substring containment for keywords
// longer than two characters, whole-word matching otherwise. Returns the
// first matching keyword in list order.
func (t *Taxonomy) MatchSkill(career, activityName string) (string, bool) {
	i, ok := t.index[career]
	if !ok {
		return "", false
	}
	lowerName := strings.ToLower(activityName)
	for _, m := range t.matchers[i] {
		if m.matches(lowerName) {
			return m.keyword, true
		}
	}
	return "", false
}

func (m matcher) matches(lowerName string) bool {
	if m.re != nil {
		return m.re.MatchString(lowerName)
	}
	return strings.Contains(lowerName, m.lower)
}

// CareerOf resolves an exact skill string back to the first career whose
// list contains it, in career declaration order. Used by the dataset
// generator's category lookup and the training feature builder.
func (t *Taxonomy) CareerOf(skill string) (string, bool) {
	for _, c := range t.careers {
		for _, s := range c.Skills {
			if s == skill {
				return c.Name, true
			}
		}
	}
	return "", false
}

// HasExactSkill reports whether skill is an exact member of the career's
// keyword list. This is the strict rule the training feature builder uses;
// it is intentionally narrower than MatchSkill.
func (t *Taxonomy) HasExactSkill(career, skill string) bool {
	i, ok := t.index[career]
	if !ok {
		return false
	}
	for _, s := range t.careers[i].Skills {
		if s == skill {
			return true
		}
	}
	return false
}

// Len returns the number of careers.
func (t *Taxonomy) Len() int {
	return len(t.careers)
}
