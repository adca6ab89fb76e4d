// Package relevance implements the rule-based classifier that decides how a
// single activity relates to a student's target career.
package relevance

import (
	"fmt"
	"strings"

	"driftwatch/internal/domain/model"
	"driftwatch/internal/domain/taxonomy"
)

// Per-activity scores. Category self-report without keyword confirmation is
// weaker evidence than a keyword hit, hence the partial credit.
const (
	ScoreTargetMatch   = 1.0
	ScoreCategoryMatch = 0.3
	ScoreNone          = 0.0
)

// Activity category treated as a passive-consumption signal.
const categoryOther = "Other"

// Kind enumerates the possible verdicts, in priority order.
type Kind int

const (
	// TargetMatch means a keyword of the target career appears in the name.
	TargetMatch Kind = iota
	// Conflicting means a keyword of a different career matched first.
	Conflicting
	// CategoryMatch means only the self-reported category equals the target.
	CategoryMatch
	// Irrelevant means nothing matched.
	Irrelevant
)

// String returns a readable verdict name for logs.
func (k Kind) String() string {
	switch k {
	case TargetMatch:
		return "target_match"
	case Conflicting:
		return "conflicting"
	case CategoryMatch:
		return "category_match"
	case Irrelevant:
		return "irrelevant"
	default:
		return "unknown"
	}
}

// Verdict is the classification outcome for one activity.
type Verdict struct {
	Kind           Kind
	Score          float64
	MatchedSkill   string
	ConflictCareer string
	Suggestion     string
}

// Classifier evaluates activities against a fixed taxonomy. It is a pure
// function of its inputs: no randomness, no I/O.
type Classifier struct {
	tax *taxonomy.Taxonomy
}

// NewClassifier creates a classifier bound to the given taxonomy.
func NewClassifier(tax *taxonomy.Taxonomy) *Classifier {
	return &Classifier{tax: tax}
}

// Classify decides how activity relates to targetCareer. Rules apply in
// priority order and the first match wins:
//
//  1. a target-career keyword in the name scores 1.0
//  2. another career's keyword marks the activity conflicting, score 0
//  3. a category equal to the target scores 0.3
//  4. everything else scores 0; "Other"-category and read/watch activities
//     additionally get an irrelevance suggestion
func (c *Classifier) Classify(activity model.Activity, targetCareer string) Verdict {
	if skill, ok := c.tax.MatchSkill(targetCareer, activity.Name); ok {
		return Verdict{Kind: TargetMatch, Score: ScoreTargetMatch, MatchedSkill: skill}
	}

	// Scan the other careers in taxonomy order so conflict detection is
	// deterministic.
	for _, career := range c.tax.Careers() {
		if career == targetCareer {
			continue
		}
		if skill, ok := c.tax.MatchSkill(career, activity.Name); ok {
			return Verdict{
				Kind:           Conflicting,
				Score:          ScoreNone,
				MatchedSkill:   skill,
				ConflictCareer: career,
				Suggestion: fmt.Sprintf("'%s' is more related to %s. It's not necessary for %s.",
					activity.Name, career, targetCareer),
			}
		}
	}

	if activity.Category == targetCareer {
		return Verdict{Kind: CategoryMatch, Score: ScoreCategoryMatch}
	}

	v := Verdict{Kind: Irrelevant, Score: ScoreNone}
	lowerName := strings.ToLower(activity.Name)
	if activity.Category == categoryOther ||
		strings.Contains(lowerName, "read") || strings.Contains(lowerName, "watch") {
		v.Suggestion = fmt.Sprintf("'%s' seems irrelevant to your %s path.",
			activity.Name, targetCareer)
	}
	return v
}
