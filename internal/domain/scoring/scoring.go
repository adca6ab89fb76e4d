// Package scoring aggregates per-activity relevance verdicts into a single
// relevant-ratio for a student profile.
package scoring

import (
	"context"
	"fmt"

	"driftwatch/internal/domain/model"
	"driftwatch/internal/domain/relevance"
	"driftwatch/internal/domain/taxonomy"
)

// Outcome is the heuristic half of a score: the ratio plus any suggestions.
// The drift probability is filled in later by the predictor.
type Outcome struct {
	RelevantRatio float64
	Suggestions   []string
	// NoData marks the defined empty-profile result. It is not an error.
	NoData bool
}

// Scorer computes relevant ratios for student profiles.
type Scorer interface {
	// Score evaluates a profile. Returns ErrUnknownCareer when the target
	// career is not in the taxonomy.
	Score(ctx context.Context, profile model.StudentProfile) (Outcome, error)
}

// ProfileScorer implements Scorer on top of the relevance classifier.
type ProfileScorer struct {
	tax        *taxonomy.Taxonomy
	classifier *relevance.Classifier
}

// NewProfileScorer creates a scorer bound to the given taxonomy.
func NewProfileScorer(tax *taxonomy.Taxonomy) *ProfileScorer {
	return &ProfileScorer{
		tax:        tax,
		classifier: relevance.NewClassifier(tax),
	}
}

// Score computes the relevant ratio as the mean of per-activity scores and
// collects suggestions in first-seen order, de-duplicated. An empty activity
// list yields the NoData outcome; an unknown target career is reported via
// ErrUnknownCareer so callers can return it as a structured result.
func (s *ProfileScorer) Score(_ context.Context, profile model.StudentProfile) (Outcome, error) {
	if !s.tax.Has(profile.TargetCareer) {
		return Outcome{}, fmt.Errorf("target %q: %w", profile.TargetCareer, ErrUnknownCareer)
	}

	total := len(profile.RecentActivities)
	if total == 0 {
		return Outcome{NoData: true, Suggestions: []string{}}, nil
	}

	var sum float64
	seen := make(map[string]struct{})
	suggestions := []string{}

	for _, act := range profile.RecentActivities {
		v := s.classifier.Classify(act, profile.TargetCareer)
		sum += v.Score

		if v.Suggestion == "" {
			continue
		}
		if _, dup := seen[v.Suggestion]; dup {
			continue
		}
		seen[v.Suggestion] = struct{}{}
		suggestions = append(suggestions, v.Suggestion)
	}

	return Outcome{
		RelevantRatio: sum / float64(total),
		Suggestions:   suggestions,
	}, nil
}
