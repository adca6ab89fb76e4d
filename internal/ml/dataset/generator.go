// Package dataset produces the synthetic labeled training data the drift
// model is fitted on. Generation is seedable so runs are reproducible.
package dataset

import (
	"context"
	"math/rand"

	"driftwatch/internal/domain/taxonomy"
)

// Status labels written to the dataset.
const (
	StatusOnTrack  = "On Track"
	StatusDrifting = "Drifting"
)

// Generation defaults.
const (
	// DefaultBias is the probability of a synthetic student being on track.
	DefaultBias = 0.7
	// DefaultSeed keeps generator runs reproducible unless overridden.
	DefaultSeed = 42

	minActivities = 5
	maxActivities = 10

	// poolWeight skews the sampling pool 4:1 towards the expected side.
	poolWeight = 4

	categoryUnknown = "Unknown"
)

// Row is one (student, activity) record. Column names follow the dataset
// file contract consumed by the trainer.
type Row struct {
	StudentID    int    `csv:"student_id"`
	TargetCareer string `csv:"target_career"`
	ActivityName string `csv:"activity_name"`
	Category     string `csv:"category"`
	Status       string `csv:"status"`
}

// Option applies a configuration option to the Generator.
type Option func(*Generator)

// WithBias sets the on-track probability. Values outside (0,1] are ignored.
func WithBias(bias float64) Option {
	return func(g *Generator) {
		if bias > 0 && bias <= 1 {
			g.bias = bias
		}
	}
}

// WithSeed sets the RNG seed.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.rng = rand.New(rand.NewSource(seed)) //nolint:gosec // reproducible synthetic data, not security-sensitive
	}
}

// Generator samples synthetic students from a taxonomy.
type Generator struct {
	tax  *taxonomy.Taxonomy
	bias float64
	rng  *rand.Rand
}

// NewGenerator creates a generator over the given taxonomy.
func NewGenerator(tax *taxonomy.Taxonomy, opts ...Option) *Generator {
	g := &Generator{
		tax:  tax,
		bias: DefaultBias,
		rng:  rand.New(rand.NewSource(DefaultSeed)), //nolint:gosec // reproducible synthetic data
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate emits rows for numStudents synthetic students. Each student gets
// a uniformly random target career, a drift label drawn with probability
// 1-bias, and 5-10 activities sampled with replacement from a pool weighted
// 4:1 towards the side the label implies.
func (g *Generator) Generate(ctx context.Context, numStudents int) ([]Row, error) {
	careers := g.tax.Careers()
	rows := make([]Row, 0, numStudents*maxActivities)

	for i := 0; i < numStudents; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		target := careers[g.rng.Intn(len(careers))]
		drifting := g.rng.Float64() < (1 - g.bias)

		pool := g.buildPool(target, drifting)
		status := StatusOnTrack
		if drifting {
			status = StatusDrifting
		}

		numActivities := minActivities + g.rng.Intn(maxActivities-minActivities+1)
		for a := 0; a < numActivities; a++ {
			name := pool[g.rng.Intn(len(pool))]
			category, ok := g.tax.CareerOf(name)
			if !ok {
				category = categoryUnknown
			}
			rows = append(rows, Row{
				StudentID:    i + 1,
				TargetCareer: target,
				ActivityName: name,
				Category:     category,
				Status:       status,
			})
		}
	}

	return rows, nil
}

// buildPool assembles the weighted sampling pool for one student.
func (g *Generator) buildPool(target string, drifting bool) []string {
	primary := g.tax.Skills(target)
	var others []string
	for _, career := range g.tax.Careers() {
		if career == target {
			continue
		}
		others = append(others, g.tax.Skills(career)...)
	}

	var pool []string
	if drifting {
		pool = append(pool, primary...)
		for i := 0; i < poolWeight; i++ {
			pool = append(pool, others...)
		}
	} else {
		for i := 0; i < poolWeight; i++ {
			pool = append(pool, primary...)
		}
		pool = append(pool, others...)
	}
	return pool
}
