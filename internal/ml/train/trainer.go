package train

import (
	"context"
	"math/rand"
	"time"

	randomforest "github.com/malaschitz/randomForest"

	"driftwatch/internal/domain/model"
)

// Training defaults.
const (
	// DefaultNumTrees matches the size of the original ensemble.
	DefaultNumTrees = 100
	// DefaultSplitSeed fixes the train/test shuffle for reproducible runs.
	DefaultSplitSeed = 42
	// testFraction is the held-out share of the dataset.
	testFraction = 0.2
)

// Option applies a configuration option to the Trainer.
type Option func(*Trainer)

// WithNumTrees sets the ensemble size.
func WithNumTrees(n int) Option {
	return func(t *Trainer) {
		if n > 0 {
			t.numTrees = n
		}
	}
}

// WithSplitSeed sets the train/test shuffle seed.
func WithSplitSeed(seed int64) Option {
	return func(t *Trainer) {
		t.splitSeed = seed
	}
}

// Trainer fits the drift forest on aggregated training records.
type Trainer struct {
	numTrees  int
	splitSeed int64
}

// New creates a Trainer with default configuration.
func New(opts ...Option) *Trainer {
	t := &Trainer{
		numTrees:  DefaultNumTrees,
		splitSeed: DefaultSplitSeed,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Train fits a forest on the relevant-ratio feature against the drift label
// and evaluates it on a held-out 20% split. Returns ErrNoTrainingData when
// records is empty and ErrSingleClass when every record has the same label,
// since a one-class forest cannot produce a probability pair.
func (t *Trainer) Train(ctx context.Context, records []model.TrainingRecord) (*Model, Report, error) {
	if len(records) == 0 {
		return nil, Report{}, ErrNoTrainingData
	}
	if err := ctx.Err(); err != nil {
		return nil, Report{}, err
	}

	hasDrift, hasOnTrack := false, false
	for _, r := range records {
		if r.IsDrifting {
			hasDrift = true
		} else {
			hasOnTrack = true
		}
	}
	if !hasDrift || !hasOnTrack {
		return nil, Report{}, ErrSingleClass
	}

	trainIdx, testIdx := t.split(len(records))

	x := make([][]float64, 0, len(trainIdx))
	y := make([]int, 0, len(trainIdx))
	for _, i := range trainIdx {
		x = append(x, []float64{records[i].RelevantRatio})
		y = append(y, classOf(records[i]))
	}

	forest := randomforest.Forest{}
	forest.Data = randomforest.ForestData{X: x, Class: y}
	forest.Train(t.numTrees)

	m := &Model{
		Forest:    forest,
		NumTrees:  t.numTrees,
		Samples:   len(trainIdx),
		TrainedAt: time.Now().UTC(),
	}

	report := t.evaluate(m, records, testIdx)
	return m, report, nil
}

// TrainAndSave trains, then persists the model only after training and
// evaluation succeeded.
func (t *Trainer) TrainAndSave(ctx context.Context, records []model.TrainingRecord, path string) (Report, error) {
	m, report, err := t.Train(ctx, records)
	if err != nil {
		return Report{}, err
	}
	if err := m.Save(path); err != nil {
		return Report{}, err
	}
	return report, nil
}

// split shuffles indices with the fixed seed and carves off the test share.
// At least one sample always lands on each side.
func (t *Trainer) split(n int) (trainIdx, testIdx []int) {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	rng := rand.New(rand.NewSource(t.splitSeed)) //nolint:gosec // fixed seed for reproducible splits
	rng.Shuffle(n, func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })

	testSize := int(float64(n) * testFraction)
	if testSize < 1 {
		testSize = 1
	}
	if testSize >= n {
		testSize = n - 1
	}
	return idx[testSize:], idx[:testSize]
}

func classOf(r model.TrainingRecord) int {
	if r.IsDrifting {
		return ClassDrifting
	}
	return ClassOnTrack
}
