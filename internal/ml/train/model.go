// Package train fits the drift classifier and persists the model artifact.
package train

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"time"

	randomforest "github.com/malaschitz/randomForest"
)

// File permission constants.
const (
	modelDirPermission  = 0o750
	modelFilePermission = 0o600
)

// Drift class labels inside the model. The forest is always trained with
// on-track as class 0 and drifting as class 1.
const (
	ClassOnTrack  = 0
	ClassDrifting = 1
)

// Model is the persisted drift classifier: a trained random forest over the
// single relevant-ratio feature, plus training metadata. Immutable once
// written; the predictor holds it read-only for the process lifetime.
type Model struct {
	Forest    randomforest.Forest
	NumTrees  int
	Samples   int
	TrainedAt time.Time
}

// Probabilities returns (drift, on-track) probabilities for a relevant
// ratio, taken from the share of trees voting for each class.
func (m *Model) Probabilities(ratio float64) (float64, float64) {
	votes := m.Forest.Vote([]float64{ratio})

	var drift float64
	if len(votes) > ClassDrifting {
		drift = votes[ClassDrifting]
	}
	return drift, 1 - drift
}

// Save writes the model to path via a temp file and rename, so a crashed
// run never leaves a partial artifact behind.
func (m *Model) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), modelDirPermission); err != nil {
		return fmt.Errorf("create model dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create model temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // no-op after successful rename

	if err := gob.NewEncoder(tmp).Encode(m); err != nil {
		tmp.Close() //nolint:errcheck,gosec // already failing
		return fmt.Errorf("encode model: %w", err)
	}
	if err := tmp.Chmod(modelFilePermission); err != nil {
		tmp.Close() //nolint:errcheck,gosec // already failing
		return fmt.Errorf("chmod model: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close model temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace model artifact: %w", err)
	}
	return nil
}

// LoadModel reads a model artifact written by Save.
func LoadModel(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open model artifact: %w", err)
	}
	defer f.Close() //nolint:errcheck // read-only file

	var m Model
	if err := gob.NewDecoder(f).Decode(&m); err != nil {
		return nil, fmt.Errorf("decode model artifact: %w", err)
	}
	return &m, nil
}
