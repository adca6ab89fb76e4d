// Package predict serves drift probabilities from a persisted model.
//
// The predictor is loaded once at process start and is read-only afterwards,
// so concurrent predictions need no locking. A failed load puts it into a
// permanent Unavailable state instead of a nil model that callers could
// accidentally invoke.
package predict

import (
	"fmt"

	"driftwatch/internal/ml/train"
)

// DriftThreshold is the fixed probability above which a student counts as
// drifting.
const DriftThreshold = 0.5

// State tags the predictor's availability.
type State int

const (
	// StateUnavailable means no model is loaded; predictions fail.
	StateUnavailable State = iota
	// StateReady means a model is loaded and predictions succeed.
	StateReady
)

// String returns a readable state name for logs and stats.
func (s State) String() string {
	if s == StateReady {
		return "ready"
	}
	return "unavailable"
}

// Prediction is a calibrated probability pair plus the threshold decision.
type Prediction struct {
	DriftProbability   float64
	OnTrackProbability float64
	IsDrifting         bool
}

// Predictor wraps the loaded model and its availability state.
type Predictor struct {
	state  State
	model  *train.Model
	reason error
}

// Load reads the model artifact at path. A load failure results in an
// Unavailable predictor carrying the cause; it never returns nil.
func Load(path string) *Predictor {
	m, err := train.LoadModel(path)
	if err != nil {
		return &Predictor{state: StateUnavailable, reason: err}
	}
	return &Predictor{state: StateReady, model: m}
}

// FromModel wraps an already-trained model, mainly for tests and tooling.
func FromModel(m *train.Model) *Predictor {
	if m == nil {
		return &Predictor{state: StateUnavailable, reason: ErrModelUnavailable}
	}
	return &Predictor{state: StateReady, model: m}
}

// State returns the availability tag.
func (p *Predictor) State() State {
	return p.state
}

// Ready reports whether predictions can be served.
func (p *Predictor) Ready() bool {
	return p.state == StateReady
}

// Reason returns the load failure for an Unavailable predictor, nil when
// Ready.
func (p *Predictor) Reason() error {
	if p.state == StateReady {
		return nil
	}
	return p.reason
}

// Predict maps a relevant ratio to drift probabilities. Against an
// Unavailable predictor it fails with ErrModelUnavailable.
func (p *Predictor) Predict(ratio float64) (Prediction, error) {
	if p.state != StateReady {
		if p.reason != nil {
			return Prediction{}, fmt.Errorf("%w: %v", ErrModelUnavailable, p.reason)
		}
		return Prediction{}, ErrModelUnavailable
	}

	drift, onTrack := p.model.Probabilities(ratio)
	return Prediction{
		DriftProbability:   drift,
		OnTrackProbability: onTrack,
		IsDrifting:         drift > DriftThreshold,
	}, nil
}
