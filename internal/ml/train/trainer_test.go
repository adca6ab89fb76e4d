package train_test

import (
	"context"
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"driftwatch/internal/domain/model"
	"driftwatch/internal/ml/train"

	. "github.com/smartystreets/goconvey/convey"
)

// separableRecords builds a clearly separable dataset: drifting students
// have low relevant ratios, on-track students high ones.
func separableRecords(n int, seed int64) []model.TrainingRecord {
	rng := rand.New(rand.NewSource(seed))
	records := make([]model.TrainingRecord, 0, n)
	for i := 0; i < n; i++ {
		drifting := i%3 == 0
		ratio := 0.7 + rng.Float64()*0.3
		if drifting {
			ratio = rng.Float64() * 0.2
		}
		records = append(records, model.TrainingRecord{
			TargetCareer:  "Backend Dev",
			RelevantRatio: ratio,
			IsDrifting:    drifting,
		})
	}
	return records
}

func TestTrain(t *testing.T) {
	Convey("Given separable training records", t, func() {
		ctx := context.Background()
		records := separableRecords(300, 1)

		Convey("When training with defaults", func() {
			m, report, err := train.New().Train(ctx, records)

			Convey("Then a model and a sane report come back", func() {
				So(err, ShouldBeNil)
				So(m, ShouldNotBeNil)
				So(report.TrainSamples, ShouldEqual, 240)
				So(report.TestSamples, ShouldEqual, 60)
				So(report.Accuracy, ShouldBeGreaterThan, 0.8)
				So(report.Drifting.Support+report.OnTrack.Support, ShouldEqual, 60)
			})

			Convey("And probabilities separate the two regimes", func() {
				drift, onTrack := m.Probabilities(0.05)
				So(drift, ShouldBeGreaterThan, 0.5)
				So(drift+onTrack, ShouldAlmostEqual, 1.0, 1e-9)

				drift, _ = m.Probabilities(0.95)
				So(drift, ShouldBeLessThan, 0.5)
			})
		})

		Convey("When there are no records", func() {
			_, _, err := train.New().Train(ctx, nil)

			Convey("Then training aborts with the no-data kind", func() {
				So(errors.Is(err, train.ErrNoTrainingData), ShouldBeTrue)
			})
		})

		Convey("When every record has the same label", func() {
			same := []model.TrainingRecord{
				{RelevantRatio: 0.9},
				{RelevantRatio: 0.8},
				{RelevantRatio: 0.7},
			}
			_, _, err := train.New().Train(ctx, same)

			Convey("Then training aborts with the single-class kind", func() {
				So(errors.Is(err, train.ErrSingleClass), ShouldBeTrue)
			})
		})
	})
}

func TestTrainAndSave(t *testing.T) {
	Convey("Given separable training records", t, func() {
		ctx := context.Background()
		records := separableRecords(200, 2)
		path := filepath.Join(t.TempDir(), "models", "drift_model.gob")

		Convey("When training and saving", func() {
			report, err := train.New(train.WithNumTrees(50)).TrainAndSave(ctx, records, path)
			So(err, ShouldBeNil)
			So(report.TestSamples, ShouldEqual, 40)

			Convey("Then the artifact round-trips through LoadModel", func() {
				m, err := train.LoadModel(path)
				So(err, ShouldBeNil)
				So(m.NumTrees, ShouldEqual, 50)
				So(m.Samples, ShouldEqual, 160)

				drift, _ := m.Probabilities(0.05)
				So(drift, ShouldBeGreaterThan, 0.5)
			})
		})

		Convey("When training fails", func() {
			_, err := train.New().TrainAndSave(ctx, nil, path)

			Convey("Then no artifact is written", func() {
				So(err, ShouldNotBeNil)
				_, statErr := os.Stat(path)
				So(os.IsNotExist(statErr), ShouldBeTrue)
			})
		})
	})
}

func TestReportString(t *testing.T) {
	Convey("Given a report", t, func() {
		report := train.Report{
			TrainSamples: 80,
			TestSamples:  20,
			Accuracy:     0.95,
			OnTrack:      train.ClassReport{Label: train.StatusLabelOnTrack, Precision: 0.96, Recall: 0.97, F1: 0.96, Support: 14},
			Drifting:     train.ClassReport{Label: train.StatusLabelDrifting, Precision: 0.9, Recall: 0.88, F1: 0.89, Support: 6},
		}

		Convey("When rendered", func() {
			s := report.String()

			Convey("Then both classes and the accuracy appear", func() {
				So(s, ShouldContainSubstring, "On Track")
				So(s, ShouldContainSubstring, "Drifting")
				So(s, ShouldContainSubstring, "accuracy")
			})
		})
	})
}
