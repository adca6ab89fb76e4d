package service_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	service "driftwatch/internal/app"
	"driftwatch/internal/domain/model"
	"driftwatch/internal/domain/scoring"
	"driftwatch/internal/domain/taxonomy"
	"driftwatch/internal/ml/predict"
	"driftwatch/internal/ml/train"
	"driftwatch/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func TestMain(m *testing.M) {
	_ = logger.Init()
	os.Exit(m.Run())
}

// trainedModelPath trains a small separable model into a temp dir and
// returns its path.
func trainedModelPath(t *testing.T) string {
	t.Helper()

	records := make([]model.TrainingRecord, 0, 200)
	for i := 0; i < 100; i++ {
		records = append(records,
			model.TrainingRecord{TargetCareer: taxonomy.CareerDataScientist, RelevantRatio: 0.8, IsDrifting: false},
			model.TrainingRecord{TargetCareer: taxonomy.CareerBackendDev, RelevantRatio: 0.1, IsDrifting: true},
		)
	}

	path := filepath.Join(t.TempDir(), "model.gob")
	if _, err := train.New().TrainAndSave(context.Background(), records, path); err != nil {
		t.Fatalf("train model: %v", err)
	}
	return path
}

func TestService_Lifecycle(t *testing.T) {
	convey.Convey("Given a service with default configuration", t, func() {
		ctx := context.Background()
		svc := service.New(
			service.WithModelPath(filepath.Join(t.TempDir(), "missing.gob")),
		)

		convey.Convey("When starting and stopping it", func() {
			err := svc.Start(ctx)
			defer svc.Stop()

			convey.Convey("Then it should start without a model", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(svc.ModelReady(), convey.ShouldBeFalse)
			})

			convey.Convey("Then stats should reflect the unavailable model", func() {
				stats := svc.GetStats()
				convey.So(stats["started"], convey.ShouldBeTrue)
				convey.So(stats["modelState"], convey.ShouldEqual, "unavailable")
				convey.So(stats["totalStudents"], convey.ShouldEqual, 0)
			})

			convey.Convey("Then starting twice should be a no-op", func() {
				convey.So(svc.Start(ctx), convey.ShouldBeNil)
			})
		})

		convey.Convey("When configured with an invalid taxonomy", func() {
			bad := service.New(service.WithCareers([]taxonomy.Career{
				{Name: "", Skills: []string{"Python"}},
			}))

			convey.Convey("Then Start should fail", func() {
				convey.So(bad.Start(ctx), convey.ShouldNotBeNil)
			})
		})
	})
}

func TestService_Evaluate(t *testing.T) {
	convey.Convey("Given a started service with a trained model", t, func() {
		ctx := context.Background()
		svc := service.New(service.WithModelPath(trainedModelPath(t)))
		convey.So(svc.Start(ctx), convey.ShouldBeNil)
		defer svc.Stop()
		convey.So(svc.ModelReady(), convey.ShouldBeTrue)

		convey.Convey("When evaluating a profile full of target-career work", func() {
			result, err := svc.Evaluate(ctx, model.StudentProfile{
				TargetCareer: taxonomy.CareerDataScientist,
				RecentActivities: []model.Activity{
					{Name: "Pandas Tutorial", Category: taxonomy.CareerDataScientist},
					{Name: "Scikit-Learn Basics", Category: taxonomy.CareerDataScientist},
					{Name: "Statistics Course", Category: taxonomy.CareerDataScientist},
				},
			})

			convey.Convey("Then it should report the student as on track", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(result.RelevantRatio, convey.ShouldEqual, 1.0)
				convey.So(result.IsDrifting, convey.ShouldBeFalse)
				convey.So(result.Message, convey.ShouldEqual, model.MessageOnTrack)
				convey.So(result.OnTrackScore, convey.ShouldAlmostEqual, 1-result.DriftScore, 1e-9)
			})
		})

		convey.Convey("When evaluating a profile of conflicting work", func() {
			result, err := svc.Evaluate(ctx, model.StudentProfile{
				TargetCareer: taxonomy.CareerFrontendDev,
				RecentActivities: []model.Activity{
					{Name: "Docker Setup", Category: "Other"},
					{Name: "Kafka Streams", Category: "Other"},
					{Name: "PostgreSQL Tuning", Category: "Other"},
				},
			})

			convey.Convey("Then it should flag drift with suggestions", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(result.RelevantRatio, convey.ShouldEqual, 0.0)
				convey.So(result.IsDrifting, convey.ShouldBeTrue)
				convey.So(result.Message, convey.ShouldEqual, model.MessageNeedsAttention)
				convey.So(len(result.Suggestions), convey.ShouldBeGreaterThan, 0)
			})

			convey.Convey("Then the threshold property should hold", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(result.IsDrifting, convey.ShouldEqual, result.DriftScore > predict.DriftThreshold)
			})
		})

		convey.Convey("When evaluating an empty profile", func() {
			result, err := svc.Evaluate(ctx, model.StudentProfile{
				TargetCareer: taxonomy.CareerBackendDev,
			})

			convey.Convey("Then it should return the defined No Data result", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(result.Status, convey.ShouldEqual, model.StatusNoData)
				convey.So(result.Message, convey.ShouldEqual, model.MessageNoData)
				convey.So(result.DriftScore, convey.ShouldEqual, 0.0)
				convey.So(result.Suggestions, convey.ShouldBeEmpty)
			})
		})

		convey.Convey("When evaluating an unknown target career", func() {
			_, err := svc.Evaluate(ctx, model.StudentProfile{
				TargetCareer: "Astronaut",
				RecentActivities: []model.Activity{
					{Name: "Orbital Mechanics", Category: "Other"},
				},
			})

			convey.Convey("Then it should surface ErrUnknownCareer", func() {
				convey.So(errors.Is(err, scoring.ErrUnknownCareer), convey.ShouldBeTrue)
			})
		})
	})

	convey.Convey("Given a started service without a model", t, func() {
		ctx := context.Background()
		svc := service.New(
			service.WithModelPath(filepath.Join(t.TempDir(), "missing.gob")),
		)
		convey.So(svc.Start(ctx), convey.ShouldBeNil)
		defer svc.Stop()

		convey.Convey("When evaluating a non-empty profile", func() {
			_, err := svc.Evaluate(ctx, model.StudentProfile{
				TargetCareer: taxonomy.CareerBackendDev,
				RecentActivities: []model.Activity{
					{Name: "Docker Setup", Category: taxonomy.CareerBackendDev},
				},
			})

			convey.Convey("Then it should surface ErrModelUnavailable", func() {
				convey.So(errors.Is(err, predict.ErrModelUnavailable), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When evaluating an empty profile", func() {
			result, err := svc.Evaluate(ctx, model.StudentProfile{
				TargetCareer: taxonomy.CareerBackendDev,
			})

			convey.Convey("Then the No Data result should not need the model", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(result.Status, convey.ShouldEqual, model.StatusNoData)
			})
		})
	})
}

func TestService_Students(t *testing.T) {
	convey.Convey("Given a started service with a trained model", t, func() {
		ctx := context.Background()
		svc := service.New(service.WithModelPath(trainedModelPath(t)))
		convey.So(svc.Start(ctx), convey.ShouldBeNil)
		defer svc.Stop()

		convey.Convey("When storing a student and their activities", func() {
			student, err := svc.UpsertStudent(ctx, "dana", "dana@example.com", taxonomy.CareerDataScientist)
			convey.So(err, convey.ShouldBeNil)

			_, err = svc.AddActivity(ctx, student.ID, model.Activity{
				Name: "Pandas Tutorial", Category: taxonomy.CareerDataScientist,
			})
			convey.So(err, convey.ShouldBeNil)
			_, err = svc.AddActivity(ctx, student.ID, model.Activity{
				Name: "NumPy Exercises", Category: taxonomy.CareerDataScientist,
			})
			convey.So(err, convey.ShouldBeNil)

			convey.Convey("Then EvaluateStudent should score and persist the result", func() {
				result, eerr := svc.EvaluateStudent(ctx, student.ID)
				convey.So(eerr, convey.ShouldBeNil)
				convey.So(result.RelevantRatio, convey.ShouldEqual, 1.0)

				stored, serr := svc.Student(ctx, student.ID)
				convey.So(serr, convey.ShouldBeNil)
				convey.So(stored.CurrentDriftScore, convey.ShouldEqual, result.DriftScore)
			})

			convey.Convey("Then activities should list in insertion order", func() {
				acts, aerr := svc.Activities(ctx, student.ID)
				convey.So(aerr, convey.ShouldBeNil)
				convey.So(len(acts), convey.ShouldEqual, 2)
				convey.So(acts[0].Name, convey.ShouldEqual, "Pandas Tutorial")
			})
		})

		convey.Convey("When evaluating an unknown student id", func() {
			_, err := svc.EvaluateStudent(ctx, "no-such-id")

			convey.Convey("Then it should fail with the store's not-found error", func() {
				convey.So(err, convey.ShouldNotBeNil)
			})
		})
	})
}
