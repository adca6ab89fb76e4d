package scoring_test

import (
	"context"
	"errors"
	"testing"

	"driftwatch/internal/domain/model"
	"driftwatch/internal/domain/scoring"
	"driftwatch/internal/domain/taxonomy"

	. "github.com/smartystreets/goconvey/convey"
)

func TestProfileScorer_Score(t *testing.T) {
	Convey("Given a scorer over the default taxonomy", t, func() {
		s := scoring.NewProfileScorer(taxonomy.Default())
		ctx := context.Background()

		Convey("When the profile has no activities", func() {
			out, err := s.Score(ctx, model.StudentProfile{TargetCareer: taxonomy.CareerBackendDev})

			Convey("Then the defined no-data outcome is returned", func() {
				So(err, ShouldBeNil)
				So(out.NoData, ShouldBeTrue)
				So(out.RelevantRatio, ShouldEqual, 0)
				So(out.Suggestions, ShouldBeEmpty)
			})
		})

		Convey("When the target career is unknown", func() {
			_, err := s.Score(ctx, model.StudentProfile{
				TargetCareer:     "Astronaut",
				RecentActivities: []model.Activity{{Name: "Python", Category: "Unknown"}},
			})

			Convey("Then ErrUnknownCareer is reported", func() {
				So(errors.Is(err, scoring.ErrUnknownCareer), ShouldBeTrue)
			})
		})

		Convey("When half the activities are relevant", func() {
			out, err := s.Score(ctx, model.StudentProfile{
				TargetCareer: taxonomy.CareerFrontendDev,
				RecentActivities: []model.Activity{
					{Name: "React Hooks", Category: "Frontend Dev"},
					{Name: "SQL Joins", Category: "Backend Dev"},
				},
			})

			Convey("Then the ratio averages the per-activity scores", func() {
				So(err, ShouldBeNil)
				So(out.RelevantRatio, ShouldEqual, 0.5)
			})

			Convey("And the conflict suggestion names the other career", func() {
				So(len(out.Suggestions), ShouldEqual, 1)
				So(out.Suggestions[0], ShouldContainSubstring, "Data Scientist")
			})
		})

		Convey("When an activity is passive consumption", func() {
			out, err := s.Score(ctx, model.StudentProfile{
				TargetCareer: taxonomy.CareerBackendDev,
				RecentActivities: []model.Activity{
					{Name: "Watch Netflix", Category: "Other"},
				},
			})

			Convey("Then the ratio is zero with an irrelevance suggestion", func() {
				So(err, ShouldBeNil)
				So(out.RelevantRatio, ShouldEqual, 0)
				So(len(out.Suggestions), ShouldEqual, 1)
				So(out.Suggestions[0], ShouldContainSubstring, "Watch")
			})
		})

		Convey("When the same suggestion would repeat", func() {
			out, err := s.Score(ctx, model.StudentProfile{
				TargetCareer: taxonomy.CareerDataScientist,
				RecentActivities: []model.Activity{
					{Name: "Docker Setup", Category: "Unknown"},
					{Name: "Docker Setup", Category: "Unknown"},
					{Name: "CSS Grid", Category: "Unknown"},
				},
			})

			Convey("Then suggestions are de-duplicated in first-seen order", func() {
				So(err, ShouldBeNil)
				So(len(out.Suggestions), ShouldEqual, 2)
				So(out.Suggestions[0], ShouldContainSubstring, "Docker Setup")
				So(out.Suggestions[1], ShouldContainSubstring, "CSS Grid")
			})
		})

		Convey("When scores mix full, partial, and zero credit", func() {
			out, err := s.Score(ctx, model.StudentProfile{
				TargetCareer: taxonomy.CareerBackendDev,
				RecentActivities: []model.Activity{
					{Name: "Kubernetes Lab", Category: "Backend Dev"}, // 1.0
					{Name: "Untitled project", Category: "Backend Dev"}, // 0.3
					{Name: "Morning jog", Category: "Unknown"},          // 0.0
				},
			})

			Convey("Then the ratio stays inside [0,1]", func() {
				So(err, ShouldBeNil)
				So(out.RelevantRatio, ShouldBeBetweenOrEqual, 0, 1)
				So(out.RelevantRatio, ShouldAlmostEqual, 1.3/3, 1e-9)
			})
		})
	})
}
