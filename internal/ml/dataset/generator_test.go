package dataset_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"driftwatch/internal/domain/taxonomy"
	"driftwatch/internal/ml/dataset"

	. "github.com/smartystreets/goconvey/convey"
)

func TestGenerate(t *testing.T) {
	Convey("Given a seeded generator over the default taxonomy", t, func() {
		tx := taxonomy.Default()
		ctx := context.Background()

		Convey("When generating 1000 students with the default bias", func() {
			g := dataset.NewGenerator(tx, dataset.WithSeed(7))
			rows, err := g.Generate(ctx, 1000)
			So(err, ShouldBeNil)

			students := groupByStudent(rows)

			Convey("Then every student has 5 to 10 activities", func() {
				So(len(students), ShouldEqual, 1000)
				for _, acts := range students {
					So(len(acts), ShouldBeBetweenOrEqual, 5, 10)
				}
			})

			Convey("And the drifting share is close to 30%", func() {
				drifting := 0
				for _, acts := range students {
					if acts[0].Status == dataset.StatusDrifting {
						drifting++
					}
				}
				share := float64(drifting) / float64(len(students))
				So(share, ShouldBeBetween, 0.25, 0.35)
			})

			Convey("And every activity category comes from reverse lookup", func() {
				for _, r := range rows {
					career, ok := tx.CareerOf(r.ActivityName)
					So(ok, ShouldBeTrue)
					So(r.Category, ShouldEqual, career)
				}
			})

			Convey("And statuses are consistent within a student", func() {
				for _, acts := range students {
					for _, a := range acts {
						So(a.Status, ShouldEqual, acts[0].Status)
						So(a.TargetCareer, ShouldEqual, acts[0].TargetCareer)
					}
				}
			})
		})

		Convey("When the same seed is used twice", func() {
			first, err := dataset.NewGenerator(tx, dataset.WithSeed(11)).Generate(ctx, 50)
			So(err, ShouldBeNil)
			second, err := dataset.NewGenerator(tx, dataset.WithSeed(11)).Generate(ctx, 50)
			So(err, ShouldBeNil)

			Convey("Then the output is identical", func() {
				So(second, ShouldResemble, first)
			})
		})

		Convey("When the bias is 1.0", func() {
			g := dataset.NewGenerator(tx, dataset.WithBias(1.0), dataset.WithSeed(3))
			rows, err := g.Generate(ctx, 100)
			So(err, ShouldBeNil)

			Convey("Then nobody drifts", func() {
				for _, r := range rows {
					So(r.Status, ShouldEqual, dataset.StatusOnTrack)
				}
			})
		})
	})
}

func TestCSVRoundTrip(t *testing.T) {
	Convey("Given generated rows", t, func() {
		tx := taxonomy.Default()
		rows, err := dataset.NewGenerator(tx, dataset.WithSeed(5)).Generate(context.Background(), 20)
		So(err, ShouldBeNil)

		path := filepath.Join(t.TempDir(), "data", "career_data.csv")

		Convey("When written and read back", func() {
			So(dataset.WriteCSV(path, rows), ShouldBeNil)

			got, err := dataset.ReadCSV(path)

			Convey("Then the rows survive intact", func() {
				So(err, ShouldBeNil)
				So(got, ShouldResemble, rows)
			})
		})
	})
}

func TestReadCSVFailures(t *testing.T) {
	Convey("Given a path with no dataset", t, func() {
		path := filepath.Join(t.TempDir(), "missing.csv")

		Convey("When reading", func() {
			_, err := dataset.ReadCSV(path)

			Convey("Then the missing-dataset kind is reported", func() {
				So(errors.Is(err, dataset.ErrDatasetMissing), ShouldBeTrue)
			})
		})
	})

	Convey("Given an empty dataset file", t, func() {
		path := filepath.Join(t.TempDir(), "empty.csv")
		So(dataset.WriteCSV(path, nil), ShouldBeNil)

		Convey("When reading", func() {
			_, err := dataset.ReadCSV(path)

			Convey("Then the empty-dataset kind is reported", func() {
				So(errors.Is(err, dataset.ErrDatasetEmpty), ShouldBeTrue)
			})
		})
	})
}

func groupByStudent(rows []dataset.Row) map[int][]dataset.Row {
	students := make(map[int][]dataset.Row)
	for _, r := range rows {
		students[r.StudentID] = append(students[r.StudentID], r)
	}
	return students
}
