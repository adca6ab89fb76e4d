package config_test

import (
	"testing"

	"driftwatch/internal/config"
	"driftwatch/internal/domain/taxonomy"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.Addr, convey.ShouldEqual, ":8000")
			convey.So(cfg.ModelPath, convey.ShouldEqual, "ml/models/drift_model.gob")
			convey.So(cfg.DatasetPath, convey.ShouldEqual, "ml/data/career_data.csv")
			convey.So(cfg.StoreShardCount, convey.ShouldEqual, 8)
		})

		convey.Convey("Then it should carry the default career taxonomy in order", func() {
			convey.So(len(cfg.Careers), convey.ShouldEqual, 3)
			convey.So(cfg.Careers[0].Name, convey.ShouldEqual, taxonomy.CareerDataScientist)
			convey.So(cfg.Careers[1].Name, convey.ShouldEqual, taxonomy.CareerFrontendDev)
			convey.So(cfg.Careers[2].Name, convey.ShouldEqual, taxonomy.CareerBackendDev)
		})

		convey.Convey("Then the careers should build a valid taxonomy", func() {
			tax, err := cfg.Taxonomy()
			convey.So(err, convey.ShouldBeNil)
			convey.So(tax.Len(), convey.ShouldEqual, 3)
		})
	})
}
