// Command gen-dataset writes a synthetic training dataset CSV.
package main

import (
	"context"
	"flag"
	"os"

	"driftwatch/internal/config"
	"driftwatch/internal/ml/dataset"
	"driftwatch/pkg/logger"
	"driftwatch/pkg/metrics"
)

const defaultSamples = 1000

func main() {
	var (
		samples = flag.Int("samples", defaultSamples, "Number of synthetic students to generate")
		bias    = flag.Float64("bias", dataset.DefaultBias, "On-track bias; drifting probability is 1-bias")
		seed    = flag.Int64("seed", dataset.DefaultSeed, "Random seed for reproducible datasets")
		out     = flag.String("out", "", "Output CSV path (default: configured dataset path)")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx := context.Background()
	log := logger.Get()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatal(ctx, "failed to load config", logger.Error(err))
	}

	path := *out
	if path == "" {
		path = cfg.DatasetPath
	}

	tax, err := cfg.Taxonomy()
	if err != nil {
		log.Fatal(ctx, "invalid career taxonomy", logger.Error(err))
	}

	gen := dataset.NewGenerator(tax,
		dataset.WithBias(*bias),
		dataset.WithSeed(*seed),
	)

	rows, err := gen.Generate(ctx, *samples)
	if err != nil {
		log.Fatal(ctx, "dataset generation failed", logger.Error(err))
	}

	if err := dataset.WriteCSV(path, rows); err != nil {
		log.Fatal(ctx, "failed to write dataset", logger.Error(err))
	}
	metrics.RecordDatasetRows(len(rows))

	log.Info(ctx, "dataset written",
		logger.String("path", path),
		logger.Int("students", *samples),
		logger.Int("rows", len(rows)),
		logger.Float64("bias", *bias),
	)
}
