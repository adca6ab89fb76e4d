// Command train fits the drift model from the dataset CSV and persists it.
package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"time"

	"driftwatch/internal/config"
	"driftwatch/internal/ml/dataset"
	"driftwatch/internal/ml/features"
	"driftwatch/internal/ml/train"
	"driftwatch/pkg/logger"
	"driftwatch/pkg/metrics"
)

func main() {
	var (
		data  = flag.String("data", "", "Input dataset CSV path (default: configured dataset path)")
		out   = flag.String("model", "", "Output model artifact path (default: configured model path)")
		trees = flag.Int("trees", train.DefaultNumTrees, "Number of trees in the forest")
		seed  = flag.Int64("seed", train.DefaultSplitSeed, "Train/test split seed")
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

	dataPath := *data
	if dataPath == "" {
		dataPath = cfg.DatasetPath
	}
	modelPath := *out
	if modelPath == "" {
		modelPath = cfg.ModelPath
	}

	tax, err := cfg.Taxonomy()
	if err != nil {
		log.Fatal(ctx, "invalid career taxonomy", logger.Error(err))
	}

	rows, err := dataset.ReadCSV(dataPath)
	if err != nil {
		switch {
		case errors.Is(err, dataset.ErrDatasetMissing):
			log.Fatal(ctx, "dataset file not found; run gen-dataset first",
				logger.String("path", dataPath))
		case errors.Is(err, dataset.ErrDatasetEmpty):
			log.Fatal(ctx, "dataset is empty; regenerate it",
				logger.String("path", dataPath))
		default:
			log.Fatal(ctx, "failed to read dataset", logger.Error(err))
		}
	}

	records := features.BuildTrainingRecords(rows, tax)
	log.Info(ctx, "training drift model",
		logger.String("data", dataPath),
		logger.Int("students", len(records)),
		logger.Int("trees", *trees),
	)

	start := time.Now()
	trainer := train.New(
		train.WithNumTrees(*trees),
		train.WithSplitSeed(*seed),
	)
	report, err := trainer.TrainAndSave(ctx, records, modelPath)
	if err != nil {
		log.Fatal(ctx, "training failed", logger.Error(err))
	}
	metrics.RecordTrainingRun(float64(time.Since(start).Milliseconds()))

	os.Stdout.WriteString(report.String())
	log.Info(ctx, "model written", logger.String("path", modelPath))
}
