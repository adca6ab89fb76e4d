package loadtest

import (
	"context"
	"fmt"

	"driftwatch/internal/domain/model"
	"driftwatch/internal/domain/taxonomy"
	"driftwatch/internal/ml/dataset"
	"driftwatch/pkg/logger"
	"github.com/google/uuid"
)

// generateProfiles builds synthetic student profiles from the dataset
// generator's row output, grouped one profile per synthetic student.
func generateProfiles(ctx context.Context, config *Config, stats *Stats) ([]profile, error) {
	logger.Get().Info(ctx, "generating synthetic profiles",
		logger.Int("numProfiles", config.NumProfiles),
		logger.Float64("bias", config.Bias),
	)

	tax := taxonomy.Default()
	opts := []dataset.Option{dataset.WithBias(config.Bias)}
	if config.Seed != 0 {
		opts = append(opts, dataset.WithSeed(config.Seed))
	}

	rows, err := dataset.NewGenerator(tax, opts...).Generate(ctx, config.NumProfiles)
	if err != nil {
		return nil, fmt.Errorf("dataset generation failed: %w", err)
	}

	// Rows arrive grouped and ordered by student id
	byStudent := make(map[int]*profile, config.NumProfiles)
	order := make([]int, 0, config.NumProfiles)
	for _, row := range rows {
		p, ok := byStudent[row.StudentID]
		if !ok {
			p = &profile{
				ID:       uuid.New().String(),
				Drifting: row.Status == dataset.StatusDrifting,
				Payload: model.StudentProfile{
					TargetCareer: row.TargetCareer,
				},
			}
			byStudent[row.StudentID] = p
			order = append(order, row.StudentID)
		}
		p.Payload.RecentActivities = append(p.Payload.RecentActivities, model.Activity{
			Name:     row.ActivityName,
			Category: row.Category,
		})
	}

	profiles := make([]profile, 0, len(order))
	for _, id := range order {
		profiles = append(profiles, *byStudent[id])
	}

	stats.ProfilesGenerated = len(profiles)
	logger.Get().Info(ctx, "profiles generated", logger.Int("count", len(profiles)))
	return profiles, nil
}
