// Package features turns raw dataset rows into per-student training records.
//
// The relevance rule here is exact keyword membership, deliberately stricter
// than the runtime classifier's substring heuristic: training runs on a
// cheap, reproducible proxy feature. Do not unify the two rules.
package features

import (
	"sort"

	"driftwatch/internal/domain/model"
	"driftwatch/internal/domain/taxonomy"
	"driftwatch/internal/ml/dataset"
)

// BuildTrainingRecords aggregates rows into one record per student: the
// exact-match relevant ratio and the drift label. Records come back ordered
// by student id so training is deterministic.
func BuildTrainingRecords(rows []dataset.Row, tax *taxonomy.Taxonomy) []model.TrainingRecord {
	grouped := make(map[int][]dataset.Row)
	for _, r := range rows {
		grouped[r.StudentID] = append(grouped[r.StudentID], r)
	}

	ids := make([]int, 0, len(grouped))
	for id := range grouped {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	records := make([]model.TrainingRecord, 0, len(ids))
	for _, id := range ids {
		acts := grouped[id]
		target := acts[0].TargetCareer

		relevant := 0
		for _, a := range acts {
			if tax.HasExactSkill(target, a.ActivityName) {
				relevant++
			}
		}

		records = append(records, model.TrainingRecord{
			TargetCareer:  target,
			RelevantRatio: float64(relevant) / float64(len(acts)),
			IsDrifting:    acts[0].Status == dataset.StatusDrifting,
		})
	}

	return records
}
