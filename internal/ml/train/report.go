package train

import (
	"fmt"
	"strings"

	"driftwatch/internal/domain/model"
)

// ClassReport holds per-class evaluation metrics on the held-out split.
type ClassReport struct {
	Label     string
	Precision float64
	Recall    float64
	F1        float64
	Support   int
}

// Report summarizes a training run.
type Report struct {
	TrainSamples int
	TestSamples  int
	Accuracy     float64
	OnTrack      ClassReport
	Drifting     ClassReport
}

// String renders the report in a classification-report style table.
func (r Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "trained on %d samples, evaluated on %d\n", r.TrainSamples, r.TestSamples)
	fmt.Fprintf(&b, "%-12s %9s %9s %9s %9s\n", "", "precision", "recall", "f1", "support")
	for _, c := range []ClassReport{r.OnTrack, r.Drifting} {
		fmt.Fprintf(&b, "%-12s %9.2f %9.2f %9.2f %9d\n", c.Label, c.Precision, c.Recall, c.F1, c.Support)
	}
	fmt.Fprintf(&b, "%-12s %39.2f\n", "accuracy", r.Accuracy)
	return b.String()
}

// evaluate scores the held-out split and computes per-class metrics.
func (t *Trainer) evaluate(m *Model, records []model.TrainingRecord, testIdx []int) Report {
	var truePos, falsePos, trueNeg, falseNeg int

	for _, i := range testIdx {
		drift, _ := m.Probabilities(records[i].RelevantRatio)
		predicted := drift > 0.5
		actual := records[i].IsDrifting

		switch {
		case predicted && actual:
			truePos++
		case predicted && !actual:
			falsePos++
		case !predicted && !actual:
			trueNeg++
		default:
			falseNeg++
		}
	}

	total := len(testIdx)
	report := Report{
		TrainSamples: len(records) - total,
		TestSamples:  total,
		OnTrack: classMetrics(StatusLabelOnTrack,
			trueNeg, falseNeg, falsePos),
		Drifting: classMetrics(StatusLabelDrifting,
			truePos, falsePos, falseNeg),
	}
	if total > 0 {
		report.Accuracy = float64(truePos+trueNeg) / float64(total)
	}
	return report
}

// Class labels used in reports.
const (
	StatusLabelOnTrack  = "On Track"
	StatusLabelDrifting = "Drifting"
)

// classMetrics computes precision/recall/F1 from one class's confusion
// counts: tp = correctly predicted as the class, fp = wrongly predicted as
// the class, fn = class samples predicted as the other one.
func classMetrics(label string, tp, fp, fn int) ClassReport {
	c := ClassReport{Label: label, Support: tp + fn}
	if tp+fp > 0 {
		c.Precision = float64(tp) / float64(tp+fp)
	}
	if tp+fn > 0 {
		c.Recall = float64(tp) / float64(tp+fn)
	}
	if c.Precision+c.Recall > 0 {
		c.F1 = 2 * c.Precision * c.Recall / (c.Precision + c.Recall)
	}
	return c
}
