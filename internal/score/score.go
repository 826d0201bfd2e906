// Package score computes readability indices and reader age groups.
//
// Scores are evaluated in float64. Empty documents divide by zero and
// propagate NaN or ±Inf, which AgeGroup maps to the default age.
package score

import (
	"math"

	"github.com/verte-zerg/readscore/internal/model"
)

// DefaultAge is the age group for scores outside the lookup table.
const DefaultAge = 24

// Indexed by the rounded score. Age 8 is intentionally absent.
var ageTable = map[int]int{
	1:  6,
	2:  7,
	3:  9,
	4:  10,
	5:  11,
	6:  12,
	7:  13,
	8:  14,
	9:  15,
	10: 16,
	11: 17,
	12: 18,
}

// ARI computes the Automated Readability Index.
// Formula: 4.71*(characters/words) + 0.5*(words/sentences) - 21.43
func ARI(s model.TextStatistics) float64 {
	c, w, sen := float64(s.Characters), float64(s.Words), float64(s.Sentences)
	return 4.71*c/w + 0.5*w/sen - 21.43
}

// FleschKincaid computes the Flesch–Kincaid grade level.
// Formula: 0.39*(words/sentences) + 11.8*(syllables/words) - 15.59
func FleschKincaid(s model.TextStatistics) float64 {
	w, sen, y := float64(s.Words), float64(s.Sentences), float64(s.Syllables)
	return 0.39*w/sen + 11.8*y/w - 15.59
}

// SMOG computes the Simple Measure of Gobbledygook.
// Formula: 1.043*sqrt(polysyllables*30/sentences) + 3.1291
func SMOG(s model.TextStatistics) float64 {
	p, sen := float64(s.Polysyllables), float64(s.Sentences)
	return 1.043*math.Sqrt(p*30/sen) + 3.1291
}

// ColemanLiau computes the Coleman–Liau index.
// Formula: 0.0588*(characters per 100 words) - 0.296*(sentences per 100 words) - 15.8
func ColemanLiau(s model.TextStatistics) float64 {
	c, w, sen := float64(s.Characters), float64(s.Words), float64(s.Sentences)
	per100 := w / 100
	return 0.0588*(c/per100) - 0.296*(sen/per100) - 15.8
}

// Compute returns the raw score of a metric. Unknown metrics yield NaN.
func Compute(m model.Metric, s model.TextStatistics) float64 {
	switch m {
	case model.ARI:
		return ARI(s)
	case model.FK:
		return FleschKincaid(s)
	case model.SMOG:
		return SMOG(s)
	case model.CL:
		return ColemanLiau(s)
	default:
		return math.NaN()
	}
}

// AgeGroup maps a raw score to a reader age.
//
// The score is rounded half away from zero before lookup. Non-finite
// scores and rounded values outside 1..12 map to DefaultAge.
func AgeGroup(score float64) int {
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return DefaultAge
	}
	rounded := math.Round(score)
	if rounded < 1 || rounded > 12 {
		return DefaultAge
	}
	return ageTable[int(rounded)]
}

// EvaluateMetric scores a single metric.
func EvaluateMetric(m model.Metric, s model.TextStatistics) model.MetricScore {
	v := Compute(m, s)
	return model.MetricScore{Metric: m, Score: v, Age: AgeGroup(v)}
}

// Evaluate scores every metric in report order.
func Evaluate(s model.TextStatistics) model.Report {
	scores := make([]model.MetricScore, 0, len(model.Metrics))
	for _, m := range model.Metrics {
		scores = append(scores, EvaluateMetric(m, s))
	}
	return model.Report{Statistics: s, Scores: scores}
}
