// Package model defines shared data structures.
package model

import "time"

// Config defines analysis settings resolved from flags and the config file.
type Config struct {
	Score     string
	Markdown  bool
	History   bool
	Verbose   bool
	LogJSON   bool
	LogFile   string
	UseTUI    bool
	InputPath string
}

// HistoryConfig defines filters and options for history output.
type HistoryConfig struct {
	Source string
	Since  *time.Time
	Last   int
	Window int
}

// TextStatistics holds the lexical counts of a document.
type TextStatistics struct {
	Characters    int
	Words         int
	Sentences     int
	Syllables     int
	Polysyllables int
}

// Metric identifies a readability index.
type Metric int

// Supported readability indices, in report order.
const (
	ARI Metric = iota
	FK
	SMOG
	CL
)

// Metrics lists every metric in report order.
var Metrics = []Metric{ARI, FK, SMOG, CL}

// Key returns the selector token for the metric.
func (m Metric) Key() string {
	switch m {
	case ARI:
		return "ARI"
	case FK:
		return "FK"
	case SMOG:
		return "SMOG"
	case CL:
		return "CL"
	default:
		return ""
	}
}

// Name returns the display name for the metric.
func (m Metric) Name() string {
	switch m {
	case ARI:
		return "Automated Readability Index"
	case FK:
		return "Flesch–Kincaid readability tests"
	case SMOG:
		return "Simple Measure of Gobbledygook"
	case CL:
		return "Coleman–Liau index"
	default:
		return ""
	}
}

// MetricScore is a raw score and the age group it maps to.
type MetricScore struct {
	Metric Metric
	Score  float64
	Age    int
}

// Report is the scored view of a document.
type Report struct {
	Statistics TextStatistics
	Scores     []MetricScore
}

// AverageAge returns the mean of the age groups of all scores.
func (r Report) AverageAge() float64 {
	if len(r.Scores) == 0 {
		return 0
	}
	total := 0
	for _, s := range r.Scores {
		total += s.Age
	}
	return float64(total) / float64(len(r.Scores))
}

// Score returns the score for a metric, if present.
func (r Report) Score(m Metric) (MetricScore, bool) {
	for _, s := range r.Scores {
		if s.Metric == m {
			return s, true
		}
	}
	return MetricScore{}, false
}

// AnalysisRecord is a stored analysis.
type AnalysisRecord struct {
	ID         int64
	AnalyzedAt time.Time
	Source     string
	Report     Report
	Text       string
}
