// Package history prepares recorded analyses for reporting.
package history

import (
	"context"

	"github.com/verte-zerg/readscore/internal/model"
	"github.com/verte-zerg/readscore/internal/report"
	"github.com/verte-zerg/readscore/internal/store"
	"github.com/verte-zerg/readscore/internal/textstats"
)

// Report contains precomputed data for history rendering.
type Report struct {
	Records []model.AnalysisRecord
	// Trend is the moving average of each record's average age.
	Trend []float64
}

// Lister loads analyses from storage.
type Lister interface {
	ListAnalyses(ctx context.Context, cfg model.HistoryConfig) ([]model.AnalysisRecord, error)
}

var _ Lister = (*store.Store)(nil)

// Build loads and prepares data for history rendering.
func Build(ctx context.Context, st Lister, cfg model.HistoryConfig) (Report, error) {
	records, err := st.ListAnalyses(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	if cfg.Last > 0 && len(records) > cfg.Last {
		records = records[len(records)-cfg.Last:]
	}
	averages := make([]float64, len(records))
	for i, rec := range records {
		averages[i] = rec.Report.AverageAge()
	}
	return Report{
		Records: records,
		Trend:   report.MovingAverage(averages, cfg.Window),
	}, nil
}

// Verify reports whether re-analyzing the stored text reproduces the
// stored counts.
func Verify(rec model.AnalysisRecord) bool {
	return textstats.Analyze(rec.Text) == rec.Report.Statistics
}
