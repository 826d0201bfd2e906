package report

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/verte-zerg/readscore/internal/model"
)

const historyTimeLayout = "2006-01-02 15:04"

// RenderHistory prints recorded analyses as a table followed by a trend of
// the average age. trend holds one value per record.
func RenderHistory(w io.Writer, records []model.AnalysisRecord, trend []float64) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No analyses found.")
		return err
	}
	cols := []Column{{Title: "ID", Right: true}, {Title: "Analyzed"}, {Title: "Source"}, {Title: "Words", Right: true}}
	for _, m := range model.Metrics {
		cols = append(cols, Column{Title: m.Key(), Right: true})
	}
	cols = append(cols, Column{Title: "Avg Age", Right: true})

	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		row := []string{
			fmt.Sprintf("%d", rec.ID),
			rec.AnalyzedAt.Local().Format(historyTimeLayout),
			sourceLabel(rec.Source),
			fmt.Sprintf("%d", rec.Report.Statistics.Words),
		}
		for _, m := range model.Metrics {
			cell := "-"
			if s, ok := rec.Report.Score(m); ok {
				cell = fmt.Sprintf("%.2f (%d)", s.Score, s.Age)
			}
			row = append(row, cell)
		}
		row = append(row, fmt.Sprintf("%.2f", rec.Report.AverageAge()))
		rows = append(rows, row)
	}
	for _, line := range FormatTable(cols, rows) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Analyses: %d\n", len(records)); err != nil {
		return err
	}
	if len(trend) > 0 {
		if _, err := fmt.Fprintf(w, "Average age trend: [%s] latest %.2f\n", Sparkline(trend), trend[len(trend)-1]); err != nil {
			return err
		}
	}
	return nil
}

func sourceLabel(source string) string {
	if source == "" {
		return "-"
	}
	return filepath.Base(source)
}
