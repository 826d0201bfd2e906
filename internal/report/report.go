// Package report renders analysis results as text.
package report

import (
	"fmt"
	"io"

	"github.com/verte-zerg/readscore/internal/model"
	"github.com/verte-zerg/readscore/internal/score"
)

// Prompt asks for a selector token.
const Prompt = "Enter the score you want to calculate (ARI, FK, SMOG, CL, all): "

// RenderStatistics echoes the text followed by its counts.
func RenderStatistics(w io.Writer, text string, s model.TextStatistics) error {
	if _, err := fmt.Fprintf(w, "The text is:\n%s\n\n", text); err != nil {
		return err
	}
	return RenderCounts(w, s)
}

// RenderCounts prints the counts, one labeled line each, and a blank line.
func RenderCounts(w io.Writer, s model.TextStatistics) error {
	lines := []struct {
		label string
		value int
	}{
		{"Words", s.Words},
		{"Sentences", s.Sentences},
		{"Characters", s.Characters},
		{"Syllables", s.Syllables},
		{"Polysyllables", s.Polysyllables},
	}
	for _, line := range lines {
		if _, err := fmt.Fprintf(w, "%s: %d\n", line.label, line.value); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}

// RenderScore prints a single score line.
func RenderScore(w io.Writer, s model.MetricScore) error {
	_, err := fmt.Fprintf(w, "%s: %.2f (about %d-year-olds).\n", s.Metric.Name(), s.Score, s.Age)
	return err
}

// RenderAverage prints the average age line.
func RenderAverage(w io.Writer, average float64) error {
	_, err := fmt.Fprintf(w, "This text should be understood in average by %.2f-year-olds.\n", average)
	return err
}

// RenderSelection prints the scores chosen by sel. The aggregate form is
// framed by blank lines and ends with the average age.
func RenderSelection(w io.Writer, r model.Report, sel score.Selection) error {
	if sel.Aggregate {
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	selected := model.Report{Statistics: r.Statistics}
	for _, m := range sel.Metrics {
		s, ok := r.Score(m)
		if !ok {
			s = score.EvaluateMetric(m, r.Statistics)
		}
		selected.Scores = append(selected.Scores, s)
		if err := RenderScore(w, s); err != nil {
			return err
		}
	}
	if !sel.Aggregate {
		return nil
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	return RenderAverage(w, selected.AverageAge())
}

// RenderAll prints every score and the average age.
func RenderAll(w io.Writer, r model.Report) error {
	sel, _ := score.ParseSelector(score.AllSelector)
	return RenderSelection(w, r, sel)
}
