package score

import "github.com/verte-zerg/readscore/internal/model"

// AllSelector selects every metric and the average age.
const AllSelector = "all"

// Selection is the set of metrics chosen by a selector token.
type Selection struct {
	Metrics []model.Metric
	// Aggregate is set when the average age line is requested.
	Aggregate bool
}

// ParseSelector resolves a selector token. Matching is exact and
// case-sensitive; unknown tokens report false.
func ParseSelector(token string) (Selection, bool) {
	if token == AllSelector {
		return Selection{Metrics: append([]model.Metric(nil), model.Metrics...), Aggregate: true}, true
	}
	for _, m := range model.Metrics {
		if m.Key() == token {
			return Selection{Metrics: []model.Metric{m}}, true
		}
	}
	return Selection{}, false
}

// Selectors lists the valid selector tokens in prompt order.
func Selectors() []string {
	out := make([]string, 0, len(model.Metrics)+1)
	for _, m := range model.Metrics {
		out = append(out, m.Key())
	}
	return append(out, AllSelector)
}
