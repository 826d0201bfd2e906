package score

import (
	"strings"
	"testing"

	"github.com/verte-zerg/readscore/internal/model"
)

func TestParseSelector(t *testing.T) {
	for _, m := range model.Metrics {
		sel, ok := ParseSelector(m.Key())
		if !ok {
			t.Fatalf("expected %s to be accepted", m.Key())
		}
		if len(sel.Metrics) != 1 || sel.Metrics[0] != m || sel.Aggregate {
			t.Fatalf("unexpected selection for %s: %+v", m.Key(), sel)
		}
	}

	sel, ok := ParseSelector("all")
	if !ok || !sel.Aggregate || len(sel.Metrics) != 4 {
		t.Fatalf("unexpected selection for all: %+v", sel)
	}

	for _, token := range []string{"", "ari", "ALL", "Fk", "smog", "X", " ARI"} {
		if _, ok := ParseSelector(token); ok {
			t.Fatalf("expected %q to be rejected", token)
		}
	}
}

func TestSelectors(t *testing.T) {
	if got := strings.Join(Selectors(), ", "); got != "ARI, FK, SMOG, CL, all" {
		t.Fatalf("unexpected selectors: %s", got)
	}
}
