// Package repl provides an interactive prompt for scoring a document.
package repl

import (
	"fmt"
	"io"
	"strings"

	prompt "github.com/c-bata/go-prompt"

	"github.com/verte-zerg/readscore/internal/model"
	"github.com/verte-zerg/readscore/internal/report"
	"github.com/verte-zerg/readscore/internal/score"
)

var commandSuggestions = []prompt.Suggest{
	{Text: "help", Description: "List commands"},
	{Text: "stats", Description: "Show document counts"},
	{Text: "quit", Description: "Exit"},
}

// REPL scores one analyzed document on demand.
type REPL struct {
	out     io.Writer
	report  model.Report
	onError func(error)
	quit    bool
}

// New returns a REPL writing to out. Errors from a command are passed to
// onError, which may be nil.
func New(out io.Writer, r model.Report, onError func(error)) *REPL {
	return &REPL{out: out, report: r, onError: onError}
}

// Run starts the interactive loop and returns after quit or exit.
func (r *REPL) Run() {
	p := prompt.New(
		r.Handle,
		r.Complete,
		prompt.OptionPrefix("readscore >> "),
		prompt.OptionTitle("readscore"),
		prompt.OptionSetExitCheckerOnInput(func(_ string, breakline bool) bool {
			return breakline && r.quit
		}),
	)
	p.Run()
}

// Handle runs one line of input and reports a failure to the error callback.
func (r *REPL) Handle(input string) {
	if err := r.Execute(input); err != nil && r.onError != nil {
		r.onError(err)
	}
}

// Execute handles one line of input. Unknown input is ignored.
func (r *REPL) Execute(input string) error {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return nil
	}
	token := fields[0]
	switch token {
	case "help":
		return r.printHelp()
	case "stats":
		return report.RenderCounts(r.out, r.report.Statistics)
	case "quit", "exit":
		r.quit = true
		return nil
	}
	if sel, ok := score.ParseSelector(token); ok {
		return report.RenderSelection(r.out, r.report, sel)
	}
	return nil
}

// Done reports whether quit was requested.
func (r *REPL) Done() bool {
	return r.quit
}

// Complete implements the go-prompt completer.
func (r *REPL) Complete(d prompt.Document) []prompt.Suggest {
	if strings.Contains(d.TextBeforeCursor(), " ") {
		return nil
	}
	return Suggest(d.GetWordBeforeCursor())
}

// Suggest returns selectors and commands starting with prefix.
func Suggest(prefix string) []prompt.Suggest {
	suggestions := make([]prompt.Suggest, 0, len(model.Metrics)+1+len(commandSuggestions))
	for _, m := range model.Metrics {
		suggestions = append(suggestions, prompt.Suggest{Text: m.Key(), Description: m.Name()})
	}
	suggestions = append(suggestions, prompt.Suggest{Text: score.AllSelector, Description: "All scores and the average age"})
	suggestions = append(suggestions, commandSuggestions...)
	return prompt.FilterHasPrefix(suggestions, prefix, false)
}

func (r *REPL) printHelp() error {
	return writeLines(r.out,
		"Scores:",
		"  "+strings.Join(score.Selectors(), ", "),
		"Commands:",
		"  stats - Show document counts",
		"  help  - Show this help",
		"  quit  - Exit",
	)
}

func writeLines(w io.Writer, lines ...string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
