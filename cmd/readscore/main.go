// Package main provides the CLI entrypoint for readscore.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/readscore/internal/config"
	"github.com/verte-zerg/readscore/internal/document"
	"github.com/verte-zerg/readscore/internal/history"
	rlog "github.com/verte-zerg/readscore/internal/log"
	"github.com/verte-zerg/readscore/internal/model"
	"github.com/verte-zerg/readscore/internal/repl"
	"github.com/verte-zerg/readscore/internal/report"
	"github.com/verte-zerg/readscore/internal/score"
	"github.com/verte-zerg/readscore/internal/store"
	"github.com/verte-zerg/readscore/internal/textstats"
	"github.com/verte-zerg/readscore/internal/tui"
)

const (
	defaultHistoryWindow = 5
	dateLayout           = "2006-01-02"
)

var (
	analyzeScore     string
	analyzeMarkdown  bool
	analyzeTUI       bool
	analyzeHistory   bool

	logVerbose bool
	logJSON    bool
	logFile    string

	historySource string
	historySince  string
	historyLast   int
	historyWindow int

	pruneBefore string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "readscore <path>",
		Short:         "Text readability analyzer",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runAnalyzeCmd,
	}

	rootCmd.Flags().StringVar(&analyzeScore, "score", "", "score to calculate without prompting (ARI, FK, SMOG, CL, all)")
	rootCmd.Flags().BoolVar(&analyzeMarkdown, "markdown", false, "treat the input as Markdown and analyze its prose")
	rootCmd.Flags().BoolVar(&analyzeTUI, "tui", false, "browse the report in a terminal UI")
	rootCmd.Flags().BoolVar(&analyzeHistory, "history", false, "record the analysis in the history database")

	rootCmd.PersistentFlags().BoolVarP(&logVerbose, "verbose", "v", false, "write diagnostics to stderr")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "write diagnostics as JSON")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "append diagnostics to a file")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newShowCmd())
	rootCmd.AddCommand(newPruneCmd())
	rootCmd.AddCommand(newReplCmd())

	return rootCmd
}

func runAnalyzeCmd(cmd *cobra.Command, args []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "score", &analyzeScore, fileCfg.Analyze.Score)
	applyBoolConfig(cmd, "markdown", &analyzeMarkdown, fileCfg.Analyze.Markdown)
	applyBoolConfig(cmd, "history", &analyzeHistory, fileCfg.Analyze.History)

	cfg := model.Config{
		Score:     strings.TrimSpace(analyzeScore),
		Markdown:  analyzeMarkdown,
		History:   analyzeHistory,
		UseTUI:    analyzeTUI,
		InputPath: args[0],
	}

	logger, err := newLogger(cmd, fileCfg)
	if err != nil {
		return err
	}
	defer closeLogger(logger)

	out := cmd.OutOrStdout()
	text, loaded := loadDocument(out, cfg.InputPath, cfg.Markdown, logger)
	stats := textstats.Analyze(text)
	rep := score.Evaluate(stats)
	logger.Info("analyzed document",
		"path", cfg.InputPath,
		"words", stats.Words,
		"sentences", stats.Sentences,
		"average_age", rep.AverageAge(),
	)

	if loaded && cfg.History {
		recordAnalysis(cmd.Context(), cfg.InputPath, text, rep, logger)
	}

	if cfg.UseTUI {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			return fmt.Errorf("--tui requires an interactive terminal")
		}
		program := tea.NewProgram(tui.NewModel(cfg.InputPath, text, rep), tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("failed to run TUI: %w", err)
		}
		return nil
	}

	if err := report.RenderStatistics(out, text, stats); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	token := cfg.Score
	if token == "" {
		if _, err := fmt.Fprint(out, report.Prompt); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		token = readToken(cmd.InOrStdin())
	}
	sel, ok := score.ParseSelector(token)
	if !ok {
		logger.Debug("ignoring unknown selector", "selector", token)
		return nil
	}
	if err := report.RenderSelection(out, rep, sel); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// loadDocument reads the input file. A missing file is reported on out and
// analyzed as empty text.
func loadDocument(out io.Writer, path string, markdown bool, logger rlog.Logger) (string, bool) {
	text, err := document.Load(path)
	if err != nil {
		logger.Warn("failed to read document", "path", path, "error", err)
		if _, werr := fmt.Fprintf(out, "No such file\n%v\n", err); werr != nil {
			logErrf("failed to write output: %v\n", werr)
		}
		return "", false
	}
	if markdown {
		text = document.PlainText(text)
	}
	return text, true
}

func readToken(r io.Reader) string {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)
	if scanner.Scan() {
		return scanner.Text()
	}
	return ""
}

func recordAnalysis(ctx context.Context, path, text string, rep model.Report, logger rlog.Logger) {
	if ctx == nil {
		ctx = context.Background()
	}
	source, err := filepath.Abs(path)
	if err != nil {
		source = path
	}
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		logErrf("failed to open history db: %v\n", err)
		return
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close history db: %v\n", cerr)
		}
	}()
	id, err := st.InsertAnalysis(ctx, model.AnalysisRecord{
		AnalyzedAt: time.Now(),
		Source:     source,
		Report:     rep,
		Text:       text,
	})
	if err != nil {
		logErrf("failed to record analysis: %v\n", err)
		return
	}
	logger.Debug("recorded analysis", "id", id, "source", source)
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := writeDefaultConfig(path); err != nil {
		return err
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// writeDefaultConfig creates the config file from the template unless it exists.
func writeDefaultConfig(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat config: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded analyses",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().StringVar(&historySource, "source", "", "only analyses of this file")
	cmd.Flags().StringVar(&historySince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&historyLast, "last", 0, "limit to last N analyses")
	cmd.Flags().IntVar(&historyWindow, "window", defaultHistoryWindow, "moving average window for the trend")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	since, err := parseDate("--since", historySince)
	if err != nil {
		return err
	}
	if historyLast < 0 {
		return fmt.Errorf("--last must be >= 0")
	}
	if historyWindow < 0 {
		return fmt.Errorf("--window must be >= 0")
	}
	cfg := model.HistoryConfig{
		Since:  since,
		Last:   historyLast,
		Window: historyWindow,
	}
	if historySource != "" {
		cfg.Source = absPath(historySource)
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	rep, err := history.Build(cmdContext(cmd), st, cfg)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}
	if err := report.RenderHistory(cmd.OutOrStdout(), rep.Records, rep.Trend); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Re-analyze a recorded document and print all scores",
		Args:  cobra.ExactArgs(1),
		RunE:  runShowCmd,
	}
}

func runShowCmd(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return fmt.Errorf("invalid analysis id %q", args[0])
	}
	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	rec, err := st.GetAnalysis(cmdContext(cmd), id)
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("no analysis with id %d", id)
	}
	if err != nil {
		return fmt.Errorf("failed to load analysis: %w", err)
	}
	if !history.Verify(rec) {
		logErrf("warning: analysis %d no longer reproduces its recorded counts\n", id)
	}

	out := cmd.OutOrStdout()
	stats := textstats.Analyze(rec.Text)
	if _, err := fmt.Fprintf(out, "Analysis %d of %s (%s)\n\n", rec.ID, rec.Source, rec.AnalyzedAt.Local().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := report.RenderStatistics(out, rec.Text, stats); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := report.RenderAll(out, score.Evaluate(stats)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newPruneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete analyses recorded before a date",
		Args:  cobra.NoArgs,
		RunE:  runPruneCmd,
	}
	cmd.Flags().StringVar(&pruneBefore, "before", "", "delete analyses before this date (YYYY-MM-DD)")
	return cmd
}

func runPruneCmd(cmd *cobra.Command, _ []string) error {
	before, err := parseDate("--before", pruneBefore)
	if err != nil {
		return err
	}
	if before == nil {
		return fmt.Errorf("--before is required")
	}
	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	n, err := st.DeleteAnalyses(cmdContext(cmd), *before)
	if err != nil {
		return fmt.Errorf("failed to prune history: %w", err)
	}
	if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d analyses.\n", n); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newReplCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repl <path>",
		Short: "Score a document interactively",
		Args:  cobra.ExactArgs(1),
		RunE:  runReplCmd,
	}
	cmd.Flags().BoolVar(&analyzeMarkdown, "markdown", false, "treat the input as Markdown and analyze its prose")
	return cmd
}

func runReplCmd(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("repl requires an interactive terminal")
	}
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyBoolConfig(cmd, "markdown", &analyzeMarkdown, fileCfg.Analyze.Markdown)

	logger, err := newLogger(cmd, fileCfg)
	if err != nil {
		return err
	}
	defer closeLogger(logger)

	out := cmd.OutOrStdout()
	text, _ := loadDocument(out, args[0], analyzeMarkdown, logger)
	stats := textstats.Analyze(text)
	if err := report.RenderStatistics(out, text, stats); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if _, err := fmt.Fprintf(out, "Scores: %s. Type help for commands.\n", strings.Join(score.Selectors(), ", ")); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	repl.New(out, score.Evaluate(stats), func(err error) {
		logErrf("Error: %v\n", err)
	}).Run()
	return nil
}

func newLogger(cmd *cobra.Command, fileCfg config.FileConfig) (rlog.Logger, error) {
	applyBoolConfig(cmd, "verbose", &logVerbose, fileCfg.Log.Verbose)
	applyBoolConfig(cmd, "log-json", &logJSON, fileCfg.Log.JSON)
	applyStringConfig(cmd, "log-file", &logFile, fileCfg.Log.File)
	logger, err := rlog.New(rlog.Config{
		Enabled: logVerbose,
		JSON:    logJSON,
		File:    logFile,
		Output:  cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to set up logging: %w", err)
	}
	return logger, nil
}

func closeLogger(logger rlog.Logger) {
	if err := logger.Close(); err != nil {
		logErrf("failed to close logger: %v\n", err)
	}
}

func openStore() (*store.Store, error) {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	return st, nil
}

func closeStore(st *store.Store) {
	if cerr := st.Close(); cerr != nil {
		logErrf("failed to close db: %v\n", cerr)
	}
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func parseDate(flag, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	parsed, err := time.ParseInLocation(dateLayout, value, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value: %w", flag, err)
	}
	return &parsed, nil
}

func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# readscore configuration
# Uncomment a value to enable it. CLI flags override config values.

[analyze]
# score = "all"           # Score to calculate without prompting (%s)
# markdown = false        # Treat input as Markdown
# history = false         # Record analyses in the history database

[log]
# verbose = false         # Write diagnostics to stderr
# json = false            # Write diagnostics as JSON
# file = ""               # Append diagnostics to a file
`,
		strings.Join(score.Selectors(), ", "),
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
