package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/verte-zerg/readscore/internal/report"
)

const catStatistics = "The text is:\nThe cat sat.\n\n" +
	"Words: 3\nSentences: 1\nCharacters: 10\nSyllables: 3\nPolysyllables: 0\n\n"

func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	return dir
}

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	err := cmd.Execute()
	return out.String(), err
}

func TestAnalyzeAllFromPrompt(t *testing.T) {
	dir := setupEnv(t)
	path := writeFile(t, filepath.Join(dir, "cat.txt"), "The cat sat.")

	out, err := runCLI(t, "all\n", path)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	want := catStatistics + report.Prompt + "\n" +
		"Automated Readability Index: -4.23 (about 24-year-olds).\n" +
		"Flesch–Kincaid readability tests: -2.62 (about 24-year-olds).\n" +
		"Simple Measure of Gobbledygook: 3.13 (about 9-year-olds).\n" +
		"Coleman–Liau index: -6.07 (about 24-year-olds).\n" +
		"\n" +
		"This text should be understood in average by 20.25-year-olds.\n"
	if out != want {
		t.Fatalf("unexpected output:\n%q\nwant:\n%q", out, want)
	}
}

func TestAnalyzeSingleMetricFromPrompt(t *testing.T) {
	dir := setupEnv(t)
	path := writeFile(t, filepath.Join(dir, "cat.txt"), "The cat sat.")

	out, err := runCLI(t, "  FK  extra\n", path)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	want := catStatistics + report.Prompt + "Flesch–Kincaid readability tests: -2.62 (about 24-year-olds).\n"
	if out != want {
		t.Fatalf("unexpected output:\n%q\nwant:\n%q", out, want)
	}
}

func TestAnalyzeUnknownSelectorPrintsNothing(t *testing.T) {
	dir := setupEnv(t)
	path := writeFile(t, filepath.Join(dir, "cat.txt"), "The cat sat.")

	for _, input := range []string{"ari\n", "XYZ\n", ""} {
		out, err := runCLI(t, input, path)
		if err != nil {
			t.Fatalf("execute %q: %v", input, err)
		}
		if out != catStatistics+report.Prompt {
			t.Fatalf("unexpected output for %q: %q", input, out)
		}
	}
}

func TestAnalyzeMissingFile(t *testing.T) {
	dir := setupEnv(t)
	missing := filepath.Join(dir, "missing.txt")

	out, err := runCLI(t, "ARI\n", missing, "--history")
	if err != nil {
		t.Fatalf("missing file should not fail: %v", err)
	}
	if !strings.HasPrefix(out, "No such file\n") {
		t.Fatalf("expected missing file notice, got %q", out)
	}
	if !strings.Contains(out, "The text is:\n\n\nWords: 0\nSentences: 0\nCharacters: 0\n") {
		t.Fatalf("expected empty analysis, got %q", out)
	}
	if !strings.HasSuffix(out, "Automated Readability Index: NaN (about 24-year-olds).\n") {
		t.Fatalf("expected NaN score line, got %q", out)
	}
	if _, err := os.Stat(filepath.Join(dir, "data", "readscore", "readscore.db")); !os.IsNotExist(err) {
		t.Fatalf("missing file should not be recorded, stat err=%v", err)
	}
}

func TestAnalyzeDefaultRunPersistsNothing(t *testing.T) {
	dir := setupEnv(t)
	path := writeFile(t, filepath.Join(dir, "cat.txt"), "The cat sat.")

	if _, err := runCLI(t, "all\n", path); err != nil {
		t.Fatalf("execute: %v", err)
	}
	for _, p := range []string{filepath.Join(dir, "data"), filepath.Join(dir, "config")} {
		if _, err := os.Stat(p); !os.IsNotExist(err) {
			t.Fatalf("default run should not create %s, stat err=%v", p, err)
		}
	}
}

func TestAnalyzeHistoryFlagOverridesConfig(t *testing.T) {
	dir := setupEnv(t)
	writeFile(t, filepath.Join(dir, "config", "readscore", "config.toml"), "[analyze]\nhistory = false\n")
	path := writeFile(t, filepath.Join(dir, "cat.txt"), "The cat sat.")

	if _, err := runCLI(t, "", path, "--history"); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "data", "readscore", "readscore.db")); err != nil {
		t.Fatalf("expected history db: %v", err)
	}
}

func TestAnalyzeScoreFlagSkipsPrompt(t *testing.T) {
	dir := setupEnv(t)
	path := writeFile(t, filepath.Join(dir, "cat.txt"), "The cat sat.")

	out, err := runCLI(t, "", path, "--score", "SMOG")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	want := catStatistics + "Simple Measure of Gobbledygook: 3.13 (about 9-year-olds).\n"
	if out != want {
		t.Fatalf("unexpected output:\n%q\nwant:\n%q", out, want)
	}
}

func TestAnalyzeUsesConfigFile(t *testing.T) {
	dir := setupEnv(t)
	writeFile(t, filepath.Join(dir, "config", "readscore", "config.toml"), "[analyze]\nscore = \"CL\"\nhistory = false\n")
	path := writeFile(t, filepath.Join(dir, "cat.txt"), "The cat sat.")

	out, err := runCLI(t, "", path)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if out != catStatistics+"Coleman–Liau index: -6.07 (about 24-year-olds).\n" {
		t.Fatalf("unexpected output: %q", out)
	}
	if _, err := os.Stat(filepath.Join(dir, "data", "readscore", "readscore.db")); !os.IsNotExist(err) {
		t.Fatalf("history disabled in config, stat err=%v", err)
	}

	out, err = runCLI(t, "", path, "--score", "FK")
	if err != nil {
		t.Fatalf("execute with flag: %v", err)
	}
	if !strings.HasSuffix(out, "Flesch–Kincaid readability tests: -2.62 (about 24-year-olds).\n") {
		t.Fatalf("flag should override config: %q", out)
	}
}

func TestAnalyzeRejectsUnknownConfigKey(t *testing.T) {
	dir := setupEnv(t)
	writeFile(t, filepath.Join(dir, "config", "readscore", "config.toml"), "[analyze]\ncolour = \"red\"\n")
	path := writeFile(t, filepath.Join(dir, "cat.txt"), "The cat sat.")

	if _, err := runCLI(t, "", path); err == nil {
		t.Fatalf("expected config error")
	}
}

func TestAnalyzeMarkdown(t *testing.T) {
	dir := setupEnv(t)
	path := writeFile(t, filepath.Join(dir, "cat.md"), "# Title\n\nThe *cat* sat.\n\n```\ncode here.\n```\n")

	out, err := runCLI(t, "", path, "--markdown")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.HasPrefix(out, "The text is:\nTitle\n\nThe cat sat.\n\n") {
		t.Fatalf("expected markdown prose, got %q", out)
	}
	if strings.Contains(out, "code here") {
		t.Fatalf("code block should be dropped: %q", out)
	}
}

func TestHistoryShowAndPrune(t *testing.T) {
	dir := setupEnv(t)
	path := writeFile(t, filepath.Join(dir, "cat.txt"), "The cat sat.")

	if _, err := runCLI(t, "ARI\n", path, "--history"); err != nil {
		t.Fatalf("analyze with flag: %v", err)
	}
	writeFile(t, filepath.Join(dir, "config", "readscore", "config.toml"), "[analyze]\nhistory = true\n")
	if _, err := runCLI(t, "ARI\n", path); err != nil {
		t.Fatalf("analyze with config: %v", err)
	}

	out, err := runCLI(t, "", "history", "--source", path)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if !strings.Contains(out, "cat.txt") || !strings.Contains(out, "Analyses: 2") {
		t.Fatalf("unexpected history output:\n%s", out)
	}
	if !strings.Contains(out, "latest 20.25") {
		t.Fatalf("expected trend line, got:\n%s", out)
	}

	out, err = runCLI(t, "", "show", "1")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	if !strings.Contains(out, catStatistics) || !strings.HasSuffix(out, "This text should be understood in average by 20.25-year-olds.\n") {
		t.Fatalf("unexpected show output:\n%s", out)
	}

	if _, err := runCLI(t, "", "show", "99"); err == nil {
		t.Fatalf("expected error for unknown id")
	}
	if _, err := runCLI(t, "", "show", "abc"); err == nil {
		t.Fatalf("expected error for invalid id")
	}

	out, err = runCLI(t, "", "prune", "--before", "2999-01-01")
	if err != nil {
		t.Fatalf("prune: %v", err)
	}
	if out != "Deleted 2 analyses.\n" {
		t.Fatalf("unexpected prune output %q", out)
	}

	out, err = runCLI(t, "", "history")
	if err != nil {
		t.Fatalf("history after prune: %v", err)
	}
	if !strings.Contains(out, "No analyses found.") {
		t.Fatalf("expected empty history, got %q", out)
	}
}

func TestHistoryRejectsBadFlags(t *testing.T) {
	setupEnv(t)
	if _, err := runCLI(t, "", "history", "--since", "yesterday"); err == nil {
		t.Fatalf("expected error for invalid --since")
	}
	if _, err := runCLI(t, "", "history", "--last", "-1"); err == nil {
		t.Fatalf("expected error for negative --last")
	}
	if _, err := runCLI(t, "", "prune"); err == nil {
		t.Fatalf("expected error without --before")
	}
}

func TestWriteDefaultConfigKeepsExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "readscore", "config.toml")
	if err := writeDefaultConfig(path); err != nil {
		t.Fatalf("write default: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(data), "ARI, FK, SMOG, CL, all") {
		t.Fatalf("template missing selectors:\n%s", data)
	}
	writeFile(t, path, "[analyze]\n")
	if err := writeDefaultConfig(path); err != nil {
		t.Fatalf("rewrite default: %v", err)
	}
	data, err = os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "[analyze]\n" {
		t.Fatalf("existing config overwritten: %q", data)
	}
}

func TestReadToken(t *testing.T) {
	if got := readToken(strings.NewReader("\n\t SMOG CL")); got != "SMOG" {
		t.Fatalf("expected SMOG, got %q", got)
	}
	if got := readToken(strings.NewReader("")); got != "" {
		t.Fatalf("expected empty token, got %q", got)
	}
}
