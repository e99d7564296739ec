package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Adidadi0112/peptide-opt/internal/stats"
)

func TestRunCommandPersistsRunAndArtifacts(t *testing.T) {
	base := t.TempDir()
	dbPath := filepath.Join(base, "peptideopt.db")
	resultsDir := filepath.Join(base, "results")

	err := run(context.Background(), []string{
		"run",
		"-engine", "ga",
		"-run-id", "cli-ga",
		"-motif", "0",
		"-seed", "42",
		"-pop", "20",
		"-gens", "5",
		"-store", "sqlite",
		"-db-path", dbPath,
		"-results-dir", resultsDir,
	})
	if err != nil {
		t.Fatalf("run command: %v", err)
	}

	if _, err := os.Stat(dbPath); err != nil {
		t.Fatalf("expected sqlite database file: %v", err)
	}
	entries, err := stats.ListRunIndex(resultsDir)
	if err != nil {
		t.Fatalf("list run index: %v", err)
	}
	if len(entries) != 1 || entries[0].RunID != "cli-ga" {
		t.Fatalf("unexpected run index: %+v", entries)
	}
	if entries[0].Engine != "ga" || entries[0].Seed != 42 || entries[0].MotifIndex != 0 {
		t.Fatalf("unexpected index entry: %+v", entries[0])
	}
	for _, name := range []string{"config.json", "best.json", "progress.json", "series.csv"} {
		if _, err := os.Stat(filepath.Join(resultsDir, "cli-ga", name)); err != nil {
			t.Fatalf("expected artifact %s: %v", name, err)
		}
	}
}

func TestRunCommandConfigFileWithFlagOverride(t *testing.T) {
	base := t.TempDir()
	dbPath := filepath.Join(base, "peptideopt.db")
	resultsDir := filepath.Join(base, "results")
	cfgPath := filepath.Join(base, "run.json")

	payload := map[string]any{
		"run_id":      "cfg-tabu",
		"engine":      "tabu",
		"motif_index": 1,
		"seed":        7,
		"iterations":  60,
		"tabu_length": 5,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(cfgPath, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	err = run(context.Background(), []string{
		"run",
		"-config", cfgPath,
		"-seed", "9",
		"-store", "sqlite",
		"-db-path", dbPath,
		"-results-dir", resultsDir,
	})
	if err != nil {
		t.Fatalf("run command: %v", err)
	}

	entries, err := stats.ListRunIndex(resultsDir)
	if err != nil {
		t.Fatalf("list run index: %v", err)
	}
	if len(entries) != 1 || entries[0].RunID != "cfg-tabu" {
		t.Fatalf("unexpected run index: %+v", entries)
	}
	if entries[0].Engine != "tabu" || entries[0].MotifIndex != 1 {
		t.Fatalf("expected config values to apply: %+v", entries[0])
	}
	if entries[0].Seed != 9 {
		t.Fatalf("expected seed flag to override config, got %d", entries[0].Seed)
	}
	if _, err := os.Stat(filepath.Join(resultsDir, "cfg-tabu", "trace.json")); err != nil {
		t.Fatalf("expected tabu trace artifact: %v", err)
	}
}

func TestShowCommandReadsBackRun(t *testing.T) {
	base := t.TempDir()
	dbPath := filepath.Join(base, "peptideopt.db")
	resultsDir := filepath.Join(base, "results")

	err := run(context.Background(), []string{
		"run",
		"-engine", "tabu",
		"-run-id", "cli-show",
		"-motif", "1",
		"-seed", "3",
		"-iterations", "50",
		"-store", "sqlite",
		"-db-path", dbPath,
		"-results-dir", resultsDir,
	})
	if err != nil {
		t.Fatalf("run command: %v", err)
	}

	err = run(context.Background(), []string{
		"show", "-run-id", "cli-show",
		"-store", "sqlite", "-db-path", dbPath, "-results-dir", resultsDir,
	})
	if err != nil {
		t.Fatalf("show by run id: %v", err)
	}
	err = run(context.Background(), []string{
		"show", "-latest", "-json",
		"-store", "sqlite", "-db-path", dbPath, "-results-dir", resultsDir,
	})
	if err != nil {
		t.Fatalf("show latest: %v", err)
	}
}

func TestShowCommandValidatesSelector(t *testing.T) {
	err := run(context.Background(), []string{"show", "-run-id", "x", "-latest"})
	if err == nil || !strings.Contains(err.Error(), "not both") {
		t.Fatalf("expected exclusivity error, got: %v", err)
	}
	err = run(context.Background(), []string{"show"})
	if err == nil || !strings.Contains(err.Error(), "requires") {
		t.Fatalf("expected selector error, got: %v", err)
	}
}

func TestRunsCommandHandlesEmptyAndPopulatedIndex(t *testing.T) {
	resultsDir := filepath.Join(t.TempDir(), "results")

	if err := run(context.Background(), []string{"runs", "-results-dir", resultsDir}); err != nil {
		t.Fatalf("runs on empty index: %v", err)
	}
	err := run(context.Background(), []string{"runs", "-limit", "0", "-results-dir", resultsDir})
	if err == nil || !strings.Contains(err.Error(), "limit must be > 0") {
		t.Fatalf("expected limit error, got: %v", err)
	}

	err = run(context.Background(), []string{
		"run", "-engine", "ga", "-run-id", "cli-list", "-seed", "1",
		"-pop", "10", "-gens", "3", "-results-dir", resultsDir,
	})
	if err != nil {
		t.Fatalf("run command: %v", err)
	}
	if err := run(context.Background(), []string{"runs", "-results-dir", resultsDir}); err != nil {
		t.Fatalf("runs after run: %v", err)
	}
	if err := run(context.Background(), []string{"runs", "-json", "-results-dir", resultsDir}); err != nil {
		t.Fatalf("runs json: %v", err)
	}
}

func TestCompareCommandWritesExperiment(t *testing.T) {
	resultsDir := filepath.Join(t.TempDir(), "results")

	err := run(context.Background(), []string{
		"compare",
		"-id", "cli-exp",
		"-motifs", "0,1",
		"-seed", "3",
		"-pop", "10",
		"-gens", "4",
		"-workers", "2",
		"-results-dir", resultsDir,
	})
	if err != nil {
		t.Fatalf("compare command: %v", err)
	}

	exps, err := stats.ListCompareExperiments(resultsDir)
	if err != nil {
		t.Fatalf("list experiments: %v", err)
	}
	if len(exps) != 1 || exps[0].ID != "cli-exp" {
		t.Fatalf("unexpected experiments: %+v", exps)
	}
	if len(exps[0].Comparisons) != 2 {
		t.Fatalf("expected two motif comparisons, got %d", len(exps[0].Comparisons))
	}

	if err := run(context.Background(), []string{"experiments", "-results-dir", resultsDir}); err != nil {
		t.Fatalf("experiments command: %v", err)
	}
	if err := run(context.Background(), []string{"experiments", "-json", "-results-dir", resultsDir}); err != nil {
		t.Fatalf("experiments json: %v", err)
	}

	err = run(context.Background(), []string{"compare", "-motifs", "0,x", "-results-dir", resultsDir})
	if err == nil || !strings.Contains(err.Error(), "invalid motif index") {
		t.Fatalf("expected motif list error, got: %v", err)
	}
}

func TestScoreAndMotifsCommands(t *testing.T) {
	if err := run(context.Background(), []string{"score", "-seq", "RGD", "-motif", "1"}); err != nil {
		t.Fatalf("score command: %v", err)
	}
	if err := run(context.Background(), []string{"score", "-seq", "rgd", "-motif", "1", "-json"}); err != nil {
		t.Fatalf("score json: %v", err)
	}
	err := run(context.Background(), []string{"score"})
	if err == nil || !strings.Contains(err.Error(), "requires --seq") {
		t.Fatalf("expected missing sequence error, got: %v", err)
	}
	if err := run(context.Background(), []string{"score", "-seq", "RGX"}); err == nil {
		t.Fatal("expected alphabet error")
	}

	if err := run(context.Background(), []string{"motifs"}); err != nil {
		t.Fatalf("motifs command: %v", err)
	}
	if err := run(context.Background(), []string{"motifs", "-json"}); err != nil {
		t.Fatalf("motifs json: %v", err)
	}
}

func TestInitCommandCreatesDatabase(t *testing.T) {
	base := t.TempDir()
	dbPath := filepath.Join(base, "peptideopt.db")

	err := run(context.Background(), []string{
		"init", "-store", "sqlite", "-db-path", dbPath,
		"-results-dir", filepath.Join(base, "results"),
	})
	if err != nil {
		t.Fatalf("init command: %v", err)
	}
	if _, err := os.Stat(dbPath); err != nil {
		t.Fatalf("expected sqlite database file: %v", err)
	}
}

func TestUnknownCommandReturnsUsage(t *testing.T) {
	err := run(context.Background(), []string{"bogus"})
	if err == nil || !strings.Contains(err.Error(), "unknown command: bogus") {
		t.Fatalf("expected unknown command error, got: %v", err)
	}
	if !strings.Contains(err.Error(), "usage: peptidectl") {
		t.Fatalf("expected usage text, got: %v", err)
	}
	err = run(context.Background(), nil)
	if err == nil || !strings.Contains(err.Error(), "missing command") {
		t.Fatalf("expected missing command error, got: %v", err)
	}
}

func TestParseMotifList(t *testing.T) {
	got, err := parseMotifList("")
	if err != nil || got != nil {
		t.Fatalf("expected nil list for empty input, got %v (%v)", got, err)
	}
	got, err = parseMotifList("0,2, 5")
	if err != nil {
		t.Fatalf("parse motif list: %v", err)
	}
	if len(got) != 3 || got[0] != 0 || got[1] != 2 || got[2] != 5 {
		t.Fatalf("unexpected motif list: %v", got)
	}
	if _, err := parseMotifList("0,x"); err == nil {
		t.Fatal("expected parse error")
	}
}
