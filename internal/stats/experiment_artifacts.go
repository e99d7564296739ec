package stats

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

const compareExperimentsDir = "compare"

// MotifComparison is the paired outcome of the baseline and guided engines
// on one catalog motif.
type MotifComparison struct {
	MotifIndex      int     `json:"motif_index"`
	Motif           string  `json:"motif"`
	Seed            int64   `json:"seed"`
	BaselineBest    string  `json:"baseline_best"`
	BaselineFitness float64 `json:"baseline_fitness"`
	BaselineSeconds float64 `json:"baseline_seconds"`
	GuidedBest      string  `json:"guided_best"`
	GuidedFitness   float64 `json:"guided_fitness"`
	GuidedSeconds   float64 `json:"guided_seconds"`
	Winner          string  `json:"winner"`
}

// CompareExperiment aggregates one baseline-versus-guided sweep over the
// motif catalog.
type CompareExperiment struct {
	ID                  string            `json:"id"`
	Seed                int64             `json:"seed"`
	PopulationSize      int               `json:"population_size"`
	Generations         int               `json:"generations"`
	StartedAtUTC        string            `json:"started_at_utc,omitempty"`
	CompletedAtUTC      string            `json:"completed_at_utc,omitempty"`
	Comparisons         []MotifComparison `json:"comparisons,omitempty"`
	BaselineWins        int               `json:"baseline_wins"`
	GuidedWins          int               `json:"guided_wins"`
	Ties                int               `json:"ties"`
	BestOverallEngine   string            `json:"best_overall_engine,omitempty"`
	BestOverallMotif    int               `json:"best_overall_motif"`
	BestOverallFitness  float64           `json:"best_overall_fitness"`
	BestOverallSequence string            `json:"best_overall_sequence,omitempty"`
}

func WriteCompareExperiment(baseDir string, exp CompareExperiment) error {
	if exp.ID == "" {
		return fmt.Errorf("experiment id is required")
	}
	path := compareExperimentPath(baseDir, exp.ID)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return writeJSON(path, exp)
}

func ReadCompareExperiment(baseDir, id string) (CompareExperiment, bool, error) {
	if id == "" {
		return CompareExperiment{}, false, fmt.Errorf("experiment id is required")
	}
	path := compareExperimentPath(baseDir, id)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return CompareExperiment{}, false, nil
		}
		return CompareExperiment{}, false, err
	}
	var exp CompareExperiment
	if err := json.Unmarshal(data, &exp); err != nil {
		return CompareExperiment{}, false, err
	}
	return exp, true, nil
}

func ListCompareExperiments(baseDir string) ([]CompareExperiment, error) {
	root := filepath.Join(baseDir, compareExperimentsDir)
	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return []CompareExperiment{}, nil
		}
		return nil, err
	}

	exps := make([]CompareExperiment, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		exp, ok, err := ReadCompareExperiment(baseDir, entry.Name())
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		exps = append(exps, exp)
	}
	sort.Slice(exps, func(i, j int) bool {
		switch {
		case exps[i].StartedAtUTC == exps[j].StartedAtUTC:
			return exps[i].ID < exps[j].ID
		case exps[i].StartedAtUTC == "":
			return false
		case exps[j].StartedAtUTC == "":
			return true
		default:
			return exps[i].StartedAtUTC > exps[j].StartedAtUTC
		}
	})
	return exps, nil
}

// CompareExperimentDir is where one experiment's artifacts live.
func CompareExperimentDir(baseDir, id string) string {
	return filepath.Join(baseDir, compareExperimentsDir, id)
}

func compareExperimentPath(baseDir, id string) string {
	return filepath.Join(CompareExperimentDir(baseDir, id), "experiment.json")
}
