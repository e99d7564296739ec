package stats

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/Adidadi0112/peptide-opt/internal/model"
)

const (
	runIndexFile = "run_index.json"
	seriesFile   = "series.csv"
)

// RunConfig captures every knob of one engine run as written to disk.
// Engine-specific fields stay zero for the engines that do not use them.
type RunConfig struct {
	RunID             string  `json:"run_id"`
	Engine            string  `json:"engine"`
	MotifIndex        int     `json:"motif_index"`
	Motif             string  `json:"motif"`
	ScoreMode         string  `json:"score_mode"`
	Seed              int64   `json:"seed"`
	AdjacencyPath     string  `json:"adjacency_path,omitempty"`
	PopulationSize    int     `json:"population_size,omitempty"`
	Generations       int     `json:"generations,omitempty"`
	CrossoverProb     float64 `json:"crossover_prob,omitempty"`
	MutationProb      float64 `json:"mutation_prob,omitempty"`
	TournamentSize    int     `json:"tournament_size,omitempty"`
	Crossover         string  `json:"crossover,omitempty"`
	MinLength         int     `json:"min_length,omitempty"`
	MaxLength         int     `json:"max_length,omitempty"`
	Strategy          string  `json:"strategy,omitempty"`
	Elitism           string  `json:"elitism,omitempty"`
	ValidityRetries   int     `json:"validity_retries,omitempty"`
	Iterations        int     `json:"iterations,omitempty"`
	NeighbourhoodSize int     `json:"neighbourhood_size,omitempty"`
	TabuLength        int     `json:"tabu_length,omitempty"`
	AspirationMargin  float64 `json:"aspiration_margin,omitempty"`
	ReheatInterval    int     `json:"reheat_interval,omitempty"`
}

// RunArtifacts is everything one run leaves on disk.
type RunArtifacts struct {
	Config           RunConfig               `json:"config"`
	Progress         []model.GenerationStats `json:"progress,omitempty"`
	Trace            []model.TracePoint      `json:"trace,omitempty"`
	BestByGeneration []float64               `json:"best_by_generation,omitempty"`
	BestSequence     string                  `json:"best_sequence"`
	FinalBestFitness float64                 `json:"final_best_fitness"`
	Evaluations      int                     `json:"evaluations"`
}

// RunIndexEntry is one row of the results directory index.
type RunIndexEntry struct {
	RunID            string  `json:"run_id"`
	Engine           string  `json:"engine"`
	MotifIndex       int     `json:"motif_index"`
	Motif            string  `json:"motif"`
	ScoreMode        string  `json:"score_mode"`
	Seed             int64   `json:"seed"`
	FinalBestFitness float64 `json:"final_best_fitness"`
	CreatedAtUTC     string  `json:"created_at_utc"`
}

// WriteRunArtifacts lays the run out under baseDir/<run id> and returns the
// run directory. Progress, trace and the best series are written only when
// present.
func WriteRunArtifacts(baseDir string, artifacts RunArtifacts) (string, error) {
	if artifacts.Config.RunID == "" {
		return "", fmt.Errorf("run id is required")
	}

	runDir := filepath.Join(baseDir, artifacts.Config.RunID)
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return "", err
	}

	if err := writeJSON(filepath.Join(runDir, "config.json"), artifacts.Config); err != nil {
		return "", err
	}
	if err := writeJSON(filepath.Join(runDir, "best.json"), map[string]any{
		"best_sequence":      artifacts.BestSequence,
		"final_best_fitness": artifacts.FinalBestFitness,
		"evaluations":        artifacts.Evaluations,
	}); err != nil {
		return "", err
	}
	if len(artifacts.Progress) > 0 {
		if err := writeJSON(filepath.Join(runDir, "progress.json"), artifacts.Progress); err != nil {
			return "", err
		}
	}
	if len(artifacts.Trace) > 0 {
		if err := writeJSON(filepath.Join(runDir, "trace.json"), artifacts.Trace); err != nil {
			return "", err
		}
	}
	if len(artifacts.BestByGeneration) > 0 {
		if err := WriteBestSeries(runDir, artifacts.BestByGeneration); err != nil {
			return "", err
		}
	}

	return runDir, nil
}

func AppendRunIndex(baseDir string, entry RunIndexEntry) error {
	if entry.RunID == "" {
		return fmt.Errorf("run id is required")
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return err
	}

	index, err := ListRunIndex(baseDir)
	if err != nil {
		return err
	}

	for i := range index {
		if index[i].RunID == entry.RunID {
			index[i] = entry
			return writeJSON(filepath.Join(baseDir, runIndexFile), index)
		}
	}

	index = append(index, entry)
	return writeJSON(filepath.Join(baseDir, runIndexFile), index)
}

// ListRunIndex returns the index newest first.
func ListRunIndex(baseDir string) ([]RunIndexEntry, error) {
	path := filepath.Join(baseDir, runIndexFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunIndexEntry{}, nil
		}
		return nil, err
	}

	var entries []RunIndexEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}

	type indexedEntry struct {
		entry RunIndexEntry
		idx   int
	}
	indexed := make([]indexedEntry, len(entries))
	for i := range entries {
		indexed[i] = indexedEntry{entry: entries[i], idx: i}
	}
	sort.Slice(indexed, func(i, j int) bool {
		if indexed[i].entry.CreatedAtUTC == indexed[j].entry.CreatedAtUTC {
			// Prefer later appended entries for equal timestamps.
			return indexed[i].idx > indexed[j].idx
		}
		return indexed[i].entry.CreatedAtUTC > indexed[j].entry.CreatedAtUTC
	})

	sorted := make([]RunIndexEntry, 0, len(indexed))
	for _, item := range indexed {
		sorted = append(sorted, item.entry)
	}
	return sorted, nil
}

func ReadRunConfig(baseDir, runID string) (RunConfig, bool, error) {
	path := filepath.Join(baseDir, runID, "config.json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return RunConfig{}, false, nil
		}
		return RunConfig{}, false, err
	}

	var cfg RunConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return RunConfig{}, false, err
	}
	return cfg, true, nil
}

// WriteBestSeries writes the per-generation best fitness as CSV next to the
// JSON artifacts, one row per generation starting at 1.
func WriteBestSeries(runDir string, bestByGeneration []float64) error {
	path := filepath.Join(runDir, seriesFile)
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write([]string{"generation", "best_fitness"}); err != nil {
		return err
	}
	for i, best := range bestByGeneration {
		if err := writer.Write([]string{
			strconv.Itoa(i + 1),
			strconv.FormatFloat(best, 'f', -1, 64),
		}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func ReadBestSeries(baseDir, runID string) ([]float64, bool, error) {
	path := filepath.Join(baseDir, runID, seriesFile)
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return []float64{}, true, nil
		}
		return nil, false, err
	}
	if len(header) < 2 {
		return nil, false, fmt.Errorf("best series header must have at least 2 columns")
	}

	series := make([]float64, 0, 128)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, false, err
		}
		if len(record) < 2 {
			return nil, false, fmt.Errorf("best series row must have at least 2 columns")
		}
		value, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, false, err
		}
		series = append(series, value)
	}
	return series, true, nil
}

func writeJSON(path string, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o644)
}
