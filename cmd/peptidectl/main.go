package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/Adidadi0112/peptide-opt/internal/model"
	"github.com/Adidadi0112/peptide-opt/internal/storage"
	"github.com/Adidadi0112/peptide-opt/pkg/peptideopt"
)

const defaultResultsDir = "results"

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("missing command")
	}

	switch args[0] {
	case "init":
		return runInit(ctx, args[1:])
	case "run":
		return runRun(ctx, args[1:])
	case "compare":
		return runCompare(ctx, args[1:])
	case "runs":
		return runRuns(ctx, args[1:])
	case "show":
		return runShow(ctx, args[1:])
	case "experiments":
		return runExperiments(ctx, args[1:])
	case "motifs":
		return runMotifs(ctx, args[1:])
	case "score":
		return runScore(ctx, args[1:])
	default:
		return usageError(fmt.Sprintf("unknown command: %s", args[0]))
	}
}

func runInit(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "peptideopt.db", "sqlite database path")
	resultsDir := fs.String("results-dir", defaultResultsDir, "run artifacts directory")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := peptideopt.New(peptideopt.Options{
		StoreKind:  *storeKind,
		DBPath:     *dbPath,
		ResultsDir: *resultsDir,
	})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if err := client.Init(ctx); err != nil {
		return err
	}
	fmt.Printf("initialized store=%s\n", *storeKind)
	return nil
}

func runRun(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	configPath := fs.String("config", "", "optional run config JSON path")
	runID := fs.String("run-id", "", "explicit run id (optional)")
	engine := fs.String("engine", "ga", "search engine: tabu|ga|nga")
	motifIndex := fs.Int("motif", 0, "catalog motif index")
	bestOfCatalog := fs.Bool("best-of-catalog", false, "score against the best-fitting catalog motif")
	seed := fs.Int64("seed", 0, "rng seed")
	population := fs.Int("pop", 0, "population size (0 uses the engine default)")
	generations := fs.Int("gens", 0, "generation count (0 uses the engine default)")
	crossoverProb := fs.Float64("crossover-prob", 0, "crossover probability (0 uses the engine default)")
	mutationProb := fs.Float64("mutation-prob", 0, "mutation probability (0 uses the engine default)")
	tournamentSize := fs.Int("tournament", 0, "tournament size for the baseline engine (0 uses the default)")
	crossoverName := fs.String("crossover", "", "baseline crossover: single-point|uniform")
	minLength := fs.Int("min-len", 0, "minimum sequence length for the baseline engine (0 uses the default)")
	maxLength := fs.Int("max-len", 0, "maximum sequence length for the baseline engine (0 uses the default)")
	strategyName := fs.String("strategy", "", "guided crossover strategy: full|adjacent|uniform")
	elitismName := fs.String("elitism", "", "guided elitism policy: elitist|none")
	noValidity := fs.Bool("no-validity", false, "disable the guided engine's domain validity filter")
	validityRetries := fs.Int("validity-retries", 0, "regeneration attempts per invalid child (0 uses the default)")
	iterations := fs.Int("iterations", 0, "tabu iteration count (0 uses the default)")
	neighbourhoodSize := fs.Int("neighbourhood", 0, "tabu neighbourhood size (0 uses the default)")
	tabuLength := fs.Int("tabu-length", 0, "tabu memory capacity (0 uses the default)")
	aspirationMargin := fs.Float64("aspiration-margin", 0, "tabu aspiration margin (0 uses the default)")
	reheatInterval := fs.Int("reheat-interval", 0, "tabu reheat cadence in iterations (0 uses the default, negative disables)")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "peptideopt.db", "sqlite database path")
	resultsDir := fs.String("results-dir", defaultResultsDir, "run artifacts directory")
	adjacencyPath := fs.String("adjacency", "", "optional contact potential table path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	setFlags := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		setFlags[f.Name] = true
	})

	req, err := loadOrDefaultRunRequest(*configPath)
	if err != nil {
		return err
	}
	if *configPath == "" {
		req = peptideopt.RunRequest{
			RunID:             *runID,
			Engine:            *engine,
			MotifIndex:        *motifIndex,
			BestOfCatalog:     *bestOfCatalog,
			Seed:              *seed,
			Population:        *population,
			Generations:       *generations,
			CrossoverProb:     *crossoverProb,
			MutationProb:      *mutationProb,
			TournamentSize:    *tournamentSize,
			Crossover:         *crossoverName,
			MinLength:         *minLength,
			MaxLength:         *maxLength,
			Strategy:          *strategyName,
			Elitism:           *elitismName,
			DisableValidity:   *noValidity,
			ValidityRetries:   *validityRetries,
			Iterations:        *iterations,
			NeighbourhoodSize: *neighbourhoodSize,
			TabuLength:        *tabuLength,
			AspirationMargin:  *aspirationMargin,
			ReheatInterval:    *reheatInterval,
		}
	} else {
		err := overrideFromFlags(&req, setFlags, map[string]any{
			"run-id":            *runID,
			"engine":            *engine,
			"motif":             *motifIndex,
			"best-of-catalog":   *bestOfCatalog,
			"seed":              *seed,
			"pop":               *population,
			"gens":              *generations,
			"crossover-prob":    *crossoverProb,
			"mutation-prob":     *mutationProb,
			"tournament":        *tournamentSize,
			"crossover":         *crossoverName,
			"min-len":           *minLength,
			"max-len":           *maxLength,
			"strategy":          *strategyName,
			"elitism":           *elitismName,
			"no-validity":       *noValidity,
			"validity-retries":  *validityRetries,
			"iterations":        *iterations,
			"neighbourhood":     *neighbourhoodSize,
			"tabu-length":       *tabuLength,
			"aspiration-margin": *aspirationMargin,
			"reheat-interval":   *reheatInterval,
		})
		if err != nil {
			return err
		}
	}

	client, err := peptideopt.New(peptideopt.Options{
		StoreKind:     *storeKind,
		DBPath:        *dbPath,
		ResultsDir:    *resultsDir,
		AdjacencyPath: *adjacencyPath,
	})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	summary, err := client.Run(ctx, req)
	if err != nil {
		return err
	}
	fmt.Printf("run completed run_id=%s engine=%s motif=%q mode=%s seed=%d\n",
		summary.RunID, summary.Engine, summary.Motif, summary.ScoreMode, req.Seed)
	for i, best := range summary.BestByGeneration {
		fmt.Printf("generation=%d best_fitness=%.6f\n", i+1, best)
	}
	fmt.Printf("best_sequence=%s\n", summary.BestSequence)
	fmt.Printf("best_fitness=%.6f\n", summary.BestFitness)
	fmt.Printf("evaluations=%s\n", humanize.Comma(int64(summary.Evaluations)))
	fmt.Printf("artifacts_dir=%s\n", summary.ArtifactsDir)
	return nil
}

func runCompare(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("compare", flag.ContinueOnError)
	id := fs.String("id", "", "explicit experiment id (optional)")
	motifList := fs.String("motifs", "", "comma-separated catalog indices (empty runs the whole catalog)")
	seed := fs.Int64("seed", 0, "base rng seed; each motif runs with seed+index")
	population := fs.Int("pop", 400, "population size for both engines")
	generations := fs.Int("gens", 200, "generation count for both engines")
	crossoverProb := fs.Float64("crossover-prob", 0, "crossover probability (0 uses the engine defaults)")
	mutationProb := fs.Float64("mutation-prob", 0, "mutation probability (0 uses the engine defaults)")
	tournamentSize := fs.Int("tournament", 0, "baseline tournament size (0 uses the default)")
	workers := fs.Int("workers", 4, "parallel motif workers")
	resultsDir := fs.String("results-dir", defaultResultsDir, "run artifacts directory")
	adjacencyPath := fs.String("adjacency", "", "optional contact potential table path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	motifs, err := parseMotifList(*motifList)
	if err != nil {
		return err
	}

	client, err := peptideopt.New(peptideopt.Options{
		StoreKind:     "memory",
		ResultsDir:    *resultsDir,
		AdjacencyPath: *adjacencyPath,
	})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	summary, err := client.Compare(ctx, peptideopt.CompareRequest{
		ID:             *id,
		Motifs:         motifs,
		Seed:           *seed,
		Population:     *population,
		Generations:    *generations,
		CrossoverProb:  *crossoverProb,
		MutationProb:   *mutationProb,
		TournamentSize: *tournamentSize,
		Workers:        *workers,
	})
	if err != nil {
		return err
	}

	fmt.Printf("compare completed id=%s motifs=%d pop=%d gens=%d seed=%d\n",
		summary.ID, len(summary.Results), *population, *generations, *seed)
	for _, res := range summary.Results {
		fmt.Printf("motif=%d %q winner=%s baseline=%.4f (%.2fs) guided=%.4f (%.2fs)\n",
			res.MotifIndex, res.Motif, res.Winner,
			res.BaselineFitness, res.BaselineSeconds,
			res.GuidedFitness, res.GuidedSeconds)
	}
	fmt.Printf("baseline_wins=%d guided_wins=%d ties=%d\n", summary.BaselineWins, summary.GuidedWins, summary.Ties)
	fmt.Printf("best_overall engine=%s motif=%d fitness=%.4f sequence=%s\n",
		summary.BestOverallEngine, summary.BestOverallMotif, summary.BestOverallFitness, summary.BestOverallSequence)
	fmt.Printf("artifacts_dir=%s\n", summary.ArtifactsDir)
	return nil
}

func runRuns(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("runs", flag.ContinueOnError)
	limit := fs.Int("limit", 20, "max runs to list")
	jsonOut := fs.Bool("json", false, "emit runs list as JSON")
	resultsDir := fs.String("results-dir", defaultResultsDir, "run artifacts directory")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *limit <= 0 {
		return errors.New("limit must be > 0")
	}

	client, err := peptideopt.New(peptideopt.Options{StoreKind: "memory", ResultsDir: *resultsDir})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	runs, err := client.Runs(ctx, peptideopt.RunsRequest{Limit: *limit})
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}
	if *jsonOut {
		type runsItem struct {
			RunID            string  `json:"run_id"`
			CreatedAtUTC     string  `json:"created_at_utc"`
			Engine           string  `json:"engine"`
			MotifIndex       int     `json:"motif_index"`
			Motif            string  `json:"motif"`
			ScoreMode        string  `json:"score_mode"`
			Seed             int64   `json:"seed"`
			FinalBestFitness float64 `json:"final_best_fitness"`
		}
		items := make([]runsItem, 0, len(runs))
		for _, e := range runs {
			items = append(items, runsItem{
				RunID:            e.RunID,
				CreatedAtUTC:     e.CreatedAtUTC,
				Engine:           e.Engine,
				MotifIndex:       e.MotifIndex,
				Motif:            e.Motif,
				ScoreMode:        e.ScoreMode,
				Seed:             e.Seed,
				FinalBestFitness: e.FinalBestFitness,
			})
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(items)
	}
	for _, e := range runs {
		fmt.Printf("run_id=%s created_at=%s engine=%s motif=%d %q mode=%s seed=%d final_best_fitness=%.6f\n",
			e.RunID, e.CreatedAtUTC, e.Engine, e.MotifIndex, e.Motif, e.ScoreMode, e.Seed, e.FinalBestFitness)
	}
	return nil
}

func runShow(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("show", flag.ContinueOnError)
	runID := fs.String("run-id", "", "run id")
	latest := fs.Bool("latest", false, "show the most recent run from the run index")
	limit := fs.Int("limit", 20, "max progress/trace rows to print (<=0 for all)")
	jsonOut := fs.Bool("json", false, "emit run detail as JSON")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "peptideopt.db", "sqlite database path")
	resultsDir := fs.String("results-dir", defaultResultsDir, "run artifacts directory")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *runID != "" && *latest {
		return errors.New("use either --run-id or --latest, not both")
	}
	if *runID == "" && !*latest {
		return errors.New("show requires --run-id or --latest")
	}

	client, err := peptideopt.New(peptideopt.Options{
		StoreKind:  *storeKind,
		DBPath:     *dbPath,
		ResultsDir: *resultsDir,
	})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	detail, err := client.Show(ctx, peptideopt.ShowRequest{RunID: *runID, Latest: *latest})
	if err != nil {
		return err
	}
	if *jsonOut {
		payload := struct {
			Record   model.RunRecord         `json:"record"`
			Progress []model.GenerationStats `json:"progress,omitempty"`
			Trace    []model.TracePoint      `json:"trace,omitempty"`
		}{detail.Record, detail.Progress, detail.Trace}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	}

	rec := detail.Record
	fmt.Printf("run_id=%s engine=%s motif=%d %q mode=%s seed=%d created_at=%s\n",
		rec.RunID, rec.Engine, rec.MotifIndex, rec.Motif, rec.ScoreMode, rec.Seed, rec.CreatedAtUTC)
	fmt.Printf("best_sequence=%s best_fitness=%.6f evaluations=%s\n",
		rec.BestSequence, rec.BestFitness, humanize.Comma(int64(rec.Evaluations)))

	progress := detail.Progress
	if *limit > 0 && len(progress) > *limit {
		progress = progress[:*limit]
	}
	for _, g := range progress {
		fmt.Printf("generation=%d min=%.6f mean=%.6f max=%.6f\n", g.Generation, g.Min, g.Mean, g.Max)
	}
	trace := detail.Trace
	if *limit > 0 && len(trace) > *limit {
		trace = trace[:*limit]
	}
	for _, p := range trace {
		fmt.Printf("iteration=%d best_fitness=%.6f\n", p.Iteration, p.BestFitness)
	}
	return nil
}

func runExperiments(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("experiments", flag.ContinueOnError)
	limit := fs.Int("limit", 20, "max experiments to list")
	jsonOut := fs.Bool("json", false, "emit experiments list as JSON")
	resultsDir := fs.String("results-dir", defaultResultsDir, "run artifacts directory")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *limit <= 0 {
		return errors.New("limit must be > 0")
	}

	client, err := peptideopt.New(peptideopt.Options{StoreKind: "memory", ResultsDir: *resultsDir})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	items, err := client.Experiments(ctx, peptideopt.ExperimentsRequest{Limit: *limit})
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Println("no experiments found")
		return nil
	}
	if *jsonOut {
		type experimentsItem struct {
			ID                 string  `json:"id"`
			StartedAtUTC       string  `json:"started_at_utc"`
			Seed               int64   `json:"seed"`
			Population         int     `json:"population"`
			Generations        int     `json:"generations"`
			Motifs             int     `json:"motifs"`
			BaselineWins       int     `json:"baseline_wins"`
			GuidedWins         int     `json:"guided_wins"`
			Ties               int     `json:"ties"`
			BestOverallEngine  string  `json:"best_overall_engine"`
			BestOverallFitness float64 `json:"best_overall_fitness"`
		}
		out := make([]experimentsItem, 0, len(items))
		for _, item := range items {
			out = append(out, experimentsItem{
				ID:                 item.ID,
				StartedAtUTC:       item.StartedAtUTC,
				Seed:               item.Seed,
				Population:         item.Population,
				Generations:        item.Generations,
				Motifs:             item.Motifs,
				BaselineWins:       item.BaselineWins,
				GuidedWins:         item.GuidedWins,
				Ties:               item.Ties,
				BestOverallEngine:  item.BestOverallEngine,
				BestOverallFitness: item.BestOverallFitness,
			})
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}
	for _, item := range items {
		fmt.Printf("id=%s started_at=%s motifs=%d pop=%d gens=%d seed=%d baseline_wins=%d guided_wins=%d ties=%d best_overall=%s fitness=%.4f\n",
			item.ID, item.StartedAtUTC, item.Motifs, item.Population, item.Generations, item.Seed,
			item.BaselineWins, item.GuidedWins, item.Ties, item.BestOverallEngine, item.BestOverallFitness)
	}
	return nil
}

func runMotifs(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("motifs", flag.ContinueOnError)
	jsonOut := fs.Bool("json", false, "emit motif catalog as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := peptideopt.New(peptideopt.Options{StoreKind: "memory"})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	motifs := client.Motifs(ctx)
	if *jsonOut {
		type motifsItem struct {
			Index  int    `json:"index"`
			Motif  string `json:"motif"`
			Length int    `json:"length"`
		}
		items := make([]motifsItem, 0, len(motifs))
		for _, m := range motifs {
			items = append(items, motifsItem{Index: m.Index, Motif: m.Motif, Length: m.Length})
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(items)
	}
	for _, m := range motifs {
		fmt.Printf("index=%d motif=%s length=%d\n", m.Index, m.Motif, m.Length)
	}
	return nil
}

func runScore(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("score", flag.ContinueOnError)
	sequence := fs.String("seq", "", "amino-acid sequence to score")
	motifIndex := fs.Int("motif", 0, "catalog motif index")
	bestOfCatalog := fs.Bool("best-of-catalog", false, "score against the best-fitting catalog motif")
	adjacencyPath := fs.String("adjacency", "", "optional contact potential table path")
	jsonOut := fs.Bool("json", false, "emit score summary as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *sequence == "" {
		return errors.New("score requires --seq")
	}

	client, err := peptideopt.New(peptideopt.Options{StoreKind: "memory", AdjacencyPath: *adjacencyPath})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	score, err := client.Score(ctx, peptideopt.ScoreRequest{
		Sequence:      *sequence,
		MotifIndex:    *motifIndex,
		BestOfCatalog: *bestOfCatalog,
	})
	if err != nil {
		return err
	}
	if *jsonOut {
		payload := struct {
			Sequence   string  `json:"sequence"`
			Length     int     `json:"length"`
			MotifIndex int     `json:"motif_index"`
			Motif      string  `json:"motif"`
			ScoreMode  string  `json:"score_mode"`
			Energy     float64 `json:"energy"`
			Valid      bool    `json:"valid"`
		}{score.Sequence, score.Length, score.MotifIndex, score.Motif, score.ScoreMode, score.Energy, score.Valid}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	}
	fmt.Printf("sequence=%s length=%d motif=%q mode=%s energy=%.4f valid=%t\n",
		score.Sequence, score.Length, score.Motif, score.ScoreMode, score.Energy, score.Valid)
	return nil
}

func parseMotifList(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, part := range parts {
		idx, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid motif index %q", part)
		}
		out = append(out, idx)
	}
	return out, nil
}

func usageError(msg string) error {
	return fmt.Errorf("%s\nusage: peptidectl <init|run|compare|runs|show|experiments|motifs|score> [flags]", msg)
}
