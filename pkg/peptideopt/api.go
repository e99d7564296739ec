package peptideopt

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Adidadi0112/peptide-opt/internal/model"
	"github.com/Adidadi0112/peptide-opt/internal/peptide"
	"github.com/Adidadi0112/peptide-opt/internal/search"
	"github.com/Adidadi0112/peptide-opt/internal/stats"
	"github.com/Adidadi0112/peptide-opt/internal/storage"
)

const (
	defaultResultsDir = "results"
	defaultDBPath     = "peptideopt.db"
)

type Options struct {
	StoreKind     string
	DBPath        string
	ResultsDir    string
	AdjacencyPath string
}

type Client struct {
	store      storage.Store
	storeReady bool

	resultsDir    string
	adjacencyPath string
	provider      peptide.Provider
}

type RunRequest struct {
	RunID         string
	Engine        string
	MotifIndex    int
	BestOfCatalog bool
	Seed          int64

	Population      int
	Generations     int
	CrossoverProb   float64
	MutationProb    float64
	TournamentSize  int
	Crossover       string
	MinLength       int
	MaxLength       int
	Strategy        string
	Elitism         string
	DisableValidity bool
	ValidityRetries int

	Iterations        int
	NeighbourhoodSize int
	TabuLength        int
	AspirationMargin  float64
	ReheatInterval    int
}

type RunSummary struct {
	RunID            string
	Engine           string
	MotifIndex       int
	Motif            string
	ScoreMode        string
	ArtifactsDir     string
	BestSequence     string
	BestFitness      float64
	BestByGeneration []float64
	Evaluations      int
}

type CompareRequest struct {
	ID             string
	Motifs         []int
	Seed           int64
	Population     int
	Generations    int
	CrossoverProb  float64
	MutationProb   float64
	TournamentSize int
	Workers        int
}

type MotifResult struct {
	MotifIndex      int
	Motif           string
	Seed            int64
	BaselineBest    string
	BaselineFitness float64
	BaselineSeconds float64
	GuidedBest      string
	GuidedFitness   float64
	GuidedSeconds   float64
	Winner          string
}

type CompareSummary struct {
	ID                  string
	ArtifactsDir        string
	Results             []MotifResult
	BaselineWins        int
	GuidedWins          int
	Ties                int
	BestOverallEngine   string
	BestOverallMotif    int
	BestOverallFitness  float64
	BestOverallSequence string
}

type RunsRequest struct {
	Limit int
}

type RunItem struct {
	RunID            string
	CreatedAtUTC     string
	Engine           string
	MotifIndex       int
	Motif            string
	ScoreMode        string
	Seed             int64
	FinalBestFitness float64
}

type ShowRequest struct {
	RunID  string
	Latest bool
}

type RunDetail struct {
	Record   model.RunRecord
	Progress []model.GenerationStats
	Trace    []model.TracePoint
}

type ExperimentsRequest struct {
	Limit int
}

type ExperimentItem struct {
	ID                 string
	StartedAtUTC       string
	Seed               int64
	Population         int
	Generations        int
	Motifs             int
	BaselineWins       int
	GuidedWins         int
	Ties               int
	BestOverallEngine  string
	BestOverallFitness float64
}

type ExperimentRequest struct {
	ID     string
	Latest bool
}

type MotifInfo struct {
	Index  int
	Motif  string
	Length int
}

type ScoreRequest struct {
	Sequence      string
	MotifIndex    int
	BestOfCatalog bool
}

type ScoreSummary struct {
	Sequence   string
	Length     int
	MotifIndex int
	Motif      string
	ScoreMode  string
	Energy     float64
	Valid      bool
}

func New(opts Options) (*Client, error) {
	storeKind := opts.StoreKind
	if storeKind == "" {
		storeKind = storage.DefaultStoreKind()
	}
	dbPath := opts.DBPath
	if dbPath == "" {
		dbPath = defaultDBPath
	}
	resultsDir := opts.ResultsDir
	if resultsDir == "" {
		resultsDir = defaultResultsDir
	}

	var provider peptide.Provider
	if opts.AdjacencyPath != "" {
		table, err := peptide.LoadAdjacencyTable(opts.AdjacencyPath)
		if err != nil {
			return nil, err
		}
		provider = peptide.ProviderWithAdjacency(table)
	}

	store, err := storage.NewStore(storeKind, dbPath)
	if err != nil {
		return nil, err
	}

	return &Client{
		store:         store,
		resultsDir:    resultsDir,
		adjacencyPath: opts.AdjacencyPath,
		provider:      provider,
	}, nil
}

func (c *Client) Close() error {
	return storage.CloseIfSupported(c.store)
}

func (c *Client) Init(ctx context.Context) error {
	return c.ensureStore(ctx)
}

func (c *Client) Run(ctx context.Context, req RunRequest) (RunSummary, error) {
	if req.Engine == "" {
		req.Engine = "ga"
	}
	if err := ctx.Err(); err != nil {
		return RunSummary{}, err
	}

	mode := peptide.ScoreAgainstMotif
	if req.BestOfCatalog {
		mode = peptide.ScoreBestOfCatalog
	}
	scorer, err := peptide.NewScorer(mode, req.MotifIndex, c.provider)
	if err != nil {
		return RunSummary{}, err
	}
	problem, err := peptide.NewProblem(scorer)
	if err != nil {
		return RunSummary{}, err
	}
	motif := peptide.Format(scorer.Motif())

	now := time.Now().UTC()
	runID := req.RunID
	if runID == "" {
		runID = fmt.Sprintf("%s-m%d-%d-%d", req.Engine, req.MotifIndex, req.Seed, now.Unix())
	}

	cfgRec := stats.RunConfig{
		RunID:         runID,
		Engine:        req.Engine,
		MotifIndex:    req.MotifIndex,
		Motif:         motif,
		ScoreMode:     scorer.Mode().String(),
		Seed:          req.Seed,
		AdjacencyPath: c.adjacencyPath,
	}

	var (
		best        model.Sequence
		bestFitness float64
		evaluations int
		progress    []model.GenerationStats
		trace       []model.TracePoint
	)

	switch req.Engine {
	case "tabu":
		cfg := search.DefaultTabuConfig()
		if req.Iterations > 0 {
			cfg.Iterations = req.Iterations
		}
		if req.NeighbourhoodSize > 0 {
			cfg.NeighbourhoodSize = req.NeighbourhoodSize
		}
		if req.TabuLength > 0 {
			cfg.TabuLength = req.TabuLength
		}
		if req.AspirationMargin > 0 {
			cfg.AspirationMargin = req.AspirationMargin
		}
		if req.ReheatInterval > 0 {
			cfg.ReheatInterval = req.ReheatInterval
		}
		if req.ReheatInterval < 0 {
			cfg.ReheatInterval = 0
		}
		engine, err := search.NewTabuSearch(problem, cfg)
		if err != nil {
			return RunSummary{}, err
		}
		result := engine.Run(req.Seed)
		best = result.Best
		bestFitness = result.BestFitness
		evaluations = result.Evaluations
		trace = result.Trace
		cfgRec.Iterations = cfg.Iterations
		cfgRec.NeighbourhoodSize = cfg.NeighbourhoodSize
		cfgRec.TabuLength = cfg.TabuLength
		cfgRec.AspirationMargin = cfg.AspirationMargin
		cfgRec.ReheatInterval = cfg.ReheatInterval
	case "ga":
		cfg := search.DefaultGeneticConfig()
		if req.Population > 0 {
			cfg.PopulationSize = req.Population
		}
		if req.Generations > 0 {
			cfg.Generations = req.Generations
		}
		if req.CrossoverProb > 0 {
			cfg.CrossoverProb = req.CrossoverProb
		}
		if req.MutationProb > 0 {
			cfg.MutationProb = req.MutationProb
		}
		if req.TournamentSize > 0 {
			cfg.TournamentSize = req.TournamentSize
		}
		if req.MinLength > 0 {
			cfg.MinLength = req.MinLength
		}
		if req.MaxLength > 0 {
			cfg.MaxLength = req.MaxLength
		}
		crossover, err := search.CrossoverFromName(req.Crossover)
		if err != nil {
			return RunSummary{}, err
		}
		cfg.Crossover = crossover
		engine, err := search.NewGeneticAlgorithm(problem, cfg)
		if err != nil {
			return RunSummary{}, err
		}
		result := engine.Run(req.Seed)
		best = result.Best
		bestFitness = result.BestFitness
		evaluations = result.Evaluations
		progress = result.Progress
		cfgRec.PopulationSize = cfg.PopulationSize
		cfgRec.Generations = cfg.Generations
		cfgRec.CrossoverProb = cfg.CrossoverProb
		cfgRec.MutationProb = cfg.MutationProb
		cfgRec.TournamentSize = cfg.TournamentSize
		cfgRec.Crossover = cfg.Crossover.String()
		cfgRec.MinLength = cfg.MinLength
		cfgRec.MaxLength = cfg.MaxLength
	case "nga":
		cfg := search.DefaultNeighbourConfig()
		if req.Population > 0 {
			cfg.PopulationSize = req.Population
		}
		if req.Generations > 0 {
			cfg.Generations = req.Generations
		}
		if req.CrossoverProb > 0 {
			cfg.CrossoverProb = req.CrossoverProb
		}
		if req.MutationProb > 0 {
			cfg.MutationProb = req.MutationProb
		}
		if req.ValidityRetries > 0 {
			cfg.ValidityRetries = req.ValidityRetries
		}
		strategy, err := search.NeighbourStrategyFromName(req.Strategy)
		if err != nil {
			return RunSummary{}, err
		}
		cfg.Strategy = strategy
		elitism, err := search.ElitismPolicyFromName(req.Elitism)
		if err != nil {
			return RunSummary{}, err
		}
		cfg.Elitism = elitism
		if !req.DisableValidity {
			cfg.Validity = peptide.Valid
		}
		engine, err := search.NewNeighbourGA(problem, cfg)
		if err != nil {
			return RunSummary{}, err
		}
		result, err := engine.Run(req.Seed)
		if err != nil {
			return RunSummary{}, err
		}
		best = result.Best
		bestFitness = result.BestFitness
		evaluations = result.Evaluations
		progress = result.Progress
		cfgRec.PopulationSize = cfg.PopulationSize
		cfgRec.Generations = cfg.Generations
		cfgRec.CrossoverProb = cfg.CrossoverProb
		cfgRec.MutationProb = cfg.MutationProb
		cfgRec.Strategy = cfg.Strategy.String()
		cfgRec.Elitism = cfg.Elitism.String()
		if cfg.Validity != nil {
			cfgRec.ValidityRetries = cfg.ValidityRetries
		}
	default:
		return RunSummary{}, fmt.Errorf("unsupported engine: %s", req.Engine)
	}

	bestSequence := peptide.Format(best)
	bestByGeneration := make([]float64, 0, len(progress))
	for _, g := range progress {
		bestByGeneration = append(bestByGeneration, g.Min)
	}

	if err := c.ensureStore(ctx); err != nil {
		return RunSummary{}, err
	}
	record := model.RunRecord{
		VersionedRecord: model.VersionedRecord{
			SchemaVersion: storage.CurrentSchemaVersion,
			CodecVersion:  storage.CurrentCodecVersion,
		},
		RunID:        runID,
		Engine:       req.Engine,
		Problem:      problem.Name(),
		MotifIndex:   req.MotifIndex,
		Motif:        motif,
		ScoreMode:    scorer.Mode().String(),
		Seed:         req.Seed,
		Population:   cfgRec.PopulationSize,
		Generations:  cfgRec.Generations,
		Iterations:   cfgRec.Iterations,
		BestSequence: bestSequence,
		BestFitness:  bestFitness,
		Evaluations:  evaluations,
		CreatedAtUTC: now.Format(time.RFC3339Nano),
	}
	if err := c.store.SaveRun(ctx, record); err != nil {
		return RunSummary{}, err
	}
	if len(progress) > 0 {
		if err := c.store.SaveProgress(ctx, runID, progress); err != nil {
			return RunSummary{}, err
		}
	}
	if len(trace) > 0 {
		if err := c.store.SaveTrace(ctx, runID, trace); err != nil {
			return RunSummary{}, err
		}
	}

	runDir, err := stats.WriteRunArtifacts(c.resultsDir, stats.RunArtifacts{
		Config:           cfgRec,
		Progress:         progress,
		Trace:            trace,
		BestByGeneration: bestByGeneration,
		BestSequence:     bestSequence,
		FinalBestFitness: bestFitness,
		Evaluations:      evaluations,
	})
	if err != nil {
		return RunSummary{}, err
	}
	if err := stats.AppendRunIndex(c.resultsDir, stats.RunIndexEntry{
		RunID:            runID,
		Engine:           req.Engine,
		MotifIndex:       req.MotifIndex,
		Motif:            motif,
		ScoreMode:        scorer.Mode().String(),
		Seed:             req.Seed,
		FinalBestFitness: bestFitness,
		CreatedAtUTC:     now.Format(time.RFC3339Nano),
	}); err != nil {
		return RunSummary{}, err
	}

	return RunSummary{
		RunID:            runID,
		Engine:           req.Engine,
		MotifIndex:       req.MotifIndex,
		Motif:            motif,
		ScoreMode:        scorer.Mode().String(),
		ArtifactsDir:     filepath.Clean(runDir),
		BestSequence:     bestSequence,
		BestFitness:      bestFitness,
		BestByGeneration: bestByGeneration,
		Evaluations:      evaluations,
	}, nil
}

func (c *Client) Compare(ctx context.Context, req CompareRequest) (CompareSummary, error) {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	if req.Population <= 0 {
		req.Population = 400
	}
	if req.Generations <= 0 {
		req.Generations = 200
	}
	if req.CrossoverProb <= 0 {
		req.CrossoverProb = 0.9
	}
	if req.TournamentSize <= 0 {
		req.TournamentSize = 3
	}
	if req.Workers <= 0 {
		req.Workers = 4
	}
	baselineMutation := req.MutationProb
	if baselineMutation <= 0 {
		baselineMutation = search.DefaultGeneticConfig().MutationProb
	}
	guidedMutation := req.MutationProb
	if guidedMutation <= 0 {
		guidedMutation = search.DefaultNeighbourConfig().MutationProb
	}

	motifs := append([]int(nil), req.Motifs...)
	if len(motifs) == 0 {
		motifs = make([]int, len(peptide.Motifs))
		for i := range motifs {
			motifs[i] = i
		}
	}
	for _, idx := range motifs {
		if idx < 0 || idx >= len(peptide.Motifs) {
			return CompareSummary{}, fmt.Errorf("motif index %d out of range [0, %d)", idx, len(peptide.Motifs))
		}
	}

	started := time.Now().UTC()

	type job struct {
		idx   int
		motif int
	}
	type result struct {
		idx        int
		comparison stats.MotifComparison
		err        error
	}

	jobs := make(chan job)
	results := make(chan result, len(motifs))

	workerCount := req.Workers
	if workerCount > len(motifs) {
		workerCount = len(motifs)
	}

	var wg sync.WaitGroup
	wg.Add(workerCount)
	for w := 0; w < workerCount; w++ {
		go func() {
			defer wg.Done()
			for j := range jobs {
				if err := ctx.Err(); err != nil {
					results <- result{idx: j.idx, err: err}
					continue
				}
				comparison, err := c.compareMotif(j.motif, req, baselineMutation, guidedMutation)
				results <- result{idx: j.idx, comparison: comparison, err: err}
			}
		}()
	}

	for i, m := range motifs {
		jobs <- job{idx: i, motif: m}
	}
	close(jobs)

	wg.Wait()
	close(results)

	comparisons := make([]stats.MotifComparison, len(motifs))
	for res := range results {
		if res.err != nil {
			return CompareSummary{}, res.err
		}
		comparisons[res.idx] = res.comparison
	}

	exp := stats.CompareExperiment{
		ID:             req.ID,
		Seed:           req.Seed,
		PopulationSize: req.Population,
		Generations:    req.Generations,
		StartedAtUTC:   started.Format(time.RFC3339Nano),
		Comparisons:    comparisons,
	}
	for _, cmp := range comparisons {
		switch cmp.Winner {
		case "baseline":
			exp.BaselineWins++
		case "guided":
			exp.GuidedWins++
		default:
			exp.Ties++
		}
		if exp.BestOverallEngine == "" || cmp.BaselineFitness < exp.BestOverallFitness {
			exp.BestOverallEngine = "baseline"
			exp.BestOverallMotif = cmp.MotifIndex
			exp.BestOverallFitness = cmp.BaselineFitness
			exp.BestOverallSequence = cmp.BaselineBest
		}
		if cmp.GuidedFitness < exp.BestOverallFitness {
			exp.BestOverallEngine = "guided"
			exp.BestOverallMotif = cmp.MotifIndex
			exp.BestOverallFitness = cmp.GuidedFitness
			exp.BestOverallSequence = cmp.GuidedBest
		}
	}
	exp.CompletedAtUTC = time.Now().UTC().Format(time.RFC3339Nano)

	if err := stats.WriteCompareExperiment(c.resultsDir, exp); err != nil {
		return CompareSummary{}, err
	}

	summary := compareSummaryFromExperiment(c.resultsDir, exp)
	return summary, nil
}

func (c *Client) compareMotif(motifIndex int, req CompareRequest, baselineMutation, guidedMutation float64) (stats.MotifComparison, error) {
	scorer, err := peptide.NewScorer(peptide.ScoreAgainstMotif, motifIndex, c.provider)
	if err != nil {
		return stats.MotifComparison{}, err
	}
	problem, err := peptide.NewProblem(scorer)
	if err != nil {
		return stats.MotifComparison{}, err
	}
	seed := req.Seed + int64(motifIndex)

	baselineCfg := search.DefaultGeneticConfig()
	baselineCfg.PopulationSize = req.Population
	baselineCfg.Generations = req.Generations
	baselineCfg.CrossoverProb = req.CrossoverProb
	baselineCfg.MutationProb = baselineMutation
	baselineCfg.TournamentSize = req.TournamentSize
	baselineEngine, err := search.NewGeneticAlgorithm(problem, baselineCfg)
	if err != nil {
		return stats.MotifComparison{}, err
	}
	start := time.Now()
	baseline := baselineEngine.Run(seed)
	baselineSeconds := time.Since(start).Seconds()

	guidedCfg := search.DefaultNeighbourConfig()
	guidedCfg.PopulationSize = req.Population
	guidedCfg.Generations = req.Generations
	guidedCfg.CrossoverProb = req.CrossoverProb
	guidedCfg.MutationProb = guidedMutation
	guidedCfg.Validity = peptide.Valid
	guidedEngine, err := search.NewNeighbourGA(problem, guidedCfg)
	if err != nil {
		return stats.MotifComparison{}, err
	}
	start = time.Now()
	guided, err := guidedEngine.Run(seed)
	if err != nil {
		return stats.MotifComparison{}, err
	}
	guidedSeconds := time.Since(start).Seconds()

	winner := "tie"
	switch {
	case guided.BestFitness < baseline.BestFitness:
		winner = "guided"
	case baseline.BestFitness < guided.BestFitness:
		winner = "baseline"
	}

	return stats.MotifComparison{
		MotifIndex:      motifIndex,
		Motif:           peptide.Motifs[motifIndex],
		Seed:            seed,
		BaselineBest:    peptide.Format(baseline.Best),
		BaselineFitness: baseline.BestFitness,
		BaselineSeconds: baselineSeconds,
		GuidedBest:      peptide.Format(guided.Best),
		GuidedFitness:   guided.BestFitness,
		GuidedSeconds:   guidedSeconds,
		Winner:          winner,
	}, nil
}

func (c *Client) Runs(_ context.Context, req RunsRequest) ([]RunItem, error) {
	if req.Limit <= 0 {
		req.Limit = 20
	}

	entries, err := stats.ListRunIndex(c.resultsDir)
	if err != nil {
		return nil, err
	}
	if len(entries) > req.Limit {
		entries = entries[:req.Limit]
	}

	out := make([]RunItem, 0, len(entries))
	for _, e := range entries {
		out = append(out, RunItem{
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
	return out, nil
}

func (c *Client) Show(ctx context.Context, req ShowRequest) (RunDetail, error) {
	if req.RunID != "" && req.Latest {
		return RunDetail{}, errors.New("use either run id or latest")
	}

	runID := req.RunID
	if req.Latest {
		entries, err := stats.ListRunIndex(c.resultsDir)
		if err != nil {
			return RunDetail{}, err
		}
		if len(entries) == 0 {
			return RunDetail{}, errors.New("no runs available")
		}
		runID = entries[0].RunID
	}
	if runID == "" {
		return RunDetail{}, errors.New("show requires run id or latest")
	}

	if err := c.ensureStore(ctx); err != nil {
		return RunDetail{}, err
	}
	record, ok, err := c.store.GetRun(ctx, runID)
	if err != nil {
		return RunDetail{}, err
	}
	if !ok {
		return RunDetail{}, fmt.Errorf("run not found for run id: %s", runID)
	}

	detail := RunDetail{Record: record}
	progress, ok, err := c.store.GetProgress(ctx, runID)
	if err != nil {
		return RunDetail{}, err
	}
	if ok {
		detail.Progress = progress
	}
	trace, ok, err := c.store.GetTrace(ctx, runID)
	if err != nil {
		return RunDetail{}, err
	}
	if ok {
		detail.Trace = trace
	}
	return detail, nil
}

func (c *Client) Experiments(_ context.Context, req ExperimentsRequest) ([]ExperimentItem, error) {
	if req.Limit <= 0 {
		req.Limit = 20
	}

	exps, err := stats.ListCompareExperiments(c.resultsDir)
	if err != nil {
		return nil, err
	}
	if len(exps) > req.Limit {
		exps = exps[:req.Limit]
	}

	out := make([]ExperimentItem, 0, len(exps))
	for _, exp := range exps {
		out = append(out, ExperimentItem{
			ID:                 exp.ID,
			StartedAtUTC:       exp.StartedAtUTC,
			Seed:               exp.Seed,
			Population:         exp.PopulationSize,
			Generations:        exp.Generations,
			Motifs:             len(exp.Comparisons),
			BaselineWins:       exp.BaselineWins,
			GuidedWins:         exp.GuidedWins,
			Ties:               exp.Ties,
			BestOverallEngine:  exp.BestOverallEngine,
			BestOverallFitness: exp.BestOverallFitness,
		})
	}
	return out, nil
}

func (c *Client) Experiment(_ context.Context, req ExperimentRequest) (CompareSummary, error) {
	if req.ID != "" && req.Latest {
		return CompareSummary{}, errors.New("use either experiment id or latest")
	}

	id := req.ID
	if req.Latest {
		exps, err := stats.ListCompareExperiments(c.resultsDir)
		if err != nil {
			return CompareSummary{}, err
		}
		if len(exps) == 0 {
			return CompareSummary{}, errors.New("no experiments available")
		}
		id = exps[0].ID
	}
	if id == "" {
		return CompareSummary{}, errors.New("experiment requires id or latest")
	}

	exp, ok, err := stats.ReadCompareExperiment(c.resultsDir, id)
	if err != nil {
		return CompareSummary{}, err
	}
	if !ok {
		return CompareSummary{}, fmt.Errorf("experiment not found: %s", id)
	}
	return compareSummaryFromExperiment(c.resultsDir, exp), nil
}

func (c *Client) Motifs(_ context.Context) []MotifInfo {
	out := make([]MotifInfo, 0, len(peptide.Motifs))
	for i, m := range peptide.Motifs {
		out = append(out, MotifInfo{Index: i, Motif: m, Length: len(m)})
	}
	return out
}

func (c *Client) Score(_ context.Context, req ScoreRequest) (ScoreSummary, error) {
	if req.Sequence == "" {
		return ScoreSummary{}, errors.New("sequence is required")
	}
	seq, err := peptide.Parse(req.Sequence)
	if err != nil {
		return ScoreSummary{}, err
	}
	mode := peptide.ScoreAgainstMotif
	if req.BestOfCatalog {
		mode = peptide.ScoreBestOfCatalog
	}
	scorer, err := peptide.NewScorer(mode, req.MotifIndex, c.provider)
	if err != nil {
		return ScoreSummary{}, err
	}
	return ScoreSummary{
		Sequence:   peptide.Format(seq),
		Length:     len(seq),
		MotifIndex: req.MotifIndex,
		Motif:      peptide.Format(scorer.Motif()),
		ScoreMode:  scorer.Mode().String(),
		Energy:     scorer.Energy(seq),
		Valid:      peptide.Valid(seq),
	}, nil
}

func (c *Client) ensureStore(ctx context.Context) error {
	if c.storeReady {
		return nil
	}
	if err := c.store.Init(ctx); err != nil {
		return err
	}
	c.storeReady = true
	return nil
}

func compareSummaryFromExperiment(resultsDir string, exp stats.CompareExperiment) CompareSummary {
	results := make([]MotifResult, 0, len(exp.Comparisons))
	for _, cmp := range exp.Comparisons {
		results = append(results, MotifResult{
			MotifIndex:      cmp.MotifIndex,
			Motif:           cmp.Motif,
			Seed:            cmp.Seed,
			BaselineBest:    cmp.BaselineBest,
			BaselineFitness: cmp.BaselineFitness,
			BaselineSeconds: cmp.BaselineSeconds,
			GuidedBest:      cmp.GuidedBest,
			GuidedFitness:   cmp.GuidedFitness,
			GuidedSeconds:   cmp.GuidedSeconds,
			Winner:          cmp.Winner,
		})
	}
	return CompareSummary{
		ID:                  exp.ID,
		ArtifactsDir:        filepath.Clean(stats.CompareExperimentDir(resultsDir, exp.ID)),
		Results:             results,
		BaselineWins:        exp.BaselineWins,
		GuidedWins:          exp.GuidedWins,
		Ties:                exp.Ties,
		BestOverallEngine:   exp.BestOverallEngine,
		BestOverallMotif:    exp.BestOverallMotif,
		BestOverallFitness:  exp.BestOverallFitness,
		BestOverallSequence: exp.BestOverallSequence,
	}
}
