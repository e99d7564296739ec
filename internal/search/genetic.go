package search

import (
	"fmt"
	"math/rand"

	"github.com/Adidadi0112/peptide-opt/internal/model"
)

// Default draw weights of the baseline mutation table.
const (
	defaultSubstituteWeight = 0.35
	defaultInsertWeight     = 0.20
	defaultDeleteWeight     = 0.20
	defaultSwapWeight       = 0.25
)

// GeneticConfig parameterises a GeneticAlgorithm.
type GeneticConfig struct {
	PopulationSize int
	Generations    int
	// CrossoverProb is the chance a child is recombined from both parents
	// rather than copied from the first.
	CrossoverProb float64
	// MutationProb is the chance a freshly bred child is mutated once.
	MutationProb   float64
	TournamentSize int
	Crossover      Crossover
	// MinLength and MaxLength bound the lengths reachable through the
	// default mutation table.
	MinLength int
	MaxLength int
	// Mutations overrides the default weighted operator table when set.
	Mutations []WeightedMutation
}

// DefaultGeneticConfig returns the stock baseline parameters.
func DefaultGeneticConfig() GeneticConfig {
	return GeneticConfig{
		PopulationSize: 400,
		Generations:    200,
		CrossoverProb:  0.9,
		MutationProb:   0.3,
		TournamentSize: 3,
		Crossover:      CrossoverSinglePoint,
		MinLength:      8,
		MaxLength:      16,
	}
}

// defaultMutationTable builds the stock operator mix for the given alphabet
// and length bounds.
func defaultMutationTable(alphabet, minLength, maxLength int) []WeightedMutation {
	return []WeightedMutation{
		{Mutation: SubstituteMutation{Alphabet: alphabet}, Weight: defaultSubstituteWeight},
		{Mutation: InsertMutation{Alphabet: alphabet, MaxLength: maxLength}, Weight: defaultInsertWeight},
		{Mutation: DeleteMutation{MinLength: minLength}, Weight: defaultDeleteWeight},
		{Mutation: SwapMutation{}, Weight: defaultSwapWeight},
	}
}

// GeneticResult is the outcome of one baseline run.
type GeneticResult struct {
	Best        model.Sequence
	BestFitness float64
	Progress    []model.GenerationStats
	Evaluations int
}

// GeneticAlgorithm is the baseline population engine: tournament selection,
// a selectable crossover and one weighted mutation per child.
type GeneticAlgorithm struct {
	problem Problem
	cfg     GeneticConfig
}

// NewGeneticAlgorithm validates cfg and binds the engine to a problem. A nil
// mutation table is replaced with the default one for the problem's alphabet.
func NewGeneticAlgorithm(problem Problem, cfg GeneticConfig) (*GeneticAlgorithm, error) {
	if problem == nil {
		return nil, fmt.Errorf("problem is required")
	}
	if cfg.PopulationSize < 2 {
		return nil, fmt.Errorf("population size must be at least 2, got %d", cfg.PopulationSize)
	}
	if cfg.Generations <= 0 {
		return nil, fmt.Errorf("generations must be positive, got %d", cfg.Generations)
	}
	if cfg.CrossoverProb < 0 || cfg.CrossoverProb > 1 {
		return nil, fmt.Errorf("crossover probability must be in [0, 1], got %v", cfg.CrossoverProb)
	}
	if cfg.MutationProb < 0 || cfg.MutationProb > 1 {
		return nil, fmt.Errorf("mutation probability must be in [0, 1], got %v", cfg.MutationProb)
	}
	if cfg.TournamentSize < 1 {
		return nil, fmt.Errorf("tournament size must be at least 1, got %d", cfg.TournamentSize)
	}
	switch cfg.Crossover {
	case CrossoverSinglePoint, CrossoverUniform:
	default:
		return nil, fmt.Errorf("unknown crossover %d", int(cfg.Crossover))
	}
	if cfg.MinLength < 1 {
		return nil, fmt.Errorf("min length must be at least 1, got %d", cfg.MinLength)
	}
	if cfg.MaxLength < cfg.MinLength {
		return nil, fmt.Errorf("max length %d below min length %d", cfg.MaxLength, cfg.MinLength)
	}
	if cfg.Mutations == nil {
		cfg.Mutations = defaultMutationTable(problem.AlphabetSize(), cfg.MinLength, cfg.MaxLength)
	}
	total := 0.0
	for i, wm := range cfg.Mutations {
		if wm.Mutation == nil {
			return nil, fmt.Errorf("mutation %d is nil", i)
		}
		if wm.Weight < 0 {
			return nil, fmt.Errorf("mutation %q has negative weight %v", wm.Mutation.Name(), wm.Weight)
		}
		total += wm.Weight
	}
	if total <= 0 {
		return nil, fmt.Errorf("mutation weights must sum to a positive value")
	}
	return &GeneticAlgorithm{problem: problem, cfg: cfg}, nil
}

// Run executes the search from the given seed. Same seed, same problem,
// same result.
func (g *GeneticAlgorithm) Run(seed int64) GeneticResult {
	rng := rand.New(rand.NewSource(seed))

	evals := 0
	fitness := func(seq model.Sequence) float64 {
		evals++
		return g.problem.Fitness(seq)
	}

	pop := make([]model.Sequence, g.cfg.PopulationSize)
	fits := make([]float64, g.cfg.PopulationSize)
	for i := range pop {
		pop[i] = g.problem.RandomSequence(rng)
		fits[i] = fitness(pop[i])
	}

	progress := make([]model.GenerationStats, 0, g.cfg.Generations)

	for gen := 0; gen < g.cfg.Generations; gen++ {
		next := make([]model.Sequence, 0, g.cfg.PopulationSize)
		for len(next) < g.cfg.PopulationSize {
			pa := pop[tournament(rng, fits, g.cfg.TournamentSize)]
			pb := pop[tournament(rng, fits, g.cfg.TournamentSize)]
			next = append(next, g.breed(rng, pa, pb))
		}

		pop = next
		for i := range pop {
			fits[i] = fitness(pop[i])
		}
		progress = append(progress, summarize(gen, fits))
	}

	b := bestIndex(fits)
	return GeneticResult{
		Best:        pop[b].Clone(),
		BestFitness: fits[b],
		Progress:    progress,
		Evaluations: evals,
	}
}

// breed produces one child from two parents. The crossover coin is drawn
// whether or not it lands, so runs with different probabilities stay on the
// same stream of draws.
func (g *GeneticAlgorithm) breed(rng *rand.Rand, pa, pb model.Sequence) model.Sequence {
	var child model.Sequence
	if rng.Float64() < g.cfg.CrossoverProb {
		switch g.cfg.Crossover {
		case CrossoverUniform:
			child = uniformChild(rng, pa, pb)
		default:
			child = singlePointCrossover(rng, pa, pb)
		}
	} else {
		child = pa.Clone()
	}

	if rng.Float64() < g.cfg.MutationProb {
		if m, err := chooseMutation(rng, child, g.cfg.Mutations); err == nil {
			child = m.Apply(rng, child)
		}
	}
	return child
}
