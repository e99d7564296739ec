package search

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/Adidadi0112/peptide-opt/internal/model"
)

// ErrValidityUnsatisfiable signals that the validity predicate rejected every
// candidate within the configured retry budget.
var ErrValidityUnsatisfiable = errors.New("validity predicate unsatisfiable within retry budget")

// Hill climbing is gated twice: an entry coin, then a length-dependent one.
// Short sequences climb more often since a full pass over them is cheap.
const (
	neighbourTournamentSize = 3
	hillClimbGateProb       = 0.20
	hillClimbShortLen       = 5
	hillClimbShortProb      = 0.60
	hillClimbLongProb       = 0.20
)

// NeighbourStrategy selects how the guided engine recombines parent pairs.
type NeighbourStrategy int

const (
	// StrategyGuidedFull scores the whole partial child per disputed symbol.
	StrategyGuidedFull NeighbourStrategy = iota
	// StrategyGuidedAdjacent scores only the interaction with the symbol
	// to the left. Requires a problem that implements AdjacencyScorer.
	StrategyGuidedAdjacent
	// StrategyUniform exchanges symbols pairwise on fair coins.
	StrategyUniform
)

func (s NeighbourStrategy) String() string {
	switch s {
	case StrategyGuidedFull:
		return "full"
	case StrategyGuidedAdjacent:
		return "adjacent"
	case StrategyUniform:
		return "uniform"
	default:
		return fmt.Sprintf("strategy(%d)", int(s))
	}
}

// NeighbourStrategyFromName resolves a strategy by name. The empty name
// selects the full guided default.
func NeighbourStrategyFromName(name string) (NeighbourStrategy, error) {
	switch name {
	case "", "full":
		return StrategyGuidedFull, nil
	case "adjacent":
		return StrategyGuidedAdjacent, nil
	case "uniform":
		return StrategyUniform, nil
	default:
		return 0, fmt.Errorf("unknown neighbour strategy %q", name)
	}
}

// ElitismPolicy selects whether the best sequence seen so far is reinserted
// into each new generation.
type ElitismPolicy int

const (
	ElitismBest ElitismPolicy = iota
	ElitismNone
)

func (p ElitismPolicy) String() string {
	switch p {
	case ElitismBest:
		return "elitist"
	case ElitismNone:
		return "none"
	default:
		return fmt.Sprintf("elitism(%d)", int(p))
	}
}

// ElitismPolicyFromName resolves a policy by name. The empty name selects
// the elitist default.
func ElitismPolicyFromName(name string) (ElitismPolicy, error) {
	switch name {
	case "", "elitist":
		return ElitismBest, nil
	case "none":
		return ElitismNone, nil
	default:
		return 0, fmt.Errorf("unknown elitism policy %q", name)
	}
}

// NeighbourConfig parameterises a NeighbourGA.
type NeighbourConfig struct {
	PopulationSize int
	Generations    int
	CrossoverProb  float64
	// MutationProb gates each of the two per-child mutations, a uniform
	// substitution and a range inversion, independently.
	MutationProb float64
	Strategy     NeighbourStrategy
	Elitism      ElitismPolicy
	// Validity filters children after repair. Nil admits everything.
	Validity func(seq model.Sequence) bool
	// ValidityRetries caps how many replacement candidates are drawn for a
	// child the predicate keeps rejecting.
	ValidityRetries int
}

// DefaultNeighbourConfig returns the stock guided-engine parameters.
func DefaultNeighbourConfig() NeighbourConfig {
	return NeighbourConfig{
		PopulationSize:  400,
		Generations:     500,
		CrossoverProb:   0.9,
		MutationProb:    0.25,
		Strategy:        StrategyGuidedFull,
		Elitism:         ElitismBest,
		ValidityRetries: 10000,
	}
}

// NeighbourResult is the outcome of one guided run.
type NeighbourResult struct {
	Best        model.Sequence
	BestFitness float64
	Progress    []model.GenerationStats
	Evaluations int
}

// NeighbourGA is the guided population engine: fitness-informed crossover,
// paired mutations, repair, occasional hill climbing and a validity filter.
type NeighbourGA struct {
	problem   Problem
	adjacency AdjacencyScorer
	cfg       NeighbourConfig
}

// NewNeighbourGA validates cfg and binds the engine to a problem. The
// adjacent strategy additionally requires the problem to expose pairwise
// interaction scores.
func NewNeighbourGA(problem Problem, cfg NeighbourConfig) (*NeighbourGA, error) {
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
	switch cfg.Strategy {
	case StrategyGuidedFull, StrategyGuidedAdjacent, StrategyUniform:
	default:
		return nil, fmt.Errorf("unknown neighbour strategy %d", int(cfg.Strategy))
	}
	switch cfg.Elitism {
	case ElitismBest, ElitismNone:
	default:
		return nil, fmt.Errorf("unknown elitism policy %d", int(cfg.Elitism))
	}
	if cfg.ValidityRetries < 0 {
		return nil, fmt.Errorf("validity retries must be non-negative, got %d", cfg.ValidityRetries)
	}
	if cfg.Validity != nil && cfg.ValidityRetries == 0 {
		return nil, fmt.Errorf("validity retries must be positive when a validity predicate is set")
	}

	g := &NeighbourGA{problem: problem, cfg: cfg}
	if cfg.Strategy == StrategyGuidedAdjacent {
		adj, ok := problem.(AdjacencyScorer)
		if !ok {
			return nil, fmt.Errorf("problem %q does not expose adjacency scores required by the adjacent strategy", problem.Name())
		}
		g.adjacency = adj
	}
	return g, nil
}

// Run executes the search from the given seed. Same seed, same problem,
// same result. It fails only when the validity filter exhausts its retry
// budget on some child.
func (g *NeighbourGA) Run(seed int64) (NeighbourResult, error) {
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

	b := bestIndex(fits)
	bestSeq := pop[b].Clone()
	bestFit := fits[b]

	progress := make([]model.GenerationStats, 0, g.cfg.Generations)

	for gen := 0; gen < g.cfg.Generations; gen++ {
		next := make([]model.Sequence, 0, g.cfg.PopulationSize)
		for len(next) < g.cfg.PopulationSize {
			pa := pop[tournament(rng, fits, neighbourTournamentSize)]
			pb := pop[tournament(rng, fits, neighbourTournamentSize)]

			childA, childB := g.breedPair(rng, pa, pb, fitness)

			g.mutate(rng, childA)
			g.mutate(rng, childB)

			childA = g.problem.Repair(rng, childA)
			childB = g.problem.Repair(rng, childB)

			if g.cfg.Strategy != StrategyUniform {
				childA = g.maybeHillClimb(rng, childA, fitness)
				childB = g.maybeHillClimb(rng, childB, fitness)
			}

			var err error
			if childA, err = g.ensureValid(rng, childA); err != nil {
				return NeighbourResult{}, err
			}
			if childB, err = g.ensureValid(rng, childB); err != nil {
				return NeighbourResult{}, err
			}

			next = append(next, childA)
			if len(next) < g.cfg.PopulationSize {
				next = append(next, childB)
			}
		}

		pop = next
		for i := range pop {
			fits[i] = fitness(pop[i])
		}

		if g.cfg.Elitism == ElitismBest && !containsSequence(pop, bestSeq) {
			slot := rng.Intn(len(pop))
			pop[slot] = bestSeq.Clone()
			fits[slot] = bestFit
		}

		progress = append(progress, summarize(gen, fits))

		if b := bestIndex(fits); fits[b] < bestFit {
			bestFit = fits[b]
			bestSeq = pop[b].Clone()
		}
	}

	b = bestIndex(fits)
	return NeighbourResult{
		Best:        pop[b].Clone(),
		BestFitness: fits[b],
		Progress:    progress,
		Evaluations: evals,
	}, nil
}

// breedPair recombines two parents into two children, or clones them when
// the crossover coin misses.
func (g *NeighbourGA) breedPair(rng *rand.Rand, pa, pb model.Sequence, fitness func(model.Sequence) float64) (model.Sequence, model.Sequence) {
	if rng.Float64() >= g.cfg.CrossoverProb {
		return pa.Clone(), pb.Clone()
	}
	switch g.cfg.Strategy {
	case StrategyGuidedAdjacent:
		return guidedAdjacent(rng, pa, pb, g.adjacency.AdjacencyScore),
			guidedAdjacent(rng, pb, pa, g.adjacency.AdjacencyScore)
	case StrategyUniform:
		return uniformPair(rng, pa, pb)
	default:
		return guidedUniform(rng, pa, pb, fitness),
			guidedUniform(rng, pb, pa, fitness)
	}
}

// mutate applies the two length-preserving mutations in place, each behind
// its own coin.
func (g *NeighbourGA) mutate(rng *rand.Rand, seq model.Sequence) {
	if rng.Float64() < g.cfg.MutationProb {
		substituteAny(rng, seq, g.problem.AlphabetSize())
	}
	if rng.Float64() < g.cfg.MutationProb {
		invertRange(rng, seq)
	}
}

func (g *NeighbourGA) maybeHillClimb(rng *rand.Rand, seq model.Sequence, fitness func(model.Sequence) float64) model.Sequence {
	if rng.Float64() >= hillClimbGateProb {
		return seq
	}
	p := hillClimbLongProb
	if len(seq) <= hillClimbShortLen {
		p = hillClimbShortProb
	}
	if rng.Float64() >= p {
		return seq
	}
	return HillClimb(seq, g.problem.AlphabetSize(), fitness, g.cfg.Validity)
}

// ensureValid passes the child through the validity filter, drawing repaired
// random replacements for rejected ones up to the retry budget.
func (g *NeighbourGA) ensureValid(rng *rand.Rand, child model.Sequence) (model.Sequence, error) {
	if g.cfg.Validity == nil {
		return child, nil
	}
	cand := child
	for attempt := 0; attempt <= g.cfg.ValidityRetries; attempt++ {
		if g.cfg.Validity(cand) {
			return cand, nil
		}
		cand = g.problem.Repair(rng, g.problem.RandomSequence(rng))
	}
	return nil, fmt.Errorf("after %d retries: %w", g.cfg.ValidityRetries, ErrValidityUnsatisfiable)
}

// HillClimb runs one greedy pass over seq. Per position it tries every other
// symbol, skips those the predicate rejects and commits the best strictly
// improving one before moving right. The input is never modified.
func HillClimb(seq model.Sequence, alphabet int, fitness func(model.Sequence) float64, valid func(model.Sequence) bool) model.Sequence {
	out := seq.Clone()
	if len(out) == 0 {
		return out
	}
	bestScore := fitness(out)
	for pos := 0; pos < len(out); pos++ {
		orig := out[pos]
		bestSym := orig
		bestLocal := bestScore
		for s := 0; s < alphabet; s++ {
			sym := byte(s)
			if sym == orig {
				continue
			}
			out[pos] = sym
			if valid != nil && !valid(out) {
				continue
			}
			if f := fitness(out); f < bestLocal {
				bestLocal = f
				bestSym = sym
			}
		}
		out[pos] = bestSym
		bestScore = bestLocal
	}
	return out
}
