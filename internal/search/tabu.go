package search

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/Adidadi0112/peptide-opt/internal/model"
)

// TabuConfig parameterises a TabuSearch.
type TabuConfig struct {
	// Iterations is the number of neighbourhood steps to take.
	Iterations int
	// NeighbourhoodSize is the number of candidate moves drawn per step.
	NeighbourhoodSize int
	// TabuLength caps the move memory. The oldest entry is evicted first.
	TabuLength int
	// AspirationMargin readmits a tabu move whose candidate fitness plus
	// this margin is still below the current fitness.
	AspirationMargin float64
	// ReheatInterval clears the move memory every that many iterations.
	// Zero disables reheating.
	ReheatInterval int
}

// DefaultTabuConfig returns the stock tabu parameters.
func DefaultTabuConfig() TabuConfig {
	return TabuConfig{
		Iterations:        5000,
		NeighbourhoodSize: 40,
		TabuLength:        25,
		AspirationMargin:  1.0,
		ReheatInterval:    1000,
	}
}

// TabuResult is the outcome of one tabu run.
type TabuResult struct {
	Best        model.Sequence
	BestFitness float64
	Trace       []model.TracePoint
	Evaluations int
}

// TabuSearch walks a single sequence through sampled neighbourhoods while a
// bounded FIFO of recent moves blocks immediate backtracking.
type TabuSearch struct {
	problem Problem
	cfg     TabuConfig
}

// NewTabuSearch validates cfg and binds the engine to a problem.
func NewTabuSearch(problem Problem, cfg TabuConfig) (*TabuSearch, error) {
	if problem == nil {
		return nil, fmt.Errorf("problem is required")
	}
	if cfg.Iterations <= 0 {
		return nil, fmt.Errorf("iterations must be positive, got %d", cfg.Iterations)
	}
	if cfg.NeighbourhoodSize <= 0 {
		return nil, fmt.Errorf("neighbourhood size must be positive, got %d", cfg.NeighbourhoodSize)
	}
	if cfg.TabuLength <= 0 {
		return nil, fmt.Errorf("tabu length must be positive, got %d", cfg.TabuLength)
	}
	if cfg.AspirationMargin < 0 || math.IsNaN(cfg.AspirationMargin) {
		return nil, fmt.Errorf("aspiration margin must be non-negative, got %v", cfg.AspirationMargin)
	}
	if cfg.ReheatInterval < 0 {
		return nil, fmt.Errorf("reheat interval must be non-negative, got %d", cfg.ReheatInterval)
	}
	return &TabuSearch{problem: problem, cfg: cfg}, nil
}

// Run executes the search from the given seed. Same seed, same problem,
// same result.
func (t *TabuSearch) Run(seed int64) TabuResult {
	rng := rand.New(rand.NewSource(seed))

	evals := 0
	fitness := func(seq model.Sequence) float64 {
		evals++
		return t.problem.Fitness(seq)
	}

	best := t.problem.RandomSequence(rng)
	bestFit := fitness(best)
	curr := best.Clone()
	currFit := bestFit

	tabu := newTabuList(t.cfg.TabuLength)
	trace := make([]model.TracePoint, 0, t.cfg.Iterations)

	for it := 0; it < t.cfg.Iterations; it++ {
		chosenIdx := -1
		chosenFit := 0.0

		neighbours := t.problem.Neighbourhood(rng, curr, t.cfg.NeighbourhoodSize)
		for i, nb := range neighbours {
			f := fitness(nb.Seq)
			if tabu.Contains(nb.Move) && f+t.cfg.AspirationMargin >= currFit {
				continue
			}
			if chosenIdx == -1 || f < chosenFit {
				chosenIdx = i
				chosenFit = f
			}
		}

		// Every candidate may be blocked. The walk then stays put for
		// this step and the reheat eventually frees it.
		if chosenIdx >= 0 {
			chosen := neighbours[chosenIdx]
			curr = chosen.Seq
			currFit = chosenFit
			tabu.Push(chosen.Move)

			if currFit < bestFit {
				bestFit = currFit
				best = curr.Clone()
			}
		}

		trace = append(trace, model.TracePoint{Iteration: it, BestFitness: bestFit})

		if t.cfg.ReheatInterval > 0 && it != 0 && it%t.cfg.ReheatInterval == 0 {
			tabu.Clear()
		}
	}

	return TabuResult{Best: best, BestFitness: bestFit, Trace: trace, Evaluations: evals}
}

// tabuList is a fixed-capacity FIFO of recent moves.
type tabuList struct {
	moves []model.Move
	cap   int
}

func newTabuList(cap int) *tabuList {
	return &tabuList{moves: make([]model.Move, 0, cap), cap: cap}
}

func (t *tabuList) Contains(mv model.Move) bool {
	for _, m := range t.moves {
		if m == mv {
			return true
		}
	}
	return false
}

// Push appends mv, evicting the oldest entry when the list is full.
func (t *tabuList) Push(mv model.Move) {
	if len(t.moves) == t.cap {
		copy(t.moves, t.moves[1:])
		t.moves = t.moves[:len(t.moves)-1]
	}
	t.moves = append(t.moves, mv)
}

func (t *tabuList) Clear() {
	t.moves = t.moves[:0]
}

func (t *tabuList) Len() int {
	return len(t.moves)
}
