package search

import (
	"math/rand"

	"github.com/Adidadi0112/peptide-opt/internal/model"
)

// Neighbour pairs a candidate with the move that produced it. Applying Move
// to the source individual reproduces Seq exactly.
type Neighbour struct {
	Seq  model.Sequence
	Move model.Move
}

// Problem is the contract every engine searches against. Implementations own
// fitness and move generation; engines own the trajectory. All randomness
// flows through the caller-supplied generator, so a run is deterministic for
// a fixed seed.
type Problem interface {
	// Name returns a stable label used in run records and artifacts.
	Name() string

	// AlphabetSize returns the number of distinct symbols.
	AlphabetSize() int

	// RandomSequence returns a uniform legal starting point satisfying the
	// problem's shape invariants.
	RandomSequence(rng *rand.Rand) model.Sequence

	// Fitness scores a sequence. Pure, deterministic, lower is better,
	// never NaN.
	Fitness(seq model.Sequence) float64

	// Neighbourhood produces up to size single-move mutations of seq. The
	// operator mix is problem policy; the result may be shorter than size
	// when an operator is inapplicable at the current shape.
	Neighbourhood(rng *rand.Rand, seq model.Sequence, size int) []Neighbour

	// ApplyMove mutates seq in place. It panics when the recorded move no
	// longer matches the sequence's shape: a contract violation must never
	// corrupt state silently.
	ApplyMove(seq model.Sequence, mv model.Move)

	// Repair returns seq normalized back to the problem's shape invariants.
	// Idempotent on already-legal input.
	Repair(rng *rand.Rand, seq model.Sequence) model.Sequence
}

// AdjacencyScorer is an optional problem capability: direct scoring of two
// adjacent symbols. The approximate guided crossover requires it.
type AdjacencyScorer interface {
	AdjacencyScore(a, b byte) float64
}
