package search

import (
	"fmt"
	"math/rand"

	"github.com/Adidadi0112/peptide-opt/internal/model"
)

// Crossover selects the recombination form of the baseline engine.
type Crossover int

const (
	// CrossoverSinglePoint splices a prefix of one parent onto the suffix
	// of the other at a random cut.
	CrossoverSinglePoint Crossover = iota
	// CrossoverUniform draws each common-prefix symbol from either parent
	// with a fair coin.
	CrossoverUniform
)

func (c Crossover) String() string {
	switch c {
	case CrossoverSinglePoint:
		return "single-point"
	case CrossoverUniform:
		return "uniform"
	default:
		return fmt.Sprintf("crossover(%d)", int(c))
	}
}

// CrossoverFromName resolves a crossover by name. The empty name selects
// the single-point default.
func CrossoverFromName(name string) (Crossover, error) {
	switch name {
	case "", "single-point":
		return CrossoverSinglePoint, nil
	case "uniform":
		return CrossoverUniform, nil
	default:
		return 0, fmt.Errorf("unknown crossover %q", name)
	}
}

// singlePointCrossover returns a[:point] + b[point:] for a cut drawn in
// [1, min(len(a), len(b))). Parents too short to cut yield a copy of a.
func singlePointCrossover(rng *rand.Rand, a, b model.Sequence) model.Sequence {
	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}
	if minLen < 2 {
		return a.Clone()
	}
	point := 1 + rng.Intn(minLen-1)
	child := make(model.Sequence, 0, point+len(b)-point)
	child = append(child, a[:point]...)
	child = append(child, b[point:]...)
	return child
}

// uniformChild keeps a's length and flips a fair coin per common-prefix
// position for b's symbol.
func uniformChild(rng *rand.Rand, a, b model.Sequence) model.Sequence {
	child := a.Clone()
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if rng.Intn(2) == 1 {
			child[i] = b[i]
		}
	}
	return child
}

// uniformPair produces two children by exchanging symbols across the
// common prefix on a fair coin per position.
func uniformPair(rng *rand.Rand, a, b model.Sequence) (model.Sequence, model.Sequence) {
	childA := a.Clone()
	childB := b.Clone()
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if rng.Intn(2) == 1 {
			childA[i], childB[i] = childB[i], childA[i]
		}
	}
	return childA, childB
}

// guidedUniform starts from a copy of a and, at every common-prefix position
// where the parents disagree, commits b's symbol only when that lowers the
// fitness of the partially built child. A final fair coin overwrites the
// first symbol with b's regardless of score.
func guidedUniform(rng *rand.Rand, a, b model.Sequence, fitness func(model.Sequence) float64) model.Sequence {
	child := a.Clone()
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] == b[i] {
			continue
		}
		keep := child[i]
		child[i] = b[i]
		withB := fitness(child)
		child[i] = keep
		if withB < fitness(child) {
			child[i] = b[i]
		}
	}
	if rng.Intn(2) == 1 && len(child) > 0 && len(b) > 0 {
		child[0] = b[0]
	}
	return child
}

// guidedAdjacent is the pairwise-interaction variant of guidedUniform. From
// position 1 on it commits b's symbol when its interaction with the symbol
// already placed on the left is lower than a's. Position 0 always keeps a's
// symbol until the final coin.
func guidedAdjacent(rng *rand.Rand, a, b model.Sequence, adjacency func(x, y byte) float64) model.Sequence {
	child := a.Clone()
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 1; i < n; i++ {
		if a[i] == b[i] {
			continue
		}
		if adjacency(child[i-1], b[i]) < adjacency(child[i-1], a[i]) {
			child[i] = b[i]
		}
	}
	if rng.Intn(2) == 1 && len(child) > 0 && len(b) > 0 {
		child[0] = b[0]
	}
	return child
}
