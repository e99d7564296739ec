package search

import (
	"math/rand"
	"testing"

	"github.com/Adidadi0112/peptide-opt/internal/model"
)

func TestCrossoverFromName(t *testing.T) {
	if got, err := CrossoverFromName(""); err != nil || got != CrossoverSinglePoint {
		t.Fatalf("empty name: got %v, %v", got, err)
	}
	if got, err := CrossoverFromName("single-point"); err != nil || got != CrossoverSinglePoint {
		t.Fatalf("single-point: got %v, %v", got, err)
	}
	if got, err := CrossoverFromName("uniform"); err != nil || got != CrossoverUniform {
		t.Fatalf("uniform: got %v, %v", got, err)
	}
	if _, err := CrossoverFromName("triple-point"); err == nil {
		t.Fatal("expected unknown crossover error")
	}
	if CrossoverSinglePoint.String() != "single-point" || CrossoverUniform.String() != "uniform" {
		t.Fatal("unexpected crossover names")
	}
}

func TestSinglePointCrossoverSplicesAtOneCut(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	a := model.Sequence{0, 0, 0, 0}
	b := model.Sequence{1, 1, 1, 1}

	for i := 0; i < 50; i++ {
		child := singlePointCrossover(rng, a, b)
		if len(child) != 4 {
			t.Fatalf("unexpected child length %d", len(child))
		}
		if child[0] != 0 || child[3] != 1 {
			t.Fatalf("cut escaped [1, 3): %v", child)
		}
		for j := 1; j < len(child); j++ {
			if child[j] < child[j-1] {
				t.Fatalf("child is not a prefix/suffix splice: %v", child)
			}
		}
	}
}

func TestSinglePointCrossoverTakesSecondParentLength(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	a := model.Sequence{0, 0, 0}
	b := model.Sequence{1, 1, 1, 1, 1, 1}

	for i := 0; i < 20; i++ {
		if child := singlePointCrossover(rng, a, b); len(child) != len(b) {
			t.Fatalf("expected child to inherit the suffix parent's length, got %d", len(child))
		}
	}

	short := model.Sequence{0}
	if child := singlePointCrossover(rng, short, b); !child.Equal(short) {
		t.Fatalf("expected an uncuttable parent to be cloned, got %v", child)
	}
}

func TestUniformChildKeepsFirstParentShape(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	a := model.Sequence{0, 0, 0, 0, 0, 0}
	b := model.Sequence{1, 1, 1}

	tookFromB := false
	for i := 0; i < 50; i++ {
		child := uniformChild(rng, a, b)
		if len(child) != len(a) {
			t.Fatalf("unexpected child length %d", len(child))
		}
		for j := len(b); j < len(child); j++ {
			if child[j] != a[j] {
				t.Fatalf("tail beyond the common prefix changed: %v", child)
			}
		}
		for j := 0; j < len(b); j++ {
			if child[j] == b[j] {
				tookFromB = true
			}
		}
	}
	if !tookFromB {
		t.Fatal("expected at least one symbol drawn from the second parent")
	}
	if !a.Equal(model.Sequence{0, 0, 0, 0, 0, 0}) {
		t.Fatal("first parent was modified")
	}
}

func TestUniformPairExchangesAcrossCommonPrefix(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	a := model.Sequence{0, 0, 0, 0}
	b := model.Sequence{1, 1, 1, 1, 1, 1}

	for i := 0; i < 50; i++ {
		childA, childB := uniformPair(rng, a, b)
		if len(childA) != len(a) || len(childB) != len(b) {
			t.Fatalf("unexpected child lengths %d/%d", len(childA), len(childB))
		}
		for j := 0; j < len(a); j++ {
			if childA[j]+childB[j] != 1 {
				t.Fatalf("position %d was not exchanged pairwise: %v / %v", j, childA, childB)
			}
		}
		for j := len(a); j < len(childB); j++ {
			if childB[j] != 1 {
				t.Fatalf("tail beyond the common prefix changed: %v", childB)
			}
		}
	}
}

func TestGuidedUniformCommitsOnlyImprovingSymbols(t *testing.T) {
	target := model.Sequence{1, 1, 1, 1}
	fitness := func(seq model.Sequence) float64 {
		score := 0.0
		for i, sym := range seq {
			if sym != target[i] {
				score++
			}
		}
		return score
	}

	rng := rand.New(rand.NewSource(5))
	a := model.Sequence{0, 0, 0, 0}
	b := model.Sequence{1, 1, 1, 1}

	// Taking b's symbol always removes a mismatch, so every disputed position
	// commits and the final coin cannot change the outcome.
	child := guidedUniform(rng, a, b, fitness)
	if !child.Equal(target) {
		t.Fatalf("expected every improving symbol to commit, got %v", child)
	}

	// Against an all-zero target b never improves; only the final coin may
	// overwrite position 0.
	zeros := model.Sequence{0, 0, 0, 0}
	zeroFitness := func(seq model.Sequence) float64 {
		score := 0.0
		for _, sym := range seq {
			if sym != 0 {
				score++
			}
		}
		return score
	}
	for i := 0; i < 20; i++ {
		child := guidedUniform(rng, zeros, b, zeroFitness)
		for j := 1; j < len(child); j++ {
			if child[j] != 0 {
				t.Fatalf("non-improving symbol committed at %d: %v", j, child)
			}
		}
	}
}

func TestGuidedAdjacentFollowsPairwiseInteraction(t *testing.T) {
	// Interactions favour low symbol values, so b's zeros win every dispute.
	adjacency := func(x, y byte) float64 { return float64(x) + float64(y) }

	rng := rand.New(rand.NewSource(6))
	a := model.Sequence{2, 2, 2, 2}
	b := model.Sequence{2, 0, 0, 0}
	child := guidedAdjacent(rng, a, b, adjacency)
	if !child.Equal(model.Sequence{2, 0, 0, 0}) {
		t.Fatalf("expected favourable symbols to commit, got %v", child)
	}

	// With worse interactions on b's side nothing past position 0 changes.
	worse := model.Sequence{2, 3, 3, 3}
	for i := 0; i < 20; i++ {
		child := guidedAdjacent(rng, a, worse, adjacency)
		for j := 1; j < len(child); j++ {
			if child[j] != 2 {
				t.Fatalf("unfavourable symbol committed at %d: %v", j, child)
			}
		}
	}
}
