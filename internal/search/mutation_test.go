package search

import (
	"errors"
	"math/rand"
	"sort"
	"testing"

	"github.com/Adidadi0112/peptide-opt/internal/model"
)

func sortedSymbols(seq model.Sequence) []byte {
	out := append([]byte(nil), seq...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func TestSubstituteMutationChangesExactlyOnePosition(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	m := SubstituteMutation{Alphabet: 4}
	seq := model.Sequence{0, 1, 2, 3}

	if m.Applicable(model.Sequence{}) {
		t.Fatal("empty sequence should not be substitutable")
	}
	for i := 0; i < 50; i++ {
		out := m.Apply(rng, seq)
		if len(out) != len(seq) {
			t.Fatalf("length changed: %v", out)
		}
		changed := 0
		for j := range out {
			if out[j] != seq[j] {
				changed++
				if out[j] >= 4 {
					t.Fatalf("symbol escaped the alphabet: %v", out)
				}
			}
		}
		if changed != 1 {
			t.Fatalf("expected exactly one substitution, got %d in %v", changed, out)
		}
	}
	if !seq.Equal(model.Sequence{0, 1, 2, 3}) {
		t.Fatal("input sequence was modified")
	}
}

func TestInsertMutationGrowsBelowMaxLength(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	m := InsertMutation{Alphabet: 4, MaxLength: 5}
	seq := model.Sequence{0, 1, 2}

	if !m.Applicable(seq) {
		t.Fatal("expected insert to apply below max length")
	}
	if m.Applicable(model.Sequence{0, 1, 2, 3, 0}) {
		t.Fatal("expected insert to be blocked at max length")
	}
	for i := 0; i < 50; i++ {
		out := m.Apply(rng, seq)
		if len(out) != len(seq)+1 {
			t.Fatalf("expected one extra symbol, got %v", out)
		}
	}
	if !seq.Equal(model.Sequence{0, 1, 2}) {
		t.Fatal("input sequence was modified")
	}
}

func TestDeleteMutationShrinksAboveMinLength(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	m := DeleteMutation{MinLength: 3}
	seq := model.Sequence{0, 1, 2, 3}

	if !m.Applicable(seq) {
		t.Fatal("expected delete to apply above min length")
	}
	if m.Applicable(model.Sequence{0, 1, 2}) {
		t.Fatal("expected delete to be blocked at min length")
	}
	for i := 0; i < 50; i++ {
		out := m.Apply(rng, seq)
		if len(out) != len(seq)-1 {
			t.Fatalf("expected one symbol removed, got %v", out)
		}
	}
	if !seq.Equal(model.Sequence{0, 1, 2, 3}) {
		t.Fatal("input sequence was modified")
	}
}

func TestSwapMutationExchangesTwoDistinctPositions(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	m := SwapMutation{}
	seq := model.Sequence{0, 1, 2, 3}

	if m.Applicable(model.Sequence{0}) {
		t.Fatal("single-symbol sequence should not be swappable")
	}
	for i := 0; i < 50; i++ {
		out := m.Apply(rng, seq)
		if len(out) != len(seq) {
			t.Fatalf("length changed: %v", out)
		}
		changed := 0
		for j := range out {
			if out[j] != seq[j] {
				changed++
			}
		}
		// All symbols are distinct, so a swap touches exactly two positions.
		if changed != 2 {
			t.Fatalf("expected exactly two positions exchanged, got %d in %v", changed, out)
		}
		a, b := sortedSymbols(seq), sortedSymbols(out)
		for j := range a {
			if a[j] != b[j] {
				t.Fatalf("swap changed the symbol multiset: %v", out)
			}
		}
	}
}

func TestChooseMutationSkipsInapplicableAndZeroWeight(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	seq := model.Sequence{0, 1, 2}

	table := []WeightedMutation{
		{Mutation: DeleteMutation{MinLength: 3}, Weight: 100},
		{Mutation: SubstituteMutation{Alphabet: 4}, Weight: 1},
	}
	for i := 0; i < 30; i++ {
		m, err := chooseMutation(rng, seq, table)
		if err != nil {
			t.Fatalf("choose mutation: %v", err)
		}
		if m.Name() != "substitute" {
			t.Fatalf("inapplicable operator was drawn: %s", m.Name())
		}
	}

	if _, err := chooseMutation(rng, seq, nil); !errors.Is(err, ErrNoMutationChoice) {
		t.Fatalf("expected no-choice error for an empty table, got: %v", err)
	}
	zeroed := []WeightedMutation{{Mutation: SwapMutation{}, Weight: 0}}
	if _, err := chooseMutation(rng, seq, zeroed); !errors.Is(err, ErrNoMutationChoice) {
		t.Fatalf("expected no-choice error for zero weights, got: %v", err)
	}
}

func TestChooseMutationFollowsWeights(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	seq := model.Sequence{0, 1, 2, 3}
	table := []WeightedMutation{
		{Mutation: SubstituteMutation{Alphabet: 4}, Weight: 1},
		{Mutation: SwapMutation{}, Weight: 3},
	}

	counts := map[string]int{}
	for i := 0; i < 2000; i++ {
		m, err := chooseMutation(rng, seq, table)
		if err != nil {
			t.Fatalf("choose mutation: %v", err)
		}
		counts[m.Name()]++
	}
	if counts["swap"] <= counts["substitute"] {
		t.Fatalf("expected the heavier operator to dominate: %v", counts)
	}
	if counts["swap"]+counts["substitute"] != 2000 {
		t.Fatalf("unexpected operators drawn: %v", counts)
	}
}

func TestSubstituteAnyStaysInPlaceAndAlphabet(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	substituteAny(rng, model.Sequence{}, 4)

	seq := model.Sequence{0, 1, 2, 3}
	changed := false
	for i := 0; i < 100; i++ {
		before := seq.Clone()
		substituteAny(rng, seq, 4)
		if len(seq) != 4 {
			t.Fatalf("length changed: %v", seq)
		}
		for _, sym := range seq {
			if sym >= 4 {
				t.Fatalf("symbol escaped the alphabet: %v", seq)
			}
		}
		if !seq.Equal(before) {
			changed = true
		}
	}
	if !changed {
		t.Fatal("expected at least one in-place substitution")
	}
}

func TestInvertRangeReversesAContiguousRange(t *testing.T) {
	rng := rand.New(rand.NewSource(8))

	short := model.Sequence{0, 1}
	invertRange(rng, short)
	if !short.Equal(model.Sequence{0, 1}) {
		t.Fatal("sequences below length 3 must not change")
	}

	for i := 0; i < 50; i++ {
		seq := model.Sequence{0, 1, 2, 3, 4}
		invertRange(rng, seq)
		if len(seq) != 5 {
			t.Fatalf("length changed: %v", seq)
		}
		a, b := sortedSymbols(model.Sequence{0, 1, 2, 3, 4}), sortedSymbols(seq)
		for j := range a {
			if a[j] != b[j] {
				t.Fatalf("inversion changed the symbol multiset: %v", seq)
			}
		}
		// Distinct symbols and a range of at least two positions: the
		// sequence always differs from the identity ordering.
		if seq.Equal(model.Sequence{0, 1, 2, 3, 4}) {
			t.Fatalf("inversion left the sequence unchanged: %v", seq)
		}
	}
}
