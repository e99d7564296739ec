package peptide

import (
	"fmt"
	"math/rand"

	"github.com/Adidadi0112/peptide-opt/internal/model"
	"github.com/Adidadi0112/peptide-opt/internal/search"
)

// neighbourSubstituteProb splits neighbourhood draws between substitutions
// and swaps.
const neighbourSubstituteProb = 0.70

// Problem adapts a Scorer to the engine contract. Sequences are scored by
// energy, moved by substitution and swap, and repaired to the motif length.
type Problem struct {
	scorer *Scorer
}

var (
	_ search.Problem         = (*Problem)(nil)
	_ search.AdjacencyScorer = (*Problem)(nil)
)

// NewProblem wraps a scorer as a search problem.
func NewProblem(scorer *Scorer) (*Problem, error) {
	if scorer == nil {
		return nil, fmt.Errorf("scorer is required")
	}
	return &Problem{scorer: scorer}, nil
}

func (p *Problem) Name() string { return "peptide" }

func (p *Problem) AlphabetSize() int { return AlphabetSize }

// Scorer returns the scorer the problem was built around.
func (p *Problem) Scorer() *Scorer { return p.scorer }

// RandomSequence draws a uniform sequence of the motif length.
func (p *Problem) RandomSequence(rng *rand.Rand) model.Sequence {
	seq := make(model.Sequence, p.scorer.TargetLength())
	for i := range seq {
		seq[i] = byte(rng.Intn(AlphabetSize))
	}
	return seq
}

func (p *Problem) Fitness(seq model.Sequence) float64 {
	return p.scorer.Energy(seq)
}

// AdjacencyScore exposes the contact table for guided recombination.
func (p *Problem) AdjacencyScore(a, b byte) float64 {
	return p.scorer.provider.AdjacencyScore(a, b)
}

// Neighbourhood draws up to size candidates around seq: substitutions with
// probability neighbourSubstituteProb, swaps otherwise. Swap draws on a
// sequence too short to swap produce no candidate.
func (p *Problem) Neighbourhood(rng *rand.Rand, seq model.Sequence, size int) []search.Neighbour {
	out := make([]search.Neighbour, 0, size)
	if len(seq) == 0 {
		return out
	}
	for i := 0; i < size; i++ {
		if rng.Float64() < neighbourSubstituteProb {
			pos := rng.Intn(len(seq))
			old := seq[pos]
			sym := byte(rng.Intn(AlphabetSize))
			for sym == old {
				sym = byte(rng.Intn(AlphabetSize))
			}
			next := seq.Clone()
			next[pos] = sym
			out = append(out, search.Neighbour{
				Seq:  next,
				Move: model.Move{Kind: model.MoveSubstitute, Pos: pos, Old: old, New: sym},
			})
			continue
		}

		if len(seq) < 2 {
			continue
		}
		p1 := rng.Intn(len(seq))
		p2 := rng.Intn(len(seq))
		for p2 == p1 {
			p2 = rng.Intn(len(seq))
		}
		// Swaps are recorded with ordered positions so equal moves
		// compare equal in the tabu memory.
		if p2 < p1 {
			p1, p2 = p2, p1
		}
		next := seq.Clone()
		next[p1], next[p2] = next[p2], next[p1]
		out = append(out, search.Neighbour{
			Seq:  next,
			Move: model.Move{Kind: model.MoveSwap, Pos: p1, Pos2: p2},
		})
	}
	return out
}

// ApplyMove applies mv to seq in place. Only the length-preserving kinds
// are supported here; the move must match the sequence it was drawn from.
func (p *Problem) ApplyMove(seq model.Sequence, mv model.Move) {
	switch mv.Kind {
	case model.MoveSubstitute:
		if seq[mv.Pos] != mv.Old {
			panic(fmt.Sprintf("substitute move recorded %c at position %d, sequence holds %c",
				Letters[mv.Old], mv.Pos, Letters[seq[mv.Pos]]))
		}
		seq[mv.Pos] = mv.New
	case model.MoveSwap:
		seq[mv.Pos], seq[mv.Pos2] = seq[mv.Pos2], seq[mv.Pos]
	default:
		panic(fmt.Sprintf("move kind %v not applicable to fixed-length neighbourhoods", mv.Kind))
	}
}

// Repair forces seq to the motif length: longer sequences are truncated,
// shorter ones padded with uniform symbols.
func (p *Problem) Repair(rng *rand.Rand, seq model.Sequence) model.Sequence {
	target := p.scorer.TargetLength()
	switch {
	case len(seq) == target:
		return seq
	case len(seq) > target:
		return seq[:target]
	default:
		out := make(model.Sequence, 0, target)
		out = append(out, seq...)
		for len(out) < target {
			out = append(out, byte(rng.Intn(AlphabetSize)))
		}
		return out
	}
}
