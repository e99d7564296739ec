package search

import (
	"errors"
	"math/rand"

	"github.com/Adidadi0112/peptide-opt/internal/model"
)

// ErrNoMutationChoice signals that no applicable mutation carries positive
// weight for the given sequence.
var ErrNoMutationChoice = errors.New("no applicable mutation with positive weight")

// Mutation is one symbol-level operator of the baseline engine. Apply never
// mutates its input; it returns a derived sequence. The generator is the
// engine-owned one, threaded through every call.
type Mutation interface {
	Name() string
	Applicable(seq model.Sequence) bool
	Apply(rng *rand.Rand, seq model.Sequence) model.Sequence
}

// WeightedMutation couples an operator with its draw weight.
type WeightedMutation struct {
	Mutation Mutation
	Weight   float64
}

// SubstituteMutation replaces one position with a different symbol.
type SubstituteMutation struct {
	Alphabet int
}

func (SubstituteMutation) Name() string { return "substitute" }

func (SubstituteMutation) Applicable(seq model.Sequence) bool { return len(seq) > 0 }

func (m SubstituteMutation) Apply(rng *rand.Rand, seq model.Sequence) model.Sequence {
	out := seq.Clone()
	pos := rng.Intn(len(out))
	old := out[pos]
	sym := byte(rng.Intn(m.Alphabet))
	for sym == old {
		sym = byte(rng.Intn(m.Alphabet))
	}
	out[pos] = sym
	return out
}

// InsertMutation grows the sequence by one symbol, only below MaxLength.
type InsertMutation struct {
	Alphabet  int
	MaxLength int
}

func (InsertMutation) Name() string { return "insert" }

func (m InsertMutation) Applicable(seq model.Sequence) bool { return len(seq) < m.MaxLength }

func (m InsertMutation) Apply(rng *rand.Rand, seq model.Sequence) model.Sequence {
	pos := rng.Intn(len(seq) + 1)
	sym := byte(rng.Intn(m.Alphabet))
	out := make(model.Sequence, 0, len(seq)+1)
	out = append(out, seq[:pos]...)
	out = append(out, sym)
	out = append(out, seq[pos:]...)
	return out
}

// DeleteMutation shrinks the sequence by one symbol, only above MinLength.
type DeleteMutation struct {
	MinLength int
}

func (DeleteMutation) Name() string { return "delete" }

func (m DeleteMutation) Applicable(seq model.Sequence) bool { return len(seq) > m.MinLength }

func (DeleteMutation) Apply(rng *rand.Rand, seq model.Sequence) model.Sequence {
	pos := rng.Intn(len(seq))
	out := make(model.Sequence, 0, len(seq)-1)
	out = append(out, seq[:pos]...)
	out = append(out, seq[pos+1:]...)
	return out
}

// SwapMutation exchanges two distinct positions.
type SwapMutation struct{}

func (SwapMutation) Name() string { return "swap" }

func (SwapMutation) Applicable(seq model.Sequence) bool { return len(seq) >= 2 }

func (SwapMutation) Apply(rng *rand.Rand, seq model.Sequence) model.Sequence {
	out := seq.Clone()
	p1 := rng.Intn(len(out))
	p2 := rng.Intn(len(out))
	for p2 == p1 {
		p2 = rng.Intn(len(out))
	}
	out[p1], out[p2] = out[p2], out[p1]
	return out
}

// chooseMutation draws one operator among those applicable to seq,
// proportionally to weight.
func chooseMutation(rng *rand.Rand, seq model.Sequence, table []WeightedMutation) (Mutation, error) {
	total := 0.0
	for _, wm := range table {
		if wm.Weight > 0 && wm.Mutation.Applicable(seq) {
			total += wm.Weight
		}
	}
	if total <= 0 {
		return nil, ErrNoMutationChoice
	}

	pick := rng.Float64() * total
	acc := 0.0
	var last Mutation
	for _, wm := range table {
		if wm.Weight <= 0 || !wm.Mutation.Applicable(seq) {
			continue
		}
		last = wm.Mutation
		acc += wm.Weight
		if pick <= acc {
			return wm.Mutation, nil
		}
	}
	return last, nil
}

// substituteAny overwrites one position in place with a uniform symbol,
// possibly the one already there. Length preserving.
func substituteAny(rng *rand.Rand, seq model.Sequence, alphabet int) {
	if len(seq) == 0 {
		return
	}
	seq[rng.Intn(len(seq))] = byte(rng.Intn(alphabet))
}

// invertRange reverses a random contiguous range seq[i..j], i < j, in place.
// No-op below length 3. Length preserving.
func invertRange(rng *rand.Rand, seq model.Sequence) {
	if len(seq) < 3 {
		return
	}
	i := rng.Intn(len(seq) - 1)
	j := i + 1 + rng.Intn(len(seq)-i-1)
	for l, r := i, j; l < r; l, r = l+1, r-1 {
		seq[l], seq[r] = seq[r], seq[l]
	}
}
