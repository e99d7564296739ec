package peptide

import (
	"fmt"

	"github.com/Adidadi0112/peptide-opt/internal/model"
)

// ScoreTable is a symmetric symbol-pair score matrix in Letters order.
type ScoreTable [AlphabetSize][AlphabetSize]float64

// ScoreMode selects what the motif term of the energy is computed against.
type ScoreMode int

const (
	// ScoreAgainstMotif scores against the single selected motif.
	ScoreAgainstMotif ScoreMode = iota
	// ScoreBestOfCatalog scores against whichever catalog motif fits best.
	ScoreBestOfCatalog
)

func (m ScoreMode) String() string {
	switch m {
	case ScoreAgainstMotif:
		return "motif"
	case ScoreBestOfCatalog:
		return "best-of-catalog"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ScoreModeFromName resolves a score mode by name. The empty name selects
// the single-motif default.
func ScoreModeFromName(name string) (ScoreMode, error) {
	switch name {
	case "", "motif":
		return ScoreAgainstMotif, nil
	case "best", "best-of-catalog":
		return ScoreBestOfCatalog, nil
	default:
		return 0, fmt.Errorf("unknown score mode %q", name)
	}
}

// Provider supplies the two pairwise tables the energy is built from.
// Symbols handed to it must be in alphabet range.
type Provider interface {
	SubstitutionScore(a, b byte) float64
	AdjacencyScore(a, b byte) float64
}

// TableProvider is a Provider backed by in-memory tables.
type TableProvider struct {
	Substitution ScoreTable
	Adjacency    ScoreTable
}

func (p TableProvider) SubstitutionScore(a, b byte) float64 { return p.Substitution[a][b] }

func (p TableProvider) AdjacencyScore(a, b byte) float64 { return p.Adjacency[a][b] }

// DefaultProvider returns the stock tables: BLOSUM62 substitution scores and
// the embedded contact potentials.
func DefaultProvider() Provider {
	return TableProvider{Substitution: blosum62, Adjacency: defaultAdjacency}
}

// ProviderWithAdjacency keeps the stock substitution scores but swaps in the
// given contact table.
func ProviderWithAdjacency(adjacency ScoreTable) Provider {
	return TableProvider{Substitution: blosum62, Adjacency: adjacency}
}

// Scorer computes sequence energies. It is immutable after construction;
// sharing one across runs is safe.
type Scorer struct {
	mode     ScoreMode
	motifIdx int
	motif    model.Sequence
	provider Provider
}

// NewScorer builds a scorer for the given mode and catalog entry. A nil
// provider selects DefaultProvider. The selected motif fixes the target
// length in both modes.
func NewScorer(mode ScoreMode, motifIndex int, provider Provider) (*Scorer, error) {
	switch mode {
	case ScoreAgainstMotif, ScoreBestOfCatalog:
	default:
		return nil, fmt.Errorf("unknown score mode %d", int(mode))
	}
	motif, err := MotifSequence(motifIndex)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		provider = DefaultProvider()
	}
	return &Scorer{mode: mode, motifIdx: motifIndex, motif: motif, provider: provider}, nil
}

// Mode returns the scoring mode.
func (s *Scorer) Mode() ScoreMode { return s.mode }

// MotifIndex returns the selected catalog index.
func (s *Scorer) MotifIndex() int { return s.motifIdx }

// Motif returns a copy of the selected motif.
func (s *Scorer) Motif() model.Sequence { return s.motif.Clone() }

// TargetLength is the length repair drives sequences towards.
func (s *Scorer) TargetLength() int { return len(s.motif) }

// Energy is the value the engines minimise: a negated substitution score
// against the motif, cycled over its length, plus the contact potential of
// every consecutive pair.
func (s *Scorer) Energy(seq model.Sequence) float64 {
	var motifTerm float64
	if s.mode == ScoreBestOfCatalog {
		motifTerm = s.motifTerm(seq, motifSeqs[0])
		for _, m := range motifSeqs[1:] {
			if t := s.motifTerm(seq, m); t < motifTerm {
				motifTerm = t
			}
		}
	} else {
		motifTerm = s.motifTerm(seq, s.motif)
	}

	adj := 0.0
	for i := 0; i+1 < len(seq); i++ {
		adj += s.provider.AdjacencyScore(seq[i], seq[i+1])
	}
	return motifTerm + adj
}

func (s *Scorer) motifTerm(seq, motif model.Sequence) float64 {
	t := 0.0
	for i, sym := range seq {
		t -= s.provider.SubstitutionScore(sym, motif[i%len(motif)])
	}
	return t
}
