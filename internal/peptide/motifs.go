package peptide

import (
	"fmt"

	"github.com/Adidadi0112/peptide-opt/internal/model"
)

// Motifs is the catalog of target patterns sequences are scored against,
// indexed by motif number everywhere in the module.
var Motifs = []string{
	"GGAGGVGKS",              // P-loop, Walker A
	"RGD",                    // integrin binding
	"KDEL",                   // ER retention
	"PKKP",                   // proline hinge
	"YPAF",                   // tyrosine sorting signal
	"DPDGGDGMDDSD",           // acidic cluster
	"CIGCINGSMRKSDWKNHKPWH",  // cysteine-rich segment
	"LPEKAYNLALGRCELMYSHKNL", // amphipathic helix
	"HTH",                    // helix-turn-helix core
	"YGRKKRRQRRR",            // TAT carrier
	"RQIKIWFQNRRMKWKK",       // penetratin
	"AGYLLGKLGAALKG",         // transportan-like carrier
	"KWRWKRWKK",              // cationic antimicrobial
}

// motifSeqs holds the catalog in symbol form.
var motifSeqs = mustParseMotifs()

func mustParseMotifs() []model.Sequence {
	out := make([]model.Sequence, len(Motifs))
	for i, m := range Motifs {
		seq, err := Parse(m)
		if err != nil {
			panic(fmt.Sprintf("motif %d %q: %v", i, m, err))
		}
		out[i] = seq
	}
	return out
}

// MotifSequence returns the catalog entry at index as a fresh sequence.
func MotifSequence(index int) (model.Sequence, error) {
	if index < 0 || index >= len(Motifs) {
		return nil, fmt.Errorf("motif index %d out of range [0, %d)", index, len(Motifs))
	}
	return motifSeqs[index].Clone(), nil
}
