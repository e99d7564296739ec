package peptide

import "github.com/Adidadi0112/peptide-opt/internal/model"

// Mean hydropathy bounds a sequence must fall within to pass Valid.
const (
	MinMeanHydropathy = -1.5
	MaxMeanHydropathy = 3.0
)

// maxSymbolRun is the longest admissible run of one symbol.
const maxSymbolRun = 3

// Symbol values of the two residues whose immediate repetition is rejected.
const (
	symCys byte = 1  // C
	symPro byte = 12 // P
)

// Valid reports whether seq passes the chemistry filter: non-empty, in
// alphabet, mean hydropathy within bounds, no immediate cysteine or proline
// repeat and no symbol run longer than three.
func Valid(seq model.Sequence) bool {
	if len(seq) == 0 {
		return false
	}

	sum := 0.0
	run := 1
	for i, s := range seq {
		if int(s) >= AlphabetSize {
			return false
		}
		sum += Hydropathy[s]
		if i == 0 {
			continue
		}
		if s == seq[i-1] {
			if s == symCys || s == symPro {
				return false
			}
			run++
			if run > maxSymbolRun {
				return false
			}
		} else {
			run = 1
		}
	}

	mean := sum / float64(len(seq))
	return mean >= MinMeanHydropathy && mean <= MaxMeanHydropathy
}
