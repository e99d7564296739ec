// Package peptide models short amino-acid sequences as a search problem:
// a 20-symbol alphabet, a motif catalog to score against, substitution and
// contact tables, a chemistry-flavoured validity predicate and the move
// machinery the engines drive.
package peptide

import (
	"fmt"
	"strings"

	"github.com/Adidadi0112/peptide-opt/internal/model"
)

// AlphabetSize is the number of residue symbols.
const AlphabetSize = 20

// Letters lists the residues in table order. A symbol's byte value indexes
// this string and every scoring table.
const Letters = "ACDEFGHIKLMNPQRSTVWY"

// Hydropathy is the Kyte-Doolittle index per symbol.
var Hydropathy = [AlphabetSize]float64{
	1.8,  // A
	2.5,  // C
	-3.5, // D
	-3.5, // E
	2.8,  // F
	-0.4, // G
	-3.2, // H
	4.5,  // I
	-3.9, // K
	3.8,  // L
	1.9,  // M
	-3.5, // N
	-1.6, // P
	-3.5, // Q
	-4.5, // R
	-0.8, // S
	-0.7, // T
	4.2,  // V
	-0.9, // W
	-1.3, // Y
}

// LetterIndex maps one residue letter, either case, to its symbol value.
func LetterIndex(c byte) (byte, error) {
	if c >= 'a' && c <= 'z' {
		c -= 'a' - 'A'
	}
	i := strings.IndexByte(Letters, c)
	if i < 0 {
		return 0, fmt.Errorf("symbol %q is not one of %s", c, Letters)
	}
	return byte(i), nil
}

// Parse converts a residue string into a sequence.
func Parse(s string) (model.Sequence, error) {
	if s == "" {
		return nil, fmt.Errorf("sequence is empty")
	}
	seq := make(model.Sequence, len(s))
	for i := 0; i < len(s); i++ {
		idx, err := LetterIndex(s[i])
		if err != nil {
			return nil, fmt.Errorf("position %d: %w", i, err)
		}
		seq[i] = idx
	}
	return seq, nil
}

// Format renders a sequence as residue letters. Symbols outside the alphabet
// come out as '?'.
func Format(seq model.Sequence) string {
	out := make([]byte, len(seq))
	for i, s := range seq {
		if int(s) < AlphabetSize {
			out[i] = Letters[s]
		} else {
			out[i] = '?'
		}
	}
	return string(out)
}
