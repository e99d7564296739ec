package search

import "github.com/Adidadi0112/peptide-opt/internal/model"

// summarize folds one generation's fitness slice into its stats row.
func summarize(gen int, fits []float64) model.GenerationStats {
	min, max := fits[0], fits[0]
	sum := 0.0
	for _, f := range fits {
		if f < min {
			min = f
		}
		if f > max {
			max = f
		}
		sum += f
	}
	return model.GenerationStats{
		Generation: gen,
		Min:        min,
		Max:        max,
		Mean:       sum / float64(len(fits)),
	}
}

// bestIndex returns the index of the first minimal fitness.
func bestIndex(fits []float64) int {
	best := 0
	for i, f := range fits {
		if f < fits[best] {
			best = i
		}
	}
	return best
}

// containsSequence reports whether pop holds a symbol-for-symbol copy of seq.
func containsSequence(pop []model.Sequence, seq model.Sequence) bool {
	for _, p := range pop {
		if p.Equal(seq) {
			return true
		}
	}
	return false
}
