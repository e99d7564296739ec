package search

import (
	"testing"

	"github.com/Adidadi0112/peptide-opt/internal/model"
)

func TestSummarizeFoldsGenerationStats(t *testing.T) {
	got := summarize(3, []float64{2.0, 5.0, 1.0, 8.0})
	want := model.GenerationStats{Generation: 3, Min: 1.0, Max: 8.0, Mean: 4.0}
	if got != want {
		t.Fatalf("unexpected stats: %+v", got)
	}

	single := summarize(0, []float64{-2.5})
	if single.Min != -2.5 || single.Max != -2.5 || single.Mean != -2.5 {
		t.Fatalf("unexpected single-entry stats: %+v", single)
	}
}

func TestBestIndexReturnsFirstMinimum(t *testing.T) {
	if got := bestIndex([]float64{2.0, 5.0, 1.0, 8.0}); got != 2 {
		t.Fatalf("expected index 2, got %d", got)
	}
	if got := bestIndex([]float64{3.0, 1.0, 1.0}); got != 1 {
		t.Fatalf("ties must keep the first minimum, got %d", got)
	}
	if got := bestIndex([]float64{7.0}); got != 0 {
		t.Fatalf("expected index 0, got %d", got)
	}
}

func TestContainsSequenceComparesSymbols(t *testing.T) {
	pop := []model.Sequence{{0, 1, 2}, {3, 3, 3}}
	if !containsSequence(pop, model.Sequence{3, 3, 3}) {
		t.Fatal("expected a symbol-for-symbol copy to be found")
	}
	if containsSequence(pop, model.Sequence{0, 1}) {
		t.Fatal("expected a shorter sequence not to match")
	}
	if containsSequence(pop, model.Sequence{0, 1, 3}) {
		t.Fatal("expected a differing sequence not to match")
	}
}
