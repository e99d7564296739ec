package search

import "math/rand"

// tournament draws k population indices with replacement and returns the one
// with the lowest fitness. Ties keep the earliest drawn contestant.
func tournament(rng *rand.Rand, fits []float64, k int) int {
	winner := rng.Intn(len(fits))
	for i := 1; i < k; i++ {
		c := rng.Intn(len(fits))
		if fits[c] < fits[winner] {
			winner = c
		}
	}
	return winner
}
