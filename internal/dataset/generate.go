package dataset

import (
	"math/rand/v2"

	auc "github.com/jamesainslie/go-auc"
)

// Generate returns n samples with uniform random scores in [0, 1). Each sample
// is positive with probability balance. The same seed yields the same batch.
func Generate(n int, balance float64, seed uint64) []auc.Sample[float64] {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	samples := make([]auc.Sample[float64], n)
	for i := range samples {
		samples[i] = auc.Sample[float64]{
			Label: rng.Float64() < balance,
			Score: rng.Float64(),
		}
	}
	return samples
}
