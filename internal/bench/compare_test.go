package bench

import (
	"math"
	"math/rand/v2"
	"testing"

	auc "github.com/jamesainslie/go-auc"
)

func TestCompare(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 1))
	samples := make([]auc.Sample[float64], 5000)
	for i := range samples {
		samples[i] = auc.Sample[float64]{Label: i%100 == 0, Score: rng.Float64()}
	}

	c, ok := Compare(samples, 3)
	if !ok {
		t.Fatal("Compare() reported undefined AUC")
	}
	if c.Samples != 5000 || c.Positives != 50 {
		t.Errorf("counts = %d/%d, want 5000/50", c.Samples, c.Positives)
	}
	if math.Abs(c.DenseAUC-c.SparseAUC) > 1e-12 {
		t.Errorf("DenseAUC = %v, SparseAUC = %v, want equal", c.DenseAUC, c.SparseAUC)
	}
	if c.Dense <= 0 || c.Sparse <= 0 {
		t.Errorf("durations = %v/%v, want positive", c.Dense, c.Sparse)
	}
}

func TestCompare_Undefined(t *testing.T) {
	if _, ok := Compare(samplesOf([]bool{true}, []float64{1}), 1); ok {
		t.Error("Compare() on a single-class batch should report false")
	}
}

func TestComparison_Speedup(t *testing.T) {
	c := Comparison{Dense: 100, Sparse: 25}
	if got := c.Speedup(); got != 4 {
		t.Errorf("Speedup() = %v, want 4", got)
	}
	if got := (Comparison{Dense: 100}).Speedup(); got != 0 {
		t.Errorf("Speedup() with zero sparse = %v, want 0", got)
	}
}
