package plot

import (
	"bytes"
	"slices"
	"strings"
	"testing"

	auc "github.com/jamesainslie/go-auc"
)

func TestRender(t *testing.T) {
	t.Parallel()

	samples := []auc.Sample[float64]{
		{Label: true, Score: 0.9},
		{Label: false, Score: 0.8},
		{Label: true, Score: 0.7},
		{Label: false, Score: 0.1},
	}
	roc, ok := auc.ROCMut(slices.Clone(samples))
	if !ok {
		t.Fatal("ROCMut returned no curve")
	}
	pr, ok := auc.PRMut(samples)
	if !ok {
		t.Fatal("PRMut returned no curve")
	}

	var buf bytes.Buffer
	if err := Render(&buf, "holdout", roc, pr); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	html := buf.String()
	for _, want := range []string{"holdout", "Precision-Recall", "True positive rate", "AUC 0.7500"} {
		if !strings.Contains(html, want) {
			t.Errorf("rendered page missing %q", want)
		}
	}
}

func TestSubtitle_Empty(t *testing.T) {
	t.Parallel()

	if got := subtitle(auc.Curve[float32]{}); got != "No data" {
		t.Errorf("subtitle = %q, want %q", got, "No data")
	}
}
