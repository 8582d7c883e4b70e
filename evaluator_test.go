package auc

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"testing"
)

func TestEvaluator_Evaluate(t *testing.T) {
	samples := batch([]int{0, 0, 1, 1}, []float64{1, 2, 2, 3})
	before := slices.Clone(samples)

	tests := []struct {
		name string
		opts []Option
		want Algorithm
	}{
		{"default picks dense for balanced batch", nil, Dense},
		{"forced sparse", []Option{WithAlgorithm(Sparse)}, Sparse},
		{"forced dense", []Option{WithAlgorithm(Dense)}, Dense},
		{"auto with generous ratio", []Option{WithSparseRatio(0.5)}, Sparse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEvaluator(tt.opts...)
			r, err := e.Evaluate(context.Background(), samples)
			if err != nil {
				t.Fatalf("Evaluate() error = %v", err)
			}
			if r.Algorithm != tt.want {
				t.Errorf("Algorithm = %v, want %v", r.Algorithm, tt.want)
			}
			if !almostEqual(r.ROCAUC, 0.875) {
				t.Errorf("ROCAUC = %v, want 0.875", r.ROCAUC)
			}
			if !almostEqual(r.PRAUC, 11.0/12.0) {
				t.Errorf("PRAUC = %v, want %v", r.PRAUC, 11.0/12.0)
			}
			if r.Samples != 4 || r.Positives != 2 || r.Negatives != 2 {
				t.Errorf("counts = %d/%d/%d, want 4/2/2", r.Samples, r.Positives, r.Negatives)
			}
			if !slices.Equal(samples, before) {
				t.Errorf("Evaluate() reordered the caller's batch")
			}
		})
	}
}

func TestEvaluator_Undefined(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	e := NewEvaluator(WithLogger(logger))
	_, err := e.Evaluate(context.Background(), batch([]int{1, 1}, []float64{0.2, 0.4}))
	if !errors.Is(err, ErrSingleClass) {
		t.Errorf("Evaluate() error = %v, want ErrSingleClass", err)
	}
	if !strings.Contains(buf.String(), "metric undefined") {
		t.Errorf("expected debug log for undefined metric, got %q", buf.String())
	}
}

func TestOptions_IgnoreInvalid(t *testing.T) {
	e := NewEvaluator(WithAlgorithm(Algorithm(9)), WithSparseRatio(-1), WithLogger(nil))
	if e.algorithm != Auto {
		t.Errorf("algorithm = %v, want auto", e.algorithm)
	}
	if e.sparseRatio != 0.01 {
		t.Errorf("sparseRatio = %v, want 0.01", e.sparseRatio)
	}
	if e.logger == nil {
		t.Error("expected default logger")
	}
}

func TestAlgorithm_String(t *testing.T) {
	for a, want := range map[Algorithm]string{Auto: "auto", Dense: "dense", Sparse: "sparse", Algorithm(7): "unknown"} {
		if got := a.String(); got != want {
			t.Errorf("Algorithm(%d).String() = %q, want %q", int(a), got, want)
		}
	}
}
