package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	auc "github.com/jamesainslie/go-auc"
)

func TestRecorder_Observe(t *testing.T) {
	r := New()
	r.Observe("holdout", auc.Report{
		Samples:   10,
		Positives: 3,
		Negatives: 7,
		ROCAUC:    0.8,
		PRAUC:     0.6,
		Algorithm: auc.Sparse,
	}, 5*time.Millisecond)

	assert.Equal(t, 0.8, testutil.ToFloat64(r.rocAUC.WithLabelValues("holdout")))
	assert.Equal(t, 0.6, testutil.ToFloat64(r.prAUC.WithLabelValues("holdout", "sparse")))
	assert.Equal(t, 3.0, testutil.ToFloat64(r.samples.WithLabelValues("holdout", "positive")))
	assert.Equal(t, 7.0, testutil.ToFloat64(r.samples.WithLabelValues("holdout", "negative")))
	assert.Equal(t, 1, testutil.CollectAndCount(r.duration))
}

func TestRecorder_Undefined(t *testing.T) {
	r := New(WithNamespace("eval"))
	r.Undefined("empty")
	r.Undefined("empty")

	assert.Equal(t, 2.0, testutil.ToFloat64(r.undefined.WithLabelValues("empty")))

	expected := `
# HELP eval_undefined_total Evaluations that produced no result
# TYPE eval_undefined_total counter
eval_undefined_total{dataset="empty"} 2
`
	require.NoError(t, testutil.GatherAndCompare(r.Registry(), strings.NewReader(expected), "eval_undefined_total"))
}

func TestRecorder_WriteTextfile(t *testing.T) {
	r := New(WithHistogramBuckets([]float64{0.01, 0.1, 1}))
	r.Observe("train", auc.Report{ROCAUC: 0.91, PRAUC: 0.5, Algorithm: auc.Dense, Positives: 1, Negatives: 1, Samples: 2}, time.Millisecond)

	path := filepath.Join(t.TempDir(), "auc.prom")
	require.NoError(t, r.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `auc_roc_auc{dataset="train"} 0.91`)
	assert.Contains(t, string(data), `auc_pr_auc{algorithm="dense",dataset="train"} 0.5`)
	assert.Contains(t, string(data), `auc_evaluation_duration_seconds_bucket{dataset="train",le="0.01"} 1`)
}

func TestWithRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := New(WithRegistry(reg), WithNamespace("eval"))
	r.Undefined("x")

	assert.Same(t, reg, r.Registry())
	count, err := testutil.GatherAndCount(reg, "eval_undefined_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
