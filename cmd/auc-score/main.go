package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"

	auc "github.com/jamesainslie/go-auc"
	"github.com/jamesainslie/go-auc/inference"
	"github.com/jamesainslie/go-auc/internal/config"
	"github.com/jamesainslie/go-auc/internal/dataset"
	"github.com/jamesainslie/go-auc/internal/metrics"
)

var version = "dev"

type options struct {
	modelPath    string
	featuresPath string
	logits       bool
	sparse       bool
	savePath     string
	metricsPath  string
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var opts options
	flag.StringVar(&opts.modelPath, "model", "", "Path to ONNX model file (required)")
	flag.StringVar(&opts.featuresPath, "features", "", "Path to labeled features file (required)")
	flag.BoolVar(&opts.logits, "logits", false, "Model outputs logits; apply a sigmoid")
	flag.BoolVar(&opts.sparse, "sparse", false, "Always use the sparse precision-recall algorithm")
	flag.StringVar(&opts.savePath, "save", "", "Write the scored dataset to this file")
	flag.StringVar(&opts.metricsPath, "metrics", "", "Write Prometheus metrics to this textfile")
	flag.IntVar(&cfg.PoolSize, "pool", cfg.PoolSize, "Number of ONNX sessions")
	verbose := flag.Bool("v", false, "Verbose logging")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("auc-score", version)
		return
	}
	if opts.modelPath == "" || opts.featuresPath == "" {
		fmt.Fprintln(os.Stderr, "Usage: auc-score -model MODEL -features FEATURES [OPTIONS]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger := cfg.Logger(os.Stderr, *verbose)
	if err := run(ctx, os.Stdout, logger, cfg, opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, w io.Writer, logger *slog.Logger, cfg *config.Config, opts options) error {
	features, err := dataset.LoadFeatures(opts.featuresPath)
	if err != nil {
		return err
	}
	logger.DebugContext(ctx, "loaded features",
		slog.Int("rows", features.Rows()),
		slog.Int("cols", features.Cols),
	)

	pool, err := inference.NewPool(opts.modelPath, cfg.PoolSize)
	if err != nil {
		return fmt.Errorf("loading model: %w", err)
	}
	defer func() { _ = pool.Close() }() // Cleanup error ignored in CLI

	start := time.Now()
	scores, err := pool.Score(ctx, features.Values, features.Rows(), features.Cols)
	if err != nil {
		return fmt.Errorf("scoring: %w", err)
	}
	logger.DebugContext(ctx, "scored features", slog.Duration("took", time.Since(start)))

	samples := make([]auc.Sample[float64], len(scores))
	for i, score := range scores {
		if opts.logits {
			score = inference.Sigmoid(score)
		}
		samples[i] = auc.Sample[float64]{Label: features.Labels[i], Score: float64(score)}
	}

	name := dataset.BaseName(opts.featuresPath)
	if opts.savePath != "" {
		d := &dataset.Dataset{
			Name: name,
			Header: dataset.Header{
				Source: opts.featuresPath,
				Model:  filepath.Base(opts.modelPath),
			},
			Samples: samples,
		}
		if err := dataset.Save(opts.savePath, d); err != nil {
			return err
		}
	}

	algorithm := auc.Auto
	if opts.sparse {
		algorithm = auc.Sparse
	}
	eval := auc.NewEvaluator(
		auc.WithAlgorithm(algorithm),
		auc.WithSparseRatio(cfg.SparseRatio),
		auc.WithLogger(logger),
	)

	var recorder *metrics.Recorder
	if opts.metricsPath != "" {
		recorder = metrics.New()
	}

	start = time.Now()
	report, err := eval.Evaluate(ctx, samples)
	if err != nil {
		if recorder != nil {
			recorder.Undefined(name)
			_ = recorder.WriteTextfile(opts.metricsPath)
		}
		return err
	}
	took := time.Since(start)

	fmt.Fprintf(w, "Model: %s\n", opts.modelPath)
	fmt.Fprintf(w, "Scored: %s rows (%s positive)\n",
		humanize.Comma(int64(report.Samples)), humanize.Comma(int64(report.Positives)))
	fmt.Fprintf(w, "ROC AUC: %.6f\n", report.ROCAUC)
	fmt.Fprintf(w, "PR AUC:  %.6f (%s)\n", report.PRAUC, report.Algorithm)

	if recorder != nil {
		recorder.Observe(name, report, took)
		return recorder.WriteTextfile(opts.metricsPath)
	}
	return nil
}
