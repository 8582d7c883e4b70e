package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/jamesainslie/go-auc/internal/bench"
	"github.com/jamesainslie/go-auc/internal/config"
	"github.com/jamesainslie/go-auc/internal/dataset"
)

var version = "dev"

type options struct {
	mode    string
	dataset string
	out     string
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	var opts options
	flag.StringVar(&opts.mode, "mode", "compare", "Mode: compare, sweep or generate")
	flag.StringVar(&opts.dataset, "dataset", "", "Dataset file for sweep mode")
	flag.StringVar(&opts.out, "out", "synthetic.pb.lz4", "Output file for generate mode")
	flag.IntVar(&cfg.Samples, "n", cfg.Samples, "Synthetic batch size")
	flag.Float64Var(&cfg.Balance, "balance", cfg.Balance, "Probability that a synthetic sample is positive")
	flag.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "Random seed")
	flag.IntVar(&cfg.Runs, "runs", cfg.Runs, "Timed runs per algorithm")
	flag.Float64Var(&cfg.PrecisionWeight, "wp", cfg.PrecisionWeight, "Precision weight")
	flag.Float64Var(&cfg.RecallWeight, "wr", cfg.RecallWeight, "Recall weight")
	flag.Float64Var(&cfg.SweepMin, "sweep-min", cfg.SweepMin, "Sweep minimum threshold")
	flag.Float64Var(&cfg.SweepMax, "sweep-max", cfg.SweepMax, "Sweep maximum threshold")
	flag.Float64Var(&cfg.SweepStep, "sweep-step", cfg.SweepStep, "Sweep step size")
	verbose := flag.Bool("v", false, "Verbose logging")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("auc-bench", version)
		return
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		flag.Usage()
		os.Exit(1)
	}

	logger := cfg.Logger(os.Stderr, *verbose)
	if err := run(context.Background(), os.Stdout, logger, cfg, opts); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, w io.Writer, logger *slog.Logger, cfg *config.Config, opts options) error {
	switch opts.mode {
	case "compare":
		return runCompare(ctx, w, logger, cfg)
	case "sweep":
		if opts.dataset == "" {
			return fmt.Errorf("-dataset required for sweep mode")
		}
		return runSweep(w, cfg, opts.dataset)
	case "generate":
		return runGenerate(ctx, w, logger, cfg, opts.out)
	default:
		return fmt.Errorf("unknown mode: %s", opts.mode)
	}
}

func runCompare(ctx context.Context, w io.Writer, logger *slog.Logger, cfg *config.Config) error {
	samples := dataset.Generate(cfg.Samples, cfg.Balance, cfg.Seed)
	logger.DebugContext(ctx, "generated batch",
		slog.Int("samples", cfg.Samples),
		slog.Float64("balance", cfg.Balance),
		slog.Uint64("seed", cfg.Seed),
	)

	c, ok := bench.Compare(samples, cfg.Runs)
	if !ok {
		return fmt.Errorf("batch of %s samples has no precision-recall AUC; raise -n or -balance",
			humanize.Comma(int64(cfg.Samples)))
	}

	fmt.Fprintf(w, "Dense vs sparse precision-recall AUC (%s samples, %s positive, best of %d)\n",
		humanize.Comma(int64(c.Samples)), humanize.Comma(int64(c.Positives)), cfg.Runs)

	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"Algorithm", "AUC", "Time"})
	tbl.AppendRow(table.Row{"dense", fmt.Sprintf("%.8f", c.DenseAUC), c.Dense})
	tbl.AppendRow(table.Row{"sparse", fmt.Sprintf("%.8f", c.SparseAUC), c.Sparse})
	tbl.AppendFooter(table.Row{"speedup", fmt.Sprintf("%.1fx", c.Speedup()), ""})
	tbl.Render()

	fmt.Fprintf(w, "AUC difference: %.3g\n", c.DenseAUC-c.SparseAUC)
	return nil
}

func runSweep(w io.Writer, cfg *config.Config, path string) error {
	d, err := dataset.Load(path)
	if err != nil {
		return err
	}

	bcfg := bench.Config{
		Threshold:       cfg.Threshold,
		PrecisionWeight: cfg.PrecisionWeight,
		RecallWeight:    cfg.RecallWeight,
	}
	thresholds := bench.SweepThresholds(cfg.SweepMin, cfg.SweepMax, cfg.SweepStep)
	results := bench.Sweep(d.Samples, bcfg, thresholds)

	fmt.Fprintf(w, "Threshold Sweep Results for %s (wp=%.1f, wr=%.1f)\n", d.Name, cfg.PrecisionWeight, cfg.RecallWeight)

	// Print sorted by threshold for readability
	byThreshold := slices.Clone(results)
	slices.SortFunc(byThreshold, func(a, b bench.SweepResult) int {
		switch {
		case a.Threshold < b.Threshold:
			return -1
		case a.Threshold > b.Threshold:
			return 1
		}
		return 0
	})

	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"Thresh", "Prec", "Rec", "F1", "Weighted"})
	for _, r := range byThreshold {
		tbl.AppendRow(table.Row{
			fmt.Sprintf("%.3f", r.Threshold),
			fmt.Sprintf("%.2f", r.Metrics.Precision),
			fmt.Sprintf("%.2f", r.Metrics.Recall),
			fmt.Sprintf("%.2f", r.Metrics.F1),
			fmt.Sprintf("%.2f", r.Metrics.WeightedScore),
		})
	}
	tbl.Render()

	if len(results) > 0 {
		best := results[0]
		fmt.Fprintf(w, "Optimal: %.3f (Weighted: %.2f)\n", best.Threshold, best.Metrics.WeightedScore)
	}
	return nil
}

func runGenerate(ctx context.Context, w io.Writer, logger *slog.Logger, cfg *config.Config, out string) error {
	d := &dataset.Dataset{
		Header: dataset.Header{
			Source:      "auc-bench " + version,
			Description: fmt.Sprintf("synthetic n=%d balance=%g seed=%d", cfg.Samples, cfg.Balance, cfg.Seed),
		},
		Samples: dataset.Generate(cfg.Samples, cfg.Balance, cfg.Seed),
	}
	if err := dataset.Save(out, d); err != nil {
		return err
	}
	logger.DebugContext(ctx, "saved dataset", slog.String("path", out))

	fmt.Fprintf(w, "Wrote %s samples (%s positive) to %s\n",
		humanize.Comma(int64(len(d.Samples))), humanize.Comma(int64(d.Positives())), out)
	return nil
}
