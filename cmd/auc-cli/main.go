package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"

	auc "github.com/jamesainslie/go-auc"
	"github.com/jamesainslie/go-auc/internal/config"
	"github.com/jamesainslie/go-auc/internal/dataset"
	"github.com/jamesainslie/go-auc/internal/metrics"
	"github.com/jamesainslie/go-auc/internal/plot"
)

var version = "dev"

type options struct {
	sparse      bool
	curve       bool
	plotPath    string
	metricsPath string
	verbose     bool
}

func main() {
	var opts options
	flag.BoolVar(&opts.sparse, "sparse", false, "Always use the sparse precision-recall algorithm")
	flag.BoolVar(&opts.curve, "curve", false, "Print curve points")
	flag.StringVar(&opts.plotPath, "plot", "", "Write an HTML plot of the curves to this file")
	flag.StringVar(&opts.metricsPath, "metrics", "", "Write Prometheus metrics to this textfile")
	flag.BoolVar(&opts.verbose, "v", false, "Verbose logging")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("auc-cli", version)
		return
	}
	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Usage: auc-cli [OPTIONS] DATASET...")
		flag.PrintDefaults()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger := cfg.Logger(os.Stderr, opts.verbose)

	if err := run(context.Background(), os.Stdout, logger, cfg, opts, flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, w io.Writer, logger *slog.Logger, cfg *config.Config, opts options, paths []string) error {
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

	var undefined []error
	for _, path := range paths {
		d, err := dataset.Load(path)
		if err != nil {
			return err
		}
		logger.DebugContext(ctx, "loaded dataset", slog.String("path", path), slog.Int("samples", len(d.Samples)))

		start := time.Now()
		report, err := eval.Evaluate(ctx, d.Samples)
		took := time.Since(start)

		fmt.Fprintf(w, "Dataset: %s (%s samples, %s positive)\n",
			d.Name, humanize.Comma(int64(len(d.Samples))), humanize.Comma(int64(d.Positives())))
		if d.Header.Model != "" {
			fmt.Fprintf(w, "Model: %s\n", d.Header.Model)
		}

		if errors.Is(err, auc.ErrUndefined) {
			fmt.Fprintf(w, "AUC: undefined (%v)\n\n", err)
			if recorder != nil {
				recorder.Undefined(d.Name)
			}
			undefined = append(undefined, fmt.Errorf("%s: %w", d.Name, err))
			continue
		}
		if err != nil {
			return err
		}

		fmt.Fprintf(w, "ROC AUC: %.6f\n", report.ROCAUC)
		fmt.Fprintf(w, "PR AUC:  %.6f (%s)\n\n", report.PRAUC, report.Algorithm)
		if recorder != nil {
			recorder.Observe(d.Name, report, took)
		}

		if !opts.curve && opts.plotPath == "" {
			continue
		}
		roc, pr := curves(d.Samples, report.Algorithm)
		if opts.curve {
			printCurve(w, "ROC", "FPR", "TPR", roc)
			printCurve(w, "Precision-Recall", "Recall", "Precision", pr)
		}
		if opts.plotPath != "" {
			if err := writePlot(plotFile(opts.plotPath, d.Name, len(paths) > 1), d.Name, roc, pr); err != nil {
				return err
			}
		}
	}

	if recorder != nil {
		if err := recorder.WriteTextfile(opts.metricsPath); err != nil {
			return err
		}
	}
	return errors.Join(undefined...)
}

// curves builds both curves of a validated batch without reordering it.
func curves(samples []auc.Sample[float64], algorithm auc.Algorithm) (roc, pr auc.Curve[float64]) {
	batch := slices.Clone(samples)
	if algorithm == auc.Sparse {
		pr, _ = auc.PRMutSparse(batch)
	} else {
		pr, _ = auc.PRMut(batch)
	}
	roc, _ = auc.ROCMut(batch)
	return roc, pr
}

func printCurve(w io.Writer, title, xName, yName string, c auc.Curve[float64]) {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	tbl.SetStyle(table.StyleLight)
	tbl.SetTitle(title)
	tbl.AppendHeader(table.Row{"#", xName, yName})
	i := 0
	for x, y := range c.Points() {
		tbl.AppendRow(table.Row{i, fmt.Sprintf("%.6f", x), fmt.Sprintf("%.6f", y)})
		i++
	}
	tbl.AppendFooter(table.Row{"", "AUC", fmt.Sprintf("%.6f", c.AUC())})
	tbl.Render()
}

// plotFile names the plot of one dataset. With several datasets the dataset
// name is inserted before the extension.
func plotFile(path, name string, several bool) string {
	if !several {
		return path
	}
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "-" + name + ext
}

func writePlot(path, name string, roc, pr auc.Curve[float64]) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create plot: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close plot: %w", cerr)
		}
	}()
	return plot.Render(file, name, roc, pr)
}
