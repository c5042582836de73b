package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"retailboard/internal/config"
	"retailboard/internal/exporter"
	"retailboard/internal/infrastructure"
	"retailboard/internal/store"
)

func main() {
	inFile := flag.String("in", "data/raw/online_retail.csv", "raw transaction export to clean")
	outFile := flag.String("out", "", "output path for the cleaned dataset (defaults to the configured data file)")
	sampleRows := flag.Int("sample", 10000, "number of rows written to the sample file, 0 disables")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = config.Default()
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}

	if *outFile == "" {
		*outFile = cfg.Paths.DataFile
	}

	ctx := context.Background()
	logger.InfoContext(ctx, "starting dataset preprocessing",
		slog.String("input", *inFile),
		slog.String("output", *outFile))

	s, err := store.Load(ctx, logger, *inFile, "")
	if err != nil {
		logger.ErrorContext(ctx, "failed to read raw export", slog.String("error", err.Error()))
		os.Exit(1)
	}

	records := make([][]string, 0, s.Len())
	for _, row := range s.Rows() {
		records = append(records, exporter.RowRecord(row))
	}

	var g errgroup.Group

	g.Go(func() error {
		writer := exporter.NewCSVWriter(filepath.Dir(*outFile))
		return writer.WriteFile(filepath.Base(*outFile), exporter.RowHeaders, records)
	})

	if *sampleRows > 0 && cfg.Paths.SampleFile != "" {
		n := *sampleRows
		if n > len(records) {
			n = len(records)
		}
		g.Go(func() error {
			writer := exporter.NewCSVWriter(filepath.Dir(cfg.Paths.SampleFile))
			if err := writer.WriteFile(filepath.Base(cfg.Paths.SampleFile), exporter.RowHeaders, records[:n]); err != nil {
				return err
			}
			logger.InfoContext(ctx, "sample dataset written",
				slog.String("path", cfg.Paths.SampleFile),
				slog.Int("rows", n))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		logger.ErrorContext(ctx, "failed to write cleaned dataset", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.InfoContext(ctx, "preprocessing complete",
		slog.String("output", *outFile),
		slog.Int("rows", s.Len()))
}
