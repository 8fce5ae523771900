// Package core has core logic for building pivot tables, boxplot summaries
// and trend labels out of a dataset.
package core

import (
	"context"
	"fmt"

	"github.com/huangsam/pivotrend/core/algo"
	"github.com/huangsam/pivotrend/internal/contract"
	"github.com/huangsam/pivotrend/schema"
)

// ExecutorFunc defines the function signature for executing dataset-backed modes.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, src contract.DatasetSource, w contract.OutputWriter) error

// PivotOptionsFromConfig maps the validated configuration onto pivot options.
func PivotOptionsFromConfig(cfg *contract.Config) PivotOptions {
	opts := DefaultPivotOptions()
	if cfg.SubtotalDepths != nil {
		opts.SubtotalDepths = cfg.SubtotalDepths
	}
	opts.LeafTrend = cfg.ShowTrendByProgram
	opts.SummaryTrend = cfg.ShowTrend
	opts.ShowSummary = cfg.ShowSyntheticTotal
	if cfg.Missing != "" {
		opts.Missing = cfg.Missing
	}
	opts.Precision = cfg.Precision
	if len(cfg.LocalTokens) > 0 {
		opts.LocalTokens = cfg.LocalTokens
	}
	opts.Collation = cfg.Locale
	opts.Settings = cfg.DisplaySettings()
	return opts
}

// ExecutePivotTable loads the dataset, runs one pivot cycle and writes the result.
// It serves as the main entry point for the 'table' mode.
func ExecutePivotTable(ctx context.Context, cfg *contract.Config, src contract.DatasetSource, w contract.OutputWriter) error {
	ds, err := src.Load(ctx)
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}
	result, err := BuildPivot(ctx, ds, PivotOptionsFromConfig(cfg))
	if err != nil {
		return fmt.Errorf("pivot table: %w", err)
	}
	return w.WritePivot(result, cfg)
}

// ExecuteBoxplot loads the dataset, summarizes every area and writes the partitions.
// It serves as the main entry point for the 'boxplot' mode.
func ExecuteBoxplot(ctx context.Context, cfg *contract.Config, src contract.DatasetSource, w contract.OutputWriter) error {
	ds, err := src.Load(ctx)
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}
	result, err := BuildBoxplot(ctx, ds, cfg.CategoryColors, cfg.ThresholdLines)
	if err != nil {
		return err
	}
	return w.WriteBoxplot(result, cfg)
}

// ClassifySeries labels an ordered series (oldest first).
func ClassifySeries(values []float64) *schema.TrendResult {
	return &schema.TrendResult{Values: values, Label: algo.ClassifyTrend(values)}
}

// ExecuteTrend classifies the given values and writes the label.
func ExecuteTrend(_ context.Context, cfg *contract.Config, values []float64, w contract.OutputWriter) error {
	return w.WriteTrend(ClassifySeries(values), cfg)
}
