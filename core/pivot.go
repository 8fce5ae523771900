package core

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/huangsam/pivotrend/core/agg"
	"github.com/huangsam/pivotrend/schema"
	"github.com/rs/zerolog"
	"golang.org/x/text/language"
)

// ErrShapeMismatch aborts a cycle before any hierarchy work.
var ErrShapeMismatch = agg.ErrShapeMismatch

// PivotOptions controls one pivot update cycle.
type PivotOptions struct {
	SubtotalDepths []int
	LeafTrend      bool // trend cell on every leaf and subtotal row
	SummaryTrend   bool // trend on the synthetic summary rows
	ShowSummary    bool
	Missing        schema.MissingMode
	Precision      int
	LocalTokens    []string
	Collation      language.Tag
	Settings       schema.DisplaySettings
}

// DefaultPivotOptions mirrors the default configuration.
func DefaultPivotOptions() PivotOptions {
	return PivotOptions{
		SubtotalDepths: []int{0},
		ShowSummary:    true,
		Missing:        schema.MissingBlank,
		Precision:      -1,
		LocalTokens:    DefaultLocalTokens,
		Collation:      language.Und,
	}
}

// BuildPivot runs one full cycle: flatten, sort, build the hierarchy, emit rows
// and compute the summary block. Nothing survives between calls.
func BuildPivot(ctx context.Context, ds *schema.Dataset, opts PivotOptions) (*schema.PivotResult, error) {
	start := time.Now()
	cycleID := uuid.NewString()
	logger := zerolog.Ctx(ctx).With().Str("cycle", cycleID).Logger()

	records, err := agg.FlattenDataset(ds)
	if err != nil {
		return nil, err
	}
	agg.SortRecords(records, opts.Collation)
	periods := agg.PeriodSet(records)

	categoryCount := len(ds.Categories)
	h, err := BuildHierarchy(records, categoryCount)
	if err != nil {
		return nil, err
	}
	logger.Debug().Int("records", len(records)).Int("periods", len(periods)).Int("depth", h.Depth).Msg("hierarchy built")

	emitter := &Emitter{
		Periods:        periods,
		Depth:          h.Depth,
		SubtotalDepths: opts.SubtotalDepths,
		Records:        records,
		LeafTrend:      opts.LeafTrend,
		Missing:        opts.Missing,
		Precision:      opts.Precision,
	}
	for _, d := range opts.SubtotalDepths {
		if !emitter.hasSubtotal(d) {
			logger.Warn().Int("depth", d).Int("hierarchyDepth", h.Depth).Msg("subtotal depth outside the hierarchy, skipping")
		}
	}
	tracker := NewTotals(opts.LocalTokens)
	rows := emitter.Emit(h.Root, tracker)

	settings := opts.Settings
	settings.ShowTrendByProgram = opts.LeafTrend
	settings.ShowTrend = opts.SummaryTrend
	settings.ShowSyntheticTotal = opts.ShowSummary

	result := &schema.PivotResult{
		CycleID:  cycleID,
		Headers:  ds.CategoryNames()[1:],
		Periods:  periods,
		Rows:     rows,
		Settings: settings,
	}
	if opts.ShowSummary {
		summary := tracker.Summary(periods)
		if !opts.SummaryTrend {
			summary.TotalTrend = ""
			summary.ExternalTrend = ""
		}
		result.Summary = &summary
	}

	logger.Info().Int("rows", len(rows)).Dur("elapsed", time.Since(start)).Msg("pivot cycle complete")
	return result, nil
}
