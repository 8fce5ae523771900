package core

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/huangsam/pivotrend/core/agg"
	"github.com/huangsam/pivotrend/schema"
	"github.com/rs/zerolog"
)

// BuildBoxplot computes the boxplot partitions of ds with optional per-area colors.
func BuildBoxplot(ctx context.Context, ds *schema.Dataset, colors map[string]string, thresholds []schema.ThresholdLine) (*schema.BoxplotResult, error) {
	cycleID := uuid.NewString()
	logger := zerolog.Ctx(ctx).With().Str("cycle", cycleID).Logger()

	all, dip, cds, err := agg.SummarizeAreas(ds, colors)
	if err != nil {
		return nil, fmt.Errorf("boxplot cycle: %w", err)
	}
	logger.Info().Int("areas", len(all)).Int("dip", len(dip)).Int("cds", len(cds)).Msg("boxplot cycle complete")

	if thresholds == nil {
		thresholds = []schema.ThresholdLine{}
	}
	return &schema.BoxplotResult{
		CycleID:    cycleID,
		All:        all,
		Dip:        dip,
		Cds:        cds,
		Thresholds: thresholds,
	}, nil
}
