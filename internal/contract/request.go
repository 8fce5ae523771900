package contract

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/huangsam/pivotrend/schema"
	"github.com/rs/zerolog"
)

// ApplyRequestOptions validates per-request overrides and stores them on cfg.
// Out-of-range threshold values are logged and replaced by the default.
func ApplyRequestOptions(ctx context.Context, cfg *Config, opts schema.RequestOptions) error {
	if opts.SubtotalDepths != nil {
		for _, d := range opts.SubtotalDepths {
			if d < 0 {
				return fmt.Errorf("subtotal depths must not be negative (received %d)", d)
			}
		}
		cfg.SubtotalDepths = slices.Clone(opts.SubtotalDepths)
	}
	if opts.ShowTrend != nil {
		cfg.ShowTrend = *opts.ShowTrend
	}
	if opts.ShowTrendByProgram != nil {
		cfg.ShowTrendByProgram = *opts.ShowTrendByProgram
	}
	if opts.ShowSyntheticTotal != nil {
		cfg.ShowSyntheticTotal = *opts.ShowSyntheticTotal
	}
	if opts.Missing != "" {
		if _, ok := schema.ValidMissingModes[opts.Missing]; !ok {
			return fmt.Errorf("invalid missing mode '%s'. must be blank, zero", opts.Missing)
		}
		cfg.Missing = opts.Missing
	}
	if opts.Precision != nil {
		if *opts.Precision < -1 || *opts.Precision > MaxPrecision {
			return fmt.Errorf("precision must be between -1 and %d (received %d)", MaxPrecision, *opts.Precision)
		}
		cfg.Precision = *opts.Precision
	}
	if opts.LocalTokens != nil {
		cfg.LocalTokens = slices.Clone(opts.LocalTokens)
	}
	if opts.Thresholds != nil {
		if len(opts.Thresholds) > schema.MaxThresholdLines {
			return fmt.Errorf("at most %d threshold lines are allowed (received %d)", schema.MaxThresholdLines, len(opts.Thresholds))
		}
		lines := make([]schema.ThresholdLine, len(opts.Thresholds))
		for i, in := range opts.Thresholds {
			lines[i] = NewThresholdLine()
			if in.Color != "" {
				lines[i].Color = in.Color
			}
			if err := SetThresholdValue(&lines[i], in.Value); err != nil {
				zerolog.Ctx(ctx).Warn().Err(err).Int("line", i+1).Float64("kept", lines[i].Value).Msg("rejected threshold value")
			}
		}
		cfg.ThresholdLines = lines
	}
	if len(opts.CategoryColors) > 0 {
		if cfg.CategoryColors == nil {
			cfg.CategoryColors = make(map[string]string, len(opts.CategoryColors))
		}
		maps.Copy(cfg.CategoryColors, opts.CategoryColors)
	}
	return nil
}
