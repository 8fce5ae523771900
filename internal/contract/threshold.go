package contract

import (
	"context"
	"errors"
	"fmt"

	"github.com/huangsam/pivotrend/schema"
	"github.com/rs/zerolog"
)

// ErrOutOfRangeConfig is returned when a configured value falls outside its domain.
var ErrOutOfRangeConfig = errors.New("configuration value out of range")

// Threshold line defaults.
const (
	DefaultThresholdColor = "#000000"
	DefaultThresholdValue = 25.0
	minThresholdValue     = 0.0
	maxThresholdValue     = 100.0
)

// ThresholdLineRaw is one threshold line as read from the config file.
type ThresholdLineRaw struct {
	Color *string  `mapstructure:"color"`
	Value *float64 `mapstructure:"value"`
}

// NewThresholdLine returns a line with the default color and value.
func NewThresholdLine() schema.ThresholdLine {
	return schema.ThresholdLine{Color: DefaultThresholdColor, Value: DefaultThresholdValue}
}

// SetThresholdValue stores v on line when it lies in 0..100 inclusive.
// Otherwise the line keeps its previous value.
func SetThresholdValue(line *schema.ThresholdLine, v float64) error {
	if !(v >= minThresholdValue && v <= maxThresholdValue) { // rejects NaN
		return fmt.Errorf("%w: threshold %v must be between %v and %v", ErrOutOfRangeConfig, v, minThresholdValue, maxThresholdValue)
	}
	line.Value = v
	return nil
}

// BuildThresholdLines creates count lines from defaults and raw overrides.
// Out-of-range values are logged and skipped; a count above the maximum is an error.
func BuildThresholdLines(ctx context.Context, count int, raw []ThresholdLineRaw) ([]schema.ThresholdLine, error) {
	if count < 0 || count > schema.MaxThresholdLines {
		return nil, fmt.Errorf("threshold-lines must be between 0 and %d (received %d)", schema.MaxThresholdLines, count)
	}
	lines := make([]schema.ThresholdLine, count)
	for i := range lines {
		lines[i] = NewThresholdLine()
		if i >= len(raw) {
			continue
		}
		if raw[i].Color != nil && *raw[i].Color != "" {
			lines[i].Color = *raw[i].Color
		}
		if raw[i].Value != nil {
			if err := SetThresholdValue(&lines[i], *raw[i].Value); err != nil {
				zerolog.Ctx(ctx).Warn().Err(err).Int("line", i+1).Float64("kept", lines[i].Value).Msg("rejected threshold value")
			}
		}
	}
	return lines, nil
}
