package contract

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/pivotrend/schema"
)

// Color variables for console output.
var (
	IncreasingColor  = color.New(color.FgGreen, color.Bold) // IncreasingColor marks rising trajectories.
	DecreasingColor  = color.New(color.FgRed, color.Bold)   // DecreasingColor marks falling trajectories.
	OscillatingColor = color.New(color.FgYellow)            // OscillatingColor marks direction changes.
	NeutralColor     = color.New(color.FgCyan)              // NeutralColor marks flat or unknown trends.
)

// GetColorTrendLabel returns the display text of a trend label colored for console output.
func GetColorTrendLabel(label schema.TrendLabel) string {
	text := label.Display()
	switch label {
	case schema.StronglyIncreasing, schema.ModeratelyIncreasing, schema.WeaklyIncreasing:
		return IncreasingColor.Sprint(text)
	case schema.StronglyDecreasing, schema.ModeratelyDecreasing, schema.WeaklyDecreasing:
		return DecreasingColor.Sprint(text)
	case schema.OscillatingIncreasing, schema.OscillatingDecreasing:
		return OscillatingColor.Sprint(text)
	case schema.Incomplete:
		return text
	default:
		return NeutralColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. It returns os.Stdout when no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// TruncateText truncates text to a maximum width with an ellipsis suffix.
// Requires maxWidth > 3 to leave room for the ellipsis and at least one character.
func TruncateText(text string, maxWidth int) string {
	runes := []rune(text)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return text
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
