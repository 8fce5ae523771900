package schema

import (
	"math"
	"strconv"
)

// Float returns a pointer to v, for building sparse value columns.
func Float(v float64) *float64 {
	return &v
}

// ValueOrZero dereferences v, treating nil as 0.
func ValueOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// IsFinite reports whether v is neither NaN nor infinite.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// FormatValue renders v with the given precision; a negative precision uses
// the shortest representation that round-trips.
func FormatValue(v float64, precision int) string {
	return strconv.FormatFloat(v, 'f', precision, 64)
}

// Placeholder returns the display text for a missing value in the given mode.
func Placeholder(mode MissingMode) string {
	if mode == MissingZero {
		return ZeroPlaceholder
	}
	return BlankPlaceholder
}
