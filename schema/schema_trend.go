package schema

// TrendLabel is the classification of a three-point recent trajectory.
type TrendLabel string

// All trend labels. The nine directional labels keep the inverted sign
// convention of the classifier: a numeric decrease counts as direction +1.
const (
	Equal                 TrendLabel = "Equal"
	WeaklyDecreasing      TrendLabel = "WeaklyDecreasing"
	WeaklyIncreasing      TrendLabel = "WeaklyIncreasing"
	ModeratelyDecreasing  TrendLabel = "ModeratelyDecreasing"
	StronglyDecreasing    TrendLabel = "StronglyDecreasing"
	OscillatingDecreasing TrendLabel = "OscillatingDecreasing"
	StronglyIncreasing    TrendLabel = "StronglyIncreasing"
	ModeratelyIncreasing  TrendLabel = "ModeratelyIncreasing"
	OscillatingIncreasing TrendLabel = "OscillatingIncreasing"
	Incomplete            TrendLabel = "Incomplete"
	NotComputable         TrendLabel = "NotComputable"
)

// DirectionalTrendLabels lists the nine labels reachable from a sign pair.
var DirectionalTrendLabels = []TrendLabel{
	Equal,
	WeaklyDecreasing,
	WeaklyIncreasing,
	ModeratelyDecreasing,
	StronglyDecreasing,
	OscillatingDecreasing,
	StronglyIncreasing,
	ModeratelyIncreasing,
	OscillatingIncreasing,
}

var trendDisplay = map[TrendLabel]string{
	Equal:                 "Equal",
	WeaklyDecreasing:      "Weakly decreasing",
	WeaklyIncreasing:      "Weakly increasing",
	ModeratelyDecreasing:  "Moderately decreasing",
	StronglyDecreasing:    "Strongly decreasing",
	OscillatingDecreasing: "Oscillating decreasing",
	StronglyIncreasing:    "Strongly increasing",
	ModeratelyIncreasing:  "Moderately increasing",
	OscillatingIncreasing: "Oscillating increasing",
	Incomplete:            "",
	NotComputable:         "Unknown",
}

// Display returns the human-readable form of the label.
// Incomplete renders as an empty string since its cell carries no content.
func (t TrendLabel) Display() string {
	if s, ok := trendDisplay[t]; ok {
		return s
	}
	return string(t)
}

// IsDirectional reports whether the label came from a full sign pair.
func (t TrendLabel) IsDirectional() bool {
	switch t {
	case Incomplete, NotComputable, "":
		return false
	default:
		return true
	}
}

// ParseTrendLabel resolves a label name, returning false for unknown names.
func ParseTrendLabel(s string) (TrendLabel, bool) {
	t := TrendLabel(s)
	_, ok := trendDisplay[t]
	return t, ok
}
