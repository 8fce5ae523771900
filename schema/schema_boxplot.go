package schema

// BoxPlotSummary is the five-number summary of one area with its fences and outliers.
type BoxPlotSummary struct {
	Area        string    `json:"area" yaml:"area"`
	Min         float64   `json:"min" yaml:"min"`
	Q1          float64   `json:"q1" yaml:"q1"`
	Median      float64   `json:"median" yaml:"median"`
	Mean        float64   `json:"mean" yaml:"mean"`
	Q3          float64   `json:"q3" yaml:"q3"`
	Max         float64   `json:"max" yaml:"max"`
	IQR         float64   `json:"iqr" yaml:"iqr"`
	LowerBound  float64   `json:"lowerBound" yaml:"lowerBound"` // clamped to 0
	UpperBound  float64   `json:"upperBound" yaml:"upperBound"` // clamped to 100
	Values      []float64 `json:"values" yaml:"values"`
	OutliersInf []float64 `json:"outliersInf" yaml:"outliersInf"`
	OutliersSup []float64 `json:"outliersSup" yaml:"outliersSup"`
	Color       string    `json:"color,omitempty" yaml:"color,omitempty"`
}

// ThresholdLine is a horizontal reference line drawn across the boxplot.
type ThresholdLine struct {
	Color string  `json:"color" yaml:"color"`
	Value float64 `json:"value" yaml:"value"`
}

// BoxplotResult is the output of one boxplot update cycle, split in three partitions.
type BoxplotResult struct {
	CycleID    string           `json:"cycleId" yaml:"cycleId"`
	All        []BoxPlotSummary `json:"all" yaml:"all"`
	Dip        []BoxPlotSummary `json:"dip" yaml:"dip"`
	Cds        []BoxPlotSummary `json:"cds" yaml:"cds"`
	Thresholds []ThresholdLine  `json:"thresholds" yaml:"thresholds"`
}

// Partitions returns the named partitions in rendering order.
func (r *BoxplotResult) Partitions() []BoxplotPartition {
	return []BoxplotPartition{
		{Name: "all", Summaries: r.All},
		{Name: "dip", Summaries: r.Dip},
		{Name: "cds", Summaries: r.Cds},
	}
}

// BoxplotPartition is one named slice of a BoxplotResult.
type BoxplotPartition struct {
	Name      string
	Summaries []BoxPlotSummary
}

// TrendResult is the answer to a standalone trend classification request.
type TrendResult struct {
	Values []float64  `json:"values" yaml:"values"`
	Label  TrendLabel `json:"label" yaml:"label"`
}
