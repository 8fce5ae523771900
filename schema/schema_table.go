package schema

// Cell is one emitted table cell.
// Header cells carry RowSpan and Depth, label cells carry ColSpan,
// value and total cells carry Period, trend cells carry Trend.
type Cell struct {
	Kind       CellKind   `json:"kind" yaml:"kind"`
	Text       string     `json:"text" yaml:"text"`
	Value      *float64   `json:"value,omitempty" yaml:"value,omitempty"`
	Period     string     `json:"period,omitempty" yaml:"period,omitempty"`
	RowSpan    int        `json:"rowSpan,omitempty" yaml:"rowSpan,omitempty"`
	ColSpan    int        `json:"colSpan,omitempty" yaml:"colSpan,omitempty"`
	Depth      int        `json:"depth" yaml:"depth"`
	Parity     int        `json:"parity" yaml:"parity"`
	Trend      TrendLabel `json:"trend,omitempty" yaml:"trend,omitempty"`
	Suppressed bool       `json:"suppressed,omitempty" yaml:"suppressed,omitempty"` // structural placeholder with no content
}

// TableRow is one rendered row of the pivot table.
type TableRow struct {
	Kind  RowKind  `json:"kind" yaml:"kind"`
	Path  []string `json:"path" yaml:"path"` // category path from the top-level key down to this row
	Cells []Cell   `json:"cells" yaml:"cells"`
}

// SummaryBlock is the synthetic two-row totals table.
type SummaryBlock struct {
	Totals         []PeriodValue `json:"totals" yaml:"totals"`
	ExternalTotals []PeriodValue `json:"externalTotals" yaml:"externalTotals"`
	TotalTrend     TrendLabel    `json:"totalTrend,omitempty" yaml:"totalTrend,omitempty"`
	ExternalTrend  TrendLabel    `json:"externalTrend,omitempty" yaml:"externalTrend,omitempty"`
}

// DisplaySettings carries the rendering toggles alongside a result.
type DisplaySettings struct {
	ShowLogo           bool   `json:"showLogo" yaml:"showLogo"`
	LogoSize           int    `json:"logoSize" yaml:"logoSize"`
	LogoURL            string `json:"logoUrl,omitempty" yaml:"logoUrl,omitempty"`
	ShowSyntheticTotal bool   `json:"showSyntheticTotal" yaml:"showSyntheticTotal"`
	ShowTrend          bool   `json:"showTrend" yaml:"showTrend"`
	ShowTrendByProgram bool   `json:"showTrendByProgram" yaml:"showTrendByProgram"`
}

// PivotResult is the full output of one pivot update cycle.
type PivotResult struct {
	CycleID  string          `json:"cycleId" yaml:"cycleId"`
	Headers  []string        `json:"headers" yaml:"headers"` // category display names, excluding the period column
	Periods  []string        `json:"periods" yaml:"periods"` // descending by leading integer
	Rows     []TableRow      `json:"rows" yaml:"rows"`
	Summary  *SummaryBlock   `json:"summary,omitempty" yaml:"summary,omitempty"`
	Settings DisplaySettings `json:"settings" yaml:"settings"`
}

// HasTrendColumn reports whether the table carries a trailing trend column.
func (r *PivotResult) HasTrendColumn() bool {
	return r.Settings.ShowTrendByProgram
}

// ColumnCount returns the number of grid columns of the table body.
func (r *PivotResult) ColumnCount() int {
	n := len(r.Headers) + len(r.Periods)
	if r.HasTrendColumn() {
		n++
	}
	return n
}

// HeaderRow returns the rendered header line of the table.
func (r *PivotResult) HeaderRow() []string {
	header := make([]string, 0, r.ColumnCount())
	header = append(header, r.Headers...)
	header = append(header, r.Periods...)
	if r.HasTrendColumn() {
		header = append(header, TrendHeader)
	}
	return header
}
