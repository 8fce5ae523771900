package schema

// Request is one computation submitted over HTTP, the message queue or MCP.
// The dataset comes inline, from Input (file path or s3:// URI) or, when the
// server has a database backend, from the stored dataset named DatasetName.
type Request struct {
	ID          string         `json:"id,omitempty"`
	Kind        RequestKind    `json:"kind"`
	Dataset     *Dataset       `json:"dataset,omitempty"`
	Input       string         `json:"input,omitempty"`
	DatasetName string         `json:"datasetName,omitempty"`
	Values      []float64      `json:"values,omitempty"` // trend requests, oldest first
	Options     RequestOptions `json:"options"`
}

// RequestOptions overrides the server configuration for one request.
// Nil fields keep the configured value.
type RequestOptions struct {
	SubtotalDepths     []int             `json:"subtotalDepths,omitempty"`
	ShowTrend          *bool             `json:"showTrend,omitempty"`
	ShowTrendByProgram *bool             `json:"showTrendByProgram,omitempty"`
	ShowSyntheticTotal *bool             `json:"showSyntheticTotal,omitempty"`
	Missing            MissingMode       `json:"missing,omitempty"`
	Precision          *int              `json:"precision,omitempty"`
	LocalTokens        []string          `json:"localTokens,omitempty"`
	Thresholds         []ThresholdLine   `json:"thresholds,omitempty"`
	CategoryColors     map[string]string `json:"categoryColors,omitempty"`
}

// Response is the answer to a Request. Exactly one result is set, or Error.
type Response struct {
	ID      string         `json:"id,omitempty"`
	Kind    RequestKind    `json:"kind"`
	Pivot   *PivotResult   `json:"pivot,omitempty"`
	Boxplot *BoxplotResult `json:"boxplot,omitempty"`
	Trend   *TrendResult   `json:"trend,omitempty"`
	Error   string         `json:"error,omitempty"`
}
