// Package schema has models and constants for all parts of pivotrend.
package schema

// CategoryColumn is one host-supplied category column.
// By convention column 0 carries the period token.
type CategoryColumn struct {
	DisplayName string   `json:"displayName" yaml:"displayName"`
	Values      []string `json:"values" yaml:"values"`
}

// ValueColumn is one host-supplied numeric column aligned with the category columns.
// A nil entry is a missing observation.
type ValueColumn struct {
	DisplayName string     `json:"displayName" yaml:"displayName"`
	GroupName   string     `json:"groupName,omitempty" yaml:"groupName,omitempty"`
	Values      []*float64 `json:"values" yaml:"values"`
}

// Dataset is the columnar input of one update cycle.
type Dataset struct {
	Categories []CategoryColumn `json:"categories" yaml:"categories"`
	Values     []ValueColumn    `json:"values" yaml:"values"`
}

// RowCount returns the length of the first category column, or 0 for an empty dataset.
func (d *Dataset) RowCount() int {
	if d == nil || len(d.Categories) == 0 {
		return 0
	}
	return len(d.Categories[0].Values)
}

// CategoryNames returns the display names of the category columns in order.
func (d *Dataset) CategoryNames() []string {
	names := make([]string, 0, len(d.Categories))
	for _, c := range d.Categories {
		names = append(names, c.DisplayName)
	}
	return names
}

// FlatRecord is one observation row after flattening.
type FlatRecord struct {
	Index      int      `json:"index"`      // Position in the host input, used as sort tie-breaker
	Categories []string `json:"categories"` // Categories[0] is the period token
	Value      *float64 `json:"value"`      // nil when the host had no observation
}

// Period returns the period token of the record.
func (r FlatRecord) Period() string {
	if len(r.Categories) == 0 {
		return ""
	}
	return r.Categories[0]
}

// PeriodValue pairs a period with an accumulated value.
type PeriodValue struct {
	Period string  `json:"period" yaml:"period"`
	Value  float64 `json:"value" yaml:"value"`
}
