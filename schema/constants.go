package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for SQL dataset sources.
	DatabaseBackend string

	// MissingMode controls how a missing period value is displayed.
	MissingMode string

	// CellKind identifies the role of a cell in a table row.
	CellKind string

	// RowKind identifies the role of a table row.
	RowKind string

	// RequestKind identifies the computation requested over a transport.
	RequestKind string

	// DatasetLayout describes how tabular input maps onto a Dataset.
	DatasetLayout string
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	YAMLOut    OutputMode = "yaml"
	ParquetOut OutputMode = "parquet"
	XLSXOut    OutputMode = "xlsx"
	HTMLOut    OutputMode = "html"
)

// All database backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// Placeholder modes for missing period values.
const (
	MissingBlank MissingMode = "blank" // default, renders as " "
	MissingZero  MissingMode = "zero"  // renders as "0"
)

// Cell kinds.
const (
	HeaderCell CellKind = "header"
	LabelCell  CellKind = "label"
	ValueCell  CellKind = "value"
	TotalCell  CellKind = "total"
	TrendCell  CellKind = "trend"
)

// Row kinds.
const (
	DataRow     RowKind = "data"
	SubtotalRow RowKind = "subtotal"
	TotalRow    RowKind = "total"
	ExternalRow RowKind = "external"
)

// Request kinds accepted by the worker and the HTTP API.
const (
	PivotRequest   RequestKind = "pivot"
	BoxplotRequest RequestKind = "boxplot"
	TrendRequest   RequestKind = "trend"
)

// Tabular layouts.
const (
	LongLayout DatasetLayout = "long" // one observation per row, value in one column
	WideLayout DatasetLayout = "wide" // area in the first column, one value column per group
)

// Placeholder texts for missing period values.
const (
	BlankPlaceholder = " "
	ZeroPlaceholder  = "0"
)

// SubtotalLabelPrefix prefixes the label cell of every subtotal row.
const SubtotalLabelPrefix = "Total for "

// Labels of the synthetic summary rows.
const (
	TotalRowLabel    = "Total"
	ExternalRowLabel = "External total"
)

// TrendHeader is the trailing column header when trend cells are emitted.
const TrendHeader = "Trend"

// DipToken marks a value column group as belonging to the dip subset.
const DipToken = "SI"

// MaxThresholdLines is the number of threshold lines a boxplot can carry.
const MaxThresholdLines = 4

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	YAMLOut:    {},
	ParquetOut: {},
	XLSXOut:    {},
	HTMLOut:    {},
}

// ValidDatabaseBackends lists all valid database backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidMissingModes lists all valid placeholder modes.
var ValidMissingModes = map[MissingMode]struct{}{
	MissingBlank: {},
	MissingZero:  {},
}

// ValidRequestKinds lists all request kinds.
var ValidRequestKinds = map[RequestKind]struct{}{
	PivotRequest:   {},
	BoxplotRequest: {},
	TrendRequest:   {},
}
