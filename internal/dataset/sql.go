package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
	"github.com/huangsam/pivotrend/internal/contract"
	"github.com/huangsam/pivotrend/schema"
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite" // SQLite driver
)

// DefaultSQLitePath is used when the sqlite backend has no connection string.
const DefaultSQLitePath = "pivotrend.db"

// Table names created by the embedded migrations.
const (
	ObservationsTable = "pivot_observations"
	SamplesTable      = "boxplot_samples"
)

// SQLSource loads a dataset by running a query. In the long layout the last
// result column is the value and the previous ones are categories. In the wide
// layout the query returns (area, series, value) triples.
type SQLSource struct {
	DB     *sql.DB
	Query  string
	Args   []any
	Layout schema.DatasetLayout
}

var _ contract.DatasetSource = &SQLSource{} // Compile-time check

// DriverName maps a backend to its database/sql driver name.
func DriverName(backend schema.DatabaseBackend) (string, error) {
	switch backend {
	case schema.SQLiteBackend:
		return "sqlite", nil
	case schema.MySQLBackend:
		return "mysql", nil
	case schema.PostgreSQLBackend:
		return "pgx", nil
	default:
		return "", fmt.Errorf("unsupported backend: %s", backend)
	}
}

// OpenDB opens and pings a database for backend.
func OpenDB(ctx context.Context, backend schema.DatabaseBackend, connStr string) (*sql.DB, error) {
	driverName, err := DriverName(backend)
	if err != nil {
		return nil, err
	}
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = DefaultSQLitePath
	}
	db, err := sql.Open(driverName, connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", backend, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// Placeholder returns the n-th (1-based) bind parameter for backend.
func Placeholder(backend schema.DatabaseBackend, n int) string {
	if backend == schema.PostgreSQLBackend {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

// DefaultQuery selects the rows of one dataset from the migrated tables.
func DefaultQuery(backend schema.DatabaseBackend, layout schema.DatasetLayout, levels int) string {
	if layout == schema.WideLayout {
		return fmt.Sprintf("SELECT area, series, value FROM %s WHERE dataset = %s",
			SamplesTable, Placeholder(backend, 1))
	}
	cols := []string{"period"}
	for l := 1; l <= levels; l++ {
		cols = append(cols, fmt.Sprintf("level%d", l))
	}
	return fmt.Sprintf("SELECT %s, value FROM %s WHERE dataset = %s",
		strings.Join(cols, ", "), ObservationsTable, Placeholder(backend, 1))
}

// Load implements the DatasetSource interface.
func (s *SQLSource) Load(ctx context.Context) (*schema.Dataset, error) {
	rows, err := s.DB.QueryContext(ctx, s.Query, s.Args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query dataset: %w", err)
	}
	defer func() { _ = rows.Close() }()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read result columns: %w", err)
	}
	if len(cols) < 2 {
		return nil, fmt.Errorf("query must return at least two columns, got %d", len(cols))
	}
	if s.Layout == schema.WideLayout && len(cols) != 3 {
		return nil, fmt.Errorf("wide layout query must return area, series and value, got %d columns", len(cols))
	}

	cats := make([]sql.NullString, len(cols)-1)
	var value sql.NullFloat64
	dest := make([]any, 0, len(cols))
	for i := range cats {
		dest = append(dest, &cats[i])
	}
	dest = append(dest, &value)

	var acc accumulator
	if s.Layout == schema.WideLayout {
		acc = newWideAccumulator(cols[0])
	} else {
		acc = newLongAccumulator(cols)
	}
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan dataset row: %w", err)
		}
		var v *float64
		if value.Valid {
			f := value.Float64
			v = &f
		}
		keys := make([]string, len(cats))
		for i, c := range cats {
			keys[i] = c.String
		}
		acc.add(keys, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate dataset rows: %w", err)
	}

	ds := acc.dataset()
	zerolog.Ctx(ctx).Debug().Int("rows", ds.RowCount()).Str("layout", string(s.Layout)).Msg("dataset loaded from database")
	return ds, nil
}

type accumulator interface {
	add(keys []string, v *float64)
	dataset() *schema.Dataset
}

type longAccumulator struct {
	ds *schema.Dataset
}

func newLongAccumulator(cols []string) *longAccumulator {
	ds := &schema.Dataset{}
	for _, name := range cols[:len(cols)-1] {
		ds.Categories = append(ds.Categories, schema.CategoryColumn{DisplayName: name, Values: []string{}})
	}
	ds.Values = []schema.ValueColumn{{DisplayName: cols[len(cols)-1], Values: []*float64{}}}
	return &longAccumulator{ds: ds}
}

func (a *longAccumulator) add(keys []string, v *float64) {
	for i, k := range keys {
		a.ds.Categories[i].Values = append(a.ds.Categories[i].Values, k)
	}
	a.ds.Values[0].Values = append(a.ds.Values[0].Values, v)
}

func (a *longAccumulator) dataset() *schema.Dataset { return a.ds }

// wideAccumulator turns (area, series, value) triples into one row per
// triple with one value column per distinct series; other columns stay nil.
type wideAccumulator struct {
	areaName string
	areas    []string
	series   []string
	index    map[string]int
	cells    []wideCell
}

type wideCell struct {
	series int
	value  *float64
}

func newWideAccumulator(areaName string) *wideAccumulator {
	return &wideAccumulator{areaName: areaName, index: make(map[string]int)}
}

func (a *wideAccumulator) add(keys []string, v *float64) {
	idx, ok := a.index[keys[1]]
	if !ok {
		idx = len(a.series)
		a.index[keys[1]] = idx
		a.series = append(a.series, keys[1])
	}
	a.areas = append(a.areas, keys[0])
	a.cells = append(a.cells, wideCell{series: idx, value: v})
}

func (a *wideAccumulator) dataset() *schema.Dataset {
	ds := &schema.Dataset{Categories: []schema.CategoryColumn{{DisplayName: a.areaName, Values: a.areas}}}
	if ds.Categories[0].Values == nil {
		ds.Categories[0].Values = []string{}
	}
	for _, name := range a.series {
		ds.Values = append(ds.Values, schema.ValueColumn{DisplayName: name, GroupName: name, Values: make([]*float64, len(a.areas))})
	}
	for row, c := range a.cells {
		ds.Values[c.series].Values[row] = c.value
	}
	return ds
}
