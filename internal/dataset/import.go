package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/huangsam/pivotrend/schema"
	"github.com/rs/zerolog"
)

// MaxImportLevels is the number of level columns in the observations table.
const MaxImportLevels = 3

// ImportObservations inserts every row of a long-layout dataset under name.
// It returns the number of inserted rows. Existing rows of the dataset are replaced.
func ImportObservations(ctx context.Context, db *sql.DB, backend schema.DatabaseBackend, name string, ds *schema.Dataset) (int, error) {
	levels := len(ds.Categories) - 1
	if levels < 1 || levels > MaxImportLevels {
		return 0, fmt.Errorf("observations need 1 to %d category levels below the period, got %d", MaxImportLevels, levels)
	}
	if len(ds.Values) == 0 {
		return 0, fmt.Errorf("dataset has no value column")
	}

	cols := []string{"dataset", "period"}
	for l := 1; l <= levels; l++ {
		cols = append(cols, fmt.Sprintf("level%d", l))
	}
	cols = append(cols, "value")
	insert := insertStatement(backend, ObservationsTable, cols)

	return inTx(ctx, db, backend, ObservationsTable, name, insert, ds.RowCount(), func(i int) []any {
		args := []any{name}
		for _, c := range ds.Categories {
			args = append(args, c.Values[i])
		}
		return append(args, nullable(ds.Values[0].Values[i]))
	})
}

// ImportSamples inserts every value of a wide-layout dataset as (area, series, value) rows.
func ImportSamples(ctx context.Context, db *sql.DB, backend schema.DatabaseBackend, name string, ds *schema.Dataset) (int, error) {
	if len(ds.Categories) != 1 {
		return 0, fmt.Errorf("samples need exactly one area column, got %d", len(ds.Categories))
	}
	insert := insertStatement(backend, SamplesTable, []string{"dataset", "area", "series", "value"})
	areas := ds.Categories[0].Values
	n := len(areas) * len(ds.Values)

	return inTx(ctx, db, backend, SamplesTable, name, insert, n, func(i int) []any {
		row, col := i/len(ds.Values), i%len(ds.Values)
		vc := ds.Values[col]
		series := vc.GroupName
		if series == "" {
			series = vc.DisplayName
		}
		return []any{name, areas[row], series, nullable(vc.Values[row])}
	})
}

func inTx(ctx context.Context, db *sql.DB, backend schema.DatabaseBackend, table, name, insert string, n int, argsAt func(int) []any) (int, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin import: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	del := fmt.Sprintf("DELETE FROM %s WHERE dataset = %s", table, Placeholder(backend, 1))
	if _, err := tx.ExecContext(ctx, del, name); err != nil {
		return 0, fmt.Errorf("failed to clear dataset %q: %w", name, err)
	}
	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i := range n {
		if _, err := stmt.ExecContext(ctx, argsAt(i)...); err != nil {
			return 0, fmt.Errorf("failed to insert row %d: %w", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit import: %w", err)
	}
	zerolog.Ctx(ctx).Info().Str("table", table).Str("dataset", name).Int("rows", n).Msg("imported dataset")
	return n, nil
}

func insertStatement(backend schema.DatabaseBackend, table string, cols []string) string {
	ph := make([]string, len(cols))
	for i := range cols {
		ph[i] = Placeholder(backend, i+1)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, strings.Join(cols, ", "), strings.Join(ph, ", "))
}

func nullable(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}
