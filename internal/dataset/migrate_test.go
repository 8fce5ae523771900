package dataset

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/huangsam/pivotrend/internal/contract"
	"github.com/huangsam/pivotrend/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateImportAndLoadSQLite(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "pivot.db")

	require.NoError(t, Migrate(ctx, schema.SQLiteBackend, dbPath, -1))
	require.NoError(t, Migrate(ctx, schema.SQLiteBackend, dbPath, -1), "second run is a no-op")

	db, err := OpenDB(ctx, schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	ds, err := DecodeLongCSV(strings.NewReader(longCSV), "")
	require.NoError(t, err)
	n, err := ImportObservations(ctx, db, schema.SQLiteBackend, "enrolled", ds)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	// Re-importing replaces the dataset instead of appending.
	_, err = ImportObservations(ctx, db, schema.SQLiteBackend, "enrolled", ds)
	require.NoError(t, err)

	src := &SQLSource{DB: db, Query: DefaultQuery(schema.SQLiteBackend, schema.LongLayout, 2) + " ORDER BY period", Args: []any{"enrolled"}}
	loaded, err := src.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, loaded.RowCount())
	assert.Equal(t, []string{"2022/23", "2023/24", "2023/24"}, loaded.Categories[0].Values)
	assert.Nil(t, loaded.Values[0].Values[0])

	wide, err := DecodeWideCSV(strings.NewReader(wideCSV))
	require.NoError(t, err)
	n, err = ImportSamples(ctx, db, schema.SQLiteBackend, "survey", wide)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	samples := &SQLSource{DB: db, Query: DefaultQuery(schema.SQLiteBackend, schema.WideLayout, 0), Args: []any{"survey"}, Layout: schema.WideLayout}
	loaded, err = samples.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, loaded.RowCount())
	assert.Len(t, loaded.Values, 2)

	require.NoError(t, MigrateDB(ctx, db, schema.SQLiteBackend, 0))
}

func TestMigrateNoneBackend(t *testing.T) {
	err := Migrate(context.Background(), schema.NoneBackend, "", -1)
	assert.Error(t, err)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	src, closeFn, err := Open(ctx, &contract.Config{Input: "obs.csv"})
	require.NoError(t, err)
	require.NoError(t, closeFn())
	fileSrc, ok := src.(*FileSource)
	require.True(t, ok)
	assert.Equal(t, schema.LongLayout, fileSrc.Opts.Layout)

	_, _, err = Open(ctx, &contract.Config{SourceBackend: schema.NoneBackend})
	assert.ErrorContains(t, err, "--input is required")

	dbPath := filepath.Join(t.TempDir(), "open.db")
	_, _, err = Open(ctx, &contract.Config{SourceBackend: schema.SQLiteBackend, SourceConnect: dbPath})
	assert.ErrorContains(t, err, "--dataset or --query")

	src, closeFn, err = Open(ctx, &contract.Config{SourceBackend: schema.SQLiteBackend, SourceConnect: dbPath, Dataset: "enrolled", Levels: 2})
	require.NoError(t, err)
	defer func() { _ = closeFn() }()
	sqlSrc, ok := src.(*SQLSource)
	require.True(t, ok)
	assert.Equal(t, []any{"enrolled"}, sqlSrc.Args)
	assert.Contains(t, sqlSrc.Query, "level2")
}

func TestFileSourceLoad(t *testing.T) {
	_, err := (&FileSource{Path: filepath.Join(t.TempDir(), "missing.csv")}).Load(context.Background())
	assert.ErrorContains(t, err, "failed to read dataset file")
}
