// Package dataset loads the columnar input of a cycle from files, S3 objects
// or SQL databases, and manages the SQL tables observations are stored in.
package dataset

import (
	"context"
	"fmt"

	"github.com/huangsam/pivotrend/internal/contract"
	"github.com/huangsam/pivotrend/schema"
)

// OptionsFromConfig returns the decode options for cfg.
func OptionsFromConfig(cfg *contract.Config) DecodeOptions {
	layout := cfg.Layout
	if layout == "" {
		layout = schema.LongLayout
	}
	return DecodeOptions{Layout: layout, ValueColumn: cfg.ValueColumn, Columns: cfg.Columns}
}

// Open selects the dataset source for cfg. A configured database backend
// takes precedence over --input. The returned closer releases the source.
func Open(ctx context.Context, cfg *contract.Config) (contract.DatasetSource, func() error, error) {
	noop := func() error { return nil }
	opts := OptionsFromConfig(cfg)

	if cfg.SourceBackend != "" && cfg.SourceBackend != schema.NoneBackend {
		db, err := OpenDB(ctx, cfg.SourceBackend, cfg.SourceConnect)
		if err != nil {
			return nil, nil, err
		}
		src := &SQLSource{DB: db, Query: cfg.Query, Layout: opts.Layout}
		if src.Query == "" {
			if cfg.Dataset == "" {
				_ = db.Close()
				return nil, nil, fmt.Errorf("--dataset or --query is required for the %s source", cfg.SourceBackend)
			}
			src.Query = DefaultQuery(cfg.SourceBackend, opts.Layout, cfg.Levels)
			src.Args = []any{cfg.Dataset}
		}
		return src, db.Close, nil
	}

	switch {
	case cfg.Input == "":
		return nil, nil, fmt.Errorf("--input is required when no source backend is configured")
	case IsS3URI(cfg.Input):
		src, err := NewS3Source(ctx, cfg.Input, opts)
		if err != nil {
			return nil, nil, err
		}
		return src, noop, nil
	default:
		return &FileSource{Path: cfg.Input, Opts: opts}, noop, nil
	}
}
