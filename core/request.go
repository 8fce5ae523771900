package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/huangsam/pivotrend/internal/contract"
	"github.com/huangsam/pivotrend/schema"
)

// ErrInvalidRequest marks a transport request that can never succeed.
var ErrInvalidRequest = errors.New("invalid request")

// SourceOpener resolves the configured input into a dataset source.
type SourceOpener func(ctx context.Context, cfg *contract.Config) (contract.DatasetSource, func() error, error)

// HandleRequest runs one transport request against a copy of base.
// Errors wrap ErrInvalidRequest when the request itself is malformed.
func HandleRequest(ctx context.Context, base *contract.Config, req *schema.Request, open SourceOpener) (*schema.Response, error) {
	if _, ok := schema.ValidRequestKinds[req.Kind]; !ok {
		return nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidRequest, req.Kind)
	}
	cfg := base.Clone()
	if err := contract.ApplyRequestOptions(ctx, cfg, req.Options); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	resp := &schema.Response{ID: req.ID, Kind: req.Kind}
	if req.Kind == schema.TrendRequest {
		resp.Trend = ClassifySeries(req.Values)
		return resp, nil
	}

	if req.Kind == schema.BoxplotRequest {
		cfg.Layout = schema.WideLayout
	}
	ds, err := requestDataset(ctx, cfg, req, open)
	if err != nil {
		return nil, err
	}

	switch req.Kind {
	case schema.PivotRequest:
		resp.Pivot, err = BuildPivot(ctx, ds, PivotOptionsFromConfig(cfg))
	case schema.BoxplotRequest:
		resp.Boxplot, err = BuildBoxplot(ctx, ds, cfg.CategoryColors, cfg.ThresholdLines)
	}
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// requestDataset prefers the inline dataset, then Input, then a stored dataset name.
func requestDataset(ctx context.Context, cfg *contract.Config, req *schema.Request, open SourceOpener) (*schema.Dataset, error) {
	switch {
	case req.Dataset != nil:
		return req.Dataset, nil
	case req.Input != "":
		cfg.Input = req.Input
		cfg.SourceBackend = schema.NoneBackend
	case req.DatasetName != "":
		if cfg.SourceBackend == "" || cfg.SourceBackend == schema.NoneBackend {
			return nil, fmt.Errorf("%w: datasetName needs a database backend", ErrInvalidRequest)
		}
		cfg.Dataset = req.DatasetName
		cfg.Query = ""
	default:
		return nil, fmt.Errorf("%w: no dataset, input or datasetName", ErrInvalidRequest)
	}
	if open == nil {
		return nil, fmt.Errorf("%w: no dataset source available", ErrInvalidRequest)
	}

	src, closer, err := open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer func() { _ = closer() }()

	ds, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	return ds, nil
}
