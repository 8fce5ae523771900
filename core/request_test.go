package core

import (
	"context"
	"errors"
	"testing"

	"github.com/huangsam/pivotrend/internal/contract"
	"github.com/huangsam/pivotrend/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseRequestConfig() *contract.Config {
	return &contract.Config{
		SubtotalDepths:     []int{0},
		Missing:            schema.MissingBlank,
		Precision:          -1,
		ShowSyntheticTotal: true,
		LocalTokens:        DefaultLocalTokens,
	}
}

func TestHandleRequestPivotInline(t *testing.T) {
	yes := true
	req := &schema.Request{
		ID:      "req-1",
		Kind:    schema.PivotRequest,
		Dataset: regionDataset(),
		Options: schema.RequestOptions{ShowTrend: &yes},
	}
	base := baseRequestConfig()
	resp, err := HandleRequest(context.Background(), base, req, nil)
	require.NoError(t, err)

	assert.Equal(t, "req-1", resp.ID)
	require.NotNil(t, resp.Pivot)
	assert.Nil(t, resp.Boxplot)
	assert.Len(t, resp.Pivot.Rows, 6)
	require.NotNil(t, resp.Pivot.Summary)
	assert.Equal(t, schema.StronglyIncreasing, resp.Pivot.Summary.TotalTrend)
	assert.False(t, base.ShowTrend, "options apply to a copy of the base config")
}

func TestHandleRequestTrend(t *testing.T) {
	req := &schema.Request{Kind: schema.TrendRequest, Values: []float64{10, 20, 15}}
	resp, err := HandleRequest(context.Background(), baseRequestConfig(), req, nil)
	require.NoError(t, err)
	require.NotNil(t, resp.Trend)
	assert.Equal(t, schema.OscillatingIncreasing, resp.Trend.Label)
}

func TestHandleRequestBoxplotFromInput(t *testing.T) {
	ds := &schema.Dataset{
		Categories: []schema.CategoryColumn{{DisplayName: "Area", Values: []string{"Clarity", "Clarity"}}},
		Values: []schema.ValueColumn{
			{DisplayName: "Q1 SI", GroupName: "SI", Values: []*float64{schema.Float(10), schema.Float(30)}},
		},
	}
	var seen *contract.Config
	open := func(_ context.Context, cfg *contract.Config) (contract.DatasetSource, func() error, error) {
		seen = cfg
		src := &contract.MockDatasetSource{}
		src.On("Load", context.Background()).Return(ds, nil)
		return src, func() error { return nil }, nil
	}

	req := &schema.Request{Kind: schema.BoxplotRequest, Input: "samples.csv"}
	resp, err := HandleRequest(context.Background(), baseRequestConfig(), req, open)
	require.NoError(t, err)

	require.NotNil(t, seen)
	assert.Equal(t, "samples.csv", seen.Input)
	assert.Equal(t, schema.WideLayout, seen.Layout)
	require.NotNil(t, resp.Boxplot)
	require.Len(t, resp.Boxplot.All, 1)
	assert.InDelta(t, 20.0, resp.Boxplot.All[0].Median, 1e-9)
}

func TestHandleRequestErrors(t *testing.T) {
	ragged := regionDataset()
	ragged.Values[0].Values = ragged.Values[0].Values[:1]
	failing := func(context.Context, *contract.Config) (contract.DatasetSource, func() error, error) {
		return nil, nil, errors.New("bucket not found")
	}

	tests := []struct {
		name    string
		req     *schema.Request
		open    SourceOpener
		wantErr error
		message string
	}{
		{"unknown kind", &schema.Request{Kind: "chart"}, nil, ErrInvalidRequest, "unknown kind"},
		{"no dataset", &schema.Request{Kind: schema.PivotRequest}, nil, ErrInvalidRequest, "no dataset"},
		{"name without backend", &schema.Request{Kind: schema.PivotRequest, DatasetName: "2024"}, nil, ErrInvalidRequest, "database backend"},
		{"bad options", &schema.Request{Kind: schema.TrendRequest, Options: schema.RequestOptions{Missing: "dash"}}, nil, ErrInvalidRequest, "invalid missing mode"},
		{"ragged dataset", &schema.Request{Kind: schema.PivotRequest, Dataset: ragged}, nil, ErrShapeMismatch, "shape mismatch"},
		{"open failure", &schema.Request{Kind: schema.PivotRequest, Input: "s3://missing/x.csv"}, failing, nil, "open dataset: bucket not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := HandleRequest(context.Background(), baseRequestConfig(), tt.req, tt.open)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}
