package server

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/huangsam/pivotrend/core"
	"github.com/huangsam/pivotrend/internal/contract"
	"github.com/huangsam/pivotrend/internal/dataset"
	"github.com/huangsam/pivotrend/schema"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pivotBody = `{
  "dataset": {
    "categories": [
      {"displayName": "Year", "values": ["2024", "2023", "2022", "2024"]},
      {"displayName": "Region", "values": ["Liguria", "Liguria", "Liguria", "Piemonte"]},
      {"displayName": "Course", "values": ["Physics", "Physics", "Physics", "Law"]}
    ],
    "values": [{"displayName": "Enrolled", "values": [15, 20, 10, 4]}]
  },
  "options": {"showTrendByProgram": true}
}`

func newTestAPI(t *testing.T, buf *bytes.Buffer) http.Handler {
	t.Helper()
	logger := zerolog.New(buf).Level(zerolog.DebugLevel)
	api := NewWebAPI(logger, Config{
		Addr: ":0",
		Base: &contract.Config{
			SubtotalDepths:     []int{0},
			Missing:            schema.MissingBlank,
			Precision:          -1,
			ShowSyntheticTotal: true,
		},
	})
	return api.Handler()
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	var logs bytes.Buffer
	rec := do(t, newTestAPI(t, &logs), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.Contains(t, logs.String(), `"path":"/healthz"`)
}

func TestPivotJSON(t *testing.T) {
	var logs bytes.Buffer
	rec := do(t, newTestAPI(t, &logs), http.MethodPost, "/api/v1/pivot", pivotBody)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got schema.PivotResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, []string{"2024", "2023", "2022"}, got.Periods)
	require.Len(t, got.Rows, 4)
	trend := got.Rows[0].Cells[len(got.Rows[0].Cells)-1]
	assert.Equal(t, schema.TrendCell, trend.Kind)
	assert.Equal(t, schema.OscillatingIncreasing, trend.Trend)
}

func TestPivotCSVFormat(t *testing.T) {
	var logs bytes.Buffer
	rec := do(t, newTestAPI(t, &logs), http.MethodPost, "/api/v1/pivot?format=csv", pivotBody)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))

	records, err := csv.NewReader(rec.Body).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"kind", "Region", "Course", "2024", "2023", "2022", schema.TrendHeader}, records[0])
	assert.Equal(t, "Liguria", records[1][1])
}

func TestPivotErrors(t *testing.T) {
	ragged := `{"dataset": {"categories": [{"displayName": "Year", "values": ["2024"]}], "values": [{"displayName": "v", "values": [1, 2]}]}}`
	tests := []struct {
		name    string
		target  string
		body    string
		status  int
		message string
	}{
		{"bad json", "/api/v1/pivot", "{", http.StatusBadRequest, "invalid request body"},
		{"no dataset", "/api/v1/pivot", "{}", http.StatusBadRequest, "invalid request"},
		{"shape mismatch", "/api/v1/pivot", ragged, http.StatusUnprocessableEntity, "shape mismatch"},
		{"unknown format", "/api/v1/pivot?format=pdf", pivotBody, http.StatusBadRequest, "unsupported format"},
		{"bad options", "/api/v1/pivot", `{"options": {"missing": "dash"}, "dataset": {}}`, http.StatusBadRequest, "invalid missing mode"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs bytes.Buffer
			rec := do(t, newTestAPI(t, &logs), http.MethodPost, tt.target, tt.body)
			assert.Equal(t, tt.status, rec.Code)
			var body errorBody
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Contains(t, body.Error, tt.message)
		})
	}
}

func TestBoxplot(t *testing.T) {
	body := `{"dataset": {
  "categories": [{"displayName": "Area", "values": ["Clarity", "Clarity", "Clarity", "Clarity", "Clarity"]}],
  "values": [{"displayName": "Score", "groupName": "NO", "values": [10, 20, 30, 40, 50]}]
}, "options": {"thresholds": [{"color": "#ff0000", "value": 60}]}}`

	var logs bytes.Buffer
	rec := do(t, newTestAPI(t, &logs), http.MethodPost, "/api/v1/boxplot", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got schema.BoxplotResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got.All, 1)
	assert.InDelta(t, 30.0, got.All[0].Median, 1e-9)
	assert.Empty(t, got.Dip)
	assert.Equal(t, []schema.ThresholdLine{{Color: "#ff0000", Value: 60}}, got.Thresholds)
}

func TestTrend(t *testing.T) {
	var logs bytes.Buffer
	h := newTestAPI(t, &logs)

	rec := do(t, h, http.MethodPost, "/api/v1/trend", `{"values": [30, 20, 10]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var got schema.TrendResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, schema.StronglyDecreasing, got.Label)

	rec = do(t, h, http.MethodPost, "/api/v1/trend?format=parquet", `{"values": [1, 2, 3]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMethodNotAllowed(t *testing.T) {
	var logs bytes.Buffer
	rec := do(t, newTestAPI(t, &logs), http.MethodGet, "/api/v1/pivot", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusUnprocessableEntity, statusFor(errors.Join(errors.New("cycle"), core.ErrShapeMismatch)))
	assert.Equal(t, http.StatusBadRequest, statusFor(dataset.ErrUnsupportedFormat))
	assert.Equal(t, http.StatusInternalServerError, statusFor(errors.New("disk full")))
}

func TestStartStopsOnCancel(t *testing.T) {
	var logs bytes.Buffer
	api := NewWebAPI(zerolog.New(&logs), Config{Addr: "127.0.0.1:0", Base: &contract.Config{}})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- api.Start(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
