package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/huangsam/pivotrend/core"
	"github.com/huangsam/pivotrend/internal/contract"
	"github.com/huangsam/pivotrend/internal/dataset"
	"github.com/huangsam/pivotrend/internal/outwriter"
	"github.com/huangsam/pivotrend/schema"
	"github.com/rs/zerolog"
)

// maxBodyBytes caps the size of a request document.
const maxBodyBytes = 32 << 20

var contentTypes = map[schema.OutputMode]string{
	schema.JSONOut:    "application/json",
	schema.YAMLOut:    "application/yaml",
	schema.CSVOut:     "text/csv; charset=utf-8",
	schema.TextOut:    "text/plain; charset=utf-8",
	schema.HTMLOut:    "text/html; charset=utf-8",
	schema.ParquetOut: "application/vnd.apache.parquet",
	schema.XLSXOut:    "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

type handler struct {
	base *contract.Config
	open core.SourceOpener
}

type errorBody struct {
	Error string `json:"error"`
}

// Health reports liveness.
func (h *handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Pivot runs one pivot cycle over the request dataset.
func (h *handler) Pivot(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, schema.PivotRequest, func(resp *schema.Response, cfg *contract.Config, out io.Writer) error {
		return outwriter.RenderPivot(out, resp.Pivot, cfg)
	})
}

// Boxplot summarizes the request dataset per area.
func (h *handler) Boxplot(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, schema.BoxplotRequest, func(resp *schema.Response, cfg *contract.Config, out io.Writer) error {
		return outwriter.RenderBoxplot(out, resp.Boxplot, cfg)
	})
}

// Trend classifies the request values.
func (h *handler) Trend(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, schema.TrendRequest, func(resp *schema.Response, cfg *contract.Config, out io.Writer) error {
		return outwriter.RenderTrend(out, resp.Trend, cfg)
	})
}

// serve decodes the request, runs it and renders the result in the format
// named by the "format" query parameter, JSON by default.
func (h *handler) serve(w http.ResponseWriter, r *http.Request, kind schema.RequestKind, render func(*schema.Response, *contract.Config, io.Writer) error) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	format := schema.OutputMode(r.URL.Query().Get("format"))
	if format == "" {
		format = schema.JSONOut
	}
	if _, ok := contentTypes[format]; !ok {
		writeError(w, http.StatusBadRequest, fmt.Errorf("unsupported format %q", format))
		return
	}

	var req schema.Request
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	req.Kind = kind

	resp, err := core.HandleRequest(ctx, h.base, &req, h.open)
	if err != nil {
		status := statusFor(err)
		if status >= http.StatusInternalServerError {
			logger.Error().Err(err).Str("kind", string(kind)).Msg("request failed")
		} else {
			logger.Warn().Err(err).Str("kind", string(kind)).Msg("request rejected")
		}
		writeError(w, status, err)
		return
	}

	cfg := h.base.Clone()
	if err := contract.ApplyRequestOptions(ctx, cfg, req.Options); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	cfg.Output = format
	cfg.OutputFile = ""
	cfg.UseColors = false

	var buf bytes.Buffer
	if err := render(resp, cfg, &buf); err != nil {
		if errors.Is(err, outwriter.ErrUnsupportedOutput) {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		logger.Error().Err(err).Msg("failed to render result")
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		logger.Error().Err(err).Msg("failed to write response")
	}
}

// statusFor maps engine errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, core.ErrShapeMismatch):
		return http.StatusUnprocessableEntity
	case errors.Is(err, core.ErrInvalidRequest), errors.Is(err, dataset.ErrUnsupportedFormat):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorBody{Error: err.Error()})
}
