// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/danielhkuo/pint-index/cliparse"
	"github.com/danielhkuo/pint-index/middleware"
	"github.com/danielhkuo/pint-index/models"
	"github.com/danielhkuo/pint-index/render"
	"github.com/danielhkuo/pint-index/stats"
	"github.com/danielhkuo/pint-index/store"
)

var tracer = otel.Tracer("github.com/danielhkuo/pint-index/handlers")

type DashboardHandler struct {
	store store.Store
	cfg   cliparse.Config
}

func NewDashboardHandler(s store.Store, cfg cliparse.Config) *DashboardHandler {
	return &DashboardHandler{store: s, cfg: cfg}
}

// build reads every collection once and computes all views from that read.
func (h *DashboardHandler) build(ctx context.Context) (models.Dashboard, error) {
	ctx, span := tracer.Start(ctx, "dashboard.build")
	defer span.End()

	snap, err := store.Load(ctx, h.store)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "load snapshot")
		return models.Dashboard{}, err
	}

	d := stats.BuildDashboard(snap.Pubs, snap.Drinks, snap.Prices, stats.Options{
		PriceModel: h.cfg.PriceModel,
		Currency:   h.cfg.Currency,
		Logger:     slog.Default(),
	})

	span.SetAttributes(
		attribute.String("pint.price_model", d.PriceModel),
		attribute.Int("pint.pubs", d.Pubs),
		attribute.Int("pint.drinks", d.Drinks),
		attribute.Int("pint.prices", d.Prices),
	)
	return d, nil
}

// GetDashboard handles GET /dashboard
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.build(r.Context())
	if err != nil {
		storageError(w, r, "load snapshot", err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, d)
}

// RenderDashboard handles GET /dashboard/render
// ?format=markdown|html picks the output; table=full, rare=all and
// popularity=all expand the collapsed sections.
func (h *DashboardHandler) RenderDashboard(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = render.FormatMarkdown
	}

	var write func(io.Writer, models.Dashboard, render.ViewState) error
	var contentType string
	switch format {
	case render.FormatMarkdown:
		write, contentType = render.Markdown, "text/markdown; charset=utf-8"
	case render.FormatHTML:
		write, contentType = render.HTML, "text/html; charset=utf-8"
	default:
		middleware.ErrorResponse(w, http.StatusBadRequest, "format must be markdown or html")
		return
	}

	d, err := h.build(r.Context())
	if err != nil {
		storageError(w, r, "load snapshot", err)
		return
	}

	// Render fully before writing so a template failure can still be a 500
	var buf bytes.Buffer
	if err := write(&buf, d, render.ViewFromQuery(r.URL.Query())); err != nil {
		slog.Error("failed to render dashboard", "format", format, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to render dashboard")
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
