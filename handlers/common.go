// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/pint-index/middleware"
	"github.com/danielhkuo/pint-index/models"
	"github.com/danielhkuo/pint-index/stats"
	"github.com/danielhkuo/pint-index/store"
)

// storageError logs a failed storage call and answers 503. Nothing is
// retried; the client may resubmit.
func storageError(w http.ResponseWriter, r *http.Request, op string, err error) {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(r.Context().Err(), context.DeadlineExceeded) {
		slog.Warn("storage timed out", "op", op, "path", r.URL.Path, "error", err)
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Storage timed out, try again")
		return
	}
	slog.Error("storage failed", "op", op, "path", r.URL.Path, "error", err)
	middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Storage unavailable, try again")
}

// current loads a snapshot and the price entries that count under the
// configured price model.
func current(ctx context.Context, s store.Store, priceModel string) (store.Snapshot, []models.PriceEntry, error) {
	snap, err := store.Load(ctx, s)
	if err != nil {
		return store.Snapshot{}, nil, err
	}
	return snap, stats.Current(snap.Prices, priceModel), nil
}

func catalog(snap store.Snapshot) *stats.Catalog {
	return stats.NewCatalog(snap.Pubs, snap.Drinks, slog.Default())
}
