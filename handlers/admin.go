// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/pint-index/auth"
	"github.com/danielhkuo/pint-index/cliparse"
	"github.com/danielhkuo/pint-index/middleware"
	"github.com/danielhkuo/pint-index/models"
	"github.com/danielhkuo/pint-index/store"
)

// AdminHandler serves the destructive maintenance operations. Every
// request must carry the admin key in X-Admin-Key.
type AdminHandler struct {
	store store.Store
	cfg   cliparse.Config
}

func NewAdminHandler(s store.Store, cfg cliparse.Config) *AdminHandler {
	return &AdminHandler{store: s, cfg: cfg}
}

// authorize writes the error response and returns false when the request
// does not carry a valid admin key.
func (h *AdminHandler) authorize(w http.ResponseWriter, r *http.Request) bool {
	err := auth.CheckAdmin(r.Header.Get(auth.AdminKeyHeader), h.cfg.AdminKeySalt)
	switch {
	case err == nil:
		return true
	case errors.Is(err, auth.ErrAdminDisabled):
		middleware.ErrorResponse(w, http.StatusForbidden, "Admin operations are disabled")
	default:
		slog.Warn("rejected admin request",
			"path", r.URL.Path,
			"client", auth.HashIP(middleware.GetClientIP(r), h.cfg.AdminKeySalt),
			"error", err,
		)
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
	}
	return false
}

// WipePrices handles DELETE /admin/prices
func (h *AdminHandler) WipePrices(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r) {
		return
	}

	deleted, err := store.WipePrices(r.Context(), h.store)
	if err != nil {
		slog.Error("price wipe stopped part way", "deleted", deleted, "error", err)
		storageError(w, r, "wipe prices", err)
		return
	}

	slog.Warn("all prices wiped", "deleted", deleted)

	middleware.JSONResponse(w, http.StatusOK, models.WipeResponse{
		Deleted: deleted,
		Message: "All price entries deleted",
	})
}

// WipeAll handles DELETE /admin/data
func (h *AdminHandler) WipeAll(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r) {
		return
	}

	deleted, err := store.WipeAll(r.Context(), h.store)
	if err != nil {
		slog.Error("data wipe stopped part way", "deleted", deleted, "error", err)
		storageError(w, r, "wipe all", err)
		return
	}

	slog.Warn("all data wiped", "deleted", deleted)

	middleware.JSONResponse(w, http.StatusOK, models.WipeResponse{
		Deleted: deleted,
		Message: "All pubs, drinks and price entries deleted",
	})
}

// DeletePrice handles DELETE /admin/prices/{id}
func (h *AdminHandler) DeletePrice(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r) {
		return
	}

	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "price entry id is required")
		return
	}

	err := h.store.DeletePrice(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Price entry not found")
		return
	}
	if err != nil {
		storageError(w, r, "delete price", err)
		return
	}

	slog.Info("price entry deleted", "entry_id", id)

	w.WriteHeader(http.StatusNoContent)
}
