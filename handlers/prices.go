// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/danielhkuo/pint-index/auth"
	"github.com/danielhkuo/pint-index/cliparse"
	"github.com/danielhkuo/pint-index/middleware"
	"github.com/danielhkuo/pint-index/models"
	"github.com/danielhkuo/pint-index/stats"
	"github.com/danielhkuo/pint-index/store"
)

type PriceHandler struct {
	store store.Store
	cfg   cliparse.Config
}

func NewPriceHandler(s store.Store, cfg cliparse.Config) *PriceHandler {
	return &PriceHandler{store: s, cfg: cfg}
}

// SubmitPrice handles POST /prices
// Under the active price model the new entry replaces the pair's current
// active entry; under the ledger model it is appended.
func (h *PriceHandler) SubmitPrice(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitPriceRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	req.PubID = strings.TrimSpace(req.PubID)
	req.DrinkID = strings.TrimSpace(req.DrinkID)
	if err := middleware.Validate(&req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	// Prices are stored to the penny
	price, err := stats.NormalizeAmount(req.Price)
	if errors.Is(err, stats.ErrAmountTooLarge) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "price must be at most "+stats.MaxAmount.String())
		return
	}
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "price must be greater than zero")
		return
	}

	ctx := r.Context()

	// Both references must exist before anything is written
	pubs, err := h.store.ListPubs(ctx)
	if err != nil {
		storageError(w, r, "list pubs", err)
		return
	}
	if !slices.ContainsFunc(pubs, func(p models.Pub) bool { return p.ID == req.PubID }) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Unknown pub")
		return
	}

	drinks, err := h.store.ListDrinks(ctx)
	if err != nil {
		storageError(w, r, "list drinks", err)
		return
	}
	if !slices.ContainsFunc(drinks, func(d models.Drink) bool { return d.ID == req.DrinkID }) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Unknown drink")
		return
	}

	entry := models.PriceEntry{PubID: req.PubID, DrinkID: req.DrinkID, Price: price}
	if h.cfg.PriceModel == models.PriceModelLedger {
		entry, err = h.store.AppendPrice(ctx, entry)
	} else {
		entry, err = h.store.ReplaceActivePrice(ctx, entry)
	}
	if err != nil {
		storageError(w, r, "submit price", err)
		return
	}

	slog.Info("price submitted",
		"entry_id", entry.ID,
		"pub_id", entry.PubID,
		"drink_id", entry.DrinkID,
		"price", entry.Price.StringFixed(2),
		"price_model", h.cfg.PriceModel,
		"submitter", auth.HashIP(middleware.GetClientIP(r), h.cfg.AdminKeySalt),
	)

	middleware.JSONResponse(w, http.StatusCreated, entry)
}

// ListPrices handles GET /prices
// ?active=true limits the list to current entries under the active model.
func (h *PriceHandler) ListPrices(w http.ResponseWriter, r *http.Request) {
	prices, err := h.store.ListPrices(r.Context())
	if err != nil {
		storageError(w, r, "list prices", err)
		return
	}

	if r.URL.Query().Get("active") == "true" {
		prices = slices.DeleteFunc(prices, func(p models.PriceEntry) bool { return !p.IsActive() })
	}
	if prices == nil {
		prices = []models.PriceEntry{}
	}

	middleware.JSONResponse(w, http.StatusOK, models.ListPricesResponse{Prices: prices})
}
