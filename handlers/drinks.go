// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/pint-index/cliparse"
	"github.com/danielhkuo/pint-index/middleware"
	"github.com/danielhkuo/pint-index/models"
	"github.com/danielhkuo/pint-index/stats"
	"github.com/danielhkuo/pint-index/store"
)

type DrinkHandler struct {
	store store.Store
	cfg   cliparse.Config
}

func NewDrinkHandler(s store.Store, cfg cliparse.Config) *DrinkHandler {
	return &DrinkHandler{store: s, cfg: cfg}
}

// CreateDrink handles POST /drinks
func (h *DrinkHandler) CreateDrink(w http.ResponseWriter, r *http.Request) {
	var req models.CreateDrinkRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Category = strings.TrimSpace(req.Category)
	if err := middleware.Validate(&req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	drink, err := h.store.CreateDrink(r.Context(), models.Drink{Name: req.Name, Category: req.Category})
	if err != nil {
		storageError(w, r, "create drink", err)
		return
	}

	slog.Info("drink created", "drink_id", drink.ID, "name", drink.Name, "category", drink.Category)

	middleware.JSONResponse(w, http.StatusCreated, drink)
}

// ListDrinks handles GET /drinks
func (h *DrinkHandler) ListDrinks(w http.ResponseWriter, r *http.Request) {
	drinks, err := h.store.ListDrinks(r.Context())
	if err != nil {
		storageError(w, r, "list drinks", err)
		return
	}
	if drinks == nil {
		drinks = []models.Drink{}
	}

	middleware.JSONResponse(w, http.StatusOK, models.ListDrinksResponse{Drinks: drinks})
}

// GetCheapest handles GET /drinks/{id}/cheapest
// Reports where one drink is cheapest and its average price.
func (h *DrinkHandler) GetCheapest(w http.ResponseWriter, r *http.Request) {
	drinkID := r.PathValue("id")
	if drinkID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "drink id is required")
		return
	}

	snap, prices, err := current(r.Context(), h.store, h.cfg.PriceModel)
	if err != nil {
		storageError(w, r, "load snapshot", err)
		return
	}

	c := catalog(snap)
	if _, ok := c.Drink(drinkID); !ok {
		middleware.ErrorResponse(w, http.StatusNotFound, "Drink not found")
		return
	}

	// A drink with no prices yet still answers 200 with zero samples
	summary, _ := stats.DrinkSummary(c, prices, drinkID)
	middleware.JSONResponse(w, http.StatusOK, summary)
}
