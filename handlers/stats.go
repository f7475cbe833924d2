// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/danielhkuo/pint-index/cliparse"
	"github.com/danielhkuo/pint-index/middleware"
	"github.com/danielhkuo/pint-index/models"
	"github.com/danielhkuo/pint-index/stats"
	"github.com/danielhkuo/pint-index/store"
)

// StatsHandler serves the individual aggregate views. Every request
// recomputes from a fresh read.
type StatsHandler struct {
	store store.Store
	cfg   cliparse.Config
}

func NewStatsHandler(s store.Store, cfg cliparse.Config) *StatsHandler {
	return &StatsHandler{store: s, cfg: cfg}
}

// GetCheapest handles GET /stats/cheapest
func (h *StatsHandler) GetCheapest(w http.ResponseWriter, r *http.Request) {
	snap, prices, err := current(r.Context(), h.store, h.cfg.PriceModel)
	if err != nil {
		storageError(w, r, "load snapshot", err)
		return
	}

	cheapest, ok := stats.Cheapest(prices)
	if !ok {
		middleware.JSONResponse(w, http.StatusOK, models.CheapestResponse{Message: "No prices yet."})
		return
	}

	item := catalog(snap).Item(cheapest)
	// The trend reads the whole history, deactivated rows included
	trend := stats.Trend(snap.Prices, cheapest)
	middleware.JSONResponse(w, http.StatusOK, models.CheapestResponse{Cheapest: &item, Trend: &trend})
}

// GetIndex handles GET /stats/index
func (h *StatsHandler) GetIndex(w http.ResponseWriter, r *http.Request) {
	_, prices, err := current(r.Context(), h.store, h.cfg.PriceModel)
	if err != nil {
		storageError(w, r, "load snapshot", err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.IndexResponse{
		Index:   stats.PriceIndex(prices),
		Samples: len(prices),
	})
}

// GetPopularity handles GET /stats/popularity
func (h *StatsHandler) GetPopularity(w http.ResponseWriter, r *http.Request) {
	snap, prices, err := current(r.Context(), h.store, h.cfg.PriceModel)
	if err != nil {
		storageError(w, r, "load snapshot", err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, stats.Popularity(snap.Drinks, prices))
}

// GetDistribution handles GET /stats/distribution
func (h *StatsHandler) GetDistribution(w http.ResponseWriter, r *http.Request) {
	_, prices, err := current(r.Context(), h.store, h.cfg.PriceModel)
	if err != nil {
		storageError(w, r, "load snapshot", err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, stats.Distribution(prices, h.cfg.Currency))
}

// GetCheapestPubs handles GET /stats/pubs
// ?limit= overrides the default of 5.
func (h *StatsHandler) GetCheapestPubs(w http.ResponseWriter, r *http.Request) {
	limit := stats.DefaultCheapestPubs
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			middleware.ErrorResponse(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	snap, prices, err := current(r.Context(), h.store, h.cfg.PriceModel)
	if err != nil {
		storageError(w, r, "load snapshot", err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, stats.CheapestPubs(catalog(snap), prices, limit))
}

// GetRare handles GET /stats/rare
func (h *StatsHandler) GetRare(w http.ResponseWriter, r *http.Request) {
	snap, prices, err := current(r.Context(), h.store, h.cfg.PriceModel)
	if err != nil {
		storageError(w, r, "load snapshot", err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, stats.Rare(snap.Drinks, prices))
}

// GetBudget handles GET /budget?amount=&picks=
func (h *StatsHandler) GetBudget(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	amount, err := decimal.NewFromString(q.Get("amount"))
	if err == nil {
		amount, err = stats.NormalizeAmount(amount)
	}
	if errors.Is(err, stats.ErrAmountTooLarge) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "amount must be at most "+stats.MaxAmount.String())
		return
	}
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "amount must be a positive number")
		return
	}

	picks := stats.DefaultBudgetPicks
	if v := q.Get("picks"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > stats.MaxBudgetPicks {
			middleware.ErrorResponse(w, http.StatusBadRequest, "picks must be between 1 and 3")
			return
		}
		picks = n
	}

	snap, prices, err := current(r.Context(), h.store, h.cfg.PriceModel)
	if err != nil {
		storageError(w, r, "load snapshot", err)
		return
	}

	plan, err := stats.PlanBudget(amount, catalog(snap), prices, picks)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	middleware.JSONResponse(w, http.StatusOK, plan)
}

// GetCompare handles GET /compare?a=&b=
func (h *StatsHandler) GetCompare(w http.ResponseWriter, r *http.Request) {
	a, b := r.URL.Query().Get("a"), r.URL.Query().Get("b")
	if a == "" || b == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "a and b drink ids are required")
		return
	}

	snap, prices, err := current(r.Context(), h.store, h.cfg.PriceModel)
	if err != nil {
		storageError(w, r, "load snapshot", err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, stats.Compare(catalog(snap), prices, a, b))
}
