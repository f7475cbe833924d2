// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/pint-index/cliparse"
	"github.com/danielhkuo/pint-index/handlers"
	"github.com/danielhkuo/pint-index/middleware"
	"github.com/danielhkuo/pint-index/store"
	"github.com/danielhkuo/pint-index/telemetry"
)

func NewRouter(s store.Store, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	pubHandler := handlers.NewPubHandler(s, cfg)
	drinkHandler := handlers.NewDrinkHandler(s, cfg)
	priceHandler := handlers.NewPriceHandler(s, cfg)
	statsHandler := handlers.NewStatsHandler(s, cfg)
	dashboardHandler := handlers.NewDashboardHandler(s, cfg)
	adminHandler := handlers.NewAdminHandler(s, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		if err := s.Ping(r.Context()); err != nil {
			slog.Warn("health check failed", "error", err)
			http.Error(w, "Storage unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Pubs and drinks
	mux.HandleFunc("POST /pubs", middleware.WithLogging(pubHandler.CreatePub))
	mux.HandleFunc("GET /pubs", middleware.WithLogging(pubHandler.ListPubs))
	mux.HandleFunc("POST /drinks", middleware.WithLogging(drinkHandler.CreateDrink))
	mux.HandleFunc("GET /drinks", middleware.WithLogging(drinkHandler.ListDrinks))
	mux.HandleFunc("GET /drinks/{id}/cheapest", middleware.WithLogging(drinkHandler.GetCheapest))

	// Price submission (public)
	mux.HandleFunc("POST /prices", middleware.WithLogging(priceHandler.SubmitPrice))
	mux.HandleFunc("GET /prices", middleware.WithLogging(priceHandler.ListPrices))

	// Aggregate views
	mux.HandleFunc("GET /stats/cheapest", middleware.WithLogging(statsHandler.GetCheapest))
	mux.HandleFunc("GET /stats/index", middleware.WithLogging(statsHandler.GetIndex))
	mux.HandleFunc("GET /stats/popularity", middleware.WithLogging(statsHandler.GetPopularity))
	mux.HandleFunc("GET /stats/distribution", middleware.WithLogging(statsHandler.GetDistribution))
	mux.HandleFunc("GET /stats/pubs", middleware.WithLogging(statsHandler.GetCheapestPubs))
	mux.HandleFunc("GET /stats/rare", middleware.WithLogging(statsHandler.GetRare))
	mux.HandleFunc("GET /budget", middleware.WithLogging(statsHandler.GetBudget))
	mux.HandleFunc("GET /compare", middleware.WithLogging(statsHandler.GetCompare))

	// Dashboard
	mux.HandleFunc("GET /dashboard", middleware.WithLogging(dashboardHandler.GetDashboard))
	mux.HandleFunc("GET /dashboard/render", middleware.WithLogging(dashboardHandler.RenderDashboard))

	// Admin operations (require X-Admin-Key)
	mux.HandleFunc("DELETE /admin/prices", middleware.WithLogging(adminHandler.WipePrices))
	mux.HandleFunc("DELETE /admin/prices/{id}", middleware.WithLogging(adminHandler.DeletePrice))
	mux.HandleFunc("DELETE /admin/data", middleware.WithLogging(adminHandler.WipeAll))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("pint-index API v1"))
	})

	return mux
}

// NewHandler wraps the router with CORS, the per-request storage timeout
// and tracing. This is what the server mounts.
func NewHandler(s store.Store, cfg cliparse.Config) http.Handler {
	var h http.Handler = NewRouter(s, cfg)
	h = middleware.WithTimeout(cfg.RequestTimeout, h)
	h = middleware.CORS(h)
	return telemetry.Middleware(telemetry.ServiceName, h)
}
