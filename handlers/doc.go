// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Pint Index API.

# Handler Types

Each handler is a struct with store and config dependencies:

  - PubHandler: Pub creation and listing
  - DrinkHandler: Drink creation, listing and per-drink summaries
  - PriceHandler: Price submission and history
  - StatsHandler: Individual aggregate views, budget plans, comparisons
  - DashboardHandler: The combined dashboard as JSON, Markdown or HTML
  - AdminHandler: Bulk wipes and single entry deletion

Handlers are created via constructor functions that accept a store.Store and
Config:

	priceHandler := handlers.NewPriceHandler(s, cfg)

# Price Submission

	POST /prices → SubmitPrice

The price is rounded to two decimal places and must then be greater than
zero. Both the pub and the drink must already exist. Under the active price
model the pair's previous active entry is deactivated in the same write;
under the ledger model every submission is kept as its own row.

# Aggregates

Every aggregate endpoint reads a fresh snapshot of all three collections and
computes from it. Nothing is cached between requests.

	GET /stats/cheapest      → GetCheapest
	GET /stats/index         → GetIndex
	GET /stats/popularity    → GetPopularity
	GET /stats/distribution  → GetDistribution
	GET /stats/pubs          → GetCheapestPubs
	GET /stats/rare          → GetRare
	GET /budget              → GetBudget
	GET /compare             → GetCompare
	GET /dashboard           → GetDashboard
	GET /dashboard/render    → RenderDashboard

# Errors

Validation failures answer 400, unknown path ids 404, and any storage
failure 503 with a retry message. Admin operations require the X-Admin-Key
header: a bad or missing key answers 401, and a server without an admin salt
answers 403.
*/
package handlers
