// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Pint Index API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(s, cfg)

NewHandler wraps that mux with the per-request timeout, CORS and tracing;
it is what the server mounts.

# Endpoints

Health:

	GET /health - 200 OK, or 503 when the store does not answer a ping

Pubs and drinks:

	POST /pubs                  - Register pub
	GET  /pubs                  - List pubs
	POST /drinks                - Register drink
	GET  /drinks                - List drinks
	GET  /drinks/{id}/cheapest  - Cheapest entry and average for one drink

Prices:

	POST /prices - Submit price
	GET  /prices - Price history (?active=true for current entries)

Aggregates:

	GET /stats/cheapest      - Cheapest current pint and its trend
	GET /stats/index         - Mean price
	GET /stats/popularity    - Submissions per drink
	GET /stats/distribution  - Price histogram
	GET /stats/pubs          - Pubs by mean price
	GET /stats/rare          - Drinks with fewer than three prices
	GET /budget              - What an amount buys (?amount=&picks=)
	GET /compare             - Two drinks side by side (?a=&b=)
	GET /dashboard           - Every view as JSON
	GET /dashboard/render    - Rendered dashboard (?format=markdown|html)

Admin (requires X-Admin-Key):

	DELETE /admin/prices       - Delete every price entry
	DELETE /admin/prices/{id}  - Delete one price entry
	DELETE /admin/data         - Delete everything
*/
package router
