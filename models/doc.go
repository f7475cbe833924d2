// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreatePubRequest: name, address
  - CreateDrinkRequest: name, category
  - SubmitPriceRequest: pub_id, drink_id, price

Required fields carry validate:"required" tags checked by the handlers.

# Domain Types

Stored records:

  - Pub: a venue prices are recorded at
  - Drink: a drink definition (name and category)
  - PriceEntry: one price submission for a (pub, drink) pair

Prices are decimal currency amounts (shopspring/decimal) and marshal as
JSON strings ("3.5").

# Aggregate Types

Results of the stats package:

  - PricedItem: a price entry with pub and drink names resolved
  - PopularityEntry, Histogram, PubAverage, RareDrink
  - BudgetPlan with five independent BudgetOption rankings
  - DrinkSummary, Comparison, PriceTrend
  - Dashboard: every view computed in one pass

# Constants

Price models:

	PriceModelActive = "active"
	PriceModelLedger = "ledger"

Trend directions:

	TrendUp     = "up"
	TrendDown   = "down"
	TrendStable = "stable"

Rarity tiers:

	RarityUnseen   = "unseen"
	RarityScarce   = "scarce"
	RarityUncommon = "uncommon"
*/
package models
