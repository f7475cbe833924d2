// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package stats computes the aggregate price views.

Every function is pure: it takes records already fetched from a store and
recomputes from scratch. Every function also has a defined result for empty
input (zero index, false "found" flag, empty ranking), never an error.

# Views

  - Cheapest / Highest: lowest and highest priced entry, earliest on ties
  - PriceIndex: mean price rounded to 2dp, 0 when empty
  - Popularity / Trending: entries per drink, every drink included
  - Distribution: histogram of [floor, floor+1) price buckets
  - CheapestPubs: pubs by mean price, top 5
  - Rare: drinks with 0, 1 or 2 entries, rarest first
  - PlanBudget: five independent rankings of what a budget buys
  - DrinkSummary / Compare: per-drink cheapest and mean
  - Trend: latest move for a (pub, drink) pair
  - MarketTable: every entry by ascending price

BuildDashboard runs them all over one snapshot.

# Price Models

In the active model only rows flagged active count as current prices
(Current filters them); the trend still reads the whole history, where the
deactivated rows are the earlier prices. In the ledger model every row
counts.

# Missing References

A Catalog resolves ids to names. An id with no matching pub or drink
resolves to "Unknown pub" or "Unknown drink" and is logged at warn level
instead of failing the view. A Catalog is not safe for concurrent use.
*/
package stats
