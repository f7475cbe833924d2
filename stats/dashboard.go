// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package stats

import (
	"log/slog"
	"time"

	"github.com/danielhkuo/pint-index/models"
)

// Options control how a dashboard is computed.
type Options struct {
	PriceModel string // models.PriceModelActive or models.PriceModelLedger
	Currency   string
	Logger     *slog.Logger
	Now        time.Time
}

// BuildDashboard computes every view from one full read of the collections.
func BuildDashboard(pubs []models.Pub, drinks []models.Drink, prices []models.PriceEntry, opts Options) models.Dashboard {
	if opts.Now.IsZero() {
		opts.Now = time.Now().UTC()
	}

	c := NewCatalog(pubs, drinks, opts.Logger)
	current := Current(prices, opts.PriceModel)

	d := models.Dashboard{
		PriceModel:   opts.PriceModel,
		Currency:     opts.Currency,
		ComputedAt:   opts.Now,
		Pubs:         len(pubs),
		Drinks:       len(drinks),
		Prices:       len(current),
		Trend:        models.PriceTrend{Direction: models.TrendStable},
		Index:        PriceIndex(current),
		Popularity:   Popularity(drinks, current),
		Market:       MarketTable(c, current),
		Distribution: Distribution(current, opts.Currency),
		CheapestPubs: CheapestPubs(c, current, DefaultCheapestPubs),
		Rare:         Rare(drinks, current),
	}
	d.Ticker.Index = d.Index

	if cheapest, ok := Cheapest(current); ok {
		item := c.Item(cheapest)
		price := cheapest.Price
		d.Cheapest = &item
		d.Trend = Trend(prices, cheapest)
		d.Ticker.Cheapest = &price
		d.Recommendations.Cheapest = &item
	}
	if highest, ok := Highest(current); ok {
		price := highest.Price
		d.Ticker.Highest = &price
	}
	if trending, ok := Trending(drinks, current); ok {
		d.Ticker.Trending = trending.Name
		d.Recommendations.Trending = trending.Name
	}

	return d
}
