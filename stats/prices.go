// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package stats

import (
	"fmt"
	"slices"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/danielhkuo/pint-index/models"
)

// DefaultCheapestPubs is how many pubs CheapestPubs returns by default.
const DefaultCheapestPubs = 5

// ActiveOnly keeps the entries flagged active.
func ActiveOnly(prices []models.PriceEntry) []models.PriceEntry {
	out := make([]models.PriceEntry, 0, len(prices))
	for _, p := range prices {
		if p.IsActive() {
			out = append(out, p)
		}
	}
	return out
}

// Current returns the entries the aggregates run over for a price model.
func Current(prices []models.PriceEntry, priceModel string) []models.PriceEntry {
	if priceModel == models.PriceModelActive {
		return ActiveOnly(prices)
	}
	return prices
}

// Cheapest returns the entry with the lowest price. The earliest entry wins
// a tie. The second result is false when prices is empty.
func Cheapest(prices []models.PriceEntry) (models.PriceEntry, bool) {
	if len(prices) == 0 {
		return models.PriceEntry{}, false
	}
	best := prices[0]
	for _, p := range prices[1:] {
		if p.Price.LessThan(best.Price) {
			best = p
		}
	}
	return best, true
}

// Highest returns the entry with the highest price, earliest on ties.
func Highest(prices []models.PriceEntry) (models.PriceEntry, bool) {
	if len(prices) == 0 {
		return models.PriceEntry{}, false
	}
	best := prices[0]
	for _, p := range prices[1:] {
		if p.Price.GreaterThan(best.Price) {
			best = p
		}
	}
	return best, true
}

// PriceIndex is the mean price rounded to 2 decimal places, zero when empty.
func PriceIndex(prices []models.PriceEntry) decimal.Decimal {
	return mean(prices).Round(2)
}

func mean(prices []models.PriceEntry) decimal.Decimal {
	if len(prices) == 0 {
		return decimal.Zero
	}
	sum := decimal.Zero
	for _, p := range prices {
		sum = sum.Add(p.Price)
	}
	return sum.Div(decimal.NewFromInt(int64(len(prices))))
}

// counts tallies entries per drink id.
func counts(prices []models.PriceEntry) map[string]int {
	freq := make(map[string]int)
	for _, p := range prices {
		freq[p.DrinkID]++
	}
	return freq
}

// Popularity counts entries per drink. Every drink appears, including those
// with no entries. Higher counts come first; ties keep drink creation order.
// Entries for unknown drinks are not counted.
func Popularity(drinks []models.Drink, prices []models.PriceEntry) []models.PopularityEntry {
	freq := counts(prices)

	out := make([]models.PopularityEntry, 0, len(drinks))
	for _, d := range drinks {
		out = append(out, models.PopularityEntry{DrinkID: d.ID, Name: d.Name, Count: freq[d.ID]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}

// Trending returns the most submitted drink, if any drink has a submission.
func Trending(drinks []models.Drink, prices []models.PriceEntry) (models.PopularityEntry, bool) {
	ranked := Popularity(drinks, prices)
	if len(ranked) == 0 || ranked[0].Count == 0 {
		return models.PopularityEntry{}, false
	}
	return ranked[0], true
}

// Distribution buckets prices by their integer floor into [floor, floor+1)
// ranges, ordered by floor.
func Distribution(prices []models.PriceEntry, symbol string) models.Histogram {
	byFloor := make(map[int64]int)
	for _, p := range prices {
		byFloor[p.Price.Floor().IntPart()]++
	}

	h := models.Histogram{Buckets: make([]models.Bucket, 0, len(byFloor))}
	for floor, n := range byFloor {
		h.Buckets = append(h.Buckets, models.Bucket{
			Floor: floor,
			Label: fmt.Sprintf("%s%d–%s%d", symbol, floor, symbol, floor+1),
			Count: n,
		})
		if n > h.Max {
			h.Max = n
		}
	}
	sort.Slice(h.Buckets, func(i, j int) bool {
		return h.Buckets[i].Floor < h.Buckets[j].Floor
	})
	return h
}

// CheapestPubs ranks pubs by their mean price, lowest first, and keeps the
// first limit. Pubs tie in the order their first entry appears.
func CheapestPubs(c *Catalog, prices []models.PriceEntry, limit int) []models.PubAverage {
	if limit <= 0 {
		limit = DefaultCheapestPubs
	}

	var order []string
	grouped := make(map[string][]models.PriceEntry)
	for _, p := range prices {
		if _, seen := grouped[p.PubID]; !seen {
			order = append(order, p.PubID)
		}
		grouped[p.PubID] = append(grouped[p.PubID], p)
	}

	type ranked struct {
		pubID string
		mean  decimal.Decimal
		n     int
	}
	all := make([]ranked, 0, len(order))
	for _, id := range order {
		all = append(all, ranked{pubID: id, mean: mean(grouped[id]), n: len(grouped[id])})
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].mean.LessThan(all[j].mean)
	})

	if len(all) > limit {
		all = all[:limit]
	}
	out := make([]models.PubAverage, len(all))
	for i, r := range all {
		out[i] = models.PubAverage{
			PubID:   r.pubID,
			Name:    c.PubName(r.pubID),
			Average: r.mean.Round(2),
			Samples: r.n,
			Rank:    i + 1,
		}
	}
	return out
}

// Rare lists drinks with fewer than three entries, rarest first.
func Rare(drinks []models.Drink, prices []models.PriceEntry) []models.RareDrink {
	freq := counts(prices)

	out := []models.RareDrink{}
	for _, d := range drinks {
		n := freq[d.ID]
		tier, ok := rarityTier(n)
		if !ok {
			continue
		}
		out = append(out, models.RareDrink{DrinkID: d.ID, Name: d.Name, Count: n, Tier: tier})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count < out[j].Count
	})
	return out
}

func rarityTier(count int) (string, bool) {
	switch count {
	case 0:
		return models.RarityUnseen, true
	case 1:
		return models.RarityScarce, true
	case 2:
		return models.RarityUncommon, true
	default:
		return "", false
	}
}

// DrinkSummary reports the cheapest entry and mean price for one drink.
// The second result is false when the drink has no entries.
func DrinkSummary(c *Catalog, prices []models.PriceEntry, drinkID string) (models.DrinkSummary, bool) {
	summary := models.DrinkSummary{
		DrinkID: drinkID,
		Name:    c.DrinkName(drinkID),
		Average: decimal.Zero,
	}

	matches := forDrink(prices, drinkID)
	cheapest, ok := Cheapest(matches)
	if !ok {
		return summary, false
	}

	item := c.Item(cheapest)
	summary.Cheapest = &item
	summary.Average = mean(matches).Round(2)
	summary.Samples = len(matches)
	return summary, true
}

// Compare summarises two drinks side by side. NotEnoughData is set when
// either drink has no entries.
func Compare(c *Catalog, prices []models.PriceEntry, a, b string) models.Comparison {
	sa, okA := DrinkSummary(c, prices, a)
	sb, okB := DrinkSummary(c, prices, b)

	cmp := models.Comparison{A: sa, B: sb, NotEnoughData: !okA || !okB}
	if !cmp.NotEnoughData {
		diff := sb.Average.Sub(sa.Average)
		cmp.Difference = &diff
	}
	return cmp
}

// Trend compares the two most recent entries for the pair of entry, taken
// from the full history including inactive rows. With fewer than two
// entries the trend is stable.
func Trend(history []models.PriceEntry, entry models.PriceEntry) models.PriceTrend {
	var pair []models.PriceEntry
	for _, p := range history {
		if p.PubID == entry.PubID && p.DrinkID == entry.DrinkID {
			pair = append(pair, p)
		}
	}

	// Newest first; reversing before the stable sort lets the later
	// insertion win on equal timestamps.
	slices.Reverse(pair)
	sort.SliceStable(pair, func(i, j int) bool {
		return pair[i].Timestamp.After(pair[j].Timestamp)
	})

	trend := models.PriceTrend{Direction: models.TrendStable, Delta: decimal.Zero, Samples: len(pair)}
	if len(pair) == 0 {
		return trend
	}

	latest := pair[0].Price
	updated := pair[0].Timestamp
	trend.Latest = &latest
	trend.UpdatedAt = &updated
	if len(pair) < 2 {
		return trend
	}

	previous := pair[1].Price
	trend.Previous = &previous
	trend.Delta = latest.Sub(previous)
	switch trend.Delta.Sign() {
	case 1:
		trend.Direction = models.TrendUp
	case -1:
		trend.Direction = models.TrendDown
	}
	return trend
}

// MarketTable lists every entry by ascending price.
func MarketTable(c *Catalog, prices []models.PriceEntry) []models.MarketRow {
	sorted := slices.Clone(prices)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Price.LessThan(sorted[j].Price)
	})

	rows := make([]models.MarketRow, len(sorted))
	for i, p := range sorted {
		rows[i] = models.MarketRow{Rank: i + 1, PricedItem: c.Item(p)}
	}
	return rows
}

func forDrink(prices []models.PriceEntry, drinkID string) []models.PriceEntry {
	var out []models.PriceEntry
	for _, p := range prices {
		if p.DrinkID == drinkID {
			out = append(out, p)
		}
	}
	return out
}
