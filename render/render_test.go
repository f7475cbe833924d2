// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package render

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/pint-index/models"
)

var now = time.Date(2025, 11, 1, 20, 0, 0, 0, time.UTC)

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sampleDashboard(marketRows, drinks int) models.Dashboard {
	d := models.Dashboard{
		PriceModel: models.PriceModelActive,
		Currency:   "£",
		ComputedAt: now,
		Pubs:       2,
		Drinks:     drinks,
		Prices:     marketRows,
		Trend:      models.PriceTrend{Direction: models.TrendDown, Delta: price("-0.30")},
	}

	for i := 0; i < marketRows; i++ {
		d.Market = append(d.Market, models.MarketRow{
			Rank: i + 1,
			PricedItem: models.PricedItem{
				EntryID:   fmt.Sprintf("e%d", i),
				Pub:       "The Red Lion",
				Drink:     fmt.Sprintf("Market Drink %d", i+1),
				Price:     price("4.00").Add(decimal.NewFromInt(int64(i))),
				Timestamp: now.Add(-2 * time.Hour),
			},
		})
	}
	for i := 0; i < drinks; i++ {
		d.Popularity = append(d.Popularity, models.PopularityEntry{
			DrinkID: fmt.Sprintf("d%d", i),
			Name:    fmt.Sprintf("Popular Drink %d", i+1),
			Count:   drinks - i,
		})
		d.Rare = append(d.Rare, models.RareDrink{
			DrinkID: fmt.Sprintf("d%d", i),
			Name:    fmt.Sprintf("Rare Drink %d", i+1),
			Tier:    models.RarityUnseen,
		})
	}

	if marketRows > 0 {
		d.Index = price("4.85")
		cheapest := d.Market[0].PricedItem
		cheapest.Category = "Stout"
		low, high := cheapest.Price, d.Market[marketRows-1].Price
		d.Cheapest = &cheapest
		d.Ticker = models.Ticker{Cheapest: &low, Index: d.Index, Trending: "Guinness", Highest: &high}
		d.Recommendations = models.Recommendations{Cheapest: &cheapest, Trending: "Guinness"}
		d.Distribution = models.Histogram{
			Buckets: []models.Bucket{{Floor: 4, Label: "£4–£5", Count: 2}, {Floor: 5, Label: "£5–£6", Count: 1}},
			Max:     2,
		}
		d.CheapestPubs = []models.PubAverage{{PubID: "lion", Name: "The Red Lion", Average: price("4.5"), Samples: marketRows, Rank: 1}}
	}
	return d
}

func renderMarkdown(t *testing.T, d models.Dashboard, view ViewState) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Markdown(&buf, d, view))
	return buf.String()
}

func TestViewFromQuery(t *testing.T) {
	tests := []struct {
		query string
		want  ViewState
	}{
		{"", ViewState{}},
		{"table=full", ViewState{TableExpanded: true}},
		{"rare=all&popularity=all", ViewState{RareExpanded: true, PopularityExpanded: true}},
		{"table=top&rare=some", ViewState{}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ViewFromQuery(q))
		})
	}
}

func TestMarkdownHeadline(t *testing.T) {
	out := renderMarkdown(t, sampleDashboard(3, 2), ViewState{})

	assert.Contains(t, out, "# Pint Index")
	assert.Contains(t, out, "**Cheapest pint right now:** Market Drink 1 (Stout) at The Red Lion for **£4.00**, down £0.30 on the last report.")
	assert.Contains(t, out, "Cheapest £4.00 · Index £4.85 · Popular Guinness · High £6.00")
	assert.Contains(t, out, "**Pint index:** £4.85 across 3 prices.")
	assert.Contains(t, out, "| 1st | Market Drink 1 | The Red Lion | £4.00 | 2 hours ago |")
	assert.Contains(t, out, "| £4–£5 | 2 | ████████████████████ |")
	assert.Contains(t, out, "1. The Red Lion: £4.50 average over 3 prices")
	assert.Contains(t, out, "- Trending: Guinness")
	assert.Contains(t, out, "Computed 2025-11-01 20:00 UTC.")
}

func TestMarkdownEmptyDashboard(t *testing.T) {
	out := renderMarkdown(t, sampleDashboard(0, 0), ViewState{})

	assert.Contains(t, out, "No prices yet.")
	assert.Contains(t, out, "No market data yet.")
	assert.Contains(t, out, "**Pint index:** £0.00 across 0 prices.")
	assert.Contains(t, out, "No data.")
	assert.NotContains(t, out, "| Rank |")
}

func TestMarkdownCollapsedSections(t *testing.T) {
	d := sampleDashboard(8, 7)

	collapsed := renderMarkdown(t, d, ViewState{})
	assert.Contains(t, collapsed, "| 5th | Market Drink 5 |")
	assert.NotContains(t, collapsed, "Market Drink 6")
	assert.Contains(t, collapsed, "3 more rows hidden. Add table=full to show all.")
	assert.Contains(t, collapsed, "Rare Drink 5")
	assert.NotContains(t, collapsed, "Rare Drink 6")
	assert.Contains(t, collapsed, "2 more drinks hidden. Add rare=all to show all.")
	assert.NotContains(t, collapsed, "Popular Drink 6")

	expanded := renderMarkdown(t, d, ViewState{TableExpanded: true, RareExpanded: true, PopularityExpanded: true})
	assert.Contains(t, expanded, "| 8th | Market Drink 8 |")
	assert.Contains(t, expanded, "Rare Drink 7")
	assert.Contains(t, expanded, "Popular Drink 7")
	assert.NotContains(t, expanded, "hidden")
}

func TestMarkdownEscapesNames(t *testing.T) {
	d := sampleDashboard(1, 0)
	d.Market[0].Pub = "Pipe | and *star*"

	out := renderMarkdown(t, d, ViewState{})
	assert.Contains(t, out, `Pipe \| and \*star\*`)
}

func TestHTML(t *testing.T) {
	d := sampleDashboard(2, 1)
	d.Market[1].Drink = "<script>alert(1)</script>"

	var buf bytes.Buffer
	require.NoError(t, HTML(&buf, d, ViewState{}))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, "<h1>Pint Index</h1>")
	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, "<td>The Red Lion</td>")
	assert.Contains(t, out, "<hr>")
	assert.NotContains(t, out, "<script>")
}

func TestBar(t *testing.T) {
	assert.Equal(t, "", bar(0, 5))
	assert.Equal(t, "", bar(3, 0))
	assert.Equal(t, strings.Repeat("█", 20), bar(5, 5))
	assert.Equal(t, strings.Repeat("█", 10), bar(2, 4))
	assert.Equal(t, "█", bar(1, 100))
}
