// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package render

// Sections are separated by blank lines so a table never swallows the
// paragraph after it.
const dashboardMarkdown = `# Pint Index

{{with .Cheapest}}**Cheapest pint right now:** {{cell .Drink}}{{with .Category}} ({{cell .}}){{end}} at {{cell .Pub}} for **{{money $.Currency .Price}}**, {{trend $.Currency $.Trend}}.
{{else}}No prices yet.
{{end}}
{{ticker .Currency .Ticker}}

**Pint index:** {{money .Currency .Index}} across {{.Prices}} {{plural .Prices "price" "prices"}}.

## Market

{{if .MarketRows}}| Rank | Drink | Pub | Price | Reported |
| ---: | --- | --- | ---: | --- |
{{range .MarketRows}}| {{ordinal .Rank}} | {{cell .Drink}} | {{cell .Pub}} | {{money $.Currency .Price}} | {{ago $.ComputedAt .Timestamp}} |
{{end}}{{if .MarketHidden}}
{{.MarketHidden}} more {{plural .MarketHidden "row" "rows"}} hidden. Add table=full to show all.
{{end}}{{else}}No prices yet.
{{end}}
## Price distribution

{{if .Distribution.Buckets}}| Range | Prices | |
| --- | ---: | --- |
{{range .Distribution.Buckets}}| {{.Label}} | {{.Count}} | {{bar .Count $.Distribution.Max}} |
{{end}}{{else}}No data yet.
{{end}}
## Cheapest pubs

{{if .CheapestPubs}}{{range .CheapestPubs}}{{.Rank}}. {{cell .Name}}: {{money $.Currency .Average}} average over {{.Samples}} {{plural .Samples "price" "prices"}}
{{end}}{{else}}No data yet.
{{end}}
## Popularity

{{if .PopularityRows}}| Drink | Submissions | |
| --- | ---: | --- |
{{range .PopularityRows}}| {{cell .Name}} | {{.Count}} | {{bar .Count (index $.Popularity 0).Count}} |
{{end}}{{if .PopularityHidden}}
{{.PopularityHidden}} more {{plural .PopularityHidden "drink" "drinks"}} hidden. Add popularity=all to show all.
{{end}}{{else}}No drinks yet.
{{end}}
## Recommendations

{{with .Recommendations.Cheapest}}- Cheapest: {{cell .Drink}} at {{cell .Pub}} ({{money $.Currency .Price}})
{{end}}{{with .Recommendations.Trending}}- Trending: {{cell .}}
{{end}}{{if not (or .Recommendations.Cheapest .Recommendations.Trending)}}No data.
{{end}}
## Rare pints

{{if .RareRows}}| Drink | Rarity | Submissions |
| --- | --- | ---: |
{{range .RareRows}}| {{cell .Name}} | {{.Tier}} | {{.Count}} |
{{end}}{{if .RareHidden}}
{{.RareHidden}} more {{plural .RareHidden "drink" "drinks"}} hidden. Add rare=all to show all.
{{end}}{{else}}Every drink has at least three prices.
{{end}}
---

{{.Pubs}} {{plural .Pubs "pub" "pubs"}}, {{.Drinks}} {{plural .Drinks "drink" "drinks"}}, {{.PriceModel}} price model. Computed {{.ComputedAt.UTC.Format "2006-01-02 15:04 MST"}}.
`
