// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package render

import (
	"bytes"
	"fmt"
	"io"
	"net/url"
	"strings"
	"text/template"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/danielhkuo/pint-index/models"
)

// CollapsedRows is how many rows a collapsed section shows.
const CollapsedRows = 5

// Output formats
const (
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
)

// ViewState holds which sections are expanded. It belongs to one request.
type ViewState struct {
	TableExpanded      bool
	RareExpanded       bool
	PopularityExpanded bool
}

// ViewFromQuery reads ?table=full, ?rare=all and ?popularity=all.
func ViewFromQuery(q url.Values) ViewState {
	return ViewState{
		TableExpanded:      q.Get("table") == "full",
		RareExpanded:       q.Get("rare") == "all",
		PopularityExpanded: q.Get("popularity") == "all",
	}
}

// page is the template data: the dashboard plus the rows each section shows.
type page struct {
	models.Dashboard
	MarketRows       []models.MarketRow
	MarketHidden     int
	RareRows         []models.RareDrink
	RareHidden       int
	PopularityRows   []models.PopularityEntry
	PopularityHidden int
}

func newPage(d models.Dashboard, view ViewState) page {
	p := page{Dashboard: d}
	p.MarketRows, p.MarketHidden = clip(d.Market, view.TableExpanded)
	p.RareRows, p.RareHidden = clip(d.Rare, view.RareExpanded)
	p.PopularityRows, p.PopularityHidden = clip(d.Popularity, view.PopularityExpanded)
	return p
}

// clip keeps the first CollapsedRows rows unless expanded and reports how
// many were hidden.
func clip[T any](rows []T, expanded bool) ([]T, int) {
	if expanded || len(rows) <= CollapsedRows {
		return rows, 0
	}
	return rows[:CollapsedRows], len(rows) - CollapsedRows
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`, "|", `\|`, "*", `\*`, "_", `\_`, "`", "\\`",
	"[", `\[`, "]", `\]`, "<", `\<`, ">", `\>`,
)

var funcs = template.FuncMap{
	"cell":    markdownEscaper.Replace,
	"money":   money,
	"ordinal": humanize.Ordinal,
	"ago": func(now, then time.Time) string {
		return humanize.RelTime(then, now, "ago", "from now")
	},
	"bar":    bar,
	"trend":  trendText,
	"ticker": tickerText,
	"plural": func(n int, one, many string) string {
		if n == 1 {
			return one
		}
		return many
	},
}

var dashboardTemplate = template.Must(template.New("dashboard").Funcs(funcs).Parse(dashboardMarkdown))

// Markdown writes the dashboard as GitHub-flavoured Markdown.
func Markdown(w io.Writer, d models.Dashboard, view ViewState) error {
	if err := dashboardTemplate.Execute(w, newPage(d, view)); err != nil {
		return fmt.Errorf("failed to render dashboard: %w", err)
	}
	return nil
}

var markdownToHTML = goldmark.New(goldmark.WithExtensions(extension.Table, extension.Strikethrough))

// HTML writes the dashboard as a standalone HTML page.
func HTML(w io.Writer, d models.Dashboard, view ViewState) error {
	var src bytes.Buffer
	if err := Markdown(&src, d, view); err != nil {
		return err
	}

	var body bytes.Buffer
	if err := markdownToHTML.Convert(src.Bytes(), &body); err != nil {
		return fmt.Errorf("failed to convert dashboard to HTML: %w", err)
	}

	_, err := fmt.Fprintf(w, htmlPage, body.String())
	return err
}

func money(symbol string, amount decimal.Decimal) string {
	return symbol + amount.StringFixed(2)
}

// bar draws count as a bar up to 20 cells wide, scaled to max.
func bar(count, max int) string {
	const width = 20
	if count <= 0 || max <= 0 {
		return ""
	}
	n := count * width / max
	if n < 1 {
		n = 1
	}
	return strings.Repeat("█", n)
}

func trendText(symbol string, t models.PriceTrend) string {
	switch t.Direction {
	case models.TrendUp:
		return "up " + money(symbol, t.Delta) + " on the last report"
	case models.TrendDown:
		return "down " + money(symbol, t.Delta.Abs()) + " on the last report"
	default:
		return "steady"
	}
}

func tickerText(symbol string, t models.Ticker) string {
	if t.Cheapest == nil {
		return "No market data yet."
	}
	parts := []string{
		"Cheapest " + money(symbol, *t.Cheapest),
		"Index " + money(symbol, t.Index),
	}
	if t.Trending != "" {
		parts = append(parts, "Popular "+markdownEscaper.Replace(t.Trending))
	}
	if t.Highest != nil {
		parts = append(parts, "High "+money(symbol, *t.Highest))
	}
	return strings.Join(parts, " · ")
}

const htmlPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Pint Index</title>
</head>
<body>
%s</body>
</html>
`
