// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package stats

import (
	"errors"
	"slices"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/danielhkuo/pint-index/models"
)

// Budget ranking sizes
const (
	DefaultBudgetPicks = 1
	MaxBudgetPicks     = 3
)

var ErrInvalidBudget = errors.New("budget must be a positive amount")

// PlanBudget works out how many of each entry a budget buys and ranks the
// affordable entries five independent ways: most drinks, cheapest price,
// least change left, most submitted drink, highest price. Each ranking keeps
// its first picks entries (1 to 3). Entries the budget cannot buy once are
// left out of every ranking. The budget is rounded to the penny and may not
// exceed MaxAmount.
func PlanBudget(budget decimal.Decimal, c *Catalog, prices []models.PriceEntry, picks int) (models.BudgetPlan, error) {
	budget, err := NormalizeAmount(budget)
	if errors.Is(err, ErrAmountNotPositive) {
		return models.BudgetPlan{}, ErrInvalidBudget
	}
	if err != nil {
		return models.BudgetPlan{}, err
	}
	if picks <= 0 {
		picks = DefaultBudgetPicks
	}
	if picks > MaxBudgetPicks {
		picks = MaxBudgetPicks
	}

	freq := counts(prices)

	var options []models.BudgetOption
	for _, p := range prices {
		if !p.Price.IsPositive() {
			continue
		}
		affordable, leftover := budget.QuoRem(p.Price, 0)
		n := affordable.IntPart()
		if n <= 0 {
			continue
		}
		options = append(options, models.BudgetOption{
			PricedItem: c.Item(p),
			Affordable: n,
			Total:      p.Price.Mul(decimal.NewFromInt(n)),
			Leftover:   leftover,
			Popularity: freq[p.DrinkID],
		})
	}

	plan := models.BudgetPlan{
		Budget:       budget,
		Options:      len(options),
		BestValue:    []models.BudgetOption{},
		Cheapest:     []models.BudgetOption{},
		ClosestSpend: []models.BudgetOption{},
		MostPopular:  []models.BudgetOption{},
		Premium:      []models.BudgetOption{},
	}
	if len(options) == 0 {
		return plan, nil
	}

	plan.BestValue = top(options, picks, func(a, b models.BudgetOption) bool { return a.Affordable > b.Affordable })
	plan.Cheapest = top(options, picks, func(a, b models.BudgetOption) bool { return a.Price.LessThan(b.Price) })
	plan.ClosestSpend = top(options, picks, func(a, b models.BudgetOption) bool { return a.Leftover.LessThan(b.Leftover) })
	plan.MostPopular = top(options, picks, func(a, b models.BudgetOption) bool { return a.Popularity > b.Popularity })
	plan.Premium = top(options, picks, func(a, b models.BudgetOption) bool { return a.Price.GreaterThan(b.Price) })
	return plan, nil
}

// top stable-sorts a copy of options and keeps the first n.
func top(options []models.BudgetOption, n int, less func(a, b models.BudgetOption) bool) []models.BudgetOption {
	sorted := slices.Clone(options)
	sort.SliceStable(sorted, func(i, j int) bool { return less(sorted[i], sorted[j]) })
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
