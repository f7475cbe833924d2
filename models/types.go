package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Price model constants
const (
	// PriceModelActive keeps exactly one current price per (pub, drink) pair.
	PriceModelActive = "active"
	// PriceModelLedger keeps every submission as an independent historical row.
	PriceModelLedger = "ledger"
)

// Trend direction constants
const (
	TrendUp     = "up"
	TrendDown   = "down"
	TrendStable = "stable"
)

// Rarity tiers, rarest first
const (
	RarityUnseen   = "unseen"   // no submissions
	RarityScarce   = "scarce"   // one submission
	RarityUncommon = "uncommon" // two submissions
)

// Placeholders for dangling references
const (
	UnknownPub   = "Unknown pub"
	UnknownDrink = "Unknown drink"
)

// Request types

type CreatePubRequest struct {
	Name    string `json:"name" validate:"required"`
	Address string `json:"address"`
}

type CreateDrinkRequest struct {
	Name     string `json:"name" validate:"required"`
	Category string `json:"category" validate:"required"`
}

type SubmitPriceRequest struct {
	PubID   string          `json:"pub_id" validate:"required"`
	DrinkID string          `json:"drink_id" validate:"required"`
	Price   decimal.Decimal `json:"price"`
}

// Domain types

type Pub struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Drink is a drink definition prices are submitted against.
type Drink struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}

type PriceEntry struct {
	ID        string          `json:"id"`
	PubID     string          `json:"pub_id"`
	DrinkID   string          `json:"drink_id"`
	Price     decimal.Decimal `json:"price"`
	Timestamp time.Time       `json:"timestamp"`
	Active    *bool           `json:"active,omitempty"` // nil in ledger mode
}

// IsActive reports whether the entry carries active=true.
func (p PriceEntry) IsActive() bool {
	return p.Active != nil && *p.Active
}

// Aggregate result types

// PricedItem is a price entry with its names resolved.
type PricedItem struct {
	EntryID   string          `json:"entry_id"`
	PubID     string          `json:"pub_id"`
	Pub       string          `json:"pub"`
	DrinkID   string          `json:"drink_id"`
	Drink     string          `json:"drink"`
	Category  string          `json:"category,omitempty"`
	Price     decimal.Decimal `json:"price"`
	Timestamp time.Time       `json:"timestamp"`
}

type PopularityEntry struct {
	DrinkID string `json:"drink_id"`
	Name    string `json:"name"`
	Count   int    `json:"count"`
}

type Bucket struct {
	Floor int64  `json:"floor"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

type Histogram struct {
	Buckets []Bucket `json:"buckets"`
	Max     int      `json:"max"`
}

type PubAverage struct {
	PubID   string          `json:"pub_id"`
	Name    string          `json:"name"`
	Average decimal.Decimal `json:"average"`
	Samples int             `json:"samples"`
	Rank    int             `json:"rank"` // 1-indexed ranking
}

type RareDrink struct {
	DrinkID string `json:"drink_id"`
	Name    string `json:"name"`
	Count   int    `json:"count"`
	Tier    string `json:"tier"`
}

type BudgetOption struct {
	PricedItem
	Affordable int64           `json:"affordable"`
	Total      decimal.Decimal `json:"total"`
	Leftover   decimal.Decimal `json:"leftover"`
	Popularity int             `json:"popularity"`
}

type BudgetPlan struct {
	Budget       decimal.Decimal `json:"budget"`
	Options      int             `json:"options"`
	BestValue    []BudgetOption  `json:"best_value"`
	Cheapest     []BudgetOption  `json:"cheapest"`
	ClosestSpend []BudgetOption  `json:"closest_spend"`
	MostPopular  []BudgetOption  `json:"most_popular"`
	Premium      []BudgetOption  `json:"premium"`
}

type DrinkSummary struct {
	DrinkID  string          `json:"drink_id"`
	Name     string          `json:"name"`
	Cheapest *PricedItem     `json:"cheapest,omitempty"`
	Average  decimal.Decimal `json:"average"`
	Samples  int             `json:"samples"`
}

type Comparison struct {
	A             DrinkSummary     `json:"a"`
	B             DrinkSummary     `json:"b"`
	NotEnoughData bool             `json:"not_enough_data"`
	Difference    *decimal.Decimal `json:"difference,omitempty"` // B average minus A average
}

type PriceTrend struct {
	Direction string           `json:"direction"`
	Delta     decimal.Decimal  `json:"delta"`
	Latest    *decimal.Decimal `json:"latest,omitempty"`
	Previous  *decimal.Decimal `json:"previous,omitempty"`
	Samples   int              `json:"samples"`
	UpdatedAt *time.Time       `json:"updated_at,omitempty"`
}

type CheapestResponse struct {
	Cheapest *PricedItem `json:"cheapest,omitempty"`
	Trend    *PriceTrend `json:"trend,omitempty"`
	Message  string      `json:"message,omitempty"`
}

type IndexResponse struct {
	Index   decimal.Decimal `json:"index"`
	Samples int             `json:"samples"`
}

type MarketRow struct {
	Rank int `json:"rank"`
	PricedItem
}

type Ticker struct {
	Cheapest *decimal.Decimal `json:"cheapest,omitempty"`
	Index    decimal.Decimal  `json:"index"`
	Trending string           `json:"trending,omitempty"`
	Highest  *decimal.Decimal `json:"highest,omitempty"`
}

type Recommendations struct {
	Cheapest *PricedItem `json:"cheapest,omitempty"`
	Trending string      `json:"trending,omitempty"`
}

type Dashboard struct {
	PriceModel      string            `json:"price_model"`
	Currency        string            `json:"currency"`
	ComputedAt      time.Time         `json:"computed_at"`
	Pubs            int               `json:"pubs"`
	Drinks          int               `json:"drinks"`
	Prices          int               `json:"prices"`
	Cheapest        *PricedItem       `json:"cheapest,omitempty"`
	Trend           PriceTrend        `json:"trend"`
	Ticker          Ticker            `json:"ticker"`
	Index           decimal.Decimal   `json:"index"`
	Popularity      []PopularityEntry `json:"popularity"`
	Market          []MarketRow       `json:"market"`
	Distribution    Histogram         `json:"distribution"`
	CheapestPubs    []PubAverage      `json:"cheapest_pubs"`
	Recommendations Recommendations   `json:"recommendations"`
	Rare            []RareDrink       `json:"rare"`
}

// Response types

type ListPubsResponse struct {
	Pubs []Pub `json:"pubs"`
}

type ListDrinksResponse struct {
	Drinks []Drink `json:"drinks"`
}

type ListPricesResponse struct {
	Prices []PriceEntry `json:"prices"`
}

type WipeResponse struct {
	Deleted int    `json:"deleted"`
	Message string `json:"message"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
