// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package stats

import (
	"log/slog"

	"github.com/danielhkuo/pint-index/models"
)

// Catalog resolves pub and drink ids to names.
// Unknown ids resolve to placeholders and are logged once per id.
type Catalog struct {
	pubs   map[string]models.Pub
	drinks map[string]models.Drink
	order  []models.Drink
	logger *slog.Logger
	missed map[string]bool
}

func NewCatalog(pubs []models.Pub, drinks []models.Drink, logger *slog.Logger) *Catalog {
	if logger == nil {
		logger = slog.Default()
	}

	c := &Catalog{
		pubs:   make(map[string]models.Pub, len(pubs)),
		drinks: make(map[string]models.Drink, len(drinks)),
		order:  drinks,
		logger: logger,
		missed: make(map[string]bool),
	}
	for _, p := range pubs {
		c.pubs[p.ID] = p
	}
	for _, d := range drinks {
		c.drinks[d.ID] = d
	}
	return c
}

// Pub looks up a pub by id.
func (c *Catalog) Pub(id string) (models.Pub, bool) {
	p, ok := c.pubs[id]
	return p, ok
}

// Drink looks up a drink by id.
func (c *Catalog) Drink(id string) (models.Drink, bool) {
	d, ok := c.drinks[id]
	return d, ok
}

// Drinks returns the drinks in creation order.
func (c *Catalog) Drinks() []models.Drink {
	return c.order
}

func (c *Catalog) PubName(id string) string {
	if p, ok := c.pubs[id]; ok {
		return p.Name
	}
	c.miss("pub", id)
	return models.UnknownPub
}

func (c *Catalog) DrinkName(id string) string {
	if d, ok := c.drinks[id]; ok {
		return d.Name
	}
	c.miss("drink", id)
	return models.UnknownDrink
}

// Item resolves the names of a price entry.
func (c *Catalog) Item(e models.PriceEntry) models.PricedItem {
	item := models.PricedItem{
		EntryID:   e.ID,
		PubID:     e.PubID,
		Pub:       c.PubName(e.PubID),
		DrinkID:   e.DrinkID,
		Drink:     c.DrinkName(e.DrinkID),
		Price:     e.Price,
		Timestamp: e.Timestamp,
	}
	if d, ok := c.drinks[e.DrinkID]; ok {
		item.Category = d.Category
	}
	return item
}

func (c *Catalog) miss(kind, id string) {
	key := kind + ":" + id
	if c.missed[key] {
		return
	}
	c.missed[key] = true
	c.logger.Warn("price entry references unknown record", "kind", kind, "id", id)
}
