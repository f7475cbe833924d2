// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/danielhkuo/pint-index/models"
)

var (
	ErrNotFound = errors.New("record not found")
)

// Store is the storage contract for the three collections.
// Create and Append assign the ID and timestamp of the record they return.
// List operations return records in creation order.
type Store interface {
	CreatePub(ctx context.Context, pub models.Pub) (models.Pub, error)
	ListPubs(ctx context.Context) ([]models.Pub, error)
	DeletePub(ctx context.Context, id string) error

	CreateDrink(ctx context.Context, drink models.Drink) (models.Drink, error)
	ListDrinks(ctx context.Context) ([]models.Drink, error)
	DeleteDrink(ctx context.Context, id string) error

	// AppendPrice inserts an independent ledger row.
	AppendPrice(ctx context.Context, entry models.PriceEntry) (models.PriceEntry, error)
	// ReplaceActivePrice deactivates the active row for the entry's
	// (pub, drink) pair, if any, and inserts the entry as the new active row.
	// Both writes commit together or not at all.
	ReplaceActivePrice(ctx context.Context, entry models.PriceEntry) (models.PriceEntry, error)
	ListPrices(ctx context.Context) ([]models.PriceEntry, error)
	DeletePrice(ctx context.Context, id string) error

	Ping(ctx context.Context) error
	Close() error
}

// Snapshot is a full read of every collection.
type Snapshot struct {
	Pubs   []models.Pub
	Drinks []models.Drink
	Prices []models.PriceEntry
}

// Load fetches all three collections.
func Load(ctx context.Context, s Store) (Snapshot, error) {
	var snap Snapshot
	var err error

	if snap.Pubs, err = s.ListPubs(ctx); err != nil {
		return Snapshot{}, fmt.Errorf("list pubs: %w", err)
	}
	if snap.Drinks, err = s.ListDrinks(ctx); err != nil {
		return Snapshot{}, fmt.Errorf("list drinks: %w", err)
	}
	if snap.Prices, err = s.ListPrices(ctx); err != nil {
		return Snapshot{}, fmt.Errorf("list prices: %w", err)
	}

	return snap, nil
}

// WipePrices deletes every price entry and returns how many were removed.
func WipePrices(ctx context.Context, s Store) (int, error) {
	prices, err := s.ListPrices(ctx)
	if err != nil {
		return 0, fmt.Errorf("list prices: %w", err)
	}

	deleted := 0
	for _, p := range prices {
		if err := s.DeletePrice(ctx, p.ID); err != nil && !errors.Is(err, ErrNotFound) {
			return deleted, fmt.Errorf("delete price %s: %w", p.ID, err)
		}
		deleted++
	}
	return deleted, nil
}

// WipeAll deletes every pub, drink and price entry.
func WipeAll(ctx context.Context, s Store) (int, error) {
	deleted, err := WipePrices(ctx, s)
	if err != nil {
		return deleted, err
	}

	pubs, err := s.ListPubs(ctx)
	if err != nil {
		return deleted, fmt.Errorf("list pubs: %w", err)
	}
	for _, p := range pubs {
		if err := s.DeletePub(ctx, p.ID); err != nil && !errors.Is(err, ErrNotFound) {
			return deleted, fmt.Errorf("delete pub %s: %w", p.ID, err)
		}
		deleted++
	}

	drinks, err := s.ListDrinks(ctx)
	if err != nil {
		return deleted, fmt.Errorf("list drinks: %w", err)
	}
	for _, d := range drinks {
		if err := s.DeleteDrink(ctx, d.ID); err != nil && !errors.Is(err, ErrNotFound) {
			return deleted, fmt.Errorf("delete drink %s: %w", d.ID, err)
		}
		deleted++
	}

	return deleted, nil
}

func boolPtr(b bool) *bool {
	return &b
}

// sortPrices orders entries by timestamp, keeping the existing order on ties.
func sortPrices(prices []models.PriceEntry) {
	sort.SliceStable(prices, func(i, j int) bool {
		return prices[i].Timestamp.Before(prices[j].Timestamp)
	})
}
