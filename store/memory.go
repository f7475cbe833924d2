// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/pint-index/models"
)

var _ Store = (*Memory)(nil)

// Memory is an in-memory Store used by tests and ephemeral runs.
type Memory struct {
	mu     sync.RWMutex
	now    func() time.Time
	pubs   []models.Pub
	drinks []models.Drink
	prices []models.PriceEntry
}

func NewMemory() *Memory {
	return NewMemoryWithClock(func() time.Time { return time.Now().UTC() })
}

// NewMemoryWithClock returns a Memory store stamping records with clock.
func NewMemoryWithClock(clock func() time.Time) *Memory {
	return &Memory{now: clock}
}

func (m *Memory) CreatePub(_ context.Context, pub models.Pub) (models.Pub, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	pub.ID = uuid.NewString()
	pub.CreatedAt = m.now()
	m.pubs = append(m.pubs, pub)
	return pub, nil
}

func (m *Memory) ListPubs(_ context.Context) ([]models.Pub, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.pubs), nil
}

func (m *Memory) DeletePub(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := slices.IndexFunc(m.pubs, func(p models.Pub) bool { return p.ID == id })
	if i < 0 {
		return ErrNotFound
	}
	m.pubs = slices.Delete(m.pubs, i, i+1)
	return nil
}

func (m *Memory) CreateDrink(_ context.Context, drink models.Drink) (models.Drink, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	drink.ID = uuid.NewString()
	drink.CreatedAt = m.now()
	m.drinks = append(m.drinks, drink)
	return drink, nil
}

func (m *Memory) ListDrinks(_ context.Context) ([]models.Drink, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.drinks), nil
}

func (m *Memory) DeleteDrink(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := slices.IndexFunc(m.drinks, func(d models.Drink) bool { return d.ID == id })
	if i < 0 {
		return ErrNotFound
	}
	m.drinks = slices.Delete(m.drinks, i, i+1)
	return nil
}

func (m *Memory) AppendPrice(_ context.Context, entry models.PriceEntry) (models.PriceEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry.ID = uuid.NewString()
	entry.Timestamp = m.now()
	entry.Active = nil
	m.prices = append(m.prices, entry)
	return entry, nil
}

func (m *Memory) ReplaceActivePrice(_ context.Context, entry models.PriceEntry) (models.PriceEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, p := range m.prices {
		if p.PubID == entry.PubID && p.DrinkID == entry.DrinkID && p.IsActive() {
			m.prices[i].Active = boolPtr(false)
		}
	}

	entry.ID = uuid.NewString()
	entry.Timestamp = m.now()
	entry.Active = boolPtr(true)
	m.prices = append(m.prices, entry)
	return entry, nil
}

func (m *Memory) ListPrices(_ context.Context) ([]models.PriceEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.PriceEntry, len(m.prices))
	for i, p := range m.prices {
		if p.Active != nil {
			p.Active = boolPtr(*p.Active)
		}
		out[i] = p
	}
	sortPrices(out)
	return out, nil
}

func (m *Memory) DeletePrice(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := slices.IndexFunc(m.prices, func(p models.PriceEntry) bool { return p.ID == id })
	if i < 0 {
		return ErrNotFound
	}
	m.prices = slices.Delete(m.prices, i, i+1)
	return nil
}

func (m *Memory) Ping(_ context.Context) error { return nil }
func (m *Memory) Close() error                  { return nil }
