// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/danielhkuo/pint-index/models"
)

// Collection names shared with the browser dashboards.
const (
	CollectionPubs   = "pubs"
	CollectionDrinks = "pintDefinitions"
	CollectionPrices = "pintPrices"
)

var _ Store = (*Firestore)(nil)

// Firestore is a Store over Cloud Firestore collections.
// FIRESTORE_EMULATOR_HOST is honoured by the client library.
type Firestore struct {
	client *firestore.Client
	now    func() time.Time
}

type pubDoc struct {
	Name      string    `firestore:"name"`
	Address   string    `firestore:"address"`
	CreatedAt time.Time `firestore:"createdAt"`
}

type drinkDoc struct {
	Name      string    `firestore:"name"`
	Category  string    `firestore:"category"`
	CreatedAt time.Time `firestore:"createdAt"`
}

type priceDoc struct {
	PubID     string    `firestore:"pubId"`
	DrinkID   string    `firestore:"pintId"`
	Price     float64   `firestore:"price"`
	Active    *bool     `firestore:"active,omitempty"`
	Timestamp time.Time `firestore:"timestamp"`
}

func NewFirestore(ctx context.Context, projectID string) (*Firestore, error) {
	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}
	return &Firestore{
		client: client,
		now:    func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
	}, nil
}

func (f *Firestore) CreatePub(ctx context.Context, pub models.Pub) (models.Pub, error) {
	ref := f.client.Collection(CollectionPubs).NewDoc()
	pub.ID = ref.ID
	pub.CreatedAt = f.now()

	_, err := ref.Create(ctx, pubDoc{Name: pub.Name, Address: pub.Address, CreatedAt: pub.CreatedAt})
	if err != nil {
		return models.Pub{}, fmt.Errorf("failed to create pub: %w", err)
	}
	return pub, nil
}

func (f *Firestore) ListPubs(ctx context.Context) ([]models.Pub, error) {
	docs, err := f.client.Collection(CollectionPubs).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pubs: %w", err)
	}

	pubs := make([]models.Pub, 0, len(docs))
	for _, snap := range docs {
		var d pubDoc
		if err := snap.DataTo(&d); err != nil {
			return nil, fmt.Errorf("failed to decode pub %s: %w", snap.Ref.ID, err)
		}
		pubs = append(pubs, models.Pub{ID: snap.Ref.ID, Name: d.Name, Address: d.Address, CreatedAt: d.CreatedAt})
	}
	sort.SliceStable(pubs, func(i, j int) bool { return pubs[i].CreatedAt.Before(pubs[j].CreatedAt) })
	return pubs, nil
}

func (f *Firestore) DeletePub(ctx context.Context, id string) error {
	return f.delete(ctx, CollectionPubs, id)
}

func (f *Firestore) CreateDrink(ctx context.Context, drink models.Drink) (models.Drink, error) {
	ref := f.client.Collection(CollectionDrinks).NewDoc()
	drink.ID = ref.ID
	drink.CreatedAt = f.now()

	_, err := ref.Create(ctx, drinkDoc{Name: drink.Name, Category: drink.Category, CreatedAt: drink.CreatedAt})
	if err != nil {
		return models.Drink{}, fmt.Errorf("failed to create drink: %w", err)
	}
	return drink, nil
}

func (f *Firestore) ListDrinks(ctx context.Context) ([]models.Drink, error) {
	docs, err := f.client.Collection(CollectionDrinks).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch drinks: %w", err)
	}

	drinks := make([]models.Drink, 0, len(docs))
	for _, snap := range docs {
		var d drinkDoc
		if err := snap.DataTo(&d); err != nil {
			return nil, fmt.Errorf("failed to decode drink %s: %w", snap.Ref.ID, err)
		}
		drinks = append(drinks, models.Drink{ID: snap.Ref.ID, Name: d.Name, Category: d.Category, CreatedAt: d.CreatedAt})
	}
	sort.SliceStable(drinks, func(i, j int) bool { return drinks[i].CreatedAt.Before(drinks[j].CreatedAt) })
	return drinks, nil
}

func (f *Firestore) DeleteDrink(ctx context.Context, id string) error {
	return f.delete(ctx, CollectionDrinks, id)
}

func (f *Firestore) AppendPrice(ctx context.Context, entry models.PriceEntry) (models.PriceEntry, error) {
	ref := f.client.Collection(CollectionPrices).NewDoc()
	entry.ID = ref.ID
	entry.Timestamp = f.now()
	entry.Active = nil

	if _, err := ref.Create(ctx, toPriceDoc(entry)); err != nil {
		return models.PriceEntry{}, fmt.Errorf("failed to create price: %w", err)
	}
	return entry, nil
}

func (f *Firestore) ReplaceActivePrice(ctx context.Context, entry models.PriceEntry) (models.PriceEntry, error) {
	prices := f.client.Collection(CollectionPrices)
	ref := prices.NewDoc()
	entry.ID = ref.ID
	entry.Timestamp = f.now()
	entry.Active = boolPtr(true)

	current := prices.
		Where("pubId", "==", entry.PubID).
		Where("pintId", "==", entry.DrinkID).
		Where("active", "==", true)

	err := f.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		docs, err := tx.Documents(current).GetAll()
		if err != nil {
			return err
		}
		for _, snap := range docs {
			if err := tx.Update(snap.Ref, []firestore.Update{{Path: "active", Value: false}}); err != nil {
				return err
			}
		}
		return tx.Create(ref, toPriceDoc(entry))
	})
	if err != nil {
		return models.PriceEntry{}, fmt.Errorf("failed to replace active price: %w", err)
	}
	return entry, nil
}

func (f *Firestore) ListPrices(ctx context.Context) ([]models.PriceEntry, error) {
	docs, err := f.client.Collection(CollectionPrices).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch prices: %w", err)
	}

	prices := make([]models.PriceEntry, 0, len(docs))
	for _, snap := range docs {
		var d priceDoc
		if err := snap.DataTo(&d); err != nil {
			return nil, fmt.Errorf("failed to decode price %s: %w", snap.Ref.ID, err)
		}
		prices = append(prices, fromPriceDoc(snap.Ref.ID, d))
	}
	sortPrices(prices)
	return prices, nil
}

func (f *Firestore) DeletePrice(ctx context.Context, id string) error {
	return f.delete(ctx, CollectionPrices, id)
}

func (f *Firestore) delete(ctx context.Context, collection, id string) error {
	_, err := f.client.Collection(collection).Doc(id).Delete(ctx, firestore.Exists)
	if status.Code(err) == codes.NotFound {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete %s/%s: %w", collection, id, err)
	}
	return nil
}

func (f *Firestore) Ping(ctx context.Context) error {
	_, err := f.client.Collection(CollectionPubs).Limit(1).Documents(ctx).GetAll()
	return err
}

func (f *Firestore) Close() error {
	return f.client.Close()
}

func toPriceDoc(e models.PriceEntry) priceDoc {
	return priceDoc{
		PubID:     e.PubID,
		DrinkID:   e.DrinkID,
		Price:     e.Price.InexactFloat64(),
		Active:    e.Active,
		Timestamp: e.Timestamp,
	}
}

func fromPriceDoc(id string, d priceDoc) models.PriceEntry {
	return models.PriceEntry{
		ID:        id,
		PubID:     d.PubID,
		DrinkID:   d.DrinkID,
		Price:     decimal.NewFromFloat(d.Price).Round(2),
		Active:    d.Active,
		Timestamp: d.Timestamp,
	}
}
