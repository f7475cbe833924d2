// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/pint-index/db"
	"github.com/danielhkuo/pint-index/models"
)

var _ Store = (*SQL)(nil)

// SQL is a Store over database/sql, for postgres or sqlite.
type SQL struct {
	db      *sql.DB
	dialect string
	now     func() time.Time
}

// NewSQL wraps an open connection whose schema already exists (see db.Open).
func NewSQL(conn *sql.DB, dialect string) *SQL {
	return &SQL{
		db:      conn,
		dialect: dialect,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// q rewrites $N placeholders to ? for sqlite.
func (s *SQL) q(query string) string {
	if s.dialect != db.DialectSQLite {
		return query
	}

	var b strings.Builder
	b.Grow(len(query))
	for i := 0; i < len(query); i++ {
		if query[i] == '$' && i+1 < len(query) && query[i+1] >= '0' && query[i+1] <= '9' {
			b.WriteByte('?')
			for i+1 < len(query) && query[i+1] >= '0' && query[i+1] <= '9' {
				i++
			}
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

// order is the creation-order clause for a table.
func (s *SQL) order(timeColumn string) string {
	if s.dialect == db.DialectSQLite {
		return timeColumn + ", rowid"
	}
	return timeColumn + ", seq"
}

func (s *SQL) CreatePub(ctx context.Context, pub models.Pub) (models.Pub, error) {
	pub.ID = uuid.NewString()
	pub.CreatedAt = s.now()

	_, err := s.db.ExecContext(ctx, s.q(`
		INSERT INTO pub (id, name, address, created_at)
		VALUES ($1, $2, $3, $4)
	`), pub.ID, pub.Name, pub.Address, pub.CreatedAt)
	if err != nil {
		return models.Pub{}, fmt.Errorf("failed to insert pub: %w", err)
	}

	return pub, nil
}

func (s *SQL) ListPubs(ctx context.Context) ([]models.Pub, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, address, created_at
		FROM pub
		ORDER BY `+s.order("created_at"))
	if err != nil {
		return nil, fmt.Errorf("failed to query pubs: %w", err)
	}
	defer rows.Close()

	pubs := []models.Pub{}
	for rows.Next() {
		var p models.Pub
		if err := rows.Scan(&p.ID, &p.Name, &p.Address, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan pub: %w", err)
		}
		pubs = append(pubs, p)
	}
	return pubs, rows.Err()
}

func (s *SQL) DeletePub(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "pub", id)
}

func (s *SQL) CreateDrink(ctx context.Context, drink models.Drink) (models.Drink, error) {
	drink.ID = uuid.NewString()
	drink.CreatedAt = s.now()

	_, err := s.db.ExecContext(ctx, s.q(`
		INSERT INTO drink (id, name, category, created_at)
		VALUES ($1, $2, $3, $4)
	`), drink.ID, drink.Name, drink.Category, drink.CreatedAt)
	if err != nil {
		return models.Drink{}, fmt.Errorf("failed to insert drink: %w", err)
	}

	return drink, nil
}

func (s *SQL) ListDrinks(ctx context.Context) ([]models.Drink, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, category, created_at
		FROM drink
		ORDER BY `+s.order("created_at"))
	if err != nil {
		return nil, fmt.Errorf("failed to query drinks: %w", err)
	}
	defer rows.Close()

	drinks := []models.Drink{}
	for rows.Next() {
		var d models.Drink
		if err := rows.Scan(&d.ID, &d.Name, &d.Category, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan drink: %w", err)
		}
		drinks = append(drinks, d)
	}
	return drinks, rows.Err()
}

func (s *SQL) DeleteDrink(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "drink", id)
}

func (s *SQL) AppendPrice(ctx context.Context, entry models.PriceEntry) (models.PriceEntry, error) {
	entry.ID = uuid.NewString()
	entry.Timestamp = s.now()
	entry.Active = nil

	_, err := s.db.ExecContext(ctx, s.q(`
		INSERT INTO price_entry (id, pub_id, drink_id, price, active, submitted_at)
		VALUES ($1, $2, $3, $4, NULL, $5)
	`), entry.ID, entry.PubID, entry.DrinkID, entry.Price, entry.Timestamp)
	if err != nil {
		return models.PriceEntry{}, fmt.Errorf("failed to insert price: %w", err)
	}

	return entry, nil
}

func (s *SQL) ReplaceActivePrice(ctx context.Context, entry models.PriceEntry) (models.PriceEntry, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.PriceEntry{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if s.dialect == db.DialectPostgres {
		// Serialise submissions for the same pub. A missing pub row leaves
		// the partial unique index as the only guard.
		var pubID string
		err = tx.QueryRowContext(ctx, `SELECT id FROM pub WHERE id = $1 FOR UPDATE`, entry.PubID).Scan(&pubID)
		if err != nil && err != sql.ErrNoRows {
			return models.PriceEntry{}, fmt.Errorf("failed to lock pub: %w", err)
		}
	}

	_, err = tx.ExecContext(ctx, s.q(`
		UPDATE price_entry
		SET active = $1
		WHERE pub_id = $2 AND drink_id = $3 AND active = $4
	`), false, entry.PubID, entry.DrinkID, true)
	if err != nil {
		return models.PriceEntry{}, fmt.Errorf("failed to deactivate price: %w", err)
	}

	entry.ID = uuid.NewString()
	entry.Timestamp = s.now()
	entry.Active = boolPtr(true)

	_, err = tx.ExecContext(ctx, s.q(`
		INSERT INTO price_entry (id, pub_id, drink_id, price, active, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`), entry.ID, entry.PubID, entry.DrinkID, entry.Price, true, entry.Timestamp)
	if err != nil {
		return models.PriceEntry{}, fmt.Errorf("failed to insert price: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.PriceEntry{}, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return entry, nil
}

func (s *SQL) ListPrices(ctx context.Context) ([]models.PriceEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, pub_id, drink_id, price, active, submitted_at
		FROM price_entry
		ORDER BY `+s.order("submitted_at"))
	if err != nil {
		return nil, fmt.Errorf("failed to query prices: %w", err)
	}
	defer rows.Close()

	prices := []models.PriceEntry{}
	for rows.Next() {
		var p models.PriceEntry
		var active sql.NullBool
		if err := rows.Scan(&p.ID, &p.PubID, &p.DrinkID, &p.Price, &active, &p.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan price: %w", err)
		}
		if active.Valid {
			p.Active = boolPtr(active.Bool)
		}
		prices = append(prices, p)
	}
	return prices, rows.Err()
}

func (s *SQL) DeletePrice(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "price_entry", id)
}

func (s *SQL) deleteByID(ctx context.Context, table, id string) error {
	res, err := s.db.ExecContext(ctx, s.q(`DELETE FROM `+table+` WHERE id = $1`), id)
	if err != nil {
		return fmt.Errorf("failed to delete from %s: %w", table, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete from %s: %w", table, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQL) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQL) Close() error {
	return s.db.Close()
}
