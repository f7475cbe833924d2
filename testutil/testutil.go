// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/danielhkuo/pint-index/auth"
	"github.com/danielhkuo/pint-index/cliparse"
	"github.com/danielhkuo/pint-index/db"
	"github.com/danielhkuo/pint-index/models"
	"github.com/danielhkuo/pint-index/store"
)

// TestAdminSalt is the admin salt GetTestConfig configures.
const TestAdminSalt = "test-admin-salt"

// ErrStorageDown is returned by every call on a FailingStore.
var ErrStorageDown = errors.New("storage down")

// SetupMemoryStore returns an empty in-memory store whose clock advances one
// second per record, so creation order is also timestamp order.
func SetupMemoryStore(t *testing.T) *store.Memory {
	t.Helper()

	now := time.Date(2025, 11, 1, 18, 0, 0, 0, time.UTC)
	return store.NewMemoryWithClock(func() time.Time {
		now = now.Add(time.Second)
		return now
	})
}

// SetupSQLiteStore opens a fresh SQLite database with the full schema in a
// temporary directory.
func SetupSQLiteStore(t *testing.T) *store.SQL {
	t.Helper()

	path := filepath.Join(t.TempDir(), "pints.db")
	conn, err := db.Open(context.Background(), db.DialectSQLite, path)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	s := store.NewSQL(conn, db.DialectSQLite)
	t.Cleanup(func() { s.Close() })
	return s
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:           3318,
		DatabaseType:   cliparse.DatabaseMemory,
		AdminKeySalt:   TestAdminSalt,
		PriceModel:     models.PriceModelActive,
		Currency:       "£",
		RequestTimeout: 5 * time.Second,
		LogLevel:       "info",
		LogFormat:      "text",
	}
}

// AdminKey returns the admin key for GetTestConfig.
func AdminKey() string {
	return auth.GenerateAdminKey(auth.AdminScope, TestAdminSalt)
}

// CreateTestPub inserts a pub and returns its ID
func CreateTestPub(t *testing.T, s store.Store, name string) string {
	t.Helper()

	pub, err := s.CreatePub(context.Background(), models.Pub{Name: name})
	if err != nil {
		t.Fatalf("Failed to create test pub: %v", err)
	}
	return pub.ID
}

// CreateTestDrink inserts a drink and returns its ID
func CreateTestDrink(t *testing.T, s store.Store, name, category string) string {
	t.Helper()

	drink, err := s.CreateDrink(context.Background(), models.Drink{Name: name, Category: category})
	if err != nil {
		t.Fatalf("Failed to create test drink: %v", err)
	}
	return drink.ID
}

// SubmitTestPrice records a price the way the active price model does and
// returns the entry ID
func SubmitTestPrice(t *testing.T, s store.Store, pubID, drinkID, price string) string {
	t.Helper()

	entry, err := s.ReplaceActivePrice(context.Background(), models.PriceEntry{
		PubID:   pubID,
		DrinkID: drinkID,
		Price:   decimal.RequireFromString(price),
	})
	if err != nil {
		t.Fatalf("Failed to submit test price: %v", err)
	}
	return entry.ID
}

// FailingStore is a Store whose every call fails with ErrStorageDown.
type FailingStore struct{}

var _ store.Store = FailingStore{}

func (FailingStore) CreatePub(context.Context, models.Pub) (models.Pub, error) {
	return models.Pub{}, ErrStorageDown
}
func (FailingStore) ListPubs(context.Context) ([]models.Pub, error) { return nil, ErrStorageDown }
func (FailingStore) DeletePub(context.Context, string) error        { return ErrStorageDown }
func (FailingStore) CreateDrink(context.Context, models.Drink) (models.Drink, error) {
	return models.Drink{}, ErrStorageDown
}
func (FailingStore) ListDrinks(context.Context) ([]models.Drink, error) { return nil, ErrStorageDown }
func (FailingStore) DeleteDrink(context.Context, string) error          { return ErrStorageDown }
func (FailingStore) AppendPrice(context.Context, models.PriceEntry) (models.PriceEntry, error) {
	return models.PriceEntry{}, ErrStorageDown
}
func (FailingStore) ReplaceActivePrice(context.Context, models.PriceEntry) (models.PriceEntry, error) {
	return models.PriceEntry{}, ErrStorageDown
}
func (FailingStore) ListPrices(context.Context) ([]models.PriceEntry, error) {
	return nil, ErrStorageDown
}
func (FailingStore) DeletePrice(context.Context, string) error { return ErrStorageDown }
func (FailingStore) Ping(context.Context) error                { return ErrStorageDown }
func (FailingStore) Close() error                              { return nil }

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
