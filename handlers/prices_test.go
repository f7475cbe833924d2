// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/pint-index/auth"
	"github.com/danielhkuo/pint-index/models"
	"github.com/danielhkuo/pint-index/testutil"
)

func TestSubmitPrice(t *testing.T) {
	s := testutil.SetupMemoryStore(t)
	handler := NewPriceHandler(s, testutil.GetTestConfig())

	pubID := testutil.CreateTestPub(t, s, "The Red Lion")
	drinkID := testutil.CreateTestDrink(t, s, "Guinness", "Stout")

	tests := []struct {
		name           string
		requestBody    map[string]interface{}
		expectedStatus int
		expectedPrice  string
		expectedMsg    string
	}{
		{
			name:           "valid price",
			requestBody:    map[string]interface{}{"pub_id": pubID, "drink_id": drinkID, "price": 5.8},
			expectedStatus: http.StatusCreated,
			expectedPrice:  "5.80",
		},
		{
			name:           "price as string",
			requestBody:    map[string]interface{}{"pub_id": pubID, "drink_id": drinkID, "price": "6.10"},
			expectedStatus: http.StatusCreated,
			expectedPrice:  "6.10",
		},
		{
			name:           "rounded to the penny",
			requestBody:    map[string]interface{}{"pub_id": pubID, "drink_id": drinkID, "price": 4.567},
			expectedStatus: http.StatusCreated,
			expectedPrice:  "4.57",
		},
		{
			name:           "zero price",
			requestBody:    map[string]interface{}{"pub_id": pubID, "drink_id": drinkID, "price": 0},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "price must be greater than zero",
		},
		{
			name:           "negative price",
			requestBody:    map[string]interface{}{"pub_id": pubID, "drink_id": drinkID, "price": -2.5},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "price must be greater than zero",
		},
		{
			name:           "rounds down to zero",
			requestBody:    map[string]interface{}{"pub_id": pubID, "drink_id": drinkID, "price": 0.001},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "price must be greater than zero",
		},
		{
			name:           "at the cap",
			requestBody:    map[string]interface{}{"pub_id": pubID, "drink_id": drinkID, "price": "1000000"},
			expectedStatus: http.StatusCreated,
			expectedPrice:  "1000000.00",
		},
		{
			name:           "above the cap",
			requestBody:    map[string]interface{}{"pub_id": pubID, "drink_id": drinkID, "price": "1000000.01"},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "price must be at most 1000000",
		},
		{
			name:           "huge exponent",
			requestBody:    map[string]interface{}{"pub_id": pubID, "drink_id": drinkID, "price": "1e9000000"},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "price must be at most 1000000",
		},
		{
			name:           "missing pub",
			requestBody:    map[string]interface{}{"drink_id": drinkID, "price": 5},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "pub_id is required",
		},
		{
			name:           "unknown pub",
			requestBody:    map[string]interface{}{"pub_id": "nowhere", "drink_id": drinkID, "price": 5},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Unknown pub",
		},
		{
			name:           "unknown drink",
			requestBody:    map[string]interface{}{"pub_id": pubID, "drink_id": "nothing", "price": 5},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Unknown drink",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/prices", tt.requestBody, nil)
			w := httptest.NewRecorder()

			handler.SubmitPrice(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)

			if tt.expectedStatus == http.StatusCreated {
				var entry models.PriceEntry
				testutil.AssertJSON(t, w, &entry)
				if entry.ID == "" {
					t.Error("Expected entry id")
				}
				if got := entry.Price.StringFixed(2); got != tt.expectedPrice {
					t.Errorf("Expected price %s, got %s", tt.expectedPrice, got)
				}
				if !entry.IsActive() {
					t.Error("Expected new entry to be active")
				}
				return
			}

			var resp models.ErrorResponse
			testutil.AssertJSON(t, w, &resp)
			if resp.Message != tt.expectedMsg {
				t.Errorf("Expected message '%s', got '%s'", tt.expectedMsg, resp.Message)
			}
		})
	}
}

func TestSubmitPrice_SubmitterBehindProxies(t *testing.T) {
	s := testutil.SetupMemoryStore(t)
	handler := NewPriceHandler(s, testutil.GetTestConfig())
	pubID := testutil.CreateTestPub(t, s, "The Red Lion")
	drinkID := testutil.CreateTestDrink(t, s, "Guinness", "Stout")

	var logs bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&logs, nil)))
	defer slog.SetDefault(prev)

	req := testutil.MakeRequest("POST", "/prices", map[string]string{
		"pub_id": pubID, "drink_id": drinkID, "price": "5.40",
	}, map[string]string{"X-Forwarded-For": "203.0.113.195, 70.41.3.18"})
	w := httptest.NewRecorder()

	handler.SubmitPrice(w, req)

	testutil.AssertStatus(t, w, http.StatusCreated)
	out := logs.String()
	want := auth.HashIP("203.0.113.195", testutil.TestAdminSalt)
	if !strings.Contains(out, `"submitter":"`+want+`"`) {
		t.Errorf("Expected submitter hashed from the first hop, got %s", out)
	}
	if strings.Contains(out, "203.0.113.195") {
		t.Error("Expected the raw address to stay out of the logs")
	}
}

func TestSubmitPrice_InvalidJSON(t *testing.T) {
	s := testutil.SetupMemoryStore(t)
	handler := NewPriceHandler(s, testutil.GetTestConfig())

	req := httptest.NewRequest("POST", "/prices", strings.NewReader(`{"price": "cheap"}`))
	w := httptest.NewRecorder()

	handler.SubmitPrice(w, req)

	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func TestSubmitPrice_ActiveModelReplaces(t *testing.T) {
	s := testutil.SetupMemoryStore(t)
	handler := NewPriceHandler(s, testutil.GetTestConfig())

	pubID := testutil.CreateTestPub(t, s, "The Red Lion")
	drinkID := testutil.CreateTestDrink(t, s, "Guinness", "Stout")
	otherDrink := testutil.CreateTestDrink(t, s, "London Pride", "Ale")

	for _, price := range []string{"5.50", "5.80", "6.00"} {
		req := testutil.MakeRequest("POST", "/prices", map[string]string{
			"pub_id": pubID, "drink_id": drinkID, "price": price,
		}, nil)
		w := httptest.NewRecorder()
		handler.SubmitPrice(w, req)
		testutil.AssertStatus(t, w, http.StatusCreated)
	}
	testutil.SubmitTestPrice(t, s, pubID, otherDrink, "4.20")

	prices, _ := s.ListPrices(context.Background())
	if len(prices) != 4 {
		t.Fatalf("Expected the full history of 4 entries, got %d", len(prices))
	}

	var active []models.PriceEntry
	for _, p := range prices {
		if p.DrinkID == drinkID && p.IsActive() {
			active = append(active, p)
		}
	}
	if len(active) != 1 {
		t.Fatalf("Expected exactly one active entry for the pair, got %d", len(active))
	}
	if active[0].Price.StringFixed(2) != "6.00" {
		t.Errorf("Expected latest price to be active, got %s", active[0].Price.StringFixed(2))
	}

	// The other pair is untouched
	w := httptest.NewRecorder()
	handler.ListPrices(w, httptest.NewRequest("GET", "/prices?active=true", nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.ListPricesResponse
	testutil.AssertJSON(t, w, &resp)
	if len(resp.Prices) != 2 {
		t.Errorf("Expected 2 active entries, got %d", len(resp.Prices))
	}
}

func TestSubmitPrice_LedgerModelAppends(t *testing.T) {
	s := testutil.SetupMemoryStore(t)
	cfg := testutil.GetTestConfig()
	cfg.PriceModel = models.PriceModelLedger
	handler := NewPriceHandler(s, cfg)

	pubID := testutil.CreateTestPub(t, s, "The Red Lion")
	drinkID := testutil.CreateTestDrink(t, s, "Guinness", "Stout")

	for _, price := range []string{"5.50", "5.80"} {
		req := testutil.MakeRequest("POST", "/prices", map[string]string{
			"pub_id": pubID, "drink_id": drinkID, "price": price,
		}, nil)
		w := httptest.NewRecorder()
		handler.SubmitPrice(w, req)
		testutil.AssertStatus(t, w, http.StatusCreated)

		var entry models.PriceEntry
		testutil.AssertJSON(t, w, &entry)
		if entry.Active != nil {
			t.Error("Expected ledger entries to carry no active flag")
		}
	}

	w := httptest.NewRecorder()
	handler.ListPrices(w, httptest.NewRequest("GET", "/prices", nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.ListPricesResponse
	testutil.AssertJSON(t, w, &resp)
	if len(resp.Prices) != 2 {
		t.Errorf("Expected both ledger entries, got %d", len(resp.Prices))
	}
}

func TestListPrices_Empty(t *testing.T) {
	handler := NewPriceHandler(testutil.SetupMemoryStore(t), testutil.GetTestConfig())

	w := httptest.NewRecorder()
	handler.ListPrices(w, httptest.NewRequest("GET", "/prices?active=true", nil))

	testutil.AssertStatus(t, w, http.StatusOK)
	if got := strings.TrimSpace(w.Body.String()); got != `{"prices":[]}` {
		t.Errorf("Expected empty prices array, got %s", got)
	}
}

func TestSubmitPrice_StorageFailure(t *testing.T) {
	handler := NewPriceHandler(testutil.FailingStore{}, testutil.GetTestConfig())

	req := testutil.MakeRequest("POST", "/prices", map[string]string{
		"pub_id": "p", "drink_id": "d", "price": "5.00",
	}, nil)
	w := httptest.NewRecorder()

	handler.SubmitPrice(w, req)

	testutil.AssertStatus(t, w, http.StatusServiceUnavailable)

	var resp models.ErrorResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Message != "Storage unavailable, try again" {
		t.Errorf("Unexpected message: %s", resp.Message)
	}
}
