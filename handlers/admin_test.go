// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/pint-index/auth"
	"github.com/danielhkuo/pint-index/models"
	"github.com/danielhkuo/pint-index/testutil"
)

func TestAdminAuthorization(t *testing.T) {
	tests := []struct {
		name           string
		salt           string
		key            string
		expectedStatus int
		expectedMsg    string
	}{
		{"admin disabled without salt", "", "anything", http.StatusForbidden, "Admin operations are disabled"},
		{"missing key", testutil.TestAdminSalt, "", http.StatusUnauthorized, "Invalid admin key"},
		{"wrong key", testutil.TestAdminSalt, "not-the-key", http.StatusUnauthorized, "Invalid admin key"},
		{"key for another salt", testutil.TestAdminSalt, auth.GenerateAdminKey(auth.AdminScope, "other-salt"), http.StatusUnauthorized, "Invalid admin key"},
		{"valid key", testutil.TestAdminSalt, testutil.AdminKey(), http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testutil.SetupMemoryStore(t)
			cfg := testutil.GetTestConfig()
			cfg.AdminKeySalt = tt.salt
			handler := NewAdminHandler(s, cfg)

			headers := map[string]string{}
			if tt.key != "" {
				headers[auth.AdminKeyHeader] = tt.key
			}
			req := testutil.MakeRequest("DELETE", "/admin/prices", nil, headers)
			w := httptest.NewRecorder()

			handler.WipePrices(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
			if tt.expectedMsg != "" {
				var resp models.ErrorResponse
				testutil.AssertJSON(t, w, &resp)
				if resp.Message != tt.expectedMsg {
					t.Errorf("Expected message '%s', got '%s'", tt.expectedMsg, resp.Message)
				}
			}
		})
	}
}

func TestWipePrices(t *testing.T) {
	f := setupStatsFixture(t)
	handler := NewAdminHandler(f.store, testutil.GetTestConfig())

	req := testutil.MakeRequest("DELETE", "/admin/prices", nil, map[string]string{
		auth.AdminKeyHeader: testutil.AdminKey(),
	})
	w := httptest.NewRecorder()

	handler.WipePrices(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	var resp models.WipeResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Deleted != 5 {
		t.Errorf("Expected 5 deleted entries including replaced ones, got %d", resp.Deleted)
	}

	ctx := context.Background()
	prices, _ := f.store.ListPrices(ctx)
	if len(prices) != 0 {
		t.Errorf("Expected no prices left, got %d", len(prices))
	}
	pubs, _ := f.store.ListPubs(ctx)
	drinks, _ := f.store.ListDrinks(ctx)
	if len(pubs) != 2 || len(drinks) != 3 {
		t.Error("Expected pubs and drinks to survive a price wipe")
	}
}

func TestWipeAll(t *testing.T) {
	f := setupStatsFixture(t)
	handler := NewAdminHandler(f.store, testutil.GetTestConfig())

	req := testutil.MakeRequest("DELETE", "/admin/data", nil, map[string]string{
		auth.AdminKeyHeader: testutil.AdminKey(),
	})
	w := httptest.NewRecorder()

	handler.WipeAll(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	var resp models.WipeResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Deleted != 10 {
		t.Errorf("Expected 10 deleted records, got %d", resp.Deleted)
	}

	snapshot := NewDashboardHandler(f.store, testutil.GetTestConfig())
	w = httptest.NewRecorder()
	snapshot.GetDashboard(w, httptest.NewRequest("GET", "/dashboard", nil))
	var d models.Dashboard
	testutil.AssertJSON(t, w, &d)
	if d.Pubs != 0 || d.Drinks != 0 || d.Prices != 0 {
		t.Errorf("Expected an empty store, got %d pubs, %d drinks, %d prices", d.Pubs, d.Drinks, d.Prices)
	}
}

func TestDeletePrice(t *testing.T) {
	s := testutil.SetupMemoryStore(t)
	handler := NewAdminHandler(s, testutil.GetTestConfig())

	pub := testutil.CreateTestPub(t, s, "The Red Lion")
	drink := testutil.CreateTestDrink(t, s, "Guinness", "Stout")
	entryID := testutil.SubmitTestPrice(t, s, pub, drink, "6.20")

	tests := []struct {
		name           string
		id             string
		expectedStatus int
	}{
		{"existing entry", entryID, http.StatusNoContent},
		{"already deleted", entryID, http.StatusNotFound},
		{"unknown entry", "no-such-entry", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("DELETE", "/admin/prices/"+tt.id, nil, map[string]string{
				auth.AdminKeyHeader: testutil.AdminKey(),
			})
			req.SetPathValue("id", tt.id)
			w := httptest.NewRecorder()

			handler.DeletePrice(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
		})
	}
}

func TestDeletePrice_RequiresKey(t *testing.T) {
	s := testutil.SetupMemoryStore(t)
	handler := NewAdminHandler(s, testutil.GetTestConfig())

	pub := testutil.CreateTestPub(t, s, "The Red Lion")
	drink := testutil.CreateTestDrink(t, s, "Guinness", "Stout")
	entryID := testutil.SubmitTestPrice(t, s, pub, drink, "6.20")

	req := httptest.NewRequest("DELETE", "/admin/prices/"+entryID, nil)
	req.SetPathValue("id", entryID)
	w := httptest.NewRecorder()

	handler.DeletePrice(w, req)

	testutil.AssertStatus(t, w, http.StatusUnauthorized)
	prices, _ := s.ListPrices(context.Background())
	if len(prices) != 1 {
		t.Error("Expected the entry to survive an unauthorised delete")
	}
}

func TestAdminStorageFailure(t *testing.T) {
	handler := NewAdminHandler(testutil.FailingStore{}, testutil.GetTestConfig())
	headers := map[string]string{auth.AdminKeyHeader: testutil.AdminKey()}

	w := httptest.NewRecorder()
	handler.WipeAll(w, testutil.MakeRequest("DELETE", "/admin/data", nil, headers))
	testutil.AssertStatus(t, w, http.StatusServiceUnavailable)

	req := testutil.MakeRequest("DELETE", "/admin/prices/x", nil, headers)
	req.SetPathValue("id", "x")
	w = httptest.NewRecorder()
	handler.DeletePrice(w, req)
	testutil.AssertStatus(t, w, http.StatusServiceUnavailable)
}
