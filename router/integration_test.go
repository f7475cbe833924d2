// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/pint-index/auth"
	"github.com/danielhkuo/pint-index/models"
	"github.com/danielhkuo/pint-index/store"
	"github.com/danielhkuo/pint-index/testutil"
)

// TestPriceWorkflow drives the whole API: register pubs and drinks,
// submit and resubmit prices, read the views, then wipe.
func TestPriceWorkflow(t *testing.T) {
	backends := []struct {
		name  string
		store store.Store
	}{
		{"memory", testutil.SetupMemoryStore(t)},
		{"sqlite", testutil.SetupSQLiteStore(t)},
	}

	for _, b := range backends {
		t.Run(b.name, func(t *testing.T) {
			runPriceWorkflow(t, NewHandler(b.store, testutil.GetTestConfig()))
		})
	}
}

func runPriceWorkflow(t *testing.T, h http.Handler) {
	do := func(method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
		t.Helper()
		w := httptest.NewRecorder()
		h.ServeHTTP(w, testutil.MakeRequest(method, path, body, headers))
		return w
	}

	// Step 1: Nothing recorded yet
	w := do("GET", "/stats/cheapest", nil, nil)
	testutil.AssertStatus(t, w, http.StatusOK)
	var empty models.CheapestResponse
	testutil.AssertJSON(t, w, &empty)
	if empty.Message != "No prices yet." {
		t.Fatalf("Expected no prices message, got %+v", empty)
	}

	// Step 2: Register pubs and drinks
	var lion, albert models.Pub
	w = do("POST", "/pubs", models.CreatePubRequest{Name: "The Red Lion"}, nil)
	testutil.AssertStatus(t, w, http.StatusCreated)
	testutil.AssertJSON(t, w, &lion)
	w = do("POST", "/pubs", models.CreatePubRequest{Name: "The Albert"}, nil)
	testutil.AssertStatus(t, w, http.StatusCreated)
	testutil.AssertJSON(t, w, &albert)

	var guinness, pride models.Drink
	w = do("POST", "/drinks", models.CreateDrinkRequest{Name: "Guinness", Category: "Stout"}, nil)
	testutil.AssertStatus(t, w, http.StatusCreated)
	testutil.AssertJSON(t, w, &guinness)
	w = do("POST", "/drinks", models.CreateDrinkRequest{Name: "London Pride", Category: "Ale"}, nil)
	testutil.AssertStatus(t, w, http.StatusCreated)
	testutil.AssertJSON(t, w, &pride)

	// Step 3: Submit prices; the second Albert Guinness replaces the first
	submissions := []struct {
		pub, drink, price string
	}{
		{lion.ID, guinness.ID, "6.20"},
		{albert.ID, guinness.ID, "6.40"},
		{albert.ID, guinness.ID, "5.60"},
		{lion.ID, pride.ID, "5.10"},
	}
	for _, sub := range submissions {
		w = do("POST", "/prices", map[string]string{
			"pub_id": sub.pub, "drink_id": sub.drink, "price": sub.price,
		}, nil)
		testutil.AssertStatus(t, w, http.StatusCreated)
	}

	w = do("POST", "/prices", map[string]string{
		"pub_id": lion.ID, "drink_id": "no-such-drink", "price": "4.00",
	}, nil)
	testutil.AssertStatus(t, w, http.StatusBadRequest)

	// Step 4: Read the views
	w = do("GET", "/stats/cheapest", nil, nil)
	testutil.AssertStatus(t, w, http.StatusOK)
	var cheapest models.CheapestResponse
	testutil.AssertJSON(t, w, &cheapest)
	if cheapest.Cheapest == nil || cheapest.Cheapest.Pub != "The Red Lion" {
		t.Fatalf("Expected Pride at The Red Lion, got %+v", cheapest.Cheapest)
	}
	if cheapest.Cheapest.Price.StringFixed(2) != "5.10" {
		t.Errorf("Expected cheapest 5.10, got %s", cheapest.Cheapest.Price.StringFixed(2))
	}

	w = do("GET", "/stats/index", nil, nil)
	var index models.IndexResponse
	testutil.AssertJSON(t, w, &index)
	if index.Samples != 3 || index.Index.StringFixed(2) != "5.63" {
		t.Errorf("Expected index 5.63 over 3 prices, got %s over %d", index.Index.StringFixed(2), index.Samples)
	}

	w = do("GET", "/drinks/"+guinness.ID+"/cheapest", nil, nil)
	testutil.AssertStatus(t, w, http.StatusOK)
	var summary models.DrinkSummary
	testutil.AssertJSON(t, w, &summary)
	if summary.Cheapest == nil || summary.Cheapest.Pub != "The Albert" {
		t.Errorf("Expected Guinness cheapest at The Albert, got %+v", summary.Cheapest)
	}

	w = do("GET", "/prices", nil, nil)
	var history models.ListPricesResponse
	testutil.AssertJSON(t, w, &history)
	if len(history.Prices) != 4 {
		t.Errorf("Expected 4 entries in history, got %d", len(history.Prices))
	}

	w = do("GET", "/dashboard/render?format=markdown", nil, nil)
	testutil.AssertStatus(t, w, http.StatusOK)
	if !strings.Contains(w.Body.String(), "London Pride") {
		t.Error("Expected rendered dashboard to name London Pride")
	}

	// Step 5: Wipes need the admin key
	w = do("DELETE", "/admin/data", nil, nil)
	testutil.AssertStatus(t, w, http.StatusUnauthorized)

	w = do("DELETE", "/admin/data", nil, map[string]string{auth.AdminKeyHeader: testutil.AdminKey()})
	testutil.AssertStatus(t, w, http.StatusOK)
	var wiped models.WipeResponse
	testutil.AssertJSON(t, w, &wiped)
	if wiped.Deleted != 8 {
		t.Errorf("Expected 8 records deleted, got %d", wiped.Deleted)
	}

	w = do("GET", "/dashboard", nil, nil)
	var d models.Dashboard
	testutil.AssertJSON(t, w, &d)
	if d.Pubs != 0 || d.Drinks != 0 || d.Prices != 0 {
		t.Errorf("Expected an empty dashboard after wipe, got %+v", d)
	}
}
