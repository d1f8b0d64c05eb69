package handlers_test

import (
	"net/http"
	"testing"

	"shoplite/internal/domain"
	"shoplite/internal/services"
)

func TestSellerRoutesRequireRole(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doJSON(t, app, "GET", "/api/seller/dashboard", "", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("anonymous: want 401, got %d", resp.StatusCode)
	}

	customerSID := login(t, app, "customer@example.com")
	resp = doJSON(t, app, "GET", "/api/seller/dashboard", customerSID, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("customer: want 403, got %d", resp.StatusCode)
	}
}

func TestSellerDashboardAggregates(t *testing.T) {
	app, _ := newTestApp(t)
	customerSID := login(t, app, "customer@example.com")
	sellerSID := login(t, app, "seller@example.com")

	placeDemoOrder(t, app, customerSID) // one prod-s24 at 1199

	resp := doJSON(t, app, "GET", "/api/seller/dashboard", sellerSID, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("dashboard: want 200, got %d", resp.StatusCode)
	}
	var stats services.DashboardStats
	decode(t, resp, &stats)
	if stats.ProductCount != 4 {
		t.Fatalf("want 4 products, got %d", stats.ProductCount)
	}
	if stats.OrderCount != 1 || stats.OrdersByStatus["pending"] != 1 {
		t.Fatalf("bad order stats: %+v", stats)
	}
	if stats.Revenue != 1199.0 {
		t.Fatalf("want revenue 1199, got %.2f", stats.Revenue)
	}
}

func TestSellerProductLifecycle(t *testing.T) {
	app, _ := newTestApp(t)
	sellerSID := login(t, app, "seller@example.com")
	customerSID := login(t, app, "customer@example.com")

	// customers may not create products
	resp := doJSON(t, app, "POST", "/api/products", customerSID, map[string]any{
		"name": "Sneaky", "price": 1.0, "category": "misc", "stock": 1,
	})
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("customer create: want 403, got %d", resp.StatusCode)
	}

	resp = doJSON(t, app, "POST", "/api/products", sellerSID, map[string]any{
		"name": "AirPods Pro 2", "description": "Noise cancelling earbuds",
		"price": 249.0, "category": "audio", "stock": 20,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: want 201, got %d", resp.StatusCode)
	}
	var p domain.Product
	decode(t, resp, &p)
	if p.SellerID != "u-seller" || !p.Active {
		t.Fatalf("bad created product: %+v", p)
	}

	resp = doJSON(t, app, "PUT", "/api/products/"+p.ID, sellerSID, map[string]any{
		"name": "AirPods Pro 2", "description": "Noise cancelling earbuds",
		"price": 229.0, "category": "audio", "stock": 25,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update: want 200, got %d", resp.StatusCode)
	}
	var updated domain.Product
	decode(t, resp, &updated)
	if updated.Price != 229.0 || updated.Stock != 25 {
		t.Fatalf("update not applied: %+v", updated)
	}

	// delete is a soft deactivate: gone from the catalog, row retained
	resp = doJSON(t, app, "DELETE", "/api/products/"+p.ID, sellerSID, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete: want 200, got %d", resp.StatusCode)
	}
	resp = doJSON(t, app, "GET", "/api/products", "", nil)
	var catalog []domain.Product
	decode(t, resp, &catalog)
	for _, cp := range catalog {
		if cp.ID == p.ID {
			t.Fatal("deactivated product still listed in catalog")
		}
	}
	resp = doJSON(t, app, "GET", "/api/products/"+p.ID, "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("deactivated product row must remain readable, got %d", resp.StatusCode)
	}
}

func TestProductsByCategory(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doJSON(t, app, "GET", "/api/products/category/smartphones", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}
	var prods []domain.Product
	decode(t, resp, &prods)
	if len(prods) != 3 {
		t.Fatalf("want 3 smartphones, got %d", len(prods))
	}
	for _, p := range prods {
		if p.Category != "smartphones" {
			t.Fatalf("wrong category in result: %+v", p)
		}
	}
}
