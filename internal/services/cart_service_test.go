package services_test

import (
	"database/sql"
	"errors"
	"testing"

	"shoplite/internal/repos"
)

func TestCartAdd_StockCheckIsInformational(t *testing.T) {
	e := testenv(t)

	// within stock: fine, same product accumulates
	if _, err := e.carts.Add("u-customer", "prod-xiaomi14", 20); err != nil {
		t.Fatal(err)
	}
	item, err := e.carts.Add("u-customer", "prod-xiaomi14", 10)
	if err != nil {
		t.Fatal(err)
	}
	if item.Quantity != 30 {
		t.Fatalf("want accumulated quantity 30, got %d", item.Quantity)
	}

	// beyond stock (30 total): rejected with what could still be added
	_, err = e.carts.Add("u-customer", "prod-xiaomi14", 1)
	var stockErr *repos.InsufficientStockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("want InsufficientStockError, got %v", err)
	}
	if stockErr.Available != 0 {
		t.Fatalf("want 0 available, got %d", stockErr.Available)
	}

	// the check never reserved anything
	if qty, _ := e.stock.Current("prod-xiaomi14"); qty != 30 {
		t.Fatalf("cart add must not touch stock, got %d", qty)
	}
}

func TestCartAdd_UnknownProduct(t *testing.T) {
	e := testenv(t)

	if _, err := e.carts.Add("u-customer", "no-such-product", 1); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("want ErrNoRows, got %v", err)
	}
}

func TestCartUpdate_OwnershipAndStock(t *testing.T) {
	e := testenv(t)

	item, err := e.carts.Add("u-customer", "prod-watch9", 2)
	if err != nil {
		t.Fatal(err)
	}

	// another user cannot touch the line
	if _, err := e.carts.UpdateQuantity("u-seller", item.ID, 1); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("foreign update should be not-found, got %v", err)
	}

	// beyond stock is rejected
	_, err = e.carts.UpdateQuantity("u-customer", item.ID, 61)
	var stockErr *repos.InsufficientStockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("want InsufficientStockError, got %v", err)
	}
	if stockErr.Available != 60 {
		t.Fatalf("want available 60, got %d", stockErr.Available)
	}

	// exact set, not accumulate
	updated, err := e.carts.UpdateQuantity("u-customer", item.ID, 7)
	if err != nil {
		t.Fatal(err)
	}
	if updated.Quantity != 7 {
		t.Fatalf("want quantity 7, got %d", updated.Quantity)
	}
}

func TestCartRemove(t *testing.T) {
	e := testenv(t)

	item, err := e.carts.Add("u-customer", "prod-watch9", 1)
	if err != nil {
		t.Fatal(err)
	}

	if err := e.carts.Remove("u-seller", item.ID); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("foreign remove should be not-found, got %v", err)
	}
	if err := e.carts.Remove("u-customer", item.ID); err != nil {
		t.Fatal(err)
	}
	cv, _ := e.carts.View("u-customer")
	if len(cv.Items) != 0 {
		t.Fatalf("cart should be empty, has %d items", len(cv.Items))
	}
}
