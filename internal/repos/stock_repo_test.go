package repos_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"shoplite/internal/repos"
)

func memdb(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	// single connection keeps the in-memory db shared and serialized
	db.SetMaxOpenConns(1)
	schema := `
	CREATE TABLE products(
	  id TEXT PRIMARY KEY,
	  name TEXT NOT NULL,
	  price NUMERIC NOT NULL,
	  stock INTEGER NOT NULL CHECK (stock >= 0),
	  updated_at TEXT
	);
	INSERT INTO products(id, name, price, stock) VALUES
	  ('prod-a','Widget A',10.0,6),
	  ('prod-b','Widget B',25.0,1);
	`
	if _, err := db.Exec(schema); err != nil {
		t.Fatal(err)
	}
	return db
}

func TestStockReserveAndRelease(t *testing.T) {
	db := memdb(t)
	stock := repos.NewStockRepo(db)

	if err := stock.Reserve(db, "prod-a", 4); err != nil {
		t.Fatal(err)
	}
	qty, err := stock.Current("prod-a")
	if err != nil {
		t.Fatal(err)
	}
	if qty != 2 {
		t.Fatalf("want stock 2 after reserve, got %d", qty)
	}

	// over-reserve fails and reports what is left
	err = stock.Reserve(db, "prod-a", 3)
	var stockErr *repos.InsufficientStockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("want InsufficientStockError, got %v", err)
	}
	if stockErr.ProductID != "prod-a" || stockErr.Available != 2 {
		t.Fatalf("bad error detail: %+v", stockErr)
	}

	// failed reserve must not have touched the counter
	if qty, _ = stock.Current("prod-a"); qty != 2 {
		t.Fatalf("failed reserve changed stock to %d", qty)
	}

	if err := stock.Release(db, "prod-a", 4); err != nil {
		t.Fatal(err)
	}
	if qty, _ = stock.Current("prod-a"); qty != 6 {
		t.Fatalf("want stock 6 after release, got %d", qty)
	}
}

func TestStockReserveRejectsBadQuantity(t *testing.T) {
	db := memdb(t)
	stock := repos.NewStockRepo(db)

	if err := stock.Reserve(db, "prod-a", 0); err == nil {
		t.Fatal("reserve of 0 should fail")
	}
	if err := stock.Release(db, "prod-a", -1); err == nil {
		t.Fatal("release of -1 should fail")
	}
}

// Two concurrent reservations of the last unit: exactly one wins.
func TestStockConcurrentLastUnit(t *testing.T) {
	db := memdb(t)
	stock := repos.NewStockRepo(db)

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = stock.Reserve(db, "prod-b", 1)
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range results {
		if err == nil {
			wins++
			continue
		}
		var stockErr *repos.InsufficientStockError
		if !errors.As(err, &stockErr) {
			t.Fatalf("loser got unexpected error: %v", err)
		}
		if stockErr.Available != 0 {
			t.Fatalf("loser should see 0 available, got %d", stockErr.Available)
		}
	}
	if wins != 1 {
		t.Fatalf("want exactly one successful reserve, got %d", wins)
	}
	if qty, _ := stock.Current("prod-b"); qty != 0 {
		t.Fatalf("want stock 0, got %d", qty)
	}
}
