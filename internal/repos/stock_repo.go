package repos

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// StockRepo is the authoritative per-product stock counter. All
// decrements go through Reserve, a single conditional UPDATE, so two
// concurrent checkouts can never both take the last unit.
type StockRepo struct{ db *sqlx.DB }

func NewStockRepo(db *sqlx.DB) *StockRepo { return &StockRepo{db: db} }

// InsufficientStockError reports the product that could not be reserved
// and how many units are still available, so callers can re-prompt
// without another round trip.
type InsufficientStockError struct {
	ProductID string `json:"productId"`
	Available int    `json:"available"`
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s (available %d)", e.ProductID, e.Available)
}

// Reserve atomically subtracts qty if enough stock exists. It accepts a
// *sqlx.Tx so multi-line reservations commit or roll back as one unit.
func (r *StockRepo) Reserve(e sqlx.Ext, productID string, qty int) error {
	if qty < 1 {
		return fmt.Errorf("reserve: quantity must be >= 1, got %d", qty)
	}
	res, err := e.Exec(`
		UPDATE products
		SET stock = stock - ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND stock >= ?
	`, qty, productID, qty)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		avail, err := currentStock(e, productID)
		if err != nil {
			return err
		}
		return &InsufficientStockError{ProductID: productID, Available: avail}
	}
	return nil
}

// Release returns qty units to stock, used only when an order is
// cancelled. The status machine guarantees it runs at most once per
// order.
func (r *StockRepo) Release(e sqlx.Ext, productID string, qty int) error {
	if qty < 1 {
		return fmt.Errorf("release: quantity must be >= 1, got %d", qty)
	}
	res, err := e.Exec(`
		UPDATE products
		SET stock = stock + ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, qty, productID)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("release: unknown product %s", productID)
	}
	return nil
}

// Current returns the available stock for a product.
func (r *StockRepo) Current(productID string) (int, error) {
	return currentStock(r.db, productID)
}

func currentStock(q sqlx.Queryer, productID string) (int, error) {
	var stock int
	err := sqlx.Get(q, &stock, `SELECT stock FROM products WHERE id = ?`, productID)
	if err != nil {
		return 0, err
	}
	return stock, nil
}
