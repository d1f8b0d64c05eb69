package repos

import (
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"shoplite/internal/domain"
)

type CartRepo struct{ db *sqlx.DB }

func NewCartRepo(db *sqlx.DB) *CartRepo { return &CartRepo{db: db} }

// CartItemRow is the denormalized line returned by GET /api/cart.
type CartItemRow struct {
	ID        string  `db:"id" json:"id"`
	ProductID string  `db:"product_id" json:"productId"`
	Name      string  `db:"name" json:"name"`
	Price     float64 `db:"price" json:"price"`
	Stock     int     `db:"stock" json:"stock"`
	ImageURL  string  `db:"image_url" json:"imageUrl"`
	Quantity  int     `db:"quantity" json:"quantity"`
	Subtotal  float64 `db:"subtotal" json:"subtotal"`
}

// SnapshotLine is a cart line as seen by the order builder: product id
// and quantity only. Price is re-read from products inside the checkout
// transaction, never taken from the client.
type SnapshotLine struct {
	ProductID string `db:"product_id"`
	Quantity  int    `db:"quantity"`
}

// EnsureCart returns the user's cart id, creating the cart lazily on
// first use.
func (r *CartRepo) EnsureCart(userID string) (string, error) {
	var cartID string
	if err := r.db.Get(&cartID, `SELECT id FROM carts WHERE user_id = ?`, userID); err == nil {
		return cartID, nil
	}
	cartID = uuid.NewString()
	_, err := r.db.Exec(`
		INSERT INTO carts(id, user_id) VALUES(?, ?)
		ON CONFLICT(user_id) DO NOTHING
	`, cartID, userID)
	if err != nil {
		return "", err
	}
	// Re-read in case a concurrent request created the row first.
	if err := r.db.Get(&cartID, `SELECT id FROM carts WHERE user_id = ?`, userID); err != nil {
		return "", err
	}
	return cartID, nil
}

// View returns the cart joined with live product data.
func (r *CartRepo) View(cartID string) ([]CartItemRow, error) {
	rows := []CartItemRow{}
	err := r.db.Select(&rows, `
	  SELECT ci.id, ci.product_id, p.name, p.price, p.stock, p.image_url, ci.quantity,
	         (ci.quantity * p.price) AS subtotal
	  FROM cart_items ci JOIN products p ON p.id = ci.product_id
	  WHERE ci.cart_id = ?
	  ORDER BY ci.created_at
	`, cartID)
	return rows, err
}

// Snapshot reads the cart lines in ascending product id, the fixed
// order in which the order builder reserves stock.
func (r *CartRepo) Snapshot(e sqlx.Ext, cartID string) ([]SnapshotLine, error) {
	var out []SnapshotLine
	err := sqlx.Select(e, &out, `
	  SELECT product_id, quantity FROM cart_items
	  WHERE cart_id = ?
	  ORDER BY product_id ASC
	`, cartID)
	return out, err
}

// UpsertItem adds quantity to an existing line or inserts a new one,
// and returns the resulting line.
func (r *CartRepo) UpsertItem(cartID, productID string, qty int) (domain.CartItem, error) {
	_, err := r.db.Exec(`
		INSERT INTO cart_items(id, cart_id, product_id, quantity)
		VALUES(?, ?, ?, ?)
		ON CONFLICT(cart_id, product_id) DO UPDATE
		SET quantity = quantity + excluded.quantity, updated_at = CURRENT_TIMESTAMP
	`, uuid.NewString(), cartID, productID, qty)
	if err != nil {
		return domain.CartItem{}, err
	}
	var item domain.CartItem
	err = r.db.Get(&item, `
		SELECT id, cart_id, product_id, quantity,
		       COALESCE(created_at,'') AS created_at, COALESCE(updated_at,'') AS updated_at
		FROM cart_items WHERE cart_id = ? AND product_id = ?
	`, cartID, productID)
	return item, err
}

// ItemForUser returns a cart item only if it belongs to the given
// user's cart.
func (r *CartRepo) ItemForUser(itemID, userID string) (domain.CartItem, error) {
	var item domain.CartItem
	err := r.db.Get(&item, `
		SELECT ci.id, ci.cart_id, ci.product_id, ci.quantity,
		       COALESCE(ci.created_at,'') AS created_at, COALESCE(ci.updated_at,'') AS updated_at
		FROM cart_items ci JOIN carts c ON c.id = ci.cart_id
		WHERE ci.id = ? AND c.user_id = ?
	`, itemID, userID)
	return item, err
}

func (r *CartRepo) UpdateQuantity(itemID string, qty int) error {
	_, err := r.db.Exec(`
		UPDATE cart_items SET quantity = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?
	`, qty, itemID)
	return err
}

func (r *CartRepo) DeleteItem(itemID string) error {
	_, err := r.db.Exec(`DELETE FROM cart_items WHERE id = ?`, itemID)
	return err
}

// Clear removes all lines but keeps the cart row, per the cart
// lifecycle on successful checkout.
func (r *CartRepo) Clear(e sqlx.Ext, cartID string) error {
	_, err := e.Exec(`DELETE FROM cart_items WHERE cart_id = ?`, cartID)
	return err
}
