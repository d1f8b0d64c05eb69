package repos

import (
	"github.com/jmoiron/sqlx"

	"shoplite/internal/domain"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

const orderCols = `id, user_id, status, total_amount, shipping_address, payment_method, note,
  COALESCE(created_at,'') AS created_at, COALESCE(updated_at,'') AS updated_at`

// Create inserts the order header inside the checkout transaction.
func (r *OrderRepo) Create(e sqlx.Ext, o domain.Order) error {
	_, err := e.Exec(`
	  INSERT INTO orders(id, user_id, status, total_amount, shipping_address, payment_method, note)
	  VALUES (?, ?, ?, ?, ?, ?, ?)
	`, o.ID, o.UserID, o.Status, o.TotalAmount, o.ShippingAddress, o.PaymentMethod, o.Note)
	return err
}

// InsertItem inserts a single line with its purchase-time price.
func (r *OrderRepo) InsertItem(e sqlx.Ext, it domain.OrderItem) error {
	_, err := e.Exec(`
	  INSERT INTO order_items(id, order_id, product_id, name, quantity, price)
	  VALUES (?, ?, ?, ?, ?, ?)
	`, it.ID, it.OrderID, it.ProductID, it.Name, it.Quantity, it.Price)
	return err
}

func (r *OrderRepo) Get(orderID string) (domain.Order, error) {
	var o domain.Order
	if err := r.db.Get(&o, `SELECT `+orderCols+` FROM orders WHERE id = ?`, orderID); err != nil {
		return domain.Order{}, err
	}
	items, err := r.items(r.db, orderID)
	if err != nil {
		return domain.Order{}, err
	}
	o.Items = items
	return o, nil
}

// GetTx reads the order header inside a transaction (status machine).
func (r *OrderRepo) GetTx(e sqlx.Ext, orderID string) (domain.Order, error) {
	var o domain.Order
	err := sqlx.Get(e, &o, `SELECT `+orderCols+` FROM orders WHERE id = ?`, orderID)
	return o, err
}

// ItemsTx reads the order lines inside a transaction, used to restock
// on cancellation.
func (r *OrderRepo) ItemsTx(e sqlx.Ext, orderID string) ([]domain.OrderItem, error) {
	return r.items(e, orderID)
}

func (r *OrderRepo) items(q sqlx.Queryer, orderID string) ([]domain.OrderItem, error) {
	items := []domain.OrderItem{}
	err := sqlx.Select(q, &items, `
		SELECT id, order_id, product_id, name, quantity, price
		FROM order_items
		WHERE order_id = ?
		ORDER BY product_id ASC
	`, orderID)
	return items, err
}

func (r *OrderRepo) ListByUser(userID string) ([]domain.Order, error) {
	return r.list(`SELECT `+orderCols+` FROM orders WHERE user_id = ? ORDER BY datetime(created_at) DESC`, userID)
}

// ListBySeller returns orders that contain at least one of the seller's
// products.
func (r *OrderRepo) ListBySeller(sellerID string) ([]domain.Order, error) {
	return r.list(`
		SELECT DISTINCT o.id, o.user_id, o.status, o.total_amount, o.shipping_address,
		  o.payment_method, o.note,
		  COALESCE(o.created_at,'') AS created_at, COALESCE(o.updated_at,'') AS updated_at
		FROM orders o
		JOIN order_items oi ON oi.order_id = o.id
		JOIN products p ON p.id = oi.product_id
		WHERE p.seller_id = ?
		ORDER BY datetime(o.created_at) DESC
	`, sellerID)
}

func (r *OrderRepo) ListAll() ([]domain.Order, error) {
	return r.list(`SELECT ` + orderCols + ` FROM orders ORDER BY datetime(created_at) DESC`)
}

func (r *OrderRepo) list(query string, args ...any) ([]domain.Order, error) {
	orders := []domain.Order{}
	if err := r.db.Select(&orders, query, args...); err != nil {
		return nil, err
	}
	for i := range orders {
		items, err := r.items(r.db, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}
	return orders, nil
}

// UpdateStatusFrom flips status only when the row still holds the
// expected current status. A zero row count means the edge was lost to
// a concurrent transition, so cancellation can never apply twice.
func (r *OrderRepo) UpdateStatusFrom(e sqlx.Ext, orderID string, from, to domain.OrderStatus) (bool, error) {
	res, err := e.Exec(`
		UPDATE orders SET status = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND status = ?
	`, to, orderID, from)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n == 1, nil
}
