package services

import (
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"shoplite/internal/domain"
	"shoplite/internal/repos"
)

type OrderService struct {
	db     *sqlx.DB
	Carts  *repos.CartRepo
	Prods  *repos.ProductRepo
	Stock  *repos.StockRepo
	Orders *repos.OrderRepo
}

func NewOrderService(db *sqlx.DB, carts *repos.CartRepo, prods *repos.ProductRepo, stock *repos.StockRepo, orders *repos.OrderRepo) *OrderService {
	return &OrderService{db: db, Carts: carts, Prods: prods, Stock: stock, Orders: orders}
}

// Place converts the user's cart into an order. The whole conversion —
// stock reservation for every line, order + item inserts, cart clear —
// runs in one transaction, so a failed reservation leaves no trace.
// Totals are computed here from purchase-time prices; nothing from the
// client request is trusted beyond address, payment method and note.
func (s *OrderService) Place(userID, shippingAddress, paymentMethod, note string) (domain.Order, error) {
	cartID, err := s.Carts.EnsureCart(userID)
	if err != nil {
		return domain.Order{}, err
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return domain.Order{}, err
	}
	defer func() { _ = tx.Rollback() }()

	// Snapshot is ordered by product id; reserving in that fixed order
	// keeps two overlapping checkouts from deadlocking each other.
	lines, err := s.Carts.Snapshot(tx, cartID)
	if err != nil {
		return domain.Order{}, err
	}
	if len(lines) == 0 {
		return domain.Order{}, ErrEmptyCart
	}

	orderID := uuid.NewString()
	items := make([]domain.OrderItem, 0, len(lines))
	total := 0.0

	for _, ln := range lines {
		p, err := s.Prods.GetTx(tx, ln.ProductID)
		if err != nil {
			return domain.Order{}, err
		}
		if !p.Active {
			return domain.Order{}, &repos.InsufficientStockError{ProductID: ln.ProductID, Available: 0}
		}
		if err := s.Stock.Reserve(tx, ln.ProductID, ln.Quantity); err != nil {
			// Rollback releases every reservation made so far.
			return domain.Order{}, err
		}
		items = append(items, domain.OrderItem{
			ID:        uuid.NewString(),
			OrderID:   orderID,
			ProductID: ln.ProductID,
			Name:      p.Name,
			Quantity:  ln.Quantity,
			Price:     p.Price, // captured now, never recomputed
		})
		total += p.Price * float64(ln.Quantity)
	}

	if err := s.Orders.Create(tx, domain.Order{
		ID:              orderID,
		UserID:          userID,
		Status:          domain.StatusPending,
		TotalAmount:     total,
		ShippingAddress: shippingAddress,
		PaymentMethod:   paymentMethod,
		Note:            note,
	}); err != nil {
		return domain.Order{}, err
	}
	for _, it := range items {
		if err := s.Orders.InsertItem(tx, it); err != nil {
			return domain.Order{}, err
		}
	}
	if err := s.Carts.Clear(tx, cartID); err != nil {
		return domain.Order{}, err
	}

	if err := tx.Commit(); err != nil {
		return domain.Order{}, err
	}
	return s.Orders.Get(orderID)
}

// Transition moves an order along the allowed status edges. Only
// sellers and admins may do this. Cancelling restocks every line in the
// same transaction; the guarded status update makes that happen at most
// once even under concurrent requests.
func (s *OrderService) Transition(orderID string, newStatus domain.OrderStatus, actor *domain.User) (domain.Order, error) {
	if !actor.CanManageOrders() {
		return domain.Order{}, ErrForbidden
	}
	if !newStatus.Valid() {
		return domain.Order{}, ErrInvalidTransition
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return domain.Order{}, err
	}
	defer func() { _ = tx.Rollback() }()

	o, err := s.Orders.GetTx(tx, orderID)
	if err != nil {
		return domain.Order{}, err
	}
	if !domain.CanTransition(o.Status, newStatus) {
		return domain.Order{}, ErrInvalidTransition
	}
	ok, err := s.Orders.UpdateStatusFrom(tx, orderID, o.Status, newStatus)
	if err != nil {
		return domain.Order{}, err
	}
	if !ok {
		// A concurrent transition won; whatever edge we validated no
		// longer exists.
		return domain.Order{}, ErrInvalidTransition
	}

	if newStatus == domain.StatusCancelled {
		items, err := s.Orders.ItemsTx(tx, orderID)
		if err != nil {
			return domain.Order{}, err
		}
		for _, it := range items {
			if err := s.Stock.Release(tx, it.ProductID, it.Quantity); err != nil {
				return domain.Order{}, err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return domain.Order{}, err
	}
	return s.Orders.Get(orderID)
}

// GetForUser returns an order if the caller owns it or may manage
// orders. Foreign orders read by customers come back as not-found
// rather than leaking their existence.
func (s *OrderService) GetForUser(orderID string, u *domain.User) (domain.Order, error) {
	o, err := s.Orders.Get(orderID)
	if err != nil {
		return domain.Order{}, err
	}
	if o.UserID != u.ID && !u.CanManageOrders() {
		return domain.Order{}, sql.ErrNoRows
	}
	return o, nil
}

func (s *OrderService) ListForUser(u *domain.User) ([]domain.Order, error) {
	if u.Role == "admin" {
		return s.Orders.ListAll()
	}
	return s.Orders.ListByUser(u.ID)
}
