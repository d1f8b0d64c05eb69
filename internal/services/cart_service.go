package services

import (
	"database/sql"

	"shoplite/internal/domain"
	"shoplite/internal/repos"
)

type CartService struct {
	Carts *repos.CartRepo
	Prods *repos.ProductRepo
	Stock *repos.StockRepo
}

func NewCartService(carts *repos.CartRepo, prods *repos.ProductRepo, stock *repos.StockRepo) *CartService {
	return &CartService{Carts: carts, Prods: prods, Stock: stock}
}

type CartView struct {
	Items []repos.CartItemRow `json:"items"`
	Total float64             `json:"total"`
}

func (s *CartService) View(userID string) (CartView, error) {
	cartID, err := s.Carts.EnsureCart(userID)
	if err != nil {
		return CartView{}, err
	}
	items, err := s.Carts.View(cartID)
	if err != nil {
		return CartView{}, err
	}
	total := 0.0
	for _, it := range items {
		total += it.Subtotal
	}
	return CartView{Items: items, Total: total}, nil
}

// Add puts quantity units of a product into the user's cart. The stock
// check here is informational only; the checkout transaction re-checks
// and reserves authoritatively.
func (s *CartService) Add(userID, productID string, qty int) (domain.CartItem, error) {
	cartID, err := s.Carts.EnsureCart(userID)
	if err != nil {
		return domain.CartItem{}, err
	}
	p, err := s.Prods.Get(productID)
	if err != nil {
		return domain.CartItem{}, err
	}
	if !p.Active {
		return domain.CartItem{}, sql.ErrNoRows
	}

	existing := 0
	items, err := s.Carts.View(cartID)
	if err != nil {
		return domain.CartItem{}, err
	}
	for _, it := range items {
		if it.ProductID == productID {
			existing = it.Quantity
			break
		}
	}
	if existing+qty > p.Stock {
		avail := p.Stock - existing
		if avail < 0 {
			avail = 0
		}
		return domain.CartItem{}, &repos.InsufficientStockError{ProductID: productID, Available: avail}
	}

	return s.Carts.UpsertItem(cartID, productID, qty)
}

// UpdateQuantity sets an owned cart line to an exact quantity.
// Quantities below 1 are rejected by the handler, never floored.
func (s *CartService) UpdateQuantity(userID, itemID string, qty int) (domain.CartItem, error) {
	item, err := s.Carts.ItemForUser(itemID, userID)
	if err != nil {
		return domain.CartItem{}, err
	}
	p, err := s.Prods.Get(item.ProductID)
	if err != nil {
		return domain.CartItem{}, err
	}
	if qty > p.Stock {
		return domain.CartItem{}, &repos.InsufficientStockError{ProductID: item.ProductID, Available: p.Stock}
	}
	if err := s.Carts.UpdateQuantity(itemID, qty); err != nil {
		return domain.CartItem{}, err
	}
	item.Quantity = qty
	return item, nil
}

func (s *CartService) Remove(userID, itemID string) error {
	if _, err := s.Carts.ItemForUser(itemID, userID); err != nil {
		return err
	}
	return s.Carts.DeleteItem(itemID)
}
