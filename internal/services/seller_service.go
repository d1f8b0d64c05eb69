package services

import (
	"shoplite/internal/domain"
	"shoplite/internal/repos"
)

type SellerService struct {
	Prods  *repos.ProductRepo
	Orders *repos.OrderRepo
}

func NewSellerService(prods *repos.ProductRepo, orders *repos.OrderRepo) *SellerService {
	return &SellerService{Prods: prods, Orders: orders}
}

type DashboardStats struct {
	ProductCount   int            `json:"productCount"`
	OrderCount     int            `json:"orderCount"`
	OrdersByStatus map[string]int `json:"ordersByStatus"`
	Revenue        float64        `json:"revenue"`
}

// Dashboard aggregates the seller's listings and the orders containing
// them. Revenue counts the seller's own lines in non-cancelled orders.
func (s *SellerService) Dashboard(sellerID string) (DashboardStats, error) {
	prods, err := s.Prods.ListBySeller(sellerID)
	if err != nil {
		return DashboardStats{}, err
	}
	mine := make(map[string]bool, len(prods))
	for _, p := range prods {
		mine[p.ID] = true
	}

	orders, err := s.Orders.ListBySeller(sellerID)
	if err != nil {
		return DashboardStats{}, err
	}

	stats := DashboardStats{
		ProductCount:   len(prods),
		OrderCount:     len(orders),
		OrdersByStatus: map[string]int{},
	}
	for _, o := range orders {
		stats.OrdersByStatus[string(o.Status)]++
		if o.Status == domain.StatusCancelled {
			continue
		}
		for _, it := range o.Items {
			if mine[it.ProductID] {
				stats.Revenue += it.Price * float64(it.Quantity)
			}
		}
	}
	return stats, nil
}

func (s *SellerService) ListOrders(sellerID string) ([]domain.Order, error) {
	return s.Orders.ListBySeller(sellerID)
}

func (s *SellerService) Products(sellerID string) ([]domain.Product, error) {
	return s.Prods.ListBySeller(sellerID)
}
