package services

import (
	"github.com/google/uuid"

	"shoplite/internal/domain"
	"shoplite/internal/repos"
)

type CatalogService struct {
	Prods *repos.ProductRepo
}

func NewCatalogService(prods *repos.ProductRepo) *CatalogService {
	return &CatalogService{Prods: prods}
}

func (s *CatalogService) List() ([]domain.Product, error) {
	return s.Prods.List()
}

func (s *CatalogService) ListByCategory(category string) ([]domain.Product, error) {
	return s.Prods.ListByCategory(category)
}

func (s *CatalogService) Get(id string) (domain.Product, error) {
	return s.Prods.Get(id)
}

// Create adds a product owned by the acting seller.
func (s *CatalogService) Create(sellerID string, p domain.Product) (domain.Product, error) {
	p.ID = uuid.NewString()
	p.SellerID = sellerID
	p.Active = true
	if err := s.Prods.Create(p); err != nil {
		return domain.Product{}, err
	}
	return s.Prods.Get(p.ID)
}

// Update edits a product. Sellers may only touch their own listings;
// admins may touch any.
func (s *CatalogService) Update(actor *domain.User, p domain.Product) (domain.Product, error) {
	existing, err := s.Prods.Get(p.ID)
	if err != nil {
		return domain.Product{}, err
	}
	if existing.SellerID != actor.ID && actor.Role != "admin" {
		return domain.Product{}, ErrForbidden
	}
	if err := s.Prods.Update(p); err != nil {
		return domain.Product{}, err
	}
	return s.Prods.Get(p.ID)
}

// Delete deactivates a product instead of removing the row, so
// historical order items keep resolving.
func (s *CatalogService) Delete(actor *domain.User, id string) error {
	existing, err := s.Prods.Get(id)
	if err != nil {
		return err
	}
	if existing.SellerID != actor.ID && actor.Role != "admin" {
		return ErrForbidden
	}
	return s.Prods.Deactivate(id)
}
