package handlers

import (
	"github.com/jmoiron/sqlx"

	"shoplite/internal/repos"
	"shoplite/internal/services"
)

type Deps struct {
	AuthHandler    *AuthHandler
	ProductHandler *ProductHandler
	CartHandler    *CartHandler
	OrderHandler   *OrderHandler
	SellerHandler  *SellerHandler

	Auth *services.AuthService
}

func NewDeps(db *sqlx.DB) *Deps {
	userRepo := repos.NewUserRepo(db)
	prodRepo := repos.NewProductRepo(db)
	stockRepo := repos.NewStockRepo(db)
	cartRepo := repos.NewCartRepo(db)
	orderRepo := repos.NewOrderRepo(db)

	authSvc := services.NewAuthService(userRepo)
	catalogSvc := services.NewCatalogService(prodRepo)
	cartSvc := services.NewCartService(cartRepo, prodRepo, stockRepo)
	orderSvc := services.NewOrderService(db, cartRepo, prodRepo, stockRepo, orderRepo)
	sellerSvc := services.NewSellerService(prodRepo, orderRepo)

	return &Deps{
		AuthHandler:    &AuthHandler{Auth: authSvc},
		ProductHandler: &ProductHandler{Catalog: catalogSvc},
		CartHandler:    &CartHandler{Cart: cartSvc},
		OrderHandler:   &OrderHandler{Orders: orderSvc},
		SellerHandler:  &SellerHandler{Seller: sellerSvc},
		Auth:           authSvc,
	}
}
