package handlers

import (
	"github.com/jmoiron/sqlx"

	"shopforge/internal/cache"
	"shopforge/internal/repos"
	"shopforge/internal/services"
)

type Deps struct {
	AuthHandler     *AuthHandler
	ProductHandler  *ProductHandler
	CartHandler     *CartHandler
	OrderHandler    *OrderHandler
	AdminHandler    *AdminHandler
	WishlistHandler *WishlistHandler
}

func NewDeps(db *sqlx.DB, auth *services.AuthService, stats cache.StatsCache) *Deps {
	prodRepo := repos.NewProductRepo(db)
	cartRepo := repos.NewCartRepo(db)
	orderRepo := repos.NewOrderRepo(db)
	reviewRepo := repos.NewReviewRepo(db)
	wishRepo := repos.NewWishlistRepo(db)

	catalogSvc := services.NewCatalogService(prodRepo, reviewRepo)
	cartSvc := services.NewCartService(cartRepo, prodRepo)
	orderSvc := services.NewOrderService(cartRepo, prodRepo, orderRepo, stats)
	reviewSvc := services.NewReviewService(reviewRepo, prodRepo)
	wishSvc := services.NewWishlistService(wishRepo)

	return &Deps{
		AuthHandler:     &AuthHandler{Auth: auth},
		ProductHandler:  &ProductHandler{Catalog: catalogSvc, Reviews: reviewSvc},
		CartHandler:     &CartHandler{Cart: cartSvc},
		OrderHandler:    &OrderHandler{Orders: orderSvc},
		AdminHandler:    &AdminHandler{Prods: prodRepo, Users: auth.Users},
		WishlistHandler: &WishlistHandler{Wish: wishSvc},
	}
}
