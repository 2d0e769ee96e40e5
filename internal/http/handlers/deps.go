package handlers

import (
	"promostore/internal/repos"
	"promostore/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	Auth *services.AuthService

	AuthHandler      *AuthHandler
	CategoryHandler  *CategoryHandler
	ProductHandler   *ProductHandler
	InventoryHandler *InventoryHandler
	BrandingHandler  *BrandingHandler
	CartHandler      *CartHandler
	QuoteHandler     *QuoteHandler
	AdminHandler     *AdminHandler
}

// NewDeps wires repositories and services over db. The catalog service is
// passed in so the sync hook and the handlers share one cache.
func NewDeps(db *sqlx.DB, catalog *services.CatalogService, syncer Syncer) *Deps {
	store := catalog.Store
	cartRepo := repos.NewCartRepo(db)
	quoteRepo := repos.NewQuoteRepo(db)

	authSvc := &services.AuthService{Users: repos.NewUserRepo(db)}
	cartSvc := services.NewCartService(cartRepo, store)
	quoteSvc := services.NewQuoteService(cartRepo, quoteRepo)

	return &Deps{
		Auth:             authSvc,
		AuthHandler:      &AuthHandler{Auth: authSvc},
		CategoryHandler:  &CategoryHandler{Catalog: catalog},
		ProductHandler:   &ProductHandler{Catalog: catalog},
		InventoryHandler: &InventoryHandler{Inv: services.NewInventoryService(store)},
		BrandingHandler:  &BrandingHandler{Pricing: services.NewPricingService(store)},
		CartHandler:      &CartHandler{Cart: cartSvc},
		QuoteHandler:     &QuoteHandler{Quotes: quoteSvc},
		AdminHandler:     &AdminHandler{Sync: syncer, Logs: repos.NewSyncLogRepo(db), Quotes: quoteSvc},
	}
}
