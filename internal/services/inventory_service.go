package services

import (
	"context"

	"promostore/internal/domain"
	"promostore/internal/repos"
)

const lowStockThreshold = 5

type InventoryService struct {
	Store repos.CatalogStore
}

func NewInventoryService(store repos.CatalogStore) *InventoryService {
	return &InventoryService{Store: store}
}

// CheckAvailability converts the synced stock count to IN_STOCK / LOW_STOCK /
// OUT_OF_STOCK. Inactive products are always out of stock.
func (s *InventoryService) CheckAvailability(ctx context.Context, productID string) (domain.Availability, error) {
	p, err := s.Store.GetProduct(ctx, productID)
	if err != nil {
		return domain.Availability{}, lookupErr("product", err)
	}
	qty := p.StockCount
	if !p.Active || qty < 0 {
		qty = 0
	}
	return availabilityFor(qty), nil
}

func availabilityFor(qty int) domain.Availability {
	status := "OUT_OF_STOCK"
	switch {
	case qty >= lowStockThreshold:
		status = "IN_STOCK"
	case qty > 0:
		status = "LOW_STOCK"
	}
	return domain.Availability{Status: status, Qty: qty}
}
