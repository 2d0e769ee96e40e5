package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"promostore/internal/domain"
	"promostore/internal/repos"
)

type CartService struct {
	Carts *repos.CartRepo
	Store repos.CatalogStore
}

func NewCartService(carts *repos.CartRepo, store repos.CatalogStore) *CartService {
	return &CartService{Carts: carts, Store: store}
}

// CartInput is one add-to-cart request. Prices are never taken from the
// client.
type CartInput struct {
	ProductID        string
	Quantity         int
	Color            string
	Size             string
	BrandingMethodID string
	BrandingColors   int
	CustomBranding   string
}

// CartUpdate changes a line in place. Nil fields are kept.
type CartUpdate struct {
	Quantity         *int
	Color            *string
	Size             *string
	BrandingMethodID *string
	BrandingColors   *int
	CustomBranding   *string
}

type CartView struct {
	Items    []domain.CartItem `json:"items"`
	Subtotal decimal.Decimal   `json:"subtotal"`
}

func (s *CartService) Add(ctx context.Context, sessionID string, in CartInput) (domain.CartItem, error) {
	p, err := s.Store.GetProduct(ctx, in.ProductID)
	if err != nil {
		return domain.CartItem{}, lookupErr("product", err)
	}
	if !p.Active {
		return domain.CartItem{}, fmt.Errorf("product: %w", ErrNotFound)
	}

	it := domain.CartItem{
		ID:               uuid.NewString(),
		SessionID:        sessionID,
		ProductID:        p.ID,
		ProductName:      p.Name,
		Quantity:         in.Quantity,
		SelectedColor:    strings.TrimSpace(in.Color),
		SelectedSize:     strings.TrimSpace(in.Size),
		BrandingMethodID: in.BrandingMethodID,
		BrandingColors:   in.BrandingColors,
		CustomBranding:   strings.TrimSpace(in.CustomBranding),
		UnitPrice:        p.BasePrice,
		CreatedAt:        time.Now().UTC(),
	}
	if err := s.price(ctx, p, &it); err != nil {
		return domain.CartItem{}, err
	}
	if err := s.Carts.Add(ctx, it); err != nil {
		return domain.CartItem{}, err
	}
	return it, nil
}

func (s *CartService) Update(ctx context.Context, sessionID, id string, u CartUpdate) (domain.CartItem, error) {
	it, err := s.Carts.Get(ctx, sessionID, id)
	if err != nil {
		return domain.CartItem{}, lookupErr("cart item", err)
	}
	if u.Quantity != nil {
		it.Quantity = *u.Quantity
	}
	if u.Color != nil {
		it.SelectedColor = strings.TrimSpace(*u.Color)
	}
	if u.Size != nil {
		it.SelectedSize = strings.TrimSpace(*u.Size)
	}
	if u.BrandingMethodID != nil {
		it.BrandingMethodID = *u.BrandingMethodID
	}
	if u.BrandingColors != nil {
		it.BrandingColors = *u.BrandingColors
	}
	if u.CustomBranding != nil {
		it.CustomBranding = strings.TrimSpace(*u.CustomBranding)
	}

	p, err := s.Store.GetProduct(ctx, it.ProductID)
	if err != nil {
		return domain.CartItem{}, lookupErr("product", err)
	}
	if err := s.price(ctx, p, &it); err != nil {
		return domain.CartItem{}, err
	}
	if err := s.Carts.Update(ctx, it); err != nil {
		return domain.CartItem{}, lookupErr("cart item", err)
	}
	return it, nil
}

// price validates the line against the product and sets the per-unit
// branding cost. The unit price stays what it was when the line was added.
func (s *CartService) price(ctx context.Context, p domain.Product, it *domain.CartItem) error {
	if it.Quantity < 1 {
		return fmt.Errorf("%w: quantity must be at least 1", ErrInvalidInput)
	}
	if it.SelectedColor != "" && len(p.Colors) > 0 && !contains(p.Colors, it.SelectedColor) {
		return fmt.Errorf("%w: color %q not offered", ErrInvalidInput, it.SelectedColor)
	}
	if it.SelectedSize != "" && len(p.Sizes) > 0 && !contains(p.Sizes, it.SelectedSize) {
		return fmt.Errorf("%w: size %q not offered", ErrInvalidInput, it.SelectedSize)
	}
	if it.BrandingColors < 1 {
		it.BrandingColors = 1
	}

	it.BrandingCost = decimal.Zero
	if it.BrandingMethodID == "" {
		return nil
	}
	m, err := s.Store.GetBrandingMethod(ctx, it.BrandingMethodID)
	if err != nil {
		return lookupErr("branding method", err)
	}
	it.BrandingCost = PerUnitBranding(m, it.BrandingColors)
	return nil
}

func (s *CartService) Remove(ctx context.Context, sessionID, id string) error {
	if err := s.Carts.Remove(ctx, sessionID, id); err != nil {
		return lookupErr("cart item", err)
	}
	return nil
}

func (s *CartService) Clear(ctx context.Context, sessionID string) error {
	return s.Carts.Clear(ctx, sessionID)
}

func (s *CartService) View(ctx context.Context, sessionID string) (CartView, error) {
	items, err := s.Carts.Items(ctx, sessionID)
	if err != nil {
		return CartView{}, err
	}
	return CartView{Items: items, Subtotal: subtotal(items)}, nil
}

func subtotal(items []domain.CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.LineTotal())
	}
	return total.Round(2)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
