package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"promostore/internal/domain"
	"promostore/internal/repos"
)

// VATRate is the tax applied to every quote.
var VATRate = decimal.RequireFromString("0.15")

// PerUnitBranding is the branding cost of one unit: base cost plus the color
// upcharge for every color after the first. colors below 1 count as 1.
func PerUnitBranding(m domain.BrandingMethod, colors int) decimal.Decimal {
	if colors < 1 {
		colors = 1
	}
	extra := m.ColorUpcharge.Mul(decimal.NewFromInt(int64(colors - 1)))
	return m.BaseCost.Add(extra).Round(2)
}

// ComputeBrandingQuote prices qty units of a product branded with method.
// Every amount is rounded to cents; perUnit is total/qty.
func ComputeBrandingQuote(price decimal.Decimal, m domain.BrandingMethod, qty, colors int) (domain.BrandingQuote, error) {
	if qty < 1 {
		return domain.BrandingQuote{}, fmt.Errorf("%w: quantity must be at least 1", ErrInvalidInput)
	}
	if colors < 1 {
		colors = 1
	}
	q := decimal.NewFromInt(int64(qty))

	productCost := price.Mul(q)
	brandingCost := m.BaseCost.Mul(q).Add(m.ColorUpcharge.Mul(decimal.NewFromInt(int64(colors - 1))).Mul(q))
	subtotal := productCost.Add(brandingCost).Add(m.SetupFee)
	vat := subtotal.Mul(VATRate)
	total := subtotal.Add(vat)

	return domain.BrandingQuote{
		ProductCost:  productCost.Round(2),
		BrandingCost: brandingCost.Round(2),
		SetupFee:     m.SetupFee.Round(2),
		Subtotal:     subtotal.Round(2),
		VAT:          vat.Round(2),
		Total:        total.Round(2),
		PerUnit:      total.Div(q).Round(2),
	}, nil
}

type PricingService struct {
	Store repos.CatalogStore
}

func NewPricingService(store repos.CatalogStore) *PricingService {
	return &PricingService{Store: store}
}

// Calculate looks up the product and method and prices the request. Unknown
// ids return ErrNotFound.
func (s *PricingService) Calculate(ctx context.Context, productID, methodID string, qty, colors int) (domain.BrandingQuote, error) {
	p, err := s.Store.GetProduct(ctx, productID)
	if err != nil {
		return domain.BrandingQuote{}, lookupErr("product", err)
	}
	m, err := s.Store.GetBrandingMethod(ctx, methodID)
	if err != nil {
		return domain.BrandingQuote{}, lookupErr("branding method", err)
	}
	return ComputeBrandingQuote(p.BasePrice, m, qty, colors)
}

func lookupErr(what string, err error) error {
	if errors.Is(err, ErrNotFound) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return fmt.Errorf("load %s: %w", what, err)
}
