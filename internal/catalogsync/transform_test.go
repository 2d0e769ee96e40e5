package catalogsync

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"promostore/internal/domain"
	"promostore/internal/vendor"
)

func TestProductFromVendorDerivesVariantFields(t *testing.T) {
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	p := vendor.Product{
		ID:    "P1",
		Name:  "Tee",
		Price: decimal.RequireFromString("89.499"),
		Variants: []vendor.Variant{
			{Color: "Red", Sizes: []string{"M", "L"}, Stock: 10},
			{Color: "Blue", Sizes: []string{"S", "M"}, Stock: 5},
			{Color: "Red", Sizes: []string{"XL"}, Stock: -3},
			{Color: "", Sizes: []string{""}, Stock: 1},
		},
		BrandingOptions: []vendor.BrandingOption{{Method: "embroidery", Cost: decimal.RequireFromString("18"), SetupFee: decimal.RequireFromString("120"), MinimumQuantity: 25}},
		MinimumOrder:    0,
	}

	got := ProductFromVendor(p, now)
	assert.Equal(t, domain.StringList{"Blue", "Red"}, got.Colors)
	assert.Equal(t, domain.StringList{"L", "M", "S", "XL"}, got.Sizes)
	assert.Equal(t, 16, got.StockCount)
	assert.Equal(t, "89.5", got.BasePrice.String())
	assert.Equal(t, 1, got.MinimumOrder)
	assert.True(t, got.Active)
	assert.Equal(t, now, got.LastUpdated)
	assert.Len(t, got.BrandingOptions, 1)
	assert.NotNil(t, got.Images)
	assert.NotNil(t, got.Specifications)
}

func TestProductFromVendorIsVariantOrderIndependent(t *testing.T) {
	now := time.Now()
	a := vendor.Product{ID: "P1", Variants: []vendor.Variant{
		{Color: "Navy", Sizes: []string{"2XL", "S"}, Stock: 1},
		{Color: "White", Sizes: []string{"M"}, Stock: 2},
	}}
	b := vendor.Product{ID: "P1", Variants: []vendor.Variant{a.Variants[1], a.Variants[0]}}

	pa, pb := ProductFromVendor(a, now), ProductFromVendor(b, now)
	assert.Equal(t, pa.Colors, pb.Colors)
	assert.Equal(t, pa.Sizes, pb.Sizes)
	assert.Equal(t, pa.StockCount, pb.StockCount)
}

func TestProductWithoutVariants(t *testing.T) {
	got := ProductFromVendor(vendor.Product{ID: "P1"}, time.Now())
	assert.Equal(t, domain.StringList{}, got.Colors)
	assert.Equal(t, domain.StringList{}, got.Sizes)
	assert.Equal(t, 0, got.StockCount)
}

func TestMissingIDsGetLocalIDs(t *testing.T) {
	a := CategoryFromVendor(vendor.Category{Name: "Bags"})
	b := CategoryFromVendor(vendor.Category{Name: "Bags"})
	c := CategoryFromVendor(vendor.Category{Name: "Pens"})
	assert.NotEmpty(t, a.ID)
	assert.Equal(t, a.ID, b.ID)
	assert.NotEqual(t, a.ID, c.ID)

	m := BrandingMethodFromVendor(vendor.BrandingMethod{Name: "Bags"})
	assert.NotEqual(t, a.ID, m.ID)

	assert.Equal(t, "C1", CategoryFromVendor(vendor.Category{ID: "C1"}).ID)

	p1 := ProductFromVendor(vendor.Product{Name: "Tee"}, time.Now())
	assert.NotEmpty(t, p1.ID)
}

func TestBrandingMethodFromVendor(t *testing.T) {
	got := BrandingMethodFromVendor(vendor.BrandingMethod{
		ID:            "B1",
		BaseCost:      decimal.RequireFromString("12.505"),
		ColorUpcharge: decimal.RequireFromString("3.5"),
	})
	assert.Equal(t, "12.51", got.BaseCost.String())
	assert.Equal(t, 1, got.MinimumQuantity)
	assert.True(t, got.SetupFee.IsZero())
}
