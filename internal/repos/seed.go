package repos

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"promostore/internal/domain"
	applog "promostore/internal/log"
)

// SeedSampleData loads a demo catalog when the store has no products, so the
// storefront is browsable before vendor credentials are configured. It
// reports whether anything was written.
func SeedSampleData(ctx context.Context, store CatalogStore) (bool, error) {
	existing, err := store.ListProducts(ctx, ProductFilter{})
	if err != nil {
		return false, err
	}
	if len(existing) > 0 {
		return false, nil
	}

	cats := sampleCategories()
	methods := sampleBrandingMethods()
	products := sampleProducts(time.Now().UTC())

	if err := store.BulkInsertCategories(ctx, cats); err != nil {
		return false, err
	}
	if err := store.BulkInsertBrandingMethods(ctx, methods); err != nil {
		return false, err
	}
	if err := store.ReplaceProducts(ctx, products); err != nil {
		return false, err
	}
	applog.Info(nil, "seed.sample", map[string]any{
		"products": len(products), "categories": len(cats), "branding_methods": len(methods),
	})
	return true, nil
}

func sampleCategories() []domain.Category {
	return []domain.Category{
		{ID: "cat-1", Name: "Apparel", Description: "T-shirts, polos, jackets and clothing items", SortOrder: 1},
		{ID: "cat-2", Name: "Bags & Travel", Description: "Branded bags, backpacks, and travel accessories", SortOrder: 2},
		{ID: "cat-3", Name: "Drinkware", Description: "Mugs, bottles, tumblers and drinkware", SortOrder: 3},
		{ID: "cat-4", Name: "Technology", Description: "Power banks, USB drives, tech accessories", SortOrder: 4},
		{ID: "cat-5", Name: "Stationery", Description: "Pens, notebooks, desk accessories", SortOrder: 5},
	}
}

func sampleBrandingMethods() []domain.BrandingMethod {
	m := func(id, name, desc, base, up, setup string, minQty int) domain.BrandingMethod {
		return domain.BrandingMethod{
			ID: id, Name: name, Description: desc,
			BaseCost:        decimal.RequireFromString(base),
			ColorUpcharge:   decimal.RequireFromString(up),
			SetupFee:        decimal.RequireFromString(setup),
			MinimumQuantity: minQty,
		}
	}
	return []domain.BrandingMethod{
		m("brand-1", "Screen Print", "Traditional screen printing for vibrant colors", "12.50", "3.50", "65.00", 50),
		m("brand-2", "Embroidery", "Premium embroidered finish", "18.00", "0.00", "120.00", 25),
		m("brand-3", "Digital Print", "Full color digital printing", "8.50", "0.00", "45.00", 25),
		m("brand-4", "Laser Engraving", "Precise laser engraving for premium look", "15.00", "0.00", "85.00", 25),
	}
}

func sampleProducts(now time.Time) []domain.Product {
	opt := func(method, cost, setup string, minQty int) domain.BrandingOption {
		return domain.BrandingOption{
			Method:          method,
			Cost:            decimal.RequireFromString(cost),
			SetupFee:        decimal.RequireFromString(setup),
			MinimumQuantity: minQty,
		}
	}
	screen := opt("screen-print", "12.50", "65", 50)
	embroidery := opt("embroidery", "18", "120", 25)
	laser := opt("laser-engraving", "15", "85", 25)
	digital := opt("digital-print", "8.50", "45", 25)

	p := func(id, name, desc, price, cat, brand string, colors, sizes []string, stock, moq int, opts []domain.BrandingOption, specs domain.Specs) domain.Product {
		return domain.Product{
			ID: id, Name: name, Description: desc,
			BasePrice:       decimal.RequireFromString(price),
			Category:        cat,
			Brand:           brand,
			Images:          domain.StringList{},
			Colors:          colors,
			Sizes:           sizes,
			StockCount:      stock,
			BrandingOptions: opts,
			Specifications:  specs,
			MinimumOrder:    moq,
			Active:          true,
			LastUpdated:     now,
		}
	}
	return []domain.Product{
		p("prod-1", "Classic Cotton T-Shirt",
			"100% cotton heavyweight t-shirt. Perfect for screen printing and embroidery. Available in multiple colors.",
			"89.50", "Apparel", "Gildan",
			[]string{"White", "Black", "Navy", "Red", "Grey", "Royal Blue"},
			[]string{"S", "M", "L", "XL", "2XL", "3XL"},
			850, 25, domain.BrandingOptions{screen, embroidery},
			domain.Specs{"fabric": "100% Cotton", "weight": "185gsm", "fit": "Regular"}),
		p("prod-2", "Premium Polo Shirt",
			"65/35 poly cotton pique polo with three button placket and side vents.",
			"125.00", "Apparel", "Port Authority",
			[]string{"White", "Black", "Navy", "Red", "Khaki"},
			[]string{"S", "M", "L", "XL", "2XL"},
			420, 25, domain.BrandingOptions{embroidery, screen},
			domain.Specs{"fabric": "65% Polyester / 35% Cotton", "weight": "210gsm"}),
		p("prod-3", "Insulated Travel Mug",
			"16oz double wall stainless steel travel mug with spill-proof lid.",
			"145.00", "Drinkware", "RTIC",
			[]string{"Stainless Steel", "Black", "White", "Blue", "Red"},
			[]string{"16oz"},
			275, 25, domain.BrandingOptions{laser, digital},
			domain.Specs{"capacity": "16oz (473ml)", "material": "Stainless Steel", "features": "Double Wall Vacuum Insulated"}),
		p("prod-4", "Canvas Tote Bag",
			"Heavy duty 12oz canvas tote bag with reinforced handles. Great for screen printing.",
			"68.50", "Bags & Travel", "Liberty Bags",
			[]string{"Natural", "Black", "Navy", "Red", "Forest Green"},
			[]string{"Standard"},
			650, 50, domain.BrandingOptions{screen, digital},
			domain.Specs{"material": "12oz Canvas", "dimensions": `15" x 16" x 6"`, "features": `22" Reinforced Handles`}),
		p("prod-5", "Wireless Power Bank",
			"10,000mAh wireless charging power bank with LED indicator and USB-C output.",
			"285.00", "Technology", "Anker",
			[]string{"Black", "White"},
			[]string{"Standard"},
			180, 25, domain.BrandingOptions{laser, digital},
			domain.Specs{"capacity": "10,000mAh", "output": "USB-C, Wireless 10W", "features": "LED Battery Indicator"}),
		p("prod-6", "Executive Pen Set",
			"Premium metal pen set with stylish presentation box. Perfect for corporate gifts.",
			"195.00", "Stationery", "Cross",
			[]string{"Silver", "Gold", "Black"},
			[]string{"Standard"},
			95, 25, domain.BrandingOptions{laser},
			domain.Specs{"material": "Metal Construction", "includes": "Ballpoint & Rollerball", "packaging": "Gift Box Included"}),
	}
}
