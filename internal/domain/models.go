package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Category struct {
	ID          string `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	Description string `db:"description" json:"description"`
	ImageURL    string `db:"image_url" json:"imageUrl,omitempty"`
	ParentID    string `db:"parent_id" json:"parentId,omitempty"`
	SortOrder   int    `db:"sort_order" json:"sortOrder"`
}

type BrandingMethod struct {
	ID              string          `db:"id" json:"id"`
	Name            string          `db:"name" json:"name"`
	Description     string          `db:"description" json:"description"`
	BaseCost        decimal.Decimal `db:"base_cost" json:"baseCost"`
	ColorUpcharge   decimal.Decimal `db:"color_upcharge" json:"colorUpcharge"`
	SetupFee        decimal.Decimal `db:"setup_fee" json:"setupFee"`
	MinimumQuantity int             `db:"minimum_quantity" json:"minimumQuantity"`
}

// BrandingOption is the vendor's per-product branding hint. Informational
// only: quotes are always priced from BrandingMethod.
type BrandingOption struct {
	Method          string          `json:"method"`
	Cost            decimal.Decimal `json:"cost"`
	SetupFee        decimal.Decimal `json:"setupFee"`
	MinimumQuantity int             `json:"minimumQuantity"`
}

type Product struct {
	ID              string          `db:"id" json:"id"`
	Name            string          `db:"name" json:"name"`
	Description     string          `db:"description" json:"description"`
	BasePrice       decimal.Decimal `db:"base_price" json:"basePrice"`
	Category        string          `db:"category" json:"category"`
	Brand           string          `db:"brand" json:"brand,omitempty"`
	Images          StringList      `db:"images_json" json:"images"`
	Colors          StringList      `db:"colors_json" json:"colors"`
	Sizes           StringList      `db:"sizes_json" json:"sizes"`
	StockCount      int             `db:"stock_count" json:"stockCount"`
	BrandingOptions BrandingOptions `db:"branding_options_json" json:"brandingOptions"`
	Specifications  Specs           `db:"specifications_json" json:"specifications"`
	MinimumOrder    int             `db:"minimum_order" json:"minimumOrder"`
	Active          bool            `db:"active" json:"isActive"`
	LastUpdated     time.Time       `db:"last_updated" json:"lastUpdated"`
}

type Availability struct {
	Status string `json:"status"` // IN_STOCK | LOW_STOCK | OUT_OF_STOCK
	Qty    int    `json:"qty,omitempty"`
}
