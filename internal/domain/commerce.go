package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type CartItem struct {
	ID               string          `db:"id" json:"id"`
	SessionID        string          `db:"session_id" json:"-"`
	ProductID        string          `db:"product_id" json:"productId"`
	ProductName      string          `db:"product_name" json:"productName"`
	Quantity         int             `db:"quantity" json:"quantity"`
	SelectedColor    string          `db:"selected_color" json:"selectedColor,omitempty"`
	SelectedSize     string          `db:"selected_size" json:"selectedSize,omitempty"`
	BrandingMethodID string          `db:"branding_method_id" json:"brandingMethodId,omitempty"`
	BrandingColors   int             `db:"branding_colors" json:"brandingColors"`
	CustomBranding   string          `db:"custom_branding" json:"customBranding,omitempty"`
	UnitPrice        decimal.Decimal `db:"unit_price" json:"unitPrice"`
	BrandingCost     decimal.Decimal `db:"branding_cost" json:"brandingCost"` // per unit
	CreatedAt        time.Time       `db:"created_at" json:"createdAt"`
}

// LineTotal is (unit price + per-unit branding) x quantity.
func (c CartItem) LineTotal() decimal.Decimal {
	return c.UnitPrice.Add(c.BrandingCost).Mul(decimal.NewFromInt(int64(c.Quantity)))
}

type QuoteItem struct {
	ProductID        string          `json:"productId"`
	ProductName      string          `json:"productName"`
	Quantity         int             `json:"quantity"`
	SelectedColor    string          `json:"selectedColor,omitempty"`
	SelectedSize     string          `json:"selectedSize,omitempty"`
	BrandingMethodID string          `json:"brandingMethodId,omitempty"`
	BrandingColors   int             `json:"brandingColors"`
	CustomBranding   string          `json:"customBranding,omitempty"`
	UnitPrice        decimal.Decimal `json:"unitPrice"`
	BrandingCost     decimal.Decimal `json:"brandingCost"`
	LineTotal        decimal.Decimal `json:"lineTotal"`
}

type QuoteRequest struct {
	ID            string          `db:"id" json:"id"`
	SessionID     string          `db:"session_id" json:"-"`
	CustomerName  string          `db:"customer_name" json:"customerName"`
	CustomerEmail string          `db:"customer_email" json:"customerEmail"`
	CustomerPhone string          `db:"customer_phone" json:"customerPhone,omitempty"`
	CompanyName   string          `db:"company_name" json:"companyName,omitempty"`
	Items         QuoteItems      `db:"items_json" json:"items"`
	TotalAmount   decimal.Decimal `db:"total_amount" json:"totalAmount"`
	Notes         string          `db:"notes" json:"notes,omitempty"`
	Status        string          `db:"status" json:"status"`
	CreatedAt     time.Time       `db:"created_at" json:"createdAt"`
}

// BrandingQuote is the result of the branding cost formula. All amounts are
// rounded to cents.
type BrandingQuote struct {
	ProductCost  decimal.Decimal `json:"productCost"`
	BrandingCost decimal.Decimal `json:"brandingCost"`
	SetupFee     decimal.Decimal `json:"setupFee"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	VAT          decimal.Decimal `json:"vat"`
	Total        decimal.Decimal `json:"total"`
	PerUnit      decimal.Decimal `json:"perUnit"`
}
