package repos

import (
	"context"
	"errors"

	"promostore/internal/domain"
)

var ErrNotFound = errors.New("not found")

// ProductFilter narrows ListProducts. Empty fields are ignored. Category and
// Brand match exactly; Search is a case-insensitive substring over name,
// description and brand.
type ProductFilter struct {
	Category string
	Brand    string
	Search   string
}

// CatalogStore holds the mirrored vendor catalog. Products are replaced as a
// whole; categories and branding methods are upserted by id and never
// removed by a sync.
type CatalogStore interface {
	ReplaceProducts(ctx context.Context, products []domain.Product) error
	BulkInsertCategories(ctx context.Context, categories []domain.Category) error
	BulkInsertBrandingMethods(ctx context.Context, methods []domain.BrandingMethod) error

	// ListProducts returns active products ordered by name, then id.
	ListProducts(ctx context.Context, f ProductFilter) ([]domain.Product, error)
	GetProduct(ctx context.Context, id string) (domain.Product, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	GetCategory(ctx context.Context, id string) (domain.Category, error)
	ListBrandingMethods(ctx context.Context) ([]domain.BrandingMethod, error)
	GetBrandingMethod(ctx context.Context, id string) (domain.BrandingMethod, error)
}
