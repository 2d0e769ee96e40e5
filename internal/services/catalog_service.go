package services

import (
	"context"
	"encoding/json"
	"time"

	"promostore/internal/cache"
	"promostore/internal/domain"
	applog "promostore/internal/log"
	"promostore/internal/repos"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100

	categoriesKey = "catalog:categories"
	brandingKey   = "catalog:branding_methods"
)

type ProductPage struct {
	Products []domain.Product `json:"products"`
	Total    int              `json:"total"`
	Page     int              `json:"page"`
	Limit    int              `json:"limit"`
	HasMore  bool             `json:"hasMore"`
}

// CatalogService serves catalog reads. Category and branding listings go
// through the cache; products are always read from the store.
type CatalogService struct {
	Store repos.CatalogStore
	Cache cache.Cache
	TTL   time.Duration
}

func NewCatalogService(store repos.CatalogStore, c cache.Cache, ttl time.Duration) *CatalogService {
	if c == nil {
		c = cache.Nop{}
	}
	return &CatalogService{Store: store, Cache: c, TTL: ttl}
}

// ListProducts filters then pages. page < 1 is page 1; limit is clamped to
// [1, 100] with 20 as default.
func (s *CatalogService) ListProducts(ctx context.Context, f repos.ProductFilter, page, limit int) (ProductPage, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	all, err := s.Store.ListProducts(ctx, f)
	if err != nil {
		return ProductPage{}, err
	}
	// Pages past the end are empty. Checking before multiplying keeps the
	// offset from overflowing on huge page numbers.
	start := len(all)
	if page <= len(all)/limit+1 {
		start = min((page-1)*limit, len(all))
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return ProductPage{
		Products: all[start:end],
		Total:    len(all),
		Page:     page,
		Limit:    limit,
		HasMore:  end < len(all),
	}, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	p, err := s.Store.GetProduct(ctx, id)
	if err != nil {
		return domain.Product{}, lookupErr("product", err)
	}
	return p, nil
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return cached(ctx, s, categoriesKey, s.Store.ListCategories)
}

func (s *CatalogService) ListBrandingMethods(ctx context.Context) ([]domain.BrandingMethod, error) {
	return cached(ctx, s, brandingKey, s.Store.ListBrandingMethods)
}

// Invalidate drops cached listings. Called after every sync.
func (s *CatalogService) Invalidate(ctx context.Context) {
	if err := s.Cache.Delete(ctx, categoriesKey, brandingKey); err != nil {
		applog.Warn(nil, "cache.invalidate", err, nil)
	}
}

// cached is read-through: cache failures are logged and fall back to the
// store.
func cached[T any](ctx context.Context, s *CatalogService, key string, load func(context.Context) ([]T, error)) ([]T, error) {
	if b, ok, err := s.Cache.Get(ctx, key); err != nil {
		applog.Warn(nil, "cache.get", err, map[string]any{"key": key})
	} else if ok {
		var out []T
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
	}

	out, err := load(ctx)
	if err != nil {
		return nil, err
	}
	if b, err := json.Marshal(out); err == nil {
		if err := s.Cache.Set(ctx, key, b, s.TTL); err != nil {
			applog.Warn(nil, "cache.set", err, map[string]any{"key": key})
		}
	}
	return out, nil
}
