package repos

import (
	"context"
	"sort"
	"strings"
	"sync"

	"promostore/internal/domain"
)

// MemCatalog is an in-process CatalogStore. Used by tests and when no
// database is configured.
type MemCatalog struct {
	mu         sync.RWMutex
	products   map[string]domain.Product
	categories map[string]domain.Category
	methods    map[string]domain.BrandingMethod
}

func NewMemCatalog() *MemCatalog {
	return &MemCatalog{
		products:   map[string]domain.Product{},
		categories: map[string]domain.Category{},
		methods:    map[string]domain.BrandingMethod{},
	}
}

var _ CatalogStore = (*MemCatalog)(nil)

func (m *MemCatalog) ReplaceProducts(_ context.Context, products []domain.Product) error {
	next := make(map[string]domain.Product, len(products))
	for _, p := range products {
		next[p.ID] = p
	}
	m.mu.Lock()
	m.products = next
	m.mu.Unlock()
	return nil
}

func (m *MemCatalog) BulkInsertCategories(_ context.Context, categories []domain.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range categories {
		m.categories[c.ID] = c
	}
	return nil
}

func (m *MemCatalog) BulkInsertBrandingMethods(_ context.Context, methods []domain.BrandingMethod) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range methods {
		m.methods[b.ID] = b
	}
	return nil
}

func (m *MemCatalog) ListProducts(_ context.Context, f ProductFilter) ([]domain.Product, error) {
	q := strings.ToLower(strings.TrimSpace(f.Search))

	m.mu.RLock()
	out := []domain.Product{}
	for _, p := range m.products {
		if !p.Active {
			continue
		}
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if f.Brand != "" && p.Brand != f.Brand {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.Description), q) &&
			!strings.Contains(strings.ToLower(p.Brand), q) {
			continue
		}
		out = append(out, p)
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *MemCatalog) GetProduct(_ context.Context, id string) (domain.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.products[id]
	if !ok {
		return domain.Product{}, ErrNotFound
	}
	return p, nil
}

func (m *MemCatalog) ListCategories(_ context.Context) ([]domain.Category, error) {
	m.mu.RLock()
	out := make([]domain.Category, 0, len(m.categories))
	for _, c := range m.categories {
		out = append(out, c)
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.SortOrder != b.SortOrder {
			return a.SortOrder < b.SortOrder
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ID < b.ID
	})
	return out, nil
}

func (m *MemCatalog) GetCategory(_ context.Context, id string) (domain.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.categories[id]
	if !ok {
		return domain.Category{}, ErrNotFound
	}
	return c, nil
}

func (m *MemCatalog) ListBrandingMethods(_ context.Context) ([]domain.BrandingMethod, error) {
	m.mu.RLock()
	out := make([]domain.BrandingMethod, 0, len(m.methods))
	for _, b := range m.methods {
		out = append(out, b)
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *MemCatalog) GetBrandingMethod(_ context.Context, id string) (domain.BrandingMethod, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.methods[id]
	if !ok {
		return domain.BrandingMethod{}, ErrNotFound
	}
	return b, nil
}
