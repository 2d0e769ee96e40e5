package repos

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"promostore/internal/domain"
)

// CatalogRepo is the sqlite CatalogStore.
type CatalogRepo struct{ db *sqlx.DB }

func NewCatalogRepo(db *sqlx.DB) *CatalogRepo { return &CatalogRepo{db: db} }

var _ CatalogStore = (*CatalogRepo)(nil)

const productColumns = `
    id, name, description, base_price, category, brand, images_json, colors_json,
    sizes_json, stock_count, branding_options_json, specifications_json,
    minimum_order, active, last_updated`

// ReplaceProducts swaps the whole product table inside one transaction, so
// readers see either the old catalog or the new one.
func (r *CatalogRepo) ReplaceProducts(ctx context.Context, products []domain.Product) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM products`); err != nil {
		return fmt.Errorf("clear products: %w", err)
	}
	for _, p := range products {
		if _, err := tx.NamedExecContext(ctx, `
		  INSERT INTO products(`+productColumns+`)
		  VALUES(
		    :id, :name, :description, :base_price, :category, :brand, :images_json, :colors_json,
		    :sizes_json, :stock_count, :branding_options_json, :specifications_json,
		    :minimum_order, :active, :last_updated)
		  ON CONFLICT(id) DO UPDATE SET
		    name=excluded.name, description=excluded.description, base_price=excluded.base_price,
		    category=excluded.category, brand=excluded.brand, images_json=excluded.images_json,
		    colors_json=excluded.colors_json, sizes_json=excluded.sizes_json,
		    stock_count=excluded.stock_count, branding_options_json=excluded.branding_options_json,
		    specifications_json=excluded.specifications_json, minimum_order=excluded.minimum_order,
		    active=excluded.active, last_updated=excluded.last_updated
		`, p); err != nil {
			return fmt.Errorf("insert product %q: %w", p.ID, err)
		}
	}
	return tx.Commit()
}

func (r *CatalogRepo) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	var p domain.Product
	err := r.db.GetContext(ctx, &p, `SELECT `+productColumns+` FROM products WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, ErrNotFound
	}
	return p, err
}

func (r *CatalogRepo) ListProducts(ctx context.Context, f ProductFilter) ([]domain.Product, error) {
	where := `active = 1`
	args := []any{}
	if f.Category != "" {
		where += ` AND category = ?`
		args = append(args, f.Category)
	}
	if f.Brand != "" {
		where += ` AND brand = ?`
		args = append(args, f.Brand)
	}
	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		where += ` AND (instr(LOWER(name), ?) > 0 OR instr(LOWER(description), ?) > 0 OR instr(LOWER(brand), ?) > 0)`
		args = append(args, q, q, q)
	}

	out := []domain.Product{}
	err := r.db.SelectContext(ctx, &out, `
	  SELECT `+productColumns+`
	  FROM products
	  WHERE `+where+`
	  ORDER BY name, id`, args...)
	return out, err
}
