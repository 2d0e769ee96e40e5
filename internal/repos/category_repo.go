package repos

import (
	"context"
	"database/sql"
	"errors"

	"promostore/internal/domain"
)

// BulkInsertCategories upserts by id. Categories missing from the batch are
// left in place.
func (r *CatalogRepo) BulkInsertCategories(ctx context.Context, categories []domain.Category) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, c := range categories {
		if _, err := tx.NamedExecContext(ctx, `
		  INSERT INTO categories(id,name,description,image_url,parent_id,sort_order)
		  VALUES(:id,:name,:description,:image_url,:parent_id,:sort_order)
		  ON CONFLICT(id) DO UPDATE SET
		    name=excluded.name, description=excluded.description, image_url=excluded.image_url,
		    parent_id=excluded.parent_id, sort_order=excluded.sort_order
		`, c); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *CatalogRepo) ListCategories(ctx context.Context) ([]domain.Category, error) {
	out := []domain.Category{}
	err := r.db.SelectContext(ctx, &out, `
	  SELECT id, name, description, image_url, parent_id, sort_order
	  FROM categories
	  ORDER BY sort_order, name, id
	`)
	return out, err
}

func (r *CatalogRepo) GetCategory(ctx context.Context, id string) (domain.Category, error) {
	var c domain.Category
	err := r.db.GetContext(ctx, &c, `
	  SELECT id, name, description, image_url, parent_id, sort_order
	  FROM categories WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Category{}, ErrNotFound
	}
	return c, err
}

// BulkInsertBrandingMethods upserts by id, same as categories.
func (r *CatalogRepo) BulkInsertBrandingMethods(ctx context.Context, methods []domain.BrandingMethod) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, m := range methods {
		if _, err := tx.NamedExecContext(ctx, `
		  INSERT INTO branding_methods(id,name,description,base_cost,color_upcharge,setup_fee,minimum_quantity)
		  VALUES(:id,:name,:description,:base_cost,:color_upcharge,:setup_fee,:minimum_quantity)
		  ON CONFLICT(id) DO UPDATE SET
		    name=excluded.name, description=excluded.description, base_cost=excluded.base_cost,
		    color_upcharge=excluded.color_upcharge, setup_fee=excluded.setup_fee,
		    minimum_quantity=excluded.minimum_quantity
		`, m); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *CatalogRepo) ListBrandingMethods(ctx context.Context) ([]domain.BrandingMethod, error) {
	out := []domain.BrandingMethod{}
	err := r.db.SelectContext(ctx, &out, `
	  SELECT id, name, description, base_cost, color_upcharge, setup_fee, minimum_quantity
	  FROM branding_methods
	  ORDER BY name, id
	`)
	return out, err
}

func (r *CatalogRepo) GetBrandingMethod(ctx context.Context, id string) (domain.BrandingMethod, error) {
	var m domain.BrandingMethod
	err := r.db.GetContext(ctx, &m, `
	  SELECT id, name, description, base_cost, color_upcharge, setup_fee, minimum_quantity
	  FROM branding_methods WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.BrandingMethod{}, ErrNotFound
	}
	return m, err
}
