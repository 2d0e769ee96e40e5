package repos

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"promostore/internal/domain"
)

// CartRepo stores cart lines keyed by the sid session cookie.
type CartRepo struct{ db *sqlx.DB }

func NewCartRepo(db *sqlx.DB) *CartRepo { return &CartRepo{db: db} }

const cartColumns = `
    id, session_id, product_id, product_name, quantity, selected_color, selected_size,
    branding_method_id, branding_colors, custom_branding, unit_price, branding_cost, created_at`

func (r *CartRepo) Add(ctx context.Context, it domain.CartItem) error {
	_, err := r.db.NamedExecContext(ctx, `
	  INSERT INTO cart_items(`+cartColumns+`)
	  VALUES(
	    :id, :session_id, :product_id, :product_name, :quantity, :selected_color, :selected_size,
	    :branding_method_id, :branding_colors, :custom_branding, :unit_price, :branding_cost, :created_at)
	`, it)
	return err
}

func (r *CartRepo) Items(ctx context.Context, sessionID string) ([]domain.CartItem, error) {
	out := []domain.CartItem{}
	err := r.db.SelectContext(ctx, &out, `
	  SELECT `+cartColumns+`
	  FROM cart_items
	  WHERE session_id = ?
	  ORDER BY created_at, id
	`, sessionID)
	return out, err
}

// Get returns a line only if it belongs to sessionID.
func (r *CartRepo) Get(ctx context.Context, sessionID, id string) (domain.CartItem, error) {
	var it domain.CartItem
	err := r.db.GetContext(ctx, &it, `
	  SELECT `+cartColumns+`
	  FROM cart_items
	  WHERE id = ? AND session_id = ?
	`, id, sessionID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.CartItem{}, ErrNotFound
	}
	return it, err
}

// Update rewrites the mutable parts of a line.
func (r *CartRepo) Update(ctx context.Context, it domain.CartItem) error {
	res, err := r.db.NamedExecContext(ctx, `
	  UPDATE cart_items SET
	    quantity = :quantity, selected_color = :selected_color, selected_size = :selected_size,
	    branding_method_id = :branding_method_id, branding_colors = :branding_colors,
	    custom_branding = :custom_branding, branding_cost = :branding_cost
	  WHERE id = :id AND session_id = :session_id
	`, it)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *CartRepo) Remove(ctx context.Context, sessionID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE id = ? AND session_id = ?`, id, sessionID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *CartRepo) Clear(ctx context.Context, sessionID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE session_id = ?`, sessionID)
	return err
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
