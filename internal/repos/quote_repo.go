package repos

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"promostore/internal/domain"
)

type QuoteRepo struct{ db *sqlx.DB }

func NewQuoteRepo(db *sqlx.DB) *QuoteRepo { return &QuoteRepo{db: db} }

const quoteColumns = `
    id, session_id, customer_name, customer_email, customer_phone, company_name,
    items_json, total_amount, notes, status, created_at`

// CreateFromCart stores the quote and empties the session's cart in the same
// transaction.
func (r *QuoteRepo) CreateFromCart(ctx context.Context, q domain.QuoteRequest) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.NamedExecContext(ctx, `
	  INSERT INTO quote_requests(`+quoteColumns+`)
	  VALUES(
	    :id, :session_id, :customer_name, :customer_email, :customer_phone, :company_name,
	    :items_json, :total_amount, :notes, :status, :created_at)
	`, q); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM cart_items WHERE session_id = ?`, q.SessionID); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *QuoteRepo) Get(ctx context.Context, id string) (domain.QuoteRequest, error) {
	var q domain.QuoteRequest
	err := r.db.GetContext(ctx, &q, `SELECT `+quoteColumns+` FROM quote_requests WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.QuoteRequest{}, ErrNotFound
	}
	return q, err
}

func (r *QuoteRepo) ListLatest(ctx context.Context, limit int) ([]domain.QuoteRequest, error) {
	if limit <= 0 {
		limit = 100
	}
	out := []domain.QuoteRequest{}
	err := r.db.SelectContext(ctx, &out, `
	  SELECT `+quoteColumns+`
	  FROM quote_requests
	  ORDER BY created_at DESC, rowid DESC
	  LIMIT ?
	`, limit)
	return out, err
}

func (r *QuoteRepo) UpdateStatus(ctx context.Context, id, status string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE quote_requests SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}
