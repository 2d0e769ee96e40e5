package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"promostore/internal/domain"
	"promostore/internal/repos"
)

const (
	QuotePending  = "PENDING"
	QuoteQuoted   = "QUOTED"
	QuoteAccepted = "ACCEPTED"
	QuoteDeclined = "DECLINED"
)

type Contact struct {
	Name    string
	Email   string
	Phone   string
	Company string
	Notes   string
}

type QuoteService struct {
	Carts  *repos.CartRepo
	Quotes *repos.QuoteRepo
}

func NewQuoteService(carts *repos.CartRepo, quotes *repos.QuoteRepo) *QuoteService {
	return &QuoteService{Carts: carts, Quotes: quotes}
}

// Request snapshots the session cart into a quote request and empties the
// cart. The total includes VAT.
func (s *QuoteService) Request(ctx context.Context, sessionID string, c Contact) (domain.QuoteRequest, error) {
	if strings.TrimSpace(c.Name) == "" || strings.TrimSpace(c.Email) == "" {
		return domain.QuoteRequest{}, fmt.Errorf("%w: name and email are required", ErrInvalidInput)
	}
	items, err := s.Carts.Items(ctx, sessionID)
	if err != nil {
		return domain.QuoteRequest{}, err
	}
	if len(items) == 0 {
		return domain.QuoteRequest{}, ErrEmptyCart
	}

	lines := make(domain.QuoteItems, 0, len(items))
	for _, it := range items {
		lines = append(lines, domain.QuoteItem{
			ProductID:        it.ProductID,
			ProductName:      it.ProductName,
			Quantity:         it.Quantity,
			SelectedColor:    it.SelectedColor,
			SelectedSize:     it.SelectedSize,
			BrandingMethodID: it.BrandingMethodID,
			BrandingColors:   it.BrandingColors,
			CustomBranding:   it.CustomBranding,
			UnitPrice:        it.UnitPrice,
			BrandingCost:     it.BrandingCost,
			LineTotal:        it.LineTotal().Round(2),
		})
	}
	sub := subtotal(items)

	q := domain.QuoteRequest{
		ID:            uuid.NewString(),
		SessionID:     sessionID,
		CustomerName:  strings.TrimSpace(c.Name),
		CustomerEmail: strings.TrimSpace(c.Email),
		CustomerPhone: strings.TrimSpace(c.Phone),
		CompanyName:   strings.TrimSpace(c.Company),
		Items:         lines,
		TotalAmount:   sub.Add(sub.Mul(VATRate)).Round(2),
		Notes:         strings.TrimSpace(c.Notes),
		Status:        QuotePending,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.Quotes.CreateFromCart(ctx, q); err != nil {
		return domain.QuoteRequest{}, err
	}
	return q, nil
}

// Get returns a quote to the session that requested it or to an admin.
// Anyone else gets ErrNotFound.
func (s *QuoteService) Get(ctx context.Context, id, sessionID string, admin bool) (domain.QuoteRequest, error) {
	q, err := s.Quotes.Get(ctx, id)
	if err != nil {
		return domain.QuoteRequest{}, lookupErr("quote", err)
	}
	if !admin && q.SessionID != sessionID {
		return domain.QuoteRequest{}, fmt.Errorf("quote: %w", ErrNotFound)
	}
	return q, nil
}

func (s *QuoteService) List(ctx context.Context, limit int) ([]domain.QuoteRequest, error) {
	return s.Quotes.ListLatest(ctx, limit)
}

// SetStatus moves a quote through the admin workflow.
func (s *QuoteService) SetStatus(ctx context.Context, id, status string) error {
	status = strings.ToUpper(strings.TrimSpace(status))
	switch status {
	case QuotePending, QuoteQuoted, QuoteAccepted, QuoteDeclined:
	default:
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}
	if err := s.Quotes.UpdateStatus(ctx, id, status); err != nil {
		return lookupErr("quote", err)
	}
	return nil
}
