package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"transport-backend/internal/billing"
	"transport-backend/internal/cache"
	"transport-backend/internal/models"
	"transport-backend/internal/repositories"
)

// InvoiceStore is the storage surface the invoice workflows depend on.
// *repositories.InvoiceRepository satisfies it.
type InvoiceStore interface {
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, inv *models.Invoice) error
	Update(ctx context.Context, number string, inv *models.Invoice) error
	GetByNumber(ctx context.Context, invoiceNo string) (*models.Invoice, error)
	Delete(ctx context.Context, invoiceNo string) error
	List(ctx context.Context) ([]*models.Invoice, error)
}

type InvoiceService struct {
	Store InvoiceStore
}

func NewInvoiceService(store InvoiceStore) *InvoiceService {
	return &InvoiceService{Store: store}
}

// nextInvoiceNumber derives a number from the current invoice count:
// count 3 yields INV-0004. It returns "" when the count cannot be read,
// in which case the draft stays unnumbered until save time.
func nextInvoiceNumber(ctx context.Context, store InvoiceStore) string {
	count, err := store.Count(ctx)
	if err != nil {
		log.Printf("[Invoices] failed to count invoices for numbering: %v", err)
		return ""
	}
	return fmt.Sprintf("INV-%04d", count+1)
}

func (s *InvoiceService) NextInvoiceNumber(ctx context.Context) string {
	return nextInvoiceNumber(ctx, s.Store)
}

// SaveInvoice drives a DraftSession through the same validate/recompute/save
// path the interactive editor uses: the existing record is loaded when the
// number is already in the store, a fresh draft is started otherwise, then
// the payload is applied and saved.
func (s *InvoiceService) SaveInvoice(ctx context.Context, req *models.SaveInvoiceRequest) (*models.Invoice, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: at least one line item is required", ErrValidation)
	}

	var session *DraftSession
	if number := strings.TrimSpace(req.InvoiceNo); number == "" {
		session = NewDraft(ctx, s.Store)
		if session.Snapshot().InvoiceNo == "" {
			return nil, fmt.Errorf("%w: invoice number could not be allocated", ErrValidation)
		}
	} else {
		loaded, err := LoadDraft(ctx, s.Store, number)
		switch {
		case err == nil:
			session = loaded
		case errors.Is(err, ErrNotFound):
			session = newDraftWithNumber(s.Store, number)
		default:
			return nil, err
		}
	}

	session.Apply(req)
	if err := session.Save(ctx); err != nil {
		return nil, err
	}
	inv := session.Snapshot()
	return &inv, nil
}

// GetInvoice loads an invoice and re-derives amounts and total from the
// stored entry text, so stale cached figures never leak out of storage.
func (s *InvoiceService) GetInvoice(ctx context.Context, invoiceNo string) (*models.Invoice, error) {
	inv, err := s.Store.GetByNumber(ctx, invoiceNo)
	if errors.Is(err, repositories.ErrInvoiceNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	billing.Recompute(inv)
	return inv, nil
}

func (s *InvoiceService) ListInvoices(ctx context.Context) ([]*models.Invoice, error) {
	return s.Store.List(ctx)
}

func (s *InvoiceService) DeleteInvoice(ctx context.Context, invoiceNo string) error {
	err := s.Store.Delete(ctx, invoiceNo)
	if errors.Is(err, repositories.ErrInvoiceNotFound) {
		return ErrNotFound
	}
	if err == nil {
		cache.InvalidateDashboard(ctx)
	}
	return err
}
