package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"transport-backend/internal/billing"
	"transport-backend/internal/cache"
	"transport-backend/internal/models"
	"transport-backend/internal/repositories"
	"transport-backend/internal/timeutil"
)

// DraftState tracks where a draft sits between memory and storage.
type DraftState string

const (
	DraftNew        DraftState = "new"
	DraftLoading    DraftState = "loading"
	DraftEditing    DraftState = "editing"
	DraftSaving     DraftState = "saving"
	DraftSaved      DraftState = "saved"
	DraftLoadFailed DraftState = "load_failed"
)

// ErrLastItem is returned when a removal would leave the draft with no line items.
var ErrLastItem = errors.New("an invoice must keep at least one line item")

// DraftSession holds one in-memory invoice draft and reconciles it against
// the store. It is not safe for concurrent use; each editing session owns
// exactly one instance and drives it from a single goroutine.
type DraftSession struct {
	store    InvoiceStore
	state    DraftState
	invoice  models.Invoice
	editMode bool
	loadedNo string
}

// NewDraft starts a fresh draft: one empty line item, today's date, and an
// invoice number allocated from the current count. A failed count leaves
// the number blank for the user to fill in.
func NewDraft(ctx context.Context, store InvoiceStore) *DraftSession {
	s := &DraftSession{store: store, state: DraftNew}
	s.invoice = models.Invoice{
		InvoiceNo:   nextInvoiceNumber(ctx, store),
		InvoiceDate: timeutil.Today(),
		Items:       []models.LineItem{emptyItem()},
	}
	billing.Recompute(&s.invoice)
	s.state = DraftEditing
	return s
}

// newDraftWithNumber starts an editing session for a caller-supplied number,
// used by the API save path when the number is not in the store yet.
func newDraftWithNumber(store InvoiceStore, number string) *DraftSession {
	s := &DraftSession{store: store, state: DraftEditing}
	s.invoice = models.Invoice{
		InvoiceNo:   number,
		InvoiceDate: timeutil.Today(),
		Items:       []models.LineItem{emptyItem()},
	}
	billing.Recompute(&s.invoice)
	return s
}

// LoadDraft opens an existing invoice for editing. Item amounts and the
// total are re-derived from the stored quantity/rate text rather than
// trusted from the cached columns.
func LoadDraft(ctx context.Context, store InvoiceStore, invoiceNo string) (*DraftSession, error) {
	s := &DraftSession{store: store, state: DraftLoading, editMode: true}
	inv, err := store.GetByNumber(ctx, invoiceNo)
	if err != nil {
		s.state = DraftLoadFailed
		if errors.Is(err, repositories.ErrInvoiceNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	s.invoice = *inv
	s.loadedNo = inv.InvoiceNo
	billing.Recompute(&s.invoice)
	s.state = DraftEditing
	return s, nil
}

func emptyItem() models.LineItem {
	return models.LineItem{ID: uuid.NewString(), Date: timeutil.Today()}
}

func (s *DraftSession) State() DraftState { return s.state }

// Snapshot returns a copy of the current draft with derived fields up to date.
func (s *DraftSession) Snapshot() models.Invoice {
	inv := s.invoice
	inv.Items = append([]models.LineItem(nil), s.invoice.Items...)
	return inv
}

// SetHeaderField mutates a top-level draft field and recomputes totals.
// Unknown field names are ignored so callers can pass UI field ids straight
// through.
func (s *DraftSession) SetHeaderField(name, value string) {
	switch name {
	case "invoiceNo":
		s.invoice.InvoiceNo = value
	case "invoiceDate":
		s.invoice.InvoiceDate = value
	case "customerName":
		s.invoice.CustomerName = value
	case "customerAddress":
		s.invoice.CustomerAddress = value
	case "customerPhone":
		s.invoice.CustomerPhone = value
	case "oldBalance":
		s.invoice.OldBalance = value
	case "advance":
		s.invoice.Advance = value
	}
	billing.Recompute(&s.invoice)
}

// SetItemField mutates one field of the identified line item and recomputes
// the item amount and invoice total synchronously.
func (s *DraftSession) SetItemField(itemID, name, value string) {
	for i := range s.invoice.Items {
		if s.invoice.Items[i].ID != itemID {
			continue
		}
		switch name {
		case "date":
			s.invoice.Items[i].Date = value
		case "vehicleNo":
			s.invoice.Items[i].VehicleNo = value
		case "description":
			s.invoice.Items[i].Description = value
		case "qty":
			s.invoice.Items[i].Quantity = value
		case "rate":
			s.invoice.Items[i].Rate = value
		}
		break
	}
	billing.Recompute(&s.invoice)
}

// Apply overwrites the whole draft from an API payload, the bulk form of the
// field-at-a-time setters. A blank payload number keeps the current one, and
// line items arriving without an id get one assigned.
func (s *DraftSession) Apply(req *models.SaveInvoiceRequest) {
	if n := strings.TrimSpace(req.InvoiceNo); n != "" {
		s.invoice.InvoiceNo = n
	}
	s.invoice.InvoiceDate = req.InvoiceDate
	s.invoice.CustomerName = req.CustomerName
	s.invoice.CustomerAddress = req.CustomerAddress
	s.invoice.CustomerPhone = req.CustomerPhone
	s.invoice.OldBalance = req.OldBalance
	s.invoice.Advance = req.Advance

	if len(req.Items) > 0 {
		items := make([]models.LineItem, 0, len(req.Items))
		for _, it := range req.Items {
			id := it.ID
			if id == "" {
				id = uuid.NewString()
			}
			items = append(items, models.LineItem{
				ID:          id,
				Date:        it.Date,
				VehicleNo:   it.VehicleNo,
				Description: it.Description,
				Quantity:    it.Quantity,
				Rate:        it.Rate,
			})
		}
		s.invoice.Items = items
	}
	billing.Recompute(&s.invoice)
}

// AddItem appends a fresh empty line item.
func (s *DraftSession) AddItem() models.LineItem {
	item := emptyItem()
	s.invoice.Items = append(s.invoice.Items, item)
	return item
}

// RemoveItem drops the identified line item. The last remaining item cannot
// be removed.
func (s *DraftSession) RemoveItem(itemID string) error {
	if len(s.invoice.Items) <= 1 {
		return ErrLastItem
	}
	for i := range s.invoice.Items {
		if s.invoice.Items[i].ID == itemID {
			s.invoice.Items = append(s.invoice.Items[:i], s.invoice.Items[i+1:]...)
			billing.Recompute(&s.invoice)
			return nil
		}
	}
	return nil
}

// ApplyCustomer copies a template customer onto the draft. Existing values
// are overwritten unconditionally; last write wins.
func (s *DraftSession) ApplyCustomer(c *models.Customer) {
	s.invoice.CustomerName = c.Name
	s.invoice.CustomerAddress = c.Address
	s.invoice.CustomerPhone = c.Phone
}

// Save validates the draft and writes it through to the store. Edit mode
// updates in place and replaces the line items; otherwise a new record is
// inserted. On a write failure the draft is preserved unchanged so the
// user can retry.
func (s *DraftSession) Save(ctx context.Context) error {
	if strings.TrimSpace(s.invoice.InvoiceNo) == "" {
		return fmt.Errorf("%w: invoice number is required", ErrValidation)
	}
	if strings.TrimSpace(s.invoice.CustomerName) == "" {
		return fmt.Errorf("%w: customer name is required", ErrValidation)
	}

	s.state = DraftSaving
	billing.Recompute(&s.invoice)

	var err error
	if s.editMode {
		// Updates are keyed by the number the invoice was loaded under, so
		// editing the number field renames the record instead of forking it.
		err = s.store.Update(ctx, s.loadedNo, &s.invoice)
	} else {
		err = s.store.Create(ctx, &s.invoice)
	}
	if err != nil {
		s.state = DraftEditing
		return err
	}
	s.state = DraftSaved
	cache.InvalidateDashboard(ctx)
	return nil
}
