package services

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transport-backend/internal/models"
	"transport-backend/internal/repositories"
)

// fakeStore keeps invoices in memory and can be told to fail.
type fakeStore struct {
	invoices map[string]*models.Invoice
	countErr error
	writeErr error
	creates  int
	updates  int
}

func newFakeStore() *fakeStore {
	return &fakeStore{invoices: map[string]*models.Invoice{}}
}

func (f *fakeStore) Count(context.Context) (int, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	return len(f.invoices), nil
}

func (f *fakeStore) Create(_ context.Context, inv *models.Invoice) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.creates++
	cp := *inv
	f.invoices[inv.InvoiceNo] = &cp
	return nil
}

func (f *fakeStore) Update(_ context.Context, number string, inv *models.Invoice) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	if _, ok := f.invoices[number]; !ok {
		return repositories.ErrInvoiceNotFound
	}
	f.updates++
	delete(f.invoices, number)
	cp := *inv
	f.invoices[inv.InvoiceNo] = &cp
	return nil
}

func (f *fakeStore) GetByNumber(_ context.Context, no string) (*models.Invoice, error) {
	inv, ok := f.invoices[no]
	if !ok {
		return nil, repositories.ErrInvoiceNotFound
	}
	cp := *inv
	return &cp, nil
}

func (f *fakeStore) Delete(_ context.Context, no string) error {
	if _, ok := f.invoices[no]; !ok {
		return repositories.ErrInvoiceNotFound
	}
	delete(f.invoices, no)
	return nil
}

func (f *fakeStore) List(context.Context) ([]*models.Invoice, error) {
	var out []*models.Invoice
	for _, inv := range f.invoices {
		out = append(out, inv)
	}
	return out, nil
}

func seedInvoices(store *fakeStore, n int) {
	for i := 0; i < n; i++ {
		no := string(rune('A' + i))
		store.invoices[no] = &models.Invoice{InvoiceNo: no}
	}
}

func TestNewDraftStartsWithOneItemAndNumber(t *testing.T) {
	store := newFakeStore()
	seedInvoices(store, 3)

	s := NewDraft(context.Background(), store)

	assert.Equal(t, DraftEditing, s.State())
	snap := s.Snapshot()
	assert.Equal(t, "INV-0004", snap.InvoiceNo)
	require.Len(t, snap.Items, 1)
	assert.NotEmpty(t, snap.Items[0].ID)
	assert.NotEmpty(t, snap.InvoiceDate)
}

func TestNewDraftNumberBlankWhenCountFails(t *testing.T) {
	store := newFakeStore()
	store.countErr = errors.New("connection refused")

	s := NewDraft(context.Background(), store)

	// The user can type a number in by hand; the draft stays usable.
	assert.Equal(t, DraftEditing, s.State())
	assert.Empty(t, s.Snapshot().InvoiceNo)
}

func TestLoadDraftRecomputesStoredAmounts(t *testing.T) {
	store := newFakeStore()
	store.invoices["INV-0001"] = &models.Invoice{
		InvoiceNo:    "INV-0001",
		CustomerName: "Sharma Textiles",
		Items: []models.LineItem{
			// Stored amount drifted; quantity * rate says 1250.00.
			{ID: "a", Quantity: "100", Rate: "12.5", Amount: decimal.NewFromInt(999)},
		},
		Total: decimal.NewFromInt(999),
	}

	s, err := LoadDraft(context.Background(), store, "INV-0001")
	require.NoError(t, err)
	assert.Equal(t, DraftEditing, s.State())

	snap := s.Snapshot()
	assert.Equal(t, "1250.00", snap.Items[0].Amount.StringFixed(2))
	assert.Equal(t, "1250.00", snap.Total.StringFixed(2))
}

func TestLoadDraftMissingInvoice(t *testing.T) {
	s, err := LoadDraft(context.Background(), newFakeStore(), "INV-0009")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, s)
}

func TestSetItemFieldRecomputesSynchronously(t *testing.T) {
	store := newFakeStore()
	s := NewDraft(context.Background(), store)
	itemID := s.Snapshot().Items[0].ID

	s.SetItemField(itemID, "qty", "340")
	s.SetItemField(itemID, "rate", "18")

	snap := s.Snapshot()
	assert.Equal(t, "6120.00", snap.Items[0].Amount.StringFixed(2))
	assert.Equal(t, "6120.00", snap.Total.StringFixed(2))

	s.SetHeaderField("oldBalance", "500")
	s.SetHeaderField("advance", "120")
	assert.Equal(t, "6500.00", s.Snapshot().Total.StringFixed(2))
}

func TestAddAndRemoveItems(t *testing.T) {
	s := NewDraft(context.Background(), newFakeStore())
	first := s.Snapshot().Items[0].ID

	added := s.AddItem()
	assert.Len(t, s.Snapshot().Items, 2)
	assert.NotEqual(t, first, added.ID)

	require.NoError(t, s.RemoveItem(added.ID))
	assert.Len(t, s.Snapshot().Items, 1)

	// The last line item cannot be removed.
	assert.ErrorIs(t, s.RemoveItem(first), ErrLastItem)
	assert.Len(t, s.Snapshot().Items, 1)
}

func TestApplyCustomerOverwritesUnconditionally(t *testing.T) {
	s := NewDraft(context.Background(), newFakeStore())
	s.SetHeaderField("customerName", "Typed By Hand")
	s.SetHeaderField("customerPhone", "044-000000")

	s.ApplyCustomer(&models.Customer{Name: "Sharma Textiles", Address: "12 Mount Road", Phone: "98400-11111"})

	snap := s.Snapshot()
	assert.Equal(t, "Sharma Textiles", snap.CustomerName)
	assert.Equal(t, "12 Mount Road", snap.CustomerAddress)
	assert.Equal(t, "98400-11111", snap.CustomerPhone)
}

func TestSaveValidation(t *testing.T) {
	store := newFakeStore()
	s := NewDraft(context.Background(), store)
	s.SetHeaderField("invoiceNo", "")

	err := s.Save(context.Background())
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, 0, store.creates)

	s.SetHeaderField("invoiceNo", "INV-0001")
	err = s.Save(context.Background())
	assert.ErrorIs(t, err, ErrValidation) // customer name still missing
	assert.Equal(t, 0, store.creates)
}

func TestSaveCreateThenReload(t *testing.T) {
	store := newFakeStore()
	s := NewDraft(context.Background(), store)
	itemID := s.Snapshot().Items[0].ID
	s.SetHeaderField("customerName", "Sharma Textiles")
	s.SetItemField(itemID, "qty", "100")
	s.SetItemField(itemID, "rate", "12.5")

	require.NoError(t, s.Save(context.Background()))
	assert.Equal(t, DraftSaved, s.State())
	assert.Equal(t, 1, store.creates)

	// A reloaded draft derives the same totals from the stored text.
	reloaded, err := LoadDraft(context.Background(), store, "INV-0001")
	require.NoError(t, err)
	assert.Equal(t, "1250.00", reloaded.Snapshot().Total.StringFixed(2))
}

func TestSaveEditModeUpdates(t *testing.T) {
	store := newFakeStore()
	store.invoices["INV-0001"] = &models.Invoice{
		InvoiceNo:    "INV-0001",
		CustomerName: "Sharma Textiles",
		Items:        []models.LineItem{{ID: "a", Quantity: "1", Rate: "1"}},
	}

	s, err := LoadDraft(context.Background(), store, "INV-0001")
	require.NoError(t, err)
	s.SetItemField("a", "rate", "250")

	require.NoError(t, s.Save(context.Background()))
	assert.Equal(t, 1, store.updates)
	assert.Equal(t, 0, store.creates)
	assert.Equal(t, "250.00", store.invoices["INV-0001"].Total.StringFixed(2))
}

func TestSaveFailurePreservesDraft(t *testing.T) {
	store := newFakeStore()
	s := NewDraft(context.Background(), store)
	itemID := s.Snapshot().Items[0].ID
	s.SetHeaderField("customerName", "Sharma Textiles")
	s.SetItemField(itemID, "qty", "7")
	s.SetItemField(itemID, "rate", "100")

	store.writeErr = errors.New("disk full")
	err := s.Save(context.Background())
	assert.Error(t, err)
	assert.Equal(t, DraftEditing, s.State())

	// Nothing was lost; a retry succeeds.
	assert.Equal(t, "700.00", s.Snapshot().Total.StringFixed(2))
	store.writeErr = nil
	require.NoError(t, s.Save(context.Background()))
	assert.Equal(t, DraftSaved, s.State())
}
