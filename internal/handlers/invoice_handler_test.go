package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transport-backend/internal/config"
	"transport-backend/internal/export"
	"transport-backend/internal/models"
	"transport-backend/internal/render"
	"transport-backend/internal/repositories"
	"transport-backend/internal/services"
)

type memStore struct {
	invoices map[string]*models.Invoice
}

func newMemStore() *memStore {
	return &memStore{invoices: map[string]*models.Invoice{}}
}

func (m *memStore) Count(context.Context) (int, error) { return len(m.invoices), nil }

func (m *memStore) Create(_ context.Context, inv *models.Invoice) error {
	cp := *inv
	m.invoices[inv.InvoiceNo] = &cp
	return nil
}

func (m *memStore) Update(_ context.Context, number string, inv *models.Invoice) error {
	if _, ok := m.invoices[number]; !ok {
		return repositories.ErrInvoiceNotFound
	}
	delete(m.invoices, number)
	cp := *inv
	m.invoices[inv.InvoiceNo] = &cp
	return nil
}

func (m *memStore) GetByNumber(_ context.Context, no string) (*models.Invoice, error) {
	inv, ok := m.invoices[no]
	if !ok {
		return nil, repositories.ErrInvoiceNotFound
	}
	cp := *inv
	return &cp, nil
}

func (m *memStore) Delete(_ context.Context, no string) error {
	if _, ok := m.invoices[no]; !ok {
		return repositories.ErrInvoiceNotFound
	}
	delete(m.invoices, no)
	return nil
}

func (m *memStore) List(context.Context) ([]*models.Invoice, error) {
	var out []*models.Invoice
	for _, inv := range m.invoices {
		out = append(out, inv)
	}
	return out, nil
}

type stubSurface struct{}

func (stubSurface) Capture(context.Context, string, render.Options) (*render.Image, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 1440, 1000))); err != nil {
		return nil, err
	}
	return &render.Image{PNG: buf.Bytes(), Width: 1440, Height: 1000}, nil
}

func newTestRouter(store *memStore) *mux.Router {
	svc := services.NewInvoiceService(store)
	exporter := export.NewExporter(stubSurface{}, export.NewPDFEncoder(config.ExportConfig{}), nil)
	h := NewInvoiceHandler(svc, exporter)

	r := mux.NewRouter()
	api := r.PathPrefix("/api/invoices").Subrouter()
	api.HandleFunc("", h.SaveInvoice).Methods("POST")
	api.HandleFunc("", h.ListInvoices).Methods("GET")
	api.HandleFunc("/next-number", h.NextNumber).Methods("GET")
	api.HandleFunc("/{invoiceNo}", h.GetInvoice).Methods("GET")
	api.HandleFunc("/{invoiceNo}", h.DeleteInvoice).Methods("DELETE")
	api.HandleFunc("/{invoiceNo}/pdf", h.ExportPDF).Methods("GET")
	return r
}

func TestSaveAndGetInvoice(t *testing.T) {
	router := newTestRouter(newMemStore())

	body := `{
		"invoice_no": "INV-0001",
		"invoice_date": "2025-04-01",
		"customer_name": "Sharma Textiles",
		"old_balance": "300",
		"advance": "0",
		"items": [
			{"date": "2025-04-01", "vehicle_no": "TN 09 AB 1234", "description": "Chennai to Salem", "qty_km": "100", "rate": "12.5"}
		]
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/invoices", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/invoices/INV-0001", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var inv models.Invoice
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &inv))
	assert.Equal(t, "Sharma Textiles", inv.CustomerName)
	assert.Equal(t, "1550.00", inv.Total.StringFixed(2))
}

func TestSaveInvoiceRejectsMissingCustomer(t *testing.T) {
	router := newTestRouter(newMemStore())

	body := `{"invoice_no": "INV-0001", "items": [{"qty_km": "1", "rate": "1"}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/invoices", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetInvoiceNotFound(t *testing.T) {
	router := newTestRouter(newMemStore())

	req := httptest.NewRequest(http.MethodGet, "/api/invoices/INV-0404", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNextNumberEndpoint(t *testing.T) {
	store := newMemStore()
	store.invoices["INV-0001"] = &models.Invoice{InvoiceNo: "INV-0001"}
	router := newTestRouter(store)

	req := httptest.NewRequest(http.MethodGet, "/api/invoices/next-number", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "INV-0002", resp["invoice_no"])
}

func TestExportPDFEndpoint(t *testing.T) {
	store := newMemStore()
	store.invoices["INV-0001"] = &models.Invoice{
		InvoiceNo:    "INV-0001",
		CustomerName: "Sharma Textiles",
		Items:        []models.LineItem{{ID: "a", Quantity: "100", Rate: "12.5"}},
	}
	router := newTestRouter(store)

	req := httptest.NewRequest(http.MethodGet, "/api/invoices/INV-0001/pdf", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "Invoice_INV-0001.pdf")
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")))
}

func TestDeleteInvoiceEndpoint(t *testing.T) {
	store := newMemStore()
	store.invoices["INV-0001"] = &models.Invoice{InvoiceNo: "INV-0001"}
	router := newTestRouter(store)

	req := httptest.NewRequest(http.MethodDelete, "/api/invoices/INV-0001", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodDelete, "/api/invoices/INV-0001", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
