package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"transport-backend/internal/export"
	"transport-backend/internal/models"
	"transport-backend/internal/services"
	"transport-backend/pkg/utils"
)

type InvoiceHandler struct {
	Service  *services.InvoiceService
	Exporter *export.Exporter
}

func NewInvoiceHandler(s *services.InvoiceService, e *export.Exporter) *InvoiceHandler {
	return &InvoiceHandler{Service: s, Exporter: e}
}

// NextNumber allocates a number for a fresh draft. A blank number means the
// count query failed and the client should let the user type one in.
func (h *InvoiceHandler) NextNumber(w http.ResponseWriter, r *http.Request) {
	no := h.Service.NextInvoiceNumber(context.Background())
	utils.JSON(w, http.StatusOK, map[string]string{"invoice_no": no})
}

func (h *InvoiceHandler) SaveInvoice(w http.ResponseWriter, r *http.Request) {
	var req models.SaveInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	inv, err := h.Service.SaveInvoice(context.Background(), &req)
	if errors.Is(err, services.ErrValidation) {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, inv)
}

func (h *InvoiceHandler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	invoiceNo := mux.Vars(r)["invoiceNo"]

	inv, err := h.Service.GetInvoice(context.Background(), invoiceNo)
	if errors.Is(err, services.ErrNotFound) {
		utils.Error(w, http.StatusNotFound, "Invoice not found")
		return
	}
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, inv)
}

func (h *InvoiceHandler) ListInvoices(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.Service.ListInvoices(context.Background())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	if invoices == nil {
		invoices = []*models.Invoice{}
	}

	utils.JSON(w, http.StatusOK, invoices)
}

func (h *InvoiceHandler) DeleteInvoice(w http.ResponseWriter, r *http.Request) {
	invoiceNo := mux.Vars(r)["invoiceNo"]

	err := h.Service.DeleteInvoice(context.Background(), invoiceNo)
	if errors.Is(err, services.ErrNotFound) {
		utils.Error(w, http.StatusNotFound, "Invoice not found")
		return
	}
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, map[string]string{"message": "Invoice deleted"})
}

// ExportPDF renders the invoice, paginates it and streams the PDF as an
// attachment. A failed export returns an error with no partial file.
func (h *InvoiceHandler) ExportPDF(w http.ResponseWriter, r *http.Request) {
	invoiceNo := mux.Vars(r)["invoiceNo"]

	inv, err := h.Service.GetInvoice(context.Background(), invoiceNo)
	if errors.Is(err, services.ErrNotFound) {
		utils.Error(w, http.StatusNotFound, "Invoice not found")
		return
	}
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	res, err := h.Exporter.Export(context.Background(), inv)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "PDF export failed: "+err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, res.Filename))
	w.Header().Set("Content-Length", fmt.Sprint(len(res.PDF)))
	w.WriteHeader(http.StatusOK)
	w.Write(res.PDF)
}

// ExportDraftPDF exports an unsaved draft posted in the request body, so
// the preview can be downloaded before the invoice is persisted.
func (h *InvoiceHandler) ExportDraftPDF(w http.ResponseWriter, r *http.Request) {
	var req models.SaveInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	inv := &models.Invoice{
		InvoiceNo:       req.InvoiceNo,
		InvoiceDate:     req.InvoiceDate,
		CustomerName:    req.CustomerName,
		CustomerAddress: req.CustomerAddress,
		CustomerPhone:   req.CustomerPhone,
		OldBalance:      req.OldBalance,
		Advance:         req.Advance,
	}
	for _, it := range req.Items {
		inv.Items = append(inv.Items, models.LineItem{
			ID:          it.ID,
			Date:        it.Date,
			VehicleNo:   it.VehicleNo,
			Description: it.Description,
			Quantity:    it.Quantity,
			Rate:        it.Rate,
		})
	}

	res, err := h.Exporter.Export(context.Background(), inv)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "PDF export failed: "+err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, res.Filename))
	w.Header().Set("Content-Length", fmt.Sprint(len(res.PDF)))
	w.WriteHeader(http.StatusOK)
	w.Write(res.PDF)
}
