package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineItem is one billable row of an invoice. Quantity and Rate keep the text
// the user typed so a half-filled form round-trips unchanged; Amount is a
// cached derived value (quantity * rate rounded to two places) and is never
// set independently.
type LineItem struct {
	ID          string          `json:"id"`
	Date        string          `json:"date"`
	VehicleNo   string          `json:"vehicle_no"`
	Description string          `json:"description"`
	Quantity    string          `json:"qty_km"`
	Rate        string          `json:"rate"`
	Amount      decimal.Decimal `json:"amount"`
}

// Invoice is the persisted invoice record. Customer fields are a denormalized
// snapshot captured at invoice time, not a reference to a Customer row, so an
// invoice stays stable when the customer record later changes.
type Invoice struct {
	InvoiceNo       string          `json:"invoice_no"`
	InvoiceDate     string          `json:"invoice_date"`
	CustomerName    string          `json:"customer_name"`
	CustomerAddress string          `json:"customer_address"`
	CustomerPhone   string          `json:"customer_phone"`
	Items           []LineItem      `json:"items"`
	OldBalance      string          `json:"old_balance"`
	Advance         string          `json:"advance"`
	Total           decimal.Decimal `json:"total"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       *time.Time      `json:"updated_at,omitempty"`
}

// LineItemRequest carries the editable fields of one item. Amount is absent
// on purpose: it is always recomputed server-side.
type LineItemRequest struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	VehicleNo   string `json:"vehicle_no"`
	Description string `json:"description"`
	Quantity    string `json:"qty_km"`
	Rate        string `json:"rate"`
}

// SaveInvoiceRequest is the request body for creating or updating an invoice.
type SaveInvoiceRequest struct {
	InvoiceNo       string            `json:"invoice_no"`
	InvoiceDate     string            `json:"invoice_date"`
	CustomerName    string            `json:"customer_name"`
	CustomerAddress string            `json:"customer_address"`
	CustomerPhone   string            `json:"customer_phone"`
	Items           []LineItemRequest `json:"items"`
	OldBalance      string            `json:"old_balance"`
	Advance         string            `json:"advance"`
}

// InvoiceSummary is the trimmed listing shape used by the dashboard.
type InvoiceSummary struct {
	InvoiceNo    string          `json:"invoice_no"`
	InvoiceDate  string          `json:"invoice_date"`
	CustomerName string          `json:"customer_name"`
	Total        decimal.Decimal `json:"total"`
}
